package task

import (
	"time"

	"github.com/dilukangelosl/Nft-launchpad/internal/config"
	"github.com/dilukangelosl/Nft-launchpad/internal/factory"
	"github.com/dilukangelosl/Nft-launchpad/internal/logger"
	"github.com/dilukangelosl/Nft-launchpad/internal/model"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// CollectionSnapshotJob 集合镜像快照任务
// 定期把在线计数器写回集合镜像行，兜底异步管道丢失的更新
type CollectionSnapshotJob struct {
	db      *gorm.DB
	factory *factory.Factory
	config  *config.Config
}

// NewCollectionSnapshotJob 创建集合快照任务
func NewCollectionSnapshotJob(db *gorm.DB, f *factory.Factory, cfg *config.Config) *CollectionSnapshotJob {
	return &CollectionSnapshotJob{db: db, factory: f, config: cfg}
}

// GetName 获取任务名称
func (j *CollectionSnapshotJob) GetName() string {
	return "collection_snapshot"
}

// GetSchedule 获取调度配置
func (j *CollectionSnapshotJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *CollectionSnapshotJob) Execute() {
	syncedCount := 0

	for _, col := range j.factory.List() {
		addr := col.Address().Hex()

		result := j.db.Model(&model.CollectionModel{}).
			Where("address = ?", addr).
			Updates(map[string]interface{}{
				"issued_total": int64(col.IssuedTotal()),
				"balance":      int64(col.Balance()),
				"base_uri":     col.BaseURI(),
			})
		if result.Error != nil {
			logger.Error("Failed to snapshot collection %s: %v", addr, result.Error)
			continue
		}
		syncedCount += int(result.RowsAffected)
	}

	if syncedCount > 0 {
		logger.Info("Collection snapshot synced %d collections", syncedCount)
	}
}
