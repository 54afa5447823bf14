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

// RoundStatusJob 轮次展示状态同步任务
// 把核心在线状态推导出的展示状态刷进镜像行，仅用于列表页，不回写核心
type RoundStatusJob struct {
	db      *gorm.DB
	factory *factory.Factory
	config  *config.Config
}

// NewRoundStatusJob 创建轮次状态同步任务
func NewRoundStatusJob(db *gorm.DB, f *factory.Factory, cfg *config.Config) *RoundStatusJob {
	return &RoundStatusJob{db: db, factory: f, config: cfg}
}

// GetName 获取任务名称
func (j *RoundStatusJob) GetName() string {
	return "round_status_updater"
}

// GetSchedule 获取调度配置
func (j *RoundStatusJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *RoundStatusJob) Execute() {
	now := time.Now()
	updatedCount := 0

	for _, col := range j.factory.List() {
		addr := col.Address().Hex()
		for i, round := range col.Rounds() {
			status := deriveStatus(round.Active, round.Issued, round.Capacity,
				round.Start, round.End, now)

			result := j.db.Model(&model.RoundModel{}).
				Where("collection_address = ? AND round_index = ? AND status <> ?",
					addr, int64(i), status).
				Updates(map[string]interface{}{
					"status": status,
					"issued": int64(round.Issued),
					"active": round.Active,
				})
			if result.Error != nil {
				logger.Error("Failed to update round status %s/%d: %v", addr, i, result.Error)
				continue
			}
			updatedCount += int(result.RowsAffected)
		}
	}

	if updatedCount > 0 {
		logger.Info("Round status sync updated %d rounds", updatedCount)
	}
}

// deriveStatus 展示状态推导：停用 > 售罄 > 时间窗口
func deriveStatus(active bool, issued, capacity uint64, start, end, now time.Time) model.RoundStatus {
	switch {
	case !active:
		return model.RoundStatusPaused
	case issued >= capacity:
		return model.RoundStatusSoldOut
	case now.Before(start):
		return model.RoundStatusPending
	case !now.Before(end):
		return model.RoundStatusEnded
	default:
		return model.RoundStatusActive
	}
}
