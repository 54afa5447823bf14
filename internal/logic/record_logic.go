package logic

import (
	"github.com/dilukangelosl/Nft-launchpad/internal/event"
	"github.com/dilukangelosl/Nft-launchpad/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecordLogic 记录落地逻辑，实现event.Sink
// 核心发射的记录经协程池投递到这里写入数据库
type RecordLogic struct {
	db *gorm.DB
}

// NewRecordLogic 创建记录落地逻辑
func NewRecordLogic(db *gorm.DB) *RecordLogic {
	return &RecordLogic{db: db}
}

// HandleDeploy 写入部署记录
func (l *RecordLogic) HandleDeploy(record event.DeployRecord) error {
	row := model.DeployRecordModel{
		Address:       record.Address.Hex(),
		OwnerAddress:  record.Owner.Hex(),
		Name:          record.Name,
		Symbol:        record.Symbol,
		TotalCapacity: int64(record.TotalCapacity),
		RoundCount:    int64(record.RoundCount),
	}
	return l.db.Create(&row).Error
}

// HandleRound 按(集合,轮次)维护轮次镜像行
// 创建与后续变更都走同一条upsert路径
func (l *RecordLogic) HandleRound(record event.RoundRecord) error {
	row := model.RoundModel{
		CollectionAddress: record.Collection.Hex(),
		RoundIndex:        int64(record.RoundID),
		StartTime:         record.Start,
		EndTime:           record.End,
		UnitPrice:         int64(record.UnitPrice),
		Capacity:          int64(record.Capacity),
		MaxPerWallet:      int64(record.MaxPerWallet),
		AllowlistRoot:     record.AllowlistRoot.Hex(),
		Gated:             record.Gated,
		Active:            record.Active,
		Status:            model.RoundStatusPending,
	}
	return l.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "collection_address"}, {Name: "round_index"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"start_time", "end_time", "unit_price", "capacity",
			"max_per_wallet", "allowlist_root", "gated", "active", "updated_at",
		}),
	}).Create(&row).Error
}

// HandleIssue 写入单条发行记录
func (l *RecordLogic) HandleIssue(record event.IssueRecord) error {
	row := model.IssueRecordModel{
		CollectionAddress: record.Collection.Hex(),
		RoundIndex:        int64(record.RoundID),
		ItemId:            int64(record.ItemID),
		CallerAddress:     record.Caller.Hex(),
		UnitPrice:         int64(record.UnitPrice),
	}
	return l.db.Create(&row).Error
}
