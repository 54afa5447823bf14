package logic

import (
	"fmt"

	"github.com/dilukangelosl/Nft-launchpad/internal/factory"
	"github.com/dilukangelosl/Nft-launchpad/internal/logger"
	"github.com/dilukangelosl/Nft-launchpad/internal/model"
	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"
)

// IssueLogic 发行业务逻辑
type IssueLogic struct {
	db      *gorm.DB
	factory *factory.Factory
}

// NewIssueLogic 创建发行业务逻辑
func NewIssueLogic(db *gorm.DB, f *factory.Factory) *IssueLogic {
	return &IssueLogic{db: db, factory: f}
}

// Issue 对指定轮次发行条目
// 核心完成后同步刷新镜像计数；逐条发行记录由记录管道异步写入
func (l *IssueLogic) Issue(caller common.Address, addr common.Address, roundID uint64,
	quantity uint64, proof []common.Hash, payment uint64) ([]uint64, error) {
	col, err := l.factory.Get(addr)
	if err != nil {
		return nil, err
	}

	itemIDs, err := col.Issue(caller, roundID, quantity, proof, payment)
	if err != nil {
		return nil, err
	}

	round, rerr := col.Round(roundID)
	if rerr == nil {
		if err := l.db.Model(&model.RoundModel{}).
			Where("collection_address = ? AND round_index = ?", addr.Hex(), int64(roundID)).
			Update("issued", int64(round.Issued)).Error; err != nil {
			logger.Error("Failed to mirror round issued count for %s/%d: %v",
				addr.Hex(), roundID, err)
		}
	}
	if err := l.db.Model(&model.CollectionModel{}).
		Where("address = ?", addr.Hex()).
		Updates(map[string]interface{}{
			"issued_total": int64(col.IssuedTotal()),
			"balance":      int64(col.Balance()),
		}).Error; err != nil {
		logger.Error("Failed to mirror collection counters for %s: %v", addr.Hex(), err)
	}

	return itemIDs, nil
}

// GetIssueRecords 集合的发行记录（分页）
func (l *IssueLogic) GetIssueRecords(addr common.Address, page, pageSize int) ([]model.IssueRecordModel, int64, error) {
	var total int64
	query := l.db.Model(&model.IssueRecordModel{}).
		Where("collection_address = ?", addr.Hex())
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("获取发行记录总数失败: %w", err)
	}

	var records []model.IssueRecordModel
	offset := (page - 1) * pageSize
	if err := query.Order("item_id ASC").Offset(offset).Limit(pageSize).
		Find(&records).Error; err != nil {
		return nil, 0, fmt.Errorf("获取发行记录失败: %w", err)
	}
	return records, total, nil
}

// GetWalletRecords 某地址在某集合下的发行记录
func (l *IssueLogic) GetWalletRecords(addr, wallet common.Address) ([]model.IssueRecordModel, error) {
	var records []model.IssueRecordModel
	if err := l.db.Where("collection_address = ? AND caller_address = ?",
		addr.Hex(), wallet.Hex()).
		Order("item_id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("获取地址发行记录失败: %w", err)
	}
	return records, nil
}
