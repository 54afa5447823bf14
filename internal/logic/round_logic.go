package logic

import (
	"fmt"

	"github.com/dilukangelosl/Nft-launchpad/internal/collection"
	"github.com/dilukangelosl/Nft-launchpad/internal/factory"
	"github.com/dilukangelosl/Nft-launchpad/internal/model"
	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"
)

// RoundLogic 轮次业务逻辑
// 写路径只打到核心状态机，镜像行由记录管道异步维护
type RoundLogic struct {
	db      *gorm.DB
	factory *factory.Factory
}

// NewRoundLogic 创建轮次业务逻辑
func NewRoundLogic(db *gorm.DB, f *factory.Factory) *RoundLogic {
	return &RoundLogic{db: db, factory: f}
}

// CreateRound 为集合追加轮次
func (l *RoundLogic) CreateRound(caller, addr common.Address,
	params collection.RoundParams) (uint64, error) {
	col, err := l.factory.Get(addr)
	if err != nil {
		return 0, err
	}
	return col.CreateRound(caller, params)
}

// UpdateRound 更新轮次可变字段
func (l *RoundLogic) UpdateRound(caller, addr common.Address, roundID uint64,
	params collection.RoundParams) error {
	col, err := l.factory.Get(addr)
	if err != nil {
		return err
	}
	return col.UpdateRound(caller, roundID, params)
}

// SetRoundActive 暂停/恢复轮次
func (l *RoundLogic) SetRoundActive(caller, addr common.Address, roundID uint64, active bool) error {
	col, err := l.factory.Get(addr)
	if err != nil {
		return err
	}
	return col.SetRoundActive(caller, roundID, active)
}

// GetRounds 轮次列表，取核心在线状态
func (l *RoundLogic) GetRounds(addr common.Address) ([]collection.Round, error) {
	col, err := l.factory.Get(addr)
	if err != nil {
		return nil, err
	}
	return col.Rounds(), nil
}

// GetRound 单个轮次
func (l *RoundLogic) GetRound(addr common.Address, roundID uint64) (collection.Round, error) {
	col, err := l.factory.Get(addr)
	if err != nil {
		return collection.Round{}, err
	}
	return col.Round(roundID)
}

// GetRoundRows 轮次镜像行（带展示状态），供列表页使用
func (l *RoundLogic) GetRoundRows(addr common.Address) ([]model.RoundModel, error) {
	var rows []model.RoundModel
	if err := l.db.Where("collection_address = ?", addr.Hex()).
		Order("round_index ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("获取轮次列表失败: %w", err)
	}
	return rows, nil
}
