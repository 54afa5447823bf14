package logic

import (
	"errors"
	"fmt"

	"github.com/dilukangelosl/Nft-launchpad/internal/access"
	"github.com/dilukangelosl/Nft-launchpad/internal/collection"
	"github.com/dilukangelosl/Nft-launchpad/internal/factory"
	"github.com/dilukangelosl/Nft-launchpad/internal/logger"
	"github.com/dilukangelosl/Nft-launchpad/internal/model"
	"github.com/dilukangelosl/Nft-launchpad/internal/registry"
	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"
)

// CollectionLogic 集合业务逻辑
// 核心状态机为权威状态，数据库只是查询与恢复用的镜像
type CollectionLogic struct {
	db      *gorm.DB
	factory *factory.Factory
	oracle  access.Oracle
}

// NewCollectionLogic 创建集合业务逻辑
func NewCollectionLogic(db *gorm.DB, f *factory.Factory, oracle access.Oracle) *CollectionLogic {
	return &CollectionLogic{db: db, factory: f, oracle: oracle}
}

// ComputeAddress 预计算部署地址，纯函数无副作用
func (l *CollectionLogic) ComputeAddress(p factory.Params) (common.Address, error) {
	return l.factory.ComputeAddress(p)
}

// DeployCollection 部署新集合并落库镜像
func (l *CollectionLogic) DeployCollection(caller common.Address, p factory.Params,
	rounds []collection.RoundParams) (*collection.Collection, error) {
	col, err := l.factory.DeployWithRounds(caller, p, rounds)
	if err != nil {
		return nil, err
	}

	row := &model.CollectionModel{
		Address:       col.Address().Hex(),
		Name:          p.Name,
		Symbol:        p.Symbol,
		BaseURI:       p.BaseURI,
		TotalCapacity: int64(p.TotalCapacity),
		OwnerAddress:  p.Owner.Hex(),
		Salt:          p.Salt.Hex(),
	}
	if err := l.db.Create(row).Error; err != nil {
		// 核心已部署成功，镜像写入失败只记日志，状态同步任务会补齐
		logger.Error("Failed to persist collection mirror %s: %v", col.Address().Hex(), err)
	}
	return col, nil
}

// GetCollections 获取集合列表
func (l *CollectionLogic) GetCollections(page, pageSize int) ([]model.CollectionModel, int64, error) {
	var rows []model.CollectionModel
	var total int64

	if err := l.db.Model(&model.CollectionModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("获取集合总数失败: %w", err)
	}
	offset := (page - 1) * pageSize
	if err := l.db.Order("id DESC").Offset(offset).Limit(pageSize).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("获取集合列表失败: %w", err)
	}
	return rows, total, nil
}

// GetCollection 获取集合详情，直接读取核心在线状态
func (l *CollectionLogic) GetCollection(addr common.Address) (*collection.Collection, error) {
	return l.factory.Get(addr)
}

// SetBaseURI 更新集合的元数据基础定位串
func (l *CollectionLogic) SetBaseURI(caller, addr common.Address, uri string) error {
	col, err := l.factory.Get(addr)
	if err != nil {
		return err
	}
	if err := col.SetBaseURI(caller, uri); err != nil {
		return err
	}

	if err := l.db.Model(&model.CollectionModel{}).
		Where("address = ?", addr.Hex()).
		Update("base_uri", uri).Error; err != nil {
		logger.Error("Failed to mirror base URI for %s: %v", addr.Hex(), err)
	}
	return nil
}

// Withdraw 提取集合累计款项
func (l *CollectionLogic) Withdraw(caller, addr common.Address) (uint64, error) {
	col, err := l.factory.Get(addr)
	if err != nil {
		return 0, err
	}
	amount, err := col.Withdraw(caller)
	if err != nil {
		return 0, err
	}

	if err := l.db.Model(&model.CollectionModel{}).
		Where("address = ?", addr.Hex()).
		Update("balance", 0).Error; err != nil {
		logger.Error("Failed to mirror withdrawal for %s: %v", addr.Hex(), err)
	}
	return amount, nil
}

// Rehydrate 启动时从数据库镜像重建核心状态
// 轮次与单地址计数从镜像行和发行记录回放，owner权限重新授予
func (l *CollectionLogic) Rehydrate() error {
	var cols []model.CollectionModel
	if err := l.db.Find(&cols).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("load collection mirrors: %w", err)
	}

	for _, row := range cols {
		if err := l.rehydrateOne(row); err != nil {
			return fmt.Errorf("rehydrate %s: %w", row.Address, err)
		}
	}
	if len(cols) > 0 {
		logger.Info("Rehydrated %d collections from database", len(cols))
	}
	return nil
}

func (l *CollectionLogic) rehydrateOne(row model.CollectionModel) error {
	addr := common.HexToAddress(row.Address)

	var roundRows []model.RoundModel
	if err := l.db.Where("collection_address = ?", row.Address).
		Order("round_index ASC").Find(&roundRows).Error; err != nil {
		return fmt.Errorf("load round mirrors: %w", err)
	}

	var records []model.IssueRecordModel
	if err := l.db.Where("collection_address = ?", row.Address).
		Order("item_id ASC").Find(&records).Error; err != nil {
		return fmt.Errorf("load issue records: %w", err)
	}

	snap, ledger, err := buildSnapshot(row, roundRows, records)
	if err != nil {
		return err
	}
	if _, err := l.factory.Restore(snap, ledger); err != nil {
		return err
	}

	// 权限注册表在内存中，重启后需要重新授予owner
	ownerAddr := common.HexToAddress(row.OwnerAddress)
	l.oracle.Grant(addr, ownerAddr, access.RoleAdmin)
	l.oracle.Grant(addr, ownerAddr, access.RoleMinter)
	return nil
}

// buildSnapshot 由镜像行与发行记录构造恢复快照
// 计数镜像是尽力而为的旁路，崩溃后可能落后于已落库的发行记录；
// 发行量以回放出的记录为准取较大值，条目号从最大条目号之后继续分配
func buildSnapshot(row model.CollectionModel, roundRows []model.RoundModel,
	records []model.IssueRecordModel) (collection.Snapshot, *registry.Ledger, error) {
	rounds := make([]collection.Round, len(roundRows))
	for i, rr := range roundRows {
		if int64(i) != rr.RoundIndex {
			return collection.Snapshot{}, nil,
				fmt.Errorf("round index gap at %d (got %d)", i, rr.RoundIndex)
		}
		rounds[i] = collection.Round{
			Start:         rr.StartTime,
			End:           rr.EndTime,
			UnitPrice:     uint64(rr.UnitPrice),
			Capacity:      uint64(rr.Capacity),
			Issued:        uint64(rr.Issued),
			AllowlistRoot: common.HexToHash(rr.AllowlistRoot),
			Gated:         rr.Gated,
			Active:        rr.Active,
			MaxPerWallet:  uint64(rr.MaxPerWallet),
		}
	}

	// 回放发行记录：重建所有权账本、单地址计数与每轮次发行量
	ledger := registry.NewLedger()
	wallets := make(map[collection.WalletKey]uint64)
	roundIssued := make(map[uint64]uint64)
	var maxItemID uint64
	for _, rec := range records {
		wallet := common.HexToAddress(rec.CallerAddress)
		itemID := uint64(rec.ItemId)
		if err := ledger.Mint(wallet, itemID); err != nil {
			return collection.Snapshot{}, nil, fmt.Errorf("replay item %d: %w", itemID, err)
		}
		if itemID > maxItemID {
			maxItemID = itemID
		}
		wallets[collection.WalletKey{RoundID: uint64(rec.RoundIndex), Wallet: wallet}]++
		roundIssued[uint64(rec.RoundIndex)]++
	}

	for id, issued := range roundIssued {
		if id < uint64(len(rounds)) && issued > rounds[id].Issued {
			rounds[id].Issued = issued
		}
	}

	// 条目号从1起连续分配，最大条目号即权威发行总量
	issuedTotal := uint64(row.IssuedTotal)
	if maxItemID > issuedTotal {
		issuedTotal = maxItemID
	}

	snap := collection.Snapshot{
		Address:       common.HexToAddress(row.Address),
		Name:          row.Name,
		Symbol:        row.Symbol,
		BaseURI:       row.BaseURI,
		TotalCapacity: uint64(row.TotalCapacity),
		IssuedTotal:   issuedTotal,
		Balance:       uint64(row.Balance),
		Rounds:        rounds,
		WalletIssued:  wallets,
	}
	return snap, ledger, nil
}
