package collection

import (
	"github.com/dilukangelosl/Nft-launchpad/internal/access"
	"github.com/dilukangelosl/Nft-launchpad/internal/registry"
	"github.com/ethereum/go-ethereum/common"
)

// Address 集合地址
func (c *Collection) Address() common.Address { return c.address }

// Name 集合名称
func (c *Collection) Name() string { return c.name }

// Symbol 集合符号
func (c *Collection) Symbol() string { return c.symbol }

// TotalCapacity 全局容量上限
func (c *Collection) TotalCapacity() uint64 { return c.totalCapacity }

// BaseURI 当前元数据基础定位串
func (c *Collection) BaseURI() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.baseURI
}

// IssuedTotal 跨轮次累计发行数
func (c *Collection) IssuedTotal() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.issuedTotal
}

// Balance 当前累计款项余额
func (c *Collection) Balance() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.balance
}

// Rounds 全部轮次的副本
func (c *Collection) Rounds() []Round {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Round, len(c.rounds))
	for i, r := range c.rounds {
		out[i] = *r
	}
	return out
}

// Round 指定轮次的副本
func (c *Collection) Round(roundID uint64) (Round, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, err := c.roundAt(roundID)
	if err != nil {
		return Round{}, err
	}
	return *r, nil
}

// WalletIssued 某地址在某轮次下的已发行数
func (c *Collection) WalletIssued(roundID uint64, wallet common.Address) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.walletIssued[WalletKey{RoundID: roundID, Wallet: wallet}]
}

// Items 底层所有权账本
func (c *Collection) Items() registry.Ownership {
	return c.items
}

// Snapshot 集合完整状态快照，用于持久化镜像与启动恢复
type Snapshot struct {
	Address       common.Address
	Name          string
	Symbol        string
	BaseURI       string
	TotalCapacity uint64
	IssuedTotal   uint64
	Balance       uint64
	Rounds        []Round
	WalletIssued  map[WalletKey]uint64
}

// Snapshot 导出当前状态
func (c *Collection) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	rounds := make([]Round, len(c.rounds))
	for i, r := range c.rounds {
		rounds[i] = *r
	}
	wallets := make(map[WalletKey]uint64, len(c.walletIssued))
	for k, v := range c.walletIssued {
		wallets[k] = v
	}
	return Snapshot{
		Address:       c.address,
		Name:          c.name,
		Symbol:        c.symbol,
		BaseURI:       c.baseURI,
		TotalCapacity: c.totalCapacity,
		IssuedTotal:   c.issuedTotal,
		Balance:       c.balance,
		Rounds:        rounds,
		WalletIssued:  wallets,
	}
}

// Restore 从快照重建集合（启动时从数据库恢复）
// 所有权账本由调用方预先回放好后传入
func Restore(snap Snapshot, oracle access.Oracle, items registry.Ownership, opts ...Option) *Collection {
	c := New(snap.Address, snap.Name, snap.Symbol, snap.BaseURI, snap.TotalCapacity,
		oracle, items, opts...)

	c.issuedTotal = snap.IssuedTotal
	c.balance = snap.Balance
	c.nextItemID = snap.IssuedTotal + 1
	for i := range snap.Rounds {
		r := snap.Rounds[i]
		c.rounds = append(c.rounds, &r)
	}
	for k, v := range snap.WalletIssued {
		c.walletIssued[k] = v
	}
	return c
}
