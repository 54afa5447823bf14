package registry

import (
	"errors"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrItemExists   = errors.New("item already minted")
	ErrItemNotFound = errors.New("item not found")
	ErrZeroAddress  = errors.New("zero address")
	ErrNotOwner     = errors.New("not item owner")
)

// Ownership 所有权账本接口（标准NFT记账语义）
// 发行引擎只调用Mint，其余操作供外部流转使用
type Ownership interface {
	Mint(owner common.Address, itemID uint64) error
	OwnerOf(itemID uint64) (common.Address, error)
	BalanceOf(owner common.Address) uint64
	Transfer(from, to common.Address, itemID uint64) error
}

// Ledger 内存实现的所有权账本，每个集合持有一份
type Ledger struct {
	mu       sync.RWMutex
	owners   map[uint64]common.Address
	balances map[common.Address]uint64
}

// NewLedger 创建账本
func NewLedger() *Ledger {
	return &Ledger{
		owners:   make(map[uint64]common.Address),
		balances: make(map[common.Address]uint64),
	}
}

// Mint 铸造新条目
func (l *Ledger) Mint(owner common.Address, itemID uint64) error {
	if owner == (common.Address{}) {
		return ErrZeroAddress
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.owners[itemID]; exists {
		return ErrItemExists
	}
	l.owners[itemID] = owner
	l.balances[owner]++
	return nil
}

// OwnerOf 查询条目所有者
func (l *Ledger) OwnerOf(itemID uint64) (common.Address, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	owner, ok := l.owners[itemID]
	if !ok {
		return common.Address{}, ErrItemNotFound
	}
	return owner, nil
}

// BalanceOf 查询地址持有数量
func (l *Ledger) BalanceOf(owner common.Address) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[owner]
}

// Transfer 转移条目所有权
func (l *Ledger) Transfer(from, to common.Address, itemID uint64) error {
	if to == (common.Address{}) {
		return ErrZeroAddress
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	owner, ok := l.owners[itemID]
	if !ok {
		return ErrItemNotFound
	}
	if owner != from {
		return ErrNotOwner
	}
	l.owners[itemID] = to
	l.balances[from]--
	l.balances[to]++
	return nil
}
