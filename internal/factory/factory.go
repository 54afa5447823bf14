package factory

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dilukangelosl/Nft-launchpad/internal/access"
	"github.com/dilukangelosl/Nft-launchpad/internal/collection"
	"github.com/dilukangelosl/Nft-launchpad/internal/event"
	"github.com/dilukangelosl/Nft-launchpad/internal/logger"
	"github.com/dilukangelosl/Nft-launchpad/internal/registry"
	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrNotDeployer        = errors.New("caller lacks deployer capability")
	ErrZeroTotalCapacity  = errors.New("zero total capacity")
	ErrZeroOwner          = errors.New("zero owner address")
	ErrEmptyRounds        = errors.New("empty round set")
	ErrAddressOccupied    = errors.New("address already occupied")
	ErrCollectionNotFound = errors.New("collection not found")
	ErrEmptyName          = errors.New("empty collection name")
)

// Factory 集合工厂
// 在确定性地址上构建集合并一次性完成权限交接：
// 部署、授予自身管理权、灌入初始轮次、移交owner、撤销自身权限，
// 任一步失败则整体回退，注册表不留痕迹
type Factory struct {
	mu          sync.RWMutex
	address     common.Address
	oracle      access.Oracle
	emitter     event.Emitter
	collections map[common.Address]*collection.Collection

	transfer collection.TransferFunc
	now      func() time.Time
}

// Option 工厂可选配置
type Option func(*Factory)

// WithEmitter 注入记录发射器，同时传递给所有新集合
func WithEmitter(e event.Emitter) Option {
	return func(f *Factory) { f.emitter = e }
}

// WithTransfer 注入提现转账钩子，传递给所有新集合
func WithTransfer(fn collection.TransferFunc) Option {
	return func(f *Factory) { f.transfer = fn }
}

// WithClock 注入时钟（测试用）
func WithClock(now func() time.Time) Option {
	return func(f *Factory) { f.now = now }
}

// New 创建工厂
func New(addr common.Address, oracle access.Oracle, opts ...Option) *Factory {
	f := &Factory{
		address:     addr,
		oracle:      oracle,
		emitter:     event.Nop{},
		collections: make(map[common.Address]*collection.Collection),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Address 工厂自身地址
func (f *Factory) Address() common.Address {
	return f.address
}

// ComputeAddress 以本工厂为部署者推导集合地址
func (f *Factory) ComputeAddress(p Params) (common.Address, error) {
	return ComputeAddress(f.address, p)
}

// DeployWithRounds 部署新集合并灌入初始轮次，整个调用是一个原子单元
func (f *Factory) DeployWithRounds(caller common.Address, p Params,
	rounds []collection.RoundParams) (*collection.Collection, error) {
	if !f.oracle.HasCapability(f.address, caller, access.RoleDeployer) {
		return nil, ErrNotDeployer
	}
	if err := validateParams(p); err != nil {
		return nil, err
	}
	if len(rounds) == 0 {
		return nil, ErrEmptyRounds
	}
	// 任何一条轮次非法，整个调用在创建任何轮次前中止
	for i, rp := range rounds {
		if err := rp.Validate(); err != nil {
			return nil, fmt.Errorf("round %d: %w", i, err)
		}
	}

	addr, err := ComputeAddress(f.address, p)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	// salt复用且参数相同时落在同一地址
	if _, occupied := f.collections[addr]; occupied {
		return nil, ErrAddressOccupied
	}

	opts := []collection.Option{collection.WithEmitter(f.emitter)}
	if f.transfer != nil {
		opts = append(opts, collection.WithTransfer(f.transfer))
	}
	if f.now != nil {
		opts = append(opts, collection.WithClock(f.now))
	}
	col := collection.New(addr, p.Name, p.Symbol, p.BaseURI, p.TotalCapacity,
		f.oracle, registry.NewLedger(), opts...)

	// 临时自授管理权以灌入轮次，结束前无条件撤销
	f.oracle.Grant(addr, f.address, access.RoleAdmin)
	for i, rp := range rounds {
		if _, err := col.CreateRound(f.address, rp); err != nil {
			f.oracle.Renounce(addr, f.address, access.RoleAdmin)
			return nil, fmt.Errorf("seed round %d: %w", i, err)
		}
	}

	f.oracle.Grant(addr, p.Owner, access.RoleAdmin)
	f.oracle.Grant(addr, p.Owner, access.RoleMinter)
	for _, role := range f.oracle.RolesOf(addr, f.address) {
		f.oracle.Renounce(addr, f.address, role)
	}

	f.collections[addr] = col

	f.emitter.EmitDeploy(event.DeployRecord{
		Address:       addr,
		Owner:         p.Owner,
		Name:          p.Name,
		Symbol:        p.Symbol,
		TotalCapacity: p.TotalCapacity,
		RoundCount:    len(rounds),
	})
	logger.Info("Deployed collection %s (%s) at %s with %d rounds, owner %s",
		p.Name, p.Symbol, addr.Hex(), len(rounds), p.Owner.Hex())

	return col, nil
}

// Get 按地址查找集合
func (f *Factory) Get(addr common.Address) (*collection.Collection, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	col, ok := f.collections[addr]
	if !ok {
		return nil, ErrCollectionNotFound
	}
	return col, nil
}

// List 全部集合，按地址排序保证遍历稳定
func (f *Factory) List() []*collection.Collection {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]*collection.Collection, 0, len(f.collections))
	for _, col := range f.collections {
		out = append(out, col)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Address().Hex() < out[j].Address().Hex()
	})
	return out
}

// Restore 以工厂自身的配线从快照重建集合并登记（仅启动恢复路径使用）
func (f *Factory) Restore(snap collection.Snapshot, items registry.Ownership) (*collection.Collection, error) {
	opts := []collection.Option{collection.WithEmitter(f.emitter)}
	if f.transfer != nil {
		opts = append(opts, collection.WithTransfer(f.transfer))
	}
	if f.now != nil {
		opts = append(opts, collection.WithClock(f.now))
	}
	col := collection.Restore(snap, f.oracle, items, opts...)

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, occupied := f.collections[col.Address()]; occupied {
		return nil, ErrAddressOccupied
	}
	f.collections[col.Address()] = col
	return col, nil
}

func validateParams(p Params) error {
	if p.Name == "" || p.Symbol == "" {
		return ErrEmptyName
	}
	if p.TotalCapacity == 0 {
		return ErrZeroTotalCapacity
	}
	if p.Owner == (common.Address{}) {
		return ErrZeroOwner
	}
	return nil
}
