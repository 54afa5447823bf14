package collection

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/dilukangelosl/Nft-launchpad/internal/access"
	"github.com/dilukangelosl/Nft-launchpad/internal/event"
	"github.com/dilukangelosl/Nft-launchpad/internal/merkle"
	"github.com/dilukangelosl/Nft-launchpad/internal/registry"
	"github.com/ethereum/go-ethereum/common"
)

// TransferFunc 提现时的资金转移钩子，返回错误表示收款方拒绝
type TransferFunc func(to common.Address, amount uint64) error

// WalletKey 按轮次、按地址的发行计数键
type WalletKey struct {
	RoundID uint64
	Wallet  common.Address
}

// Collection 一个已部署的发行集合
// 单把互斥锁使每个公开操作成为原子单元：检查和计数更新在同一临界区内完成，
// 并发请求不可能联合越过容量上限
type Collection struct {
	mu sync.Mutex

	address       common.Address
	name          string // 构造后不可变
	symbol        string // 构造后不可变
	baseURI       string
	totalCapacity uint64
	issuedTotal   uint64
	rounds        []*Round
	walletIssued  map[WalletKey]uint64
	balance       uint64
	nextItemID    uint64 // 条目ID从1开始顺序分配

	oracle   access.Oracle
	items    registry.Ownership
	emitter  event.Emitter
	transfer TransferFunc
	now      func() time.Time
}

// Option 集合可选配置
type Option func(*Collection)

// WithClock 注入时钟（测试用）
func WithClock(now func() time.Time) Option {
	return func(c *Collection) { c.now = now }
}

// WithTransfer 注入提现转账钩子
func WithTransfer(fn TransferFunc) Option {
	return func(c *Collection) { c.transfer = fn }
}

// WithEmitter 注入记录发射器
func WithEmitter(e event.Emitter) Option {
	return func(c *Collection) { c.emitter = e }
}

// New 构造集合，初始不含任何轮次
func New(addr common.Address, name, symbol, baseURI string, totalCapacity uint64,
	oracle access.Oracle, items registry.Ownership, opts ...Option) *Collection {
	c := &Collection{
		address:       addr,
		name:          name,
		symbol:        symbol,
		baseURI:       baseURI,
		totalCapacity: totalCapacity,
		walletIssued:  make(map[WalletKey]uint64),
		nextItemID:    1,
		oracle:        oracle,
		items:         items,
		emitter:       event.Nop{},
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// requireAdmin 管理权限守卫，所有admin操作统一走这里
func (c *Collection) requireAdmin(caller common.Address) error {
	if !c.oracle.HasCapability(c.address, caller, access.RoleAdmin) {
		return ErrNotAuthorized
	}
	return nil
}

// CreateRound 追加新轮次，返回其永久轮次ID
func (c *Collection) CreateRound(caller common.Address, params RoundParams) (uint64, error) {
	if err := c.requireAdmin(caller); err != nil {
		return 0, err
	}
	if err := params.Validate(); err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	round := &Round{
		Start:         params.Start,
		End:           params.End,
		UnitPrice:     params.UnitPrice,
		Capacity:      params.Capacity,
		AllowlistRoot: params.AllowlistRoot,
		Gated:         params.Gated,
		Active:        true,
		MaxPerWallet:  params.MaxPerWallet,
	}
	c.rounds = append(c.rounds, round)
	roundID := uint64(len(c.rounds) - 1)

	c.emitter.EmitRound(c.roundRecord(roundID, round, event.RoundActionCreated))
	return roundID, nil
}

// UpdateRound 原地覆盖轮次的可变字段，Issued不受影响
// 仅允许更新仍在激活状态的轮次；容量不得缩到已发行数以下
func (c *Collection) UpdateRound(caller common.Address, roundID uint64, params RoundParams) error {
	if err := c.requireAdmin(caller); err != nil {
		return err
	}
	if err := params.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	round, err := c.roundAt(roundID)
	if err != nil {
		return err
	}
	if !round.Active {
		return ErrRoundInactive
	}
	if params.Capacity < round.Issued {
		return ErrCapacityBelowIssued
	}

	round.Start = params.Start
	round.End = params.End
	round.UnitPrice = params.UnitPrice
	round.Capacity = params.Capacity
	round.AllowlistRoot = params.AllowlistRoot
	round.Gated = params.Gated
	round.MaxPerWallet = params.MaxPerWallet

	c.emitter.EmitRound(c.roundRecord(roundID, round, event.RoundActionUpdated))
	return nil
}

// SetRoundActive 暂停/恢复轮次，这也是唯一的下架方式
func (c *Collection) SetRoundActive(caller common.Address, roundID uint64, active bool) error {
	if err := c.requireAdmin(caller); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	round, err := c.roundAt(roundID)
	if err != nil {
		return err
	}
	round.Active = active

	action := event.RoundActionDeactivated
	if active {
		action = event.RoundActionActivated
	}
	c.emitter.EmitRound(c.roundRecord(roundID, round, action))
	return nil
}

// Issue 对指定轮次发行quantity个条目
// 检查按固定顺序执行，各自携带独立错误；全部通过后检查与计数更新
// 在同一临界区内生效，失败时无任何可见痕迹
func (c *Collection) Issue(caller common.Address, roundID uint64, quantity uint64,
	proof []common.Hash, payment uint64) ([]uint64, error) {
	if quantity == 0 {
		return nil, ErrZeroQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	round, err := c.roundAt(roundID)
	if err != nil {
		return nil, err
	}
	if !round.Active {
		return nil, ErrRoundInactive
	}

	now := c.now()
	if now.Before(round.Start) {
		return nil, ErrRoundNotStarted
	}
	// 窗口为[start, end)：恰好start有效，恰好end无效
	if !now.Before(round.End) {
		return nil, ErrRoundEnded
	}

	// 余量用减法比较，加法在uint64上会回绕
	if quantity > round.Capacity-round.Issued {
		return nil, ErrRoundCapacity
	}
	if quantity > c.totalCapacity-c.issuedTotal {
		return nil, ErrCollectionCapacity
	}
	// 总价先查乘法是否溢出：溢出的订单必然付不起
	if round.UnitPrice != 0 && quantity > math.MaxUint64/round.UnitPrice {
		return nil, ErrInsufficientPayment
	}
	if payment < round.UnitPrice*quantity {
		return nil, ErrInsufficientPayment
	}
	if round.Gated && !merkle.Verify(proof, round.AllowlistRoot, caller) {
		return nil, ErrNotPermitted
	}

	key := WalletKey{RoundID: roundID, Wallet: caller}
	if round.MaxPerWallet > 0 {
		used := c.walletIssued[key]
		if used >= round.MaxPerWallet || quantity > round.MaxPerWallet-used {
			return nil, ErrWalletLimit
		}
	}

	// 条目ID在锁内单调分配，Mint不可能撞ID
	itemIDs := make([]uint64, 0, quantity)
	for i := uint64(0); i < quantity; i++ {
		itemID := c.nextItemID + i
		if err := c.items.Mint(caller, itemID); err != nil {
			return nil, fmt.Errorf("mint item %d: %w", itemID, err)
		}
		itemIDs = append(itemIDs, itemID)
	}

	c.nextItemID += quantity
	round.Issued += quantity
	c.issuedTotal += quantity
	c.walletIssued[key] += quantity
	// 超额支付一并留存，不退还
	c.balance += payment

	for _, itemID := range itemIDs {
		c.emitter.EmitIssue(event.IssueRecord{
			Collection: c.address,
			Caller:     caller,
			ItemID:     itemID,
			RoundID:    roundID,
			UnitPrice:  round.UnitPrice,
		})
	}
	return itemIDs, nil
}

// SetBaseURI 覆盖元数据基础定位串，无校验
func (c *Collection) SetBaseURI(caller common.Address, uri string) error {
	if err := c.requireAdmin(caller); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURI = uri
	return nil
}

// Withdraw 提取全部累计款项到调用者
// 转账被拒绝时余额保持不变
func (c *Collection) Withdraw(caller common.Address) (uint64, error) {
	if err := c.requireAdmin(caller); err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.balance == 0 {
		return 0, ErrNoBalance
	}
	amount := c.balance
	if c.transfer != nil {
		if err := c.transfer(caller, amount); err != nil {
			return 0, fmt.Errorf("transfer rejected: %w", err)
		}
	}
	c.balance = 0
	return amount, nil
}

// roundAt 需持锁调用
func (c *Collection) roundAt(roundID uint64) (*Round, error) {
	if roundID >= uint64(len(c.rounds)) {
		return nil, ErrRoundNotFound
	}
	return c.rounds[roundID], nil
}

// roundRecord 需持锁调用
func (c *Collection) roundRecord(roundID uint64, round *Round, action event.RoundAction) event.RoundRecord {
	return event.RoundRecord{
		Collection:    c.address,
		RoundID:       roundID,
		Action:        action,
		Start:         round.Start,
		End:           round.End,
		UnitPrice:     round.UnitPrice,
		Capacity:      round.Capacity,
		AllowlistRoot: round.AllowlistRoot,
		Gated:         round.Gated,
		Active:        round.Active,
		MaxPerWallet:  round.MaxPerWallet,
	}
}
