package factory

import (
	"sync"
	"testing"
	"time"

	"github.com/dilukangelosl/Nft-launchpad/internal/access"
	"github.com/dilukangelosl/Nft-launchpad/internal/collection"
	"github.com/dilukangelosl/Nft-launchpad/internal/event"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	deployer = common.HexToAddress("0x00000000000000000000000000000000000000d1")
	owner    = common.HexToAddress("0x00000000000000000000000000000000000000ee")
	outsider = common.HexToAddress("0x0000000000000000000000000000000000000099")
)

// captureEmitter 记录捕获器
type captureEmitter struct {
	mu      sync.Mutex
	deploys []event.DeployRecord
	rounds  []event.RoundRecord
	issues  []event.IssueRecord
}

func (e *captureEmitter) EmitDeploy(r event.DeployRecord) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.deploys = append(e.deploys, r)
}

func (e *captureEmitter) EmitRound(r event.RoundRecord) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rounds = append(e.rounds, r)
}

func (e *captureEmitter) EmitIssue(r event.IssueRecord) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.issues = append(e.issues, r)
}

func newTestFactory(t *testing.T) (*Factory, *access.Registry, *captureEmitter) {
	t.Helper()
	oracle := access.NewRegistry()
	oracle.Grant(factoryAddr, deployer, access.RoleDeployer)
	emitter := &captureEmitter{}
	f := New(factoryAddr, oracle, WithEmitter(emitter))
	return f, oracle, emitter
}

func seedRounds(n int) []collection.RoundParams {
	now := time.Now()
	rounds := make([]collection.RoundParams, n)
	for i := range rounds {
		rounds[i] = collection.RoundParams{
			Start:     now.Add(time.Duration(i) * time.Hour),
			End:       now.Add(time.Duration(i+1) * time.Hour),
			UnitPrice: uint64(i+1) * 10,
			Capacity:  100,
		}
	}
	return rounds
}

func TestDeployWithRounds(t *testing.T) {
	f, oracle, emitter := newTestFactory(t)
	p := baseParams()

	expected, err := f.ComputeAddress(p)
	require.NoError(t, err)

	col, err := f.DeployWithRounds(deployer, p, seedRounds(3))
	require.NoError(t, err)

	// 实际地址与预先计算一致
	assert.Equal(t, expected, col.Address())
	assert.Equal(t, p.Name, col.Name())
	assert.Equal(t, p.Symbol, col.Symbol())
	assert.Equal(t, p.TotalCapacity, col.TotalCapacity())

	// 轮次按数组顺序落在0..N-1
	rounds := col.Rounds()
	require.Len(t, rounds, 3)
	for i, r := range rounds {
		assert.Equal(t, uint64(i+1)*10, r.UnitPrice)
		assert.True(t, r.Active)
	}

	// owner获得管理与铸造权限
	assert.True(t, oracle.HasCapability(expected, owner, access.RoleAdmin))
	assert.True(t, oracle.HasCapability(expected, owner, access.RoleMinter))
	// 工厂不保留任何残余权限
	assert.Empty(t, oracle.RolesOf(expected, factoryAddr))

	// 部署记录
	require.Len(t, emitter.deploys, 1)
	record := emitter.deploys[0]
	assert.Equal(t, expected, record.Address)
	assert.Equal(t, owner, record.Owner)
	assert.Equal(t, 3, record.RoundCount)
	// 每条seed轮次各有一条创建记录
	assert.Len(t, emitter.rounds, 3)

	// 注册表可查
	got, err := f.Get(expected)
	require.NoError(t, err)
	assert.Same(t, col, got)
	assert.Len(t, f.List(), 1)
}

func TestDeployRequiresDeployerCapability(t *testing.T) {
	f, _, _ := newTestFactory(t)

	_, err := f.DeployWithRounds(outsider, baseParams(), seedRounds(1))
	assert.ErrorIs(t, err, ErrNotDeployer)
	assert.Empty(t, f.List())
}

func TestDeployValidation(t *testing.T) {
	f, _, _ := newTestFactory(t)

	p := baseParams()
	p.TotalCapacity = 0
	_, err := f.DeployWithRounds(deployer, p, seedRounds(1))
	assert.ErrorIs(t, err, ErrZeroTotalCapacity)

	p = baseParams()
	p.Owner = common.Address{}
	_, err = f.DeployWithRounds(deployer, p, seedRounds(1))
	assert.ErrorIs(t, err, ErrZeroOwner)

	p = baseParams()
	p.Name = ""
	_, err = f.DeployWithRounds(deployer, p, seedRounds(1))
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = f.DeployWithRounds(deployer, baseParams(), nil)
	assert.ErrorIs(t, err, ErrEmptyRounds)

	assert.Empty(t, f.List())
}

func TestDeployMalformedRoundAbortsAll(t *testing.T) {
	f, oracle, emitter := newTestFactory(t)

	rounds := seedRounds(3)
	rounds[2].Capacity = 0 // 最后一条非法

	p := baseParams()
	_, err := f.DeployWithRounds(deployer, p, rounds)
	assert.ErrorIs(t, err, collection.ErrZeroCapacity)

	// 整体回退：无集合注册、无部署记录、无轮次记录、无权限残留
	assert.Empty(t, f.List())
	assert.Empty(t, emitter.deploys)
	assert.Empty(t, emitter.rounds)
	addr, err := f.ComputeAddress(p)
	require.NoError(t, err)
	assert.Empty(t, oracle.RolesOf(addr, factoryAddr))
	assert.Empty(t, oracle.RolesOf(addr, owner))
}

func TestDeploySaltReuseCollides(t *testing.T) {
	f, _, _ := newTestFactory(t)
	p := baseParams()

	_, err := f.DeployWithRounds(deployer, p, seedRounds(1))
	require.NoError(t, err)

	// 相同参数相同salt：地址被占用，整体中止
	_, err = f.DeployWithRounds(deployer, p, seedRounds(1))
	assert.ErrorIs(t, err, ErrAddressOccupied)
	assert.Len(t, f.List(), 1)

	// 换salt即可
	p.Salt = common.HexToHash("0xbeef")
	_, err = f.DeployWithRounds(deployer, p, seedRounds(1))
	assert.NoError(t, err)
	assert.Len(t, f.List(), 2)
}

func TestOwnerCanManageDeployedCollection(t *testing.T) {
	f, _, _ := newTestFactory(t)

	col, err := f.DeployWithRounds(deployer, baseParams(), seedRounds(1))
	require.NoError(t, err)

	// 移交后owner可以直接管理
	_, err = col.CreateRound(owner, collection.RoundParams{
		Start: time.Now(), End: time.Now().Add(time.Hour), Capacity: 5,
	})
	assert.NoError(t, err)

	// 工厂自身已无权限
	_, err = col.CreateRound(factoryAddr, collection.RoundParams{
		Start: time.Now(), End: time.Now().Add(time.Hour), Capacity: 5,
	})
	assert.ErrorIs(t, err, collection.ErrNotAuthorized)
}

func TestGetUnknownCollection(t *testing.T) {
	f, _, _ := newTestFactory(t)
	_, err := f.Get(common.HexToAddress("0x1234"))
	assert.ErrorIs(t, err, ErrCollectionNotFound)
}
