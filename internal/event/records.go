package event

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// RoundAction 轮次记录的动作类型
type RoundAction string

const (
	RoundActionCreated     RoundAction = "created"
	RoundActionUpdated     RoundAction = "updated"
	RoundActionActivated   RoundAction = "activated"
	RoundActionDeactivated RoundAction = "deactivated"
)

// DeployRecord 部署记录
type DeployRecord struct {
	Address       common.Address
	Owner         common.Address
	Name          string
	Symbol        string
	TotalCapacity uint64
	RoundCount    int
}

// RoundRecord 轮次创建/变更记录
type RoundRecord struct {
	Collection    common.Address
	RoundID       uint64
	Action        RoundAction
	Start         time.Time
	End           time.Time
	UnitPrice     uint64
	Capacity      uint64
	AllowlistRoot common.Hash
	Gated         bool
	Active        bool
	MaxPerWallet  uint64
}

// IssueRecord 发行记录，每铸造一个条目产生一条
type IssueRecord struct {
	Collection common.Address
	Caller     common.Address
	ItemID     uint64
	RoundID    uint64
	UnitPrice  uint64
}

// Emitter 记录发射器，核心状态机通过它对外发布可审计记录
type Emitter interface {
	EmitDeploy(DeployRecord)
	EmitRound(RoundRecord)
	EmitIssue(IssueRecord)
}

// Nop 空实现，供不关心记录的调用方使用
type Nop struct{}

func (Nop) EmitDeploy(DeployRecord) {}
func (Nop) EmitRound(RoundRecord)   {}
func (Nop) EmitIssue(IssueRecord)   {}
