package collection

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Round 一个发行轮次
// 轮次只追加、永不删除，下标即永久轮次ID；停用是唯一的下架方式
type Round struct {
	Start         time.Time   // 窗口开始（含）
	End           time.Time   // 窗口结束（不含）
	UnitPrice     uint64      // 单价，链基础单位
	Capacity      uint64      // 本轮容量上限
	Issued        uint64      // 已发行数，单调不减
	AllowlistRoot common.Hash // 白名单根，零值表示开放
	Gated         bool        // 是否需要成员证明
	Active        bool        // 停用后发行一律拒绝
	MaxPerWallet  uint64      // 单地址限额，0表示不限
}

// RoundParams 创建/更新轮次的可变字段
type RoundParams struct {
	Start         time.Time
	End           time.Time
	UnitPrice     uint64
	Capacity      uint64
	AllowlistRoot common.Hash
	Gated         bool
	MaxPerWallet  uint64
}

// Validate 校验轮次参数，创建与更新使用同一套规则
func (p RoundParams) Validate() error {
	if !p.Start.Before(p.End) {
		return ErrInvalidTimeWindow
	}
	if p.Capacity == 0 {
		return ErrZeroCapacity
	}
	return nil
}
