package model

import (
	"time"
)

// RoundModel 发行轮次镜像模型
type RoundModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 归属
	CollectionAddress string `json:"collection_address" gorm:"index:idx_round_collection,unique;not null"`
	RoundIndex        int64  `json:"round_index" gorm:"index:idx_round_collection,unique;not null"`

	// 窗口与价格
	StartTime time.Time `json:"start_time" gorm:"not null"`
	EndTime   time.Time `json:"end_time" gorm:"not null"`
	UnitPrice int64     `json:"unit_price" gorm:"default:0"`

	// 容量
	Capacity     int64 `json:"capacity" gorm:"not null"`
	Issued       int64 `json:"issued" gorm:"default:0"`
	MaxPerWallet int64 `json:"max_per_wallet" gorm:"default:0"`

	// 白名单
	AllowlistRoot string `json:"allowlist_root"`
	Gated         bool   `json:"gated" gorm:"default:false"`

	// 状态
	Active bool        `json:"active" gorm:"default:true"`
	Status RoundStatus `json:"status" gorm:"default:'pending'"`
}

// RoundStatus 轮次展示状态（由同步任务维护，仅用于列表展示）
type RoundStatus string

const (
	RoundStatusPending RoundStatus = "pending"  // 未到开始时间
	RoundStatusActive  RoundStatus = "active"   // 窗口内
	RoundStatusEnded   RoundStatus = "ended"    // 已过结束时间
	RoundStatusSoldOut RoundStatus = "sold_out" // 容量耗尽
	RoundStatusPaused  RoundStatus = "paused"   // 被管理员停用
)

// TableName 自定义表名
func (RoundModel) TableName() string {
	return "round"
}
