package model

import (
	"time"
)

// CollectionModel 集合镜像模型
// 核心状态机的持久化镜像，供查询与启动恢复使用
type CollectionModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 身份信息
	Address string `json:"address" gorm:"uniqueIndex;not null"`
	Name    string `json:"name" gorm:"not null"`
	Symbol  string `json:"symbol" gorm:"not null"`
	BaseURI string `json:"base_uri"`

	// 容量信息
	TotalCapacity int64 `json:"total_capacity" gorm:"not null"`
	IssuedTotal   int64 `json:"issued_total" gorm:"default:0"`

	// 资金信息
	Balance int64 `json:"balance" gorm:"default:0"`

	// 所有者与部署参数
	OwnerAddress string `json:"owner_address" gorm:"not null"`
	Salt         string `json:"salt"`
}

// TableName 自定义表名
func (CollectionModel) TableName() string {
	return "collection"
}
