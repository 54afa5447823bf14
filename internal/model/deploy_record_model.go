package model

import (
	"time"
)

// DeployRecordModel 部署记录模型
type DeployRecordModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	Address       string `json:"address" gorm:"index;not null"`
	OwnerAddress  string `json:"owner_address" gorm:"not null"`
	Name          string `json:"name" gorm:"not null"`
	Symbol        string `json:"symbol" gorm:"not null"`
	TotalCapacity int64  `json:"total_capacity" gorm:"not null"`
	RoundCount    int64  `json:"round_count" gorm:"not null"`
}

// TableName 自定义表名
func (DeployRecordModel) TableName() string {
	return "deploy_record"
}
