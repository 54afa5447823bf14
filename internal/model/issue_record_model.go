package model

import (
	"time"
)

// IssueRecordModel 发行记录模型，每个条目一条
type IssueRecordModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	CollectionAddress string `json:"collection_address" gorm:"index;not null"`
	RoundIndex        int64  `json:"round_index" gorm:"not null"`
	ItemId            int64  `json:"item_id" gorm:"index;not null"`
	CallerAddress     string `json:"caller_address" gorm:"index;not null"`
	UnitPrice         int64  `json:"unit_price" gorm:"default:0"`
}

// TableName 自定义表名
func (IssueRecordModel) TableName() string {
	return "issue_record"
}
