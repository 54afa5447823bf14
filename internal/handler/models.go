package handler

import (
	"time"

	"github.com/dilukangelosl/Nft-launchpad/internal/collection"
	"github.com/dilukangelosl/Nft-launchpad/internal/merkle"
	"github.com/dilukangelosl/Nft-launchpad/internal/model"
	"github.com/ethereum/go-ethereum/common"
)

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// 分页信息结构
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"pageSize"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"totalPage"`
}

// 请求模型

// RoundRequest 轮次参数
type RoundRequest struct {
	StartTime     time.Time `json:"startTime" binding:"required"`
	EndTime       time.Time `json:"endTime" binding:"required"`
	UnitPrice     uint64    `json:"unitPrice"`
	Capacity      uint64    `json:"capacity" binding:"required"`
	AllowlistRoot string    `json:"allowlistRoot"`
	Gated         bool      `json:"gated"`
	MaxPerWallet  uint64    `json:"maxPerWallet"`
}

// ToParams 转换为核心轮次参数
func (r RoundRequest) ToParams() collection.RoundParams {
	return collection.RoundParams{
		Start:         r.StartTime,
		End:           r.EndTime,
		UnitPrice:     r.UnitPrice,
		Capacity:      r.Capacity,
		AllowlistRoot: common.HexToHash(r.AllowlistRoot),
		Gated:         r.Gated,
		MaxPerWallet:  r.MaxPerWallet,
	}
}

// ComputeAddressRequest 地址预计算请求
type ComputeAddressRequest struct {
	Name          string `json:"name" binding:"required"`
	Symbol        string `json:"symbol" binding:"required"`
	BaseURI       string `json:"baseUri"`
	TotalCapacity uint64 `json:"totalCapacity" binding:"required"`
	Owner         string `json:"owner" binding:"required"`
	Salt          string `json:"salt" binding:"required"`
}

// DeployRequest 部署请求
type DeployRequest struct {
	Caller        string         `json:"caller" binding:"required"`
	Name          string         `json:"name" binding:"required"`
	Symbol        string         `json:"symbol" binding:"required"`
	BaseURI       string         `json:"baseUri"`
	TotalCapacity uint64         `json:"totalCapacity" binding:"required"`
	Owner         string         `json:"owner" binding:"required"`
	Salt          string         `json:"salt" binding:"required"`
	Rounds        []RoundRequest `json:"rounds" binding:"required"`
}

// IssueRequest 发行请求
type IssueRequest struct {
	Caller   string   `json:"caller" binding:"required"`
	RoundId  uint64   `json:"roundId"`
	Quantity uint64   `json:"quantity" binding:"required"`
	Proof    []string `json:"proof"`
	Payment  uint64   `json:"payment"`
}

// AdminRequest 管理操作请求（带调用者身份）
type AdminRequest struct {
	Caller string `json:"caller" binding:"required"`
}

// SetBaseURIRequest 更新元数据定位串请求
type SetBaseURIRequest struct {
	Caller  string `json:"caller" binding:"required"`
	BaseURI string `json:"baseUri"`
}

// SetActiveRequest 暂停/恢复轮次请求
type SetActiveRequest struct {
	Caller string `json:"caller" binding:"required"`
	Active *bool  `json:"active" binding:"required"`
}

// RoundMutationRequest 追加/更新轮次请求
type RoundMutationRequest struct {
	Caller string       `json:"caller" binding:"required"`
	Round  RoundRequest `json:"round" binding:"required"`
}

// AllowlistRequest 白名单工具请求
type AllowlistRequest struct {
	Addresses []string `json:"addresses" binding:"required"`
	Claimant  string   `json:"claimant"`
}

// 响应模型

// RoundResponse 轮次响应
type RoundResponse struct {
	Index         uint64    `json:"index"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	UnitPrice     uint64    `json:"unitPrice"`
	Capacity      uint64    `json:"capacity"`
	Issued        uint64    `json:"issued"`
	AllowlistRoot string    `json:"allowlistRoot"`
	Gated         bool      `json:"gated"`
	Active        bool      `json:"active"`
	MaxPerWallet  uint64    `json:"maxPerWallet"`
}

// ToRoundResponse 由核心轮次构造响应
func ToRoundResponse(index uint64, r collection.Round) RoundResponse {
	root := ""
	if r.AllowlistRoot != merkle.OpenRoot {
		root = r.AllowlistRoot.Hex()
	}
	return RoundResponse{
		Index:         index,
		StartTime:     r.Start,
		EndTime:       r.End,
		UnitPrice:     r.UnitPrice,
		Capacity:      r.Capacity,
		Issued:        r.Issued,
		AllowlistRoot: root,
		Gated:         r.Gated,
		Active:        r.Active,
		MaxPerWallet:  r.MaxPerWallet,
	}
}

// CollectionResponse 集合响应
type CollectionResponse struct {
	Address       string          `json:"address"`
	Name          string          `json:"name"`
	Symbol        string          `json:"symbol"`
	BaseURI       string          `json:"baseUri"`
	TotalCapacity uint64          `json:"totalCapacity"`
	IssuedTotal   uint64          `json:"issuedTotal"`
	Balance       uint64          `json:"balance"`
	Rounds        []RoundResponse `json:"rounds"`
}

// ToCollectionResponse 由核心集合构造响应
func ToCollectionResponse(col *collection.Collection) CollectionResponse {
	rounds := col.Rounds()
	roundResponses := make([]RoundResponse, len(rounds))
	for i, r := range rounds {
		roundResponses[i] = ToRoundResponse(uint64(i), r)
	}
	return CollectionResponse{
		Address:       col.Address().Hex(),
		Name:          col.Name(),
		Symbol:        col.Symbol(),
		BaseURI:       col.BaseURI(),
		TotalCapacity: col.TotalCapacity(),
		IssuedTotal:   col.IssuedTotal(),
		Balance:       col.Balance(),
		Rounds:        roundResponses,
	}
}

// CollectionSummaryResponse 集合列表项（来自镜像行）
type CollectionSummaryResponse struct {
	Address       string    `json:"address"`
	Name          string    `json:"name"`
	Symbol        string    `json:"symbol"`
	TotalCapacity int64     `json:"totalCapacity"`
	IssuedTotal   int64     `json:"issuedTotal"`
	OwnerAddress  string    `json:"ownerAddress"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ToCollectionSummaryList 镜像行转列表响应
func ToCollectionSummaryList(rows []model.CollectionModel) []CollectionSummaryResponse {
	out := make([]CollectionSummaryResponse, len(rows))
	for i, row := range rows {
		out[i] = CollectionSummaryResponse{
			Address:       row.Address,
			Name:          row.Name,
			Symbol:        row.Symbol,
			TotalCapacity: row.TotalCapacity,
			IssuedTotal:   row.IssuedTotal,
			OwnerAddress:  row.OwnerAddress,
			CreatedAt:     row.CreatedAt,
		}
	}
	return out
}

// IssueRecordResponse 发行记录响应
type IssueRecordResponse struct {
	ItemId     int64     `json:"itemId"`
	RoundIndex int64     `json:"roundIndex"`
	Caller     string    `json:"caller"`
	UnitPrice  int64     `json:"unitPrice"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToIssueRecordResponseList 发行记录行转响应
func ToIssueRecordResponseList(records []model.IssueRecordModel) []IssueRecordResponse {
	out := make([]IssueRecordResponse, len(records))
	for i, rec := range records {
		out[i] = IssueRecordResponse{
			ItemId:     rec.ItemId,
			RoundIndex: rec.RoundIndex,
			Caller:     rec.CallerAddress,
			UnitPrice:  rec.UnitPrice,
			CreatedAt:  rec.CreatedAt,
		}
	}
	return out
}
