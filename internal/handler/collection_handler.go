package handler

import (
	"net/http"
	"strconv"

	"github.com/dilukangelosl/Nft-launchpad/internal/collection"
	"github.com/dilukangelosl/Nft-launchpad/internal/factory"
	"github.com/dilukangelosl/Nft-launchpad/internal/logic"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

// CollectionHandler 集合处理器
type CollectionHandler struct {
	collectionLogic *logic.CollectionLogic
}

// NewCollectionHandler 创建集合处理器
func NewCollectionHandler(collectionLogic *logic.CollectionLogic) *CollectionHandler {
	return &CollectionHandler{collectionLogic: collectionLogic}
}

// ComputeAddress 预计算部署地址
func (h *CollectionHandler) ComputeAddress(c *gin.Context) {
	var req ComputeAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	owner, ok := parseAddress(c, req.Owner)
	if !ok {
		return
	}

	addr, err := h.collectionLogic.ComputeAddress(factory.Params{
		Name:          req.Name,
		Symbol:        req.Symbol,
		BaseURI:       req.BaseURI,
		TotalCapacity: req.TotalCapacity,
		Owner:         owner,
		Salt:          common.HexToHash(req.Salt),
	})
	if err != nil {
		CoreErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "地址计算成功", gin.H{"address": addr.Hex()})
}

// Deploy 部署集合
func (h *CollectionHandler) Deploy(c *gin.Context) {
	var req DeployRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	caller, ok := parseAddress(c, req.Caller)
	if !ok {
		return
	}
	owner, ok := parseAddress(c, req.Owner)
	if !ok {
		return
	}

	rounds := make([]collection.RoundParams, len(req.Rounds))
	for i, r := range req.Rounds {
		rounds[i] = r.ToParams()
	}

	col, err := h.collectionLogic.DeployCollection(caller, factory.Params{
		Name:          req.Name,
		Symbol:        req.Symbol,
		BaseURI:       req.BaseURI,
		TotalCapacity: req.TotalCapacity,
		Owner:         owner,
		Salt:          common.HexToHash(req.Salt),
	}, rounds)
	if err != nil {
		CoreErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "集合部署成功", ToCollectionResponse(col))
}

// GetCollections 获取集合列表
func (h *CollectionHandler) GetCollections(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	rows, total, err := h.collectionLogic.GetCollections(page, pageSize)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	pagination := Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	SuccessResponse(c, http.StatusOK, "获取集合列表成功", gin.H{
		"collections": ToCollectionSummaryList(rows),
		"pagination":  pagination,
	})
}

// GetCollection 获取集合详情
func (h *CollectionHandler) GetCollection(c *gin.Context) {
	addr, ok := parseAddress(c, c.Param("address"))
	if !ok {
		return
	}

	col, err := h.collectionLogic.GetCollection(addr)
	if err != nil {
		CoreErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "获取集合详情成功", ToCollectionResponse(col))
}

// SetBaseURI 更新元数据基础定位串
func (h *CollectionHandler) SetBaseURI(c *gin.Context) {
	addr, ok := parseAddress(c, c.Param("address"))
	if !ok {
		return
	}
	var req SetBaseURIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	caller, ok := parseAddress(c, req.Caller)
	if !ok {
		return
	}

	if err := h.collectionLogic.SetBaseURI(caller, addr, req.BaseURI); err != nil {
		CoreErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "更新成功", nil)
}

// Withdraw 提取集合累计款项
func (h *CollectionHandler) Withdraw(c *gin.Context) {
	addr, ok := parseAddress(c, c.Param("address"))
	if !ok {
		return
	}
	var req AdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	caller, ok := parseAddress(c, req.Caller)
	if !ok {
		return
	}

	amount, err := h.collectionLogic.Withdraw(caller, addr)
	if err != nil {
		CoreErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "提现成功", gin.H{"amount": amount})
}

// parseAddress 解析十六进制地址参数，非法时写出400响应
func parseAddress(c *gin.Context, s string) (common.Address, bool) {
	if !common.IsHexAddress(s) {
		ErrorResponse(c, http.StatusBadRequest, "无效的地址: "+s)
		return common.Address{}, false
	}
	return common.HexToAddress(s), true
}
