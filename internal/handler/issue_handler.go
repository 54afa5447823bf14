package handler

import (
	"net/http"
	"strconv"

	"github.com/dilukangelosl/Nft-launchpad/internal/logic"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

// IssueHandler 发行处理器
type IssueHandler struct {
	issueLogic *logic.IssueLogic
}

// NewIssueHandler 创建发行处理器
func NewIssueHandler(issueLogic *logic.IssueLogic) *IssueHandler {
	return &IssueHandler{issueLogic: issueLogic}
}

// Issue 发行条目
func (h *IssueHandler) Issue(c *gin.Context) {
	addr, ok := parseAddress(c, c.Param("address"))
	if !ok {
		return
	}
	var req IssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	caller, ok := parseAddress(c, req.Caller)
	if !ok {
		return
	}

	proof := make([]common.Hash, len(req.Proof))
	for i, p := range req.Proof {
		proof[i] = common.HexToHash(p)
	}

	itemIDs, err := h.issueLogic.Issue(caller, addr, req.RoundId, req.Quantity, proof, req.Payment)
	if err != nil {
		CoreErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "发行成功", gin.H{"itemIds": itemIDs})
}

// GetIssueRecords 获取集合发行记录
func (h *IssueHandler) GetIssueRecords(c *gin.Context) {
	addr, ok := parseAddress(c, c.Param("address"))
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	records, total, err := h.issueLogic.GetIssueRecords(addr, page, pageSize)
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
	SuccessResponse(c, http.StatusOK, "获取发行记录成功", gin.H{
		"records":    ToIssueRecordResponseList(records),
		"pagination": pagination,
	})
}

// GetWalletRecords 获取某地址在集合下的发行记录
func (h *IssueHandler) GetWalletRecords(c *gin.Context) {
	addr, ok := parseAddress(c, c.Param("address"))
	if !ok {
		return
	}
	wallet, ok := parseAddress(c, c.Param("wallet"))
	if !ok {
		return
	}

	records, err := h.issueLogic.GetWalletRecords(addr, wallet)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "获取地址发行记录成功", gin.H{
		"records": ToIssueRecordResponseList(records),
	})
}
