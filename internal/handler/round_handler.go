package handler

import (
	"net/http"
	"strconv"

	"github.com/dilukangelosl/Nft-launchpad/internal/logic"
	"github.com/gin-gonic/gin"
)

// RoundHandler 轮次处理器
type RoundHandler struct {
	roundLogic *logic.RoundLogic
}

// NewRoundHandler 创建轮次处理器
func NewRoundHandler(roundLogic *logic.RoundLogic) *RoundHandler {
	return &RoundHandler{roundLogic: roundLogic}
}

// GetRounds 获取集合的轮次列表
func (h *RoundHandler) GetRounds(c *gin.Context) {
	addr, ok := parseAddress(c, c.Param("address"))
	if !ok {
		return
	}

	rounds, err := h.roundLogic.GetRounds(addr)
	if err != nil {
		CoreErrorResponse(c, err)
		return
	}

	out := make([]RoundResponse, len(rounds))
	for i, r := range rounds {
		out[i] = ToRoundResponse(uint64(i), r)
	}
	SuccessResponse(c, http.StatusOK, "获取轮次列表成功", gin.H{"rounds": out})
}

// GetRound 获取单个轮次
func (h *RoundHandler) GetRound(c *gin.Context) {
	addr, ok := parseAddress(c, c.Param("address"))
	if !ok {
		return
	}
	index, ok := parseRoundIndex(c)
	if !ok {
		return
	}

	round, err := h.roundLogic.GetRound(addr, index)
	if err != nil {
		CoreErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "获取轮次成功", ToRoundResponse(index, round))
}

// CreateRound 追加轮次
func (h *RoundHandler) CreateRound(c *gin.Context) {
	addr, ok := parseAddress(c, c.Param("address"))
	if !ok {
		return
	}
	var req RoundMutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	caller, ok := parseAddress(c, req.Caller)
	if !ok {
		return
	}

	roundID, err := h.roundLogic.CreateRound(caller, addr, req.Round.ToParams())
	if err != nil {
		CoreErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "轮次创建成功", gin.H{"roundId": roundID})
}

// UpdateRound 更新轮次
func (h *RoundHandler) UpdateRound(c *gin.Context) {
	addr, ok := parseAddress(c, c.Param("address"))
	if !ok {
		return
	}
	index, ok := parseRoundIndex(c)
	if !ok {
		return
	}
	var req RoundMutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	caller, ok := parseAddress(c, req.Caller)
	if !ok {
		return
	}

	if err := h.roundLogic.UpdateRound(caller, addr, index, req.Round.ToParams()); err != nil {
		CoreErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "轮次更新成功", nil)
}

// SetActive 暂停/恢复轮次
func (h *RoundHandler) SetActive(c *gin.Context) {
	addr, ok := parseAddress(c, c.Param("address"))
	if !ok {
		return
	}
	index, ok := parseRoundIndex(c)
	if !ok {
		return
	}
	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	caller, ok := parseAddress(c, req.Caller)
	if !ok {
		return
	}

	if err := h.roundLogic.SetRoundActive(caller, addr, index, *req.Active); err != nil {
		CoreErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "轮次状态更新成功", nil)
}

// parseRoundIndex 解析轮次下标参数
func parseRoundIndex(c *gin.Context) (uint64, bool) {
	index, err := strconv.ParseUint(c.Param("index"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的轮次下标")
		return 0, false
	}
	return index, true
}
