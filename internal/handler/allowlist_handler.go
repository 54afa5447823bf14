package handler

import (
	"net/http"

	"github.com/dilukangelosl/Nft-launchpad/internal/merkle"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

// AllowlistHandler 白名单工具处理器
// 与发行侧的校验使用同一套叶子派生与配对规则，线下构建的根可逐位复现
type AllowlistHandler struct{}

// NewAllowlistHandler 创建白名单工具处理器
func NewAllowlistHandler() *AllowlistHandler {
	return &AllowlistHandler{}
}

// BuildRoot 构建白名单根
func (h *AllowlistHandler) BuildRoot(c *gin.Context) {
	var req AllowlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	addrs, ok := parseAddressList(c, req.Addresses)
	if !ok {
		return
	}

	root := merkle.BuildRoot(addrs)
	SuccessResponse(c, http.StatusOK, "白名单根构建成功", gin.H{
		"root":  root.Hex(),
		"count": len(addrs),
	})
}

// BuildProof 为指定地址生成成员证明
func (h *AllowlistHandler) BuildProof(c *gin.Context) {
	var req AllowlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	addrs, ok := parseAddressList(c, req.Addresses)
	if !ok {
		return
	}
	claimant, ok := parseAddress(c, req.Claimant)
	if !ok {
		return
	}

	proof, found := merkle.BuildProof(addrs, claimant)
	if !found {
		ErrorResponse(c, http.StatusNotFound, "地址不在白名单中")
		return
	}

	hexProof := make([]string, len(proof))
	for i, p := range proof {
		hexProof[i] = p.Hex()
	}
	SuccessResponse(c, http.StatusOK, "证明生成成功", gin.H{
		"root":  merkle.BuildRoot(addrs).Hex(),
		"proof": hexProof,
	})
}

func parseAddressList(c *gin.Context, raw []string) ([]common.Address, bool) {
	addrs := make([]common.Address, len(raw))
	for i, s := range raw {
		var ok bool
		addrs[i], ok = parseAddress(c, s)
		if !ok {
			return nil, false
		}
	}
	return addrs, true
}
