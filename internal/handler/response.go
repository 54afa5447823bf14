package handler

import (
	"errors"
	"net/http"

	"github.com/dilukangelosl/Nft-launchpad/internal/collection"
	"github.com/dilukangelosl/Nft-launchpad/internal/factory"
	"github.com/gin-gonic/gin"
)

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// CoreErrorResponse 核心错误响应，按错误类别映射HTTP状态码
// 稳定的错误原因串原样透出，供调用方程序化判断
func CoreErrorResponse(c *gin.Context, err error) {
	c.JSON(statusFor(err), Response{
		Success: false,
		Message: err.Error(),
		Data:    nil,
	})
}

func statusFor(err error) int {
	switch {
	// 权限错误
	case errors.Is(err, collection.ErrNotAuthorized),
		errors.Is(err, factory.ErrNotDeployer):
		return http.StatusForbidden

	// 目标不存在
	case errors.Is(err, factory.ErrCollectionNotFound),
		errors.Is(err, collection.ErrRoundNotFound):
		return http.StatusNotFound

	// 资源冲突
	case errors.Is(err, factory.ErrAddressOccupied):
		return http.StatusConflict

	// 参数校验错误
	case errors.Is(err, collection.ErrInvalidTimeWindow),
		errors.Is(err, collection.ErrZeroCapacity),
		errors.Is(err, collection.ErrCapacityBelowIssued),
		errors.Is(err, collection.ErrZeroQuantity),
		errors.Is(err, factory.ErrZeroTotalCapacity),
		errors.Is(err, factory.ErrZeroOwner),
		errors.Is(err, factory.ErrEmptyRounds),
		errors.Is(err, factory.ErrEmptyName):
		return http.StatusBadRequest

	// 发行前置条件错误
	case errors.Is(err, collection.ErrRoundInactive),
		errors.Is(err, collection.ErrRoundNotStarted),
		errors.Is(err, collection.ErrRoundEnded),
		errors.Is(err, collection.ErrRoundCapacity),
		errors.Is(err, collection.ErrCollectionCapacity),
		errors.Is(err, collection.ErrInsufficientPayment),
		errors.Is(err, collection.ErrNotPermitted),
		errors.Is(err, collection.ErrWalletLimit),
		errors.Is(err, collection.ErrNoBalance):
		return http.StatusUnprocessableEntity

	default:
		return http.StatusInternalServerError
	}
}
