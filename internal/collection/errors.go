package collection

import "errors"

// 校验错误：参数在任何状态变更前被拒绝
var (
	ErrInvalidTimeWindow   = errors.New("invalid time window")
	ErrZeroCapacity        = errors.New("zero capacity")
	ErrCapacityBelowIssued = errors.New("capacity below issued")
	ErrZeroQuantity        = errors.New("zero quantity")
)

// 前置条件错误：发行时依赖状态的拒绝，每条对应一个独立的检查
var (
	ErrRoundNotFound       = errors.New("round not found")
	ErrRoundInactive       = errors.New("round inactive")
	ErrRoundNotStarted     = errors.New("round not started")
	ErrRoundEnded          = errors.New("round ended")
	ErrRoundCapacity       = errors.New("round capacity exceeded")
	ErrCollectionCapacity  = errors.New("collection capacity exceeded")
	ErrInsufficientPayment = errors.New("insufficient payment")
	ErrNotPermitted        = errors.New("not permitted")
	ErrWalletLimit         = errors.New("wallet limit exceeded")
)

// 权限与资源错误
var (
	ErrNotAuthorized = errors.New("caller lacks capability")
	ErrNoBalance     = errors.New("no balance")
)
