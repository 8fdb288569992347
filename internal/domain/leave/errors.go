package leave

import "errors"

var (
	ErrInvalidDateRange              = errors.New("invalid or inverted date range")
	ErrInsufficientEncashableBalance = errors.New("insufficient encashable balance")
	ErrEncashmentNotFound            = errors.New("encashment request not found")
	ErrEncashmentAlreadyProcessed    = errors.New("encashment request already processed")
	ErrSnapshotNotFound              = errors.New("leave balance snapshot not found")
	ErrUnknownLeaveType              = errors.New("leave type not configured in effective policy")
)
