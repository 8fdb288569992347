package leave

import (
	"context"
	"time"
)

// BalanceService computes leave balances as of a reference date.
type BalanceService interface {
	Calculate(ctx context.Context, employeeID string, asOf time.Time) (BalanceResponse, error)
}

// AdjustmentService converts leave days into payroll currency amounts.
type AdjustmentService interface {
	Compute(ctx context.Context, employeeID string, month, year int) (PayrollAdjustment, error)
}

// EncashmentService handles encashment submission and review.
type EncashmentService interface {
	Submit(ctx context.Context, req SubmitEncashmentRequest) (LeaveEncashmentRequest, error)
	Approve(ctx context.Context, id string, reviewedBy string) (LeaveEncashmentRequest, error)
	Reject(ctx context.Context, id string, reviewedBy string) (LeaveEncashmentRequest, error)
}

// YearEndService runs the year-end snapshot batch.
type YearEndService interface {
	Process(ctx context.Context, year int) (YearEndResult, error)
	Snapshots(ctx context.Context, employeeID string) ([]LeaveBalanceSnapshot, error)
}
