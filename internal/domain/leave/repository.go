package leave

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LeaveRequestRepository - read-only interface over leave_requests. The
// engine derives usage exclusively from approved rows; it never writes here.
type LeaveRequestRepository interface {
	// SumApprovedDaysFrom totals the days of approved requests of one leave
	// type whose start_date is on or after from.
	SumApprovedDaysFrom(ctx context.Context, employeeID, leaveType string, from time.Time) (decimal.Decimal, error)

	// SumApprovedDaysByTypes totals approved days across several leave-type
	// keys with start_date in [from, to).
	SumApprovedDaysByTypes(ctx context.Context, employeeID string, leaveTypes []string, from, to time.Time) (decimal.Decimal, error)
}

// SnapshotRepository - interface for leave_balance_snapshots table
type SnapshotRepository interface {
	Upsert(ctx context.Context, snapshot LeaveBalanceSnapshot) (LeaveBalanceSnapshot, error)
	GetByEmployeeYear(ctx context.Context, employeeID string, year int) (LeaveBalanceSnapshot, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveBalanceSnapshot, error)
}

// EncashmentRepository - interface for leave_encashment_requests table
type EncashmentRepository interface {
	Create(ctx context.Context, req LeaveEncashmentRequest) (LeaveEncashmentRequest, error)
	GetByID(ctx context.Context, id string) (LeaveEncashmentRequest, error)
	UpdateStatus(ctx context.Context, id string, status EncashmentStatus, amount *decimal.Decimal, reviewedBy *string) error
	SumApprovedDays(ctx context.Context, employeeID string, month, year int) (decimal.Decimal, error)
}
