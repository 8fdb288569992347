package leave

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending   LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved  LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected  LeaveRequestStatus = "rejected"
	LeaveRequestStatusWithdrawn LeaveRequestStatus = "withdrawn"
)

// IsTerminal reports whether no further status transition is allowed.
func (s LeaveRequestStatus) IsTerminal() bool {
	return s == LeaveRequestStatusApproved ||
		s == LeaveRequestStatusRejected ||
		s == LeaveRequestStatusWithdrawn
}

// LeaveRequest entity. The engine consumes these read-only; only approved
// requests count toward usage.
type LeaveRequest struct {
	ID         string
	EmployeeID string
	LeaveType  string

	StartDate time.Time
	EndDate   time.Time
	Days      decimal.Decimal // half-days supported (0.5 granularity)

	Status LeaveRequestStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LOPLeaveTypes are the request leave-type keys that count as unpaid absence
// for payroll deduction purposes.
var LOPLeaveTypes = []string{"loss_of_pay", "lop", "unpaid", "leave_without_pay"}

// TypeBalance is the computed state of one leave type at a reference date.
type TypeBalance struct {
	EntitledYTD    decimal.Decimal `json:"entitled_ytd"`
	CarriedForward decimal.Decimal `json:"carried_forward"`
	TotalEntitled  decimal.Decimal `json:"total_entitled"`
	Used           decimal.Decimal `json:"used"`
	Available      decimal.Decimal `json:"available"`
	LOPDays        decimal.Decimal `json:"lop_days"`
	Encashable     decimal.Decimal `json:"encashable"`
}

// PayrollImpact aggregates the day counts payroll cares about.
type PayrollImpact struct {
	LOPDays        decimal.Decimal `json:"lop_days"`
	EncashableDays decimal.Decimal `json:"encashable_days"`
}

// TypeBalances is stored as JSONB inside snapshots.
type TypeBalances map[string]TypeBalance

func (b TypeBalances) Value() (driver.Value, error) {
	if len(b) == 0 {
		return nil, nil
	}
	return json.Marshal(b)
}

func (b *TypeBalances) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan TypeBalances: invalid type")
	}
	return json.Unmarshal(bytes, b)
}

// LeaveBalanceSnapshot freezes an employee's year-end balances. One row per
// (employee_id, year); year-end processing upserts, never duplicates.
type LeaveBalanceSnapshot struct {
	ID         string
	EmployeeID string
	Year       int

	Balances      TypeBalances
	PayrollImpact PayrollImpact

	PolicyName  string
	PolicyLevel string

	ProcessedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type EncashmentStatus string

const (
	EncashmentStatusPending  EncashmentStatus = "pending"
	EncashmentStatusApproved EncashmentStatus = "approved"
	EncashmentStatusRejected EncashmentStatus = "rejected"
)

// LeaveEncashmentRequest converts unused leave days into a cash payment.
// Amount is computed at approval time from the effective policy's formula.
type LeaveEncashmentRequest struct {
	ID         string
	EmployeeID string
	LeaveType  string
	Days       decimal.Decimal
	Month      int
	Year       int

	Status EncashmentStatus
	Amount *decimal.Decimal

	ReviewedBy *string
	ReviewedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
