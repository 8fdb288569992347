package leave

import (
	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// BalanceResponse is the full calculate_balance result.
type BalanceResponse struct {
	EmployeeID    string                 `json:"employee_id"`
	EmployeeName  string                 `json:"employee_name"`
	PolicyName    string                 `json:"policy_name"`
	PolicyLevel   string                 `json:"policy_level"`
	AsOf          string                 `json:"as_of"`
	ServiceMonths int                    `json:"service_months"`
	Balance       map[string]TypeBalance `json:"balance"`
	PayrollImpact PayrollImpact          `json:"payroll_impact"`
}

// PayrollAdjustment is the compute_payroll_adjustment result consumed by the
// external payroll slip generator as earning/deduction lines.
type PayrollAdjustment struct {
	EmployeeID       string          `json:"employee_id"`
	Month            int             `json:"month"`
	Year             int             `json:"year"`
	LOPDays          decimal.Decimal `json:"lop_days"`
	LOPDeduction     decimal.Decimal `json:"lop_deduction"`
	EncashmentDays   decimal.Decimal `json:"encashment_days"`
	EncashmentAmount decimal.Decimal `json:"encashment_amount"`
	NetAdjustment    decimal.Decimal `json:"net_adjustment"`
}

type SubmitEncashmentRequest struct {
	EmployeeID string          `json:"employee_id"`
	LeaveType  string          `json:"leave_type"`
	Days       decimal.Decimal `json:"days"`
}

func (r *SubmitEncashmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type is required",
		})
	}
	if !r.Days.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "days",
			Message: "days must be greater than zero",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// YearEndError reports one employee's failure inside a batch run.
type YearEndError struct {
	EmployeeID string `json:"employee_id"`
	Error      string `json:"error"`
}

// YearEndResult summarizes a run_year_end_processing batch.
type YearEndResult struct {
	Year           int            `json:"year"`
	ProcessedCount int            `json:"processed_count"`
	Errors         []YearEndError `json:"errors"`
}
