package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is the read-only view of the directory record consumed by the
// leave engine. The directory itself is owned by another subsystem.
type Employee struct {
	ID           string
	EmployeeCode string
	FullName     string
	Department   string
	Designation  string

	// JoinDate may be missing for legacy imports. The balance calculator
	// falls back to a 12-month tenure assumption in that case.
	JoinDate *time.Time

	// Compensation inputs for payroll adjustments. MonthlySalary wins when
	// both are present; otherwise monthly gross is AnnualCTC / 12.
	AnnualCTC     *decimal.Decimal
	MonthlySalary *decimal.Decimal

	EmploymentStatus EmploymentStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

func (e Employee) IsActive() bool {
	return e.EmploymentStatus == EmploymentStatusActive
}

// MonthlyGross derives the monthly gross salary from the stored compensation
// fields. Returns zero when neither field is set; callers treat that as a
// zero-amount adjustment rather than an error.
func (e Employee) MonthlyGross() decimal.Decimal {
	if e.MonthlySalary != nil && !e.MonthlySalary.IsZero() {
		return *e.MonthlySalary
	}
	if e.AnnualCTC != nil {
		return e.AnnualCTC.Div(decimal.NewFromInt(12))
	}
	return decimal.Zero
}
