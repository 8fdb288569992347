package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/domain/employee"
	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/domain/leave"
	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/domain/policy"
	"github.com/shopspring/decimal"
)

// Rates are the salary-derivation settings for day-to-currency conversion.
// Basic pay is assumed to be a fixed ratio of monthly gross, and per-day
// amounts use a fixed divisor rather than the calendar month length, matching
// the payroll team's slip conventions.
type Rates struct {
	BasicSalaryRatio    decimal.Decimal
	WorkingDaysPerMonth decimal.Decimal
}

func DefaultRates() Rates {
	return Rates{
		BasicSalaryRatio:    decimal.NewFromFloat(0.4),
		WorkingDaysPerMonth: decimal.NewFromInt(30),
	}
}

type AdjustmentComputer struct {
	resolver    policy.PolicyResolver
	employees   employee.EmployeeRepository
	requests    leave.LeaveRequestRepository
	encashments leave.EncashmentRepository
	rates       Rates
}

func NewAdjustmentComputer(
	resolver policy.PolicyResolver,
	employees employee.EmployeeRepository,
	requests leave.LeaveRequestRepository,
	encashments leave.EncashmentRepository,
	rates Rates,
) *AdjustmentComputer {
	if rates.WorkingDaysPerMonth.IsZero() {
		rates = DefaultRates()
	}
	return &AdjustmentComputer{
		resolver:    resolver,
		employees:   employees,
		requests:    requests,
		encashments: encashments,
		rates:       rates,
	}
}

// Compute derives the leave-driven payroll adjustment for one employee and
// month. LOP days come from approved unpaid-type requests inside the month;
// encashment days from approved encashment requests booked against it. The
// caller applies the result as earning/deduction lines; nothing is written
// here.
func (c *AdjustmentComputer) Compute(ctx context.Context, employeeID string, month, year int) (leave.PayrollAdjustment, error) {
	if month < 1 || month > 12 {
		return leave.PayrollAdjustment{}, leave.ErrInvalidDateRange
	}

	emp, err := c.employees.GetByID(ctx, employeeID)
	if err != nil {
		return leave.PayrollAdjustment{}, err
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	resolved, err := c.resolver.Resolve(ctx, emp, monthEnd.Add(-time.Second))
	if err != nil {
		return leave.PayrollAdjustment{}, err
	}
	integration := resolved.Policy.PayrollIntegration

	monthlyGross := emp.MonthlyGross()
	perDayGross := monthlyGross.Div(c.rates.WorkingDaysPerMonth).Round(2)
	perDayBasic := monthlyGross.Mul(c.rates.BasicSalaryRatio).Div(c.rates.WorkingDaysPerMonth).Round(2)

	lopDays, err := c.requests.SumApprovedDaysByTypes(ctx, employeeID, leave.LOPLeaveTypes, monthStart, monthEnd)
	if err != nil {
		return leave.PayrollAdjustment{}, fmt.Errorf("failed to sum unpaid leave days: %w", err)
	}
	lopDays = lopDays.Round(2)
	lopDeduction := lopDays.Mul(c.perDayRate(integration.LOPDeductionFormula, perDayBasic, perDayGross, integration.FixedAmountPerDay)).Round(2)

	encashmentDays, err := c.encashments.SumApprovedDays(ctx, employeeID, month, year)
	if err != nil {
		return leave.PayrollAdjustment{}, fmt.Errorf("failed to sum encashment days: %w", err)
	}
	encashmentDays = encashmentDays.Round(2)
	encashmentAmount := encashmentDays.Mul(c.perDayRate(integration.EncashmentFormula, perDayBasic, perDayGross, integration.FixedAmountPerDay)).Round(2)

	return leave.PayrollAdjustment{
		EmployeeID:       employeeID,
		Month:            month,
		Year:             year,
		LOPDays:          lopDays,
		LOPDeduction:     lopDeduction,
		EncashmentDays:   encashmentDays,
		EncashmentAmount: encashmentAmount,
		NetAdjustment:    encashmentAmount.Sub(lopDeduction).Round(2),
	}, nil
}

// DayRate exposes the per-day conversion for a formula; the encashment
// approval flow uses it to price requests with the same arithmetic as the
// monthly computation.
func (c *AdjustmentComputer) DayRate(emp employee.Employee, formula policy.PayrollFormula, fixedAmount decimal.Decimal) decimal.Decimal {
	monthlyGross := emp.MonthlyGross()
	perDayGross := monthlyGross.Div(c.rates.WorkingDaysPerMonth).Round(2)
	perDayBasic := monthlyGross.Mul(c.rates.BasicSalaryRatio).Div(c.rates.WorkingDaysPerMonth).Round(2)
	return c.perDayRate(formula, perDayBasic, perDayGross, fixedAmount)
}

func (c *AdjustmentComputer) perDayRate(formula policy.PayrollFormula, perDayBasic, perDayGross, fixedAmount decimal.Decimal) decimal.Decimal {
	switch formula {
	case policy.FormulaGrossPerDay:
		return perDayGross
	case policy.FormulaFixed:
		return fixedAmount
	default:
		// basic_per_day, and the safe fallback for unset selectors
		return perDayBasic
	}
}
