package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/domain/employee"
	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/domain/leave"
	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/domain/policy"
	"github.com/shopspring/decimal"
)

// assumedTenureMonths is the defensive fallback when an employee record has
// no join date; such records are treated as past every minimum-service gate
// a default policy would configure.
const assumedTenureMonths = 12

type BalanceCalculator struct {
	resolver  policy.PolicyResolver
	employees employee.EmployeeRepository
	requests  leave.LeaveRequestRepository
	snapshots leave.SnapshotRepository
}

func NewBalanceCalculator(
	resolver policy.PolicyResolver,
	employees employee.EmployeeRepository,
	requests leave.LeaveRequestRepository,
	snapshots leave.SnapshotRepository,
) *BalanceCalculator {
	return &BalanceCalculator{
		resolver:  resolver,
		employees: employees,
		requests:  requests,
		snapshots: snapshots,
	}
}

// Calculate computes the per-leave-type balance breakdown for an employee as
// of a reference date. A zero asOf defaults to the current time. Usage is
// derived exclusively from approved leave requests of the reference year;
// carry-forward comes from the previous year's frozen snapshot.
func (c *BalanceCalculator) Calculate(ctx context.Context, employeeID string, asOf time.Time) (leave.BalanceResponse, error) {
	if asOf.IsZero() {
		asOf = time.Now()
	}

	emp, err := c.employees.GetByID(ctx, employeeID)
	if err != nil {
		return leave.BalanceResponse{}, err
	}

	resolved, err := c.resolver.Resolve(ctx, emp, asOf)
	if err != nil {
		return leave.BalanceResponse{}, err
	}

	months := serviceMonths(emp.JoinDate, asOf)
	yearStart := time.Date(asOf.Year(), time.January, 1, 0, 0, 0, 0, asOf.Location())
	joinedThisYear := emp.JoinDate != nil && emp.JoinDate.Year() == asOf.Year()

	// Carry-forward baseline: previous year's frozen snapshot. A missing
	// snapshot simply means nothing carries over (first year, or year-end
	// not yet processed).
	var priorBalances leave.TypeBalances
	prior, err := c.snapshots.GetByEmployeeYear(ctx, employeeID, asOf.Year()-1)
	if err != nil {
		if !errors.Is(err, leave.ErrSnapshotNotFound) {
			return leave.BalanceResponse{}, fmt.Errorf("failed to load prior-year snapshot: %w", err)
		}
	} else {
		priorBalances = prior.Balances
	}

	balances := make(map[string]leave.TypeBalance, len(resolved.Policy.LeaveTypes))
	impact := leave.PayrollImpact{LOPDays: decimal.Zero, EncashableDays: decimal.Zero}

	for _, cfg := range resolved.Policy.LeaveTypes {
		entitled := entitledDays(cfg, emp, asOf, months, joinedThisYear)

		carried := decimal.Zero
		if cfg.CarryForward {
			if prev, ok := priorBalances[cfg.LeaveType]; ok && prev.Available.IsPositive() {
				carried = prev.Available
				if cfg.MaxCarryForward != nil && carried.GreaterThan(*cfg.MaxCarryForward) {
					carried = *cfg.MaxCarryForward
				}
			}
		}
		carried = carried.Round(2)

		total := entitled.Add(carried).Round(2)

		used, err := c.requests.SumApprovedDaysFrom(ctx, employeeID, cfg.LeaveType, yearStart)
		if err != nil {
			return leave.BalanceResponse{}, fmt.Errorf("failed to sum approved %s requests: %w", cfg.LeaveType, err)
		}
		used = used.Round(2)

		available := total.Sub(used).Round(2)
		lopDays := decimal.Zero
		if available.IsNegative() {
			if cfg.CanBeNegative {
				// Overdraft stays visible and mirrors into LOP days.
				lopDays = available.Neg()
			} else {
				available = decimal.Zero
			}
		}

		encashable := decimal.Zero
		if cfg.EncashmentAllowed && available.IsPositive() {
			encashable = decimal.Min(available, cfg.EncashmentMaxDays).Round(2)
		}

		balances[cfg.LeaveType] = leave.TypeBalance{
			EntitledYTD:    entitled,
			CarriedForward: carried,
			TotalEntitled:  total,
			Used:           used,
			Available:      available,
			LOPDays:        lopDays,
			Encashable:     encashable,
		}

		impact.LOPDays = impact.LOPDays.Add(lopDays)
		impact.EncashableDays = impact.EncashableDays.Add(encashable)
	}

	impact.LOPDays = impact.LOPDays.Round(2)
	impact.EncashableDays = impact.EncashableDays.Round(2)

	return leave.BalanceResponse{
		EmployeeID:    emp.ID,
		EmployeeName:  emp.FullName,
		PolicyName:    resolved.Policy.Name,
		PolicyLevel:   string(resolved.Level),
		AsOf:          asOf.Format("2006-01-02"),
		ServiceMonths: months,
		Balance:       balances,
		PayrollImpact: impact,
	}, nil
}

// entitledDays applies the minimum-service gate and the accrual formula for
// one leave type.
func entitledDays(cfg policy.LeaveTypeConfig, emp employee.Employee, asOf time.Time, months int, joinedThisYear bool) decimal.Decimal {
	if months < cfg.MinServiceMonths {
		return decimal.Zero
	}

	monthsElapsed := int(asOf.Month())

	if cfg.AccrualType == policy.AccrualMonthly {
		effectiveMonths := monthsElapsed
		if joinedThisYear && cfg.ProRataForNewJoiners {
			// Accrual starts in the joining month, inclusive.
			effectiveMonths = monthsElapsed - int(emp.JoinDate.Month()) + 1
			if effectiveMonths < 0 {
				effectiveMonths = 0
			}
		}
		return cfg.AccrualRate.Mul(decimal.NewFromInt(int64(effectiveMonths))).Round(2)
	}

	// Yearly grant, pro-rated for same-year joiners when configured.
	if joinedThisYear && cfg.ProRataForNewJoiners {
		joinMonth := int64(emp.JoinDate.Month())
		return cfg.AnnualQuota.
			Mul(decimal.NewFromInt(13 - joinMonth)).
			Div(decimal.NewFromInt(12)).
			Round(2)
	}
	return cfg.AnnualQuota.Round(2)
}

// serviceMonths counts whole months between the join date and asOf.
func serviceMonths(joinDate *time.Time, asOf time.Time) int {
	if joinDate == nil {
		return assumedTenureMonths
	}

	years := asOf.Year() - joinDate.Year()
	months := int(asOf.Month()) - int(joinDate.Month())
	total := years*12 + months

	// Adjust if day hasn't passed yet
	if asOf.Day() < joinDate.Day() {
		total--
	}

	if total < 0 {
		total = 0
	}
	return total
}
