package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/domain/employee"
	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/domain/leave"
)

type YearEndProcessor struct {
	employees  employee.EmployeeRepository
	calculator leave.BalanceService
	snapshots  leave.SnapshotRepository
}

func NewYearEndProcessor(
	employees employee.EmployeeRepository,
	calculator leave.BalanceService,
	snapshots leave.SnapshotRepository,
) leave.YearEndService {
	return &YearEndProcessor{
		employees:  employees,
		calculator: calculator,
		snapshots:  snapshots,
	}
}

// Process freezes every active employee's balance as of Dec-31 of the given
// year into a snapshot keyed by (employee_id, year). Snapshots are upserted,
// so re-running a year is idempotent. Individual failures are collected and
// reported; the batch never aborts on one employee.
func (p *YearEndProcessor) Process(ctx context.Context, year int) (leave.YearEndResult, error) {
	result := leave.YearEndResult{Year: year, Errors: make([]leave.YearEndError, 0)}

	employees, err := p.employees.ListActive(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to list active employees: %w", err)
	}

	asOf := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)
	processedAt := time.Now()

	for _, emp := range employees {
		balance, err := p.calculator.Calculate(ctx, emp.ID, asOf)
		if err != nil {
			slog.Warn("Year-end balance calculation failed",
				"employee_id", emp.ID,
				"year", year,
				"error", err,
			)
			result.Errors = append(result.Errors, leave.YearEndError{
				EmployeeID: emp.ID,
				Error:      err.Error(),
			})
			continue
		}

		snapshot := leave.LeaveBalanceSnapshot{
			EmployeeID:    emp.ID,
			Year:          year,
			Balances:      balance.Balance,
			PayrollImpact: balance.PayrollImpact,
			PolicyName:    balance.PolicyName,
			PolicyLevel:   balance.PolicyLevel,
			ProcessedAt:   processedAt,
		}

		if _, err := p.snapshots.Upsert(ctx, snapshot); err != nil {
			slog.Warn("Year-end snapshot upsert failed",
				"employee_id", emp.ID,
				"year", year,
				"error", err,
			)
			result.Errors = append(result.Errors, leave.YearEndError{
				EmployeeID: emp.ID,
				Error:      err.Error(),
			})
			continue
		}

		result.ProcessedCount++
	}

	slog.Info("Year-end processing finished",
		"year", year,
		"processed_count", result.ProcessedCount,
		"error_count", len(result.Errors),
	)
	return result, nil
}

// Snapshots lists an employee's frozen year-end balances for audit and
// reporting.
func (p *YearEndProcessor) Snapshots(ctx context.Context, employeeID string) ([]leave.LeaveBalanceSnapshot, error) {
	if _, err := p.employees.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}
	return p.snapshots.ListByEmployee(ctx, employeeID)
}
