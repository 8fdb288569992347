package postgresql

import (
	"context"
	"errors"

	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/domain/leave"
	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type snapshotRepositoryImpl struct {
	db *database.DB
}

func NewSnapshotRepository(db *database.DB) leave.SnapshotRepository {
	return &snapshotRepositoryImpl{db: db}
}

// Upsert implements leave.SnapshotRepository. Keyed by (employee_id, year) so
// re-running year-end processing overwrites instead of duplicating.
func (r *snapshotRepositoryImpl) Upsert(ctx context.Context, s leave.LeaveBalanceSnapshot) (leave.LeaveBalanceSnapshot, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balance_snapshots (
			id, employee_id, year,
			balances, lop_days, encashable_days,
			policy_name, policy_level, processed_at,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2,
			$3, $4, $5,
			$6, $7, $8,
			NOW(), NOW()
		)
		ON CONFLICT (employee_id, year) DO UPDATE SET
			balances = EXCLUDED.balances,
			lop_days = EXCLUDED.lop_days,
			encashable_days = EXCLUDED.encashable_days,
			policy_name = EXCLUDED.policy_name,
			policy_level = EXCLUDED.policy_level,
			processed_at = EXCLUDED.processed_at,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.EmployeeID, s.Year,
		s.Balances, s.PayrollImpact.LOPDays, s.PayrollImpact.EncashableDays,
		s.PolicyName, s.PolicyLevel, s.ProcessedAt,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return leave.LeaveBalanceSnapshot{}, err
	}

	return s, nil
}

// GetByEmployeeYear implements leave.SnapshotRepository.
func (r *snapshotRepositoryImpl) GetByEmployeeYear(ctx context.Context, employeeID string, year int) (leave.LeaveBalanceSnapshot, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, year,
			   balances, lop_days, encashable_days,
			   policy_name, policy_level, processed_at,
			   created_at, updated_at
		FROM leave_balance_snapshots
		WHERE employee_id = $1 AND year = $2
	`

	var s leave.LeaveBalanceSnapshot
	err := q.QueryRow(ctx, query, employeeID, year).Scan(
		&s.ID, &s.EmployeeID, &s.Year,
		&s.Balances, &s.PayrollImpact.LOPDays, &s.PayrollImpact.EncashableDays,
		&s.PolicyName, &s.PolicyLevel, &s.ProcessedAt,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveBalanceSnapshot{}, leave.ErrSnapshotNotFound
		}
		return leave.LeaveBalanceSnapshot{}, err
	}
	return s, nil
}

// ListByEmployee implements leave.SnapshotRepository.
func (r *snapshotRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveBalanceSnapshot, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, year,
			   balances, lop_days, encashable_days,
			   policy_name, policy_level, processed_at,
			   created_at, updated_at
		FROM leave_balance_snapshots
		WHERE employee_id = $1
		ORDER BY year DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshots := make([]leave.LeaveBalanceSnapshot, 0)
	for rows.Next() {
		var s leave.LeaveBalanceSnapshot
		if err := rows.Scan(
			&s.ID, &s.EmployeeID, &s.Year,
			&s.Balances, &s.PayrollImpact.LOPDays, &s.PayrollImpact.EncashableDays,
			&s.PolicyName, &s.PolicyLevel, &s.ProcessedAt,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}

	return snapshots, nil
}
