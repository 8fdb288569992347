package postgresql

import (
	"context"
	"errors"

	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/domain/leave"
	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type encashmentRepositoryImpl struct {
	db *database.DB
}

func NewEncashmentRepository(db *database.DB) leave.EncashmentRepository {
	return &encashmentRepositoryImpl{db: db}
}

const encashmentColumns = `
	id, employee_id, leave_type, days, month, year,
	status, amount, reviewed_by, reviewed_at,
	created_at, updated_at
`

// Create implements leave.EncashmentRepository.
func (r *encashmentRepositoryImpl) Create(ctx context.Context, req leave.LeaveEncashmentRequest) (leave.LeaveEncashmentRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_encashment_requests (
			id, employee_id, leave_type, days, month, year,
			status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, NOW(), NOW()
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.ID, req.EmployeeID, req.LeaveType, req.Days, req.Month, req.Year,
		req.Status,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return leave.LeaveEncashmentRequest{}, err
	}

	return req, nil
}

// GetByID implements leave.EncashmentRepository.
func (r *encashmentRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveEncashmentRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + encashmentColumns + ` FROM leave_encashment_requests WHERE id = $1`

	var req leave.LeaveEncashmentRequest
	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.EmployeeID, &req.LeaveType, &req.Days, &req.Month, &req.Year,
		&req.Status, &req.Amount, &req.ReviewedBy, &req.ReviewedAt,
		&req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveEncashmentRequest{}, leave.ErrEncashmentNotFound
		}
		return leave.LeaveEncashmentRequest{}, err
	}
	return req, nil
}

// UpdateStatus implements leave.EncashmentRepository. The guard on pending
// status makes concurrent reviews lose cleanly instead of double-processing.
func (r *encashmentRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.EncashmentStatus, amount *decimal.Decimal, reviewedBy *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_encashment_requests
		SET status = $2,
			amount = $3,
			reviewed_by = $4,
			reviewed_at = NOW(),
			updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	commandTag, err := q.Exec(ctx, query, id, status, amount, reviewedBy)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return leave.ErrEncashmentAlreadyProcessed
	}
	return nil
}

// SumApprovedDays implements leave.EncashmentRepository.
func (r *encashmentRepositoryImpl) SumApprovedDays(ctx context.Context, employeeID string, month, year int) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(days), 0)
		FROM leave_encashment_requests
		WHERE employee_id = $1
		  AND month = $2
		  AND year = $3
		  AND status = 'approved'
	`

	var total decimal.Decimal
	if err := q.QueryRow(ctx, query, employeeID, month, year).Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
