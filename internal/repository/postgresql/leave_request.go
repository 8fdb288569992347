package postgresql

import (
	"context"
	"time"

	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/domain/leave"
	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

// SumApprovedDaysFrom implements leave.LeaveRequestRepository. Only approved
// requests count toward usage; pending, rejected and withdrawn rows are
// excluded at all times.
func (r *leaveRequestRepositoryImpl) SumApprovedDaysFrom(ctx context.Context, employeeID, leaveType string, from time.Time) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(days), 0)
		FROM leave_requests
		WHERE employee_id = $1
		  AND leave_type = $2
		  AND status = 'approved'
		  AND start_date >= $3
	`

	var total decimal.Decimal
	if err := q.QueryRow(ctx, query, employeeID, leaveType, from).Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// SumApprovedDaysByTypes implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) SumApprovedDaysByTypes(ctx context.Context, employeeID string, leaveTypes []string, from, to time.Time) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(days), 0)
		FROM leave_requests
		WHERE employee_id = $1
		  AND leave_type = ANY($2)
		  AND status = 'approved'
		  AND start_date >= $3
		  AND start_date < $4
	`

	var total decimal.Decimal
	if err := q.QueryRow(ctx, query, employeeID, leaveTypes, from, to).Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
