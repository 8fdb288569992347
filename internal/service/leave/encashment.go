package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/domain/employee"
	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/domain/leave"
	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/domain/policy"
	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/service/payroll"
	"github.com/google/uuid"
)

type EncashmentServiceImpl struct {
	balance     leave.BalanceService
	employees   employee.EmployeeRepository
	resolver    policy.PolicyResolver
	computer    *payroll.AdjustmentComputer
	encashments leave.EncashmentRepository
}

func NewEncashmentService(
	balance leave.BalanceService,
	employees employee.EmployeeRepository,
	resolver policy.PolicyResolver,
	computer *payroll.AdjustmentComputer,
	encashments leave.EncashmentRepository,
) leave.EncashmentService {
	return &EncashmentServiceImpl{
		balance:     balance,
		employees:   employees,
		resolver:    resolver,
		computer:    computer,
		encashments: encashments,
	}
}

// Submit validates a new encashment request against a fresh balance
// calculation and books it against the current payroll month as pending.
func (s *EncashmentServiceImpl) Submit(ctx context.Context, req leave.SubmitEncashmentRequest) (leave.LeaveEncashmentRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveEncashmentRequest{}, err
	}

	now := time.Now()
	balance, err := s.balance.Calculate(ctx, req.EmployeeID, now)
	if err != nil {
		return leave.LeaveEncashmentRequest{}, err
	}

	typeBalance, ok := balance.Balance[req.LeaveType]
	if !ok {
		return leave.LeaveEncashmentRequest{}, leave.ErrUnknownLeaveType
	}
	if req.Days.GreaterThan(typeBalance.Encashable) {
		shortfall := req.Days.Sub(typeBalance.Encashable)
		return leave.LeaveEncashmentRequest{}, fmt.Errorf(
			"%w: requested %s days of %s, encashable %s (short by %s)",
			leave.ErrInsufficientEncashableBalance,
			req.Days, req.LeaveType, typeBalance.Encashable, shortfall,
		)
	}

	created, err := s.encashments.Create(ctx, leave.LeaveEncashmentRequest{
		ID:         uuid.NewString(),
		EmployeeID: req.EmployeeID,
		LeaveType:  req.LeaveType,
		Days:       req.Days,
		Month:      int(now.Month()),
		Year:       now.Year(),
		Status:     leave.EncashmentStatusPending,
	})
	if err != nil {
		return leave.LeaveEncashmentRequest{}, fmt.Errorf("failed to create encashment request: %w", err)
	}

	slog.Info("Encashment request submitted",
		"request_id", created.ID,
		"employee_id", created.EmployeeID,
		"leave_type", created.LeaveType,
		"days", created.Days,
	)
	return created, nil
}

// Approve prices the request with the effective policy's encashment formula
// and marks it approved. Approved requests feed the month's payroll
// adjustment as an earning line.
func (s *EncashmentServiceImpl) Approve(ctx context.Context, id string, reviewedBy string) (leave.LeaveEncashmentRequest, error) {
	req, err := s.encashments.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveEncashmentRequest{}, err
	}
	if req.Status != leave.EncashmentStatusPending {
		return leave.LeaveEncashmentRequest{}, leave.ErrEncashmentAlreadyProcessed
	}

	emp, err := s.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveEncashmentRequest{}, err
	}
	resolved, err := s.resolver.Resolve(ctx, emp, time.Now())
	if err != nil {
		return leave.LeaveEncashmentRequest{}, err
	}

	integration := resolved.Policy.PayrollIntegration
	rate := s.computer.DayRate(emp, integration.EncashmentFormula, integration.FixedAmountPerDay)
	amount := req.Days.Mul(rate).Round(2)

	if err := s.encashments.UpdateStatus(ctx, id, leave.EncashmentStatusApproved, &amount, &reviewedBy); err != nil {
		return leave.LeaveEncashmentRequest{}, fmt.Errorf("failed to approve encashment request: %w", err)
	}

	slog.Info("Encashment request approved",
		"request_id", id,
		"amount", amount,
		"reviewed_by", reviewedBy,
	)
	return s.encashments.GetByID(ctx, id)
}

func (s *EncashmentServiceImpl) Reject(ctx context.Context, id string, reviewedBy string) (leave.LeaveEncashmentRequest, error) {
	req, err := s.encashments.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveEncashmentRequest{}, err
	}
	if req.Status != leave.EncashmentStatusPending {
		return leave.LeaveEncashmentRequest{}, leave.ErrEncashmentAlreadyProcessed
	}

	if err := s.encashments.UpdateStatus(ctx, id, leave.EncashmentStatusRejected, nil, &reviewedBy); err != nil {
		return leave.LeaveEncashmentRequest{}, fmt.Errorf("failed to reject encashment request: %w", err)
	}

	return s.encashments.GetByID(ctx, id)
}
