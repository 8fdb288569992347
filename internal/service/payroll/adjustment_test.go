package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/domain/employee"
	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/domain/leave"
	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/domain/policy"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	resolved policy.ResolvedPolicy
}

func (s *stubResolver) Resolve(ctx context.Context, emp employee.Employee, asOf time.Time) (policy.ResolvedPolicy, error) {
	return s.resolved, nil
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.ID == id {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return f.employees, nil
}

type fakeRequestRepo struct {
	requests []leave.LeaveRequest
}

func (f *fakeRequestRepo) SumApprovedDaysFrom(ctx context.Context, employeeID, leaveType string, from time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, r := range f.requests {
		if r.EmployeeID == employeeID && r.LeaveType == leaveType &&
			r.Status == leave.LeaveRequestStatusApproved && !r.StartDate.Before(from) {
			total = total.Add(r.Days)
		}
	}
	return total, nil
}

func (f *fakeRequestRepo) SumApprovedDaysByTypes(ctx context.Context, employeeID string, leaveTypes []string, from, to time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, r := range f.requests {
		if r.EmployeeID != employeeID || r.Status != leave.LeaveRequestStatusApproved {
			continue
		}
		if r.StartDate.Before(from) || !r.StartDate.Before(to) {
			continue
		}
		for _, lt := range leaveTypes {
			if r.LeaveType == lt {
				total = total.Add(r.Days)
				break
			}
		}
	}
	return total, nil
}

type fakeEncashmentRepo struct {
	approvedDays map[string]decimal.Decimal // keyed employeeID, month/year ignored
}

func (f *fakeEncashmentRepo) Create(ctx context.Context, req leave.LeaveEncashmentRequest) (leave.LeaveEncashmentRequest, error) {
	return req, nil
}

func (f *fakeEncashmentRepo) GetByID(ctx context.Context, id string) (leave.LeaveEncashmentRequest, error) {
	return leave.LeaveEncashmentRequest{}, leave.ErrEncashmentNotFound
}

func (f *fakeEncashmentRepo) UpdateStatus(ctx context.Context, id string, status leave.EncashmentStatus, amount *decimal.Decimal, reviewedBy *string) error {
	return nil
}

func (f *fakeEncashmentRepo) SumApprovedDays(ctx context.Context, employeeID string, month, year int) (decimal.Decimal, error) {
	if days, ok := f.approvedDays[employeeID]; ok {
		return days, nil
	}
	return decimal.Zero, nil
}

func ctcEmployee(annualCTC int64) employee.Employee {
	ctc := decimal.NewFromInt(annualCTC)
	return employee.Employee{
		ID:               "emp-1",
		AnnualCTC:        &ctc,
		EmploymentStatus: employee.EmploymentStatusActive,
	}
}

func integrationPolicy(lopFormula, encashFormula policy.PayrollFormula, fixed decimal.Decimal) policy.ResolvedPolicy {
	return policy.ResolvedPolicy{
		Policy: policy.LeavePolicy{
			Name: "Test Policy",
			PayrollIntegration: policy.PayrollIntegration{
				LOPDeductionFormula: lopFormula,
				EncashmentFormula:   encashFormula,
				FixedAmountPerDay:   fixed,
			},
		},
		Level: policy.ScopeCompany,
	}
}

func approvedLOPRequest(leaveType string, days int64) leave.LeaveRequest {
	return leave.LeaveRequest{
		EmployeeID: "emp-1",
		LeaveType:  leaveType,
		StartDate:  time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		Days:       decimal.NewFromInt(days),
		Status:     leave.LeaveRequestStatusApproved,
	}
}

func TestComputeLOPDeductionBasicPerDay(t *testing.T) {
	// Annual CTC 450000: gross 37500/month, basic 15000, per-day basic 500.
	computer := NewAdjustmentComputer(
		&stubResolver{resolved: integrationPolicy(policy.FormulaBasicPerDay, policy.FormulaBasicPerDay, decimal.Zero)},
		&fakeEmployeeRepo{employees: []employee.Employee{ctcEmployee(450000)}},
		&fakeRequestRepo{requests: []leave.LeaveRequest{approvedLOPRequest("loss_of_pay", 2)}},
		&fakeEncashmentRepo{},
		DefaultRates(),
	)

	adjustment, err := computer.Compute(context.Background(), "emp-1", 6, 2025)
	require.NoError(t, err)

	assert.Equal(t, "2", adjustment.LOPDays.String())
	assert.Equal(t, "1000", adjustment.LOPDeduction.String())
	assert.Equal(t, "-1000", adjustment.NetAdjustment.String())
}

func TestComputeCountsAllUnpaidTypeKeys(t *testing.T) {
	computer := NewAdjustmentComputer(
		&stubResolver{resolved: integrationPolicy(policy.FormulaBasicPerDay, policy.FormulaBasicPerDay, decimal.Zero)},
		&fakeEmployeeRepo{employees: []employee.Employee{ctcEmployee(450000)}},
		&fakeRequestRepo{requests: []leave.LeaveRequest{
			approvedLOPRequest("lop", 1),
			approvedLOPRequest("unpaid", 1),
			approvedLOPRequest("leave_without_pay", 1),
			approvedLOPRequest("casual_leave", 3), // paid, must not count
		}},
		&fakeEncashmentRepo{},
		DefaultRates(),
	)

	adjustment, err := computer.Compute(context.Background(), "emp-1", 6, 2025)
	require.NoError(t, err)
	assert.Equal(t, "3", adjustment.LOPDays.String())
}

func TestComputeEncashmentGrossPerDay(t *testing.T) {
	computer := NewAdjustmentComputer(
		&stubResolver{resolved: integrationPolicy(policy.FormulaBasicPerDay, policy.FormulaGrossPerDay, decimal.Zero)},
		&fakeEmployeeRepo{employees: []employee.Employee{ctcEmployee(450000)}},
		&fakeRequestRepo{},
		&fakeEncashmentRepo{approvedDays: map[string]decimal.Decimal{
			"emp-1": decimal.NewFromInt(4),
		}},
		DefaultRates(),
	)

	adjustment, err := computer.Compute(context.Background(), "emp-1", 6, 2025)
	require.NoError(t, err)

	// Per-day gross 1250, four days encashed.
	assert.Equal(t, "4", adjustment.EncashmentDays.String())
	assert.Equal(t, "5000", adjustment.EncashmentAmount.String())
	assert.Equal(t, "5000", adjustment.NetAdjustment.String())
}

func TestComputeFixedFormula(t *testing.T) {
	computer := NewAdjustmentComputer(
		&stubResolver{resolved: integrationPolicy(policy.FormulaFixed, policy.FormulaFixed, decimal.NewFromInt(750))},
		&fakeEmployeeRepo{employees: []employee.Employee{ctcEmployee(450000)}},
		&fakeRequestRepo{requests: []leave.LeaveRequest{approvedLOPRequest("lop", 2)}},
		&fakeEncashmentRepo{},
		DefaultRates(),
	)

	adjustment, err := computer.Compute(context.Background(), "emp-1", 6, 2025)
	require.NoError(t, err)
	assert.Equal(t, "1500", adjustment.LOPDeduction.String())
}

func TestComputeNetOffsetsEncashmentAgainstLOP(t *testing.T) {
	computer := NewAdjustmentComputer(
		&stubResolver{resolved: integrationPolicy(policy.FormulaBasicPerDay, policy.FormulaBasicPerDay, decimal.Zero)},
		&fakeEmployeeRepo{employees: []employee.Employee{ctcEmployee(450000)}},
		&fakeRequestRepo{requests: []leave.LeaveRequest{approvedLOPRequest("loss_of_pay", 1)}},
		&fakeEncashmentRepo{approvedDays: map[string]decimal.Decimal{
			"emp-1": decimal.NewFromInt(3),
		}},
		DefaultRates(),
	)

	adjustment, err := computer.Compute(context.Background(), "emp-1", 6, 2025)
	require.NoError(t, err)

	// Encashment 1500 against a 500 deduction.
	assert.Equal(t, "1000", adjustment.NetAdjustment.String())
}

func TestComputeMonthlySalaryOverridesCTC(t *testing.T) {
	salary := decimal.NewFromInt(60000)
	emp := ctcEmployee(450000)
	emp.MonthlySalary = &salary

	computer := NewAdjustmentComputer(
		&stubResolver{resolved: integrationPolicy(policy.FormulaGrossPerDay, policy.FormulaGrossPerDay, decimal.Zero)},
		&fakeEmployeeRepo{employees: []employee.Employee{emp}},
		&fakeRequestRepo{requests: []leave.LeaveRequest{approvedLOPRequest("unpaid", 1)}},
		&fakeEncashmentRepo{},
		DefaultRates(),
	)

	adjustment, err := computer.Compute(context.Background(), "emp-1", 6, 2025)
	require.NoError(t, err)
	assert.Equal(t, "2000", adjustment.LOPDeduction.String())
}

func TestComputeRejectsInvalidMonth(t *testing.T) {
	computer := NewAdjustmentComputer(&stubResolver{}, &fakeEmployeeRepo{}, &fakeRequestRepo{}, &fakeEncashmentRepo{}, DefaultRates())

	_, err := computer.Compute(context.Background(), "emp-1", 13, 2025)
	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)

	_, err = computer.Compute(context.Background(), "emp-1", 0, 2025)
	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
}

func TestComputeUnknownEmployee(t *testing.T) {
	computer := NewAdjustmentComputer(&stubResolver{}, &fakeEmployeeRepo{}, &fakeRequestRepo{}, &fakeEncashmentRepo{}, DefaultRates())

	_, err := computer.Compute(context.Background(), "ghost", 6, 2025)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
