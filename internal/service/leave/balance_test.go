package leave

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/domain/employee"
	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/domain/leave"
	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/domain/policy"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Shared in-memory fakes for the service tests in this package.

type stubResolver struct {
	resolved policy.ResolvedPolicy
	err      error
}

func (s *stubResolver) Resolve(ctx context.Context, emp employee.Employee, asOf time.Time) (policy.ResolvedPolicy, error) {
	if s.err != nil {
		return policy.ResolvedPolicy{}, s.err
	}
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
	active := make([]employee.Employee, 0, len(f.employees))
	for _, emp := range f.employees {
		if emp.IsActive() {
			active = append(active, emp)
		}
	}
	return active, nil
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

type fakeSnapshotRepo struct {
	snapshots map[string]leave.LeaveBalanceSnapshot
}

func snapshotKey(employeeID string, year int) string {
	return fmt.Sprintf("%s/%d", employeeID, year)
}

func newFakeSnapshotRepo() *fakeSnapshotRepo {
	return &fakeSnapshotRepo{snapshots: make(map[string]leave.LeaveBalanceSnapshot)}
}

func (f *fakeSnapshotRepo) Upsert(ctx context.Context, snapshot leave.LeaveBalanceSnapshot) (leave.LeaveBalanceSnapshot, error) {
	f.snapshots[snapshotKey(snapshot.EmployeeID, snapshot.Year)] = snapshot
	return snapshot, nil
}

func (f *fakeSnapshotRepo) GetByEmployeeYear(ctx context.Context, employeeID string, year int) (leave.LeaveBalanceSnapshot, error) {
	snapshot, ok := f.snapshots[snapshotKey(employeeID, year)]
	if !ok {
		return leave.LeaveBalanceSnapshot{}, leave.ErrSnapshotNotFound
	}
	return snapshot, nil
}

func (f *fakeSnapshotRepo) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveBalanceSnapshot, error) {
	var out []leave.LeaveBalanceSnapshot
	for _, s := range f.snapshots {
		if s.EmployeeID == employeeID {
			out = append(out, s)
		}
	}
	return out, nil
}

func timePtr(v time.Time) *time.Time { return &v }

func decPtr(v decimal.Decimal) *decimal.Decimal { return &v }

func testPolicy(types ...policy.LeaveTypeConfig) policy.ResolvedPolicy {
	return policy.ResolvedPolicy{
		Policy: policy.LeavePolicy{
			Name:       "Test Policy",
			Scope:      policy.ScopeCompany,
			LeaveTypes: types,
			PayrollIntegration: policy.PayrollIntegration{
				LOPDeductionFormula: policy.FormulaBasicPerDay,
				EncashmentFormula:   policy.FormulaBasicPerDay,
			},
		},
		Level: policy.ScopeCompany,
	}
}

func TestCalculateMonthlyAccrual(t *testing.T) {
	ctx := context.Background()
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	emp := employee.Employee{
		ID:               "emp-1",
		FullName:         "Priya Sharma",
		JoinDate:         timePtr(time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC)),
		EmploymentStatus: employee.EmploymentStatusActive,
	}

	resolved := testPolicy(policy.LeaveTypeConfig{
		LeaveType:   "earned_leave",
		AccrualType: policy.AccrualMonthly,
		AccrualRate: decimal.NewFromFloat(1.25),
	})

	calc := NewBalanceCalculator(&stubResolver{resolved: resolved}, &fakeEmployeeRepo{employees: []employee.Employee{emp}}, &fakeRequestRepo{}, newFakeSnapshotRepo())

	result, err := calc.Calculate(ctx, "emp-1", asOf)
	require.NoError(t, err)

	balance := result.Balance["earned_leave"]
	assert.Equal(t, "7.5", balance.EntitledYTD.String())
	assert.Equal(t, "7.5", balance.Available.String())
	assert.Equal(t, 39, result.ServiceMonths)
}

func TestCalculateYearlyProRataForNewJoiner(t *testing.T) {
	ctx := context.Background()
	asOf := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	emp := employee.Employee{
		ID:               "emp-1",
		JoinDate:         timePtr(time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)),
		EmploymentStatus: employee.EmploymentStatusActive,
	}

	resolved := testPolicy(policy.LeaveTypeConfig{
		LeaveType:            "casual_leave",
		AnnualQuota:          decimal.NewFromInt(12),
		AccrualType:          policy.AccrualYearly,
		ProRataForNewJoiners: true,
	})

	calc := NewBalanceCalculator(&stubResolver{resolved: resolved}, &fakeEmployeeRepo{employees: []employee.Employee{emp}}, &fakeRequestRepo{}, newFakeSnapshotRepo())

	result, err := calc.Calculate(ctx, "emp-1", asOf)
	require.NoError(t, err)

	// July joiner: 12 * (13-7) / 12 = 6 days.
	assert.Equal(t, "6", result.Balance["casual_leave"].EntitledYTD.String())
}

func TestCalculateCarryForwardCapped(t *testing.T) {
	ctx := context.Background()
	asOf := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)

	emp := employee.Employee{
		ID:               "emp-1",
		JoinDate:         timePtr(time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)),
		EmploymentStatus: employee.EmploymentStatusActive,
	}

	resolved := testPolicy(policy.LeaveTypeConfig{
		LeaveType:       "earned_leave",
		AccrualType:     policy.AccrualMonthly,
		AccrualRate:     decimal.NewFromFloat(1.25),
		CarryForward:    true,
		MaxCarryForward: decPtr(decimal.NewFromInt(5)),
	})

	snapshots := newFakeSnapshotRepo()
	snapshots.snapshots[snapshotKey("emp-1", 2024)] = leave.LeaveBalanceSnapshot{
		EmployeeID: "emp-1",
		Year:       2024,
		Balances: leave.TypeBalances{
			"earned_leave": {Available: decimal.NewFromInt(8)},
		},
	}

	calc := NewBalanceCalculator(&stubResolver{resolved: resolved}, &fakeEmployeeRepo{employees: []employee.Employee{emp}}, &fakeRequestRepo{}, snapshots)

	result, err := calc.Calculate(ctx, "emp-1", asOf)
	require.NoError(t, err)

	balance := result.Balance["earned_leave"]
	assert.Equal(t, "5", balance.CarriedForward.String())
	// 1.25 * 2 months + 5 carried = 7.5
	assert.Equal(t, "7.5", balance.TotalEntitled.String())
}

func TestCalculateNoCarryWithoutSnapshot(t *testing.T) {
	ctx := context.Background()
	asOf := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	emp := employee.Employee{
		ID:               "emp-1",
		JoinDate:         timePtr(time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)),
		EmploymentStatus: employee.EmploymentStatusActive,
	}

	resolved := testPolicy(policy.LeaveTypeConfig{
		LeaveType:    "earned_leave",
		AccrualType:  policy.AccrualMonthly,
		AccrualRate:  decimal.NewFromInt(1),
		CarryForward: true,
	})

	calc := NewBalanceCalculator(&stubResolver{resolved: resolved}, &fakeEmployeeRepo{employees: []employee.Employee{emp}}, &fakeRequestRepo{}, newFakeSnapshotRepo())

	result, err := calc.Calculate(ctx, "emp-1", asOf)
	require.NoError(t, err)
	assert.True(t, result.Balance["earned_leave"].CarriedForward.IsZero())
}

func TestCalculateNegativeBalanceBecomesLOP(t *testing.T) {
	ctx := context.Background()
	asOf := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)

	emp := employee.Employee{
		ID:               "emp-1",
		JoinDate:         timePtr(time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC)),
		EmploymentStatus: employee.EmploymentStatusActive,
	}

	resolved := testPolicy(policy.LeaveTypeConfig{
		LeaveType:     "sick_leave",
		AnnualQuota:   decimal.NewFromInt(6),
		AccrualType:   policy.AccrualYearly,
		CanBeNegative: true,
	})

	requests := &fakeRequestRepo{requests: []leave.LeaveRequest{
		{
			EmployeeID: "emp-1",
			LeaveType:  "sick_leave",
			StartDate:  time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
			Days:       decimal.NewFromInt(8),
			Status:     leave.LeaveRequestStatusApproved,
		},
	}}

	calc := NewBalanceCalculator(&stubResolver{resolved: resolved}, &fakeEmployeeRepo{employees: []employee.Employee{emp}}, requests, newFakeSnapshotRepo())

	result, err := calc.Calculate(ctx, "emp-1", asOf)
	require.NoError(t, err)

	balance := result.Balance["sick_leave"]
	assert.Equal(t, "-2", balance.Available.String())
	assert.Equal(t, "2", balance.LOPDays.String())
	assert.Equal(t, "2", result.PayrollImpact.LOPDays.String())
}

func TestCalculateClampsWhenNegativeNotAllowed(t *testing.T) {
	ctx := context.Background()
	asOf := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)

	emp := employee.Employee{
		ID:               "emp-1",
		JoinDate:         timePtr(time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC)),
		EmploymentStatus: employee.EmploymentStatusActive,
	}

	resolved := testPolicy(policy.LeaveTypeConfig{
		LeaveType:   "casual_leave",
		AnnualQuota: decimal.NewFromInt(6),
		AccrualType: policy.AccrualYearly,
	})

	requests := &fakeRequestRepo{requests: []leave.LeaveRequest{
		{
			EmployeeID: "emp-1",
			LeaveType:  "casual_leave",
			StartDate:  time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
			Days:       decimal.NewFromInt(9),
			Status:     leave.LeaveRequestStatusApproved,
		},
	}}

	calc := NewBalanceCalculator(&stubResolver{resolved: resolved}, &fakeEmployeeRepo{employees: []employee.Employee{emp}}, requests, newFakeSnapshotRepo())

	result, err := calc.Calculate(ctx, "emp-1", asOf)
	require.NoError(t, err)

	balance := result.Balance["casual_leave"]
	assert.True(t, balance.Available.IsZero())
	assert.True(t, balance.LOPDays.IsZero())
}

func TestCalculateMinServiceGate(t *testing.T) {
	ctx := context.Background()
	asOf := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)

	// Joined mid-June: two full months of service by mid-August.
	emp := employee.Employee{
		ID:               "emp-1",
		JoinDate:         timePtr(time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)),
		EmploymentStatus: employee.EmploymentStatusActive,
	}

	resolved := testPolicy(policy.LeaveTypeConfig{
		LeaveType:        "earned_leave",
		AccrualType:      policy.AccrualMonthly,
		AccrualRate:      decimal.NewFromFloat(1.25),
		MinServiceMonths: 3,
	})

	calc := NewBalanceCalculator(&stubResolver{resolved: resolved}, &fakeEmployeeRepo{employees: []employee.Employee{emp}}, &fakeRequestRepo{}, newFakeSnapshotRepo())

	result, err := calc.Calculate(ctx, "emp-1", asOf)
	require.NoError(t, err)
	assert.True(t, result.Balance["earned_leave"].EntitledYTD.IsZero())
}

func TestCalculateEncashableCappedByPolicy(t *testing.T) {
	ctx := context.Background()
	asOf := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	emp := employee.Employee{
		ID:               "emp-1",
		JoinDate:         timePtr(time.Date(2019, 4, 1, 0, 0, 0, 0, time.UTC)),
		EmploymentStatus: employee.EmploymentStatusActive,
	}

	resolved := testPolicy(policy.LeaveTypeConfig{
		LeaveType:         "earned_leave",
		AccrualType:       policy.AccrualMonthly,
		AccrualRate:       decimal.NewFromFloat(1.25),
		EncashmentAllowed: true,
		EncashmentMaxDays: decimal.NewFromInt(10),
	})

	calc := NewBalanceCalculator(&stubResolver{resolved: resolved}, &fakeEmployeeRepo{employees: []employee.Employee{emp}}, &fakeRequestRepo{}, newFakeSnapshotRepo())

	result, err := calc.Calculate(ctx, "emp-1", asOf)
	require.NoError(t, err)

	balance := result.Balance["earned_leave"]
	assert.Equal(t, "15", balance.Available.String())
	assert.Equal(t, "10", balance.Encashable.String())
	assert.Equal(t, "10", result.PayrollImpact.EncashableDays.String())
}

func TestCalculateMissingJoinDateAssumesTenure(t *testing.T) {
	ctx := context.Background()
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	// Legacy directory import without a join date. Tenure defaults to twelve
	// months, which clears every minimum-service gate and disables pro-rata.
	emp := employee.Employee{
		ID:               "emp-1",
		FullName:         "Arun Mehta",
		EmploymentStatus: employee.EmploymentStatusActive,
	}

	resolved := testPolicy(policy.LeaveTypeConfig{
		LeaveType:            "earned_leave",
		AccrualType:          policy.AccrualMonthly,
		AccrualRate:          decimal.NewFromFloat(1.25),
		MinServiceMonths:     3,
		ProRataForNewJoiners: true,
	})

	calc := NewBalanceCalculator(&stubResolver{resolved: resolved}, &fakeEmployeeRepo{employees: []employee.Employee{emp}}, &fakeRequestRepo{}, newFakeSnapshotRepo())

	result, err := calc.Calculate(ctx, "emp-1", asOf)
	require.NoError(t, err)

	assert.Equal(t, 12, result.ServiceMonths)

	balance := result.Balance["earned_leave"]
	assert.Equal(t, "7.5", balance.EntitledYTD.String())
	assert.Equal(t, "7.5", balance.Available.String())
}

func TestCalculateUnknownEmployee(t *testing.T) {
	calc := NewBalanceCalculator(&stubResolver{}, &fakeEmployeeRepo{}, &fakeRequestRepo{}, newFakeSnapshotRepo())

	_, err := calc.Calculate(context.Background(), "ghost", time.Now())
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
