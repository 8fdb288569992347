package policy

import (
	"time"

	"github.com/shopspring/decimal"
)

// BuiltInDefault returns the fallback policy used when no stored policy
// matches any scope. It is injected into the resolver at wiring time so tests
// can substitute alternates; it is never persisted.
func BuiltInDefault() LeavePolicy {
	five := decimal.NewFromInt(5)
	ten := decimal.NewFromInt(10)

	return LeavePolicy{
		ID:    "builtin-default",
		Name:  "Standard Leave Policy",
		Scope: ScopeCompany,
		LeaveTypes: LeaveTypeConfigs{
			{
				LeaveType:            "casual_leave",
				AnnualQuota:          decimal.NewFromInt(12),
				AccrualType:          AccrualMonthly,
				AccrualRate:          decimal.NewFromInt(1),
				CarryForward:         false,
				ProRataForNewJoiners: true,
			},
			{
				LeaveType:                   "sick_leave",
				AnnualQuota:                 decimal.NewFromInt(6),
				AccrualType:                 AccrualYearly,
				CarryForward:                false,
				CanBeNegative:               true,
				RequiresMedicalCertificate:  true,
				MedicalCertificateAfterDays: 2,
			},
			{
				LeaveType:            "earned_leave",
				AnnualQuota:          decimal.NewFromInt(15),
				AccrualType:          AccrualMonthly,
				AccrualRate:          decimal.NewFromFloat(1.25),
				CarryForward:         true,
				MaxCarryForward:      &ten,
				EncashmentAllowed:    true,
				EncashmentMaxDays:    ten,
				MinServiceMonths:     3,
				ProRataForNewJoiners: true,
			},
			{
				LeaveType:        "maternity_leave",
				AnnualQuota:      decimal.NewFromInt(90),
				AccrualType:      AccrualYearly,
				MinServiceMonths: 6,
			},
			{
				LeaveType:     "loss_of_pay",
				AnnualQuota:   decimal.Zero,
				AccrualType:   AccrualYearly,
				CanBeNegative: true,
			},
		},
		PayrollIntegration: PayrollIntegration{
			LOPDeductionFormula: FormulaBasicPerDay,
			EncashmentFormula:   FormulaBasicPerDay,
			FixedAmountPerDay:   five.Mul(decimal.NewFromInt(100)),
		},
		EffectiveFrom: time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC),
		IsActive:      true,
	}
}
