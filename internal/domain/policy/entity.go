package policy

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Scope is the level at which a leave policy applies. Resolution precedence
// is employee > role > department > company > built-in default.
type Scope string

const (
	ScopeCompany    Scope = "company"
	ScopeDepartment Scope = "department"
	ScopeRole       Scope = "role"
	ScopeEmployee   Scope = "employee"

	// ScopeDefault is never stored; it marks the injected fallback policy
	// in resolution results.
	ScopeDefault Scope = "default"
)

// LeavePolicy entity
type LeavePolicy struct {
	ID   string
	Name string

	Scope Scope
	// ScopeValue is the department name, role name, or employee id the
	// policy targets. Nil for company-wide policies.
	ScopeValue *string

	LeaveTypes         LeaveTypeConfigs
	PayrollIntegration PayrollIntegration

	EffectiveFrom time.Time
	EffectiveTo   *time.Time
	IsActive      bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ConfigFor returns the config for a leave type key, if the policy carries one.
func (p LeavePolicy) ConfigFor(leaveType string) (LeaveTypeConfig, bool) {
	for _, cfg := range p.LeaveTypes {
		if cfg.LeaveType == leaveType {
			return cfg, true
		}
	}
	return LeaveTypeConfig{}, false
}

// LeaveTypeConfig is one leave type's rule set inside a policy.
type LeaveTypeConfig struct {
	LeaveType string `json:"leave_type"`

	AnnualQuota decimal.Decimal `json:"annual_quota"`

	AccrualType AccrualType     `json:"accrual_type"`
	AccrualRate decimal.Decimal `json:"accrual_rate,omitempty"` // days/month, monthly accrual only

	CarryForward    bool             `json:"carry_forward"`
	MaxCarryForward *decimal.Decimal `json:"max_carry_forward,omitempty"` // nil = uncapped

	EncashmentAllowed bool            `json:"encashment_allowed"`
	EncashmentMaxDays decimal.Decimal `json:"encashment_max_days,omitempty"`

	MinServiceMonths     int  `json:"min_service_months,omitempty"`
	ProRataForNewJoiners bool `json:"pro_rata_for_new_joiners"`

	// CanBeNegative lets usage overdraw the entitlement; the overdraft is
	// mirrored into lop_days instead of being blocked.
	CanBeNegative bool `json:"can_be_negative"`

	RequiresMedicalCertificate  bool `json:"requires_medical_certificate"`
	MedicalCertificateAfterDays int  `json:"medical_certificate_after_days,omitempty"`
	MaxConsecutiveDays          int  `json:"max_consecutive_days,omitempty"`
	AdvanceNoticeDays           int  `json:"advance_notice_days,omitempty"`
}

type AccrualType string

const (
	AccrualYearly  AccrualType = "yearly"
	AccrualMonthly AccrualType = "monthly"
)

// LeaveTypeConfigs is stored as JSONB, order preserved.
type LeaveTypeConfigs []LeaveTypeConfig

func (c LeaveTypeConfigs) Value() (driver.Value, error) {
	if len(c) == 0 {
		return nil, nil
	}
	return json.Marshal(c)
}

func (c *LeaveTypeConfigs) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan LeaveTypeConfigs: invalid type")
	}
	return json.Unmarshal(bytes, c)
}

// PayrollFormula selects how leave days convert into currency.
type PayrollFormula string

const (
	FormulaBasicPerDay PayrollFormula = "basic_per_day"
	FormulaGrossPerDay PayrollFormula = "gross_per_day"
	FormulaFixed       PayrollFormula = "fixed"
)

// PayrollIntegration is the policy's payroll conversion settings, stored as JSONB.
type PayrollIntegration struct {
	LOPDeductionFormula PayrollFormula  `json:"lop_deduction_formula"`
	EncashmentFormula   PayrollFormula  `json:"encashment_formula"`
	FixedAmountPerDay   decimal.Decimal `json:"fixed_amount_per_day,omitempty"`
}

func (pi PayrollIntegration) Value() (driver.Value, error) {
	if pi.LOPDeductionFormula == "" && pi.EncashmentFormula == "" {
		return nil, nil
	}
	return json.Marshal(pi)
}

func (pi *PayrollIntegration) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan PayrollIntegration: invalid type")
	}
	return json.Unmarshal(bytes, pi)
}

// ResolvedPolicy is the outcome of precedence resolution. Level records which
// scope matched, for audit only.
type ResolvedPolicy struct {
	Policy LeavePolicy
	Level  Scope
}
