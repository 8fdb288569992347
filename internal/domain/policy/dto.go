package policy

import (
	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/pkg/validator"
)

type CreatePolicyRequest struct {
	Name       string  `json:"policy_name"`
	Scope      string  `json:"scope"`
	ScopeValue *string `json:"scope_value,omitempty"`

	LeaveTypes         LeaveTypeConfigs   `json:"leave_types"`
	PayrollIntegration PayrollIntegration `json:"payroll_integration"`

	EffectiveFrom string  `json:"effective_from"`
	EffectiveTo   *string `json:"effective_to,omitempty"`

	// SupersedePrevious deactivates the currently effective policy at the
	// same scope in the same transaction as the insert.
	SupersedePrevious bool `json:"supersede_previous"`
}

var validScopes = []string{
	string(ScopeCompany), string(ScopeDepartment), string(ScopeRole), string(ScopeEmployee),
}

var validFormulas = []string{
	string(FormulaBasicPerDay), string(FormulaGrossPerDay), string(FormulaFixed),
}

func (r *CreatePolicyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "policy_name",
			Message: "policy_name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "policy_name",
			Message: "policy_name must not exceed 255 characters",
		})
	}

	if !validator.IsInSlice(r.Scope, validScopes) {
		errs = append(errs, validator.ValidationError{
			Field:   "scope",
			Message: "scope must be one of company, department, role, employee",
		})
	}
	if r.Scope != string(ScopeCompany) && (r.ScopeValue == nil || validator.IsEmpty(*r.ScopeValue)) {
		errs = append(errs, validator.ValidationError{
			Field:   "scope_value",
			Message: "scope_value is required for non-company scopes",
		})
	}

	if len(r.LeaveTypes) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_types",
			Message: "at least one leave type must be configured",
		})
	}
	for _, cfg := range r.LeaveTypes {
		if validator.IsEmpty(cfg.LeaveType) {
			errs = append(errs, validator.ValidationError{
				Field:   "leave_types",
				Message: "leave_type key must not be empty",
			})
		}
		if cfg.AccrualType != AccrualYearly && cfg.AccrualType != AccrualMonthly {
			errs = append(errs, validator.ValidationError{
				Field:   "leave_types",
				Message: "accrual_type must be yearly or monthly",
			})
		}
	}

	if !validator.IsInSlice(string(r.PayrollIntegration.LOPDeductionFormula), validFormulas) {
		errs = append(errs, validator.ValidationError{
			Field:   "payroll_integration.lop_deduction_formula",
			Message: "formula must be one of basic_per_day, gross_per_day, fixed",
		})
	}
	if !validator.IsInSlice(string(r.PayrollIntegration.EncashmentFormula), validFormulas) {
		errs = append(errs, validator.ValidationError{
			Field:   "payroll_integration.encashment_formula",
			Message: "formula must be one of basic_per_day, gross_per_day, fixed",
		})
	}

	if _, ok := validator.IsValidDate(r.EffectiveFrom); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "effective_from",
			Message: "effective_from must be a valid date (YYYY-MM-DD)",
		})
	}
	if r.EffectiveTo != nil {
		if _, ok := validator.IsValidDate(*r.EffectiveTo); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "effective_to",
				Message: "effective_to must be a valid date (YYYY-MM-DD)",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdatePolicyRequest struct {
	ID                 string              `json:"policy_id"`
	Name               *string             `json:"policy_name,omitempty"`
	LeaveTypes         LeaveTypeConfigs    `json:"leave_types,omitempty"`
	PayrollIntegration *PayrollIntegration `json:"payroll_integration,omitempty"`
	EffectiveTo        *string             `json:"effective_to,omitempty"`
	IsActive           *bool               `json:"is_active,omitempty"`
}

func (r *UpdatePolicyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "policy_id",
			Message: "policy_id is required",
		})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "policy_name",
			Message: "policy_name must not be empty",
		})
	}
	if r.EffectiveTo != nil {
		if _, ok := validator.IsValidDate(*r.EffectiveTo); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "effective_to",
				Message: "effective_to must be a valid date (YYYY-MM-DD)",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ResolvedPolicyResponse is the audit-friendly resolution result.
type ResolvedPolicyResponse struct {
	Policy       LeavePolicy `json:"policy"`
	AppliedLevel string      `json:"applied_level"`
}
