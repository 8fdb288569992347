package policy

import "errors"

var (
	ErrPolicyNotFound         = errors.New("leave policy not found")
	ErrPolicyAlreadyInactive  = errors.New("leave policy is already inactive")
	ErrInvalidScope           = errors.New("invalid policy scope")
	ErrScopeValueRequired     = errors.New("scope_value is required for non-company scopes")
	ErrInvalidPayrollFormula  = errors.New("invalid payroll formula")
	ErrNoLeaveTypesConfigured = errors.New("policy must configure at least one leave type")
)
