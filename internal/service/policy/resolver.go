package policy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/domain/employee"
	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/domain/policy"
)

// lookup is one precedence level of the resolution chain. value extracts the
// scope value to match for an employee; ok=false skips the level entirely
// (e.g. an employee without a designation has no role-level policy).
type lookup struct {
	level policy.Scope
	value func(emp employee.Employee) (scopeValue *string, ok bool)
}

// Resolver picks the single effective policy for an employee by strict
// precedence: employee > role > department > company > injected default.
// Resolution is total: it never returns an empty result, and only storage
// failures surface as errors.
type Resolver struct {
	policies      policy.PolicyRepository
	defaultPolicy policy.LeavePolicy

	// checkExpiry additionally filters on effective_to during lookups. Off
	// by default: once active, policies do not expire unless superseded.
	checkExpiry bool

	chain []lookup
}

func NewResolver(policies policy.PolicyRepository, defaultPolicy policy.LeavePolicy, checkExpiry bool) *Resolver {
	return &Resolver{
		policies:      policies,
		defaultPolicy: defaultPolicy,
		checkExpiry:   checkExpiry,
		chain: []lookup{
			{
				level: policy.ScopeEmployee,
				value: func(emp employee.Employee) (*string, bool) {
					return &emp.ID, true
				},
			},
			{
				level: policy.ScopeRole,
				value: func(emp employee.Employee) (*string, bool) {
					if emp.Designation == "" {
						return nil, false
					}
					return &emp.Designation, true
				},
			},
			{
				level: policy.ScopeDepartment,
				value: func(emp employee.Employee) (*string, bool) {
					if emp.Department == "" {
						return nil, false
					}
					return &emp.Department, true
				},
			},
			{
				level: policy.ScopeCompany,
				value: func(emp employee.Employee) (*string, bool) {
					return nil, true
				},
			},
		},
	}
}

// Resolve walks the precedence chain and stops at the first match. The
// returned level is audit information only.
func (r *Resolver) Resolve(ctx context.Context, emp employee.Employee, asOf time.Time) (policy.ResolvedPolicy, error) {
	for _, l := range r.chain {
		scopeValue, ok := l.value(emp)
		if !ok {
			continue
		}

		found, err := r.policies.FindEffective(ctx, l.level, scopeValue, asOf, r.checkExpiry)
		if err != nil {
			if errors.Is(err, policy.ErrPolicyNotFound) {
				continue
			}
			return policy.ResolvedPolicy{}, fmt.Errorf("failed to look up %s-level policy: %w", l.level, err)
		}

		return policy.ResolvedPolicy{Policy: found, Level: l.level}, nil
	}

	slog.Debug("No stored policy matched, using default",
		"employee_id", emp.ID,
		"as_of", asOf.Format("2006-01-02"),
	)
	return policy.ResolvedPolicy{Policy: r.defaultPolicy, Level: policy.ScopeDefault}, nil
}
