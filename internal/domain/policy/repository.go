package policy

import (
	"context"
	"time"
)

// PolicyRepository - interface for leave_policies table
type PolicyRepository interface {
	Create(ctx context.Context, p LeavePolicy) (LeavePolicy, error)
	GetByID(ctx context.Context, id string) (LeavePolicy, error)
	List(ctx context.Context) ([]LeavePolicy, error)
	Update(ctx context.Context, p LeavePolicy) error
	Deactivate(ctx context.Context, id string) error

	// FindEffective returns the active policy at the given scope with the
	// latest effective_from <= asOf. When checkExpiry is set, policies whose
	// effective_to has passed are excluded as well. Returns
	// ErrPolicyNotFound when nothing matches.
	FindEffective(ctx context.Context, scope Scope, scopeValue *string, asOf time.Time, checkExpiry bool) (LeavePolicy, error)

	// DeactivateEffective flips is_active on the currently effective policy
	// at the given scope, if any. Used when a new version supersedes it.
	DeactivateEffective(ctx context.Context, scope Scope, scopeValue *string, asOf time.Time) error
}
