package policy

import (
	"context"
	"time"

	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/domain/employee"
)

// PolicyService - HR-admin facing CRUD over stored policies
type PolicyService interface {
	Create(ctx context.Context, req CreatePolicyRequest) (LeavePolicy, error)
	Get(ctx context.Context, id string) (LeavePolicy, error)
	List(ctx context.Context) ([]LeavePolicy, error)
	Update(ctx context.Context, req UpdatePolicyRequest) (LeavePolicy, error)
	Deactivate(ctx context.Context, id string) error
}

// PolicyResolver resolves the single policy governing an employee at a date.
// Resolution is total: when no stored policy matches, the injected default
// applies. Errors are storage failures only, never resolution gaps.
type PolicyResolver interface {
	Resolve(ctx context.Context, emp employee.Employee, asOf time.Time) (ResolvedPolicy, error)
}
