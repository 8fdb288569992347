package employee

import "context"

// EmployeeRepository - read-only interface over the employee directory
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)
}
