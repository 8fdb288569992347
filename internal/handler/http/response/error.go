package response

import (
	"errors"
	"net/http"

	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/domain/employee"
	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/domain/leave"
	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/domain/policy"
	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Policy domain errors
	case errors.Is(err, policy.ErrPolicyNotFound):
		NotFound(w, "Leave policy not found")
	case errors.Is(err, policy.ErrPolicyAlreadyInactive):
		Conflict(w, "Leave policy is already inactive")
	case errors.Is(err, policy.ErrInvalidScope),
		errors.Is(err, policy.ErrScopeValueRequired),
		errors.Is(err, policy.ErrInvalidPayrollFormula),
		errors.Is(err, policy.ErrNoLeaveTypesConfigured):
		BadRequest(w, err.Error(), nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrInsufficientEncashableBalance):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, leave.ErrUnknownLeaveType):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "Invalid date range", nil)
	case errors.Is(err, leave.ErrEncashmentNotFound):
		NotFound(w, "Encashment request not found")
	case errors.Is(err, leave.ErrSnapshotNotFound):
		NotFound(w, "Leave balance snapshot not found")
	case errors.Is(err, leave.ErrEncashmentAlreadyProcessed):
		Conflict(w, "Encashment request already processed")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
