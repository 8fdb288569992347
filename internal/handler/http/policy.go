package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/domain/employee"
	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/domain/policy"
	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PolicyHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
	Effective(w http.ResponseWriter, r *http.Request)
}

type PolicyHandlerImpl struct {
	policyService policy.PolicyService
	resolver      policy.PolicyResolver
	employees     employee.EmployeeRepository
}

func NewPolicyHandler(policyService policy.PolicyService, resolver policy.PolicyResolver, employees employee.EmployeeRepository) PolicyHandler {
	return &PolicyHandlerImpl{
		policyService: policyService,
		resolver:      resolver,
		employees:     employees,
	}
}

// Create implements PolicyHandler.
func (h *PolicyHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req policy.CreatePolicyRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create policy decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.policyService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave policy created successfully", created)
}

// Get implements PolicyHandler.
func (h *PolicyHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	policyID := chi.URLParam(r, "id")
	if policyID == "" {
		response.BadRequest(w, "Policy ID is required", nil)
		return
	}

	p, err := h.policyService.Get(r.Context(), policyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, p)
}

// List implements PolicyHandler.
func (h *PolicyHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	policies, err := h.policyService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, policies)
}

// Update implements PolicyHandler.
func (h *PolicyHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req policy.UpdatePolicyRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update policy decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.policyService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave policy updated successfully", updated)
}

// Deactivate implements PolicyHandler.
func (h *PolicyHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	policyID := chi.URLParam(r, "id")
	if policyID == "" {
		response.BadRequest(w, "Policy ID is required", nil)
		return
	}

	if err := h.policyService.Deactivate(r.Context(), policyID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave policy deactivated successfully", nil)
}

// Effective implements PolicyHandler. It resolves the policy governing an
// employee as of a date, defaulting to today.
func (h *PolicyHandlerImpl) Effective(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	asOf := time.Now()
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(w, "as_of must be a valid date (YYYY-MM-DD)", nil)
			return
		}
		asOf = parsed
	}

	emp, err := h.employees.GetByID(ctx, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resolved, err := h.resolver.Resolve(ctx, emp, asOf)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, policy.ResolvedPolicyResponse{
		Policy:       resolved.Policy,
		AppliedLevel: string(resolved.Level),
	})
}
