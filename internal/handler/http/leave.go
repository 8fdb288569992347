package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/domain/leave"
	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

type LeaveHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)

	SubmitEncashment(w http.ResponseWriter, r *http.Request)
	ApproveEncashment(w http.ResponseWriter, r *http.Request)
	RejectEncashment(w http.ResponseWriter, r *http.Request)

	RunYearEnd(w http.ResponseWriter, r *http.Request)
	ListSnapshots(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	balanceService    leave.BalanceService
	encashmentService leave.EncashmentService
	yearEndService    leave.YearEndService
}

func NewLeaveHandler(balanceService leave.BalanceService, encashmentService leave.EncashmentService, yearEndService leave.YearEndService) LeaveHandler {
	return &LeaveHandlerImpl{
		balanceService:    balanceService,
		encashmentService: encashmentService,
		yearEndService:    yearEndService,
	}
}

// GetBalance implements LeaveHandler.
func (l *LeaveHandlerImpl) GetBalance(w http.ResponseWriter, r *http.Request) {
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

	balance, err := l.balanceService.Calculate(r.Context(), employeeID, asOf)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balance)
}

// SubmitEncashment implements LeaveHandler.
func (l *LeaveHandlerImpl) SubmitEncashment(w http.ResponseWriter, r *http.Request) {
	var req leave.SubmitEncashmentRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SubmitEncashment decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := l.encashmentService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Encashment request submitted successfully", created)
}

// ApproveEncashment implements LeaveHandler.
func (l *LeaveHandlerImpl) ApproveEncashment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Encashment ID is required", nil)
		return
	}

	approved, err := l.encashmentService.Approve(r.Context(), id, reviewerFromClaims(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Encashment request approved successfully", approved)
}

// RejectEncashment implements LeaveHandler.
func (l *LeaveHandlerImpl) RejectEncashment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Encashment ID is required", nil)
		return
	}

	rejected, err := l.encashmentService.Reject(r.Context(), id, reviewerFromClaims(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Encashment request rejected successfully", rejected)
}

// RunYearEnd implements LeaveHandler.
func (l *LeaveHandlerImpl) RunYearEnd(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 2000 || year > 2200 {
		response.BadRequest(w, "Year must be a valid four-digit year", nil)
		return
	}

	result, err := l.yearEndService.Process(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Year-end processing completed", result)
}

// ListSnapshots implements LeaveHandler.
func (l *LeaveHandlerImpl) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	snapshots, err := l.yearEndService.Snapshots(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, snapshots)
}

// reviewerFromClaims pulls the acting employee from the JWT for audit fields.
func reviewerFromClaims(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	if id, ok := claims["employee_id"].(string); ok {
		return id
	}
	if sub, ok := claims["sub"].(string); ok {
		return sub
	}
	return ""
}
