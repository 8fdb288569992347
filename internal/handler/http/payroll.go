package http

import (
	"net/http"
	"strconv"

	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/domain/leave"
	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	GetAdjustments(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	adjustmentService leave.AdjustmentService
}

func NewPayrollHandler(adjustmentService leave.AdjustmentService) PayrollHandler {
	return &PayrollHandlerImpl{adjustmentService: adjustmentService}
}

// GetAdjustments implements PayrollHandler.
func (p *PayrollHandlerImpl) GetAdjustments(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		response.BadRequest(w, "month query parameter is required", nil)
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "year query parameter is required", nil)
		return
	}

	adjustment, err := p.adjustmentService.Compute(r.Context(), employeeID, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, adjustment)
}
