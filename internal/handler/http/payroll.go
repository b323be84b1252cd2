package http

import (
	"net/http"

	"github.com/furniflow/erp-backend-go/internal/domain/payroll"
	"github.com/furniflow/erp-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	// FinanceSummary handles GET /payroll/employees/{id}/finance
	FinanceSummary(w http.ResponseWriter, r *http.Request)
	// PayCommission handles POST /payroll/employees/{id}/commission-payouts
	PayCommission(w http.ResponseWriter, r *http.Request)
	// PayDirect handles POST /payroll/employees/{id}/payments
	PayDirect(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

func (h *payrollHandlerImpl) FinanceSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.payrollService.FinanceSummary(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}

func (h *payrollHandlerImpl) PayCommission(w http.ResponseWriter, r *http.Request) {
	var req payroll.PayCommissionRequest
	if !decodeJSON(w, r, &req, "PayCommission") {
		return
	}

	result, err := h.payrollService.PayCommission(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Commission paid", result)
}

func (h *payrollHandlerImpl) PayDirect(w http.ResponseWriter, r *http.Request) {
	var req payroll.DirectPaymentRequest
	if !decodeJSON(w, r, &req, "PayDirect") {
		return
	}

	result, err := h.payrollService.PayDirect(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Payment recorded", result)
}
