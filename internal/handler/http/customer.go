package http

import (
	"net/http"

	"github.com/furniflow/erp-backend-go/internal/domain/customer"
	"github.com/furniflow/erp-backend-go/internal/domain/ledger"
	"github.com/furniflow/erp-backend-go/internal/handler/http/middleware"
	"github.com/furniflow/erp-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type CustomerHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	RecordPayment(w http.ResponseWriter, r *http.Request)
	RecentPayments(w http.ResponseWriter, r *http.Request)
}

type customerHandlerImpl struct {
	customerService customer.CustomerService
	ledgerService   ledger.LedgerService
}

func NewCustomerHandler(customerService customer.CustomerService, ledgerService ledger.LedgerService) CustomerHandler {
	return &customerHandlerImpl{customerService: customerService, ledgerService: ledgerService}
}

// List handles GET /customers?search=&tag=
func (h *customerHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customerService.List(r.Context(), customer.ListCustomerRequest{
		BranchScope: middleware.BranchScope(r.Context()),
		Search:      r.URL.Query().Get("search"),
		Tag:         r.URL.Query().Get("tag"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, customers)
}

// Get returns the customer with their orders and payments.
func (h *customerHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.customerService.Detail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, detail)
}

func (h *customerHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req customer.CustomerRequest
	if !decodeJSON(w, r, &req, "CreateCustomer") {
		return
	}

	created, err := h.customerService.Create(r.Context(), middleware.BranchScope(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Customer created successfully", created)
}

func (h *customerHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req customer.CustomerRequest
	if !decodeJSON(w, r, &req, "UpdateCustomer") {
		return
	}

	updated, err := h.customerService.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Customer updated successfully", updated)
}

func (h *customerHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.customerService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Customer deleted successfully", nil)
}

// ========== PAYMENTS ==========

// RecordPayment handles POST /customers/{id}/payments
func (h *customerHandlerImpl) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req ledger.RecordPaymentRequest
	if !decodeJSON(w, r, &req, "RecordPayment") {
		return
	}
	req.CustomerID = chi.URLParam(r, "id")

	payment, err := h.ledgerService.RecordPayment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Payment recorded", payment)
}

// RecentPayments handles GET /payments/recent?payment_method=
func (h *customerHandlerImpl) RecentPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.ledgerService.RecentPayments(r.Context(),
		middleware.BranchScope(r.Context()),
		r.URL.Query().Get("payment_method"),
	)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, payments)
}
