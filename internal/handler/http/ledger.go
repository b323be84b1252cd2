package http

import (
	"net/http"

	"github.com/furniflow/erp-backend-go/internal/domain/ledger"
	"github.com/furniflow/erp-backend-go/internal/handler/http/middleware"
	"github.com/furniflow/erp-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LedgerHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)

	ListCategories(w http.ResponseWriter, r *http.Request)
	CreateCategory(w http.ResponseWriter, r *http.Request)
	DeleteCategory(w http.ResponseWriter, r *http.Request)

	ListPaymentMethods(w http.ResponseWriter, r *http.Request)
	CreatePaymentMethod(w http.ResponseWriter, r *http.Request)
	DeletePaymentMethod(w http.ResponseWriter, r *http.Request)
}

type ledgerHandlerImpl struct {
	ledgerService ledger.LedgerService
}

func NewLedgerHandler(ledgerService ledger.LedgerService) LedgerHandler {
	return &ledgerHandlerImpl{ledgerService: ledgerService}
}

// List handles GET /transactions with optional type, category,
// payment_method, employee_id, customer_id, order_id and limit filters.
func (h *ledgerHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	transactions, err := h.ledgerService.List(r.Context(), ledger.ListTransactionRequest{
		BranchScope:   middleware.BranchScope(r.Context()),
		Type:          ledger.Type(q.Get("type")),
		Category:      q.Get("category"),
		PaymentMethod: q.Get("payment_method"),
		EmployeeID:    q.Get("employee_id"),
		CustomerID:    q.Get("customer_id"),
		OrderID:       q.Get("order_id"),
		Limit:         queryInt(r, "limit", 0),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, transactions)
}

func (h *ledgerHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req ledger.CreateTransactionRequest
	if !decodeJSON(w, r, &req, "CreateTransaction") {
		return
	}
	req.BranchID = ownBranch(r, req.BranchID)

	tx, err := h.ledgerService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Transaction recorded", tx)
}

func (h *ledgerHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.ledgerService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Transaction deleted", nil)
}

// Summary handles GET /transactions/summary
func (h *ledgerHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.ledgerService.Summary(r.Context(), middleware.BranchScope(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}

// ========== ACCOUNT CATEGORIES ==========

func (h *ledgerHandlerImpl) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.ledgerService.ListCategories(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, categories)
}

func (h *ledgerHandlerImpl) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req ledger.CategoryRequest
	if !decodeJSON(w, r, &req, "CreateAccountCategory") {
		return
	}
	category, err := h.ledgerService.CreateCategory(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Category created successfully", category)
}

func (h *ledgerHandlerImpl) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.ledgerService.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Category deleted successfully", nil)
}

// ========== PAYMENT METHODS ==========

func (h *ledgerHandlerImpl) ListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := h.ledgerService.ListPaymentMethods(r.Context(), middleware.BranchScope(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, methods)
}

func (h *ledgerHandlerImpl) CreatePaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req ledger.PaymentMethodRequest
	if !decodeJSON(w, r, &req, "CreatePaymentMethod") {
		return
	}
	req.BranchID = ownBranch(r, req.BranchID)

	method, err := h.ledgerService.CreatePaymentMethod(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Payment method created successfully", method)
}

func (h *ledgerHandlerImpl) DeletePaymentMethod(w http.ResponseWriter, r *http.Request) {
	if err := h.ledgerService.DeletePaymentMethod(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payment method deleted successfully", nil)
}
