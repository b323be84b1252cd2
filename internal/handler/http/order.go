package http

import (
	"net/http"

	"github.com/furniflow/erp-backend-go/internal/domain/order"
	"github.com/furniflow/erp-backend-go/internal/handler/http/middleware"
	"github.com/furniflow/erp-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type OrderHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	AddExpense(w http.ResponseWriter, r *http.Request)
	PreviewCart(w http.ResponseWriter, r *http.Request)
}

type orderHandlerImpl struct {
	orderService order.OrderService
}

func NewOrderHandler(orderService order.OrderService) OrderHandler {
	return &orderHandlerImpl{orderService: orderService}
}

// List handles GET /orders?status=&customer_id=&sales_rep_id=
func (h *orderHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	orders, err := h.orderService.List(r.Context(), order.ListOrderRequest{
		BranchScope: middleware.BranchScope(r.Context()),
		Status:      order.Status(q.Get("status")),
		CustomerID:  q.Get("customer_id"),
		SalesRepID:  q.Get("sales_rep_id"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, orders)
}

func (h *orderHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.orderService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, detail)
}

func (h *orderHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req order.CreateOrderRequest
	if !decodeJSON(w, r, &req, "CreateOrder") {
		return
	}

	created, err := h.orderService.Create(r.Context(), middleware.BranchScope(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Order created successfully", created)
}

func (h *orderHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req order.UpdateStatusRequest
	if !decodeJSON(w, r, &req, "UpdateOrderStatus") {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.orderService.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Order status updated", updated)
}

func (h *orderHandlerImpl) AddExpense(w http.ResponseWriter, r *http.Request) {
	var req order.AddExpenseRequest
	if !decodeJSON(w, r, &req, "AddOrderExpense") {
		return
	}

	tx, err := h.orderService.AddExpense(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Expense recorded", tx)
}

// PreviewCart handles POST /orders/cart/total
func (h *orderHandlerImpl) PreviewCart(w http.ResponseWriter, r *http.Request) {
	var req order.CartPreviewRequest
	if !decodeJSON(w, r, &req, "PreviewCart") {
		return
	}

	preview, err := h.orderService.PreviewCart(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, preview)
}
