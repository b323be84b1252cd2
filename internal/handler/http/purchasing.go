package http

import (
	"net/http"

	"github.com/furniflow/erp-backend-go/internal/domain/purchasing"
	"github.com/furniflow/erp-backend-go/internal/handler/http/middleware"
	"github.com/furniflow/erp-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PurchasingHandler interface {
	ListSuppliers(w http.ResponseWriter, r *http.Request)
	CreateSupplier(w http.ResponseWriter, r *http.Request)
	UpdateSupplier(w http.ResponseWriter, r *http.Request)
	DeleteSupplier(w http.ResponseWriter, r *http.Request)

	ListPOs(w http.ResponseWriter, r *http.Request)
	CreatePO(w http.ResponseWriter, r *http.Request)
	ReceivePO(w http.ResponseWriter, r *http.Request)
	CancelPO(w http.ResponseWriter, r *http.Request)
}

type purchasingHandlerImpl struct {
	purchasingService purchasing.PurchasingService
}

func NewPurchasingHandler(purchasingService purchasing.PurchasingService) PurchasingHandler {
	return &purchasingHandlerImpl{purchasingService: purchasingService}
}

func (h *purchasingHandlerImpl) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.purchasingService.ListSuppliers(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, suppliers)
}

func (h *purchasingHandlerImpl) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	var req purchasing.SupplierRequest
	if !decodeJSON(w, r, &req, "CreateSupplier") {
		return
	}
	supplier, err := h.purchasingService.CreateSupplier(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Supplier created successfully", supplier)
}

func (h *purchasingHandlerImpl) UpdateSupplier(w http.ResponseWriter, r *http.Request) {
	var req purchasing.SupplierRequest
	if !decodeJSON(w, r, &req, "UpdateSupplier") {
		return
	}
	supplier, err := h.purchasingService.UpdateSupplier(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Supplier updated successfully", supplier)
}

func (h *purchasingHandlerImpl) DeleteSupplier(w http.ResponseWriter, r *http.Request) {
	if err := h.purchasingService.DeleteSupplier(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Supplier deleted successfully", nil)
}

// ListPOs handles GET /purchase-orders?status=&supplier_id=
func (h *purchasingHandlerImpl) ListPOs(w http.ResponseWriter, r *http.Request) {
	pos, err := h.purchasingService.ListPOs(r.Context(), purchasing.ListPORequest{
		BranchScope: middleware.BranchScope(r.Context()),
		Status:      purchasing.Status(r.URL.Query().Get("status")),
		SupplierID:  r.URL.Query().Get("supplier_id"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, pos)
}

func (h *purchasingHandlerImpl) CreatePO(w http.ResponseWriter, r *http.Request) {
	var req purchasing.CreatePORequest
	if !decodeJSON(w, r, &req, "CreatePO") {
		return
	}
	po, err := h.purchasingService.CreatePO(r.Context(), middleware.BranchScope(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Purchase order created", po)
}

// ReceivePO books the goods into stock and the cost into the ledger. The
// body is optional.
func (h *purchasingHandlerImpl) ReceivePO(w http.ResponseWriter, r *http.Request) {
	var req purchasing.ReceivePORequest
	if r.ContentLength > 0 && !decodeJSON(w, r, &req, "ReceivePO") {
		return
	}
	po, err := h.purchasingService.ReceivePO(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Purchase order received", po)
}

func (h *purchasingHandlerImpl) CancelPO(w http.ResponseWriter, r *http.Request) {
	po, err := h.purchasingService.CancelPO(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Purchase order cancelled", po)
}
