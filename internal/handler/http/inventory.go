package http

import (
	"net/http"

	"github.com/furniflow/erp-backend-go/internal/domain/inventory"
	"github.com/furniflow/erp-backend-go/internal/handler/http/middleware"
	"github.com/furniflow/erp-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type InventoryHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	ListCategories(w http.ResponseWriter, r *http.Request)
	CreateCategory(w http.ResponseWriter, r *http.Request)
	UpdateCategory(w http.ResponseWriter, r *http.Request)
	DeleteCategory(w http.ResponseWriter, r *http.Request)
}

type inventoryHandlerImpl struct {
	inventoryService inventory.InventoryService
}

func NewInventoryHandler(inventoryService inventory.InventoryService) InventoryHandler {
	return &inventoryHandlerImpl{inventoryService: inventoryService}
}

// List handles GET /inventory?category=&search=
func (h *inventoryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventoryService.List(r.Context(), inventory.ListItemRequest{
		BranchScope: middleware.BranchScope(r.Context()),
		Category:    r.URL.Query().Get("category"),
		Search:      r.URL.Query().Get("search"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, items)
}

func (h *inventoryHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.inventoryService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, item)
}

func (h *inventoryHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req inventory.ItemRequest
	if !decodeJSON(w, r, &req, "CreateItem") {
		return
	}
	req.BranchID = ownBranch(r, req.BranchID)

	item, err := h.inventoryService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Item created successfully", item)
}

func (h *inventoryHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req inventory.ItemRequest
	if !decodeJSON(w, r, &req, "UpdateItem") {
		return
	}
	req.BranchID = ownBranch(r, req.BranchID)

	item, err := h.inventoryService.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Item updated successfully", item)
}

func (h *inventoryHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.inventoryService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Item deleted successfully", nil)
}

// ========== PRODUCT CATEGORIES ==========

func (h *inventoryHandlerImpl) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.inventoryService.ListCategories(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, categories)
}

func (h *inventoryHandlerImpl) CreateCategory(w http.ResponseWriter, r *http.Request) {
	h.saveCategory(w, r, "")
}

func (h *inventoryHandlerImpl) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	h.saveCategory(w, r, chi.URLParam(r, "id"))
}

func (h *inventoryHandlerImpl) saveCategory(w http.ResponseWriter, r *http.Request, id string) {
	var req inventory.CategoryRequest
	if !decodeJSON(w, r, &req, "SaveProductCategory") {
		return
	}
	category, err := h.inventoryService.SaveCategory(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if id == "" {
		response.Created(w, "Category created successfully", category)
		return
	}
	response.SuccessWithMessage(w, "Category updated successfully", category)
}

func (h *inventoryHandlerImpl) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.inventoryService.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Category deleted successfully", nil)
}
