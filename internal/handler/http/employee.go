package http

import (
	"net/http"

	"github.com/furniflow/erp-backend-go/internal/domain/employee"
	"github.com/furniflow/erp-backend-go/internal/handler/http/middleware"
	"github.com/furniflow/erp-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	ListDepartments(w http.ResponseWriter, r *http.Request)
	CreateDepartment(w http.ResponseWriter, r *http.Request)
	DeleteDepartment(w http.ResponseWriter, r *http.Request)

	ListStatuses(w http.ResponseWriter, r *http.Request)
	CreateStatus(w http.ResponseWriter, r *http.Request)
	DeleteStatus(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{employeeService: employeeService}
}

// List handles GET /employees?department=&status=&search=
func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	employees, err := h.employeeService.List(r.Context(), employee.ListEmployeeRequest{
		BranchScope: middleware.BranchScope(r.Context()),
		Department:  q.Get("department"),
		Status:      q.Get("status"),
		Search:      q.Get("search"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, employees)
}

func (h *employeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	emp, err := h.employeeService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, emp)
}

func (h *employeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if !decodeJSON(w, r, &req, "CreateEmployee") {
		return
	}
	req.BranchID = ownBranch(r, req.BranchID)

	created, err := h.employeeService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Employee created successfully", created)
}

func (h *employeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateEmployeeRequest
	if !decodeJSON(w, r, &req, "UpdateEmployee") {
		return
	}
	req.ID = chi.URLParam(r, "id")
	if req.BranchID != nil {
		own := ownBranch(r, *req.BranchID)
		req.BranchID = &own
	}

	updated, err := h.employeeService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee updated successfully", updated)
}

func (h *employeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.employeeService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee deleted successfully", nil)
}

// ========== DEPARTMENTS ==========

func (h *employeeHandlerImpl) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.employeeService.ListDepartments(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, departments)
}

func (h *employeeHandlerImpl) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req employee.NamedRequest
	if !decodeJSON(w, r, &req, "CreateDepartment") {
		return
	}
	dept, err := h.employeeService.CreateDepartment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Department created successfully", dept)
}

func (h *employeeHandlerImpl) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	if err := h.employeeService.DeleteDepartment(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Department deleted successfully", nil)
}

// ========== STATUSES ==========

func (h *employeeHandlerImpl) ListStatuses(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.employeeService.ListStatuses(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, statuses)
}

func (h *employeeHandlerImpl) CreateStatus(w http.ResponseWriter, r *http.Request) {
	var req employee.NamedRequest
	if !decodeJSON(w, r, &req, "CreateStatus") {
		return
	}
	status, err := h.employeeService.CreateStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Status created successfully", status)
}

func (h *employeeHandlerImpl) DeleteStatus(w http.ResponseWriter, r *http.Request) {
	if err := h.employeeService.DeleteStatus(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Status deleted successfully", nil)
}
