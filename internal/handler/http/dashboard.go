package http

import (
	"net/http"

	"github.com/furniflow/erp-backend-go/internal/domain/dashboard"
	"github.com/furniflow/erp-backend-go/internal/handler/http/middleware"
	"github.com/furniflow/erp-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	GetDashboard(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetDashboard handles GET /dashboard
func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFrom(r.Context())

	result, err := h.dashboardService.GetDashboard(r.Context(), claims.BranchID, claims.Role)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
