package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetDashboard returns the widgets visible to role, filled from the
	// branch-scoped orders and ledger.
	GetDashboard(ctx context.Context, branchScope, role string) (*DashboardResponse, error)
}
