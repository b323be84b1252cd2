package settings

import (
	"context"
	"encoding/json"

	"github.com/furniflow/erp-backend-go/internal/domain/attendance"
	"github.com/furniflow/erp-backend-go/internal/domain/master/branch"
	"github.com/furniflow/erp-backend-go/internal/domain/user"
)

// SettingsService manages master data that has no module of its own.
type SettingsService interface {
	ListBranches(ctx context.Context) ([]branch.Branch, error)
	CreateBranch(ctx context.Context, req branch.CreateBranchRequest) (branch.Branch, error)
	UpdateBranch(ctx context.Context, req branch.UpdateBranchRequest) (branch.Branch, error)
	DeleteBranch(ctx context.Context, id string) error
	SetBranchLocation(ctx context.Context, id string, location attendance.LocationProvider, req branch.SetLocationRequest) (branch.Branch, error)

	ListRoles(ctx context.Context) ([]user.Role, error)
	SaveRole(ctx context.Context, id string, req user.RoleRequest) (user.Role, error)
	DeleteRole(ctx context.Context, id string) error

	ListUsers(ctx context.Context) ([]user.UserResponse, error)
	CreateUser(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error)
	UpdateUser(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error)
	DeleteUser(ctx context.Context, id string) error

	GetSystemConfig(ctx context.Context) (SystemConfig, error)
	UpdateSystemConfig(ctx context.Context, req SystemConfigRequest) (SystemConfig, error)

	ListDashboardConfigs(ctx context.Context) ([]DashboardRoleConfig, error)
	SetDashboardConfig(ctx context.Context, role string, req DashboardConfigRequest) (DashboardRoleConfig, error)

	ListGeoRegions(ctx context.Context) ([]GeoRegion, error)
	SaveGeoRegion(ctx context.Context, req GeoRegionRequest) (GeoRegion, error)
	DeleteGeoRegion(ctx context.Context, country string) error

	ExportBackup(ctx context.Context) (map[string]json.RawMessage, error)
	ImportBackup(ctx context.Context, backup map[string]json.RawMessage) error
}
