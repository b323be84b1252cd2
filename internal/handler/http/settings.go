package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/furniflow/erp-backend-go/internal/domain/attendance"
	"github.com/furniflow/erp-backend-go/internal/domain/master/branch"
	"github.com/furniflow/erp-backend-go/internal/domain/settings"
	"github.com/furniflow/erp-backend-go/internal/domain/user"
	"github.com/furniflow/erp-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// maxBackupBytes bounds an uploaded backup file.
const maxBackupBytes = 64 << 20

type SettingsHandler interface {
	ListBranches(w http.ResponseWriter, r *http.Request)
	CreateBranch(w http.ResponseWriter, r *http.Request)
	UpdateBranch(w http.ResponseWriter, r *http.Request)
	DeleteBranch(w http.ResponseWriter, r *http.Request)
	SetBranchLocation(w http.ResponseWriter, r *http.Request)

	ListRoles(w http.ResponseWriter, r *http.Request)
	CreateRole(w http.ResponseWriter, r *http.Request)
	UpdateRole(w http.ResponseWriter, r *http.Request)
	DeleteRole(w http.ResponseWriter, r *http.Request)

	ListUsers(w http.ResponseWriter, r *http.Request)
	CreateUser(w http.ResponseWriter, r *http.Request)
	UpdateUser(w http.ResponseWriter, r *http.Request)
	DeleteUser(w http.ResponseWriter, r *http.Request)

	GetSystemConfig(w http.ResponseWriter, r *http.Request)
	UpdateSystemConfig(w http.ResponseWriter, r *http.Request)

	ListDashboardConfigs(w http.ResponseWriter, r *http.Request)
	SetDashboardConfig(w http.ResponseWriter, r *http.Request)

	ListGeoRegions(w http.ResponseWriter, r *http.Request)
	SaveGeoRegion(w http.ResponseWriter, r *http.Request)
	DeleteGeoRegion(w http.ResponseWriter, r *http.Request)

	ExportBackup(w http.ResponseWriter, r *http.Request)
	ImportBackup(w http.ResponseWriter, r *http.Request)
}

type settingsHandlerImpl struct {
	settingsService settings.SettingsService
	now             func() time.Time
}

func NewSettingsHandler(settingsService settings.SettingsService) SettingsHandler {
	return &settingsHandlerImpl{settingsService: settingsService, now: time.Now}
}

// ========== BRANCHES ==========

func (h *settingsHandlerImpl) ListBranches(w http.ResponseWriter, r *http.Request) {
	branches, err := h.settingsService.ListBranches(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, branches)
}

func (h *settingsHandlerImpl) CreateBranch(w http.ResponseWriter, r *http.Request) {
	var req branch.CreateBranchRequest
	if !decodeJSON(w, r, &req, "CreateBranch") {
		return
	}
	created, err := h.settingsService.CreateBranch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Branch created successfully", created)
}

func (h *settingsHandlerImpl) UpdateBranch(w http.ResponseWriter, r *http.Request) {
	var req branch.UpdateBranchRequest
	if !decodeJSON(w, r, &req, "UpdateBranch") {
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.settingsService.UpdateBranch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Branch updated successfully", updated)
}

func (h *settingsHandlerImpl) DeleteBranch(w http.ResponseWriter, r *http.Request) {
	if err := h.settingsService.DeleteBranch(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Branch deleted successfully", nil)
}

type branchLocationRequest struct {
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
	PermissionDenied bool     `json:"permission_denied,omitempty"`
	Radius           float64  `json:"radius"`
}

func (b branchLocationRequest) provider() attendance.LocationProvider {
	switch {
	case b.PermissionDenied:
		return attendance.DeniedLocation{Err: attendance.ErrLocationPermissionDenied}
	case b.Latitude == nil || b.Longitude == nil:
		return attendance.DeniedLocation{Err: attendance.ErrLocationUnavailable}
	default:
		return attendance.StaticLocation{Latitude: *b.Latitude, Longitude: *b.Longitude}
	}
}

// SetBranchLocation handles PUT /settings/branches/{id}/location, pinning the
// geofence to where the admin's device stands.
func (h *settingsHandlerImpl) SetBranchLocation(w http.ResponseWriter, r *http.Request) {
	var req branchLocationRequest
	if !decodeJSON(w, r, &req, "SetBranchLocation") {
		return
	}

	updated, err := h.settingsService.SetBranchLocation(r.Context(), chi.URLParam(r, "id"), req.provider(),
		branch.SetLocationRequest{Radius: req.Radius})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Branch location saved", updated)
}

// ========== ROLES ==========

func (h *settingsHandlerImpl) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.settingsService.ListRoles(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, roles)
}

func (h *settingsHandlerImpl) CreateRole(w http.ResponseWriter, r *http.Request) {
	h.saveRole(w, r, "")
}

func (h *settingsHandlerImpl) UpdateRole(w http.ResponseWriter, r *http.Request) {
	h.saveRole(w, r, chi.URLParam(r, "id"))
}

func (h *settingsHandlerImpl) saveRole(w http.ResponseWriter, r *http.Request, id string) {
	var req user.RoleRequest
	if !decodeJSON(w, r, &req, "SaveRole") {
		return
	}
	role, err := h.settingsService.SaveRole(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if id == "" {
		response.Created(w, "Role created successfully", role)
		return
	}
	response.SuccessWithMessage(w, "Role updated successfully", role)
}

func (h *settingsHandlerImpl) DeleteRole(w http.ResponseWriter, r *http.Request) {
	if err := h.settingsService.DeleteRole(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Role deleted successfully", nil)
}

// ========== USERS ==========

func (h *settingsHandlerImpl) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.settingsService.ListUsers(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, users)
}

func (h *settingsHandlerImpl) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req user.CreateUserRequest
	if !decodeJSON(w, r, &req, "CreateUser") {
		return
	}
	created, err := h.settingsService.CreateUser(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "User created successfully", created)
}

func (h *settingsHandlerImpl) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req user.UpdateUserRequest
	if !decodeJSON(w, r, &req, "UpdateUser") {
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.settingsService.UpdateUser(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "User updated successfully", updated)
}

func (h *settingsHandlerImpl) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.settingsService.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "User deleted successfully", nil)
}

// ========== SYSTEM ==========

func (h *settingsHandlerImpl) GetSystemConfig(w http.ResponseWriter, r *http.Request) {
	config, err := h.settingsService.GetSystemConfig(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, config)
}

func (h *settingsHandlerImpl) UpdateSystemConfig(w http.ResponseWriter, r *http.Request) {
	var req settings.SystemConfigRequest
	if !decodeJSON(w, r, &req, "UpdateSystemConfig") {
		return
	}
	config, err := h.settingsService.UpdateSystemConfig(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Settings saved", config)
}

func (h *settingsHandlerImpl) ListDashboardConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := h.settingsService.ListDashboardConfigs(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, configs)
}

// SetDashboardConfig handles PUT /settings/dashboard/{role}
func (h *settingsHandlerImpl) SetDashboardConfig(w http.ResponseWriter, r *http.Request) {
	var req settings.DashboardConfigRequest
	if !decodeJSON(w, r, &req, "SetDashboardConfig") {
		return
	}
	config, err := h.settingsService.SetDashboardConfig(r.Context(), chi.URLParam(r, "role"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Dashboard saved", config)
}

// ========== GEO ==========

func (h *settingsHandlerImpl) ListGeoRegions(w http.ResponseWriter, r *http.Request) {
	regions, err := h.settingsService.ListGeoRegions(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, regions)
}

func (h *settingsHandlerImpl) SaveGeoRegion(w http.ResponseWriter, r *http.Request) {
	var req settings.GeoRegionRequest
	if !decodeJSON(w, r, &req, "SaveGeoRegion") {
		return
	}
	region, err := h.settingsService.SaveGeoRegion(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Region saved", region)
}

func (h *settingsHandlerImpl) DeleteGeoRegion(w http.ResponseWriter, r *http.Request) {
	if err := h.settingsService.DeleteGeoRegion(r.Context(), chi.URLParam(r, "country")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Region deleted", nil)
}

// ========== BACKUP ==========

// ExportBackup handles GET /settings/backup and downloads every stored
// collection as one JSON file.
func (h *settingsHandlerImpl) ExportBackup(w http.ResponseWriter, r *http.Request) {
	backup, err := h.settingsService.ExportBackup(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("furniflow-backup-%s.json", h.now().Format("2006-01-02"))
	response.Attachment(w, "application/json", filename)
	if err := json.NewEncoder(w).Encode(backup); err != nil {
		slog.Warn("backup download interrupted", "error", err)
	}
}

// ImportBackup handles POST /settings/backup. The upload replaces every
// collection it contains.
func (h *settingsHandlerImpl) ImportBackup(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBackupBytes)

	var backup map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&backup); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.BadRequest(w, "Backup file is too large")
			return
		}
		response.HandleError(w, fmt.Errorf("%w: %v", settings.ErrInvalidBackup, err))
		return
	}

	if err := h.settingsService.ImportBackup(r.Context(), backup); err != nil {
		response.HandleError(w, err)
		return
	}
	slog.Info("backup restored", "keys", len(backup))
	response.SuccessWithMessage(w, "Backup restored", map[string]int{"keys": len(backup)})
}
