package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/furniflow/erp-backend-go/internal/domain/attendance"
	"github.com/furniflow/erp-backend-go/internal/domain/master/branch"
	"github.com/furniflow/erp-backend-go/internal/domain/settings"
	"github.com/furniflow/erp-backend-go/internal/domain/user"
	"github.com/furniflow/erp-backend-go/internal/pkg/rbac"
	"github.com/furniflow/erp-backend-go/internal/pkg/utils"
	"github.com/furniflow/erp-backend-go/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type SettingsServiceImpl struct {
	store         repository.Store
	branchRepo    branch.BranchRepository
	userRepo      user.UserRepository
	roleRepo      user.RoleRepository
	configRepo    settings.SystemConfigRepository
	dashboardRepo settings.DashboardConfigRepository
	geoRepo       settings.GeoRepository
	backup        settings.BackupStore
	enforcer      rbac.Enforcer
}

func NewSettingsService(
	store repository.Store,
	branchRepo branch.BranchRepository,
	userRepo user.UserRepository,
	roleRepo user.RoleRepository,
	configRepo settings.SystemConfigRepository,
	dashboardRepo settings.DashboardConfigRepository,
	geoRepo settings.GeoRepository,
	backup settings.BackupStore,
	enforcer rbac.Enforcer,
) settings.SettingsService {
	return &SettingsServiceImpl{
		store:         store,
		branchRepo:    branchRepo,
		userRepo:      userRepo,
		roleRepo:      roleRepo,
		configRepo:    configRepo,
		dashboardRepo: dashboardRepo,
		geoRepo:       geoRepo,
		backup:        backup,
		enforcer:      enforcer,
	}
}

// ========== BRANCHES ==========

func (s *SettingsServiceImpl) ListBranches(ctx context.Context) ([]branch.Branch, error) {
	return s.branchRepo.Load(ctx)
}

func (s *SettingsServiceImpl) CreateBranch(ctx context.Context, req branch.CreateBranchRequest) (branch.Branch, error) {
	if err := req.Validate(); err != nil {
		return branch.Branch{}, err
	}

	id := strings.ToUpper(strings.TrimSpace(req.ID))
	if id == "" {
		id = utils.NewID("BR")
	}
	created := branch.Branch{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Address:     req.Address,
		Currency:    req.Currency,
		Coordinates: req.Coordinates,
	}

	err := repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		branches, err := s.branchRepo.Load(ctx)
		if err != nil {
			return err
		}
		if _, exists := branch.FindByID(branches, id); exists {
			return branch.ErrBranchIDExists
		}
		return s.branchRepo.Store(ctx, append(branches, created))
	})
	if err != nil {
		return branch.Branch{}, err
	}
	return created, nil
}

func (s *SettingsServiceImpl) UpdateBranch(ctx context.Context, req branch.UpdateBranchRequest) (branch.Branch, error) {
	if err := req.Validate(); err != nil {
		return branch.Branch{}, err
	}

	var updated branch.Branch
	err := s.mutateBranch(ctx, req.ID, func(b *branch.Branch) error {
		if req.Name != nil {
			b.Name = strings.TrimSpace(*req.Name)
		}
		if req.Address != nil {
			b.Address = *req.Address
		}
		if req.Currency != nil {
			b.Currency = *req.Currency
		}
		if req.Coordinates != nil {
			c := *req.Coordinates
			b.Coordinates = &c
		}
		updated = *b
		return nil
	})
	if err != nil {
		return branch.Branch{}, err
	}
	return updated, nil
}

func (s *SettingsServiceImpl) DeleteBranch(ctx context.Context, id string) error {
	if id == branch.HeadquartersID {
		return branch.ErrCannotDeleteHeadquarters
	}
	return repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		branches, err := s.branchRepo.Load(ctx)
		if err != nil {
			return err
		}
		idx := slices.IndexFunc(branches, func(b branch.Branch) bool { return b.ID == id })
		if idx < 0 {
			return branch.ErrBranchNotFound
		}
		return s.branchRepo.Store(ctx, slices.Delete(branches, idx, idx+1))
	})
}

// SetBranchLocation pins the branch geofence to wherever the caller's device
// is standing.
func (s *SettingsServiceImpl) SetBranchLocation(ctx context.Context, id string, location attendance.LocationProvider, req branch.SetLocationRequest) (branch.Branch, error) {
	pos, err := location.Current(ctx)
	if err != nil {
		return branch.Branch{}, err
	}
	if !utils.IsValidCoordinate(pos.Latitude, pos.Longitude) {
		return branch.Branch{}, attendance.ErrLocationUnavailable
	}
	radius := req.Radius
	if radius <= 0 {
		radius = attendance.DefaultRadiusMeters
	}

	var updated branch.Branch
	err = s.mutateBranch(ctx, id, func(b *branch.Branch) error {
		b.Coordinates = &branch.Coordinates{Lat: pos.Latitude, Lng: pos.Longitude, Radius: radius}
		updated = *b
		return nil
	})
	if err != nil {
		return branch.Branch{}, err
	}

	slog.Info("branch location set", "branch_id", id, "lat", pos.Latitude, "lng", pos.Longitude, "radius", radius)
	return updated, nil
}

func (s *SettingsServiceImpl) mutateBranch(ctx context.Context, id string, fn func(b *branch.Branch) error) error {
	return repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		branches, err := s.branchRepo.Load(ctx)
		if err != nil {
			return err
		}
		idx := slices.IndexFunc(branches, func(b branch.Branch) bool { return b.ID == id })
		if idx < 0 {
			return branch.ErrBranchNotFound
		}
		if err := fn(&branches[idx]); err != nil {
			return err
		}
		return s.branchRepo.Store(ctx, branches)
	})
}

// ========== ROLES ==========

func (s *SettingsServiceImpl) ListRoles(ctx context.Context) ([]user.Role, error) {
	return s.roleRepo.Load(ctx)
}

// SaveRole creates a role when id is empty and replaces it otherwise. A
// rename is carried over to every user holding the role.
func (s *SettingsServiceImpl) SaveRole(ctx context.Context, id string, req user.RoleRequest) (user.Role, error) {
	if err := req.Validate(); err != nil {
		return user.Role{}, err
	}

	saved := user.Role{ID: id, Name: strings.TrimSpace(req.Name), Permissions: req.Permissions}
	if saved.Permissions == nil {
		saved.Permissions = []user.Module{}
	}

	var roles []user.Role
	err := repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		var err error
		roles, err = s.roleRepo.Load(ctx)
		if err != nil {
			return err
		}
		for _, r := range roles {
			if r.ID != id && strings.EqualFold(r.Name, saved.Name) {
				return user.ErrRoleNameExists
			}
		}

		if id == "" {
			saved.ID = utils.NewID("role")
			roles = append(roles, saved)
			return s.roleRepo.Store(ctx, roles)
		}

		idx := slices.IndexFunc(roles, func(r user.Role) bool { return r.ID == id })
		if idx < 0 {
			return user.ErrRoleNotFound
		}
		oldName := roles[idx].Name
		saved.IsSystem = roles[idx].IsSystem
		roles[idx] = saved
		if err := s.roleRepo.Store(ctx, roles); err != nil {
			return err
		}
		if oldName != saved.Name {
			return s.renameRole(ctx, oldName, saved.Name)
		}
		return nil
	})
	if err != nil {
		return user.Role{}, err
	}

	s.reloadPolicy(roles)
	return saved, nil
}

func (s *SettingsServiceImpl) renameRole(ctx context.Context, from, to string) error {
	users, err := s.userRepo.Load(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].Role == from {
			users[i].Role = to
		}
	}
	if err := s.userRepo.Store(ctx, users); err != nil {
		return err
	}

	configs, err := s.dashboardRepo.Load(ctx)
	if err != nil {
		return err
	}
	for i := range configs {
		if configs[i].Role == from {
			configs[i].Role = to
		}
	}
	return s.dashboardRepo.Store(ctx, configs)
}

func (s *SettingsServiceImpl) DeleteRole(ctx context.Context, id string) error {
	var roles []user.Role
	err := repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		var err error
		roles, err = s.roleRepo.Load(ctx)
		if err != nil {
			return err
		}
		idx := slices.IndexFunc(roles, func(r user.Role) bool { return r.ID == id })
		if idx < 0 {
			return user.ErrRoleNotFound
		}
		if roles[idx].IsSystem {
			return user.ErrCannotDeleteSystemRole
		}

		users, err := s.userRepo.Load(ctx)
		if err != nil {
			return err
		}
		for _, u := range users {
			if u.Role == roles[idx].Name {
				return user.ErrRoleInUse
			}
		}

		roles = slices.Delete(roles, idx, idx+1)
		return s.roleRepo.Store(ctx, roles)
	})
	if err != nil {
		return err
	}

	s.reloadPolicy(roles)
	return nil
}

func (s *SettingsServiceImpl) reloadPolicy(roles []user.Role) {
	if s.enforcer == nil {
		return
	}
	if err := s.enforcer.LoadRoles(roles); err != nil {
		slog.Error("failed to reload rbac policy", "error", err)
	}
}

// ========== USERS ==========

func (s *SettingsServiceImpl) ListUsers(ctx context.Context) ([]user.UserResponse, error) {
	users, err := s.userRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	result := make([]user.UserResponse, len(users))
	for i, u := range users {
		result[i] = user.ToResponse(u)
	}
	return result, nil
}

func (s *SettingsServiceImpl) CreateUser(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created := user.User{
		ID:           utils.NewID("USR"),
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		Role:         req.Role,
		BranchID:     req.BranchID,
		PasswordHash: string(hash),
	}
	err = repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		if err := s.ensureRoleAndBranch(ctx, created.Role, created.BranchID); err != nil {
			return err
		}
		users, err := s.userRepo.Load(ctx)
		if err != nil {
			return err
		}
		if _, taken := user.FindByEmail(users, created.Email); taken {
			return user.ErrUserEmailExists
		}
		return s.userRepo.Store(ctx, append(users, created))
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	slog.Info("user created", "user_id", created.ID, "role", created.Role, "branch_id", created.BranchID)
	return user.ToResponse(created), nil
}

func (s *SettingsServiceImpl) UpdateUser(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	var newHash string
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
		newHash = string(hash)
	}

	var updated user.User
	err := repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		users, err := s.userRepo.Load(ctx)
		if err != nil {
			return err
		}
		idx := slices.IndexFunc(users, func(u user.User) bool { return u.ID == req.ID })
		if idx < 0 {
			return user.ErrUserNotFound
		}
		u := &users[idx]

		if req.Email != nil {
			if other, taken := user.FindByEmail(users, *req.Email); taken && other.ID != u.ID {
				return user.ErrUserEmailExists
			}
			u.Email = strings.TrimSpace(*req.Email)
		}
		if req.Name != nil {
			u.Name = strings.TrimSpace(*req.Name)
		}
		if req.Role != nil {
			u.Role = *req.Role
		}
		if req.BranchID != nil {
			u.BranchID = *req.BranchID
		}
		if newHash != "" {
			u.PasswordHash = newHash
		}
		if err := s.ensureRoleAndBranch(ctx, u.Role, u.BranchID); err != nil {
			return err
		}

		updated = *u
		return s.userRepo.Store(ctx, users)
	})
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(updated), nil
}

func (s *SettingsServiceImpl) DeleteUser(ctx context.Context, id string) error {
	return repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		users, err := s.userRepo.Load(ctx)
		if err != nil {
			return err
		}
		idx := slices.IndexFunc(users, func(u user.User) bool { return u.ID == id })
		if idx < 0 {
			return user.ErrUserNotFound
		}
		return s.userRepo.Store(ctx, slices.Delete(users, idx, idx+1))
	})
}

func (s *SettingsServiceImpl) ensureRoleAndBranch(ctx context.Context, role, branchID string) error {
	roles, err := s.roleRepo.Load(ctx)
	if err != nil {
		return err
	}
	if _, ok := user.FindRoleByName(roles, role); !ok {
		return user.ErrRoleNotFound
	}

	branches, err := s.branchRepo.Load(ctx)
	if err != nil {
		return err
	}
	if _, ok := branch.FindByID(branches, branchID); !ok {
		return branch.ErrBranchNotFound
	}
	return nil
}

// ========== SYSTEM CONFIG ==========

func (s *SettingsServiceImpl) GetSystemConfig(ctx context.Context) (settings.SystemConfig, error) {
	configs, err := s.configRepo.Load(ctx)
	if err != nil {
		return settings.SystemConfig{}, fmt.Errorf("failed to load system config: %w", err)
	}
	return settings.Current(configs), nil
}

func (s *SettingsServiceImpl) UpdateSystemConfig(ctx context.Context, req settings.SystemConfigRequest) (settings.SystemConfig, error) {
	if err := req.Validate(); err != nil {
		return settings.SystemConfig{}, err
	}

	updated := settings.SystemConfig{
		ID:                         settings.SystemConfigID,
		CompanyName:                strings.TrimSpace(req.CompanyName),
		SupportEmail:               req.SupportEmail,
		OrderPrefix:                strings.TrimSpace(req.OrderPrefix),
		DefaultCurrency:            req.DefaultCurrency,
		DefaultCountry:             req.DefaultCountry,
		DefaultTimezone:            req.DefaultTimezone,
		StandardMonthlyWorkingDays: req.StandardMonthlyWorkingDays,
	}
	err := repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		return s.configRepo.Store(ctx, []settings.SystemConfig{updated})
	})
	if err != nil {
		return settings.SystemConfig{}, err
	}
	return updated, nil
}

// ========== DASHBOARD ==========

func (s *SettingsServiceImpl) ListDashboardConfigs(ctx context.Context) ([]settings.DashboardRoleConfig, error) {
	return s.dashboardRepo.Load(ctx)
}

func (s *SettingsServiceImpl) SetDashboardConfig(ctx context.Context, role string, req settings.DashboardConfigRequest) (settings.DashboardRoleConfig, error) {
	if err := req.Validate(); err != nil {
		return settings.DashboardRoleConfig{}, err
	}

	widgets := req.VisibleWidgets
	if widgets == nil {
		widgets = []settings.Widget{}
	}
	saved := settings.DashboardRoleConfig{Role: role, VisibleWidgets: widgets}

	err := repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		roles, err := s.roleRepo.Load(ctx)
		if err != nil {
			return err
		}
		if _, ok := user.FindRoleByName(roles, role); !ok {
			return user.ErrRoleNotFound
		}

		configs, err := s.dashboardRepo.Load(ctx)
		if err != nil {
			return err
		}
		idx := slices.IndexFunc(configs, func(c settings.DashboardRoleConfig) bool { return c.Role == role })
		if idx < 0 {
			configs = append(configs, saved)
		} else {
			configs[idx] = saved
		}
		return s.dashboardRepo.Store(ctx, configs)
	})
	if err != nil {
		return settings.DashboardRoleConfig{}, err
	}
	return saved, nil
}

// ========== GEO ==========

func (s *SettingsServiceImpl) ListGeoRegions(ctx context.Context) ([]settings.GeoRegion, error) {
	return s.geoRepo.Load(ctx)
}

// SaveGeoRegion adds a country or replaces the counties of an existing one.
func (s *SettingsServiceImpl) SaveGeoRegion(ctx context.Context, req settings.GeoRegionRequest) (settings.GeoRegion, error) {
	if err := req.Validate(); err != nil {
		return settings.GeoRegion{}, err
	}

	counties := req.Counties
	if counties == nil {
		counties = []string{}
	}
	saved := settings.GeoRegion{Country: strings.TrimSpace(req.Country), Counties: counties}

	err := repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		regions, err := s.geoRepo.Load(ctx)
		if err != nil {
			return err
		}
		idx := slices.IndexFunc(regions, func(g settings.GeoRegion) bool { return strings.EqualFold(g.Country, saved.Country) })
		if idx < 0 {
			regions = append(regions, saved)
		} else {
			regions[idx] = saved
		}
		return s.geoRepo.Store(ctx, regions)
	})
	if err != nil {
		return settings.GeoRegion{}, err
	}
	return saved, nil
}

func (s *SettingsServiceImpl) DeleteGeoRegion(ctx context.Context, country string) error {
	return repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		regions, err := s.geoRepo.Load(ctx)
		if err != nil {
			return err
		}
		idx := slices.IndexFunc(regions, func(g settings.GeoRegion) bool { return strings.EqualFold(g.Country, country) })
		if idx < 0 {
			return settings.ErrGeoRegionNotFound
		}
		return s.geoRepo.Store(ctx, slices.Delete(regions, idx, idx+1))
	})
}

// ========== BACKUP ==========

func (s *SettingsServiceImpl) ExportBackup(ctx context.Context) (map[string]json.RawMessage, error) {
	return s.backup.Export(ctx)
}

// ImportBackup restores a backup and reloads the role policy from it.
func (s *SettingsServiceImpl) ImportBackup(ctx context.Context, backup map[string]json.RawMessage) error {
	if err := s.backup.Import(ctx, backup); err != nil {
		return err
	}
	roles, err := s.roleRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load roles: %w", err)
	}
	s.reloadPolicy(roles)
	return nil
}
