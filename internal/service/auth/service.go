package auth

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/furniflow/erp-backend-go/internal/domain/auth"
	"github.com/furniflow/erp-backend-go/internal/domain/master/branch"
	"github.com/furniflow/erp-backend-go/internal/domain/settings"
	"github.com/furniflow/erp-backend-go/internal/domain/user"
	"github.com/furniflow/erp-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	userRepo      user.UserRepository
	roleRepo      user.RoleRepository
	branchRepo    branch.BranchRepository
	dashboardRepo settings.DashboardConfigRepository
	jwt           jwt.Service
}

func NewAuthService(
	userRepo user.UserRepository,
	roleRepo user.RoleRepository,
	branchRepo branch.BranchRepository,
	dashboardRepo settings.DashboardConfigRepository,
	jwtService jwt.Service,
) auth.AuthService {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		roleRepo:      roleRepo,
		branchRepo:    branchRepo,
		dashboardRepo: dashboardRepo,
		jwt:           jwtService,
	}
}

func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	users, err := a.userRepo.Load(ctx)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to load users: %w", err)
	}
	u, ok := user.FindByEmail(users, strings.TrimSpace(req.Email))
	if !ok || u.PasswordHash == "" {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	slog.Info("user logged in", "user_id", u.ID, "branch_id", u.BranchID)
	return a.issueTokens(u, u.BranchID)
}

func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, email string) (auth.TokenResponse, error) {
	users, err := a.userRepo.Load(ctx)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to load users: %w", err)
	}
	u, ok := user.FindByEmail(users, email)
	if !ok {
		return auth.TokenResponse{}, auth.ErrGoogleAccountUnknown
	}
	return a.issueTokens(u, u.BranchID)
}

func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AccessTokenResponse{}, err
	}

	userID, branchID, err := a.jwt.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	u, err := a.findUser(ctx, userID)
	if err != nil {
		return auth.AccessTokenResponse{}, err
	}

	token, exp, err := a.jwt.GenerateAccessToken(claimsFor(u, branchID))
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	return auth.AccessTokenResponse{AccessToken: token, AccessTokenExpiresIn: exp}, nil
}

// SelectBranch re-issues the session for another branch. Only HQ users may
// work in a branch other than their own.
func (a *AuthServiceImpl) SelectBranch(ctx context.Context, req auth.SelectBranchRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	u, err := a.findUser(ctx, req.UserID)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	if u.BranchID != branch.HeadquartersID && u.BranchID != req.BranchID {
		return auth.TokenResponse{}, auth.ErrBranchForbidden
	}

	branches, err := a.branchRepo.Load(ctx)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to load branches: %w", err)
	}
	if _, ok := branch.FindByID(branches, req.BranchID); !ok {
		return auth.TokenResponse{}, branch.ErrBranchNotFound
	}

	return a.issueTokens(u, req.BranchID)
}

func (a *AuthServiceImpl) Me(ctx context.Context, userID, activeBranchID string) (auth.MeResponse, error) {
	u, err := a.findUser(ctx, userID)
	if err != nil {
		return auth.MeResponse{}, err
	}

	roles, err := a.roleRepo.Load(ctx)
	if err != nil {
		return auth.MeResponse{}, fmt.Errorf("failed to load roles: %w", err)
	}
	permissions := []user.Module{}
	if role, ok := user.FindRoleByName(roles, u.Role); ok {
		permissions = role.Permissions
	}

	configs, err := a.dashboardRepo.Load(ctx)
	if err != nil {
		return auth.MeResponse{}, fmt.Errorf("failed to load dashboard config: %w", err)
	}
	widgets := []settings.Widget{}
	if idx := slices.IndexFunc(configs, func(c settings.DashboardRoleConfig) bool { return c.Role == u.Role }); idx >= 0 {
		widgets = configs[idx].VisibleWidgets
	}

	if activeBranchID == "" {
		activeBranchID = u.BranchID
	}
	return auth.MeResponse{
		User:           user.ToResponse(u),
		ActiveBranchID: activeBranchID,
		Permissions:    permissions,
		Widgets:        widgets,
	}, nil
}

func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if _, _, err := a.jwt.ParseRefreshToken(refreshToken); err != nil {
		return auth.ErrInvalidToken
	}
	token, err := a.jwt.JWTAuth().Decode(refreshToken)
	if err != nil {
		return auth.ErrInvalidToken
	}
	a.jwt.RevokeToken(refreshToken, token.Expiration().Unix())
	return nil
}

func (a *AuthServiceImpl) issueTokens(u user.User, branchID string) (auth.TokenResponse, error) {
	var resp auth.TokenResponse
	var err error

	resp.AccessToken, resp.AccessTokenExpiresIn, err = a.jwt.GenerateAccessToken(claimsFor(u, branchID))
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	resp.RefreshToken, resp.RefreshTokenExpiresIn, err = a.jwt.GenerateRefreshToken(u.ID, branchID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}
	resp.BranchID = branchID
	return resp, nil
}

func (a *AuthServiceImpl) findUser(ctx context.Context, id string) (user.User, error) {
	users, err := a.userRepo.Load(ctx)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to load users: %w", err)
	}
	idx := slices.IndexFunc(users, func(u user.User) bool { return u.ID == id })
	if idx < 0 {
		return user.User{}, user.ErrUserNotFound
	}
	return users[idx], nil
}

func claimsFor(u user.User, branchID string) jwt.Claims {
	return jwt.Claims{
		UserID:   u.ID,
		Email:    u.Email,
		Name:     u.Name,
		Role:     u.Role,
		BranchID: branchID,
	}
}
