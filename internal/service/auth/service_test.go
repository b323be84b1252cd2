package auth

import (
	"context"
	"testing"

	"github.com/furniflow/erp-backend-go/internal/domain/auth"
	"github.com/furniflow/erp-backend-go/internal/domain/master/branch"
	"github.com/furniflow/erp-backend-go/internal/domain/settings"
	"github.com/furniflow/erp-backend-go/internal/domain/user"
	"github.com/furniflow/erp-backend-go/internal/pkg/jwt"
	"github.com/furniflow/erp-backend-go/internal/pkg/validator"
	"github.com/furniflow/erp-backend-go/internal/repository"
	"github.com/furniflow/erp-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAccessExp  = "1h"
	testRefreshExp = "24h"
	testSecret     = "test-secret-key-for-jwt"
)

func newTestService(t *testing.T) (auth.AuthService, jwt.Service) {
	t.Helper()
	cols := repository.NewCollections(memory.NewStore(), "test_")
	jwtService := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp)
	return NewAuthService(cols.Users, cols.Roles, cols.Branches, cols.DashboardConfig, jwtService), jwtService
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, jwtService := newTestService(t)

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := svc.Login(ctx, auth.LoginRequest{Email: "Ahmed@furniflow.com", Password: "123"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, "CAI", resp.BranchID)

		userID, branchID, err := jwtService.ParseRefreshToken(resp.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, "u2", userID)
		assert.Equal(t, "CAI", branchID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginRequest{Email: "ahmed@furniflow.com", Password: "nope"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginRequest{Email: "ghost@furniflow.com", Password: "123"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginRequest{})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.ToMap(), "email")
		assert.Contains(t, verrs.ToMap(), "password")
	})
}

func TestSelectBranch(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	resp, err := svc.SelectBranch(ctx, auth.SelectBranchRequest{UserID: "u1", BranchID: "ALX"})
	require.NoError(t, err)
	assert.Equal(t, "ALX", resp.BranchID)

	_, err = svc.SelectBranch(ctx, auth.SelectBranchRequest{UserID: "u2", BranchID: "ALX"})
	assert.ErrorIs(t, err, auth.ErrBranchForbidden)

	resp, err = svc.SelectBranch(ctx, auth.SelectBranchRequest{UserID: "u2", BranchID: "CAI"})
	require.NoError(t, err)
	assert.Equal(t, "CAI", resp.BranchID)

	_, err = svc.SelectBranch(ctx, auth.SelectBranchRequest{UserID: "u1", BranchID: "MARS"})
	assert.ErrorIs(t, err, branch.ErrBranchNotFound)
}

func TestRefreshAndLogout(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	login, err := svc.Login(ctx, auth.LoginRequest{Email: "admin@furniflow.com", Password: "admin"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.AccessToken})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	require.NoError(t, svc.Logout(ctx, login.RefreshToken))
	_, err = svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestMe(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	me, err := svc.Me(ctx, "u3", "")
	require.NoError(t, err)
	assert.Equal(t, "sarah@furniflow.com", me.User.Email)
	assert.Equal(t, "CAI", me.ActiveBranchID)
	assert.Contains(t, me.Permissions, user.ModuleSales)
	assert.NotContains(t, me.Permissions, user.ModuleSettings)
	assert.Equal(t, []settings.Widget{settings.WidgetActiveOrders, settings.WidgetRecentActivity}, me.Widgets)

	_, err = svc.Me(ctx, "ghost", "")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestLoginWithGoogle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	resp, err := svc.LoginWithGoogle(ctx, "sarah@furniflow.com")
	require.NoError(t, err)
	assert.Equal(t, "CAI", resp.BranchID)

	_, err = svc.LoginWithGoogle(ctx, "stranger@gmail.com")
	assert.ErrorIs(t, err, auth.ErrGoogleAccountUnknown)
}
