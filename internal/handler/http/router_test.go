package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/furniflow/erp-backend-go/internal/bootstrap"
	"github.com/furniflow/erp-backend-go/internal/config"
	"github.com/furniflow/erp-backend-go/internal/pkg/cron"
	"github.com/furniflow/erp-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv, _ := newTestApp(t)
	return srv
}

func newTestApp(t *testing.T) (*httptest.Server, *bootstrap.App) {
	t.Helper()
	cfg := &config.Config{
		App: config.AppConfig{Env: "test", LogLevel: "error", Namespace: "test_"},
		JWT: config.JWTConfig{
			Secret:            "test-secret-key-for-jwt",
			AccessExpiration:  "1h",
			RefreshExpiration: "24h",
		},
		Attendance: config.AttendanceConfig{DefaultRadiusMeters: 100},
		Backup:     config.BackupConfig{Dir: t.TempDir(), Keep: 2},
		RateLimit:  config.RateLimitConfig{LoginPerSecond: 100, LoginBurst: 100},
	}

	app, err := bootstrap.New(context.Background(), cfg, memory.NewStore(), nil)
	require.NoError(t, err)
	srv := httptest.NewServer(app.Router)
	t.Cleanup(func() {
		srv.Close()
		app.Close()
	})
	return srv, app
}

func call(t *testing.T, srv *httptest.Server, method, path, token string, body any) (*http.Response, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") && resp.Header.Get("Content-Disposition") == "" {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	}
	return resp, env
}

func login(t *testing.T, srv *httptest.Server, email, password string) string {
	t.Helper()
	resp, env := call(t, srv, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tokens struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &tokens))
	require.NotEmpty(t, tokens.AccessToken)
	return tokens.AccessToken
}

func TestLoginAndMe(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "sarah@furniflow.com", "123")

	resp, env := call(t, srv, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var me struct {
		ActiveBranchID string   `json:"active_branch_id"`
		Permissions    []string `json:"permissions"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "CAI", me.ActiveBranchID)
	assert.ElementsMatch(t, []string{"DASHBOARD", "INVENTORY", "SALES", "CRM", "PAYMENTS"}, me.Permissions)
}

func TestLogin_WrongPassword(t *testing.T) {
	srv := newTestServer(t)

	resp, env := call(t, srv, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "sarah@furniflow.com", "password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestProtectedRoutes(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := call(t, srv, http.MethodGet, "/api/v1/inventory", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = call(t, srv, http.MethodGet, "/api/v1/inventory", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	sales := login(t, srv, "sarah@furniflow.com", "123")
	resp, _ = call(t, srv, http.MethodGet, "/api/v1/inventory", sales, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	for _, path := range []string{"/api/v1/settings/branches", "/api/v1/employees", "/api/v1/transactions", "/api/v1/suppliers"} {
		resp, _ = call(t, srv, http.MethodGet, path, sales, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, path)
	}
}

func TestCreateOrder_FiledUnderSessionBranch(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "sarah@furniflow.com", "123")

	resp, env := call(t, srv, http.MethodPost, "/api/v1/orders", token, map[string]any{
		"customer_id": "c1",
		"branch_id":   "JED",
		"items": []map[string]any{
			{"productId": "2", "productName": "Royal Bedroom Set", "quantity": 1, "price": 60000},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Message)

	var created struct {
		BranchID    string `json:"branchId"`
		Status      string `json:"status"`
		TotalAmount string `json:"totalAmount"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "CAI", created.BranchID)
	assert.Equal(t, "Pending", created.Status)
	assert.Equal(t, "60000", created.TotalAmount)
}

func TestCheckIn_OutsideGeofence(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "admin@furniflow.com", "admin")

	// Alexandria coordinates against the Cairo branch fence.
	resp, env := call(t, srv, http.MethodPost, "/api/v1/attendance/check-in", token, map[string]any{
		"employee_id": "e1",
		"latitude":    31.2001,
		"longitude":   29.9187,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.NotNil(t, env.Error)

	resp, _ = call(t, srv, http.MethodPost, "/api/v1/attendance/check-in", token, map[string]any{
		"employee_id": "e1",
		"latitude":    30.0444,
		"longitude":   31.2357,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCheckIn_PushesLiveBoardOnce(t *testing.T) {
	srv, app := newTestApp(t)
	token := login(t, srv, "admin@furniflow.com", "admin")

	events, unsubscribe := app.Hub.Subscribe("CAI")
	defer unsubscribe()

	resp, _ := call(t, srv, http.MethodPost, "/api/v1/attendance/check-in", token, map[string]any{
		"employee_id": "e1",
		"latitude":    30.0444,
		"longitude":   31.2357,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.Len(t, events, 1)
	assert.Equal(t, cron.LiveBoardEvent, (<-events).Event)
}

func TestBackupExport(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "admin@furniflow.com", "admin")

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/settings/backup", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "furniflow-backup-")

	var backup map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&backup))
	assert.Contains(t, backup, "test_users")
	assert.Contains(t, backup, "test_roles")
}
