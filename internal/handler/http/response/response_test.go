package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/furniflow/erp-backend-go/internal/domain/attendance"
	"github.com/furniflow/erp-backend-go/internal/domain/order"
	"github.com/furniflow/erp-backend-go/internal/domain/payroll"
	"github.com/furniflow/erp-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestCreated(t *testing.T) {
	rec := httptest.NewRecorder()
	Created(rec, "Order created", map[string]string{"id": "o1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decode(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "Order created", resp.Message)
	assert.Nil(t, resp.Error)
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", fmt.Errorf("failed to load: %w", order.ErrOrderNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"conflict", payroll.ErrOrderNotEligible, http.StatusConflict, "CONFLICT"},
		{"bad request", attendance.ErrLocationPermissionDenied, http.StatusBadRequest, "BAD_REQUEST"},
		{"geofence", &attendance.GeofenceError{Distance: 150, Radius: 100}, http.StatusForbidden, "FORBIDDEN"},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			resp := decode(t, rec)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestHandleError_ValidationDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, validator.ValidationErrors{{Field: "amount", Message: "must be positive"}})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decode(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Equal(t, map[string]string{"amount": "must be positive"}, resp.Error.Details)
}
