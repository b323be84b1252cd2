package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/furniflow/erp-backend-go/internal/domain/master/branch"
	"github.com/furniflow/erp-backend-go/internal/handler/http/middleware"
	"github.com/furniflow/erp-backend-go/internal/handler/http/response"
)

// decodeJSON reads the request body into v and answers 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}, op string) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		slog.Error(op+" decode error", "error", err)
		response.BadRequest(w, "Invalid request format")
		return false
	}
	return true
}

// ownBranch returns the branch a new record is filed under: the requested
// one for HQ sessions, the session branch otherwise.
func ownBranch(r *http.Request, requested string) string {
	scope := middleware.BranchScope(r.Context())
	if scope == "" || scope == branch.HeadquartersID {
		return requested
	}
	return scope
}

func queryInt(r *http.Request, key string, fallback int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return fallback
	}
	return v
}
