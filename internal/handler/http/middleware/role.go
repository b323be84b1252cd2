package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/furniflow/erp-backend-go/internal/domain/auth"
	"github.com/furniflow/erp-backend-go/internal/domain/user"
	"github.com/furniflow/erp-backend-go/internal/handler/http/response"
	"github.com/furniflow/erp-backend-go/internal/pkg/rbac"
)

// RequireModule lets the request through when the caller's role is granted
// module.
func RequireModule(enforcer rbac.Enforcer, module user.Module) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFrom(r.Context())
			if !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			allowed, err := enforcer.Allowed(claims.Role, module)
			if err != nil {
				slog.Error("rbac check failed", "error", err, "role", claims.Role, "module", module)
				response.InternalServerError(w, "Failed to check permissions")
				return
			}
			if !allowed {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: role '%s' has no access to %s", claims.Role, module))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
