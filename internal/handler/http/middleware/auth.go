package middleware

import (
	"context"
	"net/http"

	"github.com/furniflow/erp-backend-go/internal/domain/auth"
	"github.com/furniflow/erp-backend-go/internal/handler/http/response"
	"github.com/furniflow/erp-backend-go/internal/pkg/jwt"
)

type claimsKey struct{}

// AuthRequired rejects requests without a verified access token and stores
// its claims for ClaimsFrom. It runs after jwtauth.Verifier.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := jwt.ClaimsFromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}
		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFrom returns the caller's claims stored by AuthRequired.
func ClaimsFrom(ctx context.Context) (jwt.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(jwt.Claims)
	return claims, ok
}

// BranchScope is the branch the caller's session works in. HQ sees every
// branch.
func BranchScope(ctx context.Context) string {
	claims, _ := ClaimsFrom(ctx)
	return claims.BranchID
}
