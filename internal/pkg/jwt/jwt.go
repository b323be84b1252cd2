package jwt

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Token types carried in the "type" claim.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
	TypeSSE     = "sse"
)

var ErrInvalidClaims = errors.New("token claims are missing or malformed")

// Claims identifies the caller and the branch the session is working in.
type Claims struct {
	UserID   string
	Email    string
	Name     string
	Role     string
	BranchID string
}

type Service interface {
	GenerateAccessToken(claims Claims) (token string, expiresAt int64, err error)
	GenerateRefreshToken(userID, branchID string) (token string, expiresAt int64, err error)
	// ParseRefreshToken verifies a refresh token and returns the user and
	// branch it was issued for.
	ParseRefreshToken(token string) (userID, branchID string, err error)
	GenerateSSEToken(userID, branchID string) (token string, expiresIn int, err error)
	ValidateSSEToken(token string) (userID, branchID string, err error)
	JWTAuth() *jwtauth.JWTAuth
	RefreshTokenCookie(token string, expiresAt int64) *http.Cookie
	RevokeToken(token string, expiresAt int64)
	IsTokenRevoked(token string) bool
}

type JWTService struct {
	accessTokenExpirationTime  string
	refreshTokenExpirationTime string
	tokenAuth                  *jwtauth.JWTAuth
	revokedTokens              map[string]int64
	mu                         sync.RWMutex
}

func NewJWTService(secretKey string, accessTokenExpirationTime string, refreshTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime:  accessTokenExpirationTime,
		refreshTokenExpirationTime: refreshTokenExpirationTime,
		tokenAuth:                  jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:              make(map[string]int64),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(claims Claims) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id":   claims.UserID,
		"email":     claims.Email,
		"name":      claims.Name,
		"role":      claims.Role,
		"branch_id": claims.BranchID,
		"type":      TypeAccess,
		"exp":       expiresAt,
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) GenerateRefreshToken(userID, branchID string) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.refreshTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id":   userID,
		"branch_id": branchID,
		"exp":       expiresAt,
		"type":      TypeRefresh,
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) ParseRefreshToken(tokenString string) (userID, branchID string, err error) {
	if j.IsTokenRevoked(tokenString) {
		return "", "", jwt.ErrInvalidJWT()
	}
	return j.decode(tokenString, TypeRefresh)
}

func (j *JWTService) RefreshTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Path:     "/api/v1/auth",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteStrictMode,
	}
}

// RevokeToken blocks token until it would have expired anyway.
func (j *JWTService) RevokeToken(token string, expiresAt int64) {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := time.Now().Unix()
	for t, exp := range j.revokedTokens {
		if exp < now {
			delete(j.revokedTokens, t)
		}
	}
	j.revokedTokens[token] = expiresAt
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[token]
	return revoked
}

// GenerateSSEToken generates a short-lived token for the live attendance
// stream, which browsers open without an Authorization header.
func (j *JWTService) GenerateSSEToken(userID, branchID string) (token string, expiresIn int, err error) {
	expiresIn = 300
	expiresAt := time.Now().Add(5 * time.Minute).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id":   userID,
		"branch_id": branchID,
		"type":      TypeSSE,
		"exp":       expiresAt,
	})
	if err != nil {
		return "", 0, err
	}
	return tokenString, expiresIn, nil
}

func (j *JWTService) ValidateSSEToken(tokenString string) (userID, branchID string, err error) {
	return j.decode(tokenString, TypeSSE)
}

func (j *JWTService) decode(tokenString, wantType string) (userID, branchID string, err error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return "", "", err
	}
	if err := jwt.Validate(token); err != nil {
		return "", "", err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != wantType {
		return "", "", jwt.ErrInvalidJWT()
	}
	userID, _ = stringClaim(token.PrivateClaims(), "user_id")
	if userID == "" {
		return "", "", jwt.ErrInvalidJWT()
	}
	branchID, _ = stringClaim(token.PrivateClaims(), "branch_id")
	return userID, branchID, nil
}

// ClaimsFromContext reads the access token claims verified by the jwtauth
// middleware.
func ClaimsFromContext(ctx context.Context) (Claims, error) {
	token, raw, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Claims{}, err
	}
	if token == nil {
		return Claims{}, ErrInvalidClaims
	}
	if t, _ := stringClaim(raw, "type"); t != TypeAccess {
		return Claims{}, ErrInvalidClaims
	}

	var c Claims
	var ok bool
	if c.UserID, ok = stringClaim(raw, "user_id"); !ok || c.UserID == "" {
		return Claims{}, ErrInvalidClaims
	}
	c.Email, _ = stringClaim(raw, "email")
	c.Name, _ = stringClaim(raw, "name")
	c.Role, _ = stringClaim(raw, "role")
	c.BranchID, _ = stringClaim(raw, "branch_id")
	return c, nil
}

func stringClaim(claims map[string]interface{}, key string) (string, bool) {
	v, ok := claims[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
