package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/furniflow/erp-backend-go/internal/domain/auth"
	"github.com/furniflow/erp-backend-go/internal/handler/http/middleware"
	"github.com/furniflow/erp-backend-go/internal/handler/http/response"
	"github.com/furniflow/erp-backend-go/internal/pkg/jwt"
	"github.com/furniflow/erp-backend-go/internal/pkg/oauth"
)

const (
	refreshTokenCookie = "refresh_token"
	oauthStateCookie   = "oauth_state"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	RefreshToken(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	SelectBranch(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	LoginWithGoogle(w http.ResponseWriter, r *http.Request)
	OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	jwtService    jwt.Service
	authService   auth.AuthService
	googleService oauth.GoogleService
	frontendURL   string
}

// NewAuthHandler wires the auth endpoints. googleService may be nil when
// Google sign-in is not configured.
func NewAuthHandler(jwtService jwt.Service, authService auth.AuthService, googleService oauth.GoogleService, frontendURL string) AuthHandler {
	return &AuthHandlerImpl{
		jwtService:    jwtService,
		authService:   authService,
		googleService: googleService,
		frontendURL:   frontendURL,
	}
}

func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if !decodeJSON(w, r, &req, "Login") {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	tokens, err := a.authService.Login(r.Context(), req)
	if err != nil {
		slog.Warn("Login failed", "email", req.Email, "error", err)
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.RefreshTokenCookie(tokens.RefreshToken, tokens.RefreshTokenExpiresIn))
	response.SuccessWithMessage(w, "Logged in successfully", tokens)
}

// RefreshToken accepts the refresh token from its cookie or the JSON body.
func (a *AuthHandlerImpl) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req auth.RefreshTokenRequest
	if cookie, err := r.Cookie(refreshTokenCookie); err == nil && cookie.Value != "" {
		req.RefreshToken = cookie.Value
	} else if !decodeJSON(w, r, &req, "RefreshToken") {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	tokens, err := a.authService.RefreshToken(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, tokens)
}

func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshTokenCookie)
	if err != nil || cookie.Value == "" {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	if err := a.authService.Logout(r.Context(), cookie.Value); err != nil {
		response.HandleError(w, err)
		return
	}

	cleared := a.jwtService.RefreshTokenCookie("", 0)
	cleared.Expires = time.Unix(0, 0)
	cleared.MaxAge = -1
	http.SetCookie(w, cleared)
	response.SuccessWithMessage(w, "Logged out successfully", nil)
}

// SelectBranch reissues the tokens for another working branch.
func (a *AuthHandlerImpl) SelectBranch(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFrom(r.Context())

	var req auth.SelectBranchRequest
	if !decodeJSON(w, r, &req, "SelectBranch") {
		return
	}
	req.UserID = claims.UserID
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	tokens, err := a.authService.SelectBranch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.RefreshTokenCookie(tokens.RefreshToken, tokens.RefreshTokenExpiresIn))
	response.Success(w, tokens)
}

func (a *AuthHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFrom(r.Context())

	me, err := a.authService.Me(r.Context(), claims.UserID, claims.BranchID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, me)
}

func (a *AuthHandlerImpl) LoginWithGoogle(w http.ResponseWriter, r *http.Request) {
	if a.googleService == nil {
		response.HandleError(w, auth.ErrGoogleNotConfigured)
		return
	}

	state, err := a.googleService.NewState()
	if err != nil {
		response.HandleError(w, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/api/v1/auth/google",
		Expires:  time.Now().Add(10 * time.Minute),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, a.googleService.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// OAuthCallbackGoogle finishes the code flow and hands the access token to
// the frontend through a redirect.
func (a *AuthHandlerImpl) OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request) {
	redirectWithError := func(reason string) {
		target := fmt.Sprintf("%s/auth/callback/google?error=%s", a.frontendURL, url.QueryEscape(reason))
		http.Redirect(w, r, target, http.StatusTemporaryRedirect)
	}

	if a.googleService == nil {
		response.HandleError(w, auth.ErrGoogleNotConfigured)
		return
	}

	query := r.URL.Query()
	if reason := query.Get("error"); reason != "" {
		slog.Warn("Google sign-in refused", "error", reason)
		redirectWithError(reason)
		return
	}

	cookie, err := r.Cookie(oauthStateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != query.Get("state") {
		slog.Warn("Google sign-in state mismatch", "error", auth.ErrInvalidOAuthState)
		redirectWithError("state_mismatch")
		return
	}

	code := query.Get("code")
	if code == "" {
		redirectWithError("code_empty")
		return
	}

	profile, err := a.googleService.Profile(r.Context(), code)
	if err != nil {
		slog.Error("Failed to read google profile", "error", err)
		if errors.Is(err, oauth.ErrEmailNotVerified) {
			redirectWithError("email_not_verified")
			return
		}
		redirectWithError("profile_failed")
		return
	}

	tokens, err := a.authService.LoginWithGoogle(r.Context(), profile.Email)
	if err != nil {
		slog.Warn("Google sign-in rejected", "email", profile.Email, "error", err)
		redirectWithError("login_failed")
		return
	}

	http.SetCookie(w, a.jwtService.RefreshTokenCookie(tokens.RefreshToken, tokens.RefreshTokenExpiresIn))
	target := fmt.Sprintf("%s/auth/callback/google?access_token=%s&expires_in=%d",
		a.frontendURL,
		url.QueryEscape(tokens.AccessToken),
		tokens.AccessTokenExpiresIn,
	)
	http.Redirect(w, r, target, http.StatusTemporaryRedirect)
}
