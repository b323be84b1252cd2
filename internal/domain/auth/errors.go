package auth

import "errors"

var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrBranchForbidden      = errors.New("you may not work in this branch")
	ErrGoogleNotConfigured  = errors.New("google sign-in is not configured")
	ErrGoogleAccountUnknown = errors.New("no user is registered with this google account")
	ErrInvalidOAuthState    = errors.New("invalid oauth state")
)
