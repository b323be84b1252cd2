package auth

import "context"

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	// LoginWithGoogle signs in the user registered with the Google account email.
	LoginWithGoogle(ctx context.Context, email string) (TokenResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	SelectBranch(ctx context.Context, req SelectBranchRequest) (TokenResponse, error)
	Me(ctx context.Context, userID, activeBranchID string) (MeResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}
