package auth

import (
	"github.com/furniflow/erp-backend-go/internal/domain/settings"
	"github.com/furniflow/erp-backend-go/internal/domain/user"
	"github.com/furniflow/erp-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	}
	if validator.IsEmpty(r.Password) {
		errs.Add("password", "password is required")
	}

	return errs.Err()
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshTokenRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.RefreshToken) {
		errs.Add("refresh_token", "refresh_token is required")
	}
	return errs.Err()
}

// SelectBranchRequest switches the branch the session works in.
type SelectBranchRequest struct {
	UserID   string `json:"-"`
	BranchID string `json:"branch_id"`
}

func (r *SelectBranchRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.BranchID) {
		errs.Add("branch_id", "branch_id is required")
	}
	return errs.Err()
}

type TokenResponse struct {
	AccessToken           string `json:"access_token"`
	AccessTokenExpiresIn  int64  `json:"access_token_expires_in"`
	RefreshToken          string `json:"refresh_token"`
	RefreshTokenExpiresIn int64  `json:"refresh_token_expires_in"`
	BranchID              string `json:"branch_id"`
}

type AccessTokenResponse struct {
	AccessToken          string `json:"access_token"`
	AccessTokenExpiresIn int64  `json:"access_token_expires_in"`
}

type MeResponse struct {
	User           user.UserResponse `json:"user"`
	ActiveBranchID string            `json:"active_branch_id"`
	Permissions    []user.Module     `json:"permissions"`
	Widgets        []settings.Widget `json:"widgets"`
}
