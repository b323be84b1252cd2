package user

import (
	"github.com/furniflow/erp-backend-go/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	BranchID  string `json:"branch_id"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		BranchID:  u.BranchID,
		AvatarURL: u.AvatarURL,
	}
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	BranchID string `json:"branch_id"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}
	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	} else if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "invalid email format")
	}
	if validator.IsEmpty(r.Password) {
		errs.Add("password", "password is required")
	}
	if validator.IsEmpty(r.Role) {
		errs.Add("role", "role is required")
	}
	if validator.IsEmpty(r.BranchID) {
		errs.Add("branch_id", "branch_id is required")
	}

	return errs.Err()
}

type UpdateUserRequest struct {
	ID       string  `json:"-"`
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"`
	BranchID *string `json:"branch_id,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", "name must not be empty")
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs.Add("email", "invalid email format")
	}
	if r.Password != nil && validator.IsEmpty(*r.Password) {
		errs.Add("password", "password must not be empty")
	}

	return errs.Err()
}

type RoleRequest struct {
	Name        string   `json:"name"`
	Permissions []Module `json:"permissions"`
}

func (r *RoleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}
	for _, m := range r.Permissions {
		if !IsValidModule(m) {
			errs.Add("permissions", "unknown module "+string(m))
		}
	}

	return errs.Err()
}
