package employee

import (
	"time"

	"github.com/furniflow/erp-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type EmployeeResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Role             string          `json:"role"`
	Department       string          `json:"department"`
	Email            string          `json:"email"`
	Status           string          `json:"status"`
	BranchID         string          `json:"branch_id"`
	Salary           decimal.Decimal `json:"salary"`
	LoanBalance      decimal.Decimal `json:"loan_balance"`
	CommissionRate   decimal.Decimal `json:"commission_rate"`
	SalesTarget      decimal.Decimal `json:"sales_target"`
	AttendanceDays   int             `json:"attendance_days"`
	TotalWorkingDays int             `json:"total_working_days"`
	IsCheckedIn      bool            `json:"is_checked_in"`
	LastCheckInTime  *time.Time      `json:"last_check_in_time,omitempty"`
	AvatarURL        string          `json:"avatar_url,omitempty"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:               e.ID,
		Name:             e.Name,
		Role:             e.Role,
		Department:       e.Department,
		Email:            e.Email,
		Status:           e.Status,
		BranchID:         e.BranchID,
		Salary:           e.Salary,
		LoanBalance:      e.LoanBalance,
		CommissionRate:   e.CommissionRate,
		SalesTarget:      e.SalesTarget,
		AttendanceDays:   e.AttendanceDays,
		TotalWorkingDays: e.TotalWorkingDays,
		IsCheckedIn:      e.IsCheckedIn,
		LastCheckInTime:  e.LastCheckInTime,
		AvatarURL:        e.AvatarURL,
	}
}

type ListEmployeeRequest struct {
	BranchScope string
	Department  string
	Status      string
	Search      string
}

type CreateEmployeeRequest struct {
	Name             string          `json:"name"`
	Role             string          `json:"role"`
	Department       string          `json:"department"`
	Email            string          `json:"email"`
	Status           string          `json:"status"`
	BranchID         string          `json:"branch_id"`
	Salary           decimal.Decimal `json:"salary"`
	CommissionRate   decimal.Decimal `json:"commission_rate"`
	SalesTarget      decimal.Decimal `json:"sales_target"`
	TotalWorkingDays int             `json:"total_working_days"`
	AvatarURL        string          `json:"avatar_url,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}
	if validator.IsEmpty(r.BranchID) {
		errs.Add("branch_id", "branch_id is required")
	}
	if r.Email != "" && !validator.IsValidEmail(r.Email) {
		errs.Add("email", "invalid email format")
	}
	if !validator.IsNonNegative(r.Salary) {
		errs.Add("salary", "salary must not be negative")
	}
	validateCommissionRate(&errs, r.CommissionRate)
	if r.TotalWorkingDays < 0 || r.TotalWorkingDays > 31 {
		errs.Add("total_working_days", "total_working_days must be between 0 and 31")
	}

	return errs.Err()
}

type UpdateEmployeeRequest struct {
	ID               string           `json:"-"`
	Name             *string          `json:"name,omitempty"`
	Role             *string          `json:"role,omitempty"`
	Department       *string          `json:"department,omitempty"`
	Email            *string          `json:"email,omitempty"`
	Status           *string          `json:"status,omitempty"`
	BranchID         *string          `json:"branch_id,omitempty"`
	Salary           *decimal.Decimal `json:"salary,omitempty"`
	CommissionRate   *decimal.Decimal `json:"commission_rate,omitempty"`
	SalesTarget      *decimal.Decimal `json:"sales_target,omitempty"`
	AttendanceDays   *int             `json:"attendance_days,omitempty"`
	TotalWorkingDays *int             `json:"total_working_days,omitempty"`
	AvatarURL        *string          `json:"avatar_url,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", "name must not be empty")
	}
	if r.BranchID != nil && validator.IsEmpty(*r.BranchID) {
		errs.Add("branch_id", "branch_id must not be empty")
	}
	if r.Email != nil && *r.Email != "" && !validator.IsValidEmail(*r.Email) {
		errs.Add("email", "invalid email format")
	}
	if r.Salary != nil && !validator.IsNonNegative(*r.Salary) {
		errs.Add("salary", "salary must not be negative")
	}
	if r.CommissionRate != nil {
		validateCommissionRate(&errs, *r.CommissionRate)
	}
	if r.AttendanceDays != nil && *r.AttendanceDays < 0 {
		errs.Add("attendance_days", "attendance_days must not be negative")
	}
	if r.TotalWorkingDays != nil && (*r.TotalWorkingDays < 0 || *r.TotalWorkingDays > 31) {
		errs.Add("total_working_days", "total_working_days must be between 0 and 31")
	}

	return errs.Err()
}

type NamedRequest struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

func (r *NamedRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}
	return errs.Err()
}

func validateCommissionRate(errs *validator.ValidationErrors, rate decimal.Decimal) {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		errs.Add("commission_rate", "commission_rate must be between 0 and 100")
	}
}
