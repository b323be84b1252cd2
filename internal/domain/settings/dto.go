package settings

import (
	"time"

	"github.com/furniflow/erp-backend-go/internal/pkg/validator"
)

type SystemConfigRequest struct {
	CompanyName                string `json:"company_name"`
	SupportEmail               string `json:"support_email"`
	OrderPrefix                string `json:"order_prefix"`
	DefaultCurrency            string `json:"default_currency"`
	DefaultCountry             string `json:"default_country"`
	DefaultTimezone            string `json:"default_timezone"`
	StandardMonthlyWorkingDays int    `json:"standard_monthly_working_days"`
}

func (r *SystemConfigRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CompanyName) {
		errs.Add("company_name", "company_name is required")
	}
	if validator.IsEmpty(r.OrderPrefix) {
		errs.Add("order_prefix", "order_prefix is required")
	}
	if r.SupportEmail != "" && !validator.IsValidEmail(r.SupportEmail) {
		errs.Add("support_email", "invalid email format")
	}
	if r.DefaultTimezone != "" {
		if _, err := time.LoadLocation(r.DefaultTimezone); err != nil {
			errs.Add("default_timezone", "unknown timezone")
		}
	}
	if r.StandardMonthlyWorkingDays < 0 || r.StandardMonthlyWorkingDays > 31 {
		errs.Add("standard_monthly_working_days", "standard_monthly_working_days must be between 0 and 31")
	}

	return errs.Err()
}

type DashboardConfigRequest struct {
	VisibleWidgets []Widget `json:"visible_widgets"`
}

func (r *DashboardConfigRequest) Validate() error {
	var errs validator.ValidationErrors
	for _, w := range r.VisibleWidgets {
		if !IsValidWidget(w) {
			errs.Add("visible_widgets", "unknown widget "+string(w))
		}
	}
	return errs.Err()
}

type GeoRegionRequest struct {
	Country  string   `json:"country"`
	Counties []string `json:"counties"`
}

func (r *GeoRegionRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Country) {
		errs.Add("country", "country is required")
	}
	return errs.Err()
}
