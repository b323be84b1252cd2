package attendance

import (
	"time"

	"github.com/furniflow/erp-backend-go/internal/pkg/validator"
)

// ClockRequest is the body of check-in and check-out calls. Latitude and
// Longitude are nil when the device gave no fix.
type ClockRequest struct {
	EmployeeID       string   `json:"employee_id"`
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
	PermissionDenied bool     `json:"permission_denied,omitempty"`
}

func (r *ClockRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs.Add("latitude", "latitude must be between -90 and 90")
	}
	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs.Add("longitude", "longitude must be between -180 and 180")
	}

	return errs.Err()
}

// Location adapts the request into the provider the engine reads from.
func (r *ClockRequest) Location() LocationProvider {
	if r.PermissionDenied {
		return DeniedLocation{Err: ErrLocationPermissionDenied}
	}
	if r.Latitude == nil || r.Longitude == nil {
		return DeniedLocation{Err: ErrLocationUnavailable}
	}
	return StaticLocation{Latitude: *r.Latitude, Longitude: *r.Longitude}
}

type ClockResponse struct {
	EmployeeID     string     `json:"employee_id"`
	IsCheckedIn    bool       `json:"is_checked_in"`
	Date           string     `json:"date"`
	CheckIn        time.Time  `json:"check_in"`
	CheckOut       *time.Time `json:"check_out,omitempty"`
	DurationHours  *float64   `json:"duration_hours,omitempty"`
	AttendanceDays int        `json:"attendance_days"`
	DayCounted     bool       `json:"day_counted"`
	DistanceMeters *float64   `json:"distance_meters,omitempty"`
}

type LiveBoardResponse struct {
	Date     string    `json:"date"`
	Present  int       `json:"present"`
	Absent   int       `json:"absent"`
	Sessions []Session `json:"sessions"`
}

type CalendarRequest struct {
	BranchScope string
	Year        int
	Month       time.Month
}

func (r *CalendarRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Year < 2000 || r.Year > 9999 {
		errs.Add("year", "year is out of range")
	}
	if r.Month < time.January || r.Month > time.December {
		errs.Add("month", "month must be between 1 and 12")
	}
	return errs.Err()
}

type CalendarDay struct {
	Date          string     `json:"date"`
	CheckIn       time.Time  `json:"check_in"`
	CheckOut      *time.Time `json:"check_out,omitempty"`
	DurationHours *float64   `json:"duration_hours,omitempty"`
}

type CalendarEntry struct {
	EmployeeID   string        `json:"employee_id"`
	EmployeeName string        `json:"employee_name"`
	Days         []CalendarDay `json:"days"`
}
