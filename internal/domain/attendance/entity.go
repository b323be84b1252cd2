package attendance

import (
	"context"
	"time"
)

// FullDayThresholdHours is the session length a check-out must exceed to
// count as one attendance day.
const FullDayThresholdHours = 4.0

// DefaultRadiusMeters applies when a branch stores no positive radius.
const DefaultRadiusMeters = 100.0

// DateLayout is the local calendar-day key stored on attendance logs.
const DateLayout = "2006-01-02"

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// LocationProvider reports the device position at the moment of a clock
// action. Implementations return ErrLocationUnavailable or
// ErrLocationPermissionDenied when no fix can be produced.
type LocationProvider interface {
	Current(ctx context.Context) (Coordinates, error)
}

// StaticLocation is a position already captured by the client.
type StaticLocation Coordinates

func (s StaticLocation) Current(context.Context) (Coordinates, error) {
	return Coordinates(s), nil
}

// DeniedLocation is used when the client could not share its position.
type DeniedLocation struct {
	Err error
}

func (d DeniedLocation) Current(context.Context) (Coordinates, error) {
	if d.Err != nil {
		return Coordinates{}, d.Err
	}
	return Coordinates{}, ErrLocationPermissionDenied
}

// Session is one employee's attendance for the day, as shown on the live
// board.
type Session struct {
	EmployeeID   string     `json:"employee_id"`
	EmployeeName string     `json:"employee_name"`
	BranchID     string     `json:"branch_id"`
	Department   string     `json:"department"`
	IsCheckedIn  bool       `json:"is_checked_in"`
	FirstIn      *time.Time `json:"first_in,omitempty"`
	LastOut      *time.Time `json:"last_out,omitempty"`
	HoursToday   float64    `json:"hours_today"`
}
