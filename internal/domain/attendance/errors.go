package attendance

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyCheckedIn         = errors.New("employee is already checked in")
	ErrNotCheckedIn             = errors.New("employee is not checked in")
	ErrOutsideAllowedRadius     = errors.New("you are outside the allowed radius")
	ErrLocationUnavailable      = errors.New("device location is unavailable")
	ErrLocationPermissionDenied = errors.New("location permission denied")
	ErrInvalidMonth             = errors.New("invalid calendar month")
)

// GeofenceError reports a clock action made too far from the branch.
type GeofenceError struct {
	Distance float64
	Radius   float64
}

func (e *GeofenceError) Error() string {
	return fmt.Sprintf("you are %.0fm away from the branch, allowed radius is %.0fm", e.Distance, e.Radius)
}

func (e *GeofenceError) Unwrap() error {
	return ErrOutsideAllowedRadius
}
