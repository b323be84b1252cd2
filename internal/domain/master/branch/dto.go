package branch

import (
	"github.com/furniflow/erp-backend-go/internal/pkg/utils"
	"github.com/furniflow/erp-backend-go/internal/pkg/validator"
)

type CreateBranchRequest struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Address     string       `json:"address"`
	Currency    string       `json:"currency"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

func (r *CreateBranchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}
	if len(r.Name) > 100 {
		errs.Add("name", "name must not exceed 100 characters")
	}
	if r.Coordinates != nil {
		validateCoordinates(&errs, *r.Coordinates)
	}

	return errs.Err()
}

type UpdateBranchRequest struct {
	ID          string       `json:"-"`
	Name        *string      `json:"name,omitempty"`
	Address     *string      `json:"address,omitempty"`
	Currency    *string      `json:"currency,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

func (r *UpdateBranchRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", "name must not be empty")
	}
	if r.Coordinates != nil {
		validateCoordinates(&errs, *r.Coordinates)
	}

	return errs.Err()
}

// SetLocationRequest captures the branch geofence from the caller's device.
type SetLocationRequest struct {
	Radius float64 `json:"radius"`
}

func validateCoordinates(errs *validator.ValidationErrors, c Coordinates) {
	if !utils.IsValidCoordinate(c.Lat, c.Lng) {
		errs.Add("coordinates", "coordinates are out of range")
	}
	if c.Radius < 0 {
		errs.Add("coordinates.radius", "radius must not be negative")
	}
}
