package settings

import "errors"

var (
	ErrInvalidBackup     = errors.New("invalid backup file")
	ErrGeoRegionNotFound = errors.New("country not found")
)
