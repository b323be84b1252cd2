package utils

import "github.com/google/uuid"

// NewID returns a time-ordered UUIDv7, optionally prefixed ("PAY-<uuid>").
func NewID(prefix string) string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	if prefix == "" {
		return id.String()
	}
	return prefix + "-" + id.String()
}
