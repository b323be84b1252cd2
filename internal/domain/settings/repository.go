package settings

import (
	"context"
	"encoding/json"
)

type SystemConfigRepository interface {
	Load(ctx context.Context) ([]SystemConfig, error)
	Store(ctx context.Context, configs []SystemConfig) error
}

type DashboardConfigRepository interface {
	Load(ctx context.Context) ([]DashboardRoleConfig, error)
	Store(ctx context.Context, configs []DashboardRoleConfig) error
}

type GeoRepository interface {
	Load(ctx context.Context) ([]GeoRegion, error)
	Store(ctx context.Context, regions []GeoRegion) error
}

// BackupStore exposes the raw namespaced collections for export and import.
type BackupStore interface {
	Export(ctx context.Context) (map[string]json.RawMessage, error)
	Import(ctx context.Context, backup map[string]json.RawMessage) error
}
