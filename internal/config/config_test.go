package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "furniflow_", cfg.App.Namespace)
	assert.Equal(t, StoreDriverSQLite, cfg.Store.Driver)
	assert.Equal(t, 100.0, cfg.Attendance.DefaultRadiusMeters)
	assert.False(t, cfg.Attendance.AllowUnlocatedBranch)
	assert.Equal(t, time.Minute, cfg.Attendance.LiveBoardInterval)
	assert.Equal(t, 24*time.Hour, cfg.Backup.Interval)
	assert.Equal(t, 7, cfg.Backup.Keep)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.False(t, cfg.OAuth2Google.Enabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("STORE_DRIVER", "Redis")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("ATTENDANCE_DEFAULT_RADIUS", "250")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverRedis, cfg.Store.Driver)
	assert.Equal(t, "cache:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, 2, cfg.Store.Redis.DB)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 250.0, cfg.Attendance.DefaultRadiusMeters)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad port", "APP_PORT", "http"},
		{"bad radius", "ATTENDANCE_DEFAULT_RADIUS", "far"},
		{"bad interval", "BACKUP_INTERVAL", "daily"},
		{"unknown driver", "STORE_DRIVER", "mongo"},
		{"negative radius", "ATTENDANCE_DEFAULT_RADIUS", "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET_KEY", "secret")
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:        AppConfig{Namespace: "furniflow_"},
			Store:      StoreConfig{Driver: StoreDriverMemory},
			JWT:        JWTConfig{Secret: "s"},
			Attendance: AttendanceConfig{DefaultRadiusMeters: 100},
			RateLimit:  RateLimitConfig{LoginPerSecond: 1, LoginBurst: 1},
		}
	}

	assert.NoError(t, valid().Validate())

	noSecret := valid()
	noSecret.JWT.Secret = ""
	assert.Error(t, noSecret.Validate())

	badNamespace := valid()
	badNamespace.App.Namespace = "furniflow"
	assert.Error(t, badNamespace.Validate())

	pgNoPassword := valid()
	pgNoPassword.Store.Driver = StoreDriverPostgres
	assert.Error(t, pgNoPassword.Validate())
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{Store: StoreConfig{Postgres: PostgresConfig{
		Host: "db", Port: 5433, User: "u", Password: "p", Name: "furniflow", SSLMode: "disable",
	}}}
	assert.Equal(t, "postgres://u:p@db:5433/furniflow?sslmode=disable", cfg.DatabaseURL())
}
