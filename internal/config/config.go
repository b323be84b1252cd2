package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
	StoreDriverRedis    = "redis"
	StoreDriverMemory   = "memory"
)

type Config struct {
	App          AppConfig
	Store        StoreConfig
	JWT          JWTConfig
	OAuth2Google OAuth2GoogleConfig
	Kafka        KafkaConfig
	Attendance   AttendanceConfig
	Backup       BackupConfig
	RateLimit    RateLimitConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	Namespace   string
	CORSOrigins []string
	FrontendURL string
}

// StoreConfig selects and configures the key-value backend behind every collection.
type StoreConfig struct {
	Driver     string
	SQLitePath string
	Postgres   PostgresConfig
	Redis      RedisConfig
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

type OAuth2GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// Enabled reports whether Google sign-in is configured.
func (c OAuth2GoogleConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.RedirectURL != ""
}

type KafkaConfig struct {
	Brokers     []string
	TopicPrefix string
}

type AttendanceConfig struct {
	DefaultRadiusMeters float64
	// AllowUnlocatedBranch lets check-in proceed without a geofence when the
	// branch has no stored coordinates.
	AllowUnlocatedBranch bool
	LiveBoardInterval    time.Duration
}

type BackupConfig struct {
	Dir      string
	Interval time.Duration
	// Keep is how many snapshots survive pruning, 0 keeps all.
	Keep int
}

type RateLimitConfig struct {
	LoginPerSecond float64
	LoginBurst     int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	config := &Config{}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("APP_LOG_LEVEL", "info"),
		Namespace:   getEnv("APP_NAMESPACE", "furniflow_"),
		CORSOrigins: getEnvSlice("APP_CORS_ORIGINS"),
		FrontendURL: getEnv("APP_FRONTEND_URL", "http://localhost:5173"),
	}

	// Store configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	config.Store = StoreConfig{
		Driver:     strings.ToLower(getEnv("STORE_DRIVER", StoreDriverSQLite)),
		SQLitePath: getEnv("SQLITE_PATH", "furniflow.db"),
		Postgres: PostgresConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "furniflow"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "12h"),
	}

	// OAuth2 Google Configuration
	config.OAuth2Google = OAuth2GoogleConfig{
		ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		RedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		Scopes:       getEnvSlice("GOOGLE_SCOPES"),
	}
	if len(config.OAuth2Google.Scopes) == 0 {
		config.OAuth2Google.Scopes = []string{"openid", "email", "profile"}
	}

	config.Kafka = KafkaConfig{
		Brokers:     getEnvSlice("KAFKA_BROKERS"),
		TopicPrefix: getEnv("KAFKA_TOPIC_PREFIX", "furniflow."),
	}

	radius, err := strconv.ParseFloat(getEnv("ATTENDANCE_DEFAULT_RADIUS", "100"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_DEFAULT_RADIUS: %w", err)
	}
	allowUnlocated, err := strconv.ParseBool(getEnv("ATTENDANCE_ALLOW_UNLOCATED_BRANCH", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_ALLOW_UNLOCATED_BRANCH: %w", err)
	}
	liveInterval, err := time.ParseDuration(getEnv("ATTENDANCE_LIVE_INTERVAL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_LIVE_INTERVAL: %w", err)
	}
	config.Attendance = AttendanceConfig{
		DefaultRadiusMeters:  radius,
		AllowUnlocatedBranch: allowUnlocated,
		LiveBoardInterval:    liveInterval,
	}

	backupInterval, err := time.ParseDuration(getEnv("BACKUP_INTERVAL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid BACKUP_INTERVAL: %w", err)
	}
	backupKeep, err := strconv.Atoi(getEnv("BACKUP_KEEP", "7"))
	if err != nil {
		return nil, fmt.Errorf("invalid BACKUP_KEEP: %w", err)
	}
	config.Backup = BackupConfig{
		Dir:      getEnv("BACKUP_DIR", "./backups"),
		Interval: backupInterval,
		Keep:     backupKeep,
	}

	loginRPS, err := strconv.ParseFloat(getEnv("RATE_LIMIT_LOGIN_RPS", "1"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_LOGIN_RPS: %w", err)
	}
	loginBurst, err := strconv.Atoi(getEnv("RATE_LIMIT_LOGIN_BURST", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_LOGIN_BURST: %w", err)
	}
	config.RateLimit = RateLimitConfig{
		LoginPerSecond: loginRPS,
		LoginBurst:     loginBurst,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET_KEY is required")
	}
	if !strings.HasSuffix(c.App.Namespace, "_") {
		return errors.New("APP_NAMESPACE must end with an underscore")
	}

	switch c.Store.Driver {
	case StoreDriverSQLite:
		if c.Store.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required for the sqlite store")
		}
	case StoreDriverPostgres:
		if c.Store.Postgres.Password == "" {
			return errors.New("DB_PASSWORD is required for the postgres store")
		}
	case StoreDriverRedis:
		if c.Store.Redis.Addr == "" {
			return errors.New("REDIS_ADDR is required for the redis store")
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}

	if c.Attendance.DefaultRadiusMeters <= 0 {
		return errors.New("ATTENDANCE_DEFAULT_RADIUS must be positive")
	}
	if c.Backup.Interval < 0 {
		return errors.New("BACKUP_INTERVAL must not be negative")
	}
	if c.RateLimit.LoginPerSecond <= 0 || c.RateLimit.LoginBurst <= 0 {
		return errors.New("login rate limit must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Store.Postgres.User,
		c.Store.Postgres.Password,
		c.Store.Postgres.Host,
		c.Store.Postgres.Port,
		c.Store.Postgres.Name,
		c.Store.Postgres.SSLMode,
	)
}

// IsDevelopment reports whether the app runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
