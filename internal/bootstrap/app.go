// Package bootstrap assembles the application from configuration: the store,
// every repository and service, the HTTP router and the background jobs.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/furniflow/erp-backend-go/internal/config"
	domainAttendance "github.com/furniflow/erp-backend-go/internal/domain/attendance"
	domainLedger "github.com/furniflow/erp-backend-go/internal/domain/ledger"
	domainPayroll "github.com/furniflow/erp-backend-go/internal/domain/payroll"
	domainReport "github.com/furniflow/erp-backend-go/internal/domain/report"
	domainSettings "github.com/furniflow/erp-backend-go/internal/domain/settings"
	appHTTP "github.com/furniflow/erp-backend-go/internal/handler/http"
	"github.com/furniflow/erp-backend-go/internal/pkg/cron"
	"github.com/furniflow/erp-backend-go/internal/pkg/database"
	"github.com/furniflow/erp-backend-go/internal/pkg/events"
	"github.com/furniflow/erp-backend-go/internal/pkg/jwt"
	"github.com/furniflow/erp-backend-go/internal/pkg/oauth"
	"github.com/furniflow/erp-backend-go/internal/pkg/rbac"
	"github.com/furniflow/erp-backend-go/internal/pkg/sse"
	"github.com/furniflow/erp-backend-go/internal/pkg/storage"
	"github.com/furniflow/erp-backend-go/internal/repository"
	"github.com/furniflow/erp-backend-go/internal/repository/memory"
	"github.com/furniflow/erp-backend-go/internal/repository/postgresql"
	redisStore "github.com/furniflow/erp-backend-go/internal/repository/redis"
	"github.com/furniflow/erp-backend-go/internal/repository/sqlite"
	attendanceService "github.com/furniflow/erp-backend-go/internal/service/attendance"
	serviceAuth "github.com/furniflow/erp-backend-go/internal/service/auth"
	customerService "github.com/furniflow/erp-backend-go/internal/service/customer"
	dashboardService "github.com/furniflow/erp-backend-go/internal/service/dashboard"
	employeeService "github.com/furniflow/erp-backend-go/internal/service/employee"
	inventoryService "github.com/furniflow/erp-backend-go/internal/service/inventory"
	ledgerService "github.com/furniflow/erp-backend-go/internal/service/ledger"
	orderService "github.com/furniflow/erp-backend-go/internal/service/order"
	payrollService "github.com/furniflow/erp-backend-go/internal/service/payroll"
	purchasingService "github.com/furniflow/erp-backend-go/internal/service/purchasing"
	reportService "github.com/furniflow/erp-backend-go/internal/service/report"
	settingsService "github.com/furniflow/erp-backend-go/internal/service/settings"
)

const Version = "v1.0.0"

// App is the assembled application. Close releases the store and the
// publisher.
type App struct {
	Config      *config.Config
	Collections *repository.Collections
	Backup      *repository.Backup
	Publisher   events.Publisher
	Hub         *sse.Hub
	Files       storage.FileStorage
	Router      http.Handler

	Attendance domainAttendance.AttendanceService
	Ledger     domainLedger.LedgerService
	Payroll    domainPayroll.PayrollService
	Report     domainReport.ReportService
	Settings   domainSettings.SettingsService

	liveBoard *cron.LiveBoardJob
	backupJob *cron.BackupJob
}

// OpenStore connects the backend selected by cfg.Store.Driver.
func OpenStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverSQLite:
		db, err := database.NewSQLiteDB(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		store, err := sqlite.NewStore(ctx, db)
		if err != nil {
			db.Close()
			return nil, err
		}
		return store, nil
	case config.StoreDriverPostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		store, err := postgresql.NewStore(ctx, db)
		if err != nil {
			db.Close()
			return nil, err
		}
		return store, nil
	case config.StoreDriverRedis:
		client, err := database.NewRedisClient(ctx, cfg.Store.Redis.Addr, cfg.Store.Redis.Password, cfg.Store.Redis.DB)
		if err != nil {
			return nil, err
		}
		return redisStore.NewStore(client), nil
	case config.StoreDriverMemory:
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// NewPublisher returns a Kafka publisher when brokers are configured.
func NewPublisher(cfg *config.Config) events.Publisher {
	if len(cfg.Kafka.Brokers) == 0 {
		slog.Info("kafka brokers not configured, integration events are dropped")
		return events.NewNoopPublisher()
	}
	return events.NewKafkaPublisher(events.NewKafkaWriter(cfg.Kafka.Brokers), cfg.Kafka.TopicPrefix)
}

// New wires every service over store. The app owns store and publisher
// from here on.
func New(ctx context.Context, cfg *config.Config, store repository.Store, publisher events.Publisher) (*App, error) {
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	cols := repository.NewCollections(store, cfg.App.Namespace)

	roles, err := cols.Roles.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load roles: %w", err)
	}
	enforcer, err := rbac.NewEnforcer(roles)
	if err != nil {
		return nil, err
	}

	files, err := storage.NewLocalStorage(cfg.Backup.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize backup storage: %w", err)
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	var googleService oauth.GoogleService
	if cfg.OAuth2Google.Enabled() {
		googleService = oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	}

	backup := repository.NewBackup(store, cfg.App.Namespace)
	hub := sse.NewHub()

	authSvc := serviceAuth.NewAuthService(cols.Users, cols.Roles, cols.Branches, cols.DashboardConfig, jwtService)
	dashboardSvc := dashboardService.NewDashboardService(cols.Orders, cols.Transactions, cols.DashboardConfig, cols.SystemConfig)
	inventorySvc := inventoryService.NewInventoryService(store, cols.Inventory, cols.ProductCategories, cols.Branches)
	customerSvc := customerService.NewCustomerService(store, cols.Customers, cols.Orders, cols.Transactions, cols.Branches)
	employeeSvc := employeeService.NewEmployeeService(store, cols.Employees, cols.Branches, cols.Departments, cols.EmployeeStatuses)
	orderSvc := orderService.NewOrderService(store, cols.Orders, cols.Customers, cols.Inventory, cols.Employees,
		cols.Branches, cols.Transactions, cols.SystemConfig, publisher)
	ledgerSvc := ledgerService.NewLedgerService(store, cols.Transactions, cols.Categories, cols.PaymentMethods,
		cols.Customers, cols.Branches, cols.SystemConfig, publisher)
	payrollSvc := payrollService.NewPayrollService(store, cols.Employees, cols.Orders, cols.Transactions,
		cols.SystemConfig, publisher, nil)
	purchasingSvc := purchasingService.NewPurchasingService(store, cols.Suppliers, cols.PurchaseOrders, cols.Inventory,
		cols.Transactions, cols.Branches, cols.SystemConfig, publisher)
	settingsSvc := settingsService.NewSettingsService(store, cols.Branches, cols.Users, cols.Roles, cols.SystemConfig,
		cols.DashboardConfig, cols.Geo, backup, enforcer)
	reportSvc := reportService.NewReportService(ledgerSvc, payrollSvc)

	var liveBoard *cron.LiveBoardJob
	attendanceSvc := attendanceService.NewAttendanceService(store, cols.Employees, cols.Branches, cols.SystemConfig,
		attendanceService.Options{
			DefaultRadiusMeters:  cfg.Attendance.DefaultRadiusMeters,
			AllowUnlocatedBranch: cfg.Attendance.AllowUnlocatedBranch,
			OnChange: func(ctx context.Context) {
				if err := liveBoard.Run(ctx); err != nil {
					slog.Warn("failed to push live board", "error", err)
				}
			},
		})
	liveBoard = cron.NewLiveBoardJob(attendanceSvc, hub)

	handlers := appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(jwtService, authSvc, googleService, cfg.App.FrontendURL),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
		Inventory:  appHTTP.NewInventoryHandler(inventorySvc),
		Order:      appHTTP.NewOrderHandler(orderSvc),
		Customer:   appHTTP.NewCustomerHandler(customerSvc, ledgerSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc, jwtService, hub),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
		Ledger:     appHTTP.NewLedgerHandler(ledgerSvc),
		Purchasing: appHTTP.NewPurchasingHandler(purchasingSvc),
		Settings:   appHTTP.NewSettingsHandler(settingsSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
	}

	router := appHTTP.NewRouter(appHTTP.RouterOptions{
		Env:            cfg.App.Env,
		Version:        Version,
		CORSOrigins:    cfg.App.CORSOrigins,
		LogLevel:       LogLevel(cfg.App.LogLevel),
		LoginPerSecond: cfg.RateLimit.LoginPerSecond,
		LoginBurst:     cfg.RateLimit.LoginBurst,
	}, jwtService, enforcer, handlers)

	return &App{
		Config:      cfg,
		Collections: cols,
		Backup:      backup,
		Publisher:   publisher,
		Hub:         hub,
		Files:       files,
		Router:      router,
		Attendance:  attendanceSvc,
		Ledger:      ledgerSvc,
		Payroll:     payrollSvc,
		Report:      reportSvc,
		Settings:    settingsSvc,
		liveBoard:   liveBoard,
		backupJob:   cron.NewBackupJob(backup, files, cfg.Backup.Keep),
	}, nil
}

// Scheduler returns the background jobs: the live attendance board refresh
// and the periodic backup snapshot.
func (a *App) Scheduler(ctx context.Context) *cron.Scheduler {
	s := cron.NewScheduler(ctx)
	s.AddJob("attendance-live-board", a.Config.Attendance.LiveBoardInterval, a.liveBoard.Run)
	s.AddJob("backup-snapshot", a.Config.Backup.Interval, a.backupJob.Run)
	return s
}

// Snapshot writes one backup file immediately.
func (a *App) Snapshot(ctx context.Context) error {
	return a.backupJob.Run(ctx)
}

func (a *App) Close() error {
	return errors.Join(a.Publisher.Close(), a.Collections.Store.Close())
}

// LogLevel parses APP_LOG_LEVEL, falling back to info.
func LogLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
