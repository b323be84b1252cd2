package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/furniflow/erp-backend-go/internal/domain/user"
	"github.com/furniflow/erp-backend-go/internal/handler/http/middleware"
	"github.com/furniflow/erp-backend-go/internal/pkg/jwt"
	"github.com/furniflow/erp-backend-go/internal/pkg/rbac"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterOptions carries the settings the router reads from configuration.
type RouterOptions struct {
	Env            string
	Version        string
	CORSOrigins    []string
	LogLevel       slog.Level
	LoginPerSecond float64
	LoginBurst     int
}

type Handlers struct {
	Auth       AuthHandler
	Dashboard  DashboardHandler
	Inventory  InventoryHandler
	Order      OrderHandler
	Customer   CustomerHandler
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Payroll    PayrollHandler
	Ledger     LedgerHandler
	Purchasing PurchasingHandler
	Settings   SettingsHandler
	Report     ReportHandler
}

func NewRouter(opts RouterOptions, jwtService jwt.Service, enforcer rbac.Enforcer, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(opts.Env == "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
		Level:       opts.LogLevel,
	})).With(
		slog.String("app", "furniflow-erp"),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	loginLimiter := middleware.NewRateLimiter(opts.LoginPerSecond, opts.LoginBurst)
	module := func(m user.Module) func(http.Handler) http.Handler {
		return middleware.RequireModule(enforcer, m)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(loginLimiter.Handler).Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Get("/google/login", h.Auth.LoginWithGoogle)
			r.Get("/google/callback", h.Auth.OAuthCallbackGoogle)
		})

		// EventSource cannot send headers, the stream authenticates with a
		// query token instead.
		r.Get("/attendance/live/stream", h.Attendance.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Post("/auth/branch", h.Auth.SelectBranch)
			r.Get("/auth/me", h.Auth.Me)

			r.With(module(user.ModuleDashboard)).Get("/dashboard", h.Dashboard.GetDashboard)

			r.Route("/inventory", func(r chi.Router) {
				r.Use(module(user.ModuleInventory))
				r.Get("/", h.Inventory.List)
				r.Post("/", h.Inventory.Create)
				r.Get("/{id}", h.Inventory.Get)
				r.Put("/{id}", h.Inventory.Update)
				r.Delete("/{id}", h.Inventory.Delete)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Use(module(user.ModuleSales))
				r.Get("/", h.Order.List)
				r.Post("/", h.Order.Create)
				r.Post("/cart/total", h.Order.PreviewCart)
				r.Get("/{id}", h.Order.Get)
				r.Patch("/{id}/status", h.Order.UpdateStatus)
				r.Post("/{id}/expenses", h.Order.AddExpense)
			})

			r.Route("/customers", func(r chi.Router) {
				r.With(module(user.ModulePayments)).Post("/{id}/payments", h.Customer.RecordPayment)

				r.Group(func(r chi.Router) {
					r.Use(module(user.ModuleCRM))
					r.Get("/", h.Customer.List)
					r.Post("/", h.Customer.Create)
					r.Get("/{id}", h.Customer.Get)
					r.Put("/{id}", h.Customer.Update)
					r.Delete("/{id}", h.Customer.Delete)
				})
			})
			r.With(module(user.ModulePayments)).Get("/payments/recent", h.Customer.RecentPayments)

			r.Group(func(r chi.Router) {
				r.Use(module(user.ModuleHR))

				r.Route("/employees", func(r chi.Router) {
					r.Get("/", h.Employee.List)
					r.Post("/", h.Employee.Create)
					r.Get("/{id}", h.Employee.Get)
					r.Put("/{id}", h.Employee.Update)
					r.Delete("/{id}", h.Employee.Delete)
				})

				r.Route("/attendance", func(r chi.Router) {
					r.Post("/check-in", h.Attendance.CheckIn)
					r.Post("/check-out", h.Attendance.CheckOut)
					r.Get("/live", h.Attendance.LiveBoard)
					r.Post("/live/token", h.Attendance.StreamToken)
					r.Get("/calendar", h.Attendance.Calendar)
				})

				r.Route("/payroll", func(r chi.Router) {
					r.Get("/report.xlsx", h.Report.PayrollWorkbook)
					r.Get("/employees/{id}/finance", h.Payroll.FinanceSummary)
					r.Post("/employees/{id}/commission-payouts", h.Payroll.PayCommission)
					r.Post("/employees/{id}/payments", h.Payroll.PayDirect)
				})
			})

			r.Route("/transactions", func(r chi.Router) {
				r.Use(module(user.ModuleAccounting))
				r.Get("/", h.Ledger.List)
				r.Post("/", h.Ledger.Create)
				r.Get("/summary", h.Ledger.Summary)
				r.Get("/export.xlsx", h.Report.LedgerWorkbook)
				r.Delete("/{id}", h.Ledger.Delete)
			})

			r.Group(func(r chi.Router) {
				r.Use(module(user.ModulePurchasing))

				r.Route("/suppliers", func(r chi.Router) {
					r.Get("/", h.Purchasing.ListSuppliers)
					r.Post("/", h.Purchasing.CreateSupplier)
					r.Put("/{id}", h.Purchasing.UpdateSupplier)
					r.Delete("/{id}", h.Purchasing.DeleteSupplier)
				})

				r.Route("/purchase-orders", func(r chi.Router) {
					r.Get("/", h.Purchasing.ListPOs)
					r.Post("/", h.Purchasing.CreatePO)
					r.Post("/{id}/receive", h.Purchasing.ReceivePO)
					r.Post("/{id}/cancel", h.Purchasing.CancelPO)
				})
			})

			r.Route("/settings", func(r chi.Router) {
				r.Use(module(user.ModuleSettings))

				r.Route("/branches", func(r chi.Router) {
					r.Get("/", h.Settings.ListBranches)
					r.Post("/", h.Settings.CreateBranch)
					r.Put("/{id}", h.Settings.UpdateBranch)
					r.Delete("/{id}", h.Settings.DeleteBranch)
					r.Put("/{id}/location", h.Settings.SetBranchLocation)
				})

				r.Route("/departments", func(r chi.Router) {
					r.Get("/", h.Employee.ListDepartments)
					r.Post("/", h.Employee.CreateDepartment)
					r.Delete("/{id}", h.Employee.DeleteDepartment)
				})

				r.Route("/statuses", func(r chi.Router) {
					r.Get("/", h.Employee.ListStatuses)
					r.Post("/", h.Employee.CreateStatus)
					r.Delete("/{id}", h.Employee.DeleteStatus)
				})

				r.Route("/categories", func(r chi.Router) {
					r.Get("/", h.Ledger.ListCategories)
					r.Post("/", h.Ledger.CreateCategory)
					r.Delete("/{id}", h.Ledger.DeleteCategory)
				})

				r.Route("/payment-methods", func(r chi.Router) {
					r.Get("/", h.Ledger.ListPaymentMethods)
					r.Post("/", h.Ledger.CreatePaymentMethod)
					r.Delete("/{id}", h.Ledger.DeletePaymentMethod)
				})

				r.Route("/product-categories", func(r chi.Router) {
					r.Get("/", h.Inventory.ListCategories)
					r.Post("/", h.Inventory.CreateCategory)
					r.Put("/{id}", h.Inventory.UpdateCategory)
					r.Delete("/{id}", h.Inventory.DeleteCategory)
				})

				r.Route("/geo", func(r chi.Router) {
					r.Get("/", h.Settings.ListGeoRegions)
					r.Put("/", h.Settings.SaveGeoRegion)
					r.Delete("/{country}", h.Settings.DeleteGeoRegion)
				})

				r.Route("/roles", func(r chi.Router) {
					r.Get("/", h.Settings.ListRoles)
					r.Post("/", h.Settings.CreateRole)
					r.Put("/{id}", h.Settings.UpdateRole)
					r.Delete("/{id}", h.Settings.DeleteRole)
				})

				r.Route("/users", func(r chi.Router) {
					r.Get("/", h.Settings.ListUsers)
					r.Post("/", h.Settings.CreateUser)
					r.Put("/{id}", h.Settings.UpdateUser)
					r.Delete("/{id}", h.Settings.DeleteUser)
				})

				r.Get("/system", h.Settings.GetSystemConfig)
				r.Put("/system", h.Settings.UpdateSystemConfig)

				r.Get("/dashboard", h.Settings.ListDashboardConfigs)
				r.Put("/dashboard/{role}", h.Settings.SetDashboardConfig)

				r.Get("/backup", h.Settings.ExportBackup)
				r.Post("/backup", h.Settings.ImportBackup)
			})
		})
	})
	return r
}
