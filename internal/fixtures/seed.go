package fixtures

import (
	"log/slog"
	"sync"
	"time"

	"github.com/furniflow/erp-backend-go/internal/domain/customer"
	"github.com/furniflow/erp-backend-go/internal/domain/employee"
	"github.com/furniflow/erp-backend-go/internal/domain/inventory"
	"github.com/furniflow/erp-backend-go/internal/domain/ledger"
	"github.com/furniflow/erp-backend-go/internal/domain/master/branch"
	"github.com/furniflow/erp-backend-go/internal/domain/order"
	"github.com/furniflow/erp-backend-go/internal/domain/purchasing"
	"github.com/furniflow/erp-backend-go/internal/domain/settings"
	"github.com/furniflow/erp-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Role names referenced by users and dashboard configs.
const (
	RoleAdmin   = "System Admin"
	RoleManager = "Branch Manager"
	RoleSales   = "Sales Staff"
)

// ==========================================
// HELPER FUNCTIONS
// ==========================================

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// ==========================================
// ORGANIZATION
// ==========================================

func Branches() []branch.Branch {
	return []branch.Branch{
		{ID: branch.HeadquartersID, Name: "Headquarters (all branches)", Address: "Head Office", Currency: "EGP", Coordinates: &branch.Coordinates{Lat: 30.0444, Lng: 31.2357, Radius: 200}},
		{ID: "CAI", Name: "Cairo Branch", Address: "Fifth Settlement, Cairo", Currency: "EGP", Coordinates: &branch.Coordinates{Lat: 30.0444, Lng: 31.2357, Radius: 100}},
		{ID: "ALX", Name: "Alexandria Branch", Address: "Smouha, Alexandria", Currency: "EGP", Coordinates: &branch.Coordinates{Lat: 31.2001, Lng: 29.9187, Radius: 100}},
		{ID: "JED", Name: "Jeddah Branch", Address: "Tahlia Street, Jeddah", Currency: "SAR", Coordinates: &branch.Coordinates{Lat: 21.4858, Lng: 39.1925, Radius: 100}},
	}
}

func Roles() []user.Role {
	return []user.Role{
		{ID: "role_admin", Name: RoleAdmin, Permissions: user.AllModules(), IsSystem: true},
		{ID: "role_manager", Name: RoleManager, Permissions: []user.Module{
			user.ModuleDashboard, user.ModuleInventory, user.ModuleSales, user.ModuleCRM,
			user.ModulePayments, user.ModuleHR, user.ModuleAccounting, user.ModulePurchasing,
		}, IsSystem: true},
		{ID: "role_staff", Name: RoleSales, Permissions: []user.Module{
			user.ModuleDashboard, user.ModuleInventory, user.ModuleSales, user.ModuleCRM, user.ModulePayments,
		}, IsSystem: true},
	}
}

func DashboardConfigs() []settings.DashboardRoleConfig {
	return []settings.DashboardRoleConfig{
		{Role: RoleAdmin, VisibleWidgets: settings.AllWidgets()},
		{Role: RoleManager, VisibleWidgets: []settings.Widget{
			settings.WidgetRevenue, settings.WidgetActiveOrders, settings.WidgetNetProfit, settings.WidgetRecentActivity,
		}},
		{Role: RoleSales, VisibleWidgets: []settings.Widget{settings.WidgetActiveOrders, settings.WidgetRecentActivity}},
	}
}

var seedPasswordHashes = sync.OnceValue(func() map[string]string {
	hashes := make(map[string]string)
	for _, pw := range []string{"admin", "123"} {
		hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
		if err != nil {
			slog.Error("failed to hash seed password", "error", err)
			continue
		}
		hashes[pw] = string(hash)
	}
	return hashes
})

// Users returns the default accounts. Passwords are admin / 123 / 123.
func Users() []user.User {
	hashes := seedPasswordHashes()
	return []user.User{
		{ID: "u1", Name: "General Manager", Email: "admin@furniflow.com", Role: RoleAdmin, BranchID: branch.HeadquartersID, PasswordHash: hashes["admin"]},
		{ID: "u2", Name: "Ahmed Manager", Email: "ahmed@furniflow.com", Role: RoleManager, BranchID: "CAI", PasswordHash: hashes["123"]},
		{ID: "u3", Name: "Sarah Sales", Email: "sarah@furniflow.com", Role: RoleSales, BranchID: "CAI", PasswordHash: hashes["123"]},
	}
}

func SystemConfig() []settings.SystemConfig {
	return []settings.SystemConfig{{
		ID:                         settings.SystemConfigID,
		CompanyName:                "FurniFlow",
		SupportEmail:               "support@furniflow.com",
		OrderPrefix:                "INV",
		DefaultCurrency:            "EGP",
		DefaultCountry:             "Egypt",
		DefaultTimezone:            "Africa/Cairo",
		StandardMonthlyWorkingDays: settings.DefaultWorkingDays,
	}}
}

func GeoRegions() []settings.GeoRegion {
	return []settings.GeoRegion{
		{Country: "Egypt", Counties: []string{"Cairo", "Giza", "Alexandria", "Mansoura", "Assiut"}},
		{Country: "Saudi Arabia", Counties: []string{"Riyadh", "Jeddah", "Dammam", "Mecca"}},
		{Country: "United Arab Emirates", Counties: []string{"Dubai", "Abu Dhabi", "Sharjah"}},
	}
}

// ==========================================
// HR
// ==========================================

func Departments() []employee.Department {
	return []employee.Department{
		{ID: "d1", Name: "Executive Management"},
		{ID: "d2", Name: "Sales"},
		{ID: "d3", Name: "Human Resources"},
		{ID: "d4", Name: "Accounting"},
		{ID: "d5", Name: "Logistics"},
		{ID: "d6", Name: "Warehouse"},
		{ID: "d7", Name: "Design"},
		{ID: "d8", Name: "Customer Service"},
	}
}

func EmployeeStatuses() []employee.EmployeeStatus {
	return []employee.EmployeeStatus{
		{ID: "st_active", Name: employee.StatusActive, Color: "success"},
		{ID: "st_leave", Name: employee.StatusOnLeave, Color: "warning"},
		{ID: "st_probation", Name: employee.StatusProbation, Color: "neutral"},
		{ID: "st_terminated", Name: employee.StatusTerminated, Color: "danger"},
	}
}

// Employees returns the sample staff. e2 starts checked in without a log,
// the way the showroom kiosk leaves a device that was never clocked out.
func Employees() []employee.Employee {
	checkedIn := time.Now().UTC()
	return []employee.Employee{
		{
			ID: "e1", Name: "Mohamed Ali", Role: "Showroom Manager", Department: "Sales",
			Email: "mohamed@furniflow.com", Status: employee.StatusActive, BranchID: "CAI",
			Salary: dec(8000), CommissionRate: dec(2), SalesTarget: dec(100000),
			AttendanceDays: 21, TotalWorkingDays: 26, Logs: []employee.AttendanceLog{},
		},
		{
			ID: "e2", Name: "Khaled Ibrahim", Role: "Sales Consultant", Department: "Sales",
			Email: "khaled@furniflow.com", Status: employee.StatusActive, BranchID: "ALX",
			Salary: dec(4000), CommissionRate: dec(5), SalesTarget: dec(50000), LoanBalance: dec(200),
			AttendanceDays: 26, TotalWorkingDays: 26,
			IsCheckedIn: true, LastCheckInTime: &checkedIn, Logs: []employee.AttendanceLog{},
		},
		{
			ID: "e3", Name: "Dr. Youssef", Role: "HR Specialist", Department: "Human Resources",
			Email: "youssef@furniflow.com", Status: employee.StatusOnLeave, BranchID: branch.HeadquartersID,
			Salary: dec(6000), AttendanceDays: 10, TotalWorkingDays: 26, Logs: []employee.AttendanceLog{},
		},
	}
}

// ==========================================
// SALES & CRM
// ==========================================

func ProductCategories() []inventory.ProductCategory {
	return []inventory.ProductCategory{
		{ID: "cat_living", Name: "Living Room", SubCategories: []string{"Sofas", "Chairs", "Coffee Tables", "Bookcases"}},
		{ID: "cat_dining", Name: "Dining Room", SubCategories: []string{"Dining Tables", "Dining Chairs", "Buffets", "Display Cabinets"}},
		{ID: "cat_bedroom", Name: "Bedroom", SubCategories: []string{"Beds", "Wardrobes", "Nightstands", "Dressers", "Mattresses"}},
		{ID: "cat_office", Name: "Office Furniture", SubCategories: []string{"Desks", "Office Chairs", "Storage Units"}},
		{ID: "cat_outdoor", Name: "Outdoor Furniture", SubCategories: []string{"Lounge Sets", "Umbrellas", "Swings"}},
	}
}

func Inventory() []inventory.Item {
	return []inventory.Item{
		{
			ID: "1", Name: "Nordic Oak Dining Table", SKU: "TBL-001", Category: "Dining Room",
			Price: dec(18500), CostPrice: dec(12000), Stock: 12,
			Description: "Minimal dining table made from sustainable solid oak.",
			Media:       []inventory.Media{{ID: "m1", Type: "image", URL: "https://picsum.photos/400/300?random=1", IsPrimary: true}},
			Material:    "Oak", BranchID: "CAI", Components: []inventory.Component{},
		},
		{
			ID: "2", Name: "Royal Bedroom Set", SKU: "SET-BD-004", Category: "Bedroom",
			Price: dec(65000), CostPrice: dec(40000), Stock: 3,
			Description: "Complete bedroom set with a king bed, two nightstands and a large wardrobe.",
			Media:       []inventory.Media{{ID: "m2", Type: "image", URL: "https://picsum.photos/400/300?random=2", IsPrimary: true}},
			Material:    "Mahogany and velvet", BranchID: "CAI",
			Components: []inventory.Component{
				{ID: "comp_bed", Name: "King Bed", Quantity: 1, Category: "Beds"},
				{ID: "comp_ns", Name: "Nightstand", Quantity: 2, Category: "Nightstands"},
				{ID: "comp_wd", Name: "Three-door Wardrobe", Quantity: 1, Category: "Wardrobes"},
			},
		},
		{
			ID: "3", Name: "Industrial Metal Bookcase", SKU: "SHL-022", Category: "Office Furniture",
			Price: dec(4500), CostPrice: dec(2000), Stock: 24,
			Description: "Sturdy steel frame with wooden shelves.",
			Media:       []inventory.Media{{ID: "m3", Type: "image", URL: "https://picsum.photos/400/300?random=3", IsPrimary: true}},
			Material:    "Steel and wood", BranchID: "ALX", Components: []inventory.Component{},
		},
	}
}

func Customers() []customer.Customer {
	return []customer.Customer{{
		ID: "c1", Name: "Laila Ahmed", Email: "laila@example.com", Mobile1: "01234567890",
		Country: "Egypt", County: "Cairo",
		TotalSales: dec(15000), TotalPaid: dec(15000), LastPurchaseDate: "2024-01-15",
		Tags: []string{"VIP"}, Notes: "Prefers light colours.", BranchID: "CAI",
	}}
}

func Orders() []order.SalesOrder {
	return []order.SalesOrder{{
		ID: "ORD-UUID-1001", SystemOrderID: 1001, ManualContractID: "CNT-001",
		Date: "2024-01-15", ShowroomDate: "2024-01-15", DeliveryDate: "2024-01-20",
		CustomerID: "c1", CustomerName: "Laila Ahmed", SalesRepID: "e1",
		Items: []order.Item{{
			ProductID: "1", ProductName: "Oak Dining Table", Quantity: 1, Price: dec(15000),
			Components: []inventory.Component{},
		}},
		TotalAmount: dec(15000), PaidAmount: dec(15000), Status: order.StatusCompleted,
		PaymentMethod: "Cash (Cairo)", BranchID: "CAI", Scope: "Dining room renovation",
	}}
}

// ==========================================
// FINANCE & PURCHASING
// ==========================================

func AccountCategories() []ledger.AccountCategory {
	return []ledger.AccountCategory{
		{ID: "cat1", Name: ledger.CategorySales, Type: string(ledger.TypeIncome)},
		{ID: "cat2", Name: "services", Type: string(ledger.TypeIncome)},
		{ID: "cat3", Name: "rent", Type: string(ledger.TypeExpense)},
		{ID: "cat4", Name: ledger.CategorySalaries, Type: string(ledger.TypeExpense)},
		{ID: "cat5", Name: "utilities", Type: string(ledger.TypeExpense)},
		{ID: "cat6", Name: "marketing", Type: string(ledger.TypeExpense)},
		{ID: "cat7", Name: "supplies", Type: string(ledger.TypeExpense)},
		{ID: "cat8", Name: ledger.CategoryGoodsPurchases, Type: string(ledger.TypeExpense)},
		{ID: "cat9", Name: "general", Type: "Both"},
		{ID: "cat10", Name: ledger.CategoryCommissions, Type: string(ledger.TypeExpense)},
		{ID: "cat11", Name: ledger.CategoryEmployeeAdvances, Type: string(ledger.TypeExpense)},
	}
}

func PaymentMethods() []ledger.PaymentMethod {
	return []ledger.PaymentMethod{
		{ID: "pm1", Name: "Cash (Cairo)", BranchID: "CAI"},
		{ID: "pm2", Name: "Visa (Cairo)", BranchID: "CAI"},
		{ID: "pm3", Name: "Bank Transfer (CIB)", BranchID: "CAI"},
		{ID: "pm4", Name: "Cash (Alexandria)", BranchID: "ALX"},
		{ID: "pm5", Name: "Vodafone Cash", BranchID: branch.HeadquartersID},
	}
}

func Transactions() []ledger.Transaction {
	return []ledger.Transaction{{
		ID: "t1", Date: "2024-01-01", Description: "Showroom rent", Amount: dec(25000),
		Type: ledger.TypeExpense, Category: "rent", Status: ledger.StatusCompleted,
		BranchID: "CAI", PaymentMethod: "Bank Transfer (CIB)",
	}}
}

func Suppliers() []purchasing.Supplier {
	return []purchasing.Supplier{{
		ID: "sup1", Name: "Modern Timber Co.", ContactPerson: "Mr. Hassan",
		Email: "hassan@wood.com", Phone: "0100000000", Address: "Damietta, Egypt",
	}}
}

func PurchaseOrders() []purchasing.PurchaseOrder {
	return []purchasing.PurchaseOrder{{
		ID: "PO-1001", PONumber: "PO-1001", SupplierID: "sup1", SupplierName: "Modern Timber Co.",
		Date: "2024-01-01", TotalCost: dec(45000), Status: purchasing.StatusReceived, BranchID: "CAI",
		Items: []purchasing.Item{{ProductID: "1", ProductName: "Oak Dining Table", Quantity: 5, UnitCost: dec(9000)}},
	}}
}
