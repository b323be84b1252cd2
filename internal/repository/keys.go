package repository

// Collection names, stored under "<namespace><name>".
const (
	KeyInventory         = "inventory"
	KeyCustomers         = "customers"
	KeyEmployees         = "employees"
	KeyOrders            = "orders"
	KeyBranches          = "branches"
	KeyUsers             = "users"
	KeyTransactions      = "transactions"
	KeyGeo               = "geo"
	KeyCategories        = "categories"
	KeyPaymentMethods    = "payment_methods"
	KeyRoles             = "roles"
	KeyProductCategories = "product_categories"
	KeyDashboardConfig   = "dashboard_config"
	KeySystemConfig      = "system_config"
	KeyDepartments       = "departments"
	KeySuppliers         = "suppliers"
	KeyPurchaseOrders    = "pos"
	KeyEmployeeStatuses  = "employee_statuses"
)

// AllKeys lists every collection name in a stable order.
func AllKeys() []string {
	return []string{
		KeyInventory, KeyCustomers, KeyEmployees, KeyOrders, KeyBranches,
		KeyUsers, KeyTransactions, KeyGeo, KeyCategories, KeyPaymentMethods,
		KeyRoles, KeyProductCategories, KeyDashboardConfig, KeySystemConfig,
		KeyDepartments, KeySuppliers, KeyPurchaseOrders, KeyEmployeeStatuses,
	}
}
