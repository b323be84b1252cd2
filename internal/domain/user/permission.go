package user

// Module is a top-level application area a role may be granted.
type Module string

const (
	ModuleDashboard  Module = "DASHBOARD"
	ModuleInventory  Module = "INVENTORY"
	ModuleSales      Module = "SALES"
	ModuleCRM        Module = "CRM"
	ModulePayments   Module = "PAYMENTS"
	ModuleHR         Module = "HR"
	ModuleAccounting Module = "ACCOUNTING"
	ModulePurchasing Module = "PURCHASING"
	ModuleSettings   Module = "SETTINGS"
)

// AllModules lists every module in menu order.
func AllModules() []Module {
	return []Module{
		ModuleDashboard,
		ModuleInventory,
		ModuleSales,
		ModuleCRM,
		ModulePayments,
		ModuleHR,
		ModuleAccounting,
		ModulePurchasing,
		ModuleSettings,
	}
}

func IsValidModule(m Module) bool {
	for _, known := range AllModules() {
		if m == known {
			return true
		}
	}
	return false
}
