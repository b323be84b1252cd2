package settings

import "time"

// SystemConfigID is the id of the single system config record.
const SystemConfigID = "CONFIG"

// DefaultWorkingDays is used when neither the employee nor the system config
// sets a monthly working-day count.
const DefaultWorkingDays = 26

type SystemConfig struct {
	ID                         string `json:"id"`
	CompanyName                string `json:"companyName"`
	SupportEmail               string `json:"supportEmail"`
	OrderPrefix                string `json:"orderPrefix"`
	DefaultCurrency            string `json:"defaultCurrency"`
	DefaultCountry             string `json:"defaultCountry"`
	DefaultTimezone            string `json:"defaultTimezone"`
	StandardMonthlyWorkingDays int    `json:"standardMonthlyWorkingDays,omitempty"`
}

// Location resolves the configured timezone, falling back to the server's
// local zone when it is unset or unknown.
func (c SystemConfig) Location() *time.Location {
	if c.DefaultTimezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.DefaultTimezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Widget is a dashboard card a role may see.
type Widget string

const (
	WidgetRevenue        Widget = "REVENUE"
	WidgetActiveOrders   Widget = "ACTIVE_ORDERS"
	WidgetNetProfit      Widget = "NET_PROFIT"
	WidgetReceivables    Widget = "RECEIVABLES"
	WidgetChartFinancial Widget = "CHART_FINANCIAL"
	WidgetRecentActivity Widget = "RECENT_ACTIVITY"
)

func AllWidgets() []Widget {
	return []Widget{
		WidgetRevenue,
		WidgetActiveOrders,
		WidgetNetProfit,
		WidgetReceivables,
		WidgetChartFinancial,
		WidgetRecentActivity,
	}
}

func IsValidWidget(w Widget) bool {
	for _, known := range AllWidgets() {
		if w == known {
			return true
		}
	}
	return false
}

type DashboardRoleConfig struct {
	Role           string   `json:"role"`
	VisibleWidgets []Widget `json:"visibleWidgets"`
}

// GeoRegion is a country and the counties customers can be filed under.
type GeoRegion struct {
	Country  string   `json:"country"`
	Counties []string `json:"counties"`
}

// Current picks the singleton config out of its stored list.
func Current(configs []SystemConfig) SystemConfig {
	for _, c := range configs {
		if c.ID == SystemConfigID {
			return c
		}
	}
	if len(configs) > 0 {
		return configs[0]
	}
	return SystemConfig{ID: SystemConfigID, StandardMonthlyWorkingDays: DefaultWorkingDays}
}
