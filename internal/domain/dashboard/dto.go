package dashboard

import (
	"github.com/furniflow/erp-backend-go/internal/domain/ledger"
	"github.com/furniflow/erp-backend-go/internal/domain/settings"
	"github.com/shopspring/decimal"
)

type StatsResponse struct {
	Revenue      decimal.Decimal `json:"revenue"`
	ActiveOrders int             `json:"active_orders"`
	NetProfit    decimal.Decimal `json:"net_profit"`
	Receivables  decimal.Decimal `json:"receivables"`
}

// MonthPoint is one month of the income/expense chart, keyed YYYY-MM.
type MonthPoint struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

type DashboardResponse struct {
	Widgets        []settings.Widget    `json:"widgets"`
	Stats          StatsResponse        `json:"stats"`
	Chart          []MonthPoint         `json:"chart,omitempty"`
	RecentActivity []ledger.Transaction `json:"recent_activity,omitempty"`
}
