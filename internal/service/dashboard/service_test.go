package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/furniflow/erp-backend-go/internal/domain/ledger"
	"github.com/furniflow/erp-backend-go/internal/domain/master/branch"
	"github.com/furniflow/erp-backend-go/internal/domain/order"
	"github.com/furniflow/erp-backend-go/internal/domain/settings"
	"github.com/furniflow/erp-backend-go/internal/fixtures"
	"github.com/furniflow/erp-backend-go/internal/repository"
	"github.com/furniflow/erp-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestStats(t *testing.T) {
	orders := []order.SalesOrder{
		{TotalAmount: dec(1000), PaidAmount: dec(400), Status: order.StatusPartial},
		{TotalAmount: dec(500), PaidAmount: dec(0), Status: order.StatusPending},
		{TotalAmount: dec(2000), PaidAmount: dec(2000), Status: order.StatusCompleted},
	}
	transactions := []ledger.Transaction{
		{Amount: dec(2400), Type: ledger.TypeIncome},
		{Amount: dec(900), Type: ledger.TypeExpense},
	}

	stats := Stats(orders, transactions)
	assert.True(t, stats.Revenue.Equal(dec(3500)))
	assert.Equal(t, 2, stats.ActiveOrders)
	assert.True(t, stats.NetProfit.Equal(dec(1500)))
	assert.True(t, stats.Receivables.Equal(dec(1100)))
}

func TestChart(t *testing.T) {
	transactions := []ledger.Transaction{
		{Date: "2024-06-03", Amount: dec(100), Type: ledger.TypeIncome},
		{Date: "2024-06-20", Amount: dec(40), Type: ledger.TypeExpense},
		{Date: "2024-01-15", Amount: dec(10), Type: ledger.TypeIncome},
		{Date: "2023-12-31", Amount: dec(999), Type: ledger.TypeIncome},
	}

	points := Chart(transactions, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), 6)
	require.Len(t, points, 6)
	assert.Equal(t, "2024-01", points[0].Month)
	assert.True(t, points[0].Income.Equal(dec(10)))
	assert.Equal(t, "2024-06", points[5].Month)
	assert.True(t, points[5].Income.Equal(dec(100)))
	assert.True(t, points[5].Expense.Equal(dec(40)))
}

func TestGetDashboard_WidgetsByRole(t *testing.T) {
	ctx := context.Background()
	cols := repository.NewCollections(memory.NewStore(), "test_")
	svc := NewDashboardService(cols.Orders, cols.Transactions, cols.DashboardConfig, cols.SystemConfig).(*DashboardServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC) }

	admin, err := svc.GetDashboard(ctx, branch.HeadquartersID, fixtures.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, settings.AllWidgets(), admin.Widgets)
	assert.Len(t, admin.Chart, chartMonths)
	require.NotEmpty(t, admin.RecentActivity)
	assert.Equal(t, "t1", admin.RecentActivity[0].ID)

	sales, err := svc.GetDashboard(ctx, "CAI", fixtures.RoleSales)
	require.NoError(t, err)
	assert.Nil(t, sales.Chart)
	assert.NotNil(t, sales.RecentActivity)

	alx, err := svc.GetDashboard(ctx, "ALX", fixtures.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, alx.Stats.Revenue.IsZero())
	assert.Empty(t, alx.RecentActivity)

	unknown, err := svc.GetDashboard(ctx, "CAI", "Nobody")
	require.NoError(t, err)
	assert.Empty(t, unknown.Widgets)
}
