package dashboard

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/furniflow/erp-backend-go/internal/domain/dashboard"
	"github.com/furniflow/erp-backend-go/internal/domain/ledger"
	"github.com/furniflow/erp-backend-go/internal/domain/master/branch"
	"github.com/furniflow/erp-backend-go/internal/domain/order"
	"github.com/furniflow/erp-backend-go/internal/domain/settings"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	recentActivityLimit = 5
	chartMonths         = 6
)

type DashboardServiceImpl struct {
	orderRepo       order.OrderRepository
	transactionRepo ledger.TransactionRepository
	dashboardRepo   settings.DashboardConfigRepository
	configRepo      settings.SystemConfigRepository
	now             func() time.Time
}

func NewDashboardService(
	orderRepo order.OrderRepository,
	transactionRepo ledger.TransactionRepository,
	dashboardRepo settings.DashboardConfigRepository,
	configRepo settings.SystemConfigRepository,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		orderRepo:       orderRepo,
		transactionRepo: transactionRepo,
		dashboardRepo:   dashboardRepo,
		configRepo:      configRepo,
		now:             time.Now,
	}
}

// GetDashboard loads orders, ledger and widget config in parallel and fills
// only the widgets the role may see.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, branchScope, role string) (*dashboard.DashboardResponse, error) {
	var (
		orders       []order.SalesOrder
		transactions []ledger.Transaction
		widgetCfgs   []settings.DashboardRoleConfig
		configs      []settings.SystemConfig
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if orders, err = s.orderRepo.Load(gCtx); err != nil {
			return fmt.Errorf("failed to load orders: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if transactions, err = s.transactionRepo.Load(gCtx); err != nil {
			return fmt.Errorf("failed to load transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if widgetCfgs, err = s.dashboardRepo.Load(gCtx); err != nil {
			return fmt.Errorf("failed to load dashboard config: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if configs, err = s.configRepo.Load(gCtx); err != nil {
			return fmt.Errorf("failed to load system config: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	widgets := []settings.Widget{}
	if idx := slices.IndexFunc(widgetCfgs, func(c settings.DashboardRoleConfig) bool { return c.Role == role }); idx >= 0 {
		widgets = widgetCfgs[idx].VisibleWidgets
	}

	scopedOrders := []order.SalesOrder{}
	for _, o := range orders {
		if branch.InScope(branchScope, o.BranchID) {
			scopedOrders = append(scopedOrders, o)
		}
	}
	scopedTx := []ledger.Transaction{}
	for _, t := range transactions {
		if branch.InScope(branchScope, t.BranchID) && t.Status != ledger.StatusCancelled {
			scopedTx = append(scopedTx, t)
		}
	}

	resp := &dashboard.DashboardResponse{
		Widgets: widgets,
		Stats:   Stats(scopedOrders, scopedTx),
	}
	if slices.Contains(widgets, settings.WidgetChartFinancial) {
		month := s.now().In(settings.Current(configs).Location())
		resp.Chart = Chart(scopedTx, month, chartMonths)
	}
	if slices.Contains(widgets, settings.WidgetRecentActivity) {
		resp.RecentActivity = recent(scopedTx, recentActivityLimit)
	}
	return resp, nil
}

// Stats computes the headline figures over already scoped records.
func Stats(orders []order.SalesOrder, transactions []ledger.Transaction) dashboard.StatsResponse {
	stats := dashboard.StatsResponse{
		Revenue:     decimal.Zero,
		NetProfit:   decimal.Zero,
		Receivables: decimal.Zero,
	}
	for _, o := range orders {
		stats.Revenue = stats.Revenue.Add(o.TotalAmount)
		if o.IsActive() {
			stats.ActiveOrders++
		}
		if due := o.Outstanding(); due.IsPositive() {
			stats.Receivables = stats.Receivables.Add(due)
		}
	}
	for _, t := range transactions {
		switch t.Type {
		case ledger.TypeIncome:
			stats.NetProfit = stats.NetProfit.Add(t.Amount)
		case ledger.TypeExpense:
			stats.NetProfit = stats.NetProfit.Sub(t.Amount)
		}
	}
	return stats
}

// Chart buckets income and expense by month for the n months ending with
// the month of until, oldest first.
func Chart(transactions []ledger.Transaction, until time.Time, n int) []dashboard.MonthPoint {
	first := time.Date(until.Year(), until.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(n - 1), 0)

	points := make([]dashboard.MonthPoint, n)
	index := make(map[string]int, n)
	for i := range points {
		key := first.AddDate(0, i, 0).Format("2006-01")
		points[i] = dashboard.MonthPoint{Month: key, Income: decimal.Zero, Expense: decimal.Zero}
		index[key] = i
	}

	for _, t := range transactions {
		if len(t.Date) < 7 {
			continue
		}
		i, ok := index[t.Date[:7]]
		if !ok {
			continue
		}
		switch t.Type {
		case ledger.TypeIncome:
			points[i].Income = points[i].Income.Add(t.Amount)
		case ledger.TypeExpense:
			points[i].Expense = points[i].Expense.Add(t.Amount)
		}
	}
	return points
}

func recent(transactions []ledger.Transaction, limit int) []ledger.Transaction {
	sorted := slices.Clone(transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
