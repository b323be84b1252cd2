package payroll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/furniflow/erp-backend-go/internal/domain/employee"
	"github.com/furniflow/erp-backend-go/internal/domain/ledger"
	"github.com/furniflow/erp-backend-go/internal/domain/order"
	"github.com/furniflow/erp-backend-go/internal/domain/payroll"
	"github.com/furniflow/erp-backend-go/internal/domain/settings"
	"github.com/furniflow/erp-backend-go/internal/pkg/events"
	"github.com/furniflow/erp-backend-go/internal/repository"
	"github.com/furniflow/erp-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

// failingOrders fails every write so the surrounding transaction rolls back.
type failingOrders struct {
	order.OrderRepository
}

func (failingOrders) Store(context.Context, []order.SalesOrder) error {
	return errors.New("disk full")
}

var fixedNow = time.Date(2024, 5, 20, 9, 30, 0, 0, time.UTC)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func setup(t *testing.T) (*repository.Collections, *recordingPublisher) {
	t.Helper()
	ctx := context.Background()
	cols := repository.NewCollections(memory.NewStore(), "test_")

	require.NoError(t, cols.SystemConfig.Store(ctx, []settings.SystemConfig{
		{ID: settings.SystemConfigID, DefaultTimezone: "UTC", StandardMonthlyWorkingDays: 26},
	}))
	require.NoError(t, cols.Employees.Store(ctx, []employee.Employee{
		{ID: "e1", Name: "Khaled", BranchID: "ALX", Salary: d("6000"), CommissionRate: d("5"), AttendanceDays: 13},
		{ID: "e2", Name: "Sarah", BranchID: "CAI", Salary: d("4000"), CommissionRate: d("2"), AttendanceDays: 20, TotalWorkingDays: 20},
	}))
	require.NoError(t, cols.Orders.Store(ctx, []order.SalesOrder{
		{ID: "A", SystemOrderID: 1001, CustomerName: "Fatma", SalesRepID: "e1", Status: order.StatusCompleted, TotalAmount: d("15000")},
		{ID: "B", SystemOrderID: 1002, CustomerName: "Omar", SalesRepID: "e1", Status: order.StatusCompleted, TotalAmount: d("4000")},
		{ID: "C", SystemOrderID: 1003, SalesRepID: "e1", Status: order.StatusPending, TotalAmount: d("9000")},
		{ID: "D", SystemOrderID: 1004, SalesRepID: "e2", Status: order.StatusCompleted, TotalAmount: d("1000")},
	}))
	require.NoError(t, cols.Transactions.Store(ctx, []ledger.Transaction{}))

	return cols, &recordingPublisher{}
}

func newService(cols *repository.Collections, pub events.Publisher) payroll.PayrollService {
	return NewPayrollService(cols.Store, cols.Employees, cols.Orders, cols.Transactions, cols.SystemConfig, pub,
		func() time.Time { return fixedNow })
}

func TestFinanceSummary(t *testing.T) {
	cols, pub := setup(t)
	svc := newService(cols, pub)

	summary, err := svc.FinanceSummary(context.Background(), "e1")
	require.NoError(t, err)

	assert.Equal(t, 26, summary.WorkingDays)
	assert.True(t, summary.EarnedToDate.Equal(d("3000")), summary.EarnedToDate.String())
	assert.True(t, summary.DailyRate.Equal(d("230.77")))
	assert.Equal(t, 50.0, summary.Progress)

	require.Len(t, summary.EligibleOrders, 2)
	assert.Equal(t, "A", summary.EligibleOrders[0].OrderID)
	assert.True(t, summary.EligibleOrders[0].StandardCommission.Equal(d("750")))
	assert.True(t, summary.EligibleOrders[1].StandardCommission.Equal(d("200")))
	assert.True(t, summary.TotalPendingCommission.Equal(d("950")))
	assert.Empty(t, summary.PaidCommissions)
	assert.Empty(t, summary.History)
}

func TestFinanceSummary_EmployeeWorkingDaysWin(t *testing.T) {
	cols, pub := setup(t)
	svc := newService(cols, pub)

	summary, err := svc.FinanceSummary(context.Background(), "e2")
	require.NoError(t, err)
	assert.Equal(t, 20, summary.WorkingDays)
	assert.Equal(t, 100.0, summary.Progress)
	assert.True(t, summary.EarnedToDate.Equal(d("4000")))
}

func TestPayCommission_WithOverride(t *testing.T) {
	ctx := context.Background()
	cols, pub := setup(t)
	svc := newService(cols, pub)

	resp, err := svc.PayCommission(ctx, "e1", payroll.PayCommissionRequest{
		OrderIDs:      []string{"A", "B"},
		Overrides:     map[string]decimal.Decimal{"A": d("800")},
		PaymentMethod: "Cash",
	})
	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(d("1000")), resp.Total.String())

	transactions, err := cols.Transactions.Load(ctx)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	tx := transactions[0]
	assert.Equal(t, ledger.TypeExpense, tx.Type)
	assert.Equal(t, ledger.CategoryCommissions, tx.Category)
	assert.Equal(t, ledger.StatusCompleted, tx.Status)
	assert.Equal(t, "ALX", tx.BranchID)
	assert.Equal(t, "e1", tx.EmployeeID)
	assert.Equal(t, "Cash", tx.PaymentMethod)
	assert.Equal(t, "2024-05-20", tx.Date)
	assert.True(t, tx.Amount.Equal(d("1000")))

	orders, err := cols.Orders.Load(ctx)
	require.NoError(t, err)
	for _, id := range []string{"A", "B"} {
		i, ok := order.FindByID(orders, id)
		require.True(t, ok)
		assert.True(t, orders[i].IsCommissionPaid)
		require.NotNil(t, orders[i].CommissionPaidDate)
		assert.True(t, orders[i].CommissionPaidDate.Equal(fixedNow))
		assert.False(t, orders[i].CommissionEligible("e1"))
	}
	i, _ := order.FindByID(orders, "A")
	assert.True(t, orders[i].CommissionOverrideAmount.Equal(d("800")))
	i, _ = order.FindByID(orders, "B")
	assert.True(t, orders[i].CommissionOverrideAmount.Equal(d("200")))
	// The override on A leaves B's standard commission alone.
	assert.True(t, orders[i].StandardCommission(d("5")).Equal(d("200")))

	summary, err := svc.FinanceSummary(ctx, "e1")
	require.NoError(t, err)
	assert.Empty(t, summary.EligibleOrders)
	require.Len(t, summary.PaidCommissions, 2)
	assert.True(t, summary.TotalPaidCommission.Equal(d("1000")))
	require.Len(t, summary.History, 1)
	assert.True(t, summary.TotalPaid.Equal(d("1000")))

	require.Len(t, pub.events, 1)
	assert.Equal(t, events.CommissionPaid, pub.events[0].Name)
	assert.Equal(t, "e1", pub.events[0].AggregateID)
}

func TestPayCommission_SecondPayoutRejected(t *testing.T) {
	ctx := context.Background()
	cols, pub := setup(t)
	svc := newService(cols, pub)

	req := payroll.PayCommissionRequest{OrderIDs: []string{"A"}, PaymentMethod: "Cash"}
	_, err := svc.PayCommission(ctx, "e1", req)
	require.NoError(t, err)

	_, err = svc.PayCommission(ctx, "e1", req)
	assert.ErrorIs(t, err, payroll.ErrOrderNotEligible)

	transactions, err := cols.Transactions.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, transactions, 1)
}

func TestPayCommission_IneligibleSelectionWritesNothing(t *testing.T) {
	tests := []struct {
		name    string
		orders  []string
		wantErr error
	}{
		{"pending order", []string{"A", "C"}, payroll.ErrOrderNotEligible},
		{"other rep's order", []string{"A", "D"}, payroll.ErrOrderNotEligible},
		{"unknown order", []string{"A", "Z"}, payroll.ErrOrderNotEligible},
		{"empty selection", nil, payroll.ErrNoOrdersSelected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			cols, pub := setup(t)
			svc := newService(cols, pub)

			_, err := svc.PayCommission(ctx, "e1", payroll.PayCommissionRequest{OrderIDs: tt.orders, PaymentMethod: "Cash"})
			assert.ErrorIs(t, err, tt.wantErr)

			transactions, err := cols.Transactions.Load(ctx)
			require.NoError(t, err)
			assert.Empty(t, transactions)

			orders, err := cols.Orders.Load(ctx)
			require.NoError(t, err)
			for _, o := range orders {
				assert.False(t, o.IsCommissionPaid, o.ID)
			}
			assert.Empty(t, pub.events)
		})
	}
}

func TestPayCommission_RollsBackLedgerWhenOrderWriteFails(t *testing.T) {
	ctx := context.Background()
	cols, pub := setup(t)
	svc := NewPayrollService(cols.Store, cols.Employees, failingOrders{cols.Orders}, cols.Transactions, cols.SystemConfig, pub,
		func() time.Time { return fixedNow })

	_, err := svc.PayCommission(ctx, "e1", payroll.PayCommissionRequest{OrderIDs: []string{"A"}, PaymentMethod: "Cash"})
	require.Error(t, err)

	transactions, err := cols.Transactions.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, transactions)
	assert.Empty(t, pub.events)
}

func TestPayCommission_Validation(t *testing.T) {
	cols, pub := setup(t)
	svc := newService(cols, pub)
	ctx := context.Background()

	_, err := svc.PayCommission(ctx, "e1", payroll.PayCommissionRequest{OrderIDs: []string{"A"}})
	assert.ErrorIs(t, err, payroll.ErrPaymentMethodRequired)

	_, err = svc.PayCommission(ctx, "e1", payroll.PayCommissionRequest{
		OrderIDs: []string{"A"}, PaymentMethod: "Cash", Overrides: map[string]decimal.Decimal{"A": d("-1")},
	})
	assert.ErrorIs(t, err, payroll.ErrNegativeOverride)

	_, err = svc.PayCommission(ctx, "e1", payroll.PayCommissionRequest{
		OrderIDs: []string{"A"}, PaymentMethod: "Cash", Overrides: map[string]decimal.Decimal{"A": d("0")},
	})
	assert.ErrorIs(t, err, payroll.ErrInvalidAmount)

	_, err = svc.PayCommission(ctx, "ghost", payroll.PayCommissionRequest{OrderIDs: []string{"A"}, PaymentMethod: "Cash"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestPayDirect(t *testing.T) {
	tests := []struct {
		name         string
		kind         payroll.PaymentType
		wantCategory string
		wantLoan     string
	}{
		{"salary", payroll.PaymentSalary, ledger.CategorySalaries, "0"},
		{"bonus", payroll.PaymentBonus, ledger.CategorySalaries, "0"},
		{"advance", payroll.PaymentAdvance, ledger.CategoryEmployeeAdvances, "500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			cols, pub := setup(t)
			svc := newService(cols, pub)

			resp, err := svc.PayDirect(ctx, "e1", payroll.DirectPaymentRequest{
				Type: tt.kind, Amount: d("500"), PaymentMethod: "Cash", Note: "May",
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantCategory, resp.Transaction.Category)
			assert.Equal(t, ledger.TypeExpense, resp.Transaction.Type)
			assert.True(t, resp.LoanBalance.Equal(d(tt.wantLoan)))

			employees, err := cols.Employees.Load(ctx)
			require.NoError(t, err)
			assert.True(t, employees[0].LoanBalance.Equal(d(tt.wantLoan)))
			assert.Equal(t, 13, employees[0].AttendanceDays)

			summary, err := svc.FinanceSummary(ctx, "e1")
			require.NoError(t, err)
			assert.True(t, summary.EarnedToDate.Equal(d("3000")))
			assert.True(t, summary.TotalPaid.Equal(d("500")))

			require.Len(t, pub.events, 1)
			assert.Equal(t, events.EmployeePaid, pub.events[0].Name)
		})
	}
}

func TestPayDirect_Validation(t *testing.T) {
	cols, pub := setup(t)
	svc := newService(cols, pub)
	ctx := context.Background()

	_, err := svc.PayDirect(ctx, "e1", payroll.DirectPaymentRequest{Type: "Gift", Amount: d("1"), PaymentMethod: "Cash"})
	assert.ErrorIs(t, err, payroll.ErrInvalidPaymentType)

	_, err = svc.PayDirect(ctx, "e1", payroll.DirectPaymentRequest{Type: payroll.PaymentSalary, Amount: d("0"), PaymentMethod: "Cash"})
	assert.ErrorIs(t, err, payroll.ErrInvalidAmount)

	_, err = svc.PayDirect(ctx, "e1", payroll.DirectPaymentRequest{Type: payroll.PaymentSalary, Amount: d("10")})
	assert.ErrorIs(t, err, payroll.ErrPaymentMethodRequired)
}

func TestPayrollSheet(t *testing.T) {
	ctx := context.Background()
	cols, pub := setup(t)
	svc := newService(cols, pub)

	_, err := svc.PayDirect(ctx, "e1", payroll.DirectPaymentRequest{Type: payroll.PaymentAdvance, Amount: d("300"), PaymentMethod: "Cash"})
	require.NoError(t, err)

	rows, err := svc.PayrollSheet(ctx, "ALX")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "e1", rows[0].EmployeeID)
	assert.True(t, rows[0].EarnedToDate.Equal(d("3000")))
	assert.True(t, rows[0].PendingCommission.Equal(d("950")))
	assert.True(t, rows[0].LoanBalance.Equal(d("300")))
	assert.True(t, rows[0].TotalPaid.Equal(d("300")))

	all, err := svc.PayrollSheet(ctx, "HQ")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
