package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/furniflow/erp-backend-go/internal/domain/customer"
	"github.com/furniflow/erp-backend-go/internal/domain/ledger"
	"github.com/furniflow/erp-backend-go/internal/domain/master/branch"
	"github.com/furniflow/erp-backend-go/internal/pkg/events"
	"github.com/furniflow/erp-backend-go/internal/pkg/validator"
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

func newTestService(t *testing.T) (*LedgerServiceImpl, *repository.Collections, *recordingPublisher) {
	t.Helper()
	cols := repository.NewCollections(memory.NewStore(), "test_")
	pub := &recordingPublisher{}
	svc := NewLedgerService(cols.Store, cols.Transactions, cols.Categories, cols.PaymentMethods,
		cols.Customers, cols.Branches, cols.SystemConfig, pub).(*LedgerServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC) }
	return svc, cols, pub
}

func TestRecordPayment(t *testing.T) {
	ctx := context.Background()
	svc, cols, pub := newTestService(t)

	payment, err := svc.RecordPayment(ctx, ledger.RecordPaymentRequest{
		CustomerID: "c1", Amount: decimal.NewFromInt(1000), PaymentMethod: "Cash (Cairo)", Note: "Deposit",
	})
	require.NoError(t, err)
	assert.Equal(t, ledger.TypeIncome, payment.Type)
	assert.Equal(t, ledger.CategorySales, payment.Category)
	assert.Equal(t, "CAI", payment.BranchID)
	assert.Equal(t, "c1", payment.CustomerID)
	assert.Equal(t, "2024-07-01", payment.Date)
	assert.Contains(t, payment.Description, "Deposit")

	customers, err := cols.Customers.Load(ctx)
	require.NoError(t, err)
	idx, _ := customer.FindByID(customers, "c1")
	assert.True(t, customers[idx].TotalPaid.Equal(decimal.NewFromInt(16000)))

	require.Len(t, pub.events, 1)
	assert.Equal(t, events.CustomerPayment, pub.events[0].Name)
}

func TestRecordPayment_Rejections(t *testing.T) {
	ctx := context.Background()
	svc, cols, _ := newTestService(t)

	_, err := svc.RecordPayment(ctx, ledger.RecordPaymentRequest{CustomerID: "c1", Amount: decimal.Zero, PaymentMethod: "Cash"})
	assert.ErrorIs(t, err, ledger.ErrInvalidAmount)

	_, err = svc.RecordPayment(ctx, ledger.RecordPaymentRequest{CustomerID: "c1", Amount: decimal.NewFromInt(5)})
	assert.ErrorIs(t, err, ledger.ErrPaymentMethodRequired)

	_, err = svc.RecordPayment(ctx, ledger.RecordPaymentRequest{CustomerID: "ghost", Amount: decimal.NewFromInt(5), PaymentMethod: "Cash"})
	assert.ErrorIs(t, err, customer.ErrCustomerNotFound)

	transactions, err := cols.Transactions.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, transactions, 1)
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	_, err := svc.RecordPayment(ctx, ledger.RecordPaymentRequest{CustomerID: "c1", Amount: decimal.NewFromInt(1000), PaymentMethod: "Cash (Cairo)"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, ledger.CreateTransactionRequest{
		Description: "Voided", Amount: decimal.NewFromInt(999), Type: ledger.TypeExpense,
		Status: ledger.StatusCancelled, BranchID: "CAI", PaymentMethod: "Cash (Cairo)",
	})
	require.NoError(t, err)

	summary, err := svc.Summary(ctx, "CAI")
	require.NoError(t, err)
	assert.True(t, summary.Income.Equal(decimal.NewFromInt(1000)))
	assert.True(t, summary.Expense.Equal(decimal.NewFromInt(25000)))
	assert.True(t, summary.Net.Equal(decimal.NewFromInt(-24000)))

	balances := map[string]ledger.MethodBalance{}
	for _, a := range summary.Accounts {
		balances[a.PaymentMethod] = a
	}
	assert.Len(t, balances, 4)
	assert.True(t, balances["Cash (Cairo)"].Balance.Equal(decimal.NewFromInt(1000)))
	assert.True(t, balances["Bank Transfer (CIB)"].Balance.Equal(decimal.NewFromInt(-25000)))
	assert.Contains(t, balances, "Vodafone Cash")
	assert.NotContains(t, balances, "Cash (Alexandria)")

	alx, err := svc.Summary(ctx, "ALX")
	require.NoError(t, err)
	assert.True(t, alx.Income.IsZero())
	assert.Len(t, alx.Accounts, 2)
}

func TestCreateAndList(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	created, err := svc.Create(ctx, ledger.CreateTransactionRequest{
		Description: "Electricity", Amount: decimal.NewFromInt(800), Type: ledger.TypeExpense, Category: "utilities",
	})
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusCompleted, created.Status)
	assert.Equal(t, "2024-07-01", created.Date)
	assert.Equal(t, "CAI", created.BranchID)

	_, err = svc.Create(ctx, ledger.CreateTransactionRequest{Amount: decimal.NewFromInt(1), Type: "Gift"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "description")
	assert.Contains(t, verrs.ToMap(), "type")

	list, err := svc.List(ctx, ledger.ListTransactionRequest{BranchScope: branch.HeadquartersID})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, created.ID, list[0].ID)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ledger.ErrTransactionNotFound)
}

func TestRecentPayments(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	for i := 0; i < 7; i++ {
		method := "Cash (Cairo)"
		if i%2 == 0 {
			method = "Visa (Cairo)"
		}
		_, err := svc.RecordPayment(ctx, ledger.RecordPaymentRequest{CustomerID: "c1", Amount: decimal.NewFromInt(10), PaymentMethod: method})
		require.NoError(t, err)
	}

	recent, err := svc.RecentPayments(ctx, "CAI", "")
	require.NoError(t, err)
	assert.Len(t, recent, RecentPaymentsLimit)

	visa, err := svc.RecentPayments(ctx, "CAI", "Visa (Cairo)")
	require.NoError(t, err)
	assert.Len(t, visa, 4)

	none, err := svc.RecentPayments(ctx, "ALX", "")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPaymentMethodsAndCategories(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	pm, err := svc.CreatePaymentMethod(ctx, ledger.PaymentMethodRequest{Name: "Cash (Jeddah)", BranchID: "JED"})
	require.NoError(t, err)
	_, err = svc.CreatePaymentMethod(ctx, ledger.PaymentMethodRequest{Name: "Cash (Nowhere)", BranchID: "XXX"})
	assert.ErrorIs(t, err, branch.ErrBranchNotFound)

	jed, err := svc.ListPaymentMethods(ctx, "JED")
	require.NoError(t, err)
	assert.Len(t, jed, 2)

	require.NoError(t, svc.DeletePaymentMethod(ctx, pm.ID))
	assert.ErrorIs(t, svc.DeletePaymentMethod(ctx, pm.ID), ledger.ErrPaymentMethodNotFound)

	cat, err := svc.CreateCategory(ctx, ledger.CategoryRequest{Name: "Maintenance", Type: "Expense"})
	require.NoError(t, err)
	assert.Equal(t, "maintenance", cat.Name)
	require.NoError(t, svc.DeleteCategory(ctx, cat.ID))
	assert.ErrorIs(t, svc.DeleteCategory(ctx, cat.ID), ledger.ErrCategoryNotFound)
}
