package customer

import (
	"context"
	"testing"

	"github.com/furniflow/erp-backend-go/internal/domain/customer"
	"github.com/furniflow/erp-backend-go/internal/domain/ledger"
	"github.com/furniflow/erp-backend-go/internal/domain/master/branch"
	"github.com/furniflow/erp-backend-go/internal/pkg/validator"
	"github.com/furniflow/erp-backend-go/internal/repository"
	"github.com/furniflow/erp-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (customer.CustomerService, *repository.Collections) {
	t.Helper()
	cols := repository.NewCollections(memory.NewStore(), "test_")
	return NewCustomerService(cols.Store, cols.Customers, cols.Orders, cols.Transactions, cols.Branches), cols
}

func validRequest() customer.CustomerRequest {
	return customer.CustomerRequest{
		Name: "Omar Said", Email: "omar@example.com", Mobile1: "0111222333", Country: "Egypt", County: "Giza",
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	created, err := svc.Create(ctx, "ALX", validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "ALX", created.BranchID)
	assert.True(t, created.Balance.IsZero())
	assert.NotNil(t, created.Tags)

	_, err = svc.Create(ctx, "ALX", customer.CustomerRequest{Name: "Dup", Email: "OMAR@example.com", Country: "Egypt"})
	assert.ErrorIs(t, err, customer.ErrCustomerEmailExists)

	_, err = svc.Create(ctx, "ALX", customer.CustomerRequest{Name: "No email"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "email")
	assert.Contains(t, verrs.ToMap(), "country")

	req := validRequest()
	req.Email = "hq@example.com"
	req.BranchID = "JED"
	fromHQ, err := svc.Create(ctx, branch.HeadquartersID, req)
	require.NoError(t, err)
	assert.Equal(t, "JED", fromHQ.BranchID)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Create(ctx, "ALX", validRequest())
	require.NoError(t, err)

	cai, err := svc.List(ctx, customer.ListCustomerRequest{BranchScope: "CAI"})
	require.NoError(t, err)
	require.Len(t, cai, 1)
	assert.Equal(t, "c1", cai[0].ID)

	byMobile, err := svc.List(ctx, customer.ListCustomerRequest{BranchScope: branch.HeadquartersID, Search: "0111"})
	require.NoError(t, err)
	require.Len(t, byMobile, 1)
	assert.Equal(t, "Omar Said", byMobile[0].Name)

	vip, err := svc.List(ctx, customer.ListCustomerRequest{Tag: "VIP"})
	require.NoError(t, err)
	assert.Len(t, vip, 1)
}

func TestDetail(t *testing.T) {
	ctx := context.Background()
	svc, cols := newTestService(t)

	require.NoError(t, cols.Transactions.Store(ctx, []ledger.Transaction{
		{ID: "p1", Date: "2024-01-10", Amount: decimal.NewFromInt(5000), Type: ledger.TypeIncome, CustomerID: "c1"},
		{ID: "p2", Date: "2024-01-20", Amount: decimal.NewFromInt(10000), Type: ledger.TypeIncome, CustomerID: "c1"},
		{ID: "x1", Date: "2024-01-21", Amount: decimal.NewFromInt(100), Type: ledger.TypeExpense, CustomerID: "c1"},
	}))

	detail, err := svc.Detail(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Laila Ahmed", detail.Customer.Name)
	assert.True(t, detail.Customer.Balance.IsZero())
	require.Len(t, detail.Orders, 1)
	require.Len(t, detail.Payments, 2)
	assert.Equal(t, "p2", detail.Payments[0].ID)

	_, err = svc.Detail(ctx, "ghost")
	assert.ErrorIs(t, err, customer.ErrCustomerNotFound)
}

func TestUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	created, err := svc.Create(ctx, "CAI", validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.Name = "Omar S."
	req.Tags = []string{"Wholesale"}
	updated, err := svc.Update(ctx, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Omar S.", updated.Name)
	assert.Equal(t, []string{"Wholesale"}, updated.Tags)

	req.Email = "laila@example.com"
	_, err = svc.Update(ctx, created.ID, req)
	assert.ErrorIs(t, err, customer.ErrCustomerEmailExists)

	assert.ErrorIs(t, svc.Delete(ctx, "c1"), customer.ErrCustomerHasOrders)
	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, customer.ErrCustomerNotFound)
}
