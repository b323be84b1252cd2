package purchasing

import (
	"context"
	"testing"
	"time"

	"github.com/furniflow/erp-backend-go/internal/domain/inventory"
	"github.com/furniflow/erp-backend-go/internal/domain/ledger"
	"github.com/furniflow/erp-backend-go/internal/domain/master/branch"
	"github.com/furniflow/erp-backend-go/internal/domain/purchasing"
	"github.com/furniflow/erp-backend-go/internal/pkg/events"
	"github.com/furniflow/erp-backend-go/internal/pkg/validator"
	"github.com/furniflow/erp-backend-go/internal/repository"
	"github.com/furniflow/erp-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	names []string
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.names = append(p.names, e.Name)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func newTestService(t *testing.T) (*PurchasingServiceImpl, *repository.Collections, *recordingPublisher) {
	t.Helper()
	cols := repository.NewCollections(memory.NewStore(), "test_")
	pub := &recordingPublisher{}
	svc := NewPurchasingService(cols.Store, cols.Suppliers, cols.PurchaseOrders, cols.Inventory,
		cols.Transactions, cols.Branches, cols.SystemConfig, pub).(*PurchasingServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC) }
	return svc, cols, pub
}

func poRequest() purchasing.CreatePORequest {
	return purchasing.CreatePORequest{
		SupplierID: "sup1",
		Items: []purchasing.Item{
			{ProductID: "1", Quantity: 3, UnitCost: decimal.NewFromInt(9000)},
			{ProductID: "3", Quantity: 2, UnitCost: decimal.NewFromInt(2500)},
		},
	}
}

func stockOf(t *testing.T, cols *repository.Collections, id string) int {
	t.Helper()
	items, err := cols.Inventory.Load(context.Background())
	require.NoError(t, err)
	idx, ok := inventory.FindByID(items, id)
	require.True(t, ok)
	return items[idx].Stock
}

func TestCreatePO(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	po, err := svc.CreatePO(ctx, branch.HeadquartersID, poRequest())
	require.NoError(t, err)
	assert.Equal(t, "PO-1002", po.PONumber)
	assert.Equal(t, purchasing.StatusOrdered, po.Status)
	assert.Equal(t, "Modern Timber Co.", po.SupplierName)
	assert.Equal(t, "Nordic Oak Dining Table", po.Items[0].ProductName)
	assert.Equal(t, "CAI", po.BranchID)
	assert.True(t, po.TotalCost.Equal(decimal.NewFromInt(32000)), po.TotalCost.String())
	assert.Equal(t, "2024-05-02", po.Date)

	draftReq := poRequest()
	draftReq.Draft = true
	draft, err := svc.CreatePO(ctx, "ALX", draftReq)
	require.NoError(t, err)
	assert.Equal(t, "PO-1003", draft.PONumber)
	assert.Equal(t, purchasing.StatusDraft, draft.Status)
	assert.Equal(t, "ALX", draft.BranchID)

	list, err := svc.ListPOs(ctx, purchasing.ListPORequest{BranchScope: "CAI"})
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, po.ID, list[0].ID)
}

func TestCreatePO_Rejections(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	_, err := svc.CreatePO(ctx, "CAI", purchasing.CreatePORequest{SupplierID: "sup1"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "items")

	req := poRequest()
	req.SupplierID = "nobody"
	_, err = svc.CreatePO(ctx, "CAI", req)
	assert.ErrorIs(t, err, purchasing.ErrSupplierNotFound)

	req = poRequest()
	req.Items[1].ProductID = "404"
	_, err = svc.CreatePO(ctx, "CAI", req)
	assert.ErrorIs(t, err, purchasing.ErrProductNotFound)
}

func TestReceivePO(t *testing.T) {
	ctx := context.Background()
	svc, cols, pub := newTestService(t)

	before1, before3 := stockOf(t, cols, "1"), stockOf(t, cols, "3")
	po, err := svc.CreatePO(ctx, "CAI", poRequest())
	require.NoError(t, err)

	received, err := svc.ReceivePO(ctx, po.ID, purchasing.ReceivePORequest{PaymentMethod: "Bank Transfer (CIB)"})
	require.NoError(t, err)
	assert.Equal(t, purchasing.StatusReceived, received.Status)
	assert.True(t, received.ItemsReceived)
	assert.Equal(t, before1+3, stockOf(t, cols, "1"))
	assert.Equal(t, before3+2, stockOf(t, cols, "3"))

	transactions, err := cols.Transactions.Load(ctx)
	require.NoError(t, err)
	last := transactions[len(transactions)-1]
	assert.Equal(t, ledger.TypeExpense, last.Type)
	assert.Equal(t, ledger.CategoryGoodsPurchases, last.Category)
	assert.Equal(t, "CAI", last.BranchID)
	assert.True(t, last.Amount.Equal(decimal.NewFromInt(32000)))

	_, err = svc.ReceivePO(ctx, po.ID, purchasing.ReceivePORequest{})
	assert.ErrorIs(t, err, purchasing.ErrPONotReceivable)
	assert.Equal(t, before1+3, stockOf(t, cols, "1"))
	assert.Equal(t, []string{events.PurchaseOrderReceived}, pub.names)
}

func TestCancelPO(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	draftReq := poRequest()
	draftReq.Draft = true
	draft, err := svc.CreatePO(ctx, "CAI", draftReq)
	require.NoError(t, err)

	_, err = svc.ReceivePO(ctx, draft.ID, purchasing.ReceivePORequest{})
	assert.ErrorIs(t, err, purchasing.ErrPONotReceivable)

	cancelled, err := svc.CancelPO(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, purchasing.StatusCancelled, cancelled.Status)

	_, err = svc.CancelPO(ctx, draft.ID)
	assert.ErrorIs(t, err, purchasing.ErrPONotCancellable)
	_, err = svc.CancelPO(ctx, "PO-1001")
	assert.ErrorIs(t, err, purchasing.ErrPONotCancellable)
	_, err = svc.CancelPO(ctx, "PO-9999")
	assert.ErrorIs(t, err, purchasing.ErrPONotFound)
}

func TestSuppliers(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	created, err := svc.CreateSupplier(ctx, purchasing.SupplierRequest{Name: "Delta Fabrics", Email: "sales@delta.eg"})
	require.NoError(t, err)

	updated, err := svc.UpdateSupplier(ctx, created.ID, purchasing.SupplierRequest{Name: "Delta Fabrics Ltd"})
	require.NoError(t, err)
	assert.Equal(t, "Delta Fabrics Ltd", updated.Name)

	_, err = svc.CreateSupplier(ctx, purchasing.SupplierRequest{Name: "Bad", Email: "not-an-email"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	assert.ErrorIs(t, svc.DeleteSupplier(ctx, "sup1"), purchasing.ErrSupplierInUse)
	require.NoError(t, svc.DeleteSupplier(ctx, created.ID))
	assert.ErrorIs(t, svc.DeleteSupplier(ctx, created.ID), purchasing.ErrSupplierNotFound)
}
