package purchasing

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/furniflow/erp-backend-go/internal/domain/inventory"
	"github.com/furniflow/erp-backend-go/internal/domain/ledger"
	"github.com/furniflow/erp-backend-go/internal/domain/master/branch"
	"github.com/furniflow/erp-backend-go/internal/domain/purchasing"
	"github.com/furniflow/erp-backend-go/internal/domain/settings"
	"github.com/furniflow/erp-backend-go/internal/pkg/events"
	"github.com/furniflow/erp-backend-go/internal/pkg/utils"
	"github.com/furniflow/erp-backend-go/internal/repository"
)

type PurchasingServiceImpl struct {
	store           repository.Store
	supplierRepo    purchasing.SupplierRepository
	poRepo          purchasing.PurchaseOrderRepository
	inventoryRepo   inventory.ItemRepository
	transactionRepo ledger.TransactionRepository
	branchRepo      branch.BranchRepository
	configRepo      settings.SystemConfigRepository
	publisher       events.Publisher
	now             func() time.Time
}

func NewPurchasingService(
	store repository.Store,
	supplierRepo purchasing.SupplierRepository,
	poRepo purchasing.PurchaseOrderRepository,
	inventoryRepo inventory.ItemRepository,
	transactionRepo ledger.TransactionRepository,
	branchRepo branch.BranchRepository,
	configRepo settings.SystemConfigRepository,
	publisher events.Publisher,
) purchasing.PurchasingService {
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	return &PurchasingServiceImpl{
		store:           store,
		supplierRepo:    supplierRepo,
		poRepo:          poRepo,
		inventoryRepo:   inventoryRepo,
		transactionRepo: transactionRepo,
		branchRepo:      branchRepo,
		configRepo:      configRepo,
		publisher:       publisher,
		now:             time.Now,
	}
}

// ========== SUPPLIERS ==========

func (s *PurchasingServiceImpl) ListSuppliers(ctx context.Context) ([]purchasing.Supplier, error) {
	return s.supplierRepo.Load(ctx)
}

func (s *PurchasingServiceImpl) CreateSupplier(ctx context.Context, req purchasing.SupplierRequest) (purchasing.Supplier, error) {
	if err := req.Validate(); err != nil {
		return purchasing.Supplier{}, err
	}

	created := supplierFrom(utils.NewID("SUP"), req)
	err := repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		suppliers, err := s.supplierRepo.Load(ctx)
		if err != nil {
			return err
		}
		return s.supplierRepo.Store(ctx, append(suppliers, created))
	})
	if err != nil {
		return purchasing.Supplier{}, err
	}
	return created, nil
}

func (s *PurchasingServiceImpl) UpdateSupplier(ctx context.Context, id string, req purchasing.SupplierRequest) (purchasing.Supplier, error) {
	if err := req.Validate(); err != nil {
		return purchasing.Supplier{}, err
	}

	updated := supplierFrom(id, req)
	err := repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		suppliers, err := s.supplierRepo.Load(ctx)
		if err != nil {
			return err
		}
		idx, ok := purchasing.FindSupplier(suppliers, id)
		if !ok {
			return purchasing.ErrSupplierNotFound
		}
		suppliers[idx] = updated
		return s.supplierRepo.Store(ctx, suppliers)
	})
	if err != nil {
		return purchasing.Supplier{}, err
	}
	return updated, nil
}

// DeleteSupplier refuses to remove a supplier that still has purchase orders
// on file, since POs snapshot only the supplier name.
func (s *PurchasingServiceImpl) DeleteSupplier(ctx context.Context, id string) error {
	return repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		suppliers, err := s.supplierRepo.Load(ctx)
		if err != nil {
			return err
		}
		idx, ok := purchasing.FindSupplier(suppliers, id)
		if !ok {
			return purchasing.ErrSupplierNotFound
		}

		pos, err := s.poRepo.Load(ctx)
		if err != nil {
			return err
		}
		for _, po := range pos {
			if po.SupplierID == id {
				return purchasing.ErrSupplierInUse
			}
		}
		return s.supplierRepo.Store(ctx, slices.Delete(suppliers, idx, idx+1))
	})
}

func supplierFrom(id string, req purchasing.SupplierRequest) purchasing.Supplier {
	return purchasing.Supplier{
		ID:            id,
		Name:          strings.TrimSpace(req.Name),
		ContactPerson: req.ContactPerson,
		Email:         strings.TrimSpace(req.Email),
		Phone:         req.Phone,
		Address:       req.Address,
		Website:       req.Website,
	}
}

// ========== PURCHASE ORDERS ==========

func (s *PurchasingServiceImpl) ListPOs(ctx context.Context, req purchasing.ListPORequest) ([]purchasing.PurchaseOrder, error) {
	pos, err := s.poRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load purchase orders: %w", err)
	}

	result := []purchasing.PurchaseOrder{}
	for _, po := range pos {
		if !branch.InScope(req.BranchScope, po.BranchID) {
			continue
		}
		if req.Status != "" && po.Status != req.Status {
			continue
		}
		if req.SupplierID != "" && po.SupplierID != req.SupplierID {
			continue
		}
		result = append(result, po)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date > result[j].Date
	})
	return result, nil
}

func (s *PurchasingServiceImpl) CreatePO(ctx context.Context, branchScope string, req purchasing.CreatePORequest) (purchasing.PurchaseOrder, error) {
	if err := req.Validate(); err != nil {
		return purchasing.PurchaseOrder{}, err
	}

	var created purchasing.PurchaseOrder
	err := repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		suppliers, err := s.supplierRepo.Load(ctx)
		if err != nil {
			return err
		}
		sIdx, ok := purchasing.FindSupplier(suppliers, req.SupplierID)
		if !ok {
			return purchasing.ErrSupplierNotFound
		}

		products, err := s.inventoryRepo.Load(ctx)
		if err != nil {
			return err
		}
		items := make([]purchasing.Item, len(req.Items))
		for i, it := range req.Items {
			pIdx, ok := inventory.FindByID(products, it.ProductID)
			if !ok {
				return fmt.Errorf("%w: %s", purchasing.ErrProductNotFound, it.ProductID)
			}
			if it.ProductName == "" {
				it.ProductName = products[pIdx].Name
			}
			items[i] = it
		}

		branches, err := s.branchRepo.Load(ctx)
		if err != nil {
			return err
		}
		target := branchScope
		if req.BranchID != "" && (branchScope == "" || branchScope == branch.HeadquartersID) {
			target = req.BranchID
		}
		branchID, err := branch.ResolveTarget(target, branches)
		if err != nil {
			return err
		}

		today, err := s.today(ctx)
		if err != nil {
			return err
		}

		pos, err := s.poRepo.Load(ctx)
		if err != nil {
			return err
		}

		status := purchasing.StatusOrdered
		if req.Draft {
			status = purchasing.StatusDraft
		}
		number := "PO-" + strconv.Itoa(nextPONumber(pos))
		created = purchasing.PurchaseOrder{
			ID:           number,
			PONumber:     number,
			SupplierID:   suppliers[sIdx].ID,
			SupplierName: suppliers[sIdx].Name,
			Date:         today,
			ExpectedDate: req.ExpectedDate,
			Items:        items,
			TotalCost:    purchasing.TotalCost(items),
			Status:       status,
			BranchID:     branchID,
			Notes:        req.Notes,
		}
		return s.poRepo.Store(ctx, append(pos, created))
	})
	if err != nil {
		return purchasing.PurchaseOrder{}, err
	}

	slog.Info("purchase order created", "po_number", created.PONumber, "supplier_id", created.SupplierID, "branch_id", created.BranchID)
	return created, nil
}

// ReceivePO books an ordered PO into stock and records its cost as a goods
// purchase expense of the PO's branch.
func (s *PurchasingServiceImpl) ReceivePO(ctx context.Context, id string, req purchasing.ReceivePORequest) (purchasing.PurchaseOrder, error) {
	var received purchasing.PurchaseOrder
	err := repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		pos, err := s.poRepo.Load(ctx)
		if err != nil {
			return err
		}
		idx, ok := purchasing.FindPO(pos, id)
		if !ok {
			return purchasing.ErrPONotFound
		}
		po := &pos[idx]
		if po.Status != purchasing.StatusOrdered {
			return purchasing.ErrPONotReceivable
		}

		products, err := s.inventoryRepo.Load(ctx)
		if err != nil {
			return err
		}
		for _, it := range po.Items {
			pIdx, ok := inventory.FindByID(products, it.ProductID)
			if !ok {
				return fmt.Errorf("%w: %s", purchasing.ErrProductNotFound, it.ProductID)
			}
			products[pIdx].Stock += it.Quantity
		}
		if err := s.inventoryRepo.Store(ctx, products); err != nil {
			return err
		}

		today, err := s.today(ctx)
		if err != nil {
			return err
		}
		transactions, err := s.transactionRepo.Load(ctx)
		if err != nil {
			return err
		}
		expense := ledger.Transaction{
			ID:            utils.NewID("TX"),
			Date:          today,
			Description:   fmt.Sprintf("Goods received for %s from %s", po.PONumber, po.SupplierName),
			Amount:        po.TotalCost,
			Type:          ledger.TypeExpense,
			Category:      ledger.CategoryGoodsPurchases,
			Status:        ledger.StatusCompleted,
			BranchID:      po.BranchID,
			PaymentMethod: req.PaymentMethod,
		}
		if err := s.transactionRepo.Store(ctx, append(transactions, expense)); err != nil {
			return err
		}

		po.Status = purchasing.StatusReceived
		po.ItemsReceived = true
		received = *po
		return s.poRepo.Store(ctx, pos)
	})
	if err != nil {
		return purchasing.PurchaseOrder{}, err
	}

	slog.Info("purchase order received", "po_number", received.PONumber, "total_cost", received.TotalCost.String())
	events.Emit(ctx, s.publisher, events.Event{
		Name:        events.PurchaseOrderReceived,
		AggregateID: received.ID,
		BranchID:    received.BranchID,
		Payload:     received,
	})
	return received, nil
}

func (s *PurchasingServiceImpl) CancelPO(ctx context.Context, id string) (purchasing.PurchaseOrder, error) {
	var cancelled purchasing.PurchaseOrder
	err := repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		pos, err := s.poRepo.Load(ctx)
		if err != nil {
			return err
		}
		idx, ok := purchasing.FindPO(pos, id)
		if !ok {
			return purchasing.ErrPONotFound
		}
		switch pos[idx].Status {
		case purchasing.StatusDraft, purchasing.StatusOrdered:
		default:
			return purchasing.ErrPONotCancellable
		}
		pos[idx].Status = purchasing.StatusCancelled
		cancelled = pos[idx]
		return s.poRepo.Store(ctx, pos)
	})
	if err != nil {
		return purchasing.PurchaseOrder{}, err
	}
	return cancelled, nil
}

func (s *PurchasingServiceImpl) today(ctx context.Context) (string, error) {
	configs, err := s.configRepo.Load(ctx)
	if err != nil {
		return "", err
	}
	return s.now().In(settings.Current(configs).Location()).Format(time.DateOnly), nil
}

func nextPONumber(pos []purchasing.PurchaseOrder) int {
	highest := purchasing.FirstPONumber
	for _, po := range pos {
		n, err := strconv.Atoi(strings.TrimPrefix(po.PONumber, "PO-"))
		if err == nil && n > highest {
			highest = n
		}
	}
	return highest + 1
}
