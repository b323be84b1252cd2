package order

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/furniflow/erp-backend-go/internal/domain/customer"
	"github.com/furniflow/erp-backend-go/internal/domain/employee"
	"github.com/furniflow/erp-backend-go/internal/domain/inventory"
	"github.com/furniflow/erp-backend-go/internal/domain/ledger"
	"github.com/furniflow/erp-backend-go/internal/domain/master/branch"
	"github.com/furniflow/erp-backend-go/internal/domain/order"
	"github.com/furniflow/erp-backend-go/internal/domain/settings"
	"github.com/furniflow/erp-backend-go/internal/pkg/events"
	"github.com/furniflow/erp-backend-go/internal/pkg/utils"
	"github.com/furniflow/erp-backend-go/internal/repository"
)

const defaultOrderPrefix = "ORD"

type OrderServiceImpl struct {
	store           repository.Store
	orderRepo       order.OrderRepository
	customerRepo    customer.CustomerRepository
	inventoryRepo   inventory.ItemRepository
	employeeRepo    employee.EmployeeRepository
	branchRepo      branch.BranchRepository
	transactionRepo ledger.TransactionRepository
	configRepo      settings.SystemConfigRepository
	publisher       events.Publisher
	now             func() time.Time
}

func NewOrderService(
	store repository.Store,
	orderRepo order.OrderRepository,
	customerRepo customer.CustomerRepository,
	inventoryRepo inventory.ItemRepository,
	employeeRepo employee.EmployeeRepository,
	branchRepo branch.BranchRepository,
	transactionRepo ledger.TransactionRepository,
	configRepo settings.SystemConfigRepository,
	publisher events.Publisher,
) order.OrderService {
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	return &OrderServiceImpl{
		store:           store,
		orderRepo:       orderRepo,
		customerRepo:    customerRepo,
		inventoryRepo:   inventoryRepo,
		employeeRepo:    employeeRepo,
		branchRepo:      branchRepo,
		transactionRepo: transactionRepo,
		configRepo:      configRepo,
		publisher:       publisher,
		now:             time.Now,
	}
}

func (s *OrderServiceImpl) List(ctx context.Context, req order.ListOrderRequest) ([]order.SalesOrder, error) {
	orders, err := s.orderRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	result := []order.SalesOrder{}
	for _, o := range orders {
		if !branch.InScope(req.BranchScope, o.BranchID) {
			continue
		}
		if req.Status != "" && o.Status != req.Status {
			continue
		}
		if req.CustomerID != "" && o.CustomerID != req.CustomerID {
			continue
		}
		if req.SalesRepID != "" && o.SalesRepID != req.SalesRepID {
			continue
		}
		result = append(result, o)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date > result[j].Date
		}
		return result[i].SystemOrderID > result[j].SystemOrderID
	})
	return result, nil
}

func (s *OrderServiceImpl) GetByID(ctx context.Context, id string) (order.OrderDetailResponse, error) {
	orders, err := s.orderRepo.Load(ctx)
	if err != nil {
		return order.OrderDetailResponse{}, fmt.Errorf("failed to load orders: %w", err)
	}
	idx, ok := order.FindByID(orders, id)
	if !ok {
		return order.OrderDetailResponse{}, order.ErrOrderNotFound
	}

	transactions, err := s.transactionRepo.Load(ctx)
	if err != nil {
		return order.OrderDetailResponse{}, fmt.Errorf("failed to load transactions: %w", err)
	}
	expenses := []ledger.Transaction{}
	for _, t := range transactions {
		if t.OrderID == id && t.Type == ledger.TypeExpense {
			expenses = append(expenses, t)
		}
	}

	return order.OrderDetailResponse{Order: orders[idx], Expenses: expenses}, nil
}

// Create files a new sales order from a cart snapshot and books the total
// against the customer.
func (s *OrderServiceImpl) Create(ctx context.Context, branchScope string, req order.CreateOrderRequest) (order.SalesOrder, error) {
	if req.CustomerID == "" {
		return order.SalesOrder{}, order.ErrCustomerRequired
	}
	cart := order.Cart{Items: req.Items}
	if cart.IsEmpty() {
		return order.SalesOrder{}, order.ErrEmptyCart
	}
	if err := req.Validate(); err != nil {
		return order.SalesOrder{}, err
	}

	var created order.SalesOrder
	err := repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		customers, err := s.customerRepo.Load(ctx)
		if err != nil {
			return err
		}
		cIdx, ok := customer.FindByID(customers, req.CustomerID)
		if !ok {
			return customer.ErrCustomerNotFound
		}

		if req.SalesRepID != "" {
			employees, err := s.employeeRepo.Load(ctx)
			if err != nil {
				return err
			}
			if _, ok := employee.FindByID(employees, req.SalesRepID); !ok {
				return order.ErrSalesRepNotFound
			}
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

		configs, err := s.configRepo.Load(ctx)
		if err != nil {
			return err
		}
		config := settings.Current(configs)
		prefix := config.OrderPrefix
		if prefix == "" {
			prefix = defaultOrderPrefix
		}
		today := s.now().In(config.Location()).Format(time.DateOnly)

		orders, err := s.orderRepo.Load(ctx)
		if err != nil {
			return err
		}

		scope := req.Scope
		if scope == "" {
			scope = order.DefaultScope
		}
		cust := &customers[cIdx]
		created = order.SalesOrder{
			ID:               utils.NewID(prefix),
			SystemOrderID:    order.NextSystemOrderID(orders),
			ManualContractID: req.ManualContractID,
			Date:             today,
			ShowroomDate:     req.ShowroomDate,
			DeliveryDate:     req.DeliveryDate,
			CustomerID:       cust.ID,
			CustomerName:     cust.Name,
			SalesRepID:       req.SalesRepID,
			Items:            cart.Snapshot(),
			TotalAmount:      cart.Total(),
			Status:           order.StatusPending,
			PaymentMethod:    order.DefaultPaymentMethod,
			BranchID:         branchID,
			Scope:            scope,
			ContractSnapshot: req.ContractSnapshot,
		}

		if err := s.orderRepo.Store(ctx, append(orders, created)); err != nil {
			return err
		}

		cust.TotalSales = cust.TotalSales.Add(created.TotalAmount)
		cust.LastPurchaseDate = today
		return s.customerRepo.Store(ctx, customers)
	})
	if err != nil {
		return order.SalesOrder{}, err
	}

	slog.Info("order created", "order_id", created.ID, "system_order_id", created.SystemOrderID, "branch_id", created.BranchID)
	events.Emit(ctx, s.publisher, events.Event{
		Name:        events.OrderCreated,
		AggregateID: created.ID,
		BranchID:    created.BranchID,
		Payload:     created,
	})
	return created, nil
}

func (s *OrderServiceImpl) UpdateStatus(ctx context.Context, id string, req order.UpdateStatusRequest) (order.SalesOrder, error) {
	if !order.IsValidStatus(req.Status) {
		return order.SalesOrder{}, order.ErrInvalidStatus
	}

	var updated order.SalesOrder
	err := repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		orders, err := s.orderRepo.Load(ctx)
		if err != nil {
			return err
		}
		idx, ok := order.FindByID(orders, id)
		if !ok {
			return order.ErrOrderNotFound
		}
		orders[idx].Status = req.Status
		updated = orders[idx]
		return s.orderRepo.Store(ctx, orders)
	})
	if err != nil {
		return order.SalesOrder{}, err
	}
	return updated, nil
}

func (s *OrderServiceImpl) AddExpense(ctx context.Context, id string, req order.AddExpenseRequest) (ledger.Transaction, error) {
	if err := req.Validate(); err != nil {
		return ledger.Transaction{}, err
	}

	var tx ledger.Transaction
	err := repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		orders, err := s.orderRepo.Load(ctx)
		if err != nil {
			return err
		}
		idx, ok := order.FindByID(orders, id)
		if !ok {
			return order.ErrOrderNotFound
		}

		configs, err := s.configRepo.Load(ctx)
		if err != nil {
			return err
		}

		tx = ledger.Transaction{
			ID:            utils.NewID("TX"),
			Date:          s.now().In(settings.Current(configs).Location()).Format(time.DateOnly),
			Description:   req.Description,
			Amount:        req.Amount,
			Type:          ledger.TypeExpense,
			Category:      req.Category,
			Status:        ledger.StatusCompleted,
			BranchID:      orders[idx].BranchID,
			OrderID:       orders[idx].ID,
			PaymentMethod: req.PaymentMethod,
		}

		transactions, err := s.transactionRepo.Load(ctx)
		if err != nil {
			return err
		}
		return s.transactionRepo.Store(ctx, append(transactions, tx))
	})
	if err != nil {
		return ledger.Transaction{}, err
	}
	return tx, nil
}

// PreviewCart replays cart edits over the given items and returns the result
// with its total. Nothing is persisted.
func (s *OrderServiceImpl) PreviewCart(ctx context.Context, req order.CartPreviewRequest) (order.CartPreviewResponse, error) {
	cart := order.Cart{Items: order.Cart{Items: req.Items}.Snapshot()}

	var products []inventory.Item
	for _, action := range req.Actions {
		switch action.Op {
		case "add":
			if products == nil {
				var err error
				if products, err = s.inventoryRepo.Load(ctx); err != nil {
					return order.CartPreviewResponse{}, fmt.Errorf("failed to load inventory: %w", err)
				}
			}
			idx, ok := inventory.FindByID(products, action.ProductID)
			if !ok {
				return order.CartPreviewResponse{}, inventory.ErrItemNotFound
			}
			cart.AddProduct(products[idx])
		case "quantity":
			cart.ChangeQuantity(action.Index, action.Delta)
		case "price":
			cart.SetPrice(action.Index, action.Price)
		case "remove":
			cart.Remove(action.Index)
		case "toggle":
			flag := order.CustomizationFlag(action.Flag)
			if !order.IsValidFlag(flag) {
				return order.CartPreviewResponse{}, order.ErrInvalidCartAction
			}
			cart.ToggleCustomization(action.Index, flag)
		case "note":
			cart.SetNote(action.Index, action.Text)
		case "component_name":
			cart.SetComponentName(action.Index, action.Component, action.Text)
		case "component_quantity":
			cart.SetComponentQuantity(action.Index, action.Component, action.Quantity)
		case "component_toggle":
			flag := order.CustomizationFlag(action.Flag)
			if !order.IsValidFlag(flag) {
				return order.CartPreviewResponse{}, order.ErrInvalidCartAction
			}
			cart.ToggleComponentCustomization(action.Index, action.Component, flag)
		case "component_note":
			cart.SetComponentNote(action.Index, action.Component, action.Text)
		default:
			return order.CartPreviewResponse{}, fmt.Errorf("%w: %q", order.ErrInvalidCartAction, action.Op)
		}
	}

	return order.CartPreviewResponse{Items: cart.Snapshot(), Total: cart.Total()}, nil
}
