package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/furniflow/erp-backend-go/internal/domain/customer"
	"github.com/furniflow/erp-backend-go/internal/domain/ledger"
	"github.com/furniflow/erp-backend-go/internal/domain/master/branch"
	"github.com/furniflow/erp-backend-go/internal/domain/settings"
	"github.com/furniflow/erp-backend-go/internal/pkg/events"
	"github.com/furniflow/erp-backend-go/internal/pkg/utils"
	"github.com/furniflow/erp-backend-go/internal/repository"
)

// RecentPaymentsLimit is how many payments the payments screen shows.
const RecentPaymentsLimit = 5

type LedgerServiceImpl struct {
	store           repository.Store
	transactionRepo ledger.TransactionRepository
	categoryRepo    ledger.CategoryRepository
	methodRepo      ledger.PaymentMethodRepository
	customerRepo    customer.CustomerRepository
	branchRepo      branch.BranchRepository
	configRepo      settings.SystemConfigRepository
	publisher       events.Publisher
	now             func() time.Time
}

func NewLedgerService(
	store repository.Store,
	transactionRepo ledger.TransactionRepository,
	categoryRepo ledger.CategoryRepository,
	methodRepo ledger.PaymentMethodRepository,
	customerRepo customer.CustomerRepository,
	branchRepo branch.BranchRepository,
	configRepo settings.SystemConfigRepository,
	publisher events.Publisher,
) ledger.LedgerService {
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	return &LedgerServiceImpl{
		store:           store,
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		methodRepo:      methodRepo,
		customerRepo:    customerRepo,
		branchRepo:      branchRepo,
		configRepo:      configRepo,
		publisher:       publisher,
		now:             time.Now,
	}
}

// ========== TRANSACTIONS ==========

func (s *LedgerServiceImpl) List(ctx context.Context, req ledger.ListTransactionRequest) ([]ledger.Transaction, error) {
	transactions, err := s.transactionRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	result := []ledger.Transaction{}
	for _, t := range transactions {
		switch {
		case !branch.InScope(req.BranchScope, t.BranchID):
		case req.Type != "" && t.Type != req.Type:
		case req.Category != "" && !strings.EqualFold(t.Category, req.Category):
		case req.PaymentMethod != "" && t.PaymentMethod != req.PaymentMethod:
		case req.EmployeeID != "" && t.EmployeeID != req.EmployeeID:
		case req.CustomerID != "" && t.CustomerID != req.CustomerID:
		case req.OrderID != "" && t.OrderID != req.OrderID:
		default:
			result = append(result, t)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date > result[j].Date
	})
	if req.Limit > 0 && len(result) > req.Limit {
		result = result[:req.Limit]
	}
	return result, nil
}

func (s *LedgerServiceImpl) Create(ctx context.Context, req ledger.CreateTransactionRequest) (ledger.Transaction, error) {
	if err := req.Validate(); err != nil {
		return ledger.Transaction{}, err
	}

	var created ledger.Transaction
	err := repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		branches, err := s.branchRepo.Load(ctx)
		if err != nil {
			return err
		}
		branchID, err := branch.ResolveTarget(req.BranchID, branches)
		if err != nil {
			return err
		}

		date := req.Date
		if date == "" {
			if date, err = s.today(ctx); err != nil {
				return err
			}
		}
		status := req.Status
		if status == "" {
			status = ledger.StatusCompleted
		}

		created = ledger.Transaction{
			ID:            utils.NewID("TX"),
			Date:          date,
			Description:   strings.TrimSpace(req.Description),
			Amount:        req.Amount,
			Type:          req.Type,
			Category:      strings.TrimSpace(req.Category),
			Status:        status,
			BranchID:      branchID,
			CustomerID:    req.CustomerID,
			EmployeeID:    req.EmployeeID,
			OrderID:       req.OrderID,
			PaymentMethod: req.PaymentMethod,
		}

		transactions, err := s.transactionRepo.Load(ctx)
		if err != nil {
			return err
		}
		return s.transactionRepo.Store(ctx, append(transactions, created))
	})
	if err != nil {
		return ledger.Transaction{}, err
	}
	return created, nil
}

func (s *LedgerServiceImpl) Delete(ctx context.Context, id string) error {
	return repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		transactions, err := s.transactionRepo.Load(ctx)
		if err != nil {
			return err
		}
		idx := slices.IndexFunc(transactions, func(t ledger.Transaction) bool { return t.ID == id })
		if idx < 0 {
			return ledger.ErrTransactionNotFound
		}
		return s.transactionRepo.Store(ctx, slices.Delete(transactions, idx, idx+1))
	})
}

// Summary totals the visible ledger and breaks it down per payment method.
// Cancelled transactions are left out.
func (s *LedgerServiceImpl) Summary(ctx context.Context, branchScope string) (ledger.SummaryResponse, error) {
	transactions, err := s.transactionRepo.Load(ctx)
	if err != nil {
		return ledger.SummaryResponse{}, fmt.Errorf("failed to load transactions: %w", err)
	}
	methods, err := s.ListPaymentMethods(ctx, branchScope)
	if err != nil {
		return ledger.SummaryResponse{}, err
	}

	accounts := make([]ledger.MethodBalance, len(methods))
	byName := make(map[string]int, len(methods))
	for i, m := range methods {
		accounts[i] = ledger.MethodBalance{PaymentMethod: m.Name, BranchID: m.BranchID}
		byName[m.Name] = i
	}

	var summary ledger.SummaryResponse
	for _, t := range transactions {
		if !branch.InScope(branchScope, t.BranchID) || t.Status == ledger.StatusCancelled {
			continue
		}
		i, tracked := byName[t.PaymentMethod]
		switch t.Type {
		case ledger.TypeIncome:
			summary.Income = summary.Income.Add(t.Amount)
			if tracked {
				accounts[i].Income = accounts[i].Income.Add(t.Amount)
			}
		case ledger.TypeExpense:
			summary.Expense = summary.Expense.Add(t.Amount)
			if tracked {
				accounts[i].Expense = accounts[i].Expense.Add(t.Amount)
			}
		}
	}

	for i := range accounts {
		accounts[i].Balance = accounts[i].Income.Sub(accounts[i].Expense)
	}
	summary.Net = summary.Income.Sub(summary.Expense)
	summary.Accounts = accounts
	return summary, nil
}

// ========== PAYMENTS ==========

// RecordPayment books money received from a customer and raises their paid
// total in the same transaction.
func (s *LedgerServiceImpl) RecordPayment(ctx context.Context, req ledger.RecordPaymentRequest) (ledger.Transaction, error) {
	if !req.Amount.IsPositive() {
		return ledger.Transaction{}, ledger.ErrInvalidAmount
	}
	if strings.TrimSpace(req.PaymentMethod) == "" {
		return ledger.Transaction{}, ledger.ErrPaymentMethodRequired
	}

	var payment ledger.Transaction
	err := repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		customers, err := s.customerRepo.Load(ctx)
		if err != nil {
			return err
		}
		idx, ok := customer.FindByID(customers, req.CustomerID)
		if !ok {
			return customer.ErrCustomerNotFound
		}
		c := &customers[idx]

		today, err := s.today(ctx)
		if err != nil {
			return err
		}

		description := "Payment from " + c.Name
		if note := strings.TrimSpace(req.Note); note != "" {
			description += ": " + note
		}
		payment = ledger.Transaction{
			ID:               utils.NewID("PAY"),
			Date:             today,
			Description:      description,
			Amount:           req.Amount,
			Type:             ledger.TypeIncome,
			Category:         ledger.CategorySales,
			Status:           ledger.StatusCompleted,
			BranchID:         c.BranchID,
			CustomerID:       c.ID,
			PaymentMethod:    req.PaymentMethod,
			ContractSnapshot: req.ContractSnapshot,
			TransferSnapshot: req.TransferSnapshot,
		}

		transactions, err := s.transactionRepo.Load(ctx)
		if err != nil {
			return err
		}
		if err := s.transactionRepo.Store(ctx, append(transactions, payment)); err != nil {
			return err
		}

		c.TotalPaid = c.TotalPaid.Add(req.Amount)
		return s.customerRepo.Store(ctx, customers)
	})
	if err != nil {
		return ledger.Transaction{}, err
	}

	slog.Info("customer payment recorded", "customer_id", req.CustomerID, "amount", req.Amount.String(), "method", req.PaymentMethod)
	events.Emit(ctx, s.publisher, events.Event{
		Name:        events.CustomerPayment,
		AggregateID: req.CustomerID,
		BranchID:    payment.BranchID,
		Payload:     payment,
	})
	return payment, nil
}

func (s *LedgerServiceImpl) RecentPayments(ctx context.Context, branchScope, paymentMethod string) ([]ledger.Transaction, error) {
	return s.List(ctx, ledger.ListTransactionRequest{
		BranchScope:   branchScope,
		Type:          ledger.TypeIncome,
		PaymentMethod: paymentMethod,
		Limit:         RecentPaymentsLimit,
	})
}

// ========== CATEGORIES ==========

func (s *LedgerServiceImpl) ListCategories(ctx context.Context) ([]ledger.AccountCategory, error) {
	return s.categoryRepo.Load(ctx)
}

func (s *LedgerServiceImpl) CreateCategory(ctx context.Context, req ledger.CategoryRequest) (ledger.AccountCategory, error) {
	if err := req.Validate(); err != nil {
		return ledger.AccountCategory{}, err
	}

	created := ledger.AccountCategory{
		ID:   utils.NewID("CAT"),
		Name: strings.ToLower(strings.TrimSpace(req.Name)),
		Type: req.Type,
	}
	err := repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		categories, err := s.categoryRepo.Load(ctx)
		if err != nil {
			return err
		}
		return s.categoryRepo.Store(ctx, append(categories, created))
	})
	if err != nil {
		return ledger.AccountCategory{}, err
	}
	return created, nil
}

func (s *LedgerServiceImpl) DeleteCategory(ctx context.Context, id string) error {
	return repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		categories, err := s.categoryRepo.Load(ctx)
		if err != nil {
			return err
		}
		idx := slices.IndexFunc(categories, func(c ledger.AccountCategory) bool { return c.ID == id })
		if idx < 0 {
			return ledger.ErrCategoryNotFound
		}
		return s.categoryRepo.Store(ctx, slices.Delete(categories, idx, idx+1))
	})
}

// ========== PAYMENT METHODS ==========

// ListPaymentMethods returns the methods usable from branchScope: shared
// methods plus the branch's own.
func (s *LedgerServiceImpl) ListPaymentMethods(ctx context.Context, branchScope string) ([]ledger.PaymentMethod, error) {
	methods, err := s.methodRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment methods: %w", err)
	}

	result := []ledger.PaymentMethod{}
	for _, m := range methods {
		if m.BranchID == "" || m.BranchID == branch.HeadquartersID || branch.InScope(branchScope, m.BranchID) {
			result = append(result, m)
		}
	}
	return result, nil
}

func (s *LedgerServiceImpl) CreatePaymentMethod(ctx context.Context, req ledger.PaymentMethodRequest) (ledger.PaymentMethod, error) {
	if err := req.Validate(); err != nil {
		return ledger.PaymentMethod{}, err
	}

	created := ledger.PaymentMethod{
		ID:       utils.NewID("PM"),
		Name:     strings.TrimSpace(req.Name),
		BranchID: req.BranchID,
	}
	err := repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		if created.BranchID != "" {
			branches, err := s.branchRepo.Load(ctx)
			if err != nil {
				return err
			}
			if _, ok := branch.FindByID(branches, created.BranchID); !ok {
				return branch.ErrBranchNotFound
			}
		}
		methods, err := s.methodRepo.Load(ctx)
		if err != nil {
			return err
		}
		return s.methodRepo.Store(ctx, append(methods, created))
	})
	if err != nil {
		return ledger.PaymentMethod{}, err
	}
	return created, nil
}

func (s *LedgerServiceImpl) DeletePaymentMethod(ctx context.Context, id string) error {
	return repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		methods, err := s.methodRepo.Load(ctx)
		if err != nil {
			return err
		}
		idx := slices.IndexFunc(methods, func(m ledger.PaymentMethod) bool { return m.ID == id })
		if idx < 0 {
			return ledger.ErrPaymentMethodNotFound
		}
		return s.methodRepo.Store(ctx, slices.Delete(methods, idx, idx+1))
	})
}

func (s *LedgerServiceImpl) today(ctx context.Context) (string, error) {
	configs, err := s.configRepo.Load(ctx)
	if err != nil {
		return "", err
	}
	return s.now().In(settings.Current(configs).Location()).Format(time.DateOnly), nil
}
