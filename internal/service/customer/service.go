package customer

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/furniflow/erp-backend-go/internal/domain/customer"
	"github.com/furniflow/erp-backend-go/internal/domain/ledger"
	"github.com/furniflow/erp-backend-go/internal/domain/master/branch"
	"github.com/furniflow/erp-backend-go/internal/domain/order"
	"github.com/furniflow/erp-backend-go/internal/pkg/utils"
	"github.com/furniflow/erp-backend-go/internal/repository"
	"github.com/shopspring/decimal"
)

type CustomerServiceImpl struct {
	store           repository.Store
	customerRepo    customer.CustomerRepository
	orderRepo       order.OrderRepository
	transactionRepo ledger.TransactionRepository
	branchRepo      branch.BranchRepository
}

func NewCustomerService(
	store repository.Store,
	customerRepo customer.CustomerRepository,
	orderRepo order.OrderRepository,
	transactionRepo ledger.TransactionRepository,
	branchRepo branch.BranchRepository,
) customer.CustomerService {
	return &CustomerServiceImpl{
		store:           store,
		customerRepo:    customerRepo,
		orderRepo:       orderRepo,
		transactionRepo: transactionRepo,
		branchRepo:      branchRepo,
	}
}

func (s *CustomerServiceImpl) List(ctx context.Context, req customer.ListCustomerRequest) ([]customer.CustomerResponse, error) {
	customers, err := s.customerRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}

	search := strings.ToLower(strings.TrimSpace(req.Search))
	result := []customer.CustomerResponse{}
	for _, c := range customers {
		if !branch.InScope(req.BranchScope, c.BranchID) {
			continue
		}
		if req.Tag != "" && !slices.Contains(c.Tags, req.Tag) {
			continue
		}
		if search != "" && !matches(c, search) {
			continue
		}
		result = append(result, customer.ToResponse(c))
	}
	return result, nil
}

func matches(c customer.Customer, search string) bool {
	for _, field := range []string{c.Name, c.Email, c.Mobile1, c.Mobile2} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func (s *CustomerServiceImpl) GetByID(ctx context.Context, id string) (customer.CustomerResponse, error) {
	customers, err := s.customerRepo.Load(ctx)
	if err != nil {
		return customer.CustomerResponse{}, fmt.Errorf("failed to load customers: %w", err)
	}
	idx, ok := customer.FindByID(customers, id)
	if !ok {
		return customer.CustomerResponse{}, customer.ErrCustomerNotFound
	}
	return customer.ToResponse(customers[idx]), nil
}

// Detail returns the customer with their orders and received payments,
// newest first.
func (s *CustomerServiceImpl) Detail(ctx context.Context, id string) (customer.DetailResponse, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return customer.DetailResponse{}, err
	}

	orders, err := s.orderRepo.Load(ctx)
	if err != nil {
		return customer.DetailResponse{}, fmt.Errorf("failed to load orders: %w", err)
	}
	transactions, err := s.transactionRepo.Load(ctx)
	if err != nil {
		return customer.DetailResponse{}, fmt.Errorf("failed to load transactions: %w", err)
	}

	detail := customer.DetailResponse{
		Customer: c,
		Orders:   []order.SalesOrder{},
		Payments: []ledger.Transaction{},
	}
	for _, o := range orders {
		if o.CustomerID == id {
			detail.Orders = append(detail.Orders, o)
		}
	}
	for _, t := range transactions {
		if t.CustomerID == id && t.Type == ledger.TypeIncome {
			detail.Payments = append(detail.Payments, t)
		}
	}
	sort.SliceStable(detail.Orders, func(i, j int) bool {
		return detail.Orders[i].SystemOrderID > detail.Orders[j].SystemOrderID
	})
	sort.SliceStable(detail.Payments, func(i, j int) bool {
		return detail.Payments[i].Date > detail.Payments[j].Date
	})
	return detail, nil
}

func (s *CustomerServiceImpl) Create(ctx context.Context, branchScope string, req customer.CustomerRequest) (customer.CustomerResponse, error) {
	if err := req.Validate(); err != nil {
		return customer.CustomerResponse{}, err
	}

	var created customer.Customer
	err := repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		customers, err := s.customerRepo.Load(ctx)
		if err != nil {
			return err
		}
		if emailTaken(customers, req.Email, "") {
			return customer.ErrCustomerEmailExists
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

		created = customer.Customer{
			ID:         utils.NewID("CUS"),
			Name:       strings.TrimSpace(req.Name),
			Email:      strings.TrimSpace(req.Email),
			Mobile1:    req.Mobile1,
			Mobile2:    req.Mobile2,
			Country:    req.Country,
			County:     req.County,
			TotalSales: decimal.Zero,
			TotalPaid:  decimal.Zero,
			Tags:       tags(req.Tags),
			Notes:      req.Notes,
			BranchID:   branchID,
		}
		return s.customerRepo.Store(ctx, append(customers, created))
	})
	if err != nil {
		return customer.CustomerResponse{}, err
	}
	return customer.ToResponse(created), nil
}

// Update edits the contact details. Sales and payment totals are only moved
// by orders and payments.
func (s *CustomerServiceImpl) Update(ctx context.Context, id string, req customer.CustomerRequest) (customer.CustomerResponse, error) {
	if err := req.Validate(); err != nil {
		return customer.CustomerResponse{}, err
	}

	var updated customer.Customer
	err := repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		customers, err := s.customerRepo.Load(ctx)
		if err != nil {
			return err
		}
		idx, ok := customer.FindByID(customers, id)
		if !ok {
			return customer.ErrCustomerNotFound
		}
		if emailTaken(customers, req.Email, id) {
			return customer.ErrCustomerEmailExists
		}

		c := &customers[idx]
		c.Name = strings.TrimSpace(req.Name)
		c.Email = strings.TrimSpace(req.Email)
		c.Mobile1 = req.Mobile1
		c.Mobile2 = req.Mobile2
		c.Country = req.Country
		c.County = req.County
		c.Tags = tags(req.Tags)
		c.Notes = req.Notes
		updated = *c
		return s.customerRepo.Store(ctx, customers)
	})
	if err != nil {
		return customer.CustomerResponse{}, err
	}
	return customer.ToResponse(updated), nil
}

func (s *CustomerServiceImpl) Delete(ctx context.Context, id string) error {
	return repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		customers, err := s.customerRepo.Load(ctx)
		if err != nil {
			return err
		}
		idx, ok := customer.FindByID(customers, id)
		if !ok {
			return customer.ErrCustomerNotFound
		}

		orders, err := s.orderRepo.Load(ctx)
		if err != nil {
			return err
		}
		for _, o := range orders {
			if o.CustomerID == id {
				return customer.ErrCustomerHasOrders
			}
		}

		return s.customerRepo.Store(ctx, slices.Delete(customers, idx, idx+1))
	})
}

func emailTaken(customers []customer.Customer, email, exceptID string) bool {
	email = strings.TrimSpace(email)
	for _, c := range customers {
		if c.ID != exceptID && strings.EqualFold(c.Email, email) {
			return true
		}
	}
	return false
}

func tags(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
