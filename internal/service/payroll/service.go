package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/furniflow/erp-backend-go/internal/domain/employee"
	"github.com/furniflow/erp-backend-go/internal/domain/ledger"
	"github.com/furniflow/erp-backend-go/internal/domain/master/branch"
	"github.com/furniflow/erp-backend-go/internal/domain/order"
	"github.com/furniflow/erp-backend-go/internal/domain/payroll"
	"github.com/furniflow/erp-backend-go/internal/domain/settings"
	"github.com/furniflow/erp-backend-go/internal/pkg/events"
	"github.com/furniflow/erp-backend-go/internal/pkg/utils"
	"github.com/furniflow/erp-backend-go/internal/repository"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	store           repository.Store
	employeeRepo    employee.EmployeeRepository
	orderRepo       order.OrderRepository
	transactionRepo ledger.TransactionRepository
	configRepo      settings.SystemConfigRepository
	publisher       events.Publisher
	now             func() time.Time
}

func NewPayrollService(
	store repository.Store,
	employeeRepo employee.EmployeeRepository,
	orderRepo order.OrderRepository,
	transactionRepo ledger.TransactionRepository,
	configRepo settings.SystemConfigRepository,
	publisher events.Publisher,
	now func() time.Time,
) payroll.PayrollService {
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	if now == nil {
		now = time.Now
	}
	return &PayrollServiceImpl{
		store:           store,
		employeeRepo:    employeeRepo,
		orderRepo:       orderRepo,
		transactionRepo: transactionRepo,
		configRepo:      configRepo,
		publisher:       publisher,
		now:             now,
	}
}

// ========== SUMMARY ==========

func (s *PayrollServiceImpl) FinanceSummary(ctx context.Context, employeeID string) (payroll.FinanceSummaryResponse, error) {
	emp, err := s.findEmployee(ctx, employeeID)
	if err != nil {
		return payroll.FinanceSummaryResponse{}, err
	}
	config, err := s.systemConfig(ctx)
	if err != nil {
		return payroll.FinanceSummaryResponse{}, err
	}
	orders, err := s.orderRepo.Load(ctx)
	if err != nil {
		return payroll.FinanceSummaryResponse{}, fmt.Errorf("failed to load orders: %w", err)
	}
	transactions, err := s.transactionRepo.Load(ctx)
	if err != nil {
		return payroll.FinanceSummaryResponse{}, fmt.Errorf("failed to load transactions: %w", err)
	}

	summary := payroll.FinanceSummaryResponse{
		EmployeeID:     emp.ID,
		EmployeeName:   emp.Name,
		CommissionRate: emp.CommissionRate,
		LoanBalance:    emp.LoanBalance,
		Proration: payroll.Prorate(emp.Salary,
			payroll.WorkingDays(emp.TotalWorkingDays, config.StandardMonthlyWorkingDays),
			emp.AttendanceDays),
		EligibleOrders:  []payroll.EligibleOrder{},
		PaidCommissions: []payroll.PaidCommission{},
		History:         []ledger.Transaction{},
	}

	for _, o := range orders {
		switch {
		case o.CommissionEligible(emp.ID):
			standard := o.StandardCommission(emp.CommissionRate)
			eligible := payroll.EligibleOrder{
				OrderID:             o.ID,
				SystemOrderID:       o.SystemOrderID,
				Date:                o.Date,
				CustomerName:        o.CustomerName,
				TotalAmount:         o.TotalAmount,
				StandardCommission:  standard,
				OverrideAmount:      o.CommissionOverrideAmount,
				EffectiveCommission: standard,
			}
			if o.CommissionOverrideAmount != nil {
				eligible.EffectiveCommission = *o.CommissionOverrideAmount
			}
			summary.EligibleOrders = append(summary.EligibleOrders, eligible)
			summary.TotalPendingCommission = summary.TotalPendingCommission.Add(eligible.EffectiveCommission)

		case o.SalesRepID == emp.ID && o.IsCommissionPaid:
			paid := payroll.PaidCommission{
				OrderID:       o.ID,
				SystemOrderID: o.SystemOrderID,
				CustomerName:  o.CustomerName,
				TotalAmount:   o.TotalAmount,
				PaidAmount:    o.StandardCommission(emp.CommissionRate),
				PaidDate:      o.CommissionPaidDate,
			}
			if o.CommissionOverrideAmount != nil {
				paid.PaidAmount = *o.CommissionOverrideAmount
			}
			summary.PaidCommissions = append(summary.PaidCommissions, paid)
			summary.TotalPaidCommission = summary.TotalPaidCommission.Add(paid.PaidAmount)
		}
	}

	sort.SliceStable(summary.PaidCommissions, func(i, j int) bool {
		a, b := summary.PaidCommissions[i].PaidDate, summary.PaidCommissions[j].PaidDate
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		return a.After(*b)
	})

	for _, t := range transactions {
		if t.EmployeeID != emp.ID {
			continue
		}
		summary.History = append(summary.History, t)
		if t.Type == ledger.TypeExpense && t.Status != ledger.StatusCancelled {
			summary.TotalPaid = summary.TotalPaid.Add(t.Amount)
		}
	}
	sortNewestFirst(summary.History)

	return summary, nil
}

// ========== COMMISSION ==========

func (s *PayrollServiceImpl) PayCommission(ctx context.Context, employeeID string, req payroll.PayCommissionRequest) (payroll.PayCommissionResponse, error) {
	orderIDs := uniqueIDs(req.OrderIDs)
	if len(orderIDs) == 0 {
		return payroll.PayCommissionResponse{}, payroll.ErrNoOrdersSelected
	}
	if strings.TrimSpace(req.PaymentMethod) == "" {
		return payroll.PayCommissionResponse{}, payroll.ErrPaymentMethodRequired
	}
	for _, amount := range req.Overrides {
		if amount.IsNegative() {
			return payroll.PayCommissionResponse{}, payroll.ErrNegativeOverride
		}
	}

	var resp payroll.PayCommissionResponse
	err := repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		employees, err := s.employeeRepo.Load(ctx)
		if err != nil {
			return err
		}
		idx, ok := employee.FindByID(employees, employeeID)
		if !ok {
			return employee.ErrEmployeeNotFound
		}
		emp := employees[idx]

		orders, err := s.orderRepo.Load(ctx)
		if err != nil {
			return err
		}

		paid := make(map[int]decimal.Decimal, len(orderIDs))
		total := decimal.Zero
		for _, id := range orderIDs {
			i, ok := order.FindByID(orders, id)
			if !ok || !orders[i].CommissionEligible(emp.ID) {
				return fmt.Errorf("%w: %s", payroll.ErrOrderNotEligible, id)
			}
			amount := orders[i].StandardCommission(emp.CommissionRate)
			if override, ok := req.Overrides[id]; ok {
				amount = override
			}
			paid[i] = amount
			total = total.Add(amount)
		}
		if !total.IsPositive() {
			return payroll.ErrInvalidAmount
		}

		now := s.now().UTC()
		loc, err := s.location(ctx)
		if err != nil {
			return err
		}

		description := fmt.Sprintf("Commission payout - %s (%d orders)", emp.Name, len(orderIDs))
		if note := strings.TrimSpace(req.Note); note != "" {
			description += ": " + note
		}
		tx := ledger.Transaction{
			ID:            utils.NewID("TX"),
			Date:          now.In(loc).Format(time.DateOnly),
			Description:   description,
			Amount:        total,
			Type:          ledger.TypeExpense,
			Category:      ledger.CategoryCommissions,
			Status:        ledger.StatusCompleted,
			BranchID:      emp.BranchID,
			EmployeeID:    emp.ID,
			PaymentMethod: req.PaymentMethod,
		}

		transactions, err := s.transactionRepo.Load(ctx)
		if err != nil {
			return err
		}
		if err := s.transactionRepo.Store(ctx, append(transactions, tx)); err != nil {
			return err
		}

		for i, amount := range paid {
			orders[i].IsCommissionPaid = true
			orders[i].CommissionPaidDate = &now
			orders[i].CommissionOverrideAmount = &amount
		}
		if err := s.orderRepo.Store(ctx, orders); err != nil {
			return err
		}

		resp = payroll.PayCommissionResponse{Transaction: tx, OrderIDs: orderIDs, Total: total}
		return nil
	})
	if err != nil {
		return payroll.PayCommissionResponse{}, err
	}

	slog.Info("commission paid", "employee_id", employeeID, "orders", len(resp.OrderIDs), "total", resp.Total.String())
	events.Emit(ctx, s.publisher, events.Event{
		Name:        events.CommissionPaid,
		AggregateID: employeeID,
		BranchID:    resp.Transaction.BranchID,
		Payload:     resp,
	})
	return resp, nil
}

// ========== DIRECT PAYMENTS ==========

func (s *PayrollServiceImpl) PayDirect(ctx context.Context, employeeID string, req payroll.DirectPaymentRequest) (payroll.DirectPaymentResponse, error) {
	category, ok := req.Type.Category()
	if !ok {
		return payroll.DirectPaymentResponse{}, payroll.ErrInvalidPaymentType
	}
	if !req.Amount.IsPositive() {
		return payroll.DirectPaymentResponse{}, payroll.ErrInvalidAmount
	}
	if strings.TrimSpace(req.PaymentMethod) == "" {
		return payroll.DirectPaymentResponse{}, payroll.ErrPaymentMethodRequired
	}

	var resp payroll.DirectPaymentResponse
	err := repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		employees, err := s.employeeRepo.Load(ctx)
		if err != nil {
			return err
		}
		idx, ok := employee.FindByID(employees, employeeID)
		if !ok {
			return employee.ErrEmployeeNotFound
		}
		emp := &employees[idx]

		loc, err := s.location(ctx)
		if err != nil {
			return err
		}

		description := fmt.Sprintf("%s payment - %s", req.Type, emp.Name)
		if note := strings.TrimSpace(req.Note); note != "" {
			description += ": " + note
		}
		tx := ledger.Transaction{
			ID:            utils.NewID("TX"),
			Date:          s.now().In(loc).Format(time.DateOnly),
			Description:   description,
			Amount:        req.Amount,
			Type:          ledger.TypeExpense,
			Category:      category,
			Status:        ledger.StatusCompleted,
			BranchID:      emp.BranchID,
			EmployeeID:    emp.ID,
			PaymentMethod: req.PaymentMethod,
		}

		transactions, err := s.transactionRepo.Load(ctx)
		if err != nil {
			return err
		}
		if err := s.transactionRepo.Store(ctx, append(transactions, tx)); err != nil {
			return err
		}

		// Loans only accrue. There is no repayment operation.
		if req.Type == payroll.PaymentAdvance {
			emp.LoanBalance = emp.LoanBalance.Add(req.Amount)
			if err := s.employeeRepo.Store(ctx, employees); err != nil {
				return err
			}
		}

		resp = payroll.DirectPaymentResponse{Transaction: tx, LoanBalance: emp.LoanBalance}
		return nil
	})
	if err != nil {
		return payroll.DirectPaymentResponse{}, err
	}

	slog.Info("employee paid", "employee_id", employeeID, "type", req.Type, "amount", req.Amount.String())
	events.Emit(ctx, s.publisher, events.Event{
		Name:        events.EmployeePaid,
		AggregateID: employeeID,
		BranchID:    resp.Transaction.BranchID,
		Payload:     resp.Transaction,
	})
	return resp, nil
}

// ========== REPORT ==========

func (s *PayrollServiceImpl) PayrollSheet(ctx context.Context, branchScope string) ([]payroll.SheetRow, error) {
	employees, err := s.employeeRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}
	config, err := s.systemConfig(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	transactions, err := s.transactionRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	paidTo := make(map[string]decimal.Decimal)
	for _, t := range transactions {
		if t.EmployeeID != "" && t.Type == ledger.TypeExpense && t.Status != ledger.StatusCancelled {
			paidTo[t.EmployeeID] = paidTo[t.EmployeeID].Add(t.Amount)
		}
	}

	rows := []payroll.SheetRow{}
	for _, emp := range employees {
		if !branch.InScope(branchScope, emp.BranchID) {
			continue
		}
		proration := payroll.Prorate(emp.Salary,
			payroll.WorkingDays(emp.TotalWorkingDays, config.StandardMonthlyWorkingDays),
			emp.AttendanceDays)

		pending := decimal.Zero
		for _, o := range orders {
			if !o.CommissionEligible(emp.ID) {
				continue
			}
			if o.CommissionOverrideAmount != nil {
				pending = pending.Add(*o.CommissionOverrideAmount)
			} else {
				pending = pending.Add(o.StandardCommission(emp.CommissionRate))
			}
		}

		rows = append(rows, payroll.SheetRow{
			EmployeeID:        emp.ID,
			EmployeeName:      emp.Name,
			BranchID:          emp.BranchID,
			Salary:            emp.Salary,
			WorkingDays:       proration.WorkingDays,
			AttendanceDays:    proration.AttendanceDays,
			EarnedToDate:      proration.EarnedToDate,
			PendingCommission: pending,
			LoanBalance:       emp.LoanBalance,
			TotalPaid:         paidTo[emp.ID],
		})
	}
	return rows, nil
}

func (s *PayrollServiceImpl) findEmployee(ctx context.Context, id string) (employee.Employee, error) {
	employees, err := s.employeeRepo.Load(ctx)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to load employees: %w", err)
	}
	idx, ok := employee.FindByID(employees, id)
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return employees[idx], nil
}

func (s *PayrollServiceImpl) systemConfig(ctx context.Context) (settings.SystemConfig, error) {
	configs, err := s.configRepo.Load(ctx)
	if err != nil {
		return settings.SystemConfig{}, fmt.Errorf("failed to load system config: %w", err)
	}
	return settings.Current(configs), nil
}

func (s *PayrollServiceImpl) location(ctx context.Context) (*time.Location, error) {
	config, err := s.systemConfig(ctx)
	if err != nil {
		return nil, err
	}
	return config.Location(), nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func sortNewestFirst(transactions []ledger.Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date > transactions[j].Date
	})
}
