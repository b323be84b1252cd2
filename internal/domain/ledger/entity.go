package ledger

import "github.com/shopspring/decimal"

type Type string

const (
	TypeIncome  Type = "Income"
	TypeExpense Type = "Expense"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

// Category names the system itself books against.
const (
	CategorySales            = "sales"
	CategorySalaries         = "salaries"
	CategoryCommissions      = "commissions"
	CategoryEmployeeAdvances = "employee advances"
	CategoryGoodsPurchases   = "goods purchases"
)

// Transaction is one ledger entry. Payroll payouts, customer payments, order
// expenses and goods receipts are all transactions.
type Transaction struct {
	ID               string          `json:"id"`
	Date             string          `json:"date"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	Type             Type            `json:"type"`
	Category         string          `json:"category"`
	Status           Status          `json:"status"`
	BranchID         string          `json:"branchId"`
	CustomerID       string          `json:"customerId,omitempty"`
	EmployeeID       string          `json:"employeeId,omitempty"`
	OrderID          string          `json:"orderId,omitempty"`
	PaymentMethod    string          `json:"paymentMethod,omitempty"`
	ContractSnapshot string          `json:"contractSnapshot,omitempty"`
	TransferSnapshot string          `json:"transferSnapshot,omitempty"`
}

type AccountCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Type is Income, Expense or Both.
	Type string `json:"type"`
}

// PaymentMethod is a cash account or payment channel. An empty or HQ branch
// makes it available everywhere.
type PaymentMethod struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	BranchID string `json:"branchId,omitempty"`
}

func IsValidType(t Type) bool {
	return t == TypeIncome || t == TypeExpense
}

func IsValidStatus(s Status) bool {
	return s == StatusPending || s == StatusCompleted || s == StatusCancelled
}
