package order

import (
	"time"

	"github.com/furniflow/erp-backend-go/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusCompleted Status = "Completed"
	StatusPending   Status = "Pending"
	StatusPartial   Status = "Partial"
	StatusRefunded  Status = "Refunded"
)

func IsValidStatus(s Status) bool {
	switch s {
	case StatusCompleted, StatusPending, StatusPartial, StatusRefunded:
		return true
	}
	return false
}

// FirstSystemOrderID is the floor of the sequential order number. The first
// order created gets FirstSystemOrderID + 1.
const FirstSystemOrderID = 1000

const (
	DefaultScope         = "General"
	DefaultPaymentMethod = "On Account"
)

type SalesOrder struct {
	ID               string          `json:"id"`
	SystemOrderID    int             `json:"systemOrderId"`
	ManualContractID string          `json:"manualContractId,omitempty"`
	Date             string          `json:"date"`
	ShowroomDate     string          `json:"showroomDate,omitempty"`
	DeliveryDate     string          `json:"deliveryDate,omitempty"`
	CustomerID       string          `json:"customerId"`
	CustomerName     string          `json:"customerName"`
	SalesRepID       string          `json:"salesRepId,omitempty"`
	Items            []Item          `json:"items"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	PaidAmount       decimal.Decimal `json:"paidAmount"`
	Status           Status          `json:"status"`
	PaymentMethod    string          `json:"paymentMethod"`
	BranchID         string          `json:"branchId"`
	Scope            string          `json:"scope"`
	ContractSnapshot string          `json:"contractSnapshot,omitempty"`

	IsCommissionPaid         bool             `json:"isCommissionPaid,omitempty"`
	CommissionPaidDate       *time.Time       `json:"commissionPaidDate,omitempty"`
	CommissionOverrideAmount *decimal.Decimal `json:"commissionOverrideAmount,omitempty"`
}

// Item is a snapshot of a product at the time it was sold.
type Item struct {
	ProductID      string                   `json:"productId"`
	ProductName    string                   `json:"productName"`
	Quantity       int                      `json:"quantity"`
	Price          decimal.Decimal          `json:"price"`
	Components     []inventory.Component    `json:"components,omitempty"`
	Customizations *inventory.Customization `json:"customizations,omitempty"`
}

// Outstanding is the amount still owed on the order.
func (o SalesOrder) Outstanding() decimal.Decimal {
	return o.TotalAmount.Sub(o.PaidAmount)
}

// IsActive reports whether the order still needs work or payment.
func (o SalesOrder) IsActive() bool {
	return o.Status == StatusPending || o.Status == StatusPartial
}

// CommissionEligible reports whether the order can still pay commission to
// employeeID.
func (o SalesOrder) CommissionEligible(employeeID string) bool {
	return o.SalesRepID == employeeID && o.Status == StatusCompleted && !o.IsCommissionPaid
}

// StandardCommission is totalAmount × rate / 100, rounded to cents.
func (o SalesOrder) StandardCommission(rate decimal.Decimal) decimal.Decimal {
	return o.TotalAmount.Mul(rate).Div(decimal.NewFromInt(100)).Round(2)
}

// NextSystemOrderID returns the next sequential order number.
func NextSystemOrderID(orders []SalesOrder) int {
	highest := FirstSystemOrderID
	for _, o := range orders {
		if o.SystemOrderID > highest {
			highest = o.SystemOrderID
		}
	}
	return highest + 1
}

func FindByID(orders []SalesOrder, id string) (int, bool) {
	for i, o := range orders {
		if o.ID == id {
			return i, true
		}
	}
	return -1, false
}
