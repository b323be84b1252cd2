package purchasing

import "github.com/shopspring/decimal"

type Status string

const (
	StatusDraft     Status = "Draft"
	StatusOrdered   Status = "Ordered"
	StatusReceived  Status = "Received"
	StatusCancelled Status = "Cancelled"
)

type Supplier struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Website       string `json:"website,omitempty"`
}

type Item struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unitCost"`
}

type PurchaseOrder struct {
	ID            string          `json:"id"`
	PONumber      string          `json:"poNumber"`
	SupplierID    string          `json:"supplierId"`
	SupplierName  string          `json:"supplierName"`
	Date          string          `json:"date"`
	ExpectedDate  string          `json:"expectedDate,omitempty"`
	Items         []Item          `json:"items"`
	TotalCost     decimal.Decimal `json:"totalCost"`
	Status        Status          `json:"status"`
	BranchID      string          `json:"branchId"`
	ItemsReceived bool            `json:"itemsReceived,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// FirstPONumber is the floor of the PO sequence; the first PO is PO-1001.
const FirstPONumber = 1000

func TotalCost(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.UnitCost.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

func FindSupplier(suppliers []Supplier, id string) (int, bool) {
	for i, s := range suppliers {
		if s.ID == id {
			return i, true
		}
	}
	return -1, false
}

func FindPO(pos []PurchaseOrder, id string) (int, bool) {
	for i, po := range pos {
		if po.ID == id {
			return i, true
		}
	}
	return -1, false
}
