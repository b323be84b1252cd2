package order

import (
	"testing"

	"github.com/furniflow/erp-backend-go/internal/domain/inventory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bedroomSet() inventory.Item {
	return inventory.Item{
		ID:    "2",
		Name:  "Royal Bedroom Set",
		Price: decimal.NewFromInt(45000),
		Components: []inventory.Component{
			{ID: "c1", Name: "King Bed", Quantity: 1, Customizations: &inventory.Customization{IsTextile: true, Note: "velvet"}},
			{ID: "c2", Name: "Nightstand", Quantity: 2},
		},
	}
}

func TestCart_AddProduct(t *testing.T) {
	var cart Cart
	product := bedroomSet()

	cart.AddProduct(product)
	require.Len(t, cart.Items, 1)

	item := cart.Items[0]
	assert.Equal(t, "2", item.ProductID)
	assert.Equal(t, "Royal Bedroom Set", item.ProductName)
	assert.Equal(t, 1, item.Quantity)
	assert.True(t, item.Price.Equal(decimal.NewFromInt(45000)))
	require.Len(t, item.Components, 2)
	assert.Equal(t, inventory.Customization{}, *item.Components[0].Customizations, "component customizations are reset")
	assert.Equal(t, inventory.Customization{}, *item.Customizations)

	cart.AddProduct(product)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	cart.Items[0].Components[1].Name = "Bedside Table"
	assert.Equal(t, "Nightstand", product.Components[1].Name, "cart edits must not touch the catalogue item")
}

func TestCart_ChangeQuantityClampsAtOne(t *testing.T) {
	var cart Cart
	cart.AddProduct(bedroomSet())

	cart.ChangeQuantity(0, 3)
	assert.Equal(t, 4, cart.Items[0].Quantity)

	cart.ChangeQuantity(0, -10)
	assert.Equal(t, 1, cart.Items[0].Quantity)

	cart.ChangeQuantity(5, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestCart_SetPriceAndTotal(t *testing.T) {
	var cart Cart
	cart.AddProduct(bedroomSet())
	cart.AddProduct(inventory.Item{ID: "3", Name: "Armchair", Price: decimal.NewFromInt(3500)})
	cart.ChangeQuantity(1, 1)

	assert.True(t, cart.Total().Equal(decimal.NewFromInt(52000)))

	cart.SetPrice(0, decimal.NewFromInt(40000))
	cart.SetPrice(1, decimal.NewFromInt(-1))
	assert.True(t, cart.Total().Equal(decimal.NewFromInt(47000)))
}

func TestCart_Remove(t *testing.T) {
	var cart Cart
	cart.AddProduct(bedroomSet())
	cart.AddProduct(inventory.Item{ID: "3", Name: "Armchair", Price: decimal.NewFromInt(3500)})

	cart.Remove(0)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "3", cart.Items[0].ProductID)

	cart.Remove(3)
	assert.Len(t, cart.Items, 1)
}

func TestCart_Customizations(t *testing.T) {
	var cart Cart
	cart.AddProduct(bedroomSet())

	cart.ToggleCustomization(0, FlagMeasures)
	cart.SetNote(0, "220cm wide")
	assert.True(t, cart.Items[0].Customizations.IsMeasures)
	assert.Equal(t, "220cm wide", cart.Items[0].Customizations.Note)

	cart.ToggleCustomization(0, FlagMeasures)
	assert.False(t, cart.Items[0].Customizations.IsMeasures)

	cart.ToggleComponentCustomization(0, 1, FlagTextile)
	cart.SetComponentNote(0, 1, "oak")
	cart.SetComponentName(0, 1, "Bedside Table")
	cart.SetComponentQuantity(0, 1, -4)

	comp := cart.Items[0].Components[1]
	assert.True(t, comp.Customizations.IsTextile)
	assert.Equal(t, "oak", comp.Customizations.Note)
	assert.Equal(t, "Bedside Table", comp.Name)
	assert.Equal(t, 0, comp.Quantity)
}

func TestCart_SnapshotIsDeep(t *testing.T) {
	var cart Cart
	cart.AddProduct(bedroomSet())

	snap := cart.Snapshot()
	cart.SetComponentNote(0, 0, "changed")
	cart.SetNote(0, "changed")

	assert.Empty(t, snap[0].Components[0].Customizations.Note)
	assert.Empty(t, snap[0].Customizations.Note)
}

func TestNextSystemOrderID(t *testing.T) {
	assert.Equal(t, 1001, NextSystemOrderID(nil))
	assert.Equal(t, 1001, NextSystemOrderID([]SalesOrder{{SystemOrderID: 12}}))
	assert.Equal(t, 1043, NextSystemOrderID([]SalesOrder{{SystemOrderID: 1001}, {SystemOrderID: 1042}}))
}

func TestSalesOrder_Commission(t *testing.T) {
	o := SalesOrder{SalesRepID: "e2", Status: StatusCompleted, TotalAmount: decimal.NewFromInt(15000)}

	assert.True(t, o.CommissionEligible("e2"))
	assert.False(t, o.CommissionEligible("e1"))
	assert.True(t, o.StandardCommission(decimal.NewFromInt(5)).Equal(decimal.NewFromInt(750)))

	o.IsCommissionPaid = true
	assert.False(t, o.CommissionEligible("e2"))

	o.IsCommissionPaid = false
	o.Status = StatusPending
	assert.False(t, o.CommissionEligible("e2"))
}
