package order

import (
	"github.com/furniflow/erp-backend-go/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// CustomizationFlag selects one of the manufacturing flags on an item or
// component.
type CustomizationFlag string

const (
	FlagTextile  CustomizationFlag = "isTextile"
	FlagMeasures CustomizationFlag = "isMeasures"
	FlagOther    CustomizationFlag = "isOther"
)

func IsValidFlag(f CustomizationFlag) bool {
	return f == FlagTextile || f == FlagMeasures || f == FlagOther
}

// Cart is the order being assembled at the counter. Operations with an
// out-of-range index are no-ops.
type Cart struct {
	Items []Item `json:"items"`
}

// AddProduct adds one unit of product, snapshotting it on first add.
func (c *Cart) AddProduct(product inventory.Item) {
	for i := range c.Items {
		if c.Items[i].ProductID == product.ID {
			c.Items[i].Quantity++
			return
		}
	}

	components := make([]inventory.Component, len(product.Components))
	for i, comp := range product.Components {
		comp.Media = append([]inventory.Media(nil), comp.Media...)
		comp.Customizations = &inventory.Customization{}
		components[i] = comp
	}

	c.Items = append(c.Items, Item{
		ProductID:      product.ID,
		ProductName:    product.Name,
		Quantity:       1,
		Price:          product.Price,
		Components:     components,
		Customizations: &inventory.Customization{},
	})
}

func (c *Cart) ChangeQuantity(index, delta int) {
	if !c.valid(index) {
		return
	}
	c.Items[index].Quantity = max(1, c.Items[index].Quantity+delta)
}

// SetPrice overrides the unit price. Negative prices are ignored.
func (c *Cart) SetPrice(index int, price decimal.Decimal) {
	if !c.valid(index) || price.IsNegative() {
		return
	}
	c.Items[index].Price = price
}

func (c *Cart) Remove(index int) {
	if !c.valid(index) {
		return
	}
	c.Items = append(c.Items[:index], c.Items[index+1:]...)
}

func (c *Cart) ToggleCustomization(index int, flag CustomizationFlag) {
	if !c.valid(index) {
		return
	}
	item := &c.Items[index]
	if item.Customizations == nil {
		item.Customizations = &inventory.Customization{}
	}
	toggle(item.Customizations, flag)
}

func (c *Cart) SetNote(index int, note string) {
	if !c.valid(index) {
		return
	}
	item := &c.Items[index]
	if item.Customizations == nil {
		item.Customizations = &inventory.Customization{}
	}
	item.Customizations.Note = note
}

func (c *Cart) SetComponentName(index, component int, name string) {
	if comp := c.component(index, component); comp != nil {
		comp.Name = name
	}
}

// SetComponentQuantity sets a component quantity, clamped at zero.
func (c *Cart) SetComponentQuantity(index, component, quantity int) {
	if comp := c.component(index, component); comp != nil {
		comp.Quantity = max(0, quantity)
	}
}

func (c *Cart) ToggleComponentCustomization(index, component int, flag CustomizationFlag) {
	comp := c.component(index, component)
	if comp == nil {
		return
	}
	if comp.Customizations == nil {
		comp.Customizations = &inventory.Customization{}
	}
	toggle(comp.Customizations, flag)
}

func (c *Cart) SetComponentNote(index, component int, note string) {
	comp := c.component(index, component)
	if comp == nil {
		return
	}
	if comp.Customizations == nil {
		comp.Customizations = &inventory.Customization{}
	}
	comp.Customizations.Note = note
}

// Total sums price × quantity over the cart lines. Components carry no price.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Snapshot returns a deep copy of the cart lines.
func (c Cart) Snapshot() []Item {
	out := make([]Item, len(c.Items))
	for i, item := range c.Items {
		out[i] = cloneItem(item)
	}
	return out
}

func (c *Cart) valid(index int) bool {
	return index >= 0 && index < len(c.Items)
}

func (c *Cart) component(index, component int) *inventory.Component {
	if !c.valid(index) {
		return nil
	}
	comps := c.Items[index].Components
	if component < 0 || component >= len(comps) {
		return nil
	}
	return &comps[component]
}

func toggle(cust *inventory.Customization, flag CustomizationFlag) {
	switch flag {
	case FlagTextile:
		cust.IsTextile = !cust.IsTextile
	case FlagMeasures:
		cust.IsMeasures = !cust.IsMeasures
	case FlagOther:
		cust.IsOther = !cust.IsOther
	}
}

func cloneItem(item Item) Item {
	if item.Customizations != nil {
		cust := *item.Customizations
		item.Customizations = &cust
	}
	comps := make([]inventory.Component, len(item.Components))
	for i, comp := range item.Components {
		comp.Media = append([]inventory.Media(nil), comp.Media...)
		if comp.Customizations != nil {
			cust := *comp.Customizations
			comp.Customizations = &cust
		}
		comps[i] = comp
	}
	item.Components = comps
	return item
}
