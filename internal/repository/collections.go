package repository

import (
	"context"
	"fmt"

	"github.com/furniflow/erp-backend-go/internal/domain/customer"
	"github.com/furniflow/erp-backend-go/internal/domain/employee"
	"github.com/furniflow/erp-backend-go/internal/domain/inventory"
	"github.com/furniflow/erp-backend-go/internal/domain/ledger"
	"github.com/furniflow/erp-backend-go/internal/domain/master/branch"
	"github.com/furniflow/erp-backend-go/internal/domain/order"
	"github.com/furniflow/erp-backend-go/internal/domain/purchasing"
	"github.com/furniflow/erp-backend-go/internal/domain/settings"
	"github.com/furniflow/erp-backend-go/internal/domain/user"
	"github.com/furniflow/erp-backend-go/internal/fixtures"
)

// Collections is every persisted list of the application, bound to one store
// under one namespace.
type Collections struct {
	Store     Store
	Namespace string

	Inventory         *Collection[inventory.Item]
	Customers         *Collection[customer.Customer]
	Employees         *Collection[employee.Employee]
	Orders            *Collection[order.SalesOrder]
	Branches          *Collection[branch.Branch]
	Users             *Collection[user.User]
	Transactions      *Collection[ledger.Transaction]
	Geo               *Collection[settings.GeoRegion]
	Categories        *Collection[ledger.AccountCategory]
	PaymentMethods    *Collection[ledger.PaymentMethod]
	Roles             *Collection[user.Role]
	ProductCategories *Collection[inventory.ProductCategory]
	DashboardConfig   *Collection[settings.DashboardRoleConfig]
	SystemConfig      *Collection[settings.SystemConfig]
	Departments       *Collection[employee.Department]
	Suppliers         *Collection[purchasing.Supplier]
	PurchaseOrders    *Collection[purchasing.PurchaseOrder]
	EmployeeStatuses  *Collection[employee.EmployeeStatus]
}

// NewCollections binds every collection to store, seeding from fixtures.
func NewCollections(store Store, namespace string) *Collections {
	key := func(name string) string { return namespace + name }

	return &Collections{
		Store:     store,
		Namespace: namespace,

		Inventory:         NewCollection(store, key(KeyInventory), fixtures.Inventory),
		Customers:         NewCollection(store, key(KeyCustomers), fixtures.Customers),
		Employees:         NewCollection(store, key(KeyEmployees), fixtures.Employees),
		Orders:            NewCollection(store, key(KeyOrders), fixtures.Orders),
		Branches:          NewCollection(store, key(KeyBranches), fixtures.Branches),
		Users:             NewCollection(store, key(KeyUsers), fixtures.Users),
		Transactions:      NewCollection(store, key(KeyTransactions), fixtures.Transactions),
		Geo:               NewCollection(store, key(KeyGeo), fixtures.GeoRegions),
		Categories:        NewCollection(store, key(KeyCategories), fixtures.AccountCategories),
		PaymentMethods:    NewCollection(store, key(KeyPaymentMethods), fixtures.PaymentMethods),
		Roles:             NewCollection(store, key(KeyRoles), fixtures.Roles),
		ProductCategories: NewCollection(store, key(KeyProductCategories), fixtures.ProductCategories),
		DashboardConfig:   NewCollection(store, key(KeyDashboardConfig), fixtures.DashboardConfigs),
		SystemConfig:      NewCollection(store, key(KeySystemConfig), fixtures.SystemConfig),
		Departments:       NewCollection(store, key(KeyDepartments), fixtures.Departments),
		Suppliers:         NewCollection(store, key(KeySuppliers), fixtures.Suppliers),
		PurchaseOrders:    NewCollection(store, key(KeyPurchaseOrders), fixtures.PurchaseOrders),
		EmployeeStatuses:  NewCollection(store, key(KeyEmployeeStatuses), fixtures.EmployeeStatuses),
	}
}

type loader interface {
	Key() string
	ensure(ctx context.Context) error
}

func (c *Collection[T]) ensure(ctx context.Context) error {
	_, err := c.Load(ctx)
	return err
}

// Seed loads every collection once so absent keys are written from fixtures.
// Existing payloads are left as they are.
func (c *Collections) Seed(ctx context.Context) ([]string, error) {
	all := []loader{
		c.Inventory, c.Customers, c.Employees, c.Orders, c.Branches, c.Users,
		c.Transactions, c.Geo, c.Categories, c.PaymentMethods, c.Roles,
		c.ProductCategories, c.DashboardConfig, c.SystemConfig, c.Departments,
		c.Suppliers, c.PurchaseOrders, c.EmployeeStatuses,
	}
	keys := make([]string, 0, len(all))
	for _, l := range all {
		if err := l.ensure(ctx); err != nil {
			return keys, fmt.Errorf("seed %s: %w", l.Key(), err)
		}
		keys = append(keys, l.Key())
	}
	return keys, nil
}
