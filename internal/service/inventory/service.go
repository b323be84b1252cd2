package inventory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/furniflow/erp-backend-go/internal/domain/inventory"
	"github.com/furniflow/erp-backend-go/internal/domain/master/branch"
	"github.com/furniflow/erp-backend-go/internal/pkg/utils"
	"github.com/furniflow/erp-backend-go/internal/repository"
)

type InventoryServiceImpl struct {
	store        repository.Store
	itemRepo     inventory.ItemRepository
	categoryRepo inventory.CategoryRepository
	branchRepo   branch.BranchRepository
}

func NewInventoryService(
	store repository.Store,
	itemRepo inventory.ItemRepository,
	categoryRepo inventory.CategoryRepository,
	branchRepo branch.BranchRepository,
) inventory.InventoryService {
	return &InventoryServiceImpl{
		store:        store,
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
		branchRepo:   branchRepo,
	}
}

func (s *InventoryServiceImpl) List(ctx context.Context, req inventory.ListItemRequest) ([]inventory.Item, error) {
	items, err := s.itemRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}

	search := strings.ToLower(strings.TrimSpace(req.Search))
	result := []inventory.Item{}
	for _, it := range items {
		if !branch.InScope(req.BranchScope, it.BranchID) {
			continue
		}
		if req.Category != "" && req.Category != "All" && it.Category != req.Category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(it.Name), search) && !strings.Contains(strings.ToLower(it.SKU), search) {
			continue
		}
		result = append(result, it)
	}
	return result, nil
}

func (s *InventoryServiceImpl) GetByID(ctx context.Context, id string) (inventory.Item, error) {
	items, err := s.itemRepo.Load(ctx)
	if err != nil {
		return inventory.Item{}, fmt.Errorf("failed to load inventory: %w", err)
	}
	idx, ok := inventory.FindByID(items, id)
	if !ok {
		return inventory.Item{}, inventory.ErrItemNotFound
	}
	return items[idx], nil
}

func (s *InventoryServiceImpl) Create(ctx context.Context, req inventory.ItemRequest) (inventory.Item, error) {
	if err := req.Validate(); err != nil {
		return inventory.Item{}, err
	}

	var created inventory.Item
	err := repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		branches, err := s.branchRepo.Load(ctx)
		if err != nil {
			return err
		}
		branchID, err := branch.ResolveTarget(req.BranchID, branches)
		if err != nil {
			return err
		}

		items, err := s.itemRepo.Load(ctx)
		if err != nil {
			return err
		}
		if skuTaken(items, req.SKU, "") {
			return inventory.ErrSKUExists
		}

		created = inventory.Item{ID: utils.NewID("PRD"), BranchID: branchID}
		apply(&created, req)
		return s.itemRepo.Store(ctx, append(items, created))
	})
	if err != nil {
		return inventory.Item{}, err
	}
	return created, nil
}

func (s *InventoryServiceImpl) Update(ctx context.Context, id string, req inventory.ItemRequest) (inventory.Item, error) {
	if err := req.Validate(); err != nil {
		return inventory.Item{}, err
	}

	var updated inventory.Item
	err := repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		items, err := s.itemRepo.Load(ctx)
		if err != nil {
			return err
		}
		idx, ok := inventory.FindByID(items, id)
		if !ok {
			return inventory.ErrItemNotFound
		}
		if skuTaken(items, req.SKU, id) {
			return inventory.ErrSKUExists
		}

		if req.BranchID != "" && req.BranchID != items[idx].BranchID {
			branches, err := s.branchRepo.Load(ctx)
			if err != nil {
				return err
			}
			if _, ok := branch.FindByID(branches, req.BranchID); !ok {
				return branch.ErrBranchNotFound
			}
			items[idx].BranchID = req.BranchID
		}
		apply(&items[idx], req)
		updated = items[idx]
		return s.itemRepo.Store(ctx, items)
	})
	if err != nil {
		return inventory.Item{}, err
	}
	return updated, nil
}

func (s *InventoryServiceImpl) Delete(ctx context.Context, id string) error {
	return repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		items, err := s.itemRepo.Load(ctx)
		if err != nil {
			return err
		}
		idx, ok := inventory.FindByID(items, id)
		if !ok {
			return inventory.ErrItemNotFound
		}
		return s.itemRepo.Store(ctx, slices.Delete(items, idx, idx+1))
	})
}

// apply copies the editable fields of req onto item and derives the
// discount percentage.
func apply(item *inventory.Item, req inventory.ItemRequest) {
	item.Name = strings.TrimSpace(req.Name)
	item.SKU = strings.TrimSpace(req.SKU)
	item.Category = req.Category
	item.Price = req.Price
	item.PriceAfterDiscount = req.PriceAfterDiscount
	item.DiscountPercentage = inventory.DiscountPercentage(req.Price, req.PriceAfterDiscount)
	item.CostPrice = req.CostPrice
	item.Stock = req.Stock
	item.Description = req.Description
	item.Material = req.Material

	item.Media = make([]inventory.Media, len(req.Media))
	for i, m := range req.Media {
		if m.ID == "" {
			m.ID = utils.NewID("MED")
		}
		item.Media[i] = m
	}

	item.Components = make([]inventory.Component, len(req.Components))
	for i, c := range req.Components {
		if c.ID == "" {
			c.ID = utils.NewID("CMP")
		}
		c.Customizations = nil
		item.Components[i] = c
	}
}

func skuTaken(items []inventory.Item, sku, exceptID string) bool {
	sku = strings.TrimSpace(sku)
	for _, it := range items {
		if it.ID != exceptID && strings.EqualFold(it.SKU, sku) {
			return true
		}
	}
	return false
}

// ========== CATEGORIES ==========

func (s *InventoryServiceImpl) ListCategories(ctx context.Context) ([]inventory.ProductCategory, error) {
	return s.categoryRepo.Load(ctx)
}

// SaveCategory creates a category when id is empty and replaces it otherwise.
func (s *InventoryServiceImpl) SaveCategory(ctx context.Context, id string, req inventory.CategoryRequest) (inventory.ProductCategory, error) {
	if err := req.Validate(); err != nil {
		return inventory.ProductCategory{}, err
	}

	saved := inventory.ProductCategory{
		ID:            id,
		Name:          strings.TrimSpace(req.Name),
		SubCategories: req.SubCategories,
	}
	err := repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		categories, err := s.categoryRepo.Load(ctx)
		if err != nil {
			return err
		}
		for _, c := range categories {
			if c.ID != id && strings.EqualFold(c.Name, saved.Name) {
				return inventory.ErrCategoryNameExists
			}
		}

		if id == "" {
			saved.ID = utils.NewID("cat")
			return s.categoryRepo.Store(ctx, append(categories, saved))
		}
		idx := slices.IndexFunc(categories, func(c inventory.ProductCategory) bool { return c.ID == id })
		if idx < 0 {
			return inventory.ErrCategoryNotFound
		}
		categories[idx] = saved
		return s.categoryRepo.Store(ctx, categories)
	})
	if err != nil {
		return inventory.ProductCategory{}, err
	}
	return saved, nil
}

func (s *InventoryServiceImpl) DeleteCategory(ctx context.Context, id string) error {
	return repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		categories, err := s.categoryRepo.Load(ctx)
		if err != nil {
			return err
		}
		idx := slices.IndexFunc(categories, func(c inventory.ProductCategory) bool { return c.ID == id })
		if idx < 0 {
			return inventory.ErrCategoryNotFound
		}
		return s.categoryRepo.Store(ctx, slices.Delete(categories, idx, idx+1))
	})
}
