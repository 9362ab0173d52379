package catalog

import (
	"context"

	"github.com/floorops/backend/internal/domain/catalog"
	"github.com/floorops/backend/internal/domain/shared"
	"github.com/floorops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// CatalogService manages the menu catalog and implements the read-only
// catalog.Catalog lookup consumed by the order lifecycle and the ledger
type CatalogService struct {
	itemRepo     catalog.MenuItemRepository
	categoryRepo catalog.MenuCategoryRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(itemRepo catalog.MenuItemRepository, categoryRepo catalog.MenuCategoryRepository) *CatalogService {
	return &CatalogService{
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
	}
}

// MenuItem returns the menu item for the given id, or (nil, nil) when unknown
func (s *CatalogService) MenuItem(ctx context.Context, id uuid.UUID) (*catalog.MenuItem, error) {
	return s.itemRepo.FindByID(ctx, id)
}

// StationFor resolves the preparation station for a menu item: the item's
// explicit override wins, then the category's default station, then kitchen
func (s *CatalogService) StationFor(ctx context.Context, item *catalog.MenuItem) catalog.Station {
	if item == nil {
		return catalog.StationKitchen
	}
	if item.StationOverride != nil && item.StationOverride.IsValid() {
		return *item.StationOverride
	}
	category, err := s.categoryRepo.FindByID(ctx, item.CategoryID)
	if err == nil && category != nil && category.DefaultStation.IsValid() {
		return category.DefaultStation
	}
	return catalog.StationKitchen
}

// ListMenuItems returns every menu item
func (s *CatalogService) ListMenuItems(ctx context.Context) ([]catalog.MenuItem, error) {
	return s.itemRepo.FindAll(ctx)
}

// ListCategories returns every category
func (s *CatalogService) ListCategories(ctx context.Context) ([]catalog.MenuCategory, error) {
	return s.categoryRepo.FindAll(ctx)
}

// CreateCategory creates a menu category with a default station
func (s *CatalogService) CreateCategory(ctx context.Context, name string, defaultStation catalog.Station) (*catalog.MenuCategory, error) {
	existing, err := s.categoryRepo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	category, err := catalog.NewMenuCategory(name, defaultStation)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category. Declined while menu items still
// reference it.
func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return nil
	}

	count, err := s.itemRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.ErrCategoryInUse
	}
	return s.categoryRepo.Delete(ctx, id)
}

// CreateMenuItemInput carries the fields for a new menu item
type CreateMenuItemInput struct {
	Name            string
	Price           valueobject.Money
	CategoryID      uuid.UUID
	StationOverride *catalog.Station
	Recipe          []catalog.RecipeLine
}

// CreateMenuItem creates a menu item in an existing category
func (s *CatalogService) CreateMenuItem(ctx context.Context, input CreateMenuItemInput) (*catalog.MenuItem, error) {
	category, err := s.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category does not exist")
	}

	item, err := catalog.NewMenuItem(input.Name, input.Price, category.ID, category.Name)
	if err != nil {
		return nil, err
	}
	if input.StationOverride != nil {
		if err := item.SetStationOverride(*input.StationOverride); err != nil {
			return nil, err
		}
	}
	if len(input.Recipe) > 0 {
		if err := item.SetRecipe(input.Recipe); err != nil {
			return nil, err
		}
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// SetRecipe replaces a menu item's recipe. Unknown menu ids are a no-op.
func (s *CatalogService) SetRecipe(ctx context.Context, menuID uuid.UUID, lines []catalog.RecipeLine) (*catalog.MenuItem, error) {
	item, err := s.itemRepo.FindByID(ctx, menuID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	if err := item.SetRecipe(lines); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteMenuItem removes a menu item
func (s *CatalogService) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	return s.itemRepo.Delete(ctx, id)
}

var _ catalog.Catalog = (*CatalogService)(nil)
