package catalog

import (
	"context"

	"github.com/floorops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MenuItemRepository persists menu items
type MenuItemRepository interface {
	shared.Repository[MenuItem]
	FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]MenuItem, error)
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int, error)
}

// MenuCategoryRepository persists menu categories
type MenuCategoryRepository interface {
	shared.Repository[MenuCategory]
	FindByName(ctx context.Context, name string) (*MenuCategory, error)
}

// Catalog is the read-only lookup surface the order lifecycle consumes.
// It is satisfied by the catalog application service; external deployments
// may swap in a remote menu source behind the same contract.
type Catalog interface {
	// MenuItem returns the menu item for the given id, or (nil, nil)
	// when unknown
	MenuItem(ctx context.Context, id uuid.UUID) (*MenuItem, error)
	// StationFor resolves the preparation station for a menu item
	StationFor(ctx context.Context, item *MenuItem) Station
}
