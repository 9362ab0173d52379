package memstore

import (
	"context"

	"github.com/floorops/backend/internal/domain/catalog"
	"github.com/google/uuid"
)

// MenuItemRepository is the in-memory menu item store
type MenuItemRepository struct {
	store *store[catalog.MenuItem]
}

// NewMenuItemRepository creates a new in-memory menu item repository
func NewMenuItemRepository() *MenuItemRepository {
	return &MenuItemRepository{store: newStore(cloneMenuItem)}
}

func cloneMenuItem(m *catalog.MenuItem) *catalog.MenuItem {
	c := *m
	c.Recipe = append(make([]catalog.RecipeLine, 0, len(m.Recipe)), m.Recipe...)
	if m.StationOverride != nil {
		station := *m.StationOverride
		c.StationOverride = &station
	}
	c.ClearDomainEvents()
	return &c
}

// FindByID returns the menu item with the given id, or (nil, nil) when unknown
func (r *MenuItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.MenuItem, error) {
	return r.store.get(id), nil
}

// FindAll returns every menu item
func (r *MenuItemRepository) FindAll(ctx context.Context) ([]catalog.MenuItem, error) {
	return r.store.list(nil), nil
}

// Save stores a deep copy of the menu item
func (r *MenuItemRepository) Save(ctx context.Context, m *catalog.MenuItem) error {
	r.store.put(m.ID, m)
	return nil
}

// Delete removes a menu item
func (r *MenuItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.delete(id)
	return nil
}

// FindByCategory returns every menu item in the category
func (r *MenuItemRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]catalog.MenuItem, error) {
	return r.store.list(func(m *catalog.MenuItem) bool {
		return m.CategoryID == categoryID
	}), nil
}

// CountByCategory returns how many menu items reference the category
func (r *MenuItemRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int, error) {
	return r.store.count(func(m *catalog.MenuItem) bool {
		return m.CategoryID == categoryID
	}), nil
}

var _ catalog.MenuItemRepository = (*MenuItemRepository)(nil)

// MenuCategoryRepository is the in-memory menu category store
type MenuCategoryRepository struct {
	store *store[catalog.MenuCategory]
}

// NewMenuCategoryRepository creates a new in-memory menu category repository
func NewMenuCategoryRepository() *MenuCategoryRepository {
	return &MenuCategoryRepository{store: newStore(cloneMenuCategory)}
}

func cloneMenuCategory(c *catalog.MenuCategory) *catalog.MenuCategory {
	copied := *c
	copied.ClearDomainEvents()
	return &copied
}

// FindByID returns the category with the given id, or (nil, nil) when unknown
func (r *MenuCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.MenuCategory, error) {
	return r.store.get(id), nil
}

// FindAll returns every category
func (r *MenuCategoryRepository) FindAll(ctx context.Context) ([]catalog.MenuCategory, error) {
	return r.store.list(nil), nil
}

// Save stores a deep copy of the category
func (r *MenuCategoryRepository) Save(ctx context.Context, c *catalog.MenuCategory) error {
	r.store.put(c.ID, c)
	return nil
}

// Delete removes a category
func (r *MenuCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.delete(id)
	return nil
}

// FindByName returns the category with the given name, or (nil, nil)
func (r *MenuCategoryRepository) FindByName(ctx context.Context, name string) (*catalog.MenuCategory, error) {
	return r.store.find(func(c *catalog.MenuCategory) bool {
		return c.Name == name
	}), nil
}

var _ catalog.MenuCategoryRepository = (*MenuCategoryRepository)(nil)
