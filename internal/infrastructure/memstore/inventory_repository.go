package memstore

import (
	"context"

	"github.com/floorops/backend/internal/domain/inventory"
	"github.com/google/uuid"
)

// InventoryRepository is the in-memory inventory store. Mutate serializes
// read-modify-write cycles per item id so concurrent deductions on the same
// item never produce a lost update.
type InventoryRepository struct {
	store *store[inventory.InventoryItem]
	locks *KeyedMutex
}

// NewInventoryRepository creates a new in-memory inventory repository
func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{
		store: newStore(cloneInventoryItem),
		locks: NewKeyedMutex(),
	}
}

func cloneInventoryItem(i *inventory.InventoryItem) *inventory.InventoryItem {
	c := *i
	c.Log = append(make([]inventory.InventoryLogEntry, 0, len(i.Log)), i.Log...)
	c.ClearDomainEvents()
	return &c
}

// FindByID returns the item with the given id, or (nil, nil) when unknown
func (r *InventoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryItem, error) {
	return r.store.get(id), nil
}

// FindAll returns every inventory item
func (r *InventoryRepository) FindAll(ctx context.Context) ([]inventory.InventoryItem, error) {
	return r.store.list(nil), nil
}

// Save stores a deep copy of the item
func (r *InventoryRepository) Save(ctx context.Context, item *inventory.InventoryItem) error {
	r.store.put(item.ID, item)
	return nil
}

// Delete hard-removes an item with no reversal path
func (r *InventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.delete(id)
	return nil
}

// FindLowStock returns items at or below their minimum quantity
func (r *InventoryRepository) FindLowStock(ctx context.Context) ([]inventory.InventoryItem, error) {
	return r.store.list(func(i *inventory.InventoryItem) bool {
		return i.IsLowStock()
	}), nil
}

// Mutate runs fn against the item under the item's mutation lock and persists
// the result atomically. Unknown ids are a no-op. The mutated item (with its
// pending domain events intact) is returned so the caller can publish them.
func (r *InventoryRepository) Mutate(ctx context.Context, id uuid.UUID, fn func(item *inventory.InventoryItem) error) (*inventory.InventoryItem, error) {
	r.locks.Lock(id)
	defer r.locks.Unlock(id)

	item := r.store.get(id)
	if item == nil {
		return nil, nil
	}
	if err := fn(item); err != nil {
		return nil, err
	}
	r.store.put(id, item)
	return item, nil
}

var _ inventory.Repository = (*InventoryRepository)(nil)
