package inventory

import (
	"context"

	"github.com/floorops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository persists inventory items and their ledgers
type Repository interface {
	shared.Repository[InventoryItem]
	// FindLowStock returns items at or below their minimum quantity
	FindLowStock(ctx context.Context) ([]InventoryItem, error)
	// Mutate runs fn against the item under the item's mutation lock and
	// persists the result. Concurrent Mutate calls on the same item never
	// interleave their read-modify-write. Unknown ids are a no-op and fn
	// is not called.
	Mutate(ctx context.Context, id uuid.UUID, fn func(item *InventoryItem) error) (*InventoryItem, error)
}
