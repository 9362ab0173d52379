package order

import (
	"context"

	"github.com/floorops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository persists orders
type Repository interface {
	shared.Repository[Order]
	// FindByTable returns every order assigned to the table
	FindByTable(ctx context.Context, tableID uuid.UUID) ([]Order, error)
	// FindActiveByTable returns non-terminal orders assigned to the table
	FindActiveByTable(ctx context.Context, tableID uuid.UUID) ([]Order, error)
	// FindByStatus returns orders in the given status
	FindByStatus(ctx context.Context, status OrderStatus) ([]Order, error)
}
