package memstore

import (
	"context"

	"github.com/floorops/backend/internal/domain/order"
	"github.com/google/uuid"
)

// OrderRepository is the in-memory order store
type OrderRepository struct {
	store *store[order.Order]
}

// NewOrderRepository creates a new in-memory order repository
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{store: newStore(cloneOrder)}
}

func cloneOrder(o *order.Order) *order.Order {
	c := *o
	c.Items = append(make([]order.OrderItem, 0, len(o.Items)), o.Items...)
	c.ClearDomainEvents()
	if o.CustomerID != nil {
		id := *o.CustomerID
		c.CustomerID = &id
	}
	return &c
}

// FindByID returns the order with the given id, or (nil, nil) when unknown
func (r *OrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return r.store.get(id), nil
}

// FindAll returns every order
func (r *OrderRepository) FindAll(ctx context.Context) ([]order.Order, error) {
	return r.store.list(nil), nil
}

// Save stores a deep copy of the order
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	r.store.put(o.ID, o)
	return nil
}

// Delete removes an order. Orders are normally never deleted; this exists to
// satisfy the repository contract and for test cleanup.
func (r *OrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.delete(id)
	return nil
}

// FindByTable returns every order assigned to the table
func (r *OrderRepository) FindByTable(ctx context.Context, tableID uuid.UUID) ([]order.Order, error) {
	return r.store.list(func(o *order.Order) bool {
		return o.TableID == tableID
	}), nil
}

// FindActiveByTable returns non-terminal orders assigned to the table
func (r *OrderRepository) FindActiveByTable(ctx context.Context, tableID uuid.UUID) ([]order.Order, error) {
	return r.store.list(func(o *order.Order) bool {
		return o.TableID == tableID && !o.Status.IsTerminal()
	}), nil
}

// FindByStatus returns orders in the given status
func (r *OrderRepository) FindByStatus(ctx context.Context, status order.OrderStatus) ([]order.Order, error) {
	return r.store.list(func(o *order.Order) bool {
		return o.Status == status
	}), nil
}

var _ order.Repository = (*OrderRepository)(nil)
