package order

import (
	"github.com/floorops/backend/internal/domain/catalog"
	"github.com/floorops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Event type constants for the order aggregate
const (
	EventOrderCreated              = "order.created"
	EventOrderItemStatusChanged    = "order.item_status_changed"
	EventOrderStationStatusChanged = "order.station_status_changed"
	EventOrderCompleted            = "order.completed"
	EventOrderVoided               = "order.voided"
	EventOrderItemRemoved          = "order.item_removed"
)

const aggregateTypeOrder = "Order"

// OrderCreatedEvent is emitted when an order is sent to the stations
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	TableID   uuid.UUID `json:"table_id"`
	ItemCount int       `json:"item_count"`
	Takeout   bool      `json:"takeout"`
}

// NewOrderCreatedEvent creates an OrderCreatedEvent
func NewOrderCreatedEvent(o *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventOrderCreated, aggregateTypeOrder, o.ID),
		TableID:         o.TableID,
		ItemCount:       len(o.Items),
		Takeout:         o.IsTakeout(),
	}
}

// OrderItemStatusChangedEvent is emitted when a single item transitions
type OrderItemStatusChangedEvent struct {
	shared.BaseDomainEvent
	ItemIndex  int        `json:"item_index"`
	ItemName   string     `json:"item_name"`
	FromStatus ItemStatus `json:"from_status"`
	ToStatus   ItemStatus `json:"to_status"`
}

// NewOrderItemStatusChangedEvent creates an OrderItemStatusChangedEvent
func NewOrderItemStatusChangedEvent(o *Order, change ItemChange) *OrderItemStatusChangedEvent {
	return &OrderItemStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventOrderItemStatusChanged, aggregateTypeOrder, o.ID),
		ItemIndex:       change.Index,
		ItemName:        change.Name,
		FromStatus:      change.From,
		ToStatus:        change.To,
	}
}

// OrderStationStatusChangedEvent is emitted on a bulk station transition
type OrderStationStatusChangedEvent struct {
	shared.BaseDomainEvent
	Station      catalog.Station `json:"station"`
	ToStatus     ItemStatus      `json:"to_status"`
	ItemsChanged int             `json:"items_changed"`
}

// NewOrderStationStatusChangedEvent creates an OrderStationStatusChangedEvent
func NewOrderStationStatusChangedEvent(o *Order, station catalog.Station, toStatus ItemStatus, changes []ItemChange) *OrderStationStatusChangedEvent {
	return &OrderStationStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventOrderStationStatusChanged, aggregateTypeOrder, o.ID),
		Station:         station,
		ToStatus:        toStatus,
		ItemsChanged:    len(changes),
	}
}

// OrderCompletedEvent is emitted when payment finalizes an order
type OrderCompletedEvent struct {
	shared.BaseDomainEvent
	TableID       uuid.UUID  `json:"table_id"`
	CustomerID    *uuid.UUID `json:"customer_id,omitempty"`
	PaymentMethod string     `json:"payment_method,omitempty"`
}

// NewOrderCompletedEvent creates an OrderCompletedEvent
func NewOrderCompletedEvent(o *Order) *OrderCompletedEvent {
	return &OrderCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventOrderCompleted, aggregateTypeOrder, o.ID),
		TableID:         o.TableID,
		CustomerID:      o.CustomerID,
		PaymentMethod:   o.PaymentMethod,
	}
}

// OrderVoidedEvent is emitted when an order is voided
type OrderVoidedEvent struct {
	shared.BaseDomainEvent
	TableID uuid.UUID `json:"table_id"`
	Reason  string    `json:"reason"`
}

// NewOrderVoidedEvent creates an OrderVoidedEvent
func NewOrderVoidedEvent(o *Order, reason string) *OrderVoidedEvent {
	return &OrderVoidedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventOrderVoided, aggregateTypeOrder, o.ID),
		TableID:         o.TableID,
		Reason:          reason,
	}
}

// OrderItemRemovedEvent is emitted when an item is removed from a live order
type OrderItemRemovedEvent struct {
	shared.BaseDomainEvent
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
}

// NewOrderItemRemovedEvent creates an OrderItemRemovedEvent
func NewOrderItemRemovedEvent(o *Order, removed OrderItem) *OrderItemRemovedEvent {
	return &OrderItemRemovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventOrderItemRemoved, aggregateTypeOrder, o.ID),
		ItemName:        removed.Name,
		Quantity:        removed.Quantity,
	}
}
