package inventory

import (
	"github.com/floorops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event type constants for the inventory aggregate
const (
	EventStockDeducted     = "inventory.stock_deducted"
	EventStockRestored     = "inventory.stock_restored"
	EventStockAdjusted     = "inventory.stock_adjusted"
	EventStockBelowMinimum = "inventory.stock_below_minimum"
)

const aggregateTypeInventoryItem = "InventoryItem"

// StockChangedEvent carries the ledger entry of one quantity mutation
type StockChangedEvent struct {
	shared.BaseDomainEvent
	ItemName          string          `json:"item_name"`
	ChangeAmount      decimal.Decimal `json:"change_amount"`
	ResultingQuantity decimal.Decimal `json:"resulting_quantity"`
	Reason            string          `json:"reason"`
}

func newStockChangedEvent(eventType string, i *InventoryItem, entry InventoryLogEntry) StockChangedEvent {
	return StockChangedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(eventType, aggregateTypeInventoryItem, i.ID),
		ItemName:          i.Name,
		ChangeAmount:      entry.ChangeAmount,
		ResultingQuantity: entry.ResultingQuantity,
		Reason:            entry.Reason,
	}
}

// StockDeductedEvent is emitted when serving an order item consumes stock
type StockDeductedEvent struct{ StockChangedEvent }

// NewStockDeductedEvent creates a StockDeductedEvent
func NewStockDeductedEvent(i *InventoryItem, entry InventoryLogEntry) *StockDeductedEvent {
	return &StockDeductedEvent{newStockChangedEvent(EventStockDeducted, i, entry)}
}

// StockRestoredEvent is emitted when un-serving or voiding returns stock
type StockRestoredEvent struct{ StockChangedEvent }

// NewStockRestoredEvent creates a StockRestoredEvent
func NewStockRestoredEvent(i *InventoryItem, entry InventoryLogEntry) *StockRestoredEvent {
	return &StockRestoredEvent{newStockChangedEvent(EventStockRestored, i, entry)}
}

// StockAdjustedEvent is emitted on a manual stock correction
type StockAdjustedEvent struct{ StockChangedEvent }

// NewStockAdjustedEvent creates a StockAdjustedEvent
func NewStockAdjustedEvent(i *InventoryItem, entry InventoryLogEntry) *StockAdjustedEvent {
	return &StockAdjustedEvent{newStockChangedEvent(EventStockAdjusted, i, entry)}
}

// StockBelowMinimumEvent is emitted once when the balance crosses from above
// the threshold to at-or-below it
type StockBelowMinimumEvent struct {
	shared.BaseDomainEvent
	ItemName    string          `json:"item_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	MinQuantity decimal.Decimal `json:"min_quantity"`
}

// NewStockBelowMinimumEvent creates a StockBelowMinimumEvent
func NewStockBelowMinimumEvent(i *InventoryItem) *StockBelowMinimumEvent {
	return &StockBelowMinimumEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventStockBelowMinimum, aggregateTypeInventoryItem, i.ID),
		ItemName:        i.Name,
		Quantity:        i.Quantity,
		MinQuantity:     i.MinQuantity,
	}
}
