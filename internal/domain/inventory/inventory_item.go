package inventory

import (
	"fmt"
	"time"

	"github.com/floorops/backend/internal/domain/shared"
	"github.com/floorops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReasonInitialStock is the reason recorded on the seed log entry
const ReasonInitialStock = "Initial Stock"

// InventoryLogEntry is one immutable line of the stock ledger. Every quantity
// mutation on an inventory item appends exactly one entry, and the entry's
// ResultingQuantity always equals the item quantity right after the mutation.
type InventoryLogEntry struct {
	ID                uuid.UUID       `json:"id"`
	Timestamp         time.Time       `json:"timestamp"`
	ChangeAmount      decimal.Decimal `json:"change_amount"`
	Reason            string          `json:"reason"`
	ResultingQuantity decimal.Decimal `json:"resulting_quantity"`
	OrderID           *uuid.UUID      `json:"order_id,omitempty"`
	OrderItemName     string          `json:"order_item_name,omitempty"`
}

// InventoryItem is the aggregate root for stock tracking. Quantity is a
// signed balance: deduction is never rejected for scarcity, so it may go
// negative. The ledger (Log) is append-only.
type InventoryItem struct {
	shared.BaseAggregateRoot
	Name        string              `json:"name"`
	Unit        string              `json:"unit"`
	Quantity    decimal.Decimal     `json:"quantity"`
	MinQuantity decimal.Decimal     `json:"min_quantity"`
	CostPerUnit decimal.Decimal     `json:"cost_per_unit"`
	Log         []InventoryLogEntry `json:"log"`
}

// NewInventoryItem creates a new inventory item and seeds the ledger with an
// Initial Stock entry
func NewInventoryItem(name, unit string, initialQuantity, minQuantity decimal.Decimal, costPerUnit valueobject.Money) (*InventoryItem, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Inventory item name cannot be empty")
	}
	if initialQuantity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Initial quantity cannot be negative")
	}
	if minQuantity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Minimum quantity cannot be negative")
	}
	if costPerUnit.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Cost per unit cannot be negative")
	}

	item := &InventoryItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Unit:              unit,
		Quantity:          decimal.Zero,
		MinQuantity:       minQuantity,
		CostPerUnit:       costPerUnit.Amount(),
		Log:               make([]InventoryLogEntry, 0, 1),
	}
	item.appendChange(initialQuantity, ReasonInitialStock, nil, "")

	return item, nil
}

// Deduct removes stock consumed by a served order item. Amount must be
// positive; the balance may legally go negative. Returns the ledger entry and
// whether the balance crossed from above the minimum threshold to at-or-below
// it (the only condition that should raise a low-stock notice).
func (i *InventoryItem) Deduct(amount decimal.Decimal, orderID uuid.UUID, orderItemName string) (InventoryLogEntry, bool, error) {
	if !amount.IsPositive() {
		return InventoryLogEntry{}, false, shared.NewDomainError("INVALID_QUANTITY", "Deduct amount must be positive")
	}

	wasAbove := i.Quantity.GreaterThan(i.MinQuantity)
	entry := i.appendChange(amount.Neg(), fmt.Sprintf("Served: %s", orderItemName), &orderID, orderItemName)
	crossed := wasAbove && i.Quantity.LessThanOrEqual(i.MinQuantity)

	i.AddDomainEvent(NewStockDeductedEvent(i, entry))
	if crossed {
		i.AddDomainEvent(NewStockBelowMinimumEvent(i))
	}

	return entry, crossed, nil
}

// Restore returns stock for an order item that left SERVED (rollback or void).
// Never raises a low-stock notice.
func (i *InventoryItem) Restore(amount decimal.Decimal, orderID uuid.UUID, orderItemName string) (InventoryLogEntry, error) {
	if !amount.IsPositive() {
		return InventoryLogEntry{}, shared.NewDomainError("INVALID_QUANTITY", "Restore amount must be positive")
	}

	entry := i.appendChange(amount, fmt.Sprintf("Returned: %s", orderItemName), &orderID, orderItemName)
	i.AddDomainEvent(NewStockRestoredEvent(i, entry))

	return entry, nil
}

// AdjustTo sets the balance to an absolute value (manual stock correction)
// and logs the delta
func (i *InventoryItem) AdjustTo(newQuantity decimal.Decimal, reason string) (InventoryLogEntry, error) {
	if reason == "" {
		return InventoryLogEntry{}, shared.NewDomainError("INVALID_REASON", "Adjustment reason is required")
	}

	delta := newQuantity.Sub(i.Quantity)
	entry := i.appendChange(delta, reason, nil, "")
	i.AddDomainEvent(NewStockAdjustedEvent(i, entry))

	return entry, nil
}

// SetMinQuantity updates the low-stock threshold
func (i *InventoryItem) SetMinQuantity(minQuantity decimal.Decimal) error {
	if minQuantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Minimum quantity cannot be negative")
	}
	i.MinQuantity = minQuantity
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// SetCostPerUnit updates the unit cost
func (i *InventoryItem) SetCostPerUnit(cost valueobject.Money) error {
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Cost per unit cannot be negative")
	}
	i.CostPerUnit = cost.Amount()
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// IsLowStock reports whether the balance is at or below the threshold
func (i *InventoryItem) IsLowStock() bool {
	return i.Quantity.LessThanOrEqual(i.MinQuantity)
}

// GetCostMoney returns the unit cost as Money
func (i *InventoryItem) GetCostMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(i.CostPerUnit)
}

// StockValue returns quantity * cost per unit
func (i *InventoryItem) StockValue() valueobject.Money {
	return valueobject.NewMoneyUSD(i.Quantity.Mul(i.CostPerUnit))
}

// appendChange applies a signed delta and appends the matching ledger entry.
// The resulting-quantity match is the audit reconstruction invariant; a
// mismatch is a programmer error, hence the panic.
func (i *InventoryItem) appendChange(change decimal.Decimal, reason string, orderID *uuid.UUID, orderItemName string) InventoryLogEntry {
	i.Quantity = i.Quantity.Add(change)
	entry := InventoryLogEntry{
		ID:                uuid.New(),
		Timestamp:         time.Now(),
		ChangeAmount:      change,
		Reason:            reason,
		ResultingQuantity: i.Quantity,
		OrderID:           orderID,
		OrderItemName:     orderItemName,
	}
	if !entry.ResultingQuantity.Equal(i.Quantity) {
		panic(fmt.Sprintf("inventory ledger mismatch for %s: entry %s vs quantity %s",
			i.Name, entry.ResultingQuantity, i.Quantity))
	}
	i.Log = append(i.Log, entry)
	i.UpdatedAt = entry.Timestamp
	i.IncrementVersion()
	return entry
}
