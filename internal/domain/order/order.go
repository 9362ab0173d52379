package order

import (
	"fmt"
	"time"

	"github.com/floorops/backend/internal/domain/catalog"
	"github.com/floorops/backend/internal/domain/shared"
	"github.com/floorops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem is a line in an order. Name and price are snapshots taken from
// the menu at creation time and never change afterwards.
type OrderItem struct {
	MenuID   uuid.UUID       `json:"menu_id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Note     string          `json:"note,omitempty"`
	Station  catalog.Station `json:"station"`
	Status   ItemStatus      `json:"status"`
}

// Amount returns price * quantity for the line
func (i OrderItem) Amount() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewOrderItem creates an order item snapshot
func NewOrderItem(menuID uuid.UUID, name string, quantity int, price valueobject.Money, note string, station catalog.Station) (OrderItem, error) {
	if menuID == uuid.Nil {
		return OrderItem{}, shared.NewDomainError("INVALID_MENU_ITEM", "Menu item ID cannot be empty")
	}
	if name == "" {
		return OrderItem{}, shared.NewDomainError("INVALID_NAME", "Order item name cannot be empty")
	}
	if quantity <= 0 {
		return OrderItem{}, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if price.IsNegative() {
		return OrderItem{}, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if !station.IsValid() {
		return OrderItem{}, shared.NewDomainError("INVALID_STATION", "Unknown station")
	}

	return OrderItem{
		MenuID:   menuID,
		Name:     name,
		Quantity: quantity,
		Price:    price.Amount(),
		Note:     note,
		Station:  station,
		Status:   ItemStatusPending,
	}, nil
}

// ItemChange records one item's status transition, returned to the caller so
// the application layer can mirror SERVED boundary crossings into the
// inventory ledger.
type ItemChange struct {
	Index    int
	MenuID   uuid.UUID
	Name     string
	Quantity int
	From     ItemStatus
	To       ItemStatus
}

// BecameServed reports a transition into SERVED
func (c ItemChange) BecameServed() bool {
	return c.From != ItemStatusServed && c.To == ItemStatusServed
}

// LeftServed reports a transition out of SERVED
func (c ItemChange) LeftServed() bool {
	return c.From == ItemStatusServed && c.To != ItemStatusServed
}

// TakeoutTable is the sentinel table id denoting a takeout order
var TakeoutTable = uuid.Nil

// Order is the aggregate root of the order lifecycle. It is created once per
// send-to-station action and only ever transitions status; orders are never
// deleted.
type Order struct {
	shared.BaseAggregateRoot
	TableID       uuid.UUID       `json:"table_id"`
	Items         []OrderItem     `json:"items"`
	Status        OrderStatus     `json:"status"`
	KitchenStatus StationStatus   `json:"kitchen_status"`
	BarStatus     StationStatus   `json:"bar_status"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	Total         decimal.Decimal `json:"total"`
	Discount      decimal.Decimal `json:"discount"`
	CustomerID    *uuid.UUID      `json:"customer_id,omitempty"`
	CustomerName  string          `json:"customer_name,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	VoidReason    string          `json:"void_reason,omitempty"`

	// Loyalty outcome stamped at checkout so a later void can reverse it
	PointsEarned   int64 `json:"points_earned,omitempty"`
	PointsRedeemed int64 `json:"points_redeemed,omitempty"`
}

// NewOrder creates a new order with every item PENDING. Items must already be
// classified into stations by the caller (station resolver precedence lives
// in the catalog).
func NewOrder(tableID uuid.UUID, items []OrderItem, taxRate decimal.Decimal) (*Order, error) {
	if len(items) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Order must contain at least one item")
	}
	if taxRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TAX_RATE", "Tax rate cannot be negative")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TableID:           tableID,
		Items:             append(make([]OrderItem, 0, len(items)), items...),
		Status:            OrderStatusPending,
		TaxRate:           taxRate,
		Discount:          decimal.Zero,
	}
	for idx := range o.Items {
		o.Items[idx].Status = ItemStatusPending
	}
	o.reduceStations()
	o.recalculateTotals()

	o.AddDomainEvent(NewOrderCreatedEvent(o))

	return o, nil
}

// NewCompletedOrder creates an order that is terminal from the start, e.g. an
// instantaneous takeout sale rung up at the register. Every item is SERVED and
// both present stations are COMPLETED. No inventory deduction is implied; the
// caller decides whether to run a ledger pass.
func NewCompletedOrder(tableID uuid.UUID, items []OrderItem, taxRate decimal.Decimal, paymentMethod string) (*Order, error) {
	o, err := NewOrder(tableID, items, taxRate)
	if err != nil {
		return nil, err
	}
	for idx := range o.Items {
		o.Items[idx].Status = ItemStatusServed
	}
	o.reduceStations()
	o.completeStations()
	o.Status = OrderStatusCompleted
	o.PaymentMethod = paymentMethod

	o.AddDomainEvent(NewOrderCompletedEvent(o))

	return o, nil
}

// AttachCustomer links the order to a loyalty customer
func (o *Order) AttachCustomer(customerID uuid.UUID, customerName string) error {
	if customerID == uuid.Nil {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	o.CustomerID = &customerID
	o.CustomerName = customerName
	o.UpdatedAt = time.Now()
	return nil
}

// IsTakeout reports whether the order has no physical table
func (o *Order) IsTakeout() bool {
	return o.TableID == TakeoutTable
}

// IsActive reports whether the order still occupies its table
func (o *Order) IsActive() bool {
	return !o.Status.IsTerminal()
}

// SetItemStatus transitions a single item. Returns the resulting change, or
// nil when the call is a no-op (same status, unknown index, terminal order).
func (o *Order) SetItemStatus(itemIndex int, newStatus ItemStatus) (*ItemChange, error) {
	if !newStatus.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown item status %q", newStatus))
	}
	if o.Status.IsTerminal() {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot change items of a %s order", o.Status))
	}
	if itemIndex < 0 || itemIndex >= len(o.Items) {
		return nil, nil
	}
	item := &o.Items[itemIndex]
	if item.Status == newStatus {
		return nil, nil
	}

	change := ItemChange{
		Index:    itemIndex,
		MenuID:   item.MenuID,
		Name:     item.Name,
		Quantity: item.Quantity,
		From:     item.Status,
		To:       newStatus,
	}
	item.Status = newStatus
	o.reduceStations()
	o.Status = ReduceOrderStatus(o.Status, o.KitchenStatus, o.BarStatus)
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderItemStatusChangedEvent(o, change))

	return &change, nil
}

// SetStationStatus bulk-transitions every item routed to the station.
// Items already at the target status are skipped, which makes a repeated
// SERVED call idempotent per item. Returns the changes that actually applied.
func (o *Order) SetStationStatus(station catalog.Station, newStatus ItemStatus) ([]ItemChange, error) {
	if !station.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATION", "Unknown station")
	}
	if !newStatus.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown item status %q", newStatus))
	}
	if o.Status.IsTerminal() {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot change items of a %s order", o.Status))
	}

	changes := make([]ItemChange, 0, len(o.Items))
	for idx := range o.Items {
		item := &o.Items[idx]
		if item.Station != station || item.Status == newStatus {
			continue
		}
		changes = append(changes, ItemChange{
			Index:    idx,
			MenuID:   item.MenuID,
			Name:     item.Name,
			Quantity: item.Quantity,
			From:     item.Status,
			To:       newStatus,
		})
		item.Status = newStatus
	}
	if len(changes) == 0 {
		return nil, nil
	}

	o.reduceStations()
	o.Status = ReduceOrderStatus(o.Status, o.KitchenStatus, o.BarStatus)
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStationStatusChangedEvent(o, station, newStatus, changes))

	return changes, nil
}

// Complete finalizes the order at payment time. Items not yet served are
// force-marked SERVED without a ledger pass; both present stations move to
// COMPLETED. Loyalty accrual is the checkout flow's concern, not this method's.
func (o *Order) Complete(paymentMethod string) error {
	if o.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete a %s order", o.Status))
	}

	for idx := range o.Items {
		if o.Items[idx].Status != ItemStatusCancelled {
			o.Items[idx].Status = ItemStatusServed
		}
	}
	o.reduceStations()
	o.completeStations()
	o.Status = OrderStatusCompleted
	o.PaymentMethod = paymentMethod
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderCompletedEvent(o))

	return nil
}

// Void cancels the order and every item in it. Returns the changes for items
// that left SERVED so the caller can restore their recipes to inventory.
func (o *Order) Void(reason string) ([]ItemChange, error) {
	if o.Status == OrderStatusCancelled {
		return nil, shared.NewDomainError("INVALID_STATE", "Order is already cancelled")
	}
	if reason == "" {
		return nil, shared.NewDomainError("INVALID_REASON", "Void reason is required")
	}

	changes := make([]ItemChange, 0, len(o.Items))
	for idx := range o.Items {
		item := &o.Items[idx]
		if item.Status == ItemStatusCancelled {
			continue
		}
		changes = append(changes, ItemChange{
			Index:    idx,
			MenuID:   item.MenuID,
			Name:     item.Name,
			Quantity: item.Quantity,
			From:     item.Status,
			To:       ItemStatusCancelled,
		})
		item.Status = ItemStatusCancelled
	}

	if o.KitchenStatus != StationStatusNone {
		o.KitchenStatus = StationStatusCancelled
	}
	if o.BarStatus != StationStatusNone {
		o.BarStatus = StationStatusCancelled
	}
	o.Status = OrderStatusCancelled
	o.VoidReason = reason
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderVoidedEvent(o, reason))

	return changes, nil
}

// RemoveItem removes an item from a live order. Returns the removed item.
// When the last item is removed the caller is expected to void the order.
func (o *Order) RemoveItem(itemIndex int) (*OrderItem, error) {
	if o.Status.IsTerminal() {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot remove items from a %s order", o.Status))
	}
	if itemIndex < 0 || itemIndex >= len(o.Items) {
		return nil, nil
	}

	removed := o.Items[itemIndex]
	o.Items = append(o.Items[:itemIndex], o.Items[itemIndex+1:]...)
	o.reduceStations()
	o.Status = ReduceOrderStatus(o.Status, o.KitchenStatus, o.BarStatus)
	o.recalculateTotals()
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderItemRemovedEvent(o, removed))

	return &removed, nil
}

// ReassignTable moves the order to another table during a table transfer
func (o *Order) ReassignTable(tableID uuid.UUID) {
	o.TableID = tableID
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// RecordLoyalty stamps the points the checkout flow awarded and redeemed
// against this order
func (o *Order) RecordLoyalty(earned, redeemed int64) {
	o.PointsEarned = earned
	o.PointsRedeemed = redeemed
	o.UpdatedAt = time.Now()
}

// ApplyDiscount sets the flat discount amount used at pricing time
func (o *Order) ApplyDiscount(discount valueobject.Money) error {
	if discount.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}
	o.Discount = discount.Amount()
	o.UpdatedAt = time.Now()
	return nil
}

// IsEmpty reports whether all items have been removed
func (o *Order) IsEmpty() bool {
	return len(o.Items) == 0
}

// ServedItems returns the items currently in SERVED status
func (o *Order) ServedItems() []OrderItem {
	served := make([]OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		if item.Status == ItemStatusServed {
			served = append(served, item)
		}
	}
	return served
}

// StationStatusOf returns the aggregate status for the given station
func (o *Order) StationStatusOf(station catalog.Station) StationStatus {
	if station == catalog.StationBar {
		return o.BarStatus
	}
	return o.KitchenStatus
}

// GetTotalMoney returns the tax-inclusive total as Money
func (o *Order) GetTotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.Total)
}

// GetSubtotalMoney returns the pre-tax subtotal as Money
func (o *Order) GetSubtotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.Subtotal)
}

// reduceStations recomputes both station aggregates from the item set
func (o *Order) reduceStations() {
	o.KitchenStatus = ReduceStationStatus(o.Items, catalog.StationKitchen)
	o.BarStatus = ReduceStationStatus(o.Items, catalog.StationBar)
}

// completeStations forces present stations to COMPLETED at payment time
func (o *Order) completeStations() {
	if o.KitchenStatus != StationStatusNone {
		o.KitchenStatus = StationStatusCompleted
	}
	if o.BarStatus != StationStatusNone {
		o.BarStatus = StationStatusCompleted
	}
}

// recalculateTotals recomputes subtotal and the tax-inclusive total from the
// remaining items. The configured tax rate is reapplied to the fresh subtotal
// rather than prorating the previous total.
func (o *Order) recalculateTotals() {
	subtotal := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.Amount())
	}
	o.Subtotal = subtotal
	o.Total = subtotal.Mul(decimal.NewFromInt(1).Add(o.TaxRate)).Round(2)
}
