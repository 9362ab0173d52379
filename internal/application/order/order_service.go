package order

import (
	"context"
	"fmt"

	"github.com/floorops/backend/internal/domain/catalog"
	"github.com/floorops/backend/internal/domain/loyalty"
	"github.com/floorops/backend/internal/domain/order"
	"github.com/floorops/backend/internal/domain/shared"
	"github.com/floorops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InventoryLedger is the slice of the inventory engine the order lifecycle
// drives: recipe deduction when an item becomes SERVED and restoration when
// it leaves SERVED. Satisfied by the inventory ledger service.
type InventoryLedger interface {
	DeductForItem(ctx context.Context, orderID, menuID uuid.UUID, itemName string, orderedQty int) error
	RestoreForItem(ctx context.Context, orderID, menuID uuid.UUID, itemName string, orderedQty int) error
}

// TableFlow is the slice of the floor topology the order lifecycle drives:
// seating a table when an order lands on it and attempting to free it when
// the last active order leaves. Satisfied by the table service.
type TableFlow interface {
	// SeatTable occupies the table and runs commit inside the table's
	// critical section
	SeatTable(ctx context.Context, id uuid.UUID, commit func() error) error
	TryFreeTable(ctx context.Context, id uuid.UUID, excluding uuid.UUID) (bool, error)
}

// LoyaltyFlow is the slice of the loyalty engine checkout drives. Satisfied
// by the loyalty service.
type LoyaltyFlow interface {
	GetCustomer(ctx context.Context, id uuid.UUID) (*loyalty.Customer, error)
	PointsForAmount(amount decimal.Decimal) int64
	PriceQuote(ctx context.Context, subtotal, flatDiscount decimal.Decimal, couponCode string) (loyalty.PriceBreakdown, error)
	AwardAndRecord(ctx context.Context, customerID uuid.UUID, earned, redeemed int64) (*loyalty.Customer, error)
	ReverseOnVoid(ctx context.Context, customerID uuid.UUID, earned, redeemed int64) (*loyalty.Customer, error)
}

// OrderService drives the order lifecycle: creation with station
// classification, per-item and per-station status flow with its ledger
// side effects, checkout and void.
type OrderService struct {
	orderRepo      order.Repository
	menu           catalog.Catalog
	ledger         InventoryLedger
	tables         TableFlow
	loyalty        LoyaltyFlow
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
	taxRate        decimal.Decimal
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo order.Repository,
	menu catalog.Catalog,
	ledger InventoryLedger,
	tables TableFlow,
	loyaltyFlow LoyaltyFlow,
	eventPublisher shared.EventPublisher,
	logger *zap.Logger,
	taxRate decimal.Decimal,
) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		menu:           menu,
		ledger:         ledger,
		tables:         tables,
		loyalty:        loyaltyFlow,
		eventPublisher: eventPublisher,
		logger:         logger,
		taxRate:        taxRate,
	}
}

// CreateOrderItemInput is one requested line of a new order
type CreateOrderItemInput struct {
	MenuID   uuid.UUID
	Quantity int
	Note     string
}

// CreateOrderRequest carries the fields for a new order. A nil TableID means
// takeout. InstantSale rings the order up as already paid and served.
type CreateOrderRequest struct {
	TableID       *uuid.UUID
	Items         []CreateOrderItemInput
	CustomerID    *uuid.UUID
	InstantSale   bool
	PaymentMethod string
}

// CreateOrder opens a new order. Each line is priced and classified into its
// station from the menu catalog; dine-in orders seat their table. An instant
// sale is born completed: its items deduct from inventory immediately and an
// attached customer earns loyalty on the spot.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*order.Order, error) {
	items, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	tableID := order.TakeoutTable
	if req.TableID != nil {
		tableID = *req.TableID
	}

	var o *order.Order
	if req.InstantSale {
		o, err = order.NewCompletedOrder(tableID, items, s.taxRate, req.PaymentMethod)
	} else {
		o, err = order.NewOrder(tableID, items, s.taxRate)
	}
	if err != nil {
		return nil, err
	}

	if req.CustomerID != nil {
		customer, err := s.loyalty.GetCustomer(ctx, *req.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer does not exist")
		}
		if err := o.AttachCustomer(customer.ID, customer.Name); err != nil {
			return nil, err
		}
	}

	if req.InstantSale {
		// Items were born SERVED, which is a genuine crossing for the ledger
		for _, item := range o.Items {
			if err := s.ledger.DeductForItem(ctx, o.ID, item.MenuID, item.Name, item.Quantity); err != nil {
				return nil, err
			}
		}
		if o.CustomerID != nil {
			earned := s.loyalty.PointsForAmount(o.Total)
			if _, err := s.loyalty.AwardAndRecord(ctx, *o.CustomerID, earned, 0); err != nil {
				return nil, err
			}
			o.RecordLoyalty(earned, 0)
		}
	}

	if !o.IsTakeout() && o.IsActive() {
		// The order must be visible before the table's lock is released, or
		// a concurrent TryFreeTable could free the table under a live order
		if err := s.tables.SeatTable(ctx, tableID, func() error {
			return s.orderRepo.Save(ctx, o)
		}); err != nil {
			return nil, err
		}
	} else if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, o)
	return o, nil
}

func (s *OrderService) buildItems(ctx context.Context, inputs []CreateOrderItemInput) ([]order.OrderItem, error) {
	items := make([]order.OrderItem, 0, len(inputs))
	for _, input := range inputs {
		menuItem, err := s.menu.MenuItem(ctx, input.MenuID)
		if err != nil {
			return nil, err
		}
		if menuItem == nil {
			return nil, shared.NewDomainError("INVALID_MENU_ITEM", fmt.Sprintf("Menu item %s does not exist", input.MenuID))
		}
		station := s.menu.StationFor(ctx, menuItem)
		item, err := order.NewOrderItem(menuItem.ID, menuItem.Name, input.Quantity, menuItem.GetPriceMoney(), input.Note, station)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// GetOrder returns an order by id, or (nil, nil) when unknown
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return s.orderRepo.FindByID(ctx, id)
}

// ListOrders returns orders, optionally filtered by status
func (s *OrderService) ListOrders(ctx context.Context, status order.OrderStatus) ([]order.Order, error) {
	if status != "" {
		return s.orderRepo.FindByStatus(ctx, status)
	}
	return s.orderRepo.FindAll(ctx)
}

// ListOrdersByTable returns every order on a table
func (s *OrderService) ListOrdersByTable(ctx context.Context, tableID uuid.UUID) ([]order.Order, error) {
	return s.orderRepo.FindByTable(ctx, tableID)
}

// SetItemStatus transitions one order item. A transition into SERVED deducts
// the item's recipe from inventory and a transition out of SERVED restores
// it, so the status and the ledger move together. Returns (nil, nil) for
// unknown orders.
func (s *OrderService) SetItemStatus(ctx context.Context, orderID uuid.UUID, itemIndex int, status order.ItemStatus) (*order.Order, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, nil
	}

	change, err := o.SetItemStatus(itemIndex, status)
	if err != nil {
		return nil, err
	}
	if change == nil {
		return o, nil
	}

	if err := s.applyLedgerEffect(ctx, o.ID, *change); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, o)
	s.freeIfTerminal(ctx, o)
	return o, nil
}

// SetStationStatus bulk-transitions every item routed to one station, with
// the same per-item ledger coupling as SetItemStatus. Items already at the
// target status are untouched, so repeating a SERVED call never
// double-deducts.
func (s *OrderService) SetStationStatus(ctx context.Context, orderID uuid.UUID, station catalog.Station, status order.ItemStatus) (*order.Order, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, nil
	}

	changes, err := o.SetStationStatus(station, status)
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return o, nil
	}

	for _, change := range changes {
		if err := s.applyLedgerEffect(ctx, o.ID, change); err != nil {
			return nil, err
		}
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, o)
	s.freeIfTerminal(ctx, o)
	return o, nil
}

// CheckoutRequest carries the payment-time inputs
type CheckoutRequest struct {
	PaymentMethod  string
	FlatDiscount   decimal.Decimal
	CouponCode     string
	PointsRedeemed int64
}

// Checkout prices and completes an order. The discount breakdown (flat plus
// coupon, floored at zero) is computed against the live subtotal, an
// attached customer earns points on the charged amount, and the table is
// freed when no other active order holds it. Items not yet served are
// force-marked SERVED without touching the ledger.
func (s *OrderService) Checkout(ctx context.Context, orderID uuid.UUID, req CheckoutRequest) (*order.Order, loyalty.PriceBreakdown, error) {
	var breakdown loyalty.PriceBreakdown

	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, breakdown, err
	}
	if o == nil {
		return nil, breakdown, nil
	}

	breakdown, err = s.loyalty.PriceQuote(ctx, o.Subtotal, req.FlatDiscount, req.CouponCode)
	if err != nil {
		return nil, breakdown, err
	}
	if err := o.ApplyDiscount(valueobject.NewMoneyUSD(breakdown.TotalDiscount)); err != nil {
		return nil, breakdown, err
	}

	if err := o.Complete(req.PaymentMethod); err != nil {
		return nil, breakdown, err
	}

	if o.CustomerID != nil {
		earned := s.loyalty.PointsForAmount(breakdown.FinalAmount)
		if _, err := s.loyalty.AwardAndRecord(ctx, *o.CustomerID, earned, req.PointsRedeemed); err != nil {
			return nil, breakdown, err
		}
		o.RecordLoyalty(earned, req.PointsRedeemed)
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, breakdown, err
	}
	s.publishEvents(ctx, o)
	s.freeIfTerminal(ctx, o)
	return o, breakdown, nil
}

// VoidOrder cancels an order. Served items restore their recipes to
// inventory, a completed order's loyalty outcome is reversed, and the table
// is freed when nothing else holds it. Returns (nil, nil) for unknown
// orders.
func (s *OrderService) VoidOrder(ctx context.Context, orderID uuid.UUID, reason string) (*order.Order, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, nil
	}

	wasCompleted := o.Status == order.OrderStatusCompleted

	changes, err := o.Void(reason)
	if err != nil {
		return nil, err
	}
	for _, change := range changes {
		if err := s.applyLedgerEffect(ctx, o.ID, change); err != nil {
			return nil, err
		}
	}

	if wasCompleted && o.CustomerID != nil {
		if _, err := s.loyalty.ReverseOnVoid(ctx, *o.CustomerID, o.PointsEarned, o.PointsRedeemed); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, o)
	s.freeIfTerminal(ctx, o)
	return o, nil
}

// RemoveOrderItem deletes one line from a live order, restoring its recipe
// when the line was already served. Removing the last line voids the whole
// order. Unknown indexes are a no-op.
func (s *OrderService) RemoveOrderItem(ctx context.Context, orderID uuid.UUID, itemIndex int) (*order.Order, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, nil
	}

	removed, err := o.RemoveItem(itemIndex)
	if err != nil {
		return nil, err
	}
	if removed == nil {
		return o, nil
	}

	if removed.Status == order.ItemStatusServed {
		if err := s.ledger.RestoreForItem(ctx, o.ID, removed.MenuID, removed.Name, removed.Quantity); err != nil {
			return nil, err
		}
	}

	if o.IsEmpty() {
		if _, err := o.Void("all items removed"); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, o)
	s.freeIfTerminal(ctx, o)
	return o, nil
}

// HasActiveOrders reports whether the table carries any non-terminal order
// other than excluding. Satisfies the table service's order flow contract.
func (s *OrderService) HasActiveOrders(ctx context.Context, tableID, excluding uuid.UUID) (bool, error) {
	active, err := s.orderRepo.FindActiveByTable(ctx, tableID)
	if err != nil {
		return false, err
	}
	for _, o := range active {
		if o.ID != excluding {
			return true, nil
		}
	}
	return false, nil
}

// ReassignActiveOrders moves every non-terminal order from one table to
// another during a transfer, returning how many moved
func (s *OrderService) ReassignActiveOrders(ctx context.Context, from, to uuid.UUID) (int, error) {
	active, err := s.orderRepo.FindActiveByTable(ctx, from)
	if err != nil {
		return 0, err
	}
	for idx := range active {
		o := &active[idx]
		o.ReassignTable(to)
		if err := s.orderRepo.Save(ctx, o); err != nil {
			return idx, err
		}
	}
	return len(active), nil
}

func (s *OrderService) applyLedgerEffect(ctx context.Context, orderID uuid.UUID, change order.ItemChange) error {
	switch {
	case change.BecameServed():
		return s.ledger.DeductForItem(ctx, orderID, change.MenuID, change.Name, change.Quantity)
	case change.LeftServed():
		return s.ledger.RestoreForItem(ctx, orderID, change.MenuID, change.Name, change.Quantity)
	}
	return nil
}

// freeIfTerminal releases the order's table once the order has left the
// floor. Best effort: a failed free never fails the order mutation.
func (s *OrderService) freeIfTerminal(ctx context.Context, o *order.Order) {
	if o.IsTakeout() || o.IsActive() {
		return
	}
	if _, err := s.tables.TryFreeTable(ctx, o.TableID, o.ID); err != nil {
		s.logger.Warn("failed to free table after terminal order",
			zap.String("table_id", o.TableID.String()),
			zap.String("order_id", o.ID.String()),
			zap.Error(err))
	}
}

func (s *OrderService) publishEvents(ctx context.Context, o *order.Order) {
	if s.eventPublisher == nil {
		return
	}
	events := o.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish order events", zap.Error(err))
	}
	o.ClearDomainEvents()
}
