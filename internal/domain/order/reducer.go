package order

import "github.com/floorops/backend/internal/domain/catalog"

// The reducers below are pure functions over the current item set. Every
// mutation path recomputes station and order status through them, so the
// aggregation invariants can be tested in isolation.

// ReduceStationStatus derives the aggregate status of one station from the
// items routed to it:
//   - no routed items            -> NONE
//   - every item CANCELLED       -> CANCELLED
//   - every live item SERVED     -> SERVED
//   - every live item PENDING    -> PENDING
//   - anything mixed             -> COOKING
//
// Cancelled items do not count against the live aggregation.
func ReduceStationStatus(items []OrderItem, station catalog.Station) StationStatus {
	routed := 0
	live := 0
	served := 0
	pending := 0
	for _, item := range items {
		if item.Station != station {
			continue
		}
		routed++
		if item.Status == ItemStatusCancelled {
			continue
		}
		live++
		switch item.Status {
		case ItemStatusServed:
			served++
		case ItemStatusPending:
			pending++
		}
	}

	if routed == 0 {
		return StationStatusNone
	}
	if live == 0 {
		return StationStatusCancelled
	}
	if served == live {
		return StationStatusServed
	}
	if pending == live {
		return StationStatusPending
	}
	return StationStatusCooking
}

// ReduceOrderStatus derives the order status from the current status and
// both station statuses. The order status is never downgraded: terminal
// states stick, and an order already SERVED never drops back to COOKING.
func ReduceOrderStatus(current OrderStatus, kitchen, bar StationStatus) OrderStatus {
	if current.IsTerminal() {
		return current
	}
	if kitchen.IsDone() && bar.IsDone() {
		if current == OrderStatusCompleted {
			return current
		}
		return OrderStatusServed
	}
	if current == OrderStatusPending && (kitchen == StationStatusCooking || bar == StationStatusCooking) {
		return OrderStatusCooking
	}
	return current
}
