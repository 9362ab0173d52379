package order

// OrderStatus is the aggregate status of a whole order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCooking   OrderStatus = "COOKING"
	OrderStatusServed    OrderStatus = "SERVED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCooking, OrderStatusServed, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal returns true for COMPLETED and CANCELLED
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// ItemStatus is the fulfillment status of a single order item
type ItemStatus string

const (
	ItemStatusPending   ItemStatus = "PENDING"
	ItemStatusCooking   ItemStatus = "COOKING"
	ItemStatusServed    ItemStatus = "SERVED"
	ItemStatusCancelled ItemStatus = "CANCELLED"
)

// IsValid checks if the status is a valid ItemStatus
func (s ItemStatus) IsValid() bool {
	switch s {
	case ItemStatusPending, ItemStatusCooking, ItemStatusServed, ItemStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of ItemStatus
func (s ItemStatus) String() string {
	return string(s)
}

// StationStatus is the aggregated status of all items routed to one station.
// NONE means the order routes no items to that station.
type StationStatus string

const (
	StationStatusNone      StationStatus = "NONE"
	StationStatusPending   StationStatus = "PENDING"
	StationStatusCooking   StationStatus = "COOKING"
	StationStatusServed    StationStatus = "SERVED"
	StationStatusCompleted StationStatus = "COMPLETED"
	StationStatusCancelled StationStatus = "CANCELLED"
)

// IsValid checks if the status is a valid StationStatus
func (s StationStatus) IsValid() bool {
	switch s {
	case StationStatusNone, StationStatusPending, StationStatusCooking,
		StationStatusServed, StationStatusCompleted, StationStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of StationStatus
func (s StationStatus) String() string {
	return string(s)
}

// IsDone reports whether the station no longer blocks order completion.
// A station with no routed items (NONE) is always done.
func (s StationStatus) IsDone() bool {
	switch s {
	case StationStatusNone, StationStatusServed, StationStatusCompleted, StationStatusCancelled:
		return true
	}
	return false
}
