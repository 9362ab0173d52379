package order

import (
	"testing"

	"github.com/floorops/backend/internal/domain/catalog"
	"github.com/floorops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeItem(t *testing.T, station catalog.Station, status ItemStatus) OrderItem {
	t.Helper()
	item, err := NewOrderItem(uuid.New(), "Test Dish", 1, valueobject.NewMoneyUSDFromFloat(10), "", station)
	require.NoError(t, err)
	item.Status = status
	return item
}

func TestReduceStationStatus(t *testing.T) {
	tests := []struct {
		name     string
		kitchen  []ItemStatus
		expected StationStatus
	}{
		{
			name:     "no routed items",
			kitchen:  nil,
			expected: StationStatusNone,
		},
		{
			name:     "all pending",
			kitchen:  []ItemStatus{ItemStatusPending, ItemStatusPending},
			expected: StationStatusPending,
		},
		{
			name:     "all served",
			kitchen:  []ItemStatus{ItemStatusServed, ItemStatusServed},
			expected: StationStatusServed,
		},
		{
			name:     "all cancelled",
			kitchen:  []ItemStatus{ItemStatusCancelled, ItemStatusCancelled},
			expected: StationStatusCancelled,
		},
		{
			name:     "mixed pending and served",
			kitchen:  []ItemStatus{ItemStatusPending, ItemStatusServed},
			expected: StationStatusCooking,
		},
		{
			name:     "any cooking",
			kitchen:  []ItemStatus{ItemStatusCooking, ItemStatusServed},
			expected: StationStatusCooking,
		},
		{
			name:     "cancelled items excluded from live aggregation",
			kitchen:  []ItemStatus{ItemStatusCancelled, ItemStatusServed},
			expected: StationStatusServed,
		},
		{
			name:     "cancelled plus pending is still pending",
			kitchen:  []ItemStatus{ItemStatusCancelled, ItemStatusPending},
			expected: StationStatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]OrderItem, 0, len(tt.kitchen)+1)
			for _, status := range tt.kitchen {
				items = append(items, makeItem(t, catalog.StationKitchen, status))
			}
			// An unrelated bar item must never affect the kitchen reduction
			items = append(items, makeItem(t, catalog.StationBar, ItemStatusCooking))

			assert.Equal(t, tt.expected, ReduceStationStatus(items, catalog.StationKitchen))
		})
	}
}

func TestReduceOrderStatus(t *testing.T) {
	tests := []struct {
		name     string
		current  OrderStatus
		kitchen  StationStatus
		bar      StationStatus
		expected OrderStatus
	}{
		{
			name:     "both stations done promotes to served",
			current:  OrderStatusCooking,
			kitchen:  StationStatusServed,
			bar:      StationStatusNone,
			expected: OrderStatusServed,
		},
		{
			name:     "kitchen cooking promotes pending to cooking",
			current:  OrderStatusPending,
			kitchen:  StationStatusCooking,
			bar:      StationStatusPending,
			expected: OrderStatusCooking,
		},
		{
			name:     "bar still pending keeps order cooking",
			current:  OrderStatusCooking,
			kitchen:  StationStatusServed,
			bar:      StationStatusPending,
			expected: OrderStatusCooking,
		},
		{
			name:     "served never downgrades to cooking",
			current:  OrderStatusServed,
			kitchen:  StationStatusCooking,
			bar:      StationStatusNone,
			expected: OrderStatusServed,
		},
		{
			name:     "completed sticks",
			current:  OrderStatusCompleted,
			kitchen:  StationStatusPending,
			bar:      StationStatusPending,
			expected: OrderStatusCompleted,
		},
		{
			name:     "cancelled sticks",
			current:  OrderStatusCancelled,
			kitchen:  StationStatusServed,
			bar:      StationStatusServed,
			expected: OrderStatusCancelled,
		},
		{
			name:     "both cancelled stations serve out the order",
			current:  OrderStatusCooking,
			kitchen:  StationStatusCancelled,
			bar:      StationStatusCancelled,
			expected: OrderStatusServed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ReduceOrderStatus(tt.current, tt.kitchen, tt.bar))
		})
	}
}
