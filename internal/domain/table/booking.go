package table

import (
	"time"

	"github.com/floorops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusSeated    BookingStatus = "SEATED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// IsValid checks if the status is a valid BookingStatus
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusSeated, BookingStatusCancelled:
		return true
	}
	return false
}

// Booking is a reservation request. Confirming a booking with a table
// attached reserves that table; cancelling releases the table only while it
// is still RESERVED (a walk-in may have occupied it in the meantime).
type Booking struct {
	shared.BaseAggregateRoot
	CustomerName string        `json:"customer_name"`
	Phone        string        `json:"phone"`
	BookedFor    time.Time     `json:"booked_for"`
	GuestCount   int           `json:"guest_count"`
	Status       BookingStatus `json:"status"`
	TableID      *uuid.UUID    `json:"table_id,omitempty"`
}

// NewBooking creates a pending booking
func NewBooking(customerName, phone string, bookedFor time.Time, guestCount int) (*Booking, error) {
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if guestCount <= 0 {
		return nil, shared.NewDomainError("INVALID_GUEST_COUNT", "Guest count must be positive")
	}

	return &Booking{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerName:      customerName,
		Phone:             phone,
		BookedFor:         bookedFor,
		GuestCount:        guestCount,
		Status:            BookingStatusPending,
	}, nil
}

// AssignTable attaches a table to the booking
func (b *Booking) AssignTable(tableID uuid.UUID) error {
	if b.Status == BookingStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot assign a table to a cancelled booking")
	}
	if tableID == uuid.Nil {
		return shared.NewDomainError("INVALID_TABLE", "Table ID cannot be empty")
	}
	b.TableID = &tableID
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// Confirm marks a pending booking confirmed
func (b *Booking) Confirm() error {
	if b.Status != BookingStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending bookings can be confirmed")
	}
	b.Status = BookingStatusConfirmed
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// Seat marks a confirmed booking's party as checked in
func (b *Booking) Seat() error {
	if b.Status != BookingStatusConfirmed {
		return shared.NewDomainError("INVALID_STATE", "Only confirmed bookings can be seated")
	}
	b.Status = BookingStatusSeated
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// Cancel marks the booking cancelled
func (b *Booking) Cancel() error {
	if b.Status == BookingStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Booking is already cancelled")
	}
	if b.Status == BookingStatusSeated {
		return shared.NewDomainError("INVALID_STATE", "Cannot cancel a seated booking")
	}
	b.Status = BookingStatusCancelled
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}
