package table

import (
	"context"
	"time"

	"github.com/floorops/backend/internal/domain/shared"
	"github.com/floorops/backend/internal/domain/table"
	"github.com/floorops/backend/internal/infrastructure/memstore"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingService manages reservations: pending bookings, the confirmation
// that reserves a table and the check-in that seats the party.
type BookingService struct {
	bookingRepo    table.BookingRepository
	tableRepo      table.Repository
	locks          *memstore.KeyedMutex
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewBookingService creates a new BookingService
func NewBookingService(
	bookingRepo table.BookingRepository,
	tableRepo table.Repository,
	locks *memstore.KeyedMutex,
	eventPublisher shared.EventPublisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo:    bookingRepo,
		tableRepo:      tableRepo,
		locks:          locks,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// CreateBookingRequest carries the fields for a new booking
type CreateBookingRequest struct {
	CustomerName string
	Phone        string
	BookedFor    time.Time
	GuestCount   int
	TableID      *uuid.UUID
}

// CreateBooking records a pending booking, optionally pinned to a table
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*table.Booking, error) {
	booking, err := table.NewBooking(req.CustomerName, req.Phone, req.BookedFor, req.GuestCount)
	if err != nil {
		return nil, err
	}
	if req.TableID != nil {
		t, err := s.tableRepo.FindByID(ctx, *req.TableID)
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, shared.NewDomainError("INVALID_TABLE", "Table does not exist")
		}
		if err := booking.AssignTable(t.ID); err != nil {
			return nil, err
		}
	}
	if err := s.bookingRepo.Save(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// GetBooking returns a booking by id, or (nil, nil) when unknown
func (s *BookingService) GetBooking(ctx context.Context, id uuid.UUID) (*table.Booking, error) {
	return s.bookingRepo.FindByID(ctx, id)
}

// ListBookings returns bookings, optionally filtered by status
func (s *BookingService) ListBookings(ctx context.Context, status table.BookingStatus) ([]table.Booking, error) {
	if status != "" {
		return s.bookingRepo.FindByStatus(ctx, status)
	}
	return s.bookingRepo.FindAll(ctx)
}

// ConfirmBooking confirms a pending booking. When the booking is pinned to a
// table the table is reserved; an unavailable table declines the whole
// confirmation.
func (s *BookingService) ConfirmBooking(ctx context.Context, id uuid.UUID) (*table.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, nil
	}

	if booking.TableID != nil {
		tableID := *booking.TableID
		err := s.locks.WithLock(tableID, func() error {
			t, err := s.tableRepo.FindByID(ctx, tableID)
			if err != nil {
				return err
			}
			if t == nil {
				return shared.NewDomainError("INVALID_TABLE", "Booked table no longer exists")
			}
			if err := t.Reserve(); err != nil {
				return err
			}
			if err := s.tableRepo.Save(ctx, t); err != nil {
				return err
			}
			s.publishEvents(ctx, &t.BaseAggregateRoot)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if err := booking.Confirm(); err != nil {
		return nil, err
	}
	if err := s.bookingRepo.Save(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// CancelBooking cancels a booking. The pinned table is released only while
// it is still RESERVED; a table already seated stays as it is.
func (s *BookingService) CancelBooking(ctx context.Context, id uuid.UUID) (*table.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, nil
	}

	wasConfirmed := booking.Status == table.BookingStatusConfirmed
	if err := booking.Cancel(); err != nil {
		return nil, err
	}
	if err := s.bookingRepo.Save(ctx, booking); err != nil {
		return nil, err
	}

	if wasConfirmed && booking.TableID != nil {
		tableID := *booking.TableID
		err := s.locks.WithLock(tableID, func() error {
			t, err := s.tableRepo.FindByID(ctx, tableID)
			if err != nil {
				return err
			}
			if t == nil || t.Status != table.TableStatusReserved {
				return nil
			}
			t.SetAvailable()
			if err := s.tableRepo.Save(ctx, t); err != nil {
				return err
			}
			s.publishEvents(ctx, &t.BaseAggregateRoot)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return booking, nil
}

// CheckIn seats a confirmed booking's party: the reserved table flips to
// OCCUPIED and the booking is finished.
func (s *BookingService) CheckIn(ctx context.Context, id uuid.UUID) (*table.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, nil
	}
	if booking.Status != table.BookingStatusConfirmed {
		return nil, shared.NewDomainError("INVALID_STATE", "Only confirmed bookings can check in")
	}

	if booking.TableID != nil {
		tableID := *booking.TableID
		err := s.locks.WithLock(tableID, func() error {
			t, err := s.tableRepo.FindByID(ctx, tableID)
			if err != nil {
				return err
			}
			if t == nil {
				return shared.NewDomainError("INVALID_TABLE", "Booked table no longer exists")
			}
			if err := t.CheckIn(); err != nil {
				return err
			}
			if err := s.tableRepo.Save(ctx, t); err != nil {
				return err
			}
			s.publishEvents(ctx, &t.BaseAggregateRoot)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if err := booking.Seat(); err != nil {
		return nil, err
	}
	if err := s.bookingRepo.Save(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) publishEvents(ctx context.Context, root *shared.BaseAggregateRoot) {
	if s.eventPublisher == nil {
		return
	}
	events := root.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish booking events", zap.Error(err))
	}
	root.ClearDomainEvents()
}
