package table

import (
	"context"

	"github.com/floorops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository persists tables
type Repository interface {
	shared.Repository[Table]
	// FindByZone returns every table in the named zone
	FindByZone(ctx context.Context, zone string) ([]Table, error)
	// CountByZone returns how many tables reference the named zone
	CountByZone(ctx context.Context, zone string) (int, error)
	// FindMasterOf returns the table whose MergedWith contains childID,
	// or (nil, nil) when the child is unmerged
	FindMasterOf(ctx context.Context, childID uuid.UUID) (*Table, error)
}

// ZoneRepository persists zones
type ZoneRepository interface {
	shared.Repository[Zone]
	FindByName(ctx context.Context, name string) (*Zone, error)
}

// BookingRepository persists bookings
type BookingRepository interface {
	shared.Repository[Booking]
	FindByStatus(ctx context.Context, status BookingStatus) ([]Booking, error)
}
