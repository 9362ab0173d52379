package memstore

import (
	"context"

	"github.com/floorops/backend/internal/domain/table"
	"github.com/google/uuid"
)

// TableRepository is the in-memory table store
type TableRepository struct {
	store *store[table.Table]
	locks *KeyedMutex
}

// NewTableRepository creates a new in-memory table repository
func NewTableRepository() *TableRepository {
	return &TableRepository{
		store: newStore(cloneTable),
		locks: NewKeyedMutex(),
	}
}

func cloneTable(t *table.Table) *table.Table {
	c := *t
	c.MergedWith = append(make([]uuid.UUID, 0, len(t.MergedWith)), t.MergedWith...)
	c.ClearDomainEvents()
	return &c
}

// Locks exposes the per-table mutex so the topology manager can serialize
// merge/transfer/free operations against concurrent order creation
func (r *TableRepository) Locks() *KeyedMutex {
	return r.locks
}

// FindByID returns the table with the given id, or (nil, nil) when unknown
func (r *TableRepository) FindByID(ctx context.Context, id uuid.UUID) (*table.Table, error) {
	return r.store.get(id), nil
}

// FindAll returns every table
func (r *TableRepository) FindAll(ctx context.Context) ([]table.Table, error) {
	return r.store.list(nil), nil
}

// Save stores a deep copy of the table
func (r *TableRepository) Save(ctx context.Context, t *table.Table) error {
	r.store.put(t.ID, t)
	return nil
}

// Delete removes a table
func (r *TableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.delete(id)
	return nil
}

// FindByZone returns every table in the named zone
func (r *TableRepository) FindByZone(ctx context.Context, zone string) ([]table.Table, error) {
	return r.store.list(func(t *table.Table) bool {
		return t.Zone == zone
	}), nil
}

// CountByZone returns how many tables reference the named zone
func (r *TableRepository) CountByZone(ctx context.Context, zone string) (int, error) {
	return r.store.count(func(t *table.Table) bool {
		return t.Zone == zone
	}), nil
}

// FindMasterOf returns the table holding childID as a merge child
func (r *TableRepository) FindMasterOf(ctx context.Context, childID uuid.UUID) (*table.Table, error) {
	return r.store.find(func(t *table.Table) bool {
		return t.HasChild(childID)
	}), nil
}

var _ table.Repository = (*TableRepository)(nil)

// ZoneRepository is the in-memory zone store
type ZoneRepository struct {
	store *store[table.Zone]
}

// NewZoneRepository creates a new in-memory zone repository
func NewZoneRepository() *ZoneRepository {
	return &ZoneRepository{store: newStore(cloneZone)}
}

func cloneZone(z *table.Zone) *table.Zone {
	c := *z
	c.ClearDomainEvents()
	return &c
}

// FindByID returns the zone with the given id, or (nil, nil) when unknown
func (r *ZoneRepository) FindByID(ctx context.Context, id uuid.UUID) (*table.Zone, error) {
	return r.store.get(id), nil
}

// FindAll returns every zone
func (r *ZoneRepository) FindAll(ctx context.Context) ([]table.Zone, error) {
	return r.store.list(nil), nil
}

// Save stores a deep copy of the zone
func (r *ZoneRepository) Save(ctx context.Context, z *table.Zone) error {
	r.store.put(z.ID, z)
	return nil
}

// Delete removes a zone
func (r *ZoneRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.delete(id)
	return nil
}

// FindByName returns the zone with the given name, or (nil, nil)
func (r *ZoneRepository) FindByName(ctx context.Context, name string) (*table.Zone, error) {
	return r.store.find(func(z *table.Zone) bool {
		return z.Name == name
	}), nil
}

var _ table.ZoneRepository = (*ZoneRepository)(nil)

// BookingRepository is the in-memory booking store
type BookingRepository struct {
	store *store[table.Booking]
}

// NewBookingRepository creates a new in-memory booking repository
func NewBookingRepository() *BookingRepository {
	return &BookingRepository{store: newStore(cloneBooking)}
}

func cloneBooking(b *table.Booking) *table.Booking {
	c := *b
	if b.TableID != nil {
		id := *b.TableID
		c.TableID = &id
	}
	c.ClearDomainEvents()
	return &c
}

// FindByID returns the booking with the given id, or (nil, nil) when unknown
func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*table.Booking, error) {
	return r.store.get(id), nil
}

// FindAll returns every booking
func (r *BookingRepository) FindAll(ctx context.Context) ([]table.Booking, error) {
	return r.store.list(nil), nil
}

// Save stores a deep copy of the booking
func (r *BookingRepository) Save(ctx context.Context, b *table.Booking) error {
	r.store.put(b.ID, b)
	return nil
}

// Delete removes a booking
func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.delete(id)
	return nil
}

// FindByStatus returns bookings in the given status
func (r *BookingRepository) FindByStatus(ctx context.Context, status table.BookingStatus) ([]table.Booking, error) {
	return r.store.list(func(b *table.Booking) bool {
		return b.Status == status
	}), nil
}

var _ table.BookingRepository = (*BookingRepository)(nil)
