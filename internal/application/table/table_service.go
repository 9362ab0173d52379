package table

import (
	"bytes"
	"context"

	"github.com/floorops/backend/internal/domain/shared"
	"github.com/floorops/backend/internal/domain/table"
	"github.com/floorops/backend/internal/infrastructure/memstore"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderFlow is the slice of the order lifecycle the topology manager needs:
// occupancy checks when freeing or unmerging tables, and order reassignment
// during transfers. Satisfied by the order application service.
type OrderFlow interface {
	// HasActiveOrders reports whether the table carries any non-terminal
	// order other than excluding (pass uuid.Nil to exclude nothing)
	HasActiveOrders(ctx context.Context, tableID, excluding uuid.UUID) (bool, error)
	// ReassignActiveOrders moves every non-terminal order from one table
	// to another, returning how many moved
	ReassignActiveOrders(ctx context.Context, from, to uuid.UUID) (int, error)
}

// TableService manages the floor topology: zones, per-table occupancy,
// one-level merge groups, transfers and the call bell. All mutations of a
// table are serialized on that table's lock.
type TableService struct {
	tableRepo      table.Repository
	zoneRepo       table.ZoneRepository
	locks          *memstore.KeyedMutex
	orderFlow      OrderFlow
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewTableService creates a new TableService. The order flow is attached
// after construction to break the mutual dependency with the order service.
func NewTableService(
	tableRepo table.Repository,
	zoneRepo table.ZoneRepository,
	locks *memstore.KeyedMutex,
	eventPublisher shared.EventPublisher,
	logger *zap.Logger,
) *TableService {
	return &TableService{
		tableRepo:      tableRepo,
		zoneRepo:       zoneRepo,
		locks:          locks,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// SetOrderFlow attaches the order lifecycle collaborator
func (s *TableService) SetOrderFlow(flow OrderFlow) {
	s.orderFlow = flow
}

// CreateZone creates a named floor zone
func (s *TableService) CreateZone(ctx context.Context, name string) (*table.Zone, error) {
	existing, err := s.zoneRepo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	zone, err := table.NewZone(name)
	if err != nil {
		return nil, err
	}
	if err := s.zoneRepo.Save(ctx, zone); err != nil {
		return nil, err
	}
	return zone, nil
}

// ListZones returns every zone
func (s *TableService) ListZones(ctx context.Context) ([]table.Zone, error) {
	return s.zoneRepo.FindAll(ctx)
}

// DeleteZone removes a zone. Declined while tables still reference it.
func (s *TableService) DeleteZone(ctx context.Context, id uuid.UUID) error {
	zone, err := s.zoneRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if zone == nil {
		return nil
	}

	count, err := s.tableRepo.CountByZone(ctx, zone.Name)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.ErrZoneInUse
	}
	return s.zoneRepo.Delete(ctx, id)
}

// CreateTable creates a table in an existing zone
func (s *TableService) CreateTable(ctx context.Context, name, zoneName string, seatCount int) (*table.Table, error) {
	zone, err := s.zoneRepo.FindByName(ctx, zoneName)
	if err != nil {
		return nil, err
	}
	if zone == nil {
		return nil, shared.NewDomainError("INVALID_ZONE", "Zone does not exist")
	}

	t, err := table.NewTable(name, zone.Name, seatCount)
	if err != nil {
		return nil, err
	}
	if err := s.tableRepo.Save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// GetTable returns a table by id, or (nil, nil) when unknown
func (s *TableService) GetTable(ctx context.Context, id uuid.UUID) (*table.Table, error) {
	return s.tableRepo.FindByID(ctx, id)
}

// ListTables returns every table, optionally filtered by zone
func (s *TableService) ListTables(ctx context.Context, zone string) ([]table.Table, error) {
	if zone != "" {
		return s.tableRepo.FindByZone(ctx, zone)
	}
	return s.tableRepo.FindAll(ctx)
}

// DeleteTable removes a table. Declined while the table is part of a merge
// group or carries active orders.
func (s *TableService) DeleteTable(ctx context.Context, id uuid.UUID) error {
	return s.locks.WithLock(id, func() error {
		t, err := s.tableRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return nil
		}
		if t.IsMaster() {
			return shared.ErrTableAlreadyMerged
		}
		master, err := s.tableRepo.FindMasterOf(ctx, id)
		if err != nil {
			return err
		}
		if master != nil {
			return shared.ErrTableAlreadyMerged
		}
		busy, err := s.hasActiveOrders(ctx, id, uuid.Nil)
		if err != nil {
			return err
		}
		if busy {
			return shared.NewDomainError("TABLE_IN_USE", "Table still has active orders")
		}
		return s.tableRepo.Delete(ctx, id)
	})
}

// OccupyTable marks a table OCCUPIED under its lock. Idempotent.
func (s *TableService) OccupyTable(ctx context.Context, id uuid.UUID) error {
	return s.SeatTable(ctx, id, nil)
}

// SeatTable marks a table OCCUPIED, running commit inside the same critical
// section: state the caller must land while the table is held (the order that
// seats it) becomes visible before the table lock is released. A commit error
// leaves the table untouched. Idempotent on occupancy.
func (s *TableService) SeatTable(ctx context.Context, id uuid.UUID, commit func() error) error {
	return s.locks.WithLock(id, func() error {
		t, err := s.tableRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return shared.NewDomainError("INVALID_TABLE", "Table does not exist")
		}
		if commit != nil {
			if err := commit(); err != nil {
				return err
			}
		}
		t.Occupy()
		if err := s.tableRepo.Save(ctx, t); err != nil {
			return err
		}
		s.publishEvents(ctx, &t.BaseAggregateRoot)
		return nil
	})
}

// TryFreeTable flips a table back to AVAILABLE if no active order other than
// excluding still references it. Freeing a master releases its children,
// whose own statuses are re-resolved from their occupancy. Returns whether
// the table was freed.
func (s *TableService) TryFreeTable(ctx context.Context, id uuid.UUID, excluding uuid.UUID) (bool, error) {
	if id == uuid.Nil {
		return false, nil
	}

	freed := false
	var released []uuid.UUID
	err := s.locks.WithLock(id, func() error {
		t, err := s.tableRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return nil
		}

		busy, err := s.hasActiveOrders(ctx, id, excluding)
		if err != nil {
			return err
		}
		if busy {
			return nil
		}

		released = t.SetAvailable()
		if err := s.tableRepo.Save(ctx, t); err != nil {
			return err
		}
		s.publishEvents(ctx, &t.BaseAggregateRoot)
		freed = true
		return nil
	})
	if err != nil {
		return freed, err
	}

	// Children are resolved after the master lock is dropped; a child lock
	// is never taken while another table's lock is held.
	for _, childID := range released {
		if err := s.resolveReleasedChild(ctx, childID, excluding); err != nil {
			return freed, err
		}
	}
	return freed, nil
}

// resolveReleasedChild re-derives a former merge child's own status from its
// occupancy once its master let go of it
func (s *TableService) resolveReleasedChild(ctx context.Context, childID, excluding uuid.UUID) error {
	return s.locks.WithLock(childID, func() error {
		child, err := s.tableRepo.FindByID(ctx, childID)
		if err != nil {
			return err
		}
		if child == nil {
			return nil
		}

		busy, err := s.hasActiveOrders(ctx, childID, excluding)
		if err != nil {
			return err
		}
		if busy {
			child.Occupy()
		} else {
			child.SetAvailable()
		}
		if err := s.tableRepo.Save(ctx, child); err != nil {
			return err
		}
		s.publishEvents(ctx, &child.BaseAggregateRoot)
		return nil
	})
}

// MergeTables attaches a slave table to a master. Merge depth is one: the
// master absorbs the slave, and a table that is itself a master or already
// merged elsewhere cannot become a slave.
func (s *TableService) MergeTables(ctx context.Context, masterID, slaveID uuid.UUID) (*table.Table, error) {
	if masterID == slaveID {
		return nil, shared.NewDomainError("INVALID_MERGE", "Cannot merge a table with itself")
	}

	var master *table.Table
	err := s.withPairLock(masterID, slaveID, func() error {
		var err error
		master, err = s.tableRepo.FindByID(ctx, masterID)
		if err != nil {
			return err
		}
		if master == nil {
			return shared.NewDomainError("INVALID_TABLE", "Master table does not exist")
		}
		slave, err := s.tableRepo.FindByID(ctx, slaveID)
		if err != nil {
			return err
		}
		if slave == nil {
			return shared.NewDomainError("INVALID_TABLE", "Slave table does not exist")
		}
		if slave.IsMaster() {
			return shared.ErrTableAlreadyMerged
		}
		slaveMaster, err := s.tableRepo.FindMasterOf(ctx, slaveID)
		if err != nil {
			return err
		}
		if slaveMaster != nil {
			return shared.ErrTableAlreadyMerged
		}
		masterOfMaster, err := s.tableRepo.FindMasterOf(ctx, masterID)
		if err != nil {
			return err
		}
		if masterOfMaster != nil {
			return shared.ErrTableAlreadyMerged
		}

		if err := master.AddChild(slaveID); err != nil {
			return err
		}
		slave.Occupy()
		master.Occupy()

		if err := s.tableRepo.Save(ctx, master); err != nil {
			return err
		}
		if err := s.tableRepo.Save(ctx, slave); err != nil {
			return err
		}
		s.publishEvents(ctx, &master.BaseAggregateRoot)
		s.publishEvents(ctx, &slave.BaseAggregateRoot)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return master, nil
}

// UnmergeTable detaches one slave from its master. The slave's own status is
// re-resolved from its occupancy.
func (s *TableService) UnmergeTable(ctx context.Context, masterID, slaveID uuid.UUID) (*table.Table, error) {
	var master *table.Table
	err := s.withPairLock(masterID, slaveID, func() error {
		var err error
		master, err = s.tableRepo.FindByID(ctx, masterID)
		if err != nil {
			return err
		}
		if master == nil {
			return shared.NewDomainError("INVALID_TABLE", "Master table does not exist")
		}
		if !master.RemoveChild(slaveID) {
			return shared.NewDomainError("NOT_MERGED", "Table is not merged into this master")
		}
		if err := s.tableRepo.Save(ctx, master); err != nil {
			return err
		}
		s.publishEvents(ctx, &master.BaseAggregateRoot)

		slave, err := s.tableRepo.FindByID(ctx, slaveID)
		if err != nil {
			return err
		}
		if slave == nil {
			return nil
		}
		busy, err := s.hasActiveOrders(ctx, slaveID, uuid.Nil)
		if err != nil {
			return err
		}
		if busy {
			slave.Occupy()
		} else {
			slave.SetAvailable()
		}
		if err := s.tableRepo.Save(ctx, slave); err != nil {
			return err
		}
		s.publishEvents(ctx, &slave.BaseAggregateRoot)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return master, nil
}

// UnmergeAll detaches every slave from a master at once
func (s *TableService) UnmergeAll(ctx context.Context, masterID uuid.UUID) (*table.Table, error) {
	var master *table.Table
	var released []uuid.UUID
	err := s.locks.WithLock(masterID, func() error {
		var err error
		master, err = s.tableRepo.FindByID(ctx, masterID)
		if err != nil {
			return err
		}
		if master == nil {
			return shared.NewDomainError("INVALID_TABLE", "Master table does not exist")
		}
		released = master.ClearChildren()
		if err := s.tableRepo.Save(ctx, master); err != nil {
			return err
		}
		s.publishEvents(ctx, &master.BaseAggregateRoot)
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, childID := range released {
		if err := s.resolveReleasedChild(ctx, childID, uuid.Nil); err != nil {
			return nil, err
		}
	}
	return master, nil
}

// TransferTable moves a party, its active orders and its merge children from
// one table to another. The destination must be AVAILABLE.
func (s *TableService) TransferTable(ctx context.Context, fromID, toID uuid.UUID) (*table.Table, error) {
	if fromID == toID {
		return nil, shared.NewDomainError("INVALID_TRANSFER", "Source and destination are the same table")
	}

	var dest *table.Table
	err := s.withPairLock(fromID, toID, func() error {
		from, err := s.tableRepo.FindByID(ctx, fromID)
		if err != nil {
			return err
		}
		if from == nil {
			return shared.NewDomainError("INVALID_TABLE", "Source table does not exist")
		}
		dest, err = s.tableRepo.FindByID(ctx, toID)
		if err != nil {
			return err
		}
		if dest == nil {
			return shared.NewDomainError("INVALID_TABLE", "Destination table does not exist")
		}
		if dest.Status != table.TableStatusAvailable {
			return shared.ErrTableNotAvailable
		}

		if s.orderFlow != nil {
			moved, err := s.orderFlow.ReassignActiveOrders(ctx, fromID, toID)
			if err != nil {
				return err
			}
			s.logger.Info("transferred active orders",
				zap.Int("count", moved),
				zap.String("from", fromID.String()),
				zap.String("to", toID.String()))
		}

		children := from.SetAvailable()
		dest.Occupy()
		dest.AdoptChildren(children)

		if err := s.tableRepo.Save(ctx, from); err != nil {
			return err
		}
		if err := s.tableRepo.Save(ctx, dest); err != nil {
			return err
		}
		s.publishEvents(ctx, &from.BaseAggregateRoot)
		s.publishEvents(ctx, &dest.BaseAggregateRoot)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dest, nil
}

// SetCalling raises or clears a table's call bell
func (s *TableService) SetCalling(ctx context.Context, id uuid.UUID, calling bool) (*table.Table, error) {
	var t *table.Table
	err := s.locks.WithLock(id, func() error {
		var err error
		t, err = s.tableRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return shared.NewDomainError("INVALID_TABLE", "Table does not exist")
		}
		t.SetCalling(calling)
		if err := s.tableRepo.Save(ctx, t); err != nil {
			return err
		}
		s.publishEvents(ctx, &t.BaseAggregateRoot)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListCallingTables returns every table with the call bell raised
func (s *TableService) ListCallingTables(ctx context.Context) ([]table.Table, error) {
	tables, err := s.tableRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	calling := tables[:0]
	for _, t := range tables {
		if t.IsCallingStaff {
			calling = append(calling, t)
		}
	}
	return calling, nil
}

func (s *TableService) hasActiveOrders(ctx context.Context, tableID, excluding uuid.UUID) (bool, error) {
	if s.orderFlow == nil {
		return false, nil
	}
	return s.orderFlow.HasActiveOrders(ctx, tableID, excluding)
}

// withPairLock locks two table ids in a stable order so concurrent merges
// and transfers touching the same pair cannot deadlock
func (s *TableService) withPairLock(a, b uuid.UUID, fn func() error) error {
	first, second := a, b
	if bytes.Compare(b[:], a[:]) < 0 {
		first, second = b, a
	}
	return s.locks.WithLock(first, func() error {
		return s.locks.WithLock(second, fn)
	})
}

func (s *TableService) publishEvents(ctx context.Context, root *shared.BaseAggregateRoot) {
	if s.eventPublisher == nil {
		return
	}
	events := root.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish table events", zap.Error(err))
	}
	root.ClearDomainEvents()
}
