package table

import (
	"time"

	"github.com/floorops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TableStatus represents the occupancy state of a table
type TableStatus string

const (
	TableStatusAvailable TableStatus = "AVAILABLE"
	TableStatusOccupied  TableStatus = "OCCUPIED"
	TableStatusReserved  TableStatus = "RESERVED"
)

// IsValid checks if the status is a valid TableStatus
func (s TableStatus) IsValid() bool {
	switch s {
	case TableStatusAvailable, TableStatusOccupied, TableStatusReserved:
		return true
	}
	return false
}

// String returns the string representation of TableStatus
func (s TableStatus) String() string {
	return string(s)
}

// Table is the aggregate root of the floor topology. A table can be merged
// with others: only a master holds children, and the merge graph is exactly
// one level deep (a master is never itself a child).
type Table struct {
	shared.BaseAggregateRoot
	Name           string      `json:"name"`
	Zone           string      `json:"zone"`
	SeatCount      int         `json:"seat_count"`
	Status         TableStatus `json:"status"`
	MergedWith     []uuid.UUID `json:"merged_with,omitempty"`
	IsCallingStaff bool        `json:"is_calling_staff"`
}

// NewTable creates a new available table
func NewTable(name, zone string, seatCount int) (*Table, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Table name cannot be empty")
	}
	if seatCount <= 0 {
		return nil, shared.NewDomainError("INVALID_SEAT_COUNT", "Seat count must be positive")
	}

	return &Table{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Zone:              zone,
		SeatCount:         seatCount,
		Status:            TableStatusAvailable,
		MergedWith:        make([]uuid.UUID, 0),
	}, nil
}

// IsMaster reports whether the table currently holds merge children
func (t *Table) IsMaster() bool {
	return len(t.MergedWith) > 0
}

// HasChild reports whether the given table is merged into this one
func (t *Table) HasChild(id uuid.UUID) bool {
	for _, child := range t.MergedWith {
		if child == id {
			return true
		}
	}
	return false
}

// SetAvailable frees the table. A freed table cannot stay merged or keep its
// staff call, so children and the call flag are cleared unconditionally.
// Returns the former children so the caller can re-resolve each of them.
func (t *Table) SetAvailable() []uuid.UUID {
	former := t.MergedWith
	t.Status = TableStatusAvailable
	t.MergedWith = make([]uuid.UUID, 0)
	t.IsCallingStaff = false
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTableStatusChangedEvent(t))

	return former
}

// Occupy marks the table occupied
func (t *Table) Occupy() {
	if t.Status == TableStatusOccupied {
		return
	}
	t.Status = TableStatusOccupied
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTableStatusChangedEvent(t))
}

// Reserve marks the table reserved. Rejected unless the table is available.
func (t *Table) Reserve() error {
	if t.Status != TableStatusAvailable {
		return shared.ErrTableNotAvailable
	}
	t.Status = TableStatusReserved
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTableStatusChangedEvent(t))

	return nil
}

// CheckIn converts a reservation into occupancy
func (t *Table) CheckIn() error {
	if t.Status != TableStatusReserved {
		return shared.NewDomainError("NOT_RESERVED", "Table is not reserved")
	}
	t.Occupy()
	return nil
}

// AddChild appends a merge child. Cross-table validation (the child having
// its own children, or belonging to another master) is the topology
// manager's concern.
func (t *Table) AddChild(childID uuid.UUID) error {
	if childID == uuid.Nil || childID == t.ID {
		return shared.NewDomainError("INVALID_MERGE", "Cannot merge a table with itself")
	}
	if t.HasChild(childID) {
		return shared.ErrTableAlreadyMerged
	}
	t.MergedWith = append(t.MergedWith, childID)
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTableMergedEvent(t, childID))

	return nil
}

// RemoveChild detaches a merge child. Returns false if the table was not a
// child of this master.
func (t *Table) RemoveChild(childID uuid.UUID) bool {
	for idx, child := range t.MergedWith {
		if child == childID {
			t.MergedWith = append(t.MergedWith[:idx], t.MergedWith[idx+1:]...)
			t.UpdatedAt = time.Now()
			t.IncrementVersion()

			t.AddDomainEvent(NewTableUnmergedEvent(t, childID))

			return true
		}
	}
	return false
}

// ClearChildren detaches every merge child and returns them
func (t *Table) ClearChildren() []uuid.UUID {
	former := t.MergedWith
	t.MergedWith = make([]uuid.UUID, 0)
	if len(former) > 0 {
		t.UpdatedAt = time.Now()
		t.IncrementVersion()
	}
	return former
}

// AdoptChildren takes over another master's children during a transfer
func (t *Table) AdoptChildren(children []uuid.UUID) {
	if len(children) == 0 {
		return
	}
	t.MergedWith = append(t.MergedWith, children...)
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// SetCalling flips the call-bell flag. The flag is independent of the status
// machine and is cleared automatically when the table becomes available.
func (t *Table) SetCalling(isCalling bool) {
	if t.IsCallingStaff == isCalling {
		return
	}
	t.IsCallingStaff = isCalling
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	if isCalling {
		t.AddDomainEvent(NewTableCallingEvent(t))
	}
}

// Rename updates the table name
func (t *Table) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Table name cannot be empty")
	}
	t.Name = name
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// MoveToZone reassigns the table to another zone
func (t *Table) MoveToZone(zone string) {
	t.Zone = zone
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}
