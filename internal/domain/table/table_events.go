package table

import (
	"github.com/floorops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Event type constants for the table aggregate
const (
	EventTableStatusChanged = "table.status_changed"
	EventTableMerged        = "table.merged"
	EventTableUnmerged      = "table.unmerged"
	EventTableCalling       = "table.calling"
)

const aggregateTypeTable = "Table"

// TableStatusChangedEvent is emitted whenever the occupancy status changes
type TableStatusChangedEvent struct {
	shared.BaseDomainEvent
	TableName string      `json:"table_name"`
	Status    TableStatus `json:"status"`
}

// NewTableStatusChangedEvent creates a TableStatusChangedEvent
func NewTableStatusChangedEvent(t *Table) *TableStatusChangedEvent {
	return &TableStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTableStatusChanged, aggregateTypeTable, t.ID),
		TableName:       t.Name,
		Status:          t.Status,
	}
}

// TableMergedEvent is emitted when a child is merged into a master
type TableMergedEvent struct {
	shared.BaseDomainEvent
	TableName string    `json:"table_name"`
	ChildID   uuid.UUID `json:"child_id"`
}

// NewTableMergedEvent creates a TableMergedEvent
func NewTableMergedEvent(t *Table, childID uuid.UUID) *TableMergedEvent {
	return &TableMergedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTableMerged, aggregateTypeTable, t.ID),
		TableName:       t.Name,
		ChildID:         childID,
	}
}

// TableUnmergedEvent is emitted when a child is detached from a master
type TableUnmergedEvent struct {
	shared.BaseDomainEvent
	TableName string    `json:"table_name"`
	ChildID   uuid.UUID `json:"child_id"`
}

// NewTableUnmergedEvent creates a TableUnmergedEvent
func NewTableUnmergedEvent(t *Table, childID uuid.UUID) *TableUnmergedEvent {
	return &TableUnmergedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTableUnmerged, aggregateTypeTable, t.ID),
		TableName:       t.Name,
		ChildID:         childID,
	}
}

// TableCallingEvent is emitted when guests ring the call bell
type TableCallingEvent struct {
	shared.BaseDomainEvent
	TableName string `json:"table_name"`
}

// NewTableCallingEvent creates a TableCallingEvent
func NewTableCallingEvent(t *Table) *TableCallingEvent {
	return &TableCallingEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTableCalling, aggregateTypeTable, t.ID),
		TableName:       t.Name,
	}
}
