package table

import (
	"time"

	"github.com/floorops/backend/internal/domain/shared"
)

// Zone is a display grouping of tables. Tables reference a zone by name.
type Zone struct {
	shared.BaseAggregateRoot
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

// NewZone creates a new zone
func NewZone(name string) (*Zone, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Zone name cannot be empty")
	}
	return &Zone{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
	}, nil
}

// Rename updates the zone name
func (z *Zone) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Zone name cannot be empty")
	}
	z.Name = name
	z.UpdatedAt = time.Now()
	z.IncrementVersion()
	return nil
}
