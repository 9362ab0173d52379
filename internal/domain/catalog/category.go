package catalog

import (
	"time"

	"github.com/floorops/backend/internal/domain/shared"
)

// MenuCategory groups menu items and carries the default station for them
type MenuCategory struct {
	shared.BaseAggregateRoot
	Name           string  `json:"name"`
	DefaultStation Station `json:"default_station"`
	SortOrder      int     `json:"sort_order"`
}

// NewMenuCategory creates a new menu category
func NewMenuCategory(name string, defaultStation Station) (*MenuCategory, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if !defaultStation.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATION", "Unknown station")
	}

	return &MenuCategory{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		DefaultStation:    defaultStation,
	}, nil
}

// Rename updates the category name
func (c *MenuCategory) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// SetDefaultStation updates the station items of this category route to
func (c *MenuCategory) SetDefaultStation(station Station) error {
	if !station.IsValid() {
		return shared.NewDomainError("INVALID_STATION", "Unknown station")
	}
	c.DefaultStation = station
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}
