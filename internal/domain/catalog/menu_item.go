package catalog

import (
	"time"

	"github.com/floorops/backend/internal/domain/shared"
	"github.com/floorops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecipeLine maps one inventory item to the quantity consumed per sold unit
type RecipeLine struct {
	InventoryItemID uuid.UUID            `json:"inventory_item_id"`
	QuantityPerUnit valueobject.Quantity `json:"quantity_per_unit"`
}

// NewRecipeLine creates a recipe line
func NewRecipeLine(inventoryItemID uuid.UUID, quantityPerUnit valueobject.Quantity) (RecipeLine, error) {
	if inventoryItemID == uuid.Nil {
		return RecipeLine{}, shared.NewDomainError("INVALID_INVENTORY_ITEM", "Inventory item ID cannot be empty")
	}
	if !quantityPerUnit.IsPositive() {
		return RecipeLine{}, shared.NewDomainError("INVALID_QUANTITY", "Quantity per unit must be positive")
	}
	return RecipeLine{
		InventoryItemID: inventoryItemID,
		QuantityPerUnit: quantityPerUnit,
	}, nil
}

// MenuItem represents a sellable item on the menu.
// It is owned by the menu catalog; the order lifecycle reads it to snapshot
// name/price onto order items and to resolve stations and recipes.
type MenuItem struct {
	shared.BaseAggregateRoot
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	CategoryID      uuid.UUID       `json:"category_id"`
	CategoryName    string          `json:"category_name"`
	StationOverride *Station        `json:"station_override,omitempty"`
	Recipe          []RecipeLine    `json:"recipe,omitempty"`
	IsAvailable     bool            `json:"is_available"`
}

// NewMenuItem creates a new menu item
func NewMenuItem(name string, price valueobject.Money, categoryID uuid.UUID, categoryName string) (*MenuItem, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Menu item name cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Menu item price cannot be negative")
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category ID cannot be empty")
	}

	return &MenuItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Price:             price.Amount(),
		CategoryID:        categoryID,
		CategoryName:      categoryName,
		Recipe:            make([]RecipeLine, 0),
		IsAvailable:       true,
	}, nil
}

// SetStationOverride pins the item to a specific station regardless of category
func (m *MenuItem) SetStationOverride(station Station) error {
	if !station.IsValid() {
		return shared.NewDomainError("INVALID_STATION", "Unknown station")
	}
	m.StationOverride = &station
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
	return nil
}

// ClearStationOverride removes the station override, falling back to the
// category mapping
func (m *MenuItem) ClearStationOverride() {
	m.StationOverride = nil
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// SetRecipe replaces the item's recipe. The order of lines is preserved.
func (m *MenuItem) SetRecipe(lines []RecipeLine) error {
	seen := make(map[uuid.UUID]bool, len(lines))
	for _, line := range lines {
		if line.InventoryItemID == uuid.Nil {
			return shared.NewDomainError("INVALID_INVENTORY_ITEM", "Inventory item ID cannot be empty")
		}
		if !line.QuantityPerUnit.IsPositive() {
			return shared.NewDomainError("INVALID_QUANTITY", "Quantity per unit must be positive")
		}
		if seen[line.InventoryItemID] {
			return shared.NewDomainError("DUPLICATE_RECIPE_LINE", "Inventory item appears twice in recipe")
		}
		seen[line.InventoryItemID] = true
	}

	m.Recipe = append(make([]RecipeLine, 0, len(lines)), lines...)
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
	return nil
}

// UpdatePrice updates the sale price
func (m *MenuItem) UpdatePrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Menu item price cannot be negative")
	}
	m.Price = price.Amount()
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
	return nil
}

// Rename updates the item name
func (m *MenuItem) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Menu item name cannot be empty")
	}
	m.Name = name
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
	return nil
}

// SetAvailability marks the item sellable or not
func (m *MenuItem) SetAvailability(available bool) {
	m.IsAvailable = available
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// HasRecipe returns true if the item consumes inventory when served
func (m *MenuItem) HasRecipe() bool {
	return len(m.Recipe) > 0
}

// GetPriceMoney returns the price as a Money value object
func (m *MenuItem) GetPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(m.Price)
}
