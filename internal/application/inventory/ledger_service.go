package inventory

import (
	"context"

	"github.com/floorops/backend/internal/domain/catalog"
	"github.com/floorops/backend/internal/domain/inventory"
	"github.com/floorops/backend/internal/domain/shared"
	"github.com/floorops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// LedgerService owns the inventory ledger. Stock only ever changes through
// this service: recipe deductions when order items are served, restorations
// when served items are unserved or voided, and explicit manual adjustments.
type LedgerService struct {
	repo           inventory.Repository
	menu           catalog.Catalog
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	repo inventory.Repository,
	menu catalog.Catalog,
	eventPublisher shared.EventPublisher,
	logger *zap.Logger,
) *LedgerService {
	return &LedgerService{
		repo:           repo,
		menu:           menu,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// CreateItemRequest carries the fields for a new inventory item
type CreateItemRequest struct {
	Name            string
	Unit            string
	InitialQuantity decimal.Decimal
	MinQuantity     decimal.Decimal
	CostPerUnit     valueobject.Money
}

// CreateItem registers a new inventory item with an opening ledger entry
func (s *LedgerService) CreateItem(ctx context.Context, req CreateItemRequest) (*inventory.InventoryItem, error) {
	item, err := inventory.NewInventoryItem(req.Name, req.Unit, req.InitialQuantity, req.MinQuantity, req.CostPerUnit)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, item); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, item)
	return item, nil
}

// GetItem returns an inventory item with its full ledger, or (nil, nil)
// when unknown
func (s *LedgerService) GetItem(ctx context.Context, id uuid.UUID) (*inventory.InventoryItem, error) {
	return s.repo.FindByID(ctx, id)
}

// ListItems returns every inventory item
func (s *LedgerService) ListItems(ctx context.Context) ([]inventory.InventoryItem, error) {
	return s.repo.FindAll(ctx)
}

// ListLowStock returns items at or below their minimum quantity
func (s *LedgerService) ListLowStock(ctx context.Context) ([]inventory.InventoryItem, error) {
	return s.repo.FindLowStock(ctx)
}

// DeleteItem removes an inventory item and its ledger
func (s *LedgerService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// DeductForItem deducts the recipe of a menu item from stock, scaled by the
// ordered quantity. Menu items without a recipe, and recipe lines pointing at
// unknown inventory ids, deduct nothing. Stock may go negative; the item
// keeps the low-stock flag and a crossing fires a single below-minimum event.
func (s *LedgerService) DeductForItem(ctx context.Context, orderID, menuID uuid.UUID, itemName string, orderedQty int) error {
	return s.applyRecipe(ctx, orderID, menuID, itemName, orderedQty, false)
}

// RestoreForItem returns a previously deducted recipe to stock. Restores
// never raise low-stock notifications.
func (s *LedgerService) RestoreForItem(ctx context.Context, orderID, menuID uuid.UUID, itemName string, orderedQty int) error {
	return s.applyRecipe(ctx, orderID, menuID, itemName, orderedQty, true)
}

func (s *LedgerService) applyRecipe(ctx context.Context, orderID, menuID uuid.UUID, itemName string, orderedQty int, restore bool) error {
	if orderedQty <= 0 {
		return nil
	}

	menuItem, err := s.menu.MenuItem(ctx, menuID)
	if err != nil {
		return err
	}
	if menuItem == nil || !menuItem.HasRecipe() {
		return nil
	}

	qty := decimal.NewFromInt(int64(orderedQty))
	for _, line := range menuItem.Recipe {
		amount := line.QuantityPerUnit.Value().Mul(qty)

		mutated, err := s.repo.Mutate(ctx, line.InventoryItemID, func(item *inventory.InventoryItem) error {
			if restore {
				_, err := item.Restore(amount, orderID, itemName)
				return err
			}
			_, _, err := item.Deduct(amount, orderID, itemName)
			return err
		})
		if err != nil {
			return err
		}
		if mutated == nil {
			s.logger.Warn("recipe line references unknown inventory item",
				zap.String("menu_id", menuID.String()),
				zap.String("inventory_item_id", line.InventoryItemID.String()))
			continue
		}
		s.publishEvents(ctx, mutated)
	}
	return nil
}

// AdjustStock sets an item's on-hand quantity to an absolute value with a
// manual ledger entry. Unknown ids are a no-op returning (nil, nil).
func (s *LedgerService) AdjustStock(ctx context.Context, id uuid.UUID, newQuantity decimal.Decimal, reason string) (*inventory.InventoryItem, error) {
	mutated, err := s.repo.Mutate(ctx, id, func(item *inventory.InventoryItem) error {
		_, err := item.AdjustTo(newQuantity, reason)
		return err
	})
	if err != nil {
		return nil, err
	}
	if mutated == nil {
		return nil, nil
	}
	s.publishEvents(ctx, mutated)
	return mutated, nil
}

// UpdateItemRequest carries the mutable configuration of an inventory item
type UpdateItemRequest struct {
	MinQuantity *decimal.Decimal
	CostPerUnit *valueobject.Money
}

// UpdateItem changes an item's minimum threshold or unit cost
func (s *LedgerService) UpdateItem(ctx context.Context, id uuid.UUID, req UpdateItemRequest) (*inventory.InventoryItem, error) {
	return s.repo.Mutate(ctx, id, func(item *inventory.InventoryItem) error {
		if req.MinQuantity != nil {
			if err := item.SetMinQuantity(*req.MinQuantity); err != nil {
				return err
			}
		}
		if req.CostPerUnit != nil {
			if err := item.SetCostPerUnit(*req.CostPerUnit); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *LedgerService) publishEvents(ctx context.Context, item *inventory.InventoryItem) {
	if s.eventPublisher == nil {
		return
	}
	events := item.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish inventory events", zap.Error(err))
	}
	item.ClearDomainEvents()
}
