package handler

import (
	inventoryapp "github.com/floorops/backend/internal/application/inventory"
	"github.com/floorops/backend/internal/domain/shared/valueobject"
	"github.com/gin-gonic/gin"
)

// InventoryHandler handles inventory ledger endpoints
type InventoryHandler struct {
	BaseHandler
	ledger *inventoryapp.LedgerService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(ledger *inventoryapp.LedgerService) *InventoryHandler {
	return &InventoryHandler{ledger: ledger}
}

// RegisterRoutes registers inventory routes
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	items := rg.Group("/inventory")
	{
		items.POST("", h.Create)
		items.GET("", h.List)
		items.GET("/low-stock", h.ListLowStock)
		items.GET("/:id", h.Get)
		items.PUT("/:id", h.Update)
		items.PUT("/:id/quantity", h.Adjust)
		items.DELETE("/:id", h.Delete)
	}
}

// CreateInventoryItemRequest is the request body for a new inventory item
type CreateInventoryItemRequest struct {
	Name            string  `json:"name" binding:"required,min=1,max=200"`
	Unit            string  `json:"unit" binding:"required,min=1,max=20"`
	InitialQuantity float64 `json:"initial_quantity"`
	MinQuantity     float64 `json:"min_quantity" binding:"min=0"`
	CostPerUnit     float64 `json:"cost_per_unit" binding:"min=0"`
}

// Create registers a new inventory item with an opening ledger entry
func (h *InventoryHandler) Create(c *gin.Context) {
	var req CreateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	item, err := h.ledger.CreateItem(c.Request.Context(), inventoryapp.CreateItemRequest{
		Name:            req.Name,
		Unit:            req.Unit,
		InitialQuantity: toDecimal(req.InitialQuantity),
		MinQuantity:     toDecimal(req.MinQuantity),
		CostPerUnit:     valueobject.NewMoneyUSDFromFloat(req.CostPerUnit),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// List returns every inventory item
func (h *InventoryHandler) List(c *gin.Context) {
	items, err := h.ledger.ListItems(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// ListLowStock returns items at or below their minimum quantity
func (h *InventoryHandler) ListLowStock(c *gin.Context) {
	items, err := h.ledger.ListLowStock(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// Get returns one inventory item with its full ledger
func (h *InventoryHandler) Get(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.ledger.GetItem(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if item == nil {
		h.NotFound(c, "Inventory item not found")
		return
	}
	h.Success(c, item)
}

// UpdateInventoryItemRequest is the request body for item configuration
type UpdateInventoryItemRequest struct {
	MinQuantity *float64 `json:"min_quantity" binding:"omitempty,min=0"`
	CostPerUnit *float64 `json:"cost_per_unit" binding:"omitempty,min=0"`
}

// Update changes an item's minimum threshold or unit cost
func (h *InventoryHandler) Update(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	appReq := inventoryapp.UpdateItemRequest{}
	if req.MinQuantity != nil {
		min := toDecimal(*req.MinQuantity)
		appReq.MinQuantity = &min
	}
	if req.CostPerUnit != nil {
		cost := valueobject.NewMoneyUSDFromFloat(*req.CostPerUnit)
		appReq.CostPerUnit = &cost
	}

	item, err := h.ledger.UpdateItem(c.Request.Context(), id, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if item == nil {
		h.NotFound(c, "Inventory item not found")
		return
	}
	h.Success(c, item)
}

// AdjustQuantityRequest is the request body for a manual stock count
type AdjustQuantityRequest struct {
	NewQuantity float64 `json:"new_quantity"`
	Reason      string  `json:"reason" binding:"required,max=500"`
}

// Adjust sets an item's on-hand quantity with a manual ledger entry
func (h *InventoryHandler) Adjust(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req AdjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	item, err := h.ledger.AdjustStock(c.Request.Context(), id, toDecimal(req.NewQuantity), req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if item == nil {
		h.NotFound(c, "Inventory item not found")
		return
	}
	h.Success(c, item)
}

// Delete removes an inventory item and its ledger
func (h *InventoryHandler) Delete(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ledger.DeleteItem(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
