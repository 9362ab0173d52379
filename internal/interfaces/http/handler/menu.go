package handler

import (
	catalogapp "github.com/floorops/backend/internal/application/catalog"
	"github.com/floorops/backend/internal/domain/catalog"
	"github.com/floorops/backend/internal/domain/shared/valueobject"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MenuHandler handles menu catalog endpoints: categories, menu items and
// their recipes
type MenuHandler struct {
	BaseHandler
	catalogService *catalogapp.CatalogService
}

// NewMenuHandler creates a new MenuHandler
func NewMenuHandler(catalogService *catalogapp.CatalogService) *MenuHandler {
	return &MenuHandler{catalogService: catalogService}
}

// RegisterRoutes registers menu routes
func (h *MenuHandler) RegisterRoutes(rg *gin.RouterGroup) {
	categories := rg.Group("/menu/categories")
	{
		categories.POST("", h.CreateCategory)
		categories.GET("", h.ListCategories)
		categories.DELETE("/:id", h.DeleteCategory)
	}

	items := rg.Group("/menu/items")
	{
		items.POST("", h.CreateItem)
		items.GET("", h.ListItems)
		items.PUT("/:id/recipe", h.SetRecipe)
		items.DELETE("/:id", h.DeleteItem)
	}
}

// CreateCategoryRequest is the request body for a new menu category
type CreateCategoryRequest struct {
	Name           string `json:"name" binding:"required,min=1,max=100"`
	DefaultStation string `json:"default_station" binding:"required,station"`
}

// CreateCategory creates a menu category with a default station
func (h *MenuHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), req.Name, catalog.Station(req.DefaultStation))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, category)
}

// ListCategories returns every menu category
func (h *MenuHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// DeleteCategory removes a category with no menu items left in it
func (h *MenuHandler) DeleteCategory(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteCategory(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RecipeLineRequest is one ingredient line of a recipe
type RecipeLineRequest struct {
	InventoryItemID string  `json:"inventory_item_id" binding:"required,uuid"`
	QuantityPerUnit float64 `json:"quantity_per_unit" binding:"required,gt=0"`
	Unit            string  `json:"unit" binding:"required,min=1,max=20"`
}

// CreateMenuItemRequest is the request body for a new menu item
type CreateMenuItemRequest struct {
	Name            string              `json:"name" binding:"required,min=1,max=200"`
	Price           float64             `json:"price" binding:"min=0"`
	CategoryID      string              `json:"category_id" binding:"required,uuid"`
	StationOverride *string             `json:"station_override" binding:"omitempty,station"`
	Recipe          []RecipeLineRequest `json:"recipe" binding:"omitempty,dive"`
}

// CreateItem creates a menu item in an existing category
func (h *MenuHandler) CreateItem(c *gin.Context) {
	var req CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	input := catalogapp.CreateMenuItemInput{
		Name:       req.Name,
		Price:      valueobject.NewMoneyUSDFromFloat(req.Price),
		CategoryID: uuid.MustParse(req.CategoryID),
	}
	if req.StationOverride != nil {
		station := catalog.Station(*req.StationOverride)
		input.StationOverride = &station
	}
	recipe, err := buildRecipeLines(req.Recipe)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	input.Recipe = recipe

	item, err := h.catalogService.CreateMenuItem(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// ListItems returns every menu item
func (h *MenuHandler) ListItems(c *gin.Context) {
	items, err := h.catalogService.ListMenuItems(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// SetRecipeRequest is the request body for replacing a recipe
type SetRecipeRequest struct {
	Recipe []RecipeLineRequest `json:"recipe" binding:"required,dive"`
}

// SetRecipe replaces a menu item's recipe
func (h *MenuHandler) SetRecipe(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req SetRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	recipe, err := buildRecipeLines(req.Recipe)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	item, err := h.catalogService.SetRecipe(c.Request.Context(), id, recipe)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if item == nil {
		h.NotFound(c, "Menu item not found")
		return
	}
	h.Success(c, item)
}

// DeleteItem removes a menu item
func (h *MenuHandler) DeleteItem(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteMenuItem(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func buildRecipeLines(reqs []RecipeLineRequest) ([]catalog.RecipeLine, error) {
	lines := make([]catalog.RecipeLine, 0, len(reqs))
	for _, r := range reqs {
		qty, err := valueobject.NewQuantity(toDecimal(r.QuantityPerUnit), r.Unit)
		if err != nil {
			return nil, err
		}
		line, err := catalog.NewRecipeLine(uuid.MustParse(r.InventoryItemID), qty)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}
