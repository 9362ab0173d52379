package handler

import (
	"context"

	tableapp "github.com/floorops/backend/internal/application/table"
	"github.com/floorops/backend/internal/domain/table"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TableHandler handles floor topology endpoints: zones, tables, merges,
// transfers and the call bell
type TableHandler struct {
	BaseHandler
	tableService *tableapp.TableService
}

// NewTableHandler creates a new TableHandler
func NewTableHandler(tableService *tableapp.TableService) *TableHandler {
	return &TableHandler{tableService: tableService}
}

// RegisterRoutes registers table and zone routes
func (h *TableHandler) RegisterRoutes(rg *gin.RouterGroup) {
	zones := rg.Group("/zones")
	{
		zones.POST("", h.CreateZone)
		zones.GET("", h.ListZones)
		zones.DELETE("/:id", h.DeleteZone)
	}

	tables := rg.Group("/tables")
	{
		tables.POST("", h.CreateTable)
		tables.GET("", h.ListTables)
		tables.GET("/calling", h.ListCalling)
		tables.GET("/:id", h.GetTable)
		tables.DELETE("/:id", h.DeleteTable)
		tables.POST("/:id/merge", h.Merge)
		tables.POST("/:id/unmerge", h.Unmerge)
		tables.POST("/:id/unmerge-all", h.UnmergeAll)
		tables.POST("/:id/transfer", h.Transfer)
		tables.POST("/:id/free", h.Free)
		tables.PUT("/:id/calling", h.SetCalling)
	}
}

// CreateZoneRequest is the request body for a new zone
type CreateZoneRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CreateZone creates a floor zone
func (h *TableHandler) CreateZone(c *gin.Context) {
	var req CreateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	zone, err := h.tableService.CreateZone(c.Request.Context(), req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, zone)
}

// ListZones returns every zone
func (h *TableHandler) ListZones(c *gin.Context) {
	zones, err := h.tableService.ListZones(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, zones)
}

// DeleteZone removes a zone with no tables left in it
func (h *TableHandler) DeleteZone(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.tableService.DeleteZone(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateTableRequest is the request body for a new table
type CreateTableRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	Zone      string `json:"zone" binding:"required,min=1,max=100"`
	SeatCount int    `json:"seat_count" binding:"required,min=1"`
}

// CreateTable creates a table in an existing zone
func (h *TableHandler) CreateTable(c *gin.Context) {
	var req CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	t, err := h.tableService.CreateTable(c.Request.Context(), req.Name, req.Zone, req.SeatCount)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, t)
}

// ListTables returns tables, optionally filtered by ?zone=
func (h *TableHandler) ListTables(c *gin.Context) {
	tables, err := h.tableService.ListTables(c.Request.Context(), c.Query("zone"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tables)
}

// ListCalling returns every table with the call bell raised
func (h *TableHandler) ListCalling(c *gin.Context) {
	tables, err := h.tableService.ListCallingTables(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tables)
}

// GetTable returns one table
func (h *TableHandler) GetTable(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	t, err := h.tableService.GetTable(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if t == nil {
		h.NotFound(c, "Table not found")
		return
	}
	h.Success(c, t)
}

// DeleteTable removes an unmerged, unoccupied table
func (h *TableHandler) DeleteTable(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.tableService.DeleteTable(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// TablePairRequest names the other table of a merge or transfer
type TablePairRequest struct {
	TableID string `json:"table_id" binding:"required,uuid"`
}

// Merge attaches a slave table to this master
func (h *TableHandler) Merge(c *gin.Context) {
	h.pairOp(c, h.tableService.MergeTables)
}

// Unmerge detaches one slave from this master
func (h *TableHandler) Unmerge(c *gin.Context) {
	h.pairOp(c, h.tableService.UnmergeTable)
}

// Transfer moves this table's party and orders to another table
func (h *TableHandler) Transfer(c *gin.Context) {
	h.pairOp(c, h.tableService.TransferTable)
}

// pairOp binds the shared shape of merge, unmerge and transfer: a path
// table plus a body table
func (h *TableHandler) pairOp(c *gin.Context, op func(ctx context.Context, a, b uuid.UUID) (*table.Table, error)) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req TablePairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	t, err := op(c.Request.Context(), id, uuid.MustParse(req.TableID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, t)
}

// UnmergeAll detaches every slave from this master
func (h *TableHandler) UnmergeAll(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	t, err := h.tableService.UnmergeAll(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, t)
}

// Free attempts to flip the table back to AVAILABLE when no active order
// holds it. Responds with whether the table was actually freed.
func (h *TableHandler) Free(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	freed, err := h.tableService.TryFreeTable(c.Request.Context(), id, uuid.Nil)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"freed": freed})
}

// SetCallingRequest is the request body for the call bell
type SetCallingRequest struct {
	Calling *bool `json:"calling" binding:"required"`
}

// SetCalling raises or clears the table's call bell
func (h *TableHandler) SetCalling(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req SetCallingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	t, err := h.tableService.SetCalling(c.Request.Context(), id, *req.Calling)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, t)
}
