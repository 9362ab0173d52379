package handler

import (
	orderapp "github.com/floorops/backend/internal/application/order"
	"github.com/floorops/backend/internal/domain/catalog"
	"github.com/floorops/backend/internal/domain/order"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderHandler handles order lifecycle endpoints
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST("", h.Create)
		orders.GET("", h.List)
		orders.GET("/:id", h.Get)
		orders.PUT("/:id/items/:index/status", h.SetItemStatus)
		orders.PUT("/:id/stations/:station/status", h.SetStationStatus)
		orders.POST("/:id/checkout", h.Checkout)
		orders.POST("/:id/void", h.Void)
		orders.DELETE("/:id/items/:index", h.RemoveItem)
	}
}

// CreateOrderItemRequest is one requested order line
type CreateOrderItemRequest struct {
	MenuID   string `json:"menu_id" binding:"required,uuid"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
	Note     string `json:"note" binding:"max=500"`
}

// CreateOrderRequest is the request body for opening an order. Omitting
// table_id rings the order up as takeout.
type CreateOrderRequest struct {
	TableID       *string                  `json:"table_id" binding:"omitempty,uuid"`
	Items         []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
	CustomerID    *string                  `json:"customer_id" binding:"omitempty,uuid"`
	InstantSale   bool                     `json:"instant_sale"`
	PaymentMethod string                   `json:"payment_method" binding:"max=50"`
}

// Create opens a new order
func (h *OrderHandler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	appReq := orderapp.CreateOrderRequest{
		InstantSale:   req.InstantSale,
		PaymentMethod: req.PaymentMethod,
	}
	if req.TableID != nil {
		id := uuid.MustParse(*req.TableID)
		appReq.TableID = &id
	}
	if req.CustomerID != nil {
		id := uuid.MustParse(*req.CustomerID)
		appReq.CustomerID = &id
	}
	for _, item := range req.Items {
		appReq.Items = append(appReq.Items, orderapp.CreateOrderItemInput{
			MenuID:   uuid.MustParse(item.MenuID),
			Quantity: item.Quantity,
			Note:     item.Note,
		})
	}

	o, err := h.orderService.CreateOrder(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, o)
}

// List returns orders, optionally filtered by ?status=
func (h *OrderHandler) List(c *gin.Context) {
	status := order.OrderStatus(c.Query("status"))
	if status != "" && !status.IsValid() {
		h.BadRequest(c, "Invalid status filter")
		return
	}

	orders, err := h.orderService.ListOrders(c.Request.Context(), status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// Get returns one order
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	o, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if o == nil {
		h.NotFound(c, "Order not found")
		return
	}
	h.Success(c, o)
}

// SetStatusRequest is the request body for item and station transitions
type SetStatusRequest struct {
	Status string `json:"status" binding:"required,item_status"`
}

// SetItemStatus transitions a single order item
func (h *OrderHandler) SetItemStatus(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	index, ok := h.parseIndexParam(c)
	if !ok {
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	o, err := h.orderService.SetItemStatus(c.Request.Context(), id, index, order.ItemStatus(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if o == nil {
		h.NotFound(c, "Order not found")
		return
	}
	h.Success(c, o)
}

// SetStationStatus bulk-transitions every item on one station
func (h *OrderHandler) SetStationStatus(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	station := catalog.Station(c.Param("station"))
	if !station.IsValid() {
		h.BadRequest(c, "Invalid station parameter")
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	o, err := h.orderService.SetStationStatus(c.Request.Context(), id, station, order.ItemStatus(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if o == nil {
		h.NotFound(c, "Order not found")
		return
	}
	h.Success(c, o)
}

// CheckoutRequest is the request body for paying an order
type CheckoutRequest struct {
	PaymentMethod  string  `json:"payment_method" binding:"required,max=50"`
	FlatDiscount   float64 `json:"flat_discount" binding:"min=0"`
	CouponCode     string  `json:"coupon_code" binding:"max=50"`
	PointsRedeemed int64   `json:"points_redeemed" binding:"min=0"`
}

// CheckoutResponse pairs the completed order with its pricing breakdown
type CheckoutResponse struct {
	Order     *order.Order `json:"order"`
	Breakdown any          `json:"breakdown"`
}

// Checkout prices and completes an order
func (h *OrderHandler) Checkout(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	o, breakdown, err := h.orderService.Checkout(c.Request.Context(), id, orderapp.CheckoutRequest{
		PaymentMethod:  req.PaymentMethod,
		FlatDiscount:   decimal.NewFromFloat(req.FlatDiscount),
		CouponCode:     req.CouponCode,
		PointsRedeemed: req.PointsRedeemed,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if o == nil {
		h.NotFound(c, "Order not found")
		return
	}
	h.Success(c, CheckoutResponse{Order: o, Breakdown: breakdown})
}

// VoidRequest is the request body for voiding an order
type VoidRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// Void cancels an order with a reason
func (h *OrderHandler) Void(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req VoidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	o, err := h.orderService.VoidOrder(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if o == nil {
		h.NotFound(c, "Order not found")
		return
	}
	h.Success(c, o)
}

// RemoveItem deletes one line from a live order
func (h *OrderHandler) RemoveItem(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	index, ok := h.parseIndexParam(c)
	if !ok {
		return
	}

	o, err := h.orderService.RemoveOrderItem(c.Request.Context(), id, index)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if o == nil {
		h.NotFound(c, "Order not found")
		return
	}
	h.Success(c, o)
}
