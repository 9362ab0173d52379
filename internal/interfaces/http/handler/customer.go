package handler

import (
	loyaltyapp "github.com/floorops/backend/internal/application/loyalty"
	"github.com/floorops/backend/internal/domain/loyalty"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CustomerHandler handles loyalty endpoints: customers, coupons, redemption
// and price quotes
type CustomerHandler struct {
	BaseHandler
	loyaltyService *loyaltyapp.LoyaltyService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(loyaltyService *loyaltyapp.LoyaltyService) *CustomerHandler {
	return &CustomerHandler{loyaltyService: loyaltyService}
}

// RegisterRoutes registers loyalty routes
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.POST("", h.Create)
		customers.GET("", h.List)
		customers.GET("/:id", h.Get)
		customers.PUT("/:id", h.Update)
		customers.POST("/:id/redeem", h.Redeem)
	}

	coupons := rg.Group("/coupons")
	{
		coupons.POST("", h.CreateCoupon)
		coupons.GET("", h.ListCoupons)
		coupons.PUT("/:id/active", h.SetCouponActive)
	}

	rg.POST("/pricing/quote", h.PriceQuote)
}

// CreateCustomerRequest is the request body for a new loyalty customer
type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=200"`
	Phone string `json:"phone" binding:"max=50"`
}

// Create registers a loyalty customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	customer, err := h.loyaltyService.CreateCustomer(c.Request.Context(), req.Name, req.Phone)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, customer)
}

// List returns customers, or one customer when ?phone= is given
func (h *CustomerHandler) List(c *gin.Context) {
	if phone := c.Query("phone"); phone != "" {
		customer, err := h.loyaltyService.FindCustomerByPhone(c.Request.Context(), phone)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		if customer == nil {
			h.NotFound(c, "Customer not found")
			return
		}
		h.Success(c, customer)
		return
	}

	customers, err := h.loyaltyService.ListCustomers(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customers)
}

// Get returns one customer
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	customer, err := h.loyaltyService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if customer == nil {
		h.NotFound(c, "Customer not found")
		return
	}
	h.Success(c, customer)
}

// UpdateCustomerRequest is the request body for customer contact details
type UpdateCustomerRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=200"`
	Phone string `json:"phone" binding:"max=50"`
}

// Update changes a customer's contact details
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	customer, err := h.loyaltyService.UpdateCustomer(c.Request.Context(), id, req.Name, req.Phone)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if customer == nil {
		h.NotFound(c, "Customer not found")
		return
	}
	h.Success(c, customer)
}

// RedeemRequest names the coupon being redeemed
type RedeemRequest struct {
	CouponID string `json:"coupon_id" binding:"required,uuid"`
}

// Redeem exchanges the customer's points for a coupon. A decline is a 200
// with approved=false, not an error.
func (h *CustomerHandler) Redeem(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.loyaltyService.RedeemCoupon(c.Request.Context(), id, uuid.MustParse(req.CouponID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// CreateCouponRequest is the request body for a new coupon
type CreateCouponRequest struct {
	Code      string  `json:"code" binding:"required,min=1,max=50"`
	Type      string  `json:"type" binding:"required,oneof=percent amount"`
	Value     float64 `json:"value" binding:"required,gt=0"`
	PointCost int64   `json:"point_cost" binding:"min=0"`
}

// CreateCoupon registers a coupon template
func (h *CustomerHandler) CreateCoupon(c *gin.Context) {
	var req CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	coupon, err := h.loyaltyService.CreateCoupon(
		c.Request.Context(), req.Code, loyalty.CouponType(req.Type), toDecimal(req.Value), req.PointCost)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, coupon)
}

// ListCoupons returns every coupon
func (h *CustomerHandler) ListCoupons(c *gin.Context) {
	coupons, err := h.loyaltyService.ListCoupons(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, coupons)
}

// SetCouponActiveRequest is the request body for toggling a coupon
type SetCouponActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetCouponActive toggles whether a coupon can be redeemed or applied
func (h *CustomerHandler) SetCouponActive(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req SetCouponActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	coupon, err := h.loyaltyService.SetCouponActive(c.Request.Context(), id, *req.Active)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if coupon == nil {
		h.NotFound(c, "Coupon not found")
		return
	}
	h.Success(c, coupon)
}

// PriceQuoteRequest is the request body for a checkout preview
type PriceQuoteRequest struct {
	Subtotal     float64 `json:"subtotal" binding:"min=0"`
	FlatDiscount float64 `json:"flat_discount" binding:"min=0"`
	CouponCode   string  `json:"coupon_code" binding:"max=50"`
}

// PriceQuote previews the discount breakdown for a subtotal without
// touching any order
func (h *CustomerHandler) PriceQuote(c *gin.Context) {
	var req PriceQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	breakdown, err := h.loyaltyService.PriceQuote(
		c.Request.Context(), toDecimal(req.Subtotal), toDecimal(req.FlatDiscount), req.CouponCode)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, breakdown)
}
