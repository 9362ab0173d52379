package handler

import (
	"context"
	"time"

	tableapp "github.com/floorops/backend/internal/application/table"
	"github.com/floorops/backend/internal/domain/table"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BookingHandler handles reservation endpoints
type BookingHandler struct {
	BaseHandler
	bookingService *tableapp.BookingService
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookingService *tableapp.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// RegisterRoutes registers booking routes
func (h *BookingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings")
	{
		bookings.POST("", h.Create)
		bookings.GET("", h.List)
		bookings.GET("/:id", h.Get)
		bookings.POST("/:id/confirm", h.Confirm)
		bookings.POST("/:id/cancel", h.Cancel)
		bookings.POST("/:id/check-in", h.CheckIn)
	}
}

// CreateBookingRequest is the request body for a new booking
type CreateBookingRequest struct {
	CustomerName string    `json:"customer_name" binding:"required,min=1,max=200"`
	Phone        string    `json:"phone" binding:"max=50"`
	BookedFor    time.Time `json:"booked_for" binding:"required"`
	GuestCount   int       `json:"guest_count" binding:"required,min=1"`
	TableID      *string   `json:"table_id" binding:"omitempty,uuid"`
}

// Create records a pending booking
func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	appReq := tableapp.CreateBookingRequest{
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		BookedFor:    req.BookedFor,
		GuestCount:   req.GuestCount,
	}
	if req.TableID != nil {
		id := uuid.MustParse(*req.TableID)
		appReq.TableID = &id
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, booking)
}

// List returns bookings, optionally filtered by ?status=
func (h *BookingHandler) List(c *gin.Context) {
	status := table.BookingStatus(c.Query("status"))
	if status != "" && !status.IsValid() {
		h.BadRequest(c, "Invalid status filter")
		return
	}

	bookings, err := h.bookingService.ListBookings(c.Request.Context(), status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, bookings)
}

// Get returns one booking
func (h *BookingHandler) Get(c *gin.Context) {
	h.bookingOp(c, h.bookingService.GetBooking)
}

// Confirm confirms a pending booking, reserving its table
func (h *BookingHandler) Confirm(c *gin.Context) {
	h.bookingOp(c, h.bookingService.ConfirmBooking)
}

// Cancel cancels a booking, releasing a still-reserved table
func (h *BookingHandler) Cancel(c *gin.Context) {
	h.bookingOp(c, h.bookingService.CancelBooking)
}

// CheckIn seats a confirmed booking's party
func (h *BookingHandler) CheckIn(c *gin.Context) {
	h.bookingOp(c, h.bookingService.CheckIn)
}

func (h *BookingHandler) bookingOp(c *gin.Context, op func(ctx context.Context, id uuid.UUID) (*table.Booking, error)) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	booking, err := op(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if booking == nil {
		h.NotFound(c, "Booking not found")
		return
	}
	h.Success(c, booking)
}
