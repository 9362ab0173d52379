package loyalty

import (
	"github.com/floorops/backend/internal/domain/shared"
)

// Event type constants for the loyalty context
const (
	EventPointsChanged  = "loyalty.points_changed"
	EventCouponRedeemed = "loyalty.coupon_redeemed"
)

const aggregateTypeCustomer = "Customer"

// PointsChangedEvent is emitted after every point mutation
type PointsChangedEvent struct {
	shared.BaseDomainEvent
	CustomerName string `json:"customer_name"`
	Delta        int64  `json:"delta"`
	Points       int64  `json:"points"`
	Tier         Tier   `json:"tier"`
}

// NewPointsChangedEvent creates a PointsChangedEvent
func NewPointsChangedEvent(c *Customer, delta int64) *PointsChangedEvent {
	return &PointsChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPointsChanged, aggregateTypeCustomer, c.ID),
		CustomerName:    c.Name,
		Delta:           delta,
		Points:          c.Points,
		Tier:            c.Tier,
	}
}

// CouponRedeemedEvent is emitted when a customer redeems a coupon
type CouponRedeemedEvent struct {
	shared.BaseDomainEvent
	CustomerName string `json:"customer_name"`
	CouponCode   string `json:"coupon_code"`
	PointCost    int64  `json:"point_cost"`
}

// NewCouponRedeemedEvent creates a CouponRedeemedEvent
func NewCouponRedeemedEvent(c *Customer, coupon *Coupon) *CouponRedeemedEvent {
	return &CouponRedeemedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventCouponRedeemed, aggregateTypeCustomer, c.ID),
		CustomerName:    c.Name,
		CouponCode:      coupon.Code,
		PointCost:       coupon.PointCost,
	}
}
