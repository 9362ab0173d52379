package loyalty

import (
	"strings"
	"time"

	"github.com/floorops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CouponType determines how a coupon's value is applied to a subtotal
type CouponType string

const (
	CouponTypePercent CouponType = "percent"
	CouponTypeAmount  CouponType = "amount"
)

// IsValid checks if the coupon type is known
func (t CouponType) IsValid() bool {
	return t == CouponTypePercent || t == CouponTypeAmount
}

// Coupon is a redeemable discount definition. Codes are unique
// case-insensitively; they are normalized to upper case on creation.
// PointCost zero means freely applicable; a positive cost must be redeemed
// against a customer's point balance before use.
type Coupon struct {
	shared.BaseAggregateRoot
	Code      string          `json:"code"`
	Type      CouponType      `json:"type"`
	Value     decimal.Decimal `json:"value"`
	PointCost int64           `json:"point_cost"`
	IsActive  bool            `json:"is_active"`
}

// NewCoupon creates an active coupon
func NewCoupon(code string, couponType CouponType, value decimal.Decimal, pointCost int64) (*Coupon, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Coupon code cannot be empty")
	}
	if !couponType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Coupon type must be percent or amount")
	}
	if !value.IsPositive() {
		return nil, shared.NewDomainError("INVALID_VALUE", "Coupon value must be positive")
	}
	if couponType == CouponTypePercent && value.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_VALUE", "Percent coupon cannot exceed 100")
	}
	if pointCost < 0 {
		return nil, shared.NewDomainError("INVALID_POINT_COST", "Point cost cannot be negative")
	}

	return &Coupon{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Type:              couponType,
		Value:             value,
		PointCost:         pointCost,
		IsActive:          true,
	}, nil
}

// Matches reports whether the given code refers to this coupon,
// case-insensitively
func (c *Coupon) Matches(code string) bool {
	return strings.EqualFold(c.Code, code)
}

// Activate enables the coupon
func (c *Coupon) Activate() {
	c.setActive(true)
}

// Deactivate disables the coupon without deleting it
func (c *Coupon) Deactivate() {
	c.setActive(false)
}

func (c *Coupon) setActive(active bool) {
	if c.IsActive == active {
		return
	}
	c.IsActive = active
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// DiscountOn computes the discount this coupon grants against a subtotal
func (c *Coupon) DiscountOn(subtotal decimal.Decimal) decimal.Decimal {
	if c.Type == CouponTypePercent {
		return subtotal.Mul(c.Value).Div(decimal.NewFromInt(100)).Round(2)
	}
	return c.Value
}
