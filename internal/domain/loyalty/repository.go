package loyalty

import (
	"context"

	"github.com/floorops/backend/internal/domain/shared"
)

// CustomerRepository persists loyalty customers
type CustomerRepository interface {
	shared.Repository[Customer]
	FindByPhone(ctx context.Context, phone string) (*Customer, error)
}

// CouponRepository persists coupons
type CouponRepository interface {
	shared.Repository[Coupon]
	// FindByCode matches a coupon code case-insensitively,
	// returning (nil, nil) when unknown
	FindByCode(ctx context.Context, code string) (*Coupon, error)
}
