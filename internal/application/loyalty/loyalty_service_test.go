package loyalty

import (
	"context"
	"testing"

	"github.com/floorops/backend/internal/domain/loyalty"
	"github.com/floorops/backend/internal/infrastructure/memstore"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) *LoyaltyService {
	t.Helper()
	return NewLoyaltyService(
		memstore.NewCustomerRepository(),
		memstore.NewCouponRepository(),
		nil,
		zap.NewNop(),
		10,
	)
}

func TestLoyaltyService_CreateCustomer(t *testing.T) {
	t.Run("phone numbers are unique", func(t *testing.T) {
		svc := newTestService(t)
		ctx := context.Background()

		_, err := svc.CreateCustomer(ctx, "Alice", "555-0100")
		require.NoError(t, err)

		_, err = svc.CreateCustomer(ctx, "Impostor", "555-0100")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("empty phone never collides", func(t *testing.T) {
		svc := newTestService(t)
		ctx := context.Background()

		_, err := svc.CreateCustomer(ctx, "Alice", "")
		require.NoError(t, err)
		_, err = svc.CreateCustomer(ctx, "Bob", "")
		require.NoError(t, err)
	})
}

func TestLoyaltyService_PointsForAmount(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name     string
		amount   decimal.Decimal
		expected int64
	}{
		{"whole amount", decimal.NewFromInt(25), 250},
		{"fractional units truncate", decimal.NewFromFloat(9.99), 99},
		{"zero", decimal.Zero, 0},
		{"negative clamps to zero", decimal.NewFromInt(-5), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, svc.PointsForAmount(tt.amount))
		})
	}
}

func TestLoyaltyService_AwardAndReverse(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	customer, err := svc.CreateCustomer(ctx, "Alice", "555-0100")
	require.NoError(t, err)

	awarded, err := svc.AwardAndRecord(ctx, customer.ID, 500, 200)
	require.NoError(t, err)
	assert.Equal(t, int64(300), awarded.Points)
	assert.Equal(t, 1, awarded.VisitCount)

	reversed, err := svc.ReverseOnVoid(ctx, customer.ID, 500, 200)
	require.NoError(t, err)
	assert.Equal(t, int64(0), reversed.Points)
	assert.Equal(t, 0, reversed.VisitCount)
}

func TestLoyaltyService_AwardUnknownCustomer(t *testing.T) {
	svc := newTestService(t)

	customer, err := svc.AwardAndRecord(context.Background(), uuid.New(), 100, 0)
	require.NoError(t, err)
	assert.Nil(t, customer)
}

func TestLoyaltyService_RedeemCoupon(t *testing.T) {
	setup := func(t *testing.T) (*LoyaltyService, context.Context, *loyalty.Customer, *loyalty.Coupon) {
		t.Helper()
		svc := newTestService(t)
		ctx := context.Background()
		customer, err := svc.CreateCustomer(ctx, "Alice", "555-0100")
		require.NoError(t, err)
		coupon, err := svc.CreateCoupon(ctx, "SAVE5", loyalty.CouponTypeAmount, decimal.NewFromInt(5), 300)
		require.NoError(t, err)
		return svc, ctx, customer, coupon
	}

	t.Run("successful redemption debits points and grants the coupon", func(t *testing.T) {
		svc, ctx, customer, coupon := setup(t)
		_, err := svc.AwardAndRecord(ctx, customer.ID, 1000, 0)
		require.NoError(t, err)

		result, err := svc.RedeemCoupon(ctx, customer.ID, coupon.ID)
		require.NoError(t, err)
		assert.True(t, result.Approved)
		assert.Equal(t, int64(700), result.Customer.Points)
		assert.True(t, result.Customer.OwnsCoupon("SAVE5"))
	})

	t.Run("insufficient points declines without error", func(t *testing.T) {
		svc, ctx, customer, coupon := setup(t)

		result, err := svc.RedeemCoupon(ctx, customer.ID, coupon.ID)
		require.NoError(t, err)
		assert.False(t, result.Approved)
		assert.Equal(t, "insufficient points", result.Reason)

		fresh, err := svc.GetCustomer(ctx, customer.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), fresh.Points)
		assert.False(t, fresh.OwnsCoupon("SAVE5"))
	})

	t.Run("inactive coupon declines", func(t *testing.T) {
		svc, ctx, customer, coupon := setup(t)
		_, err := svc.SetCouponActive(ctx, coupon.ID, false)
		require.NoError(t, err)

		result, err := svc.RedeemCoupon(ctx, customer.ID, coupon.ID)
		require.NoError(t, err)
		assert.False(t, result.Approved)
		assert.Equal(t, "coupon is not active", result.Reason)
	})

	t.Run("unknown coupon declines", func(t *testing.T) {
		svc, ctx, customer, _ := setup(t)

		result, err := svc.RedeemCoupon(ctx, customer.ID, uuid.New())
		require.NoError(t, err)
		assert.False(t, result.Approved)
		assert.Equal(t, "coupon not found", result.Reason)
	})
}

func TestLoyaltyService_PriceQuote(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	_, err := svc.CreateCoupon(ctx, "TENOFF", loyalty.CouponTypePercent, decimal.NewFromInt(10), 0)
	require.NoError(t, err)

	t.Run("applies the coupon case-insensitively", func(t *testing.T) {
		breakdown, err := svc.PriceQuote(ctx, decimal.NewFromInt(200), decimal.NewFromInt(10), "tenoff")
		require.NoError(t, err)
		assert.True(t, breakdown.CouponDiscount.Equal(decimal.NewFromInt(20)))
		assert.True(t, breakdown.TotalDiscount.Equal(decimal.NewFromInt(30)))
		assert.True(t, breakdown.FinalAmount.Equal(decimal.NewFromInt(170)))
	})

	t.Run("unknown code prices as no coupon", func(t *testing.T) {
		breakdown, err := svc.PriceQuote(ctx, decimal.NewFromInt(200), decimal.Zero, "GHOST")
		require.NoError(t, err)
		assert.True(t, breakdown.CouponDiscount.IsZero())
		assert.True(t, breakdown.FinalAmount.Equal(decimal.NewFromInt(200)))
	})

	t.Run("deactivated code prices as no coupon", func(t *testing.T) {
		coupons, err := svc.ListCoupons(ctx)
		require.NoError(t, err)
		require.Len(t, coupons, 1)
		_, err = svc.SetCouponActive(ctx, coupons[0].ID, false)
		require.NoError(t, err)

		breakdown, err := svc.PriceQuote(ctx, decimal.NewFromInt(200), decimal.Zero, "TENOFF")
		require.NoError(t, err)
		assert.True(t, breakdown.CouponDiscount.IsZero())
	})
}

func TestLoyaltyService_CreateCoupon(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateCoupon(ctx, "WELCOME", loyalty.CouponTypeAmount, decimal.NewFromInt(5), 0)
	require.NoError(t, err)

	// Codes are unique case-insensitively
	_, err = svc.CreateCoupon(ctx, "welcome", loyalty.CouponTypeAmount, decimal.NewFromInt(5), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}
