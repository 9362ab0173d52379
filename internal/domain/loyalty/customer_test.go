package loyalty

import (
	"testing"

	"github.com/floorops/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestCustomer(t *testing.T) *Customer {
	t.Helper()
	c, err := NewCustomer("Alice", "555-0100")
	require.NoError(t, err)
	return c
}

func TestTierForPoints(t *testing.T) {
	tests := []struct {
		name     string
		points   int64
		expected Tier
	}{
		{"zero points", 0, TierBronze},
		{"just below silver", 99_999, TierBronze},
		{"exactly silver", 100_000, TierSilver},
		{"just below gold", 499_999, TierSilver},
		{"exactly gold", 500_000, TierGold},
		{"well past gold", 2_000_000, TierGold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TierForPoints(tt.points))
		})
	}
}

func TestCustomer_ApplyLoyalty(t *testing.T) {
	t.Run("earns points and promotes tier", func(t *testing.T) {
		c := createTestCustomer(t)

		c.ApplyLoyalty(100_000, 0, true)

		assert.Equal(t, int64(100_000), c.Points)
		assert.Equal(t, TierSilver, c.Tier)
		assert.Equal(t, 1, c.VisitCount)
	})

	t.Run("redeemed exceeding balance floors at zero", func(t *testing.T) {
		c := createTestCustomer(t)
		c.ApplyLoyalty(50, 0, false)

		c.ApplyLoyalty(0, 500, false)

		assert.Equal(t, int64(0), c.Points)
		assert.Equal(t, TierBronze, c.Tier)
		assert.Equal(t, 0, c.VisitCount)
	})
}

func TestCustomer_ReverseLoyalty(t *testing.T) {
	t.Run("undoes a completed sale", func(t *testing.T) {
		c := createTestCustomer(t)
		c.ApplyLoyalty(300, 100, true)
		require.Equal(t, int64(200), c.Points)

		c.ReverseLoyalty(300, 100, true)

		assert.Equal(t, int64(0), c.Points)
		assert.Equal(t, 0, c.VisitCount)
	})

	t.Run("floors at zero and never underflows visits", func(t *testing.T) {
		c := createTestCustomer(t)
		c.ApplyLoyalty(50, 0, false)

		c.ReverseLoyalty(500, 0, true)

		assert.Equal(t, int64(0), c.Points)
		assert.Equal(t, 0, c.VisitCount)
	})

	t.Run("demotes tier when points fall", func(t *testing.T) {
		c := createTestCustomer(t)
		c.ApplyLoyalty(600_000, 0, false)
		require.Equal(t, TierGold, c.Tier)

		c.ReverseLoyalty(550_000, 0, false)

		assert.Equal(t, TierBronze, c.Tier)
	})
}

func TestCustomer_RedeemPoints(t *testing.T) {
	t.Run("debits the balance", func(t *testing.T) {
		c := createTestCustomer(t)
		c.ApplyLoyalty(1000, 0, false)

		require.NoError(t, c.RedeemPoints(400))
		assert.Equal(t, int64(600), c.Points)
	})

	t.Run("insufficient balance declines without mutation", func(t *testing.T) {
		c := createTestCustomer(t)
		c.ApplyLoyalty(100, 0, false)

		err := c.RedeemPoints(400)
		require.ErrorIs(t, err, shared.ErrInsufficientPoints)
		assert.Equal(t, int64(100), c.Points)
	})

	t.Run("negative cost rejected", func(t *testing.T) {
		c := createTestCustomer(t)

		err := c.RedeemPoints(-1)
		require.Error(t, err)
	})
}

func TestCustomer_OwnedCoupons(t *testing.T) {
	c := createTestCustomer(t)

	c.AddOwnedCoupon("welcome10")

	assert.True(t, c.OwnsCoupon("WELCOME10"))
	assert.True(t, c.OwnsCoupon("welcome10"))
	assert.False(t, c.OwnsCoupon("OTHER"))
}
