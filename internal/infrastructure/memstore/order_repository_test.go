package memstore

import (
	"context"
	"testing"

	"github.com/floorops/backend/internal/domain/catalog"
	"github.com/floorops/backend/internal/domain/order"
	"github.com/floorops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedOrder(t *testing.T, repo *OrderRepository, tableID uuid.UUID) *order.Order {
	t.Helper()
	item, err := order.NewOrderItem(uuid.New(), "Burger", 1, valueobject.NewMoneyUSDFromFloat(10), "", catalog.StationKitchen)
	require.NoError(t, err)
	o, err := order.NewOrder(tableID, []order.OrderItem{item}, decimal.NewFromFloat(0.1))
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), o))
	return o
}

func TestOrderRepository_SnapshotIsolation(t *testing.T) {
	repo := NewOrderRepository()
	o := seedOrder(t, repo, uuid.New())

	loaded, err := repo.FindByID(context.Background(), o.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	_, err = loaded.SetItemStatus(0, order.ItemStatusServed)
	require.NoError(t, err)

	fresh, err := repo.FindByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ItemStatusPending, fresh.Items[0].Status)
}

func TestOrderRepository_LoyaltyStampSurvivesRoundTrip(t *testing.T) {
	repo := NewOrderRepository()
	o := seedOrder(t, repo, uuid.New())
	o.RecordLoyalty(275, 100)
	require.NoError(t, repo.Save(context.Background(), o))

	fresh, err := repo.FindByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(275), fresh.PointsEarned)
	assert.Equal(t, int64(100), fresh.PointsRedeemed)
}

func TestOrderRepository_FindActiveByTable(t *testing.T) {
	repo := NewOrderRepository()
	tableID := uuid.New()

	active := seedOrder(t, repo, tableID)
	done := seedOrder(t, repo, tableID)
	require.NoError(t, done.Complete("cash"))
	require.NoError(t, repo.Save(context.Background(), done))
	seedOrder(t, repo, uuid.New())

	orders, err := repo.FindActiveByTable(context.Background(), tableID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, active.ID, orders[0].ID)
}

func TestOrderRepository_UnknownIDIsNil(t *testing.T) {
	repo := NewOrderRepository()

	o, err := repo.FindByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, o)
}
