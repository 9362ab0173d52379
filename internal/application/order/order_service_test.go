package order

import (
	"context"
	"sync"
	"testing"

	catalogapp "github.com/floorops/backend/internal/application/catalog"
	inventoryapp "github.com/floorops/backend/internal/application/inventory"
	loyaltyapp "github.com/floorops/backend/internal/application/loyalty"
	tableapp "github.com/floorops/backend/internal/application/table"
	"github.com/floorops/backend/internal/domain/catalog"
	"github.com/floorops/backend/internal/domain/order"
	"github.com/floorops/backend/internal/domain/shared/valueobject"
	"github.com/floorops/backend/internal/infrastructure/memstore"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fixture wires the order service against real in-memory collaborators: a
// burger whose recipe consumes two patties per unit, a stocked patty item and
// one table on the floor.
type fixture struct {
	ctx       context.Context
	orders    *OrderService
	tables    *tableapp.TableService
	ledger    *inventoryapp.LedgerService
	loyalty   *loyaltyapp.LoyaltyService
	inventory *memstore.InventoryRepository
	tableRepo *memstore.TableRepository

	burgerID uuid.UUID
	beerID   uuid.UUID
	pattyID  uuid.UUID
	tableID  uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithOrders(t, memstore.NewOrderRepository())
}

func newFixtureWithOrders(t *testing.T, orderRepo order.Repository) *fixture {
	t.Helper()
	ctx := context.Background()
	logger := zap.NewNop()

	itemRepo := memstore.NewMenuItemRepository()
	categoryRepo := memstore.NewMenuCategoryRepository()
	inventoryRepo := memstore.NewInventoryRepository()
	tableRepo := memstore.NewTableRepository()
	zoneRepo := memstore.NewZoneRepository()
	customerRepo := memstore.NewCustomerRepository()
	couponRepo := memstore.NewCouponRepository()

	menu := catalogapp.NewCatalogService(itemRepo, categoryRepo)
	ledger := inventoryapp.NewLedgerService(inventoryRepo, menu, nil, logger)
	loyaltySvc := loyaltyapp.NewLoyaltyService(customerRepo, couponRepo, nil, logger, 10)
	tables := tableapp.NewTableService(tableRepo, zoneRepo, tableRepo.Locks(), nil, logger)
	orders := NewOrderService(orderRepo, menu, ledger, tables, loyaltySvc, nil, logger, decimal.NewFromFloat(0.1))
	tables.SetOrderFlow(orders)

	mains, err := menu.CreateCategory(ctx, "Mains", catalog.StationKitchen)
	require.NoError(t, err)
	drinks, err := menu.CreateCategory(ctx, "Drinks", catalog.StationBar)
	require.NoError(t, err)

	patty, err := ledger.CreateItem(ctx, inventoryapp.CreateItemRequest{
		Name:            "Beef Patty",
		Unit:            "pcs",
		InitialQuantity: decimal.NewFromInt(100),
		MinQuantity:     decimal.NewFromInt(10),
		CostPerUnit:     valueobject.NewMoneyUSDFromFloat(1.5),
	})
	require.NoError(t, err)

	pattyQty, err := valueobject.NewQuantity(decimal.NewFromInt(2), "pcs")
	require.NoError(t, err)
	recipeLine, err := catalog.NewRecipeLine(patty.ID, pattyQty)
	require.NoError(t, err)

	burger, err := menu.CreateMenuItem(ctx, catalogapp.CreateMenuItemInput{
		Name:       "Burger",
		Price:      valueobject.NewMoneyUSDFromFloat(10),
		CategoryID: mains.ID,
		Recipe:     []catalog.RecipeLine{recipeLine},
	})
	require.NoError(t, err)

	beer, err := menu.CreateMenuItem(ctx, catalogapp.CreateMenuItemInput{
		Name:       "Beer",
		Price:      valueobject.NewMoneyUSDFromFloat(5),
		CategoryID: drinks.ID,
	})
	require.NoError(t, err)

	_, err = tables.CreateZone(ctx, "Main Hall")
	require.NoError(t, err)
	tbl, err := tables.CreateTable(ctx, "A1", "Main Hall", 4)
	require.NoError(t, err)

	return &fixture{
		ctx:       ctx,
		orders:    orders,
		tables:    tables,
		ledger:    ledger,
		loyalty:   loyaltySvc,
		inventory: inventoryRepo,
		tableRepo: tableRepo,
		burgerID:  burger.ID,
		beerID:    beer.ID,
		pattyID:   patty.ID,
		tableID:   tbl.ID,
	}
}

func (f *fixture) pattyQuantity(t *testing.T) decimal.Decimal {
	t.Helper()
	item, err := f.ledger.GetItem(f.ctx, f.pattyID)
	require.NoError(t, err)
	require.NotNil(t, item)
	return item.Quantity
}

func (f *fixture) createDineIn(t *testing.T, items ...CreateOrderItemInput) *order.Order {
	t.Helper()
	o, err := f.orders.CreateOrder(f.ctx, CreateOrderRequest{
		TableID: &f.tableID,
		Items:   items,
	})
	require.NoError(t, err)
	return o
}

func TestOrderService_CreateOrder(t *testing.T) {
	t.Run("dine-in seats the table and classifies stations", func(t *testing.T) {
		f := newFixture(t)

		o := f.createDineIn(t,
			CreateOrderItemInput{MenuID: f.burgerID, Quantity: 1},
			CreateOrderItemInput{MenuID: f.beerID, Quantity: 2, Note: "cold"},
		)

		assert.Equal(t, order.OrderStatusPending, o.Status)
		assert.Equal(t, catalog.StationKitchen, o.Items[0].Station)
		assert.Equal(t, catalog.StationBar, o.Items[1].Station)
		assert.True(t, o.Subtotal.Equal(decimal.NewFromInt(20)))

		tbl, err := f.tables.GetTable(f.ctx, f.tableID)
		require.NoError(t, err)
		assert.Equal(t, "OCCUPIED", tbl.Status.String())

		assert.True(t, f.pattyQuantity(t).Equal(decimal.NewFromInt(100)), "no deduction before serving")
	})

	t.Run("takeout order touches no table", func(t *testing.T) {
		f := newFixture(t)

		o, err := f.orders.CreateOrder(f.ctx, CreateOrderRequest{
			Items: []CreateOrderItemInput{{MenuID: f.burgerID, Quantity: 1}},
		})
		require.NoError(t, err)
		assert.True(t, o.IsTakeout())

		tbl, err := f.tables.GetTable(f.ctx, f.tableID)
		require.NoError(t, err)
		assert.Equal(t, "AVAILABLE", tbl.Status.String())
	})

	t.Run("unknown menu item rejected", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.orders.CreateOrder(f.ctx, CreateOrderRequest{
			Items: []CreateOrderItemInput{{MenuID: uuid.New(), Quantity: 1}},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("instant sale deducts and awards on the spot", func(t *testing.T) {
		f := newFixture(t)
		customer, err := f.loyalty.CreateCustomer(f.ctx, "Alice", "555-0100")
		require.NoError(t, err)

		o, err := f.orders.CreateOrder(f.ctx, CreateOrderRequest{
			Items:         []CreateOrderItemInput{{MenuID: f.burgerID, Quantity: 3}},
			CustomerID:    &customer.ID,
			InstantSale:   true,
			PaymentMethod: "cash",
		})
		require.NoError(t, err)

		assert.Equal(t, order.OrderStatusCompleted, o.Status)
		assert.True(t, f.pattyQuantity(t).Equal(decimal.NewFromInt(94)), "3 burgers x 2 patties")

		// total = 30 * 1.1 = 33, at 10 points per unit
		fresh, err := f.loyalty.GetCustomer(f.ctx, customer.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(330), fresh.Points)
		assert.Equal(t, int64(330), o.PointsEarned)
	})
}

func TestOrderService_ServeRestoreRoundTrip(t *testing.T) {
	f := newFixture(t)
	o := f.createDineIn(t, CreateOrderItemInput{MenuID: f.burgerID, Quantity: 2})

	updated, err := f.orders.SetItemStatus(f.ctx, o.ID, 0, order.ItemStatusServed)
	require.NoError(t, err)
	assert.True(t, f.pattyQuantity(t).Equal(decimal.NewFromInt(96)), "2 burgers x 2 patties deducted")
	assert.Equal(t, order.OrderStatusServed, updated.Status)

	// Unserving restores exactly what was deducted
	_, err = f.orders.SetItemStatus(f.ctx, o.ID, 0, order.ItemStatusCooking)
	require.NoError(t, err)
	assert.True(t, f.pattyQuantity(t).Equal(decimal.NewFromInt(100)))
}

func TestOrderService_SetStationStatusIdempotent(t *testing.T) {
	f := newFixture(t)
	o := f.createDineIn(t, CreateOrderItemInput{MenuID: f.burgerID, Quantity: 1})

	_, err := f.orders.SetStationStatus(f.ctx, o.ID, catalog.StationKitchen, order.ItemStatusServed)
	require.NoError(t, err)
	assert.True(t, f.pattyQuantity(t).Equal(decimal.NewFromInt(98)))

	// A repeated SERVED call must not double-deduct
	_, err = f.orders.SetStationStatus(f.ctx, o.ID, catalog.StationKitchen, order.ItemStatusServed)
	require.NoError(t, err)
	assert.True(t, f.pattyQuantity(t).Equal(decimal.NewFromInt(98)))
}

func TestOrderService_Checkout(t *testing.T) {
	t.Run("completes, prices and frees the table", func(t *testing.T) {
		f := newFixture(t)
		o := f.createDineIn(t, CreateOrderItemInput{MenuID: f.burgerID, Quantity: 1})

		completed, breakdown, err := f.orders.Checkout(f.ctx, o.ID, CheckoutRequest{
			PaymentMethod: "card",
			FlatDiscount:  decimal.NewFromInt(2),
		})
		require.NoError(t, err)
		assert.Equal(t, order.OrderStatusCompleted, completed.Status)
		assert.True(t, breakdown.FinalAmount.Equal(decimal.NewFromInt(8)))

		tbl, err := f.tables.GetTable(f.ctx, f.tableID)
		require.NoError(t, err)
		assert.Equal(t, "AVAILABLE", tbl.Status.String())
	})

	t.Run("awards points on the charged amount and stamps the order", func(t *testing.T) {
		f := newFixture(t)
		customer, err := f.loyalty.CreateCustomer(f.ctx, "Bob", "555-0101")
		require.NoError(t, err)

		o, err := f.orders.CreateOrder(f.ctx, CreateOrderRequest{
			TableID:    &f.tableID,
			Items:      []CreateOrderItemInput{{MenuID: f.burgerID, Quantity: 1}},
			CustomerID: &customer.ID,
		})
		require.NoError(t, err)

		completed, breakdown, err := f.orders.Checkout(f.ctx, o.ID, CheckoutRequest{
			PaymentMethod: "card",
			FlatDiscount:  decimal.NewFromInt(4),
		})
		require.NoError(t, err)
		require.True(t, breakdown.FinalAmount.Equal(decimal.NewFromInt(6)))

		fresh, err := f.loyalty.GetCustomer(f.ctx, customer.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(60), fresh.Points)
		assert.Equal(t, 1, fresh.VisitCount)
		assert.Equal(t, int64(60), completed.PointsEarned)
	})

	t.Run("table stays occupied while another order is active", func(t *testing.T) {
		f := newFixture(t)
		first := f.createDineIn(t, CreateOrderItemInput{MenuID: f.burgerID, Quantity: 1})
		f.createDineIn(t, CreateOrderItemInput{MenuID: f.beerID, Quantity: 1})

		_, _, err := f.orders.Checkout(f.ctx, first.ID, CheckoutRequest{PaymentMethod: "cash"})
		require.NoError(t, err)

		tbl, err := f.tables.GetTable(f.ctx, f.tableID)
		require.NoError(t, err)
		assert.Equal(t, "OCCUPIED", tbl.Status.String())
	})

	t.Run("unknown order returns nil", func(t *testing.T) {
		f := newFixture(t)

		o, _, err := f.orders.Checkout(f.ctx, uuid.New(), CheckoutRequest{PaymentMethod: "cash"})
		require.NoError(t, err)
		assert.Nil(t, o)
	})
}

func TestOrderService_VoidOrder(t *testing.T) {
	t.Run("restores served recipes", func(t *testing.T) {
		f := newFixture(t)
		o := f.createDineIn(t, CreateOrderItemInput{MenuID: f.burgerID, Quantity: 2})
		_, err := f.orders.SetItemStatus(f.ctx, o.ID, 0, order.ItemStatusServed)
		require.NoError(t, err)
		require.True(t, f.pattyQuantity(t).Equal(decimal.NewFromInt(96)))

		voided, err := f.orders.VoidOrder(f.ctx, o.ID, "kitchen error")
		require.NoError(t, err)
		assert.Equal(t, order.OrderStatusCancelled, voided.Status)
		assert.True(t, f.pattyQuantity(t).Equal(decimal.NewFromInt(100)))

		tbl, err := f.tables.GetTable(f.ctx, f.tableID)
		require.NoError(t, err)
		assert.Equal(t, "AVAILABLE", tbl.Status.String())
	})

	t.Run("reverses the loyalty outcome of a completed sale", func(t *testing.T) {
		f := newFixture(t)
		customer, err := f.loyalty.CreateCustomer(f.ctx, "Carol", "555-0102")
		require.NoError(t, err)

		o, err := f.orders.CreateOrder(f.ctx, CreateOrderRequest{
			TableID:    &f.tableID,
			Items:      []CreateOrderItemInput{{MenuID: f.burgerID, Quantity: 1}},
			CustomerID: &customer.ID,
		})
		require.NoError(t, err)
		_, _, err = f.orders.Checkout(f.ctx, o.ID, CheckoutRequest{PaymentMethod: "cash"})
		require.NoError(t, err)

		mid, err := f.loyalty.GetCustomer(f.ctx, customer.ID)
		require.NoError(t, err)
		require.Equal(t, int64(100), mid.Points, "10 charged x 10 points")

		_, err = f.orders.VoidOrder(f.ctx, o.ID, "refund")
		require.NoError(t, err)

		fresh, err := f.loyalty.GetCustomer(f.ctx, customer.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), fresh.Points)
		assert.Equal(t, 0, fresh.VisitCount)
	})

	t.Run("unknown order returns nil", func(t *testing.T) {
		f := newFixture(t)

		o, err := f.orders.VoidOrder(f.ctx, uuid.New(), "test")
		require.NoError(t, err)
		assert.Nil(t, o)
	})
}

func TestOrderService_RemoveOrderItem(t *testing.T) {
	t.Run("removing a served line restores its recipe", func(t *testing.T) {
		f := newFixture(t)
		o := f.createDineIn(t,
			CreateOrderItemInput{MenuID: f.burgerID, Quantity: 1},
			CreateOrderItemInput{MenuID: f.beerID, Quantity: 1},
		)
		_, err := f.orders.SetItemStatus(f.ctx, o.ID, 0, order.ItemStatusServed)
		require.NoError(t, err)
		require.True(t, f.pattyQuantity(t).Equal(decimal.NewFromInt(98)))

		updated, err := f.orders.RemoveOrderItem(f.ctx, o.ID, 0)
		require.NoError(t, err)
		assert.Len(t, updated.Items, 1)
		assert.True(t, f.pattyQuantity(t).Equal(decimal.NewFromInt(100)))
	})

	t.Run("removing the last line voids the order and frees the table", func(t *testing.T) {
		f := newFixture(t)
		o := f.createDineIn(t, CreateOrderItemInput{MenuID: f.burgerID, Quantity: 1})

		updated, err := f.orders.RemoveOrderItem(f.ctx, o.ID, 0)
		require.NoError(t, err)
		assert.Equal(t, order.OrderStatusCancelled, updated.Status)
		assert.Equal(t, "all items removed", updated.VoidReason)

		tbl, err := f.tables.GetTable(f.ctx, f.tableID)
		require.NoError(t, err)
		assert.Equal(t, "AVAILABLE", tbl.Status.String())
	})

	t.Run("unknown index is a no-op", func(t *testing.T) {
		f := newFixture(t)
		o := f.createDineIn(t, CreateOrderItemInput{MenuID: f.burgerID, Quantity: 1})

		updated, err := f.orders.RemoveOrderItem(f.ctx, o.ID, 9)
		require.NoError(t, err)
		assert.Len(t, updated.Items, 1)
	})
}

func TestOrderService_ReassignActiveOrders(t *testing.T) {
	f := newFixture(t)
	first := f.createDineIn(t, CreateOrderItemInput{MenuID: f.burgerID, Quantity: 1})
	second := f.createDineIn(t, CreateOrderItemInput{MenuID: f.beerID, Quantity: 1})
	dest, err := f.tables.CreateTable(f.ctx, "A2", "Main Hall", 4)
	require.NoError(t, err)

	moved, err := f.orders.ReassignActiveOrders(f.ctx, f.tableID, dest.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, moved)

	for _, id := range []uuid.UUID{first.ID, second.ID} {
		o, err := f.orders.GetOrder(f.ctx, id)
		require.NoError(t, err)
		assert.Equal(t, dest.ID, o.TableID)
	}

	busy, err := f.orders.HasActiveOrders(f.ctx, f.tableID, uuid.Nil)
	require.NoError(t, err)
	assert.False(t, busy)
}

// gatedOrderRepo blocks the first Save until released so the test can run a
// competing table operation while an order is mid-persist
type gatedOrderRepo struct {
	*memstore.OrderRepository
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGatedOrderRepo() *gatedOrderRepo {
	return &gatedOrderRepo{
		OrderRepository: memstore.NewOrderRepository(),
		entered:         make(chan struct{}),
		release:         make(chan struct{}),
	}
}

func (r *gatedOrderRepo) Save(ctx context.Context, o *order.Order) error {
	r.once.Do(func() {
		close(r.entered)
		<-r.release
	})
	return r.OrderRepository.Save(ctx, o)
}

func TestOrderService_CreateOrder_SeatAndPersistAreOneCriticalSection(t *testing.T) {
	repo := newGatedOrderRepo()
	f := newFixtureWithOrders(t, repo)

	created := make(chan error, 1)
	go func() {
		_, err := f.orders.CreateOrder(f.ctx, CreateOrderRequest{
			TableID: &f.tableID,
			Items:   []CreateOrderItemInput{{MenuID: f.burgerID, Quantity: 1}},
		})
		created <- err
	}()
	<-repo.entered

	// The table lock is held while the order save is still in flight; a
	// concurrent free must not observe the seated-but-unsaved state
	freed := make(chan bool, 1)
	freeErr := make(chan error, 1)
	go func() {
		ok, err := f.tables.TryFreeTable(f.ctx, f.tableID, uuid.Nil)
		freed <- ok
		freeErr <- err
	}()

	close(repo.release)
	require.NoError(t, <-created)
	assert.False(t, <-freed)
	require.NoError(t, <-freeErr)

	tbl, err := f.tables.GetTable(f.ctx, f.tableID)
	require.NoError(t, err)
	assert.Equal(t, "OCCUPIED", tbl.Status.String())

	busy, err := f.orders.HasActiveOrders(f.ctx, f.tableID, uuid.Nil)
	require.NoError(t, err)
	assert.True(t, busy)
}
