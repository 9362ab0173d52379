package memstore

import (
	"context"
	"sync"
	"testing"

	"github.com/floorops/backend/internal/domain/inventory"
	"github.com/floorops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedInventoryItem(t *testing.T, repo *InventoryRepository, initial float64) *inventory.InventoryItem {
	t.Helper()
	item, err := inventory.NewInventoryItem("Tomato", "kg",
		decimal.NewFromFloat(initial), decimal.Zero, valueobject.NewMoneyUSDFromFloat(0.5))
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), item))
	return item
}

func TestInventoryRepository_SnapshotIsolation(t *testing.T) {
	repo := NewInventoryRepository()
	item := seedInventoryItem(t, repo, 10)

	loaded, err := repo.FindByID(context.Background(), item.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	// Mutating the snapshot must not leak into the store
	_, _, err = loaded.Deduct(decimal.NewFromInt(5), uuid.New(), "Burger")
	require.NoError(t, err)

	fresh, err := repo.FindByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.True(t, fresh.Quantity.Equal(decimal.NewFromInt(10)))
	assert.Len(t, fresh.Log, 1)
}

func TestInventoryRepository_Mutate(t *testing.T) {
	t.Run("unknown id is a no-op", func(t *testing.T) {
		repo := NewInventoryRepository()

		mutated, err := repo.Mutate(context.Background(), uuid.New(), func(item *inventory.InventoryItem) error {
			t.Fatal("fn must not run for an unknown id")
			return nil
		})
		require.NoError(t, err)
		assert.Nil(t, mutated)
	})

	t.Run("persists the mutation and keeps pending events", func(t *testing.T) {
		repo := NewInventoryRepository()
		item := seedInventoryItem(t, repo, 10)

		mutated, err := repo.Mutate(context.Background(), item.ID, func(i *inventory.InventoryItem) error {
			_, _, err := i.Deduct(decimal.NewFromInt(3), uuid.New(), "Burger")
			return err
		})
		require.NoError(t, err)
		require.NotNil(t, mutated)
		assert.NotEmpty(t, mutated.GetDomainEvents(), "events survive for the caller to publish")

		fresh, err := repo.FindByID(context.Background(), item.ID)
		require.NoError(t, err)
		assert.True(t, fresh.Quantity.Equal(decimal.NewFromInt(7)))
		assert.Empty(t, fresh.GetDomainEvents(), "stored copy carries no events")
	})

	t.Run("fn error discards the mutation", func(t *testing.T) {
		repo := NewInventoryRepository()
		item := seedInventoryItem(t, repo, 10)

		_, err := repo.Mutate(context.Background(), item.ID, func(i *inventory.InventoryItem) error {
			_, _, err := i.Deduct(decimal.Zero, uuid.New(), "Burger")
			return err
		})
		require.Error(t, err)

		fresh, err := repo.FindByID(context.Background(), item.ID)
		require.NoError(t, err)
		assert.True(t, fresh.Quantity.Equal(decimal.NewFromInt(10)))
	})

	t.Run("concurrent mutations never lose updates", func(t *testing.T) {
		repo := NewInventoryRepository()
		item := seedInventoryItem(t, repo, 1000)

		const workers = 50
		var wg sync.WaitGroup
		wg.Add(workers)
		for w := 0; w < workers; w++ {
			go func() {
				defer wg.Done()
				_, err := repo.Mutate(context.Background(), item.ID, func(i *inventory.InventoryItem) error {
					_, _, err := i.Deduct(decimal.NewFromInt(1), uuid.New(), "Burger")
					return err
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		fresh, err := repo.FindByID(context.Background(), item.ID)
		require.NoError(t, err)
		assert.True(t, fresh.Quantity.Equal(decimal.NewFromInt(950)), "quantity = %s", fresh.Quantity)
		assert.Len(t, fresh.Log, workers+1)
	})
}

func TestInventoryRepository_FindLowStock(t *testing.T) {
	repo := NewInventoryRepository()
	low, err := inventory.NewInventoryItem("Basil", "g",
		decimal.NewFromInt(5), decimal.NewFromInt(10), valueobject.NewMoneyUSDFromFloat(0.1))
	require.NoError(t, err)
	ok, err := inventory.NewInventoryItem("Salt", "g",
		decimal.NewFromInt(500), decimal.NewFromInt(10), valueobject.NewMoneyUSDFromFloat(0.01))
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), low))
	require.NoError(t, repo.Save(context.Background(), ok))

	items, err := repo.FindLowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Basil", items[0].Name)
}

func TestKeyedMutex(t *testing.T) {
	t.Run("serializes sections per key", func(t *testing.T) {
		km := NewKeyedMutex()
		key := uuid.New()
		counter := 0

		const workers = 100
		var wg sync.WaitGroup
		wg.Add(workers)
		for w := 0; w < workers; w++ {
			go func() {
				defer wg.Done()
				_ = km.WithLock(key, func() error {
					counter++
					return nil
				})
			}()
		}
		wg.Wait()

		assert.Equal(t, workers, counter)
	})

	t.Run("distinct keys do not block each other", func(t *testing.T) {
		km := NewKeyedMutex()
		a, b := uuid.New(), uuid.New()

		km.Lock(a)
		done := make(chan struct{})
		go func() {
			km.Lock(b)
			km.Unlock(b)
			close(done)
		}()
		<-done
		km.Unlock(a)
	})

	t.Run("unlock of unheld key panics", func(t *testing.T) {
		km := NewKeyedMutex()
		assert.Panics(t, func() { km.Unlock(uuid.New()) })
	})
}
