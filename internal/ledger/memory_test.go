package ledger

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsilveira/stock-ledger/internal/models"
	"github.com/rsilveira/stock-ledger/internal/repo"
)

func seedProduct(t *testing.T, store *repo.MemoryStore, threshold, initial int) int {
	t.Helper()
	p, err := store.Create(models.Product{Name: "Widget", MinThreshold: threshold})
	require.NoError(t, err)
	if initial > 0 {
		eng := NewMemoryEngine(store)
		_, err = eng.ApplyMovement(context.Background(), p.ID, KindIn, initial)
		require.NoError(t, err)
	}
	return p.ID
}

func TestMemoryEngine_ThresholdFloor(t *testing.T) {
	store := repo.NewMemoryStore()
	id := seedProduct(t, store, 5, 10)
	engine := NewMemoryEngine(store)

	// 10 on hand, floor of 5: the first OUT of 4 lands on 6
	b, err := engine.ApplyMovement(context.Background(), id, KindOut, 4)
	require.NoError(t, err)
	assert.Equal(t, 6, b.Quantity)

	// a second OUT of 4 would land on 2, below the floor
	_, err = engine.ApplyMovement(context.Background(), id, KindOut, 4)
	var belowFloor *BelowThresholdError
	require.ErrorAs(t, err, &belowFloor)
	assert.Equal(t, 5, belowFloor.Threshold)
	assert.Equal(t, 2, belowFloor.Resulting)

	// the rejected movement left nothing behind
	b, err = store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, 6, b.Quantity)
	_, total, err := store.GetByProductID(id, repo.MovementFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, total) // the seeding IN plus the one accepted OUT
}

func TestMemoryEngine_UnknownProduct(t *testing.T) {
	engine := NewMemoryEngine(repo.NewMemoryStore())
	_, err := engine.ApplyMovement(context.Background(), 99, KindIn, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestMemoryEngine_InvalidInput(t *testing.T) {
	store := repo.NewMemoryStore()
	id := seedProduct(t, store, 0, 0)
	engine := NewMemoryEngine(store)

	_, err := engine.ApplyMovement(context.Background(), id, KindOut, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = engine.ApplyMovement(context.Background(), id, Kind("in"), 1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// Two concurrent withdrawals that each fit the balance alone but not together:
// exactly one must win and the balance must never go negative.
func TestMemoryEngine_ConcurrentWithdrawals(t *testing.T) {
	store := repo.NewMemoryStore()
	id := seedProduct(t, store, 0, 10)
	engine := NewMemoryEngine(store)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = engine.ApplyMovement(context.Background(), id, KindOut, 6)
		}(i)
	}
	wg.Wait()

	var rejected int
	for _, err := range errs {
		if err != nil {
			var insufficient *InsufficientStockError
			require.ErrorAs(t, err, &insufficient)
			rejected++
		}
	}
	assert.Equal(t, 1, rejected)

	b, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, 4, b.Quantity)
}
