package tests

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsilveira/stock-ledger/internal/db"
	"github.com/rsilveira/stock-ledger/internal/ledger"
)

// Integrated suite: runs against a real Postgres with the migrations applied.
// Skipped unless DATABASE_URL is set.

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set, skipping integrated suite")
	}

	database, err := db.Connect(url)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func createTestProduct(t *testing.T, database *sql.DB, threshold int) int {
	t.Helper()
	ctx := context.Background()
	name := fmt.Sprintf("integration-%d", time.Now().UnixNano())
	now := time.Now().UTC().Format(time.RFC3339)

	var id int
	err := database.QueryRowContext(ctx,
		`INSERT INTO products (name, min_threshold, created_at, updated_at)
		 VALUES ($1, $2, $3, $3) RETURNING id`, name, threshold, now).Scan(&id)
	require.NoError(t, err)
	_, err = database.ExecContext(ctx,
		`INSERT INTO balances (product_id, quantity) VALUES ($1, 0)`, id)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = database.ExecContext(ctx, `DELETE FROM movements WHERE product_id = $1`, id)
		_, _ = database.ExecContext(ctx, `DELETE FROM balances WHERE product_id = $1`, id)
		_, _ = database.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	})
	return id
}

func currentQuantity(t *testing.T, database *sql.DB, id int) int {
	t.Helper()
	var q int
	require.NoError(t, database.QueryRowContext(context.Background(),
		`SELECT quantity FROM balances WHERE product_id = $1`, id).Scan(&q))
	return q
}

func TestEngineAgainstPostgres(t *testing.T) {
	database := openTestDB(t)
	engine := ledger.NewEngine(database)
	ctx := context.Background()

	id := createTestProduct(t, database, 5)

	balance, err := engine.ApplyMovement(ctx, id, ledger.KindIn, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, balance.Quantity)

	balance, err = engine.ApplyMovement(ctx, id, ledger.KindOut, 4)
	require.NoError(t, err)
	assert.Equal(t, 6, balance.Quantity)

	// 6 - 4 = 2 crosses the floor of 5; the committed balance must not move
	_, err = engine.ApplyMovement(ctx, id, ledger.KindOut, 4)
	var belowFloor *ledger.BelowThresholdError
	require.ErrorAs(t, err, &belowFloor)
	assert.Equal(t, 6, currentQuantity(t, database, id))

	var movementCount int
	require.NoError(t, database.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM movements WHERE product_id = $1`, id).Scan(&movementCount))
	assert.Equal(t, 2, movementCount)
}

// Two concurrent withdrawals race on the same row; the FOR UPDATE lock must
// serialize them so exactly one commits.
func TestEngineConcurrentWithdrawalsAgainstPostgres(t *testing.T) {
	database := openTestDB(t)
	engine := ledger.NewEngine(database)
	ctx := context.Background()

	id := createTestProduct(t, database, 0)
	_, err := engine.ApplyMovement(ctx, id, ledger.KindIn, 10)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = engine.ApplyMovement(ctx, id, ledger.KindOut, 6)
		}(i)
	}
	wg.Wait()

	var rejected int
	for _, err := range errs {
		if err != nil {
			var insufficient *ledger.InsufficientStockError
			require.ErrorAs(t, err, &insufficient)
			rejected++
		}
	}
	assert.Equal(t, 1, rejected)
	assert.Equal(t, 4, currentQuantity(t, database, id))
}
