package ledger

import (
	"context"
	"errors"

	"github.com/rsilveira/stock-ledger/internal/models"
	"github.com/rsilveira/stock-ledger/internal/repo"
)

// MemoryEngine applies the same movement rules as Engine against a
// MemoryStore. The store mutex stands in for the row lock, so the serialized
// read-check-write guarantee holds here too.
type MemoryEngine struct {
	store *repo.MemoryStore
}

func NewMemoryEngine(store *repo.MemoryStore) *MemoryEngine {
	return &MemoryEngine{store: store}
}

func (e *MemoryEngine) ApplyMovement(ctx context.Context, productID int, kind Kind, quantity int) (models.Balance, error) {
	if productID <= 0 || quantity <= 0 || (kind != KindIn && kind != KindOut) {
		return models.Balance{}, ErrInvalidInput
	}

	b, err := e.store.ApplyMovement(productID, string(kind), quantity, func(current, threshold int) (int, error) {
		return nextQuantity(current, threshold, kind, quantity)
	})
	if errors.Is(err, repo.ErrProductNotFound) {
		return models.Balance{}, ErrProductNotFound
	}
	return b, err
}
