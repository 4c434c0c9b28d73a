package repo

import "github.com/rsilveira/stock-ledger/internal/models"

// MovementRepository is the read side of the movement log. Movements are only
// ever written by the ledger engine, inside the same transaction that updates
// the balance.
type MovementRepository interface {
	GetByProductID(productID int, mf MovementFilter) ([]models.Movement, int, error)
}
