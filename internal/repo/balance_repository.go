package repo

import "github.com/rsilveira/stock-ledger/internal/models"

// BalanceLine is one row of the balance listing: product identity joined with
// its current quantity and floor.
type BalanceLine struct {
	ProductID    int    `json:"product_id"`
	Name         string `json:"name"`
	MinThreshold int    `json:"min_threshold"`
	Quantity     int    `json:"quantity"`
}

// BalanceRepository is the read side of per-product balances. Quantities are
// only ever mutated by the ledger engine.
type BalanceRepository interface {
	Get(productID int) (models.Balance, error)
	List() ([]BalanceLine, error)
}
