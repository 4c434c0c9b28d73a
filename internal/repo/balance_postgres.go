package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rsilveira/stock-ledger/internal/models"
)

type PostgresBalanceRepository struct {
	db *sql.DB
}

func NewPostgresBalanceRepository(db *sql.DB) *PostgresBalanceRepository {
	return &PostgresBalanceRepository{db: db}
}

func (r *PostgresBalanceRepository) Get(productID int) (models.Balance, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var b models.Balance
	err := r.db.QueryRowContext(ctx,
		`SELECT product_id, quantity FROM balances WHERE product_id = $1`, productID).
		Scan(&b.ProductID, &b.Quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Balance{}, ErrProductNotFound
	}
	return b, err
}

// List returns one line per product with its current quantity and floor,
// ordered by product name.
func (r *PostgresBalanceRepository) List() ([]BalanceLine, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.min_threshold, b.quantity
		FROM products p
		JOIN balances b ON b.product_id = p.id
		ORDER BY p.name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []BalanceLine
	for rows.Next() {
		var l BalanceLine
		if err := rows.Scan(&l.ProductID, &l.Name, &l.MinThreshold, &l.Quantity); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
