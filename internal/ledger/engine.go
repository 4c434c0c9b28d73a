package ledger

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rsilveira/stock-ledger/internal/models"
)

// Mover applies stock movements. Satisfied by Engine (Postgres) and
// MemoryEngine (tests, local runs without a database).
type Mover interface {
	ApplyMovement(ctx context.Context, productID int, kind Kind, quantity int) (models.Balance, error)
}

// Engine validates and applies stock movements against Postgres. Every call
// runs as a single transaction: the balance row is read under FOR UPDATE, so
// two movements for the same product serialize on the row lock and the second
// one observes the committed result of the first.
type Engine struct {
	db *sql.DB
}

func NewEngine(db *sql.DB) *Engine {
	return &Engine{db: db}
}

const lockBalanceQuery = `
	SELECT b.quantity, p.min_threshold
	FROM balances b
	JOIN products p ON p.id = b.product_id
	WHERE b.product_id = $1
	FOR UPDATE OF b`

// ApplyMovement applies one IN or OUT movement and returns the resulting
// balance. The balance update and the movement insert commit together or not
// at all; every rejection leaves the store untouched.
func (e *Engine) ApplyMovement(ctx context.Context, productID int, kind Kind, quantity int) (models.Balance, error) {
	if productID <= 0 || quantity <= 0 || (kind != KindIn && kind != KindOut) {
		return models.Balance{}, ErrInvalidInput
	}

	var result models.Balance
	err := e.withTx(ctx, func(tx *sql.Tx) error {
		var current, threshold int
		err := tx.QueryRowContext(ctx, lockBalanceQuery, productID).Scan(&current, &threshold)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProductNotFound
		}
		if err != nil {
			return &StoreError{Op: "lock balance", Err: err}
		}

		newQuantity, err := nextQuantity(current, threshold, kind, quantity)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE balances SET quantity = $1 WHERE product_id = $2`,
			newQuantity, productID); err != nil {
			return &StoreError{Op: "update balance", Err: err}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO movements (product_id, kind, quantity, created_at) VALUES ($1, $2, $3, $4)`,
			productID, string(kind), quantity, time.Now().UTC()); err != nil {
			return &StoreError{Op: "append movement", Err: err}
		}

		result = models.Balance{ProductID: productID, Quantity: newQuantity}
		return nil
	})
	if err != nil {
		return models.Balance{}, err
	}
	return result, nil
}

// nextQuantity holds the movement rules shared by both engines. The
// insufficient-stock check runs before the threshold check so that a plain
// overdraw is reported as such even when the threshold is zero.
func nextQuantity(current, threshold int, kind Kind, quantity int) (int, error) {
	if kind == KindIn {
		return current + quantity, nil
	}
	if quantity > current {
		return 0, &InsufficientStockError{Balance: current, Requested: quantity}
	}
	next := current - quantity
	if next < threshold {
		return 0, &BelowThresholdError{Threshold: threshold, Resulting: next}
	}
	return next, nil
}

// withTx runs fn inside a transaction and guarantees rollback on every
// non-commit exit path, early returns and panics included.
func (e *Engine) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return &StoreError{Op: "begin", Err: err}
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return &StoreError{Op: "commit", Err: err}
	}
	return nil
}
