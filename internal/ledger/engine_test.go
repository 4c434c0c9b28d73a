package ledger

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockEngine(t *testing.T) (*Engine, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewEngine(mockDB), mock, mockDB
}

func expectLockedBalance(mock sqlmock.Sqlmock, productID, quantity, threshold int) {
	rows := sqlmock.NewRows([]string{"quantity", "min_threshold"}).AddRow(quantity, threshold)
	mock.ExpectQuery(`SELECT b\.quantity, p\.min_threshold`).WithArgs(productID).WillReturnRows(rows)
}

func TestApplyMovement_In(t *testing.T) {
	engine, mock, mockDB := newMockEngine(t)
	defer mockDB.Close()

	mock.ExpectBegin()
	expectLockedBalance(mock, 1, 10, 0)
	mock.ExpectExec(`UPDATE balances SET quantity`).WithArgs(17, 1).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO movements`).WithArgs(1, "IN", 7, sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	balance, err := engine.ApplyMovement(context.Background(), 1, KindIn, 7)

	require.NoError(t, err)
	assert.Equal(t, 17, balance.Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyMovement_Out(t *testing.T) {
	engine, mock, mockDB := newMockEngine(t)
	defer mockDB.Close()

	mock.ExpectBegin()
	expectLockedBalance(mock, 1, 10, 5)
	mock.ExpectExec(`UPDATE balances SET quantity`).WithArgs(6, 1).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO movements`).WithArgs(1, "OUT", 4, sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	balance, err := engine.ApplyMovement(context.Background(), 1, KindOut, 4)

	require.NoError(t, err)
	assert.Equal(t, 6, balance.Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyMovement_InsufficientStock(t *testing.T) {
	engine, mock, mockDB := newMockEngine(t)
	defer mockDB.Close()

	mock.ExpectBegin()
	expectLockedBalance(mock, 1, 3, 0)
	mock.ExpectRollback()

	_, err := engine.ApplyMovement(context.Background(), 1, KindOut, 5)

	var insufficient *InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 3, insufficient.Balance)
	assert.Equal(t, 5, insufficient.Requested)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyMovement_BelowThreshold(t *testing.T) {
	engine, mock, mockDB := newMockEngine(t)
	defer mockDB.Close()

	// balance 6, threshold 5: a second OUT of 4 must be refused (6-4=2 < 5)
	mock.ExpectBegin()
	expectLockedBalance(mock, 1, 6, 5)
	mock.ExpectRollback()

	_, err := engine.ApplyMovement(context.Background(), 1, KindOut, 4)

	var belowFloor *BelowThresholdError
	require.ErrorAs(t, err, &belowFloor)
	assert.Equal(t, 5, belowFloor.Threshold)
	assert.Equal(t, 2, belowFloor.Resulting)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyMovement_ProductNotFound(t *testing.T) {
	engine, mock, mockDB := newMockEngine(t)
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT b\.quantity, p\.min_threshold`).WithArgs(42).WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := engine.ApplyMovement(context.Background(), 42, KindIn, 1)

	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyMovement_InvalidInput(t *testing.T) {
	engine, mock, mockDB := newMockEngine(t)
	defer mockDB.Close()

	tests := []struct {
		name      string
		productID int
		kind      Kind
		quantity  int
	}{
		{"zero quantity", 1, KindIn, 0},
		{"negative quantity", 1, KindOut, -3},
		{"unknown kind", 1, Kind("SIDEWAYS"), 1},
		{"non-positive product id", 0, KindIn, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.ApplyMovement(context.Background(), tt.productID, tt.kind, tt.quantity)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	// validation failures never touch the store
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyMovement_StoreFailureRollsBack(t *testing.T) {
	engine, mock, mockDB := newMockEngine(t)
	defer mockDB.Close()

	mock.ExpectBegin()
	expectLockedBalance(mock, 1, 10, 0)
	mock.ExpectExec(`UPDATE balances SET quantity`).WithArgs(15, 1).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO movements`).WithArgs(1, "IN", 5, sqlmock.AnyArg()).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := engine.ApplyMovement(context.Background(), 1, KindIn, 5)

	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "append movement", storeErr.Op)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyMovement_CommitFailure(t *testing.T) {
	engine, mock, mockDB := newMockEngine(t)
	defer mockDB.Close()

	mock.ExpectBegin()
	expectLockedBalance(mock, 1, 10, 0)
	mock.ExpectExec(`UPDATE balances SET quantity`).WithArgs(11, 1).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO movements`).WithArgs(1, "IN", 1, sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit().WillReturnError(errors.New("deadlock detected"))

	_, err := engine.ApplyMovement(context.Background(), 1, KindIn, 1)

	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "commit", storeErr.Op)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNextQuantity(t *testing.T) {
	tests := []struct {
		name      string
		current   int
		threshold int
		kind      Kind
		quantity  int
		want      int
		wantErr   bool
	}{
		{"in adds", 0, 0, KindIn, 10, 10, false},
		{"out subtracts", 10, 0, KindOut, 10, 0, false},
		{"out to exactly the floor", 10, 5, KindOut, 5, 5, false},
		{"out below the floor", 10, 5, KindOut, 6, 0, true},
		{"out beyond balance", 4, 0, KindOut, 5, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := nextQuantity(tt.current, tt.threshold, tt.kind, tt.quantity)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
