package repo

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsilveira/stock-ledger/internal/models"
)

func newMockRepo(t *testing.T) (*PostgresProductRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewPostgresProductRepository(mockDB), mock, mockDB
}

func TestProductCreate_InsertsZeroBalance(t *testing.T) {
	r, mock, mockDB := newMockRepo(t)
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO products`).
		WithArgs("Widget", "Acme", 9.9, nil, 5, "2026-01-02T15:04:05Z", "2026-01-02T15:04:05Z").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectExec(`INSERT INTO balances \(product_id, quantity\) VALUES \(\$1, 0\)`).
		WithArgs(7).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	created, err := r.Create(models.Product{
		Name:         "Widget",
		Manufacturer: "Acme",
		Price:        9.9,
		MinThreshold: 5,
		CreatedAt:    "2026-01-02T15:04:05Z",
		UpdatedAt:    "2026-01-02T15:04:05Z",
	})

	require.NoError(t, err)
	assert.Equal(t, 7, created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductCreate_DuplicateName(t *testing.T) {
	r, mock, mockDB := newMockRepo(t)
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO products`).
		WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "products_name_key"`))
	mock.ExpectRollback()

	_, err := r.Create(models.Product{Name: "Widget"})

	assert.ErrorIs(t, err, ErrDuplicatedValueUnique)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductDelete(t *testing.T) {
	r, mock, mockDB := newMockRepo(t)
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS`).WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`DELETE FROM balances`).WithArgs(7).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM products`).WithArgs(7).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, r.Delete(7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductDelete_WithMovements(t *testing.T) {
	r, mock, mockDB := newMockRepo(t)
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS`).WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	err := r.Delete(7)

	assert.ErrorIs(t, err, ErrHasDependentMovements)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductDelete_NotFound(t *testing.T) {
	r, mock, mockDB := newMockRepo(t)
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS`).WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`DELETE FROM balances`).WithArgs(99).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM products`).WithArgs(99).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := r.Delete(99)

	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductGetByID_NotFound(t *testing.T) {
	r, mock, mockDB := newMockRepo(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT id, name, manufacturer, price, tech_spec, min_threshold FROM products WHERE id`).
		WithArgs(99).WillReturnError(sql.ErrNoRows)

	_, err := r.GetByID(99)

	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductGetByID_NullOptionalFields(t *testing.T) {
	r, mock, mockDB := newMockRepo(t)
	defer mockDB.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "manufacturer", "price", "tech_spec", "min_threshold"}).
		AddRow(3, "Widget", nil, nil, nil, 0)
	mock.ExpectQuery(`SELECT id, name, manufacturer, price, tech_spec, min_threshold FROM products WHERE id`).
		WithArgs(3).WillReturnRows(rows)

	p, err := r.GetByID(3)

	require.NoError(t, err)
	assert.Equal(t, "Widget", p.Name)
	assert.Empty(t, p.Manufacturer)
	assert.Zero(t, p.Price)
	assert.NoError(t, mock.ExpectationsWereMet())
}
