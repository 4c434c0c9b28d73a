package repo

import "github.com/rsilveira/stock-ledger/internal/models"

// ProductRepository defines the interface for product data operations.
// Create also provisions the product's zero balance row, and Delete removes
// the balance row; both run as one atomic unit against the store.
type ProductRepository interface {
	Create(product models.Product) (models.Product, error)
	GetAll() ([]models.Product, error)
	GetByID(id int) (models.Product, error)
	GetByName(name string) (models.Product, error)
	Update(product models.Product) (models.Product, error)
	Delete(id int) error
	Filter(pf ProductFilter) ([]models.Product, int, error)
}
