package models

// Balance is the on-hand quantity for a product. One row per product, created
// at zero alongside the product and only ever mutated by the ledger engine.
type Balance struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}
