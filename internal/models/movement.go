package models

// Movement is a single stock event, immutable once recorded. Quantity is always
// positive; the direction is carried by Kind ("IN" or "OUT").
type Movement struct {
	ID        int    `json:"id"`
	ProductID int    `json:"product_id"`
	Kind      string `json:"kind"`
	Quantity  int    `json:"quantity"`
	CreatedAt string `json:"created_at"`
}
