package models

// Product represents a registered product in the stock ledger.
type Product struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Manufacturer string  `json:"manufacturer,omitempty"`
	Price        float64 `json:"price,omitempty"`
	TechSpec     string  `json:"tech_spec,omitempty"`
	MinThreshold int     `json:"min_threshold"`
	CreatedAt    string  `json:"created_at,omitempty"`
	UpdatedAt    string  `json:"updated_at,omitempty"`
}
