package handlers

type ProductRequest struct {
	Id           int     `json:"id,omitempty"`
	Name         string  `json:"name"`
	Manufacturer string  `json:"manufacturer,omitempty"`
	Price        float64 `json:"price,omitempty"`
	TechSpec     string  `json:"tech_spec,omitempty"`
	MinThreshold int     `json:"min_threshold"`
}

type ProductResponse struct {
	Id           int     `json:"id"`
	Name         string  `json:"name"`
	Manufacturer string  `json:"manufacturer,omitempty"`
	Price        float64 `json:"price,omitempty"`
	TechSpec     string  `json:"tech_spec,omitempty"`
	MinThreshold int     `json:"min_threshold"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type ProductsSearchResult struct {
	Data []ProductResponse `json:"data"`
	Meta Meta              `json:"meta,omitempty"`
}

type MovementRequest struct {
	Kind     string `json:"kind"` // "IN" or "OUT"
	Quantity int    `json:"quantity"`
}

type MovementResponse struct {
	ID        int    `json:"id"`
	ProductID int    `json:"product_id"`
	Kind      string `json:"kind"`
	Quantity  int    `json:"quantity"`
	CreatedAt string `json:"created_at"`
}

type MovementsSearchResult struct {
	Data []MovementResponse `json:"data"`
	Meta Meta               `json:"meta,omitempty"`
}

// MovementResult is the success payload of applying a movement: the balance
// after the commit.
type MovementResult struct {
	ProductID int  `json:"product_id"`
	Quantity  int  `json:"quantity"`
	LowStock  bool `json:"low_stock,omitempty"`
}

type BalanceLineResponse struct {
	ProductID    int    `json:"product_id"`
	Name         string `json:"name"`
	MinThreshold int    `json:"min_threshold"`
	Quantity     int    `json:"quantity"`
	LowStock     bool   `json:"low_stock,omitempty"`
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

type RegisterResult struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ImportProductsResult struct {
	ImportedProductsCount int                      `json:"imported"`
	Errors                []ProductValidationError `json:"errors"`
}
