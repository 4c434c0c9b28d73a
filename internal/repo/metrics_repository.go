package repo

// MostMovedProduct names the product with the longest movement history.
type MostMovedProduct struct {
	Name          string `json:"name"`
	MovementCount int    `json:"movement_count"`
}

// Metrics is the dashboard aggregate: catalog size, ledger size and how many
// balances currently sit under their product's minimum-stock floor.
type Metrics struct {
	TotalProducts    int              `json:"total_products"`
	TotalMovements   int              `json:"total_movements"`
	LowStockCount    int              `json:"low_stock_count"`
	MostMovedProduct MostMovedProduct `json:"most_moved_product"`
}

type MetricsRepository interface {
	GetDashboardMetrics() (Metrics, error)
}
