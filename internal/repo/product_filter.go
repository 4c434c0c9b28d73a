package repo

type ProductFilter struct {
	Name     string
	MinPrice *float64
	MaxPrice *float64
	Offset   *int
	Limit    *int
}
