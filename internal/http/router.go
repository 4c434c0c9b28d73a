package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/rsilveira/stock-ledger/docs"
	"github.com/rsilveira/stock-ledger/internal/http/handlers"
)

// NewRouter wires all routes. Inventory routes sit behind the auth gate;
// the handlers themselves never ask who is logged in, only that someone is.
func NewRouter(s *handlers.Server) http.Handler {
	r := chi.NewRouter()

	r.Post("/register", s.RegisterHandler)
	r.Post("/login", s.LoginHandler)
	r.Post("/token/refresh", s.RefreshHandler)
	r.Post("/logout", s.LogoutHandler)
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Group(func(pr chi.Router) {
		pr.Use(AuthMiddleware(s.Tokens()))

		pr.Post("/products", s.CreateProductHandler)
		pr.Get("/products", s.GetProductsHandler)
		pr.Get("/products/search", s.FilterProductsHandler)
		pr.Post("/products/import", s.ImportProductsHandler)
		pr.Get("/products/{id}", s.GetProductByIDHandler)
		pr.Put("/products/{id}", s.UpdateProductHandler)
		pr.Delete("/products/{id}", s.DeleteProductHandler)

		pr.Get("/products/{id}/balance", s.GetBalanceHandler)
		pr.Post("/products/{id}/movements", s.ApplyMovementHandler)
		pr.Get("/products/{id}/movements", s.GetMovementsHandler)
		pr.Get("/products/{id}/movements/export", s.ExportMovementsHandler)

		pr.Get("/balances", s.ListBalancesHandler)
		pr.Get("/metrics/dashboard", s.GetDashboardMetricsHandler)
	})

	return r
}
