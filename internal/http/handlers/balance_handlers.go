package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rsilveira/stock-ledger/internal/repo"
)

// ListBalancesHandler godoc
// @Summary List current balances for all products
// @Tags balances
// @Produce json
// @Success 200 {array} BalanceLineResponse
// @Failure 500 {string} string "Internal error"
// @Router /balances [get]
// @Security BearerAuth
func (s *Server) ListBalancesHandler(w http.ResponseWriter, r *http.Request) {
	lines, err := s.balances.List()
	if err != nil {
		http.Error(w, "could not fetch balances", http.StatusInternalServerError)
		return
	}

	response := make([]BalanceLineResponse, len(lines))
	for i, l := range lines {
		response[i] = BalanceLineResponse{
			ProductID:    l.ProductID,
			Name:         l.Name,
			MinThreshold: l.MinThreshold,
			Quantity:     l.Quantity,
			LowStock:     l.Quantity < l.MinThreshold,
		}
	}
	_ = writeJSON(w, http.StatusOK, response)
}

// GetBalanceHandler godoc
// @Summary Get the current balance for a product
// @Tags balances
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} MovementResult
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id}/balance [get]
// @Security BearerAuth
func (s *Server) GetBalanceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	balance, err := s.balances.Get(id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch balance", http.StatusInternalServerError)
		return
	}

	product, perr := s.products.GetByID(id)
	_ = writeJSON(w, http.StatusOK, MovementResult{
		ProductID: balance.ProductID,
		Quantity:  balance.Quantity,
		LowStock:  perr == nil && balance.Quantity < product.MinThreshold,
	})
}
