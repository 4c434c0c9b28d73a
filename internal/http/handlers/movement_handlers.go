package handlers

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rsilveira/stock-ledger/internal/ledger"
	"github.com/rsilveira/stock-ledger/internal/repo"
)

// ApplyMovementHandler godoc
// @Summary Apply a stock movement
// @Description Validates an IN/OUT movement against the current balance and the minimum-stock threshold, then atomically updates the balance and appends the movement
// @Tags movements
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param movement body MovementRequest true "Movement to apply"
// @Success 200 {object} MovementResult
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Product not found"
// @Failure 409 {string} string "Insufficient stock or below minimum threshold"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id}/movements [post]
// @Security BearerAuth
func (s *Server) ApplyMovementHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	var req MovementRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	kind, err := ledger.ParseKind(req.Kind)
	if err != nil {
		http.Error(w, "kind must be IN or OUT", http.StatusBadRequest)
		return
	}

	balance, err := s.ledger.ApplyMovement(r.Context(), id, kind, req.Quantity)
	if err != nil {
		s.writeMovementError(w, err)
		return
	}

	product, perr := s.products.GetByID(id)
	lowStock := perr == nil && balance.Quantity < product.MinThreshold
	if lowStock {
		log.Printf("⚠️ ALERT: Product %d (%s) is below threshold! Qty=%d, Threshold=%d",
			product.ID, product.Name, balance.Quantity, product.MinThreshold)
	}

	_ = writeJSON(w, http.StatusOK, MovementResult{
		ProductID: balance.ProductID,
		Quantity:  balance.Quantity,
		LowStock:  lowStock,
	})
}

// writeMovementError maps the engine's error taxonomy onto HTTP statuses.
// Business rejections carry their numeric reason verbatim; store failures are
// logged and reported generically.
func (s *Server) writeMovementError(w http.ResponseWriter, err error) {
	var (
		insufficient *ledger.InsufficientStockError
		belowFloor   *ledger.BelowThresholdError
		storeErr     *ledger.StoreError
	)
	switch {
	case errors.Is(err, ledger.ErrInvalidInput):
		http.Error(w, "quantity must be a positive integer", http.StatusBadRequest)
	case errors.Is(err, ledger.ErrProductNotFound):
		http.Error(w, "product not found", http.StatusNotFound)
	case errors.As(err, &insufficient):
		http.Error(w, insufficient.Error(), http.StatusConflict)
	case errors.As(err, &belowFloor):
		http.Error(w, belowFloor.Error(), http.StatusConflict)
	case errors.As(err, &storeErr):
		log.Printf("movement transaction failed: %v", storeErr)
		http.Error(w, "could not process movement", http.StatusInternalServerError)
	default:
		log.Printf("movement failed: %v", err)
		http.Error(w, "could not process movement", http.StatusInternalServerError)
	}
}

// GetMovementsHandler godoc
// @Summary Get product movement logs
// @Tags movements
// @Produce json
// @Param id path int true "Product ID"
// @Param since query string false "Filter movements from this timestamp (RFC3339)"
// @Param until query string false "Filter movements until this timestamp (RFC3339)"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} MovementsSearchResult
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Product not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id}/movements [get]
// @Security BearerAuth
func (s *Server) GetMovementsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	if _, err := s.products.GetByID(id); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}

	since, until, ok := parseDateRange(w, r)
	if !ok {
		return
	}

	var limit, offset *int

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		v, err := strconv.Atoi(limitStr)
		if err != nil {
			http.Error(w, "invalid limit format", http.StatusBadRequest)
			return
		}
		limit = &v
	}
	if limit != nil && *limit <= 0 {
		http.Error(w, "limit must be greater than zero", http.StatusBadRequest)
		return
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		v, err := strconv.Atoi(offsetStr)
		if err != nil {
			http.Error(w, "invalid offset format", http.StatusBadRequest)
			return
		}
		offset = &v
	}
	if offset != nil && *offset < 0 {
		http.Error(w, "offset must be zero or positive", http.StatusBadRequest)
		return
	}

	movements, total, err := s.movements.GetByProductID(id, repo.MovementFilter{
		Since:  since,
		Until:  until,
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		log.Printf("could not retrieve movements for product %d: %v", id, err)
		http.Error(w, "could not retrieve movements", http.StatusInternalServerError)
		return
	}

	response := MovementsSearchResult{
		Data: make([]MovementResponse, len(movements)),
		Meta: Meta{TotalCount: total},
	}
	for i, m := range movements {
		response.Data[i] = MovementResponse{
			ID:        m.ID,
			ProductID: m.ProductID,
			Kind:      m.Kind,
			Quantity:  m.Quantity,
			CreatedAt: m.CreatedAt,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// ExportMovementsHandler godoc
// @Summary Export product movement logs
// @Tags movements
// @Produce text/csv, application/json
// @Param id path int true "Product ID"
// @Param format query string true "Export format (csv or json)"
// @Param since query string false "Filter from timestamp (RFC3339)"
// @Param until query string false "Filter until timestamp (RFC3339)"
// @Success 200 {file} file
// @Failure 400 {string} string "Invalid input"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id}/movements/export [get]
// @Security BearerAuth
func (s *Server) ExportMovementsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	format := r.URL.Query().Get("format")
	if format != "csv" && format != "json" {
		http.Error(w, "format must be 'csv' or 'json'", http.StatusBadRequest)
		return
	}

	since, until, ok := parseDateRange(w, r)
	if !ok {
		return
	}

	movements, _, err := s.movements.GetByProductID(id, repo.MovementFilter{Since: since, Until: until})
	if err != nil {
		http.Error(w, "could not retrieve movements", http.StatusInternalServerError)
		return
	}

	switch format {
	case "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="movements.json"`)
		json.NewEncoder(w).Encode(movements)

	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="movements.csv"`)

		csvWriter := csv.NewWriter(w)
		_ = csvWriter.Write([]string{"id", "product_id", "kind", "quantity", "created_at"})
		for _, m := range movements {
			_ = csvWriter.Write([]string{
				strconv.Itoa(m.ID),
				strconv.Itoa(m.ProductID),
				m.Kind,
				strconv.Itoa(m.Quantity),
				m.CreatedAt,
			})
		}
		csvWriter.Flush()
	}
}

// parseDateRange reads the since/until query parameters. URL query decoding
// turns the + of an RFC3339 zone offset into a space, so that substitution is
// reversed before parsing.
func parseDateRange(w http.ResponseWriter, r *http.Request) (since, until *time.Time, ok bool) {
	sinceStr := r.URL.Query().Get("since")
	untilStr := r.URL.Query().Get("until")

	if len(sinceStr) == len(time.RFC3339) && sinceStr[len(sinceStr)-6] == ' ' {
		sinceStr = sinceStr[:len(sinceStr)-6] + "+" + sinceStr[len(sinceStr)-5:]
	}
	if len(untilStr) == len(time.RFC3339) && untilStr[len(untilStr)-6] == ' ' {
		untilStr = untilStr[:len(untilStr)-6] + "+" + untilStr[len(untilStr)-5:]
	}

	if sinceStr != "" {
		ts, err := time.Parse(time.RFC3339, sinceStr)
		if err != nil {
			log.Printf("could not parse since date %s: %v", sinceStr, err)
			http.Error(w, "invalid since date format", http.StatusBadRequest)
			return nil, nil, false
		}
		since = &ts
	}
	if untilStr != "" {
		ts, err := time.Parse(time.RFC3339, untilStr)
		if err != nil {
			log.Printf("could not parse until date %s: %v", untilStr, err)
			http.Error(w, "invalid until date format", http.StatusBadRequest)
			return nil, nil, false
		}
		until = &ts
	}
	return since, until, true
}
