package handlers

import (
	"github.com/rsilveira/stock-ledger/internal/auth"
	"github.com/rsilveira/stock-ledger/internal/ledger"
	"github.com/rsilveira/stock-ledger/internal/repo"
)

// Server bundles the handlers with their collaborators. Everything is
// injected; there is no package-level state.
type Server struct {
	products  repo.ProductRepository
	movements repo.MovementRepository
	balances  repo.BalanceRepository
	users     repo.UserRepository
	metrics   repo.MetricsRepository
	ledger    ledger.Mover
	tokens    *auth.TokenService
	refresh   auth.RefreshStore
	throttle  auth.LoginThrottle
}

type Deps struct {
	Products  repo.ProductRepository
	Movements repo.MovementRepository
	Balances  repo.BalanceRepository
	Users     repo.UserRepository
	Metrics   repo.MetricsRepository
	Ledger    ledger.Mover
	Tokens    *auth.TokenService
	Refresh   auth.RefreshStore
	Throttle  auth.LoginThrottle
}

func NewServer(d Deps) *Server {
	return &Server{
		products:  d.Products,
		movements: d.Movements,
		balances:  d.Balances,
		users:     d.Users,
		metrics:   d.Metrics,
		ledger:    d.Ledger,
		tokens:    d.Tokens,
		refresh:   d.Refresh,
		throttle:  d.Throttle,
	}
}

// Tokens exposes the token service for the auth middleware.
func (s *Server) Tokens() *auth.TokenService {
	return s.tokens
}
