package repo

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rsilveira/stock-ledger/internal/models"
)

// MemoryStore is an in-memory implementation of every repository interface.
// Products, balances and movements share one mutex because product creation
// and deletion span all three, mirroring the transactional Postgres paths.
// Used by handler tests and as a database-free local mode.
type MemoryStore struct {
	mu             sync.Mutex
	products       []models.Product
	nextProductID  int
	balances       map[int]int
	movements      []models.Movement
	nextMovementID int
	users          []models.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextProductID:  1,
		balances:       map[int]int{},
		nextMovementID: 1,
	}
}

// Clear resets all state between tests.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = nil
	s.nextProductID = 1
	s.balances = map[int]int{}
	s.movements = nil
	s.nextMovementID = 1
	s.users = nil
}

// Create adds a product and its zero balance.
func (s *MemoryStore) Create(product models.Product) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.products {
		if p.Name == product.Name {
			return models.Product{}, ErrDuplicatedValueUnique
		}
	}

	product.ID = s.nextProductID
	s.nextProductID++
	s.products = append(s.products, product)
	s.balances[product.ID] = 0
	return product, nil
}

func (s *MemoryStore) GetAll() ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *MemoryStore) GetByID(id int) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findProduct(id)
}

func (s *MemoryStore) findProduct(id int) (models.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (s *MemoryStore) GetByName(name string) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.Name == name {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (s *MemoryStore) Update(product models.Product) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.products {
		if p.ID == product.ID {
			s.products[i] = product
			return product, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Delete refuses while movements reference the product, otherwise removes the
// product and its balance together.
func (s *MemoryStore) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.movements {
		if m.ProductID == id {
			return ErrHasDependentMovements
		}
	}
	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			delete(s.balances, id)
			return nil
		}
	}
	return ErrProductNotFound
}

func matchesFilter(p models.Product, pf ProductFilter) bool {
	if pf.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(pf.Name)) {
		return false
	}
	if pf.MinPrice != nil && p.Price < *pf.MinPrice {
		return false
	}
	if pf.MaxPrice != nil && p.Price > *pf.MaxPrice {
		return false
	}
	return true
}

func (s *MemoryStore) Filter(pf ProductFilter) ([]models.Product, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var filtered []models.Product
	for _, p := range s.products {
		if matchesFilter(p, pf) {
			filtered = append(filtered, p)
		}
	}

	if pf.Offset != nil && *pf.Offset > len(filtered) {
		return []models.Product{}, len(filtered), nil
	}

	start := 0
	if pf.Offset != nil {
		start = clamp(*pf.Offset, 0, len(filtered))
	}
	end := len(filtered)
	if pf.Limit != nil && *pf.Limit > 0 {
		end = clamp(start+*pf.Limit, start, len(filtered))
	}

	return filtered[start:end], len(filtered), nil
}

// Get implements BalanceRepository.
func (s *MemoryStore) Get(productID int) (models.Balance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.balances[productID]
	if !ok {
		return models.Balance{}, ErrProductNotFound
	}
	return models.Balance{ProductID: productID, Quantity: q}, nil
}

// List implements BalanceRepository.
func (s *MemoryStore) List() ([]BalanceLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]BalanceLine, 0, len(s.products))
	for _, p := range s.products {
		lines = append(lines, BalanceLine{
			ProductID:    p.ID,
			Name:         p.Name,
			MinThreshold: p.MinThreshold,
			Quantity:     s.balances[p.ID],
		})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Name < lines[j].Name })
	return lines, nil
}

// ApplyMovement runs the read-check-write sequence under the store mutex: the
// in-memory stand-in for the row lock. compute receives the current quantity
// and floor and returns the new quantity or a rejection; rejections leave the
// store untouched.
func (s *MemoryStore) ApplyMovement(productID int, kind string, quantity int, compute func(current, threshold int) (int, error)) (models.Balance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.balances[productID]
	if !ok {
		return models.Balance{}, ErrProductNotFound
	}
	p, err := s.findProduct(productID)
	if err != nil {
		return models.Balance{}, err
	}

	next, err := compute(current, p.MinThreshold)
	if err != nil {
		return models.Balance{}, err
	}

	s.balances[productID] = next
	s.movements = append(s.movements, models.Movement{
		ID:        s.nextMovementID,
		ProductID: productID,
		Kind:      kind,
		Quantity:  quantity,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	s.nextMovementID++

	return models.Balance{ProductID: productID, Quantity: next}, nil
}

// GetByProductID implements MovementRepository. Newest first, like the
// Postgres repository.
func (s *MemoryStore) GetByProductID(productID int, mf MovementFilter) ([]models.Movement, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var filtered []models.Movement
	for i := len(s.movements) - 1; i >= 0; i-- {
		m := s.movements[i]
		if m.ProductID != productID {
			continue
		}
		if (mf.Since != nil && m.CreatedAt < mf.Since.UTC().Format(time.RFC3339)) ||
			(mf.Until != nil && m.CreatedAt > mf.Until.UTC().Format(time.RFC3339)) {
			continue
		}
		filtered = append(filtered, m)
	}

	if mf.Offset != nil && *mf.Offset > len(filtered) {
		return nil, len(filtered), nil
	}

	start := 0
	if mf.Offset != nil {
		start = clamp(*mf.Offset, 0, len(filtered))
	}
	end := len(filtered)
	if mf.Limit != nil && *mf.Limit > 0 {
		end = clamp(start+*mf.Limit, start, len(filtered))
	}

	return filtered[start:end], len(filtered), nil
}

func (s *MemoryStore) GetByUsername(username string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

func (s *MemoryStore) CreateUser(u models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == u.Username {
			return models.User{}, ErrDuplicatedValueUnique
		}
	}
	u.ID = len(s.users) + 1
	s.users = append(s.users, u)
	return u, nil
}

func (s *MemoryStore) GetDashboardMetrics() (Metrics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := Metrics{
		TotalProducts:  len(s.products),
		TotalMovements: len(s.movements),
	}
	counts := map[int]int{}
	for _, mv := range s.movements {
		counts[mv.ProductID]++
	}
	for _, p := range s.products {
		if s.balances[p.ID] < p.MinThreshold {
			m.LowStockCount++
		}
		if counts[p.ID] > m.MostMovedProduct.MovementCount {
			m.MostMovedProduct = MostMovedProduct{Name: p.Name, MovementCount: counts[p.ID]}
		}
	}
	return m, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
