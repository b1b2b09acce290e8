package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"bakery-storefront/internal/models"
	"bakery-storefront/internal/util"

	"go.uber.org/zap"
)

// Store owns one visitor's cart lines and the drawer visibility flag.
// Every mutation is mirrored to Storage; construction rehydrates from it.
// Store is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	lines   []models.CartLine
	open    bool
	storage Storage
	logger  *zap.Logger
}

// NewStore creates a cart backed by storage, restoring any saved lines.
// Missing or unreadable state yields an empty cart.
func NewStore(ctx context.Context, storage Storage) *Store {
	s := &Store{
		storage: storage,
		logger:  util.GetLogger(),
	}
	s.lines = s.load(ctx)
	return s
}

// AddItem increments the quantity of an existing line for item.ID or
// appends a new line with quantity 1.
func (s *Store) AddItem(ctx context.Context, item models.CatalogItem) {
	item = item.Priced()

	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexOf(item.ID); idx >= 0 {
		s.lines[idx].Quantity++
	} else {
		s.lines = append(s.lines, models.CartLine{CatalogItem: item, Quantity: 1})
	}

	util.CartMutationsTotal.WithLabelValues("add").Inc()
	s.persist(ctx)
}

// RemoveItem deletes the line for id. Absent ids are ignored.
func (s *Store) RemoveItem(ctx context.Context, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexOf(id); idx >= 0 {
		s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
	}

	util.CartMutationsTotal.WithLabelValues("remove").Inc()
	s.persist(ctx)
}

// UpdateQuantity adds delta to the line's quantity, never going below 1.
// Absent ids are ignored.
func (s *Store) UpdateQuantity(ctx context.Context, id int, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexOf(id); idx >= 0 {
		s.lines[idx].Quantity = max(1, s.lines[idx].Quantity+delta)
	}

	util.CartMutationsTotal.WithLabelValues("update").Inc()
	s.persist(ctx)
}

// Clear empties the cart. The visibility flag is left alone.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = make([]models.CartLine, 0)

	util.CartMutationsTotal.WithLabelValues("clear").Inc()
	s.persist(ctx)
}

// SetOpen shows or hides the cart drawer.
func (s *Store) SetOpen(open bool) {
	s.mu.Lock()
	s.open = open
	s.mu.Unlock()
}

func (s *Store) IsOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.open
}

// Lines returns a copy of the lines in insertion order.
func (s *Store) Lines() []models.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CopyLines(s.lines)
}

// Total is recomputed from the lines on every call.
func (s *Store) Total() models.Money {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.LinesTotal(s.lines)
}

// Count is the sum of quantities.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

func (s *Store) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines) == 0
}

func (s *Store) indexOf(id int) int {
	for i, l := range s.lines {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// persist must be called with mu held.
func (s *Store) persist(ctx context.Context) {
	data, err := json.Marshal(s.lines)
	if err != nil {
		util.CartPersistFailuresTotal.Inc()
		s.logger.Error("Failed to encode cart", zap.Error(err))
		return
	}

	if err := s.storage.Set(ctx, StorageKey, data); err != nil {
		util.CartPersistFailuresTotal.Inc()
		s.logger.Error("Failed to save cart to storage", zap.Error(err))
	}
}

func (s *Store) load(ctx context.Context) []models.CartLine {
	empty := make([]models.CartLine, 0)

	data, err := s.storage.Get(ctx, StorageKey)
	if errors.Is(err, ErrNotFound) {
		return empty
	}
	if err != nil {
		util.CartRehydrateFailuresTotal.WithLabelValues("storage").Inc()
		s.logger.Warn("Failed to load cart from storage", zap.Error(err))
		return empty
	}

	var stored []models.CartLine
	if err := json.Unmarshal(data, &stored); err != nil {
		util.CartRehydrateFailuresTotal.WithLabelValues("decode").Inc()
		s.logger.Warn("Discarding unreadable cart", zap.Error(err))
		return empty
	}

	return sanitize(stored)
}

// sanitize restores the cart invariants on stored lines: the first line per
// id wins and quantities are at least 1.
func sanitize(stored []models.CartLine) []models.CartLine {
	lines := make([]models.CartLine, 0, len(stored))
	seen := make(map[int]bool, len(stored))
	for _, l := range stored {
		if seen[l.ID] {
			continue
		}
		seen[l.ID] = true
		l.CatalogItem = l.CatalogItem.Priced()
		l.Quantity = max(1, l.Quantity)
		lines = append(lines, l)
	}
	return lines
}
