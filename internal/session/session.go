// Package session keeps per-visitor storefront state in memory.
package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"bakery-storefront/internal/cart"
	"bakery-storefront/internal/concierge"
	"bakery-storefront/internal/service"
	"bakery-storefront/internal/util"
	"bakery-storefront/internal/view"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session wires one visitor's cart, screen, checkout guard and concierge.
type Session struct {
	ID     string
	Cart   *cart.Store
	Router *view.Router
	Chat   *concierge.Conversation
	Studio *concierge.Studio

	checkout util.InFlight
	lastSeen atomic.Int64
}

// Navigate changes screen. Going to checkout closes the cart drawer.
func (s *Session) Navigate(name view.ScreenName, section string) bool {
	if !s.Router.Navigate(name, section) {
		return false
	}
	if name == view.CheckoutName {
		s.Cart.SetOpen(false)
	}
	return true
}

// CheckoutTarget exposes the state the checkout service works on.
func (s *Session) CheckoutTarget() service.CheckoutTarget {
	return service.CheckoutTarget{Cart: s.Cart, Router: s.Router, Guard: &s.checkout}
}

// Busy reports whether a checkout or concierge call is in flight.
func (s *Session) Busy() bool {
	return s.checkout.Busy() || s.Chat.Busy() || s.Studio.Busy()
}

func (s *Session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

func (s *Session) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, s.lastSeen.Load()))
}

// Registry creates sessions on first use and drops idle ones. Cart lines
// survive eviction in Storage; screen and chat history do not.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	storage  cart.Storage
	adapter  concierge.Adapter
	logger   *zap.Logger
	now      func() time.Time
}

func NewRegistry(storage cart.Storage, adapter concierge.Adapter) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		storage:  storage,
		adapter:  adapter,
		logger:   util.GetLogger(),
		now:      time.Now,
	}
}

// NewID returns a fresh session identifier.
func NewID() string {
	return uuid.New().String()
}

// ValidID reports whether id looks like one issued by NewID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Get returns the session for id, creating it if needed. The cart is
// rehydrated outside the registry lock so a slow backend only delays the
// visitor being created.
func (r *Registry) Get(ctx context.Context, id string) *Session {
	if s := r.lookup(id); s != nil {
		return s
	}

	fresh := &Session{
		ID:     id,
		Cart:   cart.NewStore(ctx, cart.NewNamespaced(r.storage, "session:"+id)),
		Router: view.NewRouter(),
		Chat:   concierge.NewConversation(r.adapter),
		Studio: concierge.NewStudio(r.adapter),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if s, ok := r.sessions[id]; ok {
		s.touch(now)
		return s
	}
	fresh.touch(now)
	r.sessions[id] = fresh

	util.ActiveSessions.Set(float64(len(r.sessions)))
	r.logger.Debug("Session created", zap.String("session_id", id))
	return fresh
}

func (r *Registry) lookup(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil
	}
	s.touch(r.now())
	return s
}

// Len is the number of sessions held.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep removes sessions idle for longer than maxIdle. Sessions with a
// call in flight are kept. Expired cart keys are purged from storage
// backends that do not expire keys themselves.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	removed, remaining := r.dropIdle(maxIdle)

	purged := 0
	if p, ok := r.storage.(cart.Purger); ok {
		purged = p.PurgeExpired()
	}

	util.ActiveSessions.Set(float64(remaining))
	if removed > 0 || purged > 0 {
		r.logger.Info("Swept idle sessions",
			zap.Int("removed", removed),
			zap.Int("remaining", remaining),
			zap.Int("purged_carts", purged))
	}
	return removed
}

func (r *Registry) dropIdle(maxIdle time.Duration) (removed, remaining int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for id, s := range r.sessions {
		if s.idleSince(now) <= maxIdle || s.Busy() {
			continue
		}
		delete(r.sessions, id)
		removed++
	}
	return removed, len(r.sessions)
}
