package cart

import (
	"context"
	"errors"
	"sync"
	"time"
)

// StorageKey is the fixed key the cart is mirrored under.
const StorageKey = "qisti_cart"

// ErrNotFound is returned by Storage.Get when the key is absent.
var ErrNotFound = errors.New("storage key not found")

// Storage is durable key-value storage for the cart.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Purger is implemented by backends that drop expired keys on request
// rather than on their own.
type Purger interface {
	PurgeExpired() int
}

// MemoryStorage keeps values in process memory. With a TTL, every Set
// refreshes the key's expiry the way the Redis backend does, and expired
// keys read as absent until PurgeExpired drops them.
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string]memoryEntry
	ttl  time.Duration
	now  func() time.Time
}

type memoryEntry struct {
	value   []byte
	expires time.Time
}

// NewMemoryStorage returns storage whose keys never expire.
func NewMemoryStorage() *MemoryStorage {
	return NewExpiringMemoryStorage(0)
}

// NewExpiringMemoryStorage returns storage whose keys expire ttl after
// their last write. A zero ttl disables expiry.
func NewExpiringMemoryStorage(ttl time.Duration) *MemoryStorage {
	return &MemoryStorage{
		data: make(map[string]memoryEntry),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (m *MemoryStorage) expired(e memoryEntry, now time.Time) bool {
	return m.ttl > 0 && !now.Before(e.expires)
}

func (m *MemoryStorage) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.data[key]
	if !ok || m.expired(e, m.now()) {
		return nil, ErrNotFound
	}
	return append([]byte(nil), e.value...), nil
}

func (m *MemoryStorage) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	m.data[key] = memoryEntry{
		value:   append([]byte(nil), value...),
		expires: m.now().Add(m.ttl),
	}
	m.mu.Unlock()
	return nil
}

// PurgeExpired deletes expired keys and returns how many were dropped.
func (m *MemoryStorage) PurgeExpired() int {
	if m.ttl <= 0 {
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	purged := 0
	for k, e := range m.data {
		if m.expired(e, now) {
			delete(m.data, k)
			purged++
		}
	}
	return purged
}

// Len is the number of keys held, expired or not.
func (m *MemoryStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Namespaced prefixes every key with a namespace, so several visitors can
// share one backend while each sees the fixed StorageKey.
type Namespaced struct {
	base      Storage
	namespace string
}

func NewNamespaced(base Storage, namespace string) *Namespaced {
	return &Namespaced{base: base, namespace: namespace}
}

func (n *Namespaced) key(k string) string {
	return n.namespace + ":" + k
}

func (n *Namespaced) Get(ctx context.Context, key string) ([]byte, error) {
	return n.base.Get(ctx, n.key(key))
}

func (n *Namespaced) Set(ctx context.Context, key string, value []byte) error {
	return n.base.Set(ctx, n.key(key), value)
}
