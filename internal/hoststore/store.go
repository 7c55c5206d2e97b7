// Package hoststore holds optional, host-facing persistence adapters
// for a ratingengine.ModelState blob: an in-memory default, a Redis
// cache-style store, and a Postgres system-of-record, plus a
// circuit-breaker/rate-limiter wrapper any of them can be run behind.
// None of this is reachable from the core ratingengine packages —
// persistence is strictly the host's concern (spec.md §5).
package hoststore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store persists and retrieves an opaque codec-encoded ModelState blob
// for a given context key (typically a venue or league id).
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, blob []byte) (writeID string, err error)
}

// ErrNotFound is returned by Load when key has never been saved.
var ErrNotFound = fmt.Errorf("hoststore: key not found")

// MemoryStore is the zero-dependency default: a mutex-guarded map, for
// hosts that configure no external backend.
type MemoryStore struct {
	mu   sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (m *MemoryStore) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	blob, ok := m.blobs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), blob...), nil
}

func (m *MemoryStore) Save(_ context.Context, key string, blob []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = append([]byte(nil), blob...)
	return newWriteID(), nil
}

// saveTimeout bounds every RedisStore round trip (loads and saves),
// mirroring the teacher's cache adapter's fixed per-call deadline.
// PostgresStore uses its own configured timeout instead.
const saveTimeout = 500 * time.Millisecond

// newWriteID stamps every successful save with a fresh write id a host
// can log or correlate against an audit trail.
func newWriteID() string {
	return uuid.New().String()
}
