package reccache

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/dinerec/internal/db"
	"github.com/kailas-cloud/dinerec/internal/domain"
	"github.com/kailas-cloud/dinerec/internal/usecase/recommend"
)

type mockRecommender struct {
	results []recommend.Result
	err     error
	fp      string
	calls   int
}

func (m *mockRecommender) Recommend(_ context.Context, _ *domain.Query, _ int) ([]recommend.Result, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

func (m *mockRecommender) Options(_ context.Context) (recommend.Options, error) {
	return recommend.Options{Cities: []string{"Abohar"}}, nil
}

func (m *mockRecommender) Fingerprint() string { return m.fp }

// memStore is an in-memory store; getErr/setErr simulate an unavailable backend.
type memStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	ttls   map[string]time.Duration
	getErr error
	setErr error
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *memStore) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func newTestCachedRecommender(t *testing.T, inner *mockRecommender) (*CachedRecommender, *memStore) {
	t.Helper()
	ms := newMemStore()
	return New(inner, ms, "test:", time.Minute, nil, zap.NewNop()), ms
}

func mustQuery(t *testing.T, city string, cuisines ...string) domain.Query {
	t.Helper()
	q, err := domain.NewQuery(city, cuisines, 4.0, 300)
	if err != nil {
		t.Fatalf("NewQuery: %v", err)
	}
	return q
}
