package ratelimit

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(t *testing.T, cfg *Config) (*Limiter, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cfg.CleanupInterval = 0
	l := NewLimiter(cfg, WithClock(clock.Now))
	t.Cleanup(l.Stop)
	return l, clock
}

func TestTokenBucket_TakeAndRefill(t *testing.T) {
	start := time.Now()
	b := newTokenBucket(2, 1, start)

	assert.True(t, b.take(start))
	assert.True(t, b.take(start))
	assert.False(t, b.take(start))

	assert.True(t, b.take(start.Add(time.Second)))
	assert.False(t, b.take(start.Add(time.Second)))
}

func TestTokenBucket_NeverExceedsCapacity(t *testing.T) {
	start := time.Now()
	b := newTokenBucket(3, 1, start)
	b.refill(start.Add(time.Hour))

	remaining, _, _ := b.status(start.Add(time.Hour))
	assert.Equal(t, 3, remaining)
}

func TestLimiter_LimitsTitleNormalization(t *testing.T) {
	l, clock := newTestLimiter(t, NewConfig(2, time.Minute, 2, nil))

	ok, info := l.Allow("10.0.0.1", "/normalize-title", http.MethodPost)
	assert.True(t, ok)
	assert.Equal(t, 2, info.Limit)
	assert.Equal(t, 1, info.Remaining)

	ok, _ = l.Allow("10.0.0.1", "/normalize-title", http.MethodPost)
	assert.True(t, ok)

	ok, info = l.Allow("10.0.0.1", "/normalize-title", http.MethodPost)
	assert.False(t, ok)
	assert.Equal(t, 0, info.Remaining)
	assert.Equal(t, 30*time.Second, info.RetryAfter)

	clock.Advance(31 * time.Second)
	ok, _ = l.Allow("10.0.0.1", "/normalize-title", http.MethodPost)
	assert.True(t, ok)
}

func TestLimiter_ClientsHaveSeparateBuckets(t *testing.T) {
	l, _ := newTestLimiter(t, NewConfig(1, time.Minute, 1, nil))

	ok, _ := l.Allow("a", "/normalize-title", http.MethodPost)
	assert.True(t, ok)
	ok, _ = l.Allow("a", "/normalize-title", http.MethodPost)
	assert.False(t, ok)

	ok, _ = l.Allow("b", "/normalize-title", http.MethodPost)
	assert.True(t, ok)
}

func TestLimiter_EditorEndpointsAreUnlimited(t *testing.T) {
	l, _ := newTestLimiter(t, NewConfig(1, time.Minute, 1, nil))

	for i := 0; i < 20; i++ {
		ok, _ := l.Allow("a", "/sessions/abc/sections", http.MethodGet)
		require.True(t, ok)
		ok, _ = l.Allow("a", "/health", http.MethodGet)
		require.True(t, ok)
	}
	assert.Zero(t, l.Len())
}

func TestLimiter_AllowListBypasses(t *testing.T) {
	l, _ := newTestLimiter(t, NewConfig(1, time.Minute, 1, []string{"127.0.0.1"}))

	for i := 0; i < 5; i++ {
		ok, _ := l.Allow("127.0.0.1", "/normalize-title", http.MethodPost)
		assert.True(t, ok)
	}
}

func TestLimiter_Disabled(t *testing.T) {
	cfg := NewConfig(1, time.Minute, 1, nil)
	cfg.Enabled = false
	l, _ := newTestLimiter(t, cfg)

	for i := 0; i < 5; i++ {
		ok, _ := l.Allow("a", "/normalize-title", http.MethodPost)
		assert.True(t, ok)
	}
}

func TestLimiter_DefaultLimitAppliesToUnmatched(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute})

	ok, _ := l.Allow("a", "/scan", http.MethodPost)
	assert.True(t, ok)
	ok, _ = l.Allow("a", "/scan", http.MethodPost)
	assert.False(t, ok)
}

func TestLimiter_CleanupDropsIdleBuckets(t *testing.T) {
	cfg := NewConfig(5, time.Minute, 5, nil)
	cfg.IdleTTL = 10 * time.Minute
	l, clock := newTestLimiter(t, cfg)

	l.Allow("a", "/normalize-title", http.MethodPost)
	clock.Advance(5 * time.Minute)
	l.Allow("b", "/normalize-title", http.MethodPost)
	require.Equal(t, 2, l.Len())

	clock.Advance(6 * time.Minute)
	l.Cleanup()
	assert.Equal(t, 1, l.Len())
}

func TestLimiter_StopIsIdempotent(t *testing.T) {
	l := NewLimiter(NewConfig(1, time.Minute, 1, nil))
	l.Stop()
	assert.NotPanics(t, l.Stop)
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/normalize-title", Method: http.MethodPost, Limit: 1},
		{Path: "/scan/", Method: http.MethodPost, Limit: 2},
		{Path: "/scan/batch", Method: http.MethodPost, Limit: 3},
	}

	tests := []struct {
		name   string
		path   string
		method string
		limit  int
		found  bool
	}{
		{"exact", "/normalize-title", http.MethodPost, 1, true},
		{"exact wins over prefix", "/scan/batch", http.MethodPost, 3, true},
		{"prefix", "/scan/other", http.MethodPost, 2, true},
		{"method mismatch", "/normalize-title", http.MethodGet, 0, false},
		{"no match", "/sessions", http.MethodPost, 0, false},
		{"health unlimited", "/health", http.MethodGet, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if !tt.found {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.limit, got.Limit)
		})
	}
}
