package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonathan/resume-editor/internal/config"
	"github.com/jonathan/resume-editor/internal/sections"
	"github.com/jonathan/resume-editor/internal/server/ratelimit"
)

// fakeTitles answers title normalization without a model.
type fakeTitles struct {
	terms []string
	err   error
	calls int
}

func (f *fakeTitles) Normalize(_ context.Context, _ string) ([]string, error) {
	f.calls++
	return f.terms, f.err
}

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	s := New(cfg)
	t.Cleanup(s.Close)
	return s
}

// do sends body to the server's full handler chain. Strings are sent verbatim, anything
// else is encoded as JSON.
func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, Config{})

	w := do(t, s, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[map[string]any](t, w)
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, float64(0), resp["sessions"])
}

func TestNew_SessionsUseConfiguredScrollDelay(t *testing.T) {
	tests := []struct {
		name     string
		editor   config.EditorConfig
		expected time.Duration
	}{
		{"configured", config.EditorConfig{ScrollDelay: config.Duration(40 * time.Millisecond)}, 40 * time.Millisecond},
		{"unset falls back to store default", config.EditorConfig{}, sections.DefaultScrollDelay},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, Config{Editor: tt.editor})

			sess := s.sessions.create(nil)

			assert.Equal(t, tt.expected, sess.store.ScrollDelay())
		})
	}
}

func TestHandleEditorSettings(t *testing.T) {
	s := newTestServer(t, Config{Editor: config.Default().Editor})

	w := do(t, s, http.MethodGet, "/editor", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[EditorSettings](t, w)
	assert.Equal(t, int64(100), resp.ScrollDelayMS)
	assert.Equal(t, 8.0, resp.PointerDistance)
	assert.Equal(t, int64(250), resp.TouchDelayMS)
	assert.Equal(t, 5.0, resp.TouchTolerance)
	require.Len(t, resp.SectionTypes, 7)
	assert.Equal(t, "Bulleted List", resp.SectionTypes[3].DisplayName)
	assert.Equal(t, "New Bulleted List Section", resp.SectionTypes[3].DefaultName)
}

func TestWithCORS(t *testing.T) {
	s := newTestServer(t, Config{AllowedOrigin: "https://editor.example.com"})

	w := do(t, s, http.MethodOptions, "/sessions", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://editor.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PUT")
}

func TestWithRateLimit_LimitsTitleNormalization(t *testing.T) {
	titles := &fakeTitles{terms: []string{"Software Engineer"}}
	s := newTestServer(t, Config{
		RateLimit: ratelimit.NewConfig(1, time.Hour, 1, nil),
		Titles:    titles,
	})

	w := do(t, s, http.MethodPost, "/normalize-title", map[string]string{"title": "SWE II"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = do(t, s, http.MethodPost, "/normalize-title", map[string]string{"title": "SWE II"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	resp := decodeBody[map[string]any](t, w)
	assert.Equal(t, "rate_limit_exceeded", resp["error"])
	assert.Equal(t, 1, titles.calls, "limited requests never reach the model")

	// The editor endpoints stay unlimited.
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, "/sessions", nil).Code)
	}
}

func TestWithLogging(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s := newTestServer(t, Config{Logger: zap.New(core)})

	do(t, s, http.MethodGet, "/sessions/missing/sections", nil)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/sessions/missing/sections", fields["path"])
	assert.Equal(t, int64(http.StatusNotFound), fields["status"])
}

func TestConfigFrom(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Port = 9090
	cfg.RateLimit.Disabled = true
	cfg.RateLimit.AllowList = []string{"10.0.0.1"}

	sc := ConfigFrom(cfg, nil, nil)

	assert.Equal(t, 9090, sc.Port)
	assert.Equal(t, 30*time.Minute, sc.SessionTTL)
	require.NotNil(t, sc.RateLimit)
	assert.False(t, sc.RateLimit.Enabled)
	assert.True(t, sc.RateLimit.AllowList["10.0.0.1"])
	assert.Nil(t, sc.Titles)
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, Config{})
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/nope", nil).Code)
}
