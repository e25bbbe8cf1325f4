package server

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-editor/internal/titles"
	"github.com/jonathan/resume-editor/internal/types"
)

func TestHandleNormalizeTitle(t *testing.T) {
	fake := &fakeTitles{terms: []string{"Software Engineer", "Backend Engineer"}}
	s := newTestServer(t, Config{Titles: fake})

	w := do(t, s, http.MethodPost, "/normalize-title", types.NormalizeTitleRequest{Title: "Sr. SWE (backend)"})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[types.NormalizeTitleResponse](t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, []string{"Software Engineer", "Backend Engineer"}, resp.Terms)
}

func TestHandleNormalizeTitle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		titles   TitleNormalizer
		body     any
		expected int
	}{
		{
			name:     "not configured",
			titles:   nil,
			body:     types.NormalizeTitleRequest{Title: "SWE"},
			expected: http.StatusServiceUnavailable,
		},
		{
			name:     "missing title",
			titles:   &fakeTitles{},
			body:     types.NormalizeTitleRequest{},
			expected: http.StatusBadRequest,
		},
		{
			name:     "title too long",
			titles:   &fakeTitles{},
			body:     types.NormalizeTitleRequest{Title: strings.Repeat("a", 201)},
			expected: http.StatusBadRequest,
		},
		{
			name:     "blank title",
			titles:   &fakeTitles{err: titles.ErrEmptyTitle},
			body:     types.NormalizeTitleRequest{Title: "   "},
			expected: http.StatusBadRequest,
		},
		{
			name:     "model failure",
			titles:   &fakeTitles{err: &titles.APICallError{Message: "failed", Cause: errors.New("quota")}},
			body:     types.NormalizeTitleRequest{Title: "SWE"},
			expected: http.StatusBadGateway,
		},
		{
			name:     "unusable answer",
			titles:   &fakeTitles{err: &titles.ParseError{Message: "no titles", Response: "?"}},
			body:     types.NormalizeTitleRequest{Title: "SWE"},
			expected: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, Config{Titles: tt.titles})
			w := do(t, s, http.MethodPost, "/normalize-title", tt.body)
			assert.Equal(t, tt.expected, w.Code)
		})
	}
}
