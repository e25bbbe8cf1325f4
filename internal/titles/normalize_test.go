package titles

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-editor/internal/llm"
)

type fakeClient struct {
	responses []string
	err       error
	prompts   []string
	tiers     []llm.ModelTier
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.tiers = append(f.tiers, tier)
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", nil
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

func (f *fakeClient) Close() error { return nil }

func TestParseTerms(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"comma separated", "Software Engineer, Backend Engineer, Platform Engineer", []string{"Software Engineer", "Backend Engineer", "Platform Engineer"}},
		{"capped at three", "A Engineer, B Engineer, C Engineer, D Engineer", []string{"A Engineer", "B Engineer", "C Engineer"}},
		{"numbered lines", "1. Data Scientist\n2) Machine Learning Engineer", []string{"Data Scientist", "Machine Learning Engineer"}},
		{"quotes and bullets", "- \"Product Manager\"\n* 'Program Manager'", []string{"Product Manager", "Program Manager"}},
		{"duplicates removed", "Software Engineer, software engineer, SWE", []string{"Software Engineer", "SWE"}},
		{"fenced answer", "```\nSite Reliability Engineer, DevOps Engineer\n```", []string{"Site Reliability Engineer", "DevOps Engineer"}},
		{"empty", "  , ,\n", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseTerms(tt.input))
		})
	}
}

func TestNormalize_Success(t *testing.T) {
	client := &fakeClient{responses: []string{"Software Engineer, Backend Engineer"}}
	n := NewNormalizer(client)

	terms, err := n.Normalize(context.Background(), "  Sr.   SWE (backend) ")
	require.NoError(t, err)

	assert.Equal(t, []string{"Software Engineer", "Backend Engineer"}, terms)
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "Sr. SWE (backend)")
	assert.Equal(t, []llm.ModelTier{llm.TierLite}, client.tiers)
}

func TestNormalize_RetriesWithStrictPrompt(t *testing.T) {
	client := &fakeClient{responses: []string{"```\n```", "Data Analyst"}}
	n := NewNormalizer(client, WithTier(llm.TierStandard))

	terms, err := n.Normalize(context.Background(), "numbers person")
	require.NoError(t, err)

	assert.Equal(t, []string{"Data Analyst"}, terms)
	assert.Len(t, client.prompts, 2)
	assert.Equal(t, []llm.ModelTier{llm.TierStandard, llm.TierStandard}, client.tiers)
}

func TestNormalize_ParseError(t *testing.T) {
	client := &fakeClient{responses: []string{"", " , "}}
	n := NewNormalizer(client)

	_, err := n.Normalize(context.Background(), "wizard")

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, " , ", parseErr.Response)
}

func TestNormalize_APICallError(t *testing.T) {
	cause := errors.New("quota exceeded")
	n := NewNormalizer(&fakeClient{err: cause})

	_, err := n.Normalize(context.Background(), "Engineer")

	var apiErr *APICallError
	require.True(t, errors.As(err, &apiErr))
	assert.ErrorIs(t, err, cause)
}

func TestNormalize_EmptyTitle(t *testing.T) {
	client := &fakeClient{}
	_, err := NewNormalizer(client).Normalize(context.Background(), "   ")

	assert.ErrorIs(t, err, ErrEmptyTitle)
	assert.Empty(t, client.prompts, "no model call for an empty title")
}
