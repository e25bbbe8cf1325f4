// Package titles maps a free-form job title to up to three standard job titles using a
// language model.
package titles

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-editor/internal/llm"
	"github.com/jonathan/resume-editor/internal/prompts"
)

// MaxTerms is the most titles a normalization returns.
const MaxTerms = 3

const promptFile = "titles.json"

// listMarker matches numbering or bullets a model puts in front of a title.
var listMarker = regexp.MustCompile(`^(\d+[.)]|[-*•])\s*`)

// Normalizer turns free-form titles into standard ones.
type Normalizer struct {
	client llm.Client
	tier   llm.ModelTier
	logger *zap.Logger
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithTier selects the model tier used for normalization.
func WithTier(tier llm.ModelTier) Option {
	return func(n *Normalizer) { n.tier = tier }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(n *Normalizer) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// NewNormalizer creates a Normalizer backed by client.
func NewNormalizer(client llm.Client, opts ...Option) *Normalizer {
	n := &Normalizer{client: client, tier: llm.TierLite, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(n)
	}
	n.logger = n.logger.With(zap.String("component", "titles"))
	return n
}

// Normalize returns up to MaxTerms standard titles for title, most likely first. When the
// first answer holds no usable titles the model is asked once more with a stricter prompt.
func (n *Normalizer) Normalize(ctx context.Context, title string) ([]string, error) {
	title = strings.Join(strings.Fields(title), " ")
	if title == "" {
		return nil, ErrEmptyTitle
	}

	var response string
	for _, key := range []string{"normalize-title", "normalize-title-strict"} {
		template, err := prompts.Get(promptFile, key)
		if err != nil {
			return nil, err
		}
		prompt := prompts.Format(template, map[string]string{"Title": title})

		response, err = n.client.GenerateContent(ctx, prompt, n.tier)
		if err != nil {
			return nil, &APICallError{Message: "failed to normalize title", Cause: err}
		}
		if terms := ParseTerms(response); len(terms) > 0 {
			n.logger.Debug("title normalized", zap.String("title", title), zap.Strings("terms", terms))
			return terms, nil
		}
		n.logger.Warn("model returned no usable titles", zap.String("prompt", key), zap.String("response", response))
	}

	return nil, &ParseError{Message: "no titles in model response", Response: response}
}

// ParseTerms splits a comma- or line-separated model answer into at most MaxTerms
// distinct titles, dropping quotes, numbering and empty entries.
func ParseTerms(response string) []string {
	response = llm.StripCodeFence(response)
	fields := strings.FieldsFunc(response, func(r rune) bool {
		return r == ',' || r == '\n' || r == ';'
	})

	seen := make(map[string]bool, len(fields))
	terms := make([]string, 0, MaxTerms)
	for _, field := range fields {
		term := strings.TrimSpace(field)
		term = listMarker.ReplaceAllString(term, "")
		term = strings.Trim(term, "\"'`. ")
		term = strings.Join(strings.Fields(term), " ")
		if term == "" {
			continue
		}
		key := strings.ToLower(term)
		if seen[key] {
			continue
		}
		seen[key] = true
		terms = append(terms, term)
		if len(terms) == MaxTerms {
			break
		}
	}
	return terms
}
