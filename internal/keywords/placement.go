package keywords

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/jonathan/resume-editor/internal/parsing"
	"github.com/jonathan/resume-editor/internal/types"
)

const maxRelated = 3

var suggestions = map[types.KeywordCategory]string{
	types.CategoryTechnical:  "Add it to your skills section",
	types.CategorySoft:       "Show it in an experience bullet with a concrete example",
	types.CategoryCredential: "List it under education or certifications",
	types.CategoryGeneral:    "Work it into your summary or an experience bullet",
}

// Suggestion returns where a missing keyword of the given category usually belongs.
func Suggestion(category types.KeywordCategory) string {
	if s, ok := suggestions[category]; ok {
		return s
	}
	return suggestions[types.CategoryGeneral]
}

func categorize(text string) types.KeywordCategory {
	switch {
	case credentialTerms[text]:
		return types.CategoryCredential
	case softSkills[text]:
		return types.CategorySoft
	case technicalTerms[text], parsing.IsKnownSkill(text), techShaped(text):
		return types.CategoryTechnical
	}
	return types.CategoryGeneral
}

// related finds resume words that look like near misses for a missing single-word term,
// such as "kubernets" for "kubernetes" or "microservice" for "microservices".
func related(key string, vocabulary []string) []string {
	if strings.Contains(key, " ") || len(key) < 4 {
		return nil
	}
	limit := len(key) / 3
	if limit < 1 {
		limit = 1
	}

	type near struct {
		word     string
		distance int
	}
	var hits []near
	for _, w := range vocabulary {
		if w == key || len(w) < 3 {
			continue
		}
		if !fuzzy.MatchNormalizedFold(w, key) && !fuzzy.MatchNormalizedFold(key, w) {
			continue
		}
		if d := fuzzy.LevenshteinDistance(w, key); d <= limit {
			hits = append(hits, near{word: w, distance: d})
		}
	}
	if len(hits) == 0 {
		return nil
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].distance != hits[j].distance {
			return hits[i].distance < hits[j].distance
		}
		return hits[i].word < hits[j].word
	})
	if len(hits) > maxRelated {
		hits = hits[:maxRelated]
	}
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.word
	}
	return out
}
