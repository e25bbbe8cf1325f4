// Package keywords scores how well a resume covers the keywords of a job description.
package keywords

import (
	"math"
	"sort"
	"strings"

	"github.com/jonathan/resume-editor/internal/parsing"
	"github.com/jonathan/resume-editor/internal/types"
)

// Options tunes a scan.
type Options struct {
	// MaxKeywords caps how many job keywords are scored. Zero means no cap.
	MaxKeywords int
}

// ScanResume compares resume against job with default options.
func ScanResume(resume, job string) types.ScanResult {
	return ScanResumeWithOptions(resume, job, Options{})
}

// ScanResumeWithOptions extracts keywords from job, counts each one in resume and reports
// the matched and missing sets. It is pure and deterministic.
func ScanResumeWithOptions(resume, job string, opts Options) types.ScanResult {
	candidates := limit(extract(job), opts.MaxKeywords)

	resumeTokens := tokenize(resume)
	vocabulary := vocabularyOf(tokenTexts(resumeTokens))

	result := types.ScanResult{
		Matched: []types.Keyword{},
		Missing: []types.Keyword{},
	}
	for _, c := range candidates {
		kw := types.Keyword{
			Term:     c.term,
			Count:    countOccurrences(resumeTokens, variants(c.term)),
			Category: c.category,
		}
		if kw.Count > 0 {
			result.Matched = append(result.Matched, kw)
			continue
		}
		kw.Suggestion = Suggestion(c.category)
		kw.Related = related(c.key, vocabulary)
		result.Missing = append(result.Missing, kw)
	}

	result.MatchedCount = len(result.Matched)
	result.MissingCount = len(result.Missing)
	result.TotalKeywords = len(candidates)
	result.MatchPercentage = Score(result.MatchedCount, result.TotalKeywords)
	return result
}

// Score is the rounded percentage of matched over total, clamped to 0..100. Zero keywords score 0.
func Score(matched, total int) int {
	if total <= 0 || matched <= 0 {
		return 0
	}
	pct := int(math.Round(float64(matched) / float64(total) * 100))
	if pct > 100 {
		return 100
	}
	return pct
}

// limit keeps the max most frequent candidates, recognized terms before plain words,
// then restores first-appearance order.
func limit(candidates []candidate, max int) []candidate {
	if max <= 0 || len(candidates) <= max {
		return candidates
	}
	ranked := append([]candidate(nil), candidates...)
	sort.SliceStable(ranked, func(i, j int) bool {
		gi := ranked[i].category == types.CategoryGeneral
		gj := ranked[j].category == types.CategoryGeneral
		if gi != gj {
			return !gi
		}
		if ranked[i].freq != ranked[j].freq {
			return ranked[i].freq > ranked[j].freq
		}
		return ranked[i].first < ranked[j].first
	})
	ranked = ranked[:max]
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].first < ranked[j].first })
	return ranked
}

// variants returns every token sequence that spells term, longest first.
func variants(term string) [][]string {
	aliases := parsing.Aliases(term)
	out := make([][]string, 0, len(aliases))
	for _, a := range aliases {
		out = append(out, strings.Fields(a))
	}
	sort.SliceStable(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}

// countOccurrences counts non-overlapping matches of any variant in tokens.
func countOccurrences(tokens []token, variants [][]string) int {
	count := 0
	for i := 0; i < len(tokens); {
		n := matchAt(tokens, i, variants)
		if n == 0 {
			i++
			continue
		}
		count++
		i += n
	}
	return count
}

func matchAt(tokens []token, i int, variants [][]string) int {
	for _, v := range variants {
		if len(v) == 0 || i+len(v) > len(tokens) {
			continue
		}
		if len(v) == 1 && plainWord(tokens[i]) {
			continue
		}
		ok := true
		for k, word := range v {
			if tokens[i+k].text != word {
				ok = false
				break
			}
		}
		if ok {
			return len(v)
		}
	}
	return 0
}

func vocabularyOf(tokens []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range tokens {
		if seen[t] || stopWords[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
