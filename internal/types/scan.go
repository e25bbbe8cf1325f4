package types

// KeywordCategory is the coarse kind of a job-description keyword, used to suggest placement.
type KeywordCategory string

const (
	// CategoryTechnical is a tool, language, platform or hard skill
	CategoryTechnical KeywordCategory = "technical"
	// CategorySoft is an interpersonal or working-style skill
	CategorySoft KeywordCategory = "soft"
	// CategoryCredential is a degree, certification or license
	CategoryCredential KeywordCategory = "credential"
	// CategoryGeneral is anything else
	CategoryGeneral KeywordCategory = "general"
)

// Keyword is a term extracted from a job description together with how well the resume covers it.
type Keyword struct {
	Term     string          `json:"term"`
	Count    int             `json:"count"`
	Category KeywordCategory `json:"category"`
	// Suggestion says where a missing keyword usually belongs; empty for matched keywords.
	Suggestion string `json:"suggestion,omitempty"`
	// Related lists resume terms that look like near misses for a missing keyword.
	Related []string `json:"related,omitempty"`
}

// ScanResult is the keyword match report for one resume against one job description.
type ScanResult struct {
	MatchPercentage int       `json:"match_percentage"`
	MatchedCount    int       `json:"matched_count"`
	MissingCount    int       `json:"missing_count"`
	TotalKeywords   int       `json:"total_keywords"`
	Matched         []Keyword `json:"matched"`
	Missing         []Keyword `json:"missing"`
}
