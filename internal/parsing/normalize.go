// Package parsing provides skill-name normalization shared by keyword extraction and matching.
package parsing

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// skillNormalizations maps common skill name variants (lowercase) to canonical names
var skillNormalizations = map[string]string{
	// Languages
	"go":         "Go",
	"golang":     "Go",
	"go lang":    "Go",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"ecmascript": "JavaScript",
	"typescript": "TypeScript",
	"ts":         "TypeScript",
	"c++":        "C++",
	"cpp":        "C++",
	"c#":         "C#",
	"csharp":     "C#",
	".net":       ".NET",
	"dotnet":     ".NET",
	"sql":        "SQL",
	"nosql":      "NoSQL",
	"html":       "HTML",
	"css":        "CSS",

	// Frameworks and runtimes
	"react":    "React",
	"react.js": "React",
	"reactjs":  "React",
	"vue":      "Vue",
	"vue.js":   "Vue",
	"vuejs":    "Vue",
	"node":     "Node.js",
	"node.js":  "Node.js",
	"nodejs":   "Node.js",
	"next.js":  "Next.js",
	"nextjs":   "Next.js",

	// Data stores
	"postgres":   "PostgreSQL",
	"postgresql": "PostgreSQL",
	"psql":       "PostgreSQL",
	"mysql":      "MySQL",
	"mongodb":    "MongoDB",
	"mongo":      "MongoDB",

	// Platforms
	"k8s":                 "Kubernetes",
	"kubernetes":          "Kubernetes",
	"aws":                 "AWS",
	"amazon web services": "AWS",
	"gcp":                 "GCP",
	"google cloud":        "GCP",
	"azure":               "Azure",
	"ci/cd":               "CI/CD",
	"cicd":                "CI/CD",
	"sre":                 "SRE",
	"saas":                "SaaS",

	// Interfaces
	"graphql": "GraphQL",
	"grpc":    "gRPC",
	"api":     "API",
	"apis":    "API",
	"rest":    "REST",
	"restful": "REST",

	// Fields
	"ml":               "Machine Learning",
	"machine learning": "Machine Learning",
	"ai":               "AI",
	"llm":              "LLM",
	"llms":             "LLM",
	"ui":               "UI",
	"ux":               "UX",
	"qa":               "QA",

	// Credentials
	"phd":   "PhD",
	"mba":   "MBA",
	"pmp":   "PMP",
	"cpa":   "CPA",
	"cissp": "CISSP",
}

// NormalizeSkillName normalizes a skill name to its canonical form
func NormalizeSkillName(skillName string) string {
	normalized := strings.Join(strings.Fields(skillName), " ")
	if normalized == "" {
		return ""
	}

	lower := strings.ToLower(normalized)
	if canonical, ok := skillNormalizations[lower]; ok {
		return canonical
	}

	// All-caps single words that aren't known acronyms: capitalize first letter only
	if normalized == strings.ToUpper(normalized) && normalized != lower {
		if !strings.Contains(lower, " ") && len(normalized) > 1 {
			return capitalize(lower)
		}
		return normalized
	}

	// Mixed case is taken as intentional
	if normalized != lower {
		return normalized
	}

	// All lowercase: capitalize each word
	words := strings.Split(normalized, " ")
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

// capitalize upper-cases the first letter of w, which may be multi-byte.
func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return string(unicode.ToUpper(r)) + w[size:]
}

// CanonicalKey returns the case-folded canonical form used to compare skills.
func CanonicalKey(skillName string) string {
	return strings.ToLower(NormalizeSkillName(skillName))
}

// Aliases returns every lowercase spelling that normalizes to the same skill as skillName,
// including the canonical spelling itself, sorted.
func Aliases(skillName string) []string {
	key := CanonicalKey(skillName)
	if key == "" {
		return nil
	}

	set := map[string]bool{key: true}
	for variant, canonical := range skillNormalizations {
		if strings.ToLower(canonical) == key {
			set[variant] = true
		}
	}

	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// IsKnownSkill reports whether skillName is one of the recognized skill spellings.
func IsKnownSkill(skillName string) bool {
	_, ok := skillNormalizations[strings.ToLower(strings.TrimSpace(skillName))]
	return ok
}
