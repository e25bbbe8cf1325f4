package keywords

import (
	"strings"
	"unicode"
)

// token is one lowercase word. boundary is set when a clause break (comma, semicolon,
// sentence end, line break, bullet) separates it from the previous token; phrases never
// span a boundary. cased records whether the word was written with a capital letter.
type token struct {
	text     string
	boundary bool
	cased    bool
}

// ambiguousAliases are skill spellings that are also everyday words, as in "ready to go"
// or "the rest of the team". They only name the skill when written with a capital.
var ambiguousAliases = map[string]bool{"go": true, "rest": true, "ai": true, "ml": true}

// plainWord reports a token that spells an ambiguous alias in ordinary lowercase prose.
func plainWord(t token) bool {
	return ambiguousAliases[t.text] && !t.cased
}

// tokenize splits text into lowercase tokens. Tech suffixes like "c++", "c#", "node.js" and
// "ci/cd" survive because + # . / - and ' count as word characters inside a token.
func tokenize(text string) []token {
	var (
		tokens   []token
		word     strings.Builder
		boundary bool
		cased    bool
	)

	flush := func() {
		w := word.String()
		word.Reset()
		wasCased := cased
		cased = false
		if w == "" {
			return
		}
		trimmed := strings.TrimRight(w, ".-/'")
		endsSentence := len(trimmed) < len(w) && strings.HasSuffix(w, ".")
		trimmed = strings.TrimLeft(trimmed, "-/'")
		if hasAlnum(trimmed) {
			tokens = append(tokens, token{text: trimmed, boundary: boundary, cased: wasCased})
			boundary = false
		}
		if endsSentence {
			boundary = true
		}
	}

	for _, r := range text {
		if r == '’' {
			r = '\''
		}
		switch {
		case isWordRune(r):
			if unicode.IsUpper(r) {
				cased = true
			}
			word.WriteRune(unicode.ToLower(r))
		default:
			flush()
			if isClauseBreak(r) {
				boundary = true
			}
		}
	}
	flush()
	return tokens
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) ||
		r == '+' || r == '#' || r == '.' || r == '/' || r == '-' || r == '\''
}

func isClauseBreak(r rune) bool {
	switch r {
	case ',', ';', ':', '!', '?', '(', ')', '[', ']', '\n', '|', '•', '·':
		return true
	}
	return false
}

func hasAlnum(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// techShaped reports tokens that look like technology names: "c++", "c#", "node.js", "s3", "ci/cd".
func techShaped(s string) bool {
	if strings.Contains(s, " ") || len(s) < 2 {
		return false
	}
	return hasLetter(s) && strings.ContainsAny(s, "+#./0123456789")
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func tokenTexts(tokens []token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.text
	}
	return out
}
