package keywords

import (
	"sort"
	"strings"

	"github.com/jonathan/resume-editor/internal/parsing"
	"github.com/jonathan/resume-editor/internal/types"
)

// minGeneralFrequency is how often an unrecognized word or bigram must appear in the job
// description before it counts as a keyword.
const minGeneralFrequency = 2

// unit is a token or a known phrase consumed as one piece.
type unit struct {
	text     string
	pos      int
	boundary bool
	category types.KeywordCategory
	// recognized is false for plain words that only qualify by frequency.
	recognized bool
	stop       bool
}

type candidate struct {
	key      string
	term     string
	category types.KeywordCategory
	first    int
	freq     int
}

// extract pulls candidate keywords out of a job description in order of first appearance.
func extract(job string) []candidate {
	units := segment(tokenize(job))

	bigrams := map[string]int{}
	for i := 0; i+1 < len(units); i++ {
		if isGeneral(units[i]) && isGeneral(units[i+1]) && !units[i+1].boundary {
			bigrams[units[i].text+" "+units[i+1].text]++
		}
	}

	found := map[string]*candidate{}
	var order []*candidate
	add := func(text string, category types.KeywordCategory, pos int) {
		term := parsing.NormalizeSkillName(text)
		key := strings.ToLower(term)
		if c, ok := found[key]; ok {
			c.freq++
			return
		}
		c := &candidate{key: key, term: term, category: category, first: pos, freq: 1}
		found[key] = c
		order = append(order, c)
	}

	general := map[string]*candidate{}
	var generalOrder []*candidate
	for i := 0; i < len(units); i++ {
		u := units[i]
		if u.stop {
			continue
		}
		if u.recognized {
			add(u.text, u.category, u.pos)
			continue
		}
		if i+1 < len(units) && isGeneral(units[i+1]) && !units[i+1].boundary {
			pair := u.text + " " + units[i+1].text
			if bigrams[pair] >= minGeneralFrequency {
				add(pair, types.CategoryGeneral, u.pos)
				i++
				continue
			}
		}
		if !isGeneral(u) {
			continue
		}
		if c, ok := general[u.text]; ok {
			c.freq++
			continue
		}
		c := &candidate{term: u.text, category: types.CategoryGeneral, first: u.pos, freq: 1}
		general[u.text] = c
		generalOrder = append(generalOrder, c)
	}

	for _, c := range generalOrder {
		if c.freq < minGeneralFrequency {
			continue
		}
		term := parsing.NormalizeSkillName(c.term)
		key := strings.ToLower(term)
		if existing, ok := found[key]; ok {
			existing.freq += c.freq
			continue
		}
		kept := &candidate{key: key, term: term, category: c.category, first: c.first, freq: c.freq}
		found[key] = kept
		order = append(order, kept)
	}

	out := make([]candidate, len(order))
	for i, c := range order {
		out[i] = *c
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].first < out[j].first })
	return out
}

// segment groups tokens into units, folding known phrases into a single unit. Phrases
// never cross a clause boundary.
func segment(tokens []token) []unit {
	units := make([]unit, 0, len(tokens))
	for i := 0; i < len(tokens); {
		if n := phraseAt(tokens, i); n > 0 {
			text := strings.Join(tokenTexts(tokens[i:i+n]), " ")
			units = append(units, unit{
				text:       text,
				pos:        i,
				boundary:   tokens[i].boundary,
				category:   categorize(text),
				recognized: true,
			})
			i += n
			continue
		}

		text := tokens[i].text
		u := unit{text: text, pos: i, boundary: tokens[i].boundary}
		switch {
		case stopWords[text], plainWord(tokens[i]):
			u.stop = true
		case isRecognized(text):
			u.recognized = true
			u.category = categorize(text)
		}
		units = append(units, u)
		i++
	}
	return units
}

func phraseAt(tokens []token, i int) int {
	best := 0
	for _, phrase := range knownPhrases {
		n := len(phrase)
		if n <= best || i+n > len(tokens) {
			continue
		}
		match := true
		for k := 0; k < n; k++ {
			if tokens[i+k].text != phrase[k] || (k > 0 && tokens[i+k].boundary) {
				match = false
				break
			}
		}
		if match {
			best = n
		}
	}
	return best
}

func isRecognized(text string) bool {
	return parsing.IsKnownSkill(text) || technicalTerms[text] || softSkills[text] ||
		credentialTerms[text] || techShaped(text)
}

func isGeneral(u unit) bool {
	return !u.stop && !u.recognized && len(u.text) >= 3 && hasLetter(u.text)
}
