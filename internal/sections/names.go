package sections

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-editor/internal/types"
)

// BaseName returns the default title for a new section of type t, e.g. "New Experience Section".
func BaseName(t types.SectionType) string {
	display := t.DisplayName()
	if display == "" {
		return "New Section"
	}
	return fmt.Sprintf("New %s Section", display)
}

// UniqueName returns base if no existing section uses it (case-insensitively),
// otherwise "base 2", "base 3", ... picking the first free suffix.
func UniqueName(base string, existing []types.Section) string {
	taken := make(map[string]bool, len(existing))
	for _, s := range existing {
		taken[strings.ToLower(s.Name)] = true
	}

	if !taken[strings.ToLower(base)] {
		return base
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s %d", base, n)
		if !taken[strings.ToLower(candidate)] {
			return candidate
		}
	}
}
