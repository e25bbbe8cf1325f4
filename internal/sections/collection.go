package sections

import (
	"github.com/jonathan/resume-editor/internal/types"
)

// InsertAt returns a new slice with item inserted at index. index must already be within [0, len(items)].
func InsertAt[S ~[]E, E any](items S, index int, item E) S {
	out := make(S, 0, len(items)+1)
	out = append(out, items[:index]...)
	out = append(out, item)
	return append(out, items[index:]...)
}

// RemoveAt returns a new slice without the element at index. index must be in range.
func RemoveAt[S ~[]E, E any](items S, index int) S {
	out := make(S, 0, len(items)-1)
	out = append(out, items[:index]...)
	return append(out, items[index+1:]...)
}

// Move returns a new slice where the element at from has been extracted and reinserted at to.
// Both indices must be in range. The input is never modified.
func Move[S ~[]E, E any](items S, from, to int) S {
	if from == to {
		return append(make(S, 0, len(items)), items...)
	}
	moved := items[from]
	return InsertAt(RemoveAt(items, from), to, moved)
}

// ClampPosition resolves a position to a concrete insertion index for a collection of the given length.
func ClampPosition(pos types.Position, length int) int {
	switch pos.Placement {
	case types.PlacementBottom:
		return length
	case types.PlacementIndex:
		return clamp(pos.Index, 0, length)
	default:
		return 0
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func inRange(index, length int) bool {
	return index >= 0 && index < length
}

// removeContentItem removes one item from array-shaped content. ok is false for text content.
func removeContentItem(c types.Content, index int) (types.Content, bool) {
	switch v := c.(type) {
	case types.ExperienceContent:
		return RemoveAt(v, index), true
	case types.EducationContent:
		return RemoveAt(v, index), true
	case types.ListContent:
		return RemoveAt(v, index), true
	default:
		return c, false
	}
}

// moveContentItem moves one item within array-shaped content. ok is false for text content.
func moveContentItem(c types.Content, from, to int) (types.Content, bool) {
	switch v := c.(type) {
	case types.ExperienceContent:
		return Move(v, from, to), true
	case types.EducationContent:
		return Move(v, from, to), true
	case types.ListContent:
		return Move(v, from, to), true
	default:
		return c, false
	}
}

// appendBlankItem appends an empty entry of the right shape. ok is false for text content.
func appendBlankItem(c types.Content) (types.Content, bool) {
	switch v := c.(type) {
	case types.ExperienceContent:
		return InsertAt(v, len(v), types.ExperienceEntry{Description: []string{}}), true
	case types.EducationContent:
		return InsertAt(v, len(v), types.EducationEntry{}), true
	case types.ListContent:
		return InsertAt(v, len(v), types.ListItem{}), true
	default:
		return c, false
	}
}

// withSection returns a copy of sections with the element at index replaced.
func withSection(sections []types.Section, index int, s types.Section) []types.Section {
	out := append(make([]types.Section, 0, len(sections)), sections...)
	out[index] = s
	return out
}
