package types

import (
	"encoding/json"
	"fmt"
)

// DeleteKind says what a pending deletion removes.
type DeleteKind string

const (
	// DeleteKindSection removes a whole section
	DeleteKindSection DeleteKind = "section"
	// DeleteKindEntry removes one item from a section's content
	DeleteKindEntry DeleteKind = "entry"
)

// DeleteTarget describes a destructive operation waiting for the user to confirm it.
type DeleteTarget struct {
	Kind         DeleteKind `json:"type"`
	SectionIndex int        `json:"section_index"`
	EntryIndex   *int       `json:"entry_index,omitempty"`
	SectionName  string     `json:"section_name"`
}

// TitleEdit is the transient state of an in-progress section title edit.
// Index is nil when no title is being edited.
type TitleEdit struct {
	Index     *int   `json:"editing_title_index"`
	Temporary string `json:"temporary_title"`
}

// Active reports whether a title is being edited.
func (e TitleEdit) Active() bool {
	return e.Index != nil
}

// Placement selects where a new section is inserted.
type Placement string

const (
	// PlacementTop inserts at index 0
	PlacementTop Placement = "top"
	// PlacementBottom appends
	PlacementBottom Placement = "bottom"
	// PlacementIndex inserts at an explicit (clamped) index
	PlacementIndex Placement = "index"
)

// Position is the insertion point for a new section. The zero value means top.
// In JSON it is either "top", "bottom" or an integer index.
type Position struct {
	Placement Placement
	Index     int
}

// Convenience positions.
var (
	PositionTop    = Position{Placement: PlacementTop}
	PositionBottom = Position{Placement: PlacementBottom}
)

// PositionAt returns a position at an explicit index.
func PositionAt(index int) Position {
	return Position{Placement: PlacementIndex, Index: index}
}

// MarshalJSON encodes the position as "top", "bottom" or a number.
func (p Position) MarshalJSON() ([]byte, error) {
	switch p.Placement {
	case PlacementIndex:
		return json.Marshal(p.Index)
	case PlacementBottom:
		return json.Marshal(string(PlacementBottom))
	default:
		return json.Marshal(string(PlacementTop))
	}
}

// UnmarshalJSON decodes "top", "bottom" or an integer index.
func (p *Position) UnmarshalJSON(data []byte) error {
	var index int
	if err := json.Unmarshal(data, &index); err == nil {
		*p = PositionAt(index)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("position must be \"top\", \"bottom\" or an integer: %w", err)
	}
	switch Placement(s) {
	case PlacementTop, "":
		*p = PositionTop
	case PlacementBottom:
		*p = PositionBottom
	default:
		return fmt.Errorf("unknown position %q", s)
	}
	return nil
}
