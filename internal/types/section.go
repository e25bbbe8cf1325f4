// Package types provides type definitions for structured data used throughout the resume editor.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SectionType is the discriminant of a section's content.
type SectionType string

// Known section types. Any other value is carried through and treated as a generic list.
const (
	SectionText              SectionType = "text"
	SectionExperience        SectionType = "experience"
	SectionEducation         SectionType = "education"
	SectionBulletedList      SectionType = "bulleted-list"
	SectionInlineList        SectionType = "inline-list"
	SectionDynamicColumnList SectionType = "dynamic-column-list"
	SectionIconList          SectionType = "icon-list"
)

// KnownSectionTypes lists the section types offered by the section-type picker, in display order.
var KnownSectionTypes = []SectionType{
	SectionText,
	SectionExperience,
	SectionEducation,
	SectionBulletedList,
	SectionInlineList,
	SectionDynamicColumnList,
	SectionIconList,
}

// IsKnown reports whether t is one of the built-in section types.
func (t SectionType) IsKnown() bool {
	for _, known := range KnownSectionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// DisplayName returns the human title for the type, e.g. "Bulleted List" for "bulleted-list".
func (t SectionType) DisplayName() string {
	words := strings.FieldsFunc(string(t), func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// Content is the polymorphic payload of a section. Its concrete type is decided by the section type.
type Content interface {
	isContent()
}

// TextContent is the payload of a text section.
type TextContent string

// ExperienceContent is the ordered list of entries in an experience section.
type ExperienceContent []ExperienceEntry

// EducationContent is the ordered list of entries in an education section.
type EducationContent []EducationEntry

// ListContent is the ordered list of items in bulleted, inline, dynamic-column, icon and unknown list sections.
type ListContent []ListItem

func (TextContent) isContent()       {}
func (ExperienceContent) isContent() {}
func (EducationContent) isContent()  {}
func (ListContent) isContent()       {}

// ExperienceEntry is one job in an experience section.
type ExperienceEntry struct {
	Company     string   `json:"company"`
	Title       string   `json:"title"`
	Dates       string   `json:"dates"`
	Description []string `json:"description"`
	Icon        string   `json:"icon,omitempty"`
}

// EducationEntry is one degree in an education section.
type EducationEntry struct {
	Degree       string `json:"degree"`
	School       string `json:"school"`
	Year         string `json:"year"`
	FieldOfStudy string `json:"field_of_study"`
	Icon         string `json:"icon,omitempty"`
}

// ListItem is one item of a list section. Plain lists only use Text; icon lists also carry an Icon.
// It encodes as a bare JSON string when it has no icon.
type ListItem struct {
	Text string `json:"text"`
	Icon string `json:"icon,omitempty"`
}

// MarshalJSON encodes icon-less items as plain strings.
func (li ListItem) MarshalJSON() ([]byte, error) {
	if li.Icon == "" {
		return json.Marshal(li.Text)
	}
	type plain ListItem
	return json.Marshal(plain(li))
}

// UnmarshalJSON accepts either a string or an {text, icon} object.
func (li *ListItem) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*li = ListItem{Text: text}
		return nil
	}
	type plain ListItem
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("list item must be a string or an object: %w", err)
	}
	*li = ListItem(p)
	return nil
}

// Section is the unit of resume content.
type Section struct {
	Name    string
	Type    SectionType
	Content Content
}

// DefaultContent returns the empty payload for a new section of type t.
func DefaultContent(t SectionType) Content {
	switch t {
	case SectionText:
		return TextContent("")
	case SectionExperience:
		return ExperienceContent{}
	case SectionEducation:
		return EducationContent{}
	default:
		return ListContent{}
	}
}

// ItemCount returns the number of items in an array-shaped content, and false for text content.
func ItemCount(c Content) (int, bool) {
	switch v := c.(type) {
	case ExperienceContent:
		return len(v), true
	case EducationContent:
		return len(v), true
	case ListContent:
		return len(v), true
	default:
		return 0, false
	}
}

type sectionJSON struct {
	Name    string          `json:"name"`
	Type    SectionType     `json:"type"`
	Content json.RawMessage `json:"content"`
}

// MarshalJSON encodes the section as {name, type, content}.
func (s Section) MarshalJSON() ([]byte, error) {
	content := s.Content
	if content == nil {
		content = DefaultContent(s.Type)
	}
	raw, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("failed to encode content of section %q: %w", s.Name, err)
	}
	return json.Marshal(sectionJSON{Name: s.Name, Type: s.Type, Content: raw})
}

// UnmarshalJSON decodes content according to the section type.
func (s *Section) UnmarshalJSON(data []byte) error {
	var raw sectionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.Name = raw.Name
	s.Type = raw.Type

	if len(raw.Content) == 0 || string(raw.Content) == "null" {
		s.Content = DefaultContent(raw.Type)
		return nil
	}

	var err error
	switch raw.Type {
	case SectionText:
		var v string
		err = json.Unmarshal(raw.Content, &v)
		s.Content = TextContent(v)
	case SectionExperience:
		var v ExperienceContent
		err = json.Unmarshal(raw.Content, &v)
		s.Content = v
	case SectionEducation:
		var v EducationContent
		err = json.Unmarshal(raw.Content, &v)
		s.Content = v
	default:
		var v ListContent
		err = json.Unmarshal(raw.Content, &v)
		s.Content = v
	}
	if err != nil {
		return fmt.Errorf("content of section %q does not match type %q: %w", raw.Name, raw.Type, err)
	}
	return nil
}
