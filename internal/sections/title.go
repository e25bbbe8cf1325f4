package sections

import (
	"go.uber.org/zap"

	"github.com/jonathan/resume-editor/internal/types"
)

// TitleEdit returns the transient title edit state.
func (s *Store) TitleEdit() types.TitleEdit {
	return s.titleEdit
}

// BeginTitleEdit puts the title of the section at index into edit mode, seeding the draft
// with its current name. Any other title being edited is abandoned.
func (s *Store) BeginTitleEdit(index int) bool {
	if !inRange(index, len(s.sections)) {
		s.warnIndex("begin title edit", index)
		return false
	}
	i := index
	s.titleEdit = types.TitleEdit{Index: &i, Temporary: s.sections[index].Name}
	return true
}

// SetTemporaryTitle updates the draft only; the collection is not touched.
func (s *Store) SetTemporaryTitle(value string) {
	if !s.titleEdit.Active() {
		return
	}
	s.titleEdit.Temporary = value
}

// CommitTitleEdit writes explicit, or the draft when explicit is nil, into the edited section's
// name and leaves edit mode.
func (s *Store) CommitTitleEdit(explicit *string) bool {
	if !s.titleEdit.Active() {
		return false
	}

	index := *s.titleEdit.Index
	value := s.titleEdit.Temporary
	if explicit != nil {
		value = *explicit
	}
	s.titleEdit = types.TitleEdit{}

	if !inRange(index, len(s.sections)) {
		s.logger.Warn("commit title edit: index out of bounds",
			zap.Int("index", index),
			zap.Int("length", len(s.sections)))
		return false
	}

	section := s.sections[index]
	section.Name = value
	s.sections = withSection(s.sections, index, section)
	s.notify("Section title updated")
	return true
}

// CancelTitleEdit leaves edit mode without touching the collection.
func (s *Store) CancelTitleEdit() {
	s.titleEdit = types.TitleEdit{}
}
