// Package sections maintains the ordered collection of resume sections edited in one session.
//
// Every mutator replaces the collection with a new slice and leaves the previous one untouched,
// so callers may keep old snapshots around. Invalid indices never panic: they leave the
// collection as it was and log a warning.
package sections

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-editor/internal/types"
)

// DefaultScrollDelay is how long after an insertion the scroll-into-view callback fires.
// It only gives the renderer time to lay out the new section.
const DefaultScrollDelay = 100 * time.Millisecond

// Notifier shows short confirmation messages to the user.
type Notifier interface {
	Notify(message string)
}

// PickerCloser closes the "choose section type" prompt.
type PickerCloser interface {
	Close()
}

// Options wires the store to its collaborators. Every field is optional.
type Options struct {
	Logger   *zap.Logger
	Notifier Notifier
	Picker   PickerCloser
	// OnScroll is invoked with the index of a newly inserted section.
	OnScroll func(index int)
	// ScrollDelay defaults to DefaultScrollDelay.
	ScrollDelay time.Duration
	// Schedule runs f after d. Defaults to time.AfterFunc.
	Schedule func(d time.Duration, f func())
}

// Store owns the section collection and transient edit state of one editing session.
// It is not safe for concurrent use.
type Store struct {
	sections  []types.Section
	titleEdit types.TitleEdit
	pending   *types.DeleteTarget

	logger      *zap.Logger
	notifier    Notifier
	picker      PickerCloser
	onScroll    func(int)
	scrollDelay time.Duration
	schedule    func(time.Duration, func())
}

// NewStore creates a store holding initial. The slice is adopted, not copied.
func NewStore(initial []types.Section, opts Options) *Store {
	s := &Store{
		sections:    initial,
		logger:      opts.Logger,
		notifier:    opts.Notifier,
		picker:      opts.Picker,
		onScroll:    opts.OnScroll,
		scrollDelay: opts.ScrollDelay,
		schedule:    opts.Schedule,
	}
	if s.sections == nil {
		s.sections = []types.Section{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	s.logger = s.logger.With(zap.String("component", "sections"))
	if s.scrollDelay <= 0 {
		s.scrollDelay = DefaultScrollDelay
	}
	if s.schedule == nil {
		s.schedule = func(d time.Duration, f func()) { time.AfterFunc(d, f) }
	}
	return s
}

// ScrollDelay is the delay before the scroll-into-view callback fires after an insertion.
func (s *Store) ScrollDelay() time.Duration {
	return s.scrollDelay
}

// Sections returns the current collection. Callers must treat it as read-only.
func (s *Store) Sections() []types.Section {
	return s.sections
}

// Len returns the number of sections.
func (s *Store) Len() int {
	return len(s.sections)
}

// Load replaces the whole collection and drops any transient edit or delete state.
func (s *Store) Load(sections []types.Section) {
	if sections == nil {
		sections = []types.Section{}
	}
	s.sections = sections
	s.titleEdit = types.TitleEdit{}
	s.pending = nil
}

// AddSection inserts a new section of type t at pos and returns the index it landed at.
func (s *Store) AddSection(t types.SectionType, pos types.Position) int {
	section := types.Section{
		Name:    UniqueName(BaseName(t), s.sections),
		Type:    t,
		Content: types.DefaultContent(t),
	}

	index := ClampPosition(pos, len(s.sections))
	s.sections = InsertAt(s.sections, index, section)

	s.logger.Debug("section added",
		zap.String("name", section.Name),
		zap.String("type", string(t)),
		zap.Int("index", index))

	if s.picker != nil {
		s.picker.Close()
	}
	if s.onScroll != nil {
		onScroll := s.onScroll
		s.schedule(s.scrollDelay, func() { onScroll(index) })
	}

	return index
}

// UpdateSection replaces the section at index wholesale.
func (s *Store) UpdateSection(index int, section types.Section) bool {
	if !inRange(index, len(s.sections)) {
		s.warnIndex("update section", index)
		return false
	}
	if section.Content == nil {
		section.Content = types.DefaultContent(section.Type)
	}
	s.sections = withSection(s.sections, index, section)
	return true
}

// AddEntry appends a blank entry to an item section.
func (s *Store) AddEntry(sectionIndex int) bool {
	if !inRange(sectionIndex, len(s.sections)) {
		s.warnIndex("add entry", sectionIndex)
		return false
	}

	section := s.sections[sectionIndex]
	content, ok := appendBlankItem(section.Content)
	if !ok {
		return false
	}
	section.Content = content
	s.sections = withSection(s.sections, sectionIndex, section)
	return true
}

// ReorderSections moves a whole section from oldIndex to newIndex.
func (s *Store) ReorderSections(oldIndex, newIndex int) bool {
	if oldIndex == newIndex {
		return false
	}
	if !inRange(oldIndex, len(s.sections)) || !inRange(newIndex, len(s.sections)) {
		s.logger.Warn("reorder sections: index out of bounds",
			zap.Int("old_index", oldIndex),
			zap.Int("new_index", newIndex),
			zap.Int("length", len(s.sections)))
		return false
	}
	s.sections = Move(s.sections, oldIndex, newIndex)
	return true
}

// ReorderEntry moves one item of a section's content from oldIndex to newIndex.
// Text sections, empty content and equal indices are left alone.
func (s *Store) ReorderEntry(sectionIndex, oldIndex, newIndex int) bool {
	if !inRange(sectionIndex, len(s.sections)) {
		s.warnIndex("reorder entry", sectionIndex)
		return false
	}

	section := s.sections[sectionIndex]
	count, isList := types.ItemCount(section.Content)
	if !isList || count == 0 || oldIndex == newIndex {
		return false
	}
	if !inRange(oldIndex, count) || !inRange(newIndex, count) {
		s.logger.Warn("reorder entry: item index out of bounds",
			zap.Int("section_index", sectionIndex),
			zap.Int("old_index", oldIndex),
			zap.Int("new_index", newIndex),
			zap.Int("length", count))
		return false
	}

	section.Content, _ = moveContentItem(section.Content, oldIndex, newIndex)
	s.sections = withSection(s.sections, sectionIndex, section)
	return true
}

// PendingDelete returns the deletion waiting for confirmation, or nil.
func (s *Store) PendingDelete() *types.DeleteTarget {
	return s.pending
}

// RequestDelete raises target for confirmation, replacing any earlier pending deletion.
func (s *Store) RequestDelete(target types.DeleteTarget) {
	s.pending = &target
}

// DeleteSection asks for confirmation before removing the section at index.
func (s *Store) DeleteSection(index int) (types.DeleteTarget, bool) {
	if !inRange(index, len(s.sections)) {
		s.warnIndex("delete section", index)
		return types.DeleteTarget{}, false
	}
	target := types.DeleteTarget{
		Kind:         types.DeleteKindSection,
		SectionIndex: index,
		SectionName:  s.sections[index].Name,
	}
	s.RequestDelete(target)
	return target, true
}

// DeleteEntry asks for confirmation before removing one item of a section.
func (s *Store) DeleteEntry(sectionIndex, entryIndex int) (types.DeleteTarget, bool) {
	if !inRange(sectionIndex, len(s.sections)) {
		s.warnIndex("delete entry", sectionIndex)
		return types.DeleteTarget{}, false
	}
	entry := entryIndex
	target := types.DeleteTarget{
		Kind:         types.DeleteKindEntry,
		SectionIndex: sectionIndex,
		EntryIndex:   &entry,
		SectionName:  s.sections[sectionIndex].Name,
	}
	s.RequestDelete(target)
	return target, true
}

// CancelDelete discards the pending deletion.
func (s *Store) CancelDelete() {
	s.pending = nil
}

// ConfirmDelete applies the pending deletion, clears it and reports whether anything was removed.
func (s *Store) ConfirmDelete() bool {
	target := s.pending
	if target == nil {
		return false
	}
	s.pending = nil

	switch target.Kind {
	case types.DeleteKindSection:
		return s.applySectionDelete(*target)
	case types.DeleteKindEntry:
		return s.applyEntryDelete(*target)
	default:
		s.logger.Warn("confirm delete: unknown target type", zap.String("type", string(target.Kind)))
		return false
	}
}

func (s *Store) applySectionDelete(target types.DeleteTarget) bool {
	if !inRange(target.SectionIndex, len(s.sections)) {
		s.warnIndex("delete section", target.SectionIndex)
		return false
	}
	s.sections = RemoveAt(s.sections, target.SectionIndex)

	if target.SectionName != "" {
		s.notify(fmt.Sprintf("%q section deleted", target.SectionName))
	} else {
		s.notify("Section deleted")
	}
	return true
}

func (s *Store) applyEntryDelete(target types.DeleteTarget) bool {
	if target.EntryIndex == nil {
		return false
	}
	if !inRange(target.SectionIndex, len(s.sections)) {
		s.warnIndex("delete entry", target.SectionIndex)
		return false
	}

	section := s.sections[target.SectionIndex]
	count, isList := types.ItemCount(section.Content)
	if !isList {
		return false
	}
	entryIndex := *target.EntryIndex
	if !inRange(entryIndex, count) {
		s.logger.Warn("delete entry: item index out of bounds",
			zap.Int("section_index", target.SectionIndex),
			zap.Int("entry_index", entryIndex),
			zap.Int("length", count))
		return false
	}

	section.Content, _ = removeContentItem(section.Content, entryIndex)
	s.sections = withSection(s.sections, target.SectionIndex, section)

	name := target.SectionName
	if name == "" {
		name = section.Name
	}
	s.notify(fmt.Sprintf("Entry deleted from %q", name))
	return true
}

func (s *Store) notify(message string) {
	if s.notifier != nil {
		s.notifier.Notify(message)
	}
}

func (s *Store) warnIndex(op string, index int) {
	s.logger.Warn(op+": index out of bounds",
		zap.Int("index", index),
		zap.Int("length", len(s.sections)))
}
