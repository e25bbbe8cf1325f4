package server

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/jonathan/resume-editor/internal/drag"
	"github.com/jonathan/resume-editor/internal/schemas"
	"github.com/jonathan/resume-editor/internal/sections"
	"github.com/jonathan/resume-editor/internal/types"
)

// ---------------------------------------------------------------------
// Session Handlers
// ---------------------------------------------------------------------

// SessionResponse is the editor state returned by every session endpoint.
type SessionResponse struct {
	SessionID    string              `json:"session_id"`
	Sections     []types.Section     `json:"sections"`
	IDs          []string            `json:"ids"`
	TitleEdit    types.TitleEdit     `json:"title_edit"`
	DeleteTarget *types.DeleteTarget `json:"delete_target"`
	Messages     []string            `json:"messages"`
	// Applied is false when the operation was ignored, e.g. for an index out of range.
	Applied bool `json:"applied"`
	Index   *int `json:"index,omitempty"`
}

// EditorSettings tells a client how to configure its editor.
type EditorSettings struct {
	ScrollDelayMS   int64               `json:"scroll_delay_ms"`
	PointerDistance float64             `json:"pointer_distance"`
	TouchDelayMS    int64               `json:"touch_delay_ms"`
	TouchTolerance  float64             `json:"touch_tolerance"`
	SectionTypes    []SectionTypeOption `json:"section_types"`
}

// SectionTypeOption is one entry of the section type picker.
type SectionTypeOption struct {
	Type        types.SectionType `json:"type"`
	DisplayName string            `json:"display_name"`
	DefaultName string            `json:"default_name"`
}

func (s *Server) handleEditorSettings(w http.ResponseWriter, _ *http.Request) {
	options := make([]SectionTypeOption, 0, len(types.KnownSectionTypes))
	for _, t := range types.KnownSectionTypes {
		options = append(options, SectionTypeOption{
			Type:        t,
			DisplayName: t.DisplayName(),
			DefaultName: sections.BaseName(t),
		})
	}

	s.jsonResponse(w, http.StatusOK, EditorSettings{
		ScrollDelayMS:   s.editor.ScrollDelay.Std().Milliseconds(),
		PointerDistance: s.editor.PointerDistance,
		TouchDelayMS:    s.editor.TouchDelay.Std().Milliseconds(),
		TouchTolerance:  s.editor.TouchTolerance,
		SectionTypes:    options,
	})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.errorFor(w, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}

	var initial []types.Section
	if len(bytes.TrimSpace(body)) > 0 {
		initial, err = schemas.DecodeSections(body)
		if err != nil {
			s.errorFor(w, err)
			return
		}
	}

	sess := s.sessions.create(initial)
	s.logger.Info("session created",
		zap.String("session_id", sess.id),
		zap.Int("sections", len(initial)))

	sess.mu.Lock()
	defer sess.mu.Unlock()
	s.jsonResponse(w, http.StatusCreated, s.snapshot(sess, true))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.sessions.delete(id) {
		s.errorFor(w, &ErrSessionNotFound{SessionID: id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetSections(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *session) (bool, *int, error) {
		return true, nil, nil
	})
}

func (s *Server) handleAddSection(w http.ResponseWriter, r *http.Request) {
	var req types.AddSectionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorFor(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.errorFor(w, validationError(err))
		return
	}

	s.withSession(w, r, func(sess *session) (bool, *int, error) {
		index := sess.store.AddSection(req.Type, req.Position)
		return true, &index, nil
	})
}

func (s *Server) handleUpdateSection(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r, "index")
	if err != nil {
		s.errorFor(w, err)
		return
	}
	var req types.UpdateSectionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorFor(w, err)
		return
	}
	if req.Section.Type == "" {
		s.errorFor(w, &ErrValidation{Field: "section.type", Message: "is required"})
		return
	}

	s.withSession(w, r, func(sess *session) (bool, *int, error) {
		return sess.store.UpdateSection(index, req.Section), &index, nil
	})
}

func (s *Server) handleReorderSections(w http.ResponseWriter, r *http.Request) {
	var req types.ReorderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorFor(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.errorFor(w, validationError(err))
		return
	}

	s.withSession(w, r, func(sess *session) (bool, *int, error) {
		return sess.store.ReorderSections(*req.OldIndex, *req.NewIndex), nil, nil
	})
}

func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r, "index")
	if err != nil {
		s.errorFor(w, err)
		return
	}

	s.withSession(w, r, func(sess *session) (bool, *int, error) {
		return sess.store.AddEntry(index), &index, nil
	})
}

func (s *Server) handleReorderEntries(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r, "index")
	if err != nil {
		s.errorFor(w, err)
		return
	}
	var req types.ReorderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorFor(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.errorFor(w, validationError(err))
		return
	}

	s.withSession(w, r, func(sess *session) (bool, *int, error) {
		return sess.store.ReorderEntry(index, *req.OldIndex, *req.NewIndex), &index, nil
	})
}

// handleTitleEdit drives the title edit state machine. set, commit and cancel only act
// on the section whose title is being edited.
func (s *Server) handleTitleEdit(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r, "index")
	if err != nil {
		s.errorFor(w, err)
		return
	}
	var req types.TitleEditRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorFor(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.errorFor(w, validationError(err))
		return
	}

	s.withSession(w, r, func(sess *session) (bool, *int, error) {
		store := sess.store
		if req.Action == "begin" {
			return store.BeginTitleEdit(index), &index, nil
		}

		edit := store.TitleEdit()
		if !edit.Active() || *edit.Index != index {
			return false, &index, nil
		}
		switch req.Action {
		case "set":
			value := ""
			if req.Value != nil {
				value = *req.Value
			}
			store.SetTemporaryTitle(value)
			return true, &index, nil
		case "commit":
			return store.CommitTitleEdit(req.Value), &index, nil
		default:
			store.CancelTitleEdit()
			return true, &index, nil
		}
	})
}

// handleDrag applies a finished drag gesture to the section list or to the items of one
// section, depending on which namespace the active id belongs to.
func (s *Server) handleDrag(w http.ResponseWriter, r *http.Request) {
	var req types.DragRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorFor(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.errorFor(w, validationError(err))
		return
	}
	event := drag.EndEvent{ActiveID: req.ActiveID, OverID: req.OverID}

	s.withSession(w, r, func(sess *session) (bool, *int, error) {
		sess.sectionIDs()
		if _, ok := sess.drag.ParseID(req.ActiveID); ok {
			sess.drag.DragStart(req.ActiveID)
			return sess.drag.DragEnd(event), nil, nil
		}

		store := sess.store
		for i, section := range store.Sections() {
			count, isList := types.ItemCount(section.Content)
			if !isList {
				continue
			}
			sectionIndex := i
			entries := drag.New(entriesNamespace(i), make([]int, count), func(oldIndex, newIndex int) {
				store.ReorderEntry(sectionIndex, oldIndex, newIndex)
			}, drag.WithLogger(s.logger))
			if _, ok := entries.ParseID(req.ActiveID); ok {
				entries.DragStart(req.ActiveID)
				return entries.DragEnd(event), &sectionIndex, nil
			}
		}

		s.logger.Debug("drag ended on unknown item", zap.String("active_id", req.ActiveID))
		return false, nil, nil
	})
}

func (s *Server) handleDeleteSection(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r, "index")
	if err != nil {
		s.errorFor(w, err)
		return
	}

	s.withSession(w, r, func(sess *session) (bool, *int, error) {
		_, ok := sess.store.DeleteSection(index)
		return ok, &index, nil
	})
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r, "index")
	if err != nil {
		s.errorFor(w, err)
		return
	}
	entry, err := pathIndex(r, "entry")
	if err != nil {
		s.errorFor(w, err)
		return
	}

	s.withSession(w, r, func(sess *session) (bool, *int, error) {
		_, ok := sess.store.DeleteEntry(index, entry)
		return ok, &index, nil
	})
}

func (s *Server) handleConfirmDelete(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *session) (bool, *int, error) {
		return sess.store.ConfirmDelete(), nil, nil
	})
}

func (s *Server) handleCancelDelete(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *session) (bool, *int, error) {
		sess.store.CancelDelete()
		return true, nil, nil
	})
}

// withSession runs op on the session named in the path while holding its lock and
// writes the resulting editor state.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, op func(*session) (bool, *int, error)) {
	sess, err := s.sessions.get(r.PathValue("id"))
	if err != nil {
		s.errorFor(w, err)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	applied, index, err := op(sess)
	if err != nil {
		s.errorFor(w, err)
		return
	}
	resp := s.snapshot(sess, applied)
	resp.Index = index
	s.jsonResponse(w, http.StatusOK, resp)
}

// snapshot captures the editor state of sess. The caller holds sess.mu.
func (s *Server) snapshot(sess *session, applied bool) SessionResponse {
	return SessionResponse{
		SessionID:    sess.id,
		Sections:     sess.store.Sections(),
		IDs:          sess.sectionIDs(),
		TitleEdit:    sess.store.TitleEdit(),
		DeleteTarget: sess.store.PendingDelete(),
		Messages:     sess.messages.drain(),
		Applied:      applied,
	}
}

func pathIndex(r *http.Request, name string) (int, error) {
	raw := r.PathValue(name)
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ErrValidation{Field: name, Message: "must be an integer, got " + strconv.Quote(raw)}
	}
	return index, nil
}
