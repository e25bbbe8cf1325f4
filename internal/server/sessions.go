package server

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/jonathan/resume-editor/internal/drag"
	"github.com/jonathan/resume-editor/internal/sections"
	"github.com/jonathan/resume-editor/internal/types"
)

// sectionsNamespace is the drag namespace of the section list.
const sectionsNamespace = "sections"

// entriesNamespace is the drag namespace of the items of the section at index.
func entriesNamespace(index int) string {
	return "section-" + strconv.Itoa(index)
}

// messageLog collects store notifications until the next response drains them.
type messageLog struct {
	messages []string
}

func (m *messageLog) Notify(message string) {
	m.messages = append(m.messages, message)
}

func (m *messageLog) drain() []string {
	out := m.messages
	m.messages = nil
	if out == nil {
		out = []string{}
	}
	return out
}

// session is one editing tab. mu serializes every request touching the store,
// which is single-writer.
type session struct {
	mu       sync.Mutex
	id       string
	store    *sections.Store
	messages *messageLog
	drag     *drag.Coordinator[types.Section]
}

// sectionIDs refreshes the section drag coordinator and returns the current ids.
func (s *session) sectionIDs() []string {
	s.drag.SetItems(s.store.Sections())
	return s.drag.IDs()
}

// sessionStore keeps sessions in memory and expires them after an idle TTL.
type sessionStore struct {
	cache       *cache.Cache
	scrollDelay time.Duration
	logger      *zap.Logger
}

func newSessionStore(ttl, scrollDelay time.Duration, logger *zap.Logger) *sessionStore {
	return &sessionStore{
		cache:       cache.New(ttl, ttl/2),
		scrollDelay: scrollDelay,
		logger:      logger,
	}
}

// create starts a session seeded with initial sections.
func (st *sessionStore) create(initial []types.Section) *session {
	log := &messageLog{}
	store := sections.NewStore(initial, sections.Options{
		Logger:      st.logger,
		Notifier:    log,
		ScrollDelay: st.scrollDelay,
	})
	sess := &session{
		id:       uuid.New().String(),
		store:    store,
		messages: log,
	}
	sess.drag = drag.New(sectionsNamespace, store.Sections(), func(oldIndex, newIndex int) {
		store.ReorderSections(oldIndex, newIndex)
	}, drag.WithLogger(st.logger))

	st.cache.Set(sess.id, sess, cache.DefaultExpiration)
	return sess
}

// get returns the session and pushes its expiry back by the idle TTL.
func (st *sessionStore) get(id string) (*session, error) {
	v, ok := st.cache.Get(id)
	if !ok {
		return nil, &ErrSessionNotFound{SessionID: id}
	}
	sess := v.(*session)
	st.cache.Set(id, sess, cache.DefaultExpiration)
	return sess, nil
}

func (st *sessionStore) delete(id string) bool {
	if _, ok := st.cache.Get(id); !ok {
		return false
	}
	st.cache.Delete(id)
	return true
}

func (st *sessionStore) count() int {
	return st.cache.ItemCount()
}
