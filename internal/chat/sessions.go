package chat

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// SessionStore holds all live sessions, keyed by id. Sessions live in memory
// only and are lost on restart.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	handler  TurnHandler
}

func NewSessionStore(handler TurnHandler) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		handler:  handler,
	}
}

// Create starts a new session seeded with the welcome message.
func (st *SessionStore) Create() *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	s := newSession(uuid.NewString(), st.handler)
	st.sessions[s.ID] = s
	log.Info().Str("sessionId", s.ID).Msg("created session")
	return s
}

func (st *SessionStore) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	return s, ok
}

func (st *SessionStore) Count() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
