package bot

import "sync"

// session is the ephemeral per-chat conversation state. The platform
// delivers one update at a time per chat, so only the registry map needs
// locking; the fields themselves are touched by a single goroutine.
type session struct {
	chatID int64
	user   User
	st     state

	// inConversation is the sticky marker: it survives resets so the menu
	// handler can tell "between steps" apart from "never interacted".
	inConversation bool
}

// reset discards all scratch state except the sticky marker.
func (s *session) reset() {
	s.st = stateIdle{}
}

// sessionStore is the registry of live sessions. Different chats' updates
// are dispatched concurrently, hence the mutex.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*session
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[int64]*session)}
}

// get returns the chat's session, creating it on first interaction. The
// sender identity is refreshed every time since usernames change.
func (r *sessionStore) get(chatID int64, from User) *session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[chatID]
	if !ok {
		s = &session{chatID: chatID, st: stateIdle{}}
		r.sessions[chatID] = s
	}
	s.user = from
	return s
}
