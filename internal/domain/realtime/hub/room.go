package hub

import (
	"sync"
)

// Room holds the live sessions of one hunt.
type Room struct {
	huntID   string
	sessions map[string]*Session

	// A closed room has been swept from the hub and accepts no session.
	closed bool

	mutex sync.RWMutex
}

func NewRoom(huntID string) *Room {
	return &Room{
		huntID:   huntID,
		sessions: make(map[string]*Session),
	}
}

func (r *Room) register(session *Session) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.closed {
		return false
	}

	r.sessions[session.id] = session
	return true
}

func (r *Room) unregister(session *Session) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	delete(r.sessions, session.id)
}

func (r *Room) closeIfEmpty() bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if len(r.sessions) == 0 {
		r.closed = true
	}

	return r.closed
}

func (r *Room) snapshot() []*Session {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		result = append(result, s)
	}

	return result
}

func (r *Room) Has(sessionID string) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	_, ok := r.sessions[sessionID]
	return ok
}

func (r *Room) Size() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return len(r.sessions)
}
