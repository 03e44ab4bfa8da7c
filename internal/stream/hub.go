package stream

import "sync"

// Handle is a running session as seen by the Hub
type Handle interface {
	ID() string
	Close()
}

type entry struct {
	gen    uint64
	handle Handle
}

// Hub tracks the live session per client key. Every query for a key first
// takes a generation with Reserve; only the newest generation may open a
// session, and opening closes the session it supersedes.
type Hub struct {
	mu       sync.Mutex
	sessions map[string]entry
	gens     map[string]uint64
}

func NewHub() *Hub {
	return &Hub{
		sessions: make(map[string]entry),
		gens:     make(map[string]uint64),
	}
}

// Reserve starts a new query for key and returns its generation.
// Any query holding an older generation is stale from now on.
func (h *Hub) Reserve(key string) uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.gens[key]++
	return h.gens[key]
}

// Current reports whether gen is still the newest generation for key
func (h *Hub) Current(key string, gen uint64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.gens[key] == gen
}

// Open registers s under key and closes the session it replaces.
// It returns false without registering s when gen is stale.
func (h *Hub) Open(key string, gen uint64, s Handle) bool {
	h.mu.Lock()
	if h.gens[key] != gen {
		h.mu.Unlock()
		return false
	}
	prev, ok := h.sessions[key]
	h.sessions[key] = entry{gen: gen, handle: s}
	h.mu.Unlock()

	if ok && prev.handle.ID() != s.ID() {
		prev.handle.Close()
	}
	return true
}

// Release unregisters s if it is still the session under key
func (h *Hub) Release(key string, s Handle) {
	h.mu.Lock()
	defer h.mu.Unlock()

	cur, ok := h.sessions[key]
	if !ok || cur.handle.ID() != s.ID() {
		return
	}
	delete(h.sessions, key)
	if h.gens[key] == cur.gen {
		delete(h.gens, key)
	}
}

// Cancel drops the reservation gen of a query that opened no session
func (h *Hub) Cancel(key string, gen uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, live := h.sessions[key]; live || h.gens[key] != gen {
		return
	}
	delete(h.gens, key)
}

// Len returns the number of live sessions
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// CloseAll closes every session, used on shutdown
func (h *Hub) CloseAll() {
	h.mu.Lock()
	sessions := h.sessions
	h.sessions = make(map[string]entry)
	h.mu.Unlock()

	for _, s := range sessions {
		s.handle.Close()
	}
}
