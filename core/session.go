// File: session.go
// Role: Session-scoped identifier allocation.
// Determinism:
//   - NextID is monotonic within a session; ids are never reused.
// Concurrency:
//   - The counter is atomic so snapshots handed to analysis goroutines may
//     allocate ids (e.g. clustering groupings) without racing the editor.

package core

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Session owns identifier allocation for one editing session.
// Every matrix created through a session, including zoom breakouts,
// draws ids from the same counter so merged ids never collide.
type Session struct {
	id   uuid.UUID
	next int64
}

// NewSession returns a Session with a fresh random uuid and an empty counter.
func NewSession() *Session {
	return &Session{id: uuid.New()}
}

// ID returns the session uuid (used as a log correlation attribute).
func (s *Session) ID() uuid.UUID { return s.id }

// NextID returns a new id, strictly greater than every id issued or observed so far.
func (s *Session) NextID() ID {
	return ID(atomic.AddInt64(&s.next, 1))
}

// Observe bumps the counter past id so that later NextID calls never return it.
// Used when a document with externally assigned ids is loaded.
func (s *Session) Observe(id ID) {
	for {
		cur := atomic.LoadInt64(&s.next)
		if int64(id) <= cur {
			return
		}
		if atomic.CompareAndSwapInt64(&s.next, cur, int64(id)) {
			return
		}
	}
}
