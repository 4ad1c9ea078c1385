// services/sessions.go
package services

import (
	"log"
	"sync"
	"time"

	"eduventure/game"
	"eduventure/store"
)

// SessionRegistry tracks one progression engine per logged-in knight and
// evicts engines that have been idle longer than the TTL. Tokens outlive the
// process; a session missing from the registry is restored from the store on
// the next authenticated request.
type SessionRegistry struct {
	store *store.Store
	ttl   time.Duration

	mu       sync.Mutex
	sessions map[string]*session

	stop chan struct{}
	once sync.Once
}

type session struct {
	engine     *game.Engine
	lastActive time.Time
}

func NewSessionRegistry(st *store.Store, ttl time.Duration) *SessionRegistry {
	return &SessionRegistry{
		store:    st,
		ttl:      ttl,
		sessions: make(map[string]*session),
		stop:     make(chan struct{}),
	}
}

// Attach registers the engine for a knight after login or registration,
// replacing any previous session for the same knight.
func (r *SessionRegistry) Attach(knightID string, e *game.Engine) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[knightID] = &session{engine: e, lastActive: time.Now()}
}

// Engine returns the knight's engine, restoring the session from the store
// when none is live. Returns store.ErrNotFound when the knight id is unknown.
func (r *SessionRegistry) Engine(knightID string) (*game.Engine, error) {
	r.mu.Lock()
	if s, ok := r.sessions[knightID]; ok {
		s.lastActive = time.Now()
		r.mu.Unlock()
		return s.engine, nil
	}
	r.mu.Unlock()

	e := game.NewEngine(r.store)
	if _, err := e.Restore(knightID); err != nil {
		return nil, err
	}
	r.Attach(knightID, e)
	return e, nil
}

// Remove logs the session out and drops it from the registry. Idempotent.
func (r *SessionRegistry) Remove(knightID string) {
	r.mu.Lock()
	s, ok := r.sessions[knightID]
	delete(r.sessions, knightID)
	r.mu.Unlock()

	if ok {
		s.engine.Logout()
	}
}

// Len returns the number of live sessions.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Start launches the background idle sweeper.
func (r *SessionRegistry) Start() {
	go func() {
		ticker := time.NewTicker(r.sweepInterval())
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				r.Sweep()
			case <-r.stop:
				return
			}
		}
	}()
}

// Stop halts the sweeper. Safe to call more than once.
func (r *SessionRegistry) Stop() {
	r.once.Do(func() {
		close(r.stop)
	})
}

// Sweep evicts sessions idle longer than the TTL.
func (r *SessionRegistry) Sweep() {
	cutoff := time.Now().Add(-r.ttl)

	r.mu.Lock()
	var evicted []*session
	for id, s := range r.sessions {
		if s.lastActive.Before(cutoff) {
			evicted = append(evicted, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range evicted {
		s.engine.Logout()
	}
	if len(evicted) > 0 {
		log.Printf("🧹 Evicted %d idle session(s)", len(evicted))
	}
}

func (r *SessionRegistry) sweepInterval() time.Duration {
	interval := r.ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	return interval
}
