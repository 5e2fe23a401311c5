// Package wizardsession keys live wizard stores by opaque session ids. A
// wizard session lives for one page visit: it is created when the page
// opens, discarded on successful submission, and swept on TTL when the
// visitor walks away.
package wizardsession

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sasanalk/sasana-portal/pkg/formwizard"
)

type Session struct {
	ID       string
	Domain   string
	RecordID string
	Store    *formwizard.Store

	touched time.Time
}

type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

func NewManager(ttl time.Duration, now func() time.Time) *Manager {
	if now == nil {
		now = time.Now
	}
	return &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      now,
	}
}

// Create opens a new wizard session for the given domain and form.
// RecordID is set when editing an existing registration.
func (m *Manager) Create(domain, recordID string, form *formwizard.Form) *Session {
	sess := &Session{
		ID:       uuid.New().String(),
		Domain:   domain,
		RecordID: recordID,
		Store:    formwizard.NewStore(form, m.now),
		touched:  m.now(),
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return sess
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	if m.now().Sub(sess.touched) > m.ttl {
		delete(m.sessions, id)
		return nil, false
	}
	sess.touched = m.now()
	return sess, true
}

// Delete is the terminal state: the store is discarded with the session.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep drops sessions idle past the TTL and reports how many went.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	swept := 0
	cutoff := m.now().Add(-m.ttl)
	for id, sess := range m.sessions {
		if sess.touched.Before(cutoff) {
			delete(m.sessions, id)
			swept++
		}
	}
	return swept
}

// StartSweeper runs Sweep on the given interval until the context ends.
func (m *Manager) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Sweep()
			}
		}
	}()
}
