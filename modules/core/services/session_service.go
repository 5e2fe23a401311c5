package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sasanalk/sasana-portal/pkg/composables"
	"github.com/sasanalk/sasana-portal/pkg/registry"
)

// SessionStore maps session-id cookies to decoded claims. It backs the
// session middleware's resolver.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*composables.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*composables.Session)}
}

func (s *SessionStore) Find(sid string) (*composables.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sid]
	if !ok {
		return nil, false
	}
	if sess.Expired(time.Now()) {
		delete(s.sessions, sid)
		return nil, false
	}
	return sess, true
}

func (s *SessionStore) Put(sess *composables.Session) string {
	sid := uuid.New().String()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sid] = sess
	return sid
}

func (s *SessionStore) Drop(sid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
}

type SessionService struct {
	registry *registry.Client
	store    *SessionStore
	duration time.Duration
}

func NewSessionService(client *registry.Client, store *SessionStore, duration time.Duration) *SessionService {
	return &SessionService{
		registry: client,
		store:    store,
		duration: duration,
	}
}

// Login authenticates against the backend and opens a portal session.
// Returns the sid for the cookie.
func (s *SessionService) Login(ctx context.Context, username, password string) (string, *composables.Session, error) {
	claims, err := s.registry.Login(ctx, username, password)
	if err != nil {
		return "", nil, err
	}
	expires := time.Now().Add(s.duration)
	if claims.ExpiresIn > 0 {
		expires = time.Now().Add(time.Duration(claims.ExpiresIn) * time.Second)
	}
	sess := &composables.Session{
		Token:      claims.Token,
		Username:   claims.Username,
		Department: claims.Department,
		Role:       claims.Role,
		ExpiresAt:  expires,
	}
	sid := s.store.Put(sess)
	return sid, sess, nil
}

func (s *SessionService) Logout(sid string) {
	s.store.Drop(sid)
}

// Store exposes the sid→claims map for the session middleware.
func (s *SessionService) Store() *SessionStore {
	return s.store
}
