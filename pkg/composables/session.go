package composables

import (
	"context"
	"errors"
	"time"

	"github.com/sasanalk/sasana-portal/pkg/constants"
)

// ErrNoSession is the typed sentinel for an absent session; callers gate on
// it explicitly instead of consulting any global lookup.
var ErrNoSession = errors.New("no session")

// Department codes as issued by the registry backend.
const (
	DepartmentBhikkhu        = "BHIKKHU"
	DepartmentSilmatha       = "SILMATHA"
	DepartmentVihara         = "VIHARA"
	DepartmentUpasampada     = "UPASAMPADA"
	DepartmentSasanarakshaka = "SASANARAKSHAKA"
	// DepartmentAll marks commissioner-level accounts with access to every
	// registration domain.
	DepartmentAll = "ALL"
)

// Session is the decoded user-data claims for one signed-in officer. It is
// threaded through the request context by the session middleware; pages
// never read it from a global.
type Session struct {
	Token      string
	Username   string
	Department string
	Role       string
	ExpiresAt  time.Time
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// CanAccess gates a department-specific page.
func (s *Session) CanAccess(department string) bool {
	return s.Department == DepartmentAll || s.Department == department
}

// UseSession returns the session from the context, or ErrNoSession.
func UseSession(ctx context.Context) (*Session, error) {
	sess, ok := ctx.Value(constants.SessionKey).(*Session)
	if !ok || sess == nil {
		return nil, ErrNoSession
	}
	return sess, nil
}

// WithSession returns a new context carrying the session.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, constants.SessionKey, sess)
}
