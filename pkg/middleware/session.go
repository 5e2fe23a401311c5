package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/sasanalk/sasana-portal/pkg/composables"
	"github.com/sasanalk/sasana-portal/pkg/configuration"
	"github.com/sasanalk/sasana-portal/pkg/httpapi"
	"github.com/sasanalk/sasana-portal/pkg/registry"
)

// SessionResolver finds the live session behind a session-id cookie.
type SessionResolver interface {
	Find(sid string) (*composables.Session, bool)
}

// ProvideSession resolves the sid cookie into a session context value and
// forwards the backend token for downstream registry calls. Absence is not
// an error here; gating happens in RequireDepartment.
func ProvideSession(sessions SessionResolver) mux.MiddlewareFunc {
	conf := configuration.Use()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(conf.Session.CookieKey)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			sess, ok := sessions.Find(cookie.Value)
			if !ok || sess.Expired(time.Now()) {
				next.ServeHTTP(w, r)
				return
			}
			ctx := composables.WithSession(r.Context(), sess)
			ctx = registry.WithAuthToken(ctx, sess.Token)
			if params, pok := composables.UseParams(ctx); pok {
				params.Authenticated = true
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireDepartment gates a domain's routes on the session's department.
// A missing session or a department mismatch is not recoverable in place;
// the response carries the safe route the client must move to.
func RequireDepartment(department string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := composables.UseSession(r.Context())
			if err != nil {
				_ = httpapi.WriteError(w, http.StatusUnauthorized, "NO_SESSION", "sign in required", map[string]string{
					"redirect": "/",
				})
				return
			}
			if !sess.CanAccess(department) {
				_ = httpapi.WriteError(w, http.StatusForbidden, "WRONG_DEPARTMENT", "access denied for this department", map[string]string{
					"redirect": "/",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
