package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/sasanalk/sasana-portal/modules/core/services"
	"github.com/sasanalk/sasana-portal/pkg/application"
	"github.com/sasanalk/sasana-portal/pkg/composables"
	"github.com/sasanalk/sasana-portal/pkg/configuration"
	"github.com/sasanalk/sasana-portal/pkg/constants"
	"github.com/sasanalk/sasana-portal/pkg/httpapi"
	"github.com/sasanalk/sasana-portal/pkg/registry"
)

type SessionController struct {
	app      application.Application
	sessions *services.SessionService
	basePath string
}

func NewSessionController(app application.Application) application.Controller {
	return &SessionController{
		app:      app,
		sessions: app.Service(services.SessionService{}).(*services.SessionService),
		basePath: "/auth",
	}
}

func (c *SessionController) Key() string {
	return c.basePath
}

func (c *SessionController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/login", c.Login).Methods(http.MethodPost)
	router.HandleFunc("/logout", c.Logout).Methods(http.MethodPost)
	router.HandleFunc("/me", c.Me).Methods(http.MethodGet)
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (c *SessionController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "AUTH_INVALID_JSON", "invalid json", nil)
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if err := constants.Validate.Struct(&req); err != nil {
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "AUTH_VALIDATION_FAILED", "username and password are required", nil)
		return
	}

	sid, sess, err := c.sessions.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusUnauthorized, "AUTH_FAILED", registry.HumanMessage(err), nil)
		return
	}

	conf := configuration.Use()
	http.SetCookie(w, &http.Cookie{
		Name:     conf.Session.CookieKey,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		Secure:   conf.GoAppEnvironment == configuration.Production,
		SameSite: http.SameSiteLaxMode,
		Expires:  sess.ExpiresAt,
	})
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"username":   sess.Username,
		"department": sess.Department,
		"role":       sess.Role,
	})
}

func (c *SessionController) Logout(w http.ResponseWriter, r *http.Request) {
	conf := configuration.Use()
	if cookie, err := r.Cookie(conf.Session.CookieKey); err == nil {
		c.sessions.Logout(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     conf.Session.CookieKey,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (c *SessionController) Me(w http.ResponseWriter, r *http.Request) {
	sess, err := composables.UseSession(r.Context())
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusUnauthorized, "NO_SESSION", "sign in required", map[string]string{
			"redirect": "/",
		})
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"username":   sess.Username,
		"department": sess.Department,
		"role":       sess.Role,
	})
}
