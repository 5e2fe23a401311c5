// Package listapi hosts the filtered-list state machine behind a JSON API.
// A list session owns the pending/applied criteria, the debounced search
// box and the fetch supersession guard; the table the browser renders is
// whatever the session's current result is.
package listapi

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/sasanalk/sasana-portal/pkg/httpapi"
	"github.com/sasanalk/sasana-portal/pkg/listview"
	"github.com/sasanalk/sasana-portal/pkg/registry"
)

// FetchFunc runs the backend list call for an applied criteria payload.
type FetchFunc func(ctx context.Context, payload map[string]any) (registry.ListResult, error)

type Session struct {
	ID        string
	Criteria  *listview.Criteria
	Fetcher   *listview.Fetcher
	Debouncer *listview.Debouncer

	mu      sync.Mutex
	items   []json.RawMessage
	total   int
	errMsg  string
	touched time.Time
}

func (s *Session) setResult(res registry.ListResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = res.Items
	s.total = res.Total
	s.errMsg = ""
}

func (s *Session) setError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = msg
}

func (s *Session) snapshot() (items []json.RawMessage, total int, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items, s.total, s.errMsg
}

type Config struct {
	Domain         string
	Defaults       map[string]string
	DefaultLimit   int
	SearchDebounce time.Duration
	SessionTTL     time.Duration
	Fetch          FetchFunc
}

type Controller struct {
	cfg Config

	mu       sync.Mutex
	sessions map[string]*Session

	// base context for fetches that outlive the triggering request.
	base context.Context
}

func New(base context.Context, cfg Config) *Controller {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 2 * time.Hour
	}
	return &Controller{
		cfg:      cfg,
		sessions: make(map[string]*Session),
		base:     base,
	}
}

// Mount registers the list-session routes on an already-gated subrouter.
func (c *Controller) Mount(router *mux.Router) {
	router.HandleFunc("", c.Start).Methods(http.MethodPost)
	router.HandleFunc("/{lid}", c.State).Methods(http.MethodGet)
	router.HandleFunc("/{lid}/filters", c.PatchFilters).Methods(http.MethodPatch)
	router.HandleFunc("/{lid}/apply", c.Apply).Methods(http.MethodPost)
	router.HandleFunc("/{lid}/clear", c.Clear).Methods(http.MethodPost)
	router.HandleFunc("/{lid}/page", c.Page).Methods(http.MethodPost)
	router.HandleFunc("/{lid}/search", c.Search).Methods(http.MethodPost)
	router.HandleFunc("/{lid}", c.Close).Methods(http.MethodDelete)
}

func (c *Controller) Start(w http.ResponseWriter, r *http.Request) {
	sess := &Session{
		ID:       uuid.New().String(),
		Criteria: listview.NewCriteria(c.cfg.Defaults, c.cfg.DefaultLimit),
		Fetcher:  listview.NewFetcher(),
		touched:  time.Now(),
	}
	token := authTokenOf(r)
	sess.Debouncer = listview.NewDebouncer(c.cfg.SearchDebounce, func(text string) {
		sess.Criteria.ApplySearch(text)
		c.refresh(sess, token)
	})

	c.mu.Lock()
	c.sweepLocked()
	c.sessions[sess.ID] = sess
	c.mu.Unlock()

	c.refresh(sess, token)
	c.writeState(w, http.StatusCreated, sess)
}

func (c *Controller) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	lid := mux.Vars(r)["lid"]
	c.mu.Lock()
	sess, ok := c.sessions[lid]
	if ok {
		sess.touched = time.Now()
	}
	c.mu.Unlock()
	if !ok {
		_ = httpapi.WriteError(w, http.StatusNotFound, "LIST_SESSION_NOT_FOUND", "list session expired or unknown", nil)
		return nil, false
	}
	return sess, true
}

func (c *Controller) State(w http.ResponseWriter, r *http.Request) {
	sess, ok := c.session(w, r)
	if !ok {
		return
	}
	c.writeState(w, http.StatusOK, sess)
}

type filtersRequest struct {
	Filters map[string]string `json:"filters"`
}

// PatchFilters edits pending criteria only; nothing is fetched until Apply.
func (c *Controller) PatchFilters(w http.ResponseWriter, r *http.Request) {
	sess, ok := c.session(w, r)
	if !ok {
		return
	}
	var req filtersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "LIST_INVALID_JSON", "invalid json", nil)
		return
	}
	for key, value := range req.Filters {
		sess.Criteria.SetPending(key, value)
	}
	c.writeState(w, http.StatusOK, sess)
}

// Apply copies pending over applied and triggers exactly one fetch.
func (c *Controller) Apply(w http.ResponseWriter, r *http.Request) {
	sess, ok := c.session(w, r)
	if !ok {
		return
	}
	sess.Criteria.Apply()
	c.refresh(sess, authTokenOf(r))
	c.writeState(w, http.StatusOK, sess)
}

// Clear resets both snapshots to defaults and triggers one fetch.
func (c *Controller) Clear(w http.ResponseWriter, r *http.Request) {
	sess, ok := c.session(w, r)
	if !ok {
		return
	}
	sess.Criteria.Clear()
	c.refresh(sess, authTokenOf(r))
	c.writeState(w, http.StatusOK, sess)
}

type pageRequest struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Page mutates the applied snapshot directly; no pending stage exists for
// pagination.
func (c *Controller) Page(w http.ResponseWriter, r *http.Request) {
	sess, ok := c.session(w, r)
	if !ok {
		return
	}
	var req pageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "LIST_INVALID_JSON", "invalid json", nil)
		return
	}
	if req.Limit > 0 {
		sess.Criteria.SetLimit(req.Limit)
	}
	if req.Page > 0 {
		sess.Criteria.SetPage(req.Page)
	}
	c.refresh(sess, authTokenOf(r))
	c.writeState(w, http.StatusOK, sess)
}

type searchRequest struct {
	Text string `json:"text"`
}

// Search feeds the debouncer; the fetch fires after the quiet period, and
// only when the text passes the character threshold or was cleared.
func (c *Controller) Search(w http.ResponseWriter, r *http.Request) {
	sess, ok := c.session(w, r)
	if !ok {
		return
	}
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "LIST_INVALID_JSON", "invalid json", nil)
		return
	}
	sess.Debouncer.Input(req.Text)
	c.writeState(w, http.StatusOK, sess)
}

// Close tears the session down: the debounce timer is cleared and any
// in-flight fetch aborted so no state update happens after unmount.
func (c *Controller) Close(w http.ResponseWriter, r *http.Request) {
	lid := mux.Vars(r)["lid"]
	c.mu.Lock()
	sess, ok := c.sessions[lid]
	delete(c.sessions, lid)
	c.mu.Unlock()
	if ok {
		sess.Debouncer.Close()
		sess.Fetcher.Close()
	}
	w.WriteHeader(http.StatusNoContent)
}

// refresh starts a superseding fetch. Results land only if the fetch is
// still current when it resolves; aborted fetches stay silent.
func (c *Controller) refresh(sess *Session, token string) {
	ctx, commit := sess.Fetcher.Begin(c.base)
	if token != "" {
		ctx = registry.WithAuthToken(ctx, token)
	}
	payload := sess.Criteria.Payload()
	go func() {
		res, err := c.cfg.Fetch(ctx, payload)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if commit() {
				sess.setError(registry.HumanMessage(err))
			}
			return
		}
		if commit() {
			sess.setResult(res)
		}
	}()
}

func (c *Controller) writeState(w http.ResponseWriter, status int, sess *Session) {
	items, total, errMsg := sess.snapshot()
	if items == nil {
		items = []json.RawMessage{}
	}
	_ = httpapi.WriteJSON(w, status, map[string]any{
		"sessionId": sess.ID,
		"items":     items,
		"total":     total,
		"loading":   sess.Fetcher.Loading(),
		"error":     errMsg,
		"pending":   sess.Criteria.Pending(),
		"applied":   sess.Criteria.Applied(),
		"page":      sess.Criteria.Page(),
		"limit":     sess.Criteria.Limit(),
	})
}

func (c *Controller) sweepLocked() {
	cutoff := time.Now().Add(-c.cfg.SessionTTL)
	for id, sess := range c.sessions {
		if sess.touched.Before(cutoff) {
			sess.Debouncer.Close()
			sess.Fetcher.Close()
			delete(c.sessions, id)
		}
	}
}

func authTokenOf(r *http.Request) string {
	return registry.AuthTokenFrom(r.Context())
}
