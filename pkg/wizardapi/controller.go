// Package wizardapi exposes a wizard form over JSON. Every registration
// module mounts one instance parameterized by its step table and
// submission adapter; the control flow lives here once instead of being
// reimplemented per page.
package wizardapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/sasanalk/sasana-portal/pkg/constants"
	"github.com/sasanalk/sasana-portal/pkg/formwizard"
	"github.com/sasanalk/sasana-portal/pkg/httpapi"
	"github.com/sasanalk/sasana-portal/pkg/registry"
	"github.com/sasanalk/sasana-portal/pkg/wizardsession"
)

// SubmitFunc runs the domain's submission adapter and backend call. It is
// invoked only after whole-form validation passes.
type SubmitFunc func(ctx context.Context, sess *wizardsession.Session, values formwizard.Values) (recordID string, err error)

// FetchFunc loads an existing record's values for edit mode.
type FetchFunc func(ctx context.Context, recordID string) (formwizard.Values, error)

// MapError lets a domain translate its sentinel errors into a specific
// API response before the generic backend-error path runs.
type MapError func(err error) (status int, code, message string, ok bool)

type Config struct {
	Domain   string
	Form     *formwizard.Form
	Sessions *wizardsession.Manager
	Submit   SubmitFunc
	Fetch    FetchFunc
	MapError MapError
}

type Controller struct {
	cfg Config
}

func New(cfg Config) *Controller {
	return &Controller{cfg: cfg}
}

// Mount registers the wizard routes on an already-gated subrouter.
func (c *Controller) Mount(router *mux.Router) {
	router.HandleFunc("/steps", c.Steps).Methods(http.MethodGet)
	router.HandleFunc("", c.Start).Methods(http.MethodPost)
	router.HandleFunc("/{sid}", c.State).Methods(http.MethodGet)
	router.HandleFunc("/{sid}/fields", c.PatchFields).Methods(http.MethodPatch)
	router.HandleFunc("/{sid}/display", c.SetDisplay).Methods(http.MethodPost)
	router.HandleFunc("/{sid}/advance", c.Advance).Methods(http.MethodPost)
	router.HandleFunc("/{sid}/retreat", c.Retreat).Methods(http.MethodPost)
	router.HandleFunc("/{sid}/jump", c.Jump).Methods(http.MethodPost)
	router.HandleFunc("/{sid}/review", c.Review).Methods(http.MethodGet)
	router.HandleFunc("/{sid}/submit", c.Submit).Methods(http.MethodPost)
	router.HandleFunc("/{sid}", c.Abandon).Methods(http.MethodDelete)
}

type fieldMeta struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Type        string `json:"type"`
	Placeholder string `json:"placeholder,omitempty"`
	Rows        int    `json:"rows,omitempty"`
	Required    bool   `json:"required"`
}

type stepMeta struct {
	ID     int         `json:"id"`
	Title  string      `json:"title"`
	Fields []fieldMeta `json:"fields"`
}

// Steps serves the declarative step table so the client renders from the
// same definition the server validates against.
func (c *Controller) Steps(w http.ResponseWriter, r *http.Request) {
	steps := make([]stepMeta, 0, len(c.cfg.Form.Steps)+1)
	for _, step := range c.cfg.Form.Steps {
		fields := make([]fieldMeta, 0, len(step.Fields))
		for _, f := range step.Fields {
			fields = append(fields, fieldMeta{
				Name:        f.Name,
				Label:       f.Label,
				Type:        string(f.Type),
				Placeholder: f.Placeholder,
				Rows:        f.Rows,
				Required:    f.Rules.Required,
			})
		}
		steps = append(steps, stepMeta{ID: step.ID, Title: step.Title, Fields: fields})
	}
	steps = append(steps, stepMeta{ID: c.cfg.Form.ReviewStepID(), Title: "Review", Fields: []fieldMeta{}})
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"steps":        steps,
		"reviewStepId": c.cfg.Form.ReviewStepID(),
	})
}

type startRequest struct {
	RecordID string `json:"recordId"`
}

func (c *Controller) Start(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if r.Body != nil {
		// An empty body starts a blank form.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	sess := c.cfg.Sessions.Create(c.cfg.Domain, req.RecordID, c.cfg.Form)
	if req.RecordID != "" && c.cfg.Fetch != nil {
		record, err := c.cfg.Fetch(r.Context(), req.RecordID)
		if err != nil {
			c.cfg.Sessions.Delete(sess.ID)
			c.writeBackendError(w, r, err)
			return
		}
		sess.Store.Overlay(record)
	}
	c.writeState(w, http.StatusCreated, sess)
}

func (c *Controller) session(w http.ResponseWriter, r *http.Request) (*wizardsession.Session, bool) {
	sid := mux.Vars(r)["sid"]
	sess, ok := c.cfg.Sessions.Get(sid)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusNotFound, "WIZARD_SESSION_NOT_FOUND", "wizard session expired or unknown", nil)
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

type patchRequest struct {
	Values map[string]string `json:"values"`
}

func (c *Controller) PatchFields(w http.ResponseWriter, r *http.Request) {
	sess, ok := c.session(w, r)
	if !ok {
		return
	}
	var req patchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "WIZARD_INVALID_JSON", "invalid json", nil)
		return
	}
	sess.Store.SetMany(formwizard.Values(req.Values))
	c.writeState(w, http.StatusOK, sess)
}

type displayRequest struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

func (c *Controller) SetDisplay(w http.ResponseWriter, r *http.Request) {
	sess, ok := c.session(w, r)
	if !ok {
		return
	}
	var req displayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "WIZARD_INVALID_JSON", "invalid json", nil)
		return
	}
	sess.Store.SetDisplay(req.Name, req.Label)
	w.WriteHeader(http.StatusNoContent)
}

func (c *Controller) Advance(w http.ResponseWriter, r *http.Request) {
	sess, ok := c.session(w, r)
	if !ok {
		return
	}
	if !sess.Store.Advance() {
		// The client scrolls to the top of the form on a failed advance.
		_ = httpapi.WriteJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"code":       "STEP_INVALID",
			"activeStep": sess.Store.ActiveStep(),
			"errors":     sess.Store.Errors(),
			"scrollTop":  true,
		})
		return
	}
	c.writeState(w, http.StatusOK, sess)
}

func (c *Controller) Retreat(w http.ResponseWriter, r *http.Request) {
	sess, ok := c.session(w, r)
	if !ok {
		return
	}
	sess.Store.Retreat()
	c.writeState(w, http.StatusOK, sess)
}

type jumpRequest struct {
	StepID int `json:"stepId"`
}

// Jump services the review step's Edit action: back to a step without
// touching values or errors.
func (c *Controller) Jump(w http.ResponseWriter, r *http.Request) {
	sess, ok := c.session(w, r)
	if !ok {
		return
	}
	var req jumpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "WIZARD_INVALID_JSON", "invalid json", nil)
		return
	}
	sess.Store.JumpTo(req.StepID)
	c.writeState(w, http.StatusOK, sess)
}

func (c *Controller) Review(w http.ResponseWriter, r *http.Request) {
	sess, ok := c.session(w, r)
	if !ok {
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"steps":  sess.Store.Review(),
		"errors": sess.Store.Errors(),
	})
}

func (c *Controller) Submit(w http.ResponseWriter, r *http.Request) {
	sess, ok := c.session(w, r)
	if !ok {
		return
	}
	if !sess.Store.BeginSubmit() {
		_ = httpapi.WriteError(w, http.StatusConflict, "SUBMIT_IN_FLIGHT", "a submission is already in progress", nil)
		return
	}
	defer sess.Store.EndSubmit()

	if ok, firstInvalid := sess.Store.ValidateAll(); !ok {
		sess.Store.SetActive(firstInvalid)
		_ = httpapi.WriteJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"code":             "FORM_INVALID",
			"firstInvalidStep": firstInvalid,
			"activeStep":       sess.Store.ActiveStep(),
			"errors":           sess.Store.Errors(),
			"scrollTop":        true,
		})
		return
	}

	recordID, err := c.cfg.Submit(r.Context(), sess, sess.Store.Values())
	if err != nil {
		c.writeBackendError(w, r, err)
		return
	}

	c.cfg.Sessions.Delete(sess.ID)
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"recordId": recordID,
	})
}

func (c *Controller) Abandon(w http.ResponseWriter, r *http.Request) {
	sid := mux.Vars(r)["sid"]
	c.cfg.Sessions.Delete(sid)
	w.WriteHeader(http.StatusNoContent)
}

func (c *Controller) writeState(w http.ResponseWriter, status int, sess *wizardsession.Session) {
	_ = httpapi.WriteJSON(w, status, map[string]any{
		"sessionId":    sess.ID,
		"recordId":     sess.RecordID,
		"activeStep":   sess.Store.ActiveStep(),
		"stepCount":    sess.Store.Form().StepCount(),
		"reviewStepId": sess.Store.Form().ReviewStepID(),
		"values":       sess.Store.Values(),
		"errors":       sess.Store.Errors(),
		"submitting":   sess.Store.Submitting(),
	})
}

// writeBackendError surfaces a submit or fetch failure. Domain sentinels
// go through MapError first; cancellation is silent because a superseded
// request must never show a spurious error.
func (c *Controller) writeBackendError(w http.ResponseWriter, r *http.Request, err error) {
	if r.Context().Err() != nil {
		return
	}
	if c.cfg.MapError != nil {
		if status, code, msg, ok := c.cfg.MapError(err); ok {
			_ = httpapi.WriteError(w, status, code, msg, nil)
			return
		}
	}
	msg := registry.HumanMessage(err)
	if msg == "" {
		return
	}
	if entry, ok := r.Context().Value(constants.LoggerKey).(*logrus.Entry); ok {
		entry.WithError(err).Warn("backend call failed")
	}
	_ = httpapi.WriteError(w, http.StatusBadGateway, "BACKEND_ERROR", msg, nil)
}
