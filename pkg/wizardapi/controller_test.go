package wizardapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sasanalk/sasana-portal/pkg/formwizard"
	"github.com/sasanalk/sasana-portal/pkg/wizardsession"
)

func wizardForm() *formwizard.Form {
	return &formwizard.Form{
		Steps: []formwizard.StepDef{
			{ID: 1, Title: "Identity", Fields: []formwizard.FieldDef{
				{Name: "full_name", Label: "Full Name", Type: formwizard.TypeText, Rules: formwizard.Rules{Required: true}},
			}},
			{ID: 2, Title: "Declaration", Fields: []formwizard.FieldDef{
				{Name: "declaration", Label: "Declaration", Type: formwizard.TypeCheckbox, Rules: formwizard.Rules{Required: true}},
			}},
		},
		Defaults: formwizard.Values{"declaration": "false"},
	}
}

type harness struct {
	router   *mux.Router
	sessions *wizardsession.Manager
	submits  int
	submit   SubmitFunc
	mapError MapError
	fetched  map[string]formwizard.Values
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		sessions: wizardsession.NewManager(time.Hour, nil),
		fetched:  map[string]formwizard.Values{},
	}
	ctrl := New(Config{
		Domain:   "test",
		Form:     wizardForm(),
		Sessions: h.sessions,
		Submit: func(ctx context.Context, sess *wizardsession.Session, values formwizard.Values) (string, error) {
			h.submits++
			if h.submit != nil {
				return h.submit(ctx, sess, values)
			}
			return "99", nil
		},
		Fetch: func(ctx context.Context, recordID string) (formwizard.Values, error) {
			return h.fetched[recordID], nil
		},
		MapError: func(err error) (int, string, string, bool) {
			if h.mapError != nil {
				return h.mapError(err)
			}
			return 0, "", "", false
		},
	})
	h.router = mux.NewRouter()
	ctrl.Mount(h.router.PathPrefix("/wizard").Subrouter())
	return h
}

func (h *harness) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)

	out := map[string]json.RawMessage{}
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &out)
	}
	return rec, out
}

func (h *harness) start(t *testing.T) string {
	t.Helper()
	rec, out := h.do(t, http.MethodPost, "/wizard", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var sid string
	require.NoError(t, json.Unmarshal(out["sessionId"], &sid))
	return sid
}

func TestController_StepsMetadata(t *testing.T) {
	h := newHarness(t)
	rec, out := h.do(t, http.MethodGet, "/wizard/steps", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var reviewID int
	require.NoError(t, json.Unmarshal(out["reviewStepId"], &reviewID))
	assert.Equal(t, 3, reviewID)

	var steps []struct {
		ID    int    `json:"id"`
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(out["steps"], &steps))
	require.Len(t, steps, 3)
	assert.Equal(t, "Review", steps[2].Title)
}

func TestController_StartBlankAndPatch(t *testing.T) {
	h := newHarness(t)
	sid := h.start(t)

	rec, out := h.do(t, http.MethodPatch, "/wizard/"+sid+"/fields", map[string]any{
		"values": map[string]string{"full_name": "Sumedha"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var values map[string]string
	require.NoError(t, json.Unmarshal(out["values"], &values))
	assert.Equal(t, "Sumedha", values["full_name"])
	assert.Equal(t, "false", values["declaration"], "defaults are seeded")
}

func TestController_StartWithRecordOverlays(t *testing.T) {
	h := newHarness(t)
	h.fetched["12"] = formwizard.Values{"full_name": "Sumedha Thero"}

	rec, out := h.do(t, http.MethodPost, "/wizard", map[string]string{"recordId": "12"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var values map[string]string
	require.NoError(t, json.Unmarshal(out["values"], &values))
	assert.Equal(t, "Sumedha Thero", values["full_name"])

	var recordID string
	require.NoError(t, json.Unmarshal(out["recordId"], &recordID))
	assert.Equal(t, "12", recordID)
}

func TestController_AdvanceBlockedByInvalidStep(t *testing.T) {
	h := newHarness(t)
	sid := h.start(t)

	rec, out := h.do(t, http.MethodPost, "/wizard/"+sid+"/advance", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var code string
	require.NoError(t, json.Unmarshal(out["code"], &code))
	assert.Equal(t, "STEP_INVALID", code)

	var scrollTop bool
	require.NoError(t, json.Unmarshal(out["scrollTop"], &scrollTop))
	assert.True(t, scrollTop)

	var errs map[string]string
	require.NoError(t, json.Unmarshal(out["errors"], &errs))
	assert.Equal(t, "Required", errs["full_name"])
}

func TestController_AdvanceRetreatJump(t *testing.T) {
	h := newHarness(t)
	sid := h.start(t)

	_, _ = h.do(t, http.MethodPatch, "/wizard/"+sid+"/fields", map[string]any{
		"values": map[string]string{"full_name": "Sumedha"},
	})
	rec, out := h.do(t, http.MethodPost, "/wizard/"+sid+"/advance", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var active int
	require.NoError(t, json.Unmarshal(out["activeStep"], &active))
	assert.Equal(t, 2, active)

	rec, out = h.do(t, http.MethodPost, "/wizard/"+sid+"/retreat", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(out["activeStep"], &active))
	assert.Equal(t, 1, active)

	rec, out = h.do(t, http.MethodPost, "/wizard/"+sid+"/jump", map[string]int{"stepId": 2})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(out["activeStep"], &active))
	assert.Equal(t, 2, active)
}

func TestController_SubmitInvalidFormLandsOnFirstInvalidStep(t *testing.T) {
	h := newHarness(t)
	sid := h.start(t)

	_, _ = h.do(t, http.MethodPatch, "/wizard/"+sid+"/fields", map[string]any{
		"values": map[string]string{"full_name": "Sumedha"},
	})
	rec, out := h.do(t, http.MethodPost, "/wizard/"+sid+"/submit", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var code string
	require.NoError(t, json.Unmarshal(out["code"], &code))
	assert.Equal(t, "FORM_INVALID", code)

	var firstInvalid int
	require.NoError(t, json.Unmarshal(out["firstInvalidStep"], &firstInvalid))
	assert.Equal(t, 2, firstInvalid)

	assert.Zero(t, h.submits, "an invalid form never reaches the backend")

	// the guard was released: the session can still submit after fixing
	_, _ = h.do(t, http.MethodPatch, "/wizard/"+sid+"/fields", map[string]any{
		"values": map[string]string{"declaration": "true"},
	})
	rec, _ = h.do(t, http.MethodPost, "/wizard/"+sid+"/submit", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestController_SubmitSuccessEndsSession(t *testing.T) {
	h := newHarness(t)
	sid := h.start(t)

	_, _ = h.do(t, http.MethodPatch, "/wizard/"+sid+"/fields", map[string]any{
		"values": map[string]string{"full_name": "Sumedha", "declaration": "true"},
	})
	rec, out := h.do(t, http.MethodPost, "/wizard/"+sid+"/submit", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var recordID string
	require.NoError(t, json.Unmarshal(out["recordId"], &recordID))
	assert.Equal(t, "99", recordID)
	assert.Equal(t, 1, h.submits)

	// the wizard session is terminal after success
	rec, _ = h.do(t, http.MethodGet, "/wizard/"+sid, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestController_SubmitFailureKeepsSessionAndClearsGuard(t *testing.T) {
	h := newHarness(t)
	h.submit = func(ctx context.Context, sess *wizardsession.Session, values formwizard.Values) (string, error) {
		return "", assert.AnError
	}
	sid := h.start(t)
	_, _ = h.do(t, http.MethodPatch, "/wizard/"+sid+"/fields", map[string]any{
		"values": map[string]string{"full_name": "Sumedha", "declaration": "true"},
	})

	rec, _ := h.do(t, http.MethodPost, "/wizard/"+sid+"/submit", nil)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	// the session survives a failed submit so the user can retry
	rec, out := h.do(t, http.MethodGet, "/wizard/"+sid, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var submitting bool
	require.NoError(t, json.Unmarshal(out["submitting"], &submitting))
	assert.False(t, submitting, "the in-flight flag must never stick")
}

func TestController_SubmitMapsDomainSentinel(t *testing.T) {
	errNotReady := errors.New("record not ready")
	h := newHarness(t)
	h.submit = func(ctx context.Context, sess *wizardsession.Session, values formwizard.Values) (string, error) {
		return "", errNotReady
	}
	h.mapError = func(err error) (int, string, string, bool) {
		if errors.Is(err, errNotReady) {
			return http.StatusConflict, "RECORD_NOT_READY", "Record is not ready for this step", true
		}
		return 0, "", "", false
	}
	sid := h.start(t)
	_, _ = h.do(t, http.MethodPatch, "/wizard/"+sid+"/fields", map[string]any{
		"values": map[string]string{"full_name": "Sumedha", "declaration": "true"},
	})

	rec, out := h.do(t, http.MethodPost, "/wizard/"+sid+"/submit", nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	var code, message string
	require.NoError(t, json.Unmarshal(out["code"], &code))
	require.NoError(t, json.Unmarshal(out["message"], &message))
	assert.Equal(t, "RECORD_NOT_READY", code)
	assert.Equal(t, "Record is not ready for this step", message)

	// a mapped conflict keeps the session alive for a retry
	rec, _ = h.do(t, http.MethodGet, "/wizard/"+sid, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestController_Abandon(t *testing.T) {
	h := newHarness(t)
	sid := h.start(t)

	rec, _ := h.do(t, http.MethodDelete, "/wizard/"+sid, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec, _ = h.do(t, http.MethodGet, "/wizard/"+sid, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestController_UnknownSession(t *testing.T) {
	h := newHarness(t)
	rec, out := h.do(t, http.MethodGet, "/wizard/deadbeef", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	var code string
	require.NoError(t, json.Unmarshal(out["code"], &code))
	assert.Equal(t, "WIZARD_SESSION_NOT_FOUND", code)
}
