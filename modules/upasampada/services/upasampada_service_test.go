package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sasanalk/sasana-portal/pkg/eventbus"
	"github.com/sasanalk/sasana-portal/pkg/formwizard"
	"github.com/sasanalk/sasana-portal/pkg/logging"
	"github.com/sasanalk/sasana-portal/pkg/registry"
)

type backendCall struct {
	Action  registry.Action
	Payload map[string]any
}

// fakeBackend records every envelope and answers from a canned script.
type fakeBackend struct {
	calls     []backendCall
	responses map[registry.Action]string
}

func (b *fakeBackend) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var env struct {
			Action  registry.Action `json:"action"`
			Payload map[string]any  `json:"payload"`
		}
		_ = json.Unmarshal(body, &env)
		b.calls = append(b.calls, backendCall{Action: env.Action, Payload: env.Payload})
		if resp, ok := b.responses[env.Action]; ok {
			_, _ = w.Write([]byte(resp))
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}
}

func newService(t *testing.T, backend *fakeBackend) (*UpasampadaService, func()) {
	t.Helper()
	srv := httptest.NewServer(backend.handler())
	client := registry.NewClient(srv.URL, 5*time.Second, logging.ConsoleLogger(logrus.ErrorLevel))
	bus := eventbus.NewEventPublisher(logging.ConsoleLogger(logrus.ErrorLevel))
	return NewUpasampadaService(client, bus), srv.Close
}

func TestSaveStageOne_NewRecord(t *testing.T) {
	backend := &fakeBackend{responses: map[registry.Action]string{
		registry.ActionSaveStageOne: `{"data":{"id":31}}`,
	}}
	svc, done := newService(t, backend)
	defer done()

	id, err := svc.SaveStageOne(context.Background(), "", formwizard.Values{
		"samanera_number": "1042",
		"candidate_name":  "Sumedha Thero",
	})
	require.NoError(t, err)
	assert.Equal(t, "31", id)

	require.Len(t, backend.calls, 1)
	call := backend.calls[0]
	assert.Equal(t, registry.ActionSaveStageOne, call.Action)
	_, hasID := call.Payload["id"]
	assert.False(t, hasID, "a fresh application carries no id")
}

func TestSaveStageOne_Resubmit(t *testing.T) {
	backend := &fakeBackend{responses: map[registry.Action]string{
		registry.ActionSaveStageOne: `{"ok":true}`,
	}}
	svc, done := newService(t, backend)
	defer done()

	id, err := svc.SaveStageOne(context.Background(), "31", formwizard.Values{"samanera_number": "1042"})
	require.NoError(t, err)
	assert.Equal(t, "31", id)
	assert.Equal(t, "31", backend.calls[0].Payload["id"])
}

func TestSaveStageTwo_GateRejectsUnprintedRecord(t *testing.T) {
	backend := &fakeBackend{responses: map[registry.Action]string{
		registry.ActionReadOne: `{"data":{"id":31,"status":"S1_PENDING"}}`,
	}}
	svc, done := newService(t, backend)
	defer done()

	err := svc.SaveStageTwo(context.Background(), "31", formwizard.Values{"upasampada_date": "2020-07-01"})
	require.ErrorIs(t, err, ErrStageTwoNotReady)

	// the save action never went out
	for _, call := range backend.calls {
		assert.NotEqual(t, registry.ActionSaveStageTwo, call.Action)
	}
}

func TestSaveStageTwo_PassesForPrintedRecord(t *testing.T) {
	backend := &fakeBackend{responses: map[registry.Action]string{
		registry.ActionReadOne:      `{"data":{"id":31,"status":"S1_PRINTED"}}`,
		registry.ActionSaveStageTwo: `{"ok":true}`,
	}}
	svc, done := newService(t, backend)
	defer done()

	err := svc.SaveStageTwo(context.Background(), "31", formwizard.Values{
		"upasampada_date": "2020/07/01",
		"sima_name":       "Udakukkhepa Sima",
	})
	require.NoError(t, err)

	last := backend.calls[len(backend.calls)-1]
	require.Equal(t, registry.ActionSaveStageTwo, last.Action)
	data := last.Payload["data"].(map[string]any)
	assert.Equal(t, "2020-07-01", data["upasampada_date"])
}

func TestMarkS1Printed(t *testing.T) {
	backend := &fakeBackend{responses: map[registry.Action]string{
		registry.ActionMarkS1Printed: `{"ok":true}`,
	}}
	svc, done := newService(t, backend)
	defer done()

	require.NoError(t, svc.MarkS1Printed(context.Background(), "31"))
	require.Len(t, backend.calls, 1)
	assert.Equal(t, registry.ActionMarkS1Printed, backend.calls[0].Action)
	assert.Equal(t, "31", backend.calls[0].Payload["id"])
}
