package listapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sasanalk/sasana-portal/pkg/registry"
)

type listHarness struct {
	router *mux.Router

	mu       sync.Mutex
	payloads []map[string]any
	result   registry.ListResult
	err      error
}

func newListHarness(t *testing.T) *listHarness {
	t.Helper()
	h := &listHarness{
		result: registry.ListResult{
			Items: []json.RawMessage{json.RawMessage(`{"id":1}`)},
			Total: 1,
		},
	}
	ctrl := New(context.Background(), Config{
		Domain:         "test",
		Defaults:       map[string]string{"search_key": "", "province": ""},
		DefaultLimit:   10,
		SearchDebounce: 10 * time.Millisecond,
		Fetch: func(ctx context.Context, payload map[string]any) (registry.ListResult, error) {
			h.mu.Lock()
			defer h.mu.Unlock()
			h.payloads = append(h.payloads, payload)
			return h.result, h.err
		},
	})
	h.router = mux.NewRouter()
	ctrl.Mount(h.router.PathPrefix("/list-sessions").Subrouter())
	return h
}

func (h *listHarness) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
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

func (h *listHarness) start(t *testing.T) string {
	t.Helper()
	rec, out := h.do(t, http.MethodPost, "/list-sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var lid string
	require.NoError(t, json.Unmarshal(out["sessionId"], &lid))
	return lid
}

func (h *listHarness) fetchCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.payloads)
}

func (h *listHarness) lastPayload() map[string]any {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.payloads) == 0 {
		return nil
	}
	return h.payloads[len(h.payloads)-1]
}

func waitUntil(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestController_StartFetchesFirstPage(t *testing.T) {
	h := newListHarness(t)
	lid := h.start(t)

	waitUntil(t, func() bool { return h.fetchCount() == 1 })
	payload := h.lastPayload()
	assert.EqualValues(t, 0, payload["skip"])
	assert.EqualValues(t, 10, payload["limit"])
	assert.NotContains(t, payload, "province", "empty filters are not sent")

	waitUntil(t, func() bool {
		_, out := h.do(t, http.MethodGet, "/list-sessions/"+lid, nil)
		var total int
		require.NoError(t, json.Unmarshal(out["total"], &total))
		return total == 1
	})
}

func TestController_FiltersMoveOnlyOnApply(t *testing.T) {
	h := newListHarness(t)
	lid := h.start(t)
	waitUntil(t, func() bool { return h.fetchCount() == 1 })

	rec, out := h.do(t, http.MethodPatch, "/list-sessions/"+lid+"/filters", map[string]any{
		"filters": map[string]string{"province": "WP"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var pending, applied map[string]string
	require.NoError(t, json.Unmarshal(out["pending"], &pending))
	require.NoError(t, json.Unmarshal(out["applied"], &applied))
	assert.Equal(t, "WP", pending["province"])
	assert.Empty(t, applied["province"], "editing a filter must not fetch")
	assert.Equal(t, 1, h.fetchCount())

	rec, out = h.do(t, http.MethodPost, "/list-sessions/"+lid+"/apply", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(out["applied"], &applied))
	assert.Equal(t, "WP", applied["province"])

	waitUntil(t, func() bool { return h.fetchCount() == 2 })
	assert.Equal(t, "WP", h.lastPayload()["province"])
}

func TestController_ApplyRewindsPage(t *testing.T) {
	h := newListHarness(t)
	lid := h.start(t)
	waitUntil(t, func() bool { return h.fetchCount() == 1 })

	_, out := h.do(t, http.MethodPost, "/list-sessions/"+lid+"/page", map[string]int{"page": 3})
	var page int
	require.NoError(t, json.Unmarshal(out["page"], &page))
	assert.Equal(t, 3, page)
	waitUntil(t, func() bool { return h.fetchCount() == 2 })
	assert.EqualValues(t, 20, h.lastPayload()["skip"])

	_, out = h.do(t, http.MethodPost, "/list-sessions/"+lid+"/apply", nil)
	require.NoError(t, json.Unmarshal(out["page"], &page))
	assert.Equal(t, 1, page)
}

func TestController_ClearResetsEverything(t *testing.T) {
	h := newListHarness(t)
	lid := h.start(t)
	waitUntil(t, func() bool { return h.fetchCount() == 1 })

	_, _ = h.do(t, http.MethodPatch, "/list-sessions/"+lid+"/filters", map[string]any{
		"filters": map[string]string{"province": "WP"},
	})
	_, _ = h.do(t, http.MethodPost, "/list-sessions/"+lid+"/apply", nil)
	waitUntil(t, func() bool { return h.fetchCount() == 2 })

	_, out := h.do(t, http.MethodPost, "/list-sessions/"+lid+"/clear", nil)
	var pending, applied map[string]string
	require.NoError(t, json.Unmarshal(out["pending"], &pending))
	require.NoError(t, json.Unmarshal(out["applied"], &applied))
	assert.Empty(t, pending["province"])
	assert.Empty(t, applied["province"])

	waitUntil(t, func() bool { return h.fetchCount() == 3 })
	assert.NotContains(t, h.lastPayload(), "province")
}

func TestController_SearchDebounces(t *testing.T) {
	h := newListHarness(t)
	lid := h.start(t)
	waitUntil(t, func() bool { return h.fetchCount() == 1 })

	// rapid keystrokes coalesce into one fetch with the final text
	for _, text := range []string{"sum", "sume", "sumedha"} {
		rec, _ := h.do(t, http.MethodPost, "/list-sessions/"+lid+"/search", map[string]string{"text": text})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	waitUntil(t, func() bool { return h.fetchCount() == 2 })
	assert.Equal(t, "sumedha", h.lastPayload()["search_key"])

	waitUntil(t, func() bool {
		_, out := h.do(t, http.MethodGet, "/list-sessions/"+lid, nil)
		var applied map[string]string
		require.NoError(t, json.Unmarshal(out["applied"], &applied))
		return applied["search_key"] == "sumedha"
	})
}

func TestController_ShortSearchTextDoesNotFetch(t *testing.T) {
	h := newListHarness(t)
	lid := h.start(t)
	waitUntil(t, func() bool { return h.fetchCount() == 1 })

	_, _ = h.do(t, http.MethodPost, "/list-sessions/"+lid+"/search", map[string]string{"text": "su"})
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, h.fetchCount())
}

func TestController_FetchErrorSurfacesMessage(t *testing.T) {
	h := newListHarness(t)
	h.mu.Lock()
	h.err = assert.AnError
	h.mu.Unlock()
	lid := h.start(t)

	waitUntil(t, func() bool {
		_, out := h.do(t, http.MethodGet, "/list-sessions/"+lid, nil)
		var errMsg string
		require.NoError(t, json.Unmarshal(out["error"], &errMsg))
		return errMsg != ""
	})
}

func TestController_CloseEndsSession(t *testing.T) {
	h := newListHarness(t)
	lid := h.start(t)

	rec, _ := h.do(t, http.MethodDelete, "/list-sessions/"+lid, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec, out := h.do(t, http.MethodGet, "/list-sessions/"+lid, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	var code string
	require.NoError(t, json.Unmarshal(out["code"], &code))
	assert.Equal(t, "LIST_SESSION_NOT_FOUND", code)
}
