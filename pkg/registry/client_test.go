package registry

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, 5*time.Second, nil), srv
}

func TestClient_DoPostsActionEnvelope(t *testing.T) {
	var gotPath, gotAuth string
	var gotEnvelope Envelope
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotEnvelope)
		_, _ = w.Write([]byte(`{"id":7}`))
	})
	defer srv.Close()

	ctx := WithAuthToken(context.Background(), "tok-123")
	raw, err := client.Do(ctx, "bhikkhu", ActionCreate, map[string]any{"data": map[string]any{"samanera_no": "42"}})
	require.NoError(t, err)

	assert.Equal(t, "/bhikkhu", gotPath)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, ActionCreate, gotEnvelope.Action)
	assert.Equal(t, "7", RecordID(raw))
}

func TestClient_DoParsesErrorEnvelope(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":"Samanera number already registered"}`))
	})
	defer srv.Close()

	_, err := client.Do(context.Background(), "bhikkhu", ActionCreate, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, StatusOf(err))
	assert.Equal(t, "Samanera number already registered", HumanMessage(err))
}

func TestClient_DoDetailWinsOverMessage(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"generic","detail":"specific"}`))
	})
	defer srv.Close()

	_, err := client.Do(context.Background(), "vihara", ActionUpdate, nil)
	require.Error(t, err)
	assert.Equal(t, "specific", HumanMessage(err))
}

func TestClient_DoEmptyErrorBodyFallsBack(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer srv.Close()

	_, err := client.Do(context.Background(), "vihara", ActionReadOne, nil)
	require.Error(t, err)
	assert.Equal(t, FallbackMessage, HumanMessage(err))
}

func TestClient_CancellationPassesThrough(t *testing.T) {
	release := make(chan struct{})
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		<-release
	})
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, err := client.Do(ctx, "bhikkhu", ActionReadAll, nil)
	require.ErrorIs(t, err, context.Canceled)
	// superseded requests surface no user-facing message
	assert.Equal(t, "", HumanMessage(err))
}

func TestClient_ListNormalizes(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"rows":[{"id":1},{"id":2}],"total":30}}`))
	})
	defer srv.Close()

	res, err := client.List(context.Background(), "silmatha", nil)
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, 30, res.Total)
}

func TestClient_OneUnwrapsData(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"id":5,"vihara_name":"Gangaramaya"}}`))
	})
	defer srv.Close()

	raw, err := client.One(context.Background(), "vihara", map[string]any{"id": "5"})
	require.NoError(t, err)
	var rec struct {
		ViharaName string `json:"vihara_name"`
	}
	require.NoError(t, json.Unmarshal(raw, &rec))
	assert.Equal(t, "Gangaramaya", rec.ViharaName)
}

func TestClient_Login(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":{"token":"tok","username":"saman","department":"BHIKKHU","role":"officer","expires_in":3600}}`))
	})
	defer srv.Close()

	claims, err := client.Login(context.Background(), "saman", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok", claims.Token)
	assert.Equal(t, "BHIKKHU", claims.Department)
}

func TestClient_UploadDocument(t *testing.T) {
	var gotFilename string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bhikkhu/9/documents", r.URL.Path)
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		gotFilename = header.Filename
		w.WriteHeader(http.StatusCreated)
	})
	defer srv.Close()

	err := client.UploadDocument(context.Background(), "bhikkhu", "9", "certificate.pdf", strings.NewReader("scan"))
	require.NoError(t, err)
	assert.Equal(t, "certificate.pdf", gotFilename)
}

func TestHumanMessage(t *testing.T) {
	assert.Equal(t, "", HumanMessage(nil))
	assert.Equal(t, "", HumanMessage(context.Canceled))
	assert.Equal(t, FallbackMessage, HumanMessage(assert.AnError))
}
