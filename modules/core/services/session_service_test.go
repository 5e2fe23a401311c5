package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sasanalk/sasana-portal/pkg/composables"
	"github.com/sasanalk/sasana-portal/pkg/registry"
)

func TestSessionStore(t *testing.T) {
	store := NewSessionStore()

	t.Run("put and find", func(t *testing.T) {
		sess := &composables.Session{Username: "officer1", Department: composables.DepartmentBhikkhu}
		sid := store.Put(sess)
		require.NotEmpty(t, sid)

		found, ok := store.Find(sid)
		require.True(t, ok)
		assert.Same(t, sess, found)
	})

	t.Run("unknown sid", func(t *testing.T) {
		_, ok := store.Find("no-such-sid")
		assert.False(t, ok)
	})

	t.Run("drop", func(t *testing.T) {
		sid := store.Put(&composables.Session{Username: "officer2"})
		store.Drop(sid)
		_, ok := store.Find(sid)
		assert.False(t, ok)
	})

	t.Run("expired session evicted on find", func(t *testing.T) {
		sid := store.Put(&composables.Session{
			Username:  "officer3",
			ExpiresAt: time.Now().Add(-time.Minute),
		})
		_, ok := store.Find(sid)
		assert.False(t, ok)
		// a second lookup hits the deleted slot, not the stale session
		_, ok = store.Find(sid)
		assert.False(t, ok)
	})
}

func TestSessionService_Login(t *testing.T) {
	var gotCreds map[string]string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotCreds))
		if gotCreds["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"data":{"token":"tok-123","username":"officer1","department":"BHIKKHU","role":"OFFICER","expires_in":7200}}`))
	}))
	defer backend.Close()

	logger := logrus.New()
	client := registry.NewClient(backend.URL, 5*time.Second, logger)
	store := NewSessionStore()
	svc := NewSessionService(client, store, time.Hour)

	t.Run("success opens a session", func(t *testing.T) {
		sid, sess, err := svc.Login(context.Background(), "officer1", "secret")
		require.NoError(t, err)
		require.NotEmpty(t, sid)
		assert.Equal(t, "tok-123", sess.Token)
		assert.Equal(t, composables.DepartmentBhikkhu, sess.Department)
		assert.Equal(t, map[string]string{"username": "officer1", "password": "secret"}, gotCreds)

		// expires_in from the backend wins over the configured duration
		assert.WithinDuration(t, time.Now().Add(2*time.Hour), sess.ExpiresAt, 5*time.Second)

		found, ok := store.Find(sid)
		require.True(t, ok)
		assert.Same(t, sess, found)
	})

	t.Run("bad credentials open nothing", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "officer1", "wrong")
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, registry.StatusOf(err))
		assert.Equal(t, "Invalid credentials", registry.HumanMessage(err))
	})

	t.Run("logout drops the session", func(t *testing.T) {
		sid, _, err := svc.Login(context.Background(), "officer1", "secret")
		require.NoError(t, err)
		svc.Logout(sid)
		_, ok := store.Find(sid)
		assert.False(t, ok)
	})
}
