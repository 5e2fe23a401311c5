package wizardsession

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sasanalk/sasana-portal/pkg/formwizard"
)

func sessionForm() *formwizard.Form {
	return &formwizard.Form{
		Steps: []formwizard.StepDef{
			{ID: 1, Title: "Only", Fields: []formwizard.FieldDef{
				{Name: "name", Label: "Name", Type: formwizard.TypeText, Rules: formwizard.Rules{Required: true}},
			}},
		},
	}
}

func TestManager_CreateAndGet(t *testing.T) {
	m := NewManager(time.Hour, nil)
	sess := m.Create("bhikkhu", "", sessionForm())
	require.NotEmpty(t, sess.ID)

	got, ok := m.Get(sess.ID)
	require.True(t, ok)
	assert.Same(t, sess, got)
	assert.Equal(t, "bhikkhu", got.Domain)

	_, ok = m.Get("no-such-id")
	assert.False(t, ok)
}

func TestManager_DeleteIsTerminal(t *testing.T) {
	m := NewManager(time.Hour, nil)
	sess := m.Create("vihara", "12", sessionForm())
	m.Delete(sess.ID)
	_, ok := m.Get(sess.ID)
	assert.False(t, ok)
	assert.Zero(t, m.Len())
}

func TestManager_GetExpiresLazily(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	m := NewManager(30*time.Minute, clock)

	sess := m.Create("silmatha", "", sessionForm())
	now = now.Add(31 * time.Minute)
	_, ok := m.Get(sess.ID)
	assert.False(t, ok)
	assert.Zero(t, m.Len(), "expired session is dropped on access")
}

func TestManager_GetTouchesSession(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	m := NewManager(30*time.Minute, clock)

	sess := m.Create("silmatha", "", sessionForm())
	now = now.Add(20 * time.Minute)
	_, ok := m.Get(sess.ID)
	require.True(t, ok)

	// another 20 minutes is fine because the Get refreshed the clock
	now = now.Add(20 * time.Minute)
	_, ok = m.Get(sess.ID)
	assert.True(t, ok)
}

func TestManager_Sweep(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	m := NewManager(30*time.Minute, clock)

	stale := m.Create("bhikkhu", "", sessionForm())
	now = now.Add(40 * time.Minute)
	fresh := m.Create("bhikkhu", "", sessionForm())

	assert.Equal(t, 1, m.Sweep())
	_, ok := m.Get(stale.ID)
	assert.False(t, ok)
	_, ok = m.Get(fresh.ID)
	assert.True(t, ok)
}
