package listview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCriteria_PendingMovesOnlyOnApply(t *testing.T) {
	c := NewCriteria(map[string]string{"status": ""}, 10)

	c.SetPending("status", "ACTIVE")
	assert.Equal(t, "", c.Applied()["status"], "pending edits must not fetch")

	c.Apply()
	assert.Equal(t, "ACTIVE", c.Applied()["status"])
}

func TestCriteria_ApplyRewindsToFirstPage(t *testing.T) {
	c := NewCriteria(nil, 10)
	c.SetPage(4)
	c.SetPending("district", "colombo")
	c.Apply()
	assert.Equal(t, 1, c.Page())
}

func TestCriteria_ApplySearchBypassesPendingStage(t *testing.T) {
	c := NewCriteria(nil, 10)
	c.SetPage(3)
	c.ApplySearch("sumedha")

	assert.Equal(t, "sumedha", c.Applied()["search_key"])
	assert.Equal(t, "sumedha", c.Pending()["search_key"])
	assert.Equal(t, 1, c.Page())
}

func TestCriteria_ClearResetsBothSnapshots(t *testing.T) {
	c := NewCriteria(map[string]string{"status": "ALL"}, 10)
	c.SetPending("status", "ACTIVE")
	c.Apply()
	c.SetPage(5)
	c.SetLimit(50)

	c.Clear()
	assert.Equal(t, "ALL", c.Pending()["status"])
	assert.Equal(t, "ALL", c.Applied()["status"])
	assert.Equal(t, 1, c.Page())
	assert.Equal(t, 10, c.Limit())
}

func TestCriteria_SetLimitRewindsPage(t *testing.T) {
	c := NewCriteria(nil, 10)
	c.SetPage(7)
	c.SetLimit(25)
	assert.Equal(t, 1, c.Page())
	assert.Equal(t, 25, c.Limit())
}

func TestCriteria_PayloadSkipsEmptyFilters(t *testing.T) {
	c := NewCriteria(map[string]string{"status": "", "district": ""}, 10)
	c.SetPending("district", "galle")
	c.Apply()
	c.SetPage(3)

	payload := c.Payload()
	assert.Equal(t, 20, payload["skip"])
	assert.Equal(t, 10, payload["limit"])
	assert.Equal(t, 3, payload["page"])
	assert.Equal(t, "galle", payload["district"])
	_, hasStatus := payload["status"]
	require.False(t, hasStatus, "empty filters must not reach the backend")
}

func TestCriteria_InvalidPageAndLimitIgnored(t *testing.T) {
	c := NewCriteria(nil, 10)
	c.SetPage(0)
	c.SetLimit(0)
	assert.Equal(t, 1, c.Page())
	assert.Equal(t, 10, c.Limit())
}
