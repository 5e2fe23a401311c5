package registry

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeList(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		items int
		total int
	}{
		{"bare array", `[{"id":1},{"id":2}]`, 2, 2},
		{"data array with total", `{"data":[{"id":1}],"total":40}`, 1, 40},
		{"data array with totalRecords", `{"data":[{"id":1},{"id":2}],"totalRecords":7}`, 2, 7},
		{"data array without total", `{"data":[{"id":1},{"id":2},{"id":3}]}`, 3, 3},
		{"nested data.data", `{"data":{"data":[{"id":1}],"total":12}}`, 1, 12},
		{"nested data.rows", `{"data":{"rows":[{"id":1},{"id":2}]}}`, 2, 2},
		{"top-level rows", `{"rows":[{"id":1}],"total":5}`, 1, 5},
		{"empty data array", `{"data":[],"total":0}`, 0, 0},
		{"unrecognized object", `{"something":"else"}`, 0, 0},
		{"outer total reaches nested rows", `{"data":{"rows":[{"id":1}]},"total":9}`, 1, 9},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := NormalizeList(json.RawMessage(tc.raw))
			assert.NotNil(t, res.Items)
			assert.Len(t, res.Items, tc.items)
			assert.Equal(t, tc.total, res.Total)
		})
	}
}

func TestNormalizeList_ItemsSurviveUnwrapping(t *testing.T) {
	res := NormalizeList(json.RawMessage(`{"data":{"data":[{"id":1,"name":"a"}]}}`))
	var rec struct {
		Name string `json:"name"`
	}
	assert.NoError(t, json.Unmarshal(res.Items[0], &rec))
	assert.Equal(t, "a", rec.Name)
}

func TestRecordID(t *testing.T) {
	assert.Equal(t, "12", RecordID(json.RawMessage(`{"id":12}`)))
	assert.Equal(t, "34", RecordID(json.RawMessage(`{"data":{"id":34}}`)))
	assert.Equal(t, "", RecordID(json.RawMessage(`{"ok":true}`)))
	assert.Equal(t, "", RecordID(json.RawMessage(`not json`)))
}
