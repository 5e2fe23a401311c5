package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sasanalk/sasana-portal/pkg/formwizard"
)

func TestToPayload(t *testing.T) {
	values := formwizard.Values{
		"samanera_number": "1042",
		"bhikkhu_name":    "Sumedha Thero",
		"ordination_date": "2015/06/20",
		"nikaya_code":     "SI",
		"tutor_name":      "Dhammapala Thero",
		"lay_name":        "Saman Perera",
		"date_of_birth":   "1990-02-11",
		"contact_number":  "0771234567",
		"temple_name":     "Gangaramaya",
		"province_code":   "WP",
		"district_code":   "CO",
		"address":         "61 Sri Jinarathana Rd",
		"declaration":     "true",
	}

	payload := ToPayload(values)
	assert.Equal(t, "1042", payload["samanera_no"])
	assert.Equal(t, "Sumedha Thero", payload["bhikkhu_name"])
	// dates go out in wire format regardless of input layout
	assert.Equal(t, "2015-06-20", payload["ordination_date"])
	assert.Equal(t, "1990-02-11", payload["dob"])
	assert.Equal(t, "Gangaramaya", payload["vihara_name"])
	// the checkbox string turns into a real boolean
	assert.Equal(t, true, payload["declaration"])
}

func TestToPayload_DeclarationFalseUnlessLiteralTrue(t *testing.T) {
	for _, raw := range []string{"", "false", "TRUE", "yes"} {
		payload := ToPayload(formwizard.Values{"declaration": raw})
		assert.Equal(t, false, payload["declaration"], "raw=%q", raw)
	}
}

func TestFromRecord_RoundTripsIntoWizardValues(t *testing.T) {
	raw := json.RawMessage(`{
		"id": 7,
		"samanera_no": "1042",
		"bhikkhu_name": "Sumedha Thero",
		"ordination_date": "2015-06-20",
		"nikaya": "SI",
		"dob": "1990-02-11",
		"vihara_name": "Gangaramaya",
		"province": "WP",
		"district": "CO",
		"declaration": true
	}`)

	values, err := FromRecord(raw)
	require.NoError(t, err)
	assert.Equal(t, "1042", values["samanera_number"])
	assert.Equal(t, "2015-06-20", values["ordination_date"], "wizard values hold the canonical form")
	assert.Equal(t, "Gangaramaya", values["temple_name"])
	assert.Equal(t, "SI", values["nikaya_code"])
	assert.Equal(t, "true", values["declaration"])
}

func TestFromRecord_BadJSON(t *testing.T) {
	_, err := FromRecord(json.RawMessage(`{`))
	assert.Error(t, err)
}
