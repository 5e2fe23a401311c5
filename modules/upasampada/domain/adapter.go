package domain

import (
	"encoding/json"

	"github.com/sasanalk/sasana-portal/pkg/dateutil"
	"github.com/sasanalk/sasana-portal/pkg/formwizard"
)

// Record is the backend's wire shape for an upasampada record. Stage-two
// fields stay empty until the ceremony is saved.
type Record struct {
	ID             json.Number `json:"id"`
	SamaneraNo     string      `json:"samanera_no"`
	CandidateName  string      `json:"candidate_name"`
	OrdinationDate string      `json:"ordination_date"`
	ContactNo      string      `json:"contact_no"`
	TutorName      string      `json:"tutor_bhikkhu_name"`
	TempleName     string      `json:"vihara_name"`
	TempleRegNo    string      `json:"vihara_reg_no"`
	Declaration    bool        `json:"declaration"`
	UpasampadaDate string      `json:"upasampada_date"`
	SimaName       string      `json:"sima_name"`
	UpadhyayaName  string      `json:"upadhyaya_name"`
	Karmacharya    string      `json:"karmacharya_name"`
	Status         string      `json:"status"`
}

// StageOnePayload maps the application form onto the stage-one save body.
func StageOnePayload(values formwizard.Values) map[string]any {
	return map[string]any{
		"samanera_no":        values["samanera_number"],
		"candidate_name":     values["candidate_name"],
		"ordination_date":    dateutil.ToWire(values["ordination_date"]),
		"contact_no":         values["contact_number"],
		"tutor_bhikkhu_name": values["tutor_name"],
		"vihara_name":        values["temple_name"],
		"vihara_reg_no":      values["temple_reg_number"],
		"declaration":        values["declaration"] == "true",
	}
}

// StageTwoPayload maps the ceremony form onto the stage-two save body.
func StageTwoPayload(values formwizard.Values) map[string]any {
	return map[string]any{
		"upasampada_date":  dateutil.ToWire(values["upasampada_date"]),
		"sima_name":        values["sima_name"],
		"upadhyaya_name":   values["upadhyaya_name"],
		"karmacharya_name": values["karmacharya_name"],
	}
}

func DecodeRecord(raw json.RawMessage) (Record, error) {
	var rec Record
	err := json.Unmarshal(raw, &rec)
	return rec, err
}

// FromRecord seeds a wizard from a fetched record. It carries the fields
// of both stages so the stage-two form can validate against the stage-one
// ordination date.
func FromRecord(raw json.RawMessage) (formwizard.Values, error) {
	rec, err := DecodeRecord(raw)
	if err != nil {
		return nil, err
	}
	declaration := "false"
	if rec.Declaration {
		declaration = "true"
	}
	return formwizard.Values{
		"samanera_number":   rec.SamaneraNo,
		"candidate_name":    rec.CandidateName,
		"ordination_date":   dateutil.ToCanonical(rec.OrdinationDate),
		"contact_number":    rec.ContactNo,
		"tutor_name":        rec.TutorName,
		"temple_name":       rec.TempleName,
		"temple_reg_number": rec.TempleRegNo,
		"declaration":       declaration,
		"upasampada_date":   dateutil.ToCanonical(rec.UpasampadaDate),
		"sima_name":         rec.SimaName,
		"upadhyaya_name":    rec.UpadhyayaName,
		"karmacharya_name":  rec.Karmacharya,
	}, nil
}
