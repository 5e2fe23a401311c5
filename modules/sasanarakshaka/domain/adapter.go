package domain

import (
	"encoding/json"

	"github.com/sasanalk/sasana-portal/pkg/dateutil"
	"github.com/sasanalk/sasana-portal/pkg/formwizard"
)

// Record is the backend's wire shape for a council.
type Record struct {
	ID              json.Number `json:"id"`
	CouncilName     string      `json:"council_name"`
	CouncilRegNo    string      `json:"council_reg_no"`
	Province        string      `json:"province"`
	District        string      `json:"district"`
	EstablishedDate string      `json:"established_date"`
	ChairmanName    string      `json:"chairman_name"`
	SecretaryName   string      `json:"secretary_name"`
	ContactNo       string      `json:"contact_no"`
	Address         string      `json:"address"`
	Declaration     bool        `json:"declaration"`
	Status          string      `json:"status"`
}

// Member is the backend's wire shape for a council member.
type Member struct {
	ID         json.Number `json:"id"`
	CouncilID  json.Number `json:"council_id"`
	MemberName string      `json:"member_name"`
	Role       string      `json:"role"`
	NicNo      string      `json:"nic_no"`
	ContactNo  string      `json:"contact_no"`
}

func ToPayload(values formwizard.Values) map[string]any {
	return map[string]any{
		"council_name":     values["council_name"],
		"council_reg_no":   values["council_reg_number"],
		"province":         values["province_code"],
		"district":         values["district_code"],
		"established_date": dateutil.ToWire(values["established_date"]),
		"chairman_name":    values["chairman_name"],
		"secretary_name":   values["secretary_name"],
		"contact_no":       values["contact_number"],
		"address":          values["address"],
		"declaration":      values["declaration"] == "true",
	}
}

func DecodeRecord(raw json.RawMessage) (Record, error) {
	var rec Record
	err := json.Unmarshal(raw, &rec)
	return rec, err
}

func DecodeMember(raw json.RawMessage) (Member, error) {
	var m Member
	err := json.Unmarshal(raw, &m)
	return m, err
}

// FromRecord seeds the wizard from a fetched council when editing.
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
		"council_name":       rec.CouncilName,
		"council_reg_number": rec.CouncilRegNo,
		"province_code":      rec.Province,
		"district_code":      rec.District,
		"established_date":   dateutil.ToCanonical(rec.EstablishedDate),
		"chairman_name":      rec.ChairmanName,
		"secretary_name":     rec.SecretaryName,
		"contact_number":     rec.ContactNo,
		"address":            rec.Address,
		"declaration":        declaration,
	}, nil
}
