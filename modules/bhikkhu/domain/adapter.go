package domain

import (
	"encoding/json"

	"github.com/sasanalk/sasana-portal/pkg/dateutil"
	"github.com/sasanalk/sasana-portal/pkg/formwizard"
)

// Record is the backend's wire shape for a bhikkhu registration.
type Record struct {
	ID             json.Number `json:"id"`
	SamaneraNo     string      `json:"samanera_no"`
	BhikkhuName    string      `json:"bhikkhu_name"`
	LayName        string      `json:"lay_name"`
	OrdinationDate string      `json:"ordination_date"`
	OrdinationPlc  string      `json:"ordination_place"`
	NikayaCode     string      `json:"nikaya"`
	Parshawaya     string      `json:"parshawaya"`
	TutorName      string      `json:"tutor_bhikkhu_name"`
	DateOfBirth    string      `json:"dob"`
	BirthCertNo    string      `json:"birth_cert_no"`
	NicNo          string      `json:"nic_no"`
	ContactNo      string      `json:"contact_no"`
	Email          string      `json:"email"`
	FatherName     string      `json:"father_name"`
	TempleName     string      `json:"vihara_name"`
	TempleRegNo    string      `json:"vihara_reg_no"`
	Province       string      `json:"province"`
	District       string      `json:"district"`
	Address        string      `json:"vihara_address"`
	Declaration    bool        `json:"declaration"`
	Status         string      `json:"status"`
}

// ToPayload transforms validated form values into the backend request
// body: internal names become wire keys, dates move to wire format and
// the declaration checkbox becomes a real boolean.
func ToPayload(values formwizard.Values) map[string]any {
	return map[string]any{
		"samanera_no":        values["samanera_number"],
		"bhikkhu_name":       values["bhikkhu_name"],
		"lay_name":           values["lay_name"],
		"ordination_date":    dateutil.ToWire(values["ordination_date"]),
		"ordination_place":   values["ordination_place"],
		"nikaya":             values["nikaya_code"],
		"parshawaya":         values["parshawaya"],
		"tutor_bhikkhu_name": values["tutor_name"],
		"dob":                dateutil.ToWire(values["date_of_birth"]),
		"birth_cert_no":      values["birth_certificate_number"],
		"nic_no":             values["nic_number"],
		"contact_no":         values["contact_number"],
		"email":              values["email"],
		"father_name":        values["father_name"],
		"vihara_name":        values["temple_name"],
		"vihara_reg_no":      values["temple_reg_number"],
		"province":           values["province_code"],
		"district":           values["district_code"],
		"vihara_address":     values["address"],
		"declaration":        values["declaration"] == "true",
	}
}

// DecodeRecord parses one list item into the wire shape.
func DecodeRecord(raw json.RawMessage) (Record, error) {
	var rec Record
	err := json.Unmarshal(raw, &rec)
	return rec, err
}

// FromRecord seeds the wizard from a fetched record when editing.
func FromRecord(raw json.RawMessage) (formwizard.Values, error) {
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	declaration := "false"
	if rec.Declaration {
		declaration = "true"
	}
	return formwizard.Values{
		"samanera_number":          rec.SamaneraNo,
		"bhikkhu_name":             rec.BhikkhuName,
		"lay_name":                 rec.LayName,
		"ordination_date":          dateutil.ToCanonical(rec.OrdinationDate),
		"ordination_place":         rec.OrdinationPlc,
		"nikaya_code":              rec.NikayaCode,
		"nikaya_name":              Nikayas[rec.NikayaCode],
		"parshawaya":               rec.Parshawaya,
		"tutor_name":               rec.TutorName,
		"date_of_birth":            dateutil.ToCanonical(rec.DateOfBirth),
		"birth_certificate_number": rec.BirthCertNo,
		"nic_number":               rec.NicNo,
		"contact_number":           rec.ContactNo,
		"email":                    rec.Email,
		"father_name":              rec.FatherName,
		"temple_name":              rec.TempleName,
		"temple_reg_number":        rec.TempleRegNo,
		"province_code":            rec.Province,
		"district_code":            rec.District,
		"address":                  rec.Address,
		"declaration":              declaration,
	}, nil
}
