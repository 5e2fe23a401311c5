package domain

import (
	"encoding/json"

	"github.com/sasanalk/sasana-portal/pkg/dateutil"
	"github.com/sasanalk/sasana-portal/pkg/formwizard"
)

// Record is the backend's wire shape for a vihara registration.
type Record struct {
	ID               json.Number `json:"id"`
	ViharaName       string      `json:"vihara_name"`
	ViharaRegNo      string      `json:"vihara_reg_no"`
	NikayaCode       string      `json:"nikaya"`
	Parshawaya       string      `json:"parshawaya"`
	EstablishedDate  string      `json:"established_date"`
	Viharadhipathi   string      `json:"viharadhipathi_name"`
	ViharadhipathiNo string      `json:"viharadhipathi_reg_no"`
	ContactNo        string      `json:"contact_no"`
	Email            string      `json:"email"`
	Province         string      `json:"province"`
	District         string      `json:"district"`
	Address          string      `json:"vihara_address"`
	LandExtent       string      `json:"land_extent"`
	LandOwnership    string      `json:"land_ownership"`
	Declaration      bool        `json:"declaration"`
	Status           string      `json:"status"`
}

func ToPayload(values formwizard.Values) map[string]any {
	return map[string]any{
		"vihara_name":           values["temple_name"],
		"vihara_reg_no":         values["temple_reg_number"],
		"nikaya":                values["nikaya_code"],
		"parshawaya":            values["parshawaya"],
		"established_date":      dateutil.ToWire(values["established_date"]),
		"viharadhipathi_name":   values["viharadhipathi_name"],
		"viharadhipathi_reg_no": values["viharadhipathi_reg_number"],
		"contact_no":            values["contact_number"],
		"email":                 values["email"],
		"province":              values["province_code"],
		"district":              values["district_code"],
		"vihara_address":        values["address"],
		"land_extent":           values["land_extent"],
		"land_ownership":        values["land_ownership"],
		"declaration":           values["declaration"] == "true",
	}
}

func DecodeRecord(raw json.RawMessage) (Record, error) {
	var rec Record
	err := json.Unmarshal(raw, &rec)
	return rec, err
}

// FromRecord seeds the wizard from a fetched record when editing.
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
		"temple_name":               rec.ViharaName,
		"temple_reg_number":         rec.ViharaRegNo,
		"nikaya_code":               rec.NikayaCode,
		"nikaya_name":               Nikayas[rec.NikayaCode],
		"parshawaya":                rec.Parshawaya,
		"established_date":          dateutil.ToCanonical(rec.EstablishedDate),
		"viharadhipathi_name":       rec.Viharadhipathi,
		"viharadhipathi_reg_number": rec.ViharadhipathiNo,
		"contact_number":            rec.ContactNo,
		"email":                     rec.Email,
		"province_code":             rec.Province,
		"district_code":             rec.District,
		"address":                   rec.Address,
		"land_extent":               rec.LandExtent,
		"land_ownership":            rec.LandOwnership,
		"declaration":               declaration,
	}, nil
}
