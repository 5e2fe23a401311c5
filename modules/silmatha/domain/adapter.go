package domain

import (
	"encoding/json"

	"github.com/sasanalk/sasana-portal/pkg/dateutil"
	"github.com/sasanalk/sasana-portal/pkg/formwizard"
)

// Record is the backend's wire shape for a silmatha registration.
type Record struct {
	ID            json.Number `json:"id"`
	SilmathaNo    string      `json:"silmatha_no"`
	SilmathaName  string      `json:"silmatha_name"`
	LayName       string      `json:"lay_name"`
	RobingDate    string      `json:"robing_date"`
	RobingPlace   string      `json:"robing_place"`
	PreceptorName string      `json:"preceptor_name"`
	DateOfBirth   string      `json:"dob"`
	NicNo         string      `json:"nic_no"`
	ContactNo     string      `json:"contact_no"`
	AramayaName   string      `json:"aramaya_name"`
	Province      string      `json:"province"`
	District      string      `json:"district"`
	Address       string      `json:"aramaya_address"`
	Declaration   bool        `json:"declaration"`
	Status        string      `json:"status"`
}

func ToPayload(values formwizard.Values) map[string]any {
	return map[string]any{
		"silmatha_no":     values["silmatha_number"],
		"silmatha_name":   values["silmatha_name"],
		"lay_name":        values["lay_name"],
		"robing_date":     dateutil.ToWire(values["robing_date"]),
		"robing_place":    values["robing_place"],
		"preceptor_name":  values["preceptor_name"],
		"dob":             dateutil.ToWire(values["date_of_birth"]),
		"nic_no":          values["nic_number"],
		"contact_no":      values["contact_number"],
		"aramaya_name":    values["aramaya_name"],
		"province":        values["province_code"],
		"district":        values["district_code"],
		"aramaya_address": values["address"],
		"declaration":     values["declaration"] == "true",
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
		"silmatha_number": rec.SilmathaNo,
		"silmatha_name":   rec.SilmathaName,
		"lay_name":        rec.LayName,
		"robing_date":     dateutil.ToCanonical(rec.RobingDate),
		"robing_place":    rec.RobingPlace,
		"preceptor_name":  rec.PreceptorName,
		"date_of_birth":   dateutil.ToCanonical(rec.DateOfBirth),
		"nic_number":      rec.NicNo,
		"contact_number":  rec.ContactNo,
		"aramaya_name":    rec.AramayaName,
		"province_code":   rec.Province,
		"district_code":   rec.District,
		"address":         rec.Address,
		"declaration":     declaration,
	}, nil
}
