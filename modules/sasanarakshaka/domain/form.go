// Package domain declares the Sasanarakshaka Balamandalaya (district
// council) form and the member record shapes hanging off a council.
package domain

import (
	"regexp"

	"github.com/sasanalk/sasana-portal/modules/core/geo"
	"github.com/sasanalk/sasana-portal/pkg/formwizard"
)

const (
	Domain       = "sasanarakshaka"
	MemberDomain = "sasanarakshaka_member"
)

// Member roles accepted by the backend.
var MemberRoles = map[string]string{
	"CHAIRMAN":  "Chairman",
	"SECRETARY": "Secretary",
	"TREASURER": "Treasurer",
	"MEMBER":    "Member",
}

var (
	phonePattern = &formwizard.Pattern{
		Matcher: regexp.MustCompile(`^0\d{9}$`),
		Message: "Must be 10 digits starting with 0",
	}
	regNoPattern = &formwizard.Pattern{
		Matcher: regexp.MustCompile(`^\d{1,8}$`),
		Message: "Must be digits only",
	}
)

var Form = &formwizard.Form{
	Steps: []formwizard.StepDef{
		{
			ID:    1,
			Title: "Council Details",
			Fields: []formwizard.FieldDef{
				{Name: "council_name", Label: "Name of the Balamandalaya", Type: formwizard.TypeText, Rules: formwizard.Rules{Required: true}},
				{Name: "council_reg_number", Label: "Registration Number", Type: formwizard.TypeText, Rules: formwizard.Rules{Pattern: regNoPattern}},
				{Name: "province_code", Label: "Province", Type: formwizard.TypeText, Rules: formwizard.Rules{Required: true}},
				{Name: "district_code", Label: "District", Type: formwizard.TypeText, Rules: formwizard.Rules{Required: true}},
				{Name: "established_date", Label: "Date of Establishment", Type: formwizard.TypeDate, Rules: formwizard.Rules{MaxDateToday: true}},
			},
		},
		{
			ID:    2,
			Title: "Office Bearers",
			Fields: []formwizard.FieldDef{
				{Name: "chairman_name", Label: "Name of the Chairman", Type: formwizard.TypeText, Rules: formwizard.Rules{Required: true}},
				{Name: "secretary_name", Label: "Name of the Secretary", Type: formwizard.TypeText, Rules: formwizard.Rules{Required: true}},
				{Name: "contact_number", Label: "Contact Number", Type: formwizard.TypeTel, Rules: formwizard.Rules{Pattern: phonePattern}},
				{Name: "address", Label: "Address", Type: formwizard.TypeTextarea, Rows: 3, Rules: formwizard.Rules{Required: true}},
				{Name: "declaration", Label: "I certify the above details are correct", Type: formwizard.TypeCheckbox, Rules: formwizard.Rules{Required: true}},
			},
		},
	},
	Defaults: formwizard.Values{
		"declaration": "false",
	},
	Derivations: []formwizard.Derivation{
		{
			Source: "province_code",
			Derive: func(values formwizard.Values) formwizard.Values {
				if geo.DistrictInProvince(values["district_code"], values["province_code"]) {
					return nil
				}
				return formwizard.Values{"district_code": ""}
			},
		},
	},
}
