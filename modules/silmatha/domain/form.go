// Package domain declares the Silmatha registration form and its
// submission payload mapping.
package domain

import (
	"regexp"

	"github.com/sasanalk/sasana-portal/modules/core/geo"
	"github.com/sasanalk/sasana-portal/pkg/dateutil"
	"github.com/sasanalk/sasana-portal/pkg/formwizard"
)

const Domain = "silmatha"

var (
	phonePattern = &formwizard.Pattern{
		Matcher: regexp.MustCompile(`^0\d{9}$`),
		Message: "Must be 10 digits starting with 0",
	}
	nicPattern = &formwizard.Pattern{
		Matcher: regexp.MustCompile(`^(\d{9}[VvXx]|\d{12})$`),
		Message: "Must be a valid NIC number",
	}
	registrationNoPattern = &formwizard.Pattern{
		Matcher: regexp.MustCompile(`^\d{1,8}$`),
		Message: "Must be digits only",
	}
)

// dobBeforeRobing rejects a date of birth on or after the robing date.
func dobBeforeRobing(value string, values formwizard.Values) string {
	dob := dateutil.ToCanonical(value)
	robing := dateutil.ToCanonical(values["robing_date"])
	if dob == "" || robing == "" {
		return ""
	}
	if !dateutil.After(robing, dob) {
		return "Date of birth must be before the robing date"
	}
	return ""
}

var Form = &formwizard.Form{
	Steps: []formwizard.StepDef{
		{
			ID:    1,
			Title: "Robing Details",
			Fields: []formwizard.FieldDef{
				{Name: "silmatha_number", Label: "Silmatha Registration Number", Type: formwizard.TypeText, Rules: formwizard.Rules{Required: true, Pattern: registrationNoPattern}},
				{Name: "silmatha_name", Label: "Name of the Silmatha", Type: formwizard.TypeText, Rules: formwizard.Rules{Required: true}},
				{Name: "robing_date", Label: "Date of Robing", Type: formwizard.TypeDate, Rules: formwizard.Rules{Required: true, MaxDateToday: true}},
				{Name: "robing_place", Label: "Place of Robing", Type: formwizard.TypeText},
				{Name: "preceptor_name", Label: "Name of the Preceptor", Type: formwizard.TypeText, Rules: formwizard.Rules{Required: true}},
			},
		},
		{
			ID:    2,
			Title: "Personal Details",
			Fields: []formwizard.FieldDef{
				{Name: "lay_name", Label: "Lay Name", Type: formwizard.TypeText, Rules: formwizard.Rules{Required: true}},
				{Name: "date_of_birth", Label: "Date of Birth", Type: formwizard.TypeDate, Rules: formwizard.Rules{Required: true, MaxDateToday: true, Custom: dobBeforeRobing}},
				{Name: "nic_number", Label: "National Identity Card Number", Type: formwizard.TypeText, Rules: formwizard.Rules{Pattern: nicPattern}},
				{Name: "contact_number", Label: "Contact Number", Type: formwizard.TypeTel, Rules: formwizard.Rules{Pattern: phonePattern}},
			},
		},
		{
			ID:    3,
			Title: "Aramaya",
			Fields: []formwizard.FieldDef{
				{Name: "aramaya_name", Label: "Name of the Aramaya", Type: formwizard.TypeText, Rules: formwizard.Rules{Required: true}},
				{Name: "province_code", Label: "Province", Type: formwizard.TypeText, Rules: formwizard.Rules{Required: true}},
				{Name: "district_code", Label: "District", Type: formwizard.TypeText, Rules: formwizard.Rules{Required: true}},
				{Name: "address", Label: "Address of the Aramaya", Type: formwizard.TypeTextarea, Rows: 3, Rules: formwizard.Rules{Required: true}},
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
