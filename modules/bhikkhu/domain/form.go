// Package domain declares the Bhikkhu registration form: the step table,
// validation rules, cascades and the submission payload mapping.
package domain

import (
	"regexp"

	"github.com/sasanalk/sasana-portal/modules/core/geo"
	"github.com/sasanalk/sasana-portal/pkg/dateutil"
	"github.com/sasanalk/sasana-portal/pkg/formwizard"
)

const Domain = "bhikkhu"

// Nikaya (monastic fraternity) codes with their display names.
var Nikayas = map[string]string{
	"SI": "Siyam Maha Nikaya",
	"AM": "Amarapura Maha Nikaya",
	"RA": "Ramanna Maha Nikaya",
}

var (
	phonePattern = &formwizard.Pattern{
		Matcher: regexp.MustCompile(`^0\d{9}$`),
		Message: "Must be 10 digits starting with 0",
	}
	nicPattern = &formwizard.Pattern{
		Matcher: regexp.MustCompile(`^(\d{9}[VvXx]|\d{12})$`),
		Message: "Must be a valid NIC number",
	}
	samaneraNoPattern = &formwizard.Pattern{
		Matcher: regexp.MustCompile(`^\d{1,8}$`),
		Message: "Must be digits only",
	}
)

// dobBeforeOrdination rejects a date of birth on or after the ordination
// date.
func dobBeforeOrdination(value string, values formwizard.Values) string {
	dob := dateutil.ToCanonical(value)
	ordination := dateutil.ToCanonical(values["ordination_date"])
	if dob == "" || ordination == "" {
		return ""
	}
	if !dateutil.After(ordination, dob) {
		return "Date of birth must be before the ordination date"
	}
	return ""
}

// Form is the declarative step table; it is immutable after load.
var Form = &formwizard.Form{
	Steps: []formwizard.StepDef{
		{
			ID:    1,
			Title: "Ordination Details",
			Fields: []formwizard.FieldDef{
				{Name: "samanera_number", Label: "Samanera Number", Type: formwizard.TypeText, Rules: formwizard.Rules{Required: true, Pattern: samaneraNoPattern}},
				{Name: "bhikkhu_name", Label: "Name of the Bhikkhu", Type: formwizard.TypeText, Rules: formwizard.Rules{Required: true}},
				{Name: "ordination_date", Label: "Date of Ordination", Type: formwizard.TypeDate, Rules: formwizard.Rules{Required: true, MaxDateToday: true}},
				{Name: "ordination_place", Label: "Place of Ordination", Type: formwizard.TypeText},
				{Name: "nikaya_code", Label: "Nikaya", Type: formwizard.TypeText, Rules: formwizard.Rules{Required: true}},
				{Name: "nikaya_name", Label: "Nikaya Name", Type: formwizard.TypeText},
				{Name: "parshawaya", Label: "Parshawaya (Chapter)", Type: formwizard.TypeText},
				{Name: "tutor_name", Label: "Name of the Tutor Bhikkhu", Type: formwizard.TypeText, Rules: formwizard.Rules{Required: true}},
			},
		},
		{
			ID:    2,
			Title: "Personal Details",
			Fields: []formwizard.FieldDef{
				{Name: "lay_name", Label: "Lay Name", Type: formwizard.TypeText, Rules: formwizard.Rules{Required: true}},
				{Name: "date_of_birth", Label: "Date of Birth", Type: formwizard.TypeDate, Rules: formwizard.Rules{Required: true, MaxDateToday: true, Custom: dobBeforeOrdination}},
				{Name: "birth_certificate_number", Label: "Birth Certificate Number", Type: formwizard.TypeText},
				{Name: "nic_number", Label: "National Identity Card Number", Type: formwizard.TypeText, Rules: formwizard.Rules{Pattern: nicPattern}},
				{Name: "contact_number", Label: "Contact Number", Type: formwizard.TypeTel, Rules: formwizard.Rules{Pattern: phonePattern}},
				{Name: "email", Label: "Email Address", Type: formwizard.TypeEmail},
				{Name: "father_name", Label: "Father's Full Name", Type: formwizard.TypeText},
			},
		},
		{
			ID:    3,
			Title: "Residence",
			Fields: []formwizard.FieldDef{
				{Name: "temple_name", Label: "Name of the Temple", Type: formwizard.TypeText, Rules: formwizard.Rules{Required: true}},
				{Name: "temple_reg_number", Label: "Temple Registration Number", Type: formwizard.TypeText},
				{Name: "province_code", Label: "Province", Type: formwizard.TypeText, Rules: formwizard.Rules{Required: true}},
				{Name: "district_code", Label: "District", Type: formwizard.TypeText, Rules: formwizard.Rules{Required: true}},
				{Name: "address", Label: "Address of the Temple", Type: formwizard.TypeTextarea, Rows: 3, Rules: formwizard.Rules{Required: true}},
				{Name: "declaration", Label: "I certify the above details are correct", Type: formwizard.TypeCheckbox, Rules: formwizard.Rules{Required: true}},
			},
		},
	},
	Defaults: formwizard.Values{
		"declaration": "false",
	},
	Derivations: []formwizard.Derivation{
		{
			// Selecting a nikaya code populates its display name.
			Source: "nikaya_code",
			Derive: func(values formwizard.Values) formwizard.Values {
				return formwizard.Values{"nikaya_name": Nikayas[values["nikaya_code"]]}
			},
		},
		{
			// Changing the province resets a district that no longer
			// belongs to it.
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
