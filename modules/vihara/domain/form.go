// Package domain declares the Vihara registration form and its submission
// payload mapping.
package domain

import (
	"regexp"

	"github.com/sasanalk/sasana-portal/modules/core/geo"
	"github.com/sasanalk/sasana-portal/pkg/formwizard"
)

const Domain = "vihara"

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
	regNoPattern = &formwizard.Pattern{
		Matcher: regexp.MustCompile(`^\d{1,8}$`),
		Message: "Must be digits only",
	}
	extentPattern = &formwizard.Pattern{
		Matcher: regexp.MustCompile(`^\d+(\.\d+)?$`),
		Message: "Must be a number",
	}
)

var Form = &formwizard.Form{
	Steps: []formwizard.StepDef{
		{
			ID:    1,
			Title: "Temple Information",
			Fields: []formwizard.FieldDef{
				{Name: "temple_name", Label: "Name of the Temple", Type: formwizard.TypeText, Rules: formwizard.Rules{Required: true}},
				{Name: "temple_reg_number", Label: "Registration Number", Type: formwizard.TypeText, Rules: formwizard.Rules{Pattern: regNoPattern}},
				{Name: "nikaya_code", Label: "Nikaya", Type: formwizard.TypeText, Rules: formwizard.Rules{Required: true}},
				{Name: "nikaya_name", Label: "Nikaya Name", Type: formwizard.TypeText},
				{Name: "established_date", Label: "Date of Establishment", Type: formwizard.TypeDate, Rules: formwizard.Rules{MaxDateToday: true}},
				{Name: "parshawaya", Label: "Parshawaya (Chapter)", Type: formwizard.TypeText},
			},
		},
		{
			ID:    2,
			Title: "Viharadhipathi Details",
			Fields: []formwizard.FieldDef{
				{Name: "viharadhipathi_name", Label: "Name of the Viharadhipathi", Type: formwizard.TypeText, Rules: formwizard.Rules{Required: true}},
				{Name: "viharadhipathi_reg_number", Label: "Viharadhipathi Registration Number", Type: formwizard.TypeText, Rules: formwizard.Rules{Pattern: regNoPattern}},
				{Name: "contact_number", Label: "Contact Number", Type: formwizard.TypeTel, Rules: formwizard.Rules{Pattern: phonePattern}},
				{Name: "email", Label: "Email Address", Type: formwizard.TypeEmail},
			},
		},
		{
			ID:    3,
			Title: "Land and Buildings",
			Fields: []formwizard.FieldDef{
				{Name: "province_code", Label: "Province", Type: formwizard.TypeText, Rules: formwizard.Rules{Required: true}},
				{Name: "district_code", Label: "District", Type: formwizard.TypeText, Rules: formwizard.Rules{Required: true}},
				{Name: "address", Label: "Address of the Temple", Type: formwizard.TypeTextarea, Rows: 3, Rules: formwizard.Rules{Required: true}},
				{Name: "land_extent", Label: "Extent of Land (acres)", Type: formwizard.TypeText, Rules: formwizard.Rules{Pattern: extentPattern}},
				{Name: "land_ownership", Label: "Ownership of the Land", Type: formwizard.TypeText},
				{Name: "declaration", Label: "I certify the above details are correct", Type: formwizard.TypeCheckbox, Rules: formwizard.Rules{Required: true}},
			},
		},
	},
	Defaults: formwizard.Values{
		"declaration": "false",
	},
	Derivations: []formwizard.Derivation{
		{
			Source: "nikaya_code",
			Derive: func(values formwizard.Values) formwizard.Values {
				return formwizard.Values{"nikaya_name": Nikayas[values["nikaya_code"]]}
			},
		},
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
