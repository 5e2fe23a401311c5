// Package domain declares the Upasampada (higher ordination) form, the
// staged record lifecycle and the payload mappings for both stages.
package domain

import (
	"regexp"

	"github.com/sasanalk/sasana-portal/pkg/dateutil"
	"github.com/sasanalk/sasana-portal/pkg/formwizard"
)

const Domain = "upasampada"

// Record lifecycle codes. The backend owns the transitions; the portal
// only displays them and gates stage-two entry on them.
const (
	StatusS1Pending  = "S1_PENDING"
	StatusS1Approved = "S1_APPROVED"
	StatusS1Printed  = "S1_PRINTED"
	StatusS2Pending  = "S2_PENDING"
	StatusCompleted  = "COMPLETED"
)

// StatusLabel maps a lifecycle code to its display text. Unknown codes
// fall through unchanged.
func StatusLabel(code string) string {
	switch code {
	case StatusS1Pending:
		return "Stage One Pending"
	case StatusS1Approved:
		return "Stage One Approved"
	case StatusS1Printed:
		return "Stage One Printed"
	case StatusS2Pending:
		return "Stage Two Pending"
	case StatusCompleted:
		return "Completed"
	}
	return code
}

// StageTwoReady reports whether a record may receive stage-two details.
func StageTwoReady(status string) bool {
	return status == StatusS1Printed || status == StatusS2Pending
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

// ordinationBeforeUpasampada rejects an upasampada date on or before the
// samanera ordination date.
func ordinationBeforeUpasampada(value string, values formwizard.Values) string {
	upasampada := dateutil.ToCanonical(value)
	ordination := dateutil.ToCanonical(values["ordination_date"])
	if upasampada == "" || ordination == "" {
		return ""
	}
	if !dateutil.After(upasampada, ordination) {
		return "Upasampada date must be after the ordination date"
	}
	return ""
}

// StageOneForm covers the candidate's application; its submission drives
// the stage-one save action.
var StageOneForm = &formwizard.Form{
	Steps: []formwizard.StepDef{
		{
			ID:    1,
			Title: "Candidate Details",
			Fields: []formwizard.FieldDef{
				{Name: "samanera_number", Label: "Samanera Registration Number", Type: formwizard.TypeText, Rules: formwizard.Rules{Required: true, Pattern: regNoPattern}},
				{Name: "candidate_name", Label: "Name of the Candidate Bhikkhu", Type: formwizard.TypeText, Rules: formwizard.Rules{Required: true}},
				{Name: "ordination_date", Label: "Date of Samanera Ordination", Type: formwizard.TypeDate, Rules: formwizard.Rules{Required: true, MaxDateToday: true}},
				{Name: "contact_number", Label: "Contact Number", Type: formwizard.TypeTel, Rules: formwizard.Rules{Pattern: phonePattern}},
			},
		},
		{
			ID:    2,
			Title: "Sponsorship",
			Fields: []formwizard.FieldDef{
				{Name: "tutor_name", Label: "Name of the Tutor Bhikkhu", Type: formwizard.TypeText, Rules: formwizard.Rules{Required: true}},
				{Name: "temple_name", Label: "Name of the Temple", Type: formwizard.TypeText, Rules: formwizard.Rules{Required: true}},
				{Name: "temple_reg_number", Label: "Temple Registration Number", Type: formwizard.TypeText, Rules: formwizard.Rules{Pattern: regNoPattern}},
				{Name: "declaration", Label: "I certify the above details are correct", Type: formwizard.TypeCheckbox, Rules: formwizard.Rules{Required: true}},
			},
		},
	},
	Defaults: formwizard.Values{
		"declaration": "false",
	},
}

// StageTwoForm records the ceremony itself; it is only reachable for
// records whose stage-one certificate has been printed.
var StageTwoForm = &formwizard.Form{
	Steps: []formwizard.StepDef{
		{
			ID:    1,
			Title: "Ceremony Details",
			Fields: []formwizard.FieldDef{
				{Name: "upasampada_date", Label: "Date of Upasampada", Type: formwizard.TypeDate, Rules: formwizard.Rules{Required: true, MaxDateToday: true, Custom: ordinationBeforeUpasampada}},
				{Name: "sima_name", Label: "Name of the Sima", Type: formwizard.TypeText, Rules: formwizard.Rules{Required: true}},
				{Name: "upadhyaya_name", Label: "Name of the Upadhyaya", Type: formwizard.TypeText, Rules: formwizard.Rules{Required: true}},
				{Name: "karmacharya_name", Label: "Name of the Karmacharya", Type: formwizard.TypeText},
			},
		},
	},
}
