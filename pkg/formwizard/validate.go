package formwizard

import (
	"strings"

	"github.com/sasanalk/sasana-portal/pkg/dateutil"
)

const (
	MsgRequired    = "Required"
	MsgFutureDate  = "Date cannot be in the future"
	MsgInvalidDate = "Invalid date"
)

// Validate checks one field against the current snapshot. It is pure: no
// side effects, and identical inputs always yield the identical message.
// An empty result means the field is valid.
//
// Check order: required, pattern, date normalization, future-date bound,
// custom rule last.
func Validate(field FieldDef, raw string, values Values, today string) string {
	trimmed := strings.TrimSpace(raw)

	if field.Rules.Required {
		if field.Type == TypeCheckbox {
			if raw != "true" {
				return MsgRequired
			}
		} else if trimmed == "" {
			return MsgRequired
		}
	}

	if field.Rules.Pattern != nil && trimmed != "" && !field.Rules.Pattern.Matcher.MatchString(trimmed) {
		return field.Rules.Pattern.Message
	}

	if field.Type == TypeDate && trimmed != "" {
		canonical := dateutil.ToCanonical(trimmed)
		if canonical == "" {
			if field.Rules.Pattern != nil {
				return field.Rules.Pattern.Message
			}
			return MsgInvalidDate
		}
		if field.Rules.MaxDateToday && dateutil.After(canonical, today) {
			return MsgFutureDate
		}
	}

	if field.Rules.Custom != nil {
		if msg := field.Rules.Custom(raw, values); msg != "" {
			return msg
		}
	}

	return ""
}
