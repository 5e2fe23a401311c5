package registry

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Action selects the operation on a domain's command endpoint. Every domain
// is manipulated through a single endpoint accepting {action, payload}.
type Action string

const (
	ActionCreate  Action = "CREATE"
	ActionReadOne Action = "READ_ONE"
	ActionReadAll Action = "READ_ALL"
	ActionUpdate  Action = "UPDATE"
	ActionDelete  Action = "DELETE"

	// Staged actions used by the upasampada workflow.
	ActionSaveStageOne  Action = "SAVE_STAGE_ONE"
	ActionSaveStageTwo  Action = "SAVE_STAGE_TWO"
	ActionMarkS1Printed Action = "MARK_S1_PRINTED"
)

type Envelope struct {
	Action  Action         `json:"action"`
	Payload map[string]any `json:"payload,omitempty"`
}

// FallbackMessage is shown when the backend supplies no human-readable
// detail for a failure.
const FallbackMessage = "Something went wrong. Please try again."

// APIError is a non-2xx response from the registry backend.
type APIError struct {
	Status int
	Code   string
	detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("registry: status %d: %s", e.Status, e.Detail())
}

// Detail returns the server-supplied human-readable message, or the
// generic fallback when the server gave none.
func (e *APIError) Detail() string {
	if strings.TrimSpace(e.detail) != "" {
		return e.detail
	}
	return FallbackMessage
}

// parseAPIError extracts detail/message from an error body. Both keys are
// observed in the wild; detail wins.
func parseAPIError(status int, body []byte) *APIError {
	var envelope struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	apiErr := &APIError{Status: status}
	if err := json.Unmarshal(body, &envelope); err == nil {
		apiErr.Code = envelope.Code
		if strings.TrimSpace(envelope.Detail) != "" {
			apiErr.detail = envelope.Detail
		} else {
			apiErr.detail = envelope.Message
		}
	}
	return apiErr
}
