package constants

import "github.com/go-playground/validator/v10"

type ContextKey string

const (
	ParamsKey    ContextKey = "params"
	LoggerKey    ContextKey = "logger"
	SessionKey   ContextKey = "session"
	RequestIDKey ContextKey = "requestID"
)

// Validate is the shared validator instance used by API request DTOs.
var Validate = validator.New()
