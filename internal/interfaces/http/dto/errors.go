package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	ErrCodeValidation      = "ERR_VALIDATION"
	ErrCodeValidationRange = "ERR_VALIDATION_RANGE"
)

// Request error codes
const (
	ErrCodeUnauthorized    = "ERR_UNAUTHORIZED"
	ErrCodeBadRequest      = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput    = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON     = "ERR_INVALID_JSON"
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
	ErrCodeRateLimited     = "ERR_RATE_LIMITED"
)

// Resource error codes
const (
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Address generation error codes
const (
	ErrCodeSpaceTooLarge            = "ERR_SPACE_TOO_LARGE"
	ErrCodeDuplicateLabel           = "ERR_DUPLICATE_LABEL"
	ErrCodeInvalidAxisConfiguration = "ERR_INVALID_AXIS_CONFIGURATION"
	ErrCodeUnsupportedAxisKind      = "ERR_UNSUPPORTED_AXIS_KIND"
	ErrCodeInvalidState             = "ERR_INVALID_STATE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeValidationRange: http.StatusBadRequest,

	ErrCodeUnauthorized:    http.StatusUnauthorized,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeRateLimited:     http.StatusTooManyRequests,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeSpaceTooLarge:            http.StatusUnprocessableEntity,
	ErrCodeDuplicateLabel:           http.StatusConflict,
	ErrCodeInvalidAxisConfiguration: http.StatusUnprocessableEntity,
	ErrCodeInvalidState:             http.StatusUnprocessableEntity,
	// stored axis data outside the known kinds is an integrity fault
	ErrCodeUnsupportedAxisKind: http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API error codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":                  ErrCodeNotFound,
	"ALREADY_EXISTS":             ErrCodeAlreadyExists,
	"INVALID_INPUT":              ErrCodeInvalidInput,
	"INVALID_STATE":              ErrCodeInvalidState,
	"CONCURRENCY_CONFLICT":       ErrCodeConcurrencyConflict,
	"VALIDATION_FAILED":          ErrCodeValidation,
	"INVALID_RANGE":              ErrCodeValidationRange,
	"SPACE_TOO_LARGE":            ErrCodeSpaceTooLarge,
	"DUPLICATE_LABEL":            ErrCodeDuplicateLabel,
	"INVALID_AXIS_CONFIGURATION": ErrCodeInvalidAxisConfiguration,
	"UNSUPPORTED_AXIS_KIND":      ErrCodeUnsupportedAxisKind,
	"INVALID_DEPOSIT":            ErrCodeInvalidInput,
	"INVALID_GROUP":              ErrCodeInvalidInput,
	"INVALID_NAME":               ErrCodeInvalidInput,
	"INVALID_FUNCTION":           ErrCodeInvalidInput,
	"INVALID_STRUCTURE":          ErrCodeInvalidInput,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Codes already in the API format, or unknown, are returned as is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
