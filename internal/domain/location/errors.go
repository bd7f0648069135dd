package location

import (
	"fmt"
	"strings"

	"github.com/wms/backend/internal/domain/shared"
)

// Error codes surfaced by address generation
const (
	CodeValidationFailed         = "VALIDATION_FAILED"
	CodeSpaceTooLarge            = "SPACE_TOO_LARGE"
	CodeDuplicateLabel           = "DUPLICATE_LABEL"
	CodeUnsupportedAxisKind      = "UNSUPPORTED_AXIS_KIND"
	CodeInvalidRange             = "INVALID_RANGE"
	CodeInvalidAxisConfiguration = "INVALID_AXIS_CONFIGURATION"
)

var (
	ErrValidationFailed         = shared.NewDomainError(CodeValidationFailed, "Coordinate ranges failed validation")
	ErrSpaceTooLarge            = shared.NewDomainError(CodeSpaceTooLarge, "Address space exceeds the configured maximum")
	ErrDuplicateLabel           = shared.NewDomainError(CodeDuplicateLabel, "One or more address labels already exist")
	ErrUnsupportedAxisKind      = shared.NewDomainError(CodeUnsupportedAxisKind, "Axis kind is not supported")
	ErrInvalidRange             = shared.NewDomainError(CodeInvalidRange, "Range end cannot precede range start")
	ErrInvalidAxisConfiguration = shared.NewDomainError(CodeInvalidAxisConfiguration, "Physical structure axis configuration is invalid")
)

// AxisViolation is one failed check on one axis of a generation request
type AxisViolation struct {
	AxisCode AxisCode `json:"axis_code"`
	Field    string   `json:"field"`
	Message  string   `json:"message"`
}

// RangeValidationError lists every range problem found in a request.
// It is returned before any value is enumerated.
type RangeValidationError struct {
	Violations []AxisViolation
}

func (e *RangeValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		if v.AxisCode == "" {
			parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Message))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s.%s: %s", v.AxisCode, v.Field, v.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap exposes the sentinel so errors.Is and the HTTP mapping work
func (e *RangeValidationError) Unwrap() error {
	return ErrValidationFailed
}

// SpaceTooLargeError reports a total count above the configured ceiling
type SpaceTooLargeError struct {
	Total    int64
	Max      int64
	Overflow bool
}

func (e *SpaceTooLargeError) Error() string {
	if e.Overflow {
		return fmt.Sprintf("address space overflows the countable range (max %d)", e.Max)
	}
	return fmt.Sprintf("address space of %d exceeds the maximum of %d", e.Total, e.Max)
}

func (e *SpaceTooLargeError) Unwrap() error {
	return ErrSpaceTooLarge
}

// DuplicateLabelError carries the labels that collided. The persistence
// layer returns it when a batch overlaps existing addresses.
type DuplicateLabelError struct {
	Labels []string
}

// maxReportedLabels bounds how many colliding labels an error message lists
const maxReportedLabels = 10

func (e *DuplicateLabelError) Error() string {
	shown := e.Labels
	if len(shown) > maxReportedLabels {
		shown = shown[:maxReportedLabels]
	}
	msg := fmt.Sprintf("%d duplicate address label(s): %s", len(e.Labels), strings.Join(shown, ", "))
	if len(e.Labels) > maxReportedLabels {
		msg += ", ..."
	}
	return msg
}

func (e *DuplicateLabelError) Unwrap() error {
	return ErrDuplicateLabel
}

// UnsupportedAxisKindError indicates stored axis data outside the closed kind set
type UnsupportedAxisKindError struct {
	AxisCode AxisCode
	Kind     AxisKind
}

func (e *UnsupportedAxisKindError) Error() string {
	return fmt.Sprintf("axis %q has unsupported kind %q", e.AxisCode, e.Kind)
}

func (e *UnsupportedAxisKindError) Unwrap() error {
	return ErrUnsupportedAxisKind
}
