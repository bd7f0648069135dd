package location

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Value is one discrete coordinate on an axis. It is comparable and
// can be used as a map key.
type Value struct {
	kind   AxisKind
	number int
	letter rune
}

// NumericValue builds a value for a numeric axis
func NumericValue(n int) Value {
	return Value{kind: AxisKindNumeric, number: n}
}

// LetterValue builds a value for an alphabetic axis, upper-casing the letter
func LetterValue(r rune) Value {
	return Value{kind: AxisKindAlphabetic, letter: unicode.ToUpper(r)}
}

// Kind returns the axis kind the value belongs to
func (v Value) Kind() AxisKind {
	return v.kind
}

// Number returns the integer of a numeric value
func (v Value) Number() int {
	return v.number
}

// Letter returns the rune of an alphabetic value
func (v Value) Letter() rune {
	return v.letter
}

// String renders the value as it appears in labels: plain decimal for
// numbers, an upper-case letter for alphabetic values.
func (v Value) String() string {
	switch v.kind {
	case AxisKindNumeric:
		return strconv.Itoa(v.number)
	case AxisKindAlphabetic:
		return string(v.letter)
	default:
		return ""
	}
}

// ordinal is the position of the value on its axis line
func (v Value) ordinal() int {
	if v.kind == AxisKindAlphabetic {
		return int(v.letter)
	}
	return v.number
}

// ParseValue parses raw input according to the axis kind
func ParseValue(kind AxisKind, raw string) (Value, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Value{}, fmt.Errorf("value is required")
	}

	switch kind {
	case AxisKindNumeric:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Value{}, fmt.Errorf("%q is not an integer", raw)
		}
		if n < 0 {
			return Value{}, fmt.Errorf("value cannot be negative")
		}
		return NumericValue(n), nil
	case AxisKindAlphabetic:
		if utf8.RuneCountInString(raw) != 1 {
			return Value{}, fmt.Errorf("%q must be a single letter", raw)
		}
		// Ranges walk code points, so only A-Z keeps every span letter-only
		r, _ := utf8.DecodeRuneInString(raw)
		if r = unicode.ToUpper(r); r < 'A' || r > 'Z' {
			return Value{}, fmt.Errorf("%q is not a letter from A to Z", raw)
		}
		return LetterValue(r), nil
	default:
		return Value{}, fmt.Errorf("unsupported axis kind %q", kind)
	}
}
