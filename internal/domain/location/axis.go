package location

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// AxisKind determines how an axis' values are parsed and enumerated
type AxisKind string

const (
	AxisKindNumeric    AxisKind = "numeric"
	AxisKindAlphabetic AxisKind = "alphabetic"
)

// IsValid reports whether the kind belongs to the closed set of supported kinds
func (k AxisKind) IsValid() bool {
	return k == AxisKindNumeric || k == AxisKindAlphabetic
}

// AxisCode is the short stable identifier of a coordinate axis
type AxisCode string

// Axis codes in canonical composition order
const (
	AxisBlock     AxisCode = "B"
	AxisSector    AxisCode = "S"
	AxisStreet    AxisCode = "R"
	AxisQuadrant  AxisCode = "Q"
	AxisColumn    AxisCode = "C"
	AxisCorridor  AxisCode = "K"
	AxisLevel     AxisCode = "N"
	AxisApartment AxisCode = "A"
	AxisShelf     AxisCode = "E"
	AxisDrawer    AxisCode = "G"
	AxisPallet    AxisCode = "P"
)

// canonicalAxes is the ordering table shared by every physical structure.
// New axis codes are added here; their position decides composition order.
var canonicalAxes = []AxisDefinition{
	{Code: AxisBlock, Kind: AxisKindAlphabetic, DefaultName: "Block", DefaultAbbrev: "BL"},
	{Code: AxisSector, Kind: AxisKindAlphabetic, DefaultName: "Sector", DefaultAbbrev: "SE"},
	{Code: AxisStreet, Kind: AxisKindAlphabetic, DefaultName: "Street", DefaultAbbrev: "ST"},
	{Code: AxisQuadrant, Kind: AxisKindNumeric, DefaultName: "Quadrant", DefaultAbbrev: "QD"},
	{Code: AxisColumn, Kind: AxisKindNumeric, DefaultName: "Column", DefaultAbbrev: "CL"},
	{Code: AxisCorridor, Kind: AxisKindNumeric, DefaultName: "Corridor", DefaultAbbrev: "CR"},
	{Code: AxisLevel, Kind: AxisKindNumeric, DefaultName: "Level", DefaultAbbrev: "LV"},
	{Code: AxisApartment, Kind: AxisKindNumeric, DefaultName: "Apartment", DefaultAbbrev: "AP"},
	{Code: AxisShelf, Kind: AxisKindNumeric, DefaultName: "Shelf", DefaultAbbrev: "SH"},
	{Code: AxisDrawer, Kind: AxisKindNumeric, DefaultName: "Drawer", DefaultAbbrev: "DR"},
	{Code: AxisPallet, Kind: AxisKindNumeric, DefaultName: "Pallet", DefaultAbbrev: "PL"},
}

var canonicalPosition = func() map[AxisCode]int {
	m := make(map[AxisCode]int, len(canonicalAxes))
	for i, a := range canonicalAxes {
		m[a.Code] = i
	}
	return m
}()

// CanonicalPosition returns the composition rank of an axis code
func CanonicalPosition(code AxisCode) (int, bool) {
	pos, ok := canonicalPosition[code]
	return pos, ok
}

// DefaultAxis returns the built-in definition for a known axis code
func DefaultAxis(code AxisCode) (AxisDefinition, bool) {
	pos, ok := canonicalPosition[code]
	if !ok {
		return AxisDefinition{}, false
	}
	return canonicalAxes[pos], true
}

// AxisDefinition describes one coordinate dimension of a physical structure
type AxisDefinition struct {
	Code          AxisCode `json:"code"`
	Kind          AxisKind `json:"kind"`
	DefaultName   string   `json:"default_name"`
	DefaultAbbrev string   `json:"default_abbrev"`
	CustomName    *string  `json:"custom_name,omitempty"`
	CustomAbbrev  *string  `json:"custom_abbrev,omitempty"`
	Active        bool     `json:"active"`
}

// EffectiveName returns the custom name when set, the default otherwise
func (a AxisDefinition) EffectiveName() string {
	if a.CustomName != nil && *a.CustomName != "" {
		return *a.CustomName
	}
	return a.DefaultName
}

// EffectiveAbbrev returns the custom abbreviation when set, the default otherwise
func (a AxisDefinition) EffectiveAbbrev() string {
	if a.CustomAbbrev != nil && *a.CustomAbbrev != "" {
		return *a.CustomAbbrev
	}
	return a.DefaultAbbrev
}

// ResolveAxes checks a structure's axis set and returns its active axes in
// canonical order. Failures here are configuration problems in stored data,
// not user input errors.
func ResolveAxes(defs []AxisDefinition) ([]AxisDefinition, error) {
	seen := make(map[AxisCode]struct{}, len(defs))
	active := make([]AxisDefinition, 0, len(defs))

	for _, def := range defs {
		if _, ok := canonicalPosition[def.Code]; !ok {
			return nil, newAxisConfigurationError(def.Code, "unknown axis code")
		}
		if _, dup := seen[def.Code]; dup {
			return nil, newAxisConfigurationError(def.Code, "axis code defined more than once")
		}
		seen[def.Code] = struct{}{}

		if !def.Active {
			continue
		}
		if !def.Kind.IsValid() {
			return nil, &UnsupportedAxisKindError{AxisCode: def.Code, Kind: def.Kind}
		}
		if err := validateAbbrev(def.EffectiveAbbrev()); err != nil {
			return nil, newAxisConfigurationError(def.Code, err.Error())
		}
		active = append(active, def)
	}

	sort.SliceStable(active, func(i, j int) bool {
		return canonicalPosition[active[i].Code] < canonicalPosition[active[j].Code]
	})
	return active, nil
}

// validateAbbrev keeps abbreviations free of the characters used as label separators
func validateAbbrev(abbrev string) error {
	if abbrev == "" {
		return fmt.Errorf("abbreviation cannot be empty")
	}
	if strings.Contains(abbrev, ";") {
		return fmt.Errorf("abbreviation cannot contain ';'")
	}
	for _, r := range abbrev {
		if unicode.IsSpace(r) {
			return fmt.Errorf("abbreviation cannot contain whitespace")
		}
	}
	return nil
}

func newAxisConfigurationError(code AxisCode, reason string) error {
	return fmt.Errorf("axis %q: %s: %w", code, reason, ErrInvalidAxisConfiguration)
}
