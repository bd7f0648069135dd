package location

import (
	"fmt"
	"strings"
)

// LabelBoundary separates axis fragments in a full label. Abbreviations may
// not contain ';' so the boundary can never appear inside a fragment.
const LabelBoundary = "; "

// Labels holds the two renderings of one address
type Labels struct {
	Full  string
	Short string
}

// LabelFormatter renders coordinate tuples into labels
type LabelFormatter struct{}

// NewLabelFormatter creates a label formatter
func NewLabelFormatter() LabelFormatter {
	return LabelFormatter{}
}

// Format renders the full label ("ST A; 1") and the short label ("STACL1")
func (LabelFormatter) Format(tuple CoordinateTuple, axes []BoundAxis) (Labels, error) {
	if len(tuple) != len(axes) {
		return Labels{}, fmt.Errorf("tuple has %d values for %d axes", len(tuple), len(axes))
	}

	var full, short strings.Builder
	for i, axis := range axes {
		abbrev := axis.Axis.EffectiveAbbrev()
		value := tuple[i].String()

		if i > 0 {
			full.WriteString(LabelBoundary)
		}
		if axis.UsePrefix {
			full.WriteString(abbrev)
			full.WriteByte(' ')
		}
		full.WriteString(value)

		short.WriteString(abbrev)
		short.WriteString(value)
	}
	return Labels{Full: full.String(), Short: short.String()}, nil
}
