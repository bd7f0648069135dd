package location

// templateAxes are the axes an address group spans, in composition order
var templateAxes = []AxisCode{AxisStreet, AxisColumn, AxisLevel, AxisPallet}

// TemplateAdapter turns a stored address group into the generator's
// axis and range inputs.
type TemplateAdapter struct {
	enumerator ValueEnumerator
}

// NewTemplateAdapter creates an adapter using the default enumerator
func NewTemplateAdapter() TemplateAdapter {
	return TemplateAdapter{enumerator: NewKindEnumerator()}
}

// Bind selects the street, column, level and pallet axes of the structure and
// builds one range per axis from the group's bounds. Only the street is
// prefixed in full labels. A hand-reachable group marks every level value
// reachable, which makes the flag uniform across the whole group.
func (t TemplateAdapter) Bind(group *AddressGroup, structure *PhysicalStructure) ([]AxisDefinition, []RangeSpec, error) {
	var violations []AxisViolation
	axes := make([]AxisDefinition, 0, len(templateAxes))
	var level AxisDefinition
	for _, code := range templateAxes {
		if !structure.HasActiveAxis(code) {
			violations = append(violations, AxisViolation{
				AxisCode: code,
				Field:    "axis_code",
				Message:  "address groups require this axis to be active on the structure",
			})
			continue
		}
		def, _ := structure.Axis(code)
		if code == AxisLevel {
			level = def
		}
		axes = append(axes, def)
	}
	if len(violations) > 0 {
		return nil, nil, &RangeValidationError{Violations: violations}
	}

	b := group.Bounds
	ranges := []RangeSpec{
		{AxisCode: AxisStreet, Start: b.StreetFrom, End: b.StreetTo, UsePrefix: true},
		{AxisCode: AxisColumn, Start: b.ColumnFrom, End: b.ColumnTo},
		{AxisCode: AxisLevel, Start: b.LevelFrom, End: b.LevelTo},
		{AxisCode: AxisPallet, Start: b.PalletFrom, End: b.PalletTo},
	}
	if group.HandReachable {
		ranges[2].HandReachableSubset = t.levelSubset(level, b.LevelFrom, b.LevelTo)
	}
	return axes, ranges, nil
}

// levelSubset lists every value of the level range. Unparseable bounds leave
// the subset empty and Bind reports the bad range itself.
func (t TemplateAdapter) levelSubset(level AxisDefinition, from, to string) []string {
	start, err := ParseValue(level.Kind, from)
	if err != nil {
		return []string{}
	}
	end, err := ParseValue(level.Kind, to)
	if err != nil {
		return []string{}
	}
	values, err := t.enumerator.Enumerate(BoundAxis{Axis: level, Start: start, End: end})
	if err != nil {
		return []string{}
	}
	subset := make([]string, len(values))
	for i, v := range values {
		subset[i] = v.String()
	}
	return subset
}
