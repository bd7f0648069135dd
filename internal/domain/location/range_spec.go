package location

import "fmt"

// RangeSpec is the user-supplied value range for one axis
type RangeSpec struct {
	AxisCode  AxisCode `json:"axis_code"`
	Start     string   `json:"start"`
	End       string   `json:"end"`
	UsePrefix bool     `json:"use_prefix"`
	// HandReachableSubset is nil when absent. A present but empty subset
	// marks every tuple as not hand-reachable.
	HandReachableSubset []string `json:"hand_reachable_subset,omitempty"`
}

// BoundAxis pairs an active axis with its parsed range
type BoundAxis struct {
	Axis      AxisDefinition
	Start     Value
	End       Value
	UsePrefix bool
	reachable map[Value]struct{}
}

// HasSubset reports whether this axis carries a hand-reachable subset
func (b BoundAxis) HasSubset() bool {
	return b.reachable != nil
}

// InSubset reports whether the value belongs to the axis' hand-reachable subset
func (b BoundAxis) InSubset(v Value) bool {
	_, ok := b.reachable[v]
	return ok
}

// Bind validates ranges against the active axes and pairs them up in
// canonical order. Every problem is collected so the caller sees the full
// list at once.
func Bind(active []AxisDefinition, ranges []RangeSpec) ([]BoundAxis, error) {
	var violations []AxisViolation
	addViolation := func(code AxisCode, field, format string, args ...any) {
		violations = append(violations, AxisViolation{
			AxisCode: code,
			Field:    field,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	if len(active) == 0 {
		addViolation("", "axes", "physical structure has no active axes")
		return nil, &RangeValidationError{Violations: violations}
	}

	axisByCode := make(map[AxisCode]AxisDefinition, len(active))
	for _, a := range active {
		axisByCode[a.Code] = a
	}

	byCode := make(map[AxisCode]RangeSpec, len(ranges))
	subsetAxes := 0
	for _, r := range ranges {
		if _, ok := axisByCode[r.AxisCode]; !ok {
			addViolation(r.AxisCode, "axis_code", "axis is not active on this structure")
			continue
		}
		if _, dup := byCode[r.AxisCode]; dup {
			addViolation(r.AxisCode, "axis_code", "range given more than once")
			continue
		}
		byCode[r.AxisCode] = r
		if r.HandReachableSubset != nil {
			subsetAxes++
		}
	}
	if subsetAxes > 1 {
		addViolation("", "hand_reachable_subset", "at most one axis may declare a hand-reachable subset")
	}

	bound := make([]BoundAxis, 0, len(active))
	for _, axis := range active {
		r, ok := byCode[axis.Code]
		if !ok {
			addViolation(axis.Code, "range", "active axis has no range")
			continue
		}

		start, startErr := ParseValue(axis.Kind, r.Start)
		if startErr != nil {
			addViolation(axis.Code, "start", "%s", startErr.Error())
		}
		end, endErr := ParseValue(axis.Kind, r.End)
		if endErr != nil {
			addViolation(axis.Code, "end", "%s", endErr.Error())
		}
		if startErr == nil && endErr == nil && end.ordinal() < start.ordinal() {
			addViolation(axis.Code, "end", "end %s precedes start %s", end, start)
		}

		var reachable map[Value]struct{}
		if r.HandReachableSubset != nil {
			reachable = make(map[Value]struct{}, len(r.HandReachableSubset))
			for _, raw := range r.HandReachableSubset {
				v, err := ParseValue(axis.Kind, raw)
				if err != nil {
					addViolation(axis.Code, "hand_reachable_subset", "%s", err.Error())
					continue
				}
				reachable[v] = struct{}{}
			}
		}

		bound = append(bound, BoundAxis{
			Axis:      axis,
			Start:     start,
			End:       end,
			UsePrefix: r.UsePrefix,
			reachable: reachable,
		})
	}

	if len(violations) > 0 {
		return nil, &RangeValidationError{Violations: violations}
	}
	return bound, nil
}
