package location

// AccessibilityClassifier decides whether a tuple is reachable by hand.
// Only the single axis that declares a subset takes part.
type AccessibilityClassifier struct {
	index int
	axis  BoundAxis
}

// NewAccessibilityClassifier locates the subset axis, if any
func NewAccessibilityClassifier(axes []BoundAxis) AccessibilityClassifier {
	for i, a := range axes {
		if a.HasSubset() {
			return AccessibilityClassifier{index: i, axis: a}
		}
	}
	return AccessibilityClassifier{index: -1}
}

// Classify returns true when the tuple's value on the subset axis is in the subset
func (c AccessibilityClassifier) Classify(tuple CoordinateTuple) bool {
	if c.index < 0 || c.index >= len(tuple) {
		return false
	}
	return c.axis.InSubset(tuple[c.index])
}
