package location

import "github.com/google/uuid"

// PhysicalStructure is the read model of a warehouse structure type
// (rack, shelf, floor area). Generation only reads its axis set.
type PhysicalStructure struct {
	ID       uuid.UUID
	TenantID uuid.UUID
	Slug     string
	Name     string
	Axes     []AxisDefinition
}

// ActiveAxes returns the active axes in canonical order
func (s *PhysicalStructure) ActiveAxes() ([]AxisDefinition, error) {
	return ResolveAxes(s.Axes)
}

// Axis returns the structure's definition of the given axis
func (s *PhysicalStructure) Axis(code AxisCode) (AxisDefinition, bool) {
	for _, a := range s.Axes {
		if a.Code == code {
			return a, true
		}
	}
	return AxisDefinition{}, false
}

// HasActiveAxis reports whether the given axis code is active on the structure
func (s *PhysicalStructure) HasActiveAxis(code AxisCode) bool {
	a, ok := s.Axis(code)
	return ok && a.Active
}
