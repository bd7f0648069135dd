package location

// Coordinate is one axis value of a generated address
type Coordinate struct {
	AxisCode AxisCode `json:"axis_code"`
	AxisName string   `json:"axis_name"`
	Value    string   `json:"value"`
}

// GeneratedAddress is a formatted and classified tuple. It is a value, not
// an entity: nothing is persisted until the batch is committed.
type GeneratedAddress struct {
	Sequence      int64        `json:"sequence"`
	Coordinates   []Coordinate `json:"coordinates"`
	FullLabel     string       `json:"full_label"`
	ShortLabel    string       `json:"short_label"`
	HandReachable bool         `json:"hand_reachable"`
}

func coordinatesOf(tuple CoordinateTuple, axes []BoundAxis) []Coordinate {
	coords := make([]Coordinate, len(axes))
	for i, axis := range axes {
		coords[i] = Coordinate{
			AxisCode: axis.Axis.Code,
			AxisName: axis.Axis.EffectiveName(),
			Value:    tuple[i].String(),
		}
	}
	return coords
}
