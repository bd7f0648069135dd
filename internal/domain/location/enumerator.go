package location

import "fmt"

// ValueEnumerator turns a bound axis into its ordered value sequence.
// Count and At let the composer index into an axis without materializing it.
type ValueEnumerator interface {
	Count(axis BoundAxis) (int, error)
	At(axis BoundAxis, i int) (Value, error)
	Enumerate(axis BoundAxis) ([]Value, error)
}

// kindStrategy enumerates the values of one axis kind
type kindStrategy interface {
	span(start, end Value) int
	at(start Value, i int) Value
}

type numericStrategy struct{}

func (numericStrategy) span(start, end Value) int {
	return end.number - start.number + 1
}

func (numericStrategy) at(start Value, i int) Value {
	return NumericValue(start.number + i)
}

type alphabeticStrategy struct{}

func (alphabeticStrategy) span(start, end Value) int {
	return int(end.letter-start.letter) + 1
}

func (alphabeticStrategy) at(start Value, i int) Value {
	return LetterValue(start.letter + rune(i))
}

var kindStrategies = map[AxisKind]kindStrategy{
	AxisKindNumeric:    numericStrategy{},
	AxisKindAlphabetic: alphabeticStrategy{},
}

func strategyFor(axis BoundAxis) (kindStrategy, error) {
	s, ok := kindStrategies[axis.Axis.Kind]
	if !ok {
		return nil, &UnsupportedAxisKindError{AxisCode: axis.Axis.Code, Kind: axis.Axis.Kind}
	}
	return s, nil
}

// KindEnumerator dispatches on the axis kind tag
type KindEnumerator struct{}

// NewKindEnumerator returns the default enumerator
func NewKindEnumerator() KindEnumerator {
	return KindEnumerator{}
}

// Count returns the number of values in the axis range
func (KindEnumerator) Count(axis BoundAxis) (int, error) {
	s, err := strategyFor(axis)
	if err != nil {
		return 0, err
	}
	n := s.span(axis.Start, axis.End)
	if n < 1 {
		return 0, fmt.Errorf("axis %q: %w", axis.Axis.Code, ErrInvalidRange)
	}
	return n, nil
}

// At returns the i-th value of the axis range
func (e KindEnumerator) At(axis BoundAxis, i int) (Value, error) {
	n, err := e.Count(axis)
	if err != nil {
		return Value{}, err
	}
	if i < 0 || i >= n {
		return Value{}, fmt.Errorf("axis %q: index %d out of range [0,%d)", axis.Axis.Code, i, n)
	}
	s, _ := strategyFor(axis)
	return s.at(axis.Start, i), nil
}

// Enumerate materializes every value of the axis range in ascending order
func (e KindEnumerator) Enumerate(axis BoundAxis) ([]Value, error) {
	n, err := e.Count(axis)
	if err != nil {
		return nil, err
	}
	s, _ := strategyFor(axis)
	values := make([]Value, n)
	for i := range values {
		values[i] = s.at(axis.Start, i)
	}
	return values, nil
}
