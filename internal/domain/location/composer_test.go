package location

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindAxes(t *testing.T, ranges ...RangeSpec) []BoundAxis {
	t.Helper()
	defs := make([]AxisDefinition, 0, len(ranges))
	for _, r := range ranges {
		defs = append(defs, activeAxis(t, r.AxisCode))
	}
	active, err := ResolveAxes(defs)
	require.NoError(t, err)
	bound, err := Bind(active, ranges)
	require.NoError(t, err)
	return bound
}

func tupleStrings(tuples []CoordinateTuple) [][]string {
	out := make([][]string, len(tuples))
	for i, tuple := range tuples {
		row := make([]string, len(tuple))
		for j, v := range tuple {
			row[j] = v.String()
		}
		out[i] = row
	}
	return out
}

func TestKindEnumerator(t *testing.T) {
	e := NewKindEnumerator()

	t.Run("numeric", func(t *testing.T) {
		bound := bindAxes(t, RangeSpec{AxisCode: AxisLevel, Start: "0", End: "3"})
		values, err := e.Enumerate(bound[0])
		require.NoError(t, err)
		assert.Equal(t, []Value{NumericValue(0), NumericValue(1), NumericValue(2), NumericValue(3)}, values)
	})

	t.Run("alphabetic", func(t *testing.T) {
		bound := bindAxes(t, RangeSpec{AxisCode: AxisStreet, Start: "x", End: "z"})
		values, err := e.Enumerate(bound[0])
		require.NoError(t, err)
		assert.Equal(t, []Value{LetterValue('X'), LetterValue('Y'), LetterValue('Z')}, values)
	})

	t.Run("inverted range", func(t *testing.T) {
		axis := BoundAxis{Axis: activeAxis(t, AxisLevel), Start: NumericValue(4), End: NumericValue(2)}
		_, err := e.Count(axis)
		assert.True(t, errors.Is(err, ErrInvalidRange))
	})

	t.Run("unsupported kind", func(t *testing.T) {
		def := activeAxis(t, AxisLevel)
		def.Kind = "roman"
		_, err := e.Enumerate(BoundAxis{Axis: def})
		assert.True(t, errors.Is(err, ErrUnsupportedAxisKind))
	})

	t.Run("index out of range", func(t *testing.T) {
		bound := bindAxes(t, RangeSpec{AxisCode: AxisLevel, Start: "1", End: "2"})
		_, err := e.At(bound[0], 2)
		assert.Error(t, err)
	})
}

func TestComposer(t *testing.T) {
	t.Run("total is the product of counts", func(t *testing.T) {
		c, err := NewComposer(bindAxes(t,
			RangeSpec{AxisCode: AxisStreet, Start: "A", End: "D"},
			RangeSpec{AxisCode: AxisColumn, Start: "1", End: "5"},
			RangeSpec{AxisCode: AxisLevel, Start: "0", End: "2"},
		), nil)
		require.NoError(t, err)
		assert.Equal(t, int64(60), c.Total())
	})

	t.Run("last axis varies fastest", func(t *testing.T) {
		c, err := NewComposer(bindAxes(t,
			RangeSpec{AxisCode: AxisStreet, Start: "A", End: "B"},
			RangeSpec{AxisCode: AxisColumn, Start: "1", End: "3"},
		), nil)
		require.NoError(t, err)

		tuples, err := c.Prefix(c.Total())
		require.NoError(t, err)
		assert.Equal(t, [][]string{
			{"A", "1"}, {"A", "2"}, {"A", "3"},
			{"B", "1"}, {"B", "2"}, {"B", "3"},
		}, tupleStrings(tuples))
	})

	t.Run("tuple at index matches iteration", func(t *testing.T) {
		c, err := NewComposer(bindAxes(t,
			RangeSpec{AxisCode: AxisStreet, Start: "A", End: "C"},
			RangeSpec{AxisCode: AxisColumn, Start: "1", End: "4"},
			RangeSpec{AxisCode: AxisLevel, Start: "0", End: "1"},
		), nil)
		require.NoError(t, err)

		count := int64(0)
		for idx, tuple := range c.Tuples() {
			at, err := c.TupleAt(idx)
			require.NoError(t, err)
			assert.Equal(t, tuple, at)
			count++
		}
		assert.Equal(t, c.Total(), count)
	})

	t.Run("sequence is restartable", func(t *testing.T) {
		c, err := NewComposer(bindAxes(t, RangeSpec{AxisCode: AxisLevel, Start: "1", End: "3"}), nil)
		require.NoError(t, err)

		collect := func() []CoordinateTuple {
			var out []CoordinateTuple
			for _, tuple := range c.Tuples() {
				out = append(out, tuple)
			}
			return out
		}
		assert.Equal(t, collect(), collect())
	})

	t.Run("prefix is bounded", func(t *testing.T) {
		c, err := NewComposer(bindAxes(t, RangeSpec{AxisCode: AxisLevel, Start: "1", End: "3"}), nil)
		require.NoError(t, err)

		tuples, err := c.Prefix(2)
		require.NoError(t, err)
		assert.Len(t, tuples, 2)

		tuples, err = c.Prefix(10)
		require.NoError(t, err)
		assert.Len(t, tuples, 3)

		tuples, err = c.Prefix(0)
		require.NoError(t, err)
		assert.Empty(t, tuples)
	})

	t.Run("overflowing product is too large", func(t *testing.T) {
		_, err := NewComposer(bindAxes(t,
			RangeSpec{AxisCode: AxisColumn, Start: "0", End: "999999999"},
			RangeSpec{AxisCode: AxisLevel, Start: "0", End: "999999999"},
			RangeSpec{AxisCode: AxisPallet, Start: "0", End: "999999999"},
		), nil)
		var tooLarge *SpaceTooLargeError
		require.ErrorAs(t, err, &tooLarge)
		assert.True(t, tooLarge.Overflow)
	})

	t.Run("out of range index", func(t *testing.T) {
		c, err := NewComposer(bindAxes(t, RangeSpec{AxisCode: AxisLevel, Start: "1", End: "3"}), nil)
		require.NoError(t, err)
		_, err = c.TupleAt(3)
		assert.Error(t, err)
	})
}
