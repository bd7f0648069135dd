package location

import (
	"fmt"
	"iter"
	"math"
	"math/bits"
)

// CoordinateTuple holds one value per bound axis, in canonical axis order
type CoordinateTuple []Value

// Composer produces the cartesian product of bound axes in odometer order:
// the last axis varies fastest. Nothing is materialized until tuples are
// requested, so Total is cheap even for very large spaces.
type Composer struct {
	axes       []BoundAxis
	counts     []int
	total      int64
	enumerator ValueEnumerator
}

// NewComposer counts every axis and computes the product size.
// A product that does not fit in an int64 is reported as SpaceTooLarge.
func NewComposer(axes []BoundAxis, enumerator ValueEnumerator) (*Composer, error) {
	if enumerator == nil {
		enumerator = NewKindEnumerator()
	}
	counts := make([]int, len(axes))
	total := uint64(1)
	if len(axes) == 0 {
		total = 0
	}
	for i, axis := range axes {
		n, err := enumerator.Count(axis)
		if err != nil {
			return nil, err
		}
		counts[i] = n
		hi, lo := bits.Mul64(total, uint64(n))
		if hi != 0 || lo > math.MaxInt64 {
			return nil, &SpaceTooLargeError{Overflow: true, Max: math.MaxInt64}
		}
		total = lo
	}
	return &Composer{
		axes:       axes,
		counts:     counts,
		total:      int64(total),
		enumerator: enumerator,
	}, nil
}

// Total returns the number of tuples in the product
func (c *Composer) Total() int64 {
	return c.total
}

// Axes returns the bound axes in composition order
func (c *Composer) Axes() []BoundAxis {
	return c.axes
}

// TupleAt returns the tuple at odometer index i
func (c *Composer) TupleAt(i int64) (CoordinateTuple, error) {
	if i < 0 || i >= c.total {
		return nil, fmt.Errorf("tuple index %d out of range [0,%d)", i, c.total)
	}
	tuple := make(CoordinateTuple, len(c.axes))
	for a := len(c.axes) - 1; a >= 0; a-- {
		n := int64(c.counts[a])
		v, err := c.enumerator.At(c.axes[a], int(i%n))
		if err != nil {
			return nil, err
		}
		tuple[a] = v
		i /= n
	}
	return tuple, nil
}

// Tuples yields (index, tuple) pairs in odometer order. The sequence can be
// ranged over any number of times and every yielded tuple is a fresh slice.
// Iteration stops early if the enumerator fails; Each and Prefix report that error.
func (c *Composer) Tuples() iter.Seq2[int64, CoordinateTuple] {
	return func(yield func(int64, CoordinateTuple) bool) {
		_ = c.walk(c.total, yield)
	}
}

// Prefix materializes at most n tuples from the start of the sequence
func (c *Composer) Prefix(n int64) ([]CoordinateTuple, error) {
	if n > c.total {
		n = c.total
	}
	if n <= 0 {
		return []CoordinateTuple{}, nil
	}
	out := make([]CoordinateTuple, 0, n)
	err := c.walk(n, func(_ int64, t CoordinateTuple) bool {
		out = append(out, t)
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Each calls fn for every tuple in order and stops at the first error
func (c *Composer) Each(fn func(int64, CoordinateTuple) error) error {
	var fnErr error
	err := c.walk(c.total, func(idx int64, t CoordinateTuple) bool {
		fnErr = fn(idx, t)
		return fnErr == nil
	})
	if err != nil {
		return err
	}
	return fnErr
}

// walk advances an odometer over the first limit tuples
func (c *Composer) walk(limit int64, yield func(int64, CoordinateTuple) bool) error {
	if limit <= 0 || len(c.axes) == 0 {
		return nil
	}
	positions := make([]int, len(c.axes))
	current := make(CoordinateTuple, len(c.axes))
	for a, axis := range c.axes {
		v, err := c.enumerator.At(axis, 0)
		if err != nil {
			return err
		}
		current[a] = v
	}

	for idx := int64(0); idx < limit; idx++ {
		out := make(CoordinateTuple, len(current))
		copy(out, current)
		if !yield(idx, out) {
			return nil
		}

		for a := len(c.axes) - 1; a >= 0; a-- {
			positions[a]++
			if positions[a] < c.counts[a] {
				v, err := c.enumerator.At(c.axes[a], positions[a])
				if err != nil {
					return err
				}
				current[a] = v
				break
			}
			positions[a] = 0
			v, err := c.enumerator.At(c.axes[a], 0)
			if err != nil {
				return err
			}
			current[a] = v
		}
	}
	return nil
}
