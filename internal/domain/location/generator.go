package location

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Generator defaults
const (
	DefaultMaxAddresses      int64 = 50000
	DefaultParallelThreshold       = 2000
)

// GeneratorConfig bounds generation work
type GeneratorConfig struct {
	// MaxAddresses is the ceiling for a committed batch
	MaxAddresses int64
	// Workers is the number of goroutines formatting large batches
	Workers int
	// ParallelThreshold is the batch size from which formatting fans out
	ParallelThreshold int
}

// GeneratorOption customizes a Generator
type GeneratorOption func(*Generator)

// WithEnumerator replaces the default kind-dispatching enumerator
func WithEnumerator(e ValueEnumerator) GeneratorOption {
	return func(g *Generator) {
		g.enumerator = e
	}
}

// WithLabelFormatter replaces the label formatter
func WithLabelFormatter(f LabelFormatter) GeneratorOption {
	return func(g *Generator) {
		g.formatter = f
	}
}

// Generator is a stateless domain service turning axis definitions and
// ranges into generated addresses. It never persists anything.
type Generator struct {
	config     GeneratorConfig
	enumerator ValueEnumerator
	formatter  LabelFormatter
}

// NewGenerator creates a generator, filling zero config fields with defaults
func NewGenerator(cfg GeneratorConfig, opts ...GeneratorOption) *Generator {
	if cfg.MaxAddresses <= 0 {
		cfg.MaxAddresses = DefaultMaxAddresses
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.ParallelThreshold <= 0 {
		cfg.ParallelThreshold = DefaultParallelThreshold
	}
	g := &Generator{
		config:     cfg,
		enumerator: NewKindEnumerator(),
		formatter:  NewLabelFormatter(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// MaxAddresses returns the configured commit ceiling
func (g *Generator) MaxAddresses() int64 {
	return g.config.MaxAddresses
}

// PreviewResult is a bounded sample of an address space plus its true size
type PreviewResult struct {
	TotalCount   int64
	Sample       []GeneratedAddress
	ExceedsLimit bool
	MaxAddresses int64
}

// Preview validates the ranges, counts the space and formats the first
// limit addresses. A space above the ceiling is flagged, not rejected;
// only a space too large to count at all fails.
func (g *Generator) Preview(structureAxes []AxisDefinition, ranges []RangeSpec, limit int) (*PreviewResult, error) {
	composer, err := g.compose(structureAxes, ranges)
	if err != nil {
		return nil, err
	}

	tuples, err := composer.Prefix(int64(max(limit, 0)))
	if err != nil {
		return nil, err
	}

	axes := composer.Axes()
	classifier := NewAccessibilityClassifier(axes)
	sample := make([]GeneratedAddress, len(tuples))
	for i, tuple := range tuples {
		addr, err := g.render(int64(i), tuple, axes, classifier)
		if err != nil {
			return nil, err
		}
		sample[i] = addr
	}

	return &PreviewResult{
		TotalCount:   composer.Total(),
		Sample:       sample,
		ExceedsLimit: composer.Total() > g.config.MaxAddresses,
		MaxAddresses: g.config.MaxAddresses,
	}, nil
}

// Count validates the ranges and returns the size of the space
func (g *Generator) Count(structureAxes []AxisDefinition, ranges []RangeSpec) (int64, error) {
	composer, err := g.compose(structureAxes, ranges)
	if err != nil {
		return 0, err
	}
	return composer.Total(), nil
}

// Build generates the full, ordered address set for a commit. The ceiling
// is checked before any tuple is produced. Large batches are formatted on
// several goroutines, each writing its own index range.
func (g *Generator) Build(ctx context.Context, structureAxes []AxisDefinition, ranges []RangeSpec) ([]GeneratedAddress, error) {
	composer, err := g.compose(structureAxes, ranges)
	if err != nil {
		return nil, err
	}
	total := composer.Total()
	if total > g.config.MaxAddresses {
		return nil, &SpaceTooLargeError{Total: total, Max: g.config.MaxAddresses}
	}

	axes := composer.Axes()
	classifier := NewAccessibilityClassifier(axes)
	out := make([]GeneratedAddress, total)

	if total < int64(g.config.ParallelThreshold) || g.config.Workers == 1 {
		err := composer.Each(func(idx int64, tuple CoordinateTuple) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			addr, err := g.render(idx, tuple, axes, classifier)
			if err != nil {
				return err
			}
			out[idx] = addr
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		workers := int64(g.config.Workers)
		chunk := (total + workers - 1) / workers
		eg, egCtx := errgroup.WithContext(ctx)
		for from := int64(0); from < total; from += chunk {
			to := min(from+chunk, total)
			eg.Go(func() error {
				for idx := from; idx < to; idx++ {
					if err := egCtx.Err(); err != nil {
						return err
					}
					tuple, err := composer.TupleAt(idx)
					if err != nil {
						return err
					}
					addr, err := g.render(idx, tuple, axes, classifier)
					if err != nil {
						return err
					}
					out[idx] = addr
				}
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
	}

	if dups := duplicateLabels(out); len(dups) > 0 {
		return nil, &DuplicateLabelError{Labels: dups}
	}
	return out, nil
}

func (g *Generator) compose(structureAxes []AxisDefinition, ranges []RangeSpec) (*Composer, error) {
	active, err := ResolveAxes(structureAxes)
	if err != nil {
		return nil, err
	}
	bound, err := Bind(active, ranges)
	if err != nil {
		return nil, err
	}
	return NewComposer(bound, g.enumerator)
}

func (g *Generator) render(seq int64, tuple CoordinateTuple, axes []BoundAxis, classifier AccessibilityClassifier) (GeneratedAddress, error) {
	labels, err := g.formatter.Format(tuple, axes)
	if err != nil {
		return GeneratedAddress{}, fmt.Errorf("format tuple %d: %w", seq, err)
	}
	return GeneratedAddress{
		Sequence:      seq,
		Coordinates:   coordinatesOf(tuple, axes),
		FullLabel:     labels.Full,
		ShortLabel:    labels.Short,
		HandReachable: classifier.Classify(tuple),
	}, nil
}

// duplicateLabels returns every full label that occurs more than once, sorted
func duplicateLabels(addrs []GeneratedAddress) []string {
	seen := make(map[string]int, len(addrs))
	for _, a := range addrs {
		seen[a.FullLabel]++
	}
	var dups []string
	for label, n := range seen {
		if n > 1 {
			dups = append(dups, label)
		}
	}
	sort.Strings(dups)
	return dups
}
