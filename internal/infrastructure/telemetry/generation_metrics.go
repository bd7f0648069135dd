package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Generation outcomes recorded as the outcome attribute
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// GenerationMetrics tracks address generation volume and latency
type GenerationMetrics struct {
	logger *zap.Logger

	previewedTotal *Counter
	committedTotal *Counter
	rejectedTotal  *Counter
	duration       *Histogram
}

// NewGenerationMetrics registers the generation instruments on the meter
func NewGenerationMetrics(meter metric.Meter, logger *zap.Logger) (*GenerationMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	gm := &GenerationMetrics{logger: logger}

	var err error
	gm.previewedTotal, err = NewCounter(meter,
		"wms_addresses_previewed_total",
		"Total number of addresses rendered in previews",
		"{addresses}",
	)
	if err != nil {
		return nil, err
	}

	gm.committedTotal, err = NewCounter(meter,
		"wms_addresses_committed_total",
		"Total number of addresses persisted by commits",
		"{addresses}",
	)
	if err != nil {
		return nil, err
	}

	gm.rejectedTotal, err = NewCounter(meter,
		"wms_generation_rejected_total",
		"Total number of generation requests rejected",
		"{requests}",
	)
	if err != nil {
		return nil, err
	}

	gm.duration, err = NewHistogram(meter, HistogramOpts{
		Name:        "wms_generation_duration_seconds",
		Description: "Duration of address generation requests",
		Unit:        "s",
		Boundaries:  GenerationDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	return gm, nil
}

// RecordPreview records a rendered preview sample
func (gm *GenerationMetrics) RecordPreview(ctx context.Context, structureSlug string, sampled int, d time.Duration) {
	if gm == nil {
		return
	}
	attrs := []attribute.KeyValue{AttrStructureSlug.String(structureSlug), AttrOperation.String("preview")}
	gm.previewedTotal.Add(ctx, int64(sampled), attrs...)
	gm.duration.RecordDuration(ctx, d, append(attrs, AttrOutcome.String(OutcomeSuccess))...)
}

// RecordCommit records a persisted batch
func (gm *GenerationMetrics) RecordCommit(ctx context.Context, structureSlug string, created int, d time.Duration) {
	if gm == nil {
		return
	}
	attrs := []attribute.KeyValue{AttrStructureSlug.String(structureSlug), AttrOperation.String("commit")}
	gm.committedTotal.Add(ctx, int64(created), attrs...)
	gm.duration.RecordDuration(ctx, d, append(attrs, AttrOutcome.String(OutcomeSuccess))...)
}

// RecordRejection records a request that failed validation, the ceiling or a duplicate check
func (gm *GenerationMetrics) RecordRejection(ctx context.Context, structureSlug, operation, code string, d time.Duration) {
	if gm == nil {
		return
	}
	gm.rejectedTotal.Inc(ctx,
		AttrStructureSlug.String(structureSlug),
		AttrOperation.String(operation),
		attribute.String("code", code),
	)
	gm.duration.RecordDuration(ctx, d,
		AttrStructureSlug.String(structureSlug),
		AttrOperation.String(operation),
		AttrOutcome.String(OutcomeRejected),
	)
	gm.logger.Debug("Generation rejected",
		zap.String("structure_slug", structureSlug),
		zap.String("operation", operation),
		zap.String("code", code),
	)
}
