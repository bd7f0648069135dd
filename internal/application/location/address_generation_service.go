package location

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/location"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/infrastructure/logger"
	"github.com/wms/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// PreviewLimits bounds the sample size of a preview
type PreviewLimits struct {
	Default int
	Max     int
}

func (l PreviewLimits) resolve(requested *int) int {
	limit := l.Default
	if requested != nil {
		limit = *requested
	}
	if l.Max > 0 && limit > l.Max {
		limit = l.Max
	}
	return max(limit, 0)
}

// AddressGenerationService orchestrates the address wizard: it reads the
// structure's axes, runs the generator and hands committed batches to the
// address repository.
type AddressGenerationService struct {
	structures location.StructureReader
	addresses  location.AddressRepository
	generator  *location.Generator
	limits     PreviewLimits
	metrics    *telemetry.GenerationMetrics
	logger     *zap.Logger
}

// NewAddressGenerationService creates a new AddressGenerationService.
// metrics may be nil.
func NewAddressGenerationService(
	structures location.StructureReader,
	addresses location.AddressRepository,
	generator *location.Generator,
	limits PreviewLimits,
	metrics *telemetry.GenerationMetrics,
	log *zap.Logger,
) *AddressGenerationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AddressGenerationService{
		structures: structures,
		addresses:  addresses,
		generator:  generator,
		limits:     limits,
		metrics:    metrics,
		logger:     log.Named("address_generation"),
	}
}

// Preview returns the total size and a capped sample of the requested space.
// Nothing is persisted.
func (s *AddressGenerationService) Preview(ctx context.Context, tenantID uuid.UUID, req GenerateAddressesRequest) (*PreviewResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "address_generation", "preview",
		telemetry.WithAttribute(telemetry.SpanAttrTenantID, tenantID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrDepositID, req.DepositID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrStructureSlug, req.PhysicalStructureSlug),
	)
	defer span.End()

	structure, err := s.structures.FindBySlug(ctx, tenantID, req.PhysicalStructureSlug)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return s.preview(ctx, span, structure.Slug, structure.Axes, req.RangeSpecs(), req.Limit)
}

// Commit generates the full space and persists it as one batch
func (s *AddressGenerationService) Commit(ctx context.Context, tenantID uuid.UUID, req GenerateAddressesRequest) (*CommitResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "address_generation", "commit",
		telemetry.WithAttribute(telemetry.SpanAttrTenantID, tenantID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrDepositID, req.DepositID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrStructureSlug, req.PhysicalStructureSlug),
	)
	defer span.End()

	structure, err := s.structures.FindBySlug(ctx, tenantID, req.PhysicalStructureSlug)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	target := location.AddressTarget{
		TenantID:      tenantID,
		DepositID:     req.DepositID,
		StructureSlug: structure.Slug,
	}
	return s.commit(ctx, span, target, structure.Axes, req.RangeSpecs())
}

// List lists committed addresses of a deposit and structure in sequence order
func (s *AddressGenerationService) List(ctx context.Context, tenantID uuid.UUID, filter AddressListFilter) ([]AddressResponse, int64, error) {
	depositID, err := uuid.Parse(filter.DepositID)
	if err != nil {
		return nil, 0, shared.NewDomainError("INVALID_DEPOSIT", "Invalid deposit ID")
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}

	domainFilter := location.AddressFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  "sequence",
			OrderDir: "asc",
			Search:   filter.Search,
		},
		DepositID:     depositID,
		StructureSlug: filter.StructureSlug,
		HandReachable: filter.HandReachable,
	}
	if filter.GroupID != "" {
		groupID, err := uuid.Parse(filter.GroupID)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_GROUP", "Invalid address group ID")
		}
		domainFilter.GroupID = &groupID
	}

	addrs, err := s.addresses.FindAll(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.addresses.Count(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToAddressResponses(addrs), total, nil
}

func (s *AddressGenerationService) preview(
	ctx context.Context,
	span trace.Span,
	slug string,
	axes []location.AxisDefinition,
	ranges []location.RangeSpec,
	requestedLimit *int,
) (*PreviewResponse, error) {
	start := time.Now()
	limit := s.limits.resolve(requestedLimit)

	result, err := s.generator.Preview(axes, ranges, limit)
	if err != nil {
		s.reject(ctx, span, slug, "preview", err, start)
		return nil, err
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrTotalCount, result.TotalCount,
		telemetry.SpanAttrSampleSize, len(result.Sample),
	)
	telemetry.SetOK(span)
	s.metrics.RecordPreview(ctx, slug, len(result.Sample), time.Since(start))

	logger.Enrich(ctx, s.logger).Debug("Address space previewed",
		zap.String("structure_slug", slug),
		zap.Int64("total_count", result.TotalCount),
		zap.Int("sample_size", len(result.Sample)),
		zap.Bool("exceeds_limit", result.ExceedsLimit),
	)

	resp := ToPreviewResponse(result)
	return &resp, nil
}

func (s *AddressGenerationService) commit(
	ctx context.Context,
	span trace.Span,
	target location.AddressTarget,
	axes []location.AxisDefinition,
	ranges []location.RangeSpec,
) (*CommitResponse, error) {
	start := time.Now()

	generated, err := s.generator.Build(ctx, axes, ranges)
	if err != nil {
		s.reject(ctx, span, target.StructureSlug, "commit", err, start)
		return nil, err
	}

	telemetry.AddEvent(span, telemetry.SpanEventBatchBuilt, telemetry.SpanAttrAddresses, len(generated))

	created, err := s.addresses.BulkCreate(ctx, location.NewAddresses(target, generated))
	if err != nil {
		s.reject(ctx, span, target.StructureSlug, "commit", err, start)
		return nil, err
	}
	telemetry.AddEvent(span, telemetry.SpanEventBatchPersisted, telemetry.SpanAttrCreated, created)

	telemetry.SetAttributes(span,
		telemetry.SpanAttrTotalCount, len(generated),
		telemetry.SpanAttrCreated, created,
	)
	telemetry.SetOK(span)
	s.metrics.RecordCommit(ctx, target.StructureSlug, created, time.Since(start))

	fields := []zap.Field{
		zap.String("deposit_id", target.DepositID.String()),
		zap.String("structure_slug", target.StructureSlug),
		zap.Int("created", created),
		zap.Duration("duration", time.Since(start)),
	}
	if target.GroupID != nil {
		fields = append(fields, zap.String("group_id", target.GroupID.String()))
	}
	logger.Enrich(ctx, s.logger).Info("Addresses committed", fields...)

	return &CommitResponse{TotalCreated: created}, nil
}

// reject records a failed generation. Domain rejections are expected
// outcomes and logged at warn; anything else is an error.
func (s *AddressGenerationService) reject(ctx context.Context, span trace.Span, slug, operation string, err error, start time.Time) {
	telemetry.RecordError(span, err)

	code := "INTERNAL_ERROR"
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code = domainErr.Code
	}
	s.metrics.RecordRejection(ctx, slug, operation, code, time.Since(start))

	log := logger.Enrich(ctx, s.logger).With(
		zap.String("structure_slug", slug),
		zap.String("operation", operation),
		zap.String("code", code),
		zap.Error(err),
	)
	if domainErr != nil {
		log.Warn("Address generation rejected")
		return
	}
	log.Error("Address generation failed")
}
