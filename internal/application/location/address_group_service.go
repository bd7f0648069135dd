package location

import (
	"context"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/location"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/infrastructure/telemetry"
)

// AddressGroupService manages address group templates and generates
// addresses from them
type AddressGroupService struct {
	groups     location.AddressGroupRepository
	structures location.StructureReader
	generation *AddressGenerationService
	adapter    location.TemplateAdapter
}

// NewAddressGroupService creates a new AddressGroupService
func NewAddressGroupService(
	groups location.AddressGroupRepository,
	structures location.StructureReader,
	generation *AddressGenerationService,
) *AddressGroupService {
	return &AddressGroupService{
		groups:     groups,
		structures: structures,
		generation: generation,
		adapter:    location.NewTemplateAdapter(),
	}
}

// Create creates a new address group
func (s *AddressGroupService) Create(ctx context.Context, tenantID uuid.UUID, req CreateAddressGroupRequest) (*AddressGroupResponse, error) {
	exists, err := s.groups.ExistsByName(ctx, tenantID, req.DepositID, req.Name, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Address group with this name already exists in the deposit")
	}

	structure, err := s.structures.FindBySlug(ctx, tenantID, req.PhysicalStructureSlug)
	if err != nil {
		return nil, err
	}

	group, err := location.NewAddressGroup(
		tenantID,
		req.Name,
		req.DepositID,
		structure,
		req.Bounds.toDomain(),
		location.GroupFunction(req.Function),
		req.HandReachable,
	)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		group.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.groups.Save(ctx, group); err != nil {
		return nil, err
	}

	response := ToAddressGroupResponse(group)
	return &response, nil
}

// GetByID retrieves an address group by ID
func (s *AddressGroupService) GetByID(ctx context.Context, tenantID, groupID uuid.UUID) (*AddressGroupResponse, error) {
	group, err := s.groups.FindByIDForTenant(ctx, tenantID, groupID)
	if err != nil {
		return nil, err
	}

	response := ToAddressGroupResponse(group)
	return &response, nil
}

// List retrieves address groups with filtering and pagination
func (s *AddressGroupService) List(ctx context.Context, tenantID uuid.UUID, filter AddressGroupListFilter) ([]AddressGroupResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.OrderBy = "name"
	domainFilter.OrderDir = "asc"
	domainFilter.Search = filter.Search
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	if filter.DepositID != "" {
		depositID, err := uuid.Parse(filter.DepositID)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_DEPOSIT", "Invalid deposit ID")
		}
		domainFilter.Filters["deposit_id"] = depositID
	}
	if filter.Function != "" {
		domainFilter.Filters["function"] = filter.Function
	}

	groups, err := s.groups.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.groups.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToAddressGroupResponses(groups), total, nil
}

// Update replaces the name, bounds and tags of an address group.
// Addresses already generated from the group are left as they are.
func (s *AddressGroupService) Update(ctx context.Context, tenantID, groupID uuid.UUID, req UpdateAddressGroupRequest) (*AddressGroupResponse, error) {
	group, err := s.groups.FindByIDForTenant(ctx, tenantID, groupID)
	if err != nil {
		return nil, err
	}

	exists, err := s.groups.ExistsByName(ctx, tenantID, group.DepositID, req.Name, &group.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Address group with this name already exists in the deposit")
	}

	structure, err := s.structures.FindBySlug(ctx, tenantID, group.PhysicalStructureSlug)
	if err != nil {
		return nil, err
	}

	if err := group.Update(req.Name, structure, req.Bounds.toDomain(), location.GroupFunction(req.Function), req.HandReachable); err != nil {
		return nil, err
	}

	if err := s.groups.Save(ctx, group); err != nil {
		return nil, err
	}

	response := ToAddressGroupResponse(group)
	return &response, nil
}

// Delete deletes an address group. Its generated addresses keep their group tag.
func (s *AddressGroupService) Delete(ctx context.Context, tenantID, groupID uuid.UUID) error {
	return s.groups.DeleteForTenant(ctx, tenantID, groupID)
}

// Preview samples the address space described by a group
func (s *AddressGroupService) Preview(ctx context.Context, tenantID, groupID uuid.UUID, limit *int) (*PreviewResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "address_group", "preview",
		telemetry.WithAttribute(telemetry.SpanAttrTenantID, tenantID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrGroupID, groupID.String()),
	)
	defer span.End()

	group, structure, err := s.load(ctx, tenantID, groupID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	axes, ranges, err := s.adapter.Bind(group, structure)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return s.generation.preview(ctx, span, structure.Slug, axes, ranges, limit)
}

// Generate commits every address of a group, tagged with the group and its function
func (s *AddressGroupService) Generate(ctx context.Context, tenantID, groupID uuid.UUID) (*CommitResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "address_group", "generate",
		telemetry.WithAttribute(telemetry.SpanAttrTenantID, tenantID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrGroupID, groupID.String()),
	)
	defer span.End()

	group, structure, err := s.load(ctx, tenantID, groupID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	axes, ranges, err := s.adapter.Bind(group, structure)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return s.generation.commit(ctx, span, group.Target(), axes, ranges)
}

func (s *AddressGroupService) load(ctx context.Context, tenantID, groupID uuid.UUID) (*location.AddressGroup, *location.PhysicalStructure, error) {
	group, err := s.groups.FindByIDForTenant(ctx, tenantID, groupID)
	if err != nil {
		return nil, nil, err
	}
	structure, err := s.structures.FindBySlug(ctx, tenantID, group.PhysicalStructureSlug)
	if err != nil {
		return nil, nil, err
	}
	return group, structure, nil
}
