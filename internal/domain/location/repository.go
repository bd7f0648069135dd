package location

import (
	"context"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/shared"
)

// AddressFilter narrows a listing of committed addresses
type AddressFilter struct {
	shared.Filter
	DepositID     uuid.UUID
	StructureSlug string
	GroupID       *uuid.UUID
	HandReachable *bool
}

// AddressRepository persists committed addresses
type AddressRepository interface {
	// BulkCreate inserts the batch as one atomic unit. A collision with an
	// existing label rejects the whole batch with *DuplicateLabelError.
	BulkCreate(ctx context.Context, addresses []*Address) (int, error)

	// FindAll lists addresses of a deposit and structure ordered by sequence
	FindAll(ctx context.Context, tenantID uuid.UUID, filter AddressFilter) ([]Address, error)

	// Count counts addresses matching the filter
	Count(ctx context.Context, tenantID uuid.UUID, filter AddressFilter) (int64, error)
}

// AddressGroupRepository persists address group templates
type AddressGroupRepository interface {
	// FindByIDForTenant finds a group by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*AddressGroup, error)

	// FindAllForTenant lists groups for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]AddressGroup, error)

	// CountForTenant counts groups for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsByName checks whether a group name is taken within a deposit
	ExistsByName(ctx context.Context, tenantID, depositID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error)

	// Save creates or updates a group
	Save(ctx context.Context, group *AddressGroup) error

	// DeleteForTenant deletes a group within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// StructureReader reads physical structure axis configuration
type StructureReader interface {
	// FindBySlug returns the structure with all of its axes
	FindBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*PhysicalStructure, error)
}
