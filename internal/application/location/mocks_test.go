package location

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wms/backend/internal/domain/location"
	"github.com/wms/backend/internal/domain/shared"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockStructureReader is a mock implementation of StructureReader
type MockStructureReader struct {
	mock.Mock
}

func (m *MockStructureReader) FindBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*location.PhysicalStructure, error) {
	args := m.Called(ctx, tenantID, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*location.PhysicalStructure), args.Error(1)
}

// MockAddressRepository is a mock implementation of AddressRepository
type MockAddressRepository struct {
	mock.Mock
}

func (m *MockAddressRepository) BulkCreate(ctx context.Context, addresses []*location.Address) (int, error) {
	args := m.Called(ctx, addresses)
	return args.Int(0), args.Error(1)
}

func (m *MockAddressRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter location.AddressFilter) ([]location.Address, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]location.Address), args.Error(1)
}

func (m *MockAddressRepository) Count(ctx context.Context, tenantID uuid.UUID, filter location.AddressFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockAddressGroupRepository is a mock implementation of AddressGroupRepository
type MockAddressGroupRepository struct {
	mock.Mock
}

func (m *MockAddressGroupRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*location.AddressGroup, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*location.AddressGroup), args.Error(1)
}

func (m *MockAddressGroupRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]location.AddressGroup, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]location.AddressGroup), args.Error(1)
}

func (m *MockAddressGroupRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAddressGroupRepository) ExistsByName(ctx context.Context, tenantID, depositID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, depositID, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAddressGroupRepository) Save(ctx context.Context, group *location.AddressGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockAddressGroupRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// =============================================================================
// Fixtures
// =============================================================================

// rackStructure returns a structure with street, column, level and pallet active
func rackStructure(t *testing.T, tenantID uuid.UUID) *location.PhysicalStructure {
	return structureWith(t, tenantID, "rack",
		location.AxisStreet, location.AxisColumn, location.AxisLevel, location.AxisPallet)
}

// structureWith returns a structure where only the given axes are active
func structureWith(t *testing.T, tenantID uuid.UUID, slug string, active ...location.AxisCode) *location.PhysicalStructure {
	t.Helper()
	axes := make([]location.AxisDefinition, 0, len(active)+1)
	for _, code := range active {
		def, ok := location.DefaultAxis(code)
		require.True(t, ok)
		def.Active = true
		axes = append(axes, def)
	}
	block, _ := location.DefaultAxis(location.AxisBlock)
	axes = append(axes, block)

	return &location.PhysicalStructure{
		ID:       uuid.New(),
		TenantID: tenantID,
		Slug:     slug,
		Name:     "Pallet rack",
		Axes:     axes,
	}
}

func intPtr(v int) *int { return &v }
