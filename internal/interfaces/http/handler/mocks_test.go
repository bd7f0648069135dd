package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	locationapp "github.com/wms/backend/internal/application/location"
	"github.com/wms/backend/internal/domain/location"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/interfaces/http/middleware"
)

type mockStructureReader struct {
	mock.Mock
}

func (m *mockStructureReader) FindBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*location.PhysicalStructure, error) {
	args := m.Called(ctx, tenantID, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*location.PhysicalStructure), args.Error(1)
}

type mockAddressRepository struct {
	mock.Mock
}

func (m *mockAddressRepository) BulkCreate(ctx context.Context, addresses []*location.Address) (int, error) {
	args := m.Called(ctx, addresses)
	return args.Int(0), args.Error(1)
}

func (m *mockAddressRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter location.AddressFilter) ([]location.Address, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]location.Address), args.Error(1)
}

func (m *mockAddressRepository) Count(ctx context.Context, tenantID uuid.UUID, filter location.AddressFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

type mockAddressGroupRepository struct {
	mock.Mock
}

func (m *mockAddressGroupRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*location.AddressGroup, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*location.AddressGroup), args.Error(1)
}

func (m *mockAddressGroupRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]location.AddressGroup, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]location.AddressGroup), args.Error(1)
}

func (m *mockAddressGroupRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAddressGroupRepository) ExistsByName(ctx context.Context, tenantID, depositID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, depositID, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockAddressGroupRepository) Save(ctx context.Context, group *location.AddressGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *mockAddressGroupRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// locationFixture wires real services over mocked repositories behind a gin router
type locationFixture struct {
	tenantID   uuid.UUID
	structures *mockStructureReader
	addresses  *mockAddressRepository
	groups     *mockAddressGroupRepository
	router     *gin.Engine
}

func newLocationFixture(t *testing.T, maxAddresses int64) *locationFixture {
	t.Helper()

	f := &locationFixture{
		tenantID:   uuid.New(),
		structures: new(mockStructureReader),
		addresses:  new(mockAddressRepository),
		groups:     new(mockAddressGroupRepository),
	}

	generation := locationapp.NewAddressGenerationService(
		f.structures,
		f.addresses,
		location.NewGenerator(location.GeneratorConfig{MaxAddresses: maxAddresses}),
		locationapp.PreviewLimits{Default: 20, Max: 500},
		nil,
		nil,
	)
	groupService := locationapp.NewAddressGroupService(f.groups, f.structures, generation)

	addressHandler := NewAddressHandler(generation)
	groupHandler := NewAddressGroupHandler(groupService)
	structureHandler := NewStructureHandler(locationapp.NewStructureService(f.structures))

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Tenant(middleware.DefaultTenantConfig()))
	api := router.Group("/api/v1/location")
	api.POST("/addresses/preview", addressHandler.Preview)
	api.POST("/addresses/generate", addressHandler.Generate)
	api.GET("/addresses", addressHandler.List)
	api.POST("/address-groups", groupHandler.Create)
	api.GET("/address-groups", groupHandler.List)
	api.GET("/address-groups/:id", groupHandler.GetByID)
	api.PUT("/address-groups/:id", groupHandler.Update)
	api.DELETE("/address-groups/:id", groupHandler.Delete)
	api.GET("/address-groups/:id/preview", groupHandler.Preview)
	api.POST("/address-groups/:id/generate", groupHandler.Generate)
	api.GET("/structures/:slug/axes", structureHandler.GetAxes)
	f.router = router
	return f
}

func (f *locationFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return f.doAs(t, uuid.Nil, method, path, body)
}

// doAs sends the request on behalf of userID; uuid.Nil sends no user header
func (f *locationFixture) doAs(t *testing.T, userID uuid.UUID, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, "/api/v1/location"+path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.TenantHeaderKey, f.tenantID.String())
	if userID != uuid.Nil {
		req.Header.Set(middleware.UserIDHeaderKey, userID.String())
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

// structureWith returns a structure where only the given axes are active
func structureWith(t *testing.T, tenantID uuid.UUID, slug string, active ...location.AxisCode) *location.PhysicalStructure {
	t.Helper()

	axes := make([]location.AxisDefinition, 0, len(active))
	for _, code := range active {
		def, ok := location.DefaultAxis(code)
		require.True(t, ok)
		def.Active = true
		axes = append(axes, def)
	}
	return &location.PhysicalStructure{
		ID:       uuid.New(),
		TenantID: tenantID,
		Slug:     slug,
		Name:     "Pallet rack",
		Axes:     axes,
	}
}

func rackStructure(t *testing.T, tenantID uuid.UUID) *location.PhysicalStructure {
	return structureWith(t, tenantID, "rack",
		location.AxisStreet, location.AxisColumn, location.AxisLevel, location.AxisPallet)
}
