package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wms/backend/internal/domain/location"
	"github.com/wms/backend/internal/domain/shared"
)

func rackForTenant(t *testing.T, tenantID uuid.UUID) *location.PhysicalStructure {
	t.Helper()
	var axes []location.AxisDefinition
	for _, code := range []location.AxisCode{location.AxisStreet, location.AxisColumn, location.AxisLevel, location.AxisPallet} {
		def, ok := location.DefaultAxis(code)
		require.True(t, ok)
		def.Active = true
		axes = append(axes, def)
	}
	return &location.PhysicalStructure{ID: uuid.New(), TenantID: tenantID, Slug: "rack", Name: "Rack", Axes: axes}
}

func newTestGroup(t *testing.T, tenantID, depositID uuid.UUID, name string, fn location.GroupFunction) *location.AddressGroup {
	t.Helper()
	group, err := location.NewAddressGroup(tenantID, name, depositID, rackForTenant(t, tenantID), location.GroupBounds{
		StreetFrom: "A", StreetTo: "B",
		ColumnFrom: "1", ColumnTo: "3",
		LevelFrom: "1", LevelTo: "2",
		PalletFrom: "1", PalletTo: "1",
	}, fn, false)
	require.NoError(t, err)
	return group
}

func TestGormAddressGroupRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewGormAddressGroupRepository(setupLocationTestDB(t))
	tenantID, depositID := uuid.New(), uuid.New()

	group := newTestGroup(t, tenantID, depositID, "Picking front", location.GroupFunctionPicking)
	require.NoError(t, repo.Save(ctx, group))

	found, err := repo.FindByIDForTenant(ctx, tenantID, group.ID)
	require.NoError(t, err)
	assert.Equal(t, "Picking front", found.Name)
	assert.Equal(t, group.Bounds, found.Bounds)
	assert.Equal(t, location.GroupFunctionPicking, found.Function)
	assert.Equal(t, 1, found.Version)

	require.NoError(t, found.Update("Picking back", rackForTenant(t, tenantID), found.Bounds, location.GroupFunctionBuffer, true))
	require.NoError(t, repo.Save(ctx, found))

	reloaded, err := repo.FindByIDForTenant(ctx, tenantID, group.ID)
	require.NoError(t, err)
	assert.Equal(t, "Picking back", reloaded.Name)
	assert.Equal(t, location.GroupFunctionBuffer, reloaded.Function)
	assert.True(t, reloaded.HandReachable)
	assert.Equal(t, 2, reloaded.Version)

	_, err = repo.FindByIDForTenant(ctx, uuid.New(), group.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// found is now one version behind
	require.NoError(t, found.Update("Stale", rackForTenant(t, tenantID), found.Bounds, location.GroupFunctionBuffer, true))
	assert.ErrorIs(t, repo.Save(ctx, found), shared.ErrConcurrencyConflict)
}

func TestGormAddressGroupRepository_ExistsByName(t *testing.T) {
	ctx := context.Background()
	repo := NewGormAddressGroupRepository(setupLocationTestDB(t))
	tenantID, depositID := uuid.New(), uuid.New()

	group := newTestGroup(t, tenantID, depositID, "Bulk Zone", location.GroupFunctionStorage)
	require.NoError(t, repo.Save(ctx, group))

	tests := []struct {
		name      string
		depositID uuid.UUID
		lookup    string
		excludeID *uuid.UUID
		want      bool
	}{
		{"same name", depositID, "Bulk Zone", nil, true},
		{"different case and padding", depositID, "  bulk zone ", nil, true},
		{"other deposit", uuid.New(), "Bulk Zone", nil, false},
		{"excluding itself", depositID, "Bulk Zone", &group.ID, false},
		{"other name", depositID, "Reserve", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exists, err := repo.ExistsByName(ctx, tenantID, tt.depositID, tt.lookup, tt.excludeID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, exists)
		})
	}
}

func TestGormAddressGroupRepository_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewGormAddressGroupRepository(setupLocationTestDB(t))
	tenantID, depositID := uuid.New(), uuid.New()

	for _, g := range []*location.AddressGroup{
		newTestGroup(t, tenantID, depositID, "Charlie", location.GroupFunctionStorage),
		newTestGroup(t, tenantID, depositID, "Alpha", location.GroupFunctionPicking),
		newTestGroup(t, tenantID, uuid.New(), "Bravo", location.GroupFunctionPicking),
		newTestGroup(t, uuid.New(), depositID, "Delta", location.GroupFunctionPicking),
	} {
		require.NoError(t, repo.Save(ctx, g))
	}

	t.Run("filters by deposit and orders by name", func(t *testing.T) {
		filter := shared.Filter{
			Page: 1, PageSize: 10,
			OrderBy: "name", OrderDir: "asc",
			Filters: map[string]any{"deposit_id": depositID},
		}
		groups, err := repo.FindAllForTenant(ctx, tenantID, filter)
		require.NoError(t, err)
		require.Len(t, groups, 2)
		assert.Equal(t, "Alpha", groups[0].Name)
		assert.Equal(t, "Charlie", groups[1].Name)

		count, err := repo.CountForTenant(ctx, tenantID, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("filters by function", func(t *testing.T) {
		count, err := repo.CountForTenant(ctx, tenantID, shared.Filter{
			Filters: map[string]any{"function": string(location.GroupFunctionPicking)},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("delete is tenant scoped", func(t *testing.T) {
		groups, err := repo.FindAllForTenant(ctx, tenantID, shared.Filter{Search: "alp"})
		require.NoError(t, err)
		require.Len(t, groups, 1)

		assert.ErrorIs(t, repo.DeleteForTenant(ctx, uuid.New(), groups[0].ID), shared.ErrNotFound)
		require.NoError(t, repo.DeleteForTenant(ctx, tenantID, groups[0].ID))
		assert.ErrorIs(t, repo.DeleteForTenant(ctx, tenantID, groups[0].ID), shared.ErrNotFound)
	})
}
