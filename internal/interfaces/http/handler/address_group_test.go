package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	locationapp "github.com/wms/backend/internal/application/location"
	"github.com/wms/backend/internal/domain/location"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/interfaces/http/dto"
)

func groupBounds() map[string]string {
	return map[string]string{
		"street_from": "A", "street_to": "B",
		"column_from": "1", "column_to": "2",
		"level_from": "1", "level_to": "3",
		"pallet_from": "1", "pallet_to": "1",
	}
}

func newGroup(t *testing.T, structure *location.PhysicalStructure) *location.AddressGroup {
	t.Helper()

	group, err := location.NewAddressGroup(
		structure.TenantID,
		"Picking front",
		uuid.New(),
		structure,
		location.GroupBounds{
			StreetFrom: "A", StreetTo: "B",
			ColumnFrom: "1", ColumnTo: "2",
			LevelFrom: "1", LevelTo: "3",
			PalletFrom: "1", PalletTo: "1",
		},
		location.GroupFunctionPicking,
		true,
	)
	require.NoError(t, err)
	return group
}

func TestAddressGroupHandler_Create(t *testing.T) {
	t.Run("creates with acting user", func(t *testing.T) {
		f := newLocationFixture(t, 50000)
		depositID := uuid.New()
		userID := uuid.New()
		f.groups.On("ExistsByName", mock.Anything, f.tenantID, depositID, "Picking front", (*uuid.UUID)(nil)).Return(false, nil)
		f.structures.On("FindBySlug", mock.Anything, f.tenantID, "rack").Return(rackStructure(t, f.tenantID), nil)
		f.groups.On("Save", mock.Anything, mock.MatchedBy(func(g *location.AddressGroup) bool {
			return g.CreatedBy != nil && *g.CreatedBy == userID
		})).Return(nil)

		w := f.doAs(t, userID, http.MethodPost, "/address-groups", map[string]any{
			"name":                    "Picking front",
			"deposit_id":              depositID,
			"physical_structure_slug": "rack",
			"bounds":                  groupBounds(),
			"function":                "picking",
			"hand_reachable":          true,
		})

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var body struct {
			Data locationapp.AddressGroupResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Picking front", body.Data.Name)
		assert.Equal(t, f.tenantID, body.Data.TenantID)
		assert.Equal(t, 1, body.Data.Version)
		f.groups.AssertExpectations(t)
	})

	t.Run("rejects unknown function", func(t *testing.T) {
		f := newLocationFixture(t, 50000)

		w := f.do(t, http.MethodPost, "/address-groups", map[string]any{
			"name":                    "Picking front",
			"deposit_id":              uuid.New(),
			"physical_structure_slug": "rack",
			"bounds":                  groupBounds(),
			"function":                "archive",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		details := decodeResponse(t, w).Error.Details
		require.Len(t, details, 1)
		assert.Equal(t, "function", details[0].Field)
	})

	t.Run("taken name is 409", func(t *testing.T) {
		f := newLocationFixture(t, 50000)
		depositID := uuid.New()
		f.groups.On("ExistsByName", mock.Anything, f.tenantID, depositID, "Picking front", (*uuid.UUID)(nil)).Return(true, nil)

		w := f.do(t, http.MethodPost, "/address-groups", map[string]any{
			"name":                    "Picking front",
			"deposit_id":              depositID,
			"physical_structure_slug": "rack",
			"bounds":                  groupBounds(),
			"function":                "picking",
		})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, dto.ErrCodeAlreadyExists, decodeResponse(t, w).Error.Code)
	})
}

func TestAddressGroupHandler_GetByID(t *testing.T) {
	f := newLocationFixture(t, 50000)
	group := newGroup(t, rackStructure(t, f.tenantID))
	missing := uuid.New()
	f.groups.On("FindByIDForTenant", mock.Anything, f.tenantID, group.ID).Return(group, nil)
	f.groups.On("FindByIDForTenant", mock.Anything, f.tenantID, missing).Return(nil, shared.ErrNotFound)

	w := f.do(t, http.MethodGet, "/address-groups/"+group.ID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"street_from":"A"`)

	w = f.do(t, http.MethodGet, "/address-groups/"+missing.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodGet, "/address-groups/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeInvalidInput, decodeResponse(t, w).Error.Code)
}

func TestAddressGroupHandler_List(t *testing.T) {
	f := newLocationFixture(t, 50000)
	depositID := uuid.New()
	group := newGroup(t, rackStructure(t, f.tenantID))

	f.groups.On("FindAllForTenant", mock.Anything, f.tenantID, mock.MatchedBy(func(filter shared.Filter) bool {
		return filter.Filters["deposit_id"] == depositID && filter.Filters["function"] == "picking" &&
			filter.OrderBy == "name" && filter.PageSize == 20
	})).Return([]location.AddressGroup{*group}, nil)
	f.groups.On("CountForTenant", mock.Anything, f.tenantID, mock.Anything).Return(int64(1), nil)

	w := f.do(t, http.MethodGet, "/address-groups?deposit_id="+depositID.String()+"&function=picking", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeResponse(t, w)
	assert.Equal(t, int64(1), resp.Meta.Total)
	assert.Equal(t, 20, resp.Meta.PageSize)
}

func TestAddressGroupHandler_Update(t *testing.T) {
	t.Run("updates and bumps version", func(t *testing.T) {
		f := newLocationFixture(t, 50000)
		structure := rackStructure(t, f.tenantID)
		group := newGroup(t, structure)
		f.groups.On("FindByIDForTenant", mock.Anything, f.tenantID, group.ID).Return(group, nil)
		f.groups.On("ExistsByName", mock.Anything, f.tenantID, group.DepositID, "Buffer zone", &group.ID).Return(false, nil)
		f.structures.On("FindBySlug", mock.Anything, f.tenantID, "rack").Return(structure, nil)
		f.groups.On("Save", mock.Anything, group).Return(nil)

		w := f.do(t, http.MethodPut, "/address-groups/"+group.ID.String(), map[string]any{
			"name":     "Buffer zone",
			"bounds":   groupBounds(),
			"function": "buffer",
		})

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"function":"buffer"`)
		assert.Contains(t, w.Body.String(), `"version":2`)
	})

	t.Run("stale write is 409", func(t *testing.T) {
		f := newLocationFixture(t, 50000)
		structure := rackStructure(t, f.tenantID)
		group := newGroup(t, structure)
		f.groups.On("FindByIDForTenant", mock.Anything, f.tenantID, group.ID).Return(group, nil)
		f.groups.On("ExistsByName", mock.Anything, f.tenantID, group.DepositID, "Buffer zone", &group.ID).Return(false, nil)
		f.structures.On("FindBySlug", mock.Anything, f.tenantID, "rack").Return(structure, nil)
		f.groups.On("Save", mock.Anything, group).Return(shared.ErrConcurrencyConflict)

		w := f.do(t, http.MethodPut, "/address-groups/"+group.ID.String(), map[string]any{
			"name":     "Buffer zone",
			"bounds":   groupBounds(),
			"function": "buffer",
		})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, dto.ErrCodeConcurrencyConflict, decodeResponse(t, w).Error.Code)
	})
}

func TestAddressGroupHandler_Delete(t *testing.T) {
	f := newLocationFixture(t, 50000)
	id := uuid.New()
	f.groups.On("DeleteForTenant", mock.Anything, f.tenantID, id).Return(nil)

	w := f.do(t, http.MethodDelete, "/address-groups/"+id.String(), nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	f.groups.AssertExpectations(t)
}

func TestAddressGroupHandler_PreviewAndGenerate(t *testing.T) {
	f := newLocationFixture(t, 50000)
	structure := rackStructure(t, f.tenantID)
	group := newGroup(t, structure)
	f.groups.On("FindByIDForTenant", mock.Anything, f.tenantID, group.ID).Return(group, nil)
	f.structures.On("FindBySlug", mock.Anything, f.tenantID, "rack").Return(structure, nil)

	t.Run("preview honours limit", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/address-groups/"+group.ID.String()+"/preview?limit=2", nil)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var body previewBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, int64(12), body.Data.TotalCount)
		assert.Len(t, body.Data.Sample, 2)
	})

	t.Run("preview rejects bad limit", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/address-groups/"+group.ID.String()+"/preview?limit=zero", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("generate tags addresses with the group", func(t *testing.T) {
		f.addresses.On("BulkCreate", mock.Anything, mock.MatchedBy(func(batch []*location.Address) bool {
			return len(batch) == 12 && batch[0].GroupID != nil && *batch[0].GroupID == group.ID &&
				batch[0].Function != nil && *batch[0].Function == location.GroupFunctionPicking
		})).Return(12, nil).Once()

		w := f.do(t, http.MethodPost, "/address-groups/"+group.ID.String()+"/generate", nil)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"total_created":12`)
		f.addresses.AssertExpectations(t)
	})
}
