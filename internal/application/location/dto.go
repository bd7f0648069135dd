package location

import (
	"time"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/location"
)

// =============================================================================
// Address generation DTOs
// =============================================================================

// CoordinateRangeRequest is the requested value range of one axis.
// A nil HandReachableSubset means no subset; an empty list marks nothing reachable.
type CoordinateRangeRequest struct {
	AxisCode            string   `json:"axis_code" binding:"required,max=2"`
	Start               string   `json:"start" binding:"required,max=10"`
	End                 string   `json:"end" binding:"required,max=10"`
	UsePrefix           bool     `json:"use_prefix"`
	HandReachableSubset []string `json:"hand_reachable_subset" binding:"omitempty,dive,max=10"`
}

// GenerateAddressesRequest is the wizard request shared by preview and commit
type GenerateAddressesRequest struct {
	DepositID             uuid.UUID                `json:"deposit_id" binding:"required"`
	PhysicalStructureSlug string                   `json:"physical_structure_slug" binding:"required,max=100"`
	CoordinateRanges      []CoordinateRangeRequest `json:"coordinate_ranges" binding:"dive"`
	Limit                 *int                     `json:"limit" binding:"omitempty,min=1"`
}

// RangeSpecs converts the request ranges to domain range specs
func (r GenerateAddressesRequest) RangeSpecs() []location.RangeSpec {
	specs := make([]location.RangeSpec, len(r.CoordinateRanges))
	for i, cr := range r.CoordinateRanges {
		specs[i] = location.RangeSpec{
			AxisCode:            location.AxisCode(cr.AxisCode),
			Start:               cr.Start,
			End:                 cr.End,
			UsePrefix:           cr.UsePrefix,
			HandReachableSubset: cr.HandReachableSubset,
		}
	}
	return specs
}

// CoordinateResponse is one axis value of an address
type CoordinateResponse struct {
	AxisCode string `json:"axis_code"`
	AxisName string `json:"axis_name"`
	Value    string `json:"value"`
}

// GeneratedAddressResponse is a previewed, not yet persisted address
type GeneratedAddressResponse struct {
	Sequence      int64                `json:"sequence"`
	Coordinates   []CoordinateResponse `json:"coordinates"`
	FullLabel     string               `json:"full_label"`
	ShortLabel    string               `json:"short_label"`
	HandReachable bool                 `json:"hand_reachable"`
}

// PreviewResponse is the capped sample of an address space
type PreviewResponse struct {
	TotalCount   int64                      `json:"total_count"`
	Sample       []GeneratedAddressResponse `json:"sample"`
	ExceedsLimit bool                       `json:"exceeds_limit"`
	MaxAddresses int64                      `json:"max_addresses"`
}

// CommitResponse reports how many addresses a commit created
type CommitResponse struct {
	TotalCreated int `json:"total_created"`
}

// AddressResponse is a persisted address
type AddressResponse struct {
	ID            uuid.UUID            `json:"id"`
	DepositID     uuid.UUID            `json:"deposit_id"`
	StructureSlug string               `json:"structure_slug"`
	GroupID       *uuid.UUID           `json:"group_id,omitempty"`
	Function      string               `json:"function,omitempty"`
	FullLabel     string               `json:"full_label"`
	ShortLabel    string               `json:"short_label"`
	Coordinates   []CoordinateResponse `json:"coordinates"`
	HandReachable bool                 `json:"hand_reachable"`
	Sequence      int64                `json:"sequence"`
	CreatedAt     time.Time            `json:"created_at"`
}

// AddressListFilter represents filter options for the address list
type AddressListFilter struct {
	DepositID     string `form:"deposit_id" binding:"required,uuid"`
	StructureSlug string `form:"structure_slug" binding:"required,max=100"`
	GroupID       string `form:"group_id" binding:"omitempty,uuid"`
	HandReachable *bool  `form:"hand_reachable"`
	Search        string `form:"search"`
	Page          int    `form:"page" binding:"omitempty,min=1"`
	PageSize      int    `form:"page_size" binding:"omitempty,min=1,max=500"`
}

// ToCoordinateResponses converts domain coordinates
func ToCoordinateResponses(coords []location.Coordinate) []CoordinateResponse {
	out := make([]CoordinateResponse, len(coords))
	for i, c := range coords {
		out[i] = CoordinateResponse{
			AxisCode: string(c.AxisCode),
			AxisName: c.AxisName,
			Value:    c.Value,
		}
	}
	return out
}

// ToPreviewResponse converts a domain preview result
func ToPreviewResponse(r *location.PreviewResult) PreviewResponse {
	sample := make([]GeneratedAddressResponse, len(r.Sample))
	for i, g := range r.Sample {
		sample[i] = GeneratedAddressResponse{
			Sequence:      g.Sequence,
			Coordinates:   ToCoordinateResponses(g.Coordinates),
			FullLabel:     g.FullLabel,
			ShortLabel:    g.ShortLabel,
			HandReachable: g.HandReachable,
		}
	}
	return PreviewResponse{
		TotalCount:   r.TotalCount,
		Sample:       sample,
		ExceedsLimit: r.ExceedsLimit,
		MaxAddresses: r.MaxAddresses,
	}
}

// ToAddressResponse converts a persisted address
func ToAddressResponse(a *location.Address) AddressResponse {
	resp := AddressResponse{
		ID:            a.ID,
		DepositID:     a.DepositID,
		StructureSlug: a.StructureSlug,
		GroupID:       a.GroupID,
		FullLabel:     a.FullLabel,
		ShortLabel:    a.ShortLabel,
		Coordinates:   ToCoordinateResponses(a.Coordinates),
		HandReachable: a.HandReachable,
		Sequence:      a.Sequence,
		CreatedAt:     a.CreatedAt,
	}
	if a.Function != nil {
		resp.Function = string(*a.Function)
	}
	return resp
}

// ToAddressResponses converts a slice of persisted addresses
func ToAddressResponses(addrs []location.Address) []AddressResponse {
	out := make([]AddressResponse, len(addrs))
	for i := range addrs {
		out[i] = ToAddressResponse(&addrs[i])
	}
	return out
}

// =============================================================================
// Address group DTOs
// =============================================================================

// AddressGroupBounds is the street/column/level/pallet rectangle of a group
type AddressGroupBounds struct {
	StreetFrom string `json:"street_from" binding:"required,max=10"`
	StreetTo   string `json:"street_to" binding:"required,max=10"`
	ColumnFrom string `json:"column_from" binding:"required,max=10"`
	ColumnTo   string `json:"column_to" binding:"required,max=10"`
	LevelFrom  string `json:"level_from" binding:"required,max=10"`
	LevelTo    string `json:"level_to" binding:"required,max=10"`
	PalletFrom string `json:"pallet_from" binding:"required,max=10"`
	PalletTo   string `json:"pallet_to" binding:"required,max=10"`
}

func (b AddressGroupBounds) toDomain() location.GroupBounds {
	return location.GroupBounds{
		StreetFrom: b.StreetFrom,
		StreetTo:   b.StreetTo,
		ColumnFrom: b.ColumnFrom,
		ColumnTo:   b.ColumnTo,
		LevelFrom:  b.LevelFrom,
		LevelTo:    b.LevelTo,
		PalletFrom: b.PalletFrom,
		PalletTo:   b.PalletTo,
	}
}

// CreateAddressGroupRequest represents a request to create an address group
type CreateAddressGroupRequest struct {
	Name                  string             `json:"name" binding:"required,min=1,max=100"`
	DepositID             uuid.UUID          `json:"deposit_id" binding:"required"`
	PhysicalStructureSlug string             `json:"physical_structure_slug" binding:"required,max=100"`
	Bounds                AddressGroupBounds `json:"bounds" binding:"required"`
	Function              string             `json:"function" binding:"required,oneof=storage picking buffer shipping"`
	HandReachable         bool               `json:"hand_reachable"`
	CreatedBy             *uuid.UUID         `json:"-"`
}

// UpdateAddressGroupRequest replaces the editable parts of a group
type UpdateAddressGroupRequest struct {
	Name          string             `json:"name" binding:"required,min=1,max=100"`
	Bounds        AddressGroupBounds `json:"bounds" binding:"required"`
	Function      string             `json:"function" binding:"required,oneof=storage picking buffer shipping"`
	HandReachable bool               `json:"hand_reachable"`
}

// AddressGroupResponse represents an address group in API responses
type AddressGroupResponse struct {
	ID                    uuid.UUID          `json:"id"`
	TenantID              uuid.UUID          `json:"tenant_id"`
	Name                  string             `json:"name"`
	DepositID             uuid.UUID          `json:"deposit_id"`
	PhysicalStructureSlug string             `json:"physical_structure_slug"`
	Bounds                AddressGroupBounds `json:"bounds"`
	Function              string             `json:"function"`
	HandReachable         bool               `json:"hand_reachable"`
	CreatedAt             time.Time          `json:"created_at"`
	UpdatedAt             time.Time          `json:"updated_at"`
	Version               int                `json:"version"`
}

// AddressGroupListFilter represents filter options for the group list
type AddressGroupListFilter struct {
	Search    string `form:"search"`
	DepositID string `form:"deposit_id" binding:"omitempty,uuid"`
	Function  string `form:"function" binding:"omitempty,oneof=storage picking buffer shipping"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToAddressGroupResponse converts a domain AddressGroup
func ToAddressGroupResponse(g *location.AddressGroup) AddressGroupResponse {
	return AddressGroupResponse{
		ID:                    g.ID,
		TenantID:              g.TenantID,
		Name:                  g.Name,
		DepositID:             g.DepositID,
		PhysicalStructureSlug: g.PhysicalStructureSlug,
		Bounds: AddressGroupBounds{
			StreetFrom: g.Bounds.StreetFrom,
			StreetTo:   g.Bounds.StreetTo,
			ColumnFrom: g.Bounds.ColumnFrom,
			ColumnTo:   g.Bounds.ColumnTo,
			LevelFrom:  g.Bounds.LevelFrom,
			LevelTo:    g.Bounds.LevelTo,
			PalletFrom: g.Bounds.PalletFrom,
			PalletTo:   g.Bounds.PalletTo,
		},
		Function:      string(g.Function),
		HandReachable: g.HandReachable,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
		Version:       g.Version,
	}
}

// ToAddressGroupResponses converts a slice of groups
func ToAddressGroupResponses(groups []location.AddressGroup) []AddressGroupResponse {
	out := make([]AddressGroupResponse, len(groups))
	for i := range groups {
		out[i] = ToAddressGroupResponse(&groups[i])
	}
	return out
}

// =============================================================================
// Physical structure DTOs
// =============================================================================

// AxisResponse is an active axis with its effective naming
type AxisResponse struct {
	Code          string `json:"code"`
	Kind          string `json:"kind"`
	Name          string `json:"name"`
	Abbrev        string `json:"abbrev"`
	DefaultName   string `json:"default_name"`
	DefaultAbbrev string `json:"default_abbrev"`
	Position      int    `json:"position"`
}

// StructureAxesResponse lists the active axes of a physical structure in composition order
type StructureAxesResponse struct {
	Slug string         `json:"slug"`
	Name string         `json:"name"`
	Axes []AxisResponse `json:"axes"`
}
