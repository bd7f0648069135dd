package location

import (
	"strings"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/shared"
)

// GroupFunction tags what the addresses of a group are used for
type GroupFunction string

const (
	GroupFunctionStorage  GroupFunction = "storage"
	GroupFunctionPicking  GroupFunction = "picking"
	GroupFunctionBuffer   GroupFunction = "buffer"
	GroupFunctionShipping GroupFunction = "shipping"
)

// IsValid reports whether the function is one of the known tags
func (f GroupFunction) IsValid() bool {
	switch f {
	case GroupFunctionStorage, GroupFunctionPicking, GroupFunctionBuffer, GroupFunctionShipping:
		return true
	}
	return false
}

// GroupBounds is the rectangular street/column/level/pallet range of a group
type GroupBounds struct {
	StreetFrom string
	StreetTo   string
	ColumnFrom string
	ColumnTo   string
	LevelFrom  string
	LevelTo    string
	PalletFrom string
	PalletTo   string
}

func (b GroupBounds) normalized() GroupBounds {
	trim := strings.TrimSpace
	return GroupBounds{
		StreetFrom: strings.ToUpper(trim(b.StreetFrom)),
		StreetTo:   strings.ToUpper(trim(b.StreetTo)),
		ColumnFrom: trim(b.ColumnFrom),
		ColumnTo:   trim(b.ColumnTo),
		LevelFrom:  trim(b.LevelFrom),
		LevelTo:    trim(b.LevelTo),
		PalletFrom: trim(b.PalletFrom),
		PalletTo:   trim(b.PalletTo),
	}
}

// AddressGroup is a stored generation template bound to a deposit and a
// physical structure. Generating from it never changes it.
type AddressGroup struct {
	shared.TenantAggregateRoot
	Name                  string
	DepositID             uuid.UUID
	PhysicalStructureSlug string
	Bounds                GroupBounds
	Function              GroupFunction
	HandReachable         bool
}

// NewAddressGroup creates a group after checking its bounds against the structure
func NewAddressGroup(
	tenantID uuid.UUID,
	name string,
	depositID uuid.UUID,
	structure *PhysicalStructure,
	bounds GroupBounds,
	function GroupFunction,
	handReachable bool,
) (*AddressGroup, error) {
	if err := validateGroupName(name); err != nil {
		return nil, err
	}
	if depositID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DEPOSIT", "Deposit ID cannot be empty")
	}
	if structure == nil {
		return nil, shared.NewDomainError("INVALID_STRUCTURE", "Physical structure is required")
	}
	if !function.IsValid() {
		return nil, shared.NewDomainError("INVALID_FUNCTION", "Unknown address group function")
	}

	group := &AddressGroup{
		TenantAggregateRoot:   shared.NewTenantAggregateRoot(tenantID),
		Name:                  strings.TrimSpace(name),
		DepositID:             depositID,
		PhysicalStructureSlug: structure.Slug,
		Bounds:                bounds.normalized(),
		Function:              function,
		HandReachable:         handReachable,
	}
	if err := group.Validate(structure); err != nil {
		return nil, err
	}
	return group, nil
}

// Update replaces the template's name, bounds and tags
func (g *AddressGroup) Update(name string, structure *PhysicalStructure, bounds GroupBounds, function GroupFunction, handReachable bool) error {
	if err := validateGroupName(name); err != nil {
		return err
	}
	if !function.IsValid() {
		return shared.NewDomainError("INVALID_FUNCTION", "Unknown address group function")
	}

	candidate := *g
	candidate.Name = strings.TrimSpace(name)
	candidate.Bounds = bounds.normalized()
	candidate.Function = function
	candidate.HandReachable = handReachable
	if err := candidate.Validate(structure); err != nil {
		return err
	}

	g.Name = candidate.Name
	g.Bounds = candidate.Bounds
	g.Function = candidate.Function
	g.HandReachable = candidate.HandReachable
	g.Touch()
	g.IncrementVersion()
	return nil
}

// Validate checks the bounds against the structure's axis kinds
func (g *AddressGroup) Validate(structure *PhysicalStructure) error {
	if structure == nil || structure.Slug != g.PhysicalStructureSlug {
		return shared.NewDomainError("INVALID_STRUCTURE", "Physical structure does not match the group")
	}
	axes, ranges, err := NewTemplateAdapter().Bind(g, structure)
	if err != nil {
		return err
	}
	active, err := ResolveAxes(axes)
	if err != nil {
		return err
	}
	_, err = Bind(active, ranges)
	return err
}

// Target returns where addresses generated from the group are committed
func (g *AddressGroup) Target() AddressTarget {
	id := g.ID
	function := g.Function
	return AddressTarget{
		TenantID:      g.TenantID,
		DepositID:     g.DepositID,
		StructureSlug: g.PhysicalStructureSlug,
		GroupID:       &id,
		Function:      &function,
	}
}

func validateGroupName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Address group name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Address group name cannot exceed 100 characters")
	}
	return nil
}

var _ shared.AggregateRoot = (*AddressGroup)(nil)
