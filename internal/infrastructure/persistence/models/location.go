package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/location"
)

// AddressModel is the persistence model for a committed Address.
// Labels are unique per tenant, deposit and structure.
type AddressModel struct {
	ID            uuid.UUID             `gorm:"type:uuid;primaryKey"`
	TenantID      uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_address_label,priority:1"`
	DepositID     uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_address_label,priority:2"`
	StructureSlug string                `gorm:"type:varchar(100);not null;uniqueIndex:idx_address_label,priority:3"`
	FullLabel     string                `gorm:"type:varchar(255);not null;uniqueIndex:idx_address_label,priority:4"`
	ShortLabel    string                `gorm:"type:varchar(100);not null"`
	GroupID       *uuid.UUID            `gorm:"type:uuid;index"`
	Function      *string               `gorm:"type:varchar(20)"`
	Coordinates   []location.Coordinate `gorm:"type:jsonb;serializer:json;not null"`
	HandReachable bool                  `gorm:"not null"`
	Sequence      int64                 `gorm:"not null"`
	CreatedAt     time.Time             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AddressModel) TableName() string {
	return "addresses"
}

// ToDomain converts the persistence model to a domain Address
func (m *AddressModel) ToDomain() *location.Address {
	a := &location.Address{
		ID:            m.ID,
		TenantID:      m.TenantID,
		DepositID:     m.DepositID,
		StructureSlug: m.StructureSlug,
		GroupID:       m.GroupID,
		FullLabel:     m.FullLabel,
		ShortLabel:    m.ShortLabel,
		Coordinates:   m.Coordinates,
		HandReachable: m.HandReachable,
		Sequence:      m.Sequence,
		CreatedAt:     m.CreatedAt,
	}
	if m.Function != nil {
		fn := location.GroupFunction(*m.Function)
		a.Function = &fn
	}
	return a
}

// AddressModelFromDomain creates a new persistence model from a domain Address
func AddressModelFromDomain(a *location.Address) *AddressModel {
	m := &AddressModel{
		ID:            a.ID,
		TenantID:      a.TenantID,
		DepositID:     a.DepositID,
		StructureSlug: a.StructureSlug,
		GroupID:       a.GroupID,
		FullLabel:     a.FullLabel,
		ShortLabel:    a.ShortLabel,
		Coordinates:   a.Coordinates,
		HandReachable: a.HandReachable,
		Sequence:      a.Sequence,
		CreatedAt:     a.CreatedAt,
	}
	if a.Function != nil {
		fn := string(*a.Function)
		m.Function = &fn
	}
	return m
}

// AddressGroupModel is the persistence model for the AddressGroup aggregate
type AddressGroupModel struct {
	TenantAggregateModel
	Name                  string    `gorm:"type:varchar(100);not null"`
	DepositID             uuid.UUID `gorm:"type:uuid;not null;index"`
	PhysicalStructureSlug string    `gorm:"type:varchar(100);not null"`
	StreetFrom            string    `gorm:"type:varchar(10);not null"`
	StreetTo              string    `gorm:"type:varchar(10);not null"`
	ColumnFrom            string    `gorm:"type:varchar(10);not null"`
	ColumnTo              string    `gorm:"type:varchar(10);not null"`
	LevelFrom             string    `gorm:"type:varchar(10);not null"`
	LevelTo               string    `gorm:"type:varchar(10);not null"`
	PalletFrom            string    `gorm:"type:varchar(10);not null"`
	PalletTo              string    `gorm:"type:varchar(10);not null"`
	Function              string    `gorm:"type:varchar(20);not null"`
	HandReachable         bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (AddressGroupModel) TableName() string {
	return "address_groups"
}

// ToDomain converts the persistence model to a domain AddressGroup
func (m *AddressGroupModel) ToDomain() *location.AddressGroup {
	g := &location.AddressGroup{
		Name:                  m.Name,
		DepositID:             m.DepositID,
		PhysicalStructureSlug: m.PhysicalStructureSlug,
		Bounds: location.GroupBounds{
			StreetFrom: m.StreetFrom,
			StreetTo:   m.StreetTo,
			ColumnFrom: m.ColumnFrom,
			ColumnTo:   m.ColumnTo,
			LevelFrom:  m.LevelFrom,
			LevelTo:    m.LevelTo,
			PalletFrom: m.PalletFrom,
			PalletTo:   m.PalletTo,
		},
		Function:      location.GroupFunction(m.Function),
		HandReachable: m.HandReachable,
	}
	m.PopulateTenantAggregateRoot(&g.TenantAggregateRoot)
	return g
}

// AddressGroupModelFromDomain creates a new persistence model from a domain AddressGroup
func AddressGroupModelFromDomain(g *location.AddressGroup) *AddressGroupModel {
	m := &AddressGroupModel{
		Name:                  g.Name,
		DepositID:             g.DepositID,
		PhysicalStructureSlug: g.PhysicalStructureSlug,
		StreetFrom:            g.Bounds.StreetFrom,
		StreetTo:              g.Bounds.StreetTo,
		ColumnFrom:            g.Bounds.ColumnFrom,
		ColumnTo:              g.Bounds.ColumnTo,
		LevelFrom:             g.Bounds.LevelFrom,
		LevelTo:               g.Bounds.LevelTo,
		PalletFrom:            g.Bounds.PalletFrom,
		PalletTo:              g.Bounds.PalletTo,
		Function:              string(g.Function),
		HandReachable:         g.HandReachable,
	}
	m.FromDomainTenantAggregateRoot(g.TenantAggregateRoot)
	return m
}

// PhysicalStructureModel is the persistence model of a physical structure.
// Structures are maintained elsewhere; this service only reads them.
type PhysicalStructureModel struct {
	BaseModel
	TenantID uuid.UUID                    `gorm:"type:uuid;not null;uniqueIndex:idx_structure_tenant_slug,priority:1"`
	Slug     string                       `gorm:"type:varchar(100);not null;uniqueIndex:idx_structure_tenant_slug,priority:2"`
	Name     string                       `gorm:"type:varchar(200);not null"`
	Axes     []PhysicalStructureAxisModel `gorm:"foreignKey:StructureID"`
}

// TableName returns the table name for GORM
func (PhysicalStructureModel) TableName() string {
	return "physical_structures"
}

// PhysicalStructureAxisModel stores one axis of a structure. Default names
// and abbreviations come from the canonical axis table, not from storage.
type PhysicalStructureAxisModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	StructureID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_structure_axis,priority:1"`
	Code         string    `gorm:"type:varchar(2);not null;uniqueIndex:idx_structure_axis,priority:2"`
	Kind         string    `gorm:"type:varchar(20);not null"`
	CustomName   *string   `gorm:"type:varchar(100)"`
	CustomAbbrev *string   `gorm:"type:varchar(10)"`
	Active       bool      `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PhysicalStructureAxisModel) TableName() string {
	return "physical_structure_axes"
}

// ToDomain converts the axis row to an AxisDefinition. An unknown code is
// kept as is so axis resolution can report it.
func (m *PhysicalStructureAxisModel) ToDomain() location.AxisDefinition {
	code := location.AxisCode(m.Code)
	def, ok := location.DefaultAxis(code)
	if !ok {
		def = location.AxisDefinition{Code: code}
	}
	if m.Kind != "" {
		def.Kind = location.AxisKind(m.Kind)
	}
	def.CustomName = m.CustomName
	def.CustomAbbrev = m.CustomAbbrev
	def.Active = m.Active
	return def
}

// ToDomain converts the persistence model to a domain PhysicalStructure
func (m *PhysicalStructureModel) ToDomain() *location.PhysicalStructure {
	axes := make([]location.AxisDefinition, len(m.Axes))
	for i := range m.Axes {
		axes[i] = m.Axes[i].ToDomain()
	}
	return &location.PhysicalStructure{
		ID:       m.ID,
		TenantID: m.TenantID,
		Slug:     m.Slug,
		Name:     m.Name,
		Axes:     axes,
	}
}
