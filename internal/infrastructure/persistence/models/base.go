package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/shared"
)

// BaseModel holds the identity and timestamp columns shared by every table
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TenantAggregateModel maps shared.TenantAggregateRoot. Version backs
// optimistic locking on updates.
type TenantAggregateModel struct {
	BaseModel
	Version   int        `gorm:"not null;default:1"`
	TenantID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedBy *uuid.UUID `gorm:"type:uuid"`
}

// FromDomainTenantAggregateRoot copies the aggregate bookkeeping into the model
func (m *TenantAggregateModel) FromDomainTenantAggregateRoot(t shared.TenantAggregateRoot) {
	m.ID = t.ID
	m.CreatedAt = t.CreatedAt
	m.UpdatedAt = t.UpdatedAt
	m.Version = t.Version
	m.TenantID = t.TenantID
	m.CreatedBy = t.CreatedBy
}

// PopulateTenantAggregateRoot copies the model bookkeeping back into the aggregate
func (m *TenantAggregateModel) PopulateTenantAggregateRoot(t *shared.TenantAggregateRoot) {
	t.ID = m.ID
	t.CreatedAt = m.CreatedAt
	t.UpdatedAt = m.UpdatedAt
	t.Version = m.Version
	t.TenantID = m.TenantID
	t.CreatedBy = m.CreatedBy
}
