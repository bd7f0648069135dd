package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/location"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPhysicalStructureRepository reads physical structures and their axes
type GormPhysicalStructureRepository struct {
	db *gorm.DB
}

// NewGormPhysicalStructureRepository creates a new GormPhysicalStructureRepository
func NewGormPhysicalStructureRepository(db *gorm.DB) *GormPhysicalStructureRepository {
	return &GormPhysicalStructureRepository{db: db}
}

// FindBySlug finds a structure by slug within a tenant, axes included
func (r *GormPhysicalStructureRepository) FindBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*location.PhysicalStructure, error) {
	var model models.PhysicalStructureModel
	if err := r.db.WithContext(ctx).
		Preload("Axes").
		Where("tenant_id = ? AND slug = ?", tenantID, slug).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Ensure GormPhysicalStructureRepository implements StructureReader
var _ location.StructureReader = (*GormPhysicalStructureRepository)(nil)
