package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/location"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAddressGroupRepository implements AddressGroupRepository using GORM
type GormAddressGroupRepository struct {
	db *gorm.DB
}

// NewGormAddressGroupRepository creates a new GormAddressGroupRepository
func NewGormAddressGroupRepository(db *gorm.DB) *GormAddressGroupRepository {
	return &GormAddressGroupRepository{db: db}
}

// FindByIDForTenant finds an address group by ID within a tenant
func (r *GormAddressGroupRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*location.AddressGroup, error) {
	var model models.AddressGroupModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists address groups for a tenant
func (r *GormAddressGroupRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]location.AddressGroup, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.AddressGroupModel{}).Where("tenant_id = ?", tenantID), filter)
	query = query.Order(orderClause(filter.OrderBy, filter.OrderDir, AddressGroupSortFields, "created_at"))
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var rows []models.AddressGroupModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	groups := make([]location.AddressGroup, len(rows))
	for i := range rows {
		groups[i] = *rows[i].ToDomain()
	}
	return groups, nil
}

// CountForTenant counts address groups for a tenant
func (r *GormAddressGroupRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.AddressGroupModel{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByName checks, case-insensitively, whether a group name is taken in a deposit
func (r *GormAddressGroupRepository) ExistsByName(ctx context.Context, tenantID, depositID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&models.AddressGroupModel{}).
		Where("tenant_id = ? AND deposit_id = ? AND LOWER(name) = ?", tenantID, depositID, strings.ToLower(strings.TrimSpace(name)))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save inserts a new group (version 1) or updates an existing one. An update
// only applies over the previous version; otherwise it is a concurrency conflict.
func (r *GormAddressGroupRepository) Save(ctx context.Context, group *location.AddressGroup) error {
	model := models.AddressGroupModelFromDomain(group)
	db := r.db.WithContext(ctx)

	var err error
	if group.Version <= 1 {
		err = db.Create(model).Error
	} else {
		result := db.Model(model).
			Where("tenant_id = ? AND version = ?", group.TenantID, group.Version-1).
			Select("*").
			Updates(model)
		err = result.Error
		if err == nil && result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.NewDomainError("ALREADY_EXISTS", "Address group with this name already exists in the deposit")
	}
	return err
}

// DeleteForTenant deletes an address group within a tenant
func (r *GormAddressGroupRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AddressGroupModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormAddressGroupRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	for key, value := range filter.Filters {
		switch key {
		case "deposit_id":
			query = query.Where("deposit_id = ?", value)
		case "function":
			query = query.Where("function = ?", value)
		case "physical_structure_slug":
			query = query.Where("physical_structure_slug = ?", value)
		}
	}
	return query
}

// Ensure GormAddressGroupRepository implements AddressGroupRepository
var _ location.AddressGroupRepository = (*GormAddressGroupRepository)(nil)
