package persistence

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/location"
	"github.com/wms/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// DefaultInsertBatchSize is the number of rows per INSERT statement
const DefaultInsertBatchSize = 500

// GormAddressRepository implements AddressRepository using GORM
type GormAddressRepository struct {
	db        *gorm.DB
	batchSize int
}

// NewGormAddressRepository creates a new GormAddressRepository.
// batchSize bounds rows per INSERT and labels per lookup.
func NewGormAddressRepository(db *gorm.DB, batchSize int) *GormAddressRepository {
	if batchSize <= 0 {
		batchSize = DefaultInsertBatchSize
	}
	return &GormAddressRepository{db: db, batchSize: batchSize}
}

// addressScope is the uniqueness scope of a full label
type addressScope struct {
	tenantID      uuid.UUID
	depositID     uuid.UUID
	structureSlug string
}

// BulkCreate inserts the batch in one transaction. Labels already taken in
// their scope reject the whole batch with *location.DuplicateLabelError.
func (r *GormAddressRepository) BulkCreate(ctx context.Context, addresses []*location.Address) (int, error) {
	if len(addresses) == 0 {
		return 0, nil
	}

	rows := make([]*models.AddressModel, len(addresses))
	for i, a := range addresses {
		rows[i] = models.AddressModelFromDomain(a)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := r.existingLabels(tx, addresses)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return &location.DuplicateLabelError{Labels: existing}
		}
		return tx.CreateInBatches(rows, r.batchSize).Error
	})
	if err == nil {
		return len(rows), nil
	}

	// A concurrent commit can claim labels between the lookup and the insert.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		labels, lookupErr := r.existingLabels(r.db.WithContext(ctx), addresses)
		if lookupErr != nil {
			return 0, errors.Join(err, lookupErr)
		}
		return 0, &location.DuplicateLabelError{Labels: labels}
	}
	return 0, err
}

// existingLabels returns the sorted labels of the batch that are already stored
func (r *GormAddressRepository) existingLabels(db *gorm.DB, addresses []*location.Address) ([]string, error) {
	byScope := make(map[addressScope][]string)
	for _, a := range addresses {
		key := addressScope{a.TenantID, a.DepositID, a.StructureSlug}
		byScope[key] = append(byScope[key], a.FullLabel)
	}

	var found []string
	for scope, labels := range byScope {
		for chunk := range slices.Chunk(labels, r.batchSize) {
			var taken []string
			if err := db.Model(&models.AddressModel{}).
				Where("tenant_id = ? AND deposit_id = ? AND structure_slug = ?",
					scope.tenantID, scope.depositID, scope.structureSlug).
				Where("full_label IN ?", chunk).
				Pluck("full_label", &taken).Error; err != nil {
				return nil, err
			}
			found = append(found, taken...)
		}
	}
	slices.Sort(found)
	return found, nil
}

// FindAll lists addresses of a deposit and structure
func (r *GormAddressRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter location.AddressFilter) ([]location.Address, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.AddressModel{}), tenantID, filter)
	query = query.Order(orderClause(filter.OrderBy, filter.OrderDir, AddressSortFields, "sequence"))
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var rows []models.AddressModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]location.Address, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Count counts addresses matching the filter
func (r *GormAddressRepository) Count(ctx context.Context, tenantID uuid.UUID, filter location.AddressFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.AddressModel{}), tenantID, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormAddressRepository) applyFilter(query *gorm.DB, tenantID uuid.UUID, filter location.AddressFilter) *gorm.DB {
	query = query.Where("tenant_id = ? AND deposit_id = ? AND structure_slug = ?",
		tenantID, filter.DepositID, filter.StructureSlug)

	if filter.GroupID != nil {
		query = query.Where("group_id = ?", *filter.GroupID)
	}
	if filter.HandReachable != nil {
		query = query.Where("hand_reachable = ?", *filter.HandReachable)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("(LOWER(full_label) LIKE ? OR LOWER(short_label) LIKE ?)", pattern, pattern)
	}
	return query
}

// Ensure GormAddressRepository implements AddressRepository
var _ location.AddressRepository = (*GormAddressRepository)(nil)
