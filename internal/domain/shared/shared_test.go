package shared

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewTenantAggregateRoot(t *testing.T) {
	tenantID := uuid.New()
	root := NewTenantAggregateRoot(tenantID)

	assert.NotEqual(t, uuid.Nil, root.ID)
	assert.Equal(t, tenantID, root.TenantID)
	assert.Equal(t, 1, root.GetVersion())
	assert.Nil(t, root.CreatedBy)

	userID := uuid.New()
	root.SetCreatedBy(userID)
	root.IncrementVersion()
	assert.Equal(t, &userID, root.CreatedBy)
	assert.Equal(t, 2, root.GetVersion())
}

func TestBaseEntity_Touch(t *testing.T) {
	entity := NewBaseEntity()
	created := entity.GetCreatedAt()

	entity.Touch()

	assert.Equal(t, created, entity.GetCreatedAt())
	assert.False(t, entity.GetUpdatedAt().Before(created))
}

func TestFilter_Offset(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		pageSize int
		want     int
	}{
		{"first page", 1, 20, 0},
		{"zero page", 0, 20, 0},
		{"third page", 3, 50, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := DefaultFilter()
			f.Page, f.PageSize = tt.page, tt.pageSize
			assert.Equal(t, tt.want, f.Offset())
		})
	}
}

func TestDomainError(t *testing.T) {
	err := NewDomainError("NOT_FOUND", "Resource not found")
	assert.Equal(t, "Resource not found", err.Error())
	assert.ErrorIs(t, error(ErrNotFound), ErrNotFound)
}
