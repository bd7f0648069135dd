package location

import (
	"context"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/location"
)

// StructureService exposes the axis configuration of physical structures
// to the address wizard
type StructureService struct {
	structures location.StructureReader
}

// NewStructureService creates a new StructureService
func NewStructureService(structures location.StructureReader) *StructureService {
	return &StructureService{structures: structures}
}

// GetAxes returns the active axes of a structure in composition order
func (s *StructureService) GetAxes(ctx context.Context, tenantID uuid.UUID, slug string) (*StructureAxesResponse, error) {
	structure, err := s.structures.FindBySlug(ctx, tenantID, slug)
	if err != nil {
		return nil, err
	}

	active, err := structure.ActiveAxes()
	if err != nil {
		return nil, err
	}

	axes := make([]AxisResponse, len(active))
	for i, a := range active {
		pos, _ := location.CanonicalPosition(a.Code)
		axes[i] = AxisResponse{
			Code:          string(a.Code),
			Kind:          string(a.Kind),
			Name:          a.EffectiveName(),
			Abbrev:        a.EffectiveAbbrev(),
			DefaultName:   a.DefaultName,
			DefaultAbbrev: a.DefaultAbbrev,
			Position:      pos,
		}
	}

	return &StructureAxesResponse{
		Slug: structure.Slug,
		Name: structure.Name,
		Axes: axes,
	}, nil
}
