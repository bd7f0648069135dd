package location

import (
	"time"

	"github.com/google/uuid"
)

// Address is a committed storage location
type Address struct {
	ID            uuid.UUID
	TenantID      uuid.UUID
	DepositID     uuid.UUID
	StructureSlug string
	GroupID       *uuid.UUID
	Function      *GroupFunction
	FullLabel     string
	ShortLabel    string
	Coordinates   []Coordinate
	HandReachable bool
	Sequence      int64
	CreatedAt     time.Time
}

// AddressTarget identifies where a generated batch is committed
type AddressTarget struct {
	TenantID      uuid.UUID
	DepositID     uuid.UUID
	StructureSlug string
	GroupID       *uuid.UUID
	Function      *GroupFunction
}

// NewAddresses turns a generated batch into addresses ready to persist
func NewAddresses(target AddressTarget, generated []GeneratedAddress) []*Address {
	now := time.Now()
	out := make([]*Address, len(generated))
	for i, g := range generated {
		out[i] = &Address{
			ID:            uuid.New(),
			TenantID:      target.TenantID,
			DepositID:     target.DepositID,
			StructureSlug: target.StructureSlug,
			GroupID:       target.GroupID,
			Function:      target.Function,
			FullLabel:     g.FullLabel,
			ShortLabel:    g.ShortLabel,
			Coordinates:   g.Coordinates,
			HandReachable: g.HandReachable,
			Sequence:      g.Sequence,
			CreatedAt:     now,
		}
	}
	return out
}
