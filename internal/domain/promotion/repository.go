package promotion

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=../../mocks/mock_promotion_repository.go -package=mocks -mock_names=Repository=MockPromotionRepository . Repository

// Repository defines persistence operations for promotions.
type Repository interface {
	Save(ctx context.Context, p *Promotion) error
	FindByID(ctx context.Context, id uuid.UUID) (*Promotion, error)
	// FindActive returns promotions flagged active whose date window contains now, in a
	// stable order.
	FindActive(ctx context.Context) ([]*Promotion, error)
	FindAll(ctx context.Context) ([]*Promotion, error)
	Update(ctx context.Context, id uuid.UUID, patch Patch) error
}

// Patch lists the promotion fields a partial update may change. Nil fields are left alone.
type Patch struct {
	Active *bool
}

// Deactivate returns a Patch that flips the active flag off.
func Deactivate() Patch {
	inactive := false
	return Patch{Active: &inactive}
}
