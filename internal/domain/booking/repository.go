package booking

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -destination=../../mocks/mock_booking_repository.go -package=mocks -mock_names=Repository=MockBookingRepository . Repository

// Repository defines persistence operations for bookings.
type Repository interface {
	Save(ctx context.Context, b *Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	FindAll(ctx context.Context) ([]*Booking, error)
	Update(ctx context.Context, id uuid.UUID, patch Patch) error
}

// Patch lists the booking fields a partial update may change.
type Patch struct {
	// ClearPromotion sets the promotion reference to NULL.
	ClearPromotion bool
	DiscountAmount *decimal.Decimal
	TotalAmount    *decimal.Decimal
}
