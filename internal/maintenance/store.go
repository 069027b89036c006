package maintenance

import (
	"context"

	"github.com/google/uuid"

	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/domain/booking"
	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/domain/promotion"
)

//go:generate mockgen -destination=../mocks/mock_store.go -package=mocks . Store

// Store is the persistence the reconciler reads and repairs. Each call is expected to be
// atomic on its own; no transaction spans several calls.
type Store interface {
	ListAllPromotions(ctx context.Context) ([]*promotion.Promotion, error)
	ListAllBookings(ctx context.Context) ([]*booking.Booking, error)
	UpdatePromotion(ctx context.Context, id uuid.UUID, patch promotion.Patch) error
	UpdateBooking(ctx context.Context, id uuid.UUID, patch booking.Patch) error
}
