package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/domain/booking"
	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/domain/promotion"
)

// Store combines the promotion and booking repositories behind the capabilities the
// discount selector and the maintenance reconciler read and write through.
type Store struct {
	Promotions promotion.Repository
	Bookings   booking.Repository
}

// NewStore creates a Store backed by the GORM repositories over db.
func NewStore(db *gorm.DB) *Store {
	return NewStoreWith(NewGormPromotionRepository(db), NewGormBookingRepository(db))
}

// NewStoreWith creates a Store over the given repositories.
func NewStoreWith(promotions promotion.Repository, bookings booking.Repository) *Store {
	return &Store{Promotions: promotions, Bookings: bookings}
}

// ListActivePromotions returns active promotions inside their date window.
func (s *Store) ListActivePromotions(ctx context.Context) ([]*promotion.Promotion, error) {
	return s.Promotions.FindActive(ctx)
}

// ListAllPromotions returns every promotion.
func (s *Store) ListAllPromotions(ctx context.Context) ([]*promotion.Promotion, error) {
	return s.Promotions.FindAll(ctx)
}

// ListAllBookings returns every booking.
func (s *Store) ListAllBookings(ctx context.Context) ([]*booking.Booking, error) {
	return s.Bookings.FindAll(ctx)
}

// UpdatePromotion applies a partial update to one promotion.
func (s *Store) UpdatePromotion(ctx context.Context, id uuid.UUID, patch promotion.Patch) error {
	return s.Promotions.Update(ctx, id, patch)
}

// UpdateBooking applies a partial update to one booking.
func (s *Store) UpdateBooking(ctx context.Context, id uuid.UUID, patch booking.Patch) error {
	return s.Bookings.Update(ctx, id, patch)
}
