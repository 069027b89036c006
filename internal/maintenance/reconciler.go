package maintenance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/domain/promotion"
)

// MaintenanceResult reports what one maintenance run changed.
type MaintenanceResult struct {
	ExpiredPromotions int `json:"expired_promotions"`
	RepairedBookings  int `json:"repaired_bookings"`
}

// Reconciler expires promotions past their end date and detaches bookings from promotions
// that are gone or inactive. Both operations are idempotent and never retry on their own.
type Reconciler struct {
	store  Store
	now    func() time.Time
	logger *zap.Logger
}

// NewReconciler creates a new Reconciler.
func NewReconciler(store Store, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		store:  store,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger,
	}
}

// ExpirePromotions deactivates every active promotion whose end date has passed and returns
// how many were changed.
func (r *Reconciler) ExpirePromotions(ctx context.Context) (int, error) {
	promotions, err := r.store.ListAllPromotions(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list promotions: %w", err)
	}

	now := r.now()
	expired := 0
	for _, p := range promotions {
		if !p.ShouldExpire(now) {
			continue
		}
		if err := r.store.UpdatePromotion(ctx, p.ID(), promotion.Deactivate()); err != nil {
			return expired, fmt.Errorf("failed to deactivate promotion %s: %w", p.ID(), err)
		}
		expired++
		r.logger.Info("promotion expired",
			zap.String("promotion_id", p.ID().String()),
			zap.String("title", p.Title()),
			zap.Time("end_date", p.EndDate()),
		)
	}

	return expired, nil
}

// RepairBookings clears the promotion from every booking that references a missing or
// inactive promotion, resets its discount to 0.00 and its total to the original amount.
func (r *Reconciler) RepairBookings(ctx context.Context) (int, error) {
	bookings, err := r.store.ListAllBookings(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	promotions, err := r.store.ListAllPromotions(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list promotions: %w", err)
	}

	byID := make(map[uuid.UUID]*promotion.Promotion, len(promotions))
	for _, p := range promotions {
		byID[p.ID()] = p
	}

	repaired := 0
	for _, b := range bookings {
		promoID := b.PromotionID()
		if promoID == nil {
			continue
		}
		if p, ok := byID[*promoID]; ok && p.IsActive() {
			continue
		}

		if err := r.store.UpdateBooking(ctx, b.ID(), b.ClearPromotionPatch()); err != nil {
			return repaired, fmt.Errorf("failed to repair booking %s: %w", b.ID(), err)
		}
		repaired++
		r.logger.Info("stale promotion removed from booking",
			zap.String("booking_id", b.ID().String()),
			zap.String("promotion_id", promoID.String()),
			zap.String("total_amount", b.RestoredTotal().StringFixed(2)),
		)
	}

	return repaired, nil
}

// RunMaintenance expires promotions and then repairs bookings, so a promotion that expires
// in this run is already treated as stale by the repair.
func (r *Reconciler) RunMaintenance(ctx context.Context) (MaintenanceResult, error) {
	var result MaintenanceResult

	expired, err := r.ExpirePromotions(ctx)
	result.ExpiredPromotions = expired
	if err != nil {
		return result, err
	}

	repaired, err := r.RepairBookings(ctx)
	result.RepairedBookings = repaired
	if err != nil {
		return result, err
	}

	return result, nil
}
