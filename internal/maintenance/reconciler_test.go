package maintenance_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/domain"
	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/domain/booking"
	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/domain/promotion"
	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/maintenance"
	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/mocks"
)

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newPromotion(active bool, endOffset time.Duration) *promotion.Promotion {
	now := time.Now().UTC()
	pct := money("10")
	return promotion.Reconstruct(uuid.New(), "Window wash", "", &pct, nil,
		now.Add(-30*24*time.Hour), now.Add(endOffset), active, now, now)
}

func newBooking(promoID *uuid.UUID, original *decimal.Decimal, total, discount string) *booking.Booking {
	now := time.Now().UTC()
	return booking.Reconstruct(uuid.New(), uuid.New(), uuid.New(), now, original,
		money(total), promoID, money(discount), now, now)
}

// memoryStore applies patches in place so repeated runs observe earlier writes.
type memoryStore struct {
	promotions []*promotion.Promotion
	bookings   []*booking.Booking
	writes     int
}

func (m *memoryStore) ListAllPromotions(context.Context) ([]*promotion.Promotion, error) {
	return append([]*promotion.Promotion(nil), m.promotions...), nil
}

func (m *memoryStore) ListAllBookings(context.Context) ([]*booking.Booking, error) {
	return append([]*booking.Booking(nil), m.bookings...), nil
}

func (m *memoryStore) UpdatePromotion(_ context.Context, id uuid.UUID, patch promotion.Patch) error {
	for i, p := range m.promotions {
		if p.ID() != id {
			continue
		}
		active := p.IsActive()
		if patch.Active != nil {
			active = *patch.Active
		}
		m.promotions[i] = promotion.Reconstruct(p.ID(), p.Title(), p.Description(), p.Percentage(), p.FixedAmount(),
			p.StartDate(), p.EndDate(), active, p.CreatedAt(), time.Now().UTC())
		m.writes++
		return nil
	}
	return domain.NewNotFoundError("Promotion", id.String())
}

func (m *memoryStore) UpdateBooking(_ context.Context, id uuid.UUID, patch booking.Patch) error {
	for i, b := range m.bookings {
		if b.ID() != id {
			continue
		}
		promoID, discount, total := b.PromotionID(), b.DiscountAmount(), b.TotalAmount()
		if patch.ClearPromotion {
			promoID = nil
		}
		if patch.DiscountAmount != nil {
			discount = *patch.DiscountAmount
		}
		if patch.TotalAmount != nil {
			total = *patch.TotalAmount
		}
		m.bookings[i] = booking.Reconstruct(b.ID(), b.ServiceID(), b.CustomerID(), b.ScheduledAt(), b.OriginalAmount(),
			total, promoID, discount, b.CreatedAt(), time.Now().UTC())
		m.writes++
		return nil
	}
	return domain.NewNotFoundError("Booking", id.String())
}

func TestExpirePromotions_DeactivatesOnlyEndedActivePromotions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockStore(ctrl)
	reconciler := maintenance.NewReconciler(store, zap.NewNop())
	ctx := context.Background()

	ended := newPromotion(true, -time.Hour)
	running := newPromotion(true, time.Hour)
	alreadyOff := newPromotion(false, -time.Hour)

	store.EXPECT().ListAllPromotions(ctx).Return([]*promotion.Promotion{ended, running, alreadyOff}, nil)
	store.EXPECT().UpdatePromotion(ctx, ended.ID(), promotion.Deactivate()).Return(nil).Times(1)

	expired, err := reconciler.ExpirePromotions(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, expired)
}

func TestExpirePromotions_IsIdempotent(t *testing.T) {
	store := &memoryStore{promotions: []*promotion.Promotion{
		newPromotion(true, -time.Hour),
		newPromotion(true, -24*time.Hour),
		newPromotion(true, time.Hour),
	}}
	reconciler := maintenance.NewReconciler(store, zap.NewNop())

	first, err := reconciler.ExpirePromotions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, first)

	states := make([]bool, len(store.promotions))
	for i, p := range store.promotions {
		states[i] = p.IsActive()
	}

	second, err := reconciler.ExpirePromotions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second)
	for i, p := range store.promotions {
		assert.Equal(t, states[i], p.IsActive())
	}
	assert.Equal(t, []bool{false, false, true}, states)
}

func TestExpirePromotions_ReturnsPartialCountOnUpdateFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockStore(ctrl)
	reconciler := maintenance.NewReconciler(store, zap.NewNop())
	ctx := context.Background()

	first := newPromotion(true, -time.Hour)
	second := newPromotion(true, -time.Hour)
	storeErr := domain.NewStoreError("update promotion", domain.KindTransient, errors.New("i/o timeout"))

	store.EXPECT().ListAllPromotions(ctx).Return([]*promotion.Promotion{first, second}, nil)
	gomock.InOrder(
		store.EXPECT().UpdatePromotion(ctx, first.ID(), gomock.Any()).Return(nil),
		store.EXPECT().UpdatePromotion(ctx, second.ID(), gomock.Any()).Return(storeErr),
	)

	expired, err := reconciler.ExpirePromotions(ctx)

	require.Error(t, err)
	assert.Equal(t, 1, expired)
	assert.True(t, maintenance.IsTransientError(err))
}

func TestRepairBookings_ClearsStalePromotions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockStore(ctrl)
	reconciler := maintenance.NewReconciler(store, zap.NewNop())
	ctx := context.Background()

	active := newPromotion(true, time.Hour)
	inactive := newPromotion(false, time.Hour)
	missingID := uuid.New()
	activeID, inactiveID := active.ID(), inactive.ID()
	original := money("120.00")

	onActive := newBooking(&activeID, &original, "108.00", "12.00")
	onInactive := newBooking(&inactiveID, &original, "108.00", "12.00")
	onMissing := newBooking(&missingID, nil, "95.50", "4.50")
	noPromotion := newBooking(nil, &original, "120.00", "0")

	store.EXPECT().ListAllBookings(ctx).Return([]*booking.Booking{onActive, onInactive, onMissing, noPromotion}, nil)
	store.EXPECT().ListAllPromotions(ctx).Return([]*promotion.Promotion{active, inactive}, nil)

	patches := map[uuid.UUID]booking.Patch{}
	store.EXPECT().UpdateBooking(ctx, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id uuid.UUID, patch booking.Patch) error {
			patches[id] = patch
			return nil
		}).Times(2)

	repaired, err := reconciler.RepairBookings(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, repaired)

	require.Contains(t, patches, onInactive.ID())
	p := patches[onInactive.ID()]
	assert.True(t, p.ClearPromotion)
	assert.Equal(t, "0.00", p.DiscountAmount.StringFixed(2))
	assert.True(t, p.TotalAmount.Equal(original))

	require.Contains(t, patches, onMissing.ID())
	p = patches[onMissing.ID()]
	assert.True(t, p.ClearPromotion)
	assert.True(t, p.TotalAmount.Equal(money("95.50")))
}

func TestRepairBookings_IsIdempotent(t *testing.T) {
	inactive := newPromotion(false, -time.Hour)
	inactiveID := inactive.ID()
	original := money("80.00")
	store := &memoryStore{
		promotions: []*promotion.Promotion{inactive},
		bookings:   []*booking.Booking{newBooking(&inactiveID, &original, "60.00", "20.00")},
	}
	reconciler := maintenance.NewReconciler(store, zap.NewNop())

	repaired, err := reconciler.RepairBookings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repaired)

	b := store.bookings[0]
	assert.Nil(t, b.PromotionID())
	assert.True(t, b.DiscountAmount().Equal(booking.ZeroDiscount))
	assert.True(t, b.TotalAmount().Equal(original))

	writes := store.writes
	repaired, err = reconciler.RepairBookings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, repaired)
	assert.Equal(t, writes, store.writes)
}

func TestRunMaintenance_RepairSeesPromotionsExpiredInSameRun(t *testing.T) {
	ending := newPromotion(true, -time.Minute)
	endingID := ending.ID()
	original := money("150.00")
	store := &memoryStore{
		promotions: []*promotion.Promotion{ending},
		bookings:   []*booking.Booking{newBooking(&endingID, &original, "135.00", "15.00")},
	}
	reconciler := maintenance.NewReconciler(store, zap.NewNop())

	result, err := reconciler.RunMaintenance(context.Background())

	require.NoError(t, err)
	assert.Equal(t, maintenance.MaintenanceResult{ExpiredPromotions: 1, RepairedBookings: 1}, result)
	assert.Nil(t, store.bookings[0].PromotionID())
	assert.True(t, store.bookings[0].TotalAmount().Equal(original))
}

func TestRunMaintenance_KeepsExpireResultWhenRepairFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockStore(ctrl)
	reconciler := maintenance.NewReconciler(store, zap.NewNop())
	ctx := context.Background()

	ended := newPromotion(true, -time.Hour)
	listErr := errors.New("connection reset by peer")

	gomock.InOrder(
		store.EXPECT().ListAllPromotions(ctx).Return([]*promotion.Promotion{ended}, nil),
		store.EXPECT().UpdatePromotion(ctx, ended.ID(), promotion.Deactivate()).Return(nil),
		store.EXPECT().ListAllBookings(ctx).Return(nil, listErr),
	)

	result, err := reconciler.RunMaintenance(ctx)

	require.ErrorIs(t, err, listErr)
	assert.Equal(t, 1, result.ExpiredPromotions)
	assert.Equal(t, 0, result.RepairedBookings)
}
