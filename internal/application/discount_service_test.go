package application_test

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

	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/application"
	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/domain"
	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/domain/promotion"
	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/mocks"
)

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func percentPromotion(title, pct string) *promotion.Promotion {
	p := money(pct)
	return activePromotion(title, &p, nil)
}

func fixedPromotion(title, amount string) *promotion.Promotion {
	a := money(amount)
	return activePromotion(title, nil, &a)
}

func activePromotion(title string, pct, fixed *decimal.Decimal) *promotion.Promotion {
	now := time.Now().UTC()
	return promotion.Reconstruct(uuid.New(), title, title+" offer", pct, fixed,
		now.Add(-24*time.Hour), now.Add(24*time.Hour), true, now, now)
}

func TestDiscountService_SelectBestDiscount(t *testing.T) {
	ctx := context.Background()
	bookingDate := time.Now().UTC()

	p10 := percentPromotion("ten", "10")
	p25a := percentPromotion("quarter", "25")
	p25b := percentPromotion("quarter again", "25")
	p5 := percentPromotion("five", "5")
	fixed150 := fixedPromotion("big fixed", "150")
	fixed20 := fixedPromotion("small fixed", "20")
	zero := activePromotion("nothing", nil, nil)
	fixed330 := fixedPromotion("three thirty off", "3.30")
	p33 := percentPromotion("third off", "33")

	tests := []struct {
		name         string
		price        string
		promotions   []*promotion.Promotion
		listErr      error
		wantDiscount string
		wantFinal    string
		wantApplied  *promotion.Promotion
	}{
		{
			name:         "best percentage wins and first tie is kept",
			price:        "100",
			promotions:   []*promotion.Promotion{p10, p25a, p25b, p5},
			wantDiscount: "25.00",
			wantFinal:    "75.00",
			wantApplied:  p25a,
		},
		{
			name:         "fixed amount is clamped to price",
			price:        "100",
			promotions:   []*promotion.Promotion{fixed150},
			wantDiscount: "100.00",
			wantFinal:    "0.00",
			wantApplied:  fixed150,
		},
		{
			name:         "fixed beats percentage when larger",
			price:        "120",
			promotions:   []*promotion.Promotion{p10, fixed20},
			wantDiscount: "20.00",
			wantFinal:    "100.00",
			wantApplied:  fixed20,
		},
		{
			name:         "exact percentage beats fixed that matches it after rounding",
			price:        "10.01",
			promotions:   []*promotion.Promotion{fixed330, p33},
			wantDiscount: "3.30",
			wantFinal:    "6.71",
			wantApplied:  p33,
		},
		{
			name:         "no active promotions",
			price:        "80",
			promotions:   nil,
			wantDiscount: "0.00",
			wantFinal:    "80.00",
		},
		{
			name:         "only zero discounts yields no promotion",
			price:        "80",
			promotions:   []*promotion.Promotion{zero, nil},
			wantDiscount: "0.00",
			wantFinal:    "80.00",
		},
		{
			name:         "read failure degrades to no discount",
			price:        "59.99",
			listErr:      domain.NewStoreError("list active promotions", domain.KindTransient, errors.New("connection refused")),
			wantDiscount: "0.00",
			wantFinal:    "59.99",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			lister := mocks.NewMockActivePromotionLister(ctrl)
			service := application.NewDiscountService(lister, zap.NewNop())

			lister.EXPECT().ListActivePromotions(ctx).Return(tt.promotions, tt.listErr)

			calc := service.SelectBestDiscount(ctx, money(tt.price), bookingDate)

			assert.True(t, calc.OriginalAmount.Equal(money(tt.price)))
			assert.Equal(t, tt.wantDiscount, calc.DiscountAmount.StringFixed(2))
			assert.Equal(t, tt.wantFinal, calc.FinalAmount.StringFixed(2))
			if tt.wantApplied == nil {
				assert.Nil(t, calc.AppliedPromotion)
				return
			}
			require.NotNil(t, calc.AppliedPromotion)
			assert.Equal(t, tt.wantApplied.ID(), calc.AppliedPromotion.ID)
			assert.Equal(t, tt.wantApplied.Title(), calc.AppliedPromotion.Title)
		})
	}
}

func TestDiscountService_Quote(t *testing.T) {
	ctx := context.Background()

	t.Run("renders amounts with two decimals", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		lister := mocks.NewMockActivePromotionLister(ctrl)
		service := application.NewDiscountService(lister, zap.NewNop())
		p := percentPromotion("spring clean", "15")

		lister.EXPECT().ListActivePromotions(ctx).Return([]*promotion.Promotion{p}, nil)

		quote, err := service.Quote(ctx, application.QuoteRequest{Price: "200", BookingDate: "2026-05-01T09:00:00Z"})

		require.NoError(t, err)
		assert.Equal(t, "200.00", quote.OriginalAmount)
		assert.Equal(t, "30.00", quote.DiscountAmount)
		assert.Equal(t, "170.00", quote.FinalAmount)
		require.NotNil(t, quote.AppliedPromotion)
		require.NotNil(t, quote.AppliedPromotion.Percentage)
		assert.Equal(t, "15.00", *quote.AppliedPromotion.Percentage)
		assert.Nil(t, quote.AppliedPromotion.FixedAmount)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		lister := mocks.NewMockActivePromotionLister(ctrl)
		service := application.NewDiscountService(lister, zap.NewNop())

		for _, req := range []application.QuoteRequest{
			{Price: "abc"},
			{Price: "-5"},
			{Price: "0"},
			{Price: "10", BookingDate: "tomorrow"},
		} {
			_, err := service.Quote(ctx, req)
			assert.ErrorIs(t, err, domain.ErrValidation, "request %+v", req)
		}
	})
}
