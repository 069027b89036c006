package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/domain/promotion"
)

//go:generate mockgen -destination=../mocks/mock_active_promotion_lister.go -package=mocks . ActivePromotionLister

// ActivePromotionLister reads the promotions that are currently active and inside their
// date window, in a stable order.
type ActivePromotionLister interface {
	ListActivePromotions(ctx context.Context) ([]*promotion.Promotion, error)
}

// AppliedPromotion is the public summary of the promotion chosen for a price.
type AppliedPromotion struct {
	ID          uuid.UUID
	Title       string
	Description string
	Percentage  *decimal.Decimal
	FixedAmount *decimal.Decimal
}

// DiscountCalculation is the outcome of selecting the best discount for a price.
type DiscountCalculation struct {
	OriginalAmount   decimal.Decimal
	DiscountAmount   decimal.Decimal
	FinalAmount      decimal.Decimal
	AppliedPromotion *AppliedPromotion
}

// DiscountService picks the single promotion that gives the largest discount. It holds no
// mutable state and is safe for concurrent use.
type DiscountService struct {
	promotions ActivePromotionLister
	logger     *zap.Logger
}

// NewDiscountService creates a new DiscountService.
func NewDiscountService(promotions ActivePromotionLister, logger *zap.Logger) *DiscountService {
	return &DiscountService{promotions: promotions, logger: logger}
}

// SelectBestDiscount returns the largest clamped discount any active promotion grants on
// price. Candidates are compared exactly and the winner is rounded to cents. Ties go to the
// promotion listed first. A failed read degrades to no discount.
func (s *DiscountService) SelectBestDiscount(ctx context.Context, price decimal.Decimal, bookingDate time.Time) DiscountCalculation {
	none := noDiscount(price)

	promotions, err := s.promotions.ListActivePromotions(ctx)
	if err != nil {
		s.logger.Warn("failed to load active promotions, applying no discount",
			zap.String("price", price.StringFixed(2)),
			zap.Time("booking_date", bookingDate),
			zap.Error(err),
		)
		return none
	}

	var best *promotion.Promotion
	bestDiscount := decimal.Zero
	for _, p := range promotions {
		if p == nil {
			continue
		}
		if d := p.DiscountFor(price); d.GreaterThan(bestDiscount) {
			best, bestDiscount = p, d
		}
	}

	if best == nil {
		return none
	}

	discount := bestDiscount.Round(2)
	if discount.GreaterThan(price) {
		discount = price
	}

	s.logger.Debug("promotion selected",
		zap.String("promotion_id", best.ID().String()),
		zap.String("discount", discount.StringFixed(2)),
		zap.Time("booking_date", bookingDate),
	)

	return DiscountCalculation{
		OriginalAmount: price,
		DiscountAmount: discount,
		FinalAmount:    price.Sub(discount),
		AppliedPromotion: &AppliedPromotion{
			ID:          best.ID(),
			Title:       best.Title(),
			Description: best.Description(),
			Percentage:  best.Percentage(),
			FixedAmount: best.FixedAmount(),
		},
	}
}

func noDiscount(price decimal.Decimal) DiscountCalculation {
	return DiscountCalculation{
		OriginalAmount: price,
		DiscountAmount: decimal.Zero,
		FinalAmount:    price,
	}
}

// QuoteRequest holds data to price a booking.
type QuoteRequest struct {
	Price       string `json:"price" binding:"required"`
	BookingDate string `json:"booking_date"`
}

// AppliedPromotionDTO is the API representation of an applied promotion.
type AppliedPromotionDTO struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Percentage  *string   `json:"percentage,omitempty"`
	FixedAmount *string   `json:"fixed_amount,omitempty"`
}

// QuoteDTO is the API response for a priced booking.
type QuoteDTO struct {
	OriginalAmount   string               `json:"original_amount"`
	DiscountAmount   string               `json:"discount_amount"`
	FinalAmount      string               `json:"final_amount"`
	AppliedPromotion *AppliedPromotionDTO `json:"applied_promotion"`
}

// Quote parses req and prices it with SelectBestDiscount.
func (s *DiscountService) Quote(ctx context.Context, req QuoteRequest) (*QuoteDTO, error) {
	price, err := parsePrice(req.Price)
	if err != nil {
		return nil, err
	}
	bookingDate, err := parseOptionalTime("booking_date", req.BookingDate)
	if err != nil {
		return nil, err
	}

	calc := s.SelectBestDiscount(ctx, price, bookingDate)
	return toQuoteDTO(calc), nil
}

func toQuoteDTO(c DiscountCalculation) *QuoteDTO {
	dto := &QuoteDTO{
		OriginalAmount: c.OriginalAmount.StringFixed(2),
		DiscountAmount: c.DiscountAmount.StringFixed(2),
		FinalAmount:    c.FinalAmount.StringFixed(2),
	}
	if a := c.AppliedPromotion; a != nil {
		dto.AppliedPromotion = &AppliedPromotionDTO{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			Percentage:  fixedString(a.Percentage),
			FixedAmount: fixedString(a.FixedAmount),
		}
	}
	return dto
}
