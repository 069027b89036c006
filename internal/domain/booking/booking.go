package booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ZeroDiscount is the exact currency-formatted zero written when a stale promotion is removed.
var ZeroDiscount = decimal.RequireFromString("0.00")

// Booking is the aggregate root for a purchase of a cleaning service at a point in time.
type Booking struct {
	id             uuid.UUID
	serviceID      uuid.UUID
	customerID     uuid.UUID
	scheduledAt    time.Time
	originalAmount *decimal.Decimal
	totalAmount    decimal.Decimal
	promotionID    *uuid.UUID
	discountAmount decimal.Decimal
	createdAt      time.Time
	updatedAt      time.Time
}

// NewBooking creates a booking from the amounts of a discount calculation.
func NewBooking(serviceID, customerID uuid.UUID, scheduledAt time.Time, originalAmount, discountAmount, totalAmount decimal.Decimal, promotionID *uuid.UUID) (*Booking, error) {
	if !originalAmount.IsPositive() {
		return nil, fmt.Errorf("original amount must be positive")
	}
	if discountAmount.IsNegative() || discountAmount.GreaterThan(originalAmount) {
		return nil, fmt.Errorf("discount amount must be within [0, original amount]")
	}
	if !originalAmount.Sub(discountAmount).Equal(totalAmount) {
		return nil, fmt.Errorf("total amount must equal original amount minus discount")
	}
	if promotionID == nil && !discountAmount.IsZero() {
		return nil, fmt.Errorf("discount requires a promotion")
	}

	now := time.Now().UTC()
	original := originalAmount
	return &Booking{
		id:             uuid.New(),
		serviceID:      serviceID,
		customerID:     customerID,
		scheduledAt:    scheduledAt,
		originalAmount: &original,
		totalAmount:    totalAmount,
		promotionID:    promotionID,
		discountAmount: discountAmount,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// Reconstruct rebuilds a Booking from persistence.
func Reconstruct(id, serviceID, customerID uuid.UUID, scheduledAt time.Time, originalAmount *decimal.Decimal, totalAmount decimal.Decimal, promotionID *uuid.UUID, discountAmount decimal.Decimal, createdAt, updatedAt time.Time) *Booking {
	return &Booking{
		id: id, serviceID: serviceID, customerID: customerID, scheduledAt: scheduledAt,
		originalAmount: originalAmount, totalAmount: totalAmount,
		promotionID: promotionID, discountAmount: discountAmount,
		createdAt: createdAt, updatedAt: updatedAt,
	}
}

// RestoredTotal is the pre-discount amount: the recorded original amount, or the current
// total when no original amount was stored.
func (b *Booking) RestoredTotal() decimal.Decimal {
	if b.originalAmount != nil {
		return *b.originalAmount
	}
	return b.totalAmount
}

// ClearPromotionPatch returns the update that detaches the booking from its promotion.
func (b *Booking) ClearPromotionPatch() Patch {
	discount := ZeroDiscount
	total := b.RestoredTotal()
	return Patch{
		ClearPromotion: true,
		DiscountAmount: &discount,
		TotalAmount:    &total,
	}
}

// Getters.
func (b *Booking) ID() uuid.UUID                    { return b.id }
func (b *Booking) ServiceID() uuid.UUID             { return b.serviceID }
func (b *Booking) CustomerID() uuid.UUID            { return b.customerID }
func (b *Booking) ScheduledAt() time.Time           { return b.scheduledAt }
func (b *Booking) OriginalAmount() *decimal.Decimal { return b.originalAmount }
func (b *Booking) TotalAmount() decimal.Decimal     { return b.totalAmount }
func (b *Booking) PromotionID() *uuid.UUID          { return b.promotionID }
func (b *Booking) DiscountAmount() decimal.Decimal  { return b.discountAmount }
func (b *Booking) CreatedAt() time.Time             { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time             { return b.updatedAt }
