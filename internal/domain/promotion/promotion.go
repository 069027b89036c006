package promotion

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DiscountType represents how a promotion expresses its discount.
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
	DiscountTypeNone       DiscountType = "none"
)

var hundred = decimal.NewFromInt(100)

// Promotion is the aggregate root for discount offers.
type Promotion struct {
	id          uuid.UUID
	title       string
	description string
	percentage  *decimal.Decimal // 0-100
	fixedAmount *decimal.Decimal // currency units
	startDate   time.Time
	endDate     time.Time
	active      bool
	createdAt   time.Time
	updatedAt   time.Time
}

// NewPromotion creates an active promotion. Exactly one of percentage and fixedAmount must be set.
func NewPromotion(title, description string, percentage, fixedAmount *decimal.Decimal, startDate, endDate time.Time) (*Promotion, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("promotion title is required")
	}
	if (percentage == nil) == (fixedAmount == nil) {
		return nil, fmt.Errorf("exactly one of percentage or fixed amount must be set")
	}
	if percentage != nil && (percentage.LessThanOrEqual(decimal.Zero) || percentage.GreaterThan(hundred)) {
		return nil, fmt.Errorf("percentage must be in (0, 100]")
	}
	if fixedAmount != nil && fixedAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("fixed amount must be positive")
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("end date must be after start date")
	}

	now := time.Now().UTC()
	return &Promotion{
		id:          uuid.New(),
		title:       title,
		description: description,
		percentage:  percentage,
		fixedAmount: fixedAmount,
		startDate:   startDate,
		endDate:     endDate,
		active:      true,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds a Promotion from persistence. No validation is applied, so rows
// written by other tools (both or neither discount field set) load as-is.
func Reconstruct(id uuid.UUID, title, description string, percentage, fixedAmount *decimal.Decimal, startDate, endDate time.Time, active bool, createdAt, updatedAt time.Time) *Promotion {
	return &Promotion{
		id: id, title: title, description: description,
		percentage: percentage, fixedAmount: fixedAmount,
		startDate: startDate, endDate: endDate, active: active,
		createdAt: createdAt, updatedAt: updatedAt,
	}
}

// DiscountType reports which discount field is in effect. Percentage wins when both are set.
func (p *Promotion) DiscountType() DiscountType {
	switch {
	case p.percentage != nil:
		return DiscountTypePercentage
	case p.fixedAmount != nil:
		return DiscountTypeFixed
	default:
		return DiscountTypeNone
	}
}

// DiscountFor returns the exact discount this promotion grants on price, clamped to
// [0, price]. Callers round for presentation after comparing.
func (p *Promotion) DiscountFor(price decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch p.DiscountType() {
	case DiscountTypePercentage:
		discount = price.Mul(*p.percentage).Div(hundred)
	case DiscountTypeFixed:
		discount = *p.fixedAmount
	default:
		return decimal.Zero
	}

	if discount.IsNegative() {
		return decimal.Zero
	}
	if discount.GreaterThan(price) {
		return price
	}
	return discount
}

// ShouldExpire reports whether the promotion is still flagged active after its end date.
func (p *Promotion) ShouldExpire(now time.Time) bool {
	return p.active && p.endDate.Before(now)
}

// Getters.
func (p *Promotion) ID() uuid.UUID                  { return p.id }
func (p *Promotion) Title() string                  { return p.title }
func (p *Promotion) Description() string            { return p.description }
func (p *Promotion) Percentage() *decimal.Decimal   { return p.percentage }
func (p *Promotion) FixedAmount() *decimal.Decimal  { return p.fixedAmount }
func (p *Promotion) StartDate() time.Time           { return p.startDate }
func (p *Promotion) EndDate() time.Time             { return p.endDate }
func (p *Promotion) IsActive() bool                 { return p.active }
func (p *Promotion) CreatedAt() time.Time           { return p.createdAt }
func (p *Promotion) UpdatedAt() time.Time           { return p.updatedAt }
