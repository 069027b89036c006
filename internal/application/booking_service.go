package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/domain"
	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/domain/booking"
)

// CreateBookingRequest holds data to book a service.
type CreateBookingRequest struct {
	ServiceID   string `json:"service_id" binding:"required"`
	CustomerID  string `json:"customer_id" binding:"required"`
	ScheduledAt string `json:"scheduled_at" binding:"required"`
	Price       string `json:"price" binding:"required"`
}

// BookingDTO is the API response representation of a booking.
type BookingDTO struct {
	ID             uuid.UUID  `json:"id"`
	ServiceID      uuid.UUID  `json:"service_id"`
	CustomerID     uuid.UUID  `json:"customer_id"`
	ScheduledAt    time.Time  `json:"scheduled_at"`
	OriginalAmount *string    `json:"original_amount,omitempty"`
	DiscountAmount string     `json:"discount_amount"`
	TotalAmount    string     `json:"total_amount"`
	PromotionID    *uuid.UUID `json:"promotion_id"`
	CreatedAt      time.Time  `json:"created_at"`
}

// BookingService handles booking use cases.
type BookingService struct {
	repo      booking.Repository
	discounts *DiscountService
	logger    *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(repo booking.Repository, discounts *DiscountService, logger *zap.Logger) *BookingService {
	return &BookingService{repo: repo, discounts: discounts, logger: logger}
}

// CreateBooking prices the booking with the best active promotion and stores it.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*BookingDTO, error) {
	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, domain.NewValidationError("invalid service_id")
	}
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, domain.NewValidationError("invalid customer_id")
	}
	scheduledAt, err := parseOptionalTime("scheduled_at", req.ScheduledAt)
	if err != nil {
		return nil, err
	}
	price, err := parsePrice(req.Price)
	if err != nil {
		return nil, err
	}

	calc := s.discounts.SelectBestDiscount(ctx, price, scheduledAt)

	var promotionID *uuid.UUID
	if calc.AppliedPromotion != nil {
		id := calc.AppliedPromotion.ID
		promotionID = &id
	}

	b, err := booking.NewBooking(serviceID, customerID, scheduledAt,
		calc.OriginalAmount, calc.DiscountAmount, calc.FinalAmount, promotionID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	s.logger.Info("booking created",
		zap.String("booking_id", b.ID().String()),
		zap.String("total_amount", b.TotalAmount().StringFixed(2)),
		zap.Bool("promotion_applied", promotionID != nil),
	)
	return toBookingDTO(b), nil
}

// GetBooking returns a booking by ID.
func (s *BookingService) GetBooking(ctx context.Context, id uuid.UUID) (*BookingDTO, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toBookingDTO(b), nil
}

func toBookingDTO(b *booking.Booking) *BookingDTO {
	return &BookingDTO{
		ID:             b.ID(),
		ServiceID:      b.ServiceID(),
		CustomerID:     b.CustomerID(),
		ScheduledAt:    b.ScheduledAt(),
		OriginalAmount: fixedString(b.OriginalAmount()),
		DiscountAmount: b.DiscountAmount().StringFixed(2),
		TotalAmount:    b.TotalAmount().StringFixed(2),
		PromotionID:    b.PromotionID(),
		CreatedAt:      b.CreatedAt(),
	}
}
