package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/domain"
	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/domain/booking"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID             uuid.UUID           `gorm:"type:uuid;primaryKey"`
	ServiceID      uuid.UUID           `gorm:"type:uuid;not null;index"`
	CustomerID     uuid.UUID           `gorm:"type:uuid;not null;index"`
	ScheduledAt    time.Time           `gorm:"not null"`
	OriginalAmount decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	TotalAmount    decimal.Decimal     `gorm:"type:numeric(10,2);not null"`
	PromotionID    *uuid.UUID          `gorm:"type:uuid;index"`
	DiscountAmount decimal.Decimal     `gorm:"type:numeric(10,2);not null;default:0"`
	CreatedAt      time.Time           `gorm:"not null"`
	UpdatedAt      time.Time           `gorm:"not null"`
}

// TableName sets the table name.
func (BookingModel) TableName() string { return "bookings" }

// GormBookingRepository implements booking.Repository using GORM.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, b *booking.Booking) error {
	model := toBookingModel(b)
	return wrapError("save booking", r.db.WithContext(ctx).Create(&model).Error)
}

// FindByID returns a booking by ID.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("booking", id.String())
		}
		return nil, wrapError("find booking", err)
	}
	return toBookingDomain(&model), nil
}

// FindAll returns every booking.
func (r *GormBookingRepository) FindAll(ctx context.Context) ([]*booking.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&models).Error; err != nil {
		return nil, wrapError("list bookings", err)
	}

	bookings := make([]*booking.Booking, len(models))
	for i := range models {
		bookings[i] = toBookingDomain(&models[i])
	}
	return bookings, nil
}

// Update applies patch to the booking with the given ID.
func (r *GormBookingRepository) Update(ctx context.Context, id uuid.UUID, patch booking.Patch) error {
	updates := map[string]interface{}{"updated_at": time.Now().UTC()}
	if patch.ClearPromotion {
		updates["promotion_id"] = nil
	}
	if patch.DiscountAmount != nil {
		updates["discount_amount"] = *patch.DiscountAmount
	}
	if patch.TotalAmount != nil {
		updates["total_amount"] = *patch.TotalAmount
	}

	result := r.db.WithContext(ctx).Model(&BookingModel{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return wrapError("update booking", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("booking", id.String())
	}
	return nil
}

func toBookingModel(b *booking.Booking) BookingModel {
	return BookingModel{
		ID:             b.ID(),
		ServiceID:      b.ServiceID(),
		CustomerID:     b.CustomerID(),
		ScheduledAt:    b.ScheduledAt(),
		OriginalAmount: toNullDecimal(b.OriginalAmount()),
		TotalAmount:    b.TotalAmount(),
		PromotionID:    b.PromotionID(),
		DiscountAmount: b.DiscountAmount(),
		CreatedAt:      b.CreatedAt(),
		UpdatedAt:      b.UpdatedAt(),
	}
}

func toBookingDomain(m *BookingModel) *booking.Booking {
	return booking.Reconstruct(
		m.ID, m.ServiceID, m.CustomerID, m.ScheduledAt,
		fromNullDecimal(m.OriginalAmount), m.TotalAmount,
		m.PromotionID, m.DiscountAmount,
		m.CreatedAt, m.UpdatedAt,
	)
}
