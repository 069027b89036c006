package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/domain"
	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/domain/promotion"
)

// PromotionModel is the GORM model for the promotions table.
type PromotionModel struct {
	ID          uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Title       string              `gorm:"type:varchar(255);not null"`
	Description string              `gorm:"type:text"`
	Percentage  decimal.NullDecimal `gorm:"type:numeric(5,2)"`
	FixedAmount decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	StartDate   time.Time           `gorm:"not null"`
	EndDate     time.Time           `gorm:"not null;index"`
	Active      bool                `gorm:"not null;default:true;index"`
	CreatedAt   time.Time           `gorm:"not null"`
	UpdatedAt   time.Time           `gorm:"not null"`
}

// TableName sets the table name.
func (PromotionModel) TableName() string { return "promotions" }

// GormPromotionRepository implements promotion.Repository using GORM.
type GormPromotionRepository struct {
	db *gorm.DB
}

// NewGormPromotionRepository creates a new GormPromotionRepository.
func NewGormPromotionRepository(db *gorm.DB) *GormPromotionRepository {
	return &GormPromotionRepository{db: db}
}

// Save persists a new promotion.
func (r *GormPromotionRepository) Save(ctx context.Context, p *promotion.Promotion) error {
	model := toPromotionModel(p)
	return wrapError("save promotion", r.db.WithContext(ctx).Create(&model).Error)
}

// FindByID returns a promotion by ID.
func (r *GormPromotionRepository) FindByID(ctx context.Context, id uuid.UUID) (*promotion.Promotion, error) {
	var model PromotionModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("promotion", id.String())
		}
		return nil, wrapError("find promotion", err)
	}
	return toPromotionDomain(&model), nil
}

// FindActive returns promotions flagged active whose date window contains now, oldest first.
func (r *GormPromotionRepository) FindActive(ctx context.Context) ([]*promotion.Promotion, error) {
	var models []PromotionModel
	now := time.Now().UTC()
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Where("start_date <= ? AND end_date >= ?", now, now).
		Order("created_at ASC, id ASC").
		Find(&models).Error; err != nil {
		return nil, wrapError("list active promotions", err)
	}
	return toPromotionDomains(models), nil
}

// FindAll returns every promotion regardless of state.
func (r *GormPromotionRepository) FindAll(ctx context.Context) ([]*promotion.Promotion, error) {
	var models []PromotionModel
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&models).Error; err != nil {
		return nil, wrapError("list promotions", err)
	}
	return toPromotionDomains(models), nil
}

// Update applies patch to the promotion with the given ID.
func (r *GormPromotionRepository) Update(ctx context.Context, id uuid.UUID, patch promotion.Patch) error {
	updates := map[string]interface{}{"updated_at": time.Now().UTC()}
	if patch.Active != nil {
		updates["active"] = *patch.Active
	}

	result := r.db.WithContext(ctx).Model(&PromotionModel{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return wrapError("update promotion", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("promotion", id.String())
	}
	return nil
}

func toPromotionModel(p *promotion.Promotion) PromotionModel {
	return PromotionModel{
		ID:          p.ID(),
		Title:       p.Title(),
		Description: p.Description(),
		Percentage:  toNullDecimal(p.Percentage()),
		FixedAmount: toNullDecimal(p.FixedAmount()),
		StartDate:   p.StartDate(),
		EndDate:     p.EndDate(),
		Active:      p.IsActive(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

func toPromotionDomain(m *PromotionModel) *promotion.Promotion {
	return promotion.Reconstruct(
		m.ID, m.Title, m.Description,
		fromNullDecimal(m.Percentage), fromNullDecimal(m.FixedAmount),
		m.StartDate, m.EndDate, m.Active,
		m.CreatedAt, m.UpdatedAt,
	)
}

func toPromotionDomains(models []PromotionModel) []*promotion.Promotion {
	promotions := make([]*promotion.Promotion, len(models))
	for i := range models {
		promotions[i] = toPromotionDomain(&models[i])
	}
	return promotions
}

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

func fromNullDecimal(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := n.Decimal
	return &d
}
