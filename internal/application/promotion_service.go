package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/domain/promotion"
)

// PromotionDTO is the API response representation of a promotion.
type PromotionDTO struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	DiscountType string    `json:"discount_type"`
	Percentage   *string   `json:"percentage,omitempty"`
	FixedAmount  *string   `json:"fixed_amount,omitempty"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Active       bool      `json:"active"`
}

// PromotionService handles read-side promotion use cases.
type PromotionService struct {
	promotions ActivePromotionLister
	logger     *zap.Logger
}

// NewPromotionService creates a new PromotionService.
func NewPromotionService(promotions ActivePromotionLister, logger *zap.Logger) *PromotionService {
	return &PromotionService{promotions: promotions, logger: logger}
}

// GetActivePromotions returns all promotions that are active and inside their date window.
func (s *PromotionService) GetActivePromotions(ctx context.Context) ([]*PromotionDTO, error) {
	promotions, err := s.promotions.ListActivePromotions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active promotions: %w", err)
	}

	dtos := make([]*PromotionDTO, 0, len(promotions))
	for _, p := range promotions {
		if p == nil {
			continue
		}
		dtos = append(dtos, toPromotionDTO(p))
	}
	return dtos, nil
}

func toPromotionDTO(p *promotion.Promotion) *PromotionDTO {
	return &PromotionDTO{
		ID:           p.ID(),
		Title:        p.Title(),
		Description:  p.Description(),
		DiscountType: string(p.DiscountType()),
		Percentage:   fixedString(p.Percentage()),
		FixedAmount:  fixedString(p.FixedAmount()),
		StartDate:    p.StartDate(),
		EndDate:      p.EndDate(),
		Active:       p.IsActive(),
	}
}
