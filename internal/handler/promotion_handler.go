package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/application"
	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/response"
)

// PromotionHandler handles HTTP requests for promotions.
type PromotionHandler struct {
	service *application.PromotionService
}

// NewPromotionHandler creates a new PromotionHandler.
func NewPromotionHandler(service *application.PromotionService) *PromotionHandler {
	return &PromotionHandler{service: service}
}

// RegisterRoutes registers all promotion routes.
func (h *PromotionHandler) RegisterRoutes(r *gin.RouterGroup) {
	promotions := r.Group("/promotions")
	{
		promotions.GET("/active", h.GetActivePromotions)
	}
}

// GetActivePromotions handles GET /api/v1/promotions/active.
func (h *PromotionHandler) GetActivePromotions(c *gin.Context) {
	result, err := h.service.GetActivePromotions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
