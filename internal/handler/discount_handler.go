package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/application"
	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/response"
)

// DiscountHandler prices bookings at checkout.
type DiscountHandler struct {
	service *application.DiscountService
}

// NewDiscountHandler creates a new DiscountHandler.
func NewDiscountHandler(service *application.DiscountService) *DiscountHandler {
	return &DiscountHandler{service: service}
}

// RegisterRoutes registers checkout routes.
func (h *DiscountHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/checkout/quote", h.Quote)
}

// Quote handles POST /api/v1/checkout/quote.
func (h *DiscountHandler) Quote(c *gin.Context) {
	var req application.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Quote(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
