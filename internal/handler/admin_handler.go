package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/auth"
	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/maintenance"
	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/middleware"
	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/response"
)

// MaintenanceController is the part of the scheduler exposed to operators.
type MaintenanceController interface {
	TriggerNow(ctx context.Context, trigger string) (maintenance.MaintenanceResult, error)
	Status() maintenance.Status
}

// AdminMaintenanceHandler handles admin HTTP requests for promotion maintenance.
type AdminMaintenanceHandler struct {
	scheduler MaintenanceController
}

// NewAdminMaintenanceHandler creates a new AdminMaintenanceHandler.
func NewAdminMaintenanceHandler(scheduler MaintenanceController) *AdminMaintenanceHandler {
	return &AdminMaintenanceHandler{scheduler: scheduler}
}

// RegisterRoutes registers admin maintenance routes.
func (h *AdminMaintenanceHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	adminRole := middleware.RequireRole(auth.RoleAdmin)

	admin := r.Group("/admin/maintenance")
	admin.Use(authMW, adminRole)
	{
		admin.POST("/run", h.RunMaintenance)
		admin.GET("/status", h.Status)
	}
}

// RunMaintenance handles POST /api/v1/admin/maintenance/run.
func (h *AdminMaintenanceHandler) RunMaintenance(c *gin.Context) {
	result, err := h.scheduler.TriggerNow(c.Request.Context(), maintenance.TriggerManual)
	if errors.Is(err, maintenance.ErrCycleInProgress) {
		response.Conflict(c, err.Error())
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Status handles GET /api/v1/admin/maintenance/status.
func (h *AdminMaintenanceHandler) Status(c *gin.Context) {
	response.Success(c, h.scheduler.Status())
}
