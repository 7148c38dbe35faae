package handler

import (
	billingapp "github.com/rentbase/backend/internal/application/billing"
	"github.com/gin-gonic/gin"
)

// LoyaltyHandler handles loyalty tier API endpoints
type LoyaltyHandler struct {
	BaseHandler
	loyaltyService *billingapp.LoyaltyService
}

// NewLoyaltyHandler creates a new LoyaltyHandler
func NewLoyaltyHandler(loyaltyService *billingapp.LoyaltyService) *LoyaltyHandler {
	return &LoyaltyHandler{
		loyaltyService: loyaltyService,
	}
}

// RegisterRoutes registers loyalty routes on the given router group
func (h *LoyaltyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	loyalty := rg.Group("/loyalty")
	{
		loyalty.GET("/status", h.GetStatus)
	}
}

// GetStatus returns the tenant's loyalty tier at their active lease's
// property, with progress toward the next tier
func (h *LoyaltyHandler) GetStatus(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.loyaltyService.GetStatus(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
