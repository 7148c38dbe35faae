package handler

import (
	"github.com/gin-gonic/gin"
	billingapp "github.com/rentbase/backend/internal/application/billing"
	"github.com/rentbase/backend/internal/interfaces/http/middleware"
)

// PaymentHandler handles rent payment API endpoints
type PaymentHandler struct {
	BaseHandler
	ledgerService   *billingapp.RentLedgerService
	checkoutService *billingapp.CheckoutService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(ledgerService *billingapp.RentLedgerService, checkoutService *billingapp.CheckoutService) *PaymentHandler {
	return &PaymentHandler{
		ledgerService:   ledgerService,
		checkoutService: checkoutService,
	}
}

// RegisterRoutes registers payment routes on the given router group
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	{
		payments.GET("/outstanding", h.GetOutstanding)
		payments.GET("/last-paid", h.GetLastPaid)
		payments.POST("/intent", h.CreateIntent)
		payments.POST("/confirm", h.ConfirmSettlement)
	}
}

// GetOutstanding returns the authenticated tenant's unpaid rent, priced
// under their current loyalty discount. Materializes any months the ledger
// has not billed yet.
func (h *PaymentHandler) GetOutstanding(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.ledgerService.GetOutstanding(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetLastPaid returns the most recent settled payment's dates on the
// tenant's active lease. Dates are null when nothing has been paid.
func (h *PaymentHandler) GetLastPaid(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.ledgerService.GetLastPaidDate(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// CreateIntent opens a hosted checkout session covering every outstanding
// month on the tenant's active lease
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.checkoutService.CreateIntent(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// ConfirmSettlementRequest carries the checkout session to confirm
type ConfirmSettlementRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

// ConfirmSettlement settles the payments stamped with a paid checkout
// session and recomputes the tenant's loyalty tier
func (h *PaymentHandler) ConfirmSettlement(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ConfirmSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.checkoutService.ConfirmSettlement(c.Request.Context(), tenantID, req.SessionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
