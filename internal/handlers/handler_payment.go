package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
	"github.com/SscSPs/property_ledger/internal/dto"
	"github.com/SscSPs/property_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// paymentHandler handles HTTP requests related to tenant payments.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

func newPaymentHandler(paymentService portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: paymentService}
}

// RegisterPaymentRoutes registers routes related to payments.
func RegisterPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)

	leasePayments := rg.Group("/leases/:leaseID/payments")
	{
		leasePayments.POST("", h.recordPayment)
		leasePayments.GET("", h.listPayments)
	}
	rg.GET("/payments/:paymentID", h.getPayment)
}

// recordPayment godoc
// @Summary Record a tenant payment
// @Description Allocates the payment to the lease's outstanding charges, oldest due first. Any excess stays unapplied.
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   leaseID path string true "Lease ID"
// @Param   payment body dto.RecordPaymentRequest true "Payment details"
// @Success 201 {object} domain.Payment
// @Failure 400 {object} map[string]string "Invalid input, amount or method"
// @Failure 404 {object} map[string]string "Lease not found"
// @Failure 409 {object} map[string]string "Concurrent modification, retry"
// @Security BearerAuth
// @Router /leases/{leaseID}/payments [post]
func (h *paymentHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	leaseID := c.Param("leaseID")

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), leaseID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to record payment")
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// listPayments godoc
// @Summary List a lease's payments
// @Tags payments
// @Produce  json
// @Param   leaseID path string true "Lease ID"
// @Success 200 {object} dto.ListPaymentsResponse
// @Failure 404 {object} map[string]string "Lease not found"
// @Security BearerAuth
// @Router /leases/{leaseID}/payments [get]
func (h *paymentHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	leaseID := c.Param("leaseID")

	payments, err := h.paymentService.ListPaymentsByLease(c.Request.Context(), leaseID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list payments")
		return
	}
	c.JSON(http.StatusOK, dto.ListPaymentsResponse{Payments: payments})
}

// getPayment godoc
// @Summary Get a payment by ID
// @Tags payments
// @Produce  json
// @Param   paymentID path string true "Payment ID"
// @Success 200 {object} domain.Payment
// @Failure 404 {object} map[string]string "Payment not found"
// @Security BearerAuth
// @Router /payments/{paymentID} [get]
func (h *paymentHandler) getPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	payment, err := h.paymentService.GetPayment(c.Request.Context(), c.Param("paymentID"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve payment")
		return
	}
	c.JSON(http.StatusOK, payment)
}
