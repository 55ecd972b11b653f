package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
	"github.com/SscSPs/property_ledger/internal/dto"
	"github.com/SscSPs/property_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// mortgageHandler handles HTTP requests related to mortgage servicing and amortization.
type mortgageHandler struct {
	mortgageService portssvc.MortgageSvcFacade
}

func newMortgageHandler(mortgageService portssvc.MortgageSvcFacade) *mortgageHandler {
	return &mortgageHandler{mortgageService: mortgageService}
}

// RegisterMortgageRoutes registers routes related to mortgages.
func RegisterMortgageRoutes(rg *gin.RouterGroup, mortgageService portssvc.MortgageSvcFacade) {
	h := newMortgageHandler(mortgageService)

	mortgages := rg.Group("/mortgages")
	{
		mortgages.POST("", h.createMortgage)
		mortgages.GET("/:mortgageID", h.getMortgage)
		mortgages.POST("/:mortgageID/payments", h.recordMortgagePayment)
		mortgages.GET("/:mortgageID/payments", h.listMortgagePayments)
		mortgages.GET("/:mortgageID/schedule", h.getSchedule)
	}
	rg.POST("/amortization/schedule", h.computeSchedule)
}

// createMortgage godoc
// @Summary Create a mortgage
// @Description The monthly payment is derived from amount, rate and term unless supplied
// @Tags mortgages
// @Accept  json
// @Produce  json
// @Param   mortgage body dto.CreateMortgageRequest true "Mortgage details"
// @Success 201 {object} domain.Mortgage
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /mortgages [post]
func (h *mortgageHandler) createMortgage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateMortgageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateMortgage", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	mortgage, err := h.mortgageService.CreateMortgage(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create mortgage")
		return
	}
	c.JSON(http.StatusCreated, mortgage)
}

// getMortgage godoc
// @Summary Get a mortgage by ID
// @Tags mortgages
// @Produce  json
// @Param   mortgageID path string true "Mortgage ID"
// @Success 200 {object} domain.Mortgage
// @Failure 404 {object} map[string]string "Mortgage not found"
// @Security BearerAuth
// @Router /mortgages/{mortgageID} [get]
func (h *mortgageHandler) getMortgage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	mortgage, err := h.mortgageService.GetMortgage(c.Request.Context(), c.Param("mortgageID"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve mortgage")
		return
	}
	c.JSON(http.StatusOK, mortgage)
}

// recordMortgagePayment godoc
// @Summary Record a mortgage payment
// @Tags mortgages
// @Accept  json
// @Produce  json
// @Param   mortgageID path string true "Mortgage ID"
// @Param   payment body dto.RecordMortgagePaymentRequest true "Payment details"
// @Success 201 {object} domain.MortgagePayment
// @Failure 400 {object} map[string]string "Invalid amounts"
// @Failure 404 {object} map[string]string "Mortgage not found"
// @Failure 409 {object} map[string]string "Concurrent modification"
// @Failure 422 {object} map[string]string "Mortgage is not active"
// @Security BearerAuth
// @Router /mortgages/{mortgageID}/payments [post]
func (h *mortgageHandler) recordMortgagePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	mortgageID := c.Param("mortgageID")

	var req dto.RecordMortgagePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordMortgagePayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	payment, err := h.mortgageService.RecordMortgagePayment(c.Request.Context(), mortgageID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to record mortgage payment")
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// listMortgagePayments godoc
// @Summary List a mortgage's payments, oldest first
// @Tags mortgages
// @Produce  json
// @Param   mortgageID path string true "Mortgage ID"
// @Success 200 {object} dto.ListMortgagePaymentsResponse
// @Failure 404 {object} map[string]string "Mortgage not found"
// @Security BearerAuth
// @Router /mortgages/{mortgageID}/payments [get]
func (h *mortgageHandler) listMortgagePayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	payments, err := h.mortgageService.ListMortgagePayments(c.Request.Context(), c.Param("mortgageID"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to list mortgage payments")
		return
	}
	c.JSON(http.StatusOK, dto.ListMortgagePaymentsResponse{Payments: payments})
}

// getSchedule godoc
// @Summary Get a mortgage's amortization schedule
// @Tags mortgages
// @Produce  json
// @Param   mortgageID path string true "Mortgage ID"
// @Param   remaining query bool false "Only the periods left from the current balance"
// @Success 200 {object} dto.AmortizationScheduleResponse
// @Failure 404 {object} map[string]string "Mortgage not found"
// @Security BearerAuth
// @Router /mortgages/{mortgageID}/schedule [get]
func (h *mortgageHandler) getSchedule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	remaining := false
	if raw := c.Query("remaining"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: remaining must be a boolean"})
			return
		}
		remaining = parsed
	}

	entries, err := h.mortgageService.GetAmortizationSchedule(c.Request.Context(), c.Param("mortgageID"), remaining)
	if err != nil {
		respondWithError(c, logger, err, "Failed to compute amortization schedule")
		return
	}
	c.JSON(http.StatusOK, dto.ToAmortizationScheduleResponse(entries))
}

// computeSchedule godoc
// @Summary Compute an amortization schedule for arbitrary terms
// @Tags mortgages
// @Accept  json
// @Produce  json
// @Param   request body dto.AmortizationScheduleRequest true "Loan terms"
// @Success 200 {object} dto.AmortizationScheduleResponse
// @Failure 400 {object} map[string]string "Invalid terms"
// @Security BearerAuth
// @Router /amortization/schedule [post]
func (h *mortgageHandler) computeSchedule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AmortizationScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ComputeSchedule", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entries, err := h.mortgageService.ComputeSchedule(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to compute amortization schedule")
		return
	}
	c.JSON(http.StatusOK, dto.ToAmortizationScheduleResponse(entries))
}
