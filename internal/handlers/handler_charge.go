package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
	"github.com/SscSPs/property_ledger/internal/dto"
	"github.com/SscSPs/property_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// chargeHandler handles HTTP requests related to charges and late fees.
type chargeHandler struct {
	chargeService  portssvc.ChargeSvcFacade
	lateFeeService portssvc.LateFeeAssessorSvc
}

func newChargeHandler(chargeService portssvc.ChargeSvcFacade, lateFeeService portssvc.LateFeeAssessorSvc) *chargeHandler {
	return &chargeHandler{
		chargeService:  chargeService,
		lateFeeService: lateFeeService,
	}
}

// RegisterChargeRoutes registers routes related to charges.
func RegisterChargeRoutes(rg *gin.RouterGroup, chargeService portssvc.ChargeSvcFacade, lateFeeService portssvc.LateFeeAssessorSvc) {
	h := newChargeHandler(chargeService, lateFeeService)

	leaseCharges := rg.Group("/leases/:leaseID/charges")
	{
		leaseCharges.POST("", h.createCharge)
		leaseCharges.GET("", h.listCharges)
	}

	charges := rg.Group("/charges/:chargeID")
	{
		charges.GET("", h.getCharge)
		charges.POST("/void", h.voidCharge)
		charges.POST("/late-fee", h.applyLateFee)
	}
}

// createCharge godoc
// @Summary Post a charge against a lease
// @Description Creates an open charge. The billing period defaults to the due date's month.
// @Tags charges
// @Accept  json
// @Produce  json
// @Param   leaseID path string true "Lease ID"
// @Param   charge body dto.CreateChargeRequest true "Charge details"
// @Success 201 {object} domain.Charge
// @Failure 400 {object} map[string]string "Invalid input or amount"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Lease not found"
// @Failure 500 {object} map[string]string "Failed to create charge"
// @Security BearerAuth
// @Router /leases/{leaseID}/charges [post]
func (h *chargeHandler) createCharge(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	leaseID := c.Param("leaseID")

	var req dto.CreateChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCharge", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	charge, err := h.chargeService.CreateCharge(c.Request.Context(), leaseID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create charge")
		return
	}
	c.JSON(http.StatusCreated, charge)
}

// listCharges godoc
// @Summary List a lease's charges
// @Description Lists charges ordered by due date then creation, with token-based pagination
// @Tags charges
// @Produce  json
// @Param   leaseID path string true "Lease ID"
// @Param   limit query int false "Page size (default 50, max 200)"
// @Param   nextToken query string false "Token from the previous page"
// @Param   status query []string false "Filter by status (open, partial, paid, void)"
// @Success 200 {object} dto.ListChargesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 404 {object} map[string]string "Lease not found"
// @Security BearerAuth
// @Router /leases/{leaseID}/charges [get]
func (h *chargeHandler) listCharges(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	leaseID := c.Param("leaseID")

	var params dto.ListChargesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListCharges", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.chargeService.ListChargesByLease(c.Request.Context(), leaseID, params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list charges")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getCharge godoc
// @Summary Get a charge by ID
// @Tags charges
// @Produce  json
// @Param   chargeID path string true "Charge ID"
// @Success 200 {object} domain.Charge
// @Failure 404 {object} map[string]string "Charge not found"
// @Security BearerAuth
// @Router /charges/{chargeID} [get]
func (h *chargeHandler) getCharge(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	chargeID := c.Param("chargeID")

	charge, err := h.chargeService.GetCharge(c.Request.Context(), chargeID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve charge")
		return
	}
	c.JSON(http.StatusOK, charge)
}

// voidCharge godoc
// @Summary Void a charge
// @Description Voids an open or partially paid charge. Amounts already paid stay recorded.
// @Tags charges
// @Accept  json
// @Produce  json
// @Param   chargeID path string true "Charge ID"
// @Param   void body dto.VoidChargeRequest true "Void reason"
// @Success 200 {object} domain.Charge
// @Failure 400 {object} map[string]string "Missing reason"
// @Failure 404 {object} map[string]string "Charge not found"
// @Failure 409 {object} map[string]string "Concurrent modification"
// @Failure 422 {object} map[string]string "Charge is already paid or void"
// @Security BearerAuth
// @Router /charges/{chargeID}/void [post]
func (h *chargeHandler) voidCharge(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	chargeID := c.Param("chargeID")

	var req dto.VoidChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for VoidCharge", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	charge, err := h.chargeService.VoidCharge(c.Request.Context(), chargeID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to void charge")
		return
	}
	c.JSON(http.StatusOK, charge)
}

// applyLateFee godoc
// @Summary Apply a late fee to an overdue charge
// @Description Posts a late-fee charge linked to the original. At most one fee is applied per charge.
// @Tags charges
// @Produce  json
// @Param   chargeID path string true "Charge ID"
// @Success 201 {object} domain.LateFeeResult
// @Failure 404 {object} map[string]string "Charge not found"
// @Failure 409 {object} map[string]string "Late fee already applied or concurrent modification"
// @Failure 422 {object} map[string]string "Charge not eligible"
// @Security BearerAuth
// @Router /charges/{chargeID}/late-fee [post]
func (h *chargeHandler) applyLateFee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	chargeID := c.Param("chargeID")

	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	result, err := h.lateFeeService.ApplyLateFee(c.Request.Context(), chargeID, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to apply late fee")
		return
	}
	c.JSON(http.StatusCreated, result)
}
