package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
	"github.com/SscSPs/property_ledger/internal/dto"
	"github.com/SscSPs/property_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// lateFeeSettingsHandler manages the late-fee policy of landlord entities.
type lateFeeSettingsHandler struct {
	policyService portssvc.LateFeePolicySvc
}

// RegisterLateFeeSettingsRoutes registers the late-fee policy routes.
func RegisterLateFeeSettingsRoutes(rg *gin.RouterGroup, policyService portssvc.LateFeePolicySvc) {
	h := &lateFeeSettingsHandler{policyService: policyService}

	settings := rg.Group("/entities/:entityID/late-fee-settings")
	{
		settings.GET("", h.getSettings)
		settings.PUT("", h.upsertSettings)
	}
}

// getSettings godoc
// @Summary Get an entity's late-fee policy
// @Description Returns the configured policy, or the disabled default when none exists
// @Tags late-fees
// @Produce  json
// @Param   entityID path string true "Landlord entity ID"
// @Success 200 {object} domain.LateFeeSettings
// @Security BearerAuth
// @Router /entities/{entityID}/late-fee-settings [get]
func (h *lateFeeSettingsHandler) getSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	settings, err := h.policyService.GetLateFeeSettings(c.Request.Context(), c.Param("entityID"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve late fee settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// upsertSettings godoc
// @Summary Replace an entity's late-fee policy
// @Tags late-fees
// @Accept  json
// @Produce  json
// @Param   entityID path string true "Landlord entity ID"
// @Param   settings body dto.LateFeeSettingsRequest true "Late fee policy"
// @Success 200 {object} domain.LateFeeSettings
// @Failure 400 {object} map[string]string "Invalid policy"
// @Security BearerAuth
// @Router /entities/{entityID}/late-fee-settings [put]
func (h *lateFeeSettingsHandler) upsertSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entityID")

	var req dto.LateFeeSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpsertLateFeeSettings", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	settings, err := h.policyService.UpsertLateFeeSettings(c.Request.Context(), entityID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to save late fee settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}
