package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
	"github.com/SscSPs/property_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type summaryHandler struct {
	summaryService portssvc.SummarySvc
}

// RegisterSummaryRoutes registers the read-only rollup routes.
func RegisterSummaryRoutes(rg *gin.RouterGroup, summaryService portssvc.SummarySvc) {
	h := &summaryHandler{summaryService: summaryService}
	rg.GET("/leases/:leaseID/summary", h.leaseSummary)
	rg.GET("/mortgages/:mortgageID/summary", h.mortgageSummary)
}

// leaseSummary godoc
// @Summary Charge rollup for a lease
// @Tags summaries
// @Produce  json
// @Param   leaseID path string true "Lease ID"
// @Success 200 {object} domain.LeaseChargeSummary
// @Failure 404 {object} map[string]string "Lease not found"
// @Security BearerAuth
// @Router /leases/{leaseID}/summary [get]
func (h *summaryHandler) leaseSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.summaryService.LeaseChargeSummary(c.Request.Context(), c.Param("leaseID"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to summarize lease")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// mortgageSummary godoc
// @Summary Servicing snapshot of a mortgage
// @Tags summaries
// @Produce  json
// @Param   mortgageID path string true "Mortgage ID"
// @Success 200 {object} domain.MortgageSummary
// @Failure 404 {object} map[string]string "Mortgage not found"
// @Security BearerAuth
// @Router /mortgages/{mortgageID}/summary [get]
func (h *summaryHandler) mortgageSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.summaryService.MortgageSummary(c.Request.Context(), c.Param("mortgageID"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to summarize mortgage")
		return
	}
	c.JSON(http.StatusOK, summary)
}
