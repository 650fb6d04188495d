package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gestium-IO/gestium-enterprise/internal/core/domain"
	portssvc "github.com/gestium-IO/gestium-enterprise/internal/core/ports/services"
	"github.com/gestium-IO/gestium-enterprise/internal/dto"
	"github.com/gestium-IO/gestium-enterprise/internal/middleware"
	"github.com/gin-gonic/gin"
)

// analyticsHandler serves the financial intelligence endpoints.
type analyticsHandler struct {
	analyticsService portssvc.AnalyticsSvcFacade
}

func newAnalyticsHandler(analyticsService portssvc.AnalyticsSvcFacade) *analyticsHandler {
	return &analyticsHandler{
		analyticsService: analyticsService,
	}
}

// getCashFlowProjection godoc
// @Summary 30/60/90-day cash flow projection
// @Tags analytics
// @Produce  json
// @Success 200 {object} domain.CashFlowProjection
// @Failure 500 {object} map[string]string "Projection failed"
// @Router /analytics/cash-flow-projection [get]
func (h *analyticsHandler) getCashFlowProjection(c *gin.Context) {
	companyID, ok := companyFromContext(c)
	if !ok {
		return
	}

	projection, err := h.analyticsService.ProjectCashFlow(c.Request.Context(), companyID)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to project cash flow", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to project cash flow"})
		return
	}
	c.JSON(http.StatusOK, projection)
}

// checkAlerts godoc
// @Summary Evaluate and persist this month's financial alerts
// @Tags analytics
// @Produce  json
// @Success 200 {array} domain.FinancialAlert
// @Failure 500 {object} map[string]string "Evaluation failed"
// @Router /analytics/alerts [post]
func (h *analyticsHandler) checkAlerts(c *gin.Context) {
	companyID, ok := companyFromContext(c)
	if !ok {
		return
	}

	alerts, err := h.analyticsService.CheckFinancialAlerts(c.Request.Context(), companyID)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to evaluate alerts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to evaluate alerts"})
		return
	}
	if alerts == nil {
		alerts = []domain.FinancialAlert{}
	}
	c.JSON(http.StatusOK, alerts)
}

// getClientRisk godoc
// @Summary Score client payment risk
// @Tags analytics
// @Produce  json
// @Success 200 {array} domain.ClientRisk
// @Failure 500 {object} map[string]string "Scoring failed"
// @Router /analytics/client-risk [get]
func (h *analyticsHandler) getClientRisk(c *gin.Context) {
	companyID, ok := companyFromContext(c)
	if !ok {
		return
	}

	risks, err := h.analyticsService.ScoreClientRisk(c.Request.Context(), companyID)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to score client risk", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to score client risk"})
		return
	}
	c.JSON(http.StatusOK, risks)
}

// getClientProfitability godoc
// @Summary Income and attributable costs per client
// @Tags analytics
// @Produce  json
// @Success 200 {array} domain.ClientProfitability
// @Failure 500 {object} map[string]string "Computation failed"
// @Router /analytics/client-profitability [get]
func (h *analyticsHandler) getClientProfitability(c *gin.Context) {
	companyID, ok := companyFromContext(c)
	if !ok {
		return
	}

	result, err := h.analyticsService.ClientProfitability(c.Request.Context(), companyID)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to compute client profitability", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute client profitability"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// simulateScenario godoc
// @Summary Simulate a what-if scenario over the current month
// @Tags analytics
// @Accept  json
// @Produce  json
// @Param   scenario body dto.SimulateScenarioRequest true "Scenario deltas"
// @Success 200 {object} domain.ScenarioResult
// @Failure 400 {object} map[string]string "Invalid scenario"
// @Failure 500 {object} map[string]string "Simulation failed"
// @Router /analytics/scenario [post]
func (h *analyticsHandler) simulateScenario(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.SimulateScenarioRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for simulateScenario", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	companyID, ok := companyFromContext(c)
	if !ok {
		return
	}

	result, err := h.analyticsService.SimulateScenario(c.Request.Context(), companyID, req.ToParams())
	if err != nil {
		logger.Error("Failed to simulate scenario", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to simulate scenario"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// getPreCloseChecklist godoc
// @Summary Month-end closing checklist
// @Tags analytics
// @Produce  json
// @Param   period query string false "Period YYYY-MM (default current month)"
// @Success 200 {array} domain.PreCloseTask
// @Failure 500 {object} map[string]string "Checklist failed"
// @Router /analytics/pre-close [get]
func (h *analyticsHandler) getPreCloseChecklist(c *gin.Context) {
	companyID, ok := companyFromContext(c)
	if !ok {
		return
	}
	period, ok := periodFromQuery(c)
	if !ok {
		return
	}

	tasks, err := h.analyticsService.PreCloseChecklist(c.Request.Context(), companyID, period)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to build pre-close checklist", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build pre-close checklist"})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// getExecutiveKPIs godoc
// @Summary Executive KPI dashboard for a period
// @Tags analytics
// @Produce  json
// @Param   period query string false "Period YYYY-MM (default current month)"
// @Success 200 {object} domain.ExecutiveKPIs
// @Failure 500 {object} map[string]string "Computation failed"
// @Router /analytics/kpis [get]
func (h *analyticsHandler) getExecutiveKPIs(c *gin.Context) {
	companyID, ok := companyFromContext(c)
	if !ok {
		return
	}
	period, ok := periodFromQuery(c)
	if !ok {
		return
	}

	kpis, err := h.analyticsService.ExecutiveKPIs(c.Request.Context(), companyID, period)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to compute executive KPIs", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute executive KPIs"})
		return
	}
	c.JSON(http.StatusOK, kpis)
}

func registerAnalyticsRoutes(rg *gin.RouterGroup, analyticsService portssvc.AnalyticsSvcFacade) {
	h := newAnalyticsHandler(analyticsService)
	analytics := rg.Group("/analytics")
	{
		analytics.GET("/cash-flow-projection", h.getCashFlowProjection)
		analytics.POST("/alerts", h.checkAlerts)
		analytics.GET("/client-risk", h.getClientRisk)
		analytics.GET("/client-profitability", h.getClientProfitability)
		analytics.POST("/scenario", h.simulateScenario)
		analytics.GET("/pre-close", h.getPreCloseChecklist)
		analytics.GET("/kpis", h.getExecutiveKPIs)
	}
}
