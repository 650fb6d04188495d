package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gestium-IO/gestium-enterprise/internal/core/domain"
	portssvc "github.com/gestium-IO/gestium-enterprise/internal/core/ports/services"
	"github.com/gestium-IO/gestium-enterprise/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler serves the financial statements derived from the journal.
type reportingHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newReportingHandler(ledgerService portssvc.LedgerSvcFacade) *reportingHandler {
	return &reportingHandler{
		ledgerService: ledgerService,
	}
}

// periodFromQuery resolves the ?period=YYYY-MM query parameter, defaulting to
// the current month.
func periodFromQuery(c *gin.Context) (domain.Period, bool) {
	raw := c.Query("period")
	if raw == "" {
		return domain.CurrentPeriod(), true
	}
	period, err := domain.ParsePeriod(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid period, expected YYYY-MM"})
		return domain.Period{}, false
	}
	return period, true
}

func companyFromContext(c *gin.Context) (string, bool) {
	companyID, ok := middleware.GetCompanyIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Company ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return companyID, true
}

// getIncomeStatement godoc
// @Summary Income statement for a period
// @Tags reporting
// @Produce  json
// @Param   period query string false "Period YYYY-MM (default current month)"
// @Success 200 {object} domain.IncomeStatement
// @Failure 500 {object} map[string]string "Computation failed"
// @Router /reports/income-statement [get]
func (h *reportingHandler) getIncomeStatement(c *gin.Context) {
	companyID, ok := companyFromContext(c)
	if !ok {
		return
	}
	period, ok := periodFromQuery(c)
	if !ok {
		return
	}

	statement, err := h.ledgerService.ComputeIncomeStatement(c.Request.Context(), companyID, period)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to compute income statement", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute income statement"})
		return
	}
	c.JSON(http.StatusOK, statement)
}

// getBalanceSheet godoc
// @Summary Balance sheet over the full ledger
// @Tags reporting
// @Produce  json
// @Success 200 {object} domain.BalanceSheet
// @Failure 500 {object} map[string]string "Computation failed"
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	companyID, ok := companyFromContext(c)
	if !ok {
		return
	}

	sheet, err := h.ledgerService.ComputeBalanceSheet(c.Request.Context(), companyID)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to compute balance sheet", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance sheet"})
		return
	}
	c.JSON(http.StatusOK, sheet)
}

// getCashFlow godoc
// @Summary Cash flow for a period
// @Tags reporting
// @Produce  json
// @Param   period query string false "Period YYYY-MM (default current month)"
// @Success 200 {object} domain.CashFlow
// @Failure 500 {object} map[string]string "Computation failed"
// @Router /reports/cash-flow [get]
func (h *reportingHandler) getCashFlow(c *gin.Context) {
	companyID, ok := companyFromContext(c)
	if !ok {
		return
	}
	period, ok := periodFromQuery(c)
	if !ok {
		return
	}

	flow, err := h.ledgerService.ComputeCashFlow(c.Request.Context(), companyID, period)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to compute cash flow", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute cash flow"})
		return
	}
	c.JSON(http.StatusOK, flow)
}

// getTaxSummary godoc
// @Summary Tax summary for a period
// @Tags reporting
// @Produce  json
// @Param   period query string false "Period YYYY-MM (default current month)"
// @Success 200 {object} domain.TaxSummary
// @Failure 500 {object} map[string]string "Computation failed"
// @Router /reports/taxes [get]
func (h *reportingHandler) getTaxSummary(c *gin.Context) {
	companyID, ok := companyFromContext(c)
	if !ok {
		return
	}
	period, ok := periodFromQuery(c)
	if !ok {
		return
	}

	taxes, err := h.ledgerService.ComputeTaxSummary(c.Request.Context(), companyID, period)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to compute tax summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute tax summary"})
		return
	}
	c.JSON(http.StatusOK, taxes)
}

func registerReportingRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newReportingHandler(ledgerService)
	reports := rg.Group("/reports")
	{
		reports.GET("/income-statement", h.getIncomeStatement)
		reports.GET("/balance-sheet", h.getBalanceSheet)
		reports.GET("/cash-flow", h.getCashFlow)
		reports.GET("/taxes", h.getTaxSummary)
	}
}
