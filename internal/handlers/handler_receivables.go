package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/gestium-IO/gestium-enterprise/internal/core/ports/services"
	"github.com/gestium-IO/gestium-enterprise/internal/middleware"
	"github.com/gin-gonic/gin"
)

// receivableHandler serves the open receivables/payables views.
type receivableHandler struct {
	receivableService portssvc.ReceivableSvcFacade
}

func newReceivableHandler(receivableService portssvc.ReceivableSvcFacade) *receivableHandler {
	return &receivableHandler{
		receivableService: receivableService,
	}
}

// listReceivables godoc
// @Summary Open customer receivables
// @Description Converted, unsettled sales from the last 90 days with aging status.
// @Tags receivables
// @Produce  json
// @Success 200 {array} domain.Receivable
// @Failure 500 {object} map[string]string "Listing failed"
// @Router /receivables [get]
func (h *receivableHandler) listReceivables(c *gin.Context) {
	companyID, ok := companyFromContext(c)
	if !ok {
		return
	}

	receivables, err := h.receivableService.ListOpenReceivables(c.Request.Context(), companyID)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list receivables", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list receivables"})
		return
	}
	c.JSON(http.StatusOK, receivables)
}

// listPayables godoc
// @Summary Open supplier payables
// @Description Unsettled expenses from the last 30 days.
// @Tags receivables
// @Produce  json
// @Success 200 {array} domain.Payable
// @Failure 500 {object} map[string]string "Listing failed"
// @Router /payables [get]
func (h *receivableHandler) listPayables(c *gin.Context) {
	companyID, ok := companyFromContext(c)
	if !ok {
		return
	}

	payables, err := h.receivableService.ListOpenPayables(c.Request.Context(), companyID)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list payables", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list payables"})
		return
	}
	c.JSON(http.StatusOK, payables)
}

func registerReceivableRoutes(rg *gin.RouterGroup, receivableService portssvc.ReceivableSvcFacade) {
	h := newReceivableHandler(receivableService)
	rg.GET("/receivables", h.listReceivables)
	rg.GET("/payables", h.listPayables)
}
