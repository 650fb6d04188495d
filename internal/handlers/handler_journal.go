package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gestium-IO/gestium-enterprise/internal/apperrors"
	"github.com/gestium-IO/gestium-enterprise/internal/core/domain"
	portssvc "github.com/gestium-IO/gestium-enterprise/internal/core/ports/services"
	"github.com/gestium-IO/gestium-enterprise/internal/dto"
	"github.com/gestium-IO/gestium-enterprise/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests against the journal engine.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: journalService,
	}
}

// postAutomaticEntry godoc
// @Summary Post a journal entry for a business event
// @Description Derives and persists the double entry for a confirmed sale, payment, expense or credit note. Reposting the same event is a no-op.
// @Tags journal
// @Accept  json
// @Produce  json
// @Param   event body dto.PostAutomaticEntryRequest true "Business event"
// @Success 200 {object} dto.PostingResult "Event already posted"
// @Success 201 {object} dto.PostingResult "Entry posted"
// @Failure 400 {object} map[string]string "Invalid event"
// @Failure 500 {object} map[string]string "Posting failed"
// @Router /journal/events [post]
func (h *journalHandler) postAutomaticEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.PostAutomaticEntryRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for postAutomaticEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	companyID, ok := middleware.GetCompanyIDFromContext(c)
	if !ok {
		logger.Error("Company ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.journalService.PostAutomaticEntry(c.Request.Context(), companyID, domain.EventType(req.EventType), req.EventData)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error posting entry", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to post journal entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post journal entry"})
		}
		return
	}

	if result.Duplicate {
		c.JSON(http.StatusOK, result)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// postManualEntry godoc
// @Summary Post a manual journal entry
// @Description Persists a hand-written entry. An unbalanced draft is rejected with both totals so the operator can correct it.
// @Tags journal
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateManualEntryRequest true "Manual entry draft"
// @Success 201 {object} dto.ManualEntryResult "Entry posted"
// @Failure 400 {object} dto.ManualEntryResult "Unbalanced draft"
// @Failure 403 {object} map[string]string "Missing capability"
// @Failure 500 {object} map[string]string "Posting failed"
// @Router /journal/manual [post]
func (h *journalHandler) postManualEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.CreateManualEntryRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for postManualEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	companyID, ok := middleware.GetCompanyIDFromContext(c)
	if !ok {
		logger.Error("Company ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	canPostManual := middleware.HasCapability(c, middleware.CapManualEntries)
	result, err := h.journalService.PostManualEntry(c.Request.Context(), companyID, req, userID, canPostManual)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Manual entries capability required"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to post manual entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post manual entry"})
		}
		return
	}

	if !result.Accepted {
		c.JSON(http.StatusBadRequest, result)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// listRecentEntries godoc
// @Summary List recent journal entries
// @Description Returns the newest entries first, capped at 50.
// @Tags journal
// @Produce  json
// @Param   limit query int false "Max entries (default and cap 50)"
// @Success 200 {array} domain.JournalEntry
// @Failure 500 {object} map[string]string "Listing failed"
// @Router /journal/entries [get]
func (h *journalHandler) listRecentEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	companyID, ok := middleware.GetCompanyIDFromContext(c)
	if !ok {
		logger.Error("Company ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	entries, err := h.journalService.ListRecentEntries(c.Request.Context(), companyID, limit)
	if err != nil {
		logger.Error("Failed to list journal entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list journal entries"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)
	journal := rg.Group("/journal")
	{
		journal.POST("/events", h.postAutomaticEntry)
		journal.POST("/manual", h.postManualEntry)
		journal.GET("/entries", h.listRecentEntries)
	}
}
