package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kutrumbo/unlockapp/internal/dto"
	"github.com/kutrumbo/unlockapp/internal/models"
	"github.com/kutrumbo/unlockapp/internal/service"
	appErrors "github.com/kutrumbo/unlockapp/pkg/errors"
	"github.com/kutrumbo/unlockapp/pkg/export"
	"github.com/kutrumbo/unlockapp/pkg/response"
)

type historyService interface {
	ListHistory(ctx context.Context) ([]models.DayRecord, error)
}

type exportService interface {
	ExportHistory(ctx context.Context, format export.Format) (*service.ExportResult, error)
}

// HistoryHandler exposes the history listing and its export.
type HistoryHandler struct {
	history historyService
	exports exportService
}

// NewHistoryHandler builds a new handler. exports may be nil when exporting is disabled.
func NewHistoryHandler(history historyService, exports exportService) *HistoryHandler {
	return &HistoryHandler{history: history, exports: exports}
}

// List godoc
// @Summary List every tracked day, most recent first
// @Tags History
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /history [get]
func (h *HistoryHandler) List(c *gin.Context) {
	records, err := h.history.ListHistory(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.NewDayViews(records), map[string]interface{}{"count": len(records)})
}

// Export godoc
// @Summary Download the history as CSV or PDF
// @Tags History
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Router /history/export [get]
func (h *HistoryHandler) Export(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "exports are disabled"))
		return
	}
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unsupported export format"))
		return
	}
	result, err := h.exports.ExportHistory(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, result.Filename, result.ContentType, result.Body)
}
