package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/kutrumbo/unlockapp/internal/dto"
	"github.com/kutrumbo/unlockapp/internal/models"
	appErrors "github.com/kutrumbo/unlockapp/pkg/errors"
	"github.com/kutrumbo/unlockapp/pkg/response"
)

type dayRecordService interface {
	TodayKey() string
	Load(ctx context.Context, date string) (models.ActivitySet, error)
	Toggle(ctx context.Context, date string, activity models.Activity) (models.ActivitySet, error)
}

// DayHandler exposes single-day endpoints.
type DayHandler struct {
	service   dayRecordService
	validator *validator.Validate
}

// NewDayHandler builds a new handler.
func NewDayHandler(service dayRecordService, validate *validator.Validate) *DayHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &DayHandler{service: service, validator: validate}
}

// Today godoc
// @Summary Get today's activities
// @Tags Days
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /days/today [get]
func (h *DayHandler) Today(c *gin.Context) {
	h.respondWithDay(c, h.service.TodayKey())
}

// Get godoc
// @Summary Get a day's activities
// @Tags Days
// @Produce json
// @Param date path string true "Day key (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /days/{date} [get]
func (h *DayHandler) Get(c *gin.Context) {
	h.respondWithDay(c, c.Param("date"))
}

// Toggle godoc
// @Summary Toggle one activity for a day
// @Tags Days
// @Accept json
// @Produce json
// @Param date path string true "Day key (YYYY-MM-DD)"
// @Param payload body dto.ToggleActivityRequest true "Activity to toggle"
// @Success 200 {object} response.Envelope
// @Router /days/{date}/toggle [post]
func (h *DayHandler) Toggle(c *gin.Context) {
	var req dto.ToggleActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid toggle payload"))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		response.Error(c, appErrors.WrapAs(appErrors.ErrInvalidActivity, err, ""))
		return
	}

	date := c.Param("date")
	set, err := h.service.Toggle(c.Request.Context(), date, models.Activity(req.Activity))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.NewDayView(date, set))
}

func (h *DayHandler) respondWithDay(c *gin.Context, date string) {
	set, err := h.service.Load(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.NewDayView(date, set))
}
