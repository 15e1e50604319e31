package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kutrumbo/unlockapp/internal/dto"
	"github.com/kutrumbo/unlockapp/pkg/response"
)

type counterService interface {
	Get(ctx context.Context) (int64, error)
	Increment(ctx context.Context) (int64, error)
	Decrement(ctx context.Context) (int64, error)
}

// CounterHandler exposes the home-screen counter.
type CounterHandler struct {
	service counterService
}

// NewCounterHandler builds a new handler.
func NewCounterHandler(service counterService) *CounterHandler {
	return &CounterHandler{service: service}
}

// Get godoc
// @Summary Read the counter
// @Tags Counter
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /counter [get]
func (h *CounterHandler) Get(c *gin.Context) {
	h.respond(c, h.service.Get)
}

// Increment godoc
// @Summary Add one to the counter
// @Tags Counter
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /counter/increment [post]
func (h *CounterHandler) Increment(c *gin.Context) {
	h.respond(c, h.service.Increment)
}

// Decrement godoc
// @Summary Subtract one from the counter
// @Tags Counter
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /counter/decrement [post]
func (h *CounterHandler) Decrement(c *gin.Context) {
	h.respond(c, h.service.Decrement)
}

func (h *CounterHandler) respond(c *gin.Context, op func(context.Context) (int64, error)) {
	value, err := op(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.CounterView{Value: value})
}
