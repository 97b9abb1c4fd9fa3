package http

import (
	"log"
	"strconv"

	"github.com/labstack/echo/v4"

	"signalgate/internal/delivery/http/dto"
	"signalgate/internal/domain"
)

// DefaultListLimit is the number of records returned when no limit is given
const DefaultListLimit = 10

// SignalHandler serves read-back of stored signals
type SignalHandler struct {
	store    domain.SignalStore
	maxLimit int
}

// NewSignalHandler creates a new SignalHandler
func NewSignalHandler(store domain.SignalStore, maxLimit int) *SignalHandler {
	if maxLimit <= 0 {
		maxLimit = 100
	}
	return &SignalHandler{
		store:    store,
		maxLimit: maxLimit,
	}
}

// List returns the most recent records in arrival order plus the total
// record count ever stored. An empty store yields an empty list, not an
// error.
// GET /signals?limit=N
func (h *SignalHandler) List(c echo.Context) error {
	limit := DefaultListLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return BadRequestResponse(c, "limit must be a positive integer")
		}
		limit = n
	}
	if limit > h.maxLimit {
		limit = h.maxLimit
	}

	ctx := c.Request().Context()

	signals, err := h.store.Recent(ctx, limit)
	if err != nil {
		log.Printf("ERROR: Failed to read signals: %v", err)
		return InternalServerErrorResponse(c, "Failed to read signals")
	}

	total, err := h.store.Count(ctx)
	if err != nil {
		log.Printf("ERROR: Failed to count signals: %v", err)
		return InternalServerErrorResponse(c, "Failed to read signals")
	}

	return SuccessResponse(c, dto.SignalListResponse{
		Signals: signals,
		Total:   total,
	})
}
