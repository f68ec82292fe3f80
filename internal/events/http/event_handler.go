// Package http provides the HTTP handler for the audit event trail.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/onetime/internal/events/http/dto"
	eventsUseCase "github.com/allisson/onetime/internal/events/usecase"
	"github.com/allisson/onetime/internal/httputil"
)

// EventHandler handles HTTP requests for the event trail.
type EventHandler struct {
	eventUseCase eventsUseCase.EventUseCase
	logger       *slog.Logger
}

// NewEventHandler creates a new event handler with required dependencies.
func NewEventHandler(eventUseCase eventsUseCase.EventUseCase, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		eventUseCase: eventUseCase,
		logger:       logger,
	}
}

// ListHandler returns one page of the insertion-ordered event trail.
// GET /api/events?page=1&page_size=50
func (h *EventHandler) ListHandler(c *gin.Context) {
	page, pageSize, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	events, err := h.eventUseCase.List(c.Request.Context(), page, pageSize)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEventsToListResponse(events, page, pageSize))
}
