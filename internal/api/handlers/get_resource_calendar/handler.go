package get_resource_calendar

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/calendars"
)

const (
	msgInvalidResourceID   = "некорректный ID ресурса"
	msgResourceNotFound    = "ресурс не найден"
	msgUpstreamUnavailable = "внешний сервис временно недоступен, повторите запрос"
)

type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}/calendar
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	resourceIDStr := vars["resourceId"]

	resourceID, err := strconv.ParseInt(resourceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/calendar - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	calendar, err := h.service.Get(r.Context(), resourceID)
	if err != nil {
		switch {
		case errors.Is(err, calendars.ErrResourceNotFound):
			h.logger.Warn("GET /resources/{id}/calendar - Resource not found: resource_id=%d", resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, calendars.ErrUpstreamUnavailable):
			h.logger.Warn("GET /resources/{id}/calendar - Upstream unavailable: resource_id=%d", resourceID)
			handlers.RespondError(w, http.StatusBadGateway, msgUpstreamUnavailable)

		default:
			h.logger.Error("GET /resources/{id}/calendar - Failed to get calendar: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources/{id}/calendar - Calendar retrieved successfully: resource_id=%d", resourceID)
	handlers.RespondJSON(w, http.StatusOK, calendar)
}
