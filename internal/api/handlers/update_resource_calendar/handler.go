package update_resource_calendar

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/calendars"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/calendars/models"
)

const (
	msgInvalidResourceID   = "некорректный ID ресурса"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgResourceNotFound    = "ресурс не найден"
	msgForbidden           = "доступ запрещен"
	msgInvalidCalendar     = "некорректные данные календаря"
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

// Handle PUT /api/v1/resources/{resourceId}/calendar
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	resourceIDStr := vars["resourceId"]

	resourceID, err := strconv.ParseInt(resourceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /resources/{id}/calendar - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /resources/{id}/calendar - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateCalendarRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /resources/{id}/calendar - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.Update(r.Context(), resourceID, &req)
	if err != nil {
		switch {
		case errors.Is(err, calendars.ErrResourceNotFound):
			h.logger.Warn("PUT /resources/{id}/calendar - Resource not found: resource_id=%d", resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, calendars.ErrAccessDenied):
			h.logger.Warn("PUT /resources/{id}/calendar - Access denied: resource_id=%d, user_id=%d", resourceID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, calendars.ErrInvalidInput):
			h.logger.Warn("PUT /resources/{id}/calendar - Invalid calendar: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondBadRequest(w, msgInvalidCalendar)

		case errors.Is(err, calendars.ErrUpstreamUnavailable):
			h.logger.Warn("PUT /resources/{id}/calendar - Upstream unavailable: resource_id=%d", resourceID)
			handlers.RespondError(w, http.StatusBadGateway, msgUpstreamUnavailable)

		default:
			h.logger.Error("PUT /resources/{id}/calendar - Failed to update calendar: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /resources/{id}/calendar - Calendar updated successfully: resource_id=%d, user_id=%d", resourceID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
