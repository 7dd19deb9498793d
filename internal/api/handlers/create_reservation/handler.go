package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-CourtBookingService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateOrTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgResourceNotFound     = "ресурс не найден"
	msgTeamNotFound         = "команда не найдена"
	msgInvalidDate          = "некорректная дата бронирования"
	msgDateTooFar           = "дата бронирования за пределами горизонта бронирования"
	msgDateBlocked          = "выбранная дата недоступна для бронирования"
	msgResourceClosed       = "ресурс закрыт в выбранную дату"
	msgOutsideWorkingHours  = "слот выходит за рамки рабочих часов"
	msgSlotUnavailable      = "выбранный временной слот недоступен"
	msgRequesterDoubleBook  = "у вас уже есть пересекающееся бронирование"
	msgBusy                 = "ресурс занят, повторите запрос позже"
	msgUpstreamUnavailable  = "внешний сервис временно недоступен, повторите запрос"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, createReservation.ErrResourceNotFound):
			h.logger.Warn("POST /reservations - Resource not found: resource_id=%d", req.ResourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, createReservation.ErrTeamNotFound):
			h.logger.Warn("POST /reservations - Team not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgTeamNotFound)

		case errors.Is(err, createReservation.ErrInvalidDate):
			h.logger.Warn("POST /reservations - Invalid date: user_id=%d, resource_id=%d", userID, req.ResourceID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createReservation.ErrOutsideAdvanceWindow):
			h.logger.Warn("POST /reservations - Date outside advance window: user_id=%d, resource_id=%d", userID, req.ResourceID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createReservation.ErrDateBlocked):
			h.logger.Warn("POST /reservations - Date blocked: user_id=%d, resource_id=%d", userID, req.ResourceID)
			handlers.RespondBadRequest(w, msgDateBlocked)

		case errors.Is(err, createReservation.ErrResourceClosed):
			h.logger.Warn("POST /reservations - Resource closed: user_id=%d, resource_id=%d", userID, req.ResourceID)
			handlers.RespondBadRequest(w, msgResourceClosed)

		case errors.Is(err, createReservation.ErrOutsideWorkingHours):
			h.logger.Warn("POST /reservations - Outside working hours: user_id=%d, resource_id=%d", userID, req.ResourceID)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, createReservation.ErrSlotUnavailable):
			h.logger.Warn("POST /reservations - Slot unavailable: user_id=%d, resource_id=%d", userID, req.ResourceID)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, createReservation.ErrRequesterDoubleBooked):
			h.logger.Warn("POST /reservations - Requester double booked: user_id=%d", userID)
			handlers.RespondConflict(w, msgRequesterDoubleBook)

		case errors.Is(err, createReservation.ErrBusy):
			h.logger.Warn("POST /reservations - Busy, retryable: user_id=%d, resource_id=%d", userID, req.ResourceID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgBusy)

		case errors.Is(err, createReservation.ErrUpstreamUnavailable):
			h.logger.Warn("POST /reservations - Upstream unavailable: user_id=%d, resource_id=%d", userID, req.ResourceID)
			handlers.RespondError(w, http.StatusBadGateway, msgUpstreamUnavailable)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, resource_id=%d, error=%v",
				userID, req.ResourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, user_id=%d, resource_id=%d",
		result.Reservation.ID, userID, req.ResourceID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
