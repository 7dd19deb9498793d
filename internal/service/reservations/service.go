package reservations

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/calendar"
	reservationRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/reservation"
	resourceClient "github.com/m04kA/SMC-CourtBookingService/internal/integrations/resourceservice"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/reservations/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	reservationRepo ReservationRepository
	calendarRepo    CalendarRepository
	resourceClient  ResourceServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	calendarRepo CalendarRepository,
	resourceClient ResourceServiceClient,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		calendarRepo:    calendarRepo,
		resourceClient:  resourceClient,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - бронирование видит заявитель или владелец ресурса
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkUserAccess(ctx, reservation, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(reservation), nil
}

// GetUserReservations получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserReservations: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.GetByRequester(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: successfully fetched %d reservations for user=%d", len(reservations), req.UserID)
	return models.FromDomainReservationList(reservations), nil
}

// GetResourceReservations получает бронирования ресурса с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению неактивных броней
// Доступно только владельцу ресурса
//
// Примеры использования:
// - Все активные брони: GetResourceReservations(ctx, &GetResourceReservationsRequest{ResourceID: 123, UserID: 456})
// - Брони на дату: StartDate и EndDate указывают на одну дату
// - Брони за период: StartDate и EndDate указывают на разные даты
// - Только подтвержденные: указать Status = "confirmed"
// - Включая отменённые и завершённые: IncludeInactive = true
func (s *Service) GetResourceReservations(ctx context.Context, req *models.GetResourceReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetResourceReservations: fetching reservations for resource=%d, user=%d", req.ResourceID, req.UserID)

	if err := s.checkOwnerAccess(ctx, req.ResourceID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetResourceReservations: invalid filter for resource=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetByResourceWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetResourceReservations: repository error for resource=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: GetResourceReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetResourceReservations: successfully fetched %d reservations for resource=%d", len(reservations), req.ResourceID)
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет бронирование и считает сумму возврата по политике ресурса.
// Заявитель может отменить свою бронь до дедлайна политики, владелец ресурса -
// любую бронь своего ресурса в любой момент с полным возвратом.
func (s *Service) Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) (*models.CancelResponse, error) {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", reservationID, req.UserID)

	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found", reservationID)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !reservation.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", reservationID, reservation.Status)
		return nil, ErrCannotCancel
	}

	policy := s.cancellationPolicy(ctx, reservation.ResourceID)

	byOwner := false
	if reservation.RequesterID != req.UserID {
		// Не заявитель - проверяем, владелец ли это ресурса
		if err := s.checkOwnerAccess(ctx, reservation.ResourceID, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel reservation id=%d", req.UserID, reservationID)
			return nil, ErrAccessDenied
		}
		byOwner = true
	}

	refundPercent := domain.MaxRefundPercent
	if !byOwner {
		if !policy.AllowCancellation {
			s.logger.Warn("Cancel: cancellation not allowed by policy for reservation id=%d", reservationID)
			return nil, ErrCancellationNotAllowed
		}

		// Дедлайн отмены: до начала брони должно оставаться не меньше
		// deadlineHours часов
		now := s.timeProvider.Now()
		deadline := reservation.StartsAt().Add(-time.Duration(policy.DeadlineHours) * time.Hour)
		if now.After(deadline) {
			s.logger.Warn("Cancel: deadline passed for reservation id=%d, starts_at=%s", reservationID, reservation.StartsAt())
			return nil, ErrTooLateToCancel
		}

		refundPercent = policy.RefundPercent
	}

	if err := s.reservationRepo.Cancel(ctx, reservationID, req.Reason); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found during cancellation", reservationID)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	refund := math.Round(reservation.TotalPrice*float64(refundPercent)) / 100

	s.logger.Info("Cancel: successfully cancelled reservation id=%d, refund=%.2f (%d%%)", reservationID, refund, refundPercent)
	return &models.CancelResponse{
		RefundAmount:  refund,
		RefundPercent: refundPercent,
	}, nil
}

// UpdateStatus обновляет статус бронирования
// Доступно только владельцу ресурса, переходы ограничены жизненным циклом
func (s *Service) UpdateStatus(ctx context.Context, reservationID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating reservation id=%d to status=%s by user=%d",
		reservationID, req.Status, req.UserID)

	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("UpdateStatus: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if err := s.checkOwnerAccess(ctx, reservation.ResourceID, req.UserID); err != nil {
		return err
	}

	newStatus, err := models.ToDomainReservationStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for reservation id=%d", req.Status, reservationID)
		return fmt.Errorf("%w: invalid status", ErrInvalidStatus)
	}

	if !reservation.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: invalid transition %s -> %s for reservation id=%d",
			reservation.Status, newStatus, reservationID)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, reservation.Status, newStatus)
	}

	if err := s.reservationRepo.UpdateStatus(ctx, reservationID, newStatus); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("UpdateStatus: reservation id=%d not found during update", reservationID)
			return ErrReservationNotFound
		}
		if errors.Is(err, reservationRepo.ErrSlotTaken) {
			// Подтверждение pending-брони упёрлось в занятый слот
			s.logger.Warn("UpdateStatus: slot already taken for reservation id=%d", reservationID)
			return fmt.Errorf("%w: slot already taken by another confirmed reservation", ErrInvalidTransition)
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated reservation id=%d to status=%s", reservationID, newStatus)
	return nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к бронированию
// Пользователь видит свою бронь или брони своего ресурса
func (s *Service) checkUserAccess(ctx context.Context, reservation *domain.Reservation, userID int64) error {
	if reservation.RequesterID == userID {
		return nil
	}

	if err := s.checkOwnerAccess(ctx, reservation.ResourceID, userID); err != nil {
		// Ошибка уже залогирована в checkOwnerAccess
		return ErrAccessDenied
	}

	return nil
}

// checkOwnerAccess проверяет, что пользователь является владельцем ресурса
func (s *Service) checkOwnerAccess(ctx context.Context, resourceID int64, userID int64) error {
	resource, err := s.resourceClient.GetResource(ctx, resourceID)
	if err != nil {
		if errors.Is(err, resourceClient.ErrResourceNotFound) {
			s.logger.Warn("checkOwnerAccess: resource id=%d not found", resourceID)
			return ErrResourceNotFound
		}
		s.logger.Error("checkOwnerAccess: failed to get resource id=%d: %v", resourceID, err)
		return fmt.Errorf("%w: checkOwnerAccess: %v", ErrUpstreamUnavailable, err)
	}

	if resource.OwnerID != userID {
		s.logger.Warn("checkOwnerAccess: user=%d is not the owner of resource=%d", userID, resourceID)
		return ErrAccessDenied
	}

	return nil
}

// cancellationPolicy возвращает политику отмены ресурса.
// При отсутствии календаря или ошибке чтения действует дефолтная политика.
func (s *Service) cancellationPolicy(ctx context.Context, resourceID int64) domain.CancellationPolicy {
	cal, err := s.calendarRepo.GetByResourceID(ctx, resourceID)
	if err != nil {
		if !errors.Is(err, calendarRepo.ErrCalendarNotFound) {
			s.logger.Warn("cancellationPolicy: failed to get calendar for resource=%d, using defaults: %v", resourceID, err)
		}
		return domain.CancellationPolicy{
			AllowCancellation: domain.DefaultAllowCancellation,
			DeadlineHours:     domain.DefaultCancellationDeadlineHours,
			RefundPercent:     domain.DefaultRefundPercent,
		}
	}

	return cal.Cancellation
}
