package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/calendar"
	"github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-CourtBookingService/internal/integrations/resourceservice"
	"github.com/m04kA/SMC-CourtBookingService/internal/integrations/teamservice"
	"github.com/m04kA/SMC-CourtBookingService/pkg/minutes"
	"github.com/m04kA/SMC-CourtBookingService/pkg/txmanager"
)

// UseCase создание бронирования слота на ресурсе
type UseCase struct {
	reservationRepo ReservationRepository
	calendarRepo    CalendarRepository
	resourceClient  ResourceServiceClient
	teamClient      TeamServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр UseCase для создания бронирований
func NewUseCase(
	reservationRepo ReservationRepository,
	calendarRepo CalendarRepository,
	resourceClient ResourceServiceClient,
	teamClient TeamServiceClient,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		calendarRepo:    calendarRepo,
		resourceClient:  resourceClient,
		teamClient:      teamClient,
		txManager:       txManager,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Execute выполняет создание бронирования.
//
// Предварительные проверки (календарь, конфликты) выполняются вне транзакции
// без блокировок, чтобы быстро отсечь заведомо невалидные запросы. Затем все
// проверки повторяются внутри SERIALIZABLE-транзакции с блокировкой строк
// броней ресурса, и любой конфликт на этом этапе трактуется как занятый слот.
// Частичный уникальный индекс по подтверждённым броням - последняя линия
// защиты от двойного бронирования.
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем метаданные ресурса из реестра
	resource, err := uc.resourceClient.GetResource(ctx, req.ResourceID)
	if err != nil {
		switch {
		case errors.Is(err, resourceservice.ErrResourceNotFound):
			return nil, fmt.Errorf("%w: resource_id=%d", ErrResourceNotFound, req.ResourceID)
		default:
			uc.logger.Error("[CreateReservation] Resource service unavailable: resource_id=%d, error=%v", req.ResourceID, err)
			return nil, fmt.Errorf("%w: resource service: %v", ErrUpstreamUnavailable, err)
		}
	}

	// 3. Определяем размер группы: явное значение, состав команды или
	// дефолтная вместимость ресурса
	partySize, err := uc.resolvePartySize(ctx, req, resource)
	if err != nil {
		return nil, err
	}

	// 4. Предварительные проверки без блокировок: календарь, дата, рабочие
	// часы, конфликты. Дают осмысленную ошибку без затрат на транзакцию.
	cal, err := uc.effectiveCalendar(ctx, resource)
	if err != nil {
		return nil, err
	}

	endMinute := req.StartMinute.Add(cal.MatchDurationMinutes)
	if !endMinute.Valid() || !endMinute.After(req.StartMinute) {
		return nil, fmt.Errorf("%w: slot %s+%dmin does not fit in a day",
			ErrInvalidInput, req.StartMinute, cal.MatchDurationMinutes)
	}

	if err := validateDate(now, req.Date, cal.AdvanceBookingDays); err != nil {
		return nil, err
	}

	if err := validateSlot(cal, req.Date, req.StartMinute, endMinute); err != nil {
		return nil, err
	}

	if err := uc.checkConflicts(ctx, req, endMinute, false); err != nil {
		return nil, err
	}

	// 5. Создание в SERIALIZABLE-транзакции с повторной валидацией
	var created *domain.Reservation
	txErr := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Календарь перечитывается внутри транзакции: он авторитетен
		// для длительности и цены. Отсутствующий календарь создается лениво.
		txCal, err := uc.ensureCalendar(txCtx, resource)
		if err != nil {
			return err
		}

		txEnd := req.StartMinute.Add(txCal.MatchDurationMinutes)
		if !txEnd.Valid() || !txEnd.After(req.StartMinute) {
			return fmt.Errorf("%w: slot %s+%dmin does not fit in a day",
				ErrInvalidInput, req.StartMinute, txCal.MatchDurationMinutes)
		}

		if err := validateDate(now, req.Date, txCal.AdvanceBookingDays); err != nil {
			return err
		}

		if err := validateSlot(txCal, req.Date, req.StartMinute, txEnd); err != nil {
			return err
		}

		// 5.2. Повторная проверка конфликтов под блокировкой строк.
		// Конфликт на этом этапе означает, что слот заняли между проверкой
		// и коммитом.
		if err := uc.checkConflicts(txCtx, req, txEnd, true); err != nil {
			return err
		}

		// 5.3. Расчёт стоимости по действующему календарю
		price := domain.QuotePrice(txCal, req.Date, req.StartMinute, txEnd, partySize)

		status := domain.StatusConfirmed
		if req.DeferPayment {
			status = domain.StatusPending
		}

		created, err = uc.reservationRepo.Create(txCtx, &domain.Reservation{
			ResourceID:  req.ResourceID,
			RequesterID: req.RequesterID,
			Date:        truncateToDay(req.Date),
			StartMinute: req.StartMinute,
			EndMinute:   txEnd,
			PartySize:   partySize,
			TotalPrice:  price,
			Status:      status,
		})
		if err != nil {
			return err
		}

		return nil
	})

	if txErr != nil {
		return nil, uc.mapTxError(txErr, req)
	}

	uc.logger.Info("[CreateReservation] Reservation created: id=%d, resource_id=%d, requester_id=%d, date=%s, slot=%s-%s, status=%s",
		created.ID, created.ResourceID, created.RequesterID,
		created.Date.Format(domain.DateFormat), created.StartMinute, created.EndMinute, created.Status)

	return &Response{Reservation: created}, nil
}

// resolvePartySize определяет размер группы по приоритету: явное значение,
// состав команды + 1, дефолтная вместимость ресурса
func (uc *UseCase) resolvePartySize(ctx context.Context, req Request, resource *resourceservice.Resource) (int, error) {
	if req.PartySize > 0 {
		return req.PartySize, nil
	}

	if req.TeamID != nil {
		team, err := uc.teamClient.GetTeamWithGracefulDegradation(ctx, *req.TeamID)
		switch {
		case err == nil:
			return team.RosterSize + 1, nil
		case errors.Is(err, teamservice.ErrTeamNotFound):
			return 0, fmt.Errorf("%w: team_id=%d", ErrTeamNotFound, *req.TeamID)
		case errors.Is(err, teamservice.ErrServiceDegraded):
			// Деградация TeamService: падаем на дефолтную вместимость
			// ресурса, если она настроена
			if resource.DefaultPartySize > 0 {
				uc.logger.Warn("[CreateReservation] Team service degraded, using resource default party size: team_id=%d, party_size=%d",
					*req.TeamID, resource.DefaultPartySize)
				return resource.DefaultPartySize, nil
			}
			return 0, fmt.Errorf("%w: team service degraded and resource has no default party size", ErrUpstreamUnavailable)
		default:
			return 0, fmt.Errorf("%w: team service: %v", ErrUpstreamUnavailable, err)
		}
	}

	if resource.DefaultPartySize > 0 {
		return resource.DefaultPartySize, nil
	}

	return 0, fmt.Errorf("%w: partySize or teamId is required", ErrInvalidInput)
}

// effectiveCalendar возвращает сохранённый календарь ресурса или дефолтный,
// не сохраняя его. Используется на этапе предварительных проверок.
func (uc *UseCase) effectiveCalendar(ctx context.Context, resource *resourceservice.Resource) (*domain.OperatingCalendar, error) {
	cal, err := uc.calendarRepo.GetByResourceID(ctx, resource.ID)
	if err == nil {
		return cal, nil
	}
	if errors.Is(err, calendar.ErrCalendarNotFound) {
		return domain.DefaultCalendar(resource.ID, resource.OwnerID, resource.MatchDurationMinutes), nil
	}

	uc.logger.Error("[CreateReservation] Failed to get calendar: resource_id=%d, error=%v", resource.ID, err)
	return nil, fmt.Errorf("%w: get calendar: %v", ErrInternal, err)
}

// ensureCalendar возвращает календарь ресурса, лениво создавая дефолтный
// при отсутствии. Гонка создания разрешается повторным чтением.
func (uc *UseCase) ensureCalendar(ctx context.Context, resource *resourceservice.Resource) (*domain.OperatingCalendar, error) {
	cal, err := uc.calendarRepo.GetByResourceID(ctx, resource.ID)
	if err == nil {
		return cal, nil
	}
	if !errors.Is(err, calendar.ErrCalendarNotFound) {
		return nil, fmt.Errorf("%w: get calendar: %v", ErrInternal, err)
	}

	created, err := uc.calendarRepo.Create(ctx, domain.DefaultCalendar(resource.ID, resource.OwnerID, resource.MatchDurationMinutes))
	if err == nil {
		uc.logger.Info("[CreateReservation] Default calendar created: resource_id=%d", resource.ID)
		return created, nil
	}
	if errors.Is(err, calendar.ErrCalendarAlreadyExists) {
		cal, err = uc.calendarRepo.GetByResourceID(ctx, resource.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: re-get calendar: %v", ErrInternal, err)
		}
		return cal, nil
	}

	return nil, fmt.Errorf("%w: create default calendar: %v", ErrInternal, err)
}

// checkConflicts проверяет конфликты слота с подтверждёнными бронями ресурса
// и пересечения с бронями самого заявителя на любых ресурсах.
// При inTx=true конфликт любого вида означает, что слот перехватили между
// предварительной проверкой и коммитом, и возвращается ErrSlotUnavailable.
func (uc *UseCase) checkConflicts(ctx context.Context, req Request, endMinute minutes.MinuteOfDay, inTx bool) error {
	resourceReservations, err := uc.reservationRepo.GetByResourceAndDate(ctx, req.ResourceID, req.Date)
	if err != nil {
		return fmt.Errorf("%w: get resource reservations: %v", ErrInternal, err)
	}

	if conflict := domain.FindConflict(resourceReservations, req.StartMinute, endMinute); conflict != nil {
		return fmt.Errorf("%w: slot %s-%s conflicts with reservation id=%d (%s-%s)",
			ErrSlotUnavailable, req.StartMinute, endMinute,
			conflict.ID, conflict.StartMinute, conflict.EndMinute)
	}

	requesterReservations, err := uc.reservationRepo.GetByRequesterAndDate(ctx, req.RequesterID, req.Date)
	if err != nil {
		return fmt.Errorf("%w: get requester reservations: %v", ErrInternal, err)
	}

	if conflict := domain.FindRequesterConflict(requesterReservations, req.StartMinute, endMinute); conflict != nil {
		if inTx {
			return fmt.Errorf("%w: requester conflict discovered during re-validation, reservation id=%d",
				ErrSlotUnavailable, conflict.ID)
		}
		return fmt.Errorf("%w: reservation id=%d on resource_id=%d at %s-%s",
			ErrRequesterDoubleBooked, conflict.ID, conflict.ResourceID,
			conflict.StartMinute, conflict.EndMinute)
	}

	return nil
}

// mapTxError переводит ошибки транзакции в ошибки usecase
func (uc *UseCase) mapTxError(err error, req Request) error {
	switch {
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrInvalidDate),
		errors.Is(err, ErrOutsideAdvanceWindow),
		errors.Is(err, ErrDateBlocked),
		errors.Is(err, ErrResourceClosed),
		errors.Is(err, ErrOutsideWorkingHours),
		errors.Is(err, ErrSlotUnavailable),
		errors.Is(err, ErrRequesterDoubleBooked),
		errors.Is(err, ErrInternal):
		return err
	case errors.Is(err, reservation.ErrSlotTaken):
		// Сработал частичный уникальный индекс: слот заняли конкурентно
		return fmt.Errorf("%w: resource_id=%d, date=%s, start=%s",
			ErrSlotUnavailable, req.ResourceID, req.Date.Format(domain.DateFormat), req.StartMinute)
	case txmanager.IsSerializationFailure(err):
		uc.logger.Warn("[CreateReservation] Serialization conflict: resource_id=%d, date=%s, error=%v",
			req.ResourceID, req.Date.Format(domain.DateFormat), err)
		return fmt.Errorf("%w: %v", ErrBusy, err)
	case errors.Is(err, txmanager.ErrBeginTx), errors.Is(err, txmanager.ErrCommitTx):
		uc.logger.Error("[CreateReservation] Transaction error: resource_id=%d, error=%v", req.ResourceID, err)
		return fmt.Errorf("%w: transaction: %v", ErrInternal, err)
	default:
		uc.logger.Error("[CreateReservation] Failed to create reservation: resource_id=%d, error=%v", req.ResourceID, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
