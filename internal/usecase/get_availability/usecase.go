package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/calendar"
	"github.com/m04kA/SMC-CourtBookingService/internal/integrations/resourceservice"
)

// UseCase расчёт сетки доступности ресурса на дату.
// Чтение без блокировок: сетка - моментальный снимок, слот может быть
// занят между просмотром и попыткой бронирования.
type UseCase struct {
	reservationRepo ReservationRepository
	calendarRepo    CalendarRepository
	resourceClient  ResourceServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр UseCase для расчёта доступности
func NewUseCase(
	reservationRepo ReservationRepository,
	calendarRepo CalendarRepository,
	resourceClient ResourceServiceClient,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		calendarRepo:    calendarRepo,
		resourceClient:  resourceClient,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Execute возвращает все слоты ресурса на дату с признаком доступности
// и ценой за каждый слот
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	// 1. Валидация входных данных
	if req.ResourceID <= 0 {
		return nil, fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.PartySize < 0 || req.PartySize > domain.MaxPartySize {
		return nil, fmt.Errorf("%w: partySize must be between 0 and %d", ErrInvalidInput, domain.MaxPartySize)
	}

	partySize := req.PartySize
	if partySize == 0 {
		partySize = 1
	}

	// 2. Получаем метаданные ресурса из реестра
	resource, err := uc.resourceClient.GetResource(ctx, req.ResourceID)
	if err != nil {
		switch {
		case errors.Is(err, resourceservice.ErrResourceNotFound):
			return nil, fmt.Errorf("%w: resource_id=%d", ErrResourceNotFound, req.ResourceID)
		default:
			uc.logger.Error("[GetAvailability] Resource service unavailable: resource_id=%d, error=%v", req.ResourceID, err)
			return nil, fmt.Errorf("%w: resource service: %v", ErrUpstreamUnavailable, err)
		}
	}

	// 3. Календарь ресурса: сохранённый или дефолтный, без записи в БД
	cal, err := uc.calendarRepo.GetByResourceID(ctx, req.ResourceID)
	if errors.Is(err, calendar.ErrCalendarNotFound) {
		cal = domain.DefaultCalendar(resource.ID, resource.OwnerID, resource.MatchDurationMinutes)
	} else if err != nil {
		uc.logger.Error("[GetAvailability] Failed to get calendar: resource_id=%d, error=%v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: get calendar: %v", ErrInternal, err)
	}

	// 4. Проверка даты: прошлое и горизонт бронирования
	if err := uc.validateDate(req.Date, cal.AdvanceBookingDays); err != nil {
		return nil, err
	}

	// 5. Генерация сетки слотов по рабочим часам
	slots := domain.GenerateSlots(cal, req.Date)
	if len(slots) == 0 {
		return &Response{ResourceID: req.ResourceID, Date: req.Date, Slots: []domain.AvailableSlot{}}, nil
	}

	// 6. Разметка занятости по существующим броням и расчёт цены
	reservations, err := uc.reservationRepo.GetByResourceAndDate(ctx, req.ResourceID, req.Date)
	if err != nil {
		uc.logger.Error("[GetAvailability] Failed to get reservations: resource_id=%d, error=%v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: get reservations: %v", ErrInternal, err)
	}

	available := make([]domain.AvailableSlot, 0, len(slots))
	for _, slot := range slots {
		conflict := domain.FindConflict(reservations, slot.StartMinute, slot.EndMinute)
		available = append(available, domain.AvailableSlot{
			StartMinute: slot.StartMinute,
			EndMinute:   slot.EndMinute,
			IsAvailable: conflict == nil,
			Price:       domain.QuotePrice(cal, req.Date, slot.StartMinute, slot.EndMinute, partySize),
		})
	}

	return &Response{ResourceID: req.ResourceID, Date: req.Date, Slots: available}, nil
}

func (uc *UseCase) validateDate(date time.Time, advanceBookingDays int) error {
	now := uc.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	if day.Before(today) {
		return fmt.Errorf("%w: date %s is in the past", ErrInvalidDate, date.Format(domain.DateFormat))
	}

	if advanceBookingDays > 0 && day.After(today.AddDate(0, 0, advanceBookingDays)) {
		return fmt.Errorf("%w: date %s is more than %d days ahead",
			ErrOutsideAdvanceWindow, date.Format(domain.DateFormat), advanceBookingDays)
	}

	return nil
}
