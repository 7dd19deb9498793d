package calendars

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/calendar"
	resourceClient "github.com/m04kA/SMC-CourtBookingService/internal/integrations/resourceservice"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/calendars/models"
)

// Service сервис для работы с операционными календарями ресурсов
type Service struct {
	calendarRepo   CalendarRepository
	resourceClient ResourceServiceClient
	logger         Logger
}

// NewService создает новый экземпляр сервиса календарей
func NewService(
	calendarRepo CalendarRepository,
	resourceClient ResourceServiceClient,
	logger Logger,
) *Service {
	return &Service{
		calendarRepo:   calendarRepo,
		resourceClient: resourceClient,
		logger:         logger,
	}
}

// Get возвращает действующий календарь ресурса
// Публичный метод - при отсутствии сохранённого календаря возвращает дефолтный
func (s *Service) Get(ctx context.Context, resourceID int64) (*models.CalendarResponse, error) {
	s.logger.Info("Get: fetching calendar for resource=%d", resourceID)

	resource, err := s.getResource(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	cal, err := s.calendarRepo.GetByResourceID(ctx, resourceID)
	if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
		s.logger.Info("Get: no stored calendar for resource=%d, returning defaults", resourceID)
		return models.FromDomainCalendar(domain.DefaultCalendar(resource.ID, resource.OwnerID, resource.MatchDurationMinutes)), nil
	}
	if err != nil {
		s.logger.Error("Get: repository error for resource=%d: %v", resourceID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Get: successfully fetched calendar for resource=%d", resourceID)
	return models.FromDomainCalendar(cal), nil
}

// Update полностью заменяет календарь ресурса (upsert)
// Доступно только владельцу ресурса
func (s *Service) Update(ctx context.Context, resourceID int64, req *models.UpdateCalendarRequest) (*models.CalendarResponse, error) {
	s.logger.Info("Update: updating calendar for resource=%d by user=%d", resourceID, req.UserID)

	resource, err := s.getResource(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	if resource.OwnerID != req.UserID {
		s.logger.Warn("Update: user=%d is not the owner of resource=%d", req.UserID, resourceID)
		return nil, ErrAccessDenied
	}

	cal, err := req.ToDomainCalendar(resourceID, resource.OwnerID)
	if err != nil {
		s.logger.Warn("Update: invalid calendar payload for resource=%d: %v", resourceID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.validateCalendar(cal); err != nil {
		s.logger.Warn("Update: validation failed for resource=%d: %v", resourceID, err)
		return nil, err
	}

	updated, err := s.calendarRepo.Update(ctx, cal)
	if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
		// Календаря ещё нет - создаём
		updated, err = s.calendarRepo.Create(ctx, cal)
		if errors.Is(err, calendarRepo.ErrCalendarAlreadyExists) {
			// Гонка с параллельным созданием - повторяем обновление
			updated, err = s.calendarRepo.Update(ctx, cal)
		}
	}
	if err != nil {
		s.logger.Error("Update: repository error for resource=%d: %v", resourceID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated calendar for resource=%d", resourceID)
	return models.FromDomainCalendar(updated), nil
}

// Вспомогательные методы

func (s *Service) getResource(ctx context.Context, resourceID int64) (*resourceClient.Resource, error) {
	resource, err := s.resourceClient.GetResource(ctx, resourceID)
	if err != nil {
		if errors.Is(err, resourceClient.ErrResourceNotFound) {
			s.logger.Warn("getResource: resource id=%d not found", resourceID)
			return nil, ErrResourceNotFound
		}
		s.logger.Error("getResource: failed to get resource id=%d: %v", resourceID, err)
		return nil, fmt.Errorf("%w: getResource: %v", ErrUpstreamUnavailable, err)
	}
	return resource, nil
}

// validateCalendar проверяет бизнес-правила календаря
func (s *Service) validateCalendar(cal *domain.OperatingCalendar) error {
	days := []struct {
		name  string
		hours domain.DayHours
	}{
		{"monday", cal.WeeklyHours.Monday},
		{"tuesday", cal.WeeklyHours.Tuesday},
		{"wednesday", cal.WeeklyHours.Wednesday},
		{"thursday", cal.WeeklyHours.Thursday},
		{"friday", cal.WeeklyHours.Friday},
		{"saturday", cal.WeeklyHours.Saturday},
		{"sunday", cal.WeeklyHours.Sunday},
	}

	for _, day := range days {
		if !day.hours.IsOpen {
			continue
		}
		if !day.hours.OpenMinute.Valid() || !day.hours.CloseMinute.Valid() {
			return fmt.Errorf("%w: %s: time is out of range", ErrInvalidInput, day.name)
		}
		if !day.hours.OpenMinute.Before(day.hours.CloseMinute) {
			return fmt.Errorf("%w: %s: open time must be before close time", ErrInvalidInput, day.name)
		}
	}

	if cal.MatchDurationMinutes < domain.MinMatchDurationMinutes || cal.MatchDurationMinutes > domain.MaxMatchDurationMinutes {
		return fmt.Errorf("%w: matchDurationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinMatchDurationMinutes, domain.MaxMatchDurationMinutes)
	}

	if cal.SlotDurationMinutes < 0 {
		return fmt.Errorf("%w: slotDurationMinutes must not be negative", ErrInvalidInput)
	}

	if cal.AdvanceBookingDays < domain.MinAdvanceBookingDays || cal.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	if cal.Pricing.BasePrice < 0 {
		return fmt.Errorf("%w: basePrice must not be negative", ErrInvalidInput)
	}

	for _, rule := range cal.Pricing.PeakRules {
		if rule.Multiplier <= 0 {
			return fmt.Errorf("%w: peak rule multiplier must be positive", ErrInvalidInput)
		}
		if !rule.StartMinute.Before(rule.EndMinute) {
			return fmt.Errorf("%w: peak rule start time must be before end time", ErrInvalidInput)
		}
	}

	for _, sp := range cal.Pricing.SpecialDates {
		if sp.OverridePrice < 0 {
			return fmt.Errorf("%w: special date price must not be negative", ErrInvalidInput)
		}
	}

	if cal.Cancellation.DeadlineHours < 0 {
		return fmt.Errorf("%w: cancellation deadline must not be negative", ErrInvalidInput)
	}

	if cal.Cancellation.RefundPercent < 0 || cal.Cancellation.RefundPercent > domain.MaxRefundPercent {
		return fmt.Errorf("%w: refundPercent must be between 0 and %d", ErrInvalidInput, domain.MaxRefundPercent)
	}

	return nil
}
