package create_reservation

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/minutes"
)

// validateRequest проверяет базовую корректность входных данных
func validateRequest(req Request) error {
	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	if req.RequesterID <= 0 {
		return fmt.Errorf("%w: requesterID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if !req.StartMinute.Valid() {
		return fmt.Errorf("%w: startMinute is out of range", ErrInvalidInput)
	}

	if req.PartySize < 0 {
		return fmt.Errorf("%w: partySize must not be negative", ErrInvalidInput)
	}

	if req.PartySize > domain.MaxPartySize {
		return fmt.Errorf("%w: partySize must not exceed %d", ErrInvalidInput, domain.MaxPartySize)
	}

	if req.TeamID != nil && *req.TeamID <= 0 {
		return fmt.Errorf("%w: teamID must be positive", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом и попадает в окно
// предварительного бронирования календаря. Сравнение идет по календарным
// дням: бронь на сегодня допустима.
func validateDate(now, date time.Time, advanceBookingDays int) error {
	today := truncateToDay(now)
	day := truncateToDay(date)

	if day.Before(today) {
		return fmt.Errorf("%w: date %s is in the past", ErrInvalidDate, date.Format(domain.DateFormat))
	}

	if advanceBookingDays > 0 {
		horizon := today.AddDate(0, 0, advanceBookingDays)
		if day.After(horizon) {
			return fmt.Errorf("%w: date %s is more than %d days ahead",
				ErrOutsideAdvanceWindow, date.Format(domain.DateFormat), advanceBookingDays)
		}
	}

	return nil
}

// validateSlot проверяет, что запрошенный слот попадает в рабочие часы
// ресурса в этот день и день не заблокирован
func validateSlot(cal *domain.OperatingCalendar, date time.Time, start, end minutes.MinuteOfDay) error {
	if cal.IsDateBlocked(date) {
		return fmt.Errorf("%w: %s", ErrDateBlocked, date.Format(domain.DateFormat))
	}

	hours := cal.WorkingHoursFor(date.Weekday())
	if !hours.IsOpen {
		return fmt.Errorf("%w: %s", ErrResourceClosed, date.Weekday())
	}

	if !domain.SlotWithinWorkingHours(hours, start, end) {
		return fmt.Errorf("%w: slot %s-%s, working hours %s-%s",
			ErrOutsideWorkingHours, start, end, hours.OpenMinute, hours.CloseMinute)
	}

	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
