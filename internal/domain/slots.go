package domain

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/pkg/minutes"
)

// GenerateSlots генерирует упорядоченный список слотов-кандидатов на дату.
// Чистая функция календаря и даты: существующие бронирования не учитываются,
// доступность считается отдельно (см. conflict.go).
//
// Правила:
//   - закрытый или заблокированный день - пустой список;
//   - шаг сетки равен SlotDurationMinutes, если он делит MatchDurationMinutes
//     нацело, иначе шаг равен MatchDurationMinutes;
//   - слот не может выходить за время закрытия: последний старт -
//     closeTime - matchDuration включительно;
//   - окно короче matchDuration - пустой список, не ошибка.
func GenerateSlots(cal *OperatingCalendar, date time.Time) []Slot {
	hours := cal.WorkingHoursFor(date.Weekday())
	if !hours.IsOpen {
		return []Slot{}
	}

	if cal.IsDateBlocked(date) {
		return []Slot{}
	}

	matchDuration := cal.MatchDurationMinutes
	if matchDuration <= 0 {
		return []Slot{}
	}

	step := matchDuration
	if cal.SlotDurationMinutes > 0 && matchDuration%cal.SlotDurationMinutes == 0 {
		step = cal.SlotDurationMinutes
	}

	lastStart := hours.CloseMinute.Add(-matchDuration)

	slots := make([]Slot, 0)
	for start := hours.OpenMinute; !start.After(lastStart); start = start.Add(step) {
		slots = append(slots, Slot{
			StartMinute: start,
			EndMinute:   start.Add(matchDuration),
		})
	}

	return slots
}

// SlotWithinWorkingHours проверяет, что интервал [start, end) целиком лежит
// внутри рабочих часов дня
func SlotWithinWorkingHours(hours DayHours, start, end minutes.MinuteOfDay) bool {
	if !hours.IsOpen {
		return false
	}
	return !start.Before(hours.OpenMinute) && !end.After(hours.CloseMinute)
}
