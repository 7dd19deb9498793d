package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsDateBlocked_OneOff(t *testing.T) {
	blocked := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	cal := DefaultCalendar(1, 10, 60)
	cal.BlockedDates = []BlockedDate{{Date: blocked}}

	assert.True(t, cal.IsDateBlocked(blocked))
	// Время суток в записи игнорируется
	assert.True(t, cal.IsDateBlocked(time.Date(2026, 12, 31, 15, 30, 0, 0, time.UTC)))
	assert.False(t, cal.IsDateBlocked(blocked.AddDate(0, 0, 1)))
	assert.False(t, cal.IsDateBlocked(blocked.AddDate(1, 0, 0)))
}

func TestIsDateBlocked_Weekly(t *testing.T) {
	// 7 сентября 2026 - понедельник
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	cal := DefaultCalendar(1, 10, 60)
	cal.BlockedDates = []BlockedDate{{Date: monday, IsRecurring: true, Recurrence: RecurrenceWeekly}}

	assert.True(t, cal.IsDateBlocked(monday))
	assert.True(t, cal.IsDateBlocked(monday.AddDate(0, 0, 7)))
	assert.True(t, cal.IsDateBlocked(monday.AddDate(0, 0, 70)))
	assert.False(t, cal.IsDateBlocked(monday.AddDate(0, 0, 1)))
}

func TestIsDateBlocked_Monthly(t *testing.T) {
	first := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	cal := DefaultCalendar(1, 10, 60)
	cal.BlockedDates = []BlockedDate{{Date: first, IsRecurring: true, Recurrence: RecurrenceMonthly}}

	assert.True(t, cal.IsDateBlocked(first))
	assert.True(t, cal.IsDateBlocked(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, cal.IsDateBlocked(time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, cal.IsDateBlocked(time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC)))
}

func TestIsDateBlocked_Yearly(t *testing.T) {
	newYear := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cal := DefaultCalendar(1, 10, 60)
	cal.BlockedDates = []BlockedDate{{Date: newYear, IsRecurring: true, Recurrence: RecurrenceYearly}}

	assert.True(t, cal.IsDateBlocked(newYear))
	assert.True(t, cal.IsDateBlocked(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, cal.IsDateBlocked(time.Date(2027, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, cal.IsDateBlocked(time.Date(2027, 1, 2, 0, 0, 0, 0, time.UTC)))
}

func TestIsDateBlocked_UnknownRecurrenceTreatedAsOneOff(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	cal := DefaultCalendar(1, 10, 60)
	cal.BlockedDates = []BlockedDate{{Date: date, IsRecurring: true, Recurrence: RecurrenceKind("daily")}}

	assert.True(t, cal.IsDateBlocked(date))
	assert.False(t, cal.IsDateBlocked(date.AddDate(0, 0, 7)))
}

func TestDefaultCalendar(t *testing.T) {
	cal := DefaultCalendar(42, 7, 0)

	assert.Equal(t, int64(42), cal.ResourceID)
	assert.Equal(t, int64(7), cal.OwnerID)
	// Нулевая длительность матча заменяется дефолтной
	assert.Equal(t, DefaultMatchDurationMinutes, cal.MatchDurationMinutes)
	assert.Equal(t, DefaultAdvanceBookingDays, cal.AdvanceBookingDays)
	assert.True(t, cal.Cancellation.AllowCancellation)

	for d := time.Sunday; d <= time.Saturday; d++ {
		hours := cal.WorkingHoursFor(d)
		assert.True(t, hours.IsOpen)
		assert.Equal(t, "08:00", hours.OpenMinute.String())
		assert.Equal(t, "22:00", hours.CloseMinute.String())
	}

	withDuration := DefaultCalendar(42, 7, 90)
	assert.Equal(t, 90, withDuration.MatchDurationMinutes)
}
