package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/pkg/minutes"
)

func mustMinute(t *testing.T, s string) minutes.MinuteOfDay {
	t.Helper()
	m, err := minutes.Parse(s)
	require.NoError(t, err)
	return m
}

// Вторник 15 сентября 2026
func testDate() time.Time {
	return time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
}

func testCalendar(t *testing.T, matchDuration, slotDuration int) *OperatingCalendar {
	t.Helper()
	cal := DefaultCalendar(1, 10, matchDuration)
	cal.SlotDurationMinutes = slotDuration
	return cal
}

func TestGenerateSlots_LastSlotFitsBeforeClose(t *testing.T) {
	cal := testCalendar(t, 90, 0)
	day := DayHours{IsOpen: true, OpenMinute: mustMinute(t, "08:00"), CloseMinute: mustMinute(t, "20:00")}
	cal.WeeklyHours.Tuesday = day

	slots := GenerateSlots(cal, testDate())
	require.NotEmpty(t, slots)

	// 08:00-20:00 при 90-минутном матче и шаге 90: последний старт 18:30
	first := slots[0]
	last := slots[len(slots)-1]
	assert.Equal(t, "08:00", first.StartMinute.String())
	assert.Equal(t, "09:30", first.EndMinute.String())
	assert.Equal(t, "18:30", last.StartMinute.String())
	assert.Equal(t, "20:00", last.EndMinute.String())

	for _, slot := range slots {
		assert.False(t, slot.EndMinute.After(day.CloseMinute),
			"slot %s-%s must not cross closing time", slot.StartMinute, slot.EndMinute)
	}
}

func TestGenerateSlots_StepFollowsSlotDurationWhenDivisible(t *testing.T) {
	cal := testCalendar(t, 60, 30)
	cal.WeeklyHours.Tuesday = DayHours{IsOpen: true, OpenMinute: mustMinute(t, "08:00"), CloseMinute: mustMinute(t, "10:00")}

	slots := GenerateSlots(cal, testDate())
	require.Len(t, slots, 3)

	// 30 делит 60: сетка с перехлёстом 08:00, 08:30, 09:00
	assert.Equal(t, "08:00", slots[0].StartMinute.String())
	assert.Equal(t, "08:30", slots[1].StartMinute.String())
	assert.Equal(t, "09:00", slots[2].StartMinute.String())
	assert.Equal(t, "10:00", slots[2].EndMinute.String())
}

func TestGenerateSlots_StepFallsBackToMatchDuration(t *testing.T) {
	// 40 не делит 90 нацело: шаг равен длительности матча
	cal := testCalendar(t, 90, 40)
	cal.WeeklyHours.Tuesday = DayHours{IsOpen: true, OpenMinute: mustMinute(t, "08:00"), CloseMinute: mustMinute(t, "12:30")}

	slots := GenerateSlots(cal, testDate())
	require.Len(t, slots, 3)
	assert.Equal(t, "08:00", slots[0].StartMinute.String())
	assert.Equal(t, "09:30", slots[1].StartMinute.String())
	assert.Equal(t, "11:00", slots[2].StartMinute.String())
}

func TestGenerateSlots_ClosedDay(t *testing.T) {
	cal := testCalendar(t, 60, 30)
	cal.WeeklyHours.Tuesday = DayHours{IsOpen: false}

	assert.Empty(t, GenerateSlots(cal, testDate()))
}

func TestGenerateSlots_BlockedDate(t *testing.T) {
	cal := testCalendar(t, 60, 30)
	cal.BlockedDates = []BlockedDate{{Date: testDate()}}

	assert.Empty(t, GenerateSlots(cal, testDate()))
}

func TestGenerateSlots_WindowShorterThanMatch(t *testing.T) {
	cal := testCalendar(t, 90, 0)
	cal.WeeklyHours.Tuesday = DayHours{IsOpen: true, OpenMinute: mustMinute(t, "08:00"), CloseMinute: mustMinute(t, "09:00")}

	assert.Empty(t, GenerateSlots(cal, testDate()))
}

func TestSlotWithinWorkingHours(t *testing.T) {
	day := DayHours{IsOpen: true, OpenMinute: mustMinute(t, "08:00"), CloseMinute: mustMinute(t, "22:00")}

	assert.True(t, SlotWithinWorkingHours(day, mustMinute(t, "08:00"), mustMinute(t, "09:00")))
	assert.True(t, SlotWithinWorkingHours(day, mustMinute(t, "21:00"), mustMinute(t, "22:00")))
	assert.False(t, SlotWithinWorkingHours(day, mustMinute(t, "07:30"), mustMinute(t, "08:30")))
	assert.False(t, SlotWithinWorkingHours(day, mustMinute(t, "21:30"), mustMinute(t, "22:30")))
	assert.False(t, SlotWithinWorkingHours(DayHours{IsOpen: false}, mustMinute(t, "10:00"), mustMinute(t, "11:00")))
}
