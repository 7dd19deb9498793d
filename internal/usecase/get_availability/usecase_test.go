package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/calendar"
	"github.com/m04kA/SMC-CourtBookingService/internal/integrations/resourceservice"
)

type fakeReservationRepo struct {
	reservations []*domain.Reservation
	err          error
}

func (f *fakeReservationRepo) GetByResourceAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Reservation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.reservations, nil
}

type fakeCalendarRepo struct {
	calendar *domain.OperatingCalendar
}

func (f *fakeCalendarRepo) GetByResourceID(_ context.Context, _ int64) (*domain.OperatingCalendar, error) {
	if f.calendar == nil {
		return nil, calendarRepo.ErrCalendarNotFound
	}
	return f.calendar, nil
}

type fakeResourceClient struct {
	resource *resourceservice.Resource
	err      error
}

func (f *fakeResourceClient) GetResource(_ context.Context, _ int64) (*resourceservice.Resource, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.resource, nil
}

type fakeTime struct {
	now time.Time
}

func (f *fakeTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	reservations *fakeReservationRepo
	calendars    *fakeCalendarRepo
	resources    *fakeResourceClient
	uc           *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		reservations: &fakeReservationRepo{},
		calendars:    &fakeCalendarRepo{},
		resources: &fakeResourceClient{
			resource: &resourceservice.Resource{
				ID:                   1,
				OwnerID:              10,
				MatchDurationMinutes: 90,
			},
		},
	}
	clock := &fakeTime{now: time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)}
	f.uc = NewUseCase(f.reservations, f.calendars, f.resources, clock, nopLogger{})
	return f
}

// Вторник с рабочими часами 08:00-20:00 и матчем 90 минут
func tightCalendar() *domain.OperatingCalendar {
	cal := domain.DefaultCalendar(1, 10, 90)
	cal.Pricing.BasePrice = 20
	hours := domain.DayHours{IsOpen: true, OpenMinute: 480, CloseMinute: 1200}
	cal.WeeklyHours = domain.WeeklyHours{
		Monday: hours, Tuesday: hours, Wednesday: hours, Thursday: hours,
		Friday: hours, Saturday: hours, Sunday: hours,
	}
	return cal
}

func testDate() time.Time {
	return time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
}

func TestExecute_FullGrid(t *testing.T) {
	f := newFixture()
	f.calendars.calendar = tightCalendar()

	resp, err := f.uc.Execute(context.Background(), Request{ResourceID: 1, Date: testDate(), PartySize: 2})
	require.NoError(t, err)

	// 08:00-20:00 при шаге 90 минут - 8 слотов, последний 18:30-20:00
	require.Len(t, resp.Slots, 8)
	assert.Equal(t, "08:00", resp.Slots[0].StartMinute.String())
	assert.Equal(t, "09:30", resp.Slots[0].EndMinute.String())
	assert.Equal(t, "18:30", resp.Slots[7].StartMinute.String())
	assert.Equal(t, "20:00", resp.Slots[7].EndMinute.String())

	for _, slot := range resp.Slots {
		assert.True(t, slot.IsAvailable)
		assert.Equal(t, 40.0, slot.Price)
	}
}

func TestExecute_ConfirmedReservationMarksSlotUnavailable(t *testing.T) {
	f := newFixture()
	f.calendars.calendar = tightCalendar()
	f.reservations.reservations = []*domain.Reservation{
		{ID: 5, ResourceID: 1, StartMinute: 570, EndMinute: 660, Status: domain.StatusConfirmed}, // 09:30-11:00
	}

	resp, err := f.uc.Execute(context.Background(), Request{ResourceID: 1, Date: testDate()})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 8)

	// Бронь 09:30-11:00 задевает только второй слот сетки
	assert.True(t, resp.Slots[0].IsAvailable) // 08:00-09:30, смежный слот свободен
	assert.False(t, resp.Slots[1].IsAvailable)
	assert.True(t, resp.Slots[2].IsAvailable) // 11:00-12:30 начинается ровно в конце брони
}

func TestExecute_PendingDoesNotBlock(t *testing.T) {
	f := newFixture()
	f.calendars.calendar = tightCalendar()
	f.reservations.reservations = []*domain.Reservation{
		{ID: 5, ResourceID: 1, StartMinute: 570, EndMinute: 660, Status: domain.StatusPending},
	}

	resp, err := f.uc.Execute(context.Background(), Request{ResourceID: 1, Date: testDate()})
	require.NoError(t, err)

	for _, slot := range resp.Slots {
		assert.True(t, slot.IsAvailable)
	}
}

func TestExecute_PartySizeScalesPrice(t *testing.T) {
	f := newFixture()
	f.calendars.calendar = tightCalendar()

	solo, err := f.uc.Execute(context.Background(), Request{ResourceID: 1, Date: testDate()})
	require.NoError(t, err)
	group, err := f.uc.Execute(context.Background(), Request{ResourceID: 1, Date: testDate(), PartySize: 4})
	require.NoError(t, err)

	// PartySize=0 трактуется как 1
	assert.Equal(t, 20.0, solo.Slots[0].Price)
	assert.Equal(t, 80.0, group.Slots[0].Price)
}

func TestExecute_DefaultCalendarWhenNoneStored(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), Request{ResourceID: 1, Date: testDate()})
	require.NoError(t, err)

	// Дефолтный календарь: 08:00-22:00 с матчем 90 минут из реестра ресурсов
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, "08:00", resp.Slots[0].StartMinute.String())
	assert.Equal(t, "09:30", resp.Slots[0].EndMinute.String())
	// Календарь не сохраняется при чтении
	assert.Nil(t, f.calendars.calendar)
}

func TestExecute_ClosedDayReturnsEmptyGrid(t *testing.T) {
	f := newFixture()
	cal := tightCalendar()
	cal.WeeklyHours.Tuesday = domain.DayHours{IsOpen: false}
	f.calendars.calendar = cal

	resp, err := f.uc.Execute(context.Background(), Request{ResourceID: 1, Date: testDate()})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.NotNil(t, resp.Slots)
}

func TestExecute_BlockedDateReturnsEmptyGrid(t *testing.T) {
	f := newFixture()
	cal := tightCalendar()
	cal.BlockedDates = []domain.BlockedDate{{Date: testDate()}}
	f.calendars.calendar = cal

	resp, err := f.uc.Execute(context.Background(), Request{ResourceID: 1, Date: testDate()})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ResourceNotFound(t *testing.T) {
	f := newFixture()
	f.resources.err = resourceservice.ErrResourceNotFound

	_, err := f.uc.Execute(context.Background(), Request{ResourceID: 1, Date: testDate()})
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestExecute_ResourceServiceDown(t *testing.T) {
	f := newFixture()
	f.resources.err = resourceservice.ErrServiceUnavailable

	_, err := f.uc.Execute(context.Background(), Request{ResourceID: 1, Date: testDate()})
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestExecute_DateValidation(t *testing.T) {
	f := newFixture()
	f.calendars.calendar = tightCalendar()

	_, err := f.uc.Execute(context.Background(), Request{ResourceID: 1, Date: time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC)})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = f.uc.Execute(context.Background(), Request{ResourceID: 1, Date: time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)})
	assert.ErrorIs(t, err, ErrOutsideAdvanceWindow)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), Request{ResourceID: 0, Date: testDate()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), Request{ResourceID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), Request{ResourceID: 1, Date: testDate(), PartySize: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
