package create_reservation

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/calendar"
	reservationRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-CourtBookingService/internal/integrations/resourceservice"
	"github.com/m04kA/SMC-CourtBookingService/internal/integrations/teamservice"
	"github.com/m04kA/SMC-CourtBookingService/pkg/minutes"
	"github.com/m04kA/SMC-CourtBookingService/pkg/ptr"
)

// Фейки зависимостей

type fakeReservationRepo struct {
	byResource  []*domain.Reservation
	byRequester []*domain.Reservation
	createErr   error
	created     *domain.Reservation
	nextID      int64
}

func (f *fakeReservationRepo) Create(_ context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	r.ID = f.nextID
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	f.created = r
	return r, nil
}

func (f *fakeReservationRepo) GetByResourceAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Reservation, error) {
	return f.byResource, nil
}

func (f *fakeReservationRepo) GetByRequesterAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Reservation, error) {
	return f.byRequester, nil
}

type fakeCalendarRepo struct {
	calendar  *domain.OperatingCalendar
	createErr error
}

func (f *fakeCalendarRepo) GetByResourceID(_ context.Context, _ int64) (*domain.OperatingCalendar, error) {
	if f.calendar == nil {
		return nil, calendarRepo.ErrCalendarNotFound
	}
	return f.calendar, nil
}

func (f *fakeCalendarRepo) Create(_ context.Context, cal *domain.OperatingCalendar) (*domain.OperatingCalendar, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.calendar = cal
	return cal, nil
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

type fakeTeamClient struct {
	team *teamservice.Team
	err  error
}

func (f *fakeTeamClient) GetTeamWithGracefulDegradation(_ context.Context, _ int64) (*teamservice.Team, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.team, nil
}

type fakeTxManager struct {
	err error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
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
	teams        *fakeTeamClient
	tx           *fakeTxManager
	clock        *fakeTime
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
				Name:                 "Корт 1",
				MatchDurationMinutes: 90,
				DefaultPartySize:     4,
			},
		},
		teams: &fakeTeamClient{},
		tx:    &fakeTxManager{},
		clock: &fakeTime{now: time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)},
	}
	f.uc = NewUseCase(f.reservations, f.calendars, f.resources, f.teams, f.tx, f.clock, nopLogger{})
	return f
}

func validRequest() Request {
	return Request{
		ResourceID:  1,
		RequesterID: 100,
		Date:        time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartMinute: minutes.MinuteOfDay(600), // 10:00
		PartySize:   2,
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()
	f.calendars.calendar = domain.DefaultCalendar(1, 10, 90)
	f.calendars.calendar.Pricing.BasePrice = 25

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, resp.Reservation)

	r := resp.Reservation
	assert.Equal(t, domain.StatusConfirmed, r.Status)
	assert.Equal(t, "10:00", r.StartMinute.String())
	assert.Equal(t, "11:30", r.EndMinute.String())
	assert.Equal(t, 2, r.PartySize)
	assert.Equal(t, 50.0, r.TotalPrice)
}

func TestExecute_DeferPaymentCreatesPending(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.DeferPayment = true

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, resp.Reservation.Status)
}

func TestExecute_LazyDefaultCalendarCreated(t *testing.T) {
	f := newFixture()
	require.Nil(t, f.calendars.calendar)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Календарь создан лениво с длительностью матча из реестра ресурсов
	require.NotNil(t, f.calendars.calendar)
	assert.Equal(t, 90, f.calendars.calendar.MatchDurationMinutes)
	assert.Equal(t, "11:30", resp.Reservation.EndMinute.String())
}

func TestExecute_ResourceNotFound(t *testing.T) {
	f := newFixture()
	f.resources.err = resourceservice.ErrResourceNotFound

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestExecute_ResourceServiceDown(t *testing.T) {
	f := newFixture()
	f.resources.err = resourceservice.ErrServiceUnavailable

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestExecute_PartySizeFromTeamRoster(t *testing.T) {
	f := newFixture()
	f.teams.team = &teamservice.Team{ID: 5, CaptainID: 100, Name: "Спартак", RosterSize: 10}

	req := validRequest()
	req.PartySize = 0
	req.TeamID = ptr.Ptr(int64(5))

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	// Состав команды плюс капитан
	assert.Equal(t, 11, resp.Reservation.PartySize)
}

func TestExecute_TeamDegradedFallsBackToResourceDefault(t *testing.T) {
	f := newFixture()
	f.teams.err = teamservice.ErrServiceDegraded

	req := validRequest()
	req.PartySize = 0
	req.TeamID = ptr.Ptr(int64(5))

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Reservation.PartySize)
}

func TestExecute_TeamDegradedWithoutDefaultFails(t *testing.T) {
	f := newFixture()
	f.teams.err = teamservice.ErrServiceDegraded
	f.resources.resource.DefaultPartySize = 0

	req := validRequest()
	req.PartySize = 0
	req.TeamID = ptr.Ptr(int64(5))

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestExecute_TeamNotFound(t *testing.T) {
	f := newFixture()
	f.teams.err = teamservice.ErrTeamNotFound

	req := validRequest()
	req.PartySize = 0
	req.TeamID = ptr.Ptr(int64(5))

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestExecute_DateInPast(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.Date = time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_DateBeyondAdvanceWindow(t *testing.T) {
	f := newFixture()
	req := validRequest()
	// Дефолтный горизонт 30 дней от 10 сентября
	req.Date = time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideAdvanceWindow)
}

func TestExecute_BlockedDate(t *testing.T) {
	f := newFixture()
	cal := domain.DefaultCalendar(1, 10, 90)
	cal.BlockedDates = []domain.BlockedDate{{Date: validRequest().Date}}
	f.calendars.calendar = cal

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDateBlocked)
}

func TestExecute_ResourceClosedOnWeekday(t *testing.T) {
	f := newFixture()
	cal := domain.DefaultCalendar(1, 10, 90)
	cal.WeeklyHours.Tuesday = domain.DayHours{IsOpen: false} // 15.09.2026 - вторник
	f.calendars.calendar = cal

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrResourceClosed)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.StartMinute = minutes.MinuteOfDay(1290) // 21:30, матч до 23:00 при закрытии в 22:00

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_SlotConflict(t *testing.T) {
	f := newFixture()
	f.reservations.byResource = []*domain.Reservation{
		{ID: 77, ResourceID: 1, StartMinute: 630, EndMinute: 720, Status: domain.StatusConfirmed},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_PendingDoesNotBlockSlot(t *testing.T) {
	f := newFixture()
	f.reservations.byResource = []*domain.Reservation{
		{ID: 77, ResourceID: 1, StartMinute: 630, EndMinute: 720, Status: domain.StatusPending},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_RequesterDoubleBooked(t *testing.T) {
	f := newFixture()
	f.reservations.byRequester = []*domain.Reservation{
		{ID: 88, ResourceID: 2, RequesterID: 100, StartMinute: 630, EndMinute: 720, Status: domain.StatusConfirmed},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrRequesterDoubleBooked)
}

func TestExecute_AdjacentReservationsAllowed(t *testing.T) {
	f := newFixture()
	// Существующая бронь заканчивается ровно в начале новой
	f.reservations.byResource = []*domain.Reservation{
		{ID: 77, ResourceID: 1, StartMinute: 510, EndMinute: 600, Status: domain.StatusConfirmed},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_SerializationFailureMapsToBusy(t *testing.T) {
	f := newFixture()
	f.tx.err = fmt.Errorf("transaction failed: %w", &pq.Error{Code: "40001"})

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrBusy)
}

func TestExecute_LockTimeoutMapsToBusy(t *testing.T) {
	f := newFixture()
	f.tx.err = fmt.Errorf("transaction failed: %w", &pq.Error{Code: "55P03"})

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrBusy)
}

func TestExecute_UniqueViolationMapsToSlotUnavailable(t *testing.T) {
	f := newFixture()
	f.reservations.createErr = reservationRepo.ErrSlotTaken

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "zero resource", mutate: func(r *Request) { r.ResourceID = 0 }},
		{name: "zero requester", mutate: func(r *Request) { r.RequesterID = 0 }},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "negative start", mutate: func(r *Request) { r.StartMinute = -1 }},
		{name: "start beyond day", mutate: func(r *Request) { r.StartMinute = 1440 }},
		{name: "negative party size", mutate: func(r *Request) { r.PartySize = -1 }},
		{name: "party size too big", mutate: func(r *Request) { r.PartySize = domain.MaxPartySize + 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
