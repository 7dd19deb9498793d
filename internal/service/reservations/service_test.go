package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/calendar"
	reservationRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-CourtBookingService/internal/integrations/resourceservice"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/reservations/models"
	"github.com/m04kA/SMC-CourtBookingService/pkg/ptr"
)

type fakeReservationRepo struct {
	reservation     *domain.Reservation
	list            []*domain.Reservation
	cancelErr       error
	updateStatusErr error
	cancelledID     int64
	cancelReason    string
	updatedStatus   domain.ReservationStatus
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	if f.reservation == nil || f.reservation.ID != id {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return f.reservation, nil
}

func (f *fakeReservationRepo) GetByRequester(_ context.Context, _ int64, _ *domain.ReservationStatus) ([]*domain.Reservation, error) {
	return f.list, nil
}

func (f *fakeReservationRepo) GetByResourceWithFilter(_ context.Context, _ domain.ResourceReservationsFilter) ([]*domain.Reservation, error) {
	return f.list, nil
}

func (f *fakeReservationRepo) UpdateStatus(_ context.Context, id int64, status domain.ReservationStatus) error {
	if f.updateStatusErr != nil {
		return f.updateStatusErr
	}
	f.updatedStatus = status
	return nil
}

func (f *fakeReservationRepo) Cancel(_ context.Context, id int64, reason string) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancelledID = id
	f.cancelReason = reason
	return nil
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

const (
	requesterID = int64(100)
	ownerID     = int64(10)
	strangerID  = int64(999)
)

type fixture struct {
	reservations *fakeReservationRepo
	calendars    *fakeCalendarRepo
	resources    *fakeResourceClient
	clock        *fakeTime
	svc          *Service
}

func newFixture() *fixture {
	f := &fixture{
		reservations: &fakeReservationRepo{},
		calendars:    &fakeCalendarRepo{},
		resources: &fakeResourceClient{
			resource: &resourceservice.Resource{ID: 1, OwnerID: ownerID, MatchDurationMinutes: 90},
		},
		clock: &fakeTime{now: time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)},
	}
	f.svc = NewService(f.reservations, f.calendars, f.resources, f.clock, nopLogger{})
	return f
}

// Подтверждённая бронь 15.09.2026 10:00-11:30 на 80.00
func confirmedReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:          7,
		ResourceID:  1,
		RequesterID: requesterID,
		Date:        time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartMinute: 600,
		EndMinute:   690,
		PartySize:   4,
		TotalPrice:  80,
		Status:      domain.StatusConfirmed,
	}
}

func cancellationCalendar(allow bool, deadlineHours, refundPercent int) *domain.OperatingCalendar {
	cal := domain.DefaultCalendar(1, ownerID, 90)
	cal.Cancellation = domain.CancellationPolicy{
		AllowCancellation: allow,
		DeadlineHours:     deadlineHours,
		RefundPercent:     refundPercent,
	}
	return cal
}

func TestGetByID_RequesterSeesOwnReservation(t *testing.T) {
	f := newFixture()
	f.reservations.reservation = confirmedReservation()

	resp, err := f.svc.GetByID(context.Background(), 7, requesterID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "2026-09-15", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "11:30", resp.EndTime)
}

func TestGetByID_OwnerSeesResourceReservation(t *testing.T) {
	f := newFixture()
	f.reservations.reservation = confirmedReservation()

	_, err := f.svc.GetByID(context.Background(), 7, ownerID)
	assert.NoError(t, err)
}

func TestGetByID_StrangerDenied(t *testing.T) {
	f := newFixture()
	f.reservations.reservation = confirmedReservation()

	_, err := f.svc.GetByID(context.Background(), 7, strangerID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetByID(context.Background(), 7, requesterID)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCancel_ByRequesterBeforeDeadline(t *testing.T) {
	f := newFixture()
	f.reservations.reservation = confirmedReservation()
	f.calendars.calendar = cancellationCalendar(true, 24, 80)

	resp, err := f.svc.Cancel(context.Background(), 7, &models.CancelReservationRequest{
		UserID: requesterID,
		Reason: "не сможем прийти",
	})
	require.NoError(t, err)

	// 80% от 80.00
	assert.Equal(t, 64.0, resp.RefundAmount)
	assert.Equal(t, 80, resp.RefundPercent)
	assert.Equal(t, int64(7), f.reservations.cancelledID)
	assert.Equal(t, "не сможем прийти", f.reservations.cancelReason)
}

func TestCancel_ByRequesterAfterDeadline(t *testing.T) {
	f := newFixture()
	f.reservations.reservation = confirmedReservation()
	f.calendars.calendar = cancellationCalendar(true, 24, 80)
	// Бронь начинается 15.09 в 10:00, дедлайн 14.09 10:00
	f.clock.now = time.Date(2026, 9, 14, 18, 0, 0, 0, time.UTC)

	_, err := f.svc.Cancel(context.Background(), 7, &models.CancelReservationRequest{UserID: requesterID})
	assert.ErrorIs(t, err, ErrTooLateToCancel)
}

func TestCancel_PolicyForbidsCancellation(t *testing.T) {
	f := newFixture()
	f.reservations.reservation = confirmedReservation()
	f.calendars.calendar = cancellationCalendar(false, 24, 80)

	_, err := f.svc.Cancel(context.Background(), 7, &models.CancelReservationRequest{UserID: requesterID})
	assert.ErrorIs(t, err, ErrCancellationNotAllowed)
}

func TestCancel_OwnerBypassesPolicy(t *testing.T) {
	f := newFixture()
	f.reservations.reservation = confirmedReservation()
	// Политика запрещает отмену и дедлайн давно прошёл
	f.calendars.calendar = cancellationCalendar(false, 24, 50)
	f.clock.now = time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC)

	resp, err := f.svc.Cancel(context.Background(), 7, &models.CancelReservationRequest{UserID: ownerID})
	require.NoError(t, err)

	// Владелец отменяет с полным возвратом
	assert.Equal(t, 80.0, resp.RefundAmount)
	assert.Equal(t, domain.MaxRefundPercent, resp.RefundPercent)
}

func TestCancel_StrangerDenied(t *testing.T) {
	f := newFixture()
	f.reservations.reservation = confirmedReservation()

	_, err := f.svc.Cancel(context.Background(), 7, &models.CancelReservationRequest{UserID: strangerID})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_TerminalStatus(t *testing.T) {
	f := newFixture()

	for _, status := range []domain.ReservationStatus{domain.StatusCancelled, domain.StatusCompleted} {
		r := confirmedReservation()
		r.Status = status
		f.reservations.reservation = r

		_, err := f.svc.Cancel(context.Background(), 7, &models.CancelReservationRequest{UserID: requesterID})
		assert.ErrorIs(t, err, ErrCannotCancel, "status=%s", status)
	}
}

func TestCancel_DefaultPolicyWhenNoCalendar(t *testing.T) {
	f := newFixture()
	f.reservations.reservation = confirmedReservation()
	require.Nil(t, f.calendars.calendar)

	resp, err := f.svc.Cancel(context.Background(), 7, &models.CancelReservationRequest{UserID: requesterID})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultRefundPercent, resp.RefundPercent)
}

func TestCancel_RefundRounding(t *testing.T) {
	f := newFixture()
	r := confirmedReservation()
	r.TotalPrice = 33.33
	f.reservations.reservation = r
	f.calendars.calendar = cancellationCalendar(true, 24, 50)

	resp, err := f.svc.Cancel(context.Background(), 7, &models.CancelReservationRequest{UserID: requesterID})
	require.NoError(t, err)

	// 33.33 * 50 = 1666.5, округление до 1667, итог 16.67
	assert.Equal(t, 16.67, resp.RefundAmount)
}

func TestUpdateStatus_OwnerConfirmsPending(t *testing.T) {
	f := newFixture()
	r := confirmedReservation()
	r.Status = domain.StatusPending
	f.reservations.reservation = r

	err := f.svc.UpdateStatus(context.Background(), 7, &models.UpdateStatusRequest{
		UserID: ownerID,
		Status: "confirmed",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, f.reservations.updatedStatus)
}

func TestUpdateStatus_RequesterDenied(t *testing.T) {
	f := newFixture()
	f.reservations.reservation = confirmedReservation()

	err := f.svc.UpdateStatus(context.Background(), 7, &models.UpdateStatusRequest{
		UserID: requesterID,
		Status: "completed",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	f := newFixture()
	f.reservations.reservation = confirmedReservation()

	err := f.svc.UpdateStatus(context.Background(), 7, &models.UpdateStatusRequest{
		UserID: ownerID,
		Status: "archived",
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	f := newFixture()
	r := confirmedReservation()
	r.Status = domain.StatusCompleted
	f.reservations.reservation = r

	err := f.svc.UpdateStatus(context.Background(), 7, &models.UpdateStatusRequest{
		UserID: ownerID,
		Status: "confirmed",
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_SlotTakenOnConfirm(t *testing.T) {
	f := newFixture()
	r := confirmedReservation()
	r.Status = domain.StatusPending
	f.reservations.reservation = r
	f.reservations.updateStatusErr = reservationRepo.ErrSlotTaken

	err := f.svc.UpdateStatus(context.Background(), 7, &models.UpdateStatusRequest{
		UserID: ownerID,
		Status: "confirmed",
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestGetUserReservations_InvalidStatusFilter(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{
		UserID: requesterID,
		Status: ptr.Ptr("archived"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetUserReservations_MapsDomainList(t *testing.T) {
	f := newFixture()
	f.reservations.list = []*domain.Reservation{confirmedReservation()}

	resp, err := f.svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{UserID: requesterID})
	require.NoError(t, err)
	require.Len(t, resp.Reservations, 1)
	assert.Equal(t, "confirmed", resp.Reservations[0].Status)
}

func TestGetResourceReservations_OwnerOnly(t *testing.T) {
	f := newFixture()
	f.reservations.list = []*domain.Reservation{confirmedReservation()}

	_, err := f.svc.GetResourceReservations(context.Background(), &models.GetResourceReservationsRequest{
		UserID:     strangerID,
		ResourceID: 1,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := f.svc.GetResourceReservations(context.Background(), &models.GetResourceReservationsRequest{
		UserID:     ownerID,
		ResourceID: 1,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 1)
}
