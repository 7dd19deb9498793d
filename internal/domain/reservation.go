package domain

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/pkg/minutes"
)

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
)

// Reservation represents a confirmed or in-flight court reservation.
// The interval [StartMinute, EndMinute) always equals the match duration of
// the owning resource at creation time.
type Reservation struct {
	ID          int64
	ResourceID  int64
	RequesterID int64

	Date        time.Time // calendar date, time of day ignored
	StartMinute minutes.MinuteOfDay
	EndMinute   minutes.MinuteOfDay

	PartySize  int
	TotalPrice float64
	Status     ReservationStatus

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Blocks returns true if the reservation participates in conflict detection.
// Only confirmed reservations block a slot: pending ones are non-blocking by
// design (payment may still be in flight), cancelled ones free the slot.
func (r *Reservation) Blocks() bool {
	return r.Status == StatusConfirmed
}

// Overlaps reports whether the reservation interval overlaps [start, end).
// Half-open intervals: touching boundaries do not overlap.
func (r *Reservation) Overlaps(start, end minutes.MinuteOfDay) bool {
	return r.StartMinute < end && r.EndMinute > start
}

// CanBeCancelled returns true if the reservation may still be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// IsTerminal returns true if the status admits no further transitions
func (r *Reservation) IsTerminal() bool {
	return r.Status == StatusCancelled || r.Status == StatusCompleted
}

// StartsAt returns the exact start moment of the reservation
func (r *Reservation) StartsAt() time.Time {
	y, m, d := r.Date.Date()
	return time.Date(y, m, d, int(r.StartMinute)/60, int(r.StartMinute)%60, 0, 0, r.Date.Location())
}

// CanTransitionTo проверяет допустимость перехода статуса.
// Pending -> {Confirmed, Cancelled, Completed}; Confirmed -> {Cancelled, Completed};
// Cancelled и Completed - терминальные.
func (r *Reservation) CanTransitionTo(target ReservationStatus) bool {
	if r.IsTerminal() {
		return false
	}
	switch target {
	case StatusConfirmed:
		return r.Status == StatusPending
	case StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// ResourceReservationsFilter фильтр выборки бронирований ресурса
type ResourceReservationsFilter struct {
	ResourceID      int64              // Обязательный параметр
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые и завершённые
}
