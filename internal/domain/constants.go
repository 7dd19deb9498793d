package domain

// Default calendar values, applied when a resource has no stored calendar yet
const (
	DefaultSlotDurationMinutes  = 30
	DefaultMatchDurationMinutes = 60
	DefaultAdvanceBookingDays   = 30
	DefaultBasePrice            = 0.0

	DefaultOpenMinute  = 8 * 60  // 08:00
	DefaultCloseMinute = 22 * 60 // 22:00

	DefaultAllowCancellation        = true
	DefaultCancellationDeadlineHours = 24
	DefaultRefundPercent            = 100
)

// Business validation constants
const (
	MinMatchDurationMinutes = 5
	MaxMatchDurationMinutes = 480 // 8 hours
	MinAdvanceBookingDays   = 0
	MaxAdvanceBookingDays   = 365 // 1 year
	MaxPartySize            = 200
	MaxRefundPercent        = 100
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses список статусов, при которых бронирование ещё "живое".
// Используется для фильтрации в выборках владельца ресурса.
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses список завершённых статусов
var InactiveStatuses = []ReservationStatus{
	StatusCancelled,
	StatusCompleted,
}
