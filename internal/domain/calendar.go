package domain

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/pkg/minutes"
)

// RecurrenceKind recurrence rule of a blocked date
type RecurrenceKind string

const (
	RecurrenceWeekly  RecurrenceKind = "weekly"
	RecurrenceMonthly RecurrenceKind = "monthly"
	RecurrenceYearly  RecurrenceKind = "yearly"
)

// DayHours open/close window for a single weekday, times as minutes of day
type DayHours struct {
	IsOpen      bool               `json:"isOpen"`
	OpenMinute  minutes.MinuteOfDay `json:"openMinute"`
	CloseMinute minutes.MinuteOfDay `json:"closeMinute"`
}

// WeeklyHours operating windows for every weekday.
// A struct (not a map) guarantees each weekday is present exactly once.
type WeeklyHours struct {
	Monday    DayHours `json:"monday"`
	Tuesday   DayHours `json:"tuesday"`
	Wednesday DayHours `json:"wednesday"`
	Thursday  DayHours `json:"thursday"`
	Friday    DayHours `json:"friday"`
	Saturday  DayHours `json:"saturday"`
	Sunday    DayHours `json:"sunday"`
}

// ForWeekday returns the window configured for the given weekday
func (w WeeklyHours) ForWeekday(weekday time.Weekday) DayHours {
	switch weekday {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return DayHours{IsOpen: false}
	}
}

// BlockedDate a calendar date closed for reservations, optionally recurring.
// Time of day of Date is ignored.
type BlockedDate struct {
	Date        time.Time      `json:"date"`
	IsRecurring bool           `json:"isRecurring"`
	Recurrence  RecurrenceKind `json:"recurrence,omitempty"`
}

// PeakRule pricing multiplier keyed by weekday and a time window
type PeakRule struct {
	Weekday     time.Weekday        `json:"weekday"`
	StartMinute minutes.MinuteOfDay `json:"startMinute"`
	EndMinute   minutes.MinuteOfDay `json:"endMinute"`
	Multiplier  float64             `json:"multiplier"`
}

// SpecialDate flat price override for a single date, supersedes peak rules
type SpecialDate struct {
	Date          time.Time `json:"date"`
	OverridePrice float64   `json:"overridePrice"`
}

// PricingRules configurable pricing of a resource
type PricingRules struct {
	BasePrice    float64       `json:"basePrice"`
	PeakRules    []PeakRule    `json:"peakRules,omitempty"`
	SpecialDates []SpecialDate `json:"specialDates,omitempty"`
}

// CancellationPolicy cancellation rules of a resource
type CancellationPolicy struct {
	AllowCancellation bool `json:"allowCancellation"`
	DeadlineHours     int  `json:"deadlineHours"`
	RefundPercent     int  `json:"refundPercent"`
}

// OperatingCalendar per-resource booking configuration: weekly windows,
// blocked dates, pricing and policies. Pure data with pure query methods.
type OperatingCalendar struct {
	ResourceID int64
	OwnerID    int64

	WeeklyHours  WeeklyHours
	BlockedDates []BlockedDate
	Pricing      PricingRules

	// SlotDurationMinutes display granularity of the slot grid.
	// MatchDurationMinutes actual reservation length; authoritative and
	// independent of the grid.
	SlotDurationMinutes  int
	MatchDurationMinutes int

	AdvanceBookingDays int
	Cancellation       CancellationPolicy

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultCalendar returns a calendar with sane defaults for a resource that
// has never been configured. matchDuration <= 0 falls back to the default.
func DefaultCalendar(resourceID, ownerID int64, matchDurationMinutes int) *OperatingCalendar {
	if matchDurationMinutes <= 0 {
		matchDurationMinutes = DefaultMatchDurationMinutes
	}

	openAllWeek := DayHours{
		IsOpen:      true,
		OpenMinute:  DefaultOpenMinute,
		CloseMinute: DefaultCloseMinute,
	}

	return &OperatingCalendar{
		ResourceID: resourceID,
		OwnerID:    ownerID,
		WeeklyHours: WeeklyHours{
			Monday:    openAllWeek,
			Tuesday:   openAllWeek,
			Wednesday: openAllWeek,
			Thursday:  openAllWeek,
			Friday:    openAllWeek,
			Saturday:  openAllWeek,
			Sunday:    openAllWeek,
		},
		Pricing: PricingRules{
			BasePrice: DefaultBasePrice,
		},
		SlotDurationMinutes:  DefaultSlotDurationMinutes,
		MatchDurationMinutes: matchDurationMinutes,
		AdvanceBookingDays:   DefaultAdvanceBookingDays,
		Cancellation: CancellationPolicy{
			AllowCancellation: DefaultAllowCancellation,
			DeadlineHours:     DefaultCancellationDeadlineHours,
			RefundPercent:     DefaultRefundPercent,
		},
	}
}

// WorkingHoursFor returns the operating window for the weekday of the date
func (c *OperatingCalendar) WorkingHoursFor(weekday time.Weekday) DayHours {
	return c.WeeklyHours.ForWeekday(weekday)
}

// IsDateBlocked reports whether the date is closed for reservations:
// either an exact match of a non-recurring entry, or a match of a recurring
// entry under its recurrence rule.
func (c *OperatingCalendar) IsDateBlocked(date time.Time) bool {
	for _, blocked := range c.BlockedDates {
		if blockedDateMatches(blocked, date) {
			return true
		}
	}
	return false
}

func blockedDateMatches(blocked BlockedDate, date time.Time) bool {
	if !blocked.IsRecurring {
		return sameDate(blocked.Date, date)
	}

	switch blocked.Recurrence {
	case RecurrenceWeekly:
		return blocked.Date.Weekday() == date.Weekday()
	case RecurrenceMonthly:
		return blocked.Date.Day() == date.Day()
	case RecurrenceYearly:
		return blocked.Date.Month() == date.Month() && blocked.Date.Day() == date.Day()
	default:
		// Неизвестное правило повторения - считаем запись разовой
		return sameDate(blocked.Date, date)
	}
}

func sameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
