package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/minutes"
)

var (
	// ErrInvalidTime возвращается при некорректном времени в формате HH:MM
	ErrInvalidTime = errors.New("invalid time format, expected HH:MM")

	// ErrInvalidDate возвращается при некорректной дате в формате YYYY-MM-DD
	ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrInvalidWeekday возвращается при некорректном дне недели
	ErrInvalidWeekday = errors.New("invalid weekday")

	// ErrInvalidRecurrence возвращается при некорректном правиле повторения
	ErrInvalidRecurrence = errors.New("invalid recurrence kind")
)

// Request модели

// UpdateCalendarRequest запрос на полное обновление календаря ресурса
type UpdateCalendarRequest struct {
	UserID               int64            `json:"userId"`
	WeeklyHours          WeeklyHoursDTO   `json:"weeklyHours"`
	BlockedDates         []BlockedDateDTO `json:"blockedDates,omitempty"`
	Pricing              PricingDTO       `json:"pricing"`
	SlotDurationMinutes  int              `json:"slotDurationMinutes"`
	MatchDurationMinutes int              `json:"matchDurationMinutes"`
	AdvanceBookingDays   int              `json:"advanceBookingDays"`
	Cancellation         CancellationDTO  `json:"cancellation"`
}

// DTO модели
// Время передается строками "HH:MM", даты - строками "YYYY-MM-DD",
// дни недели - строчными английскими названиями ("monday")

// DayHoursDTO рабочее окно одного дня недели
type DayHoursDTO struct {
	IsOpen bool   `json:"isOpen"`
	Open   string `json:"open,omitempty"`  // "08:00"
	Close  string `json:"close,omitempty"` // "22:00"
}

// WeeklyHoursDTO расписание по дням недели
type WeeklyHoursDTO struct {
	Monday    DayHoursDTO `json:"monday"`
	Tuesday   DayHoursDTO `json:"tuesday"`
	Wednesday DayHoursDTO `json:"wednesday"`
	Thursday  DayHoursDTO `json:"thursday"`
	Friday    DayHoursDTO `json:"friday"`
	Saturday  DayHoursDTO `json:"saturday"`
	Sunday    DayHoursDTO `json:"sunday"`
}

// BlockedDateDTO заблокированная дата, разовая или повторяющаяся
type BlockedDateDTO struct {
	Date        string `json:"date"` // "2026-12-31"
	IsRecurring bool   `json:"isRecurring,omitempty"`
	Recurrence  string `json:"recurrence,omitempty"` // weekly | monthly | yearly
}

// PeakRuleDTO правило пикового множителя цены
type PeakRuleDTO struct {
	Weekday    string  `json:"weekday"`   // "monday"
	StartTime  string  `json:"startTime"` // "18:00"
	EndTime    string  `json:"endTime"`   // "22:00"
	Multiplier float64 `json:"multiplier"`
}

// SpecialDateDTO фиксированная цена на конкретную дату
type SpecialDateDTO struct {
	Date          string  `json:"date"` // "2026-12-31"
	OverridePrice float64 `json:"overridePrice"`
}

// PricingDTO правила ценообразования ресурса
type PricingDTO struct {
	BasePrice    float64          `json:"basePrice"`
	PeakRules    []PeakRuleDTO    `json:"peakRules,omitempty"`
	SpecialDates []SpecialDateDTO `json:"specialDates,omitempty"`
}

// CancellationDTO политика отмены
type CancellationDTO struct {
	AllowCancellation bool `json:"allowCancellation"`
	DeadlineHours     int  `json:"deadlineHours"`
	RefundPercent     int  `json:"refundPercent"`
}

// Response модели

// CalendarResponse ответ с календарём ресурса
type CalendarResponse struct {
	ResourceID           int64            `json:"resourceId"`
	OwnerID              int64            `json:"ownerId"`
	WeeklyHours          WeeklyHoursDTO   `json:"weeklyHours"`
	BlockedDates         []BlockedDateDTO `json:"blockedDates"`
	Pricing              PricingDTO       `json:"pricing"`
	SlotDurationMinutes  int              `json:"slotDurationMinutes"`
	MatchDurationMinutes int              `json:"matchDurationMinutes"`
	AdvanceBookingDays   int              `json:"advanceBookingDays"`
	Cancellation         CancellationDTO  `json:"cancellation"`
	CreatedAt            time.Time        `json:"createdAt"`
	UpdatedAt            time.Time        `json:"updatedAt"`
}

// Методы конвертации

// FromDomainCalendar конвертирует domain модель в DTO
func FromDomainCalendar(c *domain.OperatingCalendar) *CalendarResponse {
	if c == nil {
		return nil
	}

	blockedDates := make([]BlockedDateDTO, 0, len(c.BlockedDates))
	for _, b := range c.BlockedDates {
		blockedDates = append(blockedDates, BlockedDateDTO{
			Date:        b.Date.Format(domain.DateFormat),
			IsRecurring: b.IsRecurring,
			Recurrence:  string(b.Recurrence),
		})
	}

	peakRules := make([]PeakRuleDTO, 0, len(c.Pricing.PeakRules))
	for _, p := range c.Pricing.PeakRules {
		peakRules = append(peakRules, PeakRuleDTO{
			Weekday:    strings.ToLower(p.Weekday.String()),
			StartTime:  p.StartMinute.String(),
			EndTime:    p.EndMinute.String(),
			Multiplier: p.Multiplier,
		})
	}

	specialDates := make([]SpecialDateDTO, 0, len(c.Pricing.SpecialDates))
	for _, sp := range c.Pricing.SpecialDates {
		specialDates = append(specialDates, SpecialDateDTO{
			Date:          sp.Date.Format(domain.DateFormat),
			OverridePrice: sp.OverridePrice,
		})
	}

	return &CalendarResponse{
		ResourceID: c.ResourceID,
		OwnerID:    c.OwnerID,
		WeeklyHours: WeeklyHoursDTO{
			Monday:    fromDomainDayHours(c.WeeklyHours.Monday),
			Tuesday:   fromDomainDayHours(c.WeeklyHours.Tuesday),
			Wednesday: fromDomainDayHours(c.WeeklyHours.Wednesday),
			Thursday:  fromDomainDayHours(c.WeeklyHours.Thursday),
			Friday:    fromDomainDayHours(c.WeeklyHours.Friday),
			Saturday:  fromDomainDayHours(c.WeeklyHours.Saturday),
			Sunday:    fromDomainDayHours(c.WeeklyHours.Sunday),
		},
		BlockedDates: blockedDates,
		Pricing: PricingDTO{
			BasePrice:    c.Pricing.BasePrice,
			PeakRules:    peakRules,
			SpecialDates: specialDates,
		},
		SlotDurationMinutes:  c.SlotDurationMinutes,
		MatchDurationMinutes: c.MatchDurationMinutes,
		AdvanceBookingDays:   c.AdvanceBookingDays,
		Cancellation: CancellationDTO{
			AllowCancellation: c.Cancellation.AllowCancellation,
			DeadlineHours:     c.Cancellation.DeadlineHours,
			RefundPercent:     c.Cancellation.RefundPercent,
		},
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToDomainCalendar конвертирует запрос в domain модель.
// resourceID и ownerID приходят не из запроса: ресурс задаётся путём URL,
// владелец - реестром ресурсов.
func (r *UpdateCalendarRequest) ToDomainCalendar(resourceID, ownerID int64) (*domain.OperatingCalendar, error) {
	weeklyHours, err := r.WeeklyHours.toDomain()
	if err != nil {
		return nil, err
	}

	blockedDates := make([]domain.BlockedDate, 0, len(r.BlockedDates))
	for _, b := range r.BlockedDates {
		blocked, err := b.toDomain()
		if err != nil {
			return nil, err
		}
		blockedDates = append(blockedDates, blocked)
	}

	peakRules := make([]domain.PeakRule, 0, len(r.Pricing.PeakRules))
	for _, p := range r.Pricing.PeakRules {
		rule, err := p.toDomain()
		if err != nil {
			return nil, err
		}
		peakRules = append(peakRules, rule)
	}

	specialDates := make([]domain.SpecialDate, 0, len(r.Pricing.SpecialDates))
	for _, sp := range r.Pricing.SpecialDates {
		date, err := parseDate(sp.Date)
		if err != nil {
			return nil, err
		}
		specialDates = append(specialDates, domain.SpecialDate{
			Date:          date,
			OverridePrice: sp.OverridePrice,
		})
	}

	return &domain.OperatingCalendar{
		ResourceID:   resourceID,
		OwnerID:      ownerID,
		WeeklyHours:  weeklyHours,
		BlockedDates: blockedDates,
		Pricing: domain.PricingRules{
			BasePrice:    r.Pricing.BasePrice,
			PeakRules:    peakRules,
			SpecialDates: specialDates,
		},
		SlotDurationMinutes:  r.SlotDurationMinutes,
		MatchDurationMinutes: r.MatchDurationMinutes,
		AdvanceBookingDays:   r.AdvanceBookingDays,
		Cancellation: domain.CancellationPolicy{
			AllowCancellation: r.Cancellation.AllowCancellation,
			DeadlineHours:     r.Cancellation.DeadlineHours,
			RefundPercent:     r.Cancellation.RefundPercent,
		},
	}, nil
}

func fromDomainDayHours(d domain.DayHours) DayHoursDTO {
	if !d.IsOpen {
		return DayHoursDTO{IsOpen: false}
	}
	return DayHoursDTO{
		IsOpen: true,
		Open:   d.OpenMinute.String(),
		Close:  d.CloseMinute.String(),
	}
}

func (d DayHoursDTO) toDomain() (domain.DayHours, error) {
	if !d.IsOpen {
		return domain.DayHours{IsOpen: false}, nil
	}

	open, err := minutes.Parse(d.Open)
	if err != nil {
		return domain.DayHours{}, fmt.Errorf("%w: %q", ErrInvalidTime, d.Open)
	}

	closeM, err := minutes.Parse(d.Close)
	if err != nil {
		return domain.DayHours{}, fmt.Errorf("%w: %q", ErrInvalidTime, d.Close)
	}

	return domain.DayHours{IsOpen: true, OpenMinute: open, CloseMinute: closeM}, nil
}

func (w WeeklyHoursDTO) toDomain() (domain.WeeklyHours, error) {
	var result domain.WeeklyHours
	var err error

	if result.Monday, err = w.Monday.toDomain(); err != nil {
		return result, fmt.Errorf("monday: %w", err)
	}
	if result.Tuesday, err = w.Tuesday.toDomain(); err != nil {
		return result, fmt.Errorf("tuesday: %w", err)
	}
	if result.Wednesday, err = w.Wednesday.toDomain(); err != nil {
		return result, fmt.Errorf("wednesday: %w", err)
	}
	if result.Thursday, err = w.Thursday.toDomain(); err != nil {
		return result, fmt.Errorf("thursday: %w", err)
	}
	if result.Friday, err = w.Friday.toDomain(); err != nil {
		return result, fmt.Errorf("friday: %w", err)
	}
	if result.Saturday, err = w.Saturday.toDomain(); err != nil {
		return result, fmt.Errorf("saturday: %w", err)
	}
	if result.Sunday, err = w.Sunday.toDomain(); err != nil {
		return result, fmt.Errorf("sunday: %w", err)
	}

	return result, nil
}

func (b BlockedDateDTO) toDomain() (domain.BlockedDate, error) {
	date, err := parseDate(b.Date)
	if err != nil {
		return domain.BlockedDate{}, err
	}

	blocked := domain.BlockedDate{
		Date:        date,
		IsRecurring: b.IsRecurring,
	}

	if b.IsRecurring {
		kind := domain.RecurrenceKind(b.Recurrence)
		switch kind {
		case domain.RecurrenceWeekly, domain.RecurrenceMonthly, domain.RecurrenceYearly:
			blocked.Recurrence = kind
		default:
			return domain.BlockedDate{}, fmt.Errorf("%w: %q", ErrInvalidRecurrence, b.Recurrence)
		}
	}

	return blocked, nil
}

func (p PeakRuleDTO) toDomain() (domain.PeakRule, error) {
	weekday, err := parseWeekday(p.Weekday)
	if err != nil {
		return domain.PeakRule{}, err
	}

	start, err := minutes.Parse(p.StartTime)
	if err != nil {
		return domain.PeakRule{}, fmt.Errorf("%w: %q", ErrInvalidTime, p.StartTime)
	}

	end, err := minutes.Parse(p.EndTime)
	if err != nil {
		return domain.PeakRule{}, fmt.Errorf("%w: %q", ErrInvalidTime, p.EndTime)
	}

	return domain.PeakRule{
		Weekday:     weekday,
		StartMinute: start,
		EndMinute:   end,
		Multiplier:  p.Multiplier,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	date, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return date, nil
}

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

func parseWeekday(s string) (time.Weekday, error) {
	weekday, ok := weekdays[strings.ToLower(s)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
	}
	return weekday, nil
}
