package domain

import (
	"math"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/pkg/minutes"
)

// QuotePrice вычисляет стоимость бронирования интервала [start, end) на дату.
// Детерминированная чистая функция: одинаковые входы всегда дают одинаковый
// результат (нужно для идемпотентного пересчёта котировки и тестов).
//
// Алгоритм:
//  1. base = базовая цена ресурса;
//  2. точное совпадение со special date - base заменяется на overridePrice,
//     пиковый множитель при этом НЕ применяется;
//  3. иначе, если интервал попадает в окно peak-правила на этот день недели -
//     base умножается на multiplier;
//  4. итог = round2(base * partySize), не меньше нуля.
func QuotePrice(cal *OperatingCalendar, date time.Time, start, end minutes.MinuteOfDay, partySize int) float64 {
	base := cal.Pricing.BasePrice

	if override, ok := specialPriceFor(cal.Pricing.SpecialDates, date); ok {
		base = override
	} else if rule, ok := peakRuleFor(cal.Pricing.PeakRules, date.Weekday(), start, end); ok {
		base *= rule.Multiplier
	}

	total := round2(base * float64(partySize))
	if total < 0 {
		return 0
	}
	return total
}

func specialPriceFor(specials []SpecialDate, date time.Time) (float64, bool) {
	for _, s := range specials {
		if sameDate(s.Date, date) {
			return s.OverridePrice, true
		}
	}
	return 0, false
}

// peakRuleFor возвращает первое правило, в окно которого целиком попадает
// интервал [start, end) в указанный день недели
func peakRuleFor(rules []PeakRule, weekday time.Weekday, start, end minutes.MinuteOfDay) (PeakRule, bool) {
	for _, rule := range rules {
		if rule.Weekday != weekday {
			continue
		}
		if !start.Before(rule.StartMinute) && !end.After(rule.EndMinute) {
			return rule, true
		}
	}
	return PeakRule{}, false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
