package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func pricingCalendar(basePrice float64) *OperatingCalendar {
	cal := DefaultCalendar(1, 10, 90)
	cal.Pricing.BasePrice = basePrice
	return cal
}

func TestQuotePrice_BaseTimesPartySize(t *testing.T) {
	cal := pricingCalendar(20)
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	price := QuotePrice(cal, date, 480, 570, 4)
	assert.Equal(t, 80.0, price)
}

func TestQuotePrice_PeakMultiplierAppliesWhenSlotInsideWindow(t *testing.T) {
	cal := pricingCalendar(20)
	// Вторник, пиковое окно 18:00-22:00, множитель 1.5
	cal.Pricing.PeakRules = []PeakRule{
		{Weekday: time.Tuesday, StartMinute: 1080, EndMinute: 1320, Multiplier: 1.5},
	}
	tuesday := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	// 18:00-19:30 целиком внутри окна
	assert.Equal(t, 60.0, QuotePrice(cal, tuesday, 1080, 1170, 2))

	// 17:30-19:00 частично вне окна - множитель не применяется
	assert.Equal(t, 40.0, QuotePrice(cal, tuesday, 1050, 1140, 2))

	// Тот же интервал в среду - правило не срабатывает
	wednesday := tuesday.AddDate(0, 0, 1)
	assert.Equal(t, 40.0, QuotePrice(cal, wednesday, 1080, 1170, 2))
}

func TestQuotePrice_SpecialDateSupersedesPeakRule(t *testing.T) {
	cal := pricingCalendar(20)
	tuesday := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	cal.Pricing.PeakRules = []PeakRule{
		{Weekday: time.Tuesday, StartMinute: 1080, EndMinute: 1320, Multiplier: 1.5},
	}
	cal.Pricing.SpecialDates = []SpecialDate{
		{Date: tuesday, OverridePrice: 40},
	}

	// Special date заменяет базу и отключает пиковый множитель:
	// 40 * 1, а не 40 * 1.5
	assert.Equal(t, 40.0, QuotePrice(cal, tuesday, 1080, 1170, 1))

	// На другую дату действует обычный прайсинг с пиком
	otherTuesday := tuesday.AddDate(0, 0, 7)
	assert.Equal(t, 30.0, QuotePrice(cal, otherTuesday, 1080, 1170, 1))
}

func TestQuotePrice_RoundsToTwoDecimals(t *testing.T) {
	cal := pricingCalendar(33.335)
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 100.01, QuotePrice(cal, date, 480, 570, 3))
}

func TestQuotePrice_NeverNegative(t *testing.T) {
	cal := pricingCalendar(-5)
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0.0, QuotePrice(cal, date, 480, 570, 2))
}

func TestQuotePrice_Deterministic(t *testing.T) {
	cal := pricingCalendar(25.50)
	cal.Pricing.PeakRules = []PeakRule{
		{Weekday: time.Friday, StartMinute: 1020, EndMinute: 1380, Multiplier: 2},
	}
	friday := time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC)

	first := QuotePrice(cal, friday, 1080, 1170, 5)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, QuotePrice(cal, friday, 1080, 1170, 5))
	}
}
