// Package minutes содержит тип MinuteOfDay - время суток в минутах от полуночи.
//
// Внутри ядра сервиса время хранится и сравнивается только в минутах,
// строковый формат "HH:MM" используется исключительно на границе HTTP.
package minutes

import (
	"errors"
	"fmt"
	"time"
)

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 24 * 60

var (
	// ErrInvalidFormat возвращается при некорректном строковом формате времени
	ErrInvalidFormat = errors.New("minutes: invalid time format, expected HH:MM")

	// ErrOutOfRange возвращается, когда значение выходит за пределы суток
	ErrOutOfRange = errors.New("minutes: minute of day out of range")
)

// MinuteOfDay время суток в минутах от полуночи: 0 = "00:00", 1439 = "23:59"
type MinuteOfDay int

// Parse парсит строку формата "HH:MM" в MinuteOfDay
func Parse(s string) (MinuteOfDay, error) {
	var hh, mm int
	if _, err := fmt.Sscanf(s, "%2d:%2d", &hh, &mm); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return 0, fmt.Errorf("%w: %q", ErrOutOfRange, s)
	}
	return MinuteOfDay(hh*60 + mm), nil
}

// FromTime возвращает минуту суток для момента времени t
func FromTime(t time.Time) MinuteOfDay {
	return MinuteOfDay(t.Hour()*60 + t.Minute())
}

// String форматирует минуту суток в "HH:MM"
func (m MinuteOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// Valid проверяет, что значение находится в пределах суток
func (m MinuteOfDay) Valid() bool {
	return m >= 0 && m < MinutesPerDay
}

// Add возвращает минуту суток, сдвинутую на delta минут.
// Результат может выйти за пределы суток - вызывающий код сам решает,
// допустим ли выход за 24:00 (например, конец слота ровно в закрытие).
func (m MinuteOfDay) Add(delta int) MinuteOfDay {
	return m + MinuteOfDay(delta)
}

// Before возвращает true, если m строго раньше other
func (m MinuteOfDay) Before(other MinuteOfDay) bool {
	return m < other
}

// After возвращает true, если m строго позже other
func (m MinuteOfDay) After(other MinuteOfDay) bool {
	return m > other
}
