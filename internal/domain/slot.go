package domain

import "github.com/m04kA/SMC-CourtBookingService/pkg/minutes"

// Slot is a candidate reservation interval of fixed match duration
type Slot struct {
	StartMinute minutes.MinuteOfDay
	EndMinute   minutes.MinuteOfDay
}

// AvailableSlot is a slot annotated with availability and a price quote
type AvailableSlot struct {
	StartMinute minutes.MinuteOfDay
	EndMinute   minutes.MinuteOfDay
	IsAvailable bool
	Price       float64
}
