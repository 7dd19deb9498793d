package get_availability

import (
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	getAvailability "github.com/m04kA/SMC-CourtBookingService/internal/usecase/get_availability"
)

// SlotResponse один слот сетки доступности
type SlotResponse struct {
	StartTime   string  `json:"startTime"` // "10:00"
	EndTime     string  `json:"endTime"`   // "11:30"
	IsAvailable bool    `json:"isAvailable"`
	Price       float64 `json:"price"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ResourceID int64          `json:"resourceId"`
	Date       string         `json:"date"`
	Slots      []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime:   slot.StartMinute.String(),
			EndTime:     slot.EndMinute.String(),
			IsAvailable: slot.IsAvailable,
			Price:       slot.Price,
		})
	}

	return &AvailabilityResponse{
		ResourceID: resp.ResourceID,
		Date:       resp.Date.Format(domain.DateFormat),
		Slots:      slots,
	}
}
