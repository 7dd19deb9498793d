package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	createReservation "github.com/m04kA/SMC-CourtBookingService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-CourtBookingService/pkg/minutes"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	ResourceID   int64  `json:"resourceId"`
	Date         string `json:"date"`      // "2026-09-15"
	StartTime    string `json:"startTime"` // "10:00"
	PartySize    int    `json:"partySize,omitempty"`
	TeamID       *int64 `json:"teamId,omitempty"`
	DeferPayment bool   `json:"deferPayment,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID          int64   `json:"id"`
	ResourceID  int64   `json:"resourceId"`
	RequesterID int64   `json:"requesterId"`
	Date        string  `json:"date"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	PartySize   int     `json:"partySize"`
	TotalPrice  float64 `json:"totalPrice"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(requesterID int64) (createReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return createReservation.Request{}, err
	}

	startMinute, err := minutes.Parse(r.StartTime)
	if err != nil {
		return createReservation.Request{}, err
	}

	return createReservation.Request{
		ResourceID:   r.ResourceID,
		RequesterID:  requesterID,
		Date:         date,
		StartMinute:  startMinute,
		PartySize:    r.PartySize,
		TeamID:       r.TeamID,
		DeferPayment: r.DeferPayment,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	reservation := resp.Reservation
	return &ReservationResponse{
		ID:          reservation.ID,
		ResourceID:  reservation.ResourceID,
		RequesterID: reservation.RequesterID,
		Date:        reservation.Date.Format(domain.DateFormat),
		StartTime:   reservation.StartMinute.String(),
		EndTime:     reservation.EndMinute.String(),
		PartySize:   reservation.PartySize,
		TotalPrice:  reservation.TotalPrice,
		Status:      string(reservation.Status),
		CreatedAt:   reservation.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   reservation.UpdatedAt.Format(time.RFC3339),
	}
}
