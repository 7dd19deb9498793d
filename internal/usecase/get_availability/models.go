package get_availability

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// Request запрос сетки доступности ресурса на дату
type Request struct {
	ResourceID int64
	Date       time.Time
	// PartySize размер группы для расчёта цены слотов. 0 трактуется как 1.
	PartySize int
}

// Response сетка слотов ресурса на дату
type Response struct {
	ResourceID int64
	Date       time.Time
	Slots      []domain.AvailableSlot
}
