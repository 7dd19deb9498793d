package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/minutes"
)

// Request запрос на создание бронирования
type Request struct {
	ResourceID  int64
	RequesterID int64
	Date        time.Time
	StartMinute minutes.MinuteOfDay
	// PartySize размер группы, указанный явно. 0 означает "не указан" -
	// размер будет выведен из состава команды или дефолта ресурса.
	PartySize int
	// TeamID команда заявителя, если бронирование делается от имени команды
	TeamID *int64
	// DeferPayment если true, бронирование создается в статусе pending
	// и не блокирует слот до подтверждения оплаты
	DeferPayment bool
}

// Response результат создания бронирования
type Response struct {
	Reservation *domain.Reservation
}
