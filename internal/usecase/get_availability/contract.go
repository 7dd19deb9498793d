package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/integrations/resourceservice"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByResourceAndDate(ctx context.Context, resourceID int64, date time.Time) ([]*domain.Reservation, error)
}

// CalendarRepository интерфейс репозитория календарей ресурсов
type CalendarRepository interface {
	GetByResourceID(ctx context.Context, resourceID int64) (*domain.OperatingCalendar, error)
}

// ResourceServiceClient интерфейс клиента реестра ресурсов
type ResourceServiceClient interface {
	GetResource(ctx context.Context, resourceID int64) (*resourceservice.Resource, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
