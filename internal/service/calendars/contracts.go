package calendars

import (
	"context"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/integrations/resourceservice"
)

// CalendarRepository интерфейс репозитория календарей ресурсов
type CalendarRepository interface {
	GetByResourceID(ctx context.Context, resourceID int64) (*domain.OperatingCalendar, error)
	Create(ctx context.Context, cal *domain.OperatingCalendar) (*domain.OperatingCalendar, error)
	Update(ctx context.Context, cal *domain.OperatingCalendar) (*domain.OperatingCalendar, error)
}

// ResourceServiceClient интерфейс клиента реестра ресурсов
type ResourceServiceClient interface {
	GetResource(ctx context.Context, resourceID int64) (*resourceservice.Resource, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
