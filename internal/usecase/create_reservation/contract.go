package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/integrations/resourceservice"
	"github.com/m04kA/SMC-CourtBookingService/internal/integrations/teamservice"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	GetByResourceAndDate(ctx context.Context, resourceID int64, date time.Time) ([]*domain.Reservation, error)
	GetByRequesterAndDate(ctx context.Context, requesterID int64, date time.Time) ([]*domain.Reservation, error)
}

// CalendarRepository интерфейс репозитория календарей ресурсов
type CalendarRepository interface {
	GetByResourceID(ctx context.Context, resourceID int64) (*domain.OperatingCalendar, error)
	Create(ctx context.Context, cal *domain.OperatingCalendar) (*domain.OperatingCalendar, error)
}

// ResourceServiceClient интерфейс клиента реестра ресурсов
type ResourceServiceClient interface {
	GetResource(ctx context.Context, resourceID int64) (*resourceservice.Resource, error)
}

// TeamServiceClient интерфейс клиента TeamService
type TeamServiceClient interface {
	GetTeamWithGracefulDegradation(ctx context.Context, teamID int64) (*teamservice.Team, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
