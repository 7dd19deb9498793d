package get_resource_calendar

import (
	"context"

	"github.com/m04kA/SMC-CourtBookingService/internal/service/calendars/models"
)

type CalendarService interface {
	Get(ctx context.Context, resourceID int64) (*models.CalendarResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
