package get_resource_reservations

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/reservations/models"
)

// ToServiceRequest собирает запрос к сервису из path и query параметров.
// startDate и endDate ходят парой: период задаётся целиком или не задаётся.
func ToServiceRequest(resourceID, userID int64, startDateStr, endDateStr, statusStr, includeInactiveStr string) (*models.GetResourceReservationsRequest, error) {
	req := &models.GetResourceReservationsRequest{
		ResourceID: resourceID,
		UserID:     userID,
	}

	if (startDateStr == "") != (endDateStr == "") {
		return nil, fmt.Errorf("startDate and endDate must be provided together")
	}

	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid startDate: %v", err)
		}
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid endDate: %v", err)
		}
		if endDate.Before(startDate) {
			return nil, fmt.Errorf("endDate must not be before startDate")
		}
		req.StartDate = &startDate
		req.EndDate = &endDate
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive: %v", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
