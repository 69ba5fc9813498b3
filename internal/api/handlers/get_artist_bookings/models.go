package get_artist_bookings

import (
	"time"

	"github.com/m04kA/INK-BookingService/internal/domain"
	"github.com/m04kA/INK-BookingService/internal/service/bookings/models"
)

// ParseQuery собирает запрос сервиса из query параметров
func ParseQuery(artistID, userID int64, query map[string][]string) (*models.GetArtistBookingsRequest, error) {
	req := &models.GetArtistBookingsRequest{
		UserID:   userID,
		ArtistID: artistID,
	}

	if v := first(query, "startDate"); v != "" {
		startDate, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if v := first(query, "endDate"); v != "" {
		endDate, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if v := first(query, "status"); v != "" {
		req.Status = &v
	}

	req.IncludeInactive = first(query, "includeInactive") == "true"

	return req, nil
}

func first(query map[string][]string, key string) string {
	if values := query[key]; len(values) > 0 {
		return values[0]
	}
	return ""
}
