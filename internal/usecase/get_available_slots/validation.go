package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/INK-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ArtistID <= 0 {
		return fmt.Errorf("%w: artistID must be positive", ErrInvalidInput)
	}

	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: date range is required", ErrInvalidInput)
	}

	if req.To.Before(req.From) {
		return fmt.Errorf("%w: range end before range start", ErrInvalidConfiguration)
	}

	if req.To.Sub(req.From) > domain.MaxAvailabilityRangeDays*24*time.Hour {
		return fmt.Errorf("%w: range exceeds %d days", ErrInvalidInput, domain.MaxAvailabilityRangeDays)
	}

	return nil
}

// validateAdvanceLimit проверяет, что диапазон не выходит за ограничение
// глубины записи мастера
func validateAdvanceLimit(to time.Time, now time.Time, advanceBookingDays int) error {
	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := dateOnly(now).AddDate(0, 0, advanceBookingDays)
	if dateOnly(to).After(maxDate) {
		return fmt.Errorf("%w: can only view %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}
