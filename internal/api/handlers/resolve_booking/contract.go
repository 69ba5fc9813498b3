package resolve_booking

import (
	"context"

	"github.com/m04kA/INK-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	Resolve(ctx context.Context, bookingID int64, req *models.ResolveBookingRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
