package reschedule_booking

import (
	"time"

	rescheduleBooking "github.com/m04kA/INK-BookingService/internal/usecase/reschedule_booking"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	StartAt time.Time `json:"startAt"` // RFC 3339
	EndAt   time.Time `json:"endAt"`   // RFC 3339
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(bookingID, userID int64) *rescheduleBooking.Request {
	return &rescheduleBooking.Request{
		BookingID: bookingID,
		UserID:    userID,
		StartAt:   r.StartAt,
		EndAt:     r.EndAt,
	}
}

// RescheduleBookingResponse HTTP response model
type RescheduleBookingResponse struct {
	BookingID       int64     `json:"bookingId"`
	StartAt         time.Time `json:"startAt"`
	EndAt           time.Time `json:"endAt"`
	DurationMinutes int       `json:"durationMinutes"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *RescheduleBookingResponse {
	return &RescheduleBookingResponse{
		BookingID:       resp.BookingID,
		StartAt:         resp.StartAt,
		EndAt:           resp.EndAt,
		DurationMinutes: resp.DurationMinutes,
	}
}
