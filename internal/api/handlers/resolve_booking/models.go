package resolve_booking

import "github.com/m04kA/INK-BookingService/internal/service/bookings/models"

// ResolveBookingRequest HTTP request model
type ResolveBookingRequest struct {
	Status             string  `json:"status"` // rejected | completed | cancelled | no_show
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *ResolveBookingRequest) ToServiceRequest(userID int64) *models.ResolveBookingRequest {
	return &models.ResolveBookingRequest{
		UserID:             userID,
		Status:             r.Status,
		CancellationReason: r.CancellationReason,
	}
}
