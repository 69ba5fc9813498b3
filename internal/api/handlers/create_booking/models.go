package create_booking

import (
	"time"

	"github.com/m04kA/INK-BookingService/internal/domain"
	createBooking "github.com/m04kA/INK-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ArtistID int64  `json:"artistId"`
	Source   string `json:"source"`             // "flash" | "project" | "manual"
	SourceID *int64 `json:"sourceId,omitempty"` // ID эскиза или проекта

	ClientName  string  `json:"clientName"`
	ClientEmail string  `json:"clientEmail"`
	ClientPhone *string `json:"clientPhone,omitempty"`

	StartAt         time.Time `json:"startAt"` // RFC 3339
	DurationMinutes int       `json:"durationMinutes"`

	TotalPrice        int64  `json:"totalPrice"` // В минорных единицах валюты
	DepositPercentage *int   `json:"depositPercentage,omitempty"`
	DepositOverride   *int64 `json:"depositOverride,omitempty"` // Фиксированный депозит flash-эскиза

	Notes *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID       int64  `json:"id"`
	ArtistID int64  `json:"artistId"`
	ClientID int64  `json:"clientId"`
	Source   string `json:"source"`
	SourceID *int64 `json:"sourceId,omitempty"`

	StartAt         time.Time `json:"startAt"`
	EndAt           time.Time `json:"endAt"`
	DurationMinutes int       `json:"durationMinutes"`

	TotalPrice        int64 `json:"totalPrice"`
	DepositAmount     int64 `json:"depositAmount"`
	DepositPercentage int   `json:"depositPercentage"`
	CommissionAmount  int64 `json:"commissionAmount"`

	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`

	PaymentRedirectURL *string `json:"paymentRedirectUrl,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// clientID приходит из контекста аутентификации, не из тела запроса
func (r *CreateBookingRequest) ToUseCaseRequest(clientID int64) (*createBooking.Request, error) {
	source, err := domain.NewBookingSource(r.Source, r.SourceID)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ArtistID:          r.ArtistID,
		ClientID:          clientID,
		Source:            source,
		ClientName:        r.ClientName,
		ClientEmail:       r.ClientEmail,
		ClientPhone:       r.ClientPhone,
		StartAt:           r.StartAt,
		DurationMinutes:   r.DurationMinutes,
		TotalPrice:        r.TotalPrice,
		DepositPercentage: r.DepositPercentage,
		DepositOverride:   r.DepositOverride,
		Notes:             r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                 resp.ID,
		ArtistID:           resp.ArtistID,
		ClientID:           resp.ClientID,
		Source:             string(resp.Source.Kind),
		SourceID:           resp.Source.RefID,
		StartAt:            resp.StartAt,
		EndAt:              resp.EndAt,
		DurationMinutes:    resp.DurationMinutes,
		TotalPrice:         resp.TotalPrice,
		DepositAmount:      resp.DepositAmount,
		DepositPercentage:  resp.DepositPercentage,
		CommissionAmount:   resp.CommissionAmount,
		Status:             resp.Status,
		PaymentStatus:      resp.PaymentStatus,
		PaymentRedirectURL: resp.PaymentRedirectURL,
		CreatedAt:          resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          resp.UpdatedAt.Format(time.RFC3339),
	}
}
