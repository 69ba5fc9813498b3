package payproc

import (
	"fmt"

	"github.com/m04kA/INK-BookingService/internal/domain"
)

// CheckoutRequest запрос на создание платёжной сессии
// Amount - депозит, ApplicationFee - комиссия платформы; оба в минорных
// единицах валюты
type CheckoutRequest struct {
	BookingID      int64  `json:"bookingId"`
	Amount         int64  `json:"amount"`
	ApplicationFee int64  `json:"applicationFee"`
	Currency       string `json:"currency"`
	Description    string `json:"description"`
	CustomerEmail  string `json:"customerEmail"`
	SuccessURL     string `json:"successUrl"`
	CancelURL      string `json:"cancelUrl"`
}

// Checkout созданная платёжная сессия
type Checkout struct {
	Handle      string `json:"handle"`      // Ссылка процессора, сохраняется в payment_ref
	RedirectURL string `json:"redirectUrl"` // URL для редиректа клиента на оплату
}

// WebhookEvent асинхронное платёжное событие от процессора
type WebhookEvent struct {
	EventID string `json:"eventId"`
	Handle  string `json:"handle"`
	Outcome string `json:"outcome"` // deposit_paid | fully_paid | failed | refunded
}

// PaymentStatus конвертирует исход события в доменный статус оплаты
func (e *WebhookEvent) PaymentStatus() (domain.PaymentStatus, error) {
	switch e.Outcome {
	case "deposit_paid":
		return domain.PaymentDepositPaid, nil
	case "fully_paid":
		return domain.PaymentFullyPaid, nil
	case "failed":
		return domain.PaymentFailed, nil
	case "refunded":
		return domain.PaymentRefunded, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOutcome, e.Outcome)
	}
}

// ErrorResponse модель ошибки от процессора
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
