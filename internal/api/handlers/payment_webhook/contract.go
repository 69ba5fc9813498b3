package payment_webhook

import (
	"context"

	"github.com/m04kA/INK-BookingService/internal/domain"
)

type BookingService interface {
	HandlePaymentOutcome(ctx context.Context, paymentRef string, paymentStatus domain.PaymentStatus) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
