package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/INK-BookingService/internal/domain"
	"github.com/m04kA/INK-BookingService/internal/integrations/payproc"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetOverlapping(ctx context.Context, artistID int64, startAt, endAt time.Time, excludeID *int64) ([]*domain.Booking, error)
	SetPaymentRef(ctx context.Context, id int64, paymentRef string) error
}

// ConfigRepository интерфейс репозитория настроек мастера
type ConfigRepository interface {
	GetByArtistID(ctx context.Context, artistID int64) (*domain.ArtistSettings, error)
}

// PaymentClient интерфейс клиента платёжного процессора
type PaymentClient interface {
	CreateCheckoutWithGracefulDegradation(ctx context.Context, req *payproc.CheckoutRequest) (*payproc.Checkout, error)
}

// SlotCache интерфейс кеша слотов (для инвалидации после записи)
type SlotCache interface {
	Invalidate(ctx context.Context, artistID int64)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время в UTC
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
