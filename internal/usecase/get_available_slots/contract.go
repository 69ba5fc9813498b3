package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/INK-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByArtistWithFilter(ctx context.Context, filter domain.ArtistBookingsFilter) ([]*domain.Booking, error)
}

// ConfigRepository интерфейс репозитория настроек мастера
type ConfigRepository interface {
	GetByArtistID(ctx context.Context, artistID int64) (*domain.ArtistSettings, error)
}

// SlotCache интерфейс кеша рассчитанных слотов
type SlotCache interface {
	Get(ctx context.Context, artistID int64, from, to string) ([]domain.AvailabilitySlot, bool)
	Set(ctx context.Context, artistID int64, from, to string, slots []domain.AvailabilitySlot)
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
