package config

import (
	"context"

	"github.com/m04kA/INK-BookingService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек мастера
type SettingsRepository interface {
	GetByArtistID(ctx context.Context, artistID int64) (*domain.ArtistSettings, error)
	Upsert(ctx context.Context, settings *domain.ArtistSettings) (*domain.ArtistSettings, error)
}

// SlotCache интерфейс кеша слотов (настройки влияют на генерацию слотов)
type SlotCache interface {
	Invalidate(ctx context.Context, artistID int64)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
