package get_artist_settings

import (
	"context"

	"github.com/m04kA/INK-BookingService/internal/service/config/models"
)

type ConfigService interface {
	Get(ctx context.Context, artistID int64) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
