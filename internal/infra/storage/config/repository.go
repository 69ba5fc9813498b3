package config

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/INK-BookingService/internal/domain"
	"github.com/m04kA/INK-BookingService/pkg/dbmetrics"
	"github.com/m04kA/INK-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий настроек бронирования мастера
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByArtistID получает настройки мастера
// Расписание хранится как jsonb
func (r *Repository) GetByArtistID(ctx context.Context, artistID int64) (*domain.ArtistSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"artist_id",
		"schedule",
		"slot_granularity_minutes",
		"deposit_percentage",
		"tier",
		"min_booking_notice_minutes",
		"advance_booking_days",
		"created_at",
		"updated_at",
	).
		From("artist_settings").
		Where(squirrel.Eq{"artist_id": artistID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByArtistID - build select query: %v", ErrBuildQuery, err)
	}

	var settings domain.ArtistSettings
	var scheduleRaw []byte
	var tier string
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.ArtistID,
		&scheduleRaw,
		&settings.SlotGranularityMinutes,
		&settings.DepositPercentage,
		&tier,
		&settings.MinBookingNoticeMinutes,
		&settings.AdvanceBookingDays,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByArtistID - scan settings: %w", ErrScanRow, err)
	}

	if err := json.Unmarshal(scheduleRaw, &settings.Schedule); err != nil {
		return nil, fmt.Errorf("%w: GetByArtistID - unmarshal schedule: %v", ErrScanRow, err)
	}

	settings.Tier = domain.PricingTier(tier)
	settings.CreatedAt = createdAt.Time
	settings.UpdatedAt = updatedAt.Time

	return &settings, nil
}

// Upsert создает или обновляет настройки мастера
func (r *Repository) Upsert(ctx context.Context, settings *domain.ArtistSettings) (*domain.ArtistSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	scheduleRaw, err := json.Marshal(settings.Schedule)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - marshal schedule: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("artist_settings").
		Columns(
			"artist_id",
			"schedule",
			"slot_granularity_minutes",
			"deposit_percentage",
			"tier",
			"min_booking_notice_minutes",
			"advance_booking_days",
		).
		Values(
			settings.ArtistID,
			scheduleRaw,
			settings.SlotGranularityMinutes,
			settings.DepositPercentage,
			string(settings.Tier),
			settings.MinBookingNoticeMinutes,
			settings.AdvanceBookingDays,
		).
		Suffix(`ON CONFLICT (artist_id) DO UPDATE SET
			schedule = EXCLUDED.schedule,
			slot_granularity_minutes = EXCLUDED.slot_granularity_minutes,
			deposit_percentage = EXCLUDED.deposit_percentage,
			tier = EXCLUDED.tier,
			min_booking_notice_minutes = EXCLUDED.min_booking_notice_minutes,
			advance_booking_days = EXCLUDED.advance_booking_days,
			updated_at = NOW()
		RETURNING created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %w", ErrExecQuery, err)
	}

	settings.CreatedAt = createdAt.Time
	settings.UpdatedAt = updatedAt.Time

	return settings, nil
}
