package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/INK-BookingService/internal/domain"
	settingsRepo "github.com/m04kA/INK-BookingService/internal/infra/storage/config"
	"github.com/m04kA/INK-BookingService/internal/service/config/models"
)

// Service сервис настроек бронирования мастера
type Service struct {
	settingsRepo SettingsRepository
	slotCache    SlotCache
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, slotCache SlotCache, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		slotCache:    slotCache,
		logger:       logger,
	}
}

// Get получает настройки мастера
// Публичный метод: клиент видит расписание и процент депозита до бронирования
// Мастер без сохранённых настроек получает настройки по умолчанию
func (s *Service) Get(ctx context.Context, artistID int64) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching settings for artist=%d", artistID)

	settings, err := s.settingsRepo.GetByArtistID(ctx, artistID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Info("Get: no stored settings for artist=%d, using defaults", artistID)
			return models.FromDomainSettings(domain.DefaultSettings(artistID)), nil
		}
		s.logger.Error("Get: repository error for artist=%d: %v", artistID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSettings(settings), nil
}

// Update полностью заменяет настройки мастера
// Доступно только самому мастеру
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating settings for artist=%d by user=%d", req.ArtistID, req.UserID)

	// 1. Настройки меняет только их владелец
	if req.UserID != req.ArtistID {
		s.logger.Warn("Update: access denied for user=%d to artist=%d settings", req.UserID, req.ArtistID)
		return nil, ErrAccessDenied
	}

	// 2. Валидируем тариф
	tier, err := domain.ParseTier(req.Tier)
	if err != nil {
		s.logger.Warn("Update: invalid tier=%s for artist=%d", req.Tier, req.ArtistID)
		return nil, fmt.Errorf("%w: %v", ErrInvalidTier, err)
	}

	// 3. Валидируем числовые параметры и расписание
	if err := s.validateSettings(req); err != nil {
		s.logger.Warn("Update: validation failed for artist=%d: %v", req.ArtistID, err)
		return nil, err
	}

	// 4. Сохраняем
	updated, err := s.settingsRepo.Upsert(ctx, req.ToDomainSettings(tier))
	if err != nil {
		s.logger.Error("Update: repository error for artist=%d: %v", req.ArtistID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// 5. Новое расписание и шаг слотов делают кеш слотов неактуальным
	if s.slotCache != nil {
		s.slotCache.Invalidate(ctx, req.ArtistID)
	}

	s.logger.Info("Update: successfully updated settings for artist=%d", req.ArtistID)
	return models.FromDomainSettings(updated), nil
}

// validateSettings проверяет бизнес-ограничения настроек
func (s *Service) validateSettings(req *models.UpdateSettingsRequest) error {
	if req.SlotGranularityMinutes < domain.MinSlotGranularityMinutes ||
		req.SlotGranularityMinutes > domain.MaxSlotGranularityMinutes {
		return fmt.Errorf("%w: granularity must be between %d and %d minutes",
			ErrInvalidGranularity, domain.MinSlotGranularityMinutes, domain.MaxSlotGranularityMinutes)
	}

	if req.DepositPercentage < domain.MinDepositPercentage ||
		req.DepositPercentage > domain.MaxDepositPercentage {
		return fmt.Errorf("%w: deposit percentage must be between %d and %d",
			ErrInvalidDeposit, domain.MinDepositPercentage, domain.MaxDepositPercentage)
	}

	if req.MinBookingNoticeMinutes < domain.MinBookingNoticeMinutes ||
		req.MinBookingNoticeMinutes > domain.MaxBookingNoticeMinutes {
		return fmt.Errorf("%w: booking notice must be between %d and %d minutes",
			ErrInvalidInput, domain.MinBookingNoticeMinutes, domain.MaxBookingNoticeMinutes)
	}

	if req.AdvanceBookingDays < domain.MinAdvanceBookingDays ||
		req.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advance booking days must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	weekdays := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}

	for _, weekday := range weekdays {
		day := req.Schedule.ForWeekday(weekday)
		if !day.IsOpen {
			continue
		}

		openMinutes, err := day.OpenTime.Minutes()
		if err != nil {
			return fmt.Errorf("%w: %s open time: %v", ErrInvalidSchedule, weekday, err)
		}
		closeMinutes, err := day.CloseTime.Minutes()
		if err != nil {
			return fmt.Errorf("%w: %s close time: %v", ErrInvalidSchedule, weekday, err)
		}
		if openMinutes >= closeMinutes {
			return fmt.Errorf("%w: %s open time %s must be before close time %s",
				ErrInvalidSchedule, weekday, day.OpenTime, day.CloseTime)
		}

		// Шаг слотов должен нацело укладываться в рабочее окно,
		// иначе генерация слотов невозможна
		window := closeMinutes - openMinutes
		if window%req.SlotGranularityMinutes != 0 {
			return fmt.Errorf("%w: %s window of %d minutes is not divisible by granularity %d",
				ErrInvalidGranularity, weekday, window, req.SlotGranularityMinutes)
		}
	}

	return nil
}
