package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/INK-BookingService/internal/domain"
	configRepo "github.com/m04kA/INK-BookingService/internal/infra/storage/config"
)

// UseCase use case получения доступных слотов мастера на диапазон дат
type UseCase struct {
	bookingRepo  BookingRepository
	configRepo   ConfigRepository
	cache        SlotCache
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	configRepo ConfigRepository,
	cache SlotCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		configRepo:   configRepo,
		cache:        cache,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: artist=%d, from=%s, to=%s",
		req.ArtistID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем настройки мастера, при отсутствии - дефолтные
	settings, err := uc.configRepo.GetByArtistID(ctx, req.ArtistID)
	if err != nil && !errors.Is(err, configRepo.ErrSettingsNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}
	if settings == nil {
		settings = domain.DefaultSettings(req.ArtistID)
		uc.logger.Info("GetAvailableSlots: using default settings for artist=%d", req.ArtistID)
	}

	// 3. Ограничение глубины записи
	if err := validateAdvanceLimit(req.To, now, settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: advance limit check failed: %v", err)
		return nil, err
	}

	fromKey := req.From.Format(domain.DateFormat)
	toKey := req.To.Format(domain.DateFormat)

	// 4. Пробуем кеш
	if cached, ok := uc.cache.Get(ctx, req.ArtistID, fromKey, toKey); ok {
		uc.logger.Info("GetAvailableSlots: cache hit for artist=%d, %d slots", req.ArtistID, len(cached))
		return &Response{ArtistID: req.ArtistID, From: req.From, To: req.To, Slots: cached}, nil
	}

	// 5. Генерируем кандидатов по шаблону рабочих часов
	candidates, err := generateSlots(
		settings.Schedule,
		settings.SlotGranularityMinutes,
		req.From,
		req.To,
		now,
	)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: slot generation failed: %v", err)
		return nil, err
	}

	// 6. Получаем активные бронирования на диапазон
	filter := domain.ArtistBookingsFilter{
		ArtistID:        req.ArtistID,
		StartDate:       &req.From,
		EndDate:         &req.To,
		IncludeInactive: false,
	}

	bookings, err := uc.bookingRepo.GetByArtistWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 7. Убираем занятые слоты
	slots := filterAvailable(candidates, bookings)

	uc.cache.Set(ctx, req.ArtistID, fromKey, toKey, slots)

	uc.logger.Info("GetAvailableSlots: %d/%d slots available for artist=%d",
		len(slots), len(candidates), req.ArtistID)

	return &Response{
		ArtistID: req.ArtistID,
		From:     req.From,
		To:       req.To,
		Slots:    slots,
	}, nil
}
