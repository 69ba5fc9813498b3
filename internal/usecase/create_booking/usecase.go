package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/INK-BookingService/internal/domain"
	storage "github.com/m04kA/INK-BookingService/internal/infra/storage/booking"
	configRepo "github.com/m04kA/INK-BookingService/internal/infra/storage/config"
	"github.com/m04kA/INK-BookingService/internal/integrations/payproc"
	"github.com/m04kA/INK-BookingService/internal/pricing"
)

// UseCase use case создания бронирования
// Проверка пересечений выполняется в сериализуемой транзакции на актуальном
// состоянии БД - это закрывает гонку между показом доступности клиенту и
// отправкой заявки: из двух конкурентных заявок на пересекающиеся интервалы
// ровно одна получает ErrSlotConflict
type UseCase struct {
	bookingRepo  BookingRepository
	configRepo   ConfigRepository
	payClient    PaymentClient
	cache        SlotCache
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger

	currency   string
	successURL string
	cancelURL  string
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	configRepo ConfigRepository,
	payClient PaymentClient,
	cache SlotCache,
	txManager TransactionManager,
	logger Logger,
	currency, successURL, cancelURL string,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		configRepo:   configRepo,
		payClient:    payClient,
		cache:        cache,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		currency:     currency,
		successURL:   successURL,
		cancelURL:    cancelURL,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: artist=%d, client=%d, source=%s, start=%s, duration=%d",
		req.ArtistID, req.ClientID, req.Source.Kind, req.StartAt.Format(time.RFC3339), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	startAt := req.StartAt.UTC()
	endAt := startAt.Add(time.Duration(req.DurationMinutes) * time.Minute)

	// 2. Настройки мастера (процент депозита, тариф, расписание)
	settings, err := uc.configRepo.GetByArtistID(ctx, req.ArtistID)
	if err != nil && !errors.Is(err, configRepo.ErrSettingsNotFound) {
		uc.logger.Error("CreateBooking: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}
	if settings == nil {
		settings = domain.DefaultSettings(req.ArtistID)
		uc.logger.Info("CreateBooking: using default settings for artist=%d", req.ArtistID)
	}

	// 3. Временные правила
	manual := req.Source.IsManual()
	if err := validateTiming(startAt, now, settings, manual); err != nil {
		uc.logger.Warn("CreateBooking: timing validation failed: %v", err)
		return nil, err
	}

	// 4. Рабочие часы: клиентские заявки только внутри расписания
	if !manual {
		if err := validateWorkingHours(startAt, endAt, settings.Schedule); err != nil {
			uc.logger.Warn("CreateBooking: working hours check failed: %v", err)
			return nil, err
		}
	}

	// 5. Расчёт депозита и комиссии до записи - при некорректных суммах
	// ничего не персистится
	depositPct := settings.DepositPercentage
	if req.DepositPercentage != nil {
		depositPct = *req.DepositPercentage
	}

	deposit, err := pricing.ComputeDeposit(req.TotalPrice, depositPct, req.DepositOverride)
	if err != nil {
		uc.logger.Warn("CreateBooking: deposit computation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}

	commission, err := pricing.ComputeCommission(deposit, settings.Tier)
	if err != nil {
		uc.logger.Error("CreateBooking: commission computation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// Ручные записи мастера сразу подтверждены; клиентские ждут депозита
	status := domain.StatusPending
	if manual {
		status = domain.StatusConfirmed
	}

	var result *domain.Booking

	// 6. Проверка пересечений и вставка в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		overlapping, err := uc.bookingRepo.GetOverlapping(txCtx, req.ArtistID, startAt, endAt, nil)
		if err != nil {
			uc.logger.Error("CreateBooking: overlap check failed: %v", err)
			return fmt.Errorf("%w: overlap check failed: %w", ErrInternal, err)
		}

		if len(overlapping) > 0 {
			uc.logger.Warn("CreateBooking: slot conflict for artist=%d, %s-%s overlaps booking id=%d",
				req.ArtistID, startAt.Format(time.RFC3339), endAt.Format(time.RFC3339), overlapping[0].ID)
			return ErrSlotConflict
		}

		booking := &domain.Booking{
			ArtistID:          req.ArtistID,
			ClientID:          req.ClientID,
			Source:            req.Source,
			ClientName:        req.ClientName,
			ClientEmail:       req.ClientEmail,
			ClientPhone:       req.ClientPhone,
			StartAt:           startAt,
			EndAt:             endAt,
			DurationMinutes:   req.DurationMinutes,
			TotalPrice:        req.TotalPrice,
			DepositAmount:     deposit,
			DepositPercentage: depositPct,
			Status:            status,
			PaymentStatus:     domain.PaymentPending,
			Notes:             req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Exclusion constraint БД поймал гонку, которую не увидел re-read
			if errors.Is(err, storage.ErrSlotConflict) {
				uc.logger.Warn("CreateBooking: concurrent booking took the interval for artist=%d, %s-%s",
					req.ArtistID, startAt.Format(time.RFC3339), endAt.Format(time.RFC3339))
				return fmt.Errorf("%w: concurrent booking took the interval", ErrSlotConflict)
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, req.ArtistID)

	uc.logger.Info("CreateBooking: created booking id=%d, deposit=%d, commission=%d",
		result.ID, deposit, commission)

	// 7. Платёжная сессия на депозит. Недоступность процессора не ломает
	// уже созданное бронирование
	var redirectURL *string
	if !manual && deposit > 0 {
		checkout, err := uc.payClient.CreateCheckoutWithGracefulDegradation(ctx, &payproc.CheckoutRequest{
			BookingID:      result.ID,
			Amount:         deposit,
			ApplicationFee: commission,
			Currency:       uc.currency,
			Description:    fmt.Sprintf("Deposit for booking #%d", result.ID),
			CustomerEmail:  req.ClientEmail,
			SuccessURL:     uc.successURL,
			CancelURL:      uc.cancelURL,
		})
		if err != nil {
			uc.logger.Warn("CreateBooking: checkout unavailable for booking id=%d: %v", result.ID, err)
		} else {
			if err := uc.bookingRepo.SetPaymentRef(ctx, result.ID, checkout.Handle); err != nil {
				uc.logger.Error("CreateBooking: failed to store payment ref for booking id=%d: %v", result.ID, err)
			} else {
				result.PaymentRef = &checkout.Handle
				redirectURL = &checkout.RedirectURL
			}
		}
	}

	return &Response{
		ID:                 result.ID,
		ArtistID:           result.ArtistID,
		ClientID:           result.ClientID,
		Source:             result.Source,
		StartAt:            result.StartAt,
		EndAt:              result.EndAt,
		DurationMinutes:    result.DurationMinutes,
		TotalPrice:         result.TotalPrice,
		DepositAmount:      result.DepositAmount,
		DepositPercentage:  result.DepositPercentage,
		CommissionAmount:   commission,
		Status:             string(result.Status),
		PaymentStatus:      string(result.PaymentStatus),
		PaymentRedirectURL: redirectURL,
		CreatedAt:          result.CreatedAt,
		UpdatedAt:          result.UpdatedAt,
	}, nil
}
