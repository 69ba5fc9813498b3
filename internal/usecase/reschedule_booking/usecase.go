package reschedule_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/INK-BookingService/internal/domain"
	storage "github.com/m04kA/INK-BookingService/internal/infra/storage/booking"
)

// UseCase перенос подтверждённого или ожидающего бронирования на новый интервал
type UseCase struct {
	bookings     BookingRepository
	cache        SlotCache
	txManager    TransactionManager
	timeProvider TimeProvider
	log          Logger
}

func New(bookings BookingRepository, cache SlotCache, txManager TransactionManager, timeProvider TimeProvider, log Logger) *UseCase {
	return &UseCase{
		bookings:     bookings,
		cache:        cache,
		txManager:    txManager,
		timeProvider: timeProvider,
		log:          log,
	}
}

// Execute переносит бронирование на новый интервал с защитой от пересечений.
// Исходное бронирование исключается из проверки пересечений, поэтому сдвиг
// внутри собственного интервала (например, продление на 30 минут) допустим.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация интервала
	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}
	if !req.StartAt.Before(req.EndAt) {
		return nil, fmt.Errorf("%w: start_at must be before end_at", ErrInvalidTimeRange)
	}
	startAt := req.StartAt.UTC()
	endAt := req.EndAt.UTC()

	durationMinutes := int(endAt.Sub(startAt).Minutes())
	if durationMinutes > domain.MaxBookingDurationMinutes {
		return nil, fmt.Errorf("%w: duration %d exceeds maximum %d minutes", ErrInvalidTimeRange, durationMinutes, domain.MaxBookingDurationMinutes)
	}
	if !startAt.After(uc.timeProvider.Now()) {
		return nil, fmt.Errorf("%w: new start time is in the past", ErrInvalidTimeRange)
	}

	var artistID int64

	// 2. Проверка доступа и пересечений, перенос - в одной serializable транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookings.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, storage.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("get booking: %w", err)
		}

		if booking.ClientID != req.UserID && booking.ArtistID != req.UserID {
			return ErrAccessDenied
		}
		if !booking.CanBeRescheduled() {
			return fmt.Errorf("%w: status %s", ErrNotReschedulable, booking.Status)
		}
		artistID = booking.ArtistID

		excludeID := booking.ID
		overlapping, err := uc.bookings.GetOverlapping(txCtx, booking.ArtistID, startAt, endAt, &excludeID)
		if err != nil {
			return fmt.Errorf("check overlapping bookings: %w", err)
		}
		if len(overlapping) > 0 {
			return fmt.Errorf("%w: interval overlaps booking %d", ErrSlotConflict, overlapping[0].ID)
		}

		if err := uc.bookings.UpdateSchedule(txCtx, booking.ID, startAt, endAt, durationMinutes); err != nil {
			if errors.Is(err, storage.ErrSlotConflict) {
				return fmt.Errorf("%w: concurrent booking took the interval", ErrSlotConflict)
			}
			return fmt.Errorf("update booking schedule: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotConflict) {
			uc.log.Warn("Reschedule conflict: bookingID=%d, start=%s, end=%s", req.BookingID, startAt, endAt)
		}
		return nil, err
	}

	// 3. Инвалидация кеша слотов мастера
	if uc.cache != nil {
		uc.cache.Invalidate(ctx, artistID)
	}

	uc.log.Info("Booking rescheduled: bookingID=%d, artistID=%d, start=%s, end=%s", req.BookingID, artistID, startAt, endAt)

	return &Response{
		BookingID:       req.BookingID,
		StartAt:         startAt,
		EndAt:           endAt,
		DurationMinutes: durationMinutes,
	}, nil
}
