package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/INK-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/INK-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/INK-BookingService/internal/service/bookings/models"
)

// Service сервис жизненного цикла бронирований: чтение с проверкой прав,
// переходы статусов и обработка платёжных событий
type Service struct {
	bookingRepo BookingRepository
	slotCache   SlotCache
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, slotCache SlotCache, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		slotCache:   slotCache,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Доступ имеют только клиент и мастер этого бронирования
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getBooking(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if booking.ClientID != userID && booking.ArtistID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetClientBookings получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetClientBookings(ctx context.Context, req *models.GetClientBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: fetching bookings for client=%d, status=%v", req.ClientID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientBookings: invalid status=%s for client=%d", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByClientID(ctx, req.ClientID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientBookings: successfully fetched %d bookings for client=%d", len(bookings), req.ClientID)
	return models.FromDomainBookingList(bookings), nil
}

// GetArtistBookings получает бронирования мастера с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включение неактивных записей
// Доступно только самому мастеру
//
// Примеры использования:
// - Все активные записи: GetArtistBookings(ctx, &GetArtistBookingsRequest{ArtistID: 123, UserID: 123})
// - Записи на дату: StartDate и EndDate указывают на одну дату
// - Записи за период: StartDate и EndDate указывают на разные даты
// - Только подтверждённые: указать Status = "confirmed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) GetArtistBookings(ctx context.Context, req *models.GetArtistBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetArtistBookings: fetching bookings for artist=%d, user=%d", req.ArtistID, req.UserID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	// Календарь мастера видит только сам мастер
	if req.UserID != req.ArtistID {
		s.logger.Warn("GetArtistBookings: access denied for user=%d to artist=%d calendar", req.UserID, req.ArtistID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetArtistBookings: invalid filter for artist=%d: %v", req.ArtistID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByArtistWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetArtistBookings: repository error for artist=%d: %v", req.ArtistID, err)
		return nil, fmt.Errorf("%w: GetArtistBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetArtistBookings: successfully fetched %d bookings for artist=%d", len(bookings), req.ArtistID)
	return models.FromDomainBookingList(bookings), nil
}

// Confirm подтверждает ожидающее бронирование
// Доступно только мастеру бронирования, переход pending -> confirmed
func (s *Service) Confirm(ctx context.Context, bookingID int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("Confirm: confirming booking id=%d by user=%d", bookingID, userID)

	booking, err := s.getBooking(ctx, bookingID, "Confirm")
	if err != nil {
		return nil, err
	}

	if booking.ArtistID != userID {
		s.logger.Warn("Confirm: access denied for user=%d to booking id=%d", userID, bookingID)
		return nil, ErrAccessDenied
	}

	if !booking.CanTransitionTo(domain.StatusConfirmed) {
		s.logger.Warn("Confirm: booking id=%d cannot be confirmed from status=%s", bookingID, booking.Status)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, domain.StatusConfirmed)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.StatusConfirmed); err != nil {
		return nil, s.wrapRepoError("Confirm", bookingID, err)
	}
	booking.Status = domain.StatusConfirmed

	s.logger.Info("Confirm: successfully confirmed booking id=%d", bookingID)
	return models.FromDomainBooking(booking), nil
}

// Resolve переводит бронирование в терминальный статус:
// rejected (из pending), completed / cancelled / no_show (из confirmed)
// Отклонять и завершать может только мастер; отменять - мастер или клиент
func (s *Service) Resolve(ctx context.Context, bookingID int64, req *models.ResolveBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Resolve: resolving booking id=%d to status=%s by user=%d", bookingID, req.Status, req.UserID)

	target, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("Resolve: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidStatus)
	}

	booking, err := s.getBooking(ctx, bookingID, "Resolve")
	if err != nil {
		return nil, err
	}

	// Отмена доступна обеим сторонам, остальные переходы - только мастеру
	if target == domain.StatusCancelled {
		if booking.ClientID != req.UserID && booking.ArtistID != req.UserID {
			s.logger.Warn("Resolve: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
			return nil, ErrAccessDenied
		}
	} else if booking.ArtistID != req.UserID {
		s.logger.Warn("Resolve: access denied for user=%d to resolve booking id=%d", req.UserID, bookingID)
		return nil, ErrAccessDenied
	}

	if !booking.CanTransitionTo(target) {
		s.logger.Warn("Resolve: invalid transition %s -> %s for booking id=%d", booking.Status, target, bookingID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, target)
	}

	switch target {
	case domain.StatusCancelled, domain.StatusRejected:
		reason := ""
		if req.CancellationReason != nil {
			reason = *req.CancellationReason
		}
		if err := s.bookingRepo.Cancel(ctx, bookingID, target, reason); err != nil {
			return nil, s.wrapRepoError("Resolve", bookingID, err)
		}
	default:
		if err := s.bookingRepo.UpdateStatus(ctx, bookingID, target); err != nil {
			return nil, s.wrapRepoError("Resolve", bookingID, err)
		}
	}
	booking.Status = target
	booking.CancellationReason = req.CancellationReason

	// Терминальный статус освобождает интервал - слоты мастера пересчитываются
	if s.slotCache != nil {
		s.slotCache.Invalidate(ctx, booking.ArtistID)
	}

	s.logger.Info("Resolve: successfully resolved booking id=%d to status=%s", bookingID, target)
	return models.FromDomainBooking(booking), nil
}

// HandlePaymentOutcome обрабатывает платёжное событие от процессинга
// Идемпотентна: повторная доставка события с уже применённым статусом - no-op
// Успешная оплата депозита автоматически подтверждает ожидающее бронирование
func (s *Service) HandlePaymentOutcome(ctx context.Context, paymentRef string, paymentStatus domain.PaymentStatus) error {
	s.logger.Info("HandlePaymentOutcome: processing payment event ref=%s, status=%s", paymentRef, paymentStatus)

	booking, err := s.bookingRepo.GetByPaymentRef(ctx, paymentRef)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("HandlePaymentOutcome: no booking for payment ref=%s", paymentRef)
			return ErrBookingNotFound
		}
		s.logger.Error("HandlePaymentOutcome: repository error for ref=%s: %v", paymentRef, err)
		return fmt.Errorf("%w: HandlePaymentOutcome - repository error: %v", ErrInternal, err)
	}

	// Повторная доставка того же события
	if booking.PaymentStatus == paymentStatus {
		s.logger.Info("HandlePaymentOutcome: booking id=%d already in payment status=%s, skipping", booking.ID, paymentStatus)
		return nil
	}

	if !booking.CanChangePaymentTo(paymentStatus) {
		s.logger.Warn("HandlePaymentOutcome: invalid payment transition %s -> %s for booking id=%d",
			booking.PaymentStatus, paymentStatus, booking.ID)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidPaymentTransition, booking.PaymentStatus, paymentStatus)
	}

	if err := s.bookingRepo.UpdatePaymentStatus(ctx, booking.ID, paymentStatus); err != nil {
		return s.wrapRepoError("HandlePaymentOutcome", booking.ID, err)
	}

	// Оплаченный депозит подтверждает бронирование без участия мастера
	if paymentStatus == domain.PaymentDepositPaid && booking.Status == domain.StatusPending {
		if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, domain.StatusConfirmed); err != nil {
			return s.wrapRepoError("HandlePaymentOutcome", booking.ID, err)
		}
		s.logger.Info("HandlePaymentOutcome: booking id=%d auto-confirmed after deposit payment", booking.ID)
	}

	s.logger.Info("HandlePaymentOutcome: booking id=%d payment status updated to %s", booking.ID, paymentStatus)
	return nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, id int64, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) wrapRepoError(op string, bookingID int64, err error) error {
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		s.logger.Warn("%s: booking id=%d not found during update", op, bookingID)
		return ErrBookingNotFound
	}
	s.logger.Error("%s: repository error for booking id=%d: %v", op, bookingID, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
