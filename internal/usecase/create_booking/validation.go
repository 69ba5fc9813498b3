package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/INK-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ArtistID <= 0 {
		return fmt.Errorf("%w: artistID must be positive", ErrInvalidInput)
	}

	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.ClientName == "" {
		return fmt.Errorf("%w: client name is required", ErrInvalidInput)
	}

	if req.ClientEmail == "" {
		return fmt.Errorf("%w: client email is required", ErrInvalidInput)
	}

	if req.StartAt.IsZero() {
		return fmt.Errorf("%w: startAt is required", ErrInvalidInput)
	}

	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}

	if req.DurationMinutes > domain.MaxBookingDurationMinutes {
		return fmt.Errorf("%w: duration exceeds %d minutes", ErrInvalidInput, domain.MaxBookingDurationMinutes)
	}

	if req.TotalPrice < 0 {
		return fmt.Errorf("%w: price must be non-negative", ErrInvalidAmount)
	}

	if req.DepositPercentage != nil &&
		(*req.DepositPercentage < domain.MinDepositPercentage || *req.DepositPercentage > domain.MaxDepositPercentage) {
		return fmt.Errorf("%w: deposit percentage must be in [%d,%d]",
			ErrInvalidInput, domain.MinDepositPercentage, domain.MaxDepositPercentage)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateTiming проверяет временные правила: не в прошлом, минимальный
// запас до начала, ограничение глубины записи.
// Ручные записи мастера освобождены от запаса min notice
func validateTiming(startAt, now time.Time, settings *domain.ArtistSettings, manual bool) error {
	if !startAt.After(now) {
		return fmt.Errorf("%w: start is not in the future", ErrInvalidDate)
	}

	if !manual {
		minAllowed := now.Add(time.Duration(settings.MinBookingNoticeMinutes) * time.Minute)
		if startAt.Before(minAllowed) {
			return fmt.Errorf("%w: must book at least %d minutes in advance",
				ErrTooLateToBook, settings.MinBookingNoticeMinutes)
		}
	}

	if settings.HasAdvanceBookingLimit() {
		maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).
			AddDate(0, 0, settings.AdvanceBookingDays+1)
		if !startAt.Before(maxDate) {
			return fmt.Errorf("%w: can only book %d days in advance",
				ErrDateTooFarInFuture, settings.AdvanceBookingDays)
		}
	}

	return nil
}

// validateWorkingHours проверяет, что интервал [startAt, endAt) лежит внутри
// рабочих часов мастера на этот день. Для ручных записей не вызывается:
// мастер может записать клиента вне стандартного расписания
func validateWorkingHours(startAt, endAt time.Time, schedule domain.WeekSchedule) error {
	daySchedule := schedule.ForWeekday(startAt.Weekday())
	if !daySchedule.IsOpen {
		return fmt.Errorf("%w: artist does not work on %s", ErrOutsideWorkingHours, startAt.Weekday())
	}

	dayStart := time.Date(startAt.Year(), startAt.Month(), startAt.Day(), 0, 0, 0, 0, time.UTC)

	openMinutes, err := daySchedule.OpenTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid open time: %v", ErrInternal, err)
	}
	closeMinutes, err := daySchedule.CloseTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid close time: %v", ErrInternal, err)
	}

	openAt := dayStart.Add(time.Duration(openMinutes) * time.Minute)
	closeAt := dayStart.Add(time.Duration(closeMinutes) * time.Minute)

	if startAt.Before(openAt) || endAt.After(closeAt) {
		return fmt.Errorf("%w: %s-%s is outside %s-%s", ErrOutsideWorkingHours,
			startAt.Format(domain.TimeFormat), endAt.Format(domain.TimeFormat),
			daySchedule.OpenTime, daySchedule.CloseTime)
	}

	return nil
}
