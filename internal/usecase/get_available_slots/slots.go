package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/INK-BookingService/internal/domain"
)

// generateSlots генерирует кандидатов-слотов по шаблону рабочих часов мастера
// на диапазон дат [rangeStart, rangeEnd] (даты включительно).
// Детерминирована: одинаковые входы (включая now) дают одинаковый результат.
// Слоты, начинающиеся не позже now, исключаются - нельзя бронировать прошлое
// и текущий момент. Нерабочие дни пропускаются целиком
func generateSlots(
	schedule domain.WeekSchedule,
	granularityMinutes int,
	rangeStart, rangeEnd time.Time,
	now time.Time,
) ([]domain.AvailabilitySlot, error) {
	if granularityMinutes <= 0 {
		return nil, fmt.Errorf("%w: granularity must be positive, got %d", ErrInvalidConfiguration, granularityMinutes)
	}
	if rangeEnd.Before(rangeStart) {
		return nil, fmt.Errorf("%w: range end %s before range start %s",
			ErrInvalidConfiguration, rangeEnd.Format(domain.DateFormat), rangeStart.Format(domain.DateFormat))
	}

	slots := make([]domain.AvailabilitySlot, 0)

	for day := dateOnly(rangeStart); !day.After(dateOnly(rangeEnd)); day = day.AddDate(0, 0, 1) {
		daySchedule := schedule.ForWeekday(day.Weekday())
		if !daySchedule.IsOpen {
			continue
		}

		openMinutes, err := daySchedule.OpenTime.Minutes()
		if err != nil {
			return nil, fmt.Errorf("%w: invalid open time %q: %v", ErrInvalidConfiguration, daySchedule.OpenTime, err)
		}
		closeMinutes, err := daySchedule.CloseTime.Minutes()
		if err != nil {
			return nil, fmt.Errorf("%w: invalid close time %q: %v", ErrInvalidConfiguration, daySchedule.CloseTime, err)
		}

		window := closeMinutes - openMinutes
		if window <= 0 {
			return nil, fmt.Errorf("%w: close time %s is not after open time %s",
				ErrInvalidConfiguration, daySchedule.CloseTime, daySchedule.OpenTime)
		}
		if window%granularityMinutes != 0 {
			return nil, fmt.Errorf("%w: granularity %d does not evenly divide working window %s-%s",
				ErrInvalidConfiguration, granularityMinutes, daySchedule.OpenTime, daySchedule.CloseTime)
		}

		for startMin := openMinutes; startMin+granularityMinutes <= closeMinutes; startMin += granularityMinutes {
			startAt := day.Add(time.Duration(startMin) * time.Minute)
			if !startAt.After(now) {
				continue
			}

			slots = append(slots, domain.AvailabilitySlot{
				StartAt: startAt,
				EndAt:   startAt.Add(time.Duration(granularityMinutes) * time.Minute),
			})
		}
	}

	return slots, nil
}

// filterAvailable убирает кандидатов, пересекающихся с активными
// (pending/confirmed) бронированиями. Порядок кандидатов сохраняется
func filterAvailable(candidates []domain.AvailabilitySlot, bookings []*domain.Booking) []domain.AvailabilitySlot {
	available := make([]domain.AvailabilitySlot, 0, len(candidates))

	for _, slot := range candidates {
		blocked := false
		for _, booking := range bookings {
			if !booking.IsBlocking() {
				continue
			}
			if slot.OverlapsBooking(booking) {
				blocked = true
				break
			}
		}
		if !blocked {
			available = append(available, slot)
		}
	}

	return available
}

// dateOnly обнуляет время, оставляя только дату в UTC
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
