package domain

import (
	"time"

	"github.com/m04kA/INK-BookingService/pkg/types"
)

// DaySchedule рабочие часы одного дня недели
type DaySchedule struct {
	IsOpen    bool             `json:"isOpen"`
	OpenTime  types.TimeString `json:"openTime,omitempty"`
	CloseTime types.TimeString `json:"closeTime,omitempty"`
}

// WeekSchedule шаблон рабочих часов мастера по дням недели
type WeekSchedule struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// ForWeekday возвращает расписание на указанный день недели
func (w WeekSchedule) ForWeekday(weekday time.Weekday) DaySchedule {
	switch weekday {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return DaySchedule{IsOpen: false}
	}
}

// ArtistSettings настройки бронирования мастера: рабочие часы, шаг слотов,
// правила депозита и тариф подписки
type ArtistSettings struct {
	ArtistID                int64
	Schedule                WeekSchedule
	SlotGranularityMinutes  int
	DepositPercentage       int
	Tier                    PricingTier
	MinBookingNoticeMinutes int
	AdvanceBookingDays      int // 0 = без ограничения
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// DefaultSettings возвращает настройки по умолчанию для мастера без
// сохранённой конфигурации
func DefaultSettings(artistID int64) *ArtistSettings {
	weekday := DaySchedule{
		IsOpen:    true,
		OpenTime:  types.TimeString(DefaultOpenTime),
		CloseTime: types.TimeString(DefaultCloseTime),
	}

	return &ArtistSettings{
		ArtistID: artistID,
		Schedule: WeekSchedule{
			Monday:    weekday,
			Tuesday:   weekday,
			Wednesday: weekday,
			Thursday:  weekday,
			Friday:    weekday,
			Saturday:  DaySchedule{IsOpen: false},
			Sunday:    DaySchedule{IsOpen: false},
		},
		SlotGranularityMinutes:  DefaultSlotGranularityMinutes,
		DepositPercentage:       DefaultDepositPercentage,
		Tier:                    TierFree,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
	}
}

// HasAdvanceBookingLimit возвращает true, если глубина записи ограничена
func (s *ArtistSettings) HasAdvanceBookingLimit() bool {
	return s.AdvanceBookingDays > 0
}
