package models

import (
	"time"

	"github.com/m04kA/INK-BookingService/internal/domain"
)

// Request модели

// UpdateSettingsRequest запрос на полную замену настроек мастера
type UpdateSettingsRequest struct {
	UserID                  int64               `json:"userId"`
	ArtistID                int64               `json:"artistId"`
	Schedule                domain.WeekSchedule `json:"schedule"`
	SlotGranularityMinutes  int                 `json:"slotGranularityMinutes"`
	DepositPercentage       int                 `json:"depositPercentage"`
	Tier                    string              `json:"tier"`
	MinBookingNoticeMinutes int                 `json:"minBookingNoticeMinutes"`
	AdvanceBookingDays      int                 `json:"advanceBookingDays"` // 0 = без ограничений
}

// ToDomainSettings конвертирует request в domain модель
func (r *UpdateSettingsRequest) ToDomainSettings(tier domain.PricingTier) *domain.ArtistSettings {
	return &domain.ArtistSettings{
		ArtistID:                r.ArtistID,
		Schedule:                r.Schedule,
		SlotGranularityMinutes:  r.SlotGranularityMinutes,
		DepositPercentage:       r.DepositPercentage,
		Tier:                    tier,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
		AdvanceBookingDays:      r.AdvanceBookingDays,
	}
}

// Response модели

// SettingsResponse ответ с настройками мастера
type SettingsResponse struct {
	ArtistID                int64               `json:"artistId"`
	Schedule                domain.WeekSchedule `json:"schedule"`
	SlotGranularityMinutes  int                 `json:"slotGranularityMinutes"`
	DepositPercentage       int                 `json:"depositPercentage"`
	Tier                    string              `json:"tier"`
	MinBookingNoticeMinutes int                 `json:"minBookingNoticeMinutes"`
	AdvanceBookingDays      int                 `json:"advanceBookingDays"`
	CreatedAt               *time.Time          `json:"createdAt,omitempty"`
	UpdatedAt               *time.Time          `json:"updatedAt,omitempty"`
}

// Методы конвертации

// FromDomainSettings конвертирует domain модель в DTO
// Для настроек по умолчанию (не сохранённых в БД) timestamps отсутствуют
func FromDomainSettings(s *domain.ArtistSettings) *SettingsResponse {
	if s == nil {
		return nil
	}

	resp := &SettingsResponse{
		ArtistID:                s.ArtistID,
		Schedule:                s.Schedule,
		SlotGranularityMinutes:  s.SlotGranularityMinutes,
		DepositPercentage:       s.DepositPercentage,
		Tier:                    string(s.Tier),
		MinBookingNoticeMinutes: s.MinBookingNoticeMinutes,
		AdvanceBookingDays:      s.AdvanceBookingDays,
	}

	if !s.CreatedAt.IsZero() {
		createdAt := s.CreatedAt
		resp.CreatedAt = &createdAt
	}
	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}
