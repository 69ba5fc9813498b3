package update_artist_settings

import (
	"github.com/m04kA/INK-BookingService/internal/domain"
	"github.com/m04kA/INK-BookingService/internal/service/config/models"
)

// UpdateSettingsRequest HTTP request model
// Полная замена настроек мастера
type UpdateSettingsRequest struct {
	Schedule                domain.WeekSchedule `json:"schedule"`
	SlotGranularityMinutes  int                 `json:"slotGranularityMinutes"`
	DepositPercentage       int                 `json:"depositPercentage"`
	Tier                    string              `json:"tier"`
	MinBookingNoticeMinutes int                 `json:"minBookingNoticeMinutes"`
	AdvanceBookingDays      int                 `json:"advanceBookingDays"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateSettingsRequest) ToServiceRequest(artistID, userID int64) *models.UpdateSettingsRequest {
	return &models.UpdateSettingsRequest{
		UserID:                  userID,
		ArtistID:                artistID,
		Schedule:                r.Schedule,
		SlotGranularityMinutes:  r.SlotGranularityMinutes,
		DepositPercentage:       r.DepositPercentage,
		Tier:                    r.Tier,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
		AdvanceBookingDays:      r.AdvanceBookingDays,
	}
}
