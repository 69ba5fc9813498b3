package config_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/INK-BookingService/internal/domain"
	settingsRepo "github.com/m04kA/INK-BookingService/internal/infra/storage/config"
	"github.com/m04kA/INK-BookingService/internal/service/config"
	"github.com/m04kA/INK-BookingService/internal/service/config/models"
	"github.com/m04kA/INK-BookingService/pkg/types"
)

type fakeSettingsRepo struct {
	settings map[int64]*domain.ArtistSettings
	upserts  int
}

func newFakeSettingsRepo(settings ...*domain.ArtistSettings) *fakeSettingsRepo {
	repo := &fakeSettingsRepo{settings: make(map[int64]*domain.ArtistSettings)}
	for _, s := range settings {
		repo.settings[s.ArtistID] = s
	}
	return repo
}

func (r *fakeSettingsRepo) GetByArtistID(ctx context.Context, artistID int64) (*domain.ArtistSettings, error) {
	s, ok := r.settings[artistID]
	if !ok {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	return s, nil
}

func (r *fakeSettingsRepo) Upsert(ctx context.Context, settings *domain.ArtistSettings) (*domain.ArtistSettings, error) {
	r.settings[settings.ArtistID] = settings
	r.upserts++
	return settings, nil
}

type fakeCache struct {
	invalidated []int64
}

func (c *fakeCache) Invalidate(ctx context.Context, artistID int64) {
	c.invalidated = append(c.invalidated, artistID)
}

type nopLogger struct{}

func (l *nopLogger) Info(format string, v ...interface{})  {}
func (l *nopLogger) Warn(format string, v ...interface{})  {}
func (l *nopLogger) Error(format string, v ...interface{}) {}

func weekdaysOnly(open, close string) domain.WeekSchedule {
	day := domain.DaySchedule{
		IsOpen:    true,
		OpenTime:  types.TimeString(open),
		CloseTime: types.TimeString(close),
	}
	return domain.WeekSchedule{
		Monday: day, Tuesday: day, Wednesday: day, Thursday: day, Friday: day,
		Saturday: domain.DaySchedule{IsOpen: false},
		Sunday:   domain.DaySchedule{IsOpen: false},
	}
}

func validRequest(artistID int64) *models.UpdateSettingsRequest {
	return &models.UpdateSettingsRequest{
		UserID:                  artistID,
		ArtistID:                artistID,
		Schedule:                weekdaysOnly("10:00", "19:00"),
		SlotGranularityMinutes:  60,
		DepositPercentage:       25,
		Tier:                    "PRO",
		MinBookingNoticeMinutes: 120,
		AdvanceBookingDays:      60,
	}
}

func TestGet_DefaultsWhenNotStored(t *testing.T) {
	svc := config.NewService(newFakeSettingsRepo(), &fakeCache{}, &nopLogger{})

	resp, err := svc.Get(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, int64(10), resp.ArtistID)
	assert.Equal(t, domain.DefaultDepositPercentage, resp.DepositPercentage)
	assert.Equal(t, string(domain.TierFree), resp.Tier)
	// Дефолтные настройки не сохранены — без timestamps
	assert.Nil(t, resp.CreatedAt)
	assert.Nil(t, resp.UpdatedAt)
}

func TestGet_StoredSettings(t *testing.T) {
	stored := validRequest(10).ToDomainSettings(domain.TierPro)
	svc := config.NewService(newFakeSettingsRepo(stored), &fakeCache{}, &nopLogger{})

	resp, err := svc.Get(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 25, resp.DepositPercentage)
	assert.Equal(t, "PRO", resp.Tier)
}

func TestUpdate_Success(t *testing.T) {
	repo := newFakeSettingsRepo()
	cache := &fakeCache{}
	svc := config.NewService(repo, cache, &nopLogger{})

	resp, err := svc.Update(context.Background(), validRequest(10))
	require.NoError(t, err)

	assert.Equal(t, 60, resp.SlotGranularityMinutes)
	assert.Equal(t, 1, repo.upserts)
	assert.Equal(t, []int64{10}, cache.invalidated)
}

func TestUpdate_OnlyOwnerMayUpdate(t *testing.T) {
	repo := newFakeSettingsRepo()
	svc := config.NewService(repo, &fakeCache{}, &nopLogger{})

	req := validRequest(10)
	req.UserID = 99

	_, err := svc.Update(context.Background(), req)
	assert.ErrorIs(t, err, config.ErrAccessDenied)
	assert.Zero(t, repo.upserts)
}

func TestUpdate_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *models.UpdateSettingsRequest)
		wantErr error
	}{
		{
			name:    "granularity below minimum",
			mutate:  func(r *models.UpdateSettingsRequest) { r.SlotGranularityMinutes = 10 },
			wantErr: config.ErrInvalidGranularity,
		},
		{
			name:    "granularity above maximum",
			mutate:  func(r *models.UpdateSettingsRequest) { r.SlotGranularityMinutes = 600 },
			wantErr: config.ErrInvalidGranularity,
		},
		{
			name: "granularity does not divide working window",
			mutate: func(r *models.UpdateSettingsRequest) {
				// Окно 9 часов (540 минут) не делится на 50
				r.SlotGranularityMinutes = 50
			},
			wantErr: config.ErrInvalidGranularity,
		},
		{
			name:    "deposit percentage above 100",
			mutate:  func(r *models.UpdateSettingsRequest) { r.DepositPercentage = 101 },
			wantErr: config.ErrInvalidDeposit,
		},
		{
			name:    "negative deposit percentage",
			mutate:  func(r *models.UpdateSettingsRequest) { r.DepositPercentage = -1 },
			wantErr: config.ErrInvalidDeposit,
		},
		{
			name:    "unknown tier",
			mutate:  func(r *models.UpdateSettingsRequest) { r.Tier = "PLATINUM" },
			wantErr: config.ErrInvalidTier,
		},
		{
			name: "open after close",
			mutate: func(r *models.UpdateSettingsRequest) {
				r.Schedule = weekdaysOnly("19:00", "10:00")
			},
			wantErr: config.ErrInvalidSchedule,
		},
		{
			name: "open equals close",
			mutate: func(r *models.UpdateSettingsRequest) {
				r.Schedule = weekdaysOnly("10:00", "10:00")
			},
			wantErr: config.ErrInvalidSchedule,
		},
		{
			name: "malformed open time",
			mutate: func(r *models.UpdateSettingsRequest) {
				r.Schedule = weekdaysOnly("ten", "19:00")
			},
			wantErr: config.ErrInvalidSchedule,
		},
		{
			name:    "notice above maximum",
			mutate:  func(r *models.UpdateSettingsRequest) { r.MinBookingNoticeMinutes = 20000 },
			wantErr: config.ErrInvalidInput,
		},
		{
			name:    "advance days above maximum",
			mutate:  func(r *models.UpdateSettingsRequest) { r.AdvanceBookingDays = 400 },
			wantErr: config.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeSettingsRepo()
			svc := config.NewService(repo, &fakeCache{}, &nopLogger{})

			req := validRequest(10)
			tt.mutate(req)

			_, err := svc.Update(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, repo.upserts)
		})
	}
}

func TestUpdate_ClosedDaysNotValidated(t *testing.T) {
	repo := newFakeSettingsRepo()
	svc := config.NewService(repo, &fakeCache{}, &nopLogger{})

	// Закрытый день с пустыми временами не должен ломать валидацию
	req := validRequest(10)
	req.Schedule.Saturday = domain.DaySchedule{IsOpen: false, OpenTime: "", CloseTime: ""}

	_, err := svc.Update(context.Background(), req)
	assert.NoError(t, err)
}
