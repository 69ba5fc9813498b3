package reschedule_booking_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/INK-BookingService/internal/domain"
	configRepo "github.com/m04kA/INK-BookingService/internal/infra/storage/config"
	"github.com/m04kA/INK-BookingService/internal/integrations/payproc"
	createBooking "github.com/m04kA/INK-BookingService/internal/usecase/create_booking"
	rescheduleBooking "github.com/m04kA/INK-BookingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/INK-BookingService/pkg/types"
)

type fakeConfigRepo struct {
	settings *domain.ArtistSettings
}

func (r *fakeConfigRepo) GetByArtistID(ctx context.Context, artistID int64) (*domain.ArtistSettings, error) {
	if r.settings == nil {
		return nil, configRepo.ErrSettingsNotFound
	}
	return r.settings, nil
}

type fakePayClient struct{}

func (c *fakePayClient) CreateCheckoutWithGracefulDegradation(ctx context.Context, req *payproc.CheckoutRequest) (*payproc.Checkout, error) {
	return nil, payproc.ErrServiceDegraded
}

// Случайный поток создания и переносов через общий guard: какие бы
// интервалы ни запрашивались, активные бронирования мастера остаются
// попарно непересекающимися
func TestGuardKeepsActiveBookingsDisjoint(t *testing.T) {
	const artistID = int64(10)

	day := domain.DaySchedule{
		IsOpen:    true,
		OpenTime:  types.TimeString("00:00"),
		CloseTime: types.TimeString("23:00"),
	}
	settings := &domain.ArtistSettings{
		ArtistID: artistID,
		Schedule: domain.WeekSchedule{
			Monday: day, Tuesday: day, Wednesday: day, Thursday: day,
			Friday: day, Saturday: day, Sunday: day,
		},
		SlotGranularityMinutes:  60,
		DepositPercentage:       0, // без депозита checkout не создаётся
		Tier:                    domain.TierFree,
		MinBookingNoticeMinutes: 0,
		AdvanceBookingDays:      0,
	}

	repo := newFakeBookingRepo()
	txManager := &fakeTxManager{}
	cache := &fakeCache{}
	log := &nopLogger{}

	createUC := createBooking.NewUseCase(
		repo,
		&fakeConfigRepo{settings: settings},
		&fakePayClient{},
		cache,
		txManager,
		log,
		"eur",
		"https://ink.example.com/success",
		"https://ink.example.com/cancel",
	)
	rescheduleUC := rescheduleBooking.New(repo, cache, txManager, &rescheduleBooking.RealTimeProvider{}, log)

	now := time.Now().UTC()
	base := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 2)

	// Случайный интервал: 7 дней x часы 0..20, длительность 1-2 часа
	rng := rand.New(rand.NewSource(7))
	randomInterval := func() (time.Time, time.Time) {
		start := base.AddDate(0, 0, rng.Intn(7)).Add(time.Duration(rng.Intn(21)) * time.Hour)
		return start, start.Add(time.Duration(1+rng.Intn(2)) * time.Hour)
	}

	var createdIDs []int64
	successes, conflicts := 0, 0
	ctx := context.Background()

	for i := 0; i < 300; i++ {
		startAt, endAt := randomInterval()

		if len(createdIDs) > 0 && rng.Intn(2) == 0 {
			_, err := rescheduleUC.Execute(ctx, &rescheduleBooking.Request{
				BookingID: createdIDs[rng.Intn(len(createdIDs))],
				UserID:    20,
				StartAt:   startAt,
				EndAt:     endAt,
			})
			switch {
			case err == nil:
				successes++
			case errors.Is(err, rescheduleBooking.ErrSlotConflict):
				conflicts++
			default:
				t.Fatalf("unexpected reschedule error: %v", err)
			}
			continue
		}

		resp, err := createUC.Execute(ctx, &createBooking.Request{
			ArtistID:        artistID,
			ClientID:        20,
			Source:          domain.NewFlashSource(1),
			ClientName:      "Mara",
			ClientEmail:     "mara@example.com",
			StartAt:         startAt,
			DurationMinutes: int(endAt.Sub(startAt).Minutes()),
			TotalPrice:      10000,
		})
		switch {
		case err == nil:
			successes++
			createdIDs = append(createdIDs, resp.ID)
		case errors.Is(err, createBooking.ErrSlotConflict):
			conflicts++
		default:
			t.Fatalf("unexpected create error: %v", err)
		}
	}

	// Поток должен был пройти обе ветки guard'а
	require.NotZero(t, successes)
	require.NotZero(t, conflicts)

	var active []*domain.Booking
	for _, b := range repo.bookings {
		if b.IsBlocking() {
			active = append(active, b)
		}
	}
	require.NotEmpty(t, active)

	for i := 0; i < len(active); i++ {
		for j := i + 1; j < len(active); j++ {
			assert.False(t,
				domain.Overlaps(active[i].StartAt, active[i].EndAt, active[j].StartAt, active[j].EndAt),
				"bookings %d and %d overlap: [%s, %s) vs [%s, %s)",
				active[i].ID, active[j].ID,
				active[i].StartAt, active[i].EndAt, active[j].StartAt, active[j].EndAt)
		}
	}
}
