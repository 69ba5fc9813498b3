package types_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/INK-BookingService/pkg/types"
)

func TestTimeString_Validate(t *testing.T) {
	valid := []string{"00:00", "09:30", "15:04", "23:59"}
	for _, s := range valid {
		assert.NoError(t, types.TimeString(s).Validate(), s)
	}

	invalid := []string{"", "24:00", "10:60", "ten", "10:00:00"}
	for _, s := range invalid {
		assert.Error(t, types.TimeString(s).Validate(), s)
	}
}

func TestTimeString_Minutes(t *testing.T) {
	m, err := types.TimeString("10:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 630, m)

	m, err = types.TimeString("00:00").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 0, m)

	_, err = types.TimeString("25:00").Minutes()
	assert.Error(t, err)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts, err := types.TimeString("10:30").AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("11:15"), ts)

	ts, err = types.TimeString("10:30").AddMinutes(-30)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:00"), ts)

	// Через границу суток не переходим
	_, err = types.TimeString("23:30").AddMinutes(60)
	assert.Error(t, err)

	_, err = types.TimeString("00:30").AddMinutes(-60)
	assert.Error(t, err)
}

func TestTimeString_At(t *testing.T) {
	date := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	got, err := types.TimeString("14:30").At(date, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 3, 14, 30, 0, 0, time.UTC), got)
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, types.TimeString("09:00").IsBefore("10:00"))
	assert.True(t, types.TimeString("10:00").IsAfter("09:59"))
	assert.False(t, types.TimeString("10:00").IsBefore("10:00"))
}

func TestTimeString_Scan(t *testing.T) {
	var ts types.TimeString

	require.NoError(t, ts.Scan("10:30:00"))
	assert.Equal(t, types.TimeString("10:30"), ts)

	require.NoError(t, ts.Scan([]byte("09:15:00")))
	assert.Equal(t, types.TimeString("09:15"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}
