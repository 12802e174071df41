package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"solo fecha", "2024-01-31", "2024-01-31"},
		{"con espacios", " 2024-03-15 ", "2024-03-15"},
		{"rfc3339 conserva la fecha escrita", "2024-03-15T23:30:00-05:00", "2024-03-15"},
		{"rfc3339 utc", "2024-12-01T00:00:00Z", "2024-12-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, FormatDate(got))
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestParseDate_Invalida(t *testing.T) {
	for _, in := range []string{"", "2024-02-30", "31/01/2024", "mañana"} {
		_, err := ParseDate(in)
		assert.Error(t, err, in)
	}
}

func TestToday_UsaLaZona(t *testing.T) {
	now := time.Date(2024, 6, 1, 2, 0, 0, 0, time.UTC)
	bogota := time.FixedZone("COT", -5*3600)

	assert.Equal(t, "2024-06-01", Today(now, time.UTC))
	assert.Equal(t, "2024-05-31", Today(now, bogota))
}

func TestMock(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	m := NewMock(fixed)
	assert.Equal(t, fixed, m.Now())

	m.Advance(time.Hour)
	assert.Equal(t, fixed.Add(time.Hour), m.Now())
}

func TestUntilNextMidnight(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)

	assert.Equal(t, 100*time.Millisecond,
		UntilNextMidnight(time.Date(2024, 6, 15, 23, 59, 59, 900_000_000, time.UTC), time.UTC))
	assert.Equal(t, 24*time.Hour,
		UntilNextMidnight(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), time.UTC))
	// 02:00 UTC son las 21:00 del día anterior en Bogotá
	assert.Equal(t, 3*time.Hour,
		UntilNextMidnight(time.Date(2024, 6, 16, 2, 0, 0, 0, time.UTC), bogota))
}

func TestLoadLocation(t *testing.T) {
	loc, err := LoadLocation("")
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	loc, err = LoadLocation("UTC")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	_, err = LoadLocation("No/Existe")
	assert.Error(t, err)
}
