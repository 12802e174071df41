package notifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/notify-renewals/internal/domain/entity"
)

func TestRepeatSpec(t *testing.T) {
	at := time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC) // viernes
	tests := []struct {
		repeat entity.RepeatFrequency
		want   string
	}{
		{entity.RepeatNone, ""},
		{entity.RepeatHourly, "30 * * * *"},
		{entity.RepeatDaily, "30 9 * * *"},
		{entity.RepeatWeekly, "30 9 * * 5"},
	}
	for _, tt := range tests {
		got, err := repeatSpec(at, tt.repeat)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.repeat)
	}

	_, err := repeatSpec(at, "monthly")
	assert.Error(t, err)
}

func TestNewSchedule_PrimeroAtLuegoDiario(t *testing.T) {
	at := time.Date(2024, 5, 12, 9, 0, 0, 0, time.UTC)
	s, err := newSchedule(at, entity.RepeatDaily)
	require.NoError(t, err)

	// antes de at: at aunque haya días intermedios con la misma hora
	assert.Equal(t, at, s.Next(time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)))
	// en at o después: la siguiente ocurrencia diaria
	assert.Equal(t, time.Date(2024, 5, 13, 9, 0, 0, 0, time.UTC), s.Next(at))
	assert.Equal(t, time.Date(2024, 5, 16, 9, 0, 0, 0, time.UTC), s.Next(time.Date(2024, 5, 15, 9, 0, 1, 0, time.UTC)))
}

func TestNewSchedule_UnaVez(t *testing.T) {
	at := time.Date(2024, 5, 12, 9, 0, 0, 0, time.UTC)
	s, err := newSchedule(at, entity.RepeatNone)
	require.NoError(t, err)

	assert.Equal(t, at, s.Next(at.Add(-time.Minute)))
	assert.True(t, s.Next(at).IsZero())
}

func TestNewSchedule_ConservaHoraDePared(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)
	at := time.Date(2024, 5, 12, 7, 15, 0, 0, bogota)
	s, err := newSchedule(at, entity.RepeatDaily)
	require.NoError(t, err)

	next := s.Next(at.In(bogota))
	assert.Equal(t, 7, next.Hour())
	assert.Equal(t, 15, next.Minute())
	assert.Equal(t, 13, next.Day())
}
