package notifier

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/notify-renewals/internal/domain/entity"
)

// firstThen dispara en first y después según then.
type firstThen struct {
	first time.Time
	then  cron.Schedule
}

func (s firstThen) Next(t time.Time) time.Time {
	if t.Before(s.first) {
		return s.first
	}
	if s.then == nil {
		// cron no vuelve a ejecutar una entrada con Next cero
		return time.Time{}
	}
	return s.then.Next(t)
}

// newSchedule arma el cron.Schedule de un disparador: primero at, luego la repetición
// expresada en la hora de pared de at.
func newSchedule(at time.Time, repeat entity.RepeatFrequency) (cron.Schedule, error) {
	spec, err := repeatSpec(at, repeat)
	if err != nil {
		return nil, err
	}
	if spec == "" {
		return firstThen{first: at}, nil
	}
	then, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("spec de cron %q: %w", spec, err)
	}
	return firstThen{first: at, then: then}, nil
}

// repeatSpec traduce la frecuencia a una expresión cron estándar (minuto hora día mes díaSemana).
func repeatSpec(at time.Time, repeat entity.RepeatFrequency) (string, error) {
	switch repeat {
	case entity.RepeatNone:
		return "", nil
	case entity.RepeatHourly:
		return fmt.Sprintf("%d * * * *", at.Minute()), nil
	case entity.RepeatDaily:
		return fmt.Sprintf("%d %d * * *", at.Minute(), at.Hour()), nil
	case entity.RepeatWeekly:
		return fmt.Sprintf("%d %d * * %d", at.Minute(), at.Hour(), int(at.Weekday())), nil
	default:
		return "", fmt.Errorf("frecuencia no soportada: %q", repeat)
	}
}
