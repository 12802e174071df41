// Package timeutil reúne el reloj inyectable y las utilidades de fechas de calendario
// (sin hora ni zona) que se persisten como texto YYYY-MM-DD.
package timeutil

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// DateLayout formato ISO 8601 de solo fecha.
const DateLayout = "2006-01-02"

// Provider abstrae el reloj para poder fijarlo en tests.
type Provider interface {
	Now() time.Time
}

// RealProvider usa la hora del sistema.
type RealProvider struct{}

// Now devuelve la hora actual.
func (RealProvider) Now() time.Time { return time.Now() }

// Mock reloj fijo para tests; se puede mover mientras otras goroutines lo leen.
type Mock struct {
	mu  sync.Mutex
	now time.Time
}

// Now devuelve la hora fijada.
func (m *Mock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// SetNow fija la hora actual.
func (m *Mock) SetNow(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

// Advance avanza el reloj d.
func (m *Mock) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

// Default devuelve el reloj real.
func Default() Provider { return RealProvider{} }

// NewMock crea un reloj fijo en t.
func NewMock(t time.Time) *Mock { return &Mock{now: t} }

// ParseDate interpreta una fecha ISO. Acepta YYYY-MM-DD o RFC 3339; en el segundo caso
// se conserva la parte de fecha tal como viene escrita (sin convertir de zona).
// El resultado es la medianoche UTC de ese día.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida %q: se espera YYYY-MM-DD", s)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// FormatDate serializa la fecha de calendario de t como YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today devuelve la fecha de calendario de now en loc, como YYYY-MM-DD.
func Today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return FormatDate(now.In(loc))
}

// UntilNextMidnight tiempo que falta desde now hasta el próximo cambio de día en loc.
func UntilNextMidnight(now time.Time, loc *time.Location) time.Duration {
	if loc == nil {
		loc = time.Local
	}
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc)
	return next.Sub(now)
}

// LoadLocation resuelve un nombre IANA; "" y "Local" devuelven time.Local.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}
