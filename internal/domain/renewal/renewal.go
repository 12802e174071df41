// Package renewal calcula la fecha de renovación de una suscripción.
package renewal

import (
	"time"

	"github.com/jhoicas/notify-renewals/pkg/timeutil"
)

// AddMonths suma months meses de calendario a t. Si el día no existe en el mes destino
// se ajusta al último día de ese mes (31-ene + 1 = 29-feb en año bisiesto).
// La hora del día y la zona de t se conservan.
func AddMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(first.Year(), first.Month()); d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

// DeriveRenewalDate devuelve subscriptionDate + months meses, como fecha de calendario (medianoche UTC).
func DeriveRenewalDate(subscriptionDate time.Time, months int) time.Time {
	y, m, d := subscriptionDate.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return AddMonths(start, months)
}

// DeriveRenewalDateString igual que DeriveRenewalDate pero sobre texto ISO; devuelve YYYY-MM-DD.
func DeriveRenewalDateString(subscriptionDate string, months int) (string, error) {
	start, err := timeutil.ParseDate(subscriptionDate)
	if err != nil {
		return "", err
	}
	return timeutil.FormatDate(DeriveRenewalDate(start, months)), nil
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
