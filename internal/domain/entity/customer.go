package entity

// Customer cliente con una suscripción de N meses.
// Company es una copia del nombre de la empresa (referencia débil, sin FK).
// SubscriptionDate y RenewalDate son fechas de calendario YYYY-MM-DD.
type Customer struct {
	ID               string
	Company          string
	Villa            *string
	Telephone        *string
	Subscription     int
	SubscriptionDate string
	RenewalDate      string
	Enabled          bool
}
