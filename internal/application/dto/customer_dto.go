package dto

// CustomerRequest entrada para crear o reemplazar un cliente.
// SubscriptionDate acepta YYYY-MM-DD o RFC 3339. Enabled nil = true al crear, sin cambio al actualizar.
type CustomerRequest struct {
	Company          string  `json:"company" validate:"required,min=5"`
	Villa            *string `json:"villa"`
	Telephone        *string `json:"telephone"`
	Subscription     int     `json:"subscription" validate:"min=1,max=1200"`
	SubscriptionDate string  `json:"subscription_date" validate:"required,isodate"`
	Enabled          *bool   `json:"enabled"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID               string  `json:"id"`
	Company          string  `json:"company"`
	Villa            *string `json:"villa"`
	Telephone        *string `json:"telephone"`
	Subscription     int     `json:"subscription"`
	SubscriptionDate string  `json:"subscription_date"`
	RenewalDate      string  `json:"renewal_date"`
	Enabled          bool    `json:"enabled"`
}

// CustomerListResponse lista de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
}

// CustomerDraft valores iniciales del formulario de alta, con la renovación ya calculada.
type CustomerDraft struct {
	Company          string `json:"company"`
	Subscription     int    `json:"subscription"`
	SubscriptionDate string `json:"subscription_date"`
	RenewalDate      string `json:"renewal_date"`
	Enabled          bool   `json:"enabled"`
}

// CreateCustomerResult resultado del alta encadenada: el cliente creado y el siguiente borrador.
type CreateCustomerResult struct {
	Customer CustomerResponse `json:"customer"`
	Next     *CustomerDraft   `json:"next,omitempty"`
}

// RenewalPreviewRequest entrada para previsualizar la renovación.
type RenewalPreviewRequest struct {
	Subscription     int    `json:"subscription" validate:"min=1,max=1200"`
	SubscriptionDate string `json:"subscription_date" validate:"required,isodate"`
}

// RenewalPreviewResponse fecha de renovación calculada.
type RenewalPreviewResponse struct {
	RenewalDate string `json:"renewal_date"`
}

// RenewalListResponse clientes que renuevan en un día o rango.
type RenewalListResponse struct {
	From  string             `json:"from"`
	To    string             `json:"to"`
	Items []CustomerResponse `json:"items"`
}
