package dto

import "time"

// ActivateReminderRequest hora y minuto tal como los escribe el usuario.
type ActivateReminderRequest struct {
	Hour   string `json:"hour"`
	Minute string `json:"minute"`
}

// ReminderResponse recordatorio diario armado.
type ReminderResponse struct {
	ID          string    `json:"id"`
	ChannelID   string    `json:"channel_id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	FirstFireAt time.Time `json:"first_fire_at"`
	Repeat      string    `json:"repeat"`
}

// ReminderStatusResponse estado del recordatorio.
type ReminderStatusResponse struct {
	Active   bool              `json:"active"`
	Reminder *ReminderResponse `json:"reminder,omitempty"`
}

// ReminderDiagnosticsResponse restricciones de la plataforma que pueden impedir la entrega.
type ReminderDiagnosticsResponse struct {
	BatteryOptimizationEnabled bool `json:"battery_optimization_enabled"`
	PowerManagerRestricted     bool `json:"power_manager_restricted"`
}
