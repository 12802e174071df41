package entity

import "time"

// RepeatFrequency frecuencia de repetición de una notificación programada.
type RepeatFrequency string

const (
	RepeatNone   RepeatFrequency = "none"
	RepeatHourly RepeatFrequency = "hourly"
	RepeatDaily  RepeatFrequency = "daily"
	RepeatWeekly RepeatFrequency = "weekly"
)

// AlarmPermission estado del permiso de alarmas exactas de la plataforma.
type AlarmPermission string

const (
	AlarmPermissionEnabled  AlarmPermission = "enabled"
	AlarmPermissionDisabled AlarmPermission = "disabled"
)

// NotificationChannel canal de agrupación de notificaciones.
type NotificationChannel struct {
	ID   string
	Name string
}

// Notification contenido de una notificación.
type Notification struct {
	ChannelID string
	Title     string
	Body      string
}

// TriggerNotification notificación programada para Timestamp, repetida según Repeat.
type TriggerNotification struct {
	ID           string
	Notification Notification
	Timestamp    time.Time
	Repeat       RepeatFrequency
}
