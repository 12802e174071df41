package ports

import (
	"context"
	"time"

	"github.com/jhoicas/notify-renewals/internal/domain/entity"
)

// NotificationService define el puerto de salida hacia el servicio de notificaciones de la plataforma.
// Las llamadas Open*Settings y RequestPermission pueden mostrar pantallas del sistema al usuario;
// el llamador no espera su resultado para continuar.
type NotificationService interface {
	IsBatteryOptimizationEnabled(ctx context.Context) (bool, error)
	OpenBatteryOptimizationSettings(ctx context.Context) error

	// PowerManagerRestricted informa si el fabricante aplica un gestor de energía propio.
	PowerManagerRestricted(ctx context.Context) (bool, error)
	OpenPowerManagerSettings(ctx context.Context) error

	AlarmPermission(ctx context.Context) (entity.AlarmPermission, error)
	OpenAlarmPermissionSettings(ctx context.Context) error

	// RequestPermission pide permiso general de notificaciones. Devuelve si quedó concedido.
	RequestPermission(ctx context.Context) (bool, error)

	CancelAllNotifications(ctx context.Context) error
	// CreateChannel es idempotente: si el canal existe devuelve su ID.
	CreateChannel(ctx context.Context, channel entity.NotificationChannel) (string, error)
	CreateTriggerNotification(
		ctx context.Context,
		notification entity.Notification,
		at time.Time,
		repeat entity.RepeatFrequency,
	) (string, error)
	TriggerNotifications(ctx context.Context) ([]entity.TriggerNotification, error)
}
