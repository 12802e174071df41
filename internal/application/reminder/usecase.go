// Package reminder arma el recordatorio diario de renovaciones sobre el servicio de
// notificaciones de la plataforma. Solo existe un recordatorio activo: cada activación
// cancela lo programado y vuelve a registrar el disparador.
package reminder

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/notify-renewals/internal/application/dto"
	"github.com/jhoicas/notify-renewals/internal/application/ports"
	"github.com/jhoicas/notify-renewals/internal/domain"
	"github.com/jhoicas/notify-renewals/internal/domain/entity"
	"github.com/jhoicas/notify-renewals/pkg/logger"
	"github.com/jhoicas/notify-renewals/pkg/timeutil"
)

// Límites aceptados. 24 y 60 se aceptan a propósito: la normalización de fechas los
// convierte en 00 del día siguiente y en la hora siguiente.
const (
	MaxHour   = 24
	MaxMinute = 60
)

// Config contenido fijo de la notificación y zona horaria del reloj de pared.
type Config struct {
	ChannelID   string
	ChannelName string
	Title       string
	Body        string
	Location    *time.Location
}

// UseCase casos de uso del recordatorio diario.
type UseCase struct {
	svc   ports.NotificationService
	clock timeutil.Provider
	cfg   Config
	log   *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(svc ports.NotificationService, clock timeutil.Provider, cfg Config, log *logger.Logger) *UseCase {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &UseCase{svc: svc, clock: clock, cfg: cfg, log: log.Component("reminder")}
}

// Activate valida hour/minute, pide permisos sin esperar su resultado, calcula el primer
// disparo y reemplaza cualquier recordatorio anterior por uno diario.
// Devuelve domain.ErrInvalidTime antes de tocar la plataforma si la hora no es válida.
func (uc *UseCase) Activate(ctx context.Context, in dto.ActivateReminderRequest) (*dto.ReminderResponse, error) {
	hour, minute, err := ParseTime(in.Hour, in.Minute)
	if err != nil {
		return nil, err
	}

	alarm, err := uc.svc.AlarmPermission(ctx)
	if err != nil {
		return nil, platformErr("consultar permiso de alarmas", err)
	}
	if alarm != entity.AlarmPermissionEnabled {
		if err := uc.svc.OpenAlarmPermissionSettings(ctx); err != nil {
			return nil, platformErr("abrir ajustes de alarmas", err)
		}
	}
	granted, err := uc.svc.RequestPermission(ctx)
	if err != nil {
		return nil, platformErr("pedir permiso de notificaciones", err)
	}

	fireAt := NextFireTime(uc.clock.Now().In(uc.cfg.Location), hour, minute)

	if err := uc.svc.CancelAllNotifications(ctx); err != nil {
		return nil, platformErr("cancelar notificaciones", err)
	}
	channelID, err := uc.svc.CreateChannel(ctx, entity.NotificationChannel{ID: uc.cfg.ChannelID, Name: uc.cfg.ChannelName})
	if err != nil {
		return nil, platformErr("crear canal", err)
	}
	notification := entity.Notification{ChannelID: channelID, Title: uc.cfg.Title, Body: uc.cfg.Body}
	id, err := uc.svc.CreateTriggerNotification(ctx, notification, fireAt, entity.RepeatDaily)
	if err != nil {
		return nil, platformErr("programar notificación", err)
	}

	uc.log.Info().
		Time("first_fire_at", fireAt).
		Str("alarm_permission", string(alarm)).
		Bool("permission_granted", granted).
		Msg("recordatorio diario activado")

	return &dto.ReminderResponse{
		ID:          id,
		ChannelID:   channelID,
		Title:       notification.Title,
		Body:        notification.Body,
		FirstFireAt: fireAt,
		Repeat:      string(entity.RepeatDaily),
	}, nil
}

// Status devuelve el recordatorio diario programado, si existe.
func (uc *UseCase) Status(ctx context.Context) (*dto.ReminderStatusResponse, error) {
	triggers, err := uc.svc.TriggerNotifications(ctx)
	if err != nil {
		return nil, platformErr("listar notificaciones", err)
	}
	for _, t := range triggers {
		if t.Repeat != entity.RepeatDaily {
			continue
		}
		return &dto.ReminderStatusResponse{
			Active: true,
			Reminder: &dto.ReminderResponse{
				ID:          t.ID,
				ChannelID:   t.Notification.ChannelID,
				Title:       t.Notification.Title,
				Body:        t.Notification.Body,
				FirstFireAt: t.Timestamp.In(uc.cfg.Location),
				Repeat:      string(t.Repeat),
			},
		}, nil
	}
	return &dto.ReminderStatusResponse{Active: false}, nil
}

// Diagnostics consulta las restricciones de batería y de gestor de energía.
func (uc *UseCase) Diagnostics(ctx context.Context) (*dto.ReminderDiagnosticsResponse, error) {
	battery, err := uc.svc.IsBatteryOptimizationEnabled(ctx)
	if err != nil {
		return nil, platformErr("consultar optimización de batería", err)
	}
	power, err := uc.svc.PowerManagerRestricted(ctx)
	if err != nil {
		return nil, platformErr("consultar gestor de energía", err)
	}
	return &dto.ReminderDiagnosticsResponse{
		BatteryOptimizationEnabled: battery,
		PowerManagerRestricted:     power,
	}, nil
}

// OpenBatteryOptimizationSettings abre los ajustes de batería del sistema.
func (uc *UseCase) OpenBatteryOptimizationSettings(ctx context.Context) error {
	if err := uc.svc.OpenBatteryOptimizationSettings(ctx); err != nil {
		return platformErr("abrir ajustes de batería", err)
	}
	return nil
}

// OpenPowerManagerSettings abre los ajustes del gestor de energía.
func (uc *UseCase) OpenPowerManagerSettings(ctx context.Context) error {
	if err := uc.svc.OpenPowerManagerSettings(ctx); err != nil {
		return platformErr("abrir ajustes de energía", err)
	}
	return nil
}

// ParseTime interpreta hora y minuto como enteros no negativos en base 10
// con hour <= 24 y minute <= 60.
func ParseTime(hour, minute string) (int, int, error) {
	h, err := parseBounded(hour, MaxHour)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: hora %q", domain.ErrInvalidTime, hour)
	}
	m, err := parseBounded(minute, MaxMinute)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: minuto %q", domain.ErrInvalidTime, minute)
	}
	return h, m, nil
}

// NextFireTime fija hour:minute:00 sobre el día de now; si ese instante no es posterior
// a now, pasa al día siguiente de calendario.
func NextFireTime(now time.Time, hour, minute int) time.Time {
	fireAt := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !fireAt.After(now) {
		fireAt = fireAt.AddDate(0, 0, 1)
	}
	return fireAt
}

func parseBounded(s string, limit uint64) (int, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, err
	}
	if n > limit {
		return 0, fmt.Errorf("fuera de rango: %d > %d", n, limit)
	}
	return int(n), nil
}

func platformErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrPlatform, op, err)
}
