// Package notifier implementa el servicio de notificaciones en proceso: guarda los canales en
// memoria y programa cada disparador como una entrada de cron.
package notifier

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/jhoicas/notify-renewals/internal/application/ports"
	"github.com/jhoicas/notify-renewals/internal/domain/entity"
	"github.com/jhoicas/notify-renewals/pkg/logger"
	"github.com/jhoicas/notify-renewals/pkg/timeutil"
)

// DeliverFunc recibe cada notificación que se dispara.
type DeliverFunc func(n entity.TriggerNotification)

// LocalNotifier implementa ports.NotificationService sin plataforma externa.
// Los permisos siempre están concedidos y no hay restricciones de energía.
type LocalNotifier struct {
	mu       sync.Mutex
	cron     *cron.Cron
	channels map[string]entity.NotificationChannel
	triggers map[string]*scheduled
	clock    timeutil.Provider
	loc      *time.Location
	deliver  DeliverFunc
	log      *logger.Logger
}

type scheduled struct {
	trigger entity.TriggerNotification
	entryID cron.EntryID
}

var _ ports.NotificationService = (*LocalNotifier)(nil)

// New construye el notificador y arranca su cron en loc.
// Si deliver es nil las notificaciones solo se registran en el log. Llamar Stop al terminar.
func New(clock timeutil.Provider, loc *time.Location, deliver DeliverFunc, log *logger.Logger) *LocalNotifier {
	if loc == nil {
		loc = time.Local
	}
	n := &LocalNotifier{
		cron:     cron.New(cron.WithLocation(loc)),
		channels: make(map[string]entity.NotificationChannel),
		triggers: make(map[string]*scheduled),
		clock:    clock,
		loc:      loc,
		log:      log.Component("notifier"),
	}
	n.deliver = deliver
	if n.deliver == nil {
		n.deliver = n.logDelivery
	}
	n.cron.Start()
	return n
}

// Stop detiene el cron y espera a las entregas en curso.
func (n *LocalNotifier) Stop() {
	<-n.cron.Stop().Done()
}

func (n *LocalNotifier) IsBatteryOptimizationEnabled(context.Context) (bool, error) {
	return false, nil
}

func (n *LocalNotifier) OpenBatteryOptimizationSettings(context.Context) error {
	n.log.Info().Msg("sin ajustes de batería en este entorno")
	return nil
}

func (n *LocalNotifier) PowerManagerRestricted(context.Context) (bool, error) {
	return false, nil
}

func (n *LocalNotifier) OpenPowerManagerSettings(context.Context) error {
	n.log.Info().Msg("sin gestor de energía en este entorno")
	return nil
}

func (n *LocalNotifier) AlarmPermission(context.Context) (entity.AlarmPermission, error) {
	return entity.AlarmPermissionEnabled, nil
}

func (n *LocalNotifier) OpenAlarmPermissionSettings(context.Context) error {
	n.log.Info().Msg("sin ajustes de alarmas en este entorno")
	return nil
}

func (n *LocalNotifier) RequestPermission(context.Context) (bool, error) {
	return true, nil
}

// CancelAllNotifications quita del cron todos los disparadores.
func (n *LocalNotifier) CancelAllNotifications(context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	for id, s := range n.triggers {
		n.cron.Remove(s.entryID)
		delete(n.triggers, id)
	}
	return nil
}

// CreateChannel registra el canal; si ya existe devuelve su ID.
func (n *LocalNotifier) CreateChannel(_ context.Context, channel entity.NotificationChannel) (string, error) {
	if channel.ID == "" {
		return "", fmt.Errorf("canal sin ID")
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.channels[channel.ID]; !ok {
		n.channels[channel.ID] = channel
	}
	return channel.ID, nil
}

// CreateTriggerNotification programa la notificación en at y la repite según repeat.
func (n *LocalNotifier) CreateTriggerNotification(
	_ context.Context,
	notification entity.Notification,
	at time.Time,
	repeat entity.RepeatFrequency,
) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.channels[notification.ChannelID]; !ok {
		return "", fmt.Errorf("canal %q no existe", notification.ChannelID)
	}
	if repeat == entity.RepeatNone && !at.After(n.clock.Now()) {
		return "", fmt.Errorf("la fecha %s ya pasó", at.Format(time.RFC3339))
	}
	schedule, err := newSchedule(at.In(n.loc), repeat)
	if err != nil {
		return "", err
	}

	s := &scheduled{trigger: entity.TriggerNotification{
		ID:           uuid.New().String(),
		Notification: notification,
		Timestamp:    at,
		Repeat:       repeat,
	}}
	id := s.trigger.ID
	s.entryID = n.cron.Schedule(schedule, cron.FuncJob(func() { n.fire(id) }))
	n.triggers[id] = s

	n.log.Debug().
		Str("trigger_id", id).
		Time("at", at).
		Str("repeat", string(repeat)).
		Msg("notificación programada")
	return id, nil
}

// TriggerNotifications lista los disparadores pendientes con su próximo disparo, en orden.
func (n *LocalNotifier) TriggerNotifications(context.Context) ([]entity.TriggerNotification, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]entity.TriggerNotification, 0, len(n.triggers))
	for _, s := range n.triggers {
		t := s.trigger
		if next := n.cron.Entry(s.entryID).Next; !next.IsZero() {
			t.Timestamp = next
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (n *LocalNotifier) fire(id string) {
	n.mu.Lock()
	s, ok := n.triggers[id]
	if !ok {
		n.mu.Unlock()
		return
	}
	fired := s.trigger
	if fired.Repeat == entity.RepeatNone {
		n.cron.Remove(s.entryID)
		delete(n.triggers, id)
	}
	n.mu.Unlock()

	n.deliver(fired)
}

func (n *LocalNotifier) logDelivery(t entity.TriggerNotification) {
	n.log.Info().
		Str("channel_id", t.Notification.ChannelID).
		Str("title", t.Notification.Title).
		Str("body", t.Notification.Body).
		Msg("notificación")
}
