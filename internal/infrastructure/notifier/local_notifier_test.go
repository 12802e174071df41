package notifier

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/notify-renewals/internal/domain/entity"
	"github.com/jhoicas/notify-renewals/pkg/logger"
	"github.com/jhoicas/notify-renewals/pkg/timeutil"
)

var channel = entity.NotificationChannel{ID: "default", Name: "Default Channel"}

func newNotifier(t *testing.T, deliver DeliverFunc) *LocalNotifier {
	t.Helper()
	n := New(timeutil.Default(), time.UTC, deliver, logger.Nop())
	t.Cleanup(n.Stop)
	_, err := n.CreateChannel(context.Background(), channel)
	require.NoError(t, err)
	return n
}

func TestCreateChannel_Idempotente(t *testing.T) {
	n := newNotifier(t, nil)
	ctx := context.Background()

	id, err := n.CreateChannel(ctx, entity.NotificationChannel{ID: "default", Name: "Otro nombre"})
	require.NoError(t, err)
	assert.Equal(t, "default", id)
	assert.Equal(t, "Default Channel", n.channels["default"].Name)

	_, err = n.CreateChannel(ctx, entity.NotificationChannel{})
	assert.Error(t, err)
}

func TestCreateTrigger_CanalInexistente(t *testing.T) {
	n := newNotifier(t, nil)
	_, err := n.CreateTriggerNotification(context.Background(),
		entity.Notification{ChannelID: "nada"}, time.Now().Add(time.Hour), entity.RepeatDaily)
	assert.Error(t, err)
}

func TestCreateTrigger_UnaVezEnElPasado(t *testing.T) {
	n := newNotifier(t, nil)
	_, err := n.CreateTriggerNotification(context.Background(),
		entity.Notification{ChannelID: "default"}, time.Now().Add(-time.Minute), entity.RepeatNone)
	assert.Error(t, err)
}

func TestCreateTrigger_UnaEntradaDeCronPorDisparador(t *testing.T) {
	n := newNotifier(t, nil)
	ctx := context.Background()

	at := time.Now().UTC().Add(2 * time.Hour)
	_, err := n.CreateTriggerNotification(ctx, entity.Notification{ChannelID: "default"}, at, entity.RepeatDaily)
	require.NoError(t, err)
	_, err = n.CreateTriggerNotification(ctx, entity.Notification{ChannelID: "default"}, at.Add(time.Hour), entity.RepeatWeekly)
	require.NoError(t, err)
	assert.Len(t, n.cron.Entries(), 2)

	pending, err := n.TriggerNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.True(t, pending[0].Timestamp.Equal(at), "el primer disparo es el instante pedido")

	require.NoError(t, n.CancelAllNotifications(ctx))
	assert.Empty(t, n.cron.Entries())
	pending, err = n.TriggerNotifications(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestEntregaYReprogramaDiario(t *testing.T) {
	delivered := make(chan entity.TriggerNotification, 4)
	n := newNotifier(t, func(t entity.TriggerNotification) { delivered <- t })
	ctx := context.Background()

	at := time.Now().UTC().Add(30 * time.Millisecond)
	id, err := n.CreateTriggerNotification(ctx,
		entity.Notification{ChannelID: "default", Title: "Notify", Body: "Check Renewals!"}, at, entity.RepeatDaily)
	require.NoError(t, err)

	select {
	case got := <-delivered:
		assert.Equal(t, id, got.ID)
		assert.Equal(t, "Check Renewals!", got.Notification.Body)
	case <-time.After(2 * time.Second):
		t.Fatal("la notificación no se entregó")
	}

	// siguiente disparo: mañana a la misma hora y minuto, segundo cero
	want := time.Date(at.Year(), at.Month(), at.Day()+1, at.Hour(), at.Minute(), 0, 0, time.UTC)
	require.Eventually(t, func() bool {
		pending, err := n.TriggerNotifications(ctx)
		return err == nil && len(pending) == 1 && pending[0].Timestamp.Equal(want)
	}, time.Second, 10*time.Millisecond)
}

func TestUnaVezSeEliminaTrasEntregar(t *testing.T) {
	delivered := make(chan entity.TriggerNotification, 1)
	n := newNotifier(t, func(t entity.TriggerNotification) { delivered <- t })
	ctx := context.Background()

	_, err := n.CreateTriggerNotification(ctx,
		entity.Notification{ChannelID: "default"}, time.Now().Add(20*time.Millisecond), entity.RepeatNone)
	require.NoError(t, err)

	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("la notificación no se entregó")
	}
	pending, err := n.TriggerNotifications(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
	assert.Eventually(t, func() bool { return len(n.cron.Entries()) == 0 }, time.Second, 10*time.Millisecond)
}

func TestCancelarEvitaLaEntrega(t *testing.T) {
	delivered := make(chan entity.TriggerNotification, 1)
	n := newNotifier(t, func(t entity.TriggerNotification) { delivered <- t })
	ctx := context.Background()

	_, err := n.CreateTriggerNotification(ctx,
		entity.Notification{ChannelID: "default"}, time.Now().Add(50*time.Millisecond), entity.RepeatDaily)
	require.NoError(t, err)
	require.NoError(t, n.CancelAllNotifications(ctx))

	select {
	case <-delivered:
		t.Fatal("no debía entregarse")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestPermisosSiempreConcedidos(t *testing.T) {
	n := newNotifier(t, nil)
	ctx := context.Background()

	alarm, err := n.AlarmPermission(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.AlarmPermissionEnabled, alarm)

	granted, err := n.RequestPermission(ctx)
	require.NoError(t, err)
	assert.True(t, granted)

	battery, err := n.IsBatteryOptimizationEnabled(ctx)
	require.NoError(t, err)
	assert.False(t, battery)

	power, err := n.PowerManagerRestricted(ctx)
	require.NoError(t, err)
	assert.False(t, power)
}
