package livequery_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/notify-renewals/internal/application/livequery"
)

func TestHub_PublishAgrupaAvisos(t *testing.T) {
	h := livequery.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := h.Subscribe(ctx, livequery.TopicCustomers)
	h.Publish(livequery.TopicCustomers)
	h.Publish(livequery.TopicCustomers)
	h.Publish(livequery.TopicCompanies)

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no llegó el aviso")
	}
	select {
	case <-ch:
		t.Fatal("los avisos seguidos deben agruparse")
	default:
	}
}

func TestHub_SubscribeSeCierraConElContexto(t *testing.T) {
	h := livequery.NewHub()
	ctx, cancel := context.WithCancel(context.Background())

	ch := h.Subscribe(ctx, livequery.TopicCompanies)
	assert.Equal(t, 1, h.Subscribers(livequery.TopicCompanies))

	cancel()
	_, ok := <-ch
	assert.False(t, ok)
	assert.Eventually(t, func() bool { return h.Subscribers(livequery.TopicCompanies) == 0 },
		time.Second, 10*time.Millisecond)
}

func TestWatch_EmiteInicialYTrasCadaCambio(t *testing.T) {
	h := livequery.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	snaps := livequery.Watch(ctx, h, livequery.TopicCustomers, func(context.Context) (int32, error) {
		return calls.Add(1), nil
	})

	first := recv(t, snaps)
	require.NoError(t, first.Err)
	assert.Equal(t, int32(1), first.Data)

	h.Publish(livequery.TopicCustomers)
	second := recv(t, snaps)
	assert.Equal(t, int32(2), second.Data)

	cancel()
	for range snaps {
	}
}

func recv[T any](t *testing.T, ch <-chan livequery.Snapshot[T]) livequery.Snapshot[T] {
	t.Helper()
	select {
	case s, ok := <-ch:
		require.True(t, ok, "canal cerrado")
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("sin snapshot")
	}
	return livequery.Snapshot[T]{}
}

func TestWatch_WakeAfterReevaluaSinCambios(t *testing.T) {
	h := livequery.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls, arms atomic.Int32
	next := func() time.Duration {
		arms.Add(1)
		return 10 * time.Millisecond
	}
	snaps := livequery.Watch(ctx, h, livequery.TopicCustomers, func(context.Context) (int32, error) {
		return calls.Add(1), nil
	}, livequery.WakeAfter(next))

	assert.Equal(t, int32(1), recv(t, snaps).Data)
	assert.Equal(t, int32(2), recv(t, snaps).Data)
	assert.Equal(t, int32(3), recv(t, snaps).Data)
	assert.GreaterOrEqual(t, arms.Load(), int32(3))

	cancel()
	for range snaps {
	}
}
