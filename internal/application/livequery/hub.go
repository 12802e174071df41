// Package livequery permite observar consultas: cada escritura confirmada publica el tópico
// de su tabla y los observadores vuelven a evaluar su consulta.
package livequery

import (
	"context"
	"sync"
	"time"
)

// Topic identifica la tabla que cambió.
type Topic string

const (
	TopicCustomers Topic = "customers"
	TopicCompanies Topic = "companies"
)

// Publisher lo usan los casos de uso después de cada escritura confirmada.
type Publisher interface {
	Publish(topic Topic)
}

// Hub reparte avisos de cambio a los suscriptores de cada tópico.
type Hub struct {
	mu   sync.Mutex
	subs map[Topic]map[chan struct{}]struct{}
}

var _ Publisher = (*Hub)(nil)

// NewHub construye un Hub vacío.
func NewHub() *Hub {
	return &Hub{subs: make(map[Topic]map[chan struct{}]struct{})}
}

// Publish avisa a los suscriptores de topic. No bloquea: avisos seguidos se agrupan en uno.
func (h *Hub) Publish(topic Topic) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[topic] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Subscribe devuelve un canal que recibe un aviso tras cada cambio en topic.
// El canal se cierra cuando ctx termina.
func (h *Hub) Subscribe(ctx context.Context, topic Topic) <-chan struct{} {
	ch := make(chan struct{}, 1)

	h.mu.Lock()
	if h.subs[topic] == nil {
		h.subs[topic] = make(map[chan struct{}]struct{})
	}
	h.subs[topic][ch] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs[topic], ch)
		h.mu.Unlock()
		close(ch)
	}()
	return ch
}

// Subscribers cuenta los suscriptores activos de topic.
func (h *Hub) Subscribers(topic Topic) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[topic])
}

// Snapshot resultado de una evaluación de la consulta.
type Snapshot[T any] struct {
	Data T
	Err  error
}

// WatchOption ajusta Watch.
type WatchOption func(*watchConfig)

type watchConfig struct {
	wakeAfter func() time.Duration
}

// WakeAfter reevalúa la consulta cuando vence next() aunque topic no cambie.
// next se vuelve a consultar después de cada despertar.
func WakeAfter(next func() time.Duration) WatchOption {
	return func(c *watchConfig) { c.wakeAfter = next }
}

// Watch evalúa query de inmediato y otra vez después de cada cambio en topic.
// El canal devuelto se cierra cuando ctx termina.
func Watch[T any](ctx context.Context, h *Hub, topic Topic, query func(context.Context) (T, error), opts ...WatchOption) <-chan Snapshot[T] {
	var cfg watchConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	changes := h.Subscribe(ctx, topic)
	out := make(chan Snapshot[T])

	go func() {
		defer close(out)

		var wake <-chan time.Time
		arm := func() {
			if cfg.wakeAfter != nil {
				wake = time.After(cfg.wakeAfter())
			}
		}
		emit := func() bool {
			data, err := query(ctx)
			select {
			case out <- Snapshot[T]{Data: data, Err: err}:
				return true
			case <-ctx.Done():
				return false
			}
		}

		// el temporizador se arma antes de evaluar para no perder un cambio de día intermedio
		arm()
		if !emit() {
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok || !emit() {
					return
				}
			case <-wake:
				arm()
				if !emit() {
					return
				}
			}
		}
	}()
	return out
}
