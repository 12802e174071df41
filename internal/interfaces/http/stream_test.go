package http_test

import (
	"bufio"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/notify-renewals/internal/application/livequery"
)

// serve levanta la app en un puerto local y devuelve su URL base.
func serve(t *testing.T, env *testEnv) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = env.app.Listener(ln) }()
	t.Cleanup(func() { _ = env.app.ShutdownWithTimeout(2 * time.Second) })
	return "http://" + ln.Addr().String()
}

// openStream conecta al stream y espera el primer evento.
func openStream(t *testing.T, baseURL string) *http.Response {
	t.Helper()
	resp, err := http.Get(baseURL + "/api/renewals/today/stream")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	reader := bufio.NewReader(resp.Body)
	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "event:") {
			assert.Equal(t, "event: renewals", strings.TrimSpace(line))
			return resp
		}
	}
}

func TestStream_DesconexionLiberaSuscripcion(t *testing.T) {
	env := newTestEnv(t, 20*time.Millisecond)
	baseURL := serve(t, env)

	resp := openStream(t, baseURL)
	assert.Equal(t, 1, env.hub.Subscribers(livequery.TopicCustomers))

	require.NoError(t, resp.Body.Close())

	assert.Eventually(t, func() bool {
		return env.hub.Subscribers(livequery.TopicCustomers) == 0
	}, 3*time.Second, 20*time.Millisecond)
}

func TestStream_EnviaHeartbeat(t *testing.T) {
	env := newTestEnv(t, 20*time.Millisecond)
	baseURL := serve(t, env)

	resp, err := http.Get(baseURL + "/api/renewals/today/stream")
	require.NoError(t, err)
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, ": ping") {
			break
		}
	}
}

func TestStream_ApagadoCierraStreams(t *testing.T) {
	env := newTestEnv(t, time.Hour)
	baseURL := serve(t, env)

	resp := openStream(t, baseURL)
	defer resp.Body.Close()
	require.Equal(t, 1, env.hub.Subscribers(livequery.TopicCustomers))

	env.stopStreams()

	assert.Eventually(t, func() bool {
		return env.hub.Subscribers(livequery.TopicCustomers) == 0
	}, 3*time.Second, 20*time.Millisecond)
	assert.NoError(t, env.app.ShutdownWithTimeout(2*time.Second))
}
