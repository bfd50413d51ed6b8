package root

import (
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"simpleclaw-keeper/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useKeeperAddr points the client configuration at addr over TCP
func useKeeperAddr(t *testing.T, addr string) {
	saved := config.Config
	t.Cleanup(func() { config.Config = saved })
	config.Config.Server.Socket = filepath.Join(t.TempDir(), "absent.sock")
	config.Config.Server.Address = addr
}

func TestCallKeeperNoServerFallsBack(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	l.Close()
	useKeeperAddr(t, addr)

	handled, err := CallKeeper(http.MethodPost, "/api/v1/stack/stop", nil, time.Second, nil)
	assert.False(t, handled)
	assert.NoError(t, err)
}

func TestCallKeeperTimeoutIsNotRepeatedLocally(t *testing.T) {
	var received int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&received, 1)
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()
	useKeeperAddr(t, strings.TrimPrefix(server.URL, "http://"))

	handled, err := CallKeeper(http.MethodPost, "/api/v1/stack/stop", nil, 50*time.Millisecond, nil)
	assert.True(t, handled, "the server got the request, the caller must not run it again")
	assert.ErrorContains(t, err, "keeper server did not answer")
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&received) == 1 }, time.Second, 10*time.Millisecond)
}

func TestCallKeeperAnswers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/stack/status":
			w.Write([]byte(`{"running": true}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"code": "stack.stop_failed", "error": "no such service"}`))
		}
	}))
	defer server.Close()
	useKeeperAddr(t, strings.TrimPrefix(server.URL, "http://"))

	var status struct {
		Running bool `json:"running"`
	}
	handled, err := CallKeeper(http.MethodGet, "/api/v1/stack/status", nil, time.Second, &status)
	require.NoError(t, err)
	assert.True(t, handled)
	assert.True(t, status.Running)

	handled, err = CallKeeper(http.MethodPost, "/api/v1/stack/stop", nil, time.Second, nil)
	assert.True(t, handled)
	assert.EqualError(t, err, "no such service")
}
