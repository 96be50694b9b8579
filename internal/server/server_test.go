package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tariff-dashboard/internal/config"
	"tariff-dashboard/internal/services"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer() *Server {
	logger := discardLogger()
	dashboard := func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("dashboard"))
	}
	return NewServer(services.NewAdvisor(logger, 2), logger, config.AdvisorConfig{}, &TemplateHandlers{Dashboard: dashboard})
}

func TestServer_Routing(t *testing.T) {
	srv := newTestServer()

	tests := []struct {
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{http.MethodGet, "/", "", http.StatusOK},
		{http.MethodGet, "/unknown", "", http.StatusNotFound},
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/admin/stats", "", http.StatusOK},
		{http.MethodGet, "/api/fta-groups", "", http.StatusOK},
		{http.MethodGet, "/api/presets", "", http.StatusOK},
		{http.MethodPost, "/api/analysis", `{"trade_volume":100,"tariff_rate":5}`, http.StatusOK},
		{http.MethodGet, "/api/analysis", "", http.StatusMethodNotAllowed},
		{http.MethodPost, "/api/offsets", `{"trade_volume":100,"tariff_rate":5}`, http.StatusOK},
		{http.MethodPost, "/api/scenarios/projection", `{"base_volume":100,"disruption_probability":0.5,"horizon":1}`, http.StatusOK},
		{http.MethodPost, "/api/report", `{"name":"x","trade_volume":100,"tariff_rate":5}`, http.StatusOK},
		{http.MethodPost, "/api/reports/batch", `{"scenarios":[]}`, http.StatusOK},
		{http.MethodPost, "/sse/analysis", "", http.StatusMethodNotAllowed},
		{http.MethodGet, "/sse/presets/none", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			w := httptest.NewRecorder()
			srv.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, body))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func testConfig() *config.Config {
	return &config.Config{Server: config.ServerConfig{ShutdownTimeout: 2 * time.Second}}
}

func TestGracefulServer_ServeAndShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	httpServer := &http.Server{Handler: newTestServer()}
	gs := NewGracefulServer(httpServer, discardLogger(), testConfig())

	var hookCalls atomic.Int32
	gs.RegisterShutdownHook(func(ctx context.Context) error {
		hookCalls.Add(1)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- gs.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	assert.Equal(t, int32(1), hookCalls.Load())
}

func TestGracefulServer_HookErrorsAreReported(t *testing.T) {
	gs := NewGracefulServer(&http.Server{}, discardLogger(), testConfig())

	var ran atomic.Int32
	gs.RegisterShutdownHook(func(ctx context.Context) error {
		ran.Add(1)
		return errors.New("flush failed")
	})
	gs.RegisterShutdownHook(func(ctx context.Context) error {
		ran.Add(1)
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := gs.shutdown(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flush failed")
	assert.Equal(t, int32(2), ran.Load(), "every hook runs")
}
