package shopsync

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func testLogger() *Logger {
	return &Logger{logger: log.New(io.Discard, "", 0), level: levelError}
}

// testPipeline builds a Pipeline that talks plain http to httptest servers
// and keeps retry/rate-limit waits near zero unless a test overrides them.
func testPipeline(cfg Config) *Pipeline {
	if cfg.MaxRetryAttempts == 0 {
		cfg.MaxRetryAttempts = 1
	}
	if cfg.RateLimitDelay == 0 {
		cfg.RateLimitDelay = time.Millisecond
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 5 * time.Second
	}
	if cfg.SyncTimeout == 0 {
		cfg.SyncTimeout = 5 * time.Second
	}
	if cfg.DeleteTimeout == 0 {
		cfg.DeleteTimeout = 5 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "shopsync-test/1.0"
	}
	return &Pipeline{
		Config:     cfg,
		Logger:     testLogger(),
		httpClient: &http.Client{},
		scheme:     "http",
	}
}

func serverHost(t *testing.T, server *httptest.Server) string {
	t.Helper()
	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("parse server URL: %v", err)
	}
	return u.Host
}
