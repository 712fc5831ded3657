package shopsync

import "net/http"

// Pipeline owns the configuration, logger and HTTP client shared by every
// stage. One instance per process; all network calls are sequential.
type Pipeline struct {
	Config Config
	Logger *Logger

	httpClient *http.Client

	// Per-request timeouts ride on the request context; the feed scheme is
	// only overridden by tests.
	scheme string
}

func NewPipeline(cfg Config) *Pipeline {
	return &Pipeline{
		Config:     cfg,
		Logger:     newLogger("shopsync", cfg.LogLevel),
		httpClient: &http.Client{},
		scheme:     "https",
	}
}
