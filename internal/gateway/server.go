// Package gateway is the relay's HTTP surface. It validates requests, calls
// exactly one store operation per request and renders the result as JSON.
// It owns no message state.
package gateway

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"agent-bridge/internal/clock"
	"agent-bridge/internal/relay"
)

const (
	serviceName    = "Agent Bridge Server"
	serviceVersion = "1.0.0"
)

// Relay is the part of *relay.Store the gateway depends on.
type Relay interface {
	Send(from, to, content string) (relay.Message, error)
	Retrieve(agent relay.Agent, clearAfter bool) ([]relay.Message, error)
	Clear(agent relay.Agent) (int, error)
	Status() relay.Status
	History(limit int) []relay.Message
}

type Options struct {
	Addr string
	// RequestTimeout bounds a whole request; zero disables it.
	RequestTimeout time.Duration
	// MaxBodyBytes caps POST bodies; zero disables the cap.
	MaxBodyBytes int64
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type Server struct {
	log       *slog.Logger
	relay     Relay
	clock     clock.Clock
	opts      Options
	listeners []relay.Listener
	server    *http.Server
}

func New(log *slog.Logger, r Relay, clk clock.Clock, opts Options, listeners ...relay.Listener) *Server {
	if clk == nil {
		clk = clock.System{}
	}
	s := &Server{
		log:       log,
		relay:     r,
		clock:     clk,
		opts:      opts,
		listeners: listeners,
	}
	s.server = &http.Server{
		Addr:         opts.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		IdleTimeout:  opts.IdleTimeout,
	}
	return s
}

// Handler returns the routed handler with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /message", s.handleSend)
	mux.HandleFunc("GET /messages/{agent}", s.handleMessages)
	mux.HandleFunc("POST /clear/{agent}", s.handleClear)
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("GET /history", s.handleHistory)
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("/", s.handleNotFound)

	var h http.Handler = s.recoverPanics(mux)
	if s.opts.RequestTimeout > 0 {
		h = http.TimeoutHandler(h, s.opts.RequestTimeout, `{"error":"request timed out"}`)
	}
	return s.withRequestID(s.logRequests(h))
}

// Start blocks serving on opts.Addr until Stop is called.
func (s *Server) Start() error {
	s.log.Info("Starting agent bridge", "address", s.opts.Addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
