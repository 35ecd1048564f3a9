// Package api provides the HTTP surface of civicbot: the Twilio WhatsApp
// webhook, a JSON web chat endpoint and a health check.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/kolhapurmc/civicbot/internal/messaging"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8080"

// Opts holds configuration for the API server.
type Opts struct {
	Addr string
}

// Option defines a configuration option for the API server.
type Option func(*Opts)

// WithAddr sets the HTTP listen address.
func WithAddr(addr string) Option {
	return func(o *Opts) { o.Addr = addr }
}

// Server hosts the HTTP endpoints. The webhook route is only registered
// when a Twilio service is attached; the whatsmeow channel receives
// messages over its own connection.
type Server struct {
	addr          string
	handler       messaging.MessageHandler
	twilioService *messaging.TwilioService
	httpServer    *http.Server
}

// NewServer creates an API server routing chat turns through the given
// message handler. twilioService may be nil.
func NewServer(handler messaging.MessageHandler, twilioService *messaging.TwilioService, opts ...Option) *Server {
	cfg := Opts{Addr: DefaultAddr}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{
		addr:          cfg.Addr,
		handler:       handler,
		twilioService: twilioService,
	}
}

// Run starts the HTTP server and blocks until the context is cancelled,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/chat", s.chatHandler)
	mux.HandleFunc("/health", s.healthHandler)
	if s.twilioService != nil {
		mux.HandleFunc("/webhook/whatsapp", s.twilioService.WebhookHandler)
	}

	s.httpServer = &http.Server{Addr: s.addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("API server listening", "addr", s.addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		slog.Info("API server shutting down")
		return s.httpServer.Shutdown(shutdownCtx)
	}
}
