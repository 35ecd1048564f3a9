package messaging

import (
	"context"
	"log/slog"

	"github.com/kolhapurmc/civicbot/internal/models"
)

// MessageHandler produces the reply for one inbound message. Implemented
// by the dialogue controller.
type MessageHandler interface {
	HandleMessage(ctx context.Context, phone, text string) string
}

// Dispatcher consumes inbound messages from a Service, runs each one
// through the handler and sends the reply back over the same channel.
// Each message is processed in its own goroutine; messages from different
// numbers are fully independent.
type Dispatcher struct {
	service Service
	handler MessageHandler
}

// NewDispatcher creates a dispatcher wiring the service to the handler.
func NewDispatcher(service Service, handler MessageHandler) *Dispatcher {
	return &Dispatcher{service: service, handler: handler}
}

// Start starts the underlying service and the dispatch loop.
func (d *Dispatcher) Start(ctx context.Context) error {
	if err := d.service.Start(ctx); err != nil {
		return err
	}
	go d.loop(ctx)
	slog.Info("Dispatcher started")
	return nil
}

// Stop stops the underlying service. In-flight turns finish on their own.
func (d *Dispatcher) Stop() error {
	return d.service.Stop()
}

func (d *Dispatcher) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			slog.Debug("Dispatcher loop stopping, context cancelled")
			return
		case response, ok := <-d.service.Responses():
			if !ok {
				slog.Debug("Dispatcher loop stopping, responses channel closed")
				return
			}
			go d.dispatch(ctx, response)
		}
	}
}

// dispatch runs one dialogue turn. The handler never errors; send
// failures are logged and dropped since there is no retry path back to
// the user.
func (d *Dispatcher) dispatch(ctx context.Context, response models.Response) {
	phone, err := d.service.ValidateAndCanonicalizeRecipient(response.From)
	if err != nil {
		slog.Warn("Dispatcher.dispatch: invalid sender", "error", err, "from", response.From)
		return
	}

	reply := d.handler.HandleMessage(ctx, phone, response.Body)
	if reply == "" {
		slog.Warn("Dispatcher.dispatch: empty reply, nothing sent", "phone", phone)
		return
	}
	if err := d.service.SendMessage(ctx, phone, reply); err != nil {
		slog.Error("Dispatcher.dispatch: send failed", "error", err, "phone", phone)
	}
}
