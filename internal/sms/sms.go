// Package sms defines the outbound SMS transport boundary. The actual
// delivery provider lives outside this service; implementations report
// delivery refusal through Result.Accepted rather than an error so that
// fan-out callers can count partial failures.
package sms

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Result is the transport's answer for a single send attempt.
type Result struct {
	Accepted   bool
	ProviderID string
}

// Sender dispatches one SMS. Implementations must not panic and must not
// block past ctx cancellation; a failed send returns Accepted=false.
type Sender interface {
	Send(ctx context.Context, phoneNumber, body string) Result
}

// LogSender writes messages to the log instead of a provider. It is the
// default transport for local and dev environments.
type LogSender struct {
	log *slog.Logger
}

func NewLogSender(log *slog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, phoneNumber, body string) Result {
	providerID := uuid.NewString()

	s.log.Info("sms dispatched",
		slog.String("to", phoneNumber),
		slog.String("body", body),
		slog.String("provider_id", providerID),
	)

	return Result{Accepted: true, ProviderID: providerID}
}
