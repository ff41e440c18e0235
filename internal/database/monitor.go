package database

import (
	"context"
	"time"

	"github.com/deppfellow/tweteroo/internal/logger"
	"github.com/deppfellow/tweteroo/internal/metrics"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/event"
)

// commandMonitor receives driver command events.
//
// Every finished command feeds the latency histogram. Failed commands are
// logged at error level and commands at or above slow at warn level.
// Logs go to the request logger carried by ctx when there is one.
type commandMonitor struct {
	log  *zerolog.Logger
	slow time.Duration
}

// NewCommandMonitor returns a driver monitor. slow <= 0 disables slow
// command logging.
func NewCommandMonitor(logger *zerolog.Logger, slow time.Duration) *event.CommandMonitor {
	m := &commandMonitor{log: logger, slow: slow}

	return &event.CommandMonitor{
		Succeeded: m.succeeded,
		Failed:    m.failed,
	}
}

func (m *commandMonitor) succeeded(ctx context.Context, e *event.CommandSucceededEvent) {
	metrics.ObserveMongoCommand(e.CommandName, "success", e.Duration)

	if m.slow > 0 && e.Duration >= m.slow {
		logger.FromContext(ctx, m.log).Warn().
			Str("command", e.CommandName).
			Int64("mongo_request_id", e.RequestID).
			Dur("duration", e.Duration).
			Dur("threshold", m.slow).
			Msg("slow mongo command")
	}
}

func (m *commandMonitor) failed(ctx context.Context, e *event.CommandFailedEvent) {
	metrics.ObserveMongoCommand(e.CommandName, "failure", e.Duration)

	logger.FromContext(ctx, m.log).Error().
		Str("command", e.CommandName).
		Int64("mongo_request_id", e.RequestID).
		Str("failure", e.Failure).
		Dur("duration", e.Duration).
		Msg("mongo command failed")
}
