package mailer

import (
	"context"
	"log/slog"
)

// LogMailer writes mail to the log instead of delivering it. Development
// driver, so signup works without a relay.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a log-backed mailer.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Name implements Mailer.
func (m *LogMailer) Name() string { return DriverLog }

// Send implements Mailer. It never fails.
func (m *LogMailer) Send(ctx context.Context, msg *Message) error {
	m.logger.InfoContext(ctx, "mail delivered to log",
		"to", msg.To,
		"subject", msg.Subject,
		"body_bytes", len(msg.HTML),
	)
	return nil
}
