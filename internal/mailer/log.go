package mailer

import (
	"context"
	"log/slog"
)

// LogSender renders messages and writes them to the log instead of sending.
// Used in development when no delivery credentials are configured.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	body, err := renderTemplate(msg.Template, msg.Data)
	if err != nil {
		return err
	}

	s.logger.Info("email rendered (delivery disabled)",
		"to", msg.To,
		"subject", msg.Subject,
		"template", msg.Template,
		"bytes", body.Len(),
	)
	return nil
}
