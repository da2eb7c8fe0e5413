// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mail delivers transactional email for the platform.

Architecture:

  - Sender: A transport. [ConsoleSender] logs the message, [SMTPSender] delivers it.
  - Welcomer: Renders the welcome message from embedded templates.
  - Async: Runs deliveries in the background so callers never wait on SMTP.

Delivery failures are logged and never surface to the caller of [Async.Welcome].
*/
package mail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/kinoteka/internal/platform/config"
)

// Message is a rendered email ready for delivery.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers a single [Message].
type Sender interface {
	Send(ctx context.Context, message Message) error
}

// NewSender selects the transport configured by EMAIL_BACKEND.
func NewSender(cfg config.MailConfig, logger *slog.Logger) (Sender, error) {
	switch cfg.Backend {
	case "console":
		return NewConsoleSender(cfg.From, logger), nil
	case "smtp":
		return NewSMTPSender(cfg)
	default:
		return nil, fmt.Errorf("mail: unsupported backend %q", cfg.Backend)
	}
}

// # Console Transport

// ConsoleSender writes messages to the log instead of sending them.
type ConsoleSender struct {
	from   string
	logger *slog.Logger
}

// NewConsoleSender constructs a [ConsoleSender].
func NewConsoleSender(from string, logger *slog.Logger) *ConsoleSender {
	return &ConsoleSender{from: from, logger: logger}
}

// Send logs the message. It never fails.
func (sender *ConsoleSender) Send(_ context.Context, message Message) error {
	sender.logger.Info("mail_sent_console",
		slog.String("from", sender.from),
		slog.String("to", message.To),
		slog.String("subject", message.Subject),
		slog.String("body", message.Text),
	)
	return nil
}
