// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/taibuivan/kinoteka/internal/platform/config"
)

// SMTPSender delivers messages through an SMTP relay.
type SMTPSender struct {
	client *gomail.Client
	from   string
}

/*
NewSMTPSender builds an SMTP transport from the mail configuration.

Credentials are optional. When EMAIL_USE_TLS is set, STARTTLS is mandatory,
otherwise it is used opportunistically.

Returns:
  - *SMTPSender: The configured transport
  - error: If the client options are invalid
*/
func NewSMTPSender(cfg config.MailConfig) (*SMTPSender, error) {
	policy := gomail.TLSOpportunistic
	if cfg.UseTLS {
		policy = gomail.TLSMandatory
	}

	options := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPolicy(policy),
	}
	if cfg.Username != "" {
		options = append(options,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, options...)
	if err != nil {
		return nil, fmt.Errorf("mail: smtp client: %w", err)
	}

	return &SMTPSender{client: client, from: cfg.From}, nil
}

// Send delivers the message as multipart/alternative (plain text and HTML).
func (sender *SMTPSender) Send(ctx context.Context, message Message) error {
	msg := gomail.NewMsg()
	if err := msg.From(sender.from); err != nil {
		return fmt.Errorf("mail: from address: %w", err)
	}
	if err := msg.To(message.To); err != nil {
		return fmt.Errorf("mail: to address: %w", err)
	}

	msg.Subject(message.Subject)
	msg.SetBodyString(gomail.TypeTextPlain, message.Text)
	if message.HTML != "" {
		msg.AddAlternativeString(gomail.TypeTextHTML, message.HTML)
	}

	if err := sender.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("mail: smtp delivery: %w", err)
	}
	return nil
}
