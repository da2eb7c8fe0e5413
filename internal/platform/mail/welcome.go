// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

//go:embed templates/welcome.txt templates/welcome.html
var templateFS embed.FS

// Site describes the sending site in outgoing messages.
type Site struct {
	Name       string
	URL        string
	AdminEmail string
}

type welcomeData struct {
	Username   string
	SiteName   string
	SiteURL    string
	AdminEmail string
}

// Welcomer renders and sends the message new accounts receive.
type Welcomer struct {
	sender Sender
	site   Site
	text   *texttemplate.Template
	html   *htmltemplate.Template
}

// NewWelcomer parses the embedded templates.
func NewWelcomer(sender Sender, site Site) (*Welcomer, error) {
	text, err := texttemplate.ParseFS(templateFS, "templates/welcome.txt")
	if err != nil {
		return nil, fmt.Errorf("mail: parse text template: %w", err)
	}

	html, err := htmltemplate.ParseFS(templateFS, "templates/welcome.html")
	if err != nil {
		return nil, fmt.Errorf("mail: parse html template: %w", err)
	}

	return &Welcomer{sender: sender, site: site, text: text, html: html}, nil
}

// Compose renders the welcome message for a user.
func (welcomer *Welcomer) Compose(username, email string) (Message, error) {
	data := welcomeData{
		Username:   username,
		SiteName:   welcomer.site.Name,
		SiteURL:    welcomer.site.URL,
		AdminEmail: welcomer.site.AdminEmail,
	}

	var text, html bytes.Buffer
	if err := welcomer.text.Execute(&text, data); err != nil {
		return Message{}, fmt.Errorf("mail: render text: %w", err)
	}
	if err := welcomer.html.Execute(&html, data); err != nil {
		return Message{}, fmt.Errorf("mail: render html: %w", err)
	}

	return Message{
		To:      email,
		Subject: fmt.Sprintf("Welcome to %s!", welcomer.site.Name),
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}

// Send renders and delivers the welcome message synchronously.
func (welcomer *Welcomer) Send(ctx context.Context, username, email string) error {
	message, err := welcomer.Compose(username, email)
	if err != nil {
		return err
	}
	return welcomer.sender.Send(ctx, message)
}
