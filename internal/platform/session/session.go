// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session implements cookie-identified browser sessions and one-shot
flash messages.

Every visitor receives an opaque random session ID in a cookie. The server side
state (the logged-in account and the queue of pending flash messages) lives in a
[Store], backed by Redis in production.

Architecture:

  - Manager: Cookie handling, login rotation, logout and flash helpers.
  - Store: Volatile persistence contract ([RedisStore]).
  - Middleware: Loads or issues the session before handlers run.
*/
package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by a [Store] when the session does not exist or has expired.
var ErrNotFound = errors.New("session: not found")

// # Domain Types

// Data is the server-side state attached to a session ID.
type Data struct {
	// UserID is empty for anonymous visitors.
	UserID    string    `json:"uid,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Level classifies a flash message for the presentation layer.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelError   Level = "error"
)

// Message is a one-shot notice displayed on the next rendered page.
type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// # Storage Contract

// Store defines the persistence contract for session state and flash queues.
type Store interface {

	/*
		Load returns the session data for id.

		Returns:
		  - *Data: Session state
		  - error: ErrNotFound if absent or expired
	*/
	Load(context context.Context, id string) (*Data, error)

	/*
		Save writes the session data for id with a sliding TTL.
	*/
	Save(context context.Context, id string, data *Data, ttl time.Duration) error

	/*
		Delete removes the session data and its pending flash messages.
	*/
	Delete(context context.Context, id string) error

	/*
		PushFlash appends a message to the session's flash queue.
	*/
	PushFlash(context context.Context, id string, message Message) error

	/*
		PopFlashes returns and clears every queued message, oldest first.
	*/
	PopFlashes(context context.Context, id string) ([]Message, error)
}

// # Presentation Contract

// Flasher is the slice of [Manager] that page handlers depend on.
type Flasher interface {
	Flash(ctx context.Context, level Level, text string)
	Messages(ctx context.Context) []Message
}
