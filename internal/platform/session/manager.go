// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/kinoteka/internal/platform/constants"
	"github.com/taibuivan/kinoteka/internal/platform/ctxutil"
	"github.com/taibuivan/kinoteka/internal/platform/sec"
)

type dataKey struct{}

// Manager issues session cookies and mediates every access to the [Store].
type Manager struct {
	store  Store
	ttl    time.Duration
	secure bool
	logger *slog.Logger
	clock  func() time.Time
}

// NewManager constructs a session manager. secure controls the cookie Secure flag.
func NewManager(store Store, ttl time.Duration, secure bool, logger *slog.Logger) *Manager {
	return &Manager{
		store:  store,
		ttl:    ttl,
		secure: secure,
		logger: logger,
		clock:  time.Now,
	}
}

/*
Middleware loads the session referenced by the request cookie, or issues a
fresh session ID when the cookie is missing or its state has expired.

The session ID is stored in the request context for downstream helpers
([Manager.Flash], [Manager.Messages], [Manager.UserID]).
*/
func (manager *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()

		var (
			id   string
			data *Data
		)

		if cookie, err := request.Cookie(constants.SessionCookieName); err == nil && cookie.Value != "" {
			loaded, err := manager.store.Load(ctx, cookie.Value)
			switch {
			case err == nil:
				id, data = cookie.Value, loaded
			case errors.Is(err, ErrNotFound):
				// Keep the ID so queued flash messages survive an expired login.
				id = cookie.Value
			default:
				manager.logger.WarnContext(ctx, "session_load_failed", slog.Any("error", err))
				id = cookie.Value
			}
		}

		if id == "" {
			fresh, err := sec.GenerateSecureToken(constants.SessionIDLength)
			if err != nil {
				manager.logger.ErrorContext(ctx, "session_id_generation_failed", slog.Any("error", err))
				http.Error(writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			id = fresh
			manager.setCookie(writer, id)
		}

		if data == nil {
			data = &Data{}
		}

		ctx = ctxutil.WithSessionID(ctx, id)
		ctx = context.WithValue(ctx, dataKey{}, data)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// UserID returns the account bound to the current session, or "" for anonymous visitors.
func (manager *Manager) UserID(ctx context.Context) string {
	if data, ok := ctx.Value(dataKey{}).(*Data); ok && data != nil {
		return data.UserID
	}
	return ""
}

/*
Login binds userID to a brand new session ID and discards the previous one.

Pending flash messages are carried over to the new session.

Returns:
  - context.Context: Derived context carrying the rotated session ID
  - error: Store failures
*/
func (manager *Manager) Login(ctx context.Context, writer http.ResponseWriter, userID string) (context.Context, error) {
	previous := ctxutil.GetSessionID(ctx)

	id, err := sec.GenerateSecureToken(constants.SessionIDLength)
	if err != nil {
		return ctx, err
	}

	data := &Data{UserID: userID, CreatedAt: manager.clock()}
	if err := manager.store.Save(ctx, id, data, manager.ttl); err != nil {
		return ctx, err
	}

	if previous != "" {
		pending, err := manager.store.PopFlashes(ctx, previous)
		if err == nil {
			for _, message := range pending {
				_ = manager.store.PushFlash(ctx, id, message)
			}
		}
		if err := manager.store.Delete(ctx, previous); err != nil {
			manager.logger.WarnContext(ctx, "session_rotate_cleanup_failed", slog.Any("error", err))
		}
	}

	manager.setCookie(writer, id)

	ctx = ctxutil.WithSessionID(ctx, id)
	ctx = context.WithValue(ctx, dataKey{}, data)
	return ctx, nil
}

/*
Logout destroys the current session and issues an anonymous one in its place.

Returns:
  - context.Context: Derived context carrying the new anonymous session ID
  - error: Store failures
*/
func (manager *Manager) Logout(ctx context.Context, writer http.ResponseWriter) (context.Context, error) {
	if previous := ctxutil.GetSessionID(ctx); previous != "" {
		if err := manager.store.Delete(ctx, previous); err != nil {
			return ctx, err
		}
	}

	id, err := sec.GenerateSecureToken(constants.SessionIDLength)
	if err != nil {
		return ctx, err
	}

	manager.setCookie(writer, id)

	ctx = ctxutil.WithSessionID(ctx, id)
	ctx = context.WithValue(ctx, dataKey{}, &Data{})
	return ctx, nil
}

// Flash queues a message for the next rendered page. Failures are logged and ignored.
func (manager *Manager) Flash(ctx context.Context, level Level, text string) {
	id := ctxutil.GetSessionID(ctx)
	if id == "" {
		return
	}

	if err := manager.store.PushFlash(ctx, id, Message{Level: level, Text: text}); err != nil {
		manager.logger.WarnContext(ctx, "flash_push_failed", slog.Any("error", err))
	}
}

// Messages pops every queued flash message for the current session.
func (manager *Manager) Messages(ctx context.Context) []Message {
	id := ctxutil.GetSessionID(ctx)
	if id == "" {
		return nil
	}

	messages, err := manager.store.PopFlashes(ctx, id)
	if err != nil {
		manager.logger.WarnContext(ctx, "flash_pop_failed", slog.Any("error", err))
		return nil
	}

	return messages
}

func (manager *Manager) setCookie(writer http.ResponseWriter, id string) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(manager.ttl.Seconds()),
		HttpOnly: true,
		Secure:   manager.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
