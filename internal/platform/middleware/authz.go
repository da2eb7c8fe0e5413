// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/taibuivan/kinoteka/internal/platform/ctxutil"
	"github.com/taibuivan/kinoteka/internal/platform/sec"
)

// SessionReader exposes the account bound to the current browser session.
type SessionReader interface {
	UserID(ctx context.Context) string
}

// IdentityResolver turns a session's account ID into a fresh [sec.Identity].
//
// # Why an interface?
//
// Defining IdentityResolver here decouples the middleware from the `auth`
// service implementation, allowing us to inject fakes during unit testing.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, userID string) (sec.Identity, error)
}

// Authenticate resolves the acting identity for every request.
//
// # Flow
//  1. Read the account ID from the session (set by the session middleware).
//  2. If absent, the request proceeds as [sec.Anonymous].
//  3. Otherwise resolve the account freshly, so revoked staff rights apply immediately.
//  4. Inject the [sec.Identity] into the request context.
func Authenticate(sessions SessionReader, resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()
			identity := sec.Anonymous

			if userID := sessions.UserID(ctx); userID != "" {
				resolved, err := resolver.ResolveIdentity(ctx, userID)
				if err != nil {
					ctxutil.GetLogger(ctx).WarnContext(ctx, "identity_resolution_failed",
						slog.String("user_id", userID),
						slog.Any("error", err),
					)
				} else {
					identity = resolved
				}
			}

			if recorder, ok := writer.(IdentityRecorder); ok {
				recorder.RecordIdentity(identity)
			}

			next.ServeHTTP(writer, request.WithContext(ctxutil.WithIdentity(ctx, identity)))
		})
	}
}

// RequireAuth redirects anonymous visitors to the login page.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(loginURL string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if !ctxutil.GetIdentity(request.Context()).Authenticated {
				redirectToLogin(writer, request, loginURL)
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}

// RequireManager redirects every caller who fails [sec.IsManager] to the login page.
//
// Authenticated non-staff users are redirected as well, so they can sign in
// with a staff account.
func RequireManager(loginURL string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if !sec.IsManager(ctxutil.GetIdentity(request.Context())) {
				redirectToLogin(writer, request, loginURL)
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}

func redirectToLogin(writer http.ResponseWriter, request *http.Request, loginURL string) {
	target := loginURL + "?next=" + url.QueryEscape(request.URL.RequestURI())
	http.Redirect(writer, request, target, http.StatusFound)
}
