// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by all page handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses.
// Every page (Success or Error) follows the same JSON envelope so that a
// template layer or an SPA can render it without guessing. Form submissions
// answer with a 303 redirect, following the post/redirect/get pattern.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/taibuivan/kinoteka/internal/platform/apperr"
	"github.com/taibuivan/kinoteka/internal/platform/ctxkey"
	"github.com/taibuivan/kinoteka/internal/platform/session"
	"github.com/taibuivan/kinoteka/pkg/pagination"
)

// PageEnvelope is the JSON envelope for rendered pages.
type PageEnvelope struct {
	Data     interface{}       `json:"data"`
	Meta     *pagination.Meta  `json:"meta,omitempty"`
	Messages []session.Message `json:"messages"`
}

// ErrorEnvelope is the JSON envelope for error responses.
type ErrorEnvelope struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
	// Values echoes the submitted form so the page can be re-rendered.
	Values map[string]string `json:"values,omitempty"`
}

// FormEnvelope re-renders a page whose form submission was rejected.
type FormEnvelope struct {
	Data     interface{}       `json:"data"`
	Messages []session.Message `json:"messages"`
	ErrorEnvelope
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// Page writes a 200 OK page with data and the pending flash messages.
func Page(writer http.ResponseWriter, data interface{}, messages []session.Message) {
	if messages == nil {
		messages = []session.Message{}
	}
	JSON(writer, http.StatusOK, PageEnvelope{Data: data, Messages: messages})
}

// Paginated writes a 200 OK page with a pagination metadata block.
func Paginated(writer http.ResponseWriter, data interface{}, metadata pagination.Meta, messages []session.Message) {
	if messages == nil {
		messages = []session.Message{}
	}
	JSON(writer, http.StatusOK, PageEnvelope{Data: data, Meta: &metadata, Messages: messages})
}

// OK writes a bare 200 OK JSON payload. Used by infrastructure endpoints.
func OK(writer http.ResponseWriter, data interface{}) {
	JSON(writer, http.StatusOK, data)
}

// Redirect answers a form submission with 303 See Other.
func Redirect(writer http.ResponseWriter, request *http.Request, location string) {
	http.Redirect(writer, request, location, http.StatusSeeOther)
}

/*
FormInvalid re-renders a page together with the reasons its form was rejected.

Errors that are not user-facing (5xx, unknown) fall back to [Error].
*/
func FormInvalid(writer http.ResponseWriter, request *http.Request, data interface{}, err error, messages []session.Message) {
	appError := apperr.As(err)
	if appError == nil || !appError.IsUserFacing() {
		Error(writer, request, err)
		return
	}

	if messages == nil {
		messages = []session.Message{}
	}

	JSON(writer, appError.HTTPStatus, FormEnvelope{
		Data:     data,
		Messages: messages,
		ErrorEnvelope: ErrorEnvelope{
			Error:   appError.Message,
			Code:    appError.Code,
			Details: appError.Details,
			Values:  appError.Values,
		},
	})
}

// Error converts any Go error into a standardized JSON error response.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		// Unexpected internal error: log full details but hide them from the client.
		logger := getLoggerFromContext(request)
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", getRequestIDFromContext(request)),
		)
		appError = apperr.Internal(err)
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= 500 {
		logger := getLoggerFromContext(request)
		logger.ErrorContext(request.Context(), "server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", getRequestIDFromContext(request)),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Error:   appError.Message,
		Code:    appError.Code,
		Details: appError.Details,
		Values:  appError.Values,
	})
}

// getLoggerFromContext extracts the per-request logger.
func getLoggerFromContext(request *http.Request) *slog.Logger {
	if logger, ok := request.Context().Value(ctxkey.KeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// getRequestIDFromContext extracts the X-Request-ID for log correlation.
func getRequestIDFromContext(request *http.Request) string {
	if id, ok := request.Context().Value(ctxkey.KeyRequestID).(string); ok {
		return id
	}
	return ""
}
