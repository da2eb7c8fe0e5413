// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and form body
decoding, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/form/v4"

	"github.com/taibuivan/kinoteka/internal/platform/apperr"
	"github.com/taibuivan/kinoteka/internal/platform/ctxutil"
	"github.com/taibuivan/kinoteka/internal/platform/sec"
	"github.com/taibuivan/kinoteka/internal/platform/validate"
)

// maxFormBytes caps urlencoded bodies; catalog forms are tiny.
const maxFormBytes = 64 << 10

// decoder is safe for concurrent use and caches struct metadata.
var decoder = form.NewDecoder()

/*
DecodeForm parses an application/x-www-form-urlencoded body into target.

Fields are matched by their `form:"name"` struct tags. Type mismatches
(e.g. a non-numeric value for an int field) leave the field at its zero value
instead of failing the whole form, so the service layer reports them as
regular field errors.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidForm if the body cannot be parsed
*/
func DecodeForm(request *http.Request, target interface{}) error {
	request.Body = http.MaxBytesReader(nil, request.Body, maxFormBytes)
	if err := request.ParseForm(); err != nil {
		return validate.ErrInvalidForm
	}

	if err := decoder.Decode(target, request.PostForm); err != nil {
		if _, ok := err.(form.DecodeErrors); !ok {
			return validate.ErrInvalidForm
		}
	}

	return nil
}

/*
FormValues flattens the submitted form for echoing back on validation errors.

Secret fields are never echoed.
*/
func FormValues(request *http.Request, secret ...string) map[string]string {
	values := make(map[string]string, len(request.PostForm))
	for key := range request.PostForm {
		values[key] = request.PostForm.Get(key)
	}
	for _, key := range secret {
		delete(values, key)
	}
	delete(values, "csrfmiddlewaretoken")
	return values
}

/*
IntID retrieves a positive integer URL parameter.

Returns:
  - int64: The parsed identifier
  - error: apperr.NotFound for malformed IDs, matching an unknown resource
*/
func IntID(request *http.Request, name, resource string) (int64, error) {
	raw := chi.URLParam(request, name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.NotFound(resource)
	}

	return id, nil
}

/*
Query retrieves a query string value with surrounding whitespace removed.
*/
func Query(request *http.Request, name string) string {
	return strings.TrimSpace(request.URL.Query().Get(name))
}

/*
Identity extracts the acting identity from the request context.

Anonymous visitors yield [sec.Anonymous].
*/
func Identity(request *http.Request) sec.Identity {
	return ctxutil.GetIdentity(request.Context())
}

/*
SafeNext returns the "next" redirect target when it is a local path, or fallback.
*/
func SafeNext(request *http.Request, fallback string) string {
	next := request.FormValue("next")
	if next == "" {
		next = request.URL.Query().Get("next")
	}

	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return fallback
	}

	// Reject anything that would leave the site, e.g. "/\evil.example".
	if parsed, err := url.Parse(next); err != nil || parsed.IsAbs() || parsed.Host != "" || strings.Contains(next, "\\") {
		return fallback
	}

	return next
}
