// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package requestutil_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kinoteka/internal/platform/apperr"
	requestutil "github.com/taibuivan/kinoteka/internal/platform/request"
)

type reviewForm struct {
	Marker string `form:"review_submit"`
	Rating *int   `form:"rating"`
	Text   string `form:"text"`
}

func postForm(body string) *http.Request {
	request := httptest.NewRequest(http.MethodPost, "/movie/1/", strings.NewReader(body))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return request
}

/*
TestDecodeForm verifies tag-based decoding and tolerance to malformed numbers.
*/
func TestDecodeForm(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		var target reviewForm
		require.NoError(t, requestutil.DecodeForm(postForm("review_submit=1&rating=4&text=Great"), &target))

		require.NotNil(t, target.Rating)
		assert.Equal(t, 4, *target.Rating)
		assert.Equal(t, "Great", target.Text)
		assert.Equal(t, "1", target.Marker)
	})

	t.Run("Malformed number leaves field empty", func(t *testing.T) {
		var target reviewForm
		require.NoError(t, requestutil.DecodeForm(postForm("rating=abc&text=Hi"), &target))

		assert.Nil(t, target.Rating)
		assert.Equal(t, "Hi", target.Text)
	})
}

/*
TestFormValues verifies that secrets are never echoed back.
*/
func TestFormValues(t *testing.T) {
	request := postForm("username=alice&password=secret")
	require.NoError(t, request.ParseForm())

	values := requestutil.FormValues(request, "password")
	assert.Equal(t, map[string]string{"username": "alice"}, values)
}

/*
TestIntID verifies URL parameter parsing.
*/
func TestIntID(t *testing.T) {
	build := func(raw string) *http.Request {
		routeContext := chi.NewRouteContext()
		routeContext.URLParams.Add("movieID", raw)
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		return request.WithContext(context.WithValue(request.Context(), chi.RouteCtxKey, routeContext))
	}

	id, err := requestutil.IntID(build("42"), "movieID", "Movie")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "abc", "-1", "0"} {
		_, err := requestutil.IntID(build(raw), "movieID", "Movie")
		appError := apperr.As(err)
		require.NotNil(t, appError, raw)
		assert.Equal(t, http.StatusNotFound, appError.HTTPStatus)
	}
}

/*
TestSafeNext verifies open-redirect protection.
*/
func TestSafeNext(t *testing.T) {
	tests := []struct {
		next string
		want string
	}{
		{"/add/movie/", "/add/movie/"},
		{"", "/"},
		{"https://evil.example/", "/"},
		{"//evil.example/", "/"},
		{"/\\evil.example", "/"},
		{"relative/path", "/"},
	}

	for _, tt := range tests {
		request := httptest.NewRequest(http.MethodGet, "/accounts/login/", nil)
		query := request.URL.Query()
		query.Set("next", tt.next)
		request.URL.RawQuery = query.Encode()

		assert.Equal(t, tt.want, requestutil.SafeNext(request, "/"), tt.next)
	}
}

/*
TestQuery verifies that search terms are trimmed.
*/
func TestQuery(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/?q=%20%20solaris%09&empty=", nil)

	assert.Equal(t, "solaris", requestutil.Query(request, "q"))
	assert.Empty(t, requestutil.Query(request, "empty"))
	assert.Empty(t, requestutil.Query(request, "missing"))
}
