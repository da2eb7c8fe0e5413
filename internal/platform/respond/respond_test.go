// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kinoteka/internal/platform/apperr"
	"github.com/taibuivan/kinoteka/internal/platform/respond"
	"github.com/taibuivan/kinoteka/internal/platform/session"
)

/*
TestPage verifies the page envelope always carries a messages array.
*/
func TestPage(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.Page(recorder, map[string]int{"top_count": 3}, nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":{"top_count":3},"messages":[]}`, recorder.Body.String())
}

/*
TestError verifies that internal causes never reach the client.
*/
func TestError(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/", nil)

	respond.Error(recorder, request, errors.New("pq: relation does not exist"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "relation")
}

/*
TestFormInvalid verifies that field errors and submitted values are echoed.
*/
func TestFormInvalid(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/movie/1/", nil)

	err := apperr.ValidationError("Validation failed", apperr.FieldError{Field: "rating", Message: "Must be between 1 and 5"}).
		WithValues(map[string]string{"rating": "6", "text": "Great"})

	respond.FormInvalid(recorder, request, map[string]string{"title": "Solaris"}, err,
		[]session.Message{{Level: session.LevelInfo, Text: "hello"}})

	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var body struct {
		Data     map[string]string   `json:"data"`
		Code     string              `json:"code"`
		Details  []apperr.FieldError `json:"details"`
		Values   map[string]string   `json:"values"`
		Messages []session.Message   `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	assert.Equal(t, "Solaris", body.Data["title"])
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
	assert.Equal(t, "rating", body.Details[0].Field)
	assert.Equal(t, "6", body.Values["rating"])
	assert.Len(t, body.Messages, 1)
}
