package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shortenJSON(router http.Handler, body, contentType string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost,
		"/api/shorten", bytes.NewBufferString(body))
	r.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)
	return w
}

func TestShortenJSON(t *testing.T) {
	router := newTestRouter(t)

	w := shortenJSON(router, `{"url":"https://example.com/a"}`, "application/json")
	require.Equal(t, http.StatusCreated, w.Code)

	payload := decodeJSON[shortenJSONResponsePayload](t, w)
	assert.True(t, payload.Success)
	assert.Equal(t, "OK", payload.Message)
	assert.True(t, strings.HasPrefix(payload.Result, "http://"),
		"unexpected short url: %s", payload.Result)
}

func TestShortenJSON_SameURLConflicts(t *testing.T) {
	router := newTestRouter(t)

	first := shortenJSON(router, `{"url":"https://go.dev/"}`, "application/json")
	require.Equal(t, http.StatusCreated, first.Code)
	firstPayload := decodeJSON[shortenJSONResponsePayload](t, first)

	second := shortenJSON(router, `{"url":"https://go.dev/"}`, "application/json")
	assert.Equal(t, http.StatusConflict, second.Code)
	secondPayload := decodeJSON[shortenJSONResponsePayload](t, second)

	assert.Equal(t, firstPayload.Result, secondPayload.Result)
	assert.True(t, secondPayload.Success)
}

func TestShortenJSON_BadRequests(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name        string
		body        string
		contentType string
	}{
		{"wrong content-type", `{"url":"https://example.com"}`, "text/plain"},
		{"broken json", `{"url":`, "application/json"},
		{"empty url", `{"url":""}`, "application/json"},
		{"not a url", `{"url":"not a url"}`, "application/json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := shortenJSON(router, tt.body, tt.contentType)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			payload := decodeJSON[shortenJSONResponsePayload](t, w)
			assert.False(t, payload.Success)
			assert.NotEmpty(t, payload.Message)
		})
	}
}
