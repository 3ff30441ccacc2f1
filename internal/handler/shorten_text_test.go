package handler

import (
	"bytes"
	"compress/gzip"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortenText(t *testing.T) {
	router := newTestRouter(t)

	w := shortenText(router, "https://example.com/a", nil)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")

	shortURL := w.Body.String()
	require.True(t, strings.HasPrefix(shortURL, "http://"),
		"unexpected short url: %s", shortURL)

	code := shortURL[strings.LastIndex(shortURL, "/")+1:]
	assert.Regexp(t, base58Regexp, code)
}

func TestShortenText_SameURLConflicts(t *testing.T) {
	router := newTestRouter(t)

	first := shortenText(router, "https://go.dev/", nil)
	require.Equal(t, http.StatusCreated, first.Code)

	second := shortenText(router, "https://go.dev/", nil)
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String(),
		"conflict response must carry the previously allocated short url")
}

func TestShortenText_BadRequests(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name        string
		body        string
		contentType string
	}{
		{"wrong content-type", "https://example.com", "application/json"},
		{"empty body", "", "text/plain"},
		{"not a url", "this is not a url", "text/plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/",
				bytes.NewBufferString(tt.body))
			r.Header.Set("Content-Type", tt.contentType)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, r)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestShortenText_GzippedBody(t *testing.T) {
	router := newTestRouter(t)

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte("https://example.com/compressed"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	r := httptest.NewRequest(http.MethodPost, "/", &buf)
	r.Header.Set("Content-Type", "application/x-gzip")
	r.Header.Set("Content-Encoding", "gzip")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)
	require.Equal(t, http.StatusCreated, w.Code)

	shortURL := w.Body.String()
	code := shortURL[strings.LastIndex(shortURL, "/")+1:]
	assert.Regexp(t, base58Regexp, code)
}

func TestShortenText_TrimsWhitespace(t *testing.T) {
	router := newTestRouter(t)

	w := shortenText(router, "  https://example.com/ws\n", nil)
	assert.Equal(t, http.StatusCreated, w.Code)
}
