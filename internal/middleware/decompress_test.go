package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TigerNinja22/Mini-URL/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecompress(t *testing.T) {
	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		_, _ = w.Write(body)
	})

	payload := []byte("https://example.com/compressed")

	tests := []struct {
		name            string
		contentEncoding string
		body            []byte
	}{
		{"gzip body", "gzip", compress(t, payload)},
		{"plain body", "", payload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(tt.body))
			if tt.contentEncoding != "" {
				r.Header.Set("Content-Encoding", tt.contentEncoding)
			}
			w := httptest.NewRecorder()

			Decompress(logger.NewForTest())(echo).ServeHTTP(w, r)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, payload, w.Body.Bytes())
		})
	}
}

func TestDecompress_BrokenBody(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	})

	r := httptest.NewRequest(http.MethodPost, "/",
		bytes.NewReader([]byte("not gzip at all")))
	r.Header.Set("Content-Encoding", "gzip")
	w := httptest.NewRecorder()

	Decompress(logger.NewForTest())(next).ServeHTTP(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func compress(t *testing.T, data []byte) []byte {
	t.Helper()

	var b bytes.Buffer
	zw := gzip.NewWriter(&b)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	return b.Bytes()
}
