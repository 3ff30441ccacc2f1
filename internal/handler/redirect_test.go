package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedirect(t *testing.T) {
	router := newTestRouter(t)

	const original = "https://example.com/long/path?q=1"

	shortened := shortenText(router, original, nil)
	require.Equal(t, http.StatusCreated, shortened.Code)

	shortURL := shortened.Body.String()
	code := shortURL[strings.LastIndex(shortURL, "/")+1:]

	r := httptest.NewRequest(http.MethodGet, "/"+code, http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, original, w.Header().Get("Location"))
}

func TestRedirect_UnknownCode(t *testing.T) {
	router := newTestRouter(t)

	r := httptest.NewRequest(http.MethodGet, "/2VhPrFtY", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRedirect_InvalidCode(t *testing.T) {
	router := newTestRouter(t)

	// Zero and capital O are not part of the base 58 alphabet.
	for _, code := range []string{"0000", "O0Il", "with space"} {
		r := httptest.NewRequest(http.MethodGet,
			"/"+strings.ReplaceAll(code, " ", "%20"), http.NoBody)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, r)
		assert.Equal(t, http.StatusBadRequest, w.Code, "code %q", code)
	}
}
