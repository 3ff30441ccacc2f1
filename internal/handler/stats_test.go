package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStats(t *testing.T) {
	router := newTestRouter(t)

	r := httptest.NewRequest(http.MethodGet, "/api/internal/stats", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	stats := decodeJSON[getStatsResponse](t, w)
	assert.Zero(t, stats.URLs)
	assert.Zero(t, stats.Users)

	registerTestUser(t, router, "alice")
	require.Equal(t, http.StatusCreated,
		shortenText(router, "https://example.com/a", nil).Code)
	require.Equal(t, http.StatusCreated,
		shortenText(router, "https://example.com/b", nil).Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(
		http.MethodGet, "/api/internal/stats", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)

	stats = decodeJSON[getStatsResponse](t, w)
	assert.Equal(t, 2, stats.URLs)
	assert.Equal(t, 1, stats.Users)
}
