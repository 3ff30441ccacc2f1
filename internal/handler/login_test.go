package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	router := newTestRouter(t)
	registerTestUser(t, router, "alice")

	tests := []struct {
		name  string
		login string
	}{
		{"by username", "alice"},
		{"by email", "alice@example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, "/api/user/login",
				`{"login":"`+tt.login+`","password":"pw12345678"}`)
			require.Equal(t, http.StatusOK, w.Code)

			payload := decodeJSON[authResponsePayload](t, w)
			assert.True(t, payload.Success)
			assert.NotEmpty(t, payload.UserID)

			cookies := w.Result().Cookies()
			require.NotEmpty(t, cookies, "login must issue a session cookie")
			assert.Equal(t, "Authorization", cookies[0].Name)
		})
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	router := newTestRouter(t)
	registerTestUser(t, router, "alice")

	tests := []struct {
		name string
		body string
	}{
		{"wrong password", `{"login":"alice","password":"wrong12345"}`},
		{"unknown user", `{"login":"nobody","password":"pw12345678"}`},
	}

	var messages []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, "/api/user/login", tt.body)
			assert.Equal(t, http.StatusUnauthorized, w.Code)

			payload := decodeJSON[authResponsePayload](t, w)
			assert.False(t, payload.Success)
			messages = append(messages, payload.Message)
		})
	}

	// The response must not reveal whether the account exists.
	require.Len(t, messages, 2)
	assert.Equal(t, messages[0], messages[1])
}

func TestLogin_BrokenJSON(t *testing.T) {
	router := newTestRouter(t)

	w := postJSON(router, "/api/user/login", `{"login":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogout(t *testing.T) {
	router := newTestRouter(t)

	r := httptest.NewRequest(http.MethodPost, "/api/user/logout", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "Authorization", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
