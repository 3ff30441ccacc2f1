package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAndParseToken(t *testing.T) {
	const secret = "test"

	token, err := BuildToken("42", secret, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := GetUserID(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "42", id)

	// The Authorization header form is accepted as well.
	id, err = GetUserID("Bearer "+token, secret)
	require.NoError(t, err)
	assert.Equal(t, "42", id)
}

func TestGetUserID_WrongSecret(t *testing.T) {
	token, err := BuildToken("42", "test", time.Minute)
	require.NoError(t, err)

	_, err = GetUserID(token, "another secret")
	assert.Error(t, err)
}

func TestGetUserID_Expired(t *testing.T) {
	token, err := BuildToken("42", "test", -time.Minute)
	require.NoError(t, err)

	_, err = GetUserID(token, "test")
	assert.Error(t, err)
}

func TestUserContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := NewContext(context.Background(), &User{ID: "42"})
	u, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "42", u.ID)
}
