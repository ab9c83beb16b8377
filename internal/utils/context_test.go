package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-session-auth/models"
)

func TestContextKeyString(t *testing.T) {
	assert.Equal(t, "testKey", contextKey("testKey").String())
	assert.Equal(t, "currentUser", CurrentUserCtxKey.String())
}

func TestCurrentUserFromContext(t *testing.T) {
	user := models.User{ID: "u1", Email: "bob@hbtn.io"}

	got, ok := CurrentUserFromContext(WithCurrentUser(context.Background(), user))

	assert.True(t, ok)
	assert.Equal(t, user, got)
}

func TestCurrentUserFromContext_Missing(t *testing.T) {
	got, ok := CurrentUserFromContext(context.Background())

	assert.False(t, ok)
	assert.Empty(t, got.ID)
}

func TestCurrentUserFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), CurrentUserCtxKey, "not a user")

	_, ok := CurrentUserFromContext(ctx)
	assert.False(t, ok)
}

func TestCurrentUserFromContext_PlainStringKeyDoesNotCollide(t *testing.T) {
	//nolint:staticcheck
	ctx := context.WithValue(context.Background(), "currentUser", models.User{ID: "u1"})

	_, ok := CurrentUserFromContext(ctx)
	assert.False(t, ok)
}
