package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"buddylist/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.users.Register(ctx, "  Alice@Example.com ", "alice", "password123")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "password123", user.PasswordHash)

	snap, err := env.presence.CurrentStatus(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOffline, snap.StatusType)
	assert.NotNil(t, snap.LastUpdated, "registration publishes an initial status")

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name                      string
			email, username, password string
			wantErr                   error
		}{
			{"bad email", "not-an-email", "bob", "password123", ErrInvalidEmail},
			{"short username", "bob@example.com", "bo", "password123", ErrInvalidUsername},
			{"username with spaces", "bob@example.com", "bob smith", "password123", ErrInvalidUsername},
			{"long username", "bob@example.com", strings.Repeat("b", 101), "password123", ErrInvalidUsername},
			{"short password", "bob@example.com", "bob", "1234567", ErrPasswordTooShort},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := env.users.Register(ctx, tt.email, tt.username, tt.password)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, KindValidation, KindOf(err))
			})
		}
	})

	t.Run("conflicts", func(t *testing.T) {
		_, err := env.users.Register(ctx, "alice@example.com", "alice_2", "password123")
		assert.ErrorIs(t, err, ErrEmailTaken)
		assert.Equal(t, KindConflict, KindOf(err))

		_, err = env.users.Register(ctx, "other@example.com", "alice", "password123")
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	registered, err := env.users.Register(ctx, "alice@example.com", "alice", "password123")
	require.NoError(t, err)

	user, err := env.users.Login(ctx, "ALICE@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = env.users.Login(ctx, "alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.users.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, KindUnauthenticated, KindOf(err))
}

func TestProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.users.Register(ctx, "alice@example.com", "alice", "password123")
	require.NoError(t, err)
	_, err = env.presence.UpdateStatus(ctx, user.ID, models.StatusOnline, "here")
	require.NoError(t, err)

	profile, err := env.users.Profile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, "alice@example.com", profile.Email)
	assert.Equal(t, models.StatusOnline, profile.Status.StatusType)
	assert.Equal(t, "here", profile.Status.StatusText)

	_, err = env.users.Profile(ctx, 9999)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestSearch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	me := env.user(t, "searcher")
	env.user(t, "search_target")
	for i := 0; i < MaxSearchResults+5; i++ {
		env.user(t, fmt.Sprintf("many%02d", i))
	}

	_, err := env.users.Search(ctx, " a ", me.ID)
	assert.ErrorIs(t, err, ErrQueryTooShort)

	got, err := env.users.Search(ctx, "SEARCH", me.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "search_target", got[0].Username)

	capped, err := env.users.Search(ctx, "many", me.ID)
	require.NoError(t, err)
	assert.Len(t, capped, MaxSearchResults)
}
