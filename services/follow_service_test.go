package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/pulse/pkg"
)

func TestFollowToggle_NotifiesOnFollowOnly(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	ctx := context.Background()

	result, err := env.follows.Toggle(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, result.Following)

	count, err := env.notifications.CountUnread(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Takibi bırakmak sessizdir
	result, err = env.follows.Toggle(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, result.Following)

	count, err = env.notifications.CountUnread(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Yeniden takip yeni bildirim üretir
	result, err = env.follows.Toggle(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, result.Following)

	count, err = env.notifications.CountUnread(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestFollowToggle_SelfRejected(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	_, err := env.follows.Toggle(context.Background(), alice.ID, alice.ID)
	assert.ErrorIs(t, err, pkg.ErrBadRequest)
}

func TestFollowToggle_UnknownUser(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	_, err := env.follows.Toggle(context.Background(), alice.ID, "hayalet")
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}
