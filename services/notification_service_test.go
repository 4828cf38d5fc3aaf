package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/pulse/models"
	"github.com/akinalp/pulse/pkg"
	"github.com/akinalp/pulse/ws"
)

func TestNotification_SelfSuppressed(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	ctx := context.Background()

	n, err := env.notifications.CreateAndPush(ctx, alice.ID, alice.ID, models.NotificationLike, nil)
	require.NoError(t, err)
	assert.Nil(t, n, "self-notification must be a silent no-op")

	count, err := env.notifications.CountUnread(ctx, alice.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, env.hub.eventsFor(ws.UserRoom(alice.ID)))
}

func TestNotification_MissingPartySuppressed(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	ctx := context.Background()

	t.Run("empty recipient", func(t *testing.T) {
		n, err := env.notifications.CreateAndPush(ctx, "", alice.ID, models.NotificationLike, nil)
		require.NoError(t, err)
		assert.Nil(t, n, "missing recipient must be a silent no-op")
	})

	t.Run("empty actor", func(t *testing.T) {
		n, err := env.notifications.CreateAndPush(ctx, alice.ID, "", models.NotificationFollow, nil)
		require.NoError(t, err)
		assert.Nil(t, n, "missing actor must be a silent no-op")
	})

	count, err := env.notifications.CountUnread(ctx, alice.ID)
	require.NoError(t, err)
	assert.Zero(t, count, "nothing persisted")
	assert.Empty(t, env.hub.eventsFor(ws.UserRoom(alice.ID)))
}

func TestNotification_InvalidType(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	_, err := env.notifications.CreateAndPush(context.Background(), alice.ID, bob.ID, models.NotificationType("poke"), nil)
	assert.ErrorIs(t, err, pkg.ErrBadRequest)
}

func TestNotification_PersistsThenPushes(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	ctx := context.Background()

	n, err := env.notifications.CreateAndPush(ctx, alice.ID, bob.ID, models.NotificationLike,
		map[string]any{"postId": int64(7)})
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Positive(t, n.ID)
	require.NotNil(t, n.Actor)
	assert.Equal(t, "bob", n.Actor.Name)

	// Alıcının kullanıcı odasına push edildi
	ops := env.hub.opsFor(ws.UserRoom(alice.ID))
	assert.Equal(t, []string{ws.OpNotification}, ops)

	// DB'de okunmamış olarak duruyor
	count, err := env.notifications.CountUnread(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	list, err := env.notifications.List(ctx, alice.ID, 50)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.NotificationLike, list[0].Type)
	assert.False(t, list[0].IsRead)
}

func TestNotification_MarkReadOwnershipScoped(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	ctx := context.Background()

	n, err := env.notifications.CreateAndPush(ctx, alice.ID, bob.ID, models.NotificationFollow, nil)
	require.NoError(t, err)

	// Başkasının bildirimi işaretlenemez
	err = env.notifications.MarkRead(ctx, bob.ID, n.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	require.NoError(t, env.notifications.MarkRead(ctx, alice.ID, n.ID))

	count, err := env.notifications.CountUnread(ctx, alice.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNotification_MarkAllRead(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	ctx := context.Background()

	_, err := env.notifications.CreateAndPush(ctx, alice.ID, bob.ID, models.NotificationLike, nil)
	require.NoError(t, err)
	_, err = env.notifications.CreateAndPush(ctx, alice.ID, bob.ID, models.NotificationComment, nil)
	require.NoError(t, err)

	affected, err := env.notifications.MarkAllRead(ctx, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, affected)

	// İkinci çağrı hiçbir şey değiştirmez
	affected, err = env.notifications.MarkAllRead(ctx, alice.ID)
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestNotification_MarkReadBatch(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	cem := env.createUser(t, "cem")
	ctx := context.Background()

	n1, err := env.notifications.CreateAndPush(ctx, alice.ID, bob.ID, models.NotificationLike, nil)
	require.NoError(t, err)
	n2, err := env.notifications.CreateAndPush(ctx, alice.ID, bob.ID, models.NotificationComment, nil)
	require.NoError(t, err)
	other, err := env.notifications.CreateAndPush(ctx, cem.ID, bob.ID, models.NotificationFollow, nil)
	require.NoError(t, err)

	// Başkasının ID'si ve uydurma ID sessizce atlanır
	affected, err := env.notifications.MarkReadBatch(ctx, alice.ID, []int64{n1.ID, other.ID, 999})
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	// Aynı alt küme tekrar — n1 zaten okundu, yalnızca n2 değişir
	affected, err = env.notifications.MarkReadBatch(ctx, alice.ID, []int64{n1.ID, n2.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	// Boş liste no-op
	affected, err = env.notifications.MarkReadBatch(ctx, alice.ID, nil)
	require.NoError(t, err)
	assert.Zero(t, affected)

	// cem'in bildirimi dokunulmamıştır
	count, err := env.notifications.CountUnread(ctx, cem.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNotification_DeleteOwnershipScoped(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	ctx := context.Background()

	n, err := env.notifications.CreateAndPush(ctx, alice.ID, bob.ID, models.NotificationFollow, nil)
	require.NoError(t, err)

	err = env.notifications.Delete(ctx, bob.ID, n.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	require.NoError(t, env.notifications.Delete(ctx, alice.ID, n.ID))

	list, err := env.notifications.List(ctx, alice.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, list)
}
