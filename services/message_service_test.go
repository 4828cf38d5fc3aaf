package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/pulse/models"
	"github.com/akinalp/pulse/pkg"
	"github.com/akinalp/pulse/pkg/ratelimit"
	"github.com/akinalp/pulse/ws"
)

func TestSend_PersistsBroadcastsNotifies(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	ctx := context.Background()

	conv, err := env.conversations.Start(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	msg, err := env.messages.Send(ctx, alice.ID, &models.SendMessageRequest{
		ConversationID: conv.ID,
		Content:        strPtr("merhaba"),
	})
	require.NoError(t, err)
	assert.Positive(t, msg.ID)
	require.NotNil(t, msg.Sender)
	assert.Equal(t, "alice", msg.Sender.Name)

	// Sohbet odasına new_message yayıldı
	assert.Equal(t, []string{ws.OpNewMessage}, env.hub.opsFor(ws.ConversationRoom(conv.ID)))

	// Karşı tarafa bildirim push edildi
	assert.Equal(t, []string{ws.OpNotification}, env.hub.opsFor(ws.UserRoom(bob.ID)))

	count, err := env.notifications.CountUnread(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Mesaj DB'de
	list, err := env.messages.List(ctx, bob.ID, conv.ID, 50, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].IsRead)
}

func TestSend_EmptyRejected(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	ctx := context.Background()

	conv, err := env.conversations.Start(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = env.messages.Send(ctx, alice.ID, &models.SendMessageRequest{
		ConversationID: conv.ID,
		Content:        strPtr("   "),
	})
	assert.ErrorIs(t, err, pkg.ErrBadRequest)

	// Hiçbir şey yayılmadı
	assert.Empty(t, env.hub.eventsFor(ws.ConversationRoom(conv.ID)))
}

func TestSend_NonParticipantForbidden(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	mallory := env.createUser(t, "mallory")
	ctx := context.Background()

	conv, err := env.conversations.Start(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = env.messages.Send(ctx, mallory.ID, &models.SendMessageRequest{
		ConversationID: conv.ID,
		Content:        strPtr("sızma denemesi"),
	})
	assert.ErrorIs(t, err, pkg.ErrForbidden)
}

func TestSend_ConversationNotFound(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	_, err := env.messages.Send(context.Background(), alice.ID, &models.SendMessageRequest{
		ConversationID: 999,
		Content:        strPtr("kime?"),
	})
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestDelete_OnlySenderCanDelete(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	ctx := context.Background()

	conv, err := env.conversations.Start(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	msg, err := env.messages.Send(ctx, alice.ID, &models.SendMessageRequest{
		ConversationID: conv.ID,
		Content:        strPtr("silinecek"),
	})
	require.NoError(t, err)

	// Alıcı silemez
	err = env.messages.Delete(ctx, bob.ID, msg.ID)
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	// Gönderen silebilir
	require.NoError(t, env.messages.Delete(ctx, alice.ID, msg.ID))

	ops := env.hub.opsFor(ws.ConversationRoom(conv.ID))
	assert.Equal(t, []string{ws.OpNewMessage, ws.OpMessageDeleted}, ops)

	list, err := env.messages.List(ctx, alice.ID, conv.ID, 50, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestList_OldestFirst(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	ctx := context.Background()

	conv, err := env.conversations.Start(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	for _, text := range []string{"bir", "iki", "üç"} {
		_, err := env.messages.Send(ctx, alice.ID, &models.SendMessageRequest{
			ConversationID: conv.ID,
			Content:        strPtr(text),
		})
		require.NoError(t, err)
	}

	list, err := env.messages.List(ctx, bob.ID, conv.ID, 50, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "bir", *list[0].Content)
	assert.Equal(t, "üç", *list[2].Content)
	assert.Less(t, list[0].ID, list[1].ID)
	assert.Less(t, list[1].ID, list[2].ID)
}

func TestList_BeforeCursor(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	ctx := context.Background()

	conv, err := env.conversations.Start(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	var ids []int64
	for _, text := range []string{"bir", "iki", "üç"} {
		msg, err := env.messages.Send(ctx, alice.ID, &models.SendMessageRequest{
			ConversationID: conv.ID,
			Content:        strPtr(text),
		})
		require.NoError(t, err)
		ids = append(ids, msg.ID)
	}

	// Son mesajdan geriye: sadece ilk ikisi döner
	list, err := env.messages.List(ctx, bob.ID, conv.ID, 50, ids[2])
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, ids[0], list[0].ID)
	assert.Equal(t, ids[1], list[1].ID)
}

func TestSend_RateLimited(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	ctx := context.Background()

	conv, err := env.conversations.Start(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	limiter := ratelimit.NewMessageRateLimiter(2, time.Minute, time.Minute)
	limited := NewMessageService(env.db.Conn, env.msgs, env.convs, env.users, env.notifications, env.hub, limiter)

	for i := 0; i < 2; i++ {
		_, err := limited.Send(ctx, alice.ID, &models.SendMessageRequest{
			ConversationID: conv.ID,
			Content:        strPtr("flood"),
		})
		require.NoError(t, err)
	}

	_, err = limited.Send(ctx, alice.ID, &models.SendMessageRequest{
		ConversationID: conv.ID,
		Content:        strPtr("flood"),
	})
	assert.ErrorIs(t, err, pkg.ErrBadRequest)
	assert.Contains(t, err.Error(), "too fast")
}
