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

func TestPostCreate_Validation(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	ctx := context.Background()

	post, err := env.postsSvc.Create(ctx, alice.ID, "  Go'da kanallar  ", "kanal aslında bir kuyruk")
	require.NoError(t, err)
	assert.Positive(t, post.ID)
	assert.Equal(t, "Go'da kanallar", post.Title)
	assert.Equal(t, "goda-kanallar", post.Slug)

	// Aynı başlık aynı slug'a çıkar — ikinci post reddedilir
	_, err = env.postsSvc.Create(ctx, alice.ID, "Go'da Kanallar", "başka gövde")
	assert.ErrorIs(t, err, pkg.ErrAlreadyExists)

	_, err = env.postsSvc.Create(ctx, alice.ID, "   ", "gövde var başlık yok")
	assert.ErrorIs(t, err, pkg.ErrBadRequest)

	_, err = env.postsSvc.Create(ctx, alice.ID, "başlık var gövde yok", "")
	assert.ErrorIs(t, err, pkg.ErrBadRequest)
}

func TestToggleLike_NotifiesOnlyOnLike(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	ctx := context.Background()

	post, err := env.postsSvc.Create(ctx, alice.ID, "başlık", "gövde")
	require.NoError(t, err)

	// Beğeni: sayaç artar, yazara bildirim düşer
	result, err := env.postsSvc.ToggleLike(ctx, bob.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, 1, result.LikeCount)

	count, err := env.notifications.CountUnread(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Bildirim meta'sında post id ve slug taşınır
	notis, err := env.notifications.List(ctx, alice.ID, 10)
	require.NoError(t, err)
	require.Len(t, notis, 1)
	assert.Equal(t, "başlık", notis[0].Meta["slug"])
	assert.EqualValues(t, post.ID, notis[0].Meta["postId"])

	// Geri çekme: sayaç düşer, yeni bildirim YOK
	result, err = env.postsSvc.ToggleLike(ctx, bob.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Zero(t, result.LikeCount)

	count, err = env.notifications.CountUnread(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Post odası her iki yönde de canlı sayaç alır
	assert.Equal(t,
		[]string{ws.OpPostLikeUpdated, ws.OpPostLikeUpdated},
		env.hub.opsFor(ws.PostRoom(post.ID)))
}

func TestToggleLike_SelfLikeSilent(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	ctx := context.Background()

	post, err := env.postsSvc.Create(ctx, alice.ID, "başlık", "gövde")
	require.NoError(t, err)

	result, err := env.postsSvc.ToggleLike(ctx, alice.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, result.Liked)

	// Sayaç eventi yayılır ama bildirim oluşmaz
	assert.Len(t, env.hub.eventsFor(ws.PostRoom(post.ID)), 1)
	count, err := env.notifications.CountUnread(ctx, alice.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestToggleLike_UnknownPost(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	_, err := env.postsSvc.ToggleLike(context.Background(), alice.ID, 999)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestAddComment_NotifiesAuthor(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	ctx := context.Background()

	post, err := env.postsSvc.Create(ctx, alice.ID, "başlık", "gövde")
	require.NoError(t, err)

	comment, err := env.postsSvc.AddComment(ctx, bob.ID, post.ID,
		&models.CreateCommentRequest{Content: "katılıyorum"})
	require.NoError(t, err)
	assert.Positive(t, comment.ID)
	require.NotNil(t, comment.Author)
	assert.Equal(t, "bob", comment.Author.Name)

	// Yazar bildirim alır, post odası canlı güncelleme görür
	assert.Equal(t, []string{ws.OpNotification}, env.hub.opsFor(ws.UserRoom(alice.ID)))
	assert.Equal(t, []string{ws.OpPostCommentCreated}, env.hub.opsFor(ws.PostRoom(post.ID)))

	list, err := env.postsSvc.ListComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "katılıyorum", list[0].Content)
}

func TestAddComment_EmptyRejected(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	ctx := context.Background()

	post, err := env.postsSvc.Create(ctx, alice.ID, "başlık", "gövde")
	require.NoError(t, err)

	_, err = env.postsSvc.AddComment(ctx, alice.ID, post.ID,
		&models.CreateCommentRequest{Content: "   "})
	assert.ErrorIs(t, err, pkg.ErrBadRequest)
}

func TestPostList_NewestFirst(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	ctx := context.Background()

	for _, title := range []string{"bir", "iki", "üç"} {
		_, err := env.postsSvc.Create(ctx, alice.ID, title, "gövde")
		require.NoError(t, err)
	}

	list, err := env.postsSvc.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "üç", list[0].Title)
	assert.Equal(t, "iki", list[1].Title)
}
