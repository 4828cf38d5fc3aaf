package services

// Test altyapısı: service testleri gerçek SQLite (geçici dosya) üzerinde
// koşar — migration'lar dahil tüm repository zinciri devrededir.
// WebSocket tarafı kayıt tutan bir fake EventPublisher ile izlenir.

import (
	"context"
	"io/fs"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akinalp/pulse/database"
	"github.com/akinalp/pulse/models"
	"github.com/akinalp/pulse/repository"
	"github.com/akinalp/pulse/ws"
)

// fakeHub, yayılan event'leri kaydeden EventPublisher.
type fakeHub struct {
	mu     sync.Mutex
	events []emittedEvent
}

type emittedEvent struct {
	Room  string
	Event ws.Event
}

func (f *fakeHub) EmitToRoom(room string, event ws.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, emittedEvent{Room: room, Event: event})
}

func (f *fakeHub) EmitToUser(userID string, event ws.Event) {
	f.EmitToRoom(ws.UserRoom(userID), event)
}

func (f *fakeHub) IsOnline(userID string) bool { return true }

func (f *fakeHub) GetOnlineUserIDs() []string { return nil }

// eventsFor, verilen odaya yayılmış event'leri döner.
func (f *fakeHub) eventsFor(room string) []ws.Event {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []ws.Event
	for _, e := range f.events {
		if e.Room == room {
			out = append(out, e.Event)
		}
	}
	return out
}

// opsFor, verilen odaya yayılmış op isimlerini döner.
func (f *fakeHub) opsFor(room string) []string {
	var ops []string
	for _, e := range f.eventsFor(room) {
		ops = append(ops, e.Op)
	}
	return ops
}

// testEnv, bir testin tüm katman zincirini tutar.
type testEnv struct {
	db    *database.DB
	hub   *fakeHub
	users repository.UserRepository
	convs repository.ConversationRepository
	msgs  repository.MessageRepository
	notis repository.NotificationRepository
	posts repository.PostRepository
	flws  repository.FollowRepository

	notifications NotificationService
	messages      MessageService
	readState     ReadStateService
	conversations ConversationService
	postsSvc      PostService
	follows       FollowService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	migrationsFS, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	require.NoError(t, err)

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), migrationsFS)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	hub := &fakeHub{}

	env := &testEnv{
		db:    db,
		hub:   hub,
		users: repository.NewSQLiteUserRepo(db.Conn),
		convs: repository.NewSQLiteConversationRepo(db.Conn),
		msgs:  repository.NewSQLiteMessageRepo(db.Conn),
		notis: repository.NewSQLiteNotificationRepo(db.Conn),
		posts: repository.NewSQLitePostRepo(db.Conn),
		flws:  repository.NewSQLiteFollowRepo(db.Conn),
	}

	env.notifications = NewNotificationService(env.notis, env.users, hub, nil)
	env.messages = NewMessageService(db.Conn, env.msgs, env.convs, env.users, env.notifications, hub, nil)
	env.readState = NewReadStateService(env.convs, env.msgs, env.notis, hub)
	env.conversations = NewConversationService(env.convs, env.users)
	env.postsSvc = NewPostService(env.posts, env.users, env.notifications, hub)
	env.follows = NewFollowService(env.flws, env.users, env.notifications)

	return env
}

// createUser, testler için kullanıcı oluşturur. Email isimden türetilir.
func (env *testEnv) createUser(t *testing.T, name string) *models.User {
	t.Helper()

	user := &models.User{
		Email:        name + "@test.local",
		Name:         name,
		PasswordHash: "x",
	}
	require.NoError(t, env.users.Create(context.Background(), user))
	return user
}

func strPtr(s string) *string { return &s }
