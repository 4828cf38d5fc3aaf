// Package main — Handler katmanı başlatma.
//
// initHandlers, tüm HTTP handler'larını oluşturur.
// Her handler, ihtiyaç duyduğu service interface'lerini constructor'dan alır.
// Handler'lar "thin" dir — sadece HTTP parse + service call + response write.
package main

import (
	"github.com/akinalp/pulse/handlers"
	"github.com/akinalp/pulse/ws"
)

// Handlers, tüm handler instance'larını tutan container struct.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Conversation *handlers.ConversationHandler
	Message      *handlers.MessageHandler
	Notification *handlers.NotificationHandler
	Post         *handlers.PostHandler
	Follow       *handlers.FollowHandler
	WS           *ws.Handler
}

// initHandlers, tüm handler'ları service ve rate limiter dependency'leri ile oluşturur.
func initHandlers(svcs *Services, limiters *RateLimiters, hub *ws.Hub) *Handlers {
	return &Handlers{
		Auth:         handlers.NewAuthHandler(svcs.Auth, limiters.Login),
		Conversation: handlers.NewConversationHandler(svcs.Conversation, svcs.Message, svcs.ReadState),
		Message:      handlers.NewMessageHandler(svcs.Message),
		Notification: handlers.NewNotificationHandler(svcs.Notification),
		Post:         handlers.NewPostHandler(svcs.Post),
		Follow:       handlers.NewFollowHandler(svcs.Follow),
		WS:           ws.NewHandler(hub, svcs.Auth),
	}
}
