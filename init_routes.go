// Package main — HTTP route registration.
//
// initRoutes, tüm API endpoint'lerini mux'a bağlar.
// auth helper'ı JWT doğrulaması yapan middleware chain'idir.
package main

import (
	"net/http"

	"github.com/akinalp/pulse/middleware"
	"github.com/akinalp/pulse/repository"
	"github.com/akinalp/pulse/services"
)

// initRoutes, middleware chain'i kurar ve tüm endpoint'leri mux'a bağlar.
//
// Route sıralama kuralı: literal path'ler parametrik path'lerden ÖNCE
// tanımlanmalı. Örnek: "/api/notifications/read-all" →
// "/api/notifications/{id}/read" öncesinde, yoksa router "read-all"
// kelimesini bir id olarak yorumlar.
func initRoutes(
	mux *http.ServeMux,
	h *Handlers,
	authService services.AuthService,
	userRepo repository.UserRepository,
) {
	authMw := middleware.NewAuthMiddleware(authService, userRepo)

	auth := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(http.HandlerFunc(handler))
	}

	// Auth
	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/auth/refresh", h.Auth.Refresh)
	mux.Handle("POST /api/auth/logout", auth(h.Auth.Logout))
	mux.HandleFunc("POST /api/auth/forgot-password", h.Auth.ForgotPassword)
	mux.HandleFunc("POST /api/auth/reset-password", h.Auth.ResetPassword)

	// User
	mux.Handle("GET /api/users/me", auth(h.Auth.Me))
	mux.Handle("POST /api/users/me/password", auth(h.Auth.ChangePassword))

	// Follow
	mux.Handle("POST /api/users/{id}/follow", auth(h.Follow.Toggle))

	// Conversations
	mux.Handle("GET /api/conversations", auth(h.Conversation.List))
	mux.Handle("POST /api/conversations", auth(h.Conversation.Create))
	mux.Handle("DELETE /api/conversations/{id}", auth(h.Conversation.Delete))
	mux.Handle("GET /api/conversations/{id}/messages", auth(h.Conversation.GetMessages))
	mux.Handle("POST /api/conversations/{id}/read", auth(h.Conversation.MarkRead))

	// Messages
	mux.Handle("POST /api/messages", auth(h.Message.Send))
	mux.Handle("DELETE /api/messages/{id}", auth(h.Message.Delete))

	// Notifications
	mux.Handle("GET /api/notifications", auth(h.Notification.List))
	mux.Handle("PATCH /api/notifications", auth(h.Notification.MarkReadBatch))
	mux.Handle("GET /api/notifications/unread-count", auth(h.Notification.UnreadCount))
	mux.Handle("PATCH /api/notifications/read-all", auth(h.Notification.MarkAllRead))
	mux.Handle("PATCH /api/notifications/{id}/read", auth(h.Notification.MarkRead))
	mux.Handle("DELETE /api/notifications/{id}", auth(h.Notification.Delete))

	// Posts
	mux.Handle("GET /api/posts", auth(h.Post.List))
	mux.Handle("POST /api/posts", auth(h.Post.Create))
	mux.Handle("GET /api/posts/{id}", auth(h.Post.Get))
	mux.Handle("POST /api/posts/{id}/like", auth(h.Post.ToggleLike))
	mux.Handle("GET /api/posts/{id}/comments", auth(h.Post.ListComments))
	mux.Handle("POST /api/posts/{id}/comments", auth(h.Post.AddComment))

	// WebSocket
	mux.HandleFunc("GET /ws", h.WS.HandleConnection)
}
