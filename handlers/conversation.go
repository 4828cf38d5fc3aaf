// Package handlers — Sohbet endpoint'leri.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/akinalp/pulse/models"
	"github.com/akinalp/pulse/pkg"
	"github.com/akinalp/pulse/services"
)

// ConversationHandler, sohbet endpoint'lerini yöneten struct.
type ConversationHandler struct {
	convService    services.ConversationService
	messageService services.MessageService
	readService    services.ReadStateService
}

// NewConversationHandler, constructor.
func NewConversationHandler(
	convService services.ConversationService,
	messageService services.MessageService,
	readService services.ReadStateService,
) *ConversationHandler {
	return &ConversationHandler{
		convService:    convService,
		messageService: messageService,
		readService:    readService,
	}
}

// List godoc
// GET /api/conversations
// Kullanıcının sohbetleri: karşı taraf, son mesaj, okunmamış sayısı.
func (h *ConversationHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	summaries, err := h.convService.List(r.Context(), user.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, summaries)
}

// Create godoc
// POST /api/conversations
// Body: { "user_id": "..." }
// Karşı tarafla sohbet başlatır; zaten varsa mevcut sohbeti döner.
func (h *ConversationHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.CreateConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	conv, err := h.convService.Start(r.Context(), user.ID, req.UserID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, conv)
}

// Delete godoc
// DELETE /api/conversations/{id}
func (h *ConversationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid conversation id")
		return
	}

	if err := h.convService.Delete(r.Context(), user.ID, id); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "conversation deleted"})
}

// GetMessages godoc
// GET /api/conversations/{id}/messages?limit=50&before=123
// Mesajlar eskiden yeniye döner; before ile geriye doğru sayfalanır.
func (h *ConversationHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid conversation id")
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	var before int64
	if v := r.URL.Query().Get("before"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed > 0 {
			before = parsed
		}
	}

	messages, err := h.messageService.List(r.Context(), user.ID, id, limit, before)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, messages)
}

// MarkRead godoc
// POST /api/conversations/{id}/read
// WebSocket mark_read ile aynı işi yapan HTTP karşılığı.
func (h *ConversationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid conversation id")
		return
	}

	if err := h.readService.MarkConversationRead(r.Context(), user.ID, id); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "marked read"})
}
