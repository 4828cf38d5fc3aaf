// Package handlers — Mesaj endpoint'leri.
//
// Mesaj gönderme ve silmenin birincil yolu WebSocket'tir; bu endpoint'ler
// aynı service metodlarını çağıran HTTP karşılıklarıdır — mobil client'lar
// ve testler soket kurmadan kullanabilir.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/akinalp/pulse/models"
	"github.com/akinalp/pulse/pkg"
	"github.com/akinalp/pulse/services"
)

// MessageHandler, mesaj endpoint'lerini yöneten struct.
type MessageHandler struct {
	messageService services.MessageService
}

// NewMessageHandler, constructor.
func NewMessageHandler(messageService services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// Send godoc
// POST /api/messages
// Body: { "conversationId": 1, "content": "...", "imageUrl": ..., "videoUrl": ... }
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := h.messageService.Send(r.Context(), user.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, msg)
}

// Delete godoc
// DELETE /api/messages/{id}
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid message id")
		return
	}

	if err := h.messageService.Delete(r.Context(), user.ID, id); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "message deleted"})
}
