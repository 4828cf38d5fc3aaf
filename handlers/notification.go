// Package handlers — Bildirim endpoint'leri.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/akinalp/pulse/models"
	"github.com/akinalp/pulse/pkg"
	"github.com/akinalp/pulse/services"
)

// NotificationHandler, bildirim endpoint'lerini yöneten struct.
type NotificationHandler struct {
	notificationService services.NotificationService
}

// NewNotificationHandler, constructor.
func NewNotificationHandler(notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List godoc
// GET /api/notifications?limit=50
// Bildirimler yeniden eskiye sıralı döner, actor özeti gömülü.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	notifications, err := h.notificationService.List(r.Context(), user.ID, limit)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, notifications)
}

// UnreadCount godoc
// GET /api/notifications/unread-count
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	count, err := h.notificationService.CountUnread(r.Context(), user.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]int{"count": count})
}

// MarkRead godoc
// PATCH /api/notifications/{id}/read
// Sadece sahibi işaretleyebilir; başkasının bildirimi 404 döner.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	if err := h.notificationService.MarkRead(r.Context(), user.ID, id); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "notification marked read"})
}

// Delete godoc
// DELETE /api/notifications/{id}
// Sadece sahibi silebilir; başkasının bildirimi 404 döner.
func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	if err := h.notificationService.Delete(r.Context(), user.ID, id); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "notification deleted"})
}

// MarkReadBatch godoc
// PATCH /api/notifications
// Body: {"ids": [1, 2, 3]} — verilen alt kümeyi okundu işaretler.
// ids boşsa tüm bildirimler işaretlenir.
func (h *NotificationHandler) MarkReadBatch(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req struct {
		IDs []int64 `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var (
		affected int64
		err      error
	)
	if len(req.IDs) == 0 {
		affected, err = h.notificationService.MarkAllRead(r.Context(), user.ID)
	} else {
		affected, err = h.notificationService.MarkReadBatch(r.Context(), user.ID, req.IDs)
	}
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]int64{"updated": affected})
}

// MarkAllRead godoc
// PATCH /api/notifications/read-all
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	affected, err := h.notificationService.MarkAllRead(r.Context(), user.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]int64{"updated": affected})
}
