// Package handlers — Takip endpoint'leri.
package handlers

import (
	"net/http"

	"github.com/akinalp/pulse/models"
	"github.com/akinalp/pulse/pkg"
	"github.com/akinalp/pulse/services"
)

// FollowHandler, takip endpoint'lerini yöneten struct.
type FollowHandler struct {
	followService services.FollowService
}

// NewFollowHandler, constructor.
func NewFollowHandler(followService services.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// Toggle godoc
// POST /api/users/{id}/follow
// Takip toggle'ı: takip etmiyorsa başlar, ediyorsa bırakır.
func (h *FollowHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	targetID := r.PathValue("id")
	if targetID == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid user id")
		return
	}

	result, err := h.followService.Toggle(r.Context(), user.ID, targetID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, result)
}
