package room

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	roomservice "chatroom/internal/service/room"
	"chatroom/pkg/utils"
)

// Handler exposes the room's read-only state over plain HTTP.
type Handler struct {
	svc *roomservice.Service
}

// New creates the room REST handler.
func New(svc *roomservice.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the room query routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/room/status", h.handleStatus)
	r.Get("/room/history", h.handleHistory)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]int{
		"connectedUsers": h.svc.ConnectedUserCount(),
	})
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.svc.HistorySnapshot())
}
