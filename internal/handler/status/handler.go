package status

import (
	"html/template"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"chatroom/pkg/utils"
)

var greetingTmpl = template.Must(template.New("greeting").Parse(
	"<html><body><h1>Hello, {{.Name}}!</h1></body></html>\n"))

// Handler serves the plain request/response endpoints that share the process
// with the broker but none of its state.
type Handler struct{}

// New creates the status handler.
func New() *Handler {
	return &Handler{}
}

// RegisterRoutes mounts the health and greeting routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.handleHealth)
	r.Get("/greet/{name}", h.handleGreet)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleGreet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		name = "stranger"
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := greetingTmpl.Execute(w, struct{ Name string }{Name: name}); err != nil {
		log.Printf("[status] render greeting failed: %v", err)
	}
}
