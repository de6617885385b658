package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	roomHandler "chatroom/internal/handler/room"
	"chatroom/internal/handler/status"
	middlewarePkg "chatroom/internal/middleware"
	roomservice "chatroom/internal/service/room"
)

// RouterConfig carries the transport knobs the router needs.
type RouterConfig struct {
	SendBuffer    int
	AllowedOrigin string
}

// NewRouter wires HTTP routes to the broker.
func NewRouter(svc *roomservice.Service, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(cfg.AllowedOrigin))

	hub := roomHandler.NewHub(svc)
	wsHandler := roomHandler.NewWebSocketHandler(hub, cfg.SendBuffer, cfg.AllowedOrigin)
	wsHandler.RegisterRoutes(r)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		status.New().RegisterRoutes(api)
		roomHandler.New(svc).RegisterRoutes(api)
	})

	return r
}
