package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ticketdraft/ticket-draft-backend/internal/draft"
	"github.com/ticketdraft/ticket-draft-backend/internal/hub"
	"github.com/ticketdraft/ticket-draft-backend/internal/ws"
)

func SetupRoutes(h *hub.Hub, store draft.Store, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Public routes
	r.Post("/rooms", CreateRoom(store, log))
	r.Post("/rooms/{code}/join", JoinRoom(store, log))
	r.Get("/rooms/{code}/export.csv", ExportCSV(store, log))
	r.Get("/rooms/{code}/export.xlsx", ExportXLSX(store, log))
	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(h))
	return r
}
