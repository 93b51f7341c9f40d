package api

import (
	"github.com/gorilla/mux"

	"github.com/kayfabe/kayfabe-booker/internal/api/recovery"
	"github.com/kayfabe/kayfabe-booker/internal/docstore"
	"github.com/kayfabe/kayfabe-booker/internal/session"
)

// NewRouter creates the HTTP router with all API routes.
func NewRouter(store docstore.Store, mgr *session.Manager) *mux.Router {
	router := mux.NewRouter()

	// Global middlewares
	router.Use(recovery.Middleware)

	registry := newSessionRegistry(mgr)
	gameHandler := NewGameHandler(store, mgr, registry)
	sessionHandler := NewSessionHandler(registry)
	healthHandler := NewHealthHandler(store)

	// Health endpoint
	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")

	// Template data
	router.HandleFunc("/api/seed", gameHandler.SeedDefaultDataset).Methods("POST")
	router.HandleFunc("/api/datasets", gameHandler.ListDatasets).Methods("GET")

	// Save management
	router.HandleFunc("/api/users/{userId}/saves", gameHandler.ListSaves).Methods("GET")
	router.HandleFunc("/api/users/{userId}/saves", gameHandler.CreateSave).Methods("POST")
	router.HandleFunc("/api/users/{userId}/saves/{saveId}", sessionHandler.GetSnapshot).Methods("GET")

	// In-game commands
	router.HandleFunc("/api/users/{userId}/saves/{saveId}/advance-day", sessionHandler.AdvanceDay).Methods("POST")
	router.HandleFunc("/api/users/{userId}/saves/{saveId}/shows/{showId}/run", sessionHandler.RunShow).Methods("POST")
	router.HandleFunc("/api/users/{userId}/saves/{saveId}/storylines", sessionHandler.CreateStoryline).Methods("POST")
	router.HandleFunc("/api/users/{userId}/saves/{saveId}/messages/read", sessionHandler.MarkMessagesRead).Methods("POST")
	router.HandleFunc("/api/users/{userId}/saves/{saveId}/advice", sessionHandler.Advice).Methods("POST")
	router.HandleFunc("/api/users/{userId}/saves/{saveId}/wrestlers/{wrestlerId}/career", sessionHandler.CareerHistory).Methods("GET")
	router.HandleFunc("/api/users/{userId}/saves/{saveId}/exit", sessionHandler.ExitSession).Methods("POST")

	return router
}
