package api

import (
	"net/http"
	"time"

	respond "github.com/kayfabe/kayfabe-booker/internal/api/respond"
	"github.com/kayfabe/kayfabe-booker/internal/docstore"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	store docstore.Store
}

func NewHealthHandler(store docstore.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

// CheckHealth handles GET /api/health
// Always returns 200; body reports healthy/unhealthy.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	if err := h.store.HealthPing(r.Context()); err != nil {
		status = "unhealthy"
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
