package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	respond "github.com/kayfabe/kayfabe-booker/internal/api/respond"
	"github.com/kayfabe/kayfabe-booker/internal/docstore"
	"github.com/kayfabe/kayfabe-booker/internal/model"
	"github.com/kayfabe/kayfabe-booker/internal/seed"
	"github.com/kayfabe/kayfabe-booker/internal/session"
)

// GameHandler serves the pre-session surface: seeding, datasets, and the
// save list.
type GameHandler struct {
	store    docstore.Store
	mgr      *session.Manager
	registry *sessionRegistry
}

func NewGameHandler(store docstore.Store, mgr *session.Manager, registry *sessionRegistry) *GameHandler {
	return &GameHandler{store: store, mgr: mgr, registry: registry}
}

// writeDomainError maps sentinel domain errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		respond.WriteNotFound(w, err.Error())
	case errors.Is(err, model.ErrValidation):
		respond.WriteBadRequest(w, err.Error())
	case errors.Is(err, model.ErrConflict):
		respond.WriteConflict(w, err.Error())
	default:
		respond.WriteInternalError(w, err.Error())
	}
}

// SeedDefaultDataset POST /api/seed
func (h *GameHandler) SeedDefaultDataset(w http.ResponseWriter, r *http.Request) {
	seeded, err := seed.EnsureDefaultDataset(r.Context(), h.store)
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"datasetId": seed.DefaultDatasetID,
		"seeded":    seeded,
	})
}

// ListDatasets GET /api/datasets
func (h *GameHandler) ListDatasets(w http.ResponseWriter, r *http.Request) {
	datasets, err := h.mgr.ListDatasets(r.Context())
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"datasets": datasets, "count": len(datasets)})
}

// ListSaves GET /api/users/{userId}/saves
func (h *GameHandler) ListSaves(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	saves, err := h.mgr.ListSaves(r.Context(), userID)
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"saves": saves, "count": len(saves)})
}

// CreateSave POST /api/users/{userId}/saves
// Instantiates a world from a dataset, enters it, and returns the snapshot.
func (h *GameHandler) CreateSave(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	var req struct {
		DatasetID string `json:"datasetId"`
		SaveName  string `json:"saveName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if req.DatasetID == "" {
		respond.WriteBadRequest(w, "datasetId is required")
		return
	}
	sess, err := h.mgr.CreateAndEnter(r.Context(), userID, req.DatasetID, req.SaveName)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	world := sess.Snapshot()
	h.registry.put(userID, world.Save.ID, sess)
	respond.WriteJSON(w, http.StatusCreated, world)
}
