package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	respond "github.com/kayfabe/kayfabe-booker/internal/api/respond"
	"github.com/kayfabe/kayfabe-booker/internal/booking"
	"github.com/kayfabe/kayfabe-booker/internal/model"
	"github.com/kayfabe/kayfabe-booker/internal/session"
)

// SessionHandler serves the in-game surface of one loaded save.
type SessionHandler struct {
	registry *sessionRegistry
}

func NewSessionHandler(registry *sessionRegistry) *SessionHandler {
	return &SessionHandler{registry: registry}
}

func (h *SessionHandler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	vars := mux.Vars(r)
	sess, err := h.registry.get(r.Context(), vars["userId"], vars["saveId"])
	if err != nil {
		writeDomainError(w, err)
		return nil, false
	}
	return sess, true
}

// GetSnapshot GET /api/users/{userId}/saves/{saveId}
func (h *SessionHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	snapshot := sess.Snapshot()
	// Surface the show-day flag so the caller can route to booking.
	var showToday *model.Show
	if s := sess.ShowToday(); s != nil {
		showToday = s
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"world":     snapshot,
		"showToday": showToday,
	})
}

// AdvanceDay POST /api/users/{userId}/saves/{saveId}/advance-day
func (h *SessionHandler) AdvanceDay(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := sess.AdvanceDay(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, sess.Snapshot())
}

// RunShow POST /api/users/{userId}/saves/{saveId}/shows/{showId}/run
func (h *SessionHandler) RunShow(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req struct {
		Segments []*model.Segment `json:"segments"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	// Re-run the posted card through the booking rules; a client cannot
	// smuggle in a slot the booking screen would have rejected.
	card := booking.NewCard(len(req.Segments))
	for i, seg := range req.Segments {
		if seg == nil {
			continue
		}
		if err := card.Commit(i, booking.SegmentForm{
			Type:         seg.Type,
			Participants: seg.Participants,
			WinnerID:     seg.WinnerID,
			StorylineID:  seg.StorylineID,
		}); err != nil {
			writeDomainError(w, err)
			return
		}
	}
	out, err := sess.RunShow(r.Context(), mux.Vars(r)["showId"], card.Segments())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	var warnings []string
	for _, e := range []error{out.LedgerErr, out.SimErr, out.NarrativeErr} {
		if e != nil {
			warnings = append(warnings, e.Error())
		}
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"show":     out.Show,
		"rating":   out.Rating,
		"recap":    out.Recap,
		"warnings": warnings,
	})
}

// CreateStoryline POST /api/users/{userId}/saves/{saveId}/storylines
func (h *SessionHandler) CreateStoryline(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req struct {
		Name         string              `json:"name"`
		Participants []model.Participant `json:"participants"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	story, err := sess.CreateStoryline(r.Context(), req.Name, req.Participants)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, story)
}

// MarkMessagesRead POST /api/users/{userId}/saves/{saveId}/messages/read
func (h *SessionHandler) MarkMessagesRead(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := sess.MarkMessagesRead(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Advice POST /api/users/{userId}/saves/{saveId}/advice
func (h *SessionHandler) Advice(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	answer, err := sess.Advice(r.Context(), req.Question)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

// CareerHistory GET /api/users/{userId}/saves/{saveId}/wrestlers/{wrestlerId}/career
func (h *SessionHandler) CareerHistory(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	events := sess.CareerHistory(mux.Vars(r)["wrestlerId"])
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"events": events, "count": len(events)})
}

// ExitSession POST /api/users/{userId}/saves/{saveId}/exit
func (h *SessionHandler) ExitSession(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	h.registry.drop(vars["userId"], vars["saveId"])
	w.WriteHeader(http.StatusNoContent)
}
