package narrative

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kayfabe/kayfabe-booker/internal/model"
)

func TestGenerateReturnsFirstCandidate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "models/test-model:generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "k" {
			t.Errorf("missing api key, query = %s", r.URL.RawQuery)
		}
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.SystemInstruction == nil || len(req.Contents) != 1 {
			t.Errorf("malformed request: %+v", req)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{"parts": []map[string]string{{"text": "a scathing recap"}}}},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-model", "k")
	got, err := c.Generate(context.Background(), "persona", "prompt")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got != "a scathing recap" {
		t.Fatalf("got %q", got)
	}
}

func TestGenerateServerErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-model", "k")
	if _, err := c.Generate(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error from 429 response")
	}
}

func TestGenerateEmptyCandidatesIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-model", "k")
	if _, err := c.Generate(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error for empty candidates")
	}
}

func TestDisabledAlwaysFails(t *testing.T) {
	if _, err := (Disabled{}).Generate(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error from disabled generator")
	}
}

func TestRecapPromptsDescribeCard(t *testing.T) {
	show := &model.Show{EventName: "Final Conflict"}
	segs := []*model.Segment{
		nil,
		{
			Type:        model.SegmentMatch,
			StorylineID: "feud",
			WinnerID:    "a",
			Rating:      88,
			Participants: []model.Participant{
				{ID: "a", Name: "Ace"}, {ID: "b", Name: "Jax"},
			},
		},
		{
			Type:         model.SegmentAngle,
			Rating:       70,
			Participants: []model.Participant{{ID: "c", Name: "Mia"}},
		},
	}
	_, user := RecapPrompts(show, segs, 85, func(id string) string {
		if id == "feud" {
			return "Blood Rivals"
		}
		return ""
	})

	for _, want := range []string{
		"Final Conflict",
		"85/100",
		"1. Match (Storyline: Blood Rivals): Ace vs. Jax (Winner: Ace)",
		"2. Angle: Mia",
	} {
		if !strings.Contains(user, want) {
			t.Fatalf("prompt missing %q:\n%s", want, user)
		}
	}
}

func TestWrestlerMessagePromptsCarryPersona(t *testing.T) {
	w := &model.Wrestler{Name: "Goliath", Gimmick: "Monster", Disposition: "Heel"}
	system, user := WrestlerMessagePrompts(w, TopicUnhappyBooking)
	if !strings.Contains(system, "Goliath") || !strings.Contains(system, "Monster") {
		t.Fatalf("persona missing from system prompt:\n%s", system)
	}
	if !strings.Contains(user, "frustrated") {
		t.Fatalf("unexpected user prompt for unhappy topic:\n%s", user)
	}
	// Unknown topics fall back to the time-off request.
	_, user = WrestlerMessagePrompts(w, "unknown")
	if !strings.Contains(user, "time off") {
		t.Fatalf("unknown topic prompt:\n%s", user)
	}
}
