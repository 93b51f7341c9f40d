package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kayfabe/kayfabe-booker/internal/config"
	"github.com/kayfabe/kayfabe-booker/internal/docstore/sqlite"
	"github.com/kayfabe/kayfabe-booker/internal/model"
	"github.com/kayfabe/kayfabe-booker/internal/narrative"
	"github.com/kayfabe/kayfabe-booker/internal/seed"
	"github.com/kayfabe/kayfabe-booker/internal/session"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "api-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	cfg := config.NewForTesting()
	cfg.EventChance = 0 // keep advance-day deterministic
	mgr := session.NewManager(store, narrative.Disabled{}, cfg, zerolog.Nop())
	srv := httptest.NewServer(NewRouter(store, mgr))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	decode(t, resp, &body)
	assert.Equal(t, "healthy", body["status"])
}

func TestSeedIsIdempotent(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, "POST", srv.URL+"/api/seed", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var first map[string]interface{}
	decode(t, resp, &first)
	assert.Equal(t, true, first["seeded"])
	assert.Equal(t, seed.DefaultDatasetID, first["datasetId"])

	resp = doJSON(t, "POST", srv.URL+"/api/seed", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var second map[string]interface{}
	decode(t, resp, &second)
	assert.Equal(t, false, second["seeded"])

	resp, err := http.Get(srv.URL + "/api/datasets")
	require.NoError(t, err)
	var datasets struct {
		Count int `json:"count"`
	}
	decode(t, resp, &datasets)
	assert.Equal(t, 1, datasets.Count)
}

func TestUnknownSaveIs404(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/api/users/u1/saves/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateSaveValidation(t *testing.T) {
	srv := newTestServer(t)
	resp := doJSON(t, "POST", srv.URL+"/api/users/u1/saves", map[string]string{"saveName": "no dataset"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRunShowRejectsInvalidCard(t *testing.T) {
	srv := newTestServer(t)
	resp := doJSON(t, "POST", srv.URL+"/api/seed", nil)
	resp.Body.Close()

	resp = doJSON(t, "POST", srv.URL+"/api/users/u1/saves", map[string]string{"datasetId": seed.DefaultDatasetID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var world model.WorldSnapshot
	decode(t, resp, &world)

	// Winner must be a participant.
	segments := []*model.Segment{{
		Type:         model.SegmentMatch,
		WinnerID:     "outsider",
		Participants: []model.Participant{{ID: world.Wrestlers[0].ID, Name: world.Wrestlers[0].Name}},
	}}
	url := fmt.Sprintf("%s/api/users/u1/saves/%s/shows/%s/run", srv.URL, world.Save.ID, world.Shows[0].ID)
	resp = doJSON(t, "POST", url, map[string]interface{}{"segments": segments})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// TestGameFlow walks the whole loop: seed, new game, book and run the
// January show, advance the calendar, and read the career ledger.
func TestGameFlow(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, "POST", srv.URL+"/api/seed", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// New game.
	resp = doJSON(t, "POST", srv.URL+"/api/users/u1/saves", map[string]string{
		"datasetId": seed.DefaultDatasetID,
		"saveName":  "API Test Run",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var world model.WorldSnapshot
	decode(t, resp, &world)

	require.NotEmpty(t, world.Save.ID)
	require.Len(t, world.Wrestlers, 10)
	require.Len(t, world.Shows, 12)
	require.NotEmpty(t, world.Save.PlayerCompanyID)
	assert.Equal(t, time.January, world.Save.CurrentDate.Month())
	assert.Equal(t, 7, world.Save.CurrentDate.Day())

	base := fmt.Sprintf("%s/api/users/u1/saves/%s", srv.URL, world.Save.ID)

	// The first show of the year falls on the start date.
	resp, err := http.Get(base)
	require.NoError(t, err)
	var dash struct {
		ShowToday *model.Show `json:"showToday"`
	}
	decode(t, resp, &dash)
	require.NotNil(t, dash.ShowToday)
	assert.Equal(t, "January Mayhem", dash.ShowToday.EventName)

	// Book a one-match card between two roster members.
	a, b := world.Wrestlers[0], world.Wrestlers[1]
	segments := []*model.Segment{
		{
			Type:     model.SegmentMatch,
			WinnerID: a.ID,
			Participants: []model.Participant{
				{ID: a.ID, Name: a.Name},
				{ID: b.ID, Name: b.Name},
			},
		},
	}
	resp = doJSON(t, "POST", base+"/shows/"+dash.ShowToday.ID+"/run", map[string]interface{}{"segments": segments})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var result struct {
		Show     *model.Show `json:"show"`
		Rating   int         `json:"rating"`
		Recap    string      `json:"recap"`
		Warnings []string    `json:"warnings"`
	}
	decode(t, resp, &result)
	assert.Equal(t, model.ShowComplete, result.Show.Status)
	assert.Greater(t, result.Rating, 0)
	// Narrative is disabled in tests; the recap falls back.
	assert.Equal(t, narrative.FallbackRecap, result.Recap)
	assert.NotEmpty(t, result.Warnings)

	// Re-running the same show conflicts.
	resp = doJSON(t, "POST", base+"/shows/"+dash.ShowToday.ID+"/run", map[string]interface{}{"segments": segments})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Career ledger has one entry for the winner.
	resp, err = http.Get(base + "/wrestlers/" + a.ID + "/career")
	require.NoError(t, err)
	var career struct {
		Events []*model.CareerEvent `json:"events"`
		Count  int                  `json:"count"`
	}
	decode(t, resp, &career)
	require.Equal(t, 1, career.Count)
	assert.Equal(t, model.CareerMatchWin, career.Events[0].EventType)

	// Advance the calendar one day.
	resp = doJSON(t, "POST", base+"/advance-day", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var advanced model.WorldSnapshot
	decode(t, resp, &advanced)
	assert.Equal(t, 8, advanced.Save.CurrentDate.Day())

	// Storyline creation and the assistant.
	resp = doJSON(t, "POST", base+"/storylines", map[string]interface{}{
		"name": "New Blood Rising",
		"participants": []model.Participant{
			{ID: a.ID, Name: a.Name},
			{ID: b.ID, Name: b.Name},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var story model.Storyline
	decode(t, resp, &story)
	assert.Equal(t, 10, story.Heat)
	assert.Equal(t, model.StorylineActive, story.Status)

	resp = doJSON(t, "POST", base+"/advice", map[string]string{"question": "Who should challenge for the title?"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var advice map[string]string
	decode(t, resp, &advice)
	assert.Equal(t, narrative.FallbackAdvice, advice["answer"])

	// Mark messages read is a no-op without messages.
	resp = doJSON(t, "POST", base+"/messages/read", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	// Exit, then reload from storage: the completed show survived.
	resp = doJSON(t, "POST", base+"/exit", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(base)
	require.NoError(t, err)
	var reloaded struct {
		World model.WorldSnapshot `json:"world"`
	}
	decode(t, resp, &reloaded)
	var january *model.Show
	for _, s := range reloaded.World.Shows {
		if s.EventName == "January Mayhem" {
			january = s
		}
	}
	require.NotNil(t, january)
	assert.Equal(t, model.ShowComplete, january.Status)
	assert.Equal(t, result.Rating, january.Rating)
}
