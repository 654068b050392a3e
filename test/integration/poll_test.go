package integration

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelmess/polls/internal/core/domain"
)

// TestPollLifecycle exercises the full flow: create -> vote -> re-vote ->
// aggregated view -> delete with cascade.
func TestPollLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	adminToken := mintToken(t, uuid.New(), "admin")
	userA := uuid.New()
	userB := uuid.New()
	tokenA := mintToken(t, userA, "visitor")
	tokenB := mintToken(t, userB, "visitor")

	// Create
	resp := app.doJSON(t, http.MethodPost, "/api/polls", adminToken, map[string]any{
		"title":       "Sunday dinner special",
		"description": "One choice each",
		"options":     []string{"Tea", "Coffee"},
		"end_date":    time.Now().AddDate(0, 0, 7).Format("2006-01-02"),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created domain.Poll
	decodeBody(t, resp, &created)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, []string{"Tea", "Coffee"}, created.Options)

	pollPath := "/api/polls/" + created.ID.String()

	// Two users vote
	resp = app.doJSON(t, http.MethodPost, pollPath+"/votes", tokenA, map[string]any{
		"selected_options": []string{"Tea"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = app.doJSON(t, http.MethodPost, pollPath+"/votes", tokenB, map[string]any{
		"selected_options": []string{"Coffee"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view domain.PollView
	decodeBody(t, resp, &view)
	assert.Equal(t, int64(2), view.TotalBallots)
	assert.Equal(t, int64(1), view.OptionCounts["Tea"])
	assert.Equal(t, int64(1), view.OptionCounts["Coffee"])
	assert.InDelta(t, 50.0, view.Percentages["Tea"], 0.0001)

	// User A re-votes; ballot is replaced, not appended
	resp = app.doJSON(t, http.MethodPost, pollPath+"/votes", tokenA, map[string]any{
		"selected_options": []string{"Coffee"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &view)
	assert.Equal(t, int64(2), view.TotalBallots)
	assert.Equal(t, int64(0), view.OptionCounts["Tea"])
	assert.Equal(t, int64(2), view.OptionCounts["Coffee"])

	// Anonymous view works, without viewer fields
	resp = app.doJSON(t, http.MethodGet, pollPath, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &view)
	assert.False(t, view.ViewerHasVoted)
	assert.Equal(t, int64(2), view.TotalBallots)

	// Viewer-specific fields for user A
	resp = app.doJSON(t, http.MethodGet, pollPath, tokenA, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &view)
	assert.True(t, view.ViewerHasVoted)
	assert.Equal(t, []string{"Coffee"}, view.ViewerSelections)

	// Delete cascades
	resp = app.doJSON(t, http.MethodDelete, pollPath, adminToken, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	var ballotCount int
	require.NoError(t, app.DB.QueryRow(
		"SELECT COUNT(*) FROM poll_responses WHERE poll_id = $1", created.ID,
	).Scan(&ballotCount))
	assert.Zero(t, ballotCount)

	resp = app.doJSON(t, http.MethodGet, pollPath, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestPollAuthorization(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	visitorToken := mintToken(t, uuid.New(), "visitor")
	payload := map[string]any{
		"title":       "Visitor poll",
		"description": "Should not get through",
		"options":     []string{"Tea", "Coffee"},
		"end_date":    time.Now().AddDate(0, 0, 7).Format("2006-01-02"),
	}

	// Visitors cannot create polls
	resp := app.doJSON(t, http.MethodPost, "/api/polls", visitorToken, payload)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Anonymous callers cannot create polls either
	resp = app.doJSON(t, http.MethodPost, "/api/polls", "", payload)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Garbage credentials are rejected outright
	resp = app.doJSON(t, http.MethodGet, "/api/polls/active", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestEndedPollRemainsViewable(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	pollID := uuid.New()
	voter := uuid.New()
	_, err := app.DB.Exec(`
		INSERT INTO polls (id, title, description, options, end_date, created_by)
		VALUES ($1, 'Last week''s menu', '', $2, $3, $4)`,
		pollID, pq.Array([]string{"Tea", "Coffee"}), time.Now().AddDate(0, 0, -1), uuid.New(),
	)
	require.NoError(t, err)
	_, err = app.DB.Exec(`
		INSERT INTO poll_responses (id, poll_id, user_id, selected_options)
		VALUES ($1, $2, $3, $4)`,
		uuid.New(), pollID, voter, pq.Array([]string{"Tea"}),
	)
	require.NoError(t, err)

	// Late votes are rejected
	token := mintToken(t, uuid.New(), "visitor")
	resp := app.doJSON(t, http.MethodPost, "/api/polls/"+pollID.String()+"/votes", token, map[string]any{
		"selected_options": []string{"Coffee"},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Existing tallies stay readable
	resp = app.doJSON(t, http.MethodGet, "/api/polls/"+pollID.String(), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var view domain.PollView
	decodeBody(t, resp, &view)
	assert.Equal(t, domain.PollEnded, view.Status)
	assert.Equal(t, int64(1), view.TotalBallots)
	assert.Equal(t, int64(1), view.OptionCounts["Tea"])

	// And the poll shows up in the ended listing only
	resp = app.doJSON(t, http.MethodGet, "/api/polls/ended", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var endedViews []domain.PollView
	decodeBody(t, resp, &endedViews)
	require.Len(t, endedViews, 1)
	assert.Equal(t, pollID, endedViews[0].Poll.ID)

	resp = app.doJSON(t, http.MethodGet, "/api/polls/active", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var activeViews []domain.PollView
	decodeBody(t, resp, &activeViews)
	assert.Empty(t, activeViews)
}

func TestSummaryEndpoint(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	adminToken := mintToken(t, uuid.New(), "admin")

	resp := app.doJSON(t, http.MethodPost, "/api/polls", adminToken, map[string]any{
		"title":       "Breakfast poll",
		"description": "What should Sunday breakfast be?",
		"options":     []string{"Idli", "Poha"},
		"end_date":    time.Now().AddDate(0, 0, 3).Format("2006-01-02"),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created domain.Poll
	decodeBody(t, resp, &created)

	for i := 0; i < 3; i++ {
		token := mintToken(t, uuid.New(), "visitor")
		resp = app.doJSON(t, http.MethodPost, "/api/polls/"+created.ID.String()+"/votes", token, map[string]any{
			"selected_options": []string{"Idli"},
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	// Summary is admin only
	resp = app.doJSON(t, http.MethodGet, "/api/summary", mintToken(t, uuid.New(), "visitor"), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = app.doJSON(t, http.MethodGet, "/api/summary", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var summary domain.Summary
	decodeBody(t, resp, &summary)
	assert.Equal(t, 1, summary.TotalPolls)
	assert.Equal(t, 1, summary.ActivePolls)
	assert.Equal(t, int64(3), summary.TotalBallots)
}
