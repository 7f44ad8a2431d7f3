package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tartampluch/go-keepintouch/internal/calendar"
	"github.com/tartampluch/go-keepintouch/internal/config"
	"github.com/tartampluch/go-keepintouch/internal/engine"
	"github.com/tartampluch/go-keepintouch/internal/model"
	"github.com/tartampluch/go-keepintouch/internal/server"
	"github.com/tartampluch/go-keepintouch/internal/store"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// testNow is a Saturday; the exact date only matters relative to the
// birthdays and contact timestamps the tests construct around it.
var testNow = time.Date(2024, time.June, 1, 15, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*server.Server, *store.DB) {
	t.Helper()
	db, err := store.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	srv := server.New(db, engine.New(), &calendar.Builder{}, fixedClock{now: testNow})
	return srv, db
}

func doJSON(t *testing.T, srv *server.Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeItems(t *testing.T, rec *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var resp struct {
		Items []map[string]any `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Items
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, true, resp["db"])
}

func TestCreateFriend(t *testing.T) {
	srv, db := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/friends", map[string]any{
		"name":     "Alice",
		"birthday": "1990-06-01",
		"tier":     "top",
		"starred":  true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.Friend
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, model.TierTop, created.Tier)
	assert.Equal(t, 14, created.ContactFrequencyDays, "default frequency applied when omitted")

	stored, err := db.GetFriend(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", stored.Name)
}

func TestCreateFriend_Rejected(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"unknown tier", map[string]any{"name": "X", "tier": "bestie"}},
		{"bad birthday", map[string]any{"name": "X", "birthday": "June 1st"}},
		{"empty name", map[string]any{"tier": "top"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodPost, "/api/friends", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestListFriends_StatusBadge(t *testing.T) {
	srv, db := newTestServer(t)

	overdue := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	f := &model.Friend{Name: "Bob", Tier: model.TierClose, ContactFrequencyDays: 7, LastContactedAt: &overdue}
	require.NoError(t, db.CreateFriend(context.Background(), f))

	rec := doJSON(t, srv, http.MethodGet, "/api/friends", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Friends []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"friends"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Friends, 1)
	assert.Equal(t, "overdue", resp.Friends[0].Status)
}

func TestListFriends_BadTierFilter(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/friends?tier=bff", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTimeline_BirthdayToday(t *testing.T) {
	srv, db := newTestServer(t)

	f := &model.Friend{
		Name:     "Carol",
		Tier:     model.TierClose,
		Birthday: &model.Birthday{Year: 1985, Month: time.June, Day: 1, YearKnown: true},
	}
	require.NoError(t, db.CreateFriend(context.Background(), f))

	rec := doJSON(t, srv, http.MethodGet, "/api/timeline", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	items := decodeItems(t, rec)
	require.NotEmpty(t, items)
	assert.Equal(t, string(model.KindBirthdayToday), items[0]["kind"])
	assert.Equal(t, "Carol", items[0]["friend_name"])
	_, exposed := items[0]["priority"]
	assert.False(t, exposed, "priority is an internal sort key, not API surface")
}

func TestBacklog_NeverContactedMarshals(t *testing.T) {
	srv, db := newTestServer(t)
	ctx := context.Background()

	// With reminders off nobody is urgent on the timeline, so both friends
	// land in the backlog. Dan was never contacted: infinite overdue ratio
	// internally; the response must still be valid JSON with him ranked first.
	require.NoError(t, db.SetSetting(ctx, config.SettingCheckInReminders, config.SettingValueFalse))
	require.NoError(t, db.CreateFriend(ctx, &model.Friend{Name: "Dan", Tier: model.TierTop}))

	contacted := testNow.AddDate(0, 0, -30)
	require.NoError(t, db.CreateFriend(ctx, &model.Friend{
		Name: "Erin", Tier: model.TierTop, LastContactedAt: &contacted,
	}))

	rec := doJSON(t, srv, http.MethodGet, "/api/backlog", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	items := decodeItems(t, rec)
	require.Len(t, items, 2)
	assert.Equal(t, "Dan", items[0]["friend_name"])
	assert.Equal(t, "Erin", items[1]["friend_name"])
}

func TestLogInteraction(t *testing.T) {
	srv, db := newTestServer(t)

	f := &model.Friend{Name: "Faye", Tier: model.TierCordialities}
	require.NoError(t, db.CreateFriend(context.Background(), f))

	rec := doJSON(t, srv, http.MethodPost, "/api/friends/"+f.ID+"/interactions", map[string]any{
		"note": "coffee",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var in model.Interaction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &in))
	assert.Equal(t, f.ID, in.FriendID)
	assert.True(t, in.OccurredAt.Equal(testNow), "clock time stamps the interaction when none is given")

	stored, err := db.GetFriend(context.Background(), f.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastContactedAt)
}

func TestLogInteraction_UnknownFriend(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/friends/nope/interactions", map[string]any{})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCalendar_ETagRoundTrip(t *testing.T) {
	srv, db := newTestServer(t)

	require.NoError(t, db.CreateFriend(context.Background(), &model.Friend{
		Name:     "Gus",
		Tier:     model.TierClose,
		Birthday: &model.Birthday{Year: 1970, Month: time.December, Day: 24, YearKnown: true},
	}))

	rec := doJSON(t, srv, http.MethodGet, "/calendar.ics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/calendar")
	assert.Contains(t, rec.Body.String(), "BEGIN:VCALENDAR")

	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, "/calendar.ics", nil)
	req.Header.Set("If-None-Match", etag)
	rec2 := httptest.NewRecorder()
	srv.ServeHTTP(rec2, req)
	assert.Equal(t, http.StatusNotModified, rec2.Code)
	assert.Empty(t, rec2.Body.String())
}

func TestCalendar_HeadOmitsBody(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodHead, "/calendar.ics", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("ETag"))
	assert.Empty(t, rec.Body.String())
}
