package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parlo/internal/activity/models"
	activityservice "parlo/internal/activity/service"
	activitystore "parlo/internal/activity/store"
	librarymodels "parlo/internal/library/models"
	librarystore "parlo/internal/library/store"
	"parlo/internal/platform/middleware"
	"parlo/internal/token"
	"parlo/pkg/testutil"
)

const testUserID int64 = 12

type fixture struct {
	router  chi.Router
	library *librarystore.MemoryStore
	svc     *activityservice.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := slog.New(slog.DiscardHandler)
	library := librarystore.NewMemory()
	events := activitystore.NewMemory(library)
	svc := activityservice.New(events, log)

	tokens := token.NewManager("test-signing-key", "parlo-test")
	auth := middleware.RequireUser(tokens, true, log)

	router := chi.NewRouter()
	New(svc, log, auth).Register(router)
	return &fixture{router: router, library: library, svc: svc}
}

// asUser marks the request as authenticated via the trusted header path.
func asUser(req *http.Request, userID int64) *http.Request {
	req.Header.Set("X-User-ID", strconv.FormatInt(userID, 10))
	return req
}

func (f *fixture) seedSentence(t *testing.T) int64 {
	t.Helper()
	sentence, err := f.library.CreateSentence(t.Context(), librarymodels.Sentence{
		UserID: testUserID,
		Text:   "hola mundo",
	})
	require.NoError(t, err)
	return sentence.ID
}

func TestAuthenticationRequired(t *testing.T) {
	f := newFixture(t)
	paths := []string{
		"/api/practice/calendar",
		"/api/practice/daily-counts",
		"/api/practice/history",
		"/api/practice/status",
	}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, path))
			testutil.AssertStatus(t, rr, http.StatusUnauthorized)
		})
	}

	rr := testutil.DoRequest(f.router, testutil.NewJSONRequest(t, http.MethodPost, "/api/practice/log",
		models.LogEventsRequest{SentenceIDs: []int64{1}}))
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
}

func TestBearerTokenAuth(t *testing.T) {
	f := newFixture(t)
	tokens := token.NewManager("test-signing-key", "parlo-test")
	access, err := tokens.Generate(testUserID, time.Hour)
	require.NoError(t, err)

	req := testutil.NewRequest(t, http.MethodGet, "/api/practice/daily-counts")
	req.Header.Set("Authorization", "Bearer "+access)
	rr := testutil.DoRequest(f.router, req)
	testutil.AssertStatus(t, rr, http.StatusOK)

	req = testutil.NewRequest(t, http.MethodGet, "/api/practice/daily-counts")
	req.Header.Set("Authorization", "Bearer not-a-token")
	rr = testutil.DoRequest(f.router, req)
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
}

func TestLogEventsEndpoint(t *testing.T) {
	f := newFixture(t)
	sentenceID := f.seedSentence(t)

	t.Run("empty list logs nothing", func(t *testing.T) {
		req := asUser(testutil.NewJSONRequest(t, http.MethodPost, "/api/practice/log",
			models.LogEventsRequest{SentenceIDs: []int64{}}), testUserID)
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[models.LogEventsResponse](t, rr)
		assert.Equal(t, 0, resp.Logged)
	})

	t.Run("batch insert reports the count", func(t *testing.T) {
		req := asUser(testutil.NewJSONRequest(t, http.MethodPost, "/api/practice/log",
			models.LogEventsRequest{SentenceIDs: []int64{sentenceID, sentenceID}}), testUserID)
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[models.LogEventsResponse](t, rr)
		assert.Equal(t, 2, resp.Logged)
	})

	t.Run("malformed body is rejected", func(t *testing.T) {
		req := asUser(testutil.NewRequest(t, http.MethodPost, "/api/practice/log"), testUserID)
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
		testutil.AssertErrorCode(t, rr, "bad_request")
	})
}

func TestCalendarEndpoint(t *testing.T) {
	f := newFixture(t)
	sentenceID := f.seedSentence(t)
	practicedAt := time.Date(2024, time.March, 31, 23, 30, 0, 0, time.UTC)
	req := asUser(testutil.NewJSONRequest(t, http.MethodPost, "/api/practice/log",
		models.LogEventsRequest{SentenceIDs: []int64{sentenceID}}), testUserID)
	testutil.AssertStatus(t, testutil.DoRequest(f.router, testutil.WithTime(req, practicedAt)), http.StatusOK)

	get := func(query string) *models.CalendarResponse {
		req := asUser(testutil.NewRequest(t, http.MethodGet, "/api/practice/calendar"+query), testUserID)
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusOK)
		return testutil.UnmarshalResponse[models.CalendarResponse](t, rr)
	}

	t.Run("offset moves the event across months", func(t *testing.T) {
		assert.Empty(t, get("?year=2024&month=3&utcOffset=60").Dates)
		assert.Equal(t, []string{"2024-04-01"}, get("?year=2024&month=4&utcOffset=60").Dates)
	})

	t.Run("out-of-range offset falls back to UTC", func(t *testing.T) {
		assert.Equal(t, []string{"2024-03-31"}, get("?year=2024&month=3&utcOffset=99999").Dates)
	})

	t.Run("non-numeric offset falls back to UTC", func(t *testing.T) {
		assert.Equal(t, []string{"2024-03-31"}, get("?year=2024&month=3&utcOffset=CET").Dates)
	})

	t.Run("bad year and month fall back to current", func(t *testing.T) {
		req := asUser(testutil.NewRequest(t, http.MethodGet,
			"/api/practice/calendar?year=banana&month=99"), testUserID)
		rr := testutil.DoRequest(f.router, testutil.WithTime(req,
			time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)))
		testutil.AssertStatus(t, rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[models.CalendarResponse](t, rr)
		assert.Equal(t, []string{"2024-03-31"}, resp.Dates)
	})
}

func TestDailyCountsEndpoint(t *testing.T) {
	f := newFixture(t)
	now := time.Date(2024, time.June, 21, 15, 0, 0, 0, time.UTC)

	req := asUser(testutil.NewRequest(t, http.MethodGet, "/api/practice/daily-counts"), testUserID)
	rr := testutil.DoRequest(f.router, testutil.WithTime(req, now))
	testutil.AssertStatus(t, rr, http.StatusOK)

	resp := testutil.UnmarshalResponse[models.DailyCountsResponse](t, rr)
	require.Len(t, resp.Data, 21)
	assert.Equal(t, "2024-06-01", resp.Data[0].Date)
	assert.Equal(t, "2024-06-21", resp.Data[20].Date)
}

func TestHistoryEndpoint(t *testing.T) {
	f := newFixture(t)
	sentenceID := f.seedSentence(t)
	now := time.Date(2024, time.August, 20, 18, 0, 0, 0, time.UTC)

	log := asUser(testutil.NewJSONRequest(t, http.MethodPost, "/api/practice/log",
		models.LogEventsRequest{SentenceIDs: []int64{sentenceID}}), testUserID)
	testutil.AssertStatus(t, testutil.DoRequest(f.router, testutil.WithTime(log, now.Add(-time.Hour))), http.StatusOK)

	t.Run("current day", func(t *testing.T) {
		req := asUser(testutil.NewRequest(t, http.MethodGet, "/api/practice/history"), testUserID)
		rr := testutil.DoRequest(f.router, testutil.WithTime(req, now))
		testutil.AssertStatus(t, rr, http.StatusOK)
		page := testutil.UnmarshalResponse[models.HistoryPage](t, rr)
		assert.Equal(t, "2024-08-20", page.Date)
		assert.Len(t, page.Records, 1)
		assert.Equal(t, "medium", page.Records[0].Difficulty)
		assert.Equal(t, "#3b82f6", page.Records[0].CategoryColor)
		assert.False(t, page.HasMore)
	})

	t.Run("malformed page degrades to page zero", func(t *testing.T) {
		req := asUser(testutil.NewRequest(t, http.MethodGet, "/api/practice/history?page=oops"), testUserID)
		rr := testutil.DoRequest(f.router, testutil.WithTime(req, now))
		testutil.AssertStatus(t, rr, http.StatusOK)
		page := testutil.UnmarshalResponse[models.HistoryPage](t, rr)
		assert.Equal(t, "2024-08-20", page.Date)
	})

	t.Run("negative page degrades to page zero", func(t *testing.T) {
		req := asUser(testutil.NewRequest(t, http.MethodGet, "/api/practice/history?page=-3"), testUserID)
		rr := testutil.DoRequest(f.router, testutil.WithTime(req, now))
		testutil.AssertStatus(t, rr, http.StatusOK)
		page := testutil.UnmarshalResponse[models.HistoryPage](t, rr)
		assert.Equal(t, "2024-08-20", page.Date)
	})
}

func TestStatusEndpoint(t *testing.T) {
	f := newFixture(t)
	now := time.Date(2024, time.September, 5, 14, 0, 0, 0, time.UTC)

	req := asUser(testutil.NewRequest(t, http.MethodGet, "/api/practice/status"), testUserID)
	rr := testutil.DoRequest(f.router, testutil.WithTime(req, now))
	testutil.AssertStatus(t, rr, http.StatusOK)
	status := testutil.UnmarshalResponse[models.StatusResponse](t, rr)
	assert.Nil(t, status.LastPracticedAt)
	assert.Equal(t, 0, status.TodayCount)
}
