package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"parlo/internal/library/models"
	libraryservice "parlo/internal/library/service"
	librarystore "parlo/internal/library/store"
	"parlo/internal/platform/middleware"
	"parlo/internal/token"
	"parlo/pkg/testutil"
)

const testUserID int64 = 12

func newRouter(t *testing.T) chi.Router {
	t.Helper()
	log := slog.New(slog.DiscardHandler)
	svc := libraryservice.New(librarystore.NewMemory())

	tokens := token.NewManager("test-signing-key", "parlo-test")
	auth := middleware.RequireUser(tokens, true, log)

	router := chi.NewRouter()
	New(svc, log, auth).Register(router)
	return router
}

func asUser(req *http.Request, userID int64) *http.Request {
	req.Header.Set("X-User-ID", strconv.FormatInt(userID, 10))
	return req
}

func TestCreateAndListSentences(t *testing.T) {
	router := newRouter(t)

	rr := testutil.DoRequest(router, asUser(testutil.NewJSONRequest(t, http.MethodPost, "/api/sentences",
		models.CreateSentenceRequest{Text: "  buenos días  ", Translation: "good morning"}), testUserID))
	testutil.AssertStatus(t, rr, http.StatusCreated)

	created := testutil.UnmarshalResponse[models.Sentence](t, rr)
	assert.Equal(t, "buenos días", created.Text, "text is trimmed")
	assert.NotZero(t, created.ID)

	rr = testutil.DoRequest(router, asUser(testutil.NewRequest(t, http.MethodGet, "/api/sentences"), testUserID))
	testutil.AssertStatus(t, rr, http.StatusOK)
	listed := testutil.UnmarshalResponse[[]models.Sentence](t, rr)
	assert.Len(t, *listed, 1)

	// Other users see an empty list, not a missing body.
	rr = testutil.DoRequest(router, asUser(testutil.NewRequest(t, http.MethodGet, "/api/sentences"), testUserID+1))
	testutil.AssertStatus(t, rr, http.StatusOK)
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestCreateSentenceValidation(t *testing.T) {
	router := newRouter(t)

	rr := testutil.DoRequest(router, asUser(testutil.NewJSONRequest(t, http.MethodPost, "/api/sentences",
		models.CreateSentenceRequest{Text: "   "}), testUserID))
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
	testutil.AssertErrorCode(t, rr, "bad_request")

	rr = testutil.DoRequest(router, asUser(testutil.NewRequest(t, http.MethodPost, "/api/sentences"), testUserID))
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}

func TestCreateCategory(t *testing.T) {
	router := newRouter(t)

	color := "#112233"
	rr := testutil.DoRequest(router, asUser(testutil.NewJSONRequest(t, http.MethodPost, "/api/categories",
		models.CreateCategoryRequest{Name: "Travel", Color: &color}), testUserID))
	testutil.AssertStatus(t, rr, http.StatusCreated)

	created := testutil.UnmarshalResponse[models.Category](t, rr)
	assert.Equal(t, "Travel", created.Name)

	rr = testutil.DoRequest(router, asUser(testutil.NewJSONRequest(t, http.MethodPost, "/api/categories",
		models.CreateCategoryRequest{}), testUserID))
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}

func TestLibraryRequiresAuth(t *testing.T) {
	router := newRouter(t)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/sentences"))
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
}
