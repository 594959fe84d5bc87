package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"parlo/internal/activity/localdate"
	"parlo/internal/activity/models"
	"parlo/internal/transport/http/shared"
	dErrors "parlo/pkg/domain-errors"
	"parlo/pkg/requestcontext"
)

// Service defines the interface for practice-activity operations.
type Service interface {
	LogEvents(ctx context.Context, userID int64, sentenceIDs []int64) (int, error)
	Calendar(ctx context.Context, userID int64, year int, month time.Month, offsetMinutes int) ([]string, error)
	DailyCounts(ctx context.Context, userID int64, offsetMinutes int) ([]models.DayCount, error)
	HistoryPage(ctx context.Context, userID int64, page int) (*models.HistoryPage, error)
	Status(ctx context.Context, userID int64, offsetMinutes int) (*models.StatusResponse, error)
}

// Handler handles the practice-activity endpoints.
type Handler struct {
	logger   *slog.Logger
	activity Service
	auth     func(http.Handler) http.Handler
}

// New creates a new activity Handler. auth is the middleware that resolves
// the authenticated user id into the request context.
func New(activity Service, logger *slog.Logger, auth func(http.Handler) http.Handler) *Handler {
	return &Handler{logger: logger, activity: activity, auth: auth}
}

// Register mounts the activity routes on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api/practice", func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/log", h.handleLog)
		r.Get("/calendar", h.handleCalendar)
		r.Get("/daily-counts", h.handleDailyCounts)
		r.Get("/history", h.handleHistory)
		r.Get("/status", h.handleStatus)
	})
}

func (h *Handler) handleLog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := requestcontext.UserID(ctx)
	if userID == 0 {
		shared.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	var req models.LogEventsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid log events request",
			"error", err.Error(),
			"request_id", requestcontext.RequestID(ctx),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	logged, err := h.activity.LogEvents(ctx, userID, req.SentenceIDs)
	if err != nil {
		h.serveError(w, r, "failed to log events", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, models.LogEventsResponse{Logged: logged})
}

func (h *Handler) handleCalendar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := requestcontext.UserID(ctx)
	if userID == 0 {
		shared.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	offset := localdate.NormalizeOffset(r.URL.Query().Get("utcOffset"))
	curYear, curMonth, _ := localdate.Today(requestcontext.Now(ctx), offset)
	year := intParam(r, "year", curYear)
	month := intParam(r, "month", int(curMonth))
	if month < 1 || month > 12 {
		month = int(curMonth)
	}

	dates, err := h.activity.Calendar(ctx, userID, year, time.Month(month), offset)
	if err != nil {
		h.serveError(w, r, "failed to load calendar", err)
		return
	}
	if dates == nil {
		dates = []string{}
	}
	shared.WriteJSON(w, http.StatusOK, models.CalendarResponse{Dates: dates})
}

func (h *Handler) handleDailyCounts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := requestcontext.UserID(ctx)
	if userID == 0 {
		shared.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	offset := localdate.NormalizeOffset(r.URL.Query().Get("utcOffset"))
	data, err := h.activity.DailyCounts(ctx, userID, offset)
	if err != nil {
		h.serveError(w, r, "failed to load daily counts", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, models.DailyCountsResponse{Data: data})
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := requestcontext.UserID(ctx)
	if userID == 0 {
		shared.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	// Malformed or negative pages degrade to page 0, consistent with the
	// leniency policy for all view-shaping parameters.
	page := intParam(r, "page", 0)
	if page < 0 {
		page = 0
	}

	pageData, err := h.activity.HistoryPage(ctx, userID, page)
	if err != nil {
		h.serveError(w, r, "failed to load history page", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, pageData)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := requestcontext.UserID(ctx)
	if userID == 0 {
		shared.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	offset := localdate.NormalizeOffset(r.URL.Query().Get("utcOffset"))
	status, err := h.activity.Status(ctx, userID, offset)
	if err != nil {
		h.serveError(w, r, "failed to load status", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, status)
}

func (h *Handler) serveError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.ErrorContext(r.Context(), msg,
		"error", err.Error(),
		"request_id", requestcontext.RequestID(r.Context()),
	)
	shared.WriteError(w, err)
}

// intParam parses an integer query parameter, falling back to def when the
// parameter is absent or malformed. View-shaping parameters never reject.
func intParam(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
