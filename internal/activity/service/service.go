// Package service implements the practice-activity views: month calendar,
// rolling daily counts, and the day-bucket history pager.
//
// The calendar and daily-count views bucket by the client's UTC offset; the
// history pager buckets by UTC calendar day. The asymmetry is intentional and
// load-bearing for existing clients. Do not unify the two without a
// coordinated client change.
package service

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"parlo/internal/activity/localdate"
	"parlo/internal/activity/metrics"
	"parlo/internal/activity/models"
	dErrors "parlo/pkg/domain-errors"
	"parlo/pkg/requestcontext"
)

// dailyWindowDays is the size of the trailing daily-counts window, today
// inclusive.
const dailyWindowDays = 21

// EventStore is the persistence port for practice events. Grouping and
// filtering by local day are derived at read time from the stored UTC
// instants; nothing offset-dependent is ever written.
type EventStore interface {
	InsertBatch(ctx context.Context, userID int64, sentenceIDs []int64) (int, error)
	DistinctLocalDays(ctx context.Context, userID int64, start, end time.Time, offsetMinutes int) ([]string, error)
	CountsByLocalDay(ctx context.Context, userID int64, start time.Time, offsetMinutes int) (map[string]int, error)
	EventsInRange(ctx context.Context, userID int64, start, end time.Time) ([]models.HistoryRecord, error)
	HasEventsBefore(ctx context.Context, userID int64, t time.Time) (bool, error)
}

// RecencyStore tracks the per-user last-practiced marker.
type RecencyStore interface {
	Touch(ctx context.Context, userID int64, at time.Time) error
	LastPracticedAt(ctx context.Context, userID int64) (*time.Time, error)
}

// Service orchestrates the activity views over the event store.
type Service struct {
	events  EventStore
	recency RecencyStore
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures optional service collaborators.
type Option func(*Service)

// WithRecency attaches a recency store; without it the status view reports
// no last-practiced marker.
func WithRecency(recency RecencyStore) Option {
	return func(s *Service) { s.recency = recency }
}

// WithMetrics attaches domain metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New creates an activity service.
func New(events EventStore, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{events: events, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LogEvents inserts one practice event per sentence id as a single atomic
// batch. An empty list succeeds trivially with 0. The recency marker update
// is best-effort: a failed Touch never fails the insert.
func (s *Service) LogEvents(ctx context.Context, userID int64, sentenceIDs []int64) (int, error) {
	logged, err := s.events.InsertBatch(ctx, userID, sentenceIDs)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to log practice events")
	}
	if logged > 0 {
		s.metrics.RecordEventsLogged(logged)
		if s.recency != nil {
			if err := s.recency.Touch(ctx, userID, requestcontext.Now(ctx)); err != nil {
				s.logger.WarnContext(ctx, "failed to update recency marker",
					"error", err.Error(),
					"request_id", requestcontext.RequestID(ctx),
				)
			}
		}
	}
	return logged, nil
}

// Calendar returns the distinct local dates in the given local month on which
// the user practiced. The month range is [local midnight of the 1st, local
// midnight of the next month's 1st); month+1 normalizes across year ends.
func (s *Service) Calendar(ctx context.Context, userID int64, year int, month time.Month, offsetMinutes int) ([]string, error) {
	defer s.observe("calendar", time.Now())

	start := localdate.LocalMidnightUTC(year, month, 1, offsetMinutes)
	end := localdate.LocalMidnightUTC(year, month+1, 1, offsetMinutes)

	days, err := s.events.DistinctLocalDays(ctx, userID, start, end, offsetMinutes)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load calendar")
	}
	return days, nil
}

// DailyCounts returns exactly dailyWindowDays entries, oldest first, one per
// local day ending at local today, zero-filled so callers never see gaps.
func (s *Service) DailyCounts(ctx context.Context, userID int64, offsetMinutes int) ([]models.DayCount, error) {
	defer s.observe("daily_counts", time.Now())

	year, month, day := localdate.Today(requestcontext.Now(ctx), offsetMinutes)
	start := localdate.LocalMidnightUTC(year, month, day-(dailyWindowDays-1), offsetMinutes)

	counts, err := s.events.CountsByLocalDay(ctx, userID, start, offsetMinutes)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load daily counts")
	}

	out := make([]models.DayCount, 0, dailyWindowDays)
	for i := 0; i < dailyWindowDays; i++ {
		date := time.Date(year, month, day-(dailyWindowDays-1)+i, 0, 0, 0, 0, time.UTC).
			Format(localdate.DateFormat)
		out = append(out, models.DayCount{Date: date, Count: counts[date]})
	}
	return out, nil
}

// HistoryPage returns the user's events for the UTC calendar day `page` days
// before today, newest first, plus whether older events exist. The two reads
// run concurrently and are not snapshot-consistent: a stale HasMore costs the
// caller at most one extra empty page.
func (s *Service) HistoryPage(ctx context.Context, userID int64, page int) (*models.HistoryPage, error) {
	defer s.observe("history", time.Now())

	if page < 0 {
		page = 0
	}
	now := requestcontext.Now(ctx).UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day()-page, 0, 0, 0, 0, time.UTC)
	dayEnd := time.Date(now.Year(), now.Month(), now.Day()-page+1, 0, 0, 0, 0, time.UTC)

	var (
		records []models.HistoryRecord
		hasMore bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.events.EventsInRange(gctx, userID, dayStart, dayEnd)
		return err
	})
	g.Go(func() error {
		var err error
		hasMore, err = s.events.HasEventsBefore(gctx, userID, dayStart)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load history page")
	}

	for i := range records {
		if records[i].Difficulty == "" {
			records[i].Difficulty = models.DefaultDifficulty
		}
		if records[i].CategoryColor == "" {
			records[i].CategoryColor = models.DefaultCategoryColor
		}
	}
	if records == nil {
		records = []models.HistoryRecord{}
	}

	return &models.HistoryPage{
		Date:    dayStart.Format(localdate.DateFormat),
		Records: records,
		HasMore: hasMore,
	}, nil
}

// Status reports the last-practiced marker and today's local event count.
func (s *Service) Status(ctx context.Context, userID int64, offsetMinutes int) (*models.StatusResponse, error) {
	defer s.observe("status", time.Now())

	year, month, day := localdate.Today(requestcontext.Now(ctx), offsetMinutes)
	start := localdate.LocalMidnightUTC(year, month, day, offsetMinutes)

	counts, err := s.events.CountsByLocalDay(ctx, userID, start, offsetMinutes)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load practice status")
	}
	today := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(localdate.DateFormat)

	status := &models.StatusResponse{TodayCount: counts[today]}
	if s.recency != nil {
		last, err := s.recency.LastPracticedAt(ctx, userID)
		if err != nil {
			// Recency is advisory; log and degrade rather than failing the view.
			s.logger.WarnContext(ctx, "failed to read recency marker",
				"error", err.Error(),
				"request_id", requestcontext.RequestID(ctx),
			)
		} else {
			status.LastPracticedAt = last
		}
	}
	return status, nil
}

func (s *Service) observe(view string, start time.Time) {
	s.metrics.ObserveView(view, time.Since(start).Seconds())
}
