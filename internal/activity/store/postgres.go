package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"parlo/internal/activity/models"
	"parlo/pkg/requestcontext"
)

// PostgresStore persists practice events in PostgreSQL.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgres constructs a PostgreSQL-backed event store.
func NewPostgres(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// InsertBatch inserts one row per sentence id in a single statement, all
// stamped with the request time. The insert is atomic; ordering within the
// batch is given by the assigned ids.
func (s *PostgresStore) InsertBatch(ctx context.Context, userID int64, sentenceIDs []int64) (int, error) {
	if len(sentenceIDs) == 0 {
		return 0, nil
	}
	practicedAt := requestcontext.Now(ctx).UTC()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO practice_events (user_id, sentence_id, practiced_at)
		SELECT $1, unnest($2::bigint[]), $3`,
		userID, pq.Array(sentenceIDs), practicedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert practice events: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("insert practice events: rows affected: %w", err)
	}
	return int(n), nil
}

// civilDayExpr shifts practiced_at by the client offset and renders the local
// calendar date. AT TIME ZONE 'UTC' first, so the session TimeZone setting
// cannot leak into the result.
const civilDayExpr = `to_char((practiced_at AT TIME ZONE 'UTC') + make_interval(mins => $4), 'YYYY-MM-DD')`

func (s *PostgresStore) DistinctLocalDays(ctx context.Context, userID int64, start, end time.Time, offsetMinutes int) ([]string, error) {
	days := []string{}
	err := s.db.SelectContext(ctx, &days, `
		SELECT DISTINCT `+civilDayExpr+` AS day
		FROM practice_events
		WHERE user_id = $1 AND practiced_at >= $2 AND practiced_at < $3
		ORDER BY day`,
		userID, start, end, offsetMinutes,
	)
	if err != nil {
		return nil, fmt.Errorf("distinct local days: %w", err)
	}
	return days, nil
}

func (s *PostgresStore) CountsByLocalDay(ctx context.Context, userID int64, start time.Time, offsetMinutes int) (map[string]int, error) {
	rows := []struct {
		Day   string `db:"day"`
		Count int    `db:"count"`
	}{}
	err := s.db.SelectContext(ctx, &rows, `
		SELECT `+countDayExpr+` AS day, count(*) AS count
		FROM practice_events
		WHERE user_id = $1 AND practiced_at >= $2
		GROUP BY day`,
		userID, start, offsetMinutes,
	)
	if err != nil {
		return nil, fmt.Errorf("counts by local day: %w", err)
	}
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Day] = row.Count
	}
	return counts, nil
}

// countDayExpr is civilDayExpr with the offset as the third placeholder,
// since the counts query has no end bound.
const countDayExpr = `to_char((practiced_at AT TIME ZONE 'UTC') + make_interval(mins => $3), 'YYYY-MM-DD')`

type historyRow struct {
	ID            int64           `db:"id"`
	SentenceID    int64           `db:"sentence_id"`
	PracticedAt   time.Time       `db:"practiced_at"`
	Score         sql.NullFloat64 `db:"score"`
	Transcript    sql.NullString  `db:"transcript"`
	Text          string          `db:"text"`
	Translation   string          `db:"translation"`
	Difficulty    sql.NullString  `db:"difficulty"`
	CategoryName  sql.NullString  `db:"category_name"`
	CategoryColor sql.NullString  `db:"category_color"`
}

// EventsInRange returns the user's events in [start, end) joined with their
// sentence and category, most recent first.
func (s *PostgresStore) EventsInRange(ctx context.Context, userID int64, start, end time.Time) ([]models.HistoryRecord, error) {
	rows := []historyRow{}
	err := s.db.SelectContext(ctx, &rows, `
		SELECT e.id, e.sentence_id, e.practiced_at, e.score, e.transcript,
		       s.text, s.translation, s.difficulty,
		       c.name AS category_name, c.color AS category_color
		FROM practice_events e
		JOIN sentences s ON s.id = e.sentence_id
		LEFT JOIN categories c ON c.id = s.category_id
		WHERE e.user_id = $1 AND e.practiced_at >= $2 AND e.practiced_at < $3
		ORDER BY e.practiced_at DESC, e.id DESC`,
		userID, start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("events in range: %w", err)
	}

	records := make([]models.HistoryRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, toHistoryRecord(row))
	}
	return records, nil
}

func (s *PostgresStore) HasEventsBefore(ctx context.Context, userID int64, t time.Time) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, `
		SELECT EXISTS (
			SELECT 1 FROM practice_events
			WHERE user_id = $1 AND practiced_at < $2
		)`,
		userID, t,
	)
	if err != nil {
		return false, fmt.Errorf("has events before: %w", err)
	}
	return exists, nil
}

func toHistoryRecord(row historyRow) models.HistoryRecord {
	rec := models.HistoryRecord{
		ID:          row.ID,
		SentenceID:  row.SentenceID,
		PracticedAt: row.PracticedAt.UTC(),
		Text:        row.Text,
		Translation: row.Translation,
	}
	if row.Score.Valid {
		score := row.Score.Float64
		rec.Score = &score
	}
	if row.Transcript.Valid {
		transcript := row.Transcript.String
		rec.Transcript = &transcript
	}
	if row.Difficulty.Valid {
		rec.Difficulty = row.Difficulty.String
	}
	if row.CategoryName.Valid {
		rec.CategoryName = row.CategoryName.String
	}
	if row.CategoryColor.Valid {
		rec.CategoryColor = row.CategoryColor.String
	}
	return rec
}
