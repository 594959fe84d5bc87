package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"parlo/internal/activity/localdate"
	"parlo/internal/activity/models"
	librarymodels "parlo/internal/library/models"
	"parlo/pkg/requestcontext"
)

// SentenceLookup resolves a sentence and its category for history enrichment.
// The library memory store implements it; the Postgres event store does the
// equivalent join in SQL instead.
type SentenceLookup interface {
	SentenceWithCategory(ctx context.Context, sentenceID int64) (librarymodels.Sentence, *librarymodels.Category, error)
}

// MemoryStore is the in-memory event store used when no database is
// configured, and the substrate for unit tests.
type MemoryStore struct {
	mu        sync.RWMutex
	nextID    int64
	events    []models.PracticeEvent
	sentences SentenceLookup
}

// NewMemory creates an empty in-memory event store.
func NewMemory(sentences SentenceLookup) *MemoryStore {
	return &MemoryStore{nextID: 1, sentences: sentences}
}

// InsertBatch appends one event per sentence id, all stamped with the
// request time. Empty input is a no-op returning 0. Duplicate ids within a
// batch are preserved.
func (s *MemoryStore) InsertBatch(ctx context.Context, userID int64, sentenceIDs []int64) (int, error) {
	if len(sentenceIDs) == 0 {
		return 0, nil
	}
	practicedAt := requestcontext.Now(ctx).UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sentenceID := range sentenceIDs {
		s.events = append(s.events, models.PracticeEvent{
			ID:          s.nextID,
			UserID:      userID,
			SentenceID:  sentenceID,
			PracticedAt: practicedAt,
		})
		s.nextID++
	}
	return len(sentenceIDs), nil
}

// DistinctLocalDays returns the sorted set of local calendar dates with at
// least one event in [start, end).
func (s *MemoryStore) DistinctLocalDays(ctx context.Context, userID int64, start, end time.Time, offsetMinutes int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, ev := range s.events {
		if ev.UserID != userID || ev.PracticedAt.Before(start) || !ev.PracticedAt.Before(end) {
			continue
		}
		seen[localdate.CivilDate(ev.PracticedAt, offsetMinutes)] = struct{}{}
	}
	days := make([]string, 0, len(seen))
	for day := range seen {
		days = append(days, day)
	}
	sort.Strings(days)
	return days, nil
}

// CountsByLocalDay returns per-local-day event counts for events at or after
// start. Days without events are absent; the service zero-fills.
func (s *MemoryStore) CountsByLocalDay(ctx context.Context, userID int64, start time.Time, offsetMinutes int) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, ev := range s.events {
		if ev.UserID != userID || ev.PracticedAt.Before(start) {
			continue
		}
		counts[localdate.CivilDate(ev.PracticedAt, offsetMinutes)]++
	}
	return counts, nil
}

// EventsInRange returns enriched events in [start, end), most recent first,
// id descending as the tiebreak.
func (s *MemoryStore) EventsInRange(ctx context.Context, userID int64, start, end time.Time) ([]models.HistoryRecord, error) {
	s.mu.RLock()
	matched := make([]models.PracticeEvent, 0)
	for _, ev := range s.events {
		if ev.UserID == userID && !ev.PracticedAt.Before(start) && ev.PracticedAt.Before(end) {
			matched = append(matched, ev)
		}
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].PracticedAt.Equal(matched[j].PracticedAt) {
			return matched[i].PracticedAt.After(matched[j].PracticedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	records := make([]models.HistoryRecord, 0, len(matched))
	for _, ev := range matched {
		rec := models.HistoryRecord{
			ID:          ev.ID,
			SentenceID:  ev.SentenceID,
			PracticedAt: ev.PracticedAt,
			Score:       ev.Score,
			Transcript:  ev.Transcript,
		}
		if s.sentences != nil {
			sentence, category, err := s.sentences.SentenceWithCategory(ctx, ev.SentenceID)
			if err == nil {
				rec.Text = sentence.Text
				rec.Translation = sentence.Translation
				if sentence.Difficulty != nil {
					rec.Difficulty = *sentence.Difficulty
				}
				if category != nil {
					rec.CategoryName = category.Name
					if category.Color != nil {
						rec.CategoryColor = *category.Color
					}
				}
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// HasEventsBefore reports whether any event exists strictly before t.
func (s *MemoryStore) HasEventsBefore(ctx context.Context, userID int64, t time.Time) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ev := range s.events {
		if ev.UserID == userID && ev.PracticedAt.Before(t) {
			return true, nil
		}
	}
	return false, nil
}
