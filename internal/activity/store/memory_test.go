package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	librarymodels "parlo/internal/library/models"
	librarystore "parlo/internal/library/store"
	"parlo/pkg/requestcontext"
)

const userID int64 = 3

func newMemoryStore(t *testing.T) (*MemoryStore, *librarystore.MemoryStore) {
	t.Helper()
	library := librarystore.NewMemory()
	return NewMemory(library), library
}

func insertAt(t *testing.T, s *MemoryStore, at time.Time, sentenceIDs ...int64) {
	t.Helper()
	ctx := requestcontext.WithTime(context.Background(), at)
	n, err := s.InsertBatch(ctx, userID, sentenceIDs)
	require.NoError(t, err)
	require.Equal(t, len(sentenceIDs), n)
}

func TestInsertBatch(t *testing.T) {
	s, _ := newMemoryStore(t)

	n, err := s.InsertBatch(context.Background(), userID, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	at := time.Date(2024, time.April, 2, 9, 0, 0, 0, time.UTC)
	insertAt(t, s, at, 5, 5, 7)

	counts, err := s.CountsByLocalDay(context.Background(), userID, at.Add(-time.Hour), 0)
	require.NoError(t, err)
	assert.Equal(t, 3, counts["2024-04-02"], "duplicate sentence ids create separate events")
}

func TestDistinctLocalDaysRangeBounds(t *testing.T) {
	s, _ := newMemoryStore(t)
	start := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

	// Lower bound is inclusive, upper bound exclusive.
	insertAt(t, s, start, 1)
	insertAt(t, s, end.Add(-time.Second), 1)
	insertAt(t, s, end, 1)
	insertAt(t, s, start.Add(-time.Second), 1)

	days, err := s.DistinctLocalDays(context.Background(), userID, start, end, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-04-01", "2024-04-30"}, days)
}

func TestHasEventsBeforeIsStrict(t *testing.T) {
	s, _ := newMemoryStore(t)
	at := time.Date(2024, time.April, 10, 12, 0, 0, 0, time.UTC)
	insertAt(t, s, at, 1)

	has, err := s.HasEventsBefore(context.Background(), userID, at)
	require.NoError(t, err)
	assert.False(t, has, "an event exactly at the boundary is not before it")

	has, err = s.HasEventsBefore(context.Background(), userID, at.Add(time.Second))
	require.NoError(t, err)
	assert.True(t, has)
}

func TestEventsInRangeTiebreak(t *testing.T) {
	s, library := newMemoryStore(t)
	sentence, err := library.CreateSentence(context.Background(), librarymodels.Sentence{
		UserID: userID,
		Text:   "salut",
	})
	require.NoError(t, err)

	// Same instant: the later-assigned id sorts first.
	at := time.Date(2024, time.April, 10, 12, 0, 0, 0, time.UTC)
	insertAt(t, s, at, sentence.ID, sentence.ID)

	records, err := s.EventsInRange(context.Background(), userID, at.Add(-time.Hour), at.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Greater(t, records[0].ID, records[1].ID)
}
