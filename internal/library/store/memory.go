package store

import (
	"context"
	"sync"

	"parlo/internal/library/models"
	dErrors "parlo/pkg/domain-errors"
)

// MemoryStore keeps sentences and categories in memory. It doubles as the
// SentenceLookup used by the in-memory event store.
type MemoryStore struct {
	mu             sync.RWMutex
	nextSentenceID int64
	nextCategoryID int64
	sentences      map[int64]models.Sentence
	categories     map[int64]models.Category
}

// NewMemory creates an empty in-memory library store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		nextSentenceID: 1,
		nextCategoryID: 1,
		sentences:      make(map[int64]models.Sentence),
		categories:     make(map[int64]models.Category),
	}
}

func (s *MemoryStore) CreateSentence(ctx context.Context, sentence models.Sentence) (models.Sentence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sentence.ID = s.nextSentenceID
	s.nextSentenceID++
	s.sentences[sentence.ID] = sentence
	return sentence, nil
}

func (s *MemoryStore) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	category.ID = s.nextCategoryID
	s.nextCategoryID++
	s.categories[category.ID] = category
	return category, nil
}

func (s *MemoryStore) ListSentences(ctx context.Context, userID int64) ([]models.Sentence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Sentence, 0)
	for id := int64(1); id < s.nextSentenceID; id++ {
		if sentence, ok := s.sentences[id]; ok && sentence.UserID == userID {
			out = append(out, sentence)
		}
	}
	return out, nil
}

func (s *MemoryStore) GetSentence(ctx context.Context, userID, sentenceID int64) (models.Sentence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sentence, ok := s.sentences[sentenceID]
	if !ok || sentence.UserID != userID {
		return models.Sentence{}, dErrors.New(dErrors.CodeNotFound, "sentence not found")
	}
	return sentence, nil
}

// SentenceWithCategory resolves a sentence and, when set, its category.
// Unlike GetSentence it does not filter by user: the event store already
// scopes events to their owner.
func (s *MemoryStore) SentenceWithCategory(ctx context.Context, sentenceID int64) (models.Sentence, *models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sentence, ok := s.sentences[sentenceID]
	if !ok {
		return models.Sentence{}, nil, dErrors.New(dErrors.CodeNotFound, "sentence not found")
	}
	if sentence.CategoryID == nil {
		return sentence, nil, nil
	}
	category, ok := s.categories[*sentence.CategoryID]
	if !ok {
		return sentence, nil, nil
	}
	return sentence, &category, nil
}
