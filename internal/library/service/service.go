// Package service implements the sentence-library operations. The library is
// deliberately thin: create and list, enough for practice clients to manage
// their material. Everything aggregation-related lives in internal/activity.
package service

import (
	"context"
	"strings"

	"parlo/internal/library/models"
	dErrors "parlo/pkg/domain-errors"
)

// Store is the persistence port for the library.
type Store interface {
	CreateSentence(ctx context.Context, sentence models.Sentence) (models.Sentence, error)
	CreateCategory(ctx context.Context, category models.Category) (models.Category, error)
	ListSentences(ctx context.Context, userID int64) ([]models.Sentence, error)
	GetSentence(ctx context.Context, userID, sentenceID int64) (models.Sentence, error)
}

// Service orchestrates library operations.
type Service struct {
	store Store
}

func New(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) CreateSentence(ctx context.Context, userID int64, req models.CreateSentenceRequest) (models.Sentence, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return models.Sentence{}, dErrors.New(dErrors.CodeBadRequest, "sentence text is required")
	}
	sentence := models.Sentence{
		UserID:      userID,
		Text:        text,
		Translation: strings.TrimSpace(req.Translation),
		Difficulty:  req.Difficulty,
		CategoryID:  req.CategoryID,
	}
	created, err := s.store.CreateSentence(ctx, sentence)
	if err != nil {
		return models.Sentence{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create sentence")
	}
	return created, nil
}

func (s *Service) CreateCategory(ctx context.Context, userID int64, req models.CreateCategoryRequest) (models.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.Category{}, dErrors.New(dErrors.CodeBadRequest, "category name is required")
	}
	created, err := s.store.CreateCategory(ctx, models.Category{UserID: userID, Name: name, Color: req.Color})
	if err != nil {
		return models.Category{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create category")
	}
	return created, nil
}

func (s *Service) ListSentences(ctx context.Context, userID int64) ([]models.Sentence, error) {
	sentences, err := s.store.ListSentences(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list sentences")
	}
	return sentences, nil
}

func (s *Service) GetSentence(ctx context.Context, userID, sentenceID int64) (models.Sentence, error) {
	sentence, err := s.store.GetSentence(ctx, userID, sentenceID)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return models.Sentence{}, err
		}
		return models.Sentence{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to get sentence")
	}
	return sentence, nil
}
