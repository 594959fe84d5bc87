package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"parlo/internal/library/models"
	dErrors "parlo/pkg/domain-errors"
)

// PostgresStore persists the sentence library in PostgreSQL.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgres constructs a PostgreSQL-backed library store.
func NewPostgres(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) CreateSentence(ctx context.Context, sentence models.Sentence) (models.Sentence, error) {
	err := s.db.GetContext(ctx, &sentence.ID, `
		INSERT INTO sentences (user_id, text, translation, difficulty, category_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		sentence.UserID, sentence.Text, sentence.Translation, sentence.Difficulty, sentence.CategoryID,
	)
	if err != nil {
		return models.Sentence{}, fmt.Errorf("create sentence: %w", err)
	}
	return sentence, nil
}

func (s *PostgresStore) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	err := s.db.GetContext(ctx, &category.ID, `
		INSERT INTO categories (user_id, name, color)
		VALUES ($1, $2, $3)
		RETURNING id`,
		category.UserID, category.Name, category.Color,
	)
	if err != nil {
		return models.Category{}, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (s *PostgresStore) ListSentences(ctx context.Context, userID int64) ([]models.Sentence, error) {
	sentences := []models.Sentence{}
	err := s.db.SelectContext(ctx, &sentences, `
		SELECT id, user_id, text, translation, difficulty, category_id
		FROM sentences
		WHERE user_id = $1
		ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list sentences: %w", err)
	}
	return sentences, nil
}

func (s *PostgresStore) GetSentence(ctx context.Context, userID, sentenceID int64) (models.Sentence, error) {
	var sentence models.Sentence
	err := s.db.GetContext(ctx, &sentence, `
		SELECT id, user_id, text, translation, difficulty, category_id
		FROM sentences
		WHERE id = $1 AND user_id = $2`,
		sentenceID, userID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Sentence{}, dErrors.New(dErrors.CodeNotFound, "sentence not found")
		}
		return models.Sentence{}, fmt.Errorf("get sentence: %w", err)
	}
	return sentence, nil
}
