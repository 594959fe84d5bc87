// Package models holds the sentence-library types. The library is a
// collaborator of the practice views: the history pager enriches events with
// sentence and category data.
package models

// Sentence is one practicable item in a user's library.
type Sentence struct {
	ID          int64   `db:"id" json:"id"`
	UserID      int64   `db:"user_id" json:"userId"`
	Text        string  `db:"text" json:"text"`
	Translation string  `db:"translation" json:"translation"`
	Difficulty  *string `db:"difficulty" json:"difficulty,omitempty"`
	CategoryID  *int64  `db:"category_id" json:"categoryId,omitempty"`
}

// Category groups sentences; color is a UI hint and may be absent.
type Category struct {
	ID     int64   `db:"id" json:"id"`
	UserID int64   `db:"user_id" json:"userId"`
	Name   string  `db:"name" json:"name"`
	Color  *string `db:"color" json:"color,omitempty"`
}

// CreateSentenceRequest is the payload for adding a sentence.
type CreateSentenceRequest struct {
	Text        string  `json:"text"`
	Translation string  `json:"translation"`
	Difficulty  *string `json:"difficulty,omitempty"`
	CategoryID  *int64  `json:"categoryId,omitempty"`
}

// CreateCategoryRequest is the payload for adding a category.
type CreateCategoryRequest struct {
	Name  string  `json:"name"`
	Color *string `json:"color,omitempty"`
}
