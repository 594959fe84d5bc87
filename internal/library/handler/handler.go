package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"parlo/internal/library/models"
	"parlo/internal/transport/http/shared"
	dErrors "parlo/pkg/domain-errors"
	"parlo/pkg/requestcontext"
)

// Service defines the interface for library operations.
type Service interface {
	CreateSentence(ctx context.Context, userID int64, req models.CreateSentenceRequest) (models.Sentence, error)
	CreateCategory(ctx context.Context, userID int64, req models.CreateCategoryRequest) (models.Category, error)
	ListSentences(ctx context.Context, userID int64) ([]models.Sentence, error)
}

// Handler handles the sentence-library endpoints.
type Handler struct {
	logger  *slog.Logger
	library Service
	auth    func(http.Handler) http.Handler
}

func New(library Service, logger *slog.Logger, auth func(http.Handler) http.Handler) *Handler {
	return &Handler{logger: logger, library: library, auth: auth}
}

// Register mounts the library routes on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api/sentences", func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/", h.handleCreateSentence)
		r.Get("/", h.handleListSentences)
	})
	r.Route("/api/categories", func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/", h.handleCreateCategory)
	})
}

func (h *Handler) handleCreateSentence(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := requestcontext.UserID(ctx)
	if userID == 0 {
		shared.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	var req models.CreateSentenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	sentence, err := h.library.CreateSentence(ctx, userID, req)
	if err != nil {
		h.serveError(w, r, "failed to create sentence", err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, sentence)
}

func (h *Handler) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := requestcontext.UserID(ctx)
	if userID == 0 {
		shared.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	var req models.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	category, err := h.library.CreateCategory(ctx, userID, req)
	if err != nil {
		h.serveError(w, r, "failed to create category", err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, category)
}

func (h *Handler) handleListSentences(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := requestcontext.UserID(ctx)
	if userID == 0 {
		shared.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	sentences, err := h.library.ListSentences(ctx, userID)
	if err != nil {
		h.serveError(w, r, "failed to list sentences", err)
		return
	}
	if sentences == nil {
		sentences = []models.Sentence{}
	}
	shared.WriteJSON(w, http.StatusOK, sentences)
}

func (h *Handler) serveError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if dErrors.HasCode(err, dErrors.CodeBadRequest) || dErrors.HasCode(err, dErrors.CodeNotFound) {
		h.logger.WarnContext(r.Context(), msg,
			"error", err.Error(),
			"request_id", requestcontext.RequestID(r.Context()),
		)
	} else {
		h.logger.ErrorContext(r.Context(), msg,
			"error", err.Error(),
			"request_id", requestcontext.RequestID(r.Context()),
		)
	}
	shared.WriteError(w, err)
}
