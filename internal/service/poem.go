package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/banglakobita/kobita-server/internal/domain"
	domainerrors "github.com/banglakobita/kobita-server/internal/errors"
	"github.com/banglakobita/kobita-server/internal/id"
	"github.com/banglakobita/kobita-server/internal/slug"
	"github.com/banglakobita/kobita-server/internal/store"
	"github.com/banglakobita/kobita-server/internal/validation"
)

// PoemService manages the poem catalog.
type PoemService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewPoemService creates a new poem service.
func NewPoemService(store store.Store, validator *validation.Validator, logger *slog.Logger) *PoemService {
	return &PoemService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// CreatePoemRequest contains the fields accepted when creating a poem.
type CreatePoemRequest struct {
	TitleBengali  string `json:"title_bengali" validate:"required,max=256"`
	TitleEnglish  string `json:"title_english" validate:"max=256"`
	Content       string `json:"content" validate:"required"`
	Description   string `json:"description"`
	CategoryID    string `json:"category_id"`
	CoverImageURL string `json:"cover_image_url"`
	AudioURL      string `json:"audio_url"`
	IsPublished   bool   `json:"is_published"`
	Featured      bool   `json:"featured"`
}

// UpdatePoemRequest contains the fields accepted when updating a poem.
// Nil fields are left unchanged; the slug never changes after creation.
type UpdatePoemRequest struct {
	TitleBengali  *string `json:"title_bengali" validate:"omitempty,max=256"`
	TitleEnglish  *string `json:"title_english" validate:"omitempty,max=256"`
	Content       *string `json:"content"`
	Description   *string `json:"description"`
	CategoryID    *string `json:"category_id"`
	CoverImageURL *string `json:"cover_image_url"`
	AudioURL      *string `json:"audio_url"`
	IsPublished   *bool   `json:"is_published"`
	Featured      *bool   `json:"featured"`
}

// ListOptions narrows and pages content listings.
type ListOptions struct {
	Page               int
	Limit              int
	CategoryID         string
	AlbumID            string
	Featured           *bool
	IncludeUnpublished bool // Admin listings see drafts
}

func (o ListOptions) pageRequest(defaultLimit int) store.PageRequest {
	page := store.PageRequest{Page: o.Page, Limit: o.Limit}
	page.Normalize(defaultLimit)
	return page
}

func (o ListOptions) filter() store.ContentFilter {
	return store.ContentFilter{
		PublishedOnly: !o.IncludeUnpublished,
		CategoryID:    o.CategoryID,
		AlbumID:       o.AlbumID,
		Featured:      o.Featured,
	}
}

// Create adds a new poem authored by authorID.
func (s *PoemService) Create(ctx context.Context, authorID string, req CreatePoemRequest) (*domain.Poem, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	poemSlug := slug.Derive(req.TitleEnglish, req.TitleBengali)
	if poemSlug == "" {
		return nil, domainerrors.Validation("title must contain at least one letter or digit")
	}

	poemID, err := id.Generate("poem")
	if err != nil {
		return nil, fmt.Errorf("generate poem ID: %w", err)
	}

	poem := &domain.Poem{
		TitleBengali:       req.TitleBengali,
		TitleEnglish:       req.TitleEnglish,
		Slug:               poemSlug,
		Content:            req.Content,
		Description:        req.Description,
		CategoryID:         req.CategoryID,
		AuthorID:           authorID,
		CoverImageURL:      req.CoverImageURL,
		AudioURL:           req.AudioURL,
		ReadingTimeMinutes: readingTime(req.Content),
	}
	poem.ID = poemID
	poem.InitTimestamps()
	poem.Featured = req.Featured
	if req.IsPublished {
		poem.MarkPublished()
	}

	if err := s.store.CreatePoem(ctx, poem); err != nil {
		return nil, slugConflict(err, "a poem")
	}

	s.logger.Info("poem created", "poem_id", poemID, "slug", poemSlug)
	return poem, nil
}

// Get returns a poem by ID regardless of publish state.
func (s *PoemService) Get(ctx context.Context, poemID string) (*domain.Poem, error) {
	poem, err := s.store.GetPoem(ctx, poemID)
	if err != nil {
		return nil, notFoundOr(err, "poem")
	}
	return poem, nil
}

// GetBySlug returns a poem for reading. Unpublished poems are invisible
// unless includeUnpublished is set. Public reads bump the view counter
// asynchronously.
func (s *PoemService) GetBySlug(ctx context.Context, poemSlug string, includeUnpublished bool) (*domain.Poem, error) {
	poem, err := s.store.GetPoemBySlug(ctx, poemSlug)
	if err != nil {
		return nil, notFoundOr(err, "poem")
	}
	if !poem.IsPublished && !includeUnpublished {
		return nil, domainerrors.NotFound("poem not found")
	}

	if !includeUnpublished {
		s.countView(poem.ID)
		poem.ViewCount++
	}

	return poem, nil
}

// List returns one page of poems.
func (s *PoemService) List(ctx context.Context, opts ListOptions) (*store.Page[*domain.Poem], error) {
	return s.store.ListPoems(ctx, opts.filter(), opts.pageRequest(store.DefaultPageSize))
}

// Update applies a partial update to a poem.
func (s *PoemService) Update(ctx context.Context, poemID string, req UpdatePoemRequest) (*domain.Poem, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	poem, err := s.store.GetPoem(ctx, poemID)
	if err != nil {
		return nil, notFoundOr(err, "poem")
	}

	if req.TitleBengali != nil {
		poem.TitleBengali = *req.TitleBengali
	}
	if req.TitleEnglish != nil {
		poem.TitleEnglish = *req.TitleEnglish
	}
	if req.Content != nil {
		poem.Content = *req.Content
		poem.ReadingTimeMinutes = readingTime(*req.Content)
	}
	if req.Description != nil {
		poem.Description = *req.Description
	}
	if req.CategoryID != nil {
		poem.CategoryID = *req.CategoryID
	}
	if req.CoverImageURL != nil {
		poem.CoverImageURL = *req.CoverImageURL
	}
	if req.AudioURL != nil {
		poem.AudioURL = *req.AudioURL
	}
	if req.Featured != nil {
		poem.Featured = *req.Featured
	}
	applyPublish(req.IsPublished, &poem.IsPublished, &poem.PublishDate)
	poem.Touch()

	if err := s.store.UpdatePoem(ctx, poem); err != nil {
		return nil, slugConflict(notFoundOr(err, "poem"), "a poem")
	}

	return poem, nil
}

// Delete removes a poem.
func (s *PoemService) Delete(ctx context.Context, poemID string) error {
	if err := s.store.DeletePoem(ctx, poemID); err != nil {
		return notFoundOr(err, "poem")
	}
	s.logger.Info("poem deleted", "poem_id", poemID)
	return nil
}

// countView records a view without blocking or failing the read path.
func (s *PoemService) countView(poemID string) {
	go func() {
		if err := s.store.IncrementPoemViews(context.Background(), poemID); err != nil {
			s.logger.Warn("failed to count poem view", "poem_id", poemID, "error", err)
		}
	}()
}
