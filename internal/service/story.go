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

// StoryService manages short stories and their version history.
type StoryService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewStoryService creates a new story service.
func NewStoryService(store store.Store, validator *validation.Validator, logger *slog.Logger) *StoryService {
	return &StoryService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// CreateStoryRequest contains the fields accepted when creating a story.
type CreateStoryRequest struct {
	TitleBengali  string `json:"title_bengali" validate:"required,max=256"`
	TitleEnglish  string `json:"title_english" validate:"max=256"`
	Content       string `json:"content" validate:"required"`
	Summary       string `json:"summary"`
	CategoryID    string `json:"category_id"`
	CoverImageURL string `json:"cover_image_url"`
	IsPublished   bool   `json:"is_published"`
	Featured      bool   `json:"featured"`
}

// UpdateStoryRequest contains the fields accepted when updating a story.
// Nil fields are left unchanged. A non-nil Content appends a new version
// instead of rewriting the current one.
type UpdateStoryRequest struct {
	TitleBengali  *string `json:"title_bengali" validate:"omitempty,max=256"`
	TitleEnglish  *string `json:"title_english" validate:"omitempty,max=256"`
	Content       *string `json:"content"`
	Summary       *string `json:"summary"`
	CategoryID    *string `json:"category_id"`
	CoverImageURL *string `json:"cover_image_url"`
	IsPublished   *bool   `json:"is_published"`
	Featured      *bool   `json:"featured"`
}

// StoryDetail is a story header together with its latest body text.
type StoryDetail struct {
	*domain.ShortStory
	Content string `json:"content"`
	Version int    `json:"content_version"`
}

// Create adds a new story with its body stored as version 1.
func (s *StoryService) Create(ctx context.Context, authorID string, req CreateStoryRequest) (*domain.ShortStory, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	storySlug := slug.Derive(req.TitleEnglish, req.TitleBengali)
	if storySlug == "" {
		return nil, domainerrors.Validation("title must contain at least one letter or digit")
	}

	storyID, err := id.Generate("story")
	if err != nil {
		return nil, fmt.Errorf("generate story ID: %w", err)
	}

	story := &domain.ShortStory{
		TitleBengali:       req.TitleBengali,
		TitleEnglish:       req.TitleEnglish,
		Slug:               storySlug,
		Summary:            req.Summary,
		CategoryID:         req.CategoryID,
		AuthorID:           authorID,
		CoverImageURL:      req.CoverImageURL,
		ReadingTimeMinutes: readingTime(req.Content),
	}
	story.ID = storyID
	story.InitTimestamps()
	story.Featured = req.Featured
	if req.IsPublished {
		story.MarkPublished()
	}

	if err := s.store.CreateStory(ctx, story, req.Content); err != nil {
		return nil, slugConflict(err, "a story")
	}

	s.logger.Info("story created", "story_id", storyID, "slug", storySlug)
	return story, nil
}

// Get returns a story header by ID regardless of publish state.
func (s *StoryService) Get(ctx context.Context, storyID string) (*domain.ShortStory, error) {
	story, err := s.store.GetStory(ctx, storyID)
	if err != nil {
		return nil, notFoundOr(err, "story")
	}
	return story, nil
}

// GetBySlug returns a story with its latest body for reading. Unpublished
// stories are invisible unless includeUnpublished is set. Public reads bump
// the view counter asynchronously.
func (s *StoryService) GetBySlug(ctx context.Context, storySlug string, includeUnpublished bool) (*StoryDetail, error) {
	story, err := s.store.GetStoryBySlug(ctx, storySlug)
	if err != nil {
		return nil, notFoundOr(err, "story")
	}
	if !story.IsPublished && !includeUnpublished {
		return nil, domainerrors.NotFound("story not found")
	}

	content, err := s.store.GetStoryContent(ctx, story.ID)
	if err != nil {
		return nil, notFoundOr(err, "story content")
	}

	if !includeUnpublished {
		s.countView(story.ID)
		story.ViewCount++
	}

	return &StoryDetail{
		ShortStory: story,
		Content:    content.Content,
		Version:    content.Version,
	}, nil
}

// List returns one page of stories.
func (s *StoryService) List(ctx context.Context, opts ListOptions) (*store.Page[*domain.ShortStory], error) {
	return s.store.ListStories(ctx, opts.filter(), opts.pageRequest(store.DefaultPageSize))
}

// ListVersions returns every stored body version of a story, newest first.
func (s *StoryService) ListVersions(ctx context.Context, storyID string) ([]*domain.StoryContent, error) {
	if _, err := s.store.GetStory(ctx, storyID); err != nil {
		return nil, notFoundOr(err, "story")
	}
	return s.store.ListStoryContentVersions(ctx, storyID)
}

// AppendContentRequest carries the body text for a new story version.
type AppendContentRequest struct {
	Content string `json:"content" validate:"required"`
}

// GetContent returns the latest body version of a story by slug.
func (s *StoryService) GetContent(ctx context.Context, storySlug string, includeUnpublished bool) (*domain.StoryContent, error) {
	story, err := s.store.GetStoryBySlug(ctx, storySlug)
	if err != nil {
		return nil, notFoundOr(err, "story")
	}
	if !story.IsPublished && !includeUnpublished {
		return nil, domainerrors.NotFound("story not found")
	}
	content, err := s.store.GetStoryContent(ctx, story.ID)
	if err != nil {
		return nil, notFoundOr(err, "story content")
	}
	return content, nil
}

// AppendContent stores a new body version for a story and refreshes the
// header's reading time. Older versions stay readable through ListVersions.
func (s *StoryService) AppendContent(ctx context.Context, storyID string, req AppendContentRequest) (*domain.StoryContent, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	story, err := s.store.GetStory(ctx, storyID)
	if err != nil {
		return nil, notFoundOr(err, "story")
	}

	version, err := s.store.AddStoryContentVersion(ctx, story.ID, req.Content)
	if err != nil {
		return nil, notFoundOr(err, "story")
	}

	story.ReadingTimeMinutes = readingTime(req.Content)
	story.Touch()
	if err := s.store.UpdateStory(ctx, story); err != nil {
		return nil, notFoundOr(err, "story")
	}

	s.logger.Info("story content appended", "story_id", story.ID, "version", version.Version)
	return version, nil
}

// Update applies a partial update to a story. Body edits append a new
// content version; older versions stay readable through ListVersions.
func (s *StoryService) Update(ctx context.Context, storyID string, req UpdateStoryRequest) (*domain.ShortStory, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	story, err := s.store.GetStory(ctx, storyID)
	if err != nil {
		return nil, notFoundOr(err, "story")
	}

	if req.TitleBengali != nil {
		story.TitleBengali = *req.TitleBengali
	}
	if req.TitleEnglish != nil {
		story.TitleEnglish = *req.TitleEnglish
	}
	if req.Summary != nil {
		story.Summary = *req.Summary
	}
	if req.CategoryID != nil {
		story.CategoryID = *req.CategoryID
	}
	if req.CoverImageURL != nil {
		story.CoverImageURL = *req.CoverImageURL
	}
	if req.Featured != nil {
		story.Featured = *req.Featured
	}
	if req.Content != nil {
		story.ReadingTimeMinutes = readingTime(*req.Content)
	}
	applyPublish(req.IsPublished, &story.IsPublished, &story.PublishDate)
	story.Touch()

	if err := s.store.UpdateStory(ctx, story); err != nil {
		return nil, slugConflict(notFoundOr(err, "story"), "a story")
	}

	if req.Content != nil {
		version, err := s.store.AddStoryContentVersion(ctx, storyID, *req.Content)
		if err != nil {
			return nil, notFoundOr(err, "story")
		}
		s.logger.Info("story content updated", "story_id", storyID, "version", version.Version)
	}

	return story, nil
}

// Delete removes a story and its whole version history.
func (s *StoryService) Delete(ctx context.Context, storyID string) error {
	if err := s.store.DeleteStory(ctx, storyID); err != nil {
		return notFoundOr(err, "story")
	}
	s.logger.Info("story deleted", "story_id", storyID)
	return nil
}

func (s *StoryService) countView(storyID string) {
	go func() {
		if err := s.store.IncrementStoryViews(context.Background(), storyID); err != nil {
			s.logger.Warn("failed to count story view", "story_id", storyID, "error", err)
		}
	}()
}
