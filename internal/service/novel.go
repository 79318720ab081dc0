package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/banglakobita/kobita-server/internal/domain"
	domainerrors "github.com/banglakobita/kobita-server/internal/errors"
	"github.com/banglakobita/kobita-server/internal/id"
	"github.com/banglakobita/kobita-server/internal/slug"
	"github.com/banglakobita/kobita-server/internal/store"
	"github.com/banglakobita/kobita-server/internal/validation"
)

// NovelService manages novels and their chapters.
type NovelService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewNovelService creates a new novel service.
func NewNovelService(store store.Store, validator *validation.Validator, logger *slog.Logger) *NovelService {
	return &NovelService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// CreateNovelRequest contains the fields accepted when creating a novel.
type CreateNovelRequest struct {
	TitleBengali  string `json:"title_bengali" validate:"required,max=256"`
	TitleEnglish  string `json:"title_english" validate:"max=256"`
	Synopsis      string `json:"synopsis"`
	CategoryID    string `json:"category_id"`
	CoverImageURL string `json:"cover_image_url"`
	IsPublished   bool   `json:"is_published"`
	Featured      bool   `json:"featured"`
}

// UpdateNovelRequest contains the fields accepted when updating a novel.
// Nil fields are left unchanged.
type UpdateNovelRequest struct {
	TitleBengali  *string `json:"title_bengali" validate:"omitempty,max=256"`
	TitleEnglish  *string `json:"title_english" validate:"omitempty,max=256"`
	Synopsis      *string `json:"synopsis"`
	CategoryID    *string `json:"category_id"`
	CoverImageURL *string `json:"cover_image_url"`
	IsPublished   *bool   `json:"is_published"`
	Featured      *bool   `json:"featured"`
	Completed     *bool   `json:"completed"`
}

// CreateChapterRequest contains the fields accepted when adding a chapter.
type CreateChapterRequest struct {
	ChapterNumber int    `json:"chapter_number" validate:"required,min=1"`
	TitleBengali  string `json:"title_bengali" validate:"required,max=256"`
	TitleEnglish  string `json:"title_english" validate:"max=256"`
	Content       string `json:"content" validate:"required"`
	IsPublished   bool   `json:"is_published"`
}

// UpdateChapterRequest contains the fields accepted when updating a chapter.
// The chapter number never changes after creation.
type UpdateChapterRequest struct {
	TitleBengali *string `json:"title_bengali" validate:"omitempty,max=256"`
	TitleEnglish *string `json:"title_english" validate:"omitempty,max=256"`
	Content      *string `json:"content"`
	IsPublished  *bool   `json:"is_published"`
}

// Create adds a new novel authored by authorID.
func (s *NovelService) Create(ctx context.Context, authorID string, req CreateNovelRequest) (*domain.Novel, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	novelSlug := slug.Derive(req.TitleEnglish, req.TitleBengali)
	if novelSlug == "" {
		return nil, domainerrors.Validation("title must contain at least one letter or digit")
	}

	novelID, err := id.Generate("novel")
	if err != nil {
		return nil, fmt.Errorf("generate novel ID: %w", err)
	}

	novel := &domain.Novel{
		TitleBengali:  req.TitleBengali,
		TitleEnglish:  req.TitleEnglish,
		Slug:          novelSlug,
		Synopsis:      req.Synopsis,
		CategoryID:    req.CategoryID,
		AuthorID:      authorID,
		CoverImageURL: req.CoverImageURL,
	}
	novel.ID = novelID
	novel.InitTimestamps()
	novel.Featured = req.Featured
	if req.IsPublished {
		novel.MarkPublished()
	}

	if err := s.store.CreateNovel(ctx, novel); err != nil {
		return nil, slugConflict(err, "a novel")
	}

	s.logger.Info("novel created", "novel_id", novelID, "slug", novelSlug)
	return novel, nil
}

// Get returns a novel by ID regardless of publish state.
func (s *NovelService) Get(ctx context.Context, novelID string) (*domain.Novel, error) {
	novel, err := s.store.GetNovel(ctx, novelID)
	if err != nil {
		return nil, notFoundOr(err, "novel")
	}
	return novel, nil
}

// GetBySlug returns a novel. Unpublished novels are invisible unless
// includeUnpublished is set.
func (s *NovelService) GetBySlug(ctx context.Context, novelSlug string, includeUnpublished bool) (*domain.Novel, error) {
	novel, err := s.store.GetNovelBySlug(ctx, novelSlug)
	if err != nil {
		return nil, notFoundOr(err, "novel")
	}
	if !novel.IsPublished && !includeUnpublished {
		return nil, domainerrors.NotFound("novel not found")
	}
	return novel, nil
}

// List returns one page of novels.
func (s *NovelService) List(ctx context.Context, opts ListOptions) (*store.Page[*domain.Novel], error) {
	return s.store.ListNovels(ctx, opts.filter(), opts.pageRequest(store.DefaultPageSize))
}

// Update applies a partial update to a novel.
func (s *NovelService) Update(ctx context.Context, novelID string, req UpdateNovelRequest) (*domain.Novel, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	novel, err := s.store.GetNovel(ctx, novelID)
	if err != nil {
		return nil, notFoundOr(err, "novel")
	}

	if req.TitleBengali != nil {
		novel.TitleBengali = *req.TitleBengali
	}
	if req.TitleEnglish != nil {
		novel.TitleEnglish = *req.TitleEnglish
	}
	if req.Synopsis != nil {
		novel.Synopsis = *req.Synopsis
	}
	if req.CategoryID != nil {
		novel.CategoryID = *req.CategoryID
	}
	if req.CoverImageURL != nil {
		novel.CoverImageURL = *req.CoverImageURL
	}
	if req.Featured != nil {
		novel.Featured = *req.Featured
	}
	if req.Completed != nil {
		novel.Completed = *req.Completed
	}
	applyPublish(req.IsPublished, &novel.IsPublished, &novel.PublishDate)
	novel.Touch()

	if err := s.store.UpdateNovel(ctx, novel); err != nil {
		return nil, slugConflict(notFoundOr(err, "novel"), "a novel")
	}

	return novel, nil
}

// Delete removes a novel and all of its chapters.
func (s *NovelService) Delete(ctx context.Context, novelID string) error {
	if err := s.store.DeleteNovel(ctx, novelID); err != nil {
		return notFoundOr(err, "novel")
	}
	s.logger.Info("novel deleted", "novel_id", novelID)
	return nil
}

// AddChapter appends a chapter to a novel. Chapter numbers are unique
// within the novel.
func (s *NovelService) AddChapter(ctx context.Context, novelID string, req CreateChapterRequest) (*domain.NovelChapter, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.store.GetNovel(ctx, novelID); err != nil {
		return nil, notFoundOr(err, "novel")
	}

	chapterID, err := id.Generate("chapter")
	if err != nil {
		return nil, fmt.Errorf("generate chapter ID: %w", err)
	}

	chapter := &domain.NovelChapter{
		NovelID:            novelID,
		ChapterNumber:      req.ChapterNumber,
		TitleBengali:       req.TitleBengali,
		TitleEnglish:       req.TitleEnglish,
		Content:            req.Content,
		ReadingTimeMinutes: readingTime(req.Content),
	}
	chapter.ID = chapterID
	chapter.InitTimestamps()
	if req.IsPublished {
		chapter.MarkPublished()
	}

	if err := s.store.CreateChapter(ctx, chapter); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Conflictf("chapter %d already exists in this novel", req.ChapterNumber)
		}
		return nil, err
	}

	s.logger.Info("chapter created", "novel_id", novelID, "chapter", req.ChapterNumber)
	return chapter, nil
}

// GetChapter returns one chapter of a novel by its number, looked up via
// the novel's slug. Drafts of either the novel or the chapter are
// invisible unless includeUnpublished is set. Public reads bump the
// chapter view counter asynchronously.
func (s *NovelService) GetChapter(ctx context.Context, novelSlug string, number int, includeUnpublished bool) (*domain.NovelChapter, error) {
	novel, err := s.GetBySlug(ctx, novelSlug, includeUnpublished)
	if err != nil {
		return nil, err
	}

	chapter, err := s.store.GetChapterByNumber(ctx, novel.ID, number)
	if err != nil {
		return nil, notFoundOr(err, "chapter")
	}
	if !chapter.IsPublished && !includeUnpublished {
		return nil, domainerrors.NotFound("chapter not found")
	}

	if !includeUnpublished {
		s.countChapterView(chapter.ID)
		chapter.ViewCount++
	}

	return chapter, nil
}

// ListChapters returns a novel's chapters in reading order.
func (s *NovelService) ListChapters(ctx context.Context, novelID string, includeUnpublished bool) ([]*domain.NovelChapter, error) {
	if _, err := s.store.GetNovel(ctx, novelID); err != nil {
		return nil, notFoundOr(err, "novel")
	}
	return s.store.ListChapters(ctx, novelID, !includeUnpublished)
}

// UpdateChapter applies a partial update to a chapter.
func (s *NovelService) UpdateChapter(ctx context.Context, chapterID string, req UpdateChapterRequest) (*domain.NovelChapter, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	chapter, err := s.store.GetChapter(ctx, chapterID)
	if err != nil {
		return nil, notFoundOr(err, "chapter")
	}

	if req.TitleBengali != nil {
		chapter.TitleBengali = *req.TitleBengali
	}
	if req.TitleEnglish != nil {
		chapter.TitleEnglish = *req.TitleEnglish
	}
	if req.Content != nil {
		chapter.Content = *req.Content
		chapter.ReadingTimeMinutes = readingTime(*req.Content)
	}
	applyPublish(req.IsPublished, &chapter.IsPublished, &chapter.PublishDate)
	chapter.Touch()

	if err := s.store.UpdateChapter(ctx, chapter); err != nil {
		return nil, notFoundOr(err, "chapter")
	}

	return chapter, nil
}

// DeleteChapter removes a chapter.
func (s *NovelService) DeleteChapter(ctx context.Context, chapterID string) error {
	if err := s.store.DeleteChapter(ctx, chapterID); err != nil {
		return notFoundOr(err, "chapter")
	}
	s.logger.Info("chapter deleted", "chapter_id", chapterID)
	return nil
}

func (s *NovelService) countChapterView(chapterID string) {
	go func() {
		if err := s.store.IncrementChapterViews(context.Background(), chapterID); err != nil {
			s.logger.Warn("failed to count chapter view", "chapter_id", chapterID, "error", err)
		}
	}()
}
