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

// TaxonomyService manages categories and tags across all content kinds.
type TaxonomyService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewTaxonomyService creates a new taxonomy service.
func NewTaxonomyService(store store.Store, validator *validation.Validator, logger *slog.Logger) *TaxonomyService {
	return &TaxonomyService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// CreateCategoryRequest contains the fields accepted when creating a category.
type CreateCategoryRequest struct {
	Name         string             `json:"name" validate:"required,max=128"`
	Description  string             `json:"description"`
	Type         domain.ContentType `json:"type" validate:"required,oneof=poem story music"`
	IconURL      string             `json:"icon_url"`
	DisplayOrder int                `json:"display_order" validate:"min=0"`
}

// UpdateCategoryRequest contains the fields accepted when updating a
// category. Nil fields are left unchanged; the type and slug never change.
type UpdateCategoryRequest struct {
	Name         *string `json:"name" validate:"omitempty,max=128"`
	Description  *string `json:"description"`
	IconURL      *string `json:"icon_url"`
	DisplayOrder *int    `json:"display_order" validate:"omitempty,min=0"`
}

// CreateTagRequest contains the fields accepted when creating a tag.
type CreateTagRequest struct {
	Name string             `json:"name" validate:"required,max=64"`
	Type domain.ContentType `json:"type" validate:"required,oneof=poem story novel music"`
}

// CreateCategory adds a new category for one content kind.
func (s *TaxonomyService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*domain.Category, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	categorySlug := slug.Make(req.Name)
	if categorySlug == "" {
		return nil, domainerrors.Validation("name must contain at least one letter or digit")
	}

	categoryID, err := id.Generate("category")
	if err != nil {
		return nil, fmt.Errorf("generate category ID: %w", err)
	}

	category := &domain.Category{
		Name:         req.Name,
		Slug:         categorySlug,
		Description:  req.Description,
		Type:         req.Type,
		IconURL:      req.IconURL,
		DisplayOrder: req.DisplayOrder,
	}
	category.ID = categoryID
	category.InitTimestamps()

	if err := s.store.CreateCategory(ctx, category); err != nil {
		return nil, slugConflict(err, "a category")
	}

	s.logger.Info("category created", "category_id", categoryID, "slug", categorySlug, "type", req.Type)
	return category, nil
}

// GetCategory returns a category by ID.
func (s *TaxonomyService) GetCategory(ctx context.Context, categoryID string) (*domain.Category, error) {
	category, err := s.store.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, notFoundOr(err, "category")
	}
	return category, nil
}

// GetCategoryBySlug returns a category by slug.
func (s *TaxonomyService) GetCategoryBySlug(ctx context.Context, categorySlug string) (*domain.Category, error) {
	category, err := s.store.GetCategoryBySlug(ctx, categorySlug)
	if err != nil {
		return nil, notFoundOr(err, "category")
	}
	return category, nil
}

// ListCategories returns categories in display order, optionally limited
// to one content kind.
func (s *TaxonomyService) ListCategories(ctx context.Context, contentType domain.ContentType) ([]*domain.Category, error) {
	if contentType != "" {
		if err := validContentType(contentType); err != nil {
			return nil, err
		}
	}
	return s.store.ListCategories(ctx, contentType)
}

// UpdateCategory applies a partial update to a category.
func (s *TaxonomyService) UpdateCategory(ctx context.Context, categoryID string, req UpdateCategoryRequest) (*domain.Category, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	category, err := s.store.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, notFoundOr(err, "category")
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.IconURL != nil {
		category.IconURL = *req.IconURL
	}
	if req.DisplayOrder != nil {
		category.DisplayOrder = *req.DisplayOrder
	}
	category.Touch()

	if err := s.store.UpdateCategory(ctx, category); err != nil {
		return nil, notFoundOr(err, "category")
	}

	return category, nil
}

// DeleteCategory removes a category. Content in the category survives
// with the category link cleared.
func (s *TaxonomyService) DeleteCategory(ctx context.Context, categoryID string) error {
	if err := s.store.DeleteCategory(ctx, categoryID); err != nil {
		return notFoundOr(err, "category")
	}
	s.logger.Info("category deleted", "category_id", categoryID)
	return nil
}

// CreateTag adds a new tag for one content kind. The same slug may exist
// under different kinds.
func (s *TaxonomyService) CreateTag(ctx context.Context, req CreateTagRequest) (*domain.Tag, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	tagSlug := slug.Make(req.Name)
	if tagSlug == "" {
		return nil, domainerrors.Validation("name must contain at least one letter or digit")
	}

	tagID, err := id.Generate("tag")
	if err != nil {
		return nil, fmt.Errorf("generate tag ID: %w", err)
	}

	tag := &domain.Tag{
		Name: req.Name,
		Slug: tagSlug,
		Type: req.Type,
	}
	tag.ID = tagID
	tag.InitTimestamps()

	if err := s.store.CreateTag(ctx, tag); err != nil {
		return nil, slugConflict(err, "a tag")
	}

	s.logger.Info("tag created", "tag_id", tagID, "slug", tagSlug, "type", req.Type)
	return tag, nil
}

// GetTag returns a tag by ID.
func (s *TaxonomyService) GetTag(ctx context.Context, tagID string) (*domain.Tag, error) {
	tag, err := s.store.GetTag(ctx, tagID)
	if err != nil {
		return nil, notFoundOr(err, "tag")
	}
	return tag, nil
}

// ListTags returns tags, optionally limited to one content kind.
func (s *TaxonomyService) ListTags(ctx context.Context, contentType domain.ContentType) ([]*domain.Tag, error) {
	if contentType != "" {
		if err := validContentType(contentType); err != nil {
			return nil, err
		}
	}
	return s.store.ListTags(ctx, contentType)
}

// DeleteTag removes a tag and all of its content links.
func (s *TaxonomyService) DeleteTag(ctx context.Context, tagID string) error {
	if err := s.store.DeleteTag(ctx, tagID); err != nil {
		return notFoundOr(err, "tag")
	}
	s.logger.Info("tag deleted", "tag_id", tagID)
	return nil
}

// AttachTag links a tag to a content row of the matching kind. Attaching
// an already attached tag is a no-op.
func (s *TaxonomyService) AttachTag(ctx context.Context, contentType domain.ContentType, contentID, tagID string) error {
	tag, err := s.tagForContent(ctx, contentType, contentID, tagID)
	if err != nil {
		return err
	}
	if err := s.store.AttachTag(ctx, contentType, contentID, tagID); err != nil {
		return err
	}
	s.logger.Info("tag attached", "tag", tag.Slug, "content_id", contentID)
	return nil
}

// DetachTag removes a tag link from a content row.
func (s *TaxonomyService) DetachTag(ctx context.Context, contentType domain.ContentType, contentID, tagID string) error {
	if _, err := s.tagForContent(ctx, contentType, contentID, tagID); err != nil {
		return err
	}
	if err := s.store.DetachTag(ctx, contentType, contentID, tagID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("tag is not attached to this content")
		}
		return err
	}
	return nil
}

// ListTagsForContent returns the tags attached to one content row.
func (s *TaxonomyService) ListTagsForContent(ctx context.Context, contentType domain.ContentType, contentID string) ([]*domain.Tag, error) {
	if err := s.contentExists(ctx, contentType, contentID); err != nil {
		return nil, err
	}
	return s.store.ListTagsForContent(ctx, contentType, contentID)
}

// tagForContent checks that the tag exists, that its kind matches, and
// that the target content row exists.
func (s *TaxonomyService) tagForContent(ctx context.Context, contentType domain.ContentType, contentID, tagID string) (*domain.Tag, error) {
	if err := s.contentExists(ctx, contentType, contentID); err != nil {
		return nil, err
	}

	tag, err := s.store.GetTag(ctx, tagID)
	if err != nil {
		return nil, notFoundOr(err, "tag")
	}
	if tag.Type != contentType {
		return nil, domainerrors.Validationf("tag %q applies to %s content, not %s", tag.Slug, tag.Type, contentType)
	}
	return tag, nil
}

func (s *TaxonomyService) contentExists(ctx context.Context, contentType domain.ContentType, contentID string) error {
	var err error
	switch contentType {
	case domain.ContentTypePoem:
		_, err = s.store.GetPoem(ctx, contentID)
	case domain.ContentTypeStory:
		_, err = s.store.GetStory(ctx, contentID)
	case domain.ContentTypeNovel:
		_, err = s.store.GetNovel(ctx, contentID)
	case domain.ContentTypeMusic:
		_, err = s.store.GetTrack(ctx, contentID)
	default:
		return validContentType(contentType)
	}
	if err != nil {
		return notFoundOr(err, "content")
	}
	return nil
}

func validContentType(contentType domain.ContentType) error {
	switch contentType {
	case domain.ContentTypePoem, domain.ContentTypeStory, domain.ContentTypeNovel, domain.ContentTypeMusic:
		return nil
	}
	return domainerrors.Validationf("unknown content type %q", contentType)
}
