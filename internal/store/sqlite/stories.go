package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/banglakobita/kobita-server/internal/domain"
	"github.com/banglakobita/kobita-server/internal/id"
	"github.com/banglakobita/kobita-server/internal/store"
)

// storyColumns is the ordered list of columns selected in story queries.
// Must match the scan order in scanStory.
const storyColumns = `st.id, st.title_bengali, st.title_english, st.slug, st.summary,
	st.category_id, c.name, st.author_id, st.cover_image_url,
	st.reading_time_minutes, st.view_count, st.is_published, st.publish_date,
	st.featured, st.created_at, st.updated_at`

const storyFrom = ` FROM short_stories st LEFT JOIN categories c ON c.id = st.category_id`

func scanStory(scanner interface{ Scan(dest ...any) error }) (*domain.ShortStory, error) {
	var st domain.ShortStory

	var (
		categoryID   sql.NullString
		categoryName sql.NullString
		authorID     sql.NullString
		isPublished  int
		publishDate  sql.NullString
		featured     int
		createdAt    string
		updatedAt    string
	)

	err := scanner.Scan(
		&st.ID,
		&st.TitleBengali,
		&st.TitleEnglish,
		&st.Slug,
		&st.Summary,
		&categoryID,
		&categoryName,
		&authorID,
		&st.CoverImageURL,
		&st.ReadingTimeMinutes,
		&st.ViewCount,
		&isPublished,
		&publishDate,
		&featured,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	st.CategoryID = categoryID.String
	st.CategoryName = categoryName.String
	st.AuthorID = authorID.String
	st.IsPublished = isPublished != 0
	st.Featured = featured != 0

	st.PublishDate, err = parseNullableTime(publishDate)
	if err != nil {
		return nil, err
	}
	st.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	st.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &st, nil
}

func scanStoryContent(scanner interface{ Scan(dest ...any) error }) (*domain.StoryContent, error) {
	var sc domain.StoryContent

	var createdAt string

	err := scanner.Scan(
		&sc.ID,
		&sc.StoryID,
		&sc.Content,
		&sc.Version,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	sc.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &sc, nil
}

// CreateStory inserts the story header and its version 1 body in one
// transaction. Returns store.ErrAlreadyExists on duplicate slug.
func (s *Store) CreateStory(ctx context.Context, story *domain.ShortStory, content string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO short_stories (id, title_bengali, title_english, slug, summary,
			category_id, author_id, cover_image_url, reading_time_minutes,
			view_count, is_published, publish_date, featured, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		story.ID,
		story.TitleBengali,
		story.TitleEnglish,
		story.Slug,
		story.Summary,
		nullString(story.CategoryID),
		nullString(story.AuthorID),
		story.CoverImageURL,
		story.ReadingTimeMinutes,
		story.ViewCount,
		boolToInt(story.IsPublished),
		nullTimeString(story.PublishDate),
		boolToInt(story.Featured),
		formatTime(story.CreatedAt),
		formatTime(story.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}

	contentID, err := id.Generate("storycontent")
	if err != nil {
		return fmt.Errorf("generate content id: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO story_contents (id, story_id, content, version, created_at)
		VALUES (?, ?, ?, 1, ?)`,
		contentID,
		story.ID,
		content,
		formatTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("insert story content: %w", err)
	}

	return tx.Commit()
}

// GetStory retrieves a story header by ID.
func (s *Store) GetStory(ctx context.Context, id string) (*domain.ShortStory, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+storyColumns+storyFrom+` WHERE st.id = ?`, id)

	st, err := scanStory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return st, nil
}

// GetStoryBySlug retrieves a story header by slug.
func (s *Store) GetStoryBySlug(ctx context.Context, slug string) (*domain.ShortStory, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+storyColumns+storyFrom+` WHERE st.slug = ?`, slug)

	st, err := scanStory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return st, nil
}

// UpdateStory saves all mutable story header fields.
func (s *Store) UpdateStory(ctx context.Context, story *domain.ShortStory) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE short_stories SET
			title_bengali = ?, title_english = ?, slug = ?, summary = ?,
			category_id = ?, cover_image_url = ?, reading_time_minutes = ?,
			is_published = ?, publish_date = ?, featured = ?, updated_at = ?
		WHERE id = ?`,
		story.TitleBengali,
		story.TitleEnglish,
		story.Slug,
		story.Summary,
		nullString(story.CategoryID),
		story.CoverImageURL,
		story.ReadingTimeMinutes,
		boolToInt(story.IsPublished),
		nullTimeString(story.PublishDate),
		boolToInt(story.Featured),
		formatTime(story.UpdatedAt),
		story.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteStory removes a story. Its content versions and tag links cascade.
func (s *Store) DeleteStory(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM short_stories WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListStories returns one page of story headers, most recently
// published first; drafts sort last by creation time.
func (s *Store) ListStories(ctx context.Context, filter store.ContentFilter, page store.PageRequest) (*store.Page[*domain.ShortStory], error) {
	where, args := contentWhere("st", filter)

	var total int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM short_stories st`+where, args...).Scan(&total)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+storyColumns+storyFrom+where+
			` ORDER BY st.publish_date IS NULL, st.publish_date DESC, st.created_at DESC LIMIT ? OFFSET ?`,
		append(args, page.Limit, page.Offset())...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*domain.ShortStory{}
	for rows.Next() {
		st, err := scanStory(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &store.Page[*domain.ShortStory]{
		Items: items,
		Total: total,
		Num:   page.Page,
		Limit: page.Limit,
	}, nil
}

// IncrementStoryViews bumps the view counter by one.
func (s *Store) IncrementStoryViews(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE short_stories SET view_count = view_count + 1 WHERE id = ?`, id)
	return err
}

// GetStoryContent returns the latest body version for a story.
func (s *Store) GetStoryContent(ctx context.Context, storyID string) (*domain.StoryContent, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, story_id, content, version, created_at
		FROM story_contents
		WHERE story_id = ?
		ORDER BY version DESC LIMIT 1`,
		storyID,
	)

	sc, err := scanStoryContent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sc, nil
}

// ListStoryContentVersions returns every body version, newest first.
func (s *Store) ListStoryContentVersions(ctx context.Context, storyID string) ([]*domain.StoryContent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, story_id, content, version, created_at
		FROM story_contents
		WHERE story_id = ?
		ORDER BY version DESC`,
		storyID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var versions []*domain.StoryContent
	for rows.Next() {
		sc, err := scanStoryContent(rows)
		if err != nil {
			return nil, err
		}
		versions = append(versions, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if versions == nil {
		versions = []*domain.StoryContent{}
	}

	return versions, nil
}

// AddStoryContentVersion appends a new body version for a story.
// Earlier versions are never mutated.
func (s *Store) AddStoryContentVersion(ctx context.Context, storyID, content string) (*domain.StoryContent, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	// Verify the story exists so we fail with not-found rather than a
	// foreign key error.
	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM short_stories WHERE id = ?`, storyID).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, store.ErrNotFound
	}

	var nextVersion int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) + 1 FROM story_contents WHERE story_id = ?`,
		storyID).Scan(&nextVersion)
	if err != nil {
		return nil, err
	}

	contentID, err := id.Generate("storycontent")
	if err != nil {
		return nil, fmt.Errorf("generate content id: %w", err)
	}

	now := time.Now()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO story_contents (id, story_id, content, version, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		contentID,
		storyID,
		content,
		nextVersion,
		formatTime(now),
	)
	if err != nil {
		return nil, fmt.Errorf("insert story content: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &domain.StoryContent{
		ID:        contentID,
		StoryID:   storyID,
		Content:   content,
		Version:   nextVersion,
		CreatedAt: now,
	}, nil
}
