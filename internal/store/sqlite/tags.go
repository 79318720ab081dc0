package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/banglakobita/kobita-server/internal/domain"
	"github.com/banglakobita/kobita-server/internal/store"
)

// tagColumns is the ordered list of columns selected in tag queries.
// Must match the scan order in scanTag. The usage count is computed from
// the join table matching the tag's content type.
const tagColumns = `id, name, slug, type,
	(CASE type
		WHEN 'poem' THEN (SELECT COUNT(*) FROM poem_tags WHERE tag_id = tags.id)
		WHEN 'story' THEN (SELECT COUNT(*) FROM story_tags WHERE tag_id = tags.id)
		WHEN 'novel' THEN (SELECT COUNT(*) FROM novel_tags WHERE tag_id = tags.id)
		ELSE (SELECT COUNT(*) FROM music_tags WHERE tag_id = tags.id)
	END) AS usage_count,
	created_at, updated_at`

func scanTag(scanner interface{ Scan(dest ...any) error }) (*domain.Tag, error) {
	var t domain.Tag

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&t.ID,
		&t.Name,
		&t.Slug,
		&t.Type,
		&t.UsageCount,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	t.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// tagJoinTable maps a content type to its tag join table and content column.
func tagJoinTable(contentType domain.ContentType) (table, column string, err error) {
	switch contentType {
	case domain.ContentTypePoem:
		return "poem_tags", "poem_id", nil
	case domain.ContentTypeStory:
		return "story_tags", "story_id", nil
	case domain.ContentTypeNovel:
		return "novel_tags", "novel_id", nil
	case domain.ContentTypeMusic:
		return "music_tags", "track_id", nil
	default:
		return "", "", fmt.Errorf("unknown content type %q", contentType)
	}
}

// CreateTag inserts a new tag.
// Returns store.ErrAlreadyExists on duplicate slug within the same type.
func (s *Store) CreateTag(ctx context.Context, tag *domain.Tag) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tags (id, name, slug, type, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		tag.ID,
		tag.Name,
		tag.Slug,
		tag.Type,
		formatTime(tag.CreatedAt),
		formatTime(tag.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetTag retrieves a tag by ID.
func (s *Store) GetTag(ctx context.Context, id string) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE id = ?`, id)

	t, err := scanTag(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// GetTagBySlug retrieves a tag by slug. Slugs are only unique per type,
// so the first match in type order is returned; prefer GetTag where possible.
func (s *Store) GetTagBySlug(ctx context.Context, slug string) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE slug = ? ORDER BY type ASC LIMIT 1`, slug)

	t, err := scanTag(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListTags returns tags ordered by slug.
// An empty contentType returns tags of every kind.
func (s *Store) ListTags(ctx context.Context, contentType domain.ContentType) ([]*domain.Tag, error) {
	query := `SELECT ` + tagColumns + ` FROM tags`
	args := []any{}
	if contentType != "" {
		query += ` WHERE type = ?`
		args = append(args, contentType)
	}
	query += ` ORDER BY slug ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if tags == nil {
		tags = []*domain.Tag{}
	}

	return tags, nil
}

// DeleteTag removes a tag. Join rows referencing it cascade away.
func (s *Store) DeleteTag(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
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

// AttachTag links a tag to a content row. Attaching twice is a no-op.
func (s *Store) AttachTag(ctx context.Context, contentType domain.ContentType, contentID, tagID string) error {
	table, column, err := tagJoinTable(contentType)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO `+table+` (`+column+`, tag_id, created_at) VALUES (?, ?, ?)`,
		contentID,
		tagID,
		formatTime(time.Now()),
	)
	return err
}

// DetachTag unlinks a tag from a content row.
// Returns store.ErrNotFound if no link existed.
func (s *Store) DetachTag(ctx context.Context, contentType domain.ContentType, contentID, tagID string) error {
	table, column, err := tagJoinTable(contentType)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM `+table+` WHERE `+column+` = ? AND tag_id = ?`,
		contentID,
		tagID,
	)
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

// ListTagsForContent returns the tags attached to one content row.
func (s *Store) ListTagsForContent(ctx context.Context, contentType domain.ContentType, contentID string) ([]*domain.Tag, error) {
	table, column, err := tagJoinTable(contentType)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tagColumns+` FROM tags
		WHERE id IN (SELECT tag_id FROM `+table+` WHERE `+column+` = ?)
		ORDER BY slug ASC`,
		contentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if tags == nil {
		tags = []*domain.Tag{}
	}

	return tags, nil
}
