package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/banglakobita/kobita-server/internal/domain"
	"github.com/banglakobita/kobita-server/internal/store"
)

// poemColumns is the ordered list of columns selected in poem queries.
// Must match the scan order in scanPoem. Category name is joined in for
// detail and list reads.
const poemColumns = `p.id, p.title_bengali, p.title_english, p.slug, p.content,
	p.description, p.category_id, c.name, p.author_id, p.cover_image_url,
	p.audio_url, p.reading_time_minutes, p.view_count, p.is_published,
	p.publish_date, p.featured, p.created_at, p.updated_at`

const poemFrom = ` FROM poems p LEFT JOIN categories c ON c.id = p.category_id`

func scanPoem(scanner interface{ Scan(dest ...any) error }) (*domain.Poem, error) {
	var p domain.Poem

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
		&p.ID,
		&p.TitleBengali,
		&p.TitleEnglish,
		&p.Slug,
		&p.Content,
		&p.Description,
		&categoryID,
		&categoryName,
		&authorID,
		&p.CoverImageURL,
		&p.AudioURL,
		&p.ReadingTimeMinutes,
		&p.ViewCount,
		&isPublished,
		&publishDate,
		&featured,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.CategoryID = categoryID.String
	p.CategoryName = categoryName.String
	p.AuthorID = authorID.String
	p.IsPublished = isPublished != 0
	p.Featured = featured != 0

	p.PublishDate, err = parseNullableTime(publishDate)
	if err != nil {
		return nil, err
	}
	p.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	p.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// CreatePoem inserts a new poem.
// Returns store.ErrAlreadyExists on duplicate slug.
func (s *Store) CreatePoem(ctx context.Context, poem *domain.Poem) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO poems (id, title_bengali, title_english, slug, content,
			description, category_id, author_id, cover_image_url, audio_url,
			reading_time_minutes, view_count, is_published, publish_date,
			featured, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		poem.ID,
		poem.TitleBengali,
		poem.TitleEnglish,
		poem.Slug,
		poem.Content,
		poem.Description,
		nullString(poem.CategoryID),
		nullString(poem.AuthorID),
		poem.CoverImageURL,
		poem.AudioURL,
		poem.ReadingTimeMinutes,
		poem.ViewCount,
		boolToInt(poem.IsPublished),
		nullTimeString(poem.PublishDate),
		boolToInt(poem.Featured),
		formatTime(poem.CreatedAt),
		formatTime(poem.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetPoem retrieves a poem by ID.
func (s *Store) GetPoem(ctx context.Context, id string) (*domain.Poem, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+poemColumns+poemFrom+` WHERE p.id = ?`, id)

	p, err := scanPoem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetPoemBySlug retrieves a poem by slug.
func (s *Store) GetPoemBySlug(ctx context.Context, slug string) (*domain.Poem, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+poemColumns+poemFrom+` WHERE p.slug = ?`, slug)

	p, err := scanPoem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// UpdatePoem saves all mutable poem fields.
// Returns store.ErrNotFound if the poem does not exist.
func (s *Store) UpdatePoem(ctx context.Context, poem *domain.Poem) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE poems SET
			title_bengali = ?, title_english = ?, slug = ?, content = ?,
			description = ?, category_id = ?, cover_image_url = ?, audio_url = ?,
			reading_time_minutes = ?, is_published = ?, publish_date = ?,
			featured = ?, updated_at = ?
		WHERE id = ?`,
		poem.TitleBengali,
		poem.TitleEnglish,
		poem.Slug,
		poem.Content,
		poem.Description,
		nullString(poem.CategoryID),
		poem.CoverImageURL,
		poem.AudioURL,
		poem.ReadingTimeMinutes,
		boolToInt(poem.IsPublished),
		nullTimeString(poem.PublishDate),
		boolToInt(poem.Featured),
		formatTime(poem.UpdatedAt),
		poem.ID,
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

// DeletePoem removes a poem and its tag links.
func (s *Store) DeletePoem(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM poems WHERE id = ?`, id)
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

// ListPoems returns one page of poems, most recently published
// first; drafts sort last by creation time.
func (s *Store) ListPoems(ctx context.Context, filter store.ContentFilter, page store.PageRequest) (*store.Page[*domain.Poem], error) {
	where, args := contentWhere("p", filter)

	var total int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM poems p`+where, args...).Scan(&total)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+poemColumns+poemFrom+where+
			` ORDER BY p.publish_date IS NULL, p.publish_date DESC, p.created_at DESC LIMIT ? OFFSET ?`,
		append(args, page.Limit, page.Offset())...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*domain.Poem{}
	for rows.Next() {
		p, err := scanPoem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &store.Page[*domain.Poem]{
		Items: items,
		Total: total,
		Num:   page.Page,
		Limit: page.Limit,
	}, nil
}

// IncrementPoemViews bumps the view counter by one.
func (s *Store) IncrementPoemViews(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE poems SET view_count = view_count + 1 WHERE id = ?`, id)
	return err
}

// contentWhere builds the WHERE clause shared by content listings.
// alias is the table alias used in the surrounding query.
func contentWhere(alias string, filter store.ContentFilter) (string, []any) {
	clauses := []string{}
	args := []any{}

	if filter.PublishedOnly {
		clauses = append(clauses, alias+".is_published = 1")
	}
	if filter.CategoryID != "" {
		clauses = append(clauses, alias+".category_id = ?")
		args = append(args, filter.CategoryID)
	}
	if filter.AlbumID != "" {
		clauses = append(clauses, alias+".album_id = ?")
		args = append(args, filter.AlbumID)
	}
	if filter.Featured != nil {
		clauses = append(clauses, alias+".featured = ?")
		args = append(args, boolToInt(*filter.Featured))
	}

	if len(clauses) == 0 {
		return "", args
	}

	where := " WHERE " + clauses[0]
	for _, c := range clauses[1:] {
		where += " AND " + c
	}
	return where, args
}
