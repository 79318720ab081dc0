package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/banglakobita/kobita-server/internal/domain"
	"github.com/banglakobita/kobita-server/internal/store"
)

// novelColumns is the ordered list of columns selected in novel queries.
// Must match the scan order in scanNovel. The chapter count is computed
// from the chapters table.
const novelColumns = `n.id, n.title_bengali, n.title_english, n.slug, n.synopsis,
	n.category_id, c.name, n.author_id, n.cover_image_url,
	(SELECT COUNT(*) FROM novel_chapters WHERE novel_id = n.id) AS total_chapters,
	n.completed, n.is_published, n.publish_date, n.featured,
	n.created_at, n.updated_at`

const novelFrom = ` FROM novels n LEFT JOIN categories c ON c.id = n.category_id`

func scanNovel(scanner interface{ Scan(dest ...any) error }) (*domain.Novel, error) {
	var n domain.Novel

	var (
		categoryID   sql.NullString
		categoryName sql.NullString
		authorID     sql.NullString
		completed    int
		isPublished  int
		publishDate  sql.NullString
		featured     int
		createdAt    string
		updatedAt    string
	)

	err := scanner.Scan(
		&n.ID,
		&n.TitleBengali,
		&n.TitleEnglish,
		&n.Slug,
		&n.Synopsis,
		&categoryID,
		&categoryName,
		&authorID,
		&n.CoverImageURL,
		&n.TotalChapters,
		&completed,
		&isPublished,
		&publishDate,
		&featured,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	n.CategoryID = categoryID.String
	n.CategoryName = categoryName.String
	n.AuthorID = authorID.String
	n.Completed = completed != 0
	n.IsPublished = isPublished != 0
	n.Featured = featured != 0

	n.PublishDate, err = parseNullableTime(publishDate)
	if err != nil {
		return nil, err
	}
	n.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	n.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &n, nil
}

// chapterColumns is the ordered list of columns selected in chapter queries.
// Must match the scan order in scanChapter.
const chapterColumns = `id, novel_id, chapter_number, title_bengali, title_english,
	content, reading_time_minutes, view_count, is_published, publish_date,
	featured, created_at, updated_at`

func scanChapter(scanner interface{ Scan(dest ...any) error }) (*domain.NovelChapter, error) {
	var ch domain.NovelChapter

	var (
		isPublished int
		publishDate sql.NullString
		featured    int
		createdAt   string
		updatedAt   string
	)

	err := scanner.Scan(
		&ch.ID,
		&ch.NovelID,
		&ch.ChapterNumber,
		&ch.TitleBengali,
		&ch.TitleEnglish,
		&ch.Content,
		&ch.ReadingTimeMinutes,
		&ch.ViewCount,
		&isPublished,
		&publishDate,
		&featured,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	ch.IsPublished = isPublished != 0
	ch.Featured = featured != 0

	ch.PublishDate, err = parseNullableTime(publishDate)
	if err != nil {
		return nil, err
	}
	ch.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	ch.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &ch, nil
}

// CreateNovel inserts a new novel.
// Returns store.ErrAlreadyExists on duplicate slug.
func (s *Store) CreateNovel(ctx context.Context, novel *domain.Novel) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO novels (id, title_bengali, title_english, slug, synopsis,
			category_id, author_id, cover_image_url, completed, is_published,
			publish_date, featured, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		novel.ID,
		novel.TitleBengali,
		novel.TitleEnglish,
		novel.Slug,
		novel.Synopsis,
		nullString(novel.CategoryID),
		nullString(novel.AuthorID),
		novel.CoverImageURL,
		boolToInt(novel.Completed),
		boolToInt(novel.IsPublished),
		nullTimeString(novel.PublishDate),
		boolToInt(novel.Featured),
		formatTime(novel.CreatedAt),
		formatTime(novel.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetNovel retrieves a novel by ID.
func (s *Store) GetNovel(ctx context.Context, id string) (*domain.Novel, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+novelColumns+novelFrom+` WHERE n.id = ?`, id)

	n, err := scanNovel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

// GetNovelBySlug retrieves a novel by slug.
func (s *Store) GetNovelBySlug(ctx context.Context, slug string) (*domain.Novel, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+novelColumns+novelFrom+` WHERE n.slug = ?`, slug)

	n, err := scanNovel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

// UpdateNovel saves all mutable novel fields.
func (s *Store) UpdateNovel(ctx context.Context, novel *domain.Novel) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE novels SET
			title_bengali = ?, title_english = ?, slug = ?, synopsis = ?,
			category_id = ?, cover_image_url = ?, completed = ?,
			is_published = ?, publish_date = ?, featured = ?, updated_at = ?
		WHERE id = ?`,
		novel.TitleBengali,
		novel.TitleEnglish,
		novel.Slug,
		novel.Synopsis,
		nullString(novel.CategoryID),
		novel.CoverImageURL,
		boolToInt(novel.Completed),
		boolToInt(novel.IsPublished),
		nullTimeString(novel.PublishDate),
		boolToInt(novel.Featured),
		formatTime(novel.UpdatedAt),
		novel.ID,
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

// DeleteNovel removes a novel. Its chapters cascade away.
func (s *Store) DeleteNovel(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM novels WHERE id = ?`, id)
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

// ListNovels returns one page of novels, most recently published
// first; drafts sort last by creation time.
func (s *Store) ListNovels(ctx context.Context, filter store.ContentFilter, page store.PageRequest) (*store.Page[*domain.Novel], error) {
	where, args := contentWhere("n", filter)

	var total int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM novels n`+where, args...).Scan(&total)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+novelColumns+novelFrom+where+
			` ORDER BY n.publish_date IS NULL, n.publish_date DESC, n.created_at DESC LIMIT ? OFFSET ?`,
		append(args, page.Limit, page.Offset())...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*domain.Novel{}
	for rows.Next() {
		n, err := scanNovel(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &store.Page[*domain.Novel]{
		Items: items,
		Total: total,
		Num:   page.Page,
		Limit: page.Limit,
	}, nil
}

// CreateChapter inserts a new chapter.
// Returns store.ErrAlreadyExists when the chapter number is taken.
func (s *Store) CreateChapter(ctx context.Context, chapter *domain.NovelChapter) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO novel_chapters (id, novel_id, chapter_number, title_bengali,
			title_english, content, reading_time_minutes, view_count,
			is_published, publish_date, featured, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		chapter.ID,
		chapter.NovelID,
		chapter.ChapterNumber,
		chapter.TitleBengali,
		chapter.TitleEnglish,
		chapter.Content,
		chapter.ReadingTimeMinutes,
		chapter.ViewCount,
		boolToInt(chapter.IsPublished),
		nullTimeString(chapter.PublishDate),
		boolToInt(chapter.Featured),
		formatTime(chapter.CreatedAt),
		formatTime(chapter.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetChapter retrieves a chapter by ID.
func (s *Store) GetChapter(ctx context.Context, id string) (*domain.NovelChapter, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+chapterColumns+` FROM novel_chapters WHERE id = ?`, id)

	ch, err := scanChapter(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ch, nil
}

// GetChapterByNumber retrieves a chapter by its number within a novel.
func (s *Store) GetChapterByNumber(ctx context.Context, novelID string, number int) (*domain.NovelChapter, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+chapterColumns+` FROM novel_chapters WHERE novel_id = ? AND chapter_number = ?`,
		novelID, number)

	ch, err := scanChapter(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ch, nil
}

// UpdateChapter saves all mutable chapter fields.
func (s *Store) UpdateChapter(ctx context.Context, chapter *domain.NovelChapter) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE novel_chapters SET
			chapter_number = ?, title_bengali = ?, title_english = ?, content = ?,
			reading_time_minutes = ?, is_published = ?, publish_date = ?,
			featured = ?, updated_at = ?
		WHERE id = ?`,
		chapter.ChapterNumber,
		chapter.TitleBengali,
		chapter.TitleEnglish,
		chapter.Content,
		chapter.ReadingTimeMinutes,
		boolToInt(chapter.IsPublished),
		nullTimeString(chapter.PublishDate),
		boolToInt(chapter.Featured),
		formatTime(chapter.UpdatedAt),
		chapter.ID,
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

// DeleteChapter removes a chapter.
func (s *Store) DeleteChapter(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM novel_chapters WHERE id = ?`, id)
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

// ListChapters returns a novel's chapters in reading order.
func (s *Store) ListChapters(ctx context.Context, novelID string, publishedOnly bool) ([]*domain.NovelChapter, error) {
	query := `SELECT ` + chapterColumns + ` FROM novel_chapters WHERE novel_id = ?`
	if publishedOnly {
		query += ` AND is_published = 1`
	}
	query += ` ORDER BY chapter_number ASC`

	rows, err := s.db.QueryContext(ctx, query, novelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chapters []*domain.NovelChapter
	for rows.Next() {
		ch, err := scanChapter(rows)
		if err != nil {
			return nil, err
		}
		chapters = append(chapters, ch)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if chapters == nil {
		chapters = []*domain.NovelChapter{}
	}

	return chapters, nil
}

// IncrementChapterViews bumps the view counter by one.
func (s *Store) IncrementChapterViews(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE novel_chapters SET view_count = view_count + 1 WHERE id = ?`, id)
	return err
}
