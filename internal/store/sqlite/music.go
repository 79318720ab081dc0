package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/banglakobita/kobita-server/internal/domain"
	"github.com/banglakobita/kobita-server/internal/store"
)

// trackColumns is the ordered list of columns selected in track queries.
// Must match the scan order in scanTrack.
const trackColumns = `t.id, t.title_bengali, t.title_english, t.slug, t.description,
	t.artist_name, t.album_id, t.category_id, c.name, t.audio_url,
	t.cover_image_url, t.duration_seconds, t.lyrics, t.view_count, t.play_count,
	t.is_published, t.publish_date, t.featured, t.created_at, t.updated_at`

const trackFrom = ` FROM music_tracks t LEFT JOIN categories c ON c.id = t.category_id`

func scanTrack(scanner interface{ Scan(dest ...any) error }) (*domain.MusicTrack, error) {
	var t domain.MusicTrack

	var (
		albumID      sql.NullString
		categoryID   sql.NullString
		categoryName sql.NullString
		isPublished  int
		publishDate  sql.NullString
		featured     int
		createdAt    string
		updatedAt    string
	)

	err := scanner.Scan(
		&t.ID,
		&t.TitleBengali,
		&t.TitleEnglish,
		&t.Slug,
		&t.Description,
		&t.ArtistName,
		&albumID,
		&categoryID,
		&categoryName,
		&t.AudioURL,
		&t.CoverImageURL,
		&t.DurationSeconds,
		&t.Lyrics,
		&t.ViewCount,
		&t.PlayCount,
		&isPublished,
		&publishDate,
		&featured,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.AlbumID = albumID.String
	t.CategoryID = categoryID.String
	t.CategoryName = categoryName.String
	t.IsPublished = isPublished != 0
	t.Featured = featured != 0

	t.PublishDate, err = parseNullableTime(publishDate)
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

// CreateTrack inserts a new music track.
// Returns store.ErrAlreadyExists on duplicate slug.
func (s *Store) CreateTrack(ctx context.Context, track *domain.MusicTrack) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO music_tracks (id, title_bengali, title_english, slug,
			description, artist_name, album_id, category_id, audio_url,
			cover_image_url, duration_seconds, lyrics, view_count, play_count,
			is_published, publish_date, featured, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		track.ID,
		track.TitleBengali,
		track.TitleEnglish,
		track.Slug,
		track.Description,
		track.ArtistName,
		nullString(track.AlbumID),
		nullString(track.CategoryID),
		track.AudioURL,
		track.CoverImageURL,
		track.DurationSeconds,
		track.Lyrics,
		track.ViewCount,
		track.PlayCount,
		boolToInt(track.IsPublished),
		nullTimeString(track.PublishDate),
		boolToInt(track.Featured),
		formatTime(track.CreatedAt),
		formatTime(track.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetTrack retrieves a track by ID.
func (s *Store) GetTrack(ctx context.Context, id string) (*domain.MusicTrack, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+trackColumns+trackFrom+` WHERE t.id = ?`, id)

	t, err := scanTrack(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// GetTrackBySlug retrieves a track by slug.
func (s *Store) GetTrackBySlug(ctx context.Context, slug string) (*domain.MusicTrack, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+trackColumns+trackFrom+` WHERE t.slug = ?`, slug)

	t, err := scanTrack(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateTrack saves all mutable track fields.
func (s *Store) UpdateTrack(ctx context.Context, track *domain.MusicTrack) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE music_tracks SET
			title_bengali = ?, title_english = ?, slug = ?, description = ?,
			artist_name = ?, album_id = ?, category_id = ?, audio_url = ?,
			cover_image_url = ?, duration_seconds = ?, lyrics = ?,
			is_published = ?, publish_date = ?, featured = ?, updated_at = ?
		WHERE id = ?`,
		track.TitleBengali,
		track.TitleEnglish,
		track.Slug,
		track.Description,
		track.ArtistName,
		nullString(track.AlbumID),
		nullString(track.CategoryID),
		track.AudioURL,
		track.CoverImageURL,
		track.DurationSeconds,
		track.Lyrics,
		boolToInt(track.IsPublished),
		nullTimeString(track.PublishDate),
		boolToInt(track.Featured),
		formatTime(track.UpdatedAt),
		track.ID,
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

// DeleteTrack removes a track and its tag links.
func (s *Store) DeleteTrack(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM music_tracks WHERE id = ?`, id)
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

// ListTracks returns one page of tracks, most recently published
// first; drafts sort last by creation time.
func (s *Store) ListTracks(ctx context.Context, filter store.ContentFilter, page store.PageRequest) (*store.Page[*domain.MusicTrack], error) {
	where, args := contentWhere("t", filter)

	var total int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM music_tracks t`+where, args...).Scan(&total)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+trackColumns+trackFrom+where+
			` ORDER BY t.publish_date IS NULL, t.publish_date DESC, t.created_at DESC LIMIT ? OFFSET ?`,
		append(args, page.Limit, page.Offset())...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*domain.MusicTrack{}
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &store.Page[*domain.MusicTrack]{
		Items: items,
		Total: total,
		Num:   page.Page,
		Limit: page.Limit,
	}, nil
}

// IncrementTrackViews bumps the view counter by one.
func (s *Store) IncrementTrackViews(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE music_tracks SET view_count = view_count + 1 WHERE id = ?`, id)
	return err
}

// IncrementTrackPlays bumps the play counter by one.
func (s *Store) IncrementTrackPlays(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE music_tracks SET play_count = play_count + 1 WHERE id = ?`, id)
	return err
}
