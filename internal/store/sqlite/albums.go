package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/banglakobita/kobita-server/internal/domain"
	"github.com/banglakobita/kobita-server/internal/store"
)

// albumColumns is the ordered list of columns selected in album queries.
// Must match the scan order in scanAlbum. The track count is computed from
// the tracks table.
const albumColumns = `a.id, a.title_bengali, a.title_english, a.slug, a.description,
	a.cover_image_url, a.release_date,
	(SELECT COUNT(*) FROM music_tracks WHERE album_id = a.id) AS total_tracks,
	a.created_at, a.updated_at`

const albumFrom = ` FROM music_albums a`

func scanAlbum(scanner interface{ Scan(dest ...any) error }) (*domain.MusicAlbum, error) {
	var a domain.MusicAlbum

	var (
		releaseDate sql.NullString
		createdAt   string
		updatedAt   string
	)

	err := scanner.Scan(
		&a.ID,
		&a.TitleBengali,
		&a.TitleEnglish,
		&a.Slug,
		&a.Description,
		&a.CoverImageURL,
		&releaseDate,
		&a.TotalTracks,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.ReleaseDate, err = parseNullableTime(releaseDate)
	if err != nil {
		return nil, err
	}
	a.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	a.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// CreateAlbum inserts a new album.
// Returns store.ErrAlreadyExists on duplicate slug.
func (s *Store) CreateAlbum(ctx context.Context, album *domain.MusicAlbum) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO music_albums (id, title_bengali, title_english, slug,
			description, cover_image_url, release_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		album.ID,
		album.TitleBengali,
		album.TitleEnglish,
		album.Slug,
		album.Description,
		album.CoverImageURL,
		nullTimeString(album.ReleaseDate),
		formatTime(album.CreatedAt),
		formatTime(album.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetAlbum retrieves an album by ID.
func (s *Store) GetAlbum(ctx context.Context, id string) (*domain.MusicAlbum, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+albumColumns+albumFrom+` WHERE a.id = ?`, id)

	a, err := scanAlbum(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetAlbumBySlug retrieves an album by slug.
func (s *Store) GetAlbumBySlug(ctx context.Context, slug string) (*domain.MusicAlbum, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+albumColumns+albumFrom+` WHERE a.slug = ?`, slug)

	a, err := scanAlbum(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateAlbum saves all mutable album fields.
func (s *Store) UpdateAlbum(ctx context.Context, album *domain.MusicAlbum) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE music_albums SET
			title_bengali = ?, title_english = ?, slug = ?, description = ?,
			cover_image_url = ?, release_date = ?, updated_at = ?
		WHERE id = ?`,
		album.TitleBengali,
		album.TitleEnglish,
		album.Slug,
		album.Description,
		album.CoverImageURL,
		nullTimeString(album.ReleaseDate),
		formatTime(album.UpdatedAt),
		album.ID,
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

// DeleteAlbum removes an album. Tracks keep existing with their album
// reference cleared by the foreign key.
func (s *Store) DeleteAlbum(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM music_albums WHERE id = ?`, id)
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

// ListAlbums returns all albums, newest release first with undated
// albums last.
func (s *Store) ListAlbums(ctx context.Context) ([]*domain.MusicAlbum, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+albumColumns+albumFrom+
			` ORDER BY a.release_date IS NULL, a.release_date DESC, a.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var albums []*domain.MusicAlbum
	for rows.Next() {
		a, err := scanAlbum(rows)
		if err != nil {
			return nil, err
		}
		albums = append(albums, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if albums == nil {
		albums = []*domain.MusicAlbum{}
	}

	return albums, nil
}
