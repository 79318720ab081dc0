package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/banglakobita/kobita-server/internal/domain"
	domainerrors "github.com/banglakobita/kobita-server/internal/errors"
	"github.com/banglakobita/kobita-server/internal/id"
	"github.com/banglakobita/kobita-server/internal/slug"
	"github.com/banglakobita/kobita-server/internal/store"
	"github.com/banglakobita/kobita-server/internal/validation"
)

// MusicService manages tracks and albums.
type MusicService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewMusicService creates a new music service.
func NewMusicService(store store.Store, validator *validation.Validator, logger *slog.Logger) *MusicService {
	return &MusicService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// CreateTrackRequest contains the fields accepted when creating a track.
type CreateTrackRequest struct {
	TitleBengali    string `json:"title_bengali" validate:"required,max=256"`
	TitleEnglish    string `json:"title_english" validate:"max=256"`
	Description     string `json:"description"`
	ArtistName      string `json:"artist_name" validate:"max=128"`
	AlbumID         string `json:"album_id"`
	CategoryID      string `json:"category_id"`
	AudioURL        string `json:"audio_url" validate:"required"`
	CoverImageURL   string `json:"cover_image_url"`
	DurationSeconds int    `json:"duration_seconds" validate:"min=0"`
	Lyrics          string `json:"lyrics"`
	IsPublished     bool   `json:"is_published"`
	Featured        bool   `json:"featured"`
}

// UpdateTrackRequest contains the fields accepted when updating a track.
// Nil fields are left unchanged.
type UpdateTrackRequest struct {
	TitleBengali    *string `json:"title_bengali" validate:"omitempty,max=256"`
	TitleEnglish    *string `json:"title_english" validate:"omitempty,max=256"`
	Description     *string `json:"description"`
	ArtistName      *string `json:"artist_name" validate:"omitempty,max=128"`
	AlbumID         *string `json:"album_id"`
	CategoryID      *string `json:"category_id"`
	AudioURL        *string `json:"audio_url"`
	CoverImageURL   *string `json:"cover_image_url"`
	DurationSeconds *int    `json:"duration_seconds" validate:"omitempty,min=0"`
	Lyrics          *string `json:"lyrics"`
	IsPublished     *bool   `json:"is_published"`
	Featured        *bool   `json:"featured"`
}

// CreateAlbumRequest contains the fields accepted when creating an album.
type CreateAlbumRequest struct {
	TitleBengali  string     `json:"title_bengali" validate:"required,max=256"`
	TitleEnglish  string     `json:"title_english" validate:"max=256"`
	Description   string     `json:"description"`
	CoverImageURL string     `json:"cover_image_url"`
	ReleaseDate   *time.Time `json:"release_date"`
}

// UpdateAlbumRequest contains the fields accepted when updating an album.
// Nil fields are left unchanged.
type UpdateAlbumRequest struct {
	TitleBengali  *string    `json:"title_bengali" validate:"omitempty,max=256"`
	TitleEnglish  *string    `json:"title_english" validate:"omitempty,max=256"`
	Description   *string    `json:"description"`
	CoverImageURL *string    `json:"cover_image_url"`
	ReleaseDate   *time.Time `json:"release_date"`
}

// CreateTrack adds a new track.
func (s *MusicService) CreateTrack(ctx context.Context, req CreateTrackRequest) (*domain.MusicTrack, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	trackSlug := slug.Derive(req.TitleEnglish, req.TitleBengali)
	if trackSlug == "" {
		return nil, domainerrors.Validation("title must contain at least one letter or digit")
	}

	if req.AlbumID != "" {
		if _, err := s.store.GetAlbum(ctx, req.AlbumID); err != nil {
			return nil, notFoundOr(err, "album")
		}
	}

	trackID, err := id.Generate("track")
	if err != nil {
		return nil, fmt.Errorf("generate track ID: %w", err)
	}

	track := &domain.MusicTrack{
		TitleBengali:    req.TitleBengali,
		TitleEnglish:    req.TitleEnglish,
		Slug:            trackSlug,
		Description:     req.Description,
		ArtistName:      req.ArtistName,
		AlbumID:         req.AlbumID,
		CategoryID:      req.CategoryID,
		AudioURL:        req.AudioURL,
		CoverImageURL:   req.CoverImageURL,
		DurationSeconds: req.DurationSeconds,
		Lyrics:          req.Lyrics,
	}
	track.ID = trackID
	track.InitTimestamps()
	track.Featured = req.Featured
	if req.IsPublished {
		track.MarkPublished()
	}

	if err := s.store.CreateTrack(ctx, track); err != nil {
		return nil, slugConflict(err, "a track")
	}

	s.logger.Info("track created", "track_id", trackID, "slug", trackSlug)
	return track, nil
}

// GetTrack returns a track by ID regardless of publish state.
func (s *MusicService) GetTrack(ctx context.Context, trackID string) (*domain.MusicTrack, error) {
	track, err := s.store.GetTrack(ctx, trackID)
	if err != nil {
		return nil, notFoundOr(err, "track")
	}
	return track, nil
}

// GetTrackBySlug returns a track for listening. Unpublished tracks are
// invisible unless includeUnpublished is set. Public reads bump the view
// counter asynchronously.
func (s *MusicService) GetTrackBySlug(ctx context.Context, trackSlug string, includeUnpublished bool) (*domain.MusicTrack, error) {
	track, err := s.store.GetTrackBySlug(ctx, trackSlug)
	if err != nil {
		return nil, notFoundOr(err, "track")
	}
	if !track.IsPublished && !includeUnpublished {
		return nil, domainerrors.NotFound("track not found")
	}

	if !includeUnpublished {
		s.countTrackView(track.ID)
		track.ViewCount++
	}

	return track, nil
}

// ListTracks returns one page of tracks.
func (s *MusicService) ListTracks(ctx context.Context, opts ListOptions) (*store.Page[*domain.MusicTrack], error) {
	return s.store.ListTracks(ctx, opts.filter(), opts.pageRequest(store.DefaultMusicPageSize))
}

// UpdateTrack applies a partial update to a track.
func (s *MusicService) UpdateTrack(ctx context.Context, trackID string, req UpdateTrackRequest) (*domain.MusicTrack, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	track, err := s.store.GetTrack(ctx, trackID)
	if err != nil {
		return nil, notFoundOr(err, "track")
	}

	if req.AlbumID != nil && *req.AlbumID != "" {
		if _, err := s.store.GetAlbum(ctx, *req.AlbumID); err != nil {
			return nil, notFoundOr(err, "album")
		}
	}

	if req.TitleBengali != nil {
		track.TitleBengali = *req.TitleBengali
	}
	if req.TitleEnglish != nil {
		track.TitleEnglish = *req.TitleEnglish
	}
	if req.Description != nil {
		track.Description = *req.Description
	}
	if req.ArtistName != nil {
		track.ArtistName = *req.ArtistName
	}
	if req.AlbumID != nil {
		track.AlbumID = *req.AlbumID
	}
	if req.CategoryID != nil {
		track.CategoryID = *req.CategoryID
	}
	if req.AudioURL != nil {
		track.AudioURL = *req.AudioURL
	}
	if req.CoverImageURL != nil {
		track.CoverImageURL = *req.CoverImageURL
	}
	if req.DurationSeconds != nil {
		track.DurationSeconds = *req.DurationSeconds
	}
	if req.Lyrics != nil {
		track.Lyrics = *req.Lyrics
	}
	if req.Featured != nil {
		track.Featured = *req.Featured
	}
	applyPublish(req.IsPublished, &track.IsPublished, &track.PublishDate)
	track.Touch()

	if err := s.store.UpdateTrack(ctx, track); err != nil {
		return nil, slugConflict(notFoundOr(err, "track"), "a track")
	}

	return track, nil
}

// DeleteTrack removes a track.
func (s *MusicService) DeleteTrack(ctx context.Context, trackID string) error {
	if err := s.store.DeleteTrack(ctx, trackID); err != nil {
		return notFoundOr(err, "track")
	}
	s.logger.Info("track deleted", "track_id", trackID)
	return nil
}

// RecordPlay counts one play of a published track. Plays on drafts are
// rejected so the counter only reflects public listening.
func (s *MusicService) RecordPlay(ctx context.Context, trackSlug string) error {
	track, err := s.store.GetTrackBySlug(ctx, trackSlug)
	if err != nil {
		return notFoundOr(err, "track")
	}
	if !track.IsPublished {
		return domainerrors.NotFound("track not found")
	}
	return s.store.IncrementTrackPlays(ctx, track.ID)
}

// CreateAlbum adds a new album.
func (s *MusicService) CreateAlbum(ctx context.Context, req CreateAlbumRequest) (*domain.MusicAlbum, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	albumSlug := slug.Derive(req.TitleEnglish, req.TitleBengali)
	if albumSlug == "" {
		return nil, domainerrors.Validation("title must contain at least one letter or digit")
	}

	albumID, err := id.Generate("album")
	if err != nil {
		return nil, fmt.Errorf("generate album ID: %w", err)
	}

	album := &domain.MusicAlbum{
		TitleBengali:  req.TitleBengali,
		TitleEnglish:  req.TitleEnglish,
		Slug:          albumSlug,
		Description:   req.Description,
		CoverImageURL: req.CoverImageURL,
		ReleaseDate:   req.ReleaseDate,
	}
	album.ID = albumID
	album.InitTimestamps()

	if err := s.store.CreateAlbum(ctx, album); err != nil {
		return nil, slugConflict(err, "an album")
	}

	s.logger.Info("album created", "album_id", albumID, "slug", albumSlug)
	return album, nil
}

// GetAlbum returns an album by ID.
func (s *MusicService) GetAlbum(ctx context.Context, albumID string) (*domain.MusicAlbum, error) {
	album, err := s.store.GetAlbum(ctx, albumID)
	if err != nil {
		return nil, notFoundOr(err, "album")
	}
	return album, nil
}

// AlbumDetail is an album together with its track listing.
type AlbumDetail struct {
	*domain.MusicAlbum
	Tracks []*domain.MusicTrack `json:"tracks"`
}

// GetAlbumBySlug returns an album with its tracks. Draft tracks are left
// out of the listing unless includeUnpublished is set.
func (s *MusicService) GetAlbumBySlug(ctx context.Context, albumSlug string, includeUnpublished bool) (*AlbumDetail, error) {
	album, err := s.store.GetAlbumBySlug(ctx, albumSlug)
	if err != nil {
		return nil, notFoundOr(err, "album")
	}

	tracks, err := s.store.ListTracks(ctx, store.ContentFilter{
		PublishedOnly: !includeUnpublished,
		AlbumID:       album.ID,
	}, store.PageRequest{Page: 1, Limit: store.MaxPageSize})
	if err != nil {
		return nil, err
	}

	return &AlbumDetail{
		MusicAlbum: album,
		Tracks:     tracks.Items,
	}, nil
}

// ListAlbums returns every album, newest release first.
func (s *MusicService) ListAlbums(ctx context.Context) ([]*domain.MusicAlbum, error) {
	return s.store.ListAlbums(ctx)
}

// UpdateAlbum applies a partial update to an album.
func (s *MusicService) UpdateAlbum(ctx context.Context, albumID string, req UpdateAlbumRequest) (*domain.MusicAlbum, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	album, err := s.store.GetAlbum(ctx, albumID)
	if err != nil {
		return nil, notFoundOr(err, "album")
	}

	if req.TitleBengali != nil {
		album.TitleBengali = *req.TitleBengali
	}
	if req.TitleEnglish != nil {
		album.TitleEnglish = *req.TitleEnglish
	}
	if req.Description != nil {
		album.Description = *req.Description
	}
	if req.CoverImageURL != nil {
		album.CoverImageURL = *req.CoverImageURL
	}
	if req.ReleaseDate != nil {
		album.ReleaseDate = req.ReleaseDate
	}
	album.Touch()

	if err := s.store.UpdateAlbum(ctx, album); err != nil {
		return nil, slugConflict(notFoundOr(err, "album"), "an album")
	}

	return album, nil
}

// DeleteAlbum removes an album. Its tracks survive with the album link
// cleared.
func (s *MusicService) DeleteAlbum(ctx context.Context, albumID string) error {
	if err := s.store.DeleteAlbum(ctx, albumID); err != nil {
		return notFoundOr(err, "album")
	}
	s.logger.Info("album deleted", "album_id", albumID)
	return nil
}

func (s *MusicService) countTrackView(trackID string) {
	go func() {
		if err := s.store.IncrementTrackViews(context.Background(), trackID); err != nil {
			s.logger.Warn("failed to count track view", "track_id", trackID, "error", err)
		}
	}()
}
