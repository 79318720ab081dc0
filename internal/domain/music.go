package domain

import "time"

// MusicTrack is an audio track, optionally belonging to an album.
// ViewCount counts detail fetches; PlayCount counts explicit play events.
type MusicTrack struct {
	Entity
	Publishable
	TitleBengali    string `json:"title_bengali"`
	TitleEnglish    string `json:"title_english,omitempty"`
	Slug            string `json:"slug"`
	Description     string `json:"description,omitempty"`
	ArtistName      string `json:"artist_name,omitempty"`
	AlbumID         string `json:"album_id,omitempty"`
	CategoryID      string `json:"category_id,omitempty"`
	CategoryName    string `json:"category_name,omitempty"`
	AudioURL        string `json:"audio_url"`
	CoverImageURL   string `json:"cover_image_url,omitempty"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`
	Lyrics          string `json:"lyrics,omitempty"`
	ViewCount       int    `json:"view_count"`
	PlayCount       int    `json:"play_count"`
}

// MusicAlbum groups tracks. TotalTracks is maintained by the store as
// tracks are assigned to or removed from the album.
type MusicAlbum struct {
	Entity
	TitleBengali  string     `json:"title_bengali"`
	TitleEnglish  string     `json:"title_english,omitempty"`
	Slug          string     `json:"slug"`
	Description   string     `json:"description,omitempty"`
	CoverImageURL string     `json:"cover_image_url,omitempty"`
	ReleaseDate   *time.Time `json:"release_date,omitempty"`
	TotalTracks   int        `json:"total_tracks"`
}
