package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/banglakobita/kobita-server/internal/errors"
)

func TestMusicService_CreateTrack(t *testing.T) {
	env := setupTest(t)
	env.register(t, "admin", "admin@example.com")
	ctx := context.Background()

	track, err := env.music.CreateTrack(ctx, CreateTrackRequest{
		TitleBengali:    "আমার ভাইয়ের রক্তে রাঙানো",
		TitleEnglish:    "Ekusher Gaan",
		ArtistName:      "আব্দুল লতিফ",
		AudioURL:        "/uploads/ekusher-gaan.mp3",
		DurationSeconds: 312,
		IsPublished:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, "ekusher-gaan", track.Slug)
	assert.Equal(t, 312, track.DurationSeconds)
}

func TestMusicService_CreateTrack_UnknownAlbum(t *testing.T) {
	env := setupTest(t)

	_, err := env.music.CreateTrack(context.Background(), CreateTrackRequest{
		TitleBengali: "গান",
		TitleEnglish: "Song",
		AudioURL:     "/uploads/song.mp3",
		AlbumID:      "album-missing",
	})
	var domainErr *domainerrors.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domainerrors.CodeNotFound, domainErr.Code)
}

func TestMusicService_Albums(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	album, err := env.music.CreateAlbum(ctx, CreateAlbumRequest{
		TitleBengali: "গীতবিতান",
		TitleEnglish: "Gitabitan",
	})
	require.NoError(t, err)
	assert.Equal(t, "gitabitan", album.Slug)

	for _, title := range []string{"First Song", "Second Song"} {
		_, err := env.music.CreateTrack(ctx, CreateTrackRequest{
			TitleBengali: "গান",
			TitleEnglish: title,
			AudioURL:     "/uploads/x.mp3",
			AlbumID:      album.ID,
			IsPublished:  true,
		})
		require.NoError(t, err)
	}

	got, err := env.music.GetAlbumBySlug(ctx, album.Slug, false)
	require.NoError(t, err)
	assert.Equal(t, 2, got.TotalTracks)
	assert.Len(t, got.Tracks, 2)

	inAlbum, err := env.music.ListTracks(ctx, ListOptions{AlbumID: album.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, inAlbum.Total)
}

func TestMusicService_DeleteAlbum_KeepsTracks(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	album, err := env.music.CreateAlbum(ctx, CreateAlbumRequest{
		TitleBengali: "গীতবিতান",
		TitleEnglish: "Gitabitan",
	})
	require.NoError(t, err)

	track, err := env.music.CreateTrack(ctx, CreateTrackRequest{
		TitleBengali: "গান",
		TitleEnglish: "Orphan Song",
		AudioURL:     "/uploads/x.mp3",
		AlbumID:      album.ID,
	})
	require.NoError(t, err)

	require.NoError(t, env.music.DeleteAlbum(ctx, album.ID))

	got, err := env.music.GetTrack(ctx, track.ID)
	require.NoError(t, err)
	assert.Empty(t, got.AlbumID)
}

func TestMusicService_RecordPlay(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	track, err := env.music.CreateTrack(ctx, CreateTrackRequest{
		TitleBengali: "গান",
		TitleEnglish: "Played Song",
		AudioURL:     "/uploads/x.mp3",
		IsPublished:  true,
	})
	require.NoError(t, err)

	require.NoError(t, env.music.RecordPlay(ctx, track.Slug))
	require.NoError(t, env.music.RecordPlay(ctx, track.Slug))

	got, err := env.music.GetTrack(ctx, track.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.PlayCount)
	assert.Equal(t, 0, got.ViewCount)
}

func TestMusicService_RecordPlay_Draft(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	track, err := env.music.CreateTrack(ctx, CreateTrackRequest{
		TitleBengali: "গান",
		TitleEnglish: "Draft Song",
		AudioURL:     "/uploads/x.mp3",
	})
	require.NoError(t, err)

	err = env.music.RecordPlay(ctx, track.Slug)
	var domainErr *domainerrors.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domainerrors.CodeNotFound, domainErr.Code)
}

func TestMusicService_UpdateTrack_MoveToAlbum(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	album, err := env.music.CreateAlbum(ctx, CreateAlbumRequest{
		TitleBengali: "গীতবিতান",
		TitleEnglish: "Gitabitan",
	})
	require.NoError(t, err)

	track, err := env.music.CreateTrack(ctx, CreateTrackRequest{
		TitleBengali: "গান",
		TitleEnglish: "Loose Song",
		AudioURL:     "/uploads/x.mp3",
	})
	require.NoError(t, err)

	updated, err := env.music.UpdateTrack(ctx, track.ID, UpdateTrackRequest{AlbumID: &album.ID})
	require.NoError(t, err)
	assert.Equal(t, album.ID, updated.AlbumID)

	missing := "album-missing"
	_, err = env.music.UpdateTrack(ctx, track.ID, UpdateTrackRequest{AlbumID: &missing})
	var domainErr *domainerrors.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domainerrors.CodeNotFound, domainErr.Code)
}
