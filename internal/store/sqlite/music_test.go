package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/banglakobita/kobita-server/internal/domain"
	"github.com/banglakobita/kobita-server/internal/store"
)

func makeTrack(id, slug string) *domain.MusicTrack {
	now := time.Now()
	tr := &domain.MusicTrack{
		TitleBengali: "গান",
		Slug:         slug,
		ArtistName:   "শিল্পী",
		AudioURL:     "/uploads/track.mp3",
	}
	tr.ID = id
	tr.CreatedAt = now
	tr.UpdatedAt = now
	return tr
}

func makeAlbum(id, slug string) *domain.MusicAlbum {
	now := time.Now()
	a := &domain.MusicAlbum{
		TitleBengali: "অ্যালবাম",
		Slug:         slug,
	}
	a.ID = id
	a.CreatedAt = now
	a.UpdatedAt = now
	return a
}

func TestCreateGetTrack(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tr := makeTrack("track-1", "gaan-1")
	tr.DurationSeconds = 245
	tr.Lyrics = "প্রথম চরণ"
	if err := s.CreateTrack(ctx, tr); err != nil {
		t.Fatalf("CreateTrack: %v", err)
	}

	got, err := s.GetTrackBySlug(ctx, "gaan-1")
	if err != nil {
		t.Fatalf("GetTrackBySlug: %v", err)
	}
	if got.ArtistName != "শিল্পী" || got.DurationSeconds != 245 {
		t.Errorf("got %q/%d", got.ArtistName, got.DurationSeconds)
	}
}

func TestCreateTrackDuplicateSlug(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateTrack(ctx, makeTrack("track-1", "same")); err != nil {
		t.Fatalf("CreateTrack: %v", err)
	}
	if err := s.CreateTrack(ctx, makeTrack("track-2", "same")); err != store.ErrAlreadyExists {
		t.Errorf("err = %v, want ErrAlreadyExists", err)
	}
}

func TestAlbumTrackCount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateAlbum(ctx, makeAlbum("album-1", "album-1")); err != nil {
		t.Fatalf("CreateAlbum: %v", err)
	}

	for _, id := range []string{"track-1", "track-2"} {
		tr := makeTrack(id, id)
		tr.AlbumID = "album-1"
		if err := s.CreateTrack(ctx, tr); err != nil {
			t.Fatalf("CreateTrack: %v", err)
		}
	}

	got, err := s.GetAlbum(ctx, "album-1")
	if err != nil {
		t.Fatalf("GetAlbum: %v", err)
	}
	if got.TotalTracks != 2 {
		t.Errorf("TotalTracks = %d, want 2", got.TotalTracks)
	}
}

func TestDeleteAlbumKeepsTracks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateAlbum(ctx, makeAlbum("album-1", "album-1")); err != nil {
		t.Fatalf("CreateAlbum: %v", err)
	}
	tr := makeTrack("track-1", "gaan-1")
	tr.AlbumID = "album-1"
	if err := s.CreateTrack(ctx, tr); err != nil {
		t.Fatalf("CreateTrack: %v", err)
	}

	if err := s.DeleteAlbum(ctx, "album-1"); err != nil {
		t.Fatalf("DeleteAlbum: %v", err)
	}

	got, err := s.GetTrack(ctx, "track-1")
	if err != nil {
		t.Fatalf("GetTrack: %v", err)
	}
	if got.AlbumID != "" {
		t.Errorf("AlbumID = %q, want empty", got.AlbumID)
	}
}

func TestListTracksAlbumFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateAlbum(ctx, makeAlbum("album-1", "album-1")); err != nil {
		t.Fatalf("CreateAlbum: %v", err)
	}
	inAlbum := makeTrack("track-1", "gaan-1")
	inAlbum.AlbumID = "album-1"
	if err := s.CreateTrack(ctx, inAlbum); err != nil {
		t.Fatalf("CreateTrack: %v", err)
	}
	if err := s.CreateTrack(ctx, makeTrack("track-2", "gaan-2")); err != nil {
		t.Fatalf("CreateTrack: %v", err)
	}

	page := store.PageRequest{}
	page.Normalize(store.DefaultMusicPageSize)

	result, err := s.ListTracks(ctx, store.ContentFilter{AlbumID: "album-1"}, page)
	if err != nil {
		t.Fatalf("ListTracks: %v", err)
	}
	if result.Total != 1 || len(result.Items) != 1 {
		t.Fatalf("Total = %d, len = %d, want 1/1", result.Total, len(result.Items))
	}
	if result.Items[0].ID != "track-1" {
		t.Errorf("ID = %q", result.Items[0].ID)
	}
}

func TestTrackCounters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateTrack(ctx, makeTrack("track-1", "gaan-1")); err != nil {
		t.Fatalf("CreateTrack: %v", err)
	}

	if err := s.IncrementTrackViews(ctx, "track-1"); err != nil {
		t.Fatalf("IncrementTrackViews: %v", err)
	}
	if err := s.IncrementTrackPlays(ctx, "track-1"); err != nil {
		t.Fatalf("IncrementTrackPlays: %v", err)
	}
	if err := s.IncrementTrackPlays(ctx, "track-1"); err != nil {
		t.Fatalf("IncrementTrackPlays: %v", err)
	}

	got, err := s.GetTrack(ctx, "track-1")
	if err != nil {
		t.Fatalf("GetTrack: %v", err)
	}
	if got.ViewCount != 1 {
		t.Errorf("ViewCount = %d, want 1", got.ViewCount)
	}
	if got.PlayCount != 2 {
		t.Errorf("PlayCount = %d, want 2", got.PlayCount)
	}
}
