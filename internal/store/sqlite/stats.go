package sqlite

import (
	"context"

	"github.com/banglakobita/kobita-server/internal/store"
)

// GetContentStats collects the catalog totals shown on the admin dashboard.
// The view total spans poems, stories, chapters and tracks.
func (s *Store) GetContentStats(ctx context.Context) (*store.ContentStats, error) {
	var stats store.ContentStats

	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM poems),
			(SELECT COUNT(*) FROM short_stories),
			(SELECT COUNT(*) FROM novels),
			(SELECT COUNT(*) FROM music_tracks),
			(SELECT COUNT(*) FROM users),
			(SELECT COALESCE(SUM(view_count), 0) FROM poems)
				+ (SELECT COALESCE(SUM(view_count), 0) FROM short_stories)
				+ (SELECT COALESCE(SUM(view_count), 0) FROM novel_chapters)
				+ (SELECT COALESCE(SUM(view_count), 0) FROM music_tracks)`,
	).Scan(
		&stats.TotalPoems,
		&stats.TotalStories,
		&stats.TotalNovels,
		&stats.TotalMusic,
		&stats.TotalUsers,
		&stats.TotalViews,
	)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
