// Package store defines the persistence interface for the kobita server.
package store

import (
	"context"

	"github.com/banglakobita/kobita-server/internal/domain"
)

// ContentFilter narrows content listings.
type ContentFilter struct {
	PublishedOnly bool   // Hide unpublished content (public listings)
	CategoryID    string // Restrict to one category (empty for all)
	AlbumID       string // Restrict tracks to one album (empty for all)
	Featured      *bool  // Restrict by featured flag (nil for all)
}

// ContentStats summarizes the catalog for the admin dashboard.
type ContentStats struct {
	TotalPoems   int `json:"total_poems"`
	TotalStories int `json:"total_stories"`
	TotalNovels  int `json:"total_novels"`
	TotalMusic   int `json:"total_music"`
	TotalUsers   int `json:"total_users"`
	TotalViews   int `json:"total_views"`
}

// Store defines the interface for all persistence operations.
type Store interface {
	// Lifecycle
	Close() error

	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	ListUsers(ctx context.Context) ([]*domain.User, error)
	CountUsers(ctx context.Context) (int, error)

	// Categories
	CreateCategory(ctx context.Context, category *domain.Category) error
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error)
	ListCategories(ctx context.Context, contentType domain.ContentType) ([]*domain.Category, error)
	UpdateCategory(ctx context.Context, category *domain.Category) error
	DeleteCategory(ctx context.Context, id string) error

	// Tags
	CreateTag(ctx context.Context, tag *domain.Tag) error
	GetTag(ctx context.Context, id string) (*domain.Tag, error)
	GetTagBySlug(ctx context.Context, slug string) (*domain.Tag, error)
	ListTags(ctx context.Context, contentType domain.ContentType) ([]*domain.Tag, error)
	DeleteTag(ctx context.Context, id string) error
	AttachTag(ctx context.Context, contentType domain.ContentType, contentID, tagID string) error
	DetachTag(ctx context.Context, contentType domain.ContentType, contentID, tagID string) error
	ListTagsForContent(ctx context.Context, contentType domain.ContentType, contentID string) ([]*domain.Tag, error)

	// Poems
	CreatePoem(ctx context.Context, poem *domain.Poem) error
	GetPoem(ctx context.Context, id string) (*domain.Poem, error)
	GetPoemBySlug(ctx context.Context, slug string) (*domain.Poem, error)
	UpdatePoem(ctx context.Context, poem *domain.Poem) error
	DeletePoem(ctx context.Context, id string) error
	ListPoems(ctx context.Context, filter ContentFilter, page PageRequest) (*Page[*domain.Poem], error)
	IncrementPoemViews(ctx context.Context, id string) error

	// Short stories
	CreateStory(ctx context.Context, story *domain.ShortStory, content string) error
	GetStory(ctx context.Context, id string) (*domain.ShortStory, error)
	GetStoryBySlug(ctx context.Context, slug string) (*domain.ShortStory, error)
	UpdateStory(ctx context.Context, story *domain.ShortStory) error
	DeleteStory(ctx context.Context, id string) error
	ListStories(ctx context.Context, filter ContentFilter, page PageRequest) (*Page[*domain.ShortStory], error)
	IncrementStoryViews(ctx context.Context, id string) error
	GetStoryContent(ctx context.Context, storyID string) (*domain.StoryContent, error)
	ListStoryContentVersions(ctx context.Context, storyID string) ([]*domain.StoryContent, error)
	AddStoryContentVersion(ctx context.Context, storyID, content string) (*domain.StoryContent, error)

	// Novels
	CreateNovel(ctx context.Context, novel *domain.Novel) error
	GetNovel(ctx context.Context, id string) (*domain.Novel, error)
	GetNovelBySlug(ctx context.Context, slug string) (*domain.Novel, error)
	UpdateNovel(ctx context.Context, novel *domain.Novel) error
	DeleteNovel(ctx context.Context, id string) error
	ListNovels(ctx context.Context, filter ContentFilter, page PageRequest) (*Page[*domain.Novel], error)

	// Novel chapters
	CreateChapter(ctx context.Context, chapter *domain.NovelChapter) error
	GetChapter(ctx context.Context, id string) (*domain.NovelChapter, error)
	GetChapterByNumber(ctx context.Context, novelID string, number int) (*domain.NovelChapter, error)
	UpdateChapter(ctx context.Context, chapter *domain.NovelChapter) error
	DeleteChapter(ctx context.Context, id string) error
	ListChapters(ctx context.Context, novelID string, publishedOnly bool) ([]*domain.NovelChapter, error)
	IncrementChapterViews(ctx context.Context, id string) error

	// Music tracks
	CreateTrack(ctx context.Context, track *domain.MusicTrack) error
	GetTrack(ctx context.Context, id string) (*domain.MusicTrack, error)
	GetTrackBySlug(ctx context.Context, slug string) (*domain.MusicTrack, error)
	UpdateTrack(ctx context.Context, track *domain.MusicTrack) error
	DeleteTrack(ctx context.Context, id string) error
	ListTracks(ctx context.Context, filter ContentFilter, page PageRequest) (*Page[*domain.MusicTrack], error)
	IncrementTrackViews(ctx context.Context, id string) error
	IncrementTrackPlays(ctx context.Context, id string) error

	// Music albums
	CreateAlbum(ctx context.Context, album *domain.MusicAlbum) error
	GetAlbum(ctx context.Context, id string) (*domain.MusicAlbum, error)
	GetAlbumBySlug(ctx context.Context, slug string) (*domain.MusicAlbum, error)
	UpdateAlbum(ctx context.Context, album *domain.MusicAlbum) error
	DeleteAlbum(ctx context.Context, id string) error
	ListAlbums(ctx context.Context) ([]*domain.MusicAlbum, error)

	// Stats
	GetContentStats(ctx context.Context) (*ContentStats, error)
}
