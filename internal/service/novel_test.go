package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banglakobita/kobita-server/internal/domain"
	domainerrors "github.com/banglakobita/kobita-server/internal/errors"
)

func createTestNovel(t *testing.T, env *testEnv, authorID string, published bool) *domain.Novel {
	t.Helper()
	novel, err := env.novels.Create(context.Background(), authorID, CreateNovelRequest{
		TitleBengali: "শেষের কবিতা",
		TitleEnglish: "The Last Poem",
		Synopsis:     "অমিত ও লাবণ্যের গল্প",
		IsPublished:  published,
	})
	require.NoError(t, err)
	return novel
}

func TestNovelService_Chapters(t *testing.T) {
	env := setupTest(t)
	admin := env.register(t, "rabindra", "rabindra@example.com")
	ctx := context.Background()

	novel := createTestNovel(t, env, admin.User.ID, true)

	for n := 1; n <= 3; n++ {
		_, err := env.novels.AddChapter(ctx, novel.ID, CreateChapterRequest{
			ChapterNumber: n,
			TitleBengali:  "অধ্যায়",
			Content:       "chapter body",
			IsPublished:   n < 3,
		})
		require.NoError(t, err)
	}

	got, err := env.novels.GetBySlug(ctx, novel.Slug, false)
	require.NoError(t, err)
	assert.Equal(t, 3, got.TotalChapters)

	public, err := env.novels.ListChapters(ctx, novel.ID, false)
	require.NoError(t, err)
	assert.Len(t, public, 2)

	all, err := env.novels.ListChapters(ctx, novel.ID, true)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestNovelService_AddChapter_DuplicateNumber(t *testing.T) {
	env := setupTest(t)
	admin := env.register(t, "rabindra", "rabindra@example.com")
	ctx := context.Background()

	novel := createTestNovel(t, env, admin.User.ID, true)

	req := CreateChapterRequest{ChapterNumber: 1, TitleBengali: "অধ্যায় এক", Content: "body"}
	_, err := env.novels.AddChapter(ctx, novel.ID, req)
	require.NoError(t, err)

	_, err = env.novels.AddChapter(ctx, novel.ID, req)
	var domainErr *domainerrors.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domainerrors.CodeConflict, domainErr.Code)
}

func TestNovelService_GetChapter(t *testing.T) {
	env := setupTest(t)
	admin := env.register(t, "rabindra", "rabindra@example.com")
	ctx := context.Background()

	novel := createTestNovel(t, env, admin.User.ID, true)
	_, err := env.novels.AddChapter(ctx, novel.ID, CreateChapterRequest{
		ChapterNumber: 1,
		TitleBengali:  "অধ্যায় এক",
		Content:       "chapter body",
		IsPublished:   true,
	})
	require.NoError(t, err)
	_, err = env.novels.AddChapter(ctx, novel.ID, CreateChapterRequest{
		ChapterNumber: 2,
		TitleBengali:  "অধ্যায় দুই",
		Content:       "draft body",
	})
	require.NoError(t, err)

	chapter, err := env.novels.GetChapter(ctx, novel.Slug, 1, false)
	require.NoError(t, err)
	assert.Equal(t, 1, chapter.ChapterNumber)
	assert.Equal(t, 1, chapter.ViewCount)

	// Draft chapters stay hidden from public reads.
	_, err = env.novels.GetChapter(ctx, novel.Slug, 2, false)
	var domainErr *domainerrors.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domainerrors.CodeNotFound, domainErr.Code)

	draft, err := env.novels.GetChapter(ctx, novel.Slug, 2, true)
	require.NoError(t, err)
	assert.Equal(t, 0, draft.ViewCount)
}

func TestNovelService_GetChapter_DraftNovelHidesChapters(t *testing.T) {
	env := setupTest(t)
	admin := env.register(t, "rabindra", "rabindra@example.com")
	ctx := context.Background()

	novel := createTestNovel(t, env, admin.User.ID, false)
	_, err := env.novels.AddChapter(ctx, novel.ID, CreateChapterRequest{
		ChapterNumber: 1,
		TitleBengali:  "অধ্যায় এক",
		Content:       "body",
		IsPublished:   true,
	})
	require.NoError(t, err)

	_, err = env.novels.GetChapter(ctx, novel.Slug, 1, false)
	var domainErr *domainerrors.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domainerrors.CodeNotFound, domainErr.Code)
}

func TestNovelService_Update_Completed(t *testing.T) {
	env := setupTest(t)
	admin := env.register(t, "rabindra", "rabindra@example.com")
	ctx := context.Background()

	novel := createTestNovel(t, env, admin.User.ID, true)
	assert.False(t, novel.Completed)

	completed := true
	updated, err := env.novels.Update(ctx, novel.ID, UpdateNovelRequest{Completed: &completed})
	require.NoError(t, err)
	assert.True(t, updated.Completed)
}

func TestNovelService_UpdateChapter(t *testing.T) {
	env := setupTest(t)
	admin := env.register(t, "rabindra", "rabindra@example.com")
	ctx := context.Background()

	novel := createTestNovel(t, env, admin.User.ID, true)
	chapter, err := env.novels.AddChapter(ctx, novel.ID, CreateChapterRequest{
		ChapterNumber: 1,
		TitleBengali:  "অধ্যায় এক",
		Content:       "short",
	})
	require.NoError(t, err)

	newBody := "a much longer chapter body with more words in it"
	published := true
	updated, err := env.novels.UpdateChapter(ctx, chapter.ID, UpdateChapterRequest{
		Content:     &newBody,
		IsPublished: &published,
	})
	require.NoError(t, err)
	assert.Equal(t, newBody, updated.Content)
	assert.True(t, updated.IsPublished)
	assert.Equal(t, 1, updated.ChapterNumber)
}

func TestNovelService_Delete_RemovesChapters(t *testing.T) {
	env := setupTest(t)
	admin := env.register(t, "rabindra", "rabindra@example.com")
	ctx := context.Background()

	novel := createTestNovel(t, env, admin.User.ID, true)
	chapter, err := env.novels.AddChapter(ctx, novel.ID, CreateChapterRequest{
		ChapterNumber: 1,
		TitleBengali:  "অধ্যায় এক",
		Content:       "body",
	})
	require.NoError(t, err)

	require.NoError(t, env.novels.Delete(ctx, novel.ID))

	_, err = env.store.GetChapter(ctx, chapter.ID)
	require.Error(t, err)
}
