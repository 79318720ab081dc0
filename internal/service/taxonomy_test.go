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

func TestTaxonomyService_Categories(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	category, err := env.taxonomy.CreateCategory(ctx, CreateCategoryRequest{
		Name:         "Romantic",
		Type:         domain.ContentTypePoem,
		DisplayOrder: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "romantic", category.Slug)

	_, err = env.taxonomy.CreateCategory(ctx, CreateCategoryRequest{
		Name:         "Patriotic",
		Type:         domain.ContentTypePoem,
		DisplayOrder: 1,
	})
	require.NoError(t, err)

	_, err = env.taxonomy.CreateCategory(ctx, CreateCategoryRequest{
		Name: "Folk",
		Type: domain.ContentTypeMusic,
	})
	require.NoError(t, err)

	poemCategories, err := env.taxonomy.ListCategories(ctx, domain.ContentTypePoem)
	require.NoError(t, err)
	require.Len(t, poemCategories, 2)
	assert.Equal(t, "Patriotic", poemCategories[0].Name)

	all, err := env.taxonomy.ListCategories(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestTaxonomyService_CreateCategory_BadType(t *testing.T) {
	env := setupTest(t)

	_, err := env.taxonomy.CreateCategory(context.Background(), CreateCategoryRequest{
		Name: "Nonsense",
		Type: "movie",
	})
	var domainErr *domainerrors.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
}

func TestTaxonomyService_AttachDetachTag(t *testing.T) {
	env := setupTest(t)
	admin := env.register(t, "rabindra", "rabindra@example.com")
	ctx := context.Background()

	poem, err := env.poems.Create(ctx, admin.User.ID, CreatePoemRequest{
		TitleBengali: "বর্ষার কবিতা",
		TitleEnglish: "Monsoon Poem",
		Content:      "body",
	})
	require.NoError(t, err)

	tag, err := env.taxonomy.CreateTag(ctx, CreateTagRequest{Name: "Borsha", Type: domain.ContentTypePoem})
	require.NoError(t, err)
	assert.Equal(t, "borsha", tag.Slug)

	require.NoError(t, env.taxonomy.AttachTag(ctx, domain.ContentTypePoem, poem.ID, tag.ID))
	// Re-attaching is a no-op.
	require.NoError(t, env.taxonomy.AttachTag(ctx, domain.ContentTypePoem, poem.ID, tag.ID))

	attached, err := env.taxonomy.ListTagsForContent(ctx, domain.ContentTypePoem, poem.ID)
	require.NoError(t, err)
	require.Len(t, attached, 1)
	assert.Equal(t, 1, attached[0].UsageCount)

	require.NoError(t, env.taxonomy.DetachTag(ctx, domain.ContentTypePoem, poem.ID, tag.ID))

	err = env.taxonomy.DetachTag(ctx, domain.ContentTypePoem, poem.ID, tag.ID)
	var domainErr *domainerrors.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domainerrors.CodeNotFound, domainErr.Code)
}

func TestTaxonomyService_AttachTag_TypeMismatch(t *testing.T) {
	env := setupTest(t)
	admin := env.register(t, "rabindra", "rabindra@example.com")
	ctx := context.Background()

	poem, err := env.poems.Create(ctx, admin.User.ID, CreatePoemRequest{
		TitleBengali: "কবিতা",
		TitleEnglish: "A Poem",
		Content:      "body",
	})
	require.NoError(t, err)

	musicTag, err := env.taxonomy.CreateTag(ctx, CreateTagRequest{Name: "Folk", Type: domain.ContentTypeMusic})
	require.NoError(t, err)

	err = env.taxonomy.AttachTag(ctx, domain.ContentTypePoem, poem.ID, musicTag.ID)
	var domainErr *domainerrors.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
}

func TestTaxonomyService_AttachTag_MissingContent(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	tag, err := env.taxonomy.CreateTag(ctx, CreateTagRequest{Name: "Borsha", Type: domain.ContentTypePoem})
	require.NoError(t, err)

	err = env.taxonomy.AttachTag(ctx, domain.ContentTypePoem, "poem-missing", tag.ID)
	var domainErr *domainerrors.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domainerrors.CodeNotFound, domainErr.Code)
}

func TestTaxonomyService_SameSlugAcrossTypes(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	_, err := env.taxonomy.CreateTag(ctx, CreateTagRequest{Name: "Classic", Type: domain.ContentTypePoem})
	require.NoError(t, err)

	_, err = env.taxonomy.CreateTag(ctx, CreateTagRequest{Name: "Classic", Type: domain.ContentTypeMusic})
	require.NoError(t, err)

	_, err = env.taxonomy.CreateTag(ctx, CreateTagRequest{Name: "Classic", Type: domain.ContentTypePoem})
	var domainErr *domainerrors.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domainerrors.CodeConflict, domainErr.Code)
}

func TestStatsService_ContentStats(t *testing.T) {
	env := setupTest(t)
	admin := env.register(t, "rabindra", "rabindra@example.com")
	ctx := context.Background()

	_, err := env.poems.Create(ctx, admin.User.ID, CreatePoemRequest{
		TitleBengali: "কবিতা",
		TitleEnglish: "A Poem",
		Content:      "body",
		IsPublished:  true,
	})
	require.NoError(t, err)

	stats, err := env.stats.ContentStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalPoems)
	assert.Equal(t, 1, stats.TotalUsers)
	assert.Equal(t, 0, stats.TotalStories)
}

func TestTaxonomyService_NovelTags(t *testing.T) {
	env := setupTest(t)
	admin := env.register(t, "rabindranath", "rabi@example.com")
	ctx := context.Background()

	novel := createTestNovel(t, env, admin.User.ID, true)

	tag, err := env.taxonomy.CreateTag(ctx, CreateTagRequest{Name: "Classic", Type: domain.ContentTypeNovel})
	require.NoError(t, err)

	require.NoError(t, env.taxonomy.AttachTag(ctx, domain.ContentTypeNovel, novel.ID, tag.ID))

	attached, err := env.taxonomy.ListTagsForContent(ctx, domain.ContentTypeNovel, novel.ID)
	require.NoError(t, err)
	require.Len(t, attached, 1)
	assert.Equal(t, 1, attached[0].UsageCount)

	// A poem tag does not attach to a novel.
	poemTag, err := env.taxonomy.CreateTag(ctx, CreateTagRequest{Name: "Borsha", Type: domain.ContentTypePoem})
	require.NoError(t, err)
	err = env.taxonomy.AttachTag(ctx, domain.ContentTypeNovel, novel.ID, poemTag.ID)
	var domainErr *domainerrors.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

	require.NoError(t, env.taxonomy.DetachTag(ctx, domain.ContentTypeNovel, novel.ID, tag.ID))
}
