package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/banglakobita/kobita-server/internal/domain"
	"github.com/banglakobita/kobita-server/internal/store"
)

func makeNovel(id, slug string) *domain.Novel {
	now := time.Now()
	n := &domain.Novel{
		TitleBengali: "উপন্যাস",
		Slug:         slug,
	}
	n.ID = id
	n.CreatedAt = now
	n.UpdatedAt = now
	return n
}

func makeChapter(id, novelID string, number int) *domain.NovelChapter {
	now := time.Now()
	ch := &domain.NovelChapter{
		NovelID:       novelID,
		ChapterNumber: number,
		TitleBengali:  "অধ্যায়",
		Content:       "অধ্যায়ের শরীর",
	}
	ch.ID = id
	ch.CreatedAt = now
	ch.UpdatedAt = now
	return ch
}

func TestCreateGetNovel(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateNovel(ctx, makeNovel("novel-1", "uponyash-1")); err != nil {
		t.Fatalf("CreateNovel: %v", err)
	}

	got, err := s.GetNovelBySlug(ctx, "uponyash-1")
	if err != nil {
		t.Fatalf("GetNovelBySlug: %v", err)
	}
	if got.ID != "novel-1" {
		t.Errorf("ID = %q", got.ID)
	}
	if got.TotalChapters != 0 {
		t.Errorf("TotalChapters = %d, want 0", got.TotalChapters)
	}
}

func TestNovelChapterCount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateNovel(ctx, makeNovel("novel-1", "uponyash-1")); err != nil {
		t.Fatalf("CreateNovel: %v", err)
	}
	for i := 1; i <= 3; i++ {
		ch := makeChapter("ch-"+string(rune('0'+i)), "novel-1", i)
		if err := s.CreateChapter(ctx, ch); err != nil {
			t.Fatalf("CreateChapter %d: %v", i, err)
		}
	}

	got, err := s.GetNovel(ctx, "novel-1")
	if err != nil {
		t.Fatalf("GetNovel: %v", err)
	}
	if got.TotalChapters != 3 {
		t.Errorf("TotalChapters = %d, want 3", got.TotalChapters)
	}

	if err := s.DeleteChapter(ctx, "ch-2"); err != nil {
		t.Fatalf("DeleteChapter: %v", err)
	}
	got, err = s.GetNovel(ctx, "novel-1")
	if err != nil {
		t.Fatalf("GetNovel: %v", err)
	}
	if got.TotalChapters != 2 {
		t.Errorf("TotalChapters = %d, want 2", got.TotalChapters)
	}
}

func TestCreateChapterDuplicateNumber(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateNovel(ctx, makeNovel("novel-1", "uponyash-1")); err != nil {
		t.Fatalf("CreateNovel: %v", err)
	}
	if err := s.CreateChapter(ctx, makeChapter("ch-1", "novel-1", 1)); err != nil {
		t.Fatalf("CreateChapter: %v", err)
	}

	err := s.CreateChapter(ctx, makeChapter("ch-2", "novel-1", 1))
	if err != store.ErrAlreadyExists {
		t.Errorf("err = %v, want ErrAlreadyExists", err)
	}
}

func TestGetChapterByNumber(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateNovel(ctx, makeNovel("novel-1", "uponyash-1")); err != nil {
		t.Fatalf("CreateNovel: %v", err)
	}
	if err := s.CreateChapter(ctx, makeChapter("ch-1", "novel-1", 7)); err != nil {
		t.Fatalf("CreateChapter: %v", err)
	}

	got, err := s.GetChapterByNumber(ctx, "novel-1", 7)
	if err != nil {
		t.Fatalf("GetChapterByNumber: %v", err)
	}
	if got.ID != "ch-1" {
		t.Errorf("ID = %q", got.ID)
	}

	if _, err := s.GetChapterByNumber(ctx, "novel-1", 8); err != store.ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListChaptersOrderAndFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateNovel(ctx, makeNovel("novel-1", "uponyash-1")); err != nil {
		t.Fatalf("CreateNovel: %v", err)
	}

	// Insert out of order; chapter 2 stays a draft.
	ch3 := makeChapter("ch-3", "novel-1", 3)
	ch3.MarkPublished()
	ch1 := makeChapter("ch-1", "novel-1", 1)
	ch1.MarkPublished()
	ch2 := makeChapter("ch-2", "novel-1", 2)
	for _, ch := range []*domain.NovelChapter{ch3, ch1, ch2} {
		if err := s.CreateChapter(ctx, ch); err != nil {
			t.Fatalf("CreateChapter: %v", err)
		}
	}

	all, err := s.ListChapters(ctx, "novel-1", false)
	if err != nil {
		t.Fatalf("ListChapters: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	if all[0].ChapterNumber != 1 || all[2].ChapterNumber != 3 {
		t.Errorf("order = %d..%d", all[0].ChapterNumber, all[2].ChapterNumber)
	}

	pub, err := s.ListChapters(ctx, "novel-1", true)
	if err != nil {
		t.Fatalf("ListChapters published: %v", err)
	}
	if len(pub) != 2 {
		t.Errorf("published len = %d, want 2", len(pub))
	}
}

func TestDeleteNovelCascadesChapters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateNovel(ctx, makeNovel("novel-1", "uponyash-1")); err != nil {
		t.Fatalf("CreateNovel: %v", err)
	}
	if err := s.CreateChapter(ctx, makeChapter("ch-1", "novel-1", 1)); err != nil {
		t.Fatalf("CreateChapter: %v", err)
	}

	if err := s.DeleteNovel(ctx, "novel-1"); err != nil {
		t.Fatalf("DeleteNovel: %v", err)
	}

	if _, err := s.GetChapter(ctx, "ch-1"); err != store.ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestIncrementChapterViews(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateNovel(ctx, makeNovel("novel-1", "uponyash-1")); err != nil {
		t.Fatalf("CreateNovel: %v", err)
	}
	if err := s.CreateChapter(ctx, makeChapter("ch-1", "novel-1", 1)); err != nil {
		t.Fatalf("CreateChapter: %v", err)
	}

	if err := s.IncrementChapterViews(ctx, "ch-1"); err != nil {
		t.Fatalf("IncrementChapterViews: %v", err)
	}
	got, err := s.GetChapter(ctx, "ch-1")
	if err != nil {
		t.Fatalf("GetChapter: %v", err)
	}
	if got.ViewCount != 1 {
		t.Errorf("ViewCount = %d, want 1", got.ViewCount)
	}
}
