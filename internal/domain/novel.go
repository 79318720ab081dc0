package domain

// Novel is a serialized long-form work owning an ordered set of chapters.
// TotalChapters is maintained by the store as chapters come and go.
type Novel struct {
	Entity
	Publishable
	TitleBengali  string `json:"title_bengali"`
	TitleEnglish  string `json:"title_english,omitempty"`
	Slug          string `json:"slug"`
	Synopsis      string `json:"synopsis,omitempty"`
	CategoryID    string `json:"category_id,omitempty"`
	CategoryName  string `json:"category_name,omitempty"`
	AuthorID      string `json:"author_id,omitempty"`
	CoverImageURL string `json:"cover_image_url,omitempty"`
	TotalChapters int    `json:"total_chapters"`
	Completed     bool   `json:"completed"`
}

// NovelChapter is one chapter of a novel. ChapterNumber is unique within
// the owning novel; chapters are removed when the novel is deleted.
type NovelChapter struct {
	Entity
	Publishable
	NovelID            string `json:"novel_id"`
	ChapterNumber      int    `json:"chapter_number"`
	TitleBengali       string `json:"title_bengali"`
	TitleEnglish       string `json:"title_english,omitempty"`
	Content            string `json:"content"`
	ReadingTimeMinutes int    `json:"reading_time_minutes"`
	ViewCount          int    `json:"view_count"`
}
