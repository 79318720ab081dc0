package domain

// Poem is a single published or draft poem. The Bengali title is the
// canonical one; the English title is optional and, when present, drives
// the slug.
type Poem struct {
	Entity
	Publishable
	TitleBengali       string `json:"title_bengali"`
	TitleEnglish       string `json:"title_english,omitempty"`
	Slug               string `json:"slug"`
	Content            string `json:"content"`
	Description        string `json:"description,omitempty"`
	CategoryID         string `json:"category_id,omitempty"`
	CategoryName       string `json:"category_name,omitempty"` // Joined from categories on detail reads
	AuthorID           string `json:"author_id,omitempty"`
	CoverImageURL      string `json:"cover_image_url,omitempty"`
	AudioURL           string `json:"audio_url,omitempty"`
	ReadingTimeMinutes int    `json:"reading_time_minutes"`
	ViewCount          int    `json:"view_count"`
}
