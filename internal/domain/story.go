package domain

import "time"

// ShortStory is the story header row. Body text lives in StoryContent so
// edits can be kept as an append-only version history.
type ShortStory struct {
	Entity
	Publishable
	TitleBengali       string `json:"title_bengali"`
	TitleEnglish       string `json:"title_english,omitempty"`
	Slug               string `json:"slug"`
	Summary            string `json:"summary,omitempty"`
	CategoryID         string `json:"category_id,omitempty"`
	CategoryName       string `json:"category_name,omitempty"`
	AuthorID           string `json:"author_id,omitempty"`
	CoverImageURL      string `json:"cover_image_url,omitempty"`
	ReadingTimeMinutes int    `json:"reading_time_minutes"`
	ViewCount          int    `json:"view_count"`
}

// StoryContent is one version of a story's body. Version 1 is created
// together with the story; edits append higher versions and never mutate
// earlier ones. Reads return the highest version.
type StoryContent struct {
	ID        string    `json:"id"`
	StoryID   string    `json:"story_id"`
	Content   string    `json:"content"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
}
