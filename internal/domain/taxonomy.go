package domain

// ContentType distinguishes which content kind a category or tag applies to.
type ContentType string

const (
	// ContentTypePoem marks taxonomy rows for poems.
	ContentTypePoem ContentType = "poem"
	// ContentTypeStory marks taxonomy rows for short stories.
	ContentTypeStory ContentType = "story"
	// ContentTypeNovel marks tag rows for novels.
	ContentTypeNovel ContentType = "novel"
	// ContentTypeMusic marks taxonomy rows for music tracks.
	ContentTypeMusic ContentType = "music"
)

// Category is read-mostly reference data grouping content within a kind.
type Category struct {
	Entity
	Name         string      `json:"name"`
	Slug         string      `json:"slug"`
	Description  string      `json:"description,omitempty"`
	Type         ContentType `json:"type"`
	IconURL      string      `json:"icon_url,omitempty"`
	DisplayOrder int         `json:"display_order"`
}

// Tag is a shared label attached to content through per-kind join tables.
// Slug is the source of truth; clients transform for display: "borsha" → "Borsha".
type Tag struct {
	Entity
	Name       string      `json:"name"`
	Slug       string      `json:"slug"`
	Type       ContentType `json:"type"`
	UsageCount int         `json:"usage_count"` // Denormalized count of rows carrying this tag
}
