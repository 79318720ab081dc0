// Package domain defines the entity types of the Bangla Kobita content platform.
package domain

import "time"

// Entity provides the identifier and timestamp fields shared by every
// persisted row. Embed it in any domain type backed by a table.
type Entity struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Touch updates the UpdatedAt timestamp to the current time.
// Call this whenever the underlying entity changes.
func (e *Entity) Touch() {
	e.UpdatedAt = time.Now()
}

// InitTimestamps sets both CreatedAt and UpdatedAt to now.
// Call this when creating a new entity.
func (e *Entity) InitTimestamps() {
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now
}

// Publishable provides the publish-state fields shared by all content kinds.
// A row is visible through public read endpoints only while IsPublished is true.
type Publishable struct {
	IsPublished bool       `json:"is_published"`
	PublishDate *time.Time `json:"publish_date,omitempty"`
	Featured    bool       `json:"featured"`
}

// MarkPublished flips the publish flag on and stamps the publish date
// if it has not been set before.
func (p *Publishable) MarkPublished() {
	p.IsPublished = true
	if p.PublishDate == nil {
		now := time.Now()
		p.PublishDate = &now
	}
}
