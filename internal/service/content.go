package service

import (
	"errors"
	"strings"
	"time"

	domainerrors "github.com/banglakobita/kobita-server/internal/errors"
	"github.com/banglakobita/kobita-server/internal/store"
)

// wordsPerMinute is the reading speed used to estimate reading time.
const wordsPerMinute = 200

// readingTime estimates reading time in minutes from the body text.
// Any non-empty body takes at least a minute.
func readingTime(content string) int {
	words := len(strings.Fields(content))
	if words == 0 {
		return 0
	}
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	return minutes
}

// slugConflict maps a store uniqueness failure on create/update to the
// user-facing conflict error.
func slugConflict(err error, what string) error {
	if errors.Is(err, store.ErrAlreadyExists) {
		return domainerrors.Conflict(what + " with this slug already exists")
	}
	return err
}

// notFoundOr maps store.ErrNotFound to a user-facing not-found error.
func notFoundOr(err error, what string) error {
	if errors.Is(err, store.ErrNotFound) {
		return domainerrors.NotFound(what + " not found")
	}
	return err
}

// applyPublish transitions the publish flag from an update payload.
// Publishing stamps the publish date the first time only.
func applyPublish(isPublished *bool, current *bool, publishDate **time.Time) {
	if isPublished == nil {
		return
	}
	*current = *isPublished
	if *isPublished && *publishDate == nil {
		now := time.Now()
		*publishDate = &now
	}
}
