package upload

import (
	"context"
	"io"
	"log/slog"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/simonhull/audiometa"

	domainerrors "github.com/banglakobita/kobita-server/internal/errors"
)

// allowedTypes maps accepted MIME types to their canonical file extension.
var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"audio/mpeg": ".mp3",
	"audio/wav":  ".wav",
	"audio/mp4":  ".m4a",
}

// Result describes a stored upload.
type Result struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`

	// Audio metadata, filled best-effort for audio uploads.
	DurationSeconds int    `json:"duration_seconds,omitempty"`
	Title           string `json:"title,omitempty"`
	Artist          string `json:"artist,omitempty"`
	Album           string `json:"album,omitempty"`
}

// Service validates and stores uploads.
type Service struct {
	storage  *Storage
	maxBytes int64
	logger   *slog.Logger
}

// NewService creates an upload service backed by storage.
// maxBytes caps the accepted file size.
func NewService(storage *Storage, maxBytes int64, logger *slog.Logger) *Service {
	return &Service{
		storage:  storage,
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// MaxBytes returns the configured upload size cap.
func (s *Service) MaxBytes() int64 {
	return s.maxBytes
}

// Save validates the content type, stores the file under a random name
// keeping the original extension, and returns the public URL. Audio
// uploads are probed for duration and tags; probe failures are logged
// and never fail the upload.
func (s *Service) Save(ctx context.Context, originalName, contentType string, r io.Reader) (*Result, error) {
	mediaType := contentType
	if parsed, _, err := mime.ParseMediaType(contentType); err == nil {
		mediaType = parsed
	}

	canonicalExt, ok := allowedTypes[mediaType]
	if !ok {
		return nil, domainerrors.Validationf("unsupported file type %q", mediaType)
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = canonicalExt
	}

	filename := uuid.NewString() + ext

	// Reject uploads that exceed the cap while streaming. Reading one
	// byte past the limit distinguishes too-large from exactly-at-limit.
	limited := io.LimitReader(r, s.maxBytes+1)
	size, err := s.storage.Save(filename, limited)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "store upload")
	}
	if size > s.maxBytes {
		if err := s.storage.Delete(filename); err != nil {
			s.logger.Warn("failed to remove oversized upload", "filename", filename, "error", err)
		}
		return nil, domainerrors.Validationf("file exceeds maximum size of %d bytes", s.maxBytes)
	}

	result := &Result{
		Filename: filename,
		URL:      "/uploads/" + filename,
		Size:     size,
	}

	if strings.HasPrefix(mediaType, "audio/") {
		s.probeAudio(ctx, filename, result)
	}

	return result, nil
}

// Delete removes a previously stored upload by filename.
func (s *Service) Delete(filename string) error {
	return s.storage.Delete(filename)
}

// probeAudio reads duration and tags from a stored audio file.
func (s *Service) probeAudio(ctx context.Context, filename string, result *Result) {
	file, err := audiometa.OpenContext(ctx, s.storage.Path(filename))
	if err != nil {
		s.logger.Debug("audio probe failed", "filename", filename, "error", err)
		return
	}
	defer file.Close()

	result.DurationSeconds = int(file.Audio.Duration.Seconds())
	result.Title = file.Tags.Title
	result.Artist = file.Tags.Artist
	result.Album = file.Tags.Album
}
