package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banglakobita/kobita-server/internal/auth"
	"github.com/banglakobita/kobita-server/internal/ratelimit"
	"github.com/banglakobita/kobita-server/internal/service"
	"github.com/banglakobita/kobita-server/internal/store/sqlite"
	"github.com/banglakobita/kobita-server/internal/upload"
	"github.com/banglakobita/kobita-server/internal/validation"
)

// setupTestServer creates a server with all dependencies on temporary storage.
func setupTestServer(t *testing.T) *Server {
	t.Helper()

	tmpDir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s, err := sqlite.Open(filepath.Join(tmpDir, "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	key, err := auth.LoadOrGenerateKey(tmpDir)
	require.NoError(t, err)
	tokenService, err := auth.NewTokenService(key, time.Hour)
	require.NoError(t, err)

	limiter := ratelimit.New(100, 100)
	t.Cleanup(limiter.Stop)

	uploadDir := filepath.Join(tmpDir, "uploads")
	storage, err := upload.NewStorage(uploadDir)
	require.NoError(t, err)

	v := validation.New()

	services := Services{
		Auth:     service.NewAuthService(s, tokenService, limiter, v, logger),
		Poems:    service.NewPoemService(s, v, logger),
		Stories:  service.NewStoryService(s, v, logger),
		Novels:   service.NewNovelService(s, v, logger),
		Music:    service.NewMusicService(s, v, logger),
		Taxonomy: service.NewTaxonomyService(s, v, logger),
		Stats:    service.NewStatsService(s, logger),
		Uploads:  upload.NewService(storage, 1<<20, logger),
	}

	return NewServer(s, services, uploadDir, "*", logger)
}

// envelope mirrors the response body shape for decoding in tests.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Total   *int            `json:"total"`
	Page    *int            `json:"page"`
	Limit   *int            `json:"limit"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, server *Server, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	}
	return rec, env
}

// registerAdmin registers the first account, which becomes admin, and
// returns its bearer token.
func registerAdmin(t *testing.T, server *Server) string {
	t.Helper()
	rec, env := doJSON(t, server, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "admin",
		"email":    "admin@example.com",
		"password": "a long password",
	})
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealthCheck(t *testing.T) {
	server := setupTestServer(t)

	rec, env := doJSON(t, server, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var data map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "ok", data["status"])
	assert.NotEmpty(t, data["timestamp"])
}

func TestAuthFlow(t *testing.T) {
	server := setupTestServer(t)
	token := registerAdmin(t, server)

	// Verify returns the account.
	rec, env := doJSON(t, server, http.MethodGet, "/api/v1/auth/verify", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var user struct {
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, "admin", user.Username)
	assert.Equal(t, "admin", user.Role)

	// Login works with the same credentials.
	rec, _ = doJSON(t, server, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "admin@example.com",
		"password": "a long password",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	// Wrong password reads as 401.
	rec, env = doJSON(t, server, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "admin@example.com",
		"password": "the wrong password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotEmpty(t, env.Error)
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	server := setupTestServer(t)
	adminToken := registerAdmin(t, server)

	// Second registration is a viewer.
	rec, env := doJSON(t, server, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "reader",
		"email":    "reader@example.com",
		"password": "another password",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &resp))

	body := map[string]any{"title_bengali": "কবিতা", "title_english": "A Poem", "content": "body"}

	rec, _ = doJSON(t, server, http.MethodPost, "/api/v1/admin/poems", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = doJSON(t, server, http.MethodPost, "/api/v1/admin/poems", resp.Token, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = doJSON(t, server, http.MethodPost, "/api/v1/admin/poems", adminToken, body)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestPoemLifecycle(t *testing.T) {
	server := setupTestServer(t)
	token := registerAdmin(t, server)

	rec, env := doJSON(t, server, http.MethodPost, "/api/v1/admin/poems", token, map[string]any{
		"title_bengali": "সোনার তরী",
		"title_english": "The Golden Boat",
		"content":       "গগনে গরজে মেঘ",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var poem struct {
		ID          string `json:"id"`
		Slug        string `json:"slug"`
		IsPublished bool   `json:"is_published"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &poem))
	assert.Equal(t, "the-golden-boat", poem.Slug)
	assert.False(t, poem.IsPublished)

	// Drafts are invisible to anonymous readers but visible to the admin.
	rec, _ = doJSON(t, server, http.MethodGet, "/api/v1/poems/"+poem.Slug, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doJSON(t, server, http.MethodGet, "/api/v1/poems/"+poem.Slug, token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Publish, then the public can read it.
	rec, _ = doJSON(t, server, http.MethodPatch, "/api/v1/admin/poems/"+poem.ID, token, map[string]any{
		"is_published": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = doJSON(t, server, http.MethodGet, "/api/v1/poems/"+poem.Slug, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		ViewCount int `json:"view_count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, 1, got.ViewCount)

	// Listing carries pagination metadata.
	rec, env = doJSON(t, server, http.MethodGet, "/api/v1/poems", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.Total)
	assert.Equal(t, 1, *env.Total)
	require.NotNil(t, env.Page)
	assert.Equal(t, 1, *env.Page)

	// Delete.
	rec, _ = doJSON(t, server, http.MethodDelete, "/api/v1/admin/poems/"+poem.ID, token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, server, http.MethodGet, "/api/v1/poems/"+poem.Slug, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDuplicateSlugConflict(t *testing.T) {
	server := setupTestServer(t)
	token := registerAdmin(t, server)

	body := map[string]any{"title_bengali": "কবিতা", "title_english": "Same Title", "content": "body"}

	rec, _ := doJSON(t, server, http.MethodPost, "/api/v1/admin/poems", token, body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := doJSON(t, server, http.MethodPost, "/api/v1/admin/poems", token, body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.NotEmpty(t, env.Error)
}

func TestNovelChapterRoutes(t *testing.T) {
	server := setupTestServer(t)
	token := registerAdmin(t, server)

	rec, env := doJSON(t, server, http.MethodPost, "/api/v1/admin/novels", token, map[string]any{
		"title_bengali": "শেষের কবিতা",
		"title_english": "The Last Poem",
		"is_published":  true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var novel struct {
		ID   string `json:"id"`
		Slug string `json:"slug"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &novel))

	rec, _ = doJSON(t, server, http.MethodPost, "/api/v1/admin/novels/"+novel.ID+"/chapters", token, map[string]any{
		"chapter_number": 1,
		"title_bengali":  "প্রথম অধ্যায়",
		"content":        "chapter body",
		"is_published":   true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env = doJSON(t, server, http.MethodGet, "/api/v1/novels/"+novel.Slug+"/chapters/1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var chapter struct {
		ChapterNumber int `json:"chapter_number"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &chapter))
	assert.Equal(t, 1, chapter.ChapterNumber)

	rec, _ = doJSON(t, server, http.MethodGet, "/api/v1/novels/"+novel.Slug+"/chapters/0", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doJSON(t, server, http.MethodGet, "/api/v1/novels/"+novel.Slug+"/chapters/9", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTrackPlayRoute(t *testing.T) {
	server := setupTestServer(t)
	token := registerAdmin(t, server)

	rec, env := doJSON(t, server, http.MethodPost, "/api/v1/admin/music/tracks", token, map[string]any{
		"title_bengali": "গান",
		"title_english": "A Song",
		"audio_url":     "/uploads/song.mp3",
		"is_published":  true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var track struct {
		Slug string `json:"slug"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &track))

	rec, _ = doJSON(t, server, http.MethodPost, "/api/v1/music/tracks/"+track.Slug+"/play", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = doJSON(t, server, http.MethodGet, "/api/v1/music/tracks/"+track.Slug, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		PlayCount int `json:"play_count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, 1, got.PlayCount)
}

func TestUploadRoute(t *testing.T) {
	server := setupTestServer(t)
	token := registerAdmin(t, server)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {`form-data; name="file"; filename="cover.png"`},
		"Content-Type":        {"image/png"},
	})
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG\r\n\x1a\nfake image bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var result struct {
		Filename string `json:"filename"`
		URL      string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Contains(t, result.URL, "/uploads/")

	// Served back through the static route.
	getReq := httptest.NewRequest(http.MethodGet, result.URL, nil)
	getRec := httptest.NewRecorder()
	server.ServeHTTP(getRec, getReq)
	assert.Equal(t, http.StatusOK, getRec.Code)
}

func TestUnknownRoute(t *testing.T) {
	server := setupTestServer(t)

	rec, env := doJSON(t, server, http.MethodGet, "/api/v1/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, env.Error)
}

func TestStoryContentRoutes(t *testing.T) {
	server := setupTestServer(t)
	token := registerAdmin(t, server)

	rec, env := doJSON(t, server, http.MethodPost, "/api/v1/admin/stories", token, map[string]any{
		"title_bengali": "হৈমন্তী",
		"title_english": "Haimanti",
		"content":       "first draft",
		"is_published":  true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	var story struct {
		ID   string `json:"id"`
		Slug string `json:"slug"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &story))

	rec, _ = doJSON(t, server, http.MethodPost, "/api/v1/admin/stories/"+story.ID+"/content", token, map[string]string{
		"content": "second draft",
	})
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	rec, env = doJSON(t, server, http.MethodGet, "/api/v1/stories/"+story.Slug+"/content", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var content struct {
		Version int    `json:"version"`
		Content string `json:"content"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &content))
	assert.Equal(t, 2, content.Version)
	assert.Equal(t, "second draft", content.Content)
}

func TestAlbumDetailListsTracks(t *testing.T) {
	server := setupTestServer(t)
	token := registerAdmin(t, server)

	rec, env := doJSON(t, server, http.MethodPost, "/api/v1/admin/music/albums", token, map[string]string{
		"title_bengali": "গীতাঞ্জলি",
		"title_english": "Gitanjali",
	})
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	var album struct {
		ID   string `json:"id"`
		Slug string `json:"slug"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &album))

	rec, _ = doJSON(t, server, http.MethodPost, "/api/v1/admin/music/tracks", token, map[string]any{
		"title_bengali": "গান",
		"title_english": "Published Song",
		"audio_url":     "/uploads/a.mp3",
		"album_id":      album.ID,
		"is_published":  true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	rec, _ = doJSON(t, server, http.MethodPost, "/api/v1/admin/music/tracks", token, map[string]any{
		"title_bengali": "গান",
		"title_english": "Draft Song",
		"audio_url":     "/uploads/b.mp3",
		"album_id":      album.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	rec, env = doJSON(t, server, http.MethodGet, "/api/v1/music/albums/"+album.Slug, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var detail struct {
		TotalTracks int `json:"total_tracks"`
		Tracks      []struct {
			Slug string `json:"slug"`
		} `json:"tracks"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, 2, detail.TotalTracks)
	require.Len(t, detail.Tracks, 1)
	assert.Equal(t, "published-song", detail.Tracks[0].Slug)
}
