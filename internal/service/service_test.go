package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/banglakobita/kobita-server/internal/auth"
	"github.com/banglakobita/kobita-server/internal/ratelimit"
	"github.com/banglakobita/kobita-server/internal/store"
	"github.com/banglakobita/kobita-server/internal/store/sqlite"
	"github.com/banglakobita/kobita-server/internal/validation"
)

// testEnv bundles the services under test around one temporary database.
type testEnv struct {
	store     store.Store
	validator *validation.Validator
	auth      *AuthService
	poems     *PoemService
	stories   *StoryService
	novels    *NovelService
	music     *MusicService
	taxonomy  *TaxonomyService
	stats     *StatsService
}

func setupTest(t *testing.T) *testEnv {
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

	v := validation.New()

	return &testEnv{
		store:     s,
		validator: v,
		auth:      NewAuthService(s, tokenService, limiter, v, logger),
		poems:     NewPoemService(s, v, logger),
		stories:   NewStoryService(s, v, logger),
		novels:    NewNovelService(s, v, logger),
		music:     NewMusicService(s, v, logger),
		taxonomy:  NewTaxonomyService(s, v, logger),
		stats:     NewStatsService(s, logger),
	}
}

// register creates an account and returns the auth response.
func (e *testEnv) register(t *testing.T, username, email string) *AuthResponse {
	t.Helper()
	resp, err := e.auth.Register(context.Background(), RegisterRequest{
		Username: username,
		Email:    email,
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	return resp
}
