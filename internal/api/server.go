// Package api provides the HTTP API server and handlers for the Bangla
// Kobita content platform.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/banglakobita/kobita-server/internal/http/response"
	"github.com/banglakobita/kobita-server/internal/service"
	"github.com/banglakobita/kobita-server/internal/store"
	"github.com/banglakobita/kobita-server/internal/upload"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store           store.Store
	authService     *service.AuthService
	poemService     *service.PoemService
	storyService    *service.StoryService
	novelService    *service.NovelService
	musicService    *service.MusicService
	taxonomyService *service.TaxonomyService
	statsService    *service.StatsService
	uploadService   *upload.Service
	uploadDir       string
	corsOrigin      string
	router          *chi.Mux
	logger          *slog.Logger
}

// Services bundles the application services the server routes to.
type Services struct {
	Auth     *service.AuthService
	Poems    *service.PoemService
	Stories  *service.StoryService
	Novels   *service.NovelService
	Music    *service.MusicService
	Taxonomy *service.TaxonomyService
	Stats    *service.StatsService
	Uploads  *upload.Service
}

// NewServer creates a new HTTP server with all routes configured.
// uploadDir is served read-only under /uploads/.
func NewServer(store store.Store, services Services, uploadDir, corsOrigin string, logger *slog.Logger) *Server {
	s := &Server{
		store:           store,
		authService:     services.Auth,
		poemService:     services.Poems,
		storyService:    services.Stories,
		novelService:    services.Novels,
		musicService:    services.Music,
		taxonomyService: services.Taxonomy,
		statsService:    services.Stats,
		uploadService:   services.Uploads,
		uploadDir:       uploadDir,
		corsOrigin:      corsOrigin,
		router:          chi.NewRouter(),
		logger:          logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{s.corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Uploaded media.
	s.router.Handle("/uploads/*", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(s.uploadDir))))

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealthCheck)

		// Auth endpoints.
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
			r.With(s.requireAuth).Get("/verify", s.handleVerify)
		})

		// Public reads carry optional claims so admins see drafts.
		r.Group(func(r chi.Router) {
			r.Use(s.withClaims)

			r.Get("/poems", s.handleListPoems)
			r.Get("/poems/{slug}", s.handleGetPoem)

			r.Get("/stories", s.handleListStories)
			r.Get("/stories/{slug}", s.handleGetStory)
			r.Get("/stories/{slug}/content", s.handleGetStoryContent)

			r.Get("/novels", s.handleListNovels)
			r.Get("/novels/{slug}", s.handleGetNovel)
			r.Get("/novels/{slug}/chapters", s.handleListChapters)
			r.Get("/novels/{slug}/chapters/{number}", s.handleGetChapter)

			r.Get("/music/tracks", s.handleListTracks)
			r.Get("/music/tracks/{slug}", s.handleGetTrack)
			r.Post("/music/tracks/{slug}/play", s.handleRecordPlay)
			r.Get("/music/albums", s.handleListAlbums)
			r.Get("/music/albums/{slug}", s.handleGetAlbum)

			r.Get("/categories", s.handleListCategories)
			r.Get("/categories/{slug}", s.handleGetCategory)
			r.Get("/tags", s.handleListTags)
			r.Get("/content/{type}/{contentID}/tags", s.handleListContentTags)
		})

		// Content management.
		r.Route("/admin", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Use(s.requireAdmin)

			r.Post("/poems", s.handleCreatePoem)
			r.Patch("/poems/{id}", s.handleUpdatePoem)
			r.Delete("/poems/{id}", s.handleDeletePoem)

			r.Post("/stories", s.handleCreateStory)
			r.Patch("/stories/{id}", s.handleUpdateStory)
			r.Delete("/stories/{id}", s.handleDeleteStory)
			r.Get("/stories/{id}/versions", s.handleListStoryVersions)
			r.Post("/stories/{id}/content", s.handleAppendStoryContent)

			r.Post("/novels", s.handleCreateNovel)
			r.Patch("/novels/{id}", s.handleUpdateNovel)
			r.Delete("/novels/{id}", s.handleDeleteNovel)
			r.Post("/novels/{id}/chapters", s.handleCreateChapter)
			r.Patch("/chapters/{id}", s.handleUpdateChapter)
			r.Delete("/chapters/{id}", s.handleDeleteChapter)

			r.Post("/music/tracks", s.handleCreateTrack)
			r.Patch("/music/tracks/{id}", s.handleUpdateTrack)
			r.Delete("/music/tracks/{id}", s.handleDeleteTrack)
			r.Post("/music/albums", s.handleCreateAlbum)
			r.Patch("/music/albums/{id}", s.handleUpdateAlbum)
			r.Delete("/music/albums/{id}", s.handleDeleteAlbum)

			r.Post("/categories", s.handleCreateCategory)
			r.Patch("/categories/{id}", s.handleUpdateCategory)
			r.Delete("/categories/{id}", s.handleDeleteCategory)

			r.Post("/tags", s.handleCreateTag)
			r.Delete("/tags/{id}", s.handleDeleteTag)
			r.Post("/content/{type}/{contentID}/tags/{tagID}", s.handleAttachTag)
			r.Delete("/content/{type}/{contentID}/tags/{tagID}", s.handleDetachTag)

			r.Post("/uploads", s.handleUpload)
			r.Delete("/uploads/{filename}", s.handleDeleteUpload)

			r.Get("/stats", s.handleGetStats)
			r.Get("/users", s.handleListUsers)
			r.Patch("/users/{id}", s.handleUpdateUser)
		})
	})

	s.router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "route not found", s.logger)
	})
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Data(w, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}, s.logger)
}
