package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/banglakobita/kobita-server/internal/api"
	"github.com/banglakobita/kobita-server/internal/config"
	"github.com/banglakobita/kobita-server/internal/logger"
	"github.com/banglakobita/kobita-server/internal/service"
	"github.com/banglakobita/kobita-server/internal/upload"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	services := api.Services{
		Auth:     do.MustInvoke[*service.AuthService](i),
		Poems:    do.MustInvoke[*service.PoemService](i),
		Stories:  do.MustInvoke[*service.StoryService](i),
		Novels:   do.MustInvoke[*service.NovelService](i),
		Music:    do.MustInvoke[*service.MusicService](i),
		Taxonomy: do.MustInvoke[*service.TaxonomyService](i),
		Stats:    do.MustInvoke[*service.StatsService](i),
		Uploads:  do.MustInvoke[*upload.Service](i),
	}

	handler := api.NewServer(storeHandle.Store, services, cfg.Upload.Path, cfg.Server.CORSOrigin, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv}, nil
}
