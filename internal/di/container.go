// Package di provides dependency injection configuration for the kobita server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/banglakobita/kobita-server/internal/auth"
	"github.com/banglakobita/kobita-server/internal/config"
	"github.com/banglakobita/kobita-server/internal/di/providers"
	"github.com/banglakobita/kobita-server/internal/logger"
	"github.com/banglakobita/kobita-server/internal/service"
	"github.com/banglakobita/kobita-server/internal/upload"
	"github.com/banglakobita/kobita-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideValidator)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)
	do.Provide(injector, providers.ProvideLoginLimiter)

	// Business services
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvidePoemService)
	do.Provide(injector, providers.ProvideStoryService)
	do.Provide(injector, providers.ProvideNovelService)
	do.Provide(injector, providers.ProvideMusicService)
	do.Provide(injector, providers.ProvideTaxonomyService)
	do.Provide(injector, providers.ProvideStatsService)
	do.Provide(injector, providers.ProvideUploadService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle
// management. This triggers lazy initialization of every core service.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)
	_ = do.MustInvoke[*providers.LoginLimiterHandle](injector)

	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.PoemService](injector)
	_ = do.MustInvoke[*service.StoryService](injector)
	_ = do.MustInvoke[*service.NovelService](injector)
	_ = do.MustInvoke[*service.MusicService](injector)
	_ = do.MustInvoke[*service.TaxonomyService](injector)
	_ = do.MustInvoke[*service.StatsService](injector)
	_ = do.MustInvoke[*upload.Service](injector)

	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
