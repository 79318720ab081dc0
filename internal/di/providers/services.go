package providers

import (
	"github.com/samber/do/v2"

	"github.com/banglakobita/kobita-server/internal/auth"
	"github.com/banglakobita/kobita-server/internal/config"
	"github.com/banglakobita/kobita-server/internal/logger"
	"github.com/banglakobita/kobita-server/internal/service"
	"github.com/banglakobita/kobita-server/internal/upload"
	"github.com/banglakobita/kobita-server/internal/validation"
)

// ProvideValidator provides the request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	limiter := do.MustInvoke[*LoginLimiterHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokenService, limiter.KeyedRateLimiter, v, log.Logger), nil
}

// ProvidePoemService provides the poem service.
func ProvidePoemService(i do.Injector) (*service.PoemService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewPoemService(storeHandle.Store, v, log.Logger), nil
}

// ProvideStoryService provides the story service.
func ProvideStoryService(i do.Injector) (*service.StoryService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewStoryService(storeHandle.Store, v, log.Logger), nil
}

// ProvideNovelService provides the novel service.
func ProvideNovelService(i do.Injector) (*service.NovelService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewNovelService(storeHandle.Store, v, log.Logger), nil
}

// ProvideMusicService provides the music service.
func ProvideMusicService(i do.Injector) (*service.MusicService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewMusicService(storeHandle.Store, v, log.Logger), nil
}

// ProvideTaxonomyService provides the taxonomy service.
func ProvideTaxonomyService(i do.Injector) (*service.TaxonomyService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTaxonomyService(storeHandle.Store, v, log.Logger), nil
}

// ProvideStatsService provides the stats service.
func ProvideStatsService(i do.Injector) (*service.StatsService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewStatsService(storeHandle.Store, log.Logger), nil
}

// ProvideUploadService provides file upload storage and processing.
func ProvideUploadService(i do.Injector) (*upload.Service, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	storage, err := upload.NewStorage(cfg.Upload.Path)
	if err != nil {
		return nil, err
	}

	return upload.NewService(storage, cfg.Upload.MaxBytes, log.Logger), nil
}
