package providers

import (
	"github.com/samber/do/v2"

	"github.com/banglakobita/kobita-server/internal/auth"
	"github.com/banglakobita/kobita-server/internal/config"
	"github.com/banglakobita/kobita-server/internal/logger"
	"github.com/banglakobita/kobita-server/internal/ratelimit"
)

// AuthKey wraps the token key bytes.
type AuthKey []byte

// ProvideAuthKey returns the token encryption key. A key supplied through
// AUTH_TOKEN_KEY wins; otherwise one is generated and persisted under the
// data path.
func ProvideAuthKey(i do.Injector) (AuthKey, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if len(cfg.Auth.TokenKey) > 0 {
		log.Info("Token key loaded from configuration", "token_duration", cfg.Auth.TokenDuration)
		return AuthKey(cfg.Auth.TokenKey), nil
	}

	key, err := auth.LoadOrGenerateKey(cfg.Data.BasePath)
	if err != nil {
		return nil, err
	}
	cfg.Auth.TokenKey = key

	log.Info("Token key loaded", "token_duration", cfg.Auth.TokenDuration)

	return AuthKey(key), nil
}

// ProvideTokenService provides the PASETO token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	key := do.MustInvoke[AuthKey](i)

	return auth.NewTokenService([]byte(key), cfg.Auth.TokenDuration)
}

// LoginLimiterHandle wraps the login rate limiter with shutdown support.
type LoginLimiterHandle struct {
	*ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *LoginLimiterHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideLoginLimiter provides the per-IP login rate limiter.
// One attempt per two seconds with a burst of five absorbs normal retries
// while making credential stuffing slow.
func ProvideLoginLimiter(i do.Injector) (*LoginLimiterHandle, error) {
	return &LoginLimiterHandle{KeyedRateLimiter: ratelimit.New(0.5, 5)}, nil
}
