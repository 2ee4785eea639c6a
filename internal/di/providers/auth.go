package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/colorhash/internal/auth"
	"github.com/listenupapp/colorhash/internal/config"
	"github.com/listenupapp/colorhash/internal/logger"
)

// AuthKey wraps the token signing key bytes.
type AuthKey []byte

// ProvideAuthKey loads or generates the token key in the data directory.
func ProvideAuthKey(i do.Injector) (AuthKey, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	key, err := auth.LoadOrGenerateKey(cfg.Data.Path)
	if err != nil {
		return nil, err
	}

	log.Info("Authentication key loaded", "token_duration", cfg.Auth.TokenDuration)

	return AuthKey(key), nil
}

// ProvideTokenService provides the PASETO admin token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	authKey := do.MustInvoke[AuthKey](i)

	return auth.NewTokenService([]byte(authKey), cfg.Auth.TokenDuration)
}
