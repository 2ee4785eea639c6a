package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/colorhash/internal/config"
	"github.com/listenupapp/colorhash/internal/logger"
	"github.com/listenupapp/colorhash/internal/service"
	"github.com/listenupapp/colorhash/internal/validation"
)

// ProvideValidator provides the request validator.
func ProvideValidator(_ do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideInstanceService provides the instance service.
func ProvideInstanceService(i do.Injector) (*service.InstanceService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	cfg := do.MustInvoke[*config.Config](i)

	return service.NewInstanceService(storeHandle.Store, log.Logger, cfg), nil
}

// ProvidePresetService provides the preset service.
func ProvidePresetService(i do.Injector) (*service.PresetService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewPresetService(storeHandle.Store, validator, log.Logger), nil
}

// ProvideColorService provides the color service.
func ProvideColorService(i do.Injector) (*service.ColorService, error) {
	presets := do.MustInvoke[*service.PresetService](i)
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewColorService(presets, cfg.Palette, log.Logger), nil
}
