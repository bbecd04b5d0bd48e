package out

import (
	"context"

	composeout "photobooth/internal/modules/compose/port/out"
	effectin "photobooth/internal/modules/effect/port/in"
)

// PluginEffectHost bridges the compositor's effect port onto the
// effect module's plugin runtime.
type PluginEffectHost struct {
	effects effectin.Usecase
}

func NewPluginEffectHost(effects effectin.Usecase) composeout.EffectHost {
	return &PluginEffectHost{effects: effects}
}

func (h *PluginEffectHost) Apply(ctx context.Context, effectID string, jpegData []byte) ([]byte, error) {
	return h.effects.Apply(ctx, effectID, jpegData)
}
