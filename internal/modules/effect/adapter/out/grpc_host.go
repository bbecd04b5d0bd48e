package out

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"

	effectrpc "photobooth/internal/modules/effect/adapter/out/rpc"
	"photobooth/internal/modules/effect/domain"
	effectout "photobooth/internal/modules/effect/port/out"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
	// Full pages at A4 print resolution take longer to shuttle and filter.
	applyCallTimeout = 20 * time.Second
)

type GRPCHost struct{}

func NewGRPCHost() effectout.Host {
	return &GRPCHost{}
}

func (h *GRPCHost) CheckLifecycle(ctx context.Context, manifest domain.Manifest) error {
	client, closeFn, err := h.connect(ctx, manifest, defaultStartTimeout)
	if err != nil {
		return err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()
	if _, err := client.GetMetadata(callCtx); err != nil {
		return fmt.Errorf("get metadata: %w", err)
	}
	return nil
}

func (h *GRPCHost) GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error) {
	client, closeFn, err := h.connect(ctx, manifest, defaultStartTimeout)
	if err != nil {
		return domain.Metadata{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()

	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return domain.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}
	return domain.Metadata{Name: meta.Name, Version: meta.Version}, nil
}

func (h *GRPCHost) ListEffects(ctx context.Context, manifest domain.Manifest) ([]domain.EffectDescriptor, error) {
	client, closeFn, err := h.connect(ctx, manifest, defaultStartTimeout)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()

	response, err := client.ListEffects(callCtx)
	if err != nil {
		return nil, fmt.Errorf("list effects: %w", err)
	}
	out := make([]domain.EffectDescriptor, 0, len(response.Effects))
	for _, effect := range response.Effects {
		out = append(out, domain.EffectDescriptor{
			ID:          effect.ID,
			Title:       effect.Title,
			Description: effect.Description,
		})
	}
	return out, nil
}

func (h *GRPCHost) Apply(ctx context.Context, manifest domain.Manifest, effectID string, imageJPEG []byte) ([]byte, error) {
	client, closeFn, err := h.connect(ctx, manifest, defaultStartTimeout)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, applyCallTimeout)
	defer cancel()
	response, err := client.Apply(callCtx, &effectrpc.ApplyRequest{EffectID: effectID, ImageJPEG: imageJPEG})
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: effect %s", domain.ErrPluginTimeout, effectID)
		}
		return nil, fmt.Errorf("apply effect: %w", err)
	}
	if len(response.ImageJPEG) == 0 {
		return nil, fmt.Errorf("apply effect: plugin returned empty image")
	}
	return response.ImageJPEG, nil
}

func (h *GRPCHost) connect(ctx context.Context, manifest domain.Manifest, startTimeout time.Duration) (effectrpc.EffectPluginClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  effectrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          effectrpc.PluginMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     startTimeout,
		Logger:           hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel}),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start plugin client: %w", err)
	}
	raw, err := rpcClient.Dispense(effectrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense plugin: %w", err)
	}
	typed, ok := raw.(effectrpc.EffectPluginClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("plugin rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func (h *GRPCHost) callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
