package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"

	effectrpc "photobooth/internal/modules/effect/adapter/out/rpc"

	"github.com/hashicorp/go-plugin"
)

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *effectrpc.Empty) (*effectrpc.Metadata, error) {
	return &effectrpc.Metadata{Name: "invert", Version: "1.0.0"}, nil
}

func (s *server) ListEffects(_ context.Context, _ *effectrpc.Empty) (*effectrpc.ListEffectsResponse, error) {
	return &effectrpc.ListEffectsResponse{Effects: []effectrpc.EffectDescriptor{
		{ID: "invert", Title: "Invert", Description: "Inverts every channel of the page"},
	}}, nil
}

func (s *server) Apply(_ context.Context, in *effectrpc.ApplyRequest) (*effectrpc.ApplyResponse, error) {
	if in.EffectID != "invert" {
		return nil, fmt.Errorf("unknown effect: %s", in.EffectID)
	}
	src, err := jpeg.Decode(bytes.NewReader(in.ImageJPEG))
	if err != nil {
		return nil, fmt.Errorf("decode page: %w", err)
	}

	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	for i := 0; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 255 - dst.Pix[i]
		dst.Pix[i+1] = 255 - dst.Pix[i+1]
		dst.Pix[i+2] = 255 - dst.Pix[i+2]
	}

	var out bytes.Buffer
	if err := jpeg.Encode(&out, dst, &jpeg.Options{Quality: 95}); err != nil {
		return nil, fmt.Errorf("encode page: %w", err)
	}
	return &effectrpc.ApplyResponse{ImageJPEG: out.Bytes()}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: effectrpc.HandshakeConfig,
		Plugins:         effectrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
