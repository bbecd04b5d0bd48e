package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"log/slog"
	"math/rand"

	"github.com/disintegration/imaging"

	"photobooth/internal/modules/compose/domain"
	composeout "photobooth/internal/modules/compose/port/out"
)

// noiseSeed fixes the newspaper grain so composing the same inputs twice
// yields byte-identical pixels.
const noiseSeed = 0x70686f746f

var neutralFill = color.NRGBA{R: 34, G: 34, B: 34, A: 255}

// Compositor lays filtered photos into a template's slots on a print-size
// canvas. A photo that fails to decode skips its slot; the rest of the page
// still composes.
type Compositor struct {
	artifacts composeout.ArtifactStore
	effects   composeout.EffectHost
	logger    *slog.Logger
}

func NewCompositor(artifacts composeout.ArtifactStore, effects composeout.EffectHost, logger *slog.Logger) *Compositor {
	return &Compositor{artifacts: artifacts, effects: effects, logger: logger}
}

// Compose renders the spec and persists the result, returning the artifact
// path.
func (c *Compositor) Compose(ctx context.Context, spec domain.Spec) (string, error) {
	if err := spec.Policy.Validate(); err != nil {
		return "", err
	}
	filter := spec.Filter
	if spec.Layout.ForceNewspaper {
		filter = domain.FilterNewspaper
	}
	if err := filter.Validate(); err != nil {
		return "", err
	}

	canvas := c.background(spec.Layout)
	rng := rand.New(rand.NewSource(noiseSeed))

	n := min(len(spec.PhotoPaths), len(spec.Layout.Rects))
	for i := 0; i < n; i++ {
		photo, err := imaging.Open(spec.PhotoPaths[i])
		if err != nil {
			c.logger.Warn("skipping undecodable photo", "path", spec.PhotoPaths[i], "error", err)
			continue
		}
		slot := domain.PixelRect(spec.Layout.Rects[i], spec.Layout.CanvasWidth, spec.Layout.CanvasHeight)
		if slot.Empty() {
			continue
		}
		filtered := applyFilter(photo, filter, spec.Noise, rng)
		canvas = place(canvas, filtered, slot, spec.Policy)
	}

	final, err := c.applyEffect(ctx, spec.Layout.Effect, canvas)
	if err != nil {
		c.logger.Warn("external effect failed, keeping unmodified page", "effect", spec.Layout.Effect, "error", err)
		final = canvas
	}
	return c.artifacts.Save(ctx, final)
}

func (c *Compositor) background(layout domain.Layout) *image.NRGBA {
	w, h := layout.CanvasWidth, layout.CanvasHeight
	if layout.BackgroundPath == "" {
		return imaging.New(w, h, neutralFill)
	}
	img, err := imaging.Open(layout.BackgroundPath)
	if err != nil {
		c.logger.Warn("background unreadable, using neutral fill", "path", layout.BackgroundPath, "error", err)
		return imaging.New(w, h, neutralFill)
	}
	return imaging.Resize(img, w, h, imaging.Lanczos)
}

func place(canvas *image.NRGBA, photo *image.NRGBA, slot image.Rectangle, policy domain.Policy) *image.NRGBA {
	w, h := slot.Dx(), slot.Dy()
	switch policy {
	case domain.PolicyFitInside:
		fitted := imaging.Fit(photo, w, h, imaging.Lanczos)
		offset := image.Pt(
			slot.Min.X+(w-fitted.Bounds().Dx())/2,
			slot.Min.Y+(h-fitted.Bounds().Dy())/2,
		)
		return imaging.Paste(canvas, fitted, offset)
	default:
		filled := imaging.Fill(photo, w, h, imaging.Center, imaging.Lanczos)
		return imaging.Paste(canvas, filled, slot.Min)
	}
}

func (c *Compositor) applyEffect(ctx context.Context, effectID string, canvas *image.NRGBA) (image.Image, error) {
	if effectID == "" || c.effects == nil {
		return canvas, nil
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: 95}); err != nil {
		return nil, fmt.Errorf("encode for effect: %w", err)
	}
	transformed, err := c.effects.Apply(ctx, effectID, buf.Bytes())
	if err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(transformed))
	if err != nil {
		return nil, fmt.Errorf("decode effect output: %w", err)
	}
	return img, nil
}
