package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"log/slog"
	"os"
	"path/filepath"

	"photobooth/internal/modules/capture/domain"
	captureout "photobooth/internal/modules/capture/port/out"
	"photobooth/internal/platform/clock"
)

// Coordinator mediates between the session controller and the camera.
// Camera failures stop here: a failed still degrades to a placeholder image
// and a failed preview frame is reported, not raised, so the control loop
// never stalls on hardware trouble.
type Coordinator struct {
	clock     clock.Clock
	camera    captureout.Camera
	photosDir string
	logger    *slog.Logger
}

func NewCoordinator(clk clock.Clock, camera captureout.Camera, photosDir string, logger *slog.Logger) *Coordinator {
	return &Coordinator{clock: clk, camera: camera, photosDir: photosDir, logger: logger}
}

// Still captures the seq-th photo of the running session and returns its
// absolute path. The returned file always exists: when the camera fails a
// neutral placeholder is written instead so the session can continue.
func (c *Coordinator) Still(ctx context.Context, seq int) (string, error) {
	rel := domain.CapturePath(c.clock.Now(), seq)
	dest := filepath.Join(c.photosDir, rel)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("create capture dir: %w", err)
	}

	if err := c.camera.Still(ctx, dest, domain.StillResolution); err != nil {
		c.logger.Warn("still capture failed, writing placeholder", "seq", seq, "error", err)
		if err := writePlaceholder(dest, domain.StillResolution); err != nil {
			return "", fmt.Errorf("write placeholder: %w", err)
		}
	}
	return dest, nil
}

// Frame fetches one preview frame. The boolean reports availability; a false
// return means the caller should keep showing the previous frame.
func (c *Coordinator) Frame(ctx context.Context) ([]byte, bool) {
	frame, err := c.camera.Frame(ctx)
	if err != nil {
		c.logger.Debug("preview frame unavailable", "error", err)
		return nil, false
	}
	return frame, true
}

// StreamMJPEG pumps complete preview frames to emit until the stream ends,
// the context is cancelled, or emit returns an error.
func (c *Coordinator) StreamMJPEG(ctx context.Context, emit func(frame []byte) error) error {
	stream, err := c.camera.Stream(ctx)
	if err != nil {
		return fmt.Errorf("open camera stream: %w", err)
	}
	defer func() { _ = stream.Close() }()

	var pending []byte
	chunk := make([]byte, 64*1024)
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		n, readErr := stream.Read(chunk)
		if n > 0 {
			pending = append(pending, chunk[:n]...)
			frames, rest := domain.ExtractJPEGs(pending)
			pending = rest
			for _, frame := range frames {
				if err := emit(frame); err != nil {
					return err
				}
			}
		}
		if readErr != nil {
			return nil
		}
	}
}

func writePlaceholder(destPath string, res domain.Resolution) error {
	img := image.NewNRGBA(image.Rect(0, 0, res.Width, res.Height))
	fill := color.NRGBA{R: 52, G: 52, B: 52, A: 255}
	for y := 0; y < res.Height; y++ {
		for x := 0; x < res.Width; x++ {
			img.SetNRGBA(x, y, fill)
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return err
	}
	return os.WriteFile(destPath, buf.Bytes(), 0o644)
}
