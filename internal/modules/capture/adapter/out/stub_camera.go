package out

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"photobooth/internal/modules/capture/domain"
	captureout "photobooth/internal/modules/capture/port/out"
)

// StubCamera renders synthetic gradient frames so the kiosk can be developed
// and demoed on machines without camera hardware.
type StubCamera struct {
	shot atomic.Int64
}

func NewStubCamera() captureout.Camera {
	return &StubCamera{}
}

func (c *StubCamera) Still(_ context.Context, destPath string, res domain.Resolution) error {
	n := c.shot.Add(1)
	payload, err := encodeGradient(res.Width, res.Height, uint8(n*40))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(destPath, payload, 0o644)
}

func (c *StubCamera) Frame(_ context.Context) ([]byte, error) {
	n := c.shot.Load()
	return encodeGradient(domain.PreviewResolution.Width/4, domain.PreviewResolution.Height/4, uint8(n*40))
}

func (c *StubCamera) Stream(ctx context.Context) (io.ReadCloser, error) {
	r, w := io.Pipe()
	go func() {
		defer func() { _ = w.Close() }()
		for {
			frame, err := c.Frame(ctx)
			if err != nil {
				return
			}
			if _, err := w.Write(frame); err != nil {
				return
			}
			select {
			case <-ctx.Done():
				return
			default:
			}
		}
	}()
	return r, nil
}

func encodeGradient(width, height int, phase uint8) ([]byte, error) {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x*255/width) + phase,
				G: uint8(y * 255 / height),
				B: phase,
				A: 255,
			})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
