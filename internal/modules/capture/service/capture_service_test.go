package service_test

import (
	"bytes"
	"context"
	"errors"
	"image/jpeg"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"photobooth/internal/modules/capture/domain"
	"photobooth/internal/modules/capture/service"
)

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time {
	return f.now
}

type fakeCamera struct {
	stillErr  error
	stillSize int
	frame     []byte
	frameErr  error
	stream    io.ReadCloser
	streamErr error
}

func (f *fakeCamera) Still(_ context.Context, destPath string, _ domain.Resolution) error {
	if f.stillErr != nil {
		return f.stillErr
	}
	return os.WriteFile(destPath, bytes.Repeat([]byte{0xAB}, f.stillSize), 0o644)
}

func (f *fakeCamera) Frame(context.Context) ([]byte, error) {
	return f.frame, f.frameErr
}

func (f *fakeCamera) Stream(context.Context) (io.ReadCloser, error) {
	return f.stream, f.streamErr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStillWritesCapture(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	clk := fixedClock{now: time.Date(2026, 8, 1, 14, 0, 0, 0, time.UTC)}
	coord := service.NewCoordinator(clk, &fakeCamera{stillSize: 16}, dir, discardLogger())

	path, err := coord.Still(context.Background(), 1)
	if err != nil {
		t.Fatalf("still: %v", err)
	}
	if !strings.HasPrefix(path, dir) {
		t.Fatalf("capture path %q not under photos dir", path)
	}
	if filepath.Base(path) != "140000_1.jpg" {
		t.Fatalf("unexpected capture name %q", filepath.Base(path))
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("capture file missing: %v", err)
	}
}

func TestStillDegradesToPlaceholder(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	clk := fixedClock{now: time.Date(2026, 8, 1, 14, 0, 0, 0, time.UTC)}
	cam := &fakeCamera{stillErr: errors.New("camera busy")}
	coord := service.NewCoordinator(clk, cam, dir, discardLogger())

	path, err := coord.Still(context.Background(), 2)
	if err != nil {
		t.Fatalf("still should not surface camera errors: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("placeholder missing: %v", err)
	}
	defer func() { _ = f.Close() }()
	img, err := jpeg.Decode(f)
	if err != nil {
		t.Fatalf("placeholder is not a JPEG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != domain.StillResolution.Width || bounds.Dy() != domain.StillResolution.Height {
		t.Fatalf("placeholder is %dx%d, want still resolution", bounds.Dx(), bounds.Dy())
	}
}

func TestFrameReportsAvailability(t *testing.T) {
	t.Parallel()
	clk := fixedClock{now: time.Now()}
	coord := service.NewCoordinator(clk, &fakeCamera{frameErr: errors.New("no signal")}, t.TempDir(), discardLogger())
	if _, ok := coord.Frame(context.Background()); ok {
		t.Fatalf("expected no frame on camera error")
	}

	coord = service.NewCoordinator(clk, &fakeCamera{frame: []byte{0xFF, 0xD8, 0xFF, 0xD9}}, t.TempDir(), discardLogger())
	frame, ok := coord.Frame(context.Background())
	if !ok || len(frame) == 0 {
		t.Fatalf("expected a frame")
	}
}

func TestStreamMJPEGEmitsCompleteFrames(t *testing.T) {
	t.Parallel()
	frameA := []byte{0xFF, 0xD8, 0x01, 0xFF, 0xD9}
	frameB := []byte{0xFF, 0xD8, 0x02, 0xFF, 0xD9}
	raw := append(append([]byte(nil), frameA...), frameB...)
	cam := &fakeCamera{stream: io.NopCloser(bytes.NewReader(raw))}
	coord := service.NewCoordinator(fixedClock{now: time.Now()}, cam, t.TempDir(), discardLogger())

	var emitted [][]byte
	err := coord.StreamMJPEG(context.Background(), func(frame []byte) error {
		emitted = append(emitted, frame)
		return nil
	})
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	if len(emitted) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(emitted))
	}
	if !bytes.Equal(emitted[0], frameA) || !bytes.Equal(emitted[1], frameB) {
		t.Fatalf("emitted frames differ from source")
	}
}

func TestStreamMJPEGStopsOnEmitError(t *testing.T) {
	t.Parallel()
	raw := bytes.Repeat([]byte{0xFF, 0xD8, 0x00, 0xFF, 0xD9}, 4)
	cam := &fakeCamera{stream: io.NopCloser(bytes.NewReader(raw))}
	coord := service.NewCoordinator(fixedClock{now: time.Now()}, cam, t.TempDir(), discardLogger())

	stop := errors.New("client gone")
	calls := 0
	err := coord.StreamMJPEG(context.Background(), func([]byte) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) {
		t.Fatalf("expected emit error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("stream kept pumping after emit failed: %d calls", calls)
	}
}
