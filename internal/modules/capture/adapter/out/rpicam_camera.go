package out

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"

	"photobooth/internal/modules/capture/domain"
	captureout "photobooth/internal/modules/capture/port/out"
)

// RpicamCamera drives the Raspberry Pi camera stack through the rpicam-apps
// command line tools, the same binaries the kiosk image ships with.
type RpicamCamera struct{}

func NewRpicamCamera() captureout.Camera {
	return &RpicamCamera{}
}

func (c *RpicamCamera) Still(ctx context.Context, destPath string, res domain.Resolution) error {
	cmd := exec.CommandContext(ctx, "rpicam-still",
		"-n",
		"-o", destPath,
		"--width", strconv.Itoa(res.Width),
		"--height", strconv.Itoa(res.Height),
		"-t", "1",
		"-q", "95",
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("rpicam-still: %w: %s", err, stderr.String())
	}
	return nil
}

func (c *RpicamCamera) Frame(ctx context.Context) ([]byte, error) {
	// Single-frame MJPEG capture to stdout. Cheaper than keeping a pipeline
	// open for sporadic preview polls.
	cmd := exec.CommandContext(ctx, "rpicam-still",
		"-n",
		"-o", "-",
		"--width", strconv.Itoa(domain.PreviewResolution.Width),
		"--height", strconv.Itoa(domain.PreviewResolution.Height),
		"-t", "1",
		"-q", "65",
		"--encoding", "jpg",
	)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("rpicam-still frame: %w", err)
	}
	return out, nil
}

func (c *RpicamCamera) Stream(ctx context.Context) (io.ReadCloser, error) {
	cmd := exec.CommandContext(ctx, "rpicam-vid",
		"-n",
		"--codec", "mjpeg",
		"--width", "960",
		"--height", "540",
		"--framerate", "15",
		"--quality", "65",
		"-t", "0",
		"-o", "-",
	)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("rpicam-vid pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("rpicam-vid start: %w", err)
	}
	return &processStream{ReadCloser: stdout, cmd: cmd}, nil
}

// processStream ties the pipe's lifetime to the producing process so closing
// the stream also terminates rpicam-vid.
type processStream struct {
	io.ReadCloser
	cmd *exec.Cmd
}

func (s *processStream) Close() error {
	_ = s.ReadCloser.Close()
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	return s.cmd.Wait()
}
