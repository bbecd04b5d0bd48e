package out

import (
	"context"
	"io"

	"photobooth/internal/modules/capture/domain"
)

// Camera is the boundary to the physical capture hardware. Implementations
// may fail transiently; the coordinator decides how to recover.
type Camera interface {
	// Still captures a full-resolution photo directly to destPath.
	Still(ctx context.Context, destPath string, res domain.Resolution) error
	// Frame returns one preview-sized JPEG frame.
	Frame(ctx context.Context) ([]byte, error)
	// Stream opens a continuous MJPEG byte stream. The caller owns closing it.
	Stream(ctx context.Context) (io.ReadCloser, error)
}
