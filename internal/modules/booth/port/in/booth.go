package in

import (
	"context"

	"photobooth/internal/modules/booth/dto"
)

// Usecase drives one kiosk session at a time. Dispatch accepts the
// five-symbol action vocabulary and never blocks the caller.
type Usecase interface {
	Run(ctx context.Context) error
	Dispatch(action string)
	Snapshot() dto.Snapshot
	History(ctx context.Context, limit int) ([]dto.SessionInfo, error)
	Prints(ctx context.Context, limit int) ([]dto.PrintInfo, error)
}
