package out

import (
	"context"

	"photobooth/internal/modules/booth/domain"
)

// Journal persists session and print history for the operator. Journal
// failures must never interrupt a running session.
type Journal interface {
	RecordSession(ctx context.Context, record domain.SessionRecord) error
	RecordPrint(ctx context.Context, record domain.PrintRecord) error
	RecentSessions(ctx context.Context, limit int) ([]domain.SessionRecord, error)
	RecentPrints(ctx context.Context, limit int) ([]domain.PrintRecord, error)
}
