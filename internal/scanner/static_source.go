package scanner

import (
	"context"

	"upisubs/mandate-scan/internal/models"
)

// StaticSource is a MessageSource over an in-memory slice. It backs tests
// and the demo inbox; a non-nil Err simulates a platform that denies the
// read. The sender filter is deliberately ignored, which doubles as
// coverage for sources that do not pre-filter.
type StaticSource struct {
	Messages []models.RawMessage
	Err      error
}

// ReadMessages returns up to maxCount of the configured messages.
func (s *StaticSource) ReadMessages(ctx context.Context, maxCount int, senderFilter []string) ([]models.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if maxCount > 0 && len(s.Messages) > maxCount {
		return s.Messages[:maxCount], nil
	}
	return s.Messages, nil
}
