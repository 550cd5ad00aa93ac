package events

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
)

// LogScoredEvents drains msgs into the log until ctx is done or msgs is closed.
// Undecodable messages are acked and dropped so they are not redelivered.
func LogScoredEvents(ctx context.Context, msgs <-chan *message.Message, logger *slog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			logScoredEvent(ctx, msg, logger)
			msg.Ack()
		}
	}
}

func logScoredEvent(ctx context.Context, msg *message.Message, logger *slog.Logger) {
	event, err := DecodeScoringEvent(msg)
	if err != nil {
		logger.WarnContext(ctx, "Dropping undecodable scoring event", "message_uuid", msg.UUID, "error", err)
		return
	}

	var attemptID interface{}
	if data, ok := event.Data.(map[string]interface{}); ok {
		attemptID = data["attempt_id"]
	}

	logger.InfoContext(ctx, "Scoring event received",
		"event_id", event.ID,
		"event_type", event.Type,
		"attempt_id", attemptID,
		"skills", event.Metadata["skills"])
}
