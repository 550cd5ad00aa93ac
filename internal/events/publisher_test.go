package events

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/kishansingy/ielts-backend-sub000/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoredEvent() *ScoringEvent {
	reports := []models.ScoreReport{
		{SkillArea: models.SkillReading, CorrectCount: 27, TotalCount: 30, AccuracyPercentage: 90, Band: 8.5},
	}
	return NewAttemptScoredEvent("attempt-1", "user-7", reports, time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC))
}

func TestNewAttemptScoredEvent(t *testing.T) {
	event := scoredEvent()

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, EventAttemptScored, event.Type)
	assert.Equal(t, "evaluation-service", event.Source)
	assert.Equal(t, 1, event.Metadata["skills"])

	data, ok := event.Data.(AttemptScoredEvent)
	require.True(t, ok)
	assert.Equal(t, "attempt-1", data.AttemptID)
	assert.Equal(t, 8.5, data.Reports[0].Band)

	assert.NotEqual(t, event.ID, scoredEvent().ID)
}

func TestGoChannelEventPublisher(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	publisher := NewGoChannelEventPublisher("attempt-scores", logger)
	defer publisher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := publisher.Subscribe(ctx)
	require.NoError(t, err)

	event := scoredEvent()
	require.NoError(t, publisher.PublishScoringEvent(ctx, event))

	select {
	case msg := <-messages:
		msg.Ack()
		assert.Equal(t, event.ID, msg.UUID)
		assert.Equal(t, string(EventAttemptScored), msg.Metadata.Get("event_type"))

		decoded, err := DecodeScoringEvent(msg)
		require.NoError(t, err)
		assert.Equal(t, event.ID, decoded.ID)
		assert.Equal(t, EventAttemptScored, decoded.Type)
		assert.True(t, event.Timestamp.Equal(decoded.Timestamp))
	case <-ctx.Done():
		t.Fatal("timed out waiting for scoring event")
	}
}

func TestMockEventPublisher(t *testing.T) {
	publisher := NewMockEventPublisher(slog.New(slog.DiscardHandler))

	require.NoError(t, publisher.PublishScoringEvent(context.Background(), scoredEvent()))
	require.NoError(t, publisher.PublishScoringEvent(context.Background(), scoredEvent()))
	assert.Len(t, publisher.GetPublishedEvents(), 2)

	publisher.ClearEvents()
	assert.Empty(t, publisher.GetPublishedEvents())
	assert.NoError(t, publisher.Close())
}
