package events

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogScoredEvents(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	good, err := newMessage(scoredEvent())
	require.NoError(t, err)
	bad := message.NewMessage("bad-1", []byte("{not json"))

	msgs := make(chan *message.Message, 2)
	msgs <- bad
	msgs <- good
	close(msgs)

	LogScoredEvents(context.Background(), msgs, logger)

	out := buf.String()
	assert.Contains(t, out, "Dropping undecodable scoring event")
	assert.Contains(t, out, "message_uuid=bad-1")
	assert.Contains(t, out, "Scoring event received")
	assert.Contains(t, out, "attempt_id=attempt-1")

	select {
	case <-good.Acked():
	default:
		t.Fatal("decoded message was not acked")
	}
	select {
	case <-bad.Acked():
	default:
		t.Fatal("undecodable message was not acked")
	}
}

func TestLogScoredEvents_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		LogScoredEvents(ctx, make(chan *message.Message), slog.New(slog.DiscardHandler))
		close(done)
	}()
	<-done
}
