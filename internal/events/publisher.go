package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// EventPublisher publishes scoring events
type EventPublisher interface {
	PublishScoringEvent(ctx context.Context, event *ScoringEvent) error
	Close() error
}

// PublisherConfig holds configuration for the Kafka publisher
type PublisherConfig struct {
	KafkaBrokers []string
	TopicName    string
	Logger       *slog.Logger
}

// watermillPublisher publishes JSON encoded events on one topic of any watermill publisher
type watermillPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
	topicName string
}

func newMessage(event *ScoringEvent) (*message.Message, error) {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal scoring event: %w", err)
	}

	msg := message.NewMessage(event.ID, eventBytes)
	msg.Metadata.Set("event_type", string(event.Type))
	msg.Metadata.Set("source", event.Source)
	msg.Metadata.Set("version", event.Version)
	msg.Metadata.Set("timestamp", event.Timestamp.Format("2006-01-02T15:04:05Z07:00"))
	return msg, nil
}

func (p *watermillPublisher) PublishScoringEvent(ctx context.Context, event *ScoringEvent) error {
	msg, err := newMessage(event)
	if err != nil {
		return err
	}
	msg.SetContext(ctx)

	if err := p.publisher.Publish(p.topicName, msg); err != nil {
		p.logger.Error("Failed to publish scoring event",
			"event_id", event.ID,
			"event_type", event.Type,
			"error", err)
		return fmt.Errorf("failed to publish scoring event: %w", err)
	}

	p.logger.Info("Published scoring event",
		"event_id", event.ID,
		"event_type", event.Type,
		"topic", p.topicName)

	return nil
}

func (p *watermillPublisher) Close() error {
	return p.publisher.Close()
}

// KafkaEventPublisher publishes to Kafka through watermill
type KafkaEventPublisher struct {
	watermillPublisher
}

func NewKafkaEventPublisher(config PublisherConfig) (*KafkaEventPublisher, error) {
	logger := watermill.NewSlogLogger(config.Logger)

	publisher, err := kafka.NewPublisher(kafka.PublisherConfig{
		Brokers:   config.KafkaBrokers,
		Marshaler: kafka.DefaultMarshaler{},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka publisher: %w", err)
	}

	return &KafkaEventPublisher{watermillPublisher{
		publisher: publisher,
		logger:    config.Logger,
		topicName: config.TopicName,
	}}, nil
}

// GoChannelEventPublisher delivers events to in-process subscribers
type GoChannelEventPublisher struct {
	watermillPublisher
	pubSub *gochannel.GoChannel
}

func NewGoChannelEventPublisher(topic string, logger *slog.Logger) *GoChannelEventPublisher {
	pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, watermill.NewSlogLogger(logger))
	return &GoChannelEventPublisher{
		watermillPublisher: watermillPublisher{
			publisher: pubSub,
			logger:    logger,
			topicName: topic,
		},
		pubSub: pubSub,
	}
}

// Subscribe returns the message stream of the publisher's topic
func (p *GoChannelEventPublisher) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return p.pubSub.Subscribe(ctx, p.topicName)
}

// MockEventPublisher records events in memory
type MockEventPublisher struct {
	mu     sync.Mutex
	events []ScoringEvent
	Logger *slog.Logger
}

func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	return &MockEventPublisher{
		events: make([]ScoringEvent, 0),
		Logger: logger,
	}
}

func (m *MockEventPublisher) PublishScoringEvent(ctx context.Context, event *ScoringEvent) error {
	m.mu.Lock()
	m.events = append(m.events, *event)
	m.mu.Unlock()

	m.Logger.Debug("Mock: Published scoring event",
		"event_id", event.ID,
		"event_type", event.Type)
	return nil
}

func (m *MockEventPublisher) Close() error {
	return nil
}

func (m *MockEventPublisher) GetPublishedEvents() []ScoringEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ScoringEvent(nil), m.events...)
}

func (m *MockEventPublisher) ClearEvents() {
	m.mu.Lock()
	m.events = make([]ScoringEvent, 0)
	m.mu.Unlock()
}

// DecodeScoringEvent parses a published message back into its envelope. Data is left as
// a generic JSON value.
func DecodeScoringEvent(msg *message.Message) (*ScoringEvent, error) {
	var event ScoringEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return nil, fmt.Errorf("failed to decode scoring event: %w", err)
	}
	return &event, nil
}
