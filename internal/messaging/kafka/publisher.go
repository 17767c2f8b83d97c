package kafka

import (
	"context"
	"encoding/json"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/cexutoire/wibiz-attendance-bot/internal/events"
	"github.com/cexutoire/wibiz-attendance-bot/internal/ingest"
)

// Publisher hands raw channel messages to the ingest topic. The message
// key is the user ID so one user's messages stay in order on a single
// partition.
type Publisher struct {
	writer *kafkago.Writer
	logger *zap.Logger
}

func NewPublisher(broker string, logger *zap.Logger) *Publisher {
	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(broker),
		Topic:        events.MessageReceivedTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: writer, logger: logger.Named("kafka.publisher")}
}

func (p *Publisher) PublishMessageReceived(ctx context.Context, msg ingest.Message) error {
	event := events.MessageReceivedEvent{
		EventType:  "message_received",
		MessageID:  msg.ID,
		ChannelID:  msg.ChannelID,
		UserID:     msg.UserID,
		Username:   msg.Username,
		Text:       msg.Text,
		SentAt:     msg.Timestamp,
		OccurredAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	err = p.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(msg.UserID),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	})
	if err != nil {
		p.logger.Error("publish message_received failed",
			zap.String("message_id", msg.ID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
