package kafka

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/cexutoire/wibiz-attendance-bot/internal/events"
	"github.com/cexutoire/wibiz-attendance-bot/internal/ingest"
)

// Reactor posts the ack marker back to the chat platform. A nil reactor
// means acks are logged only.
type Reactor interface {
	React(ctx context.Context, msg ingest.Message, ack ingest.Ack) error
}

func NewMessageReader(broker, groupID string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: []string{broker},
		GroupID: groupID,
		Topic:   events.MessageReceivedTopic,
	})
}

// ConsumeMessages runs until the context is cancelled. Undecodable
// payloads are committed and skipped; processing failures leave the
// offset uncommitted so delivery retries, with the redis deduper
// guarding against double application.
func ConsumeMessages(
	ctx context.Context,
	reader *kafkago.Reader,
	processor *ingest.Processor,
	reactor Reactor,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.message_received")
	log.Info("message consumer started")

	for {
		kmsg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("message consumer stopped")
				return
			}
			log.Error("fetch message failed", zap.Error(err))
			continue
		}

		var event events.MessageReceivedEvent
		if err := json.Unmarshal(kmsg.Value, &event); err != nil {
			log.Error("decode message_received event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, kmsg)
			continue
		}

		msg := ingest.Message{
			ID:        event.MessageID,
			ChannelID: event.ChannelID,
			UserID:    event.UserID,
			Username:  event.Username,
			Text:      event.Text,
			Timestamp: event.SentAt,
		}

		ack, err := processor.Process(ctx, msg)
		if err != nil {
			log.Error("process message failed",
				zap.String("message_id", msg.ID),
				zap.String("user_id", msg.UserID),
				zap.Error(err),
			)
			continue
		}

		if ack != ingest.AckNone && reactor != nil {
			if err := reactor.React(ctx, msg, ack); err != nil {
				log.Warn("ack reaction failed",
					zap.String("message_id", msg.ID),
					zap.String("ack", string(ack)),
					zap.Error(err),
				)
			}
		}

		if err := reader.CommitMessages(ctx, kmsg); err != nil {
			log.Error("commit message failed", zap.Error(err))
		}
	}
}
