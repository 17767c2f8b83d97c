package events

import "time"

const MessageReceivedTopic = "attendance.message.received.v1"

// MessageReceivedEvent carries one raw channel message from the gateway
// to the ingest consumer.
type MessageReceivedEvent struct {
	EventType  string    `json:"event_type"`
	MessageID  string    `json:"message_id"`
	ChannelID  string    `json:"channel_id"`
	UserID     string    `json:"user_id"`
	Username   string    `json:"username"`
	Text       string    `json:"text"`
	SentAt     time.Time `json:"sent_at"`
	OccurredAt time.Time `json:"occurred_at"`
}
