// Package ingest turns raw chat messages into attendance and task
// mutations. One message is processed to completion at a time; failures
// surface as a visible ack marker, never as a crash of the loop.
package ingest

import "time"

// Message is an inbound chat message from any transport.
type Message struct {
	ID        string
	ChannelID string
	UserID    string
	Username  string
	Text      string
	Timestamp time.Time
}

// Ack is the reaction marker reported back to the transport. The names
// are emoji short codes.
type Ack string

const (
	// AckNone means the message carried no recognizable event.
	AckNone Ack = ""
	// AckSaved acknowledges a time-in or break-end.
	AckSaved Ack = "white_check_mark"
	// AckBreak acknowledges a break-start.
	AckBreak Ack = "knife_fork_plate"
	// AckReport acknowledges a full time-out report.
	AckReport Ack = "memo"
	// AckFailed marks a sequencing violation the author should see.
	AckFailed Ack = "x"
)
