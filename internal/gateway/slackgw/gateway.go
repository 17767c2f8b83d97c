// Package slackgw bridges Slack Socket Mode into the ingest pipeline.
// The gateway either processes messages inline or forwards them to the
// message topic when a broker is configured.
package slackgw

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"
	"go.uber.org/zap"

	"github.com/cexutoire/wibiz-attendance-bot/internal/ingest"
)

// Publisher forwards a raw message to the broker instead of processing
// it inline.
type Publisher interface {
	PublishMessageReceived(ctx context.Context, msg ingest.Message) error
}

type Gateway struct {
	api       *slack.Client
	socket    *socketmode.Client
	processor *ingest.Processor
	publisher Publisher
	reactor   *Reactor
	logger    *zap.Logger

	mu    sync.Mutex
	users map[string]string
}

// New builds the gateway. A nil publisher selects inline processing
// with reaction acks; a non-nil publisher selects forwarding, and the
// consumer side posts the acks.
func New(botToken, appToken string, processor *ingest.Processor, publisher Publisher, logger *zap.Logger) *Gateway {
	api := slack.New(botToken, slack.OptionAppLevelToken(appToken))
	return &Gateway{
		api:       api,
		socket:    socketmode.New(api),
		processor: processor,
		publisher: publisher,
		reactor:   NewReactor(api),
		logger:    logger.Named("slack.gateway"),
		users:     make(map[string]string),
	}
}

// Run consumes Socket Mode events until the context is cancelled.
func (g *Gateway) Run(ctx context.Context) error {
	go func() {
		for evt := range g.socket.Events {
			switch evt.Type {
			case socketmode.EventTypeConnected:
				g.logger.Info("socket mode connected")
			case socketmode.EventTypeConnectionError:
				g.logger.Warn("socket mode connection error")
			case socketmode.EventTypeEventsAPI:
				apiEvent, ok := evt.Data.(slackevents.EventsAPIEvent)
				if !ok {
					continue
				}
				// Ack before processing so Slack does not redeliver on
				// slow handling; the deduper covers redelivery anyway.
				g.socket.Ack(*evt.Request)
				g.handleEventsAPI(ctx, apiEvent)
			}
		}
	}()

	return g.socket.RunContext(ctx)
}

func (g *Gateway) handleEventsAPI(ctx context.Context, apiEvent slackevents.EventsAPIEvent) {
	if apiEvent.Type != slackevents.CallbackEvent {
		return
	}

	ev, ok := apiEvent.InnerEvent.Data.(*slackevents.MessageEvent)
	if !ok {
		return
	}
	// Edits, joins and bot echoes carry a subtype or bot ID.
	if ev.SubType != "" || ev.BotID != "" || ev.User == "" {
		return
	}

	msg := ingest.Message{
		ID:        ev.TimeStamp,
		ChannelID: ev.Channel,
		UserID:    ev.User,
		Username:  g.username(ctx, ev.User),
		Text:      ev.Text,
		Timestamp: parseSlackTimestamp(ev.TimeStamp),
	}

	if g.publisher != nil {
		if err := g.publisher.PublishMessageReceived(ctx, msg); err != nil {
			g.logger.Error("forward message failed",
				zap.String("message_id", msg.ID), zap.Error(err))
		}
		return
	}

	ack, err := g.processor.Process(ctx, msg)
	if err != nil {
		g.logger.Error("process message failed",
			zap.String("message_id", msg.ID),
			zap.String("user_id", msg.UserID),
			zap.Error(err),
		)
	}
	if ack == ingest.AckNone {
		return
	}
	if err := g.reactor.React(ctx, msg, ack); err != nil {
		g.logger.Warn("ack reaction failed",
			zap.String("message_id", msg.ID),
			zap.String("ack", string(ack)),
			zap.Error(err),
		)
	}
}

// username resolves and caches the display name for a user ID. The
// cache is never invalidated; renamed users keep their old fallback
// name until restart, which the mapping file can override anyway.
func (g *Gateway) username(ctx context.Context, userID string) string {
	g.mu.Lock()
	name, ok := g.users[userID]
	g.mu.Unlock()
	if ok {
		return name
	}

	user, err := g.api.GetUserInfoContext(ctx, userID)
	if err != nil {
		g.logger.Warn("user info lookup failed", zap.String("user_id", userID), zap.Error(err))
		return userID
	}

	name = user.Profile.DisplayName
	if name == "" {
		name = user.Name
	}

	g.mu.Lock()
	g.users[userID] = name
	g.mu.Unlock()
	return name
}

// parseSlackTimestamp converts a "seconds.micros" message timestamp.
// A malformed value falls back to the zero time, which the clock maps
// to the epoch date rather than crashing the pipeline.
func parseSlackTimestamp(ts string) time.Time {
	parts := strings.SplitN(ts, ".", 2)
	secs, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return time.Time{}
	}

	var micros int64
	if len(parts) == 2 {
		micros, _ = strconv.ParseInt(parts[1], 10, 64)
	}
	return time.Unix(secs, micros*int64(time.Microsecond))
}

// Reactor posts ack emoji on the original message. It also serves the
// broker consumer, which shares the contract with inline mode.
type Reactor struct {
	api *slack.Client
}

func NewReactor(api *slack.Client) *Reactor {
	return &Reactor{api: api}
}

func (r *Reactor) React(ctx context.Context, msg ingest.Message, ack ingest.Ack) error {
	ref := slack.NewRefToMessage(msg.ChannelID, msg.ID)
	return r.api.AddReactionContext(ctx, string(ack), ref)
}
