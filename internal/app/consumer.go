package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/slack-go/slack"
	"go.uber.org/zap"

	"github.com/cexutoire/wibiz-attendance-bot/internal/config"
	"github.com/cexutoire/wibiz-attendance-bot/internal/gateway/slackgw"
	"github.com/cexutoire/wibiz-attendance-bot/internal/ingest"
	"github.com/cexutoire/wibiz-attendance-bot/internal/messaging/kafka"
	"github.com/cexutoire/wibiz-attendance-bot/internal/shared/clock"
	"github.com/cexutoire/wibiz-attendance-bot/internal/shared/connection"
)

const consumerGroupID = "attendance-bot-ingest"

// RunConsumer drains the message topic into the store. The redis
// deduper keeps redeliveries idempotent; without redis every delivery
// is treated as first.
func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	gormDB, err := connectStore(cfg)
	if err != nil {
		return err
	}

	clk, err := clock.New(cfg.Timezone)
	if err != nil {
		return err
	}

	dedup := ingest.NewNoopDeduper()
	if cfg.RedisAddr != "" {
		rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
		if err != nil {
			return err
		}
		defer rdb.Close()
		dedup = ingest.NewRedisDeduper(rdb)
	}

	processor := buildProcessor(gormDB, dedup, clk, cfg)

	var reactor kafka.Reactor
	if cfg.SlackBotToken != "" {
		reactor = slackgw.NewReactor(slack.New(cfg.SlackBotToken))
	}

	reader := kafka.NewMessageReader(cfg.KafkaBroker, consumerGroupID)
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go kafka.ConsumeMessages(ctx, reader, processor, reactor, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
