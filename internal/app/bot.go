package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/cexutoire/wibiz-attendance-bot/internal/config"
	"github.com/cexutoire/wibiz-attendance-bot/internal/gateway/slackgw"
	"github.com/cexutoire/wibiz-attendance-bot/internal/ingest"
	"github.com/cexutoire/wibiz-attendance-bot/internal/messaging/kafka"
	"github.com/cexutoire/wibiz-attendance-bot/internal/shared/clock"
	"github.com/cexutoire/wibiz-attendance-bot/internal/shared/connection"
)

// RunBot starts the Slack gateway. With a broker configured the gateway
// only forwards messages; otherwise it processes them inline against
// the store.
func RunBot(cfg config.Config) error {
	logger := zap.L().Named("app.bot")

	if cfg.SlackBotToken == "" || cfg.SlackAppToken == "" {
		return fmt.Errorf("SLACK_BOT_TOKEN and SLACK_APP_TOKEN are required")
	}
	if cfg.ChannelID == "" {
		return fmt.Errorf("CHANNEL_ID is required")
	}

	clk, err := clock.New(cfg.Timezone)
	if err != nil {
		return err
	}

	var (
		processor *ingest.Processor
		publisher slackgw.Publisher
	)

	if cfg.KafkaBroker != "" {
		pub := kafka.NewPublisher(cfg.KafkaBroker, logger)
		defer pub.Close()
		publisher = pub
	} else {
		gormDB, err := connectStore(cfg)
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

		processor = buildProcessor(gormDB, dedup, clk, cfg)
	}

	gateway := slackgw.New(cfg.SlackBotToken, cfg.SlackAppToken, processor, publisher, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("gateway shutting down")
		cancel()
	}()

	return gateway.Run(ctx)
}
