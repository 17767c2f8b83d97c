package main

import (
	"go.uber.org/zap"

	"github.com/cexutoire/wibiz-attendance-bot/internal/app"
	"github.com/cexutoire/wibiz-attendance-bot/internal/config"
	"github.com/cexutoire/wibiz-attendance-bot/internal/shared/logging"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if err := app.RunBot(cfg); err != nil {
		logger.Fatal("run bot failed", zap.Error(err))
	}
}
