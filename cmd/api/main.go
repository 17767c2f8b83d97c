package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cexutoire/wibiz-attendance-bot/internal/app"
	"github.com/cexutoire/wibiz-attendance-bot/internal/bootstrap"
	"github.com/cexutoire/wibiz-attendance-bot/internal/config"
	"github.com/cexutoire/wibiz-attendance-bot/internal/shared/apperror"
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

	apperror.Init()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	if err := app.BuildApp(r, cfg); err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}

	bootstrap.StartHTTPServer(
		r,
		bootstrap.ServerConfig{
			Port:         cfg.Port,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		bootstrap.NewStdoutAuditLogger(logger),
		logger,
	)
}
