package app

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/cexutoire/wibiz-attendance-bot/internal/attendance"
	"github.com/cexutoire/wibiz-attendance-bot/internal/config"
	"github.com/cexutoire/wibiz-attendance-bot/internal/ingest"
	"github.com/cexutoire/wibiz-attendance-bot/internal/middleware"
	"github.com/cexutoire/wibiz-attendance-bot/internal/namemap"
	"github.com/cexutoire/wibiz-attendance-bot/internal/report"
	"github.com/cexutoire/wibiz-attendance-bot/internal/roster"
	"github.com/cexutoire/wibiz-attendance-bot/internal/shared/clock"
	"github.com/cexutoire/wibiz-attendance-bot/internal/task"
)

// BuildApp assembles the read-only HTTP API.
func BuildApp(router *gin.Engine, cfg config.Config) error {
	gormDB, err := connectStore(cfg)
	if err != nil {
		return err
	}

	clk, err := clock.New(cfg.Timezone)
	if err != nil {
		return err
	}

	router.Use(middleware.RequestContext(zap.L()))
	router.Use(middleware.CORS(cfg.CORSOrigins))
	router.Use(middleware.RateLimitByIP(rate.Limit(10), 20))

	reportRepo := report.NewRepository(gormDB)
	reportService := report.NewService(reportRepo, roster.NewRegistry(cfg.DataDir), clk)
	reportHandler := report.NewHandler(reportService, reportRepo)

	api := router.Group("/api/v1")
	{
		report.RegisterRoutes(api, reportHandler)
	}

	return nil
}

// buildProcessor assembles the write-side ingest pipeline shared by the
// gateway and the broker consumer.
func buildProcessor(gormDB *gorm.DB, dedup ingest.Deduper, clk clock.Clock, cfg config.Config) *ingest.Processor {
	attendanceRepo := attendance.NewRepository(gormDB)
	attendanceService := attendance.NewService(gormDB, attendanceRepo, clk)

	taskRepo := task.NewRepository(gormDB)
	taskService := task.NewService(taskRepo, clk)

	names := namemap.NewResolver(cfg.DataDir)

	return ingest.NewProcessor(attendanceService, taskService, names, dedup, clk, cfg.ChannelID)
}
