package connection

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cexutoire/wibiz-attendance-bot/internal/config"
)

// ConnectGORMWithRetry opens the configured store: postgres when DB_HOST
// is set, otherwise an embedded sqlite file.
func ConnectGORMWithRetry(cfg config.Config, maxRetries int) (*gorm.DB, error) {
	dialector := sqliteDialector(cfg)
	if cfg.UsePostgres() {
		dialector = postgresDialector(cfg)
	}

	var lastErr error

	for i := 1; i <= maxRetries; i++ {
		db, err := gorm.Open(dialector, &gorm.Config{})
		if err != nil {
			lastErr = err
			zap.L().Warn("gorm open failed",
				zap.Int("attempt", i), zap.Int("max", maxRetries), zap.Error(err))
			time.Sleep(5 * time.Second)
			continue
		}

		sqlDB, err := db.DB()
		if err != nil {
			lastErr = err
			zap.L().Warn("get sql.DB failed",
				zap.Int("attempt", i), zap.Int("max", maxRetries), zap.Error(err))
			time.Sleep(5 * time.Second)
			continue
		}

		if err := sqlDB.Ping(); err != nil {
			lastErr = err
			zap.L().Warn("db ping failed",
				zap.Int("attempt", i), zap.Int("max", maxRetries), zap.Error(err))
			time.Sleep(5 * time.Second)
			continue
		}

		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(time.Hour)

		zap.L().Info("gorm connected", zap.Bool("postgres", cfg.UsePostgres()))
		return db, nil
	}

	return nil, fmt.Errorf("database connection failed after %d retries: %w", maxRetries, lastErr)
}

func postgresDialector(cfg config.Config) gorm.Dialector {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
	)
	return postgres.Open(dsn)
}

func sqliteDialector(cfg config.Config) gorm.Dialector {
	return sqlite.Open(cfg.DBFile)
}

func ConnectRedisWithRetry(addr string, maxRetries int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	for i := 1; i <= maxRetries; i++ {
		ctx := context.Background()
		if err := rdb.Ping(ctx).Err(); err == nil {
			zap.L().Info("connected to redis", zap.String("addr", addr))
			return rdb, nil
		}

		zap.L().Warn("redis retry failed", zap.Int("attempt", i), zap.Int("max", maxRetries))
		time.Sleep(5 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect redis at %s", addr)
}
