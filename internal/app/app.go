// Package app wires repositories, services and transports together for
// the three binaries: the HTTP API, the chat gateway and the broker
// consumer.
package app

import (
	"gorm.io/gorm"

	"github.com/cexutoire/wibiz-attendance-bot/internal/attendance"
	"github.com/cexutoire/wibiz-attendance-bot/internal/config"
	"github.com/cexutoire/wibiz-attendance-bot/internal/shared/connection"
	"github.com/cexutoire/wibiz-attendance-bot/internal/task"
)

func connectStore(cfg config.Config) (*gorm.DB, error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg, 5)
	if err != nil {
		return nil, err
	}
	if err := gormDB.AutoMigrate(&attendance.Record{}, &task.Entry{}); err != nil {
		return nil, err
	}
	return gormDB, nil
}
