// Package admin is the operations CLI: data export, destructive resets
// and name-mapping maintenance that should not sit on the HTTP surface.
package admin

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/cexutoire/wibiz-attendance-bot/internal/attendance"
	"github.com/cexutoire/wibiz-attendance-bot/internal/config"
	"github.com/cexutoire/wibiz-attendance-bot/internal/shared/connection"
	"github.com/cexutoire/wibiz-attendance-bot/internal/task"
)

var rootCmd = &cobra.Command{
	Use:   "admin",
	Short: "Operations CLI for the attendance store",
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(mapNameCmd)
}

func openStore(cfg config.Config) (*gorm.DB, error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg, 1)
	if err != nil {
		return nil, err
	}
	if err := gormDB.AutoMigrate(&attendance.Record{}, &task.Entry{}); err != nil {
		return nil, err
	}
	return gormDB, nil
}
