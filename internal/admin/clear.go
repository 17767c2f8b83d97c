package admin

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cexutoire/wibiz-attendance-bot/internal/attendance"
	"github.com/cexutoire/wibiz-attendance-bot/internal/bootstrap"
	"github.com/cexutoire/wibiz-attendance-bot/internal/config"
	"github.com/cexutoire/wibiz-attendance-bot/internal/task"
)

var clearConfirmed bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every attendance record and task entry",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

func init() {
	clearCmd.Flags().BoolVar(&clearConfirmed, "yes", false, "Confirm the deletion")
}

func runClear(cmd *cobra.Command, args []string) error {
	if !clearConfirmed {
		return fmt.Errorf("refusing to delete without --yes")
	}

	gormDB, err := openStore(config.Load())
	if err != nil {
		return err
	}

	attendanceRes := gormDB.Where("1 = 1").Delete(&attendance.Record{})
	if attendanceRes.Error != nil {
		return attendanceRes.Error
	}
	taskRes := gormDB.Where("1 = 1").Delete(&task.Entry{})
	if taskRes.Error != nil {
		return taskRes.Error
	}

	bootstrap.NewStdoutAuditLogger(zap.L()).Log(context.Background(), bootstrap.AuditLog{
		Action:  bootstrap.ActionStoreCleared,
		Message: "All attendance and task rows deleted",
		Meta: map[string]any{
			"attendance_rows": attendanceRes.RowsAffected,
			"task_rows":       taskRes.RowsAffected,
		},
	})

	fmt.Printf("Deleted %d attendance rows and %d tasks\n",
		attendanceRes.RowsAffected, taskRes.RowsAffected)
	return nil
}
