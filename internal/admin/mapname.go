package admin

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cexutoire/wibiz-attendance-bot/internal/attendance"
	"github.com/cexutoire/wibiz-attendance-bot/internal/config"
	"github.com/cexutoire/wibiz-attendance-bot/internal/namemap"
	"github.com/cexutoire/wibiz-attendance-bot/internal/task"
)

var mapNameFix bool

var mapNameCmd = &cobra.Command{
	Use:   "map-name <user_id> <name>",
	Short: "Map a platform user ID to a display name",
	Args:  cobra.ExactArgs(2),
	RunE:  runMapName,
}

func init() {
	mapNameCmd.Flags().BoolVar(&mapNameFix, "fix", false, "Also rewrite the name on stored rows for this user")
}

func runMapName(cmd *cobra.Command, args []string) error {
	userID, name := args[0], args[1]
	cfg := config.Load()

	names := namemap.NewResolver(cfg.DataDir)
	if err := names.Set(userID, name); err != nil {
		return err
	}
	fmt.Printf("Mapped %s to %q\n", userID, name)

	if !mapNameFix {
		return nil
	}

	gormDB, err := openStore(cfg)
	if err != nil {
		return err
	}

	attendanceRes := gormDB.Model(&attendance.Record{}).
		Where("user_id = ?", userID).
		Update("name", name)
	if attendanceRes.Error != nil {
		return attendanceRes.Error
	}
	taskRes := gormDB.Model(&task.Entry{}).
		Where("user_id = ?", userID).
		Update("name", name)
	if taskRes.Error != nil {
		return taskRes.Error
	}

	fmt.Printf("Rewrote %d attendance rows and %d tasks\n",
		attendanceRes.RowsAffected, taskRes.RowsAffected)
	return nil
}
