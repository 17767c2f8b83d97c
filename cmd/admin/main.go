package main

import (
	"go.uber.org/zap"

	"github.com/cexutoire/wibiz-attendance-bot/internal/admin"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	admin.Execute()
}
