package main

import (
	"log/slog"

	"github.com/shreyansh0727/datasync/internal/cli"
	"github.com/shreyansh0727/datasync/internal/logging"
)

func main() {
	logging.Init(slog.LevelError)
	cli.Execute()
}
