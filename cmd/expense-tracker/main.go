package main

import (
	"log/slog"
	"os"

	"expensetracker/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		slog.Error("expense-tracker failed", "error", err)
		os.Exit(1)
	}
}
