package main

import (
	"log/slog"
	"os"

	"github.com/fdkevin0/htmltree/internal/cli"
)

func main() {
	// Run CLI entrypoint.
	if err := cli.Execute(); err != nil {
		slog.Error("htmltree failed", "error", err)
		os.Exit(1)
	}
}
