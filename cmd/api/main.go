package main

import (
	"log/slog"
	"os"

	"github.com/tdp/popcorn-palace/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
		logger.Error(err.Error())
		os.Exit(1)
	}
}
