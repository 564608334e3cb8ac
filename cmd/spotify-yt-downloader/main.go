package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"spotify-yt-downloader/cmd/spotify-yt-downloader/commands"
	"spotify-yt-downloader/internal/shared"
)

const toolVersion = "1.0.0"

func main() {
	shared.InitializeColors()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commands.NewRootCommand(toolVersion).ExecuteContext(ctx); err != nil {
		shared.ColorError.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}
