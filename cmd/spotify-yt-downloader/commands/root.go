package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"spotify-yt-downloader/internal/api/youtube"
	"spotify-yt-downloader/internal/config"
	"spotify-yt-downloader/internal/core/downloader"
	"spotify-yt-downloader/internal/interfaces"
	"spotify-yt-downloader/internal/services"
	"spotify-yt-downloader/internal/shared"
)

// NewRootCommand creates the download command
func NewRootCommand(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "spotify-yt-downloader",
		Short:   "Download audio from Spotify using YouTube",
		Version: version,
		Long: `Resolves a Spotify playlist or album into its tracks, searches YouTube for
"<title> <artist>" and downloads the best match of every track as audio.

Credentials can also be provided through SPOTIFY_CLIENT_ID and
SPOTIFY_CLIENT_SECRET or a JSON config file.`,
		Example: `  spotify-yt-downloader --client-id ID --client-secret SECRET --url https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M
  spotify-yt-downloader --url spotify:album:4aawyAB9vmqN3uQ7FjRGTy --workers 4 --tag`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runDownload,
	}

	flags := cmd.Flags()
	flags.SetNormalizeFunc(normalizeFlagName)
	flags.String("client-id", "", "Spotify API client ID")
	flags.String("client-secret", "", "Spotify API client secret")
	flags.String("url", "", "Spotify playlist/album URL (alias --playlist-url)")
	flags.String("output-dir", config.DefaultOutputDir, "Directory to save downloaded audio files")
	flags.Int("workers", config.DefaultWorkers, "Number of concurrent download workers")
	flags.Int("page-limit", config.DefaultPageLimit, "Tracks requested per catalog page")
	flags.String("audio-format", config.DefaultAudioFormat, "Audio format to extract (e.g., mp3, opus, m4a)")
	flags.String("audio-quality", config.DefaultQuality, "Audio quality passed to the extractor (e.g., 192)")
	flags.Bool("tag", false, "Write title/artist/album tags into mp3 files")
	flags.Bool("no-progress", false, "Disable the progress bar")
	flags.Bool("install-ytdlp", false, "Download yt-dlp if it is not installed")
	flags.Bool("dry-run", false, "Print the search queries without downloading")
	flags.String("warnings", string(shared.WarningsSummary), "When to show warnings: immediate, summary or silent")
	flags.String("metrics-file", "", "Write Prometheus metrics for the run to this file")
	flags.String("config", "", "Path to a JSON or YAML config file")
	flags.Bool("save-config", false, "Write the merged configuration to --config (or "+DefaultConfigPath+")")
	flags.Bool("debug", false, "Enable debug logging")
	_ = cmd.MarkFlagRequired("url")

	return cmd
}

func runDownload(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	url, _ := cmd.Flags().GetString("url")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if save, _ := cmd.Flags().GetBool("save-config"); save {
		path, _ := cmd.Flags().GetString("config")
		if path == "" {
			path = DefaultConfigPath
		}
		if err := config.SaveConfig(path, cfg); err != nil {
			return err
		}
	}

	container := services.NewServiceContainerWithWriter(cfg, cmd.OutOrStdout())
	logger := container.Logger
	orchestrator := container.Orchestrator()
	ctx := cmd.Context()

	if dryRun {
		queries, err := orchestrator.Queries(ctx, url)
		if err != nil {
			return err
		}
		for i, q := range queries {
			fmt.Fprintf(cmd.OutOrStdout(), "%3d. %s\n", i+1, q)
		}
		logger.Info("%d tracks would be downloaded to %s", len(queries), cfg.OutputDir)
		container.WarningCollector.PrintSummary()
		return nil
	}

	if cfg.InstallYTDLP {
		path, err := youtube.Install(ctx)
		if err != nil {
			return err
		}
		logger.Debug("Using yt-dlp at %s", path)
	} else if !downloader.CheckYTDLP() {
		logger.Warning("yt-dlp not found in PATH; rerun with --install-ytdlp to download it")
	}
	if !downloader.CheckFFmpeg() {
		printInstallInstructions(logger)
	}

	logger.Info("🎵 Starting download of %s into %s", url, cfg.OutputDir)
	stats, err := orchestrator.Run(ctx, url)
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), cfg, stats)
	return nil
}

func printSummary(out io.Writer, cfg *config.Config, stats *shared.DownloadStats) {
	fmt.Fprintln(out)
	shared.ColorInfo.Fprintf(out, "📊 Download Summary:\n")
	if stats.Succeeded > 0 {
		shared.ColorSuccess.Fprintf(out, "✅ Successfully downloaded: %d tracks\n", stats.Succeeded)
	}
	if stats.Failed > 0 {
		shared.ColorError.Fprintf(out, "❌ Failed downloads: %d tracks\n", stats.Failed)
		shared.ColorError.Fprintf(out, "   Failed items: %s\n", strings.Join(stats.FailedItems, ", "))
	}
	shared.ColorSuccess.Fprintf(out, "📁 Audio saved to: %s\n", cfg.OutputDir)
}

func printInstallInstructions(logger interfaces.LoggerService) {
	logger.Warning("ffmpeg not found in PATH; audio extraction will fail for every track")
	logger.Warning("Install it with your package manager, e.g. 'apt install ffmpeg' or 'brew install ffmpeg'")
}
