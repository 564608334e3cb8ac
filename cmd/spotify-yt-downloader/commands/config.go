package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"spotify-yt-downloader/internal/config"
	"spotify-yt-downloader/internal/shared"
)

// DefaultConfigPath is where --save-config writes when --config is not given.
const DefaultConfigPath = "config/config.json"

// flagAliases maps accepted alternate flag names to their canonical name.
var flagAliases = map[string]string{
	"playlist-url": "url",
	"album-url":    "url",
}

func normalizeFlagName(f *pflag.FlagSet, name string) pflag.NormalizedName {
	if canonical, ok := flagAliases[name]; ok {
		name = canonical
	}
	return pflag.NormalizedName(name)
}

// loadConfig merges defaults, the optional config file, the environment and
// explicitly set flags, in increasing order of precedence.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	configPath, _ := flags.GetString("config")
	// A config file that is about to be created by --save-config is not read.
	if save, _ := flags.GetBool("save-config"); save && !shared.FileExists(configPath) {
		configPath = ""
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if flags.Changed("client-id") {
		cfg.ClientID, _ = flags.GetString("client-id")
	}
	if flags.Changed("client-secret") {
		cfg.ClientSecret, _ = flags.GetString("client-secret")
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir, _ = flags.GetString("output-dir")
	}
	if flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("page-limit") {
		cfg.PageLimit, _ = flags.GetInt("page-limit")
	}
	if flags.Changed("audio-format") {
		cfg.AudioFormat, _ = flags.GetString("audio-format")
	}
	if flags.Changed("audio-quality") {
		cfg.AudioQuality, _ = flags.GetString("audio-quality")
	}
	if flags.Changed("tag") {
		cfg.TagFiles, _ = flags.GetBool("tag")
	}
	if flags.Changed("no-progress") {
		noProgress, _ := flags.GetBool("no-progress")
		cfg.ShowProgress = !noProgress
	}
	if flags.Changed("install-ytdlp") {
		cfg.InstallYTDLP, _ = flags.GetBool("install-ytdlp")
	}
	if flags.Changed("warnings") {
		cfg.WarningBehavior, _ = flags.GetString("warnings")
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile, _ = flags.GetString("metrics-file")
	}
	if flags.Changed("debug") {
		cfg.Debug, _ = flags.GetBool("debug")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
