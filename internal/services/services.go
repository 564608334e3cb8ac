package services

import (
	"io"
	"os"

	"spotify-yt-downloader/internal/api/spotify"
	"spotify-yt-downloader/internal/api/youtube"
	"spotify-yt-downloader/internal/config"
	"spotify-yt-downloader/internal/core/downloader"
	"spotify-yt-downloader/internal/interfaces"
	"spotify-yt-downloader/internal/metrics"
	"spotify-yt-downloader/internal/shared"
)

// ServiceContainer holds all application services
type ServiceContainer struct {
	Config           *config.Config
	Catalog          interfaces.CatalogService
	Media            interfaces.MediaService
	Logger           interfaces.LoggerService
	WarningCollector interfaces.WarningCollectorService
	Tagger           interfaces.TagWriter
	Progress         interfaces.ProgressReporter
	Metrics          interfaces.MetricsRecorder
}

// NewServiceContainer creates a new service container with all services
// initialized from cfg. cfg must already be validated.
func NewServiceContainer(cfg *config.Config) *ServiceContainer {
	return NewServiceContainerWithWriter(cfg, os.Stdout)
}

// NewServiceContainerWithWriter is NewServiceContainer with console output
// sent to out.
func NewServiceContainerWithWriter(cfg *config.Config, out io.Writer) *ServiceContainer {
	// Create logger first as other services may need it
	logger := NewConsoleLoggerWithWriter(out)
	logger.SetDebugMode(cfg.Debug)

	behavior, err := shared.ParseWarningBehavior(cfg.WarningBehavior)
	if err != nil {
		behavior = shared.WarningsSummary
	}
	warningCollector := shared.NewWarningCollectorWithWriter(behavior, out)

	catalog := spotify.NewClient(cfg.ClientID, cfg.ClientSecret,
		spotify.WithPageLimits(cfg.PageLimit, cfg.AlbumPageLimit()))
	media := youtube.NewClient(cfg.AudioFormat, cfg.AudioQuality)

	container := &ServiceContainer{
		Config:           cfg,
		Catalog:          catalog,
		Media:            media,
		Logger:           logger,
		WarningCollector: warningCollector,
	}
	if cfg.TagFiles {
		container.Tagger = downloader.NewID3Tagger()
	}
	if cfg.MetricsFile != "" {
		container.Metrics = metrics.NewRecorder()
	}
	if cfg.ShowProgress && shared.IsTTY() {
		container.Progress = downloader.NewBarProgress(out)
	}
	return container
}

// Orchestrator builds the download orchestrator from the container's services.
func (c *ServiceContainer) Orchestrator() *Orchestrator {
	return NewOrchestrator(c.Config, c.Catalog, c.Media, c.Logger,
		WithWarningCollector(c.WarningCollector),
		WithTagger(c.Tagger),
		WithProgress(c.Progress),
		WithMetrics(c.Metrics),
	)
}
