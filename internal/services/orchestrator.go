package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"spotify-yt-downloader/internal/config"
	"spotify-yt-downloader/internal/core/downloader"
	"spotify-yt-downloader/internal/core/queue"
	"spotify-yt-downloader/internal/core/resolver"
	"spotify-yt-downloader/internal/core/search"
	"spotify-yt-downloader/internal/interfaces"
	"spotify-yt-downloader/internal/shared"
)

// Orchestrator runs one catalog download: resolve, queue, download, drain.
type Orchestrator struct {
	cfg      *config.Config
	catalog  interfaces.CatalogService
	media    interfaces.MediaService
	logger   interfaces.LoggerService
	warnings interfaces.WarningCollectorService
	tagger   interfaces.TagWriter
	progress interfaces.ProgressReporter
	metrics  interfaces.MetricsRecorder
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

func WithWarningCollector(w interfaces.WarningCollectorService) OrchestratorOption {
	return func(o *Orchestrator) { o.warnings = w }
}

func WithTagger(t interfaces.TagWriter) OrchestratorOption {
	return func(o *Orchestrator) { o.tagger = t }
}

func WithProgress(p interfaces.ProgressReporter) OrchestratorOption {
	return func(o *Orchestrator) { o.progress = p }
}

func WithMetrics(m interfaces.MetricsRecorder) OrchestratorOption {
	return func(o *Orchestrator) { o.metrics = m }
}

// NewOrchestrator creates an orchestrator. Worker count, page size and output
// directory all come from cfg.
func NewOrchestrator(cfg *config.Config, catalog interfaces.CatalogService, media interfaces.MediaService, logger interfaces.LoggerService, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		cfg:     cfg,
		catalog: catalog,
		media:   media,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run downloads every track of the playlist or album at catalogURL. Per-item
// failures are counted in the returned stats; only setup errors are returned.
func (o *Orchestrator) Run(ctx context.Context, catalogURL string) (*shared.DownloadStats, error) {
	if err := shared.CreateDirIfNotExists(o.cfg.OutputDir); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", o.cfg.OutputDir, err)
	}

	queries, err := o.Queries(ctx, catalogURL)
	if err != nil {
		return nil, err
	}

	work := queue.New[shared.SearchQuery]()
	for _, q := range queries {
		work.Put(queue.Work(q))
	}
	o.logger.Info("Added %d tracks to download queue", len(queries))
	if o.metrics != nil {
		o.metrics.SetQueued(len(queries))
	}

	pool := downloader.NewPool(o.cfg.Workers, o.media, o.cfg.OutputDir, o.logger, o.poolOptions()...)

	start := time.Now()
	if o.progress != nil {
		o.progress.Start(len(queries))
	}
	pool.Start(ctx, work)
	work.Join()
	for i := 0; i < pool.Workers(); i++ {
		work.Put(queue.Shutdown[shared.SearchQuery]())
	}
	stats := pool.Wait()
	if o.progress != nil {
		o.progress.Finish()
	}

	o.logger.Info("All downloads completed in %.2f sec", time.Since(start).Seconds())
	o.logger.Info("Summary: %s", stats.Summary())
	if o.warnings != nil {
		o.warnings.PrintSummary()
	}
	if o.metrics != nil && o.cfg.MetricsFile != "" {
		if err := o.metrics.WriteTextfile(o.cfg.MetricsFile); err != nil {
			o.logger.Warning("%v", err)
		} else {
			o.logger.Debug("Wrote metrics to %s", o.cfg.MetricsFile)
		}
	}
	return stats, nil
}

// Queries authenticates, resolves catalogURL and returns the search queries
// that Run would download, without downloading anything.
func (o *Orchestrator) Queries(ctx context.Context, catalogURL string) ([]shared.SearchQuery, error) {
	if _, err := resolver.ParseReference(catalogURL); err != nil {
		return nil, err
	}

	if err := o.catalog.Authenticate(ctx); err != nil {
		if !errors.Is(err, shared.ErrAuthentication) {
			err = fmt.Errorf("%w: %v", shared.ErrAuthentication, err)
		}
		return nil, err
	}

	tracks, err := resolver.New(o.catalog, o.logger).Resolve(ctx, catalogURL)
	if err != nil {
		return nil, err
	}

	if o.warnings != nil {
		for _, i := range search.Incomplete(tracks) {
			o.warnings.AddIncompleteTrackWarning(i, tracks[i])
		}
	}
	return search.BuildQueries(tracks), nil
}

func (o *Orchestrator) poolOptions() []downloader.Option {
	var opts []downloader.Option
	if o.tagger != nil {
		opts = append(opts, downloader.WithTagger(o.tagger))
	}
	if o.warnings != nil {
		opts = append(opts, downloader.WithWarnings(o.warnings))
	}
	if o.progress != nil {
		opts = append(opts, downloader.WithProgress(o.progress))
	}
	if o.metrics != nil {
		opts = append(opts, downloader.WithMetrics(o.metrics))
	}
	return opts
}
