package downloader

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"spotify-yt-downloader/internal/api/youtube"
	"spotify-yt-downloader/internal/core/queue"
	"spotify-yt-downloader/internal/interfaces"
	"spotify-yt-downloader/internal/shared"
)

// Result is the outcome of processing one query. Err is nil on success.
type Result struct {
	Query shared.SearchQuery
	Path  string
	Err   error
}

// OK reports whether the item was downloaded.
func (r Result) OK() bool {
	return r.Err == nil
}

// WorkerState is the lifecycle state of a single worker.
type WorkerState int

const (
	StateIdle WorkerState = iota
	StateWaiting
	StateProcessing
	StateStopped
)

func (s WorkerState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWaiting:
		return "waiting"
	case StateProcessing:
		return "processing"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Pool runs a fixed number of workers that consume search queries from a
// shared queue and download the best match for each.
type Pool struct {
	workers   int
	media     interfaces.MediaService
	outputDir string
	logger    interfaces.LoggerService
	tagger    interfaces.TagWriter
	warnings  interfaces.WarningCollectorService
	progress  interfaces.ProgressReporter
	metrics   interfaces.MetricsRecorder

	stats *shared.DownloadStats
	group errgroup.Group

	mu     sync.Mutex
	states []WorkerState
}

// Option configures a Pool.
type Option func(*Pool)

// WithTagger writes catalog tags into every downloaded file.
func WithTagger(tagger interfaces.TagWriter) Option {
	return func(p *Pool) { p.tagger = tagger }
}

// WithWarnings reports non-fatal problems, such as tag write failures.
func WithWarnings(warnings interfaces.WarningCollectorService) Option {
	return func(p *Pool) { p.warnings = warnings }
}

// WithProgress advances progress after every processed item.
func WithProgress(progress interfaces.ProgressReporter) Option {
	return func(p *Pool) { p.progress = progress }
}

// WithMetrics records the outcome and duration of every processed item.
func WithMetrics(metrics interfaces.MetricsRecorder) Option {
	return func(p *Pool) { p.metrics = metrics }
}

// NewPool creates a pool of workers writing into outputDir.
func NewPool(workers int, media interfaces.MediaService, outputDir string, logger interfaces.LoggerService, opts ...Option) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{
		workers:   workers,
		media:     media,
		outputDir: outputDir,
		logger:    logger,
		stats:     &shared.DownloadStats{},
		states:    make([]WorkerState, workers),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int {
	return p.workers
}

// Start launches the workers. Each one exits after taking a shutdown item
// from q, so the caller must put one per worker once q has been joined.
func (p *Pool) Start(ctx context.Context, q *queue.Queue[shared.SearchQuery]) {
	for i := 0; i < p.workers; i++ {
		id := i
		p.group.Go(func() error {
			p.work(ctx, id, q)
			return nil
		})
	}
}

// Wait blocks until every worker has exited and returns the run statistics.
func (p *Pool) Wait() *shared.DownloadStats {
	_ = p.group.Wait()
	return p.stats
}

// State returns the current state of worker id.
func (p *Pool) State(id int) WorkerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	if id < 0 || id >= len(p.states) {
		return StateStopped
	}
	return p.states[id]
}

func (p *Pool) setState(id int, state WorkerState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.states[id] = state
}

func (p *Pool) work(ctx context.Context, id int, q *queue.Queue[shared.SearchQuery]) {
	defer p.setState(id, StateStopped)
	for {
		p.setState(id, StateWaiting)
		item := q.Get()
		if item.IsShutdown() {
			p.taskDone(q)
			return
		}

		p.setState(id, StateProcessing)
		start := time.Now()
		result := p.Process(ctx, item.Value())
		p.record(result, time.Since(start))
		p.taskDone(q)
	}
}

func (p *Pool) taskDone(q *queue.Queue[shared.SearchQuery]) {
	if err := q.TaskDone(); err != nil {
		p.logger.Error("Queue accounting error: %v", err)
	}
}

func (p *Pool) record(result Result, elapsed time.Duration) {
	if result.OK() {
		p.stats.RecordSuccess()
		p.logger.Success("Downloaded: %s", result.Query)
	} else {
		p.stats.RecordFailure(result.Query.String())
		p.logger.Error("Error processing %s: %v", result.Query, result.Err)
	}
	if p.metrics != nil {
		p.metrics.ObserveResult(result.OK(), elapsed)
	}
	if p.progress != nil {
		p.progress.Increment()
	}
}

// Process searches for query and downloads the top match. Every failure,
// including a panic inside a collaborator, is returned in the Result.
func (p *Pool) Process(ctx context.Context, query shared.SearchQuery) (result Result) {
	result.Query = query
	defer func() {
		if r := recover(); r != nil {
			p.logger.Debug("panic while processing %s: %v\n%s", query, r, debug.Stack())
			result.Path = ""
			result.Err = fmt.Errorf("panic: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	ref, err := p.media.SearchTop(ctx, query.Text)
	if err != nil {
		result.Err = err
		return result
	}
	p.logger.Debug("Best match for %q: %s (%s)", query.Text, ref.Title, ref.URL)

	path, err := p.media.FetchAndTranscode(ctx, ref, youtube.OutputTemplate(p.outputDir))
	if err != nil {
		result.Err = err
		return result
	}
	if !shared.FileExists(path) {
		result.Err = fmt.Errorf("output file %s was not written", path)
		return result
	}
	result.Path = path

	if p.tagger != nil {
		if err := p.tagger.WriteTags(path, query.Track); err != nil {
			p.logger.Debug("Failed to tag %s: %v", path, err)
			if p.warnings != nil {
				p.warnings.AddTagWriteWarning(path, err.Error())
			}
		}
	}
	return result
}
